package importer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/vbalak/kanjibot/internal/adapter/postgres/importer"
	"github.com/vbalak/kanjibot/internal/adapter/postgres/kanji"
	"github.com/vbalak/kanjibot/internal/adapter/postgres/testhelper"
	"github.com/vbalak/kanjibot/internal/adapter/postgres/word"
	"github.com/vbalak/kanjibot/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func TestRepo_InsertKanji_RoundTrip(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := importer.New(pool)
	ctx := context.Background()

	// Radical ids are positional: the third inserted radical carries id 3.
	n, err := repo.InsertRadicals(ctx, []string{"一", "丨", "丶"})
	if err != nil {
		t.Fatalf("InsertRadicals: %v", err)
	}
	if n != 3 {
		t.Fatalf("InsertRadicals returned %d, want 3", n)
	}

	err = repo.InsertKanji(ctx, domain.KanjiImport{
		Literal:        "丸",
		Meanings:       []string{"round", "full"},
		OnReadings:     []string{"ガン"},
		KunReadings:    []string{"まる", "まる.い"},
		NanoriReadings: []string{"まろ"},
		Components:     []string{"九", "丶"},
		RadicalNumber:  ptr(3),
		Grade:          ptr(2),
		StrokeCount:    ptr(3),
		Frequency:      ptr(567),
		JLPTLevel:      ptr(2),
	})
	if err != nil {
		t.Fatalf("InsertKanji: %v", err)
	}

	got, err := kanji.New(pool).GetByCharacter(ctx, "丸")
	if err != nil {
		t.Fatalf("GetByCharacter: %v", err)
	}

	if got.Radical == nil || *got.Radical != "丶" {
		t.Errorf("Radical = %v, want resolved radical 丶", got.Radical)
	}
	if len(got.Meanings) != 2 || got.Meanings[0] != "round" {
		t.Errorf("Meanings = %v", got.Meanings)
	}
	if len(got.OnReadings) != 1 || len(got.KunReadings) != 2 || len(got.NanoriReadings) != 1 {
		t.Errorf("readings = %v / %v / %v", got.OnReadings, got.KunReadings, got.NanoriReadings)
	}
	if len(got.Components) != 2 {
		t.Errorf("Components = %v", got.Components)
	}
	if got.Grade == nil || *got.Grade != 2 {
		t.Errorf("Grade = %v", got.Grade)
	}
}

func TestRepo_InsertKanji_MinimalRecord(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := importer.New(pool)
	ctx := context.Background()

	err := repo.InsertKanji(ctx, domain.KanjiImport{Literal: "〆"})
	if err != nil {
		t.Fatalf("InsertKanji: %v", err)
	}

	got, err := kanji.New(pool).GetByCharacter(ctx, "〆")
	if err != nil {
		t.Fatalf("GetByCharacter: %v", err)
	}
	if got.Radical != nil || got.Grade != nil || got.StrokeCount != nil {
		t.Errorf("optional fields should be nil: %+v", got)
	}
	if len(got.Meanings) != 0 {
		t.Errorf("Meanings = %v, want none", got.Meanings)
	}
}

func TestRepo_InsertWord_RoundTrip(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := importer.New(pool)
	ctx := context.Background()

	err := repo.InsertWord(ctx, domain.WordImport{
		SequenceNumber: 1578010,
		Wordings: []domain.Wording{
			{Text: "試験犬"},
			{Text: "試験狗", Info: []string{"ateji (phonetic) reading"}},
		},
		Readings: []domain.Reading{
			{Text: "しけんいぬ", Info: []string{"gikun (meaning as reading)"}},
		},
		Senses: []domain.Sense{
			{
				PartsOfSpeech: []string{"noun (common) (futsuumeishi)"},
				Glosses:       []string{"dog", "hound"},
			},
			{
				Fields:  []string{"zoology"},
				Misc:    []string{"colloquialism"},
				Glosses: []string{"snitch"},
			},
		},
	})
	if err != nil {
		t.Fatalf("InsertWord: %v", err)
	}

	wordRepo := word.New(pool)

	exists, err := wordRepo.WordExists(ctx, "試験犬")
	if err != nil {
		t.Fatalf("WordExists: %v", err)
	}
	if !exists {
		t.Error("WordExists = false after import")
	}

	entries, err := wordRepo.GetByText(ctx, "試験犬")
	if err != nil {
		t.Fatalf("GetByText: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}

	entry := entries[0]
	if entry.SequenceNumber != 1578010 {
		t.Errorf("SequenceNumber = %d", entry.SequenceNumber)
	}
	if len(entry.AlternateWordings) != 1 || entry.AlternateWordings[0].Text != "試験狗" {
		t.Fatalf("AlternateWordings = %v", entry.AlternateWordings)
	}
	if len(entry.AlternateWordings[0].Info) != 1 {
		t.Errorf("alternate info = %v", entry.AlternateWordings[0].Info)
	}
	if len(entry.Readings) != 1 || entry.Readings[0].Text != "しけんいぬ" {
		t.Fatalf("Readings = %v", entry.Readings)
	}
	if len(entry.Readings[0].Info) != 1 {
		t.Errorf("reading info = %v", entry.Readings[0].Info)
	}
	if len(entry.Senses) != 2 {
		t.Fatalf("Senses = %v", entry.Senses)
	}
	if len(entry.Senses[0].Glosses) != 2 || entry.Senses[0].Glosses[0] != "dog" {
		t.Errorf("Senses[0].Glosses = %v", entry.Senses[0].Glosses)
	}
	if len(entry.Senses[1].Misc) != 1 || entry.Senses[1].Misc[0] != "colloquialism" {
		t.Errorf("Senses[1].Misc = %v", entry.Senses[1].Misc)
	}
}

func TestRepo_InsertKanji_DuplicateCharacter(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := importer.New(pool)
	ctx := context.Background()

	if err := repo.InsertKanji(ctx, domain.KanjiImport{Literal: "重"}); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	err := repo.InsertKanji(ctx, domain.KanjiImport{Literal: "重"})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("err = %v, want ErrAlreadyExists", err)
	}
}
