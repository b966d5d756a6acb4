package word_test

import (
	"context"
	"errors"
	"testing"

	"github.com/vbalak/kanjibot/internal/adapter/postgres/testhelper"
	"github.com/vbalak/kanjibot/internal/adapter/postgres/word"
	"github.com/vbalak/kanjibot/internal/domain"
)

func TestRepo_WordExists(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := word.New(pool)
	ctx := context.Background()

	testhelper.SeedWord(t, pool, testhelper.WordSeed{
		SequenceNumber: 1203640,
		Wordings:       []domain.Wording{{Text: "好き"}},
		Readings:       []domain.Reading{{Text: "すき"}},
		Senses: []domain.Sense{{
			PartsOfSpeech: []string{"adj-na"},
			Glosses:       []string{"liking", "being fond of"},
		}},
	})

	exists, err := repo.WordExists(ctx, "好き")
	if err != nil {
		t.Fatalf("WordExists: unexpected error: %v", err)
	}
	if !exists {
		t.Error("expected 好き to exist")
	}

	exists, err = repo.WordExists(ctx, "存在しない言葉")
	if err != nil {
		t.Fatalf("WordExists: unexpected error: %v", err)
	}
	if exists {
		t.Error("expected miss for unknown word")
	}
}

func TestRepo_GetByText_FullEntry(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := word.New(pool)
	ctx := context.Background()

	wantID := testhelper.SeedWord(t, pool, testhelper.WordSeed{
		SequenceNumber: 1442200,
		Wordings: []domain.Wording{
			{Text: "田舎"},
			{Text: "田舍", Info: []string{"oK"}},
		},
		Readings: []domain.Reading{{Text: "いなか", Info: []string{"gikun"}}},
		Senses: []domain.Sense{
			{
				PartsOfSpeech: []string{"n"},
				Glosses:       []string{"rural area", "countryside"},
			},
			{
				PartsOfSpeech: []string{"n"},
				Misc:          []string{"derog"},
				Glosses:       []string{"the sticks"},
			},
		},
	})

	entries, err := repo.GetByText(ctx, "田舎")
	if err != nil {
		t.Fatalf("GetByText: unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	entry := entries[0]
	if entry.ID != wantID {
		t.Errorf("ID mismatch: got %d, want %d", entry.ID, wantID)
	}
	if entry.SequenceNumber != 1442200 {
		t.Errorf("SequenceNumber mismatch: got %d", entry.SequenceNumber)
	}
	if entry.PrimaryText != "田舎" {
		t.Errorf("PrimaryText mismatch: got %q", entry.PrimaryText)
	}

	// The matched text must not appear among alternate wordings.
	if len(entry.AlternateWordings) != 1 {
		t.Fatalf("expected 1 alternate wording, got %v", entry.AlternateWordings)
	}
	alt := entry.AlternateWordings[0]
	if alt.Text != "田舍" {
		t.Errorf("alternate wording mismatch: got %q", alt.Text)
	}
	if len(alt.Info) != 1 || alt.Info[0] != "oK" {
		t.Errorf("alternate wording info mismatch: got %v", alt.Info)
	}

	if len(entry.Readings) != 1 || entry.Readings[0].Text != "いなか" {
		t.Fatalf("readings mismatch: got %v", entry.Readings)
	}
	if len(entry.Readings[0].Info) != 1 || entry.Readings[0].Info[0] != "gikun" {
		t.Errorf("reading info mismatch: got %v", entry.Readings[0].Info)
	}

	if len(entry.Senses) != 2 {
		t.Fatalf("expected 2 senses, got %d", len(entry.Senses))
	}
	if got := entry.Senses[0].Glosses; len(got) != 2 || got[0] != "rural area" {
		t.Errorf("first sense glosses mismatch: got %v", got)
	}
	if got := entry.Senses[1].Misc; len(got) != 1 || got[0] != "derog" {
		t.Errorf("second sense misc mismatch: got %v", got)
	}
}

func TestRepo_GetByText_Homographs(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := word.New(pool)
	ctx := context.Background()

	// Two distinct entries sharing the same spelling must both come
	// back, in store order, without dedup.
	first := testhelper.SeedWord(t, pool, testhelper.WordSeed{
		SequenceNumber: 1260110,
		Wordings:       []domain.Wording{{Text: "見物"}},
		Readings:       []domain.Reading{{Text: "けんぶつ"}},
		Senses:         []domain.Sense{{Glosses: []string{"sightseeing"}}},
	})
	second := testhelper.SeedWord(t, pool, testhelper.WordSeed{
		SequenceNumber: 1715870,
		Wordings:       []domain.Wording{{Text: "見物"}},
		Readings:       []domain.Reading{{Text: "みもの"}},
		Senses:         []domain.Sense{{Glosses: []string{"something worth seeing"}}},
	})

	entries, err := repo.GetByText(ctx, "見物")
	if err != nil {
		t.Fatalf("GetByText: unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != first || entries[1].ID != second {
		t.Errorf("entry order mismatch: got %d, %d", entries[0].ID, entries[1].ID)
	}
}

func TestRepo_GetByText_NotFound(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := word.New(pool)
	ctx := context.Background()

	_, err := repo.GetByText(ctx, "未登録語")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_GetByText_GlosslessSenseKept(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := word.New(pool)
	ctx := context.Background()

	// An entry exists even when all its senses are glossless; deciding
	// what to render is the renderer's business.
	testhelper.SeedWord(t, pool, testhelper.WordSeed{
		SequenceNumber: 9900001,
		Wordings:       []domain.Wording{{Text: "空義"}},
		Senses:         []domain.Sense{{PartsOfSpeech: []string{"n"}}},
	})

	entries, err := repo.GetByText(ctx, "空義")
	if err != nil {
		t.Fatalf("GetByText: unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if len(entries[0].Senses) != 1 {
		t.Fatalf("expected glossless sense to be kept, got %v", entries[0].Senses)
	}
	if entries[0].Senses[0].HasGlosses() {
		t.Error("sense should have no glosses")
	}
}
