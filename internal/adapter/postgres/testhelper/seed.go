package testhelper

import (
	"context"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vbalak/kanjibot/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// WordSeed describes one word entry to insert, including the primary
// wording (unlike domain.WordEntry, which excludes the matched text
// from its alternate wordings).
type WordSeed struct {
	SequenceNumber int64
	Wordings       []domain.Wording
	Readings       []domain.Reading
	Senses         []domain.Sense
}

// SeedKanji inserts a full kanji record with all its child rows.
func SeedKanji(t *testing.T, pool *pgxpool.Pool, rec domain.KanjiRecord) {
	t.Helper()
	ctx := context.Background()

	var radicalID *int64
	if rec.Radical != nil {
		radicalID = ptr(seedRadical(t, pool, *rec.Radical))
	}

	query, args := mustSQL(t, psql.
		Insert("kanji").
		Columns("character", "radical_id", "grade", "stroke_count", "frequency", "jlpt_level").
		Values(rec.Character, radicalID, rec.Grade, rec.StrokeCount, rec.Frequency, rec.JLPTLevel).
		Suffix("RETURNING kanji_id"))

	var kanjiID int64
	if err := pool.QueryRow(ctx, query, args...).Scan(&kanjiID); err != nil {
		t.Fatalf("seed kanji %q: %v", rec.Character, err)
	}

	for _, m := range rec.Meanings {
		exec(t, pool, psql.Insert("kanji_meaning").Columns("kanji_id", "meaning").Values(kanjiID, m))
	}
	seedReadings(t, pool, kanjiID, rec.OnReadings, domain.ReadingOn)
	seedReadings(t, pool, kanjiID, rec.KunReadings, domain.ReadingKun)
	seedReadings(t, pool, kanjiID, rec.NanoriReadings, domain.ReadingNanori)
	for _, c := range rec.Components {
		exec(t, pool, psql.Insert("kanji_component").Columns("kanji_id", "character").Values(kanjiID, c))
	}
}

// SeedWord inserts one word entry with all its nested rows and returns
// the entry ID.
func SeedWord(t *testing.T, pool *pgxpool.Pool, seed WordSeed) int64 {
	t.Helper()
	ctx := context.Background()

	query, args := mustSQL(t, psql.
		Insert("word_entry").
		Columns("sequence_number").
		Values(seed.SequenceNumber).
		Suffix("RETURNING word_entry_id"))

	var entryID int64
	if err := pool.QueryRow(ctx, query, args...).Scan(&entryID); err != nil {
		t.Fatalf("seed word entry: %v", err)
	}

	for _, w := range seed.Wordings {
		query, args := mustSQL(t, psql.
			Insert("word_entry_wording").
			Columns("word_entry_id", "text").
			Values(entryID, w.Text).
			Suffix("RETURNING wew_id"))

		var wordingID int64
		if err := pool.QueryRow(ctx, query, args...).Scan(&wordingID); err != nil {
			t.Fatalf("seed wording %q: %v", w.Text, err)
		}
		for _, info := range w.Info {
			exec(t, pool, psql.Insert("wew_info").Columns("wew_id", "text").Values(wordingID, info))
		}
	}

	for _, r := range seed.Readings {
		query, args := mustSQL(t, psql.
			Insert("word_entry_reading").
			Columns("word_entry_id", "reading").
			Values(entryID, r.Text).
			Suffix("RETURNING wer_id"))

		var readingID int64
		if err := pool.QueryRow(ctx, query, args...).Scan(&readingID); err != nil {
			t.Fatalf("seed reading %q: %v", r.Text, err)
		}
		for _, info := range r.Info {
			exec(t, pool, psql.Insert("wer_info").Columns("wer_id", "text").Values(readingID, info))
		}
	}

	for _, s := range seed.Senses {
		query, args := mustSQL(t, psql.
			Insert("word_entry_meaning").
			Columns("word_entry_id").
			Values(entryID).
			Suffix("RETURNING wem_id"))

		var senseID int64
		if err := pool.QueryRow(ctx, query, args...).Scan(&senseID); err != nil {
			t.Fatalf("seed sense: %v", err)
		}
		for _, pos := range s.PartsOfSpeech {
			exec(t, pool, psql.Insert("wem_part_of_speech").Columns("wem_id", "text").Values(senseID, pos))
		}
		for _, f := range s.Fields {
			exec(t, pool, psql.Insert("wem_field").Columns("wem_id", "field").Values(senseID, f))
		}
		for _, g := range s.Glosses {
			exec(t, pool, psql.Insert("wem_gloss").Columns("wem_id", "text").Values(senseID, g))
		}
		for _, m := range s.Misc {
			exec(t, pool, psql.Insert("wem_misc").Columns("wem_id", "text").Values(senseID, m))
		}
	}

	return entryID
}

func seedRadical(t *testing.T, pool *pgxpool.Pool, radical string) int64 {
	t.Helper()
	ctx := context.Background()

	exec(t, pool, psql.
		Insert("kanji_radical").
		Columns("radical").
		Values(radical).
		Suffix("ON CONFLICT (radical) DO NOTHING"))

	query, args := mustSQL(t, psql.
		Select("radical_id").
		From("kanji_radical").
		Where(sq.Eq{"radical": radical}))

	var id int64
	if err := pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		t.Fatalf("seed radical %q: %v", radical, err)
	}
	return id
}

func seedReadings(t *testing.T, pool *pgxpool.Pool, kanjiID int64, readings []string, typ domain.ReadingType) {
	t.Helper()
	for _, r := range readings {
		exec(t, pool, psql.Insert("kanji_reading").Columns("kanji_id", "reading", "type").Values(kanjiID, r, int16(typ)))
	}
}

type sqlizer interface {
	ToSql() (string, []any, error)
}

func mustSQL(t *testing.T, s sqlizer) (string, []any) {
	t.Helper()
	query, args, err := s.ToSql()
	if err != nil {
		t.Fatalf("build sql: %v", err)
	}
	return query, args
}

func exec(t *testing.T, pool *pgxpool.Pool, s sqlizer) {
	t.Helper()
	query, args := mustSQL(t, s)
	if _, err := pool.Exec(context.Background(), query, args...); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}

func ptr[T any](v T) *T { return &v }
