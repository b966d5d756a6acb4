// Package kanji implements the kanji lookup repository using PostgreSQL.
// One lookup is one query group: the parent row first, then the child
// rows (meanings, readings, components) in a single batch round trip.
package kanji

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/vbalak/kanjibot/internal/adapter/postgres"
	"github.com/vbalak/kanjibot/internal/domain"
)

// Repo provides read-only kanji lookups backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new kanji repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getByCharacterSQL = `
SELECT k.kanji_id, k.character, k.grade, k.stroke_count, k.frequency, k.jlpt_level, r.radical
FROM kanji k
LEFT JOIN kanji_radical r USING (radical_id)
WHERE k.character = $1`

const getMeaningsSQL = `
SELECT meaning FROM kanji_meaning WHERE kanji_id = $1`

const getReadingsSQL = `
SELECT reading, type FROM kanji_reading WHERE kanji_id = $1 ORDER BY type`

const getComponentsSQL = `
SELECT character FROM kanji_component WHERE kanji_id = $1`

// GetByCharacter returns the full record for a single kanji, or
// domain.ErrNotFound when the character is not in the dictionary.
func (r *Repo) GetByCharacter(ctx context.Context, character string) (*domain.KanjiRecord, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		kanjiID int64
		record  domain.KanjiRecord
	)
	err := querier.QueryRow(ctx, getByCharacterSQL, character).Scan(
		&kanjiID,
		&record.Character,
		&record.Grade,
		&record.StrokeCount,
		&record.Frequency,
		&record.JLPTLevel,
		&record.Radical,
	)
	if err != nil {
		return nil, postgres.MapError(err, "kanji", character)
	}

	batch := &pgx.Batch{}
	batch.Queue(getMeaningsSQL, kanjiID)
	batch.Queue(getReadingsSQL, kanjiID)
	batch.Queue(getComponentsSQL, kanjiID)

	results := querier.SendBatch(ctx, batch)
	defer results.Close()

	if record.Meanings, err = scanStrings(results.Query()); err != nil {
		return nil, fmt.Errorf("kanji %q meanings: %w", character, err)
	}
	if err = scanReadings(results, &record); err != nil {
		return nil, fmt.Errorf("kanji %q readings: %w", character, err)
	}
	if record.Components, err = scanStrings(results.Query()); err != nil {
		return nil, fmt.Errorf("kanji %q components: %w", character, err)
	}

	return &record, nil
}

func scanStrings(rows pgx.Rows, err error) ([]string, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanReadings(results pgx.BatchResults, record *domain.KanjiRecord) error {
	rows, err := results.Query()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			reading string
			typ     int16
		)
		if err := rows.Scan(&reading, &typ); err != nil {
			return err
		}
		switch domain.ReadingType(typ) {
		case domain.ReadingOn:
			record.OnReadings = append(record.OnReadings, reading)
		case domain.ReadingKun:
			record.KunReadings = append(record.KunReadings, reading)
		case domain.ReadingNanori:
			record.NanoriReadings = append(record.NanoriReadings, reading)
		}
	}
	return rows.Err()
}
