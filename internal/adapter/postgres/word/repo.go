// Package word implements the word lookup repository using PostgreSQL.
// Words are matched by exact surface text; one match may resolve to
// several distinct dictionary entries, which are returned in store order
// and rendered as separate blocks.
package word

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/vbalak/kanjibot/internal/adapter/postgres"
	"github.com/vbalak/kanjibot/internal/domain"
)

// Repo provides read-only word lookups backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new word repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const wordExistsSQL = `
SELECT EXISTS (SELECT 1 FROM word_entry_wording WHERE text = $1)`

const findEntryIDsSQL = `
SELECT word_entry_id, sequence_number
FROM word_entry
JOIN word_entry_wording USING (word_entry_id)
WHERE text = $1
ORDER BY word_entry_id`

const getWordingsSQL = `
SELECT wew_id, text FROM word_entry_wording
WHERE word_entry_id = $1 ORDER BY wew_id`

const getWordingInfoSQL = `
SELECT i.wew_id, i.text
FROM wew_info i
JOIN word_entry_wording w USING (wew_id)
WHERE w.word_entry_id = $1 ORDER BY i.wew_id`

const getReadingsSQL = `
SELECT wer_id, reading FROM word_entry_reading
WHERE word_entry_id = $1 ORDER BY wer_id`

const getReadingInfoSQL = `
SELECT i.wer_id, i.text
FROM wer_info i
JOIN word_entry_reading r USING (wer_id)
WHERE r.word_entry_id = $1 ORDER BY i.wer_id`

const getSenseIDsSQL = `
SELECT wem_id FROM word_entry_meaning
WHERE word_entry_id = $1 ORDER BY wem_id`

const getSensePosSQL = `
SELECT p.wem_id, p.text
FROM wem_part_of_speech p
JOIN word_entry_meaning m USING (wem_id)
WHERE m.word_entry_id = $1 ORDER BY p.wem_id`

const getSenseFieldsSQL = `
SELECT f.wem_id, f.field
FROM wem_field f
JOIN word_entry_meaning m USING (wem_id)
WHERE m.word_entry_id = $1 ORDER BY f.wem_id`

const getSenseGlossesSQL = `
SELECT g.wem_id, g.text
FROM wem_gloss g
JOIN word_entry_meaning m USING (wem_id)
WHERE m.word_entry_id = $1 ORDER BY g.wem_id`

const getSenseMiscSQL = `
SELECT x.wem_id, x.text
FROM wem_misc x
JOIN word_entry_meaning m USING (wem_id)
WHERE m.word_entry_id = $1 ORDER BY x.wem_id`

// WordExists is the tokenizer's existence probe. It hits only the text
// index on word_entry_wording and never decodes entry data.
func (r *Repo) WordExists(ctx context.Context, text string) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	if err := querier.QueryRow(ctx, wordExistsSQL, text).Scan(&exists); err != nil {
		return false, postgres.MapError(err, "word", text)
	}
	return exists, nil
}

// GetByText returns every dictionary entry whose written form matches
// text exactly, each with its full nested data. Returns
// domain.ErrNotFound when nothing matches.
func (r *Repo) GetByText(ctx context.Context, text string) ([]domain.WordEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, findEntryIDsSQL, text)
	if err != nil {
		return nil, postgres.MapError(err, "word", text)
	}

	type entryHead struct {
		id  int64
		seq int64
	}
	var heads []entryHead
	for rows.Next() {
		var h entryHead
		if err := rows.Scan(&h.id, &h.seq); err != nil {
			rows.Close()
			return nil, postgres.MapError(err, "word", text)
		}
		heads = append(heads, h)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "word", text)
	}
	if len(heads) == 0 {
		return nil, fmt.Errorf("word %q: %w", text, domain.ErrNotFound)
	}

	entries := make([]domain.WordEntry, 0, len(heads))
	for _, h := range heads {
		entry, err := r.fetchEntry(ctx, querier, h.id, h.seq, text)
		if err != nil {
			return nil, fmt.Errorf("word %q: %w", text, err)
		}
		entries = append(entries, *entry)
	}

	return entries, nil
}

// fetchEntry loads one entry's nested rows in a single batch round trip.
func (r *Repo) fetchEntry(ctx context.Context, querier postgres.Querier, entryID, seq int64, matched string) (*domain.WordEntry, error) {
	batch := &pgx.Batch{}
	batch.Queue(getWordingsSQL, entryID)
	batch.Queue(getWordingInfoSQL, entryID)
	batch.Queue(getReadingsSQL, entryID)
	batch.Queue(getReadingInfoSQL, entryID)
	batch.Queue(getSenseIDsSQL, entryID)
	batch.Queue(getSensePosSQL, entryID)
	batch.Queue(getSenseFieldsSQL, entryID)
	batch.Queue(getSenseGlossesSQL, entryID)
	batch.Queue(getSenseMiscSQL, entryID)

	results := querier.SendBatch(ctx, batch)
	defer results.Close()

	wordings, err := scanIDTexts(results.Query())
	if err != nil {
		return nil, fmt.Errorf("wordings: %w", err)
	}
	wordingInfo, err := scanGrouped(results.Query())
	if err != nil {
		return nil, fmt.Errorf("wording info: %w", err)
	}
	readings, err := scanIDTexts(results.Query())
	if err != nil {
		return nil, fmt.Errorf("readings: %w", err)
	}
	readingInfo, err := scanGrouped(results.Query())
	if err != nil {
		return nil, fmt.Errorf("reading info: %w", err)
	}
	senseIDs, err := scanIDs(results.Query())
	if err != nil {
		return nil, fmt.Errorf("senses: %w", err)
	}
	pos, err := scanGrouped(results.Query())
	if err != nil {
		return nil, fmt.Errorf("parts of speech: %w", err)
	}
	fields, err := scanGrouped(results.Query())
	if err != nil {
		return nil, fmt.Errorf("fields: %w", err)
	}
	glosses, err := scanGrouped(results.Query())
	if err != nil {
		return nil, fmt.Errorf("glosses: %w", err)
	}
	misc, err := scanGrouped(results.Query())
	if err != nil {
		return nil, fmt.Errorf("misc: %w", err)
	}

	entry := &domain.WordEntry{
		ID:             entryID,
		SequenceNumber: seq,
		PrimaryText:    matched,
	}

	for _, w := range wordings {
		if w.text == matched {
			continue
		}
		entry.AlternateWordings = append(entry.AlternateWordings, domain.Wording{
			Text: w.text,
			Info: wordingInfo[w.id],
		})
	}

	for _, rd := range readings {
		entry.Readings = append(entry.Readings, domain.Reading{
			Text: rd.text,
			Info: readingInfo[rd.id],
		})
	}

	for _, senseID := range senseIDs {
		entry.Senses = append(entry.Senses, domain.Sense{
			PartsOfSpeech: pos[senseID],
			Fields:        fields[senseID],
			Glosses:       glosses[senseID],
			Misc:          misc[senseID],
		})
	}

	return entry, nil
}

type idText struct {
	id   int64
	text string
}

func scanIDTexts(rows pgx.Rows, err error) ([]idText, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []idText
	for rows.Next() {
		var it idText
		if err := rows.Scan(&it.id, &it.text); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func scanIDs(rows pgx.Rows, err error) ([]int64, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// scanGrouped collects (parent_id, text) rows into a parent-keyed map,
// preserving row order within each parent.
func scanGrouped(rows pgx.Rows, err error) (map[int64][]string, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64][]string)
	for rows.Next() {
		var (
			id   int64
			text string
		)
		if err := rows.Scan(&id, &text); err != nil {
			return nil, err
		}
		out[id] = append(out[id], text)
	}
	return out, rows.Err()
}
