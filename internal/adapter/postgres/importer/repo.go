// Package importer implements the write side of the dictionary: bulk
// inserts used by the seeding pipeline. Each record group (one kanji,
// one word entry) is written inside its own transaction so a bad record
// never poisons the rest of the import.
package importer

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/vbalak/kanjibot/internal/adapter/postgres"
	"github.com/vbalak/kanjibot/internal/domain"
)

// Repo provides bulk dictionary inserts backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	tx   *postgres.TxManager
}

// New creates a new importer repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool, tx: postgres.NewTxManager(pool)}
}

const insertRadicalSQL = `
INSERT INTO kanji_radical (radical) VALUES ($1)`

const insertKanjiSQL = `
INSERT INTO kanji (character, radical_id, grade, stroke_count, frequency, jlpt_level)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING kanji_id`

const insertKanjiMeaningSQL = `
INSERT INTO kanji_meaning (kanji_id, meaning) VALUES ($1, $2)`

const insertKanjiReadingSQL = `
INSERT INTO kanji_reading (kanji_id, reading, type) VALUES ($1, $2, $3)`

const insertKanjiComponentSQL = `
INSERT INTO kanji_component (kanji_id, character) VALUES ($1, $2)`

const insertWordEntrySQL = `
INSERT INTO word_entry (sequence_number) VALUES ($1)
RETURNING word_entry_id`

const insertWordingSQL = `
INSERT INTO word_entry_wording (word_entry_id, text) VALUES ($1, $2)
RETURNING wew_id`

const insertWordingInfoSQL = `
INSERT INTO wew_info (wew_id, text) VALUES ($1, $2)`

const insertReadingSQL = `
INSERT INTO word_entry_reading (word_entry_id, reading) VALUES ($1, $2)
RETURNING wer_id`

const insertReadingInfoSQL = `
INSERT INTO wer_info (wer_id, text) VALUES ($1, $2)`

const insertSenseSQL = `
INSERT INTO word_entry_meaning (word_entry_id) VALUES ($1)
RETURNING wem_id`

const insertSensePosSQL = `
INSERT INTO wem_part_of_speech (wem_id, text) VALUES ($1, $2)`

const insertSenseFieldSQL = `
INSERT INTO wem_field (wem_id, field) VALUES ($1, $2)`

const insertSenseGlossSQL = `
INSERT INTO wem_gloss (wem_id, text) VALUES ($1, $2)`

const insertSenseMiscSQL = `
INSERT INTO wem_misc (wem_id, text) VALUES ($1, $2)`

// InsertRadicals writes the classical radicals in the given order.
// Insertion order matters: the generated radical_id must equal the
// classical radical number, which is what InsertKanji stores.
func (r *Repo) InsertRadicals(ctx context.Context, radicals []string) (int, error) {
	err := r.tx.RunInTx(ctx, func(ctx context.Context) error {
		querier := postgres.QuerierFromCtx(ctx, r.pool)

		batch := &pgx.Batch{}
		for _, radical := range radicals {
			batch.Queue(insertRadicalSQL, radical)
		}

		return execBatch(ctx, querier, batch, len(radicals))
	})
	if err != nil {
		return 0, fmt.Errorf("insert radicals: %w", err)
	}

	return len(radicals), nil
}

// InsertKanji writes one kanji record with its meanings, readings, and
// components in a single transaction.
func (r *Repo) InsertKanji(ctx context.Context, k domain.KanjiImport) error {
	err := r.tx.RunInTx(ctx, func(ctx context.Context) error {
		querier := postgres.QuerierFromCtx(ctx, r.pool)

		var kanjiID int64
		err := querier.QueryRow(ctx, insertKanjiSQL,
			k.Literal,
			k.RadicalNumber,
			k.Grade,
			k.StrokeCount,
			k.Frequency,
			k.JLPTLevel,
		).Scan(&kanjiID)
		if err != nil {
			return postgres.MapError(err, "kanji", k.Literal)
		}

		batch := &pgx.Batch{}
		for _, m := range k.Meanings {
			batch.Queue(insertKanjiMeaningSQL, kanjiID, m)
		}
		for _, reading := range k.OnReadings {
			batch.Queue(insertKanjiReadingSQL, kanjiID, reading, int16(domain.ReadingOn))
		}
		for _, reading := range k.KunReadings {
			batch.Queue(insertKanjiReadingSQL, kanjiID, reading, int16(domain.ReadingKun))
		}
		for _, reading := range k.NanoriReadings {
			batch.Queue(insertKanjiReadingSQL, kanjiID, reading, int16(domain.ReadingNanori))
		}
		for _, c := range k.Components {
			batch.Queue(insertKanjiComponentSQL, kanjiID, c)
		}

		return execBatch(ctx, querier, batch, batch.Len())
	})
	if err != nil {
		return fmt.Errorf("insert kanji %q: %w", k.Literal, err)
	}

	return nil
}

// InsertWord writes one dictionary entry with all its wordings,
// readings, and senses in a single transaction.
func (r *Repo) InsertWord(ctx context.Context, w domain.WordImport) error {
	err := r.tx.RunInTx(ctx, func(ctx context.Context) error {
		querier := postgres.QuerierFromCtx(ctx, r.pool)

		var entryID int64
		if err := querier.QueryRow(ctx, insertWordEntrySQL, w.SequenceNumber).Scan(&entryID); err != nil {
			return postgres.MapError(err, "word entry", fmt.Sprint(w.SequenceNumber))
		}

		for _, wording := range w.Wordings {
			if err := insertWithInfo(ctx, querier, insertWordingSQL, insertWordingInfoSQL, entryID, wording.Text, wording.Info); err != nil {
				return fmt.Errorf("wording %q: %w", wording.Text, err)
			}
		}

		for _, reading := range w.Readings {
			if err := insertWithInfo(ctx, querier, insertReadingSQL, insertReadingInfoSQL, entryID, reading.Text, reading.Info); err != nil {
				return fmt.Errorf("reading %q: %w", reading.Text, err)
			}
		}

		for _, sense := range w.Senses {
			if err := insertSense(ctx, querier, entryID, sense); err != nil {
				return fmt.Errorf("sense: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("insert word %d: %w", w.SequenceNumber, err)
	}

	return nil
}

// insertWithInfo inserts one wording or reading row and its info tags.
func insertWithInfo(ctx context.Context, querier postgres.Querier, parentSQL, infoSQL string, entryID int64, text string, info []string) error {
	var parentID int64
	if err := querier.QueryRow(ctx, parentSQL, entryID, text).Scan(&parentID); err != nil {
		return err
	}

	if len(info) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, tag := range info {
		batch.Queue(infoSQL, parentID, tag)
	}

	return execBatch(ctx, querier, batch, len(info))
}

func insertSense(ctx context.Context, querier postgres.Querier, entryID int64, sense domain.Sense) error {
	var senseID int64
	if err := querier.QueryRow(ctx, insertSenseSQL, entryID).Scan(&senseID); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for _, pos := range sense.PartsOfSpeech {
		batch.Queue(insertSensePosSQL, senseID, pos)
	}
	for _, field := range sense.Fields {
		batch.Queue(insertSenseFieldSQL, senseID, field)
	}
	for _, gloss := range sense.Glosses {
		batch.Queue(insertSenseGlossSQL, senseID, gloss)
	}
	for _, misc := range sense.Misc {
		batch.Queue(insertSenseMiscSQL, senseID, misc)
	}

	if batch.Len() == 0 {
		return nil
	}

	return execBatch(ctx, querier, batch, batch.Len())
}

func execBatch(ctx context.Context, querier postgres.Querier, batch *pgx.Batch, n int) error {
	results := querier.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < n; i++ {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}

	return results.Close()
}
