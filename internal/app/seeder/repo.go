// Package seeder orchestrates the dictionary import pipeline: radicals,
// then kanji, then words, each streamed from its source file into the
// database.
package seeder

import (
	"context"

	"github.com/vbalak/kanjibot/internal/domain"
)

// ImportRepo defines the write contract consumed by the pipeline.
// All methods use only domain types. Implemented by importer.Repo.
type ImportRepo interface {
	// InsertRadicals writes the classical radicals in file order; the
	// generated ids must line up with classical radical numbers.
	InsertRadicals(ctx context.Context, radicals []string) (int, error)
	InsertKanji(ctx context.Context, k domain.KanjiImport) error
	InsertWord(ctx context.Context, w domain.WordImport) error
}
