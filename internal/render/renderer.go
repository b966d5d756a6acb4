// Package render turns dictionary records into markdown reply blocks.
// Every lookup produces a block: hits are formatted records, misses are
// a "couldn't find" heading with reference links. Image hosting is an
// injected capability; its failures degrade the block, never break it.
package render

import (
	"context"
	"log/slog"

	"github.com/vbalak/kanjibot/internal/domain"
)

// Mode selects the layout of a kanji block.
type Mode int

const (
	// Expanded uses heading markup, blank-line separation and the full
	// metadata line. Meant for single-character replies.
	Expanded Mode = iota
	// Compact packs the block into hard-broken lines without headings,
	// for dense multi-character replies.
	Compact
)

// SectionDivider separates blocks inside one reply.
const SectionDivider = "\n\n---\n\n"

// ImageHost provides externally hosted illustration URLs for a kanji.
// An empty URL means "no image available"; hosting errors are degraded
// to that by the renderer, never surfaced in a reply.
type ImageHost interface {
	PreviewURL(ctx context.Context, kanji string) (string, error)
	StrokeOrderURL(ctx context.Context, kanji string) (string, error)
}

type kanjiStore interface {
	GetByCharacter(ctx context.Context, character string) (*domain.KanjiRecord, error)
}

type wordStore interface {
	GetByText(ctx context.Context, text string) ([]domain.WordEntry, error)
}

// Renderer formats kanji and word lookups as markdown blocks.
type Renderer struct {
	log    *slog.Logger
	kanji  kanjiStore
	words  wordStore
	images ImageHost
}

// New creates a Renderer.
func New(logger *slog.Logger, kanji kanjiStore, words wordStore, images ImageHost) *Renderer {
	return &Renderer{
		log:    logger.With("component", "render"),
		kanji:  kanji,
		words:  words,
		images: images,
	}
}

// previewURL resolves the hosted preview image, degrading to "" on any
// failure so the caller falls back to a plain header.
func (r *Renderer) previewURL(ctx context.Context, kanji string) string {
	u, err := r.images.PreviewURL(ctx, kanji)
	if err != nil {
		r.log.WarnContext(ctx, "preview image unavailable",
			slog.String("kanji", kanji), slog.String("error", err.Error()))
		return ""
	}
	return u
}

// strokeOrderURL resolves the hosted stroke-order image, degrading to ""
// when the asset is missing or hosting fails.
func (r *Renderer) strokeOrderURL(ctx context.Context, kanji string) string {
	u, err := r.images.StrokeOrderURL(ctx, kanji)
	if err != nil {
		r.log.WarnContext(ctx, "stroke order image unavailable",
			slog.String("kanji", kanji), slog.String("error", err.Error()))
		return ""
	}
	return u
}
