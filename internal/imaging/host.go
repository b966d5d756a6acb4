package imaging

import (
	"context"
	"log/slog"
)

type previewRenderer interface {
	Render(kanji string) ([]byte, error)
}

type strokeAssets interface {
	Load(kanji string) ([]byte, error)
}

type uploader interface {
	Upload(ctx context.Context, image []byte, title string) (string, error)
}

// Host combines local image production with external hosting, exposing
// the URL capability the renderer consumes. Local failures (rendering,
// missing assets) degrade to an empty URL here; upload failures are
// returned to the caller, which degrades them itself.
type Host struct {
	log     *slog.Logger
	preview previewRenderer
	strokes strokeAssets
	upload  uploader
}

// NewHost creates a Host.
func NewHost(logger *slog.Logger, preview previewRenderer, strokes strokeAssets, upload uploader) *Host {
	return &Host{
		log:     logger.With("component", "imaging"),
		preview: preview,
		strokes: strokes,
		upload:  upload,
	}
}

// PreviewURL rasterizes the kanji and uploads the result, returning the
// hosted URL or "" when rendering or hosting fails. A nil preview
// renderer (no fonts configured) disables previews without disabling
// stroke-order diagrams.
func (h *Host) PreviewURL(ctx context.Context, kanji string) (string, error) {
	if h.preview == nil {
		return "", nil
	}
	img, err := h.preview.Render(kanji)
	if err != nil {
		h.log.WarnContext(ctx, "preview render failed",
			slog.String("kanji", kanji), slog.String("error", err.Error()))
		return "", nil
	}
	return h.upload.Upload(ctx, img, kanji+" preview")
}

// StrokeOrderURL uploads the kanji's stroke-order diagram if one exists
// on disk; "" means no diagram or hosting failure.
func (h *Host) StrokeOrderURL(ctx context.Context, kanji string) (string, error) {
	data, err := h.strokes.Load(kanji)
	if err != nil {
		h.log.WarnContext(ctx, "stroke order load failed",
			slog.String("kanji", kanji), slog.String("error", err.Error()))
		return "", nil
	}
	if data == nil {
		return "", nil
	}
	return h.upload.Upload(ctx, data, kanji+" stroke order")
}

// Disabled is an image host that never produces links, used when no
// upload credentials are configured.
type Disabled struct{}

func (Disabled) PreviewURL(context.Context, string) (string, error) { return "", nil }

func (Disabled) StrokeOrderURL(context.Context, string) (string, error) { return "", nil }
