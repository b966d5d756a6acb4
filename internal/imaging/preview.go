// Package imaging produces the illustration images for replies: a
// multi-font preview rendering of a kanji and its stroke-order diagram,
// both uploaded to external hosting on demand.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	canvasWidth  = 1000
	canvasHeight = 250
	cellWidth    = 250
	fontSizePt   = 200
	cellMargin   = 25
	maxFonts     = 4
)

// PreviewRenderer rasterizes a kanji side by side in up to four
// reference fonts, so readers can compare print, handwritten and brush
// letterforms.
type PreviewRenderer struct {
	faces []font.Face
}

// NewPreviewRenderer loads the given font files. At least one font is
// required; at most four are used.
func NewPreviewRenderer(fontPaths []string) (*PreviewRenderer, error) {
	if len(fontPaths) == 0 {
		return nil, fmt.Errorf("preview renderer: no fonts configured")
	}
	if len(fontPaths) > maxFonts {
		fontPaths = fontPaths[:maxFonts]
	}

	faces := make([]font.Face, 0, len(fontPaths))
	for _, path := range fontPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read font %s: %w", path, err)
		}
		ft, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse font %s: %w", path, err)
		}
		face, err := opentype.NewFace(ft, &opentype.FaceOptions{
			Size:    fontSizePt,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return nil, fmt.Errorf("build face %s: %w", path, err)
		}
		faces = append(faces, face)
	}

	return &PreviewRenderer{faces: faces}, nil
}

// Render draws the kanji once per font on a white canvas and returns
// the PNG bytes.
func (p *PreviewRenderer) Render(kanji string) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, canvasWidth, canvasHeight))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	for i, face := range p.faces {
		d := &font.Drawer{
			Dst:  img,
			Src:  image.Black,
			Face: face,
			Dot:  fixed.P(cellMargin+i*cellWidth, cellMargin+face.Metrics().Ascent.Ceil()),
		}
		d.DrawString(kanji)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode preview png: %w", err)
	}
	return buf.Bytes(), nil
}
