package imaging

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// NewStrokeOrderAssets reads diagrams from the given directory.
func NewStrokeOrderAssets(dir string) *StrokeOrderAssets {
	return &StrokeOrderAssets{dir: dir}
}

// StrokeOrderAssets reads per-character stroke-order diagrams from a
// static asset directory. Most characters have no diagram; that is a
// normal result, not an error.
type StrokeOrderAssets struct {
	dir string
}

// Load returns the PNG bytes for the kanji's stroke-order diagram, or
// (nil, nil) when no asset exists.
func (s *StrokeOrderAssets) Load(kanji string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, kanji+".png"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read stroke order asset for %q: %w", kanji, err)
	}
	return data, nil
}
