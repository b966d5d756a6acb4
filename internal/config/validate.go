package config

import (
	"fmt"
	"strings"
)

// maxPreviewFonts is how many typefaces fit on one preview image.
const maxPreviewFonts = 4

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
//
// Reddit credentials are intentionally not required here: the import mode
// (--init-db) runs without them. ValidateBot enforces them for bot mode.
func (c *Config) Validate() error {
	if c.Reddit.PollInterval <= 0 {
		return fmt.Errorf("reddit.poll_interval must be > 0 (got %v)", c.Reddit.PollInterval)
	}

	if c.Reddit.Account == "" {
		c.Reddit.Account = c.Reddit.Username
	}

	fonts, err := ParseFontPaths(c.Data.FontsRaw)
	if err != nil {
		return fmt.Errorf("data.fonts: %w", err)
	}
	c.Data.FontPaths = fonts

	return nil
}

// ValidateBot checks the settings that only bot mode needs.
func (c *Config) ValidateBot() error {
	if c.Reddit.ClientID == "" || c.Reddit.ClientSecret == "" {
		return fmt.Errorf("reddit.client_id and reddit.client_secret are required")
	}
	if c.Reddit.Username == "" || c.Reddit.Password == "" {
		return fmt.Errorf("reddit.username and reddit.password are required")
	}
	return nil
}

// ParseFontPaths parses a comma-separated list of font file paths.
// An empty string returns a nil slice (previews disabled).
func ParseFontPaths(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	paths := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		paths = append(paths, p)
	}

	if len(paths) > maxPreviewFonts {
		return nil, fmt.Errorf("at most %d fonts are supported (got %d)", maxPreviewFonts, len(paths))
	}

	return paths, nil
}
