// Package kradfile parses krad decomposition files mapping a kanji to
// its visual components. Input is expected to be UTF-8 (the distributed
// EUC-JP files converted beforehand).
package kradfile

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Parse reads lines of the form "kanji : comp comp ..." into a map.
// Comment lines (#) and blank lines are skipped.
func Parse(r io.Reader) (map[string][]string, error) {
	components := make(map[string][]string)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 3 || parts[1] != ":" {
			continue
		}

		components[parts[0]] = parts[2:]
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("kradfile: scan: %w", err)
	}

	return components, nil
}

// Merge overlays the second map onto the first. Entries present in both
// keep the overlay's decomposition (kradfile2 supersedes kradfile).
func Merge(base, overlay map[string][]string) map[string][]string {
	merged := make(map[string][]string, len(base)+len(overlay))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overlay {
		merged[k] = v
	}
	return merged
}
