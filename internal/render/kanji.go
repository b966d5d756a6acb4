package render

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/vbalak/kanjibot/internal/domain"
)

// readingPlaceholder stands in for an empty reading list so the
// three-line reading shape is always present.
const readingPlaceholder = "-"

// RenderKanji formats one kanji lookup as a markdown block. A miss
// renders a "couldn't find" heading with reference links; no image
// hosting call is made for misses.
func (r *Renderer) RenderKanji(ctx context.Context, character string, mode Mode) (string, error) {
	record, err := r.kanji.GetByCharacter(ctx, character)
	if errors.Is(err, domain.ErrNotFound) {
		return "##Couldn't find data for kanji '" + character + "'\n\n" + kanjiSearchLinks(character), nil
	}
	if err != nil {
		return "", err
	}

	header := r.kanjiHeader(ctx, record.Character, mode)

	lines := []string{
		"**Meaning:** " + strings.Join(record.Meanings, ", "),
		"**Onyomi:** " + readingLine(record.OnReadings),
		"**Kunyomi:** " + readingLine(record.KunReadings),
		"**Nanori:** " + readingLine(record.NanoriReadings),
	}

	footer := r.kanjiFooter(ctx, record)

	if mode == Compact {
		block := append([]string{header}, lines...)
		if footer != "" {
			block = append(block, footer)
		}
		return strings.Join(block, "  \n"), nil
	}

	// Expanded: heading, meaning, reading block and metadata separated
	// by blank lines; reading lines hard-broken inside their block.
	blocks := []string{
		header,
		lines[0],
		strings.Join(lines[1:], "  \n"),
	}
	if meta := metadataLine(record); meta != "" {
		blocks = append(blocks, meta)
	}
	if footer != "" {
		blocks = append(blocks, footer)
	}
	return strings.Join(blocks, "\n\n"), nil
}

// kanjiHeader renders the character as a link to its hosted preview
// image, falling back to the plain character when hosting fails.
func (r *Renderer) kanjiHeader(ctx context.Context, character string, mode Mode) string {
	head := character
	if u := r.previewURL(ctx, character); u != "" {
		head = "[" + character + "](" + u + ")"
	}
	if mode == Expanded {
		head = "##" + head
	}
	return head + " " + kanjiSearchLinks(character)
}

// kanjiFooter renders the radical/components line with an optional
// stroke-order link. Absent fields drop silently; an empty result means
// the line is omitted entirely.
func (r *Renderer) kanjiFooter(ctx context.Context, record *domain.KanjiRecord) string {
	var parts []string
	if record.Radical != nil {
		parts = append(parts, "**Radical:** "+*record.Radical)
	}
	if len(record.Components) > 0 {
		parts = append(parts, "**Components:** "+strings.Join(record.Components, " "))
	}
	if u := r.strokeOrderURL(ctx, record.Character); u != "" {
		parts = append(parts, "[Stroke Order]("+u+")")
	}
	return strings.Join(parts, " ")
}

func readingLine(readings []string) string {
	if len(readings) == 0 {
		return readingPlaceholder
	}
	return strings.Join(readings, "、")
}

// metadataLine lists the scalar fields present on the record,
// comma-joined; all-absent yields "".
func metadataLine(record *domain.KanjiRecord) string {
	var parts []string
	add := func(label string, v *int) {
		if v != nil {
			parts = append(parts, "**"+label+":** "+strconv.Itoa(*v))
		}
	}
	add("Grade", record.Grade)
	add("Stroke count", record.StrokeCount)
	add("Frequency", record.Frequency)
	add("JLPT", record.JLPTLevel)
	return strings.Join(parts, ", ")
}
