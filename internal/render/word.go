package render

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/vbalak/kanjibot/internal/domain"
)

// RenderWord formats a word lookup as one markdown block per matching
// dictionary entry, joined with the section divider. A miss renders a
// "couldn't find" heading with reference links.
func (r *Renderer) RenderWord(ctx context.Context, text string) (string, error) {
	entries, err := r.words.GetByText(ctx, text)
	if errors.Is(err, domain.ErrNotFound) {
		return "##Couldn't find data for word '" + text + "'\n\n" + wordSearchLinks(text), nil
	}
	if err != nil {
		return "", err
	}

	blocks := make([]string, 0, len(entries))
	for _, entry := range entries {
		blocks = append(blocks, renderWordEntry(entry))
	}
	return strings.Join(blocks, SectionDivider), nil
}

func renderWordEntry(entry domain.WordEntry) string {
	var b strings.Builder
	b.WriteString("##" + entry.PrimaryText + " " + wordSearchLinks(entry.PrimaryText) + "\n\n")

	var info []string
	if len(entry.AlternateWordings) > 0 {
		alts := make([]string, 0, len(entry.AlternateWordings))
		for _, w := range entry.AlternateWordings {
			alts = append(alts, w.Text)
		}
		info = append(info, "**Alternate form:** "+strings.Join(alts, "、"))
	}

	// Readings equal to the matched surface add nothing; info tags are
	// kept in the data model but not surfaced.
	var readings []string
	for _, rd := range entry.Readings {
		if rd.Text != entry.PrimaryText {
			readings = append(readings, rd.Text)
		}
	}
	if len(readings) > 0 {
		info = append(info, "**Reading:** "+strings.Join(readings, "、"))
	}
	if len(info) > 0 {
		b.WriteString(strings.Join(info, "  \n") + "\n\n")
	}

	// Only glossed senses consume a numbering slot.
	count := 1
	for _, sense := range entry.Senses {
		if !sense.HasGlosses() {
			continue
		}
		b.WriteString(strconv.Itoa(count) + ". " + strings.Join(sense.Glosses, ", "))
		count++
		if len(sense.Misc) > 0 {
			b.WriteString("  \n_(" + strings.Join(sense.Misc, ", ") + ")_")
		}
		b.WriteString("\n")
	}

	return b.String()
}
