// Package tokenizer splits a line of mixed-script text into kanji and
// word tokens. Per-segment classification is driven by a small mode
// machine: the default automatic mode routes a segment to per-kanji
// lookup when the word dictionary does not know it (or it is a single
// character), while the !kanji and !word directives force a route for
// the rest of the line.
package tokenizer

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vbalak/kanjibot/internal/domain"
	"github.com/vbalak/kanjibot/internal/jptext"
)

// MaxKanjiTokens caps the number of distinct kanji looked up per line.
const MaxKanjiTokens = 8

// WordOracle answers cheap existence probes against the word store.
type WordOracle interface {
	WordExists(ctx context.Context, text string) (bool, error)
}

type mode int

const (
	modeAuto mode = iota
	modeForceKanji
	modeForceWord
)

// Parse extracts kanji and word tokens from one line of text.
//
// Segments are runs of text between whitespace, ASCII commas and
// ideographic commas. Non-Japanese segments are either mode directives
// (!kanji, !word, !words, matched case-sensitively, registering no
// token themselves) or silently discarded. An oracle failure routes the
// segment to per-kanji lookup rather than aborting the line.
func Parse(ctx context.Context, line string, oracle WordOracle) domain.Tokens {
	segments := splitSegments(line)

	var tokens domain.Tokens
	seen := make(map[string]struct{})
	m := modeAuto

	for _, seg := range segments {
		if !jptext.ContainsJapanese(seg) {
			switch seg {
			case "!kanji":
				m = modeForceKanji
			case "!word", "!words":
				m = modeForceWord
			}
			continue
		}

		if m == modeForceKanji || (m == modeAuto && (utf8.RuneCountInString(seg) == 1 || !isKnownWord(ctx, oracle, seg))) {
			for _, r := range jptext.ExtractKanji(seg) {
				ch := string(r)
				if _, ok := seen[ch]; ok {
					continue
				}
				if len(tokens.Kanji) >= MaxKanjiTokens {
					break
				}
				seen[ch] = struct{}{}
				tokens.Kanji = append(tokens.Kanji, ch)
			}
		} else {
			tokens.Words = append(tokens.Words, seg)
		}
	}

	return tokens
}

// isKnownWord treats oracle errors as a miss so that a degraded store
// still produces per-kanji output instead of none.
func isKnownWord(ctx context.Context, oracle WordOracle, text string) bool {
	exists, err := oracle.WordExists(ctx, text)
	if err != nil {
		return false
	}
	return exists
}

// splitSegments breaks the line on runs of whitespace, ASCII commas and
// ideographic commas.
func splitSegments(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == '、'
	})
}
