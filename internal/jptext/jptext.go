// Package jptext provides character-level script predicates for Japanese
// text. All functions are pure and total over the rune space.
package jptext

// kanjiRanges are the CJK unified ideograph blocks, including the
// extension planes.
var kanjiRanges = [...]struct{ lo, hi rune }{
	{0x4E00, 0x9FFF},   // CJK Unified Ideographs
	{0x3400, 0x4DBF},   // Extension A
	{0x20000, 0x2A6DF}, // Extension B
	{0x2A700, 0x2B73F}, // Extension C
	{0x2B740, 0x2B81F}, // Extension D
	{0x2B820, 0x2CEAF}, // Extension E
}

// IsKanji reports whether r is a CJK ideograph.
func IsKanji(r rune) bool {
	for _, rg := range kanjiRanges {
		if r >= rg.lo && r <= rg.hi {
			return true
		}
	}
	return false
}

// IsKana reports whether r is a hiragana or katakana syllable.
func IsKana(r rune) bool {
	return (r >= 0x3040 && r <= 0x309F) || (r >= 0x30A0 && r <= 0x30FF)
}

// ContainsJapanese reports whether s contains at least one kanji or kana
// character.
func ContainsJapanese(s string) bool {
	for _, r := range s {
		if IsKanji(r) || IsKana(r) {
			return true
		}
	}
	return false
}

// ExtractKanji returns every kanji in s, in original order, duplicates
// included. It is a filter, not a set.
func ExtractKanji(s string) []rune {
	var kanji []rune
	for _, r := range s {
		if IsKanji(r) {
			kanji = append(kanji, r)
		}
	}
	return kanji
}
