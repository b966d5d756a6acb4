package domain

// Tokens is the result of tokenizing one line of input text.
// Kanji holds individual characters to look up one by one (unique,
// insertion-ordered); Words holds whole segments to look up as
// dictionary entries (ordered, duplicates kept).
//
// Tokens are transient: produced per input line and consumed by the
// renderer immediately, never persisted.
type Tokens struct {
	Kanji []string
	Words []string
}

// Empty reports whether the line produced nothing to look up.
func (t Tokens) Empty() bool {
	return len(t.Kanji) == 0 && len(t.Words) == 0
}
