package domain

// KanjiImport is one kanji record as loaded from the source files.
// Unlike KanjiRecord it carries the classical radical number rather
// than the resolved radical character.
type KanjiImport struct {
	Literal        string
	Meanings       []string
	OnReadings     []string
	KunReadings    []string
	NanoriReadings []string
	Components     []string
	RadicalNumber  *int
	Grade          *int
	StrokeCount    *int
	Frequency      *int
	JLPTLevel      *int
}

// WordImport is one dictionary entry as loaded from the source files.
// All wordings are equal here; the alternate/primary split only exists
// at lookup time.
type WordImport struct {
	SequenceNumber int64
	Wordings       []Wording
	Readings       []Reading
	Senses         []Sense
}
