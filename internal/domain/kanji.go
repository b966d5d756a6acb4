package domain

// KanjiRecord is the full dictionary record for a single kanji character.
// A record either exists in full or the lookup reports ErrNotFound;
// there are no partial records.
type KanjiRecord struct {
	Character      string   // single ideograph, unique across the store
	Meanings       []string // short English glosses, dictionary order
	OnReadings     []string
	KunReadings    []string
	NanoriReadings []string
	Radical        *string // classical radical, single character
	Components     []string
	Grade          *int
	StrokeCount    *int
	Frequency      *int
	JLPTLevel      *int
}

// ReadingType distinguishes the phonetic reading rows of a kanji.
type ReadingType int

const (
	ReadingOn ReadingType = iota
	ReadingKun
	ReadingNanori
)
