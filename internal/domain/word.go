package domain

// WordEntry is one dictionary entry matched by exact surface text.
// Several distinct entries may share the same spelling; each one is
// rendered as its own block.
type WordEntry struct {
	ID             int64
	SequenceNumber int64
	PrimaryText    string // the surface form matched by the query

	// AlternateWordings are other spellings of the same entry,
	// excluding the matched text.
	AlternateWordings []Wording
	Readings          []Reading
	Senses            []Sense
}

// Wording is a written form of a word entry with orthography info tags.
type Wording struct {
	Text string
	Info []string
}

// Reading is a phonetic reading of a word entry. Info tags are kept in
// the model but not surfaced in rendered output.
type Reading struct {
	Text string
	Info []string
}

// Sense is one semantically distinct meaning unit of a word entry.
// A sense with no glosses contributes nothing to rendered output.
type Sense struct {
	PartsOfSpeech []string
	Fields        []string
	Misc          []string
	Glosses       []string
}

// HasGlosses reports whether the sense carries any gloss text.
func (s Sense) HasGlosses() bool {
	return len(s.Glosses) > 0
}
