// Package jmdict streams word entries out of a JMdict_e XML dump.
// Pure function: reader in, entries out. No database dependencies.
package jmdict

import (
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
)

// Wording is one kanji spelling of an entry with its info tags.
type Wording struct {
	Text string
	Info []string
}

// Reading is one kana reading of an entry with its info tags.
type Reading struct {
	Text string
	Info []string
}

// Sense is one numbered meaning of an entry.
type Sense struct {
	PartsOfSpeech []string
	Fields        []string
	Misc          []string
	Glosses       []string
}

// Entry is one parsed <entry> element.
type Entry struct {
	SequenceNumber int64
	Wordings       []Wording
	Readings       []Reading
	Senses         []Sense
}

// entityPattern matches internal-subset entity declarations. JMdict
// abbreviates part-of-speech, field, and misc tags as DTD entities and
// the decoder needs them expanded to their full text.
var entityPattern = regexp.MustCompile(`<!ENTITY\s+(\S+)\s+"([^"]*)"`)

// Parse streams <entry> elements from r and calls fn for each entry.
// An error from fn aborts the parse and is returned as-is.
func Parse(r io.Reader, fn func(Entry) error) error {
	d := xml.NewDecoder(r)
	d.Strict = false
	d.Entity = make(map[string]string)

	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("jmdict: read token: %w", err)
		}

		switch t := tok.(type) {
		case xml.Directive:
			mergeEntities(d.Entity, t)
		case xml.StartElement:
			if t.Name.Local != "entry" {
				continue
			}
			var e xmlEntry
			if err := d.DecodeElement(&e, &t); err != nil {
				return fmt.Errorf("jmdict: decode entry: %w", err)
			}
			if err := fn(e.toEntry()); err != nil {
				return err
			}
		}
	}
}

func mergeEntities(dst map[string]string, directive xml.Directive) {
	for _, m := range entityPattern.FindAllStringSubmatch(string(directive), -1) {
		dst[m[1]] = m[2]
	}
}

type xmlEntry struct {
	Seq    int64      `xml:"ent_seq"`
	KEle   []xmlKEle  `xml:"k_ele"`
	REle   []xmlREle  `xml:"r_ele"`
	Senses []xmlSense `xml:"sense"`
}

type xmlKEle struct {
	Keb  string   `xml:"keb"`
	Info []string `xml:"ke_inf"`
}

type xmlREle struct {
	Reb  string   `xml:"reb"`
	Info []string `xml:"re_inf"`
}

type xmlSense struct {
	POS     []string `xml:"pos"`
	Fields  []string `xml:"field"`
	Misc    []string `xml:"misc"`
	Glosses []string `xml:"gloss"`
}

func (e xmlEntry) toEntry() Entry {
	entry := Entry{SequenceNumber: e.Seq}

	for _, k := range e.KEle {
		entry.Wordings = append(entry.Wordings, Wording{Text: k.Keb, Info: k.Info})
	}
	for _, r := range e.REle {
		entry.Readings = append(entry.Readings, Reading{Text: r.Reb, Info: r.Info})
	}
	for _, s := range e.Senses {
		entry.Senses = append(entry.Senses, Sense{
			PartsOfSpeech: s.POS,
			Fields:        s.Fields,
			Misc:          s.Misc,
			Glosses:       s.Glosses,
		})
	}

	return entry
}
