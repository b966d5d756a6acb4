// Package kanjidic streams character records out of a kanjidic2 XML dump.
// Pure function: reader in, records out. No database dependencies.
package kanjidic

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
)

// Kanji is one parsed <character> element.
type Kanji struct {
	Literal     string
	Meanings    []string
	OnReadings  []string
	KunReadings []string
	Nanori      []string

	// RadicalNumber is the classical radical number (1..214).
	RadicalNumber *int
	Grade         *int
	StrokeCount   *int
	Frequency     *int
	JLPTLevel     *int
}

// Parse streams <character> elements from r and calls fn for each record.
// An error from fn aborts the parse and is returned as-is.
func Parse(r io.Reader, fn func(Kanji) error) error {
	d := xml.NewDecoder(r)
	d.Strict = false

	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("kanjidic: read token: %w", err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "character" {
			continue
		}

		var c xmlCharacter
		if err := d.DecodeElement(&c, &se); err != nil {
			return fmt.Errorf("kanjidic: decode character: %w", err)
		}

		if err := fn(c.toKanji()); err != nil {
			return err
		}
	}
}

type xmlCharacter struct {
	Literal      string       `xml:"literal"`
	RadValues    []xmlRadical `xml:"radical>rad_value"`
	Grade        *int         `xml:"misc>grade"`
	StrokeCounts []int        `xml:"misc>stroke_count"`
	Frequency    *int         `xml:"misc>freq"`
	JLPTLevel    *int         `xml:"misc>jlpt"`
	Readings     []xmlReading `xml:"reading_meaning>rmgroup>reading"`
	Meanings     []xmlMeaning `xml:"reading_meaning>rmgroup>meaning"`
	Nanori       []string     `xml:"reading_meaning>nanori"`
}

type xmlRadical struct {
	Type  string `xml:"rad_type,attr"`
	Value string `xml:",chardata"`
}

type xmlReading struct {
	Type  string `xml:"r_type,attr"`
	Value string `xml:",chardata"`
}

type xmlMeaning struct {
	// Lang is empty for English meanings; other languages carry m_lang.
	Lang  string `xml:"m_lang,attr"`
	Value string `xml:",chardata"`
}

func (c xmlCharacter) toKanji() Kanji {
	k := Kanji{
		Literal:   c.Literal,
		Grade:     c.Grade,
		Frequency: c.Frequency,
		JLPTLevel: c.JLPTLevel,
		Nanori:    c.Nanori,
	}

	// A character can carry multiple stroke counts; the first one is
	// the accepted count, the rest are common miscounts.
	if len(c.StrokeCounts) > 0 {
		sc := c.StrokeCounts[0]
		k.StrokeCount = &sc
	}

	for _, rv := range c.RadValues {
		if rv.Type != "classical" {
			continue
		}
		if n, err := strconv.Atoi(rv.Value); err == nil {
			num := n
			k.RadicalNumber = &num
		}
	}

	for _, m := range c.Meanings {
		if m.Lang == "" {
			k.Meanings = append(k.Meanings, m.Value)
		}
	}

	for _, r := range c.Readings {
		switch r.Type {
		case "ja_on":
			k.OnReadings = append(k.OnReadings, r.Value)
		case "ja_kun":
			k.KunReadings = append(k.KunReadings, r.Value)
		}
	}

	return k
}
