package kanjidic

import (
	"errors"
	"strings"
	"testing"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<kanjidic2>
<header>
<file_version>4</file_version>
</header>
<character>
<literal>犬</literal>
<radical>
<rad_value rad_type="classical">94</rad_value>
<rad_value rad_type="nelson_c">94</rad_value>
</radical>
<misc>
<grade>1</grade>
<stroke_count>4</stroke_count>
<freq>1326</freq>
<jlpt>4</jlpt>
</misc>
<reading_meaning>
<rmgroup>
<reading r_type="pinyin">quan3</reading>
<reading r_type="ja_on">ケン</reading>
<reading r_type="ja_kun">いぬ</reading>
<reading r_type="ja_kun">いぬ-</reading>
<meaning>dog</meaning>
<meaning m_lang="fr">chien</meaning>
<meaning m_lang="es">perro</meaning>
</rmgroup>
<nanori>たけし</nanori>
</reading_meaning>
</character>
<character>
<literal>々</literal>
<radical>
</radical>
<misc>
<stroke_count>3</stroke_count>
<stroke_count>2</stroke_count>
</misc>
</character>
</kanjidic2>
`

func TestParse(t *testing.T) {
	t.Parallel()

	var got []Kanji
	err := Parse(strings.NewReader(sampleXML), func(k Kanji) error {
		got = append(got, k)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}

	dog := got[0]
	if dog.Literal != "犬" {
		t.Errorf("Literal = %q", dog.Literal)
	}
	if len(dog.Meanings) != 1 || dog.Meanings[0] != "dog" {
		t.Errorf("Meanings = %v, want only the English meaning", dog.Meanings)
	}
	if len(dog.OnReadings) != 1 || dog.OnReadings[0] != "ケン" {
		t.Errorf("OnReadings = %v", dog.OnReadings)
	}
	if len(dog.KunReadings) != 2 || dog.KunReadings[0] != "いぬ" {
		t.Errorf("KunReadings = %v", dog.KunReadings)
	}
	if len(dog.Nanori) != 1 || dog.Nanori[0] != "たけし" {
		t.Errorf("Nanori = %v", dog.Nanori)
	}
	if dog.RadicalNumber == nil || *dog.RadicalNumber != 94 {
		t.Errorf("RadicalNumber = %v, want 94", dog.RadicalNumber)
	}
	if dog.Grade == nil || *dog.Grade != 1 {
		t.Errorf("Grade = %v, want 1", dog.Grade)
	}
	if dog.StrokeCount == nil || *dog.StrokeCount != 4 {
		t.Errorf("StrokeCount = %v, want 4", dog.StrokeCount)
	}
	if dog.Frequency == nil || *dog.Frequency != 1326 {
		t.Errorf("Frequency = %v, want 1326", dog.Frequency)
	}
	if dog.JLPTLevel == nil || *dog.JLPTLevel != 4 {
		t.Errorf("JLPTLevel = %v, want 4", dog.JLPTLevel)
	}
}

func TestParse_MinimalCharacter(t *testing.T) {
	t.Parallel()

	var got []Kanji
	err := Parse(strings.NewReader(sampleXML), func(k Kanji) error {
		got = append(got, k)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	min := got[1]
	if min.Literal != "々" {
		t.Errorf("Literal = %q", min.Literal)
	}
	if min.RadicalNumber != nil {
		t.Errorf("RadicalNumber = %v, want nil", min.RadicalNumber)
	}
	if min.Grade != nil || min.Frequency != nil || min.JLPTLevel != nil {
		t.Error("optional misc fields should be nil")
	}
	if min.StrokeCount == nil || *min.StrokeCount != 3 {
		t.Errorf("StrokeCount = %v, want first listed count 3", min.StrokeCount)
	}
	if len(min.Meanings) != 0 || len(min.OnReadings) != 0 {
		t.Error("meanings and readings should be empty")
	}
}

func TestParse_CallbackErrorAborts(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	calls := 0
	err := Parse(strings.NewReader(sampleXML), func(Kanji) error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want callback error", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
