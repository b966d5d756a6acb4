package render

import (
	"net/url"
	"strings"
)

// Reference links point at external dictionaries and search engines.
// They are rendered superscript (^^) so the reply footer stays small,
// and are emitted for hits and misses alike.

type refSite struct {
	label  string
	prefix string
	suffix string // appended to the lookup text before escaping
}

var kanjiSites = []refSite{
	{"jisho", "http://jisho.org/search/", "#kanji"},
	{"Wiktionary", "http://en.wiktionary.org/wiki/", "#Japanese"},
	{"Tatoeba", "https://tatoeba.org/eng/sentences/search?from=jpn&to=eng&query=", ""},
	{"alc", "http://eow.alc.co.jp/search?q=", ""},
	{"Glosbe", "https://glosbe.com/ja/en/", ""},
}

var wordSites = []refSite{
	{"jisho", "http://jisho.org/search/", ""},
	{"Wiktionary", "http://en.wiktionary.org/wiki/", "#Japanese"},
	{"Tatoeba", "https://tatoeba.org/eng/sentences/search?from=jpn&to=eng&query=", ""},
	{"alc", "http://eow.alc.co.jp/search?q=", ""},
	{"Glosbe", "https://glosbe.com/ja/en/", ""},
	{"OJAD", "http://www.gavo.t.u-tokyo.ac.jp/ojad/search/index/word:", ""},
}

// kanjiSearchLinks builds the reference link row for a kanji lookup.
func kanjiSearchLinks(kanji string) string {
	return searchLinks(kanji, kanjiSites)
}

// wordSearchLinks builds the reference link row for a word lookup.
func wordSearchLinks(word string) string {
	return searchLinks(word, wordSites)
}

func searchLinks(text string, sites []refSite) string {
	parts := make([]string, 0, len(sites))
	for _, site := range sites {
		parts = append(parts,
			`^^[\[`+site.label+`\]](`+site.prefix+url.QueryEscape(text+site.suffix)+`)`)
	}
	return strings.Join(parts, " ")
}
