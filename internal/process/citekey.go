package process

import (
	"strings"
	"unicode"

	"github.com/bibkit/doi2bib/internal/bibtex"
	"github.com/bibkit/doi2bib/internal/latex"
)

// citekeyDelim separates the citekey segments.
const citekeyDelim = "_"

// GenerateCitekey sets the record's ID to "Lastname_Year_titleword". The
// last name comes from the first author (von particles title-cased and
// prepended, accents and separators stripped); the title word is the first
// word longer than three letters without an apostrophe, lowercased and
// accent-stripped. Missing segments are omitted.
//
// This runs before author truncation, so the citekey is derived from the
// original author list.
func GenerateCitekey(rec bibtex.Record) bibtex.Record {
	var segments []string

	if authors := bibtex.SplitAuthors(rec["author"]); len(authors) > 0 {
		if name := citekeyName(authors[0]); name != "" {
			segments = append(segments, name)
		}
	}
	if year := rec["year"]; year != "" {
		segments = append(segments, year)
	}
	if word := FirstValidWord(rec["title"]); word != "" {
		segments = append(segments, word)
	}

	rec[bibtex.FieldID] = strings.Join(segments, citekeyDelim)
	return rec
}

// citekeyName builds the name segment from a single author name.
func citekeyName(author string) string {
	name := bibtex.SplitName(author)

	last := latex.RemoveAccents(name.Last)
	last = strings.NewReplacer("-", "", " ", "", "{", "", "}", "").Replace(last)

	if name.Von != "" {
		var von strings.Builder
		for _, part := range strings.Fields(name.Von) {
			von.WriteString(titleCase(part))
		}
		last = von.String() + last
	}
	return last
}

// FirstValidWord returns the first word of the sentence with strictly more
// than three letters and no apostrophe, lowercased and accent-stripped.
// Non-letter characters are dropped from each word before the check.
// Returns "" if no word qualifies.
func FirstValidWord(sentence string) string {
	for _, word := range strings.Fields(sentence) {
		var clean strings.Builder
		for _, r := range word {
			if unicode.IsLetter(r) || r == '\'' {
				clean.WriteRune(r)
			}
		}
		w := clean.String()
		if len([]rune(w)) > 3 && !strings.ContainsRune(w, '\'') {
			return latex.RemoveAccents(strings.ToLower(w))
		}
	}
	return ""
}

// titleCase uppercases the first letter of a word.
func titleCase(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
