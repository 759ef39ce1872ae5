package process

import (
	"net/url"
	"strings"

	"github.com/bibkit/doi2bib/internal/bibtex"
	"github.com/bibkit/doi2bib/internal/latex"
)

// textFields are the free-text fields checked for mangled ampersands.
var textFields = []string{
	"title", "booktitle", "journal", "publisher", "series",
	"abstract", "note", "address", "organization", "school",
	"institution", "howpublished",
}

// ampersandFixer repairs the broken encodings Crossref produces for "&"
// in journal names like A&A.
var ampersandFixer = strings.NewReplacer(
	`{\&}amp$\mathsemicolon$`, `\&`,
	`&amp;`, `\&`,
)

// FixAmpersands repairs known mangled ampersand encodings in free-text
// fields.
func FixAmpersands(rec bibtex.Record) bibtex.Record {
	for _, field := range textFields {
		if v, ok := rec[field]; ok {
			rec[field] = ampersandFixer.Replace(v)
		}
	}
	return rec
}

// FixPageDashes repairs the mis-decoded UTF-8 en-dash ("â€“") in the pages
// field.
func FixPageDashes(rec bibtex.Record) bibtex.Record {
	if v, ok := rec["pages"]; ok {
		rec["pages"] = strings.ReplaceAll(v, "â€“", "--")
	}
	return rec
}

// ConvertLatexChars converts LaTeX escape sequences to Unicode in the
// author and title fields. The journal field is handled separately by the
// abbreviation table.
func ConvertLatexChars(rec bibtex.Record) bibtex.Record {
	if v, ok := rec["author"]; ok {
		rec["author"] = latex.ToUnicode(v)
	}
	if v, ok := rec["title"]; ok {
		rec["title"] = latex.ToUnicode(v)
	}
	return rec
}

// AbbreviateJournal replaces the journal name with its canonical
// abbreviation when the name appears in the lookup table. Entries in
// extra extend and override the built-in table.
func AbbreviateJournal(rec bibtex.Record, extra map[string]string) bibtex.Record {
	journal, ok := rec["journal"]
	if !ok {
		return rec
	}
	if abbrev, ok := extra[journal]; ok {
		rec["journal"] = abbrev
		return rec
	}
	if abbrev, ok := journalAbbreviations[journal]; ok {
		rec["journal"] = abbrev
	}
	return rec
}

// TruncateAuthors truncates the author list to at most limit authors,
// appending "and others" when the list was cut. A non-positive limit
// disables truncation.
func TruncateAuthors(rec bibtex.Record, limit int) bibtex.Record {
	field, ok := rec["author"]
	if !ok || limit <= 0 {
		return rec
	}

	authors := bibtex.SplitAuthors(field)
	if len(authors) <= limit {
		return rec
	}

	rec["author"] = bibtex.JoinAuthors(authors[:limit]) + " and others"
	return rec
}

// FormatAuthorNames reformats each author to the "{von Last}, First"
// BibTeX convention.
func FormatAuthorNames(rec bibtex.Record) bibtex.Record {
	field, ok := rec["author"]
	if !ok {
		return rec
	}

	authors := bibtex.SplitAuthors(field)
	for i, author := range authors {
		name := bibtex.SplitName(author)
		last := stripBraces(name.Last)
		if name.Von != "" {
			last = name.Von + " " + last
		}
		authors[i] = "{" + last + "}, " + name.First
	}

	joined := bibtex.JoinAuthors(authors)
	joined = strings.ReplaceAll(joined, "and {others}, ", "and others")
	rec["author"] = strings.TrimSuffix(joined, ", ")
	return rec
}

// months maps the recognized month names to their numbers. Only the
// lowercase abbreviated and full English names are mapped; anything else
// (numeric months, capitalized names, other locales) passes through
// unchanged.
var months = map[string]string{
	"jan": "1", "january": "1",
	"feb": "2", "february": "2",
	"mar": "3", "march": "3",
	"apr": "4", "april": "4",
	"may": "5",
	"jun": "6", "june": "6",
	"jul": "7", "july": "7",
	"aug": "8", "august": "8",
	"sep": "9", "september": "9",
	"oct": "10", "october": "10",
	"nov": "11", "november": "11",
	"dec": "12", "december": "12",
}

// NormalizeMonth converts a month name to its numeric string.
func NormalizeMonth(rec bibtex.Record) bibtex.Record {
	month, ok := rec["month"]
	if !ok {
		return rec
	}
	if n, ok := months[month]; ok {
		rec["month"] = n
	}
	return rec
}

// RemoveFields deletes fields per configuration: the "all" list applies to
// every entry, then the list for the record's entry type.
func RemoveFields(rec bibtex.Record, removeFields map[string][]string) bibtex.Record {
	for _, field := range removeFields["all"] {
		delete(rec, field)
	}
	for _, field := range removeFields[rec.EntryType()] {
		delete(rec, field)
	}
	return rec
}

// RemoveRedundantURL removes the url field when it is just the DOI's URL
// rendering.
func RemoveRedundantURL(rec bibtex.Record) bibtex.Record {
	if rec.Has("url") && rec.Has("doi") && rec["url"] == DOIToURL(rec["doi"]) {
		delete(rec, "url")
	}
	return rec
}

// DOIToURL renders a DOI as its canonical doi.org URL, percent-encoding
// the DOI the way Crossref's BibTeX export does.
func DOIToURL(doi string) string {
	return "https://doi.org/" + url.PathEscape(doi)
}

// stripBraces removes one level of surrounding braces, keeping repeated
// applications of FormatAuthorNames idempotent.
func stripBraces(s string) string {
	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		return s[1 : len(s)-1]
	}
	return s
}
