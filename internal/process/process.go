// Package process applies the field normalization transform set to
// resolved BibTeX records. Every transform is a pure Record -> Record
// function; Apply runs them in a fixed order with each step individually
// toggleable through the configuration.
package process

import (
	"github.com/bibkit/doi2bib/internal/bibtex"
	"github.com/bibkit/doi2bib/internal/config"
	"github.com/bibkit/doi2bib/internal/identify"
)

// Apply runs the transform set on a record, in order:
//
//  1. fix mangled ampersand encodings in free-text fields
//  2. fix mis-decoded en-dashes in pages
//  3. LaTeX escapes to Unicode in author/title
//  4. force ENTRYTYPE to article for arXiv preprints
//  5. abbreviate the journal name
//  6. generate the citekey (from the untruncated author list)
//  7. truncate the author list
//  8. reformat author names to "{von Last}, First"
//  9. month name to number
// 10. remove fields per config (global list, then per entry type)
// 11. remove url when redundant with doi
//
// The ordering is load-bearing: the citekey is generated before author
// truncation so it stays stable regardless of display truncation, and
// author formatting runs after truncation so "and others" is preserved.
//
// Running Apply twice on an already-normalized record yields the same
// record.
func Apply(rec bibtex.Record, kind string, cfg *config.Config) bibtex.Record {
	rec = FixAmpersands(rec)
	rec = FixPageDashes(rec)

	if cfg.ConvertLatexChars {
		rec = ConvertLatexChars(rec)
	}
	if cfg.FixArxivEntrytype && kind == identify.KindArxiv {
		rec[bibtex.FieldEntryType] = "article"
	}
	if cfg.AbbreviateJournalNames {
		rec = AbbreviateJournal(rec, cfg.JournalAbbreviations)
	}
	if cfg.GenerateCitekey {
		rec = GenerateCitekey(rec)
	}

	rec = TruncateAuthors(rec, cfg.LimitAuthors)

	if cfg.FormatAuthorNames {
		rec = FormatAuthorNames(rec)
	}
	if cfg.ConvertMonthToNumber {
		rec = NormalizeMonth(rec)
	}
	if len(cfg.RemoveFields) > 0 {
		rec = RemoveFields(rec, cfg.RemoveFields)
	}
	if cfg.RemoveURLIfDOI {
		rec = RemoveRedundantURL(rec)
	}
	return rec
}
