package process

import (
	"reflect"
	"testing"

	"github.com/bibkit/doi2bib/internal/bibtex"
	"github.com/bibkit/doi2bib/internal/config"
	"github.com/bibkit/doi2bib/internal/identify"
)

func TestGenerateCitekey(t *testing.T) {
	tests := []struct {
		name string
		rec  bibtex.Record
		want string
	}{
		{
			name: "full segments",
			rec: bibtex.Record{
				"author": "Diederik P Kingma and Max Welling",
				"year":   "2013",
				"title":  "Auto-Encoding Variational Bayes",
			},
			want: "Kingma_2013_autoencoding",
		},
		{
			name: "accented last name transliterated",
			rec: bibtex.Record{
				"author": "Hans Müller",
				"year":   "2020",
				"title":  "Galaxy formation",
			},
			want: "Mueller_2020_galaxy",
		},
		{
			name: "von particle title-cased",
			rec: bibtex.Record{
				"author": "Jan van der Berg",
				"year":   "1999",
				"title":  "Topology notes",
			},
			want: "VanDerBerg_1999_topology",
		},
		{
			name: "hyphenated last name collapsed",
			rec: bibtex.Record{
				"author": "Anna Smith-Jones",
				"year":   "2021",
				"title":  "Deep learning",
			},
			want: "SmithJones_2021_deep",
		},
		{
			name: "short and apostrophe words skipped",
			rec: bibtex.Record{
				"author": "A Author",
				"year":   "2000",
				"title":  "On the sun's big corona structure",
			},
			want: "Author_2000_corona",
		},
		{
			name: "missing author omitted",
			rec: bibtex.Record{
				"year":  "2013",
				"title": "Auto-Encoding Variational Bayes",
			},
			want: "2013_autoencoding",
		},
		{
			name: "missing year omitted",
			rec: bibtex.Record{
				"author": "Max Welling",
				"title":  "Auto-Encoding Variational Bayes",
			},
			want: "Welling_autoencoding",
		},
		{
			name: "no valid title word",
			rec: bibtex.Record{
				"author": "Max Welling",
				"year":   "2013",
				"title":  "On the fly",
			},
			want: "Welling_2013",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateCitekey(tt.rec)
			if got.ID() != tt.want {
				t.Errorf("GenerateCitekey() ID = %q, want %q", got.ID(), tt.want)
			}
		})
	}
}

func TestFirstValidWord(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		want     string
	}{
		{name: "first long word", sentence: "Auto-Encoding Variational Bayes", want: "autoencoding"},
		{name: "skips short words", sentence: "On the way home tonight", want: "home"},
		{name: "skips apostrophes", sentence: "The sun's interesting corona", want: "interesting"},
		{name: "strips punctuation", sentence: "Galaxies: formation and evolution", want: "galaxies"},
		{name: "accents stripped", sentence: "Précision measurements", want: "precision"},
		{name: "nothing qualifies", sentence: "On the fly", want: ""},
		{name: "empty", sentence: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FirstValidWord(tt.sentence); got != tt.want {
				t.Errorf("FirstValidWord(%q) = %q, want %q", tt.sentence, got, tt.want)
			}
		})
	}
}

func TestFormatAuthorNames(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "first last form",
			input: "Diederik P Kingma and Max Welling",
			want:  "{Kingma}, Diederik P and {Welling}, Max",
		},
		{
			name:  "von particle kept with last name",
			input: "Ludwig van Beethoven",
			want:  "{van Beethoven}, Ludwig",
		},
		{
			name:  "already formatted stays stable",
			input: "{Kingma}, Diederik P and {Welling}, Max",
			want:  "{Kingma}, Diederik P and {Welling}, Max",
		},
		{
			name:  "truncation marker preserved",
			input: "Diederik P Kingma and others",
			want:  "{Kingma}, Diederik P and others",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := bibtex.Record{"author": tt.input}
			if got := FormatAuthorNames(rec)["author"]; got != tt.want {
				t.Errorf("FormatAuthorNames(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncateAuthors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		limit int
		want  string
	}{
		{
			name:  "under limit unchanged",
			input: "A One and B Two",
			limit: 3,
			want:  "A One and B Two",
		},
		{
			name:  "over limit truncated",
			input: "A One and B Two and C Three",
			limit: 2,
			want:  "A One and B Two and others",
		},
		{
			name:  "zero limit disables",
			input: "A One and B Two and C Three",
			limit: 0,
			want:  "A One and B Two and C Three",
		},
		{
			name:  "idempotent on truncated list",
			input: "A One and B Two and others",
			limit: 3,
			want:  "A One and B Two and others",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := bibtex.Record{"author": tt.input}
			if got := TruncateAuthors(rec, tt.limit)["author"]; got != tt.want {
				t.Errorf("TruncateAuthors(%q, %d) = %q, want %q", tt.input, tt.limit, got, tt.want)
			}
		})
	}
}

func TestNormalizeMonth(t *testing.T) {
	tests := []struct {
		name  string
		month string
		want  string
	}{
		{name: "abbreviated", month: "jan", want: "1"},
		{name: "full name", month: "december", want: "12"},
		{name: "capitalized passes through", month: "December", want: "December"},
		{name: "numeric passes through", month: "6", want: "6"},
		{name: "unknown passes through", month: "brumaire", want: "brumaire"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := bibtex.Record{"month": tt.month}
			if got := NormalizeMonth(rec)["month"]; got != tt.want {
				t.Errorf("NormalizeMonth(%q) = %q, want %q", tt.month, got, tt.want)
			}
		})
	}
}

func TestFixAmpersands(t *testing.T) {
	rec := bibtex.Record{
		"journal": `Astronomy {\&}amp$\mathsemicolon$ Astrophysics`,
		"title":   "Stars &amp; planets",
		"doi":     "10.1000/a&amp;b", // not a text field, untouched
	}

	got := FixAmpersands(rec)

	if got["journal"] != `Astronomy \& Astrophysics` {
		t.Errorf("journal = %q", got["journal"])
	}
	if got["title"] != `Stars \& planets` {
		t.Errorf("title = %q", got["title"])
	}
	if got["doi"] != "10.1000/a&amp;b" {
		t.Errorf("doi should be untouched, got %q", got["doi"])
	}
}

func TestFixPageDashes(t *testing.T) {
	rec := bibtex.Record{"pages": "100â€“110"}
	if got := FixPageDashes(rec)["pages"]; got != "100--110" {
		t.Errorf("FixPageDashes() = %q, want 100--110", got)
	}
}

func TestAbbreviateJournal(t *testing.T) {
	tests := []struct {
		name    string
		journal string
		extra   map[string]string
		want    string
	}{
		{
			name:    "builtin table",
			journal: `Astronomy \& Astrophysics`,
			want:    `A\&A`,
		},
		{
			name:    "unknown unchanged",
			journal: "Obscure Quarterly",
			want:    "Obscure Quarterly",
		},
		{
			name:    "extra overrides builtin",
			journal: `Astronomy \& Astrophysics`,
			extra:   map[string]string{`Astronomy \& Astrophysics`: "AandA"},
			want:    "AandA",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := bibtex.Record{"journal": tt.journal}
			if got := AbbreviateJournal(rec, tt.extra)["journal"]; got != tt.want {
				t.Errorf("AbbreviateJournal(%q) = %q, want %q", tt.journal, got, tt.want)
			}
		})
	}
}

func TestRemoveFields(t *testing.T) {
	rec := bibtex.Record{
		bibtex.FieldEntryType: "article",
		"abstract":            "text",
		"note":                "keep",
		"eprint":              "1312.6114",
	}

	got := RemoveFields(rec, map[string][]string{
		"all":     {"abstract"},
		"article": {"eprint"},
		"book":    {"note"},
	})

	if got.Has("abstract") {
		t.Error("abstract should be removed by the all list")
	}
	if got.Has("eprint") {
		t.Error("eprint should be removed by the article list")
	}
	if !got.Has("note") {
		t.Error("note should survive; the book list does not apply")
	}
}

func TestRemoveRedundantURL(t *testing.T) {
	tests := []struct {
		name     string
		rec      bibtex.Record
		wantKept bool
	}{
		{
			name: "url matches doi",
			rec: bibtex.Record{
				"doi": "10.1038/nature14539",
				"url": "https://doi.org/10.1038%2Fnature14539",
			},
			wantKept: false,
		},
		{
			name: "distinct url kept",
			rec: bibtex.Record{
				"doi": "10.1038/nature14539",
				"url": "https://example.org/paper.pdf",
			},
			wantKept: true,
		},
		{
			name:     "url without doi kept",
			rec:      bibtex.Record{"url": "https://example.org"},
			wantKept: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemoveRedundantURL(tt.rec)
			if got.Has("url") != tt.wantKept {
				t.Errorf("RemoveRedundantURL() url kept = %v, want %v", got.Has("url"), tt.wantKept)
			}
		})
	}
}

func TestApply(t *testing.T) {
	cfg := config.Default()
	cfg.LimitAuthors = 2

	rec := bibtex.Record{
		bibtex.FieldEntryType: "misc",
		bibtex.FieldID:        "1312.6114",
		"author":              "Diederik P Kingma and Max Welling and Extra Author",
		"title":               "Auto-Encoding Variational Bayes",
		"year":                "2013",
		"month":               "dec",
		"abstract":            "dropped by default config",
		"doi":                 "10.48550/arXiv.1312.6114",
		"url":                 "https://doi.org/10.48550%2FarXiv.1312.6114",
	}

	got := Apply(rec, identify.KindArxiv, cfg)

	if got.EntryType() != "article" {
		t.Errorf("entry type = %q, want article for an arXiv record", got.EntryType())
	}
	// Citekey comes from the untruncated author list.
	if got.ID() != "Kingma_2013_autoencoding" {
		t.Errorf("citekey = %q, want Kingma_2013_autoencoding", got.ID())
	}
	if got["author"] != "{Kingma}, Diederik P and {Welling}, Max and others" {
		t.Errorf("author = %q", got["author"])
	}
	if got["month"] != "12" {
		t.Errorf("month = %q, want 12", got["month"])
	}
	if got.Has("abstract") {
		t.Error("abstract should be removed by the default config")
	}
	if got.Has("url") {
		t.Error("url should be removed as redundant with the doi")
	}
}

func TestApplyIdempotent(t *testing.T) {
	cfg := config.Default()
	cfg.LimitAuthors = 2

	rec := bibtex.Record{
		bibtex.FieldEntryType: "article",
		bibtex.FieldID:        "x",
		"author":              "Hans Müller and Max Welling and Extra Author",
		"title":               "Galaxy formation",
		"year":                "2020",
		"month":               "jan",
		"journal":             "The Astrophysical Journal",
	}

	once := Apply(rec.Clone(), identify.KindDOI, cfg)
	twice := Apply(once.Clone(), identify.KindDOI, cfg)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Apply() is not idempotent:\nonce:  %v\ntwice: %v", once, twice)
	}
}
