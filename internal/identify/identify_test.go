package identify

import "testing"

func TestIsDOI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		// Modern Crossref DOIs
		{name: "modern doi", input: "10.1038/nature14539", want: true},
		{name: "doi with dots", input: "10.1016/j.physrep.2019.09.001", want: true},
		{name: "journal doi", input: "10.1006/jmbi.1998.2354", want: true},
		{name: "long registrant", input: "10.123456789/abc", want: true},
		// Legacy publisher formats
		{name: "wiley doi", input: "10.1002/(SICI)1097-0258(19980815/30)17:15/16<1661::AID-SIM968>3.0.CO;2-2", want: true},
		{name: "acs doi", input: "10.1021/ja0005835", want: true},
		// Non-DOIs
		{name: "arxiv id", input: "1312.6114", want: false},
		{name: "empty", input: "", want: false},
		{name: "prose", input: "not a doi", want: false},
		{name: "missing suffix", input: "10.1038/", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDOI(tt.input); got != tt.want {
				t.Errorf("IsDOI(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsArxivID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "modern id", input: "1312.6114", want: true},
		{name: "modern id five digits", input: "2101.12345", want: true},
		{name: "modern id with version", input: "1312.6114v2", want: true},
		{name: "legacy id", input: "hep-th/9901001", want: true},
		{name: "legacy id with subclass", input: "math.GT/0309136", want: true},
		{name: "legacy id with version", input: "astro-ph/0601001v1", want: true},
		{name: "doi", input: "10.1038/nature14539", want: false},
		{name: "too few digits", input: "131.6114", want: false},
		{name: "prefixed", input: "arXiv:1312.6114", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsArxivID(tt.input); got != tt.want {
				t.Errorf("IsArxivID(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsADSBibcode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "nature bibcode", input: "2015Natur.521..436L", want: true},
		{name: "apj bibcode", input: "2019ApJ...887L..27G", want: true},
		{name: "arxiv bibcode", input: "2013arXiv1312.6114K", want: true},
		{name: "doi", input: "10.1038/nature14539", want: false},
		{name: "too short", input: "2015Natur", want: false},
		{name: "lowercase initial", input: "2015Natur.521..436l", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsADSBibcode(tt.input); got != tt.want {
				t.Errorf("IsADSBibcode(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsISBN(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "isbn-10", input: "0306406152", want: true},
		{name: "isbn-10 hyphenated", input: "0-306-40615-2", want: true},
		{name: "isbn-10 x check digit", input: "097522980X", want: true},
		{name: "isbn-13", input: "9780262018029", want: true},
		{name: "isbn-13 hyphenated", input: "978-0-262-01802-9", want: true},
		{name: "isbn-10 bad checksum", input: "0306406153", want: false},
		{name: "isbn-13 bad checksum", input: "9780262018020", want: false},
		{name: "isbn-13 bad prefix", input: "1230262018029", want: false},
		{name: "wrong length", input: "12345", want: false},
		{name: "letters", input: "030640615A", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsISBN(tt.input); got != tt.want {
				t.Errorf("IsISBN(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain doi", input: "10.1038/nature14539", want: "10.1038/nature14539"},
		{name: "doi prefix", input: "doi:10.1038/nature14539", want: "10.1038/nature14539"},
		{name: "doi prefix uppercase", input: "DOI:10.1038/nature14539", want: "10.1038/nature14539"},
		{name: "whitespace stripped", input: " 10.1038/nature14539 ", want: "10.1038/nature14539"},
		{name: "internal space stripped", input: "10.1038/nature 14539", want: "10.1038/nature14539"},
		{name: "arxiv prefix", input: "arXiv:1312.6114", want: "1312.6114"},
		{name: "arxiv dot prefix", input: "arXiv.1312.6114", want: "1312.6114"},
		{name: "arxiv abs url", input: "https://arxiv.org/abs/1312.6114", want: "1312.6114"},
		{name: "arxiv abs url no scheme", input: "arxiv.org/abs/1312.6114v2", want: "1312.6114v2"},
		{name: "arxiv doi url", input: "https://doi.org/10.48550/arXiv.1312.6114", want: "1312.6114"},
		{name: "arxiv doi bare", input: "10.48550/arXiv.1312.6114", want: "1312.6114"},
		{name: "bibcode passthrough", input: "2015Natur.521..436L", want: "2015Natur.521..436L"},
		{name: "isbn passthrough", input: "978-0-262-01802-9", want: "978-0-262-01802-9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Preprocess(tt.input); got != tt.want {
				t.Errorf("Preprocess(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
