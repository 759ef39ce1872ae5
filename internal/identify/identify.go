// Package identify classifies raw bibliographic identifier strings.
package identify

import "regexp"

// Kind tags for the built-in identifier types.
const (
	KindDOI   = "doi"
	KindArxiv = "arxiv"
	KindISBN  = "isbn"
	KindADS   = "ads"
)

// DOI patterns from Crossref's documented grammars, including the legacy
// publisher-specific key formats (Wiley, SICI, ACS, APA).
// See https://www.crossref.org/blog/dois-and-matching-regular-expressions
var doiPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^10.\d{4,9}/[-.;()/:\w]+$`),
	regexp.MustCompile(`^10.1002/\S+$`),
	regexp.MustCompile(`^10.\d{4}/\d+-\d+X?(\d+)\d+<[\d\w]+:[\d\w]*>\d+.\d+.\w+;\d$`),
	regexp.MustCompile(`^10.1021/\w\w\d+$`),
	regexp.MustCompile(`^10.1207/[\w\d]+&\d+_\d+$`),
}

// arXiv ID forms: modern YYMM.NNNNN[vN] and legacy archive/YYMMNNN[vN].
// See https://info.arxiv.org/help/arxiv_identifier.html
var arxivPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{4}\.\d{4,5}(v\d+)?$`),
	regexp.MustCompile(`^[a-z\-]+(\.[A-Z]{2})?/\d{7}(v\d+)?$`),
}

// ADS bibcode grammar: YYYY + 5-char journal code + 4-char volume +
// 1-char qualifier + 4-char page + uppercase author initial.
// See https://ui.adsabs.harvard.edu/help/actions/bibcode
var adsPattern = regexp.MustCompile(`^\d{4}[\w.&]{5}[\w.]{4}\S[\d.]{4}[A-Z]$`)

// IsDOI reports whether the identifier matches any of the DOI patterns.
func IsDOI(identifier string) bool {
	for _, p := range doiPatterns {
		if p.MatchString(identifier) {
			return true
		}
	}
	return false
}

// IsArxivID reports whether the identifier is an arXiv ID in either the
// modern or the legacy form.
func IsArxivID(identifier string) bool {
	for _, p := range arxivPatterns {
		if p.MatchString(identifier) {
			return true
		}
	}
	return false
}

// IsADSBibcode reports whether the identifier is a NASA/ADS bibcode.
func IsADSBibcode(identifier string) bool {
	return adsPattern.MatchString(identifier)
}
