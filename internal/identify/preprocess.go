package identify

import (
	"regexp"
	"strings"
)

// nonPrintable matches everything outside the printable ASCII range
// (0x21..0x7E), including whitespace and smart punctuation picked up from
// copy-paste.
var nonPrintable = regexp.MustCompile(`[^\x21-\x7E]`)

// arXiv extraction patterns, tried in order; the first match wins.
var (
	arxivURLPattern       = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?arxiv\.org/abs/(.+)`)
	arxivDOIURLPattern    = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?doi\.org/10\.48550/arxiv[.:](.+)`)
	arxivDOIPrefixPattern = regexp.MustCompile(`(?i)^10\.48550/arxiv[.:](.+)`)
	arxivPrefixPattern    = regexp.MustCompile(`(?i)^arxiv[.:](.+)`)
)

// Preprocess cleans a raw identifier before classification: it strips
// non-printable and non-ASCII characters, removes a leading "doi:" prefix,
// and extracts a bare arXiv ID from URL and DOI-proxy forms.
func Preprocess(identifier string) string {
	identifier = nonPrintable.ReplaceAllString(identifier, "")

	lower := strings.ToLower(identifier)
	switch {
	case strings.HasPrefix(lower, "doi:"):
		return identifier[4:]
	case strings.Contains(lower, "arxiv"):
		return extractArxivID(identifier)
	}
	return identifier
}

// extractArxivID pulls the bare arXiv ID out of the supported forms:
//
//   - https://arxiv.org/abs/XXXX.XXXXX (with or without scheme and www)
//   - https://doi.org/10.48550/arXiv.XXXX.XXXXX
//   - 10.48550/arXiv.XXXX.XXXXX
//   - arXiv:XXXX.XXXXX or arXiv.XXXX.XXXXX
//
// Both the modern (YYMM.NNNNN) and legacy (archive/YYMMNNN) ID forms pass
// through the capture unchanged. Unmatched input is returned as-is.
func extractArxivID(identifier string) string {
	for _, p := range []*regexp.Regexp{
		arxivURLPattern,
		arxivDOIURLPattern,
		arxivDOIPrefixPattern,
		arxivPrefixPattern,
	} {
		if m := p.FindStringSubmatch(identifier); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return identifier
}
