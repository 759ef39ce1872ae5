// Package pdf extracts bibliographic identifiers from PDF files, so a
// downloaded paper can be resolved without typing its DOI.
package pdf

import (
	"regexp"
	"strings"

	"github.com/bibkit/doi2bib/internal/identify"
	"github.com/ledongthuc/pdf"
)

// maxSearchPages bounds the identifier scan; the DOI or arXiv ID is
// nearly always on the first page.
const maxSearchPages = 3

var (
	doiPattern   = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)
	arxivPattern = regexp.MustCompile(`arXiv:(\d{4}\.\d{4,5}(v\d+)?)`)
)

// ExtractIdentifier scans the first pages of a PDF for a DOI or an arXiv
// ID, in that order of preference. It returns "" when neither is found;
// that is not an error.
func ExtractIdentifier(filePath string) (string, error) {
	text, err := firstPagesText(filePath, maxSearchPages)
	if err != nil {
		return "", err
	}

	if doi := findDOI(text); doi != "" {
		return doi, nil
	}
	if m := arxivPattern.FindStringSubmatch(text); m != nil {
		return m[1], nil
	}
	return "", nil
}

// ExtractTitle returns a best-effort title: the first substantial line of
// the first page that does not look like a journal header.
func ExtractTitle(filePath string) (string, error) {
	text, err := firstPagesText(filePath, 1)
	if err != nil {
		return "", err
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 20 && !isHeaderLine(line) {
			return line, nil
		}
	}
	return "", nil
}

func firstPagesText(filePath string, maxPages int) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if r.NumPage() < maxPages {
		maxPages = r.NumPage()
	}

	var builder strings.Builder
	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

// findDOI returns the first match that still classifies as a DOI after
// trailing punctuation is stripped.
func findDOI(text string) string {
	for _, match := range doiPattern.FindAllString(text, -1) {
		match = strings.TrimRight(match, ".,;:)")
		if identify.IsDOI(match) {
			return match
		}
	}
	return ""
}

// isHeaderLine reports whether a line is likely a journal header or
// footer rather than the title.
func isHeaderLine(line string) bool {
	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "journal"):
		return true
	case strings.Contains(lower, "volume") && strings.Contains(lower, "issue"):
		return true
	case strings.Contains(lower, "copyright"):
		return true
	case strings.Contains(lower, "article") && strings.Contains(lower, "published"):
		return true
	}
	return false
}
