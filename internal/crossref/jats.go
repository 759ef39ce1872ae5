package crossref

import (
	"html"
	"regexp"
	"strings"
)

// Crossref encodes abstracts as JATS (Journal Article Tag Suite) XML
// fragments. We only need the readable text back out.
var (
	jatsTitleRe = regexp.MustCompile(`(?s)<jats:title[^>]*>.*?</jats:title>`)
	xmlTagRe    = regexp.MustCompile(`</?[^>]+>`)
	spaceRe     = regexp.MustCompile(`\s+`)
)

// CleanJATS converts a JATS abstract fragment to plain text: section
// titles (usually just "Abstract") are dropped, remaining markup is
// stripped, entities are decoded, and whitespace is collapsed. Text
// without markup passes through unchanged.
func CleanJATS(text string) string {
	if text == "" || !strings.Contains(text, "<") {
		return text
	}

	text = jatsTitleRe.ReplaceAllString(text, "")
	text = xmlTagRe.ReplaceAllString(text, " ")
	text = html.UnescapeString(text)
	text = spaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
