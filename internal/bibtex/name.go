package bibtex

import (
	"strings"
	"unicode"
)

// Name is a single author name split into its BibTeX parts.
type Name struct {
	First string // given name(s), space-joined
	Von   string // lowercase particle(s): von, van der, de la, ...
	Last  string // family name(s)
}

// SplitAuthors splits the value of an `author` field into individual
// author names on the " and " separator.
func SplitAuthors(field string) []string {
	if strings.TrimSpace(field) == "" {
		return nil
	}
	parts := strings.Split(field, " and ")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// JoinAuthors joins author names back into an `author` field value.
func JoinAuthors(names []string) string {
	return strings.Join(names, " and ")
}

// SplitName splits a single author name into first, von, and last parts,
// following the BibTeX conventions for both the "First von Last" and the
// "von Last, First" (and "Last, Jr, First") forms.
func SplitName(name string) Name {
	name = strings.TrimSpace(name)
	if name == "" {
		return Name{}
	}

	// Comma form: "von Last, First" or "von Last, Jr, First".
	if strings.Contains(name, ",") {
		parts := strings.Split(name, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		von, last := splitVonLast(tokenize(parts[0]))
		n := Name{Von: von, Last: last}
		switch len(parts) {
		case 2:
			n.First = parts[1]
		default:
			// "Last, Jr, First": keep the suffix with the last name.
			n.Last = strings.TrimSpace(n.Last + " " + parts[1])
			n.First = parts[len(parts)-1]
		}
		return n
	}

	// "First von Last" form: first names are the leading tokens up to the
	// first lowercase token; the von part extends to the last lowercase
	// token; everything after is the last name.
	tokens := tokenize(name)
	if len(tokens) == 1 {
		return Name{Last: tokens[0]}
	}

	firstVon := -1
	lastVon := -1
	for i, tok := range tokens[:len(tokens)-1] {
		if startsLower(tok) {
			if firstVon < 0 {
				firstVon = i
			}
			lastVon = i
		}
	}

	if firstVon < 0 {
		return Name{
			First: strings.Join(tokens[:len(tokens)-1], " "),
			Last:  tokens[len(tokens)-1],
		}
	}

	return Name{
		First: strings.Join(tokens[:firstVon], " "),
		Von:   strings.Join(tokens[firstVon:lastVon+1], " "),
		Last:  strings.Join(tokens[lastVon+1:], " "),
	}
}

// tokenize splits a name on spaces, keeping brace groups like "{de Groot}"
// together as single tokens.
func tokenize(s string) []string {
	var tokens []string
	var current strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '{':
			depth++
			current.WriteRune(r)
		case r == '}':
			depth--
			current.WriteRune(r)
		case unicode.IsSpace(r) && depth == 0:
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

// startsLower reports whether the token's first letter is lowercase.
// Brace-protected tokens like "{de Groot}" count as uppercase.
func startsLower(tok string) bool {
	for _, r := range tok {
		if unicode.IsLetter(r) {
			return unicode.IsLower(r)
		}
		if r == '{' {
			return false
		}
	}
	return false
}

// splitVonLast splits the tokens before the comma into von and last parts:
// the von part is the maximal leading run of lowercase tokens.
func splitVonLast(tokens []string) (von, last string) {
	i := 0
	for i < len(tokens)-1 && startsLower(tokens[i]) {
		i++
	}
	return strings.Join(tokens[:i], " "), strings.Join(tokens[i:], " ")
}
