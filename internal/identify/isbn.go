package identify

import "strings"

// IsISBN reports whether the identifier is a valid ISBN-10 or ISBN-13,
// checksum included. Hyphens and spaces between groups are ignored.
func IsISBN(identifier string) bool {
	return IsISBN10(identifier) || IsISBN13(identifier)
}

// IsISBN10 validates an ISBN-10 with its mod-11 checksum. The check digit
// may be 'X' (value 10).
func IsISBN10(identifier string) bool {
	s := canonicalISBN(identifier)
	if len(s) != 10 {
		return false
	}

	sum := 0
	for i, c := range s {
		var v int
		switch {
		case c >= '0' && c <= '9':
			v = int(c - '0')
		case (c == 'X' || c == 'x') && i == 9:
			v = 10
		default:
			return false
		}
		sum += (10 - i) * v
	}
	return sum%11 == 0
}

// IsISBN13 validates an ISBN-13 with its mod-10 checksum. Only the 978 and
// 979 bookland prefixes are accepted.
func IsISBN13(identifier string) bool {
	s := canonicalISBN(identifier)
	if len(s) != 13 {
		return false
	}
	if !strings.HasPrefix(s, "978") && !strings.HasPrefix(s, "979") {
		return false
	}

	sum := 0
	for i, c := range s {
		if c < '0' || c > '9' {
			return false
		}
		v := int(c - '0')
		if i%2 == 1 {
			v *= 3
		}
		sum += v
	}
	return sum%10 == 0
}

// canonicalISBN strips hyphens and spaces.
func canonicalISBN(s string) string {
	s = strings.ReplaceAll(s, "-", "")
	return strings.ReplaceAll(s, " ", "")
}
