package latex

import "strings"

// german applies the German transliteration conventions before the generic
// accent stripping: Müller becomes Mueller, not Muller.
var german = strings.NewReplacer(
	"Ä", "Ae", "Ö", "Oe", "Ü", "Ue",
	"ä", "ae", "ö", "oe", "ü", "ue",
	"ß", "ss",
)

// translit maps the remaining accented characters to their closest ASCII
// equivalents.
var translit = map[rune]string{
	'á': "a", 'à': "a", 'â': "a", 'ã': "a", 'ā': "a", 'ă': "a", 'ą': "a", 'å': "a",
	'Á': "A", 'À': "A", 'Â': "A", 'Ã': "A", 'Ā': "A", 'Ă': "A", 'Ą': "A", 'Å': "A",
	'é': "e", 'è': "e", 'ê': "e", 'ë': "e", 'ē': "e", 'ė': "e", 'ę': "e", 'ě': "e",
	'É': "E", 'È': "E", 'Ê': "E", 'Ë': "E", 'Ē': "E", 'Ė': "E", 'Ę': "E", 'Ě': "E",
	'í': "i", 'ì': "i", 'î': "i", 'ï': "i", 'ī': "i", 'ı': "i",
	'Í': "I", 'Ì': "I", 'Î': "I", 'Ï': "I", 'Ī': "I",
	'ó': "o", 'ò': "o", 'ô': "o", 'õ': "o", 'ō': "o", 'ő': "o", 'ø': "o", 'œ': "oe",
	'Ó': "O", 'Ò': "O", 'Ô': "O", 'Õ': "O", 'Ō': "O", 'Ő': "O", 'Ø': "O", 'Œ': "Oe",
	'ú': "u", 'ù': "u", 'û': "u", 'ū': "u", 'ů': "u", 'ű': "u",
	'Ú': "U", 'Ù': "U", 'Û': "U", 'Ū': "U", 'Ů': "U", 'Ű': "U",
	'ý': "y", 'ÿ': "y", 'Ý': "Y",
	'ñ': "n", 'ń': "n", 'Ñ': "N", 'Ń': "N",
	'ç': "c", 'ć': "c", 'č': "c", 'Ç': "C", 'Ć': "C", 'Č': "C",
	'ş': "s", 'ś': "s", 'š': "s", 'Ş': "S", 'Ś': "S", 'Š': "S",
	'ž': "z", 'ź': "z", 'ż': "z", 'Ž': "Z", 'Ź': "Z", 'Ż': "Z",
	'ř': "r", 'Ř': "R",
	'ğ': "g", 'Ğ': "G",
	'ţ': "t", 'Ţ': "T",
	'ł': "l", 'Ł': "L",
	'æ': "ae", 'Æ': "Ae",
	'ð': "d", 'Ð': "D",
	'þ': "th", 'Þ': "Th",
}

// RemoveAccents transliterates accented characters to ASCII so the result
// is safe for citekeys. German umlauts follow the ae/oe/ue convention;
// remaining non-ASCII runes are dropped.
func RemoveAccents(s string) string {
	s = german.Replace(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r < 0x80:
			b.WriteRune(r)
		default:
			if ascii, ok := translit[r]; ok {
				b.WriteString(ascii)
			}
		}
	}
	return b.String()
}
