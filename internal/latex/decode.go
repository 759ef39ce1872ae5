// Package latex converts LaTeX escape sequences to Unicode and provides
// ASCII transliteration for citekey generation.
package latex

import "strings"

// accents maps accent command characters to the decoded rune per base
// letter. These cover the diacritics that appear in bibliographic metadata
// from Crossref, ADS, and arXiv exports.
var accents = map[byte]map[string]string{
	'\'': {"a": "á", "e": "é", "i": "í", "o": "ó", "u": "ú", "y": "ý", "c": "ć", "n": "ń", "s": "ś", "z": "ź", "A": "Á", "E": "É", "I": "Í", "O": "Ó", "U": "Ú", "Y": "Ý", "C": "Ć", "N": "Ń", "S": "Ś", "Z": "Ź"},
	'`':  {"a": "à", "e": "è", "i": "ì", "o": "ò", "u": "ù", "A": "À", "E": "È", "I": "Ì", "O": "Ò", "U": "Ù"},
	'"':  {"a": "ä", "e": "ë", "i": "ï", "o": "ö", "u": "ü", "y": "ÿ", "A": "Ä", "E": "Ë", "I": "Ï", "O": "Ö", "U": "Ü"},
	'^':  {"a": "â", "e": "ê", "i": "î", "o": "ô", "u": "û", "A": "Â", "E": "Ê", "I": "Î", "O": "Ô", "U": "Û"},
	'~':  {"a": "ã", "n": "ñ", "o": "õ", "A": "Ã", "N": "Ñ", "O": "Õ"},
	'=':  {"a": "ā", "e": "ē", "i": "ī", "o": "ō", "u": "ū", "A": "Ā", "E": "Ē", "I": "Ī", "O": "Ō", "U": "Ū"},
	'.':  {"z": "ż", "Z": "Ż", "e": "ė", "E": "Ė"},
	'c':  {"c": "ç", "C": "Ç", "s": "ş", "S": "Ş", "t": "ţ", "T": "Ţ"},
	'v':  {"c": "č", "C": "Č", "s": "š", "S": "Š", "z": "ž", "Z": "Ž", "r": "ř", "R": "Ř", "e": "ě", "E": "Ě"},
	'u':  {"g": "ğ", "G": "Ğ", "a": "ă", "A": "Ă"},
	'H':  {"o": "ő", "O": "Ő", "u": "ű", "U": "Ű"},
	'k':  {"a": "ą", "A": "Ą", "e": "ę", "E": "Ę"},
	'r':  {"a": "å", "A": "Å", "u": "ů", "U": "Ů"},
}

// symbols maps bare letter commands to their Unicode equivalents.
var symbols = map[string]string{
	"ss": "ß", "o": "ø", "O": "Ø", "ae": "æ", "AE": "Æ",
	"aa": "å", "AA": "Å", "oe": "œ", "OE": "Œ", "l": "ł", "L": "Ł",
	"i": "ı", "dh": "ð", "DH": "Ð", "th": "þ", "TH": "Þ",
}

// replacer is built once from the accent and symbol tables, covering the
// common spellings of each sequence: {\"a}, \"{a}, \"a, {\ss}, \ss{}.
var replacer = strings.NewReplacer(buildPairs()...)

func buildPairs() []string {
	var pairs []string
	for cmd, byBase := range accents {
		letterCmd := cmd >= 'a' && cmd <= 'z' || cmd >= 'A' && cmd <= 'Z'
		for base, out := range byBase {
			seq := `\` + string(cmd)
			if letterCmd {
				// \c{c} needs a brace or space before the base letter.
				pairs = append(pairs,
					"{"+seq+"{"+base+"}}", out,
					seq+"{"+base+"}", out,
					"{"+seq+" "+base+"}", out,
					seq+" "+base, out,
				)
			} else {
				pairs = append(pairs,
					"{"+seq+"{"+base+"}}", out,
					"{"+seq+base+"}", out,
					seq+"{"+base+"}", out,
					seq+base, out,
				)
			}
		}
	}
	for cmd, out := range symbols {
		seq := `\` + cmd
		pairs = append(pairs,
			"{"+seq+"}", out,
			seq+"{}", out,
			seq+" ", out,
		)
	}
	return pairs
}

// ToUnicode converts LaTeX accent and symbol escape sequences in the given
// text to Unicode. Math mode segments (between $ signs) pass through
// verbatim.
func ToUnicode(text string) string {
	if !strings.ContainsRune(text, '\\') {
		return text
	}
	if !strings.ContainsRune(text, '$') {
		return replacer.Replace(text)
	}

	segments := strings.Split(text, "$")
	for i := 0; i < len(segments); i += 2 {
		segments[i] = replacer.Replace(segments[i])
	}
	return strings.Join(segments, "$")
}
