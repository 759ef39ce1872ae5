package bibtex

import (
	"fmt"
	"strings"
	"unicode"
)

// Parse parses the first BibTeX entry in the given string into a Record.
// Field names are lowercased; the entry type and citekey are stored under
// the structural ENTRYTYPE and ID fields. Values may be brace-delimited,
// quote-delimited, or bare (numbers and month macros).
func Parse(s string) (Record, error) {
	p := &parser{input: s}
	return p.parseEntry()
}

// ParseAll parses every entry in the given string, in order.
func ParseAll(s string) ([]Record, error) {
	var records []Record
	p := &parser{input: s}
	for {
		p.skipToEntry()
		if p.pos >= len(p.input) {
			return records, nil
		}
		rec, err := p.parseEntry()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
}

type parser struct {
	input string
	pos   int
}

func (p *parser) parseEntry() (Record, error) {
	p.skipToEntry()
	if p.pos >= len(p.input) {
		return nil, fmt.Errorf("no BibTeX entry found")
	}
	p.pos++ // consume '@'

	entryType := strings.ToLower(p.readWhile(func(r byte) bool { return r != '{' && r != '(' }))
	entryType = strings.TrimSpace(entryType)
	if entryType == "" {
		return nil, fmt.Errorf("missing entry type")
	}
	if p.pos >= len(p.input) {
		return nil, fmt.Errorf("unterminated entry %q", entryType)
	}
	p.pos++ // consume '{'

	key := strings.TrimSpace(p.readWhile(func(r byte) bool { return r != ',' && r != '}' }))
	rec := Record{
		FieldEntryType: entryType,
		FieldID:        key,
	}

	for {
		p.skipSpace()
		if p.pos >= len(p.input) {
			return nil, fmt.Errorf("unterminated entry %q", key)
		}
		switch p.input[p.pos] {
		case ',':
			p.pos++
			continue
		case '}':
			p.pos++
			return rec, nil
		}

		name := strings.ToLower(strings.TrimSpace(p.readWhile(func(r byte) bool { return r != '=' && r != '}' })))
		if p.pos >= len(p.input) || p.input[p.pos] != '=' {
			return nil, fmt.Errorf("entry %q: field %q has no value", key, name)
		}
		p.pos++ // consume '='

		value, err := p.readValue()
		if err != nil {
			return nil, fmt.Errorf("entry %q: field %q: %w", key, name, err)
		}
		if name != "" {
			rec[name] = value
		}
	}
}

// skipToEntry advances to the next '@'.
func (p *parser) skipToEntry() {
	for p.pos < len(p.input) && p.input[p.pos] != '@' {
		p.pos++
	}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}
}

func (p *parser) readWhile(cond func(byte) bool) string {
	start := p.pos
	for p.pos < len(p.input) && cond(p.input[p.pos]) {
		p.pos++
	}
	return p.input[start:p.pos]
}

// readValue reads a field value: a balanced brace group, a quoted string,
// or a bare token terminated by ',' or '}'.
func (p *parser) readValue() (string, error) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return "", fmt.Errorf("unexpected end of input")
	}

	switch p.input[p.pos] {
	case '{':
		depth := 0
		start := p.pos + 1
		for ; p.pos < len(p.input); p.pos++ {
			switch p.input[p.pos] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					value := p.input[start:p.pos]
					p.pos++
					return normalizeSpace(value), nil
				}
			}
		}
		return "", fmt.Errorf("unbalanced braces")
	case '"':
		start := p.pos + 1
		for p.pos = start; p.pos < len(p.input); p.pos++ {
			if p.input[p.pos] == '"' {
				value := p.input[start:p.pos]
				p.pos++
				return normalizeSpace(value), nil
			}
		}
		return "", fmt.Errorf("unterminated quoted value")
	default:
		value := p.readWhile(func(r byte) bool { return r != ',' && r != '}' && r != '\n' })
		return strings.TrimSpace(value), nil
	}
}

// normalizeSpace collapses runs of whitespace (including newlines from
// wrapped values) into single spaces.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
