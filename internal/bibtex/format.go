package bibtex

import (
	"fmt"
	"sort"
	"strings"
)

// Format renders a record as a BibTeX entry string. Fields are emitted in
// alphabetical order so that identical records always produce identical
// output. The result round-trips through Parse.
func Format(r Record) string {
	entryType := r.EntryType()
	if entryType == "" {
		entryType = "misc"
	}

	fields := make([]string, 0, len(r))
	for name := range r {
		if name == FieldEntryType || name == FieldID {
			continue
		}
		fields = append(fields, name)
	}
	sort.Strings(fields)

	var b strings.Builder
	fmt.Fprintf(&b, "@%s{%s,\n", entryType, r.ID())
	for _, name := range fields {
		fmt.Fprintf(&b, "    %s = {%s},\n", name, r[name])
	}
	b.WriteString("}\n")
	return b.String()
}
