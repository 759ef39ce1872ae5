// Package bibtex defines the BibTeX record type and its textual form.
package bibtex

// Structural field names. Unlike regular fields, these describe the entry
// itself rather than the work it cites.
const (
	FieldEntryType = "ENTRYTYPE"
	FieldID        = "ID"
)

// Record is a single BibTeX entry: a mapping from field name to value,
// plus the structural fields ENTRYTYPE and ID. Field values are plain
// strings; transforms mutate records in place.
type Record map[string]string

// EntryType returns the entry type (article, book, ...).
func (r Record) EntryType() string {
	return r[FieldEntryType]
}

// ID returns the citekey.
func (r Record) ID() string {
	return r[FieldID]
}

// Has reports whether the record has a non-empty value for the field.
func (r Record) Has(field string) bool {
	return r[field] != ""
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
