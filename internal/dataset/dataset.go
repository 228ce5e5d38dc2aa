// Package dataset loads delimited datasets from disk or over HTTP and exposes
// them as immutable sequences of raw records.
package dataset

import (
	"github.com/google/uuid"

	"github.com/KaramelBytes/statboard/internal/parser"
)

// namespace scopes content fingerprints so they never collide with other
// name-based UUIDs.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/KaramelBytes/statboard/dataset"))

// Raw is one input row keyed by header field name. Values are untyped text.
type Raw map[string]string

// Get returns the value for field, or "" when absent.
func (r Raw) Get(field string) string { return r[field] }

// Dataset is a loaded table. It is never mutated after construction; callers
// re-load to refresh.
type Dataset struct {
	Name   string    `json:"name"`
	ID     uuid.UUID `json:"id"`
	Header []string  `json:"header"`
	rows   []Raw
}

// New builds a Dataset from a parsed table. The ID is derived from content so
// identical input always yields the same ID.
func New(name string, content []byte, tbl *parser.Table) *Dataset {
	d := &Dataset{
		Name: name,
		ID:   uuid.NewSHA1(namespace, content),
	}
	if tbl == nil {
		return d
	}
	d.Header = append([]string(nil), tbl.Header...)
	d.rows = make([]Raw, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		r := make(Raw, len(tbl.Header))
		for i, field := range tbl.Header {
			r[field] = row[i]
		}
		d.rows = append(d.rows, r)
	}
	return d
}

// FromRecords builds a Dataset directly from raw records, mostly for tests
// and callers that already hold parsed rows.
func FromRecords(name string, header []string, rows []Raw) *Dataset {
	d := &Dataset{
		Name:   name,
		ID:     uuid.NewSHA1(namespace, []byte(name)),
		Header: append([]string(nil), header...),
		rows:   make([]Raw, len(rows)),
	}
	for i, r := range rows {
		cp := make(Raw, len(r))
		for k, v := range r {
			cp[k] = v
		}
		d.rows[i] = cp
	}
	return d
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.rows)
}

// Rows returns the records in file order. The slice is a copy; the records
// themselves must be treated as read-only.
func (d *Dataset) Rows() []Raw {
	if d == nil {
		return nil
	}
	return append([]Raw(nil), d.rows...)
}

// HasField reports whether the header contains field.
func (d *Dataset) HasField(field string) bool {
	for _, h := range d.Header {
		if h == field {
			return true
		}
	}
	return false
}
