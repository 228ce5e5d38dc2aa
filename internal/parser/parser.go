package parser

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Table is a delimited dataset before any typing: the header row and the
// remaining rows as strings. Every row has exactly len(Header) cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Parser defines a tabular format implementation.
type Parser interface {
	CanParse(filename string) bool
	Parse(content []byte) (*Table, error)
}

var registry []Parser

// Register adds a parser implementation to the registry.
func Register(p Parser) {
	registry = append(registry, p)
}

// Parse selects a parser based on filename and parses content with it.
func Parse(filename string, content []byte) (*Table, error) {
	for _, p := range registry {
		if p.CanParse(filename) {
			t, err := p.Parse(content)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", filename, err)
			}
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, filename)
}

// ParseFile reads path from disk and parses it by extension.
func ParseFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return Parse(path, data)
}

// Supported reports whether any registered parser accepts filename.
func Supported(filename string) bool {
	for _, p := range registry {
		if p.CanParse(filename) {
			return true
		}
	}
	return false
}

func init() {
	Register(csvParser{ext: ".csv", comma: ','})
	Register(csvParser{ext: ".tsv", comma: '\t'})
	Register(xlsxParser{})
}

// ErrUnsupported indicates a format is not supported.
var ErrUnsupported = errors.New("unsupported dataset format")

// newTable normalizes a header and raw rows into a Table. Header cells are
// trimmed (a leading UTF-8 BOM is dropped), rows whose cells are all blank
// are skipped, short rows are padded and long rows truncated.
func newTable(header []string, rows [][]string) *Table {
	h := make([]string, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		h[i] = strings.TrimSpace(name)
	}
	t := &Table{Header: h}
	for _, rec := range rows {
		if blankRow(rec) {
			continue
		}
		row := make([]string, len(h))
		copy(row, rec)
		t.Rows = append(t.Rows, row)
	}
	return t
}

func blankRow(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
