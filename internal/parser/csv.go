package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

type csvParser struct {
	ext   string
	comma rune
}

func (p csvParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), p.ext)
}

// Parse reads header-row delimited text. Empty lines are skipped by the
// underlying reader; ragged rows are tolerated.
func (p csvParser) Parse(content []byte) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true
	r.Comma = p.comma

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &Table{}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	var rows [][]string
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, rec)
	}
	return newTable(header, rows), nil
}
