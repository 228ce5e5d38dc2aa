package analysis

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/KaramelBytes/statboard/internal/dataset"
)

// UnknownCategory replaces a missing or blank category value.
const UnknownCategory = "Unknown"

// Measure names produced by the built-in schemas.
const (
	MeasureHeight = "height_in"
	MeasureWeight = "weight"
	MeasureYear   = "year"
	MeasureIncome = "income"
)

// FieldKind selects how a raw text field becomes a number.
type FieldKind int

const (
	// KindFloat parses a decimal number.
	KindFloat FieldKind = iota
	// KindInt parses an integer (years).
	KindInt
	// KindHeight parses "<feet>-<inches>" into total inches.
	KindHeight
)

func (k FieldKind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindHeight:
		return "height"
	default:
		return fmt.Sprintf("FieldKind(%d)", int(k))
	}
}

// ParseFieldKind maps a name such as "height" to its kind.
func ParseFieldKind(s string) (FieldKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "float", "number", "numeric":
		return KindFloat, nil
	case "int", "integer", "year":
		return KindInt, nil
	case "height", "feet-inches":
		return KindHeight, nil
	default:
		return 0, fmt.Errorf("unknown field kind %q (use float|int|height)", s)
	}
}

// Parse converts raw into a number according to k. ok is false when the value
// is missing, malformed, or not finite.
func (k FieldKind) Parse(raw string) (v float64, ok bool) {
	switch k {
	case KindHeight:
		return ParseHeight(raw)
	case KindInt:
		return ParseInt(raw)
	default:
		return ParseFloat(raw)
	}
}

// ParseHeight converts "F-I" to F*12+I inches. Inches are not range checked:
// "5-13" yields 73.
func ParseHeight(raw string) (float64, bool) {
	parts := strings.Split(strings.TrimSpace(raw), "-")
	if len(parts) != 2 {
		return 0, false
	}
	feet, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, false
	}
	inches, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, false
	}
	return float64(feet*12 + inches), true
}

// ParseFloat parses a finite decimal number.
func ParseFloat(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseInt parses an integer such as a year. Decimal forms ("1990.0") are
// rejected, not truncated.
func ParseInt(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return float64(v), true
}

// Category normalizes a categorical value; blank becomes UnknownCategory.
func Category(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return UnknownCategory
	}
	return s
}

// Field binds a source column to an output measure.
type Field struct {
	Column  string
	Measure string
	Kind    FieldKind
}

// Schema describes how to turn a raw row into a Record.
type Schema struct {
	CategoryColumn string
	Fields         []Field
}

// PlayersSchema reads the basketball player dataset.
var PlayersSchema = Schema{
	CategoryColumn: "position",
	Fields: []Field{
		{Column: "height", Measure: MeasureHeight, Kind: KindHeight},
		{Column: "weight", Measure: MeasureWeight, Kind: KindFloat},
		{Column: "year_start", Measure: MeasureYear, Kind: KindInt},
	},
}

// EducationSchema reads the education/income dataset.
var EducationSchema = Schema{
	CategoryColumn: "Educ",
	Fields: []Field{
		{Column: "Income2005", Measure: MeasureIncome, Kind: KindFloat},
	},
}

// Record is one parsed row. Measures that failed to parse are absent, never
// zero-filled.
type Record struct {
	Category string
	measures map[string]float64
}

// NewRecord builds a record from already-typed measures.
func NewRecord(category string, measures map[string]float64) Record {
	m := make(map[string]float64, len(measures))
	for k, v := range measures {
		m[k] = v
	}
	return Record{Category: Category(category), measures: m}
}

// Measure returns the named measure and whether it parsed.
func (r Record) Measure(name string) (float64, bool) {
	v, ok := r.measures[name]
	return v, ok
}

// Has reports whether every named measure is present.
func (r Record) Has(names ...string) bool {
	for _, n := range names {
		if _, ok := r.measures[n]; !ok {
			return false
		}
	}
	return true
}

// Parse converts one raw row. It never fails: unparseable fields are left out
// of the record's measures.
func (s Schema) Parse(raw dataset.Raw) Record {
	rec := Record{
		Category: Category(raw.Get(s.CategoryColumn)),
		measures: make(map[string]float64, len(s.Fields)),
	}
	for _, f := range s.Fields {
		if v, ok := f.Kind.Parse(raw.Get(f.Column)); ok {
			rec.measures[f.Measure] = v
		}
	}
	return rec
}

// ParseAll parses every row of d in order.
func (s Schema) ParseAll(d *dataset.Dataset) []Record {
	rows := d.Rows()
	out := make([]Record, len(rows))
	for i, raw := range rows {
		out[i] = s.Parse(raw)
	}
	return out
}

// Require returns the records that carry every named measure, preserving
// order. Records missing a measure are dropped from this result only.
func Require(records []Record, measures ...string) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Has(measures...) {
			out = append(out, r)
		}
	}
	return out
}

// Project extracts one measure from records that carry it.
func Project(records []Record, measure string) []float64 {
	out := make([]float64, 0, len(records))
	for _, r := range records {
		if v, ok := r.measures[measure]; ok {
			out = append(out, v)
		}
	}
	return out
}
