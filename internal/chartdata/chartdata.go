// Package chartdata flattens analysis results into the plain rows chart
// components consume. Nothing here computes statistics; adapters only rename
// and copy fields.
package chartdata

import (
	"strconv"

	"github.com/KaramelBytes/statboard/internal/analysis"
)

// Row is one chart record keyed by the field names a chart expects.
type Row map[string]any

// Float returns a numeric field.
func (r Row) Float(field string) (float64, bool) {
	switch v := r[field].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

// String returns a string field, or "" when absent or not a string.
func (r Row) String(field string) string {
	s, _ := r[field].(string)
	return s
}

// Box field names shared by box-style charts.
const (
	FieldMin    = "min"
	FieldQ1     = "q1"
	FieldMedian = "median"
	FieldQ3     = "q3"
	FieldMax    = "max"
	FieldMean   = "mean"
	FieldStdDev = "stdDev"
	FieldCount  = "count"
	FieldColor  = "color"
	FieldPct    = "percentage"
	FieldX      = "x"
	FieldY      = "density"
)

// BoxRows renders one row per group with quartiles, mean and count. The group
// key is stored under categoryField. With whiskers set, min and max carry the
// Tukey fences instead of the observed extremes.
func BoxRows(categoryField string, sums []analysis.GroupSummary, whiskers bool) []Row {
	out := make([]Row, 0, len(sums))
	for _, g := range sums {
		s := g.Summary
		lo, hi := s.Min, s.Max
		if whiskers {
			lo, hi = s.Whiskers()
		}
		out = append(out, Row{
			categoryField: g.Key,
			FieldMin:      lo,
			FieldQ1:       s.Q1,
			FieldMedian:   s.Median,
			FieldQ3:       s.Q3,
			FieldMax:      hi,
			FieldMean:     s.Mean,
			FieldStdDev:   s.StdDev,
			FieldCount:    s.N,
			FieldColor:    Color(g.Key),
		})
	}
	return out
}

// CountRows renders group sizes with their share of the total.
func CountRows(categoryField string, counts []analysis.GroupCount) []Row {
	out := make([]Row, 0, len(counts))
	for _, c := range counts {
		out = append(out, Row{
			categoryField: c.Key,
			FieldCount:    c.Count,
			FieldPct:      c.Percentage,
			FieldColor:    Color(c.Key),
		})
	}
	return out
}

// TrendRows renders mean ± standard error per group. Numeric keys (years)
// are emitted as numbers.
func TrendRows(keyField, meanField string, sums []analysis.GroupSummary) []Row {
	out := make([]Row, 0, len(sums))
	for _, g := range sums {
		lower, upper := g.Summary.Bounds()
		var key any = g.Key
		if v, err := strconv.ParseFloat(g.Key, 64); err == nil {
			key = v
		}
		out = append(out, Row{
			keyField:     key,
			meanField:    g.Summary.Mean,
			"upperBound": upper,
			"lowerBound": lower,
			FieldCount:   g.Summary.N,
		})
	}
	return out
}

// DensityRows renders a density curve as x/density pairs.
func DensityRows(points []analysis.DensityPoint) []Row {
	out := make([]Row, 0, len(points))
	for _, p := range points {
		out = append(out, Row{FieldX: p.X, FieldY: p.Density})
	}
	return out
}

// Column maps a record measure to an output field name.
type Column struct {
	Measure string
	Field   string
}

// ScatterRows renders one row per record carrying every mapped measure.
// Records missing any of them are skipped.
func ScatterRows(records []analysis.Record, cols ...Column) []Row {
	out := make([]Row, 0, len(records))
	for _, r := range records {
		row := make(Row, len(cols))
		complete := true
		for _, c := range cols {
			v, ok := r.Measure(c.Measure)
			if !ok {
				complete = false
				break
			}
			row[c.Field] = v
		}
		if complete {
			out = append(out, row)
		}
	}
	return out
}
