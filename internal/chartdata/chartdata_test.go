package chartdata

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/statboard/internal/analysis"
)

func TestBoxRows(t *testing.T) {
	s, err := analysis.Summarize([]float64{84, 82})
	require.NoError(t, err)
	rows := BoxRows("position", []analysis.GroupSummary{{Key: "C", Measure: analysis.MeasureHeight, Summary: s}}, false)
	require.Len(t, rows, 1)
	r := rows[0]
	assert.Equal(t, "C", r.String("position"))
	for field, want := range map[string]float64{
		FieldMin: 82, FieldQ1: 82, FieldMedian: 84, FieldQ3: 84, FieldMax: 84, FieldMean: 83, FieldCount: 2,
	} {
		got, ok := r.Float(field)
		require.True(t, ok, field)
		assert.InDelta(t, want, got, 1e-12, field)
	}
	assert.Equal(t, "#ff7f0e", r.String(FieldColor))
}

func TestBoxRowsWhiskers(t *testing.T) {
	s, err := analysis.Summarize([]float64{1, 2, 3, 4, 5, 6, 7, 8, 100})
	require.NoError(t, err)
	rows := BoxRows("education", []analysis.GroupSummary{{Key: "BA", Summary: s}}, true)
	hi, _ := rows[0].Float(FieldMax)
	lo, _ := rows[0].Float(FieldMin)
	assert.Equal(t, 13.0, hi)
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, DefaultColor, rows[0].String(FieldColor))
}

func TestCountRows(t *testing.T) {
	rows := CountRows("position", []analysis.GroupCount{{Key: "G", Count: 2, Percentage: 66.7}, {Key: "Unknown", Count: 1, Percentage: 33.3}})
	require.Len(t, rows, 2)
	assert.Equal(t, Row{"position": "G", "count": 2, "percentage": 66.7, "color": "#1f77b4"}, rows[0])
	assert.Equal(t, "#bcbd22", rows[1].String(FieldColor))
}

func TestTrendRows(t *testing.T) {
	s, err := analysis.Summarize([]float64{80, 82})
	require.NoError(t, err)
	rows := TrendRows("year", "avgHeight", []analysis.GroupSummary{{Key: "1991", Summary: s}, {Key: "n/a", Summary: s}})
	require.Len(t, rows, 2)
	y, ok := rows[0].Float("year")
	require.True(t, ok)
	assert.Equal(t, 1991.0, y)
	assert.Equal(t, "n/a", rows[1].String("year"))

	mean, _ := rows[0].Float("avgHeight")
	up, _ := rows[0].Float("upperBound")
	lo, _ := rows[0].Float("lowerBound")
	assert.InDelta(t, 81.0, mean, 1e-12)
	assert.InDelta(t, s.StdErr, up-mean, 1e-12)
	assert.InDelta(t, s.StdErr, mean-lo, 1e-12)
}

func TestDensityRows(t *testing.T) {
	rows := DensityRows([]analysis.DensityPoint{{X: 1, Density: 0.2}, {X: 2, Density: 0.1}})
	assert.Equal(t, []Row{{"x": 1.0, "density": 0.2}, {"x": 2.0, "density": 0.1}}, rows)
}

func TestScatterRowsSkipsIncomplete(t *testing.T) {
	recs := []analysis.Record{
		analysis.NewRecord("C", map[string]float64{analysis.MeasureHeight: 84, analysis.MeasureWeight: 250}),
		analysis.NewRecord("C", map[string]float64{analysis.MeasureHeight: 82}),
	}
	rows := ScatterRows(recs,
		Column{Measure: analysis.MeasureHeight, Field: "heightInches"},
		Column{Measure: analysis.MeasureWeight, Field: "weight"})
	assert.Equal(t, []Row{{"heightInches": 84.0, "weight": 250.0}}, rows)
}

func TestRowsEncodeDeterministically(t *testing.T) {
	rows := CountRows("position", []analysis.GroupCount{{Key: "C", Count: 1, Percentage: 100}})
	a, err := json.Marshal(rows)
	require.NoError(t, err)
	b, err := json.Marshal(rows)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
	assert.JSONEq(t, `[{"color":"#ff7f0e","count":1,"percentage":100,"position":"C"}]`, string(a))
}

func TestColor(t *testing.T) {
	assert.Equal(t, "#2ca02c", Color("F"))
	assert.Equal(t, "#9467bd", Color("F-C"))
	assert.Equal(t, DefaultColor, Color("PG"))
}

func TestFormatApply(t *testing.T) {
	assert.Equal(t, "81.0 inches", FormatHeight.Apply(81))
	assert.Equal(t, "$12,345", FormatCurrency.Apply(12345.4))
	assert.Equal(t, "-$1,000", FormatCurrency.Apply(-1000))
	assert.Equal(t, "1,234.5", FormatRaw.Apply(1234.5))
	assert.Equal(t, "240", FormatRaw.Apply(240))
}

func TestFormatText(t *testing.T) {
	for _, f := range []Format{FormatRaw, FormatHeight, FormatCurrency} {
		b, err := f.MarshalText()
		require.NoError(t, err)
		var back Format
		require.NoError(t, back.UnmarshalText(b))
		assert.Equal(t, f, back)
	}
	_, err := ParseFormat("percent")
	assert.Error(t, err)
}
