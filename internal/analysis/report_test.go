package analysis

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelate(t *testing.T) {
	recs := []Record{
		NewRecord("C", map[string]float64{MeasureHeight: 80, MeasureWeight: 240}),
		NewRecord("G", map[string]float64{MeasureHeight: 74, MeasureWeight: 180}),
		NewRecord("F", map[string]float64{MeasureHeight: 78, MeasureWeight: 220}),
		NewRecord("F", map[string]float64{MeasureHeight: 77}),
	}
	rel, err := Relate(recs, MeasureHeight, MeasureWeight)
	require.NoError(t, err)
	assert.Equal(t, 3, rel.N)
	assert.Greater(t, rel.R, 0.9)
	assert.LessOrEqual(t, rel.R, 1.0)
	assert.Greater(t, rel.Beta, 0.0)

	flat := []Record{
		NewRecord("C", map[string]float64{MeasureHeight: 80, MeasureWeight: 240}),
		NewRecord("G", map[string]float64{MeasureHeight: 80, MeasureWeight: 180}),
	}
	rel, err = Relate(flat, MeasureHeight, MeasureWeight)
	require.NoError(t, err)
	assert.Zero(t, rel.R)

	_, err = Relate(recs[:1], MeasureHeight, MeasureWeight)
	assert.ErrorIs(t, err, ErrEmptySample)
}

func TestAnalyzeAndMarkdown(t *testing.T) {
	d := table("players.csv",
		[]string{"position", "height"},
		[][]string{
			{"C", "7-0"},
			{"G", "6-2"},
			{"C", "6-10"},
			{"G", "bad"},
		})
	opt := DefaultOptions()
	opt.GroupBy = "position"
	opt.Measure = Field{Column: "height", Measure: MeasureHeight, Kind: KindHeight}

	rep, err := Analyze(d, opt)
	require.NoError(t, err)
	assert.Equal(t, 4, rep.Rows)
	assert.Equal(t, 3, rep.Used)
	assert.Equal(t, 1, rep.Dropped)
	require.Len(t, rep.Groups, 2)
	assert.Equal(t, "C", rep.Groups[0].Key)
	assert.Equal(t, 84.0, rep.Groups[0].Summary.Median)
	assert.Equal(t, "G", rep.Groups[1].Key)
	assert.Equal(t, 74.0, rep.Groups[1].Summary.Median)

	md := rep.Markdown(nil, false)
	assert.Contains(t, md, "[DATASET SUMMARY]")
	assert.Contains(t, md, "Rows: 4 (used 3)")
	assert.Contains(t, md, "[GROUP-BY SUMMARY] by position, sorted median:desc")
	assert.Contains(t, md, "| C | 2 | 82 | 82 | 84 | 84 | 84 | 83 | 1 |")
	assert.Contains(t, md, "[NOTES]")
	assert.Contains(t, md, "dropped 1/4 rows")

	inches := rep.Markdown(func(v float64) string { return fmt.Sprintf("%.1f in", v) }, true)
	assert.Contains(t, inches, "| low | q1 |")
	assert.Contains(t, inches, "74.0 in")
}

func TestAnalyzeSelectedGroups(t *testing.T) {
	d := table("players.csv",
		[]string{"position", "weight"},
		[][]string{{"C", "250"}, {"G", "180"}, {"F", "220"}})
	opt := DefaultOptions()
	opt.GroupBy = "position"
	opt.Measure = Field{Column: "weight", Kind: KindFloat}
	opt.Groups = []string{"F", "C", "X"}
	opt.Sort = Policy{Key: SortByKey, Order: Ascending}

	rep, err := Analyze(d, opt)
	require.NoError(t, err)
	assert.Equal(t, "weight", rep.Measure)
	assert.Equal(t, []string{"C", "F"}, keys(rep.Groups))
	require.Len(t, rep.Warnings, 1)
	assert.True(t, strings.Contains(rep.Warnings[0], `"X"`))
}

func TestAnalyzeErrors(t *testing.T) {
	d := table("e.csv", []string{"Educ", "Income2005"}, [][]string{{"HS", "n/a"}})
	_, err := Analyze(d, Options{})
	assert.Error(t, err)
	_, err = Analyze(d, Options{Measure: Field{Column: "salary"}})
	assert.ErrorContains(t, err, "salary")
	_, err = Analyze(d, Options{GroupBy: "degree", Measure: Field{Column: "Income2005"}})
	assert.ErrorContains(t, err, "degree")
	_, err = Analyze(d, Options{GroupBy: "Educ", Measure: Field{Column: "Income2005"}})
	assert.ErrorIs(t, err, ErrEmptySample)
}
