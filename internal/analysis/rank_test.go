package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keys[T Ranked](items []T) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.RankKey()
	}
	return out
}

func gs(key string, mean, median float64, n int) GroupSummary {
	return GroupSummary{Key: key, Summary: Summary{N: n, Mean: mean, Median: median}}
}

func TestSortByMeanDesc(t *testing.T) {
	in := []GroupSummary{gs("G", 74, 74, 1), gs("C", 83, 84, 2)}
	got := Sort(in, Policy{Key: SortByMean, Order: Descending})
	assert.Equal(t, []string{"C", "G"}, keys(got))
	assert.Equal(t, []string{"G", "C"}, keys(in), "input reordered")
}

func TestSortTieBreaksOnKey(t *testing.T) {
	in := []GroupSummary{gs("G", 80, 80, 3), gs("C", 80, 80, 1), gs("F", 80, 80, 2)}
	for _, p := range []Policy{
		{Key: SortByMedian, Order: Ascending},
		{Key: SortByMedian, Order: Descending},
		{Key: SortByMean, Order: Descending},
	} {
		assert.Equal(t, []string{"C", "F", "G"}, keys(Sort(in, p)), p.String())
	}
}

func TestSortByCount(t *testing.T) {
	in := []GroupCount{{Key: "G", Count: 2}, {Key: "C", Count: 5}, {Key: "F", Count: 2}}
	got := Sort(in, Policy{Key: SortByCount, Order: Descending})
	assert.Equal(t, []string{"C", "F", "G"}, keys(got))
}

func TestSortByKey(t *testing.T) {
	in := []GroupCount{{Key: "G"}, {Key: "C"}, {Key: "F-C"}}
	assert.Equal(t, []string{"C", "F-C", "G"}, keys(Sort(in, Policy{Key: SortByKey, Order: Ascending})))
	assert.Equal(t, []string{"G", "F-C", "C"}, keys(Sort(in, Policy{Key: SortByKey, Order: Descending})))
}

func TestSortByKeyNumeric(t *testing.T) {
	in := []GroupSummary{gs("2001", 0, 0, 1), gs("Unknown", 0, 0, 1), gs("1991", 0, 0, 1), gs("950", 0, 0, 1)}
	got := Sort(in, Policy{Key: SortByKeyNumeric, Order: Ascending})
	assert.Equal(t, []string{"950", "1991", "2001", "Unknown"}, keys(got))
}

func TestSortDensityOnlyByKey(t *testing.T) {
	in := []GroupDensity{{Key: "F"}, {Key: "C"}}
	got := Sort(in, Policy{Key: SortByMean, Order: Descending})
	assert.Equal(t, []string{"C", "F"}, keys(got))
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("Median:DESC")
	require.NoError(t, err)
	assert.Equal(t, Policy{Key: SortByMedian, Order: Descending}, p)
	assert.Equal(t, "median:desc", p.String())

	p, err = ParsePolicy("count")
	require.NoError(t, err)
	assert.Equal(t, Ascending, p.Order)

	_, err = ParsePolicy("mode:asc")
	assert.Error(t, err)
	_, err = ParsePolicy("mean:up")
	assert.Error(t, err)
}
