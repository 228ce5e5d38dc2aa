package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ErrEmptySample reports a statistic requested over zero values. Grouping
// never produces empty groups, so this signals a caller bug, not bad data.
var ErrEmptySample = errors.New("empty sample")

// Summary holds descriptive statistics for one sample. It is a value; nothing
// mutates it after Summarize returns.
type Summary struct {
	N      int     `json:"n"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	// StdDev is the population standard deviation (divisor n).
	StdDev float64 `json:"stdDev"`
	// StdErr is StdDev/sqrt(N).
	StdErr float64 `json:"standardError"`
}

// Summarize computes the summary of sample. Order statistics use the
// lower-nearest-rank rule sorted[floor(n*p)], not interpolation. The input
// slice is not modified.
func Summarize(sample []float64) (Summary, error) {
	n := len(sample)
	if n == 0 {
		return Summary{}, ErrEmptySample
	}
	sorted := append([]float64(nil), sample...)
	sort.Float64s(sorted)

	mean, variance := stat.PopMeanVariance(sample, nil)
	if variance < 0 {
		variance = 0
	}
	sd := math.Sqrt(variance)
	return Summary{
		N:      n,
		Min:    sorted[0],
		Q1:     RankQuantile(sorted, 0.25),
		Median: RankQuantile(sorted, 0.5),
		Q3:     RankQuantile(sorted, 0.75),
		Max:    sorted[n-1],
		Mean:   mean,
		StdDev: sd,
		StdErr: sd / math.Sqrt(float64(n)),
	}, nil
}

// RankQuantile returns sorted[floor(len*p)] clamped to the slice bounds.
// sorted must be ascending and non-empty.
func RankQuantile(sorted []float64, p float64) float64 {
	i := int(math.Floor(float64(len(sorted)) * p))
	if i < 0 {
		i = 0
	}
	if i > len(sorted)-1 {
		i = len(sorted) - 1
	}
	return sorted[i]
}

// IQR returns Q3-Q1.
func (s Summary) IQR() float64 { return s.Q3 - s.Q1 }

// Whiskers returns Tukey fences clamped to the observed range:
// max(Q1-1.5·IQR, Min) and min(Q3+1.5·IQR, Max).
func (s Summary) Whiskers() (low, high float64) {
	iqr := s.IQR()
	return math.Max(s.Q1-1.5*iqr, s.Min), math.Min(s.Q3+1.5*iqr, s.Max)
}

// Bounds returns Mean ± StdErr.
func (s Summary) Bounds() (lower, upper float64) {
	return s.Mean - s.StdErr, s.Mean + s.StdErr
}

// GroupSummary pairs a group key with the summary of one of its measures.
type GroupSummary struct {
	Key     string  `json:"key"`
	Measure string  `json:"measure"`
	Summary Summary `json:"summary"`
}

// SummarizeGroup summarizes measure over the records of g that carry it.
func SummarizeGroup(g Group, measure string) (GroupSummary, error) {
	s, err := Summarize(Project(g.Records, measure))
	if err != nil {
		return GroupSummary{}, fmt.Errorf("summarize %s for %q: %w", measure, g.Key, err)
	}
	return GroupSummary{Key: g.Key, Measure: measure, Summary: s}, nil
}

// SummarizeGroups summarizes measure for each group, preserving order.
func SummarizeGroups(groups []Group, measure string) ([]GroupSummary, error) {
	out := make([]GroupSummary, 0, len(groups))
	for _, g := range groups {
		gs, err := SummarizeGroup(g, measure)
		if err != nil {
			return nil, err
		}
		out = append(out, gs)
	}
	return out, nil
}

// GroupCount is the size of one group, with its share of the total.
type GroupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
	// Percentage is Count/Total*100 rounded to one decimal.
	Percentage float64 `json:"percentage"`
}

// Counts returns the size of every group in first-seen order.
func Counts(g *Groups) []GroupCount {
	total := g.Total()
	out := make([]GroupCount, 0, g.Len())
	for _, grp := range g.All() {
		pct := 0.0
		if total > 0 {
			pct = math.Round(float64(grp.Len())*1000/float64(total)) / 10
		}
		out = append(out, GroupCount{Key: grp.Key, Count: grp.Len(), Percentage: pct})
	}
	return out
}
