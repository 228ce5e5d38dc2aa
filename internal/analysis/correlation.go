package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Relationship describes the linear association between two measures.
type Relationship struct {
	N int `json:"n"`
	// R is the Pearson correlation coefficient; zero when either measure is
	// constant.
	R float64 `json:"r"`
	// Alpha and Beta define the least-squares line y = Alpha + Beta·x.
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
}

// Relate computes the relationship between measures x and y across records
// that carry both.
func Relate(records []Record, x, y string) (Relationship, error) {
	both := Require(records, x, y)
	if len(both) < 2 {
		return Relationship{}, fmt.Errorf("relate %s~%s: %w", x, y, ErrEmptySample)
	}
	xs := Project(both, x)
	ys := Project(both, y)
	rel := Relationship{N: len(both)}
	if constant(xs) {
		return rel, nil
	}
	rel.Alpha, rel.Beta = stat.LinearRegression(xs, ys, nil, false)
	if !constant(ys) {
		rel.R = stat.Correlation(xs, ys, nil)
	}
	if math.IsNaN(rel.R) {
		rel.R = 0
	}
	return rel, nil
}

func constant(xs []float64) bool {
	for _, v := range xs[1:] {
		if v != xs[0] {
			return false
		}
	}
	return true
}
