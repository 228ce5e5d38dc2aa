package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/gonum/floats"
)

// DefaultDensityPoints is the number of evaluation points across the sample
// range.
const DefaultDensityPoints = 51

var (
	// ErrInvalidBandwidth reports a non-positive or non-finite bandwidth.
	ErrInvalidBandwidth = errors.New("bandwidth must be a positive finite number")
	// ErrTooFewPoints reports a grid with fewer than two points.
	ErrTooFewPoints = errors.New("density grid needs at least 2 points")
)

// DensityPoint is one (x, density) sample of a kernel density estimate.
type DensityPoint struct {
	X       float64 `json:"x"`
	Density float64 `json:"density"`
}

// Density evaluates a fixed-bandwidth Gaussian kernel density estimate of
// sample at points evenly spaced over [min(sample), max(sample)]:
//
//	ƒ̂(x) = 1/(n·h) · Σ φ((x-xᵢ)/h)
//
// The bandwidth is supplied by the caller and never estimated from the data.
func Density(sample []float64, bandwidth float64, points int) ([]DensityPoint, error) {
	if len(sample) == 0 {
		return nil, ErrEmptySample
	}
	if !(bandwidth > 0) || math.IsInf(bandwidth, 1) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBandwidth, bandwidth)
	}
	if points < 2 {
		return nil, fmt.Errorf("%w: %d", ErrTooFewPoints, points)
	}

	xs := floats.Span(make([]float64, points), floats.Min(sample), floats.Max(sample))
	kernels := make([]stats.NormalDist, len(sample))
	for i, xi := range sample {
		kernels[i] = stats.NormalDist{Mu: xi, Sigma: bandwidth}
	}
	n := float64(len(sample))
	out := make([]DensityPoint, len(xs))
	for i, x := range xs {
		var sum float64
		for _, k := range kernels {
			sum += k.PDF(x)
		}
		out[i] = DensityPoint{X: x, Density: sum / n}
	}
	return out, nil
}

// GroupDensity is the density estimate of one group's measure.
type GroupDensity struct {
	Key       string         `json:"key"`
	Measure   string         `json:"measure"`
	Bandwidth float64        `json:"bandwidth"`
	Points    []DensityPoint `json:"points"`
}

// DensityByGroup estimates the density of measure within each group.
func DensityByGroup(groups []Group, measure string, bandwidth float64, points int) ([]GroupDensity, error) {
	out := make([]GroupDensity, 0, len(groups))
	for _, g := range groups {
		pts, err := Density(Project(g.Records, measure), bandwidth, points)
		if err != nil {
			return nil, fmt.Errorf("density of %s for %q: %w", measure, g.Key, err)
		}
		out = append(out, GroupDensity{Key: g.Key, Measure: measure, Bandwidth: bandwidth, Points: pts})
	}
	return out, nil
}
