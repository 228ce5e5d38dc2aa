// Package dashboard runs the statistics pipeline for every chart of the
// player and education dashboard. A run takes immutable datasets and returns
// a fresh result; nothing is cached between runs.
package dashboard

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/KaramelBytes/statboard/internal/analysis"
	"github.com/KaramelBytes/statboard/internal/chartdata"
	"github.com/KaramelBytes/statboard/internal/dataset"
)

// ErrDatasetMissing is returned when a chart's source dataset was not loaded.
var ErrDatasetMissing = errors.New("dataset not loaded")

// Input is the pair of datasets the dashboard reads. Either may be nil when
// only charts of the other source are built.
type Input struct {
	Players   *dataset.Dataset
	Education *dataset.Dataset
}

// Options tunes density charts.
type Options struct {
	// Bandwidths maps a measure name to its KDE bandwidth.
	Bandwidths map[string]float64
	// DensityPoints is the number of grid points per density curve.
	DensityPoints int
	// DensityCategories selects the positions compared in density charts.
	DensityCategories []string
}

// DefaultOptions returns h=2 for height, h=10 for weight, 51 points, and
// centers vs forwards.
func DefaultOptions() Options {
	return Options{
		Bandwidths: map[string]float64{
			analysis.MeasureHeight: 2,
			analysis.MeasureWeight: 10,
		},
		DensityPoints:     analysis.DefaultDensityPoints,
		DensityCategories: []string{"C", "F"},
	}
}

// Series is one named, colored set of rows within a chart.
type Series struct {
	Name  string          `json:"name"`
	Color string          `json:"color"`
	Rows  []chartdata.Row `json:"rows"`
}

// Chart is the data behind one visualization.
type Chart struct {
	Spec
	Series []Series `json:"series"`
	// Stats carries chart-level figures such as totals or the correlation of
	// a scatter.
	Stats map[string]float64 `json:"stats,omitempty"`
	// Rows is the number of source rows; Dropped counts those excluded for a
	// missing or malformed measure.
	Rows    int `json:"rows"`
	Dropped int `json:"dropped"`
	// Warning is set when the chart has nothing to plot.
	Warning string `json:"warning,omitempty"`
}

// Empty reports whether the chart has no rows to plot.
func (c *Chart) Empty() bool {
	for _, s := range c.Series {
		if len(s.Rows) > 0 {
			return false
		}
	}
	return true
}

// DatasetInfo identifies a loaded dataset.
type DatasetInfo struct {
	Source Source `json:"source"`
	Name   string `json:"name"`
	ID     string `json:"id"`
	Rows   int    `json:"rows"`
}

// Result is the output of one pipeline run.
type Result struct {
	Datasets []DatasetInfo `json:"datasets"`
	Charts   []Chart       `json:"charts"`
}

// Chart returns the chart with the given ID.
func (r *Result) Chart(id ChartID) (*Chart, bool) {
	for i := range r.Charts {
		if r.Charts[i].ID == id {
			return &r.Charts[i], true
		}
	}
	return nil, false
}

type builder func(*pipeline, Spec) (*Chart, error)

var builders = map[ChartID]builder{
	PositionDistribution: buildPositionDistribution,
	HeightByPosition:     buildHeightByPosition,
	HeightDensity:        densityBuilder(analysis.MeasureHeight, analysis.MeasureHeight),
	WeightDensity:        densityBuilder(analysis.MeasureWeight, analysis.MeasureHeight, analysis.MeasureWeight),
	HeightWeight:         buildHeightWeight,
	HeightOverTime:       buildHeightOverTime,
	HeightWeightYear:     buildHeightWeightYear,
	EducationIncome:      buildEducationIncome,
}

// Run builds every catalog chart whose dataset is present, in catalog order.
// A chart left without usable rows is returned empty with a warning; only
// configuration errors and broken preconditions fail the run.
func Run(in Input, opts Options) (*Result, error) {
	p := newPipeline(in, opts)
	res := &Result{Datasets: p.datasets()}
	for _, spec := range catalog {
		if p.dataset(spec.Source) == nil {
			slog.Debug("skipping chart", slog.String("chart", string(spec.ID)), slog.String("source", string(spec.Source)))
			continue
		}
		c, err := p.build(spec)
		if err != nil {
			return nil, err
		}
		res.Charts = append(res.Charts, *c)
	}
	return res, nil
}

// Build builds a single chart.
func Build(id ChartID, in Input, opts Options) (*Chart, error) {
	spec, err := Lookup(string(id))
	if err != nil {
		return nil, err
	}
	return newPipeline(in, opts).build(spec)
}

// pipeline parses each dataset at most once per run.
type pipeline struct {
	in   Input
	opts Options

	players   []analysis.Record
	education []analysis.Record
}

func newPipeline(in Input, opts Options) *pipeline {
	return &pipeline{in: in, opts: opts}
}

func (p *pipeline) dataset(s Source) *dataset.Dataset {
	switch s {
	case Players:
		return p.in.Players
	case Education:
		return p.in.Education
	}
	return nil
}

func (p *pipeline) datasets() []DatasetInfo {
	var out []DatasetInfo
	for _, s := range []Source{Players, Education} {
		if d := p.dataset(s); d != nil {
			out = append(out, DatasetInfo{Source: s, Name: d.Name, ID: d.ID.String(), Rows: d.Len()})
		}
	}
	return out
}

func (p *pipeline) records(s Source) ([]analysis.Record, error) {
	d := p.dataset(s)
	if d == nil {
		return nil, fmt.Errorf("%s: %w", s, ErrDatasetMissing)
	}
	switch s {
	case Players:
		if p.players == nil {
			p.players = analysis.PlayersSchema.ParseAll(d)
		}
		return p.players, nil
	default:
		if p.education == nil {
			p.education = analysis.EducationSchema.ParseAll(d)
		}
		return p.education, nil
	}
}

// require returns the source records carrying every measure, and records the
// drop count on c. When no record qualifies, c is marked empty and the
// returned slice is nil.
func (p *pipeline) require(c *Chart, measures ...string) ([]analysis.Record, error) {
	all, err := p.records(c.Source)
	if err != nil {
		return nil, err
	}
	kept := analysis.Require(all, measures...)
	c.Rows = len(all)
	c.Dropped = len(all) - len(kept)
	if c.Dropped > 0 {
		slog.Debug("dropped malformed rows",
			slog.String("chart", string(c.ID)),
			slog.Int("dropped", c.Dropped),
			slog.Int("rows", c.Rows))
	}
	if len(kept) == 0 {
		markEmpty(c, "no rows with a valid "+strings.Join(measures, ", "))
		return nil, nil
	}
	return kept, nil
}

func markEmpty(c *Chart, reason string) {
	c.Series = []Series{}
	c.Warning = reason
	slog.Warn("chart is empty", slog.String("chart", string(c.ID)), slog.String("reason", reason))
}

func (p *pipeline) build(spec Spec) (*Chart, error) {
	b, ok := builders[spec.ID]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownChart, spec.ID)
	}
	c, err := b(p, spec)
	if err != nil {
		return nil, fmt.Errorf("build chart %s: %w", spec.ID, err)
	}
	return c, nil
}
