package dashboard

import (
	"fmt"
	"slices"
	"strings"

	"github.com/KaramelBytes/statboard/internal/analysis"
	"github.com/KaramelBytes/statboard/internal/chartdata"
)

var (
	byCountDesc  = analysis.Policy{Key: analysis.SortByCount, Order: analysis.Descending}
	byMedianDesc = analysis.Policy{Key: analysis.SortByMedian, Order: analysis.Descending}
	byMedianAsc  = analysis.Policy{Key: analysis.SortByMedian, Order: analysis.Ascending}
	byKey        = analysis.Policy{Key: analysis.SortByKey, Order: analysis.Ascending}
	byYear       = analysis.Policy{Key: analysis.SortByKeyNumeric, Order: analysis.Ascending}
)

func single(name string, rows []chartdata.Row) []Series {
	return []Series{{Name: name, Color: chartdata.DefaultColor, Rows: rows}}
}

// buildPositionDistribution counts every row, including rows whose measures
// are malformed.
func buildPositionDistribution(p *pipeline, spec Spec) (*Chart, error) {
	all, err := p.records(spec.Source)
	if err != nil {
		return nil, err
	}
	groups := analysis.GroupBy(all, analysis.ByCategory)
	counts := analysis.Sort(analysis.Counts(groups), byCountDesc)
	return &Chart{
		Spec:   spec,
		Series: single("players", chartdata.CountRows(spec.XField, counts)),
		Stats:  map[string]float64{"total": float64(groups.Total())},
		Rows:   len(all),
	}, nil
}

func buildHeightByPosition(p *pipeline, spec Spec) (*Chart, error) {
	c := &Chart{Spec: spec}
	recs, err := p.require(c, analysis.MeasureHeight)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		return c, nil
	}
	sums, err := analysis.SummarizeGroups(analysis.GroupBy(recs, analysis.ByCategory).All(), analysis.MeasureHeight)
	if err != nil {
		return nil, err
	}
	c.Series = single(analysis.MeasureHeight, chartdata.BoxRows(spec.XField, analysis.Sort(sums, byMedianDesc), false))
	return c, nil
}

// densityBuilder estimates the density of measure for each configured
// category. Rows must carry every measure in required.
func densityBuilder(measure string, required ...string) builder {
	return func(p *pipeline, spec Spec) (*Chart, error) {
		c := &Chart{Spec: spec}
		recs, err := p.require(c, required...)
		if err != nil {
			return nil, err
		}
		if recs == nil {
			return c, nil
		}
		bw := p.opts.Bandwidths[measure]
		groups := analysis.GroupBy(recs, analysis.ByCategory).Select(p.opts.DensityCategories...)
		if len(groups) == 0 {
			markEmpty(c, fmt.Sprintf("none of %s have a valid %s", strings.Join(p.opts.DensityCategories, ", "), measure))
			return c, nil
		}
		curves, err := analysis.DensityByGroup(groups, measure, bw, p.opts.DensityPoints)
		if err != nil {
			return nil, err
		}
		c.Stats = map[string]float64{"bandwidth": bw}
		for _, d := range analysis.Sort(curves, byKey) {
			c.Series = append(c.Series, Series{Name: d.Key, Color: chartdata.Color(d.Key), Rows: chartdata.DensityRows(d.Points)})
		}
		return c, nil
	}
}

// scatter builds one series per category and reports the linear relationship
// of the x and y measures over all plotted points. The relationship is left
// out below two points.
func scatter(p *pipeline, spec Spec, x, y string, cols []chartdata.Column, required ...string) (*Chart, error) {
	c := &Chart{Spec: spec}
	recs, err := p.require(c, required...)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		return c, nil
	}
	c.Stats = map[string]float64{"n": float64(len(recs))}
	if len(recs) >= 2 {
		rel, err := analysis.Relate(recs, x, y)
		if err != nil {
			return nil, err
		}
		c.Stats["r"], c.Stats["alpha"], c.Stats["beta"] = rel.R, rel.Alpha, rel.Beta
	}
	groups := analysis.GroupBy(recs, analysis.ByCategory).All()
	slices.SortFunc(groups, func(a, b analysis.Group) int { return strings.Compare(a.Key, b.Key) })
	for _, g := range groups {
		c.Series = append(c.Series, Series{Name: g.Key, Color: chartdata.Color(g.Key), Rows: chartdata.ScatterRows(g.Records, cols...)})
	}
	return c, nil
}

func buildHeightWeight(p *pipeline, spec Spec) (*Chart, error) {
	return scatter(p, spec, analysis.MeasureHeight, analysis.MeasureWeight,
		[]chartdata.Column{
			{Measure: analysis.MeasureHeight, Field: "heightInches"},
			{Measure: analysis.MeasureWeight, Field: "weight"},
		},
		analysis.MeasureHeight, analysis.MeasureWeight)
}

func buildHeightWeightYear(p *pipeline, spec Spec) (*Chart, error) {
	return scatter(p, spec, analysis.MeasureYear, analysis.MeasureHeight,
		[]chartdata.Column{
			{Measure: analysis.MeasureYear, Field: "year"},
			{Measure: analysis.MeasureHeight, Field: "heightInches"},
			{Measure: analysis.MeasureWeight, Field: "weight"},
		},
		analysis.MeasureHeight, analysis.MeasureWeight, analysis.MeasureYear)
}

func buildHeightOverTime(p *pipeline, spec Spec) (*Chart, error) {
	c := &Chart{Spec: spec}
	recs, err := p.require(c, analysis.MeasureHeight, analysis.MeasureYear)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		return c, nil
	}
	sums, err := analysis.SummarizeGroups(analysis.GroupBy(recs, analysis.ByMeasure(analysis.MeasureYear)).All(), analysis.MeasureHeight)
	if err != nil {
		return nil, err
	}
	c.Series = single(analysis.MeasureHeight, chartdata.TrendRows(spec.XField, spec.YField, analysis.Sort(sums, byYear)))
	return c, nil
}

func buildEducationIncome(p *pipeline, spec Spec) (*Chart, error) {
	c := &Chart{Spec: spec}
	recs, err := p.require(c, analysis.MeasureIncome)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		return c, nil
	}
	sums, err := analysis.SummarizeGroups(analysis.GroupBy(recs, analysis.ByCategory).All(), analysis.MeasureIncome)
	if err != nil {
		return nil, err
	}
	c.Series = single(analysis.MeasureIncome, chartdata.BoxRows(spec.XField, analysis.Sort(sums, byMedianAsc), true))
	return c, nil
}
