// Package render draws dashboard charts to SVG or PNG without a browser.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/KaramelBytes/statboard/internal/chartdata"
	"github.com/KaramelBytes/statboard/internal/dashboard"
	"github.com/KaramelBytes/statboard/internal/utils"
)

const (
	DefaultWidth  = 960
	DefaultHeight = 540
)

// ErrNoData is returned for a chart without any plottable rows.
var ErrNoData = errors.New("chart has no data to render")

// Options sizes the output image.
type Options struct {
	Width  int
	Height int
}

// ProviderFor picks the renderer from a file extension (.svg or .png).
func ProviderFor(path string) (chart.RendererProvider, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return chart.SVG, nil
	case ".png":
		return chart.PNG, nil
	default:
		return nil, fmt.Errorf("unsupported image format %q (use .svg or .png)", filepath.Ext(path))
	}
}

// WriteFile renders c to path, choosing SVG or PNG by extension.
func WriteFile(c *dashboard.Chart, path string, opt Options) error {
	rp, err := ProviderFor(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Render(c, rp, &buf, opt); err != nil {
		return err
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}

// Render draws c with the given renderer.
func Render(c *dashboard.Chart, rp chart.RendererProvider, w io.Writer, opt Options) error {
	if opt.Width <= 0 {
		opt.Width = DefaultWidth
	}
	if opt.Height <= 0 {
		opt.Height = DefaultHeight
	}
	var err error
	switch c.Kind {
	case dashboard.KindBar:
		err = renderBars(c, rp, w, opt)
	case dashboard.KindBox:
		err = renderBoxes(c, rp, w, opt)
	case dashboard.KindDensity, dashboard.KindScatter, dashboard.KindTrend:
		err = renderXY(c, rp, w, opt)
	default:
		err = fmt.Errorf("unsupported chart kind %q", c.Kind)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", c.ID, err)
	}
	return nil
}

func color(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func formatter(f chartdata.Format) chart.ValueFormatter {
	return func(v interface{}) string {
		if x, ok := v.(float64); ok {
			return f.Apply(x)
		}
		return fmt.Sprint(v)
	}
}

// renderBars draws one bar per row of the first series, valued by YField and
// labeled by XField.
func renderBars(c *dashboard.Chart, rp chart.RendererProvider, w io.Writer, opt Options) error {
	if len(c.Series) == 0 || len(c.Series[0].Rows) == 0 {
		return ErrNoData
	}
	var bars []chart.Value
	top := 0.0
	for _, row := range c.Series[0].Rows {
		v, ok := row.Float(c.YField)
		if !ok {
			continue
		}
		top = math.Max(top, v)
		col := color(row.String(chartdata.FieldColor))
		bars = append(bars, chart.Value{
			Label: row.String(c.XField),
			Value: v,
			Style: chart.Style{FillColor: col, StrokeColor: col},
		})
	}
	if len(bars) == 0 {
		return ErrNoData
	}
	if top == 0 {
		top = 1
	}
	bc := chart.BarChart{
		Title:      c.Title,
		Width:      opt.Width,
		Height:     opt.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		BarWidth:   barWidth(opt.Width, len(bars)),
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: 0, Max: top * 1.1},
			ValueFormatter: formatter(c.Format),
		},
		Bars: bars,
	}
	return bc.Render(rp, w)
}

func barWidth(width, n int) int {
	bw := width / (n*2 + 1)
	if bw > 80 {
		return 80
	}
	if bw < 8 {
		return 8
	}
	return bw
}

// renderBoxes draws one box per row of the first series: a thin line from
// min to max, a wide segment from q1 to q3 and a dark tick at the median.
// Categories sit at integer x positions labeled by XField.
func renderBoxes(c *dashboard.Chart, rp chart.RendererProvider, w io.Writer, opt Options) error {
	if len(c.Series) == 0 {
		return ErrNoData
	}
	var (
		series []chart.Series
		ticks  []chart.Tick
	)
	yr := newSpan()
	width := float64(barWidth(opt.Width, len(c.Series[0].Rows)))
	median := drawing.ColorFromHex("333333")
	for _, row := range c.Series[0].Rows {
		lo, ok1 := row.Float(chartdata.FieldMin)
		q1, ok2 := row.Float(chartdata.FieldQ1)
		med, ok3 := row.Float(chartdata.FieldMedian)
		q3, ok4 := row.Float(chartdata.FieldQ3)
		hi, ok5 := row.Float(chartdata.FieldMax)
		if !(ok1 && ok2 && ok3 && ok4 && ok5) {
			continue
		}
		x := float64(len(ticks))
		label := row.String(c.XField)
		col := color(row.String(chartdata.FieldColor))
		ticks = append(ticks, chart.Tick{Value: x, Label: label})
		yr.add(lo, hi)
		series = append(series,
			chart.ContinuousSeries{
				Name:    label,
				XValues: []float64{x, x},
				YValues: []float64{lo, hi},
				Style:   chart.Style{StrokeColor: col, StrokeWidth: 1.5},
			},
			chart.ContinuousSeries{
				XValues: []float64{x, x},
				YValues: []float64{q1, q3},
				Style:   chart.Style{StrokeColor: col.WithAlpha(200), StrokeWidth: width},
			},
			chart.ContinuousSeries{
				XValues: []float64{x - 0.3, x + 0.3},
				YValues: []float64{med, med},
				Style:   chart.Style{StrokeColor: median, StrokeWidth: 2},
			},
		)
	}
	if len(series) == 0 {
		return ErrNoData
	}
	yRange := yr.rangeOf()
	pad := (yRange.Max - yRange.Min) * 0.05
	yRange.Min, yRange.Max = yRange.Min-pad, yRange.Max+pad
	ch := chart.Chart{
		Title:      c.Title,
		Width:      opt.Width,
		Height:     opt.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  c.XField,
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(len(ticks)) - 0.5},
			Ticks: ticks,
		},
		YAxis:  chart.YAxis{Range: yRange, ValueFormatter: formatter(c.Format)},
		Series: series,
	}
	return ch.Render(rp, w)
}

// renderXY draws every series as a line, or as dots for scatter charts.
// Trend charts add dashed lower/upper bound lines.
func renderXY(c *dashboard.Chart, rp chart.RendererProvider, w io.Writer, opt Options) error {
	var series []chart.Series
	xr := newSpan()
	yr := newSpan()
	add := func(name string, xs, ys []float64, st chart.Style) {
		if len(xs) == 0 {
			return
		}
		if len(xs) == 1 {
			xs, ys = []float64{xs[0], xs[0]}, []float64{ys[0], ys[0]}
		}
		xr.add(xs...)
		yr.add(ys...)
		series = append(series, chart.ContinuousSeries{Name: name, XValues: xs, YValues: ys, Style: st})
	}
	for _, s := range c.Series {
		col := color(s.Color)
		xs, ys := column(s.Rows, c.XField, c.YField)
		switch c.Kind {
		case dashboard.KindScatter:
			add(s.Name, xs, ys, chart.Style{StrokeWidth: chart.Disabled, DotWidth: 3, DotColor: col})
		case dashboard.KindTrend:
			add(s.Name, xs, ys, chart.Style{StrokeColor: col, StrokeWidth: 2})
			bounds := chart.Style{StrokeColor: col.WithAlpha(128), StrokeWidth: 1, StrokeDashArray: []float64{5, 3}}
			_, lo := column(s.Rows, c.XField, "lowerBound")
			_, hi := column(s.Rows, c.XField, "upperBound")
			if len(lo) == len(xs) && len(hi) == len(xs) {
				add("- SE", xs, lo, bounds)
				add("+ SE", xs, hi, bounds)
			}
		default:
			add(s.Name, xs, ys, chart.Style{StrokeColor: col, StrokeWidth: 2, FillColor: col.WithAlpha(40)})
		}
	}
	if len(series) == 0 {
		return ErrNoData
	}
	xFormat := formatter(c.Format)
	yFormat := formatter(chartdata.FormatRaw)
	if c.Kind == dashboard.KindTrend {
		xFormat, yFormat = formatter(chartdata.FormatRaw), formatter(c.Format)
	}
	if c.Kind == dashboard.KindScatter {
		xFormat = formatter(chartdata.FormatRaw)
	}
	ch := chart.Chart{
		Title:      c.Title,
		Width:      opt.Width,
		Height:     opt.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis:      chart.XAxis{Name: c.XField, Range: xr.rangeOf(), ValueFormatter: xFormat},
		YAxis:      chart.YAxis{Name: c.YField, Range: yr.rangeOf(), ValueFormatter: yFormat},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(rp, w)
}

// column extracts paired numeric x/y fields, skipping rows missing either.
func column(rows []chartdata.Row, xField, yField string) (xs, ys []float64) {
	for _, r := range rows {
		x, okx := r.Float(xField)
		y, oky := r.Float(yField)
		if okx && oky {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	return xs, ys
}

// span tracks a value range and widens a degenerate one so single-valued
// series still render.
type span struct{ min, max float64 }

func newSpan() *span { return &span{min: math.Inf(1), max: math.Inf(-1)} }

func (s *span) add(vs ...float64) {
	for _, v := range vs {
		s.min = math.Min(s.min, v)
		s.max = math.Max(s.max, v)
	}
}

func (s *span) rangeOf() *chart.ContinuousRange {
	lo, hi := s.min, s.max
	if lo == hi {
		pad := math.Max(math.Abs(lo)*0.05, 1)
		lo, hi = lo-pad, hi+pad
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}
