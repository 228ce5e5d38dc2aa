package dashboard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KaramelBytes/statboard/internal/chartdata"
)

// ChartID names one chart of the dashboard.
type ChartID string

const (
	PositionDistribution ChartID = "position-distribution"
	HeightByPosition     ChartID = "height-by-position"
	HeightDensity        ChartID = "height-density"
	WeightDensity        ChartID = "weight-density"
	HeightWeight         ChartID = "height-weight"
	HeightOverTime       ChartID = "height-over-time"
	HeightWeightYear     ChartID = "height-weight-year"
	EducationIncome      ChartID = "education-income"
)

// Kind is the visual form of a chart.
type Kind string

const (
	KindBar     Kind = "bar"
	KindBox     Kind = "box"
	KindDensity Kind = "density"
	KindScatter Kind = "scatter"
	KindTrend   Kind = "trend"
)

// Source names the dataset a chart reads.
type Source string

const (
	Players   Source = "players"
	Education Source = "education"
)

// ErrUnknownChart is returned for an ID not in the catalog.
var ErrUnknownChart = errors.New("unknown chart")

// Spec describes a chart: what it shows and how its rows are keyed.
type Spec struct {
	ID     ChartID          `json:"id"`
	Title  string           `json:"title"`
	Kind   Kind             `json:"kind"`
	Source Source           `json:"source"`
	Format chartdata.Format `json:"format"`
	// XField and YField name the row fields a renderer plots.
	XField string `json:"xField"`
	YField string `json:"yField"`
}

var catalog = []Spec{
	{ID: PositionDistribution, Title: "Player Distribution by Position", Kind: KindBar, Source: Players, Format: chartdata.FormatRaw, XField: "position", YField: chartdata.FieldCount},
	{ID: HeightByPosition, Title: "Height Distribution by Position", Kind: KindBox, Source: Players, Format: chartdata.FormatHeight, XField: "position", YField: chartdata.FieldMedian},
	{ID: HeightDensity, Title: "Height Density: Centers vs Forwards", Kind: KindDensity, Source: Players, Format: chartdata.FormatHeight, XField: chartdata.FieldX, YField: chartdata.FieldY},
	{ID: WeightDensity, Title: "Weight Density: Centers vs Forwards", Kind: KindDensity, Source: Players, Format: chartdata.FormatRaw, XField: chartdata.FieldX, YField: chartdata.FieldY},
	{ID: HeightWeight, Title: "Height vs Weight by Position", Kind: KindScatter, Source: Players, Format: chartdata.FormatRaw, XField: "heightInches", YField: "weight"},
	{ID: HeightOverTime, Title: "Average Player Height Over Time", Kind: KindTrend, Source: Players, Format: chartdata.FormatHeight, XField: "year", YField: "avgHeight"},
	{ID: HeightWeightYear, Title: "Height, Weight and Start Year", Kind: KindScatter, Source: Players, Format: chartdata.FormatRaw, XField: "year", YField: "heightInches"},
	{ID: EducationIncome, Title: "Income by Education Level", Kind: KindBox, Source: Education, Format: chartdata.FormatCurrency, XField: "education", YField: chartdata.FieldMedian},
}

// Catalog returns every chart spec in display order.
func Catalog() []Spec { return append([]Spec(nil), catalog...) }

// Lookup finds a chart spec by ID (case-insensitive).
func Lookup(id string) (Spec, error) {
	want := ChartID(strings.ToLower(strings.TrimSpace(id)))
	for _, s := range catalog {
		if s.ID == want {
			return s, nil
		}
	}
	return Spec{}, fmt.Errorf("%w %q", ErrUnknownChart, id)
}
