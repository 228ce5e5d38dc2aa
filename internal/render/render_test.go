package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/KaramelBytes/statboard/internal/dashboard"
	"github.com/KaramelBytes/statboard/internal/dataset"
)

func fixture(t *testing.T) *dashboard.Result {
	t.Helper()
	players := dataset.FromRecords("PlayersBBall.csv",
		[]string{"position", "height", "weight", "year_start"},
		[]dataset.Raw{
			{"position": "C", "height": "7-0", "weight": "250", "year_start": "1991"},
			{"position": "C", "height": "6-10", "weight": "240", "year_start": "1992"},
			{"position": "F", "height": "6-8", "weight": "225", "year_start": "1992"},
			{"position": "F", "height": "6-7", "weight": "215", "year_start": "1993"},
			{"position": "G", "height": "6-2", "weight": "180", "year_start": "1993"},
		})
	edu := dataset.FromRecords("Education_Income.csv",
		[]string{"Educ", "Income2005"},
		[]dataset.Raw{{"Educ": "HS", "Income2005": "30000"}, {"Educ": "BA", "Income2005": "65000"}})
	res, err := dashboard.Run(dashboard.Input{Players: players, Education: edu}, dashboard.DefaultOptions())
	require.NoError(t, err)
	return res
}

func TestRenderEveryChartAsSVG(t *testing.T) {
	res := fixture(t)
	for _, c := range res.Charts {
		c := c
		t.Run(string(c.ID), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(&c, chart.SVG, &buf, Options{}))
			assert.Contains(t, buf.String(), "<svg")
		})
	}
}

func TestWriteFilePNG(t *testing.T) {
	res := fixture(t)
	c, ok := res.Chart(dashboard.HeightByPosition)
	require.True(t, ok)
	out := filepath.Join(t.TempDir(), "height.png")
	require.NoError(t, WriteFile(c, out, Options{Width: 640, Height: 360}))
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("\x89PNG")))
}

func TestRenderBoxDrawsQuartileRange(t *testing.T) {
	res := fixture(t)
	c, ok := res.Chart(dashboard.HeightByPosition)
	require.True(t, ok)
	var buf bytes.Buffer
	require.NoError(t, Render(c, chart.SVG, &buf, Options{}))
	svg := buf.String()
	for _, pos := range []string{">C<", ">F<", ">G<"} {
		assert.Contains(t, svg, pos)
	}
	// Whisker, box and median segment per position.
	assert.GreaterOrEqual(t, strings.Count(svg, "<path"), 9)
	assert.Contains(t, svg, "stroke-width:80")
}

func TestRenderSingleValueSeries(t *testing.T) {
	players := dataset.FromRecords("p.csv",
		[]string{"position", "height", "weight", "year_start"},
		[]dataset.Raw{
			{"position": "C", "height": "7-0", "weight": "250", "year_start": "1991"},
			{"position": "F", "height": "6-8", "weight": "225", "year_start": "1991"},
		})
	c, err := dashboard.Build(dashboard.HeightOverTime, dashboard.Input{Players: players}, dashboard.DefaultOptions())
	require.NoError(t, err)
	var buf bytes.Buffer
	assert.NoError(t, Render(c, chart.SVG, &buf, Options{}))
}

func TestRenderErrors(t *testing.T) {
	_, err := ProviderFor("chart.pdf")
	assert.Error(t, err)

	empty := &dashboard.Chart{Spec: dashboard.Spec{ID: "x", Kind: dashboard.KindBar, XField: "k", YField: "v"}}
	err = Render(empty, chart.SVG, &bytes.Buffer{}, Options{})
	assert.ErrorIs(t, err, ErrNoData)

	odd := &dashboard.Chart{Spec: dashboard.Spec{ID: "x", Kind: "pie"}}
	assert.Error(t, Render(odd, chart.SVG, &bytes.Buffer{}, Options{}))
}
