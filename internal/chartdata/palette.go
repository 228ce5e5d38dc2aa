package chartdata

import "github.com/KaramelBytes/statboard/internal/analysis"

// DefaultColor is used for categories without an assigned color.
const DefaultColor = "#1f77b4"

// palette is the single category -> color table shared by every chart.
var palette = map[string]string{
	"C":                      "#ff7f0e",
	"F":                      "#2ca02c",
	"G":                      "#1f77b4",
	"F-C":                    "#9467bd",
	"C-F":                    "#8c564b",
	"G-F":                    "#e377c2",
	"F-G":                    "#7f7f7f",
	analysis.UnknownCategory: "#bcbd22",
}

// Color returns the hex color for a category.
func Color(category string) string {
	if c, ok := palette[category]; ok {
		return c
	}
	return DefaultColor
}
