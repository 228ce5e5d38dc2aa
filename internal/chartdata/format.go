package chartdata

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Format is the closed set of value formatting strategies a chart can select.
type Format int

const (
	// FormatRaw prints a number with grouping and up to two decimals.
	FormatRaw Format = iota
	// FormatHeight prints inches with one decimal: "81.0 inches".
	FormatHeight
	// FormatCurrency prints whole dollars with grouping: "$12,345".
	FormatCurrency
)

var printer = message.NewPrinter(language.English)

func (f Format) String() string {
	switch f {
	case FormatRaw:
		return "raw"
	case FormatHeight:
		return "height"
	case FormatCurrency:
		return "currency"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat maps "raw", "height" or "currency" to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "raw":
		return FormatRaw, nil
	case "height", "inches":
		return FormatHeight, nil
	case "currency", "usd":
		return FormatCurrency, nil
	default:
		return 0, fmt.Errorf("unknown format %q (use raw|height|currency)", s)
	}
}

// MarshalText encodes the format by name.
func (f Format) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// UnmarshalText decodes a format name.
func (f *Format) UnmarshalText(b []byte) error {
	v, err := ParseFormat(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Apply formats v for display.
func (f Format) Apply(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprint(v)
	}
	switch f {
	case FormatHeight:
		return fmt.Sprintf("%.1f inches", v)
	case FormatCurrency:
		sign := ""
		if v < 0 {
			sign, v = "-", -v
		}
		return sign + "$" + printer.Sprintf("%v", number.Decimal(math.Round(v), number.MaxFractionDigits(0)))
	default:
		return printer.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(2)))
	}
}
