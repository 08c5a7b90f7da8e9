package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// BarPoint is one labelled value in a chart.
type BarPoint struct {
	Label string
	Value float64
}

// BarChart renders horizontal bars with a value label per bar.
// MaxValue fixes the scale (e.g. a 0-100 percentage axis); when zero
// the chart scales to the largest data point.
type BarChart struct {
	Title    string
	Data     []BarPoint
	MaxValue float64
	Fill     rune
	Format   func(float64) string
}

func (c BarChart) Render(width int) string {
	if width <= 0 {
		return ""
	}
	if len(c.Data) == 0 {
		return c.Title + "\n(no data)"
	}
	fill := c.Fill
	if fill == 0 {
		fill = '█'
	}
	format := c.Format
	if format == nil {
		format = func(v float64) string { return fmt.Sprintf("%.1f", v) }
	}

	scale := c.MaxValue
	if scale <= 0 {
		for _, p := range c.Data {
			if p.Value > scale {
				scale = p.Value
			}
		}
	}
	if scale <= 0 {
		scale = 1
	}

	labelW, valueW := 0, 0
	for _, p := range c.Data {
		if w := ansi.StringWidth(p.Label); w > labelW {
			labelW = w
		}
		if w := ansi.StringWidth(format(p.Value)); w > valueW {
			valueW = w
		}
	}
	if labelW > width/3 {
		labelW = width / 3
	}
	barW := width - labelW - valueW - 4
	if barW < 1 {
		barW = 1
	}

	lines := make([]string, 0, len(c.Data)+1)
	if c.Title != "" {
		lines = append(lines, c.Title)
	}
	for _, p := range c.Data {
		n := int((p.Value / scale) * float64(barW))
		if n < 1 && p.Value > 0 {
			n = 1
		}
		if n > barW {
			n = barW
		}
		lines = append(lines, fmt.Sprintf("%s  %s %s",
			padCell(p.Label, labelW), strings.Repeat(string(fill), max(0, n)), format(p.Value)))
	}
	return strings.Join(lines, "\n")
}

// AreaChart is the shaded variant used for output series.
type AreaChart struct {
	Title  string
	Data   []BarPoint
	Format func(float64) string
}

func (c AreaChart) Render(width int) string {
	return BarChart{Title: c.Title, Data: c.Data, Fill: '▒', Format: c.Format}.Render(width)
}

// GroupedBarChart renders one block per group with one bar per series,
// each bar carrying its value label. Missing (group, series) values
// must already be zero-filled by the caller.
type GroupedBarChart struct {
	Title  string
	Groups []string
	Series []string
	Values map[string]map[string]float64
	Format func(float64) string
}

func (c GroupedBarChart) Render(width int) string {
	if width <= 0 {
		return ""
	}
	if len(c.Groups) == 0 || len(c.Series) == 0 {
		return c.Title + "\n(no data)"
	}
	format := c.Format
	if format == nil {
		format = func(v float64) string { return fmt.Sprintf("%.1f", v) }
	}

	scale := 0.0
	for _, g := range c.Groups {
		for _, s := range c.Series {
			if v := c.Values[g][s]; v > scale {
				scale = v
			}
		}
	}
	if scale <= 0 {
		scale = 1
	}

	seriesW := 0
	for _, s := range c.Series {
		if w := ansi.StringWidth(s); w > seriesW {
			seriesW = w
		}
	}
	barW := width - seriesW - 16
	if barW < 1 {
		barW = 1
	}

	lines := make([]string, 0, len(c.Groups)*(len(c.Series)+1)+1)
	if c.Title != "" {
		lines = append(lines, c.Title)
	}
	for _, g := range c.Groups {
		lines = append(lines, g)
		for _, s := range c.Series {
			v := c.Values[g][s]
			n := int((v / scale) * float64(barW))
			if n < 1 && v > 0 {
				n = 1
			}
			lines = append(lines, fmt.Sprintf("  %s  %s %s",
				padCell(s, seriesW), strings.Repeat("█", max(0, n)), format(v)))
		}
	}
	return strings.Join(lines, "\n")
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
