package widgets

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Columns places pre-rendered blocks side by side, padding each block
// to an equal share of the total width. Used for the two-up charts and
// the metric card row.
func Columns(totalWidth, gap int, blocks ...string) string {
	if totalWidth <= 0 || len(blocks) == 0 {
		return ""
	}
	gapTotal := gap * (len(blocks) - 1)
	colW := (totalWidth - gapTotal) / len(blocks)
	if colW < 1 {
		colW = 1
	}

	split := make([][]string, len(blocks))
	maxLines := 0
	for i, b := range blocks {
		split[i] = strings.Split(b, "\n")
		if len(split[i]) > maxLines {
			maxLines = len(split[i])
		}
	}

	out := make([]string, 0, maxLines)
	for line := 0; line < maxLines; line++ {
		cols := make([]string, len(split))
		for i := range split {
			cell := ""
			if line < len(split[i]) {
				cell = split[i][line]
			}
			cols[i] = padCell(cell, colW)
		}
		out = append(out, strings.Join(cols, strings.Repeat(" ", gap)))
	}
	return strings.Join(out, "\n")
}

// ColumnWidth reports the width each block receives from Columns.
func ColumnWidth(totalWidth, gap, n int) int {
	if n <= 0 {
		return totalWidth
	}
	w := (totalWidth - gap*(n-1)) / n
	if w < 1 {
		w = 1
	}
	return w
}

func padCell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "…")
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
