package widgets

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Table renders rows under padded column headers. Columns are sized to
// their widest cell, then truncated together to fit the given width.
type Table struct {
	Headers []string
	Rows    [][]string
	MaxRows int
}

func (t Table) Render(width int) string {
	if width <= 0 {
		return ""
	}
	if len(t.Headers) == 0 {
		return "(no data)"
	}
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = ansi.StringWidth(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := ansi.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	renderRow := func(cells []string) string {
		parts := make([]string, len(t.Headers))
		for i := range t.Headers {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = padCell(cell, widths[i])
		}
		return ansi.Truncate(strings.Join(parts, "  "), width, "…")
	}

	lines := []string{renderRow(t.Headers)}
	sep := make([]string, len(t.Headers))
	for i := range sep {
		sep[i] = strings.Repeat("─", widths[i])
	}
	lines = append(lines, ansi.Truncate(strings.Join(sep, "  "), width, ""))

	rows := t.Rows
	truncated := 0
	if t.MaxRows > 0 && len(rows) > t.MaxRows {
		truncated = len(rows) - t.MaxRows
		rows = rows[:t.MaxRows]
	}
	for _, row := range rows {
		lines = append(lines, renderRow(row))
	}
	if truncated > 0 {
		lines = append(lines, "… "+strconv.Itoa(truncated)+" more rows")
	}
	return strings.Join(lines, "\n")
}
