package widgets

import (
	"strings"
	"testing"
)

func TestTableRendersHeadersAndRows(t *testing.T) {
	table := Table{
		Headers: []string{"country", "revenue_usd"},
		Rows: [][]string{
			{"Malaysia", "12.5"},
			{"Indonesia", "8"},
		},
	}
	out := table.Render(60)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 { // header, separator, two rows
		t.Fatalf("line count = %d, want 4:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "country") {
		t.Fatalf("header line = %q", lines[0])
	}
	if !strings.Contains(lines[2], "Malaysia") || !strings.Contains(lines[2], "12.5") {
		t.Fatalf("row line = %q", lines[2])
	}
}

func TestTableCapsRows(t *testing.T) {
	rows := make([][]string, 5)
	for i := range rows {
		rows[i] = []string{"Malaysia"}
	}
	out := Table{Headers: []string{"country"}, Rows: rows, MaxRows: 2}.Render(40)
	if !strings.Contains(out, "3 more rows") {
		t.Fatalf("missing truncation notice:\n%s", out)
	}
}

func TestTableNoHeaders(t *testing.T) {
	if got := (Table{}).Render(40); got != "(no data)" {
		t.Fatalf("output = %q, want (no data)", got)
	}
}

func TestColumnsSideBySide(t *testing.T) {
	left := "aa\nbb\ncc"
	right := "xx"
	out := Columns(20, 2, left, right)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("line count = %d, want 3", len(lines))
	}
	if !strings.Contains(lines[0], "aa") || !strings.Contains(lines[0], "xx") {
		t.Fatalf("first line should hold both columns: %q", lines[0])
	}
	if !strings.Contains(lines[1], "bb") || strings.Contains(lines[1], "xx") {
		t.Fatalf("second line = %q", lines[1])
	}
}

func TestColumnWidth(t *testing.T) {
	if got := ColumnWidth(100, 2, 4); got != 23 {
		t.Fatalf("ColumnWidth = %d, want 23", got)
	}
	if got := ColumnWidth(3, 2, 4); got != 1 {
		t.Fatalf("ColumnWidth floor = %d, want 1", got)
	}
}
