package widgets

import (
	"strings"
	"testing"
)

func TestBoxWrapsTitleAndContent(t *testing.T) {
	out := Box{Title: "Select Countries", Content: "line one\nline two"}.Render(40)
	if !strings.Contains(out, "[Select Countries]") {
		t.Fatalf("missing title:\n%s", out)
	}
	if !strings.Contains(out, "line two") {
		t.Fatalf("missing content:\n%s", out)
	}
	if !strings.Contains(out, "╭") {
		t.Fatalf("missing border:\n%s", out)
	}
}

func TestMetricCardShowsLabelAndValue(t *testing.T) {
	out := MetricCard{Label: "Total Halal Revenue", Value: "$3,000,000 USD"}.Render(30)
	if !strings.Contains(out, "Total Halal Revenue") || !strings.Contains(out, "$3,000,000 USD") {
		t.Fatalf("card output:\n%s", out)
	}
	if got := (MetricCard{}).Render(0); got != "" {
		t.Fatalf("zero width output = %q", got)
	}
}
