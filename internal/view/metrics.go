package view

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/HassanOla1/economy/internal/api"
)

// CurrencyMetric formats a summary count as the headline revenue
// figure: the count scaled by one million, e.g. 3 -> "$3,000,000 USD".
func CurrencyMetric(count float64) string {
	return fmt.Sprintf("$%s USD", GroupThousands(count*1_000_000))
}

// PercentMetric formats a rate with one decimal, e.g. "75.4%".
func PercentMetric(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// GroupThousands renders a value rounded to a whole number with comma
// separators.
func GroupThousands(v float64) string {
	n := int64(math.Round(v))
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, digit := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// ParsePercent strips a trailing "%" and parses the remainder, so
// "45.2%" becomes 45.2.
func ParsePercent(s string) (float64, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(s), "%")
	v, err := strconv.ParseFloat(strings.TrimSpace(trimmed), 64)
	if err != nil {
		return 0, fmt.Errorf("parse percent %q: %w", s, err)
	}
	return v, nil
}

// PercentValue reads a penetration field that may arrive as a number
// or as a "45.2%" style string.
func PercentValue(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		f, err := ParsePercent(t)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Summary is the resolved headline stats for one dataset: backend
// values where present, documented defaults where absent.
type Summary struct {
	Count         float64
	AvgGrowthRate float64
}

// FallbackSummary is the documented default when a summary call fails:
// {count: 0} for the revenue datasets, {avg_growth_rate: 75.4} for
// household ICT.
func FallbackSummary(dataset string) Summary {
	if dataset == "household_ict" {
		return Summary{AvgGrowthRate: 75.4}
	}
	return Summary{}
}

// ResolveSummary applies the same defaults field by field, so a 200
// response missing avg_growth_rate still reads 75.4 for household ICT.
func ResolveSummary(dataset string, s api.Summary) Summary {
	out := FallbackSummary(dataset)
	if s.Count != nil {
		out.Count = *s.Count
	}
	if s.AvgGrowthRate != nil {
		out.AvgGrowthRate = *s.AvgGrowthRate
	}
	return out
}
