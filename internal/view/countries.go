package view

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/HassanOla1/economy/internal/api"
)

// DefaultCountries is the country list used whenever the filter source
// call fails or returns nothing.
func DefaultCountries() []string {
	return []string{"Malaysia", "Indonesia", "Saudi Arabia"}
}

// DistinctCountries extracts the distinct country values from raw
// rows, sorted. Rows without a usable country field are skipped.
func DistinctCountries(rows []api.Row) []string {
	seen := make(map[string]struct{}, len(rows))
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		name, ok := row["country"].(string)
		if !ok || strings.TrimSpace(name) == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// CountriesOrDefault applies the documented fallback.
func CountriesOrDefault(rows []api.Row) []string {
	if countries := DistinctCountries(rows); len(countries) > 0 {
		return countries
	}
	return DefaultCountries()
}

// RankCountries orders picker options against a typed filter: substring
// matches first, then by edit distance, ties alphabetical. An empty
// query returns the options unchanged.
func RankCountries(options []string, query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return append([]string(nil), options...)
	}
	type scored struct {
		name   string
		substr bool
		dist   int
	}
	ranked := make([]scored, 0, len(options))
	for _, opt := range options {
		lower := strings.ToLower(opt)
		ranked = append(ranked, scored{
			name:   opt,
			substr: strings.Contains(lower, q),
			dist:   levenshtein.ComputeDistance(q, lower),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].substr != ranked[j].substr {
			return ranked[i].substr
		}
		if ranked[i].dist != ranked[j].dist {
			return ranked[i].dist < ranked[j].dist
		}
		return ranked[i].name < ranked[j].name
	})
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.name
	}
	return out
}
