package view

import (
	"sort"

	"github.com/HassanOla1/economy/internal/api"
)

// Comparison accumulates totals from the three sector aggregation
// calls into one country-by-sector grid. Each failed call simply never
// calls Add; countries missing from one sector still chart with a zero
// for it, never a gap.
type Comparison struct {
	sectors []string
	totals  map[string]map[string]float64 // country -> sector -> total
}

// SectorTotal is one long-form row of the comparison: a single
// (country, sector) cell.
type SectorTotal struct {
	Country string
	Sector  string
	Total   float64
}

func NewComparison(sectors ...string) *Comparison {
	return &Comparison{
		sectors: append([]string(nil), sectors...),
		totals:  make(map[string]map[string]float64),
	}
}

// Add merges one sector's aggregation result, scaling totals by one
// million the same way the headline metrics are scaled.
func (c *Comparison) Add(sector string, rows []api.AggRow) {
	for _, row := range rows {
		if row.Country == "" {
			continue
		}
		if c.totals[row.Country] == nil {
			c.totals[row.Country] = make(map[string]float64, len(c.sectors))
		}
		c.totals[row.Country][sector] = row.Total * 1_000_000
	}
}

// Empty reports whether no sector contributed any data.
func (c *Comparison) Empty() bool { return len(c.totals) == 0 }

// Sectors returns the fixed sector order.
func (c *Comparison) Sectors() []string { return append([]string(nil), c.sectors...) }

// Countries returns every observed country, sorted.
func (c *Comparison) Countries() []string {
	out := make([]string, 0, len(c.totals))
	for country := range c.totals {
		out = append(out, country)
	}
	sort.Strings(out)
	return out
}

// Value reads one cell, zero-filled for missing (country, sector)
// pairs.
func (c *Comparison) Value(country, sector string) float64 {
	return c.totals[country][sector]
}

// Grid materializes the zero-filled country-by-sector matrix for the
// grouped chart.
func (c *Comparison) Grid() map[string]map[string]float64 {
	grid := make(map[string]map[string]float64, len(c.totals))
	for _, country := range c.Countries() {
		grid[country] = make(map[string]float64, len(c.sectors))
		for _, sector := range c.sectors {
			grid[country][sector] = c.totals[country][sector]
		}
	}
	return grid
}

// LongForm reshapes the grid into one row per country-sector pair, in
// stable country-then-sector order.
func (c *Comparison) LongForm() []SectorTotal {
	countries := c.Countries()
	out := make([]SectorTotal, 0, len(countries)*len(c.sectors))
	for _, country := range countries {
		for _, sector := range c.sectors {
			out = append(out, SectorTotal{
				Country: country,
				Sector:  sector,
				Total:   c.totals[country][sector],
			})
		}
	}
	return out
}
