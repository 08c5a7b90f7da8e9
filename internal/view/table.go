package view

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/HassanOla1/economy/internal/api"
)

// preferredColumns lead the table when present; everything else
// follows alphabetically.
var preferredColumns = []string{"country", "year"}

// TableFromRows flattens schemaless rows into padded table input with
// a stable column order.
func TableFromRows(rows []api.Row) (headers []string, cells [][]string) {
	if len(rows) == 0 {
		return nil, nil
	}
	seen := make(map[string]struct{})
	var rest []string
	for _, row := range rows {
		for key := range row {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)

	headers = make([]string, 0, len(rest))
	for _, pref := range preferredColumns {
		if _, ok := seen[pref]; ok {
			headers = append(headers, pref)
		}
	}
	for _, key := range rest {
		if key == "country" || key == "year" {
			continue
		}
		headers = append(headers, key)
	}

	cells = make([][]string, 0, len(rows))
	for _, row := range rows {
		line := make([]string, len(headers))
		for i, key := range headers {
			line[i] = formatScalar(row[key])
		}
		cells = append(cells, line)
	}
	return headers, cells
}

func formatScalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
