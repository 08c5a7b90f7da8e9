package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Row is one backend record. The backend decides the shape; no schema
// is enforced client-side.
type Row map[string]any

// AggRow is one group-by total from an aggregation endpoint.
type AggRow struct {
	Country string  `json:"country"`
	Total   float64 `json:"total"`
}

// Summary is the /summary/{dataset} payload. Datasets carry either a
// count or an average growth rate; absent fields stay nil so callers
// can apply their per-dataset defaults.
type Summary struct {
	Count         *float64 `json:"count"`
	AvgGrowthRate *float64 `json:"avg_growth_rate"`
}

// AIAnswer is the /ai_query payload. Result is optional.
type AIAnswer struct {
	Answer string `json:"answer"`
	Result []Row  `json:"result"`
}

// decodeList accepts either a JSON array or a single JSON object and
// returns a uniform slice: an object becomes a one-element list.
func decodeList[T any](data []byte) ([]T, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '{' {
		var one T
		if err := json.Unmarshal(trimmed, &one); err != nil {
			return nil, fmt.Errorf("decode object: %w", err)
		}
		return []T{one}, nil
	}
	var list []T
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	return list, nil
}
