// internal/writers/json.go
package writers

import (
	"encoding/json"
	"io"

	"thermoflux/internal/analysis"
	"thermoflux/internal/report"
	"thermoflux/pkg/api"
)

// WriteJSON renders the whole result set as one JSON array of ResultV1.
func WriteJSON(w io.Writer, results []analysis.Result, pretty bool) error {
	out := make([]api.ResultV1, 0, len(results))
	for _, r := range results {
		out = append(out, report.ToAPI(r))
	}
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}
