// internal/writers/csv.go
// Output sinks for the summary table. CSV and JSON write a finished result
// slice; JSONL streams rows through a channel writer.
package writers

import (
	"encoding/csv"
	"io"

	"thermoflux/internal/analysis"
	"thermoflux/internal/report"
)

// WriteCSV renders the summary table. header=false drops the header line.
func WriteCSV(w io.Writer, results []analysis.Result, header bool) error {
	cw := csv.NewWriter(w)
	if header {
		if err := cw.Write(report.Header()); err != nil {
			return err
		}
	}
	for _, r := range results {
		if err := cw.Write(report.Row(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
