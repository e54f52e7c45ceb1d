// internal/writers/jsonl.go
package writers

import (
	"bufio"
	"encoding/json"
	"io"

	"thermoflux/internal/analysis"
	"thermoflux/internal/report"
)

// StartJSONLWriter streams each result as one ResultV1 JSON line. Close the
// returned channel to flush; the error channel yields exactly one value.
// A broken pipe downstream (e.g. `| head`) is reported as-is so the caller
// can decide to treat it as success.
func StartJSONLWriter(out io.Writer, bufSize int) (chan<- analysis.Result, <-chan error) {
	in := make(chan analysis.Result, bufSize)
	errc := make(chan error, 1)

	go func() {
		bw := bufio.NewWriter(out)
		enc := json.NewEncoder(bw)
		var werr error
		for r := range in {
			if werr != nil {
				continue // drain
			}
			werr = enc.Encode(report.ToAPI(r))
		}
		if ferr := bw.Flush(); werr == nil {
			werr = ferr
		}
		errc <- werr
		close(errc)
	}()

	return in, errc
}

// WriteJSONL drives StartJSONLWriter over a finished result slice.
func WriteJSONL(out io.Writer, results []analysis.Result) error {
	ch, errc := StartJSONLWriter(out, len(results))
	for _, r := range results {
		ch <- r
	}
	close(ch)
	return <-errc
}
