// internal/loaders/flux.go
package loaders

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"thermoflux-core/feasibility"
)

// LoadFluxTSV reads FVA flux bounds, one reaction per line:
// reaction_id flux_lb flux_ub (whitespace-separated, '#' comments).
// An optional header line starting with "reaction_id" is skipped.
func LoadFluxTSV(path string) (map[string]feasibility.FluxBounds, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	out := map[string]feasibility.FluxBounds{}
	sc := bufio.NewScanner(fh)
	ln := 0
	first := true
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		if len(f) != 3 {
			return nil, fmt.Errorf("%s:%d bad field count", path, ln)
		}
		if first && strings.EqualFold(f[0], "reaction_id") {
			first = false
			continue
		}
		first = false
		lb, err := strconv.ParseFloat(f[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d bad flux_lb: %v", path, ln, err)
		}
		ub, err := strconv.ParseFloat(f[2], 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d bad flux_ub: %v", path, ln, err)
		}
		if _, dup := out[f[0]]; dup {
			return nil, fmt.Errorf("%s:%d duplicate reaction %q", path, ln, f[0])
		}
		out[f[0]] = feasibility.FluxBounds{LB: lb, UB: ub}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
