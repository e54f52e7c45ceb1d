// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"thermoflux-core/feasibility"
	"thermoflux-core/gibbs"

	"thermoflux/internal/analysis"
	"thermoflux/internal/cli"
	"thermoflux/internal/jsonutil"
	"thermoflux/internal/loaders"
	"thermoflux/internal/logutil"
	"thermoflux/internal/version"
	"thermoflux/internal/writers"
)

const appName = "thermoflux"

// RunContext is the whole CLI: parse, load, analyze, write. Exit codes:
// 0 ok, 2 usage or input error, 3 I/O or computation failure; a clean run
// with coverage-cleared infeasible reactions returns --infeasible-exit-code.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet(appName)
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			if e := outw.Flush(); writers.IsBrokenPipe(e) {
				return 0
			} else if e != nil {
				_, _ = fmt.Fprintln(stderr, e)
				return 3
			}
			return 0
		}
		_, _ = fmt.Fprintln(stderr, "error:", err)
		fs.SetOutput(stderr)
		fs.Usage()
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "%s version %s\n", appName, version.Version)
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	log := logutil.New(stderr, opts.Quiet, opts.LogJSON)

	conv, err := gibbs.ParseBoundConvention(opts.Bounds)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 2
	}

	// Load inputs. Any malformed or unreadable input is a usage-class
	// failure: the run never started.
	in, err := loadInputs(opts)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 2
	}
	log.Info().
		Int("reactions", len(in.Model.Reactions())).
		Int("compartments", len(in.Model.Compartments())).
		Str("bounds", conv.String()).
		Msg("inputs loaded")

	cfg := analysis.Config{
		Thresholds: feasibility.Thresholds{
			Concentration:   opts.ConcCoverage,
			FormationEnergy: opts.DGfCoverage,
		},
		Convention: conv,
		Threads:    opts.Threads,
	}
	results, err := analysis.Run(parent, cfg, in)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		if errors.Is(err, context.Canceled) {
			return 130
		}
		return 3
	}

	if err := sideExports(opts, results); err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 3
	}

	if err := writeResults(parent, opts, outw, results); err != nil {
		if writers.IsBrokenPipe(err) {
			return 0
		}
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 3
	}
	if err := outw.Flush(); err != nil {
		if writers.IsBrokenPipe(err) {
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}

	sum := analysis.Summarize(results)
	log.Info().
		Int("reactions", sum.Reactions).
		Int("evaluated", sum.Evaluated).
		Int("feasible", sum.Feasible).
		Int("infeasible", len(sum.Infeasible)).
		Msg("analysis complete")
	for _, r := range sum.Infeasible {
		log.Warn().
			Str("reaction", r.ReactionID).
			Str("formula", r.Formula).
			Float64("dG_r_lb", r.InVivo.Energy.LB).
			Float64("dG_r_ub", r.InVivo.Energy.UB).
			Float64("flux_lb", r.Flux.LB).
			Float64("flux_ub", r.Flux.UB).
			Msg("thermodynamically infeasible")
	}

	if len(sum.Infeasible) > 0 {
		return opts.InfeasibleExitCode
	}
	return 0
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func loadInputs(opts cli.Options) (analysis.Inputs, error) {
	var in analysis.Inputs
	var err error

	if in.Model, err = loaders.LoadModel(opts.ModelPath); err != nil {
		return in, err
	}

	if opts.DGfPath != "" {
		if in.Energies.Measured, err = loaders.LoadEnergyCSV(opts.DGfPath); err != nil {
			return in, err
		}
	}
	if opts.DGfEstimatedPath != "" {
		if in.Energies.Estimated, err = loaders.LoadEnergyCSV(opts.DGfEstimatedPath); err != nil {
			return in, err
		}
	}
	if opts.ConcPath != "" {
		if in.Concentrations.Measured, err = loaders.LoadConcentrationCSV(opts.ConcPath); err != nil {
			return in, err
		}
	}
	if opts.ConcEstimatedPath != "" {
		if in.Concentrations.Estimated, err = loaders.LoadConcentrationCSV(opts.ConcEstimatedPath); err != nil {
			return in, err
		}
	}
	if in.Conditions, err = loaders.LoadConditionsCSV(opts.ConditionsPath); err != nil {
		return in, err
	}
	if in.Flux, err = loaders.LoadFluxTSV(opts.FluxPath); err != nil {
		return in, err
	}
	return in, nil
}

// sideExports writes the optional per-phase JSON dumps next to the main
// output: --dg0-json for standard energies, --dg-json for in-vivo.
func sideExports(opts cli.Options, results []analysis.Result) error {
	if opts.DG0JSONPath != "" {
		dump := make(map[string]gibbs.StandardResult, len(results))
		for _, r := range results {
			dump[r.ReactionID] = r.Standard
		}
		if err := writeJSONFile(opts.DG0JSONPath, dump); err != nil {
			return fmt.Errorf("export dG0_r: %w", err)
		}
	}
	if opts.DGJSONPath != "" {
		dump := make(map[string]gibbs.InVivoResult, len(results))
		for _, r := range results {
			dump[r.ReactionID] = r.InVivo
		}
		if err := writeJSONFile(opts.DGJSONPath, dump); err != nil {
			return fmt.Errorf("export dG_r: %w", err)
		}
	}
	return nil
}

func writeJSONFile(path string, v any) (retErr error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); retErr == nil {
			retErr = cerr
		}
	}()
	return jsonutil.EncodePretty(f, v)
}

func writeResults(ctx context.Context, opts cli.Options, stdout io.Writer, results []analysis.Result) (retErr error) {
	if opts.Output == "sqlite" {
		return writers.WriteSQLite(ctx, opts.OutPath, results)
	}

	out := stdout
	if opts.OutPath != "" && opts.OutPath != "-" {
		f, err := os.Create(opts.OutPath)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); retErr == nil {
				retErr = cerr
			}
		}()
		out = f
	}

	switch opts.Output {
	case "csv":
		return writers.WriteCSV(out, results, opts.Header)
	case "json":
		return writers.WriteJSON(out, results, opts.Pretty)
	case "jsonl":
		return writers.WriteJSONL(out, results)
	default:
		return fmt.Errorf("unknown output format %q", opts.Output)
	}
}
