// internal/cli/options.go
package cli

import (
	"flag"
	"fmt"
	"strings"
)

type Options struct {
	// Inputs
	ModelPath         string
	DGfPath           string
	DGfEstimatedPath  string
	ConcPath          string
	ConcEstimatedPath string
	ConditionsPath    string
	FluxPath          string

	// Analysis
	ConcCoverage float64
	DGfCoverage  float64
	Bounds       string
	Threads      int

	// Output
	Output             string // csv|json|jsonl|sqlite
	OutPath            string
	Header             bool
	Pretty             bool
	DG0JSONPath        string
	DGJSONPath         string
	InfeasibleExitCode int

	// Misc
	Quiet   bool
	LogJSON bool
	Version bool
}

func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		out := fs.Output()
		_, _ = fmt.Fprintln(out, "Usage:")
		_, _ = fmt.Fprintf(out, "  %s --model model.json --dgf dgf.csv --conc conc.csv \\\n", name)
		_, _ = fmt.Fprintln(out, "      --conditions conditions.csv --flux flux.tsv [options]")

		_, _ = fmt.Fprintln(out, "\nInputs:")
		_, _ = fmt.Fprintln(out, "      --model string           Metabolic model JSON (COBRA-style subset)")
		_, _ = fmt.Fprintln(out, "      --dgf string             Measured formation energies CSV")
		_, _ = fmt.Fprintln(out, "      --dgf-estimated string   Estimated formation energies CSV")
		_, _ = fmt.Fprintln(out, "      --conc string            Measured concentrations CSV")
		_, _ = fmt.Fprintln(out, "      --conc-estimated string  Estimated concentrations CSV")
		_, _ = fmt.Fprintln(out, "      --conditions string      Per-compartment pH/ionic-strength/temperature CSV")
		_, _ = fmt.Fprintln(out, "      --flux string            FVA flux bounds TSV (reaction_id lb ub)")

		_, _ = fmt.Fprintln(out, "\nAnalysis:")
		_, _ = fmt.Fprintln(out, "      --conc-coverage float    Measured-concentration coverage criterion [0.5]")
		_, _ = fmt.Fprintln(out, "      --dgf-coverage float     Measured-dG_f coverage criterion [0.99]")
		_, _ = fmt.Fprintln(out, "      --bounds string          Bound accumulation: ordered | wide [ordered]")
		_, _ = fmt.Fprintln(out, "      --threads int            Worker threads (0=all CPUs) [0]")

		_, _ = fmt.Fprintln(out, "\nOutput:")
		_, _ = fmt.Fprintln(out, "      --output string          csv | json | jsonl | sqlite [csv]")
		_, _ = fmt.Fprintln(out, "      --out string             Output path ('-' or empty = stdout; required for sqlite)")
		_, _ = fmt.Fprintln(out, "      --no-header              Suppress CSV header line [false]")
		_, _ = fmt.Fprintln(out, "      --pretty                 Indent JSON output [false]")
		_, _ = fmt.Fprintln(out, "      --dg0-json string        Also export standard energies to this JSON file")
		_, _ = fmt.Fprintln(out, "      --dg-json string         Also export in-vivo energies to this JSON file")
		_, _ = fmt.Fprintln(out, "      --infeasible-exit-code int")
		_, _ = fmt.Fprintln(out, "                               Exit code when infeasible reactions are found [0]")

		_, _ = fmt.Fprintln(out, "\nMisc:")
		_, _ = fmt.Fprintln(out, "      --quiet, -q              Suppress progress logging [false]")
		_, _ = fmt.Fprintln(out, "      --log-json               JSON logs instead of console format [false]")
		_, _ = fmt.Fprintln(out, "      --version, -v            Print version and exit [false]")
	}
	return fs
}

func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	var help, noHeader bool

	fs.StringVar(&o.ModelPath, "model", "", "metabolic model JSON")
	fs.StringVar(&o.DGfPath, "dgf", "", "measured formation energies CSV")
	fs.StringVar(&o.DGfEstimatedPath, "dgf-estimated", "", "estimated formation energies CSV")
	fs.StringVar(&o.ConcPath, "conc", "", "measured concentrations CSV")
	fs.StringVar(&o.ConcEstimatedPath, "conc-estimated", "", "estimated concentrations CSV")
	fs.StringVar(&o.ConditionsPath, "conditions", "", "compartment conditions CSV")
	fs.StringVar(&o.FluxPath, "flux", "", "flux bounds TSV")

	fs.Float64Var(&o.ConcCoverage, "conc-coverage", 0.5, "measured-concentration coverage criterion")
	fs.Float64Var(&o.DGfCoverage, "dgf-coverage", 0.99, "measured-dG_f coverage criterion")
	fs.StringVar(&o.Bounds, "bounds", "ordered", "bound accumulation: ordered | wide")
	fs.IntVar(&o.Threads, "threads", 0, "worker threads (0=all CPUs)")
	fs.IntVar(&o.Threads, "t", 0, "alias of --threads")

	fs.StringVar(&o.Output, "output", "csv", "output: csv | json | jsonl | sqlite")
	fs.StringVar(&o.Output, "o", "csv", "alias of --output")
	fs.StringVar(&o.OutPath, "out", "", "output path ('-' = stdout)")
	fs.BoolVar(&noHeader, "no-header", false, "suppress CSV header line")
	fs.BoolVar(&o.Pretty, "pretty", false, "indent JSON output")
	fs.StringVar(&o.DG0JSONPath, "dg0-json", "", "export standard energies JSON")
	fs.StringVar(&o.DGJSONPath, "dg-json", "", "export in-vivo energies JSON")
	fs.IntVar(&o.InfeasibleExitCode, "infeasible-exit-code", 0, "exit code when infeasible reactions found")

	fs.BoolVar(&o.Quiet, "quiet", false, "suppress progress logging")
	fs.BoolVar(&o.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&o.LogJSON, "log-json", false, "JSON logs")
	fs.BoolVar(&o.Version, "version", false, "print version and exit")
	fs.BoolVar(&o.Version, "v", false, "alias of --version")
	fs.BoolVar(&help, "h", false, "show this help")

	if err := fs.Parse(argv); err != nil {
		return o, err
	}
	if help {
		return o, flag.ErrHelp
	}
	o.Header = !noHeader
	if o.Version {
		return o, nil
	}
	return o, Validate(&o)
}

// Validate applies the CLI invariants shared by every run mode.
func Validate(o *Options) error {
	if o.ModelPath == "" {
		return fmt.Errorf("--model is required")
	}
	if o.ConditionsPath == "" {
		return fmt.Errorf("--conditions is required")
	}
	if o.FluxPath == "" {
		return fmt.Errorf("--flux is required")
	}
	if o.DGfPath == "" && o.DGfEstimatedPath == "" {
		return fmt.Errorf("provide --dgf and/or --dgf-estimated")
	}
	if o.ConcPath == "" && o.ConcEstimatedPath == "" {
		return fmt.Errorf("provide --conc and/or --conc-estimated")
	}
	if o.ConcCoverage < 0 || o.ConcCoverage > 1 {
		return fmt.Errorf("--conc-coverage must be in [0,1]")
	}
	if o.DGfCoverage < 0 || o.DGfCoverage > 1 {
		return fmt.Errorf("--dgf-coverage must be in [0,1]")
	}
	switch strings.ToLower(o.Bounds) {
	case "ordered", "wide":
	default:
		return fmt.Errorf("--bounds must be 'ordered' or 'wide'")
	}
	if o.Threads < 0 {
		return fmt.Errorf("--threads must be >= 0")
	}
	switch o.Output {
	case "csv", "json", "jsonl", "sqlite":
	default:
		return fmt.Errorf("invalid --output %q", o.Output)
	}
	if o.Output == "sqlite" && (o.OutPath == "" || o.OutPath == "-") {
		return fmt.Errorf("--output sqlite requires --out PATH")
	}
	if o.InfeasibleExitCode < 0 || o.InfeasibleExitCode > 255 {
		return fmt.Errorf("--infeasible-exit-code must be between 0 and 255")
	}
	return nil
}
