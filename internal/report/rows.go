// internal/report/rows.go
// Row shaping for the summary sinks: the CSV column set and the stable
// ResultV1 JSON mapping.
package report

import (
	"strconv"

	"thermoflux/internal/analysis"
	"thermoflux/pkg/api"
)

// Header is the summary column set, in output order.
func Header() []string {
	return []string{
		"reaction_id",
		"reaction_formula",
		"dG0_r",
		"dG_r_lb",
		"dG_r_ub",
		"flux_lb",
		"flux_ub",
		"metabolomics_coverage",
		"dG_coverage",
		"is_feasible",
	}
}

func f(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// Row renders one result as CSV fields matching Header. A withheld verdict
// renders is_feasible as the empty string.
func Row(r analysis.Result) []string {
	feasible := ""
	if r.Verdict.Evaluated {
		feasible = strconv.FormatBool(r.Verdict.Feasible)
	}
	return []string{
		r.ReactionID,
		r.Formula,
		f(r.Standard.Energy.DGr),
		f(r.InVivo.Energy.LB),
		f(r.InVivo.Energy.UB),
		f(r.Flux.LB),
		f(r.Flux.UB),
		f(r.InVivo.Coverage),
		f(r.Standard.Coverage),
		feasible,
	}
}

// ToAPI maps one result onto the versioned JSON schema.
func ToAPI(r analysis.Result) api.ResultV1 {
	out := api.ResultV1{
		ReactionID:      r.ReactionID,
		ReactionFormula: r.Formula,

		DG0r:    r.Standard.Energy.DGr,
		DG0rVar: r.Standard.Energy.Var,
		DG0rLB:  r.Standard.Energy.LB,
		DG0rUB:  r.Standard.Energy.UB,

		DGr:    r.InVivo.Energy.DGr,
		DGrVar: r.InVivo.Energy.Var,
		DGrLB:  r.InVivo.Energy.LB,
		DGrUB:  r.InVivo.Energy.UB,

		Keq: r.InVivo.Keq,

		FluxLB: r.Flux.LB,
		FluxUB: r.Flux.UB,

		MetabolomicsCoverage: r.InVivo.Coverage,
		DGCoverage:           r.Standard.Coverage,

		Units: r.InVivo.Energy.Units,
	}
	if r.Verdict.Evaluated {
		v := r.Verdict.Feasible
		out.IsFeasible = &v
	}
	return out
}
