// pkg/api/results_v1.go
package api

// ResultV1 is the stable JSON/JSONL schema for per-reaction feasibility
// results. Keep fields, names, and types stable. Add new fields only with
// ",omitempty".
type ResultV1 struct {
	ReactionID      string `json:"reaction_id"`
	ReactionFormula string `json:"reaction_formula"`

	DG0r    float64 `json:"dG0_r"`
	DG0rVar float64 `json:"dG0_r_var"`
	DG0rLB  float64 `json:"dG0_r_lb"`
	DG0rUB  float64 `json:"dG0_r_ub"`

	DGr    float64 `json:"dG_r"`
	DGrVar float64 `json:"dG_r_var"`
	DGrLB  float64 `json:"dG_r_lb"`
	DGrUB  float64 `json:"dG_r_ub"`

	Keq float64 `json:"Keq"`

	FluxLB float64 `json:"flux_lb"`
	FluxUB float64 `json:"flux_ub"`

	MetabolomicsCoverage float64 `json:"metabolomics_coverage"`
	DGCoverage           float64 `json:"dG_coverage"`

	// IsFeasible is null when the verdict is withheld for lack of
	// measured-data coverage.
	IsFeasible *bool  `json:"is_feasible"`
	Units      string `json:"units"`
}
