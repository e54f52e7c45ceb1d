// core/feasibility/check.go
package feasibility

// FluxBounds are precomputed per-reaction flux-variability bounds,
// sign-bearing, supplied by an external FVA run.
type FluxBounds struct {
	LB float64
	UB float64
}

// Thresholds gate how much measured data a reaction needs before its
// verdict is reported.
type Thresholds struct {
	Concentration   float64
	FormationEnergy float64
}

// DefaultThresholds matches the reference criteria: >50% measured
// concentrations and >99% measured formation energies.
func DefaultThresholds() Thresholds {
	return Thresholds{Concentration: 0.5, FormationEnergy: 0.99}
}

// Verdict is the per-reaction outcome. Evaluated=false means the verdict is
// withheld for lack of measured data, which is distinct from infeasible.
type Verdict struct {
	Feasible  bool
	Evaluated bool
}

// Check applies the second-law sign rule: the reaction is thermodynamically
// consistent if at least one (dG sign, flux sign) combination admits a
// spontaneous flux, i.e. any of the four products is <= 0. Only when all
// four are positive can the allowed flux direction never be favorable.
func Check(dGrLB, dGrUB, fluxLB, fluxUB float64) bool {
	return dGrUB*fluxLB <= 0 ||
		dGrUB*fluxUB <= 0 ||
		dGrLB*fluxLB <= 0 ||
		dGrLB*fluxUB <= 0
}

// Gate wraps a raw check result into a Verdict, withholding it unless both
// coverage metrics clear their thresholds.
func Gate(feasible bool, concCoverage, dGfCoverage float64, th Thresholds) Verdict {
	return Verdict{
		Feasible:  feasible,
		Evaluated: concCoverage > th.Concentration && dGfCoverage > th.FormationEnergy,
	}
}
