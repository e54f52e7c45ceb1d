// core/gibbs/standard.go
package gibbs

import (
	"fmt"
	"strings"

	"thermoflux-core/model"
)

// BoundConvention selects how per-metabolite lb/ub propagate to the
// reaction interval. The reference material used both; exactly one applies
// per run.
type BoundConvention int

const (
	// BoundsOrdered swaps lb/ub for reactants (negative coefficients) so
	// that dG_r_lb <= dG_r_ub whenever each input record is well ordered.
	BoundsOrdered BoundConvention = iota
	// BoundsWide uses each record's lb for the reaction lb and ub for the
	// reaction ub on both sides. Wider, but the interval can invert when
	// reactant records have wide ranges.
	BoundsWide
)

func (c BoundConvention) String() string {
	switch c {
	case BoundsOrdered:
		return "ordered"
	case BoundsWide:
		return "wide"
	default:
		return fmt.Sprintf("BoundConvention(%d)", int(c))
	}
}

// ParseBoundConvention maps the CLI spelling to a convention.
func ParseBoundConvention(s string) (BoundConvention, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ordered":
		return BoundsOrdered, nil
	case "wide":
		return BoundsWide, nil
	default:
		return BoundsOrdered, fmt.Errorf("unknown bound convention %q (want ordered or wide)", s)
	}
}

// accumulateBounds folds one participant's [lo,hi] contribution into the
// running interval under the active convention. coeff sign decides the swap
// for BoundsOrdered.
func (c BoundConvention) accumulateBounds(lb, ub *float64, lo, hi, coeff float64) {
	if c == BoundsOrdered && coeff < 0 {
		lo, hi = hi, lo
	}
	*lb += lo * coeff
	*ub += hi * coeff
}

// ReactionEnergy is one reaction's Gibbs energy with uncertainty, kJ/mol.
type ReactionEnergy struct {
	DGr   float64
	Var   float64
	LB    float64
	UB    float64
	Units string
}

// StandardResult is the dG0_r aggregate plus formation-energy coverage.
type StandardResult struct {
	Energy ReactionEnergy
	// Coverage is the fraction of the reaction's metabolites resolved from
	// the measured table; 0 for metabolite-free reactions.
	Coverage float64
}

// StandardEnergy folds per-metabolite formation energies into dG0_r for one
// reaction. Variance sums dG_f_var from measured and estimated records
// alike; bounds follow conv.
func StandardEnergy(m *model.Model, r *model.Reaction, tables EnergyTables, conv BoundConvention) (StandardResult, error) {
	var out StandardResult
	var nMets, nMeasured float64

	for _, p := range m.Participants(r) {
		rec, measured, err := tables.Resolve(p.Metabolite.ID, r.ID)
		if err != nil {
			return StandardResult{}, err
		}
		out.Energy.DGr += rec.DGf * p.Coefficient
		out.Energy.Var += rec.Var
		conv.accumulateBounds(&out.Energy.LB, &out.Energy.UB, rec.LB, rec.UB, p.Coefficient)
		nMets++
		if measured {
			nMeasured++
		}
	}

	out.Energy.Units = UnitsKJPerMol
	if nMets > 0 {
		out.Coverage = nMeasured / nMets
	}
	return out, nil
}

// StandardEnergies runs StandardEnergy over every reaction in model order.
func StandardEnergies(m *model.Model, tables EnergyTables, conv BoundConvention) (map[string]StandardResult, error) {
	out := make(map[string]StandardResult, len(m.Reactions()))
	for _, r := range m.Reactions() {
		res, err := StandardEnergy(m, r, tables, conv)
		if err != nil {
			return nil, err
		}
		out[r.ID] = res
	}
	return out, nil
}
