// core/gibbs/invivo.go
// In-vivo correction of standard reaction energies: metabolite
// concentrations, membrane potential for transported species, and the
// proton-transfer pH term. Follows Henry et al. 2007 (Biophys J 92:1792)
// for the transport terms and Alberty 2003 for the pH adjustment.
package gibbs

import (
	"fmt"
	"math"

	"thermoflux-core/model"
	"thermoflux-core/transport"
)

// InVivoResult is the corrected dG_r plus the equilibrium constant implied
// by dG0_r and the concentration-data coverage.
type InVivoResult struct {
	Energy ReactionEnergy
	Keq    float64
	// Coverage is the measured fraction over non-hydrogen participants.
	Coverage float64
}

// membraneTerm is the charge-transfer contribution of one transported
// participant: |c|/2 * z/2 * F * (33.3*sign(c)*pH - 143.33/2). The pH-scaled
// electrochemical potential is already in volts, so F stays in kJ/(V·mol)
// with no further scaling.
func membraneTerm(coeff float64, charge int, pH float64) float64 {
	sign := 1.0
	if coeff < 0 {
		sign = -1.0
	}
	return math.Abs(coeff) / 2.0 * float64(charge) / 2.0 * F * (33.3*sign*pH - 143.33/2.0)
}

// InVivoEnergy corrects one reaction's standard energy for concentrations,
// membrane potential and proton transfer. The transport correction is added
// identically to the nominal value and both bounds; it carries no separate
// uncertainty. Variance carries only the standard-energy variance; the
// concentration terms contribute none.
func InVivoEnergy(
	m *model.Model,
	r *model.Reaction,
	std StandardResult,
	concs ConcentrationTables,
	conds map[string]Conditions,
	conv BoundConvention,
) (InVivoResult, error) {
	transported := transport.TransportedNames(m, r)

	var (
		concNom, concLB, concUB float64
		memb, pHCorr            float64
		tempSum                 float64
		tempN                   float64
		nMets, nMeasured        float64
	)

	for _, p := range m.Participants(r) {
		met := p.Metabolite
		cond, err := conditionsFor(conds, met.Compartment, r.ID)
		if err != nil {
			return InVivoResult{}, err
		}
		tempSum += cond.Temperature
		tempN++

		if met.IsHydrogen() {
			// Protons are handled by the pH adjustment, never the
			// concentration sum. A transported proton still contributes the
			// membrane term, plus the asymmetric transfer term: products
			// subtract, reactants add.
			if transported[met.Name] {
				memb += membraneTerm(p.Coefficient, met.Charge, cond.PH)
				term := R * cond.Temperature * math.Ln10 * cond.PH * p.Coefficient / 2.0
				if p.Coefficient > 0 {
					pHCorr -= term
				} else {
					pHCorr += term
				}
			}
			continue
		}

		rec, measured, err := concs.Resolve(met.ID, r.ID)
		if err != nil {
			return InVivoResult{}, err
		}
		if rec.Conc <= 0 || rec.LB <= 0 || rec.UB <= 0 {
			return InVivoResult{}, fmt.Errorf("non-positive concentration for metabolite %q (reaction %q)", met.ID, r.ID)
		}

		rt := R * cond.Temperature
		concNom += rt * math.Log(rec.Conc) * p.Coefficient
		conv.accumulateBounds(&concLB, &concUB, rt*math.Log(rec.LB), rt*math.Log(rec.UB), p.Coefficient)

		if transported[met.Name] {
			memb += membraneTerm(p.Coefficient, met.Charge, cond.PH)
		}
		nMets++
		if measured {
			nMeasured++
		}
	}

	trans := memb + pHCorr

	out := InVivoResult{
		Energy: ReactionEnergy{
			DGr:   std.Energy.DGr + concNom + trans,
			Var:   std.Energy.Var,
			LB:    std.Energy.LB + concLB + trans,
			UB:    std.Energy.UB + concUB + trans,
			Units: UnitsKJPerMol,
		},
	}

	meanT := ReferenceTemperature
	if tempN > 0 {
		meanT = tempSum / tempN
	}
	out.Keq = math.Exp(math.Min(-std.Energy.DGr/(meanT*R), keqExpCap))

	if nMets > 0 {
		out.Coverage = nMeasured / nMets
	}
	return out, nil
}

// InVivoEnergies runs InVivoEnergy over every reaction in model order,
// using the precomputed standard energies as the additive base.
func InVivoEnergies(
	m *model.Model,
	std map[string]StandardResult,
	concs ConcentrationTables,
	conds map[string]Conditions,
	conv BoundConvention,
) (map[string]InVivoResult, error) {
	out := make(map[string]InVivoResult, len(m.Reactions()))
	for _, r := range m.Reactions() {
		base, ok := std[r.ID]
		if !ok {
			return nil, fmt.Errorf("no standard energy for reaction %q", r.ID)
		}
		res, err := InVivoEnergy(m, r, base, concs, conds, conv)
		if err != nil {
			return nil, err
		}
		out[r.ID] = res
	}
	return out, nil
}
