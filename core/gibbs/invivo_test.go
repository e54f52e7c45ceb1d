package gibbs

import (
	"errors"
	"math"
	"testing"

	"thermoflux-core/model"
)

func condsC() map[string]Conditions {
	return map[string]Conditions{
		"c": {PH: 7.0, IonicStrength: 0.25, Temperature: 298.15},
		"e": {PH: 5.5, IonicStrength: 0.25, Temperature: 310.0},
	}
}

func abModel(t *testing.T) *model.Model {
	t.Helper()
	m, err := model.New(
		[]model.Metabolite{
			{ID: "a_c", Name: "A", Compartment: "c"},
			{ID: "b_c", Name: "B", Compartment: "c"},
		},
		[]model.Reaction{{ID: "AB", Metabolites: map[string]float64{"a_c": -1, "b_c": 1}}},
	)
	if err != nil {
		t.Fatalf("model.New: %v", err)
	}
	return m
}

func abConcs() ConcentrationTables {
	return ConcentrationTables{
		Measured: map[string]Concentration{
			"a_c": {Conc: 1e-3, Var: 0.1, LB: 5e-4, UB: 2e-3},
		},
		Estimated: map[string]Concentration{
			"b_c": {Conc: 1e-3, Var: 0.2, LB: 5e-4, UB: 2e-3},
		},
	}
}

func TestInVivoConcentrationCorrection(t *testing.T) {
	m := abModel(t)
	r, _ := m.Reaction("AB")
	std := StandardResult{Energy: ReactionEnergy{DGr: 5, Var: 3.5, LB: 1, UB: 9, Units: UnitsKJPerMol}, Coverage: 1}

	got, err := InVivoEnergy(m, r, std, abConcs(), condsC(), BoundsOrdered)
	if err != nil {
		t.Fatalf("InVivoEnergy: %v", err)
	}

	// Equal concentrations on both sides cancel in the nominal term.
	if !approx(got.Energy.DGr, 5) {
		t.Errorf("DGr = %v, want 5", got.Energy.DGr)
	}
	if !approx(got.Energy.Var, 3.5) {
		t.Errorf("Var = %v, want the standard variance only", got.Energy.Var)
	}

	rt := R * 298.15
	// ordered: product b uses [ln lb, ln ub], reactant a swaps.
	lb := 1 + rt*math.Log(5e-4)*1 + rt*math.Log(2e-3)*(-1)
	ub := 9 + rt*math.Log(2e-3)*1 + rt*math.Log(5e-4)*(-1)
	if !approx(got.Energy.LB, lb) {
		t.Errorf("LB = %v, want %v", got.Energy.LB, lb)
	}
	if !approx(got.Energy.UB, ub) {
		t.Errorf("UB = %v, want %v", got.Energy.UB, ub)
	}
	if got.Energy.LB > got.Energy.UB {
		t.Error("ordered convention must keep lb <= ub")
	}

	if !approx(got.Coverage, 0.5) {
		t.Errorf("Coverage = %v, want 0.5", got.Coverage)
	}
	// Keq from dG0_r at the (single-compartment) mean temperature.
	wantKeq := math.Exp(-5 / (298.15 * R))
	if !approx(got.Keq, wantKeq) {
		t.Errorf("Keq = %v, want %v", got.Keq, wantKeq)
	}
}

func TestInVivoKeqClamp(t *testing.T) {
	m := abModel(t)
	r, _ := m.Reaction("AB")
	std := StandardResult{Energy: ReactionEnergy{DGr: -1e6, Units: UnitsKJPerMol}}

	got, err := InVivoEnergy(m, r, std, abConcs(), condsC(), BoundsOrdered)
	if err != nil {
		t.Fatalf("InVivoEnergy: %v", err)
	}
	if !approx(got.Keq, math.Exp(100)) {
		t.Errorf("Keq = %v, want exp(100) exactly (clamped)", got.Keq)
	}
	if math.IsInf(got.Keq, 1) {
		t.Error("Keq overflowed despite clamp")
	}
}

func TestInVivoTransportedProton(t *testing.T) {
	m, err := model.New(
		[]model.Metabolite{
			{ID: "h_e", Name: "h", Compartment: "e", Charge: 1},
			{ID: "h_c", Name: "h", Compartment: "c", Charge: 1},
		},
		[]model.Reaction{{ID: "Ht", Metabolites: map[string]float64{"h_e": -1, "h_c": 1}}},
	)
	if err != nil {
		t.Fatalf("model.New: %v", err)
	}
	r, _ := m.Reaction("Ht")
	conds := condsC()

	got, err := InVivoEnergy(m, r, StandardResult{}, ConcentrationTables{}, conds, BoundsOrdered)
	if err != nil {
		t.Fatalf("InVivoEnergy: %v", err)
	}

	// Both species are hydrogens: concentration sum empty, coverage 0.
	if got.Coverage != 0 {
		t.Errorf("Coverage = %v, want 0 (protons excluded)", got.Coverage)
	}

	memb := 1.0/2.0*1.0/2.0*F*(33.3*1*conds["c"].PH-143.33/2.0) +
		1.0/2.0*1.0/2.0*F*(33.3*(-1)*conds["e"].PH-143.33/2.0)
	pH := -R*conds["c"].Temperature*math.Ln10*conds["c"].PH*1/2.0 +
		R*conds["e"].Temperature*math.Ln10*conds["e"].PH*(-1)/2.0
	want := memb + pH
	if !approx(got.Energy.DGr, want) {
		t.Errorf("DGr = %v, want %v (membrane + pH terms)", got.Energy.DGr, want)
	}
	// Transport correction shifts nominal and both bounds identically.
	if !approx(got.Energy.LB, want) || !approx(got.Energy.UB, want) {
		t.Errorf("bounds = [%v,%v], want both %v", got.Energy.LB, got.Energy.UB, want)
	}
}

func TestInVivoMembraneTermForTransportedSpecies(t *testing.T) {
	m, err := model.New(
		[]model.Metabolite{
			{ID: "pi_e", Name: "Pi", Compartment: "e", Charge: -2},
			{ID: "pi_c", Name: "Pi", Compartment: "c", Charge: -2},
		},
		[]model.Reaction{{ID: "PIt", Metabolites: map[string]float64{"pi_e": -1, "pi_c": 1}}},
	)
	if err != nil {
		t.Fatalf("model.New: %v", err)
	}
	r, _ := m.Reaction("PIt")
	conds := condsC()
	concs := ConcentrationTables{Measured: map[string]Concentration{
		"pi_e": {Conc: 1e-3, LB: 1e-3, UB: 1e-3},
		"pi_c": {Conc: 1e-3, LB: 1e-3, UB: 1e-3},
	}}

	got, err := InVivoEnergy(m, r, StandardResult{}, concs, conds, BoundsOrdered)
	if err != nil {
		t.Fatalf("InVivoEnergy: %v", err)
	}

	// Equal point concentrations do not cancel exactly: each side scales
	// its ln term by its own compartment temperature, leaving a
	// R*(Tc-Te)*ln(conc) residual next to the membrane term. No pH term:
	// neither species is a hydrogen ion.
	memb := 1.0/2.0*(-2.0)/2.0*F*(33.3*1*conds["c"].PH-143.33/2.0) +
		1.0/2.0*(-2.0)/2.0*F*(33.3*(-1)*conds["e"].PH-143.33/2.0)
	conc := R * (conds["c"].Temperature - conds["e"].Temperature) * math.Log(1e-3)
	want := memb + conc
	if !approx(got.Energy.DGr, want) {
		t.Errorf("DGr = %v, want %v (membrane + temperature residual)", got.Energy.DGr, want)
	}
	if !approx(got.Coverage, 1) {
		t.Errorf("Coverage = %v, want 1 (both measured)", got.Coverage)
	}
}

func TestInVivoMissingConcentration(t *testing.T) {
	m := abModel(t)
	r, _ := m.Reaction("AB")
	concs := abConcs()
	delete(concs.Estimated, "b_c")

	_, err := InVivoEnergy(m, r, StandardResult{}, concs, condsC(), BoundsOrdered)
	var miss *MissingDataError
	if !errors.As(err, &miss) {
		t.Fatalf("err = %v, want MissingDataError", err)
	}
	if miss.Kind != "concentration" || miss.MetaboliteID != "b_c" {
		t.Errorf("unexpected error detail: %+v", miss)
	}
}

func TestInVivoNonPositiveConcentration(t *testing.T) {
	m := abModel(t)
	r, _ := m.Reaction("AB")
	concs := abConcs()
	concs.Measured["a_c"] = Concentration{Conc: 0, LB: 0, UB: 0}

	if _, err := InVivoEnergy(m, r, StandardResult{}, concs, condsC(), BoundsOrdered); err == nil {
		t.Fatal("expected error for non-positive concentration")
	}
}

func TestInVivoMissingConditions(t *testing.T) {
	m := abModel(t)
	r, _ := m.Reaction("AB")

	_, err := InVivoEnergy(m, r, StandardResult{}, abConcs(), map[string]Conditions{}, BoundsOrdered)
	var miss *MissingDataError
	if !errors.As(err, &miss) {
		t.Fatalf("err = %v, want MissingDataError for conditions", err)
	}
	if miss.Kind != "conditions" {
		t.Errorf("Kind = %q, want conditions", miss.Kind)
	}
}
