package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thermoflux-core/feasibility"
	"thermoflux-core/gibbs"
	"thermoflux-core/model"
)

// fixture: two unimolecular conversions in one compartment, all data
// measured, all concentrations equal so the correction terms cancel.
func fixtureInputs(t *testing.T) Inputs {
	t.Helper()
	mets := []model.Metabolite{
		{ID: "a_c", Name: "A", Compartment: "c"},
		{ID: "b_c", Name: "B", Compartment: "c"},
		{ID: "c_c", Name: "C", Compartment: "c"},
	}
	rxns := []model.Reaction{
		{ID: "R1", Metabolites: map[string]float64{"a_c": -1, "b_c": 1}},
		{ID: "R2", Metabolites: map[string]float64{"b_c": -1, "c_c": 1}},
	}
	m, err := model.New(mets, rxns)
	require.NoError(t, err)

	conc := gibbs.Concentration{Conc: 1e-3, Var: 0, LB: 1e-3, UB: 1e-3, Units: "M"}
	return Inputs{
		Model: m,
		Energies: gibbs.EnergyTables{
			Measured: map[string]gibbs.FormationEnergy{
				"a_c": {DGf: -10, Var: 1, LB: -11, UB: -9, Units: "kJ/mol"},
				"b_c": {DGf: -20, Var: 2, LB: -22, UB: -18, Units: "kJ/mol"},
				"c_c": {DGf: -5, Var: 1, LB: -6, UB: -4, Units: "kJ/mol"},
			},
		},
		Concentrations: gibbs.ConcentrationTables{
			Measured: map[string]gibbs.Concentration{
				"a_c": conc, "b_c": conc, "c_c": conc,
			},
		},
		Conditions: map[string]gibbs.Conditions{
			"c": {PH: 7, IonicStrength: 0.25, Temperature: 298.15},
		},
		Flux: map[string]feasibility.FluxBounds{
			"R1": {LB: 0, UB: 10},
			"R2": {LB: 1, UB: 10},
		},
	}
}

func defaultConfig() Config {
	return Config{Thresholds: feasibility.DefaultThresholds(), Convention: gibbs.BoundsOrdered, Threads: 2}
}

func TestRunVerdictsAndOrder(t *testing.T) {
	results, err := Run(context.Background(), defaultConfig(), fixtureInputs(t))
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Output order equals model order regardless of worker scheduling.
	assert.Equal(t, "R1", results[0].ReactionID)
	assert.Equal(t, "R2", results[1].ReactionID)

	// R1: dG0_r = -20 - (-10) = -10; equal concentrations cancel.
	r1 := results[0]
	assert.InDelta(t, -10, r1.Standard.Energy.DGr, 1e-9)
	assert.InDelta(t, -10, r1.InVivo.Energy.DGr, 1e-9)
	assert.InDelta(t, 3, r1.Standard.Energy.Var, 1e-9)
	assert.Equal(t, "a_c --> b_c", r1.Formula)
	assert.Equal(t, 1.0, r1.Standard.Coverage)
	assert.Equal(t, 1.0, r1.InVivo.Coverage)
	require.True(t, r1.Verdict.Evaluated)
	assert.True(t, r1.Verdict.Feasible)

	// R2: dG0_r = -5 - (-20) = +15, forward-only flux, infeasible.
	r2 := results[1]
	assert.InDelta(t, 15, r2.Standard.Energy.DGr, 1e-9)
	require.True(t, r2.Verdict.Evaluated)
	assert.False(t, r2.Verdict.Feasible)
}

func TestRunOrderedBounds(t *testing.T) {
	results, err := Run(context.Background(), defaultConfig(), fixtureInputs(t))
	require.NoError(t, err)

	// R1 ordered interval: reactant a_c swaps its [lb,ub], so
	// lb = -22 + 9 = -13 and ub = -18 + 11 = -7.
	r1 := results[0]
	assert.InDelta(t, -13, r1.Standard.Energy.LB, 1e-9)
	assert.InDelta(t, -7, r1.Standard.Energy.UB, 1e-9)
	assert.LessOrEqual(t, r1.InVivo.Energy.LB, r1.InVivo.Energy.UB)
}

func TestRunWithheldVerdict(t *testing.T) {
	in := fixtureInputs(t)
	// Demote b_c's concentration to estimated: R1 coverage drops to 0.5,
	// which does not clear the strict >0.5 gate.
	in.Concentrations.Estimated = map[string]gibbs.Concentration{
		"b_c": in.Concentrations.Measured["b_c"],
	}
	delete(in.Concentrations.Measured, "b_c")

	results, err := Run(context.Background(), defaultConfig(), in)
	require.NoError(t, err)
	assert.Equal(t, 0.5, results[0].InVivo.Coverage)
	assert.False(t, results[0].Verdict.Evaluated)
}

func TestRunMissingFluxFails(t *testing.T) {
	in := fixtureInputs(t)
	delete(in.Flux, "R2")

	_, err := Run(context.Background(), defaultConfig(), in)
	require.Error(t, err)
	var miss *gibbs.MissingDataError
	require.ErrorAs(t, err, &miss)
	assert.Equal(t, "flux", miss.Kind)
	assert.Equal(t, "R2", miss.ReactionID)
}

func TestRunMissingEnergyFails(t *testing.T) {
	in := fixtureInputs(t)
	delete(in.Energies.Measured, "c_c")

	_, err := Run(context.Background(), defaultConfig(), in)
	require.Error(t, err)
	var miss *gibbs.MissingDataError
	require.ErrorAs(t, err, &miss)
	assert.Equal(t, "dG_f", miss.Kind)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, defaultConfig(), fixtureInputs(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummarize(t *testing.T) {
	results, err := Run(context.Background(), defaultConfig(), fixtureInputs(t))
	require.NoError(t, err)

	s := Summarize(results)
	assert.Equal(t, 2, s.Reactions)
	assert.Equal(t, 2, s.Evaluated)
	assert.Equal(t, 1, s.Feasible)
	require.Len(t, s.Infeasible, 1)
	assert.Equal(t, "R2", s.Infeasible[0].ReactionID)
}
