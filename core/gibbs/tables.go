// core/gibbs/tables.go
package gibbs

import "fmt"

// FormationEnergy is one metabolite's standard Gibbs energy of formation,
// measured or estimated, in kJ/mol.
type FormationEnergy struct {
	DGf   float64
	Var   float64
	LB    float64
	UB    float64
	Units string
}

// Concentration is one metabolite's intracellular concentration. Values and
// variances carry geometric-mean semantics (computed in ln space upstream).
type Concentration struct {
	Conc  float64
	Var   float64
	LB    float64
	UB    float64
	Units string
}

// Conditions holds the per-compartment physicochemical state. IonicStrength
// is accepted and carried but not applied by any correction term.
type Conditions struct {
	PH            float64
	IonicStrength float64
	Temperature   float64 // Kelvin
}

// MissingDataError reports a metabolite a reaction needs that neither the
// measured nor the estimated table covers. It aborts the whole analysis;
// there is no skip-one-reaction mode.
type MissingDataError struct {
	Kind         string // "dG_f" | "concentration" | "conditions" | "flux"
	MetaboliteID string
	ReactionID   string
}

func (e *MissingDataError) Error() string {
	if e.MetaboliteID == "" {
		return fmt.Sprintf("missing %s data for reaction %q", e.Kind, e.ReactionID)
	}
	return fmt.Sprintf("missing %s data for metabolite %q (reaction %q)", e.Kind, e.MetaboliteID, e.ReactionID)
}

// EnergyTables resolves formation energies measured-first.
type EnergyTables struct {
	Measured  map[string]FormationEnergy
	Estimated map[string]FormationEnergy
}

// Resolve returns the record for metID and whether it came from the
// measured table. Absence from both tables is a MissingDataError.
func (t EnergyTables) Resolve(metID, reactionID string) (FormationEnergy, bool, error) {
	if rec, ok := t.Measured[metID]; ok {
		return rec, true, nil
	}
	if rec, ok := t.Estimated[metID]; ok {
		return rec, false, nil
	}
	return FormationEnergy{}, false, &MissingDataError{Kind: "dG_f", MetaboliteID: metID, ReactionID: reactionID}
}

// ConcentrationTables resolves concentrations measured-first.
type ConcentrationTables struct {
	Measured  map[string]Concentration
	Estimated map[string]Concentration
}

func (t ConcentrationTables) Resolve(metID, reactionID string) (Concentration, bool, error) {
	if rec, ok := t.Measured[metID]; ok {
		return rec, true, nil
	}
	if rec, ok := t.Estimated[metID]; ok {
		return rec, false, nil
	}
	return Concentration{}, false, &MissingDataError{Kind: "concentration", MetaboliteID: metID, ReactionID: reactionID}
}

// conditionsFor fails with a MissingDataError so a compartment without pH or
// temperature aborts like any other unresolved lookup.
func conditionsFor(conds map[string]Conditions, compartment, reactionID string) (Conditions, error) {
	c, ok := conds[compartment]
	if !ok {
		return Conditions{}, &MissingDataError{Kind: "conditions", MetaboliteID: compartment, ReactionID: reactionID}
	}
	return c, nil
}
