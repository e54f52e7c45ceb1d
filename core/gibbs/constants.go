// core/gibbs/constants.go
// Physicochemical constants shared by the Gibbs-energy calculations.
// All reaction energies are carried in kJ/mol.
package gibbs

const (
	// R is the gas constant in kJ/(K·mol).
	R = 8.314e-3
	// F is Faraday's constant in kJ/(V·mol).
	F = 96.485

	// Extended Debye-Hückel parameters, mol^0.5·L^-0.5. Declared alongside
	// R and F because the ionic-strength correction carries them, but no
	// active term applies them (ionic strength is accepted and unused).
	DebyeHuckelA = 0.5093
	DebyeHuckelB = 1.6

	// kcal-based variants, kept for unit cross-checks.
	RKcal      = 1.9858775e-3 // kcal/(K·mol)
	FKcalPerMV = 23.062e-3    // kcal/(mV·mol)

	// ReferenceTemperature is the fallback when a reaction has no
	// participants to average compartment temperatures over, in Kelvin.
	ReferenceTemperature = 298.15

	// UnitsKJPerMol tags every reaction-energy record.
	UnitsKJPerMol = "kJ/mol"

	// keqExpCap clamps the Keq exponent to avoid overflow; the resulting
	// equilibrium constant is a documented approximation, not exact.
	keqExpCap = 100.0
)
