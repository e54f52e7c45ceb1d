// core/model/model.go
// Read-only shim over an externally built metabolic network. The model owns
// nothing computational: it resolves metabolites, splits reactions into
// reactants/products, and renders formula strings for reporting.
package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Metabolite is one chemical species in one compartment. The same species
// appears as separate records per compartment (e.g. pi_c and pi_e share a
// Name but not an ID).
type Metabolite struct {
	ID          string
	Name        string
	Compartment string
	Charge      int
}

// IsHydrogen reports whether m is the hydrogen-ion species of its
// compartment (id "h_" + compartment tag).
func (m Metabolite) IsHydrogen() bool { return m.ID == "h_"+m.Compartment }

// Reaction maps metabolite id to stoichiometric coefficient; negative
// coefficients are reactants, positive are products. Immutable once loaded.
type Reaction struct {
	ID          string
	Name        string
	Metabolites map[string]float64
}

// Coefficient returns the stoichiometric coefficient of metID in r
// (0 when the metabolite does not participate).
func (r *Reaction) Coefficient(metID string) float64 { return r.Metabolites[metID] }

// Participant pairs a resolved metabolite with its coefficient in one
// reaction.
type Participant struct {
	Metabolite  Metabolite
	Coefficient float64
}

// Model is the ordered, read-only reaction collection.
type Model struct {
	mets      map[string]Metabolite
	reactions []*Reaction
	byID      map[string]*Reaction
}

// New validates that every reaction references known metabolites and
// returns the assembled model. Reaction order is preserved.
func New(mets []Metabolite, reactions []Reaction) (*Model, error) {
	m := &Model{
		mets: make(map[string]Metabolite, len(mets)),
		byID: make(map[string]*Reaction, len(reactions)),
	}
	for _, met := range mets {
		if met.ID == "" {
			return nil, fmt.Errorf("model: metabolite with empty id")
		}
		if _, dup := m.mets[met.ID]; dup {
			return nil, fmt.Errorf("model: duplicate metabolite %q", met.ID)
		}
		m.mets[met.ID] = met
	}
	for i := range reactions {
		r := reactions[i]
		if r.ID == "" {
			return nil, fmt.Errorf("model: reaction with empty id")
		}
		if _, dup := m.byID[r.ID]; dup {
			return nil, fmt.Errorf("model: duplicate reaction %q", r.ID)
		}
		for metID := range r.Metabolites {
			if _, ok := m.mets[metID]; !ok {
				return nil, fmt.Errorf("model: reaction %q references unknown metabolite %q", r.ID, metID)
			}
		}
		rc := r
		m.reactions = append(m.reactions, &rc)
		m.byID[r.ID] = &rc
	}
	return m, nil
}

// Reactions returns reactions in load order.
func (m *Model) Reactions() []*Reaction { return m.reactions }

// Reaction looks a reaction up by id.
func (m *Model) Reaction(id string) (*Reaction, bool) {
	r, ok := m.byID[id]
	return r, ok
}

// Metabolite looks a metabolite up by id.
func (m *Model) Metabolite(id string) (Metabolite, bool) {
	met, ok := m.mets[id]
	return met, ok
}

// Compartments returns the sorted set of compartment tags in the model.
func (m *Model) Compartments() []string {
	seen := map[string]struct{}{}
	for _, met := range m.mets {
		seen[met.Compartment] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// participants returns resolved (metabolite, coefficient) pairs matching
// keep, sorted by metabolite id so iteration is deterministic.
func (m *Model) participants(r *Reaction, keep func(float64) bool) []Participant {
	ids := make([]string, 0, len(r.Metabolites))
	for id, c := range r.Metabolites {
		if keep(c) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	out := make([]Participant, 0, len(ids))
	for _, id := range ids {
		out = append(out, Participant{Metabolite: m.mets[id], Coefficient: r.Metabolites[id]})
	}
	return out
}

// Reactants returns r's negative-coefficient participants, id-sorted.
func (m *Model) Reactants(r *Reaction) []Participant {
	return m.participants(r, func(c float64) bool { return c < 0 })
}

// Products returns r's positive-coefficient participants, id-sorted.
func (m *Model) Products(r *Reaction) []Participant {
	return m.participants(r, func(c float64) bool { return c > 0 })
}

// Participants returns products followed by reactants.
func (m *Model) Participants(r *Reaction) []Participant {
	out := m.Products(r)
	return append(out, m.Reactants(r)...)
}

func formatCoeff(c float64) string {
	if c == 1 {
		return ""
	}
	return strconv.FormatFloat(c, 'g', -1, 64) + " "
}

// FormulaString renders "a + 2 b --> c" from the stoichiometry.
func (m *Model) FormulaString(r *Reaction) string {
	var left, right []string
	for _, p := range m.Reactants(r) {
		left = append(left, formatCoeff(-p.Coefficient)+p.Metabolite.ID)
	}
	for _, p := range m.Products(r) {
		right = append(right, formatCoeff(p.Coefficient)+p.Metabolite.ID)
	}
	return strings.Join(left, " + ") + " --> " + strings.Join(right, " + ")
}
