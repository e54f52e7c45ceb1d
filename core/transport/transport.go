// core/transport/transport.go
package transport

import "thermoflux-core/model"

// TransportedNames returns the set of metabolite names that appear more than
// once among a reaction's participants, i.e. the same chemical species in
// two or more compartments. This is the transport heuristic: it does not
// verify that the compartments actually differ, and an empty result simply
// means a non-transport reaction.
func TransportedNames(m *model.Model, r *model.Reaction) map[string]bool {
	counts := map[string]int{}
	for _, p := range m.Participants(r) {
		counts[p.Metabolite.Name]++
	}
	out := map[string]bool{}
	for name, n := range counts {
		if n > 1 {
			out[name] = true
		}
	}
	return out
}
