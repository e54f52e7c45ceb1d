// internal/loaders/model.go
// Loaders for the analysis inputs: model JSON, CSV data tables, and the
// flux-bounds TSV. Each loader validates as it reads and fails on the first
// malformed record.
package loaders

import (
	"encoding/json"
	"fmt"
	"os"

	"thermoflux-core/model"
)

type modelJSON struct {
	Metabolites []struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Compartment string `json:"compartment"`
		Charge      int    `json:"charge"`
	} `json:"metabolites"`
	Reactions []struct {
		ID          string             `json:"id"`
		Name        string             `json:"name"`
		Metabolites map[string]float64 `json:"metabolites"`
	} `json:"reactions"`
}

// LoadModel reads a COBRA-style JSON model (metabolites + reactions with a
// stoichiometry map) and assembles the validated network.
func LoadModel(path string) (*model.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	var raw modelJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}
	mets := make([]model.Metabolite, 0, len(raw.Metabolites))
	for _, m := range raw.Metabolites {
		mets = append(mets, model.Metabolite{
			ID:          m.ID,
			Name:        m.Name,
			Compartment: m.Compartment,
			Charge:      m.Charge,
		})
	}
	rxns := make([]model.Reaction, 0, len(raw.Reactions))
	for _, r := range raw.Reactions {
		if len(r.Metabolites) == 0 {
			return nil, fmt.Errorf("load model %s: reaction %q has no metabolites", path, r.ID)
		}
		rxns = append(rxns, model.Reaction{ID: r.ID, Name: r.Name, Metabolites: r.Metabolites})
	}
	mdl, err := model.New(mets, rxns)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}
	return mdl, nil
}
