// internal/loaders/tables.go
package loaders

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"thermoflux-core/gibbs"
)

// header indexes a CSV header row by lowercased column name.
type header map[string]int

func indexHeader(row []string) header {
	h := make(header, len(row))
	for i, name := range row {
		h[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return h
}

func (h header) field(row []string, name string) (string, error) {
	i, ok := h[name]
	if !ok {
		return "", fmt.Errorf("missing column %q", name)
	}
	if i >= len(row) {
		return "", fmt.Errorf("short row: no value for %q", name)
	}
	return strings.TrimSpace(row[i]), nil
}

func (h header) float(row []string, name string) (float64, error) {
	s, err := h.field(row, name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", name, err)
	}
	return v, nil
}

func readCSV(path string, each func(h header, row []string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	head, err := r.Read()
	if err != nil {
		return fmt.Errorf("%s: read header: %w", path, err)
	}
	h := indexHeader(head)
	line := 1
	for {
		row, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		line++
		if err := each(h, row); err != nil {
			return fmt.Errorf("%s line %d: %w", path, line, err)
		}
	}
}

// LoadEnergyCSV reads a formation-energy table
// (metabolite_id,dG_f,dG_f_var,dG_f_lb,dG_f_ub,dG_f_units).
func LoadEnergyCSV(path string) (map[string]gibbs.FormationEnergy, error) {
	out := map[string]gibbs.FormationEnergy{}
	err := readCSV(path, func(h header, row []string) error {
		id, err := h.field(row, "metabolite_id")
		if err != nil {
			return err
		}
		if id == "" {
			return fmt.Errorf("empty metabolite_id")
		}
		var rec gibbs.FormationEnergy
		if rec.DGf, err = h.float(row, "dg_f"); err != nil {
			return err
		}
		if rec.Var, err = h.float(row, "dg_f_var"); err != nil {
			return err
		}
		if rec.LB, err = h.float(row, "dg_f_lb"); err != nil {
			return err
		}
		if rec.UB, err = h.float(row, "dg_f_ub"); err != nil {
			return err
		}
		if rec.Units, err = h.field(row, "dg_f_units"); err != nil {
			return err
		}
		out[id] = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// LoadConcentrationCSV reads a concentration table
// (metabolite_id,concentration,concentration_var,concentration_lb,
// concentration_ub,concentration_units).
func LoadConcentrationCSV(path string) (map[string]gibbs.Concentration, error) {
	out := map[string]gibbs.Concentration{}
	err := readCSV(path, func(h header, row []string) error {
		id, err := h.field(row, "metabolite_id")
		if err != nil {
			return err
		}
		if id == "" {
			return fmt.Errorf("empty metabolite_id")
		}
		var rec gibbs.Concentration
		if rec.Conc, err = h.float(row, "concentration"); err != nil {
			return err
		}
		if rec.Var, err = h.float(row, "concentration_var"); err != nil {
			return err
		}
		if rec.LB, err = h.float(row, "concentration_lb"); err != nil {
			return err
		}
		if rec.UB, err = h.float(row, "concentration_ub"); err != nil {
			return err
		}
		if rec.Units, err = h.field(row, "concentration_units"); err != nil {
			return err
		}
		out[id] = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// LoadConditionsCSV reads per-compartment conditions
// (compartment,pH,ionic_strength,temperature). Temperature is Kelvin.
func LoadConditionsCSV(path string) (map[string]gibbs.Conditions, error) {
	out := map[string]gibbs.Conditions{}
	err := readCSV(path, func(h header, row []string) error {
		comp, err := h.field(row, "compartment")
		if err != nil {
			return err
		}
		if comp == "" {
			return fmt.Errorf("empty compartment")
		}
		var c gibbs.Conditions
		if c.PH, err = h.float(row, "ph"); err != nil {
			return err
		}
		if c.IonicStrength, err = h.float(row, "ionic_strength"); err != nil {
			return err
		}
		if c.Temperature, err = h.float(row, "temperature"); err != nil {
			return err
		}
		if c.Temperature <= 0 {
			return fmt.Errorf("compartment %q: temperature must be positive Kelvin", comp)
		}
		out[comp] = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
