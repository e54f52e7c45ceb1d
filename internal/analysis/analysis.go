// internal/analysis/analysis.go
// Per-reaction analysis pipeline: standard energies, in-vivo correction,
// feasibility verdicts. Reactions are independent, so the work fans out over
// a worker pool; results land in an index-addressed slice so output order
// always equals model order.
package analysis

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"thermoflux-core/feasibility"
	"thermoflux-core/gibbs"
	"thermoflux-core/model"
)

// Config controls one analysis run.
type Config struct {
	Thresholds feasibility.Thresholds
	Convention gibbs.BoundConvention
	Threads    int // 0 = all CPUs
}

// Inputs bundles the loaded data tables for a run.
type Inputs struct {
	Model          *model.Model
	Energies       gibbs.EnergyTables
	Concentrations gibbs.ConcentrationTables
	Conditions     map[string]gibbs.Conditions
	Flux           map[string]feasibility.FluxBounds
}

// Result is one reaction's full outcome.
type Result struct {
	ReactionID string
	Formula    string
	Standard   gibbs.StandardResult
	InVivo     gibbs.InVivoResult
	Flux       feasibility.FluxBounds
	Verdict    feasibility.Verdict
}

// forEachReaction applies fn to every reaction concurrently. fn writes its
// result through the index so no ordering work is needed afterwards. The
// first error wins and cancels the rest via ctx.
func forEachReaction(ctx context.Context, threads int, reactions []*model.Reaction, fn func(i int, r *model.Reaction) error) error {
	if threads < 1 {
		threads = runtime.NumCPU()
	}
	if threads > len(reactions) && len(reactions) > 0 {
		threads = len(reactions)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int, threads*2)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		ferr error
	)
	fail := func(err error) {
		mu.Lock()
		if ferr == nil {
			ferr = err
		}
		mu.Unlock()
		cancel()
	}

	wg.Add(threads)
	for w := 0; w < threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case i, ok := <-jobs:
					if !ok {
						return
					}
					if err := fn(i, reactions[i]); err != nil {
						fail(err)
						return
					}
				}
			}
		}()
	}

feed:
	for i := range reactions {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if ferr != nil {
		return ferr
	}
	return ctx.Err()
}

// Run executes the full analysis and returns per-reaction results in model
// order. Any missing datum (energy, concentration, conditions, flux) aborts
// the whole run; there is no partial-results mode.
func Run(ctx context.Context, cfg Config, in Inputs) ([]Result, error) {
	reactions := in.Model.Reactions()
	results := make([]Result, len(reactions))

	err := forEachReaction(ctx, cfg.Threads, reactions, func(i int, r *model.Reaction) error {
		std, err := gibbs.StandardEnergy(in.Model, r, in.Energies, cfg.Convention)
		if err != nil {
			return err
		}
		viv, err := gibbs.InVivoEnergy(in.Model, r, std, in.Concentrations, in.Conditions, cfg.Convention)
		if err != nil {
			return err
		}
		flux, ok := in.Flux[r.ID]
		if !ok {
			return &gibbs.MissingDataError{Kind: "flux", ReactionID: r.ID}
		}
		feas := feasibility.Check(viv.Energy.LB, viv.Energy.UB, flux.LB, flux.UB)
		results[i] = Result{
			ReactionID: r.ID,
			Formula:    in.Model.FormulaString(r),
			Standard:   std,
			InVivo:     viv,
			Flux:       flux,
			Verdict:    feasibility.Gate(feas, viv.Coverage, std.Coverage, cfg.Thresholds),
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("analysis: %w", err)
	}
	return results, nil
}

// Summary aggregates run-level counts for end-of-run reporting.
type Summary struct {
	Reactions  int
	Evaluated  int
	Feasible   int
	Infeasible []Result
}

// Summarize counts verdicts and collects the coverage-cleared infeasible
// reactions.
func Summarize(results []Result) Summary {
	s := Summary{Reactions: len(results)}
	for _, r := range results {
		if !r.Verdict.Evaluated {
			continue
		}
		s.Evaluated++
		if r.Verdict.Feasible {
			s.Feasible++
		} else {
			s.Infeasible = append(s.Infeasible, r)
		}
	}
	return s
}
