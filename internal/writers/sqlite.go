// internal/writers/sqlite.go
package writers

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"thermoflux/internal/analysis"
	"thermoflux/internal/report"
)

const resultsSchema = `CREATE TABLE IF NOT EXISTS results (
	reaction_id           TEXT PRIMARY KEY,
	reaction_formula      TEXT NOT NULL,
	dG0_r                 REAL NOT NULL,
	dG0_r_var             REAL NOT NULL,
	dG0_r_lb              REAL NOT NULL,
	dG0_r_ub              REAL NOT NULL,
	dG_r                  REAL NOT NULL,
	dG_r_var              REAL NOT NULL,
	dG_r_lb               REAL NOT NULL,
	dG_r_ub               REAL NOT NULL,
	keq                   REAL NOT NULL,
	flux_lb               REAL NOT NULL,
	flux_ub               REAL NOT NULL,
	metabolomics_coverage REAL NOT NULL,
	dG_coverage           REAL NOT NULL,
	is_feasible           INTEGER,
	units                 TEXT NOT NULL
)`

const resultsInsert = `INSERT OR REPLACE INTO results (
	reaction_id, reaction_formula,
	dG0_r, dG0_r_var, dG0_r_lb, dG0_r_ub,
	dG_r, dG_r_var, dG_r_lb, dG_r_ub,
	keq, flux_lb, flux_ub,
	metabolomics_coverage, dG_coverage, is_feasible, units
) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`

// WriteSQLite persists the result set to a single `results` table, one row
// per reaction, inside one transaction. is_feasible is NULL when the verdict
// is withheld.
func WriteSQLite(ctx context.Context, path string, results []analysis.Result) (retErr error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer func() {
		if cerr := db.Close(); retErr == nil {
			retErr = cerr
		}
	}()

	if _, err := db.ExecContext(ctx, resultsSchema); err != nil {
		return fmt.Errorf("create results table: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, resultsInsert)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range results {
		v := report.ToAPI(r)
		var feasible any
		if v.IsFeasible != nil {
			feasible = *v.IsFeasible
		}
		if _, err := stmt.ExecContext(ctx,
			v.ReactionID, v.ReactionFormula,
			v.DG0r, v.DG0rVar, v.DG0rLB, v.DG0rUB,
			v.DGr, v.DGrVar, v.DGrLB, v.DGrUB,
			v.Keq, v.FluxLB, v.FluxUB,
			v.MetabolomicsCoverage, v.DGCoverage, feasible, v.Units,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert result %q: %w", v.ReactionID, err)
		}
	}
	return tx.Commit()
}
