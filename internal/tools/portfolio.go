package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/copyleftdev/SOLVR/internal/compiler"
	"github.com/copyleftdev/SOLVR/internal/result"
	"github.com/copyleftdev/SOLVR/internal/schema"
	"github.com/copyleftdev/SOLVR/internal/solver"
)

// solvePortfolio runs the portfolio pipeline. The risk_parity objective
// routes to the closed-form heuristic instead of the linear solver.
func (r *Registry) solvePortfolio(ctx context.Context, args json.RawMessage) *result.OptimizationResult {
	start := time.Now()

	spec, err := schema.ParsePortfolio(args)
	if err != nil {
		return result.ValidationFailure(err, time.Since(start).Seconds())
	}

	if spec.Objective == schema.ObjectiveRiskParity {
		amounts, err := compiler.RiskParityAllocations(spec)
		if err != nil {
			return result.Failure(solver.StatusError, err.Error(), time.Since(start).Seconds(), map[string]interface{}{
				"solver_name": "risk_parity_heuristic",
				"num_assets":  len(spec.Assets),
			})
		}
		return result.NormalizeRiskParity(spec, amounts, time.Since(start).Seconds())
	}

	opts := r.lpOptions()
	model, err := compiler.CompilePortfolio(spec)
	if err != nil {
		return result.Failure(solver.StatusError, err.Error(), time.Since(start).Seconds(), nil)
	}
	out := solver.Solve(ctx, model, opts)
	return result.NormalizePortfolio(spec, out, time.Since(start).Seconds(), opts.Backend)
}
