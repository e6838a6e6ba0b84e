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

func (r *Registry) solveKnapsack(ctx context.Context, args json.RawMessage) *result.OptimizationResult {
	start := time.Now()

	spec, err := schema.ParseKnapsack(args)
	if err != nil {
		return result.ValidationFailure(err, time.Since(start).Seconds())
	}

	opts := r.knapsackOptions()
	model, err := compiler.CompileKnapsack(spec)
	if err != nil {
		return result.Failure(solver.StatusError, err.Error(), time.Since(start).Seconds(), nil)
	}
	out := solver.Solve(ctx, model, opts)
	return result.NormalizeKnapsack(spec, out, time.Since(start).Seconds(), opts.Backend)
}
