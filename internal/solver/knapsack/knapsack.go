// Package knapsack implements the combinatorial engine for knapsack-shaped
// models: binary or bounded-integer variables, capacity rows only, and a
// maximizing value objective. Single-dimension problems are solved exactly
// by dynamic programming over scaled integer weights; multi-dimension
// problems fall back to depth-first branch and bound with a fractional
// upper bound.
package knapsack

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/copyleftdev/SOLVR/internal/solver"
)

const (
	// weightScale converts fractional weights to integers for the DP table.
	weightScale = 1000
	// maxTableCells caps the DP table before falling back to branch and bound.
	maxTableCells = 20_000_000
)

// Engine solves knapsack models.
type Engine struct{}

func init() {
	solver.Register(&Engine{})
}

// Name returns the backend name used for engine selection.
func (e *Engine) Name() string { return "knapsack" }

// item is one selectable copy of a model variable.
type item struct {
	value   float64
	weights []float64
	varIdx  int
}

// Solve extracts the item/capacity structure from the model and solves it.
func (e *Engine) Solve(ctx context.Context, model *solver.Model, opts solver.Options) (*solver.Outcome, error) {
	items, caps, err := extract(model)
	if err != nil {
		return nil, err
	}

	var deadline time.Time
	if opts.TimeLimit > 0 {
		deadline = time.Now().Add(opts.TimeLimit)
	}

	var chosen []bool
	if len(caps) == 1 && dpFits(items, caps[0]) {
		chosen = solveDP(items, caps[0])
	} else {
		var ok bool
		chosen, ok = solveBnB(ctx, items, caps, deadline)
		if !ok {
			return &solver.Outcome{
				Status:  solver.StatusError,
				Message: "time limit reached before the search completed",
			}, nil
		}
	}

	values := make([]float64, len(model.Variables))
	for i, c := range chosen {
		if c {
			values[items[i].varIdx]++
		}
	}
	return &solver.Outcome{
		Status:    solver.StatusOptimal,
		Objective: model.ObjectiveValue(values),
		Values:    values,
	}, nil
}

// extract validates the model shape and expands bounded-integer variables
// into unit copies.
func extract(model *solver.Model) ([]item, []float64, error) {
	if model.Sense != solver.Maximize {
		return nil, nil, solver.NewError("knapsack models must maximize").WithComponent("knapsack")
	}
	ndim := len(model.Constraints)
	if ndim == 0 {
		return nil, nil, solver.NewError("knapsack models need at least one capacity row").WithComponent("knapsack")
	}
	caps := make([]float64, ndim)
	for d, ct := range model.Constraints {
		if ct.Op != solver.LessEq {
			return nil, nil, solver.NewErrorf("capacity row %s is not an upper bound", ct.Name).WithComponent("knapsack")
		}
		caps[d] = ct.RHS
	}

	var items []item
	for j, v := range model.Variables {
		copies := 1
		switch v.Domain {
		case solver.Binary:
		case solver.Integer:
			if math.IsInf(v.Upper, 1) {
				return nil, nil, solver.NewErrorf("variable %s has no copy limit", v.Name).WithComponent("knapsack")
			}
			copies = int(v.Upper)
		default:
			return nil, nil, solver.NewErrorf("variable %s is not discrete", v.Name).WithComponent("knapsack")
		}
		weights := make([]float64, ndim)
		for d, ct := range model.Constraints {
			weights[d] = ct.Coeffs[j]
		}
		for c := 0; c < copies; c++ {
			items = append(items, item{value: model.Objective[j], weights: weights, varIdx: j})
		}
	}
	return items, caps, nil
}

// dpFits reports whether the scaled DP table stays within the memory guard.
func dpFits(items []item, capacity float64) bool {
	w := int(math.Round(capacity * weightScale))
	return w >= 0 && (len(items)+1)*(w+1) <= maxTableCells
}

// solveDP runs exact 0/1 dynamic programming over scaled integer weights.
func solveDP(items []item, capacity float64) []bool {
	n := len(items)
	limit := int(math.Round(capacity * weightScale))
	w := make([]int, n)
	for i, it := range items {
		w[i] = int(math.Round(it.weights[0] * weightScale))
	}

	dp := make([]float64, limit+1)
	take := make([][]bool, n)
	for i := 0; i < n; i++ {
		take[i] = make([]bool, limit+1)
		for c := limit; c >= w[i]; c-- {
			if cand := dp[c-w[i]] + items[i].value; cand > dp[c] {
				dp[c] = cand
				take[i][c] = true
			}
		}
	}

	chosen := make([]bool, n)
	c := limit
	for i := n - 1; i >= 0; i-- {
		if take[i][c] {
			chosen[i] = true
			c -= w[i]
		}
	}
	return chosen
}

// solveBnB runs depth-first branch and bound. The upper bound relaxes all
// but the first capacity dimension and fills the remainder fractionally by
// value density. Returns ok=false when the deadline interrupts the search.
func solveBnB(ctx context.Context, items []item, caps []float64, deadline time.Time) ([]bool, bool) {
	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return density(items[order[a]]) > density(items[order[b]])
	})
	sorted := make([]item, len(items))
	for i, idx := range order {
		sorted[i] = items[idx]
	}

	best := 0.0
	bestChosen := make([]bool, len(items))
	chosen := make([]bool, len(items))
	interrupted := false
	checked := 0

	var dfs func(idx int, rem []float64, value float64)
	dfs = func(idx int, rem []float64, value float64) {
		if interrupted {
			return
		}
		checked++
		if checked%1024 == 0 {
			select {
			case <-ctx.Done():
				interrupted = true
				return
			default:
			}
			if !deadline.IsZero() && time.Now().After(deadline) {
				interrupted = true
				return
			}
		}
		if value > best {
			best = value
			copy(bestChosen, chosen)
		}
		if idx >= len(sorted) || bound(sorted, idx, rem[0], value) <= best+1e-12 {
			return
		}

		it := sorted[idx]
		if fits(it, rem) {
			for d := range rem {
				rem[d] -= it.weights[d]
			}
			chosen[idx] = true
			dfs(idx+1, rem, value+it.value)
			chosen[idx] = false
			for d := range rem {
				rem[d] += it.weights[d]
			}
		}
		dfs(idx+1, rem, value)
	}

	rem := make([]float64, len(caps))
	copy(rem, caps)
	dfs(0, rem, 0)
	if interrupted {
		return nil, false
	}

	// Undo the density ordering.
	result := make([]bool, len(items))
	for i, idx := range order {
		result[idx] = bestChosen[i]
	}
	return result, true
}

func density(it item) float64 {
	if it.weights[0] <= 0 {
		return math.Inf(1)
	}
	return it.value / it.weights[0]
}

func fits(it item, rem []float64) bool {
	for d, w := range it.weights {
		if w > rem[d]+1e-9 {
			return false
		}
	}
	return true
}

// bound is an admissible upper bound: the fractional knapsack value over the
// first dimension only.
func bound(sorted []item, idx int, rem0, value float64) float64 {
	b := value
	for i := idx; i < len(sorted); i++ {
		w := sorted[i].weights[0]
		if w <= rem0 {
			b += sorted[i].value
			rem0 -= w
		} else if w > 0 {
			b += sorted[i].value * rem0 / w
			break
		}
	}
	return b
}
