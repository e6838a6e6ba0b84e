package simplex

import (
	"context"
	"math"
	"time"

	"github.com/copyleftdev/SOLVR/internal/solver"
)

// intTol is how far a relaxation value may sit from an integer and still
// count as integral.
const intTol = 1e-6

// node is one subproblem in the branch-and-bound tree, expressed as bound
// overrides on the original variables.
type node struct {
	lower []float64
	upper []float64
}

// branchAndBound solves a model with integer or binary variables by
// depth-first search over LP relaxations. The best integral solution found
// within the node and time budget is returned; if the budget runs out before
// any integral solution is found, the outcome is an error status.
func (e *Engine) branchAndBound(ctx context.Context, model *solver.Model, opts solver.Options) (*solver.Outcome, error) {
	var deadline time.Time
	if opts.TimeLimit > 0 {
		deadline = time.Now().Add(opts.TimeLimit)
	}
	maxNodes := opts.MaxNodes
	if maxNodes <= 0 {
		maxNodes = solver.DefaultOptions().MaxNodes
	}

	n := len(model.Variables)
	root := node{lower: make([]float64, n), upper: make([]float64, n)}
	for j, v := range model.Variables {
		root.lower[j], root.upper[j] = v.Lower, v.Upper
	}

	pool := newWorkPool()
	stack := []node{root}
	var best *solver.Outcome
	bestNorm := math.Inf(1)
	nodes := 0
	limited := ""

	for len(stack) > 0 {
		select {
		case <-ctx.Done():
			limited = "solve cancelled"
		default:
		}
		if limited == "" && nodes >= maxNodes {
			limited = "node limit reached"
		}
		if limited == "" && !deadline.IsZero() && time.Now().After(deadline) {
			limited = "time limit reached"
		}
		if limited != "" {
			break
		}

		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nodes++

		out, err := e.solveRelaxation(model, nd.lower, nd.upper, pool)
		if err != nil {
			return nil, err
		}
		switch out.Status {
		case solver.StatusInfeasible:
			continue
		case solver.StatusUnbounded:
			// An unbounded relaxation means the integer problem has no
			// finite optimum either (or is infeasible, which the search
			// cannot distinguish cheaply).
			return out, nil
		}

		norm := normalized(model.Sense, out.Objective)
		if norm >= bestNorm-1e-9 {
			continue
		}

		j, frac := mostFractional(model, out.Values)
		if j < 0 {
			rounded := roundIntegral(model, out.Values)
			cand := &solver.Outcome{
				Status:    solver.StatusOptimal,
				Objective: model.ObjectiveValue(rounded),
				Values:    rounded,
			}
			if cn := normalized(model.Sense, cand.Objective); cn < bestNorm {
				best, bestNorm = cand, cn
			}
			continue
		}

		down := node{lower: cloneBounds(nd.lower), upper: cloneBounds(nd.upper)}
		down.upper[j] = math.Floor(frac)
		up := node{lower: cloneBounds(nd.lower), upper: cloneBounds(nd.upper)}
		up.lower[j] = math.Ceil(frac)
		stack = append(stack, down, up)
	}

	if best != nil {
		return best, nil
	}
	if limited != "" {
		return &solver.Outcome{
			Status:  solver.StatusError,
			Message: limited + " before an integral solution was found",
		}, nil
	}
	return &solver.Outcome{
		Status:  solver.StatusInfeasible,
		Message: "no feasible integer solution",
	}, nil
}

// normalized maps an objective value into minimize space so incumbents
// compare uniformly.
func normalized(sense solver.Sense, obj float64) float64 {
	if sense == solver.Maximize {
		return -obj
	}
	return obj
}

// mostFractional returns the integer-domain variable whose relaxation value
// is farthest from integral, or -1 when the point is integral.
func mostFractional(model *solver.Model, x []float64) (int, float64) {
	bestJ, bestDist, bestVal := -1, intTol, 0.0
	for j, v := range model.Variables {
		if v.Domain == solver.Continuous {
			continue
		}
		f := x[j] - math.Floor(x[j])
		dist := math.Min(f, 1-f)
		if dist > bestDist {
			bestJ, bestDist, bestVal = j, dist, x[j]
		}
	}
	return bestJ, bestVal
}

// roundIntegral snaps near-integral values of integer-domain variables.
func roundIntegral(model *solver.Model, x []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	for j, v := range model.Variables {
		if v.Domain != solver.Continuous {
			out[j] = math.Round(out[j])
		}
	}
	return out
}

func cloneBounds(b []float64) []float64 {
	out := make([]float64, len(b))
	copy(out, b)
	return out
}
