// Package tools is the registration boundary between the protocol layer and
// the optimization pipeline. Each tool takes JSON-decoded arguments, runs
// validate -> compile -> solve -> normalize and always returns an
// OptimizationResult: every failure mode lands in the result's status and
// error message, never in a Go error crossing back to the protocol layer.
package tools

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/copyleftdev/SOLVR/internal/result"
	"github.com/copyleftdev/SOLVR/internal/solver"

	// Engines self-register by backend name.
	_ "github.com/copyleftdev/SOLVR/internal/solver/knapsack"
	_ "github.com/copyleftdev/SOLVR/internal/solver/simplex"
)

// Handler executes one tool call.
type Handler func(ctx context.Context, args json.RawMessage) *result.OptimizationResult

// Tool is one registered optimization capability.
type Tool struct {
	Name        string
	Description string
	Handler     Handler `json:"-"`
}

// Registry holds the registered tools and the solver options applied to
// every call. Registries are immutable after construction and safe for
// concurrent use.
type Registry struct {
	opts  solver.Options
	tools map[string]Tool
}

// NewRegistry builds a registry with the full tool set.
func NewRegistry(opts solver.Options) *Registry {
	r := &Registry{opts: opts, tools: map[string]Tool{}}
	r.add("optimize_portfolio", "Optimize portfolio allocation to maximize return, minimize risk, approximate the Sharpe ratio, or build a risk-parity portfolio.", r.solvePortfolio)
	r.add("solve_knapsack", "Select items maximizing total value under weight (and optional volume) capacity.", r.solveKnapsack)
	r.add("solve_assignment", "Assign workers to tasks minimizing total cost.", r.solveAssignment)
	r.add("solve_transportation", "Route shipments from suppliers to consumers minimizing total cost.", r.solveTransportation)
	r.add("solve_linear_program", "Solve a declared linear or mixed-integer program.", r.solveLinearProgram)
	return r
}

func (r *Registry) add(name, description string, h Handler) {
	r.tools[name] = Tool{Name: name, Description: description, Handler: h}
}

// List returns the registered tools in name order.
func (r *Registry) List() []Tool {
	out := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Call runs the named tool. ok is false when no such tool is registered.
func (r *Registry) Call(ctx context.Context, name string, args json.RawMessage) (res *result.OptimizationResult, ok bool) {
	t, ok := r.tools[name]
	if !ok {
		return nil, false
	}
	return t.Handler(ctx, args), true
}

// lpOptions returns the options used for simplex-backed families.
func (r *Registry) lpOptions() solver.Options {
	opts := r.opts
	if opts.Backend == "" {
		opts.Backend = "simplex"
	}
	return opts
}

// knapsackOptions returns the options for the combinatorial knapsack engine.
func (r *Registry) knapsackOptions() solver.Options {
	opts := r.opts
	opts.Backend = "knapsack"
	return opts
}
