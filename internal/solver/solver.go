// Package solver defines the solver-facing model structures and the
// invocation adapter that hides engine-specific behavior behind one
// call contract.
package solver

import (
	"context"
	"fmt"
	"time"
)

// Status is the four-way outcome classification shared by all engines.
type Status string

const (
	StatusOptimal    Status = "optimal"
	StatusInfeasible Status = "infeasible"
	StatusUnbounded  Status = "unbounded"
	StatusError      Status = "error"
)

// Outcome is the engine-native result of one solve call. Objective and
// Values are meaningful only when Status is optimal.
type Outcome struct {
	Status    Status
	Objective float64
	// Values holds one value per model variable, in model order.
	Values []float64
	// Message classifies non-optimal outcomes.
	Message string
}

// Options carries per-call solver configuration. TimeLimit is advisory and
// delegated to the engine; the adapter performs no deadline enforcement of
// its own.
type Options struct {
	Backend   string
	TimeLimit time.Duration
	MaxNodes  int
}

// DefaultOptions returns the options used when the caller supplies none.
func DefaultOptions() Options {
	return Options{Backend: "simplex", TimeLimit: 30 * time.Second, MaxNodes: 10000}
}

// Engine solves a compiled model. Implementations report infeasibility and
// unboundedness through the Outcome status, and reserve the error return for
// internal failures.
type Engine interface {
	Name() string
	Solve(ctx context.Context, model *Model, opts Options) (*Outcome, error)
}

var engines = map[string]Engine{}

// Register makes an engine selectable by backend name. Engines register
// themselves from their package init.
func Register(e Engine) {
	engines[e.Name()] = e
}

// Solve runs the model on the engine selected by opts.Backend. Any engine
// panic or internal error is captured as a Status=error outcome; Solve never
// propagates a crash to its caller.
func Solve(ctx context.Context, model *Model, opts Options) (out *Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = &Outcome{
				Status:  StatusError,
				Message: fmt.Sprintf("solver panic: %v", r),
			}
		}
	}()

	engine, ok := engines[opts.Backend]
	if !ok {
		return &Outcome{
			Status:  StatusError,
			Message: fmt.Sprintf("unknown solver backend %q", opts.Backend),
		}
	}

	result, err := engine.Solve(ctx, model, opts)
	if err != nil {
		return &Outcome{
			Status:  StatusError,
			Message: fmt.Sprintf("solver failure: %v", err),
		}
	}
	return result
}
