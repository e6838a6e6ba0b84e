// Package result converts engine-native outcomes into the stable
// consumer-facing result contract. On optimal outcomes the family
// normalizers recompute derived metrics from the variable values instead of
// trusting solver-reported aggregates, keeping the objective value and the
// breakdown internally consistent.
package result

import (
	"fmt"

	"github.com/copyleftdev/SOLVR/internal/solver"
)

// OptimizationResult is the only shape that crosses the tool boundary.
// ObjectiveValue and Variables are null unless the status is optimal;
// ErrorMessage is set exactly when the status is not optimal.
type OptimizationResult struct {
	Status         solver.Status          `json:"status"`
	ObjectiveValue *float64               `json:"objective_value"`
	Variables      map[string]interface{} `json:"variables"`
	ExecutionTime  float64                `json:"execution_time"`
	SolverInfo     map[string]interface{} `json:"solver_info"`
	ErrorMessage   *string                `json:"error_message"`
}

// Failure builds a terminal non-optimal result.
func Failure(status solver.Status, message string, elapsed float64, info map[string]interface{}) *OptimizationResult {
	if info == nil {
		info = map[string]interface{}{}
	}
	return &OptimizationResult{
		Status:        status,
		ExecutionTime: elapsed,
		SolverInfo:    info,
		ErrorMessage:  &message,
	}
}

// ValidationFailure reports a pre-compilation input error.
func ValidationFailure(err error, elapsed float64) *OptimizationResult {
	return Failure(solver.StatusError, err.Error(), elapsed, nil)
}

func optimal(objective float64, variables map[string]interface{}, elapsed float64, info map[string]interface{}) *OptimizationResult {
	return &OptimizationResult{
		Status:         solver.StatusOptimal,
		ObjectiveValue: &objective,
		Variables:      variables,
		ExecutionTime:  elapsed,
		SolverInfo:     info,
	}
}

// classify maps a non-optimal outcome onto a stable human-readable message.
// Engine panics and internal failures arrive pre-classified in the outcome
// message; raw stack traces never reach this layer.
func classify(label string, out *solver.Outcome) string {
	switch out.Status {
	case solver.StatusInfeasible:
		return fmt.Sprintf("%s problem is infeasible. Check constraints.", label)
	case solver.StatusUnbounded:
		return fmt.Sprintf("%s problem is unbounded.", label)
	default:
		if out.Message != "" {
			return out.Message
		}
		return fmt.Sprintf("%s solver failed.", label)
	}
}
