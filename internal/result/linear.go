package result

import (
	"github.com/copyleftdev/SOLVR/internal/schema"
	"github.com/copyleftdev/SOLVR/internal/solver"
)

// NormalizeLinearProgram shapes an LP/MIP solve outcome. Values are indexed
// in declared variable order; the objective is recomputed from the declared
// objective expression.
func NormalizeLinearProgram(spec *schema.LinearProgramSpec, out *solver.Outcome, elapsed float64, solverName string) *OptimizationResult {
	info := map[string]interface{}{
		"solver_name":     solverName,
		"num_variables":   len(spec.Variables),
		"num_constraints": len(spec.Constraints),
	}
	if out.Status != solver.StatusOptimal {
		return Failure(out.Status, classify("Linear programming", out), elapsed, info)
	}

	values := make(map[string]float64, len(spec.Variables))
	for i, v := range spec.Variables {
		values[v.Name] = out.Values[i]
	}
	var objective float64
	for name, coeff := range spec.Objective {
		objective += coeff * values[name]
	}

	variables := map[string]interface{}{"values": values}
	return optimal(objective, variables, elapsed, info)
}
