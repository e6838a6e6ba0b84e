package result

import (
	"github.com/copyleftdev/SOLVR/internal/schema"
	"github.com/copyleftdev/SOLVR/internal/solver"
)

// NormalizeAssignment shapes an assignment solve outcome. Values are binary
// pair indicators in row-major (worker, task) order; the total cost is
// recomputed from the selected cells.
func NormalizeAssignment(spec *schema.AssignmentSpec, out *solver.Outcome, elapsed float64, solverName string) *OptimizationResult {
	info := map[string]interface{}{
		"solver_name": solverName,
		"num_workers": len(spec.Workers),
		"num_tasks":   len(spec.Tasks),
	}
	if out.Status != solver.StatusOptimal {
		return Failure(out.Status, classify("Assignment", out), elapsed, info)
	}

	nt := len(spec.Tasks)
	assignments := make([]map[string]interface{}, 0, len(spec.Workers))
	var totalCost float64
	for i, w := range spec.Workers {
		for j, t := range spec.Tasks {
			if out.Values[i*nt+j] > 0.5 {
				assignments = append(assignments, map[string]interface{}{
					"worker": w,
					"task":   t,
					"cost":   spec.Costs[i][j],
				})
				totalCost += spec.Costs[i][j]
			}
		}
	}

	variables := map[string]interface{}{
		"assignments": assignments,
		"total_cost":  totalCost,
	}
	return optimal(totalCost, variables, elapsed, info)
}
