package compiler

import (
	"github.com/copyleftdev/SOLVR/internal/schema"
	"github.com/copyleftdev/SOLVR/internal/solver"
)

// CompileAssignment builds the bipartite matching model: one binary
// variable per (worker, task) pair in row-major order, a row per worker
// forcing exactly one task (or at most one when idle workers are allowed)
// and a row per task forcing exactly one worker. Ties between equal-cost
// assignments resolve however the solver resolves them.
func CompileAssignment(spec *schema.AssignmentSpec) (*solver.Model, error) {
	m := solver.NewModel("assignment", solver.Minimize)

	nw, nt := len(spec.Workers), len(spec.Tasks)
	for i, w := range spec.Workers {
		for j, t := range spec.Tasks {
			v := m.AddVariable("assign_"+w+"_"+t, solver.Binary, 0, 1)
			m.SetObjective(v, spec.Costs[i][j])
		}
	}

	for i, w := range spec.Workers {
		row := make([]float64, nw*nt)
		for j := 0; j < nt; j++ {
			row[i*nt+j] = 1
		}
		op := solver.Equal
		if spec.AllowIdleWorkers {
			op = solver.LessEq
		}
		m.AddConstraint("worker_"+w, row, op, 1)
	}
	for j, t := range spec.Tasks {
		row := make([]float64, nw*nt)
		for i := 0; i < nw; i++ {
			row[i*nt+j] = 1
		}
		m.AddConstraint("task_"+t, row, solver.Equal, 1)
	}

	return m, nil
}
