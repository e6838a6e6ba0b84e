package compiler

import (
	"github.com/copyleftdev/SOLVR/internal/schema"
	"github.com/copyleftdev/SOLVR/internal/solver"
)

// CompileTransportation builds the shipping model: one non-negative
// continuous variable per (supplier, consumer) route in row-major order,
// supply rows capping outflow (equality when balanced) and demand rows
// fixing inflow. Whether total supply covers total demand surfaces as
// solver infeasibility, not as a pre-check.
func CompileTransportation(spec *schema.TransportationSpec) (*solver.Model, error) {
	m := solver.NewModel("transportation", solver.Minimize)

	ns, nc := len(spec.Suppliers), len(spec.Consumers)
	for i, sp := range spec.Suppliers {
		for j, c := range spec.Consumers {
			v := m.AddVariable("ship_"+sp.Name+"_"+c.Name, solver.Continuous, 0, solver.PosInf)
			m.SetObjective(v, spec.Costs[i][j])
		}
	}

	supplyOp := solver.LessEq
	if spec.Balanced {
		supplyOp = solver.Equal
	}
	for i, sp := range spec.Suppliers {
		row := make([]float64, ns*nc)
		for j := 0; j < nc; j++ {
			row[i*nc+j] = 1
		}
		m.AddConstraint("supply_"+sp.Name, row, supplyOp, sp.Supply)
	}
	for j, c := range spec.Consumers {
		row := make([]float64, ns*nc)
		for i := 0; i < ns; i++ {
			row[i*nc+j] = 1
		}
		m.AddConstraint("demand_"+c.Name, row, solver.Equal, c.Demand)
	}

	return m, nil
}
