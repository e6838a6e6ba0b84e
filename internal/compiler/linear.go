package compiler

import (
	"fmt"

	"github.com/copyleftdev/SOLVR/internal/schema"
	"github.com/copyleftdev/SOLVR/internal/solver"
)

// CompileLinearProgram translates a declared LP/MIP literally: variables
// with their declared domains and bounds (default [0, +inf)), the declared
// objective with its sense and one constraint row per declaration.
func CompileLinearProgram(spec *schema.LinearProgramSpec) (*solver.Model, error) {
	sense := solver.Minimize
	if spec.Sense == "maximize" {
		sense = solver.Maximize
	}
	m := solver.NewModel("linear_program", sense)

	index := make(map[string]int, len(spec.Variables))
	for _, v := range spec.Variables {
		lower, upper := 0.0, solver.PosInf
		if v.Lower != nil {
			lower = *v.Lower
		}
		if v.Upper != nil {
			upper = *v.Upper
		}
		var dom solver.Domain
		switch v.Type {
		case schema.VarInteger:
			dom = solver.Integer
		case schema.VarBinary:
			dom = solver.Binary
		default:
			dom = solver.Continuous
		}
		index[v.Name] = m.AddVariable(v.Name, dom, lower, upper)
	}

	for name, coeff := range spec.Objective {
		m.SetObjective(index[name], coeff)
	}

	for i, ct := range spec.Constraints {
		row := make([]float64, len(spec.Variables))
		for name, coeff := range ct.Coefficients {
			row[index[name]] = coeff
		}
		var op solver.Operator
		switch ct.Operator {
		case "<=":
			op = solver.LessEq
		case ">=":
			op = solver.GreaterEq
		default:
			op = solver.Equal
		}
		name := ct.Name
		if name == "" {
			name = fmt.Sprintf("constraint_%d", i)
		}
		m.AddConstraint(name, row, op, ct.RHS)
	}

	return m, nil
}
