// Package compiler maps validated problem specifications onto solver
// models: decision variables with bounds and domains, linear constraint
// rows and a linear objective. One compile function per problem family;
// variable ordering follows the entity ordering of the specification.
package compiler

import (
	"github.com/copyleftdev/SOLVR/internal/schema"
	"github.com/copyleftdev/SOLVR/internal/solver"
)

// CompilePortfolio builds the allocation LP: one continuous variable per
// asset in budget units, a budget equality row, global and per-asset
// allocation bounds, optional sector caps and an optional linear
// risk-tolerance row.
//
// The risk term is a linear proxy (a weighted sum of per-asset risk), not a
// true quadratic covariance expression. A quadratic-programming backend
// could replace the proxy; until then this mirrors the documented
// simplification of the linear formulation.
func CompilePortfolio(spec *schema.PortfolioSpec) (*solver.Model, error) {
	if spec.Objective == schema.ObjectiveRiskParity {
		return nil, solver.NewError("risk parity is a closed-form heuristic, not a compiled model").
			WithComponent("compiler").WithOperation("portfolio")
	}

	sense := solver.Maximize
	if spec.Objective == schema.ObjectiveMinimizeRisk {
		sense = solver.Minimize
	}
	m := solver.NewModel("portfolio_optimization", sense)

	budget := spec.Budget
	for _, a := range spec.Assets {
		j := m.AddVariable("allocation_"+a.Name, solver.Continuous, a.MinAllocation*budget, a.MaxAllocation*budget)
		switch spec.Objective {
		case schema.ObjectiveMaximizeReturn:
			m.SetObjective(j, a.ExpectedReturn/budget)
		case schema.ObjectiveMinimizeRisk:
			m.SetObjective(j, a.Risk/budget)
		case schema.ObjectiveSharpeRatio:
			penalty := 1.0
			if spec.RiskTolerance > 0 {
				penalty = 1.0 / spec.RiskTolerance
			}
			m.SetObjective(j, (a.ExpectedReturn-penalty*a.Risk)/budget)
		}
	}

	ones := make([]float64, len(spec.Assets))
	for j := range ones {
		ones[j] = 1
	}
	m.AddConstraint("budget", ones, solver.Equal, budget)

	// Global allocation window, one row pair per asset.
	for j, a := range spec.Assets {
		row := make([]float64, len(spec.Assets))
		row[j] = 1
		if spec.MinAllocation > 0 {
			m.AddConstraint("min_allocation_"+a.Name, row, solver.GreaterEq, spec.MinAllocation*budget)
		}
		if spec.MaxAllocation < 1 {
			m.AddConstraint("max_allocation_"+a.Name, row, solver.LessEq, spec.MaxAllocation*budget)
		}
	}

	for sector, limit := range spec.SectorLimits {
		row := make([]float64, len(spec.Assets))
		present := false
		for j, a := range spec.Assets {
			if a.Sector == sector {
				row[j] = 1
				present = true
			}
		}
		if present {
			m.AddConstraint("sector_limit_"+sector, row, solver.LessEq, limit*budget)
		}
	}

	if spec.RiskTolerance > 0 {
		row := make([]float64, len(spec.Assets))
		for j, a := range spec.Assets {
			row[j] = a.Risk / budget
		}
		m.AddConstraint("risk_tolerance", row, solver.LessEq, spec.RiskTolerance)
	}

	return m, nil
}
