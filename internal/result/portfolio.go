package result

import (
	"math"

	"github.com/copyleftdev/SOLVR/internal/schema"
	"github.com/copyleftdev/SOLVR/internal/solver"
)

// NormalizePortfolio shapes a portfolio solve outcome. Values are indexed in
// asset order. Portfolio return, risk, standard deviation and Sharpe ratio
// are recomputed from the allocation amounts.
func NormalizePortfolio(spec *schema.PortfolioSpec, out *solver.Outcome, elapsed float64, solverName string) *OptimizationResult {
	info := map[string]interface{}{
		"solver_name": solverName,
		"objective":   spec.Objective,
		"num_assets":  len(spec.Assets),
	}
	if out.Status != solver.StatusOptimal {
		return Failure(out.Status, classify("Portfolio optimization", out), elapsed, info)
	}

	allocation := make(map[string]interface{}, len(spec.Assets))
	var totalAllocation, portfolioReturn, portfolioRisk float64
	for i, a := range spec.Assets {
		amount := out.Values[i]
		weight := amount / spec.Budget
		allocation[a.Name] = map[string]interface{}{
			"amount":          amount,
			"weight":          weight,
			"expected_return": a.ExpectedReturn,
			"risk":            a.Risk,
			"sector":          a.Sector,
		}
		totalAllocation += amount
		portfolioReturn += weight * a.ExpectedReturn
		portfolioRisk += weight * a.Risk
	}

	// The linear risk proxy stands in for the portfolio variance, so the
	// standard deviation collapses to the proxy itself.
	portfolioStd := math.Sqrt(portfolioRisk * portfolioRisk)
	sharpe := 0.0
	if portfolioStd > 0 {
		sharpe = (portfolioReturn - spec.RiskFreeRate) / portfolioStd
	}

	sectorAllocation := map[string]float64{}
	for i, a := range spec.Assets {
		if a.Sector != "" {
			sectorAllocation[a.Sector] += out.Values[i] / spec.Budget
		}
	}
	info["num_sectors"] = len(sectorAllocation)

	variables := map[string]interface{}{
		"portfolio_allocation": allocation,
		"portfolio_metrics": map[string]interface{}{
			"total_allocation": totalAllocation,
			"expected_return":  portfolioReturn,
			"portfolio_risk":   portfolioRisk,
			"portfolio_std":    portfolioStd,
			"sharpe_ratio":     sharpe,
			"risk_free_rate":   spec.RiskFreeRate,
		},
		"sector_allocation":  sectorAllocation,
		"budget_utilization": totalAllocation / spec.Budget,
	}
	return optimal(out.Objective, variables, elapsed, info)
}

// NormalizeRiskParity shapes the closed-form risk-parity allocation. The
// amounts are in asset order and already rescaled to the budget; the
// reported objective is the recomputed linear portfolio risk.
func NormalizeRiskParity(spec *schema.PortfolioSpec, amounts []float64, elapsed float64) *OptimizationResult {
	info := map[string]interface{}{
		"solver_name": "risk_parity_heuristic",
		"objective":   schema.ObjectiveRiskParity,
		"num_assets":  len(spec.Assets),
	}

	allocation := make(map[string]interface{}, len(spec.Assets))
	var portfolioReturn, portfolioRisk float64
	minContribution, maxContribution := math.Inf(1), math.Inf(-1)
	for i, a := range spec.Assets {
		amount := amounts[i]
		weight := amount / spec.Budget
		contribution := weight * a.Risk
		allocation[a.Name] = map[string]interface{}{
			"amount":            amount,
			"weight":            weight,
			"expected_return":   a.ExpectedReturn,
			"risk":              a.Risk,
			"risk_contribution": contribution,
			"sector":            a.Sector,
		}
		portfolioReturn += weight * a.ExpectedReturn
		portfolioRisk += contribution
		minContribution = math.Min(minContribution, contribution)
		maxContribution = math.Max(maxContribution, contribution)
	}

	variables := map[string]interface{}{
		"portfolio_allocation": allocation,
		"portfolio_metrics": map[string]interface{}{
			"total_allocation":  spec.Budget,
			"expected_return":   portfolioReturn,
			"portfolio_risk":    portfolioRisk,
			"risk_parity_score": 1.0 - (maxContribution - minContribution),
		},
		"budget_utilization": 1.0,
	}
	return optimal(portfolioRisk, variables, elapsed, info)
}
