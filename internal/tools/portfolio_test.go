package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copyleftdev/SOLVR/internal/solver"
)

func TestOptimizePortfolioMaximizeReturn(t *testing.T) {
	res := call(t, "optimize_portfolio", `{
		"assets": [
			{"name": "AAPL", "expected_return": 0.12, "risk": 0.2, "sector": "tech"},
			{"name": "JNJ", "expected_return": 0.08, "risk": 0.1, "sector": "health"}
		],
		"budget": 10000,
		"max_allocation": 0.7
	}`)

	require.Equal(t, solver.StatusOptimal, res.Status)
	require.NotNil(t, res.ObjectiveValue)

	allocation := res.Variables["portfolio_allocation"].(map[string]interface{})
	var total float64
	for name, entry := range allocation {
		e := entry.(map[string]interface{})
		amount := e["amount"].(float64)
		total += amount
		assert.LessOrEqual(t, amount, 0.7*10000+1e-6, "asset %s over max allocation", name)
		assert.GreaterOrEqual(t, amount, -1e-6)
	}
	assert.InDelta(t, 10000.0, total, 1e-6)

	// The higher-return asset takes its full 70% cap.
	aapl := allocation["AAPL"].(map[string]interface{})
	assert.InDelta(t, 7000.0, aapl["amount"].(float64), 1e-6)

	metrics := res.Variables["portfolio_metrics"].(map[string]interface{})
	assert.InDelta(t, 0.7*0.12+0.3*0.08, metrics["expected_return"].(float64), 1e-9)
	assert.InDelta(t, 1.0, res.Variables["budget_utilization"].(float64), 1e-9)
}

func TestOptimizePortfolioMinimizeRisk(t *testing.T) {
	res := call(t, "optimize_portfolio", `{
		"assets": [
			{"name": "risky", "expected_return": 0.2, "risk": 0.5},
			{"name": "safe", "expected_return": 0.05, "risk": 0.01}
		],
		"budget": 1000,
		"objective": "minimize_risk"
	}`)

	require.Equal(t, solver.StatusOptimal, res.Status)
	allocation := res.Variables["portfolio_allocation"].(map[string]interface{})
	safe := allocation["safe"].(map[string]interface{})
	assert.InDelta(t, 1000.0, safe["amount"].(float64), 1e-6)
}

func TestOptimizePortfolioInfeasibleBounds(t *testing.T) {
	// Both assets capped at 30% cannot absorb the whole budget.
	res := call(t, "optimize_portfolio", `{
		"assets": [
			{"name": "a", "expected_return": 0.1, "risk": 0.1, "max_allocation": 0.3},
			{"name": "b", "expected_return": 0.1, "risk": 0.1, "max_allocation": 0.3}
		],
		"budget": 1000
	}`)

	require.Equal(t, solver.StatusInfeasible, res.Status)
	require.NotNil(t, res.ErrorMessage)
	assert.Equal(t, "Portfolio optimization problem is infeasible. Check constraints.", *res.ErrorMessage)
	assert.Nil(t, res.ObjectiveValue)
}

func TestOptimizePortfolioRiskParity(t *testing.T) {
	res := call(t, "optimize_portfolio", `{
		"assets": [
			{"name": "a", "expected_return": 0.1, "risk": 0.1},
			{"name": "b", "expected_return": 0.1, "risk": 0.2}
		],
		"budget": 3000,
		"objective": "risk_parity"
	}`)

	require.Equal(t, solver.StatusOptimal, res.Status)
	assert.Equal(t, "risk_parity_heuristic", res.SolverInfo["solver_name"])

	allocation := res.Variables["portfolio_allocation"].(map[string]interface{})
	a := allocation["a"].(map[string]interface{})
	b := allocation["b"].(map[string]interface{})
	assert.InDelta(t, 2000.0, a["amount"].(float64), 1e-6)
	assert.InDelta(t, 1000.0, b["amount"].(float64), 1e-6)

	// Equal risk contributions give a perfect parity score.
	metrics := res.Variables["portfolio_metrics"].(map[string]interface{})
	assert.InDelta(t, 1.0, metrics["risk_parity_score"].(float64), 1e-9)
}

func TestOptimizePortfolioRiskParityAllZeroRisk(t *testing.T) {
	res := call(t, "optimize_portfolio", `{
		"assets": [
			{"name": "a", "expected_return": 0.1, "risk": 0},
			{"name": "b", "expected_return": 0.1, "risk": 0}
		],
		"budget": 1000,
		"objective": "risk_parity"
	}`)

	require.Equal(t, solver.StatusError, res.Status)
	require.NotNil(t, res.ErrorMessage)
	assert.Equal(t, "All assets have zero risk - cannot create risk parity portfolio", *res.ErrorMessage)
}

func TestOptimizePortfolioValidationError(t *testing.T) {
	res := call(t, "optimize_portfolio", `{"assets": [], "budget": 1000}`)

	require.Equal(t, solver.StatusError, res.Status)
	require.NotNil(t, res.ErrorMessage)
	assert.Equal(t, "assets: at least one asset required", *res.ErrorMessage)
}
