package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copyleftdev/SOLVR/internal/schema"
	"github.com/copyleftdev/SOLVR/internal/solver"
)

func portfolioSpec() *schema.PortfolioSpec {
	return &schema.PortfolioSpec{
		Assets: []schema.Asset{
			{Name: "AAPL", ExpectedReturn: 0.12, Risk: 0.2, Sector: "tech", MaxAllocation: 1},
			{Name: "JNJ", ExpectedReturn: 0.08, Risk: 0.1, Sector: "health", MaxAllocation: 1},
		},
		Budget:        10000,
		MaxAllocation: 1,
		Objective:     schema.ObjectiveMaximizeReturn,
		RiskFreeRate:  0.02,
	}
}

func constraintByName(t *testing.T, m *solver.Model, name string) solver.Constraint {
	t.Helper()
	for _, ct := range m.Constraints {
		if ct.Name == name {
			return ct
		}
	}
	t.Fatalf("constraint %q not found", name)
	return solver.Constraint{}
}

func TestCompilePortfolioMaximizeReturn(t *testing.T) {
	spec := portfolioSpec()
	m, err := CompilePortfolio(spec)
	require.NoError(t, err)

	assert.Equal(t, solver.Maximize, m.Sense)
	require.Len(t, m.Variables, 2)
	assert.Equal(t, "allocation_AAPL", m.Variables[0].Name)
	assert.Equal(t, 0.0, m.Variables[0].Lower)
	assert.Equal(t, 10000.0, m.Variables[0].Upper)
	assert.InDelta(t, 0.12/10000, m.Objective[0], 1e-12)

	budget := constraintByName(t, m, "budget")
	assert.Equal(t, solver.Equal, budget.Op)
	assert.Equal(t, 10000.0, budget.RHS)
	assert.Equal(t, []float64{1, 1}, budget.Coeffs)
}

func TestCompilePortfolioMinimizeRisk(t *testing.T) {
	spec := portfolioSpec()
	spec.Objective = schema.ObjectiveMinimizeRisk

	m, err := CompilePortfolio(spec)
	require.NoError(t, err)
	assert.Equal(t, solver.Minimize, m.Sense)
	assert.InDelta(t, 0.2/10000, m.Objective[0], 1e-12)
}

func TestCompilePortfolioSharpePenalty(t *testing.T) {
	spec := portfolioSpec()
	spec.Objective = schema.ObjectiveSharpeRatio
	spec.RiskTolerance = 0.5

	m, err := CompilePortfolio(spec)
	require.NoError(t, err)
	assert.Equal(t, solver.Maximize, m.Sense)
	// Penalty is the reciprocal of the risk tolerance.
	assert.InDelta(t, (0.12-2.0*0.2)/10000, m.Objective[0], 1e-12)
}

func TestCompilePortfolioAllocationWindow(t *testing.T) {
	spec := portfolioSpec()
	spec.MinAllocation = 0.1
	spec.MaxAllocation = 0.8

	m, err := CompilePortfolio(spec)
	require.NoError(t, err)

	min := constraintByName(t, m, "min_allocation_AAPL")
	assert.Equal(t, solver.GreaterEq, min.Op)
	assert.Equal(t, 1000.0, min.RHS)

	max := constraintByName(t, m, "max_allocation_JNJ")
	assert.Equal(t, solver.LessEq, max.Op)
	assert.Equal(t, 8000.0, max.RHS)
}

func TestCompilePortfolioDefaultWindowAddsNoRows(t *testing.T) {
	m, err := CompilePortfolio(portfolioSpec())
	require.NoError(t, err)
	// Only the budget row: min 0 and max 1 are vacuous.
	assert.Len(t, m.Constraints, 1)
}

func TestCompilePortfolioSectorLimits(t *testing.T) {
	spec := portfolioSpec()
	spec.SectorLimits = map[string]float64{"tech": 0.3, "energy": 0.5}

	m, err := CompilePortfolio(spec)
	require.NoError(t, err)

	tech := constraintByName(t, m, "sector_limit_tech")
	assert.Equal(t, solver.LessEq, tech.Op)
	assert.Equal(t, 3000.0, tech.RHS)
	assert.Equal(t, []float64{1, 0}, tech.Coeffs)

	// A limit on a sector with no assets produces no row.
	for _, ct := range m.Constraints {
		assert.NotEqual(t, "sector_limit_energy", ct.Name)
	}
}

func TestCompilePortfolioRiskToleranceRow(t *testing.T) {
	spec := portfolioSpec()
	spec.RiskTolerance = 0.15

	m, err := CompilePortfolio(spec)
	require.NoError(t, err)

	risk := constraintByName(t, m, "risk_tolerance")
	assert.Equal(t, solver.LessEq, risk.Op)
	assert.Equal(t, 0.15, risk.RHS)
	assert.InDelta(t, 0.2/10000, risk.Coeffs[0], 1e-12)
}

func TestCompilePortfolioRejectsRiskParity(t *testing.T) {
	spec := portfolioSpec()
	spec.Objective = schema.ObjectiveRiskParity

	_, err := CompilePortfolio(spec)
	assert.Error(t, err)
}
