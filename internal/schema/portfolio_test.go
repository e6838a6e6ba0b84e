package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPortfolioJSON() string {
	return `{
		"assets": [
			{"name": "AAPL", "expected_return": 0.12, "risk": 0.2, "sector": "tech"},
			{"name": "JNJ", "expected_return": 0.08, "risk": 0.1, "sector": "health"}
		],
		"budget": 10000
	}`
}

func TestParsePortfolioDefaults(t *testing.T) {
	spec, err := ParsePortfolio(json.RawMessage(validPortfolioJSON()))
	require.NoError(t, err)

	assert.Equal(t, ObjectiveMaximizeReturn, spec.Objective)
	assert.Equal(t, 0.02, spec.RiskFreeRate)
	assert.Equal(t, 1.0, spec.MaxAllocation)
	require.Len(t, spec.Assets, 2)
	assert.Equal(t, 1.0, spec.Assets[0].MaxAllocation)
	assert.Equal(t, 0.0, spec.Assets[0].MinAllocation)
}

func TestPortfolioValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*PortfolioSpec)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(s *PortfolioSpec) {},
		},
		{
			name:    "no assets",
			mutate:  func(s *PortfolioSpec) { s.Assets = nil },
			wantErr: "assets: at least one asset required",
		},
		{
			name:    "zero budget",
			mutate:  func(s *PortfolioSpec) { s.Budget = 0 },
			wantErr: "budget: must be positive",
		},
		{
			name:    "negative risk tolerance",
			mutate:  func(s *PortfolioSpec) { s.RiskTolerance = -0.1 },
			wantErr: "risk_tolerance: must be non-negative",
		},
		{
			name:    "unknown objective",
			mutate:  func(s *PortfolioSpec) { s.Objective = "maximize_fun" },
			wantErr: "objective: must be one of maximize_return, minimize_risk, sharpe_ratio, risk_parity",
		},
		{
			name:    "asset without name",
			mutate:  func(s *PortfolioSpec) { s.Assets[1].Name = "" },
			wantErr: "assets[1].name: is required",
		},
		{
			name:    "negative asset risk",
			mutate:  func(s *PortfolioSpec) { s.Assets[0].Risk = -0.3 },
			wantErr: "assets[0].risk: must be non-negative",
		},
		{
			name:    "allocation bounds crossed",
			mutate:  func(s *PortfolioSpec) { s.MinAllocation = 0.6; s.MaxAllocation = 0.4 },
			wantErr: "max_allocation: must be >= min_allocation",
		},
		{
			name: "asset allocation bounds crossed",
			mutate: func(s *PortfolioSpec) {
				s.Assets[0].MinAllocation = 0.8
				s.Assets[0].MaxAllocation = 0.2
			},
			wantErr: "assets[0].max_allocation: must be >= min_allocation",
		},
		{
			name:    "duplicate asset names",
			mutate:  func(s *PortfolioSpec) { s.Assets[1].Name = s.Assets[0].Name },
			wantErr: "assets[1].name: must be unique",
		},
		{
			name:    "sector limit out of range",
			mutate:  func(s *PortfolioSpec) { s.SectorLimits = map[string]float64{"tech": 1.5} },
			wantErr: "sector_limits.tech: must be between 0 and 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := ParsePortfolio(json.RawMessage(validPortfolioJSON()))
			require.NoError(t, err)
			tt.mutate(spec)

			err = spec.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestPortfolioCorrelationMatrix(t *testing.T) {
	tests := []struct {
		name    string
		matrix  [][]float64
		wantErr string
	}{
		{
			name:   "valid symmetric",
			matrix: [][]float64{{1, 0.3}, {0.3, 1}},
		},
		{
			name:    "wrong dimension",
			matrix:  [][]float64{{1}},
			wantErr: "correlation_matrix: dimensions must match number of assets",
		},
		{
			name:    "ragged row",
			matrix:  [][]float64{{1, 0.3}, {0.3}},
			wantErr: "correlation_matrix: dimensions must match number of assets",
		},
		{
			name:    "non-unit diagonal",
			matrix:  [][]float64{{1, 0.3}, {0.3, 0.9}},
			wantErr: "correlation_matrix: diagonal elements must be 1",
		},
		{
			name:    "asymmetric",
			matrix:  [][]float64{{1, 0.3}, {-0.3, 1}},
			wantErr: "correlation_matrix: must be symmetric",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := ParsePortfolio(json.RawMessage(validPortfolioJSON()))
			require.NoError(t, err)
			spec.CorrelationMatrix = tt.matrix

			err = spec.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestParsePortfolioMalformed(t *testing.T) {
	_, err := ParsePortfolio(json.RawMessage(`{"assets": "nope"}`))
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "malformed portfolio input")
}
