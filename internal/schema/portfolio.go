package schema

import (
	"encoding/json"
	"fmt"
	"math"
)

// Portfolio objective modes.
const (
	ObjectiveMaximizeReturn = "maximize_return"
	ObjectiveMinimizeRisk   = "minimize_risk"
	ObjectiveSharpeRatio    = "sharpe_ratio"
	ObjectiveRiskParity     = "risk_parity"
)

// Asset is one investable entity with return and risk characteristics.
// Allocation bounds are fractions of the portfolio budget.
type Asset struct {
	Name           string  `json:"name"`
	ExpectedReturn float64 `json:"expected_return"`
	Risk           float64 `json:"risk"`
	Sector         string  `json:"sector,omitempty"`
	CurrentPrice   float64 `json:"current_price,omitempty"`
	MinAllocation  float64 `json:"min_allocation"`
	MaxAllocation  float64 `json:"max_allocation"`
}

// UnmarshalJSON applies per-asset defaults before decoding.
func (a *Asset) UnmarshalJSON(data []byte) error {
	type plain Asset
	tmp := plain{MaxAllocation: 1}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*a = Asset(tmp)
	return nil
}

// PortfolioSpec describes a portfolio allocation problem.
type PortfolioSpec struct {
	Assets            []Asset            `json:"assets"`
	Budget            float64            `json:"budget"`
	RiskTolerance     float64            `json:"risk_tolerance"`
	MinAllocation     float64            `json:"min_allocation"`
	MaxAllocation     float64            `json:"max_allocation"`
	SectorLimits      map[string]float64 `json:"sector_limits,omitempty"`
	Objective         string             `json:"objective"`
	RiskFreeRate      float64            `json:"risk_free_rate"`
	CorrelationMatrix [][]float64        `json:"correlation_matrix,omitempty"`
}

// ParsePortfolio decodes and validates a portfolio specification.
func ParsePortfolio(raw json.RawMessage) (*PortfolioSpec, error) {
	spec := &PortfolioSpec{
		MaxAllocation: 1,
		Objective:     ObjectiveMaximizeReturn,
		RiskFreeRate:  0.02,
	}
	if err := json.Unmarshal(raw, spec); err != nil {
		return nil, &ValidationError{Field: "assets", Message: "malformed portfolio input: " + err.Error()}
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// Validate checks field-local rules, then cross-field consistency.
func (s *PortfolioSpec) Validate() error {
	rules := []rule{
		{"assets", "at least one asset required", func() bool { return len(s.Assets) > 0 }},
		{"budget", "must be positive", func() bool { return s.Budget > 0 }},
		{"risk_tolerance", "must be non-negative", func() bool { return s.RiskTolerance >= 0 }},
		{"risk_free_rate", "must be non-negative", func() bool { return s.RiskFreeRate >= 0 }},
		{"min_allocation", "must be between 0 and 1", func() bool { return inUnit(s.MinAllocation) }},
		{"max_allocation", "must be between 0 and 1", func() bool { return inUnit(s.MaxAllocation) }},
		{"objective", "must be one of maximize_return, minimize_risk, sharpe_ratio, risk_parity", func() bool {
			switch s.Objective {
			case ObjectiveMaximizeReturn, ObjectiveMinimizeRisk, ObjectiveSharpeRatio, ObjectiveRiskParity:
				return true
			}
			return false
		}},
	}
	for i := range s.Assets {
		a := &s.Assets[i]
		prefix := fmt.Sprintf("assets[%d]", i)
		rules = append(rules,
			rule{prefix + ".name", "is required", func() bool { return a.Name != "" }},
			rule{prefix + ".risk", "must be non-negative", func() bool { return a.Risk >= 0 }},
			rule{prefix + ".current_price", "must be non-negative", func() bool { return a.CurrentPrice >= 0 }},
			rule{prefix + ".min_allocation", "must be between 0 and 1", func() bool { return inUnit(a.MinAllocation) }},
			rule{prefix + ".max_allocation", "must be between 0 and 1", func() bool { return inUnit(a.MaxAllocation) }},
		)
	}
	if err := firstViolation(rules); err != nil {
		return err
	}

	// Cross-field rules.
	cross := []rule{
		{"max_allocation", "must be >= min_allocation", func() bool { return s.MaxAllocation >= s.MinAllocation }},
	}
	seen := make(map[string]bool, len(s.Assets))
	for i := range s.Assets {
		a := &s.Assets[i]
		prefix := fmt.Sprintf("assets[%d]", i)
		cross = append(cross,
			rule{prefix + ".max_allocation", "must be >= min_allocation", func() bool { return a.MaxAllocation >= a.MinAllocation }},
			rule{prefix + ".name", "must be unique", func() bool {
				if seen[a.Name] {
					return false
				}
				seen[a.Name] = true
				return true
			}},
		)
	}
	for sector, limit := range s.SectorLimits {
		limit := limit
		cross = append(cross, rule{
			"sector_limits." + sector, "must be between 0 and 1",
			func() bool { return inUnit(limit) },
		})
	}
	cross = append(cross, s.correlationRules()...)
	return errOrNil(firstViolation(cross))
}

// correlationRules validates the optional correlation matrix: square with
// dimension equal to the asset count, symmetric and unit diagonal within
// floating tolerance.
func (s *PortfolioSpec) correlationRules() []rule {
	if s.CorrelationMatrix == nil {
		return nil
	}
	n := len(s.Assets)
	rules := []rule{{
		"correlation_matrix", "dimensions must match number of assets",
		func() bool {
			if len(s.CorrelationMatrix) != n {
				return false
			}
			for _, row := range s.CorrelationMatrix {
				if len(row) != n {
					return false
				}
			}
			return true
		},
	}}
	rules = append(rules,
		rule{"correlation_matrix", "diagonal elements must be 1", func() bool {
			for i := 0; i < n; i++ {
				if math.Abs(s.CorrelationMatrix[i][i]-1.0) > matrixTol {
					return false
				}
			}
			return true
		}},
		rule{"correlation_matrix", "must be symmetric", func() bool {
			for i := 0; i < n; i++ {
				for j := 0; j < i; j++ {
					if math.Abs(s.CorrelationMatrix[i][j]-s.CorrelationMatrix[j][i]) > matrixTol {
						return false
					}
				}
			}
			return true
		}},
	)
	return rules
}

func errOrNil(err *ValidationError) error {
	if err == nil {
		return nil
	}
	return err
}
