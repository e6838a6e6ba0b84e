package compiler

import (
	"errors"

	"github.com/copyleftdev/SOLVR/internal/schema"
)

// ErrDegenerateRisk is returned when every asset carries zero risk and the
// inverse-risk weighting is undefined.
var ErrDegenerateRisk = errors.New("All assets have zero risk - cannot create risk parity portfolio")

// RiskParityAllocations computes the closed-form risk-parity allocation:
// weights inversely proportional to each asset's risk, clamped to the
// per-asset allocation bounds, then rescaled so the total matches the
// budget exactly. Zero-risk assets receive nothing. This bypasses the
// linear solver entirely.
//
// The rescale runs after the clamp, so a scale factor far from 1 can push
// an allocation back outside its declared bounds. That matches the original
// formulation of the heuristic and is kept deliberately.
func RiskParityAllocations(spec *schema.PortfolioSpec) ([]float64, error) {
	var totalInverseRisk float64
	for _, a := range spec.Assets {
		if a.Risk > 0 {
			totalInverseRisk += 1.0 / a.Risk
		}
	}
	if totalInverseRisk == 0 {
		return nil, ErrDegenerateRisk
	}

	budget := spec.Budget
	amounts := make([]float64, len(spec.Assets))
	var total float64
	for i, a := range spec.Assets {
		if a.Risk <= 0 {
			continue
		}
		amount := (1.0 / a.Risk) / totalInverseRisk * budget
		if min := a.MinAllocation * budget; amount < min {
			amount = min
		}
		if max := a.MaxAllocation * budget; amount > max {
			amount = max
		}
		amounts[i] = amount
		total += amount
	}

	if total > 0 {
		scale := budget / total
		for i := range amounts {
			amounts[i] *= scale
		}
	}
	return amounts, nil
}
