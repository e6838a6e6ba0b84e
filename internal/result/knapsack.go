package result

import (
	"github.com/copyleftdev/SOLVR/internal/schema"
	"github.com/copyleftdev/SOLVR/internal/solver"
)

// NormalizeKnapsack shapes a knapsack solve outcome. Values are selection
// counts in item order; totals are recomputed from the selection.
func NormalizeKnapsack(spec *schema.KnapsackSpec, out *solver.Outcome, elapsed float64, solverName string) *OptimizationResult {
	info := map[string]interface{}{
		"solver_name": solverName,
		"num_items":   len(spec.Items),
	}
	if out.Status != solver.StatusOptimal {
		return Failure(out.Status, classify("Knapsack", out), elapsed, info)
	}

	selected := make([]map[string]interface{}, 0, len(spec.Items))
	var totalValue, totalWeight, totalVolume float64
	for i, it := range spec.Items {
		copies := int(out.Values[i] + 0.5)
		if copies < 1 {
			continue
		}
		entry := map[string]interface{}{
			"name":   it.Name,
			"value":  it.Value,
			"weight": it.Weight,
			"copies": copies,
		}
		if spec.HasVolume() {
			entry["volume"] = it.Volume
			totalVolume += float64(copies) * it.Volume
		}
		selected = append(selected, entry)
		totalValue += float64(copies) * it.Value
		totalWeight += float64(copies) * it.Weight
	}

	variables := map[string]interface{}{
		"selected_items":       selected,
		"total_value":          totalValue,
		"total_weight":         totalWeight,
		"capacity_utilization": totalWeight / spec.Capacity,
	}
	if spec.HasVolume() {
		variables["total_volume"] = totalVolume
		variables["volume_utilization"] = totalVolume / *spec.VolumeCapacity
	}
	return optimal(totalValue, variables, elapsed, info)
}
