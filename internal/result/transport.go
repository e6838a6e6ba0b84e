package result

import (
	"github.com/copyleftdev/SOLVR/internal/schema"
	"github.com/copyleftdev/SOLVR/internal/solver"
)

// shipmentTol filters numerically-zero routes out of the breakdown.
const shipmentTol = 1e-9

// NormalizeTransportation shapes a transportation solve outcome. Values are
// shipment amounts in row-major (supplier, consumer) order; the total cost
// is recomputed from the shipped amounts.
func NormalizeTransportation(spec *schema.TransportationSpec, out *solver.Outcome, elapsed float64, solverName string) *OptimizationResult {
	info := map[string]interface{}{
		"solver_name":   solverName,
		"num_suppliers": len(spec.Suppliers),
		"num_consumers": len(spec.Consumers),
	}
	if out.Status != solver.StatusOptimal {
		return Failure(out.Status, classify("Transportation", out), elapsed, info)
	}

	nc := len(spec.Consumers)
	shipments := make([]map[string]interface{}, 0, len(spec.Suppliers))
	var totalCost, totalShipped float64
	for i, sp := range spec.Suppliers {
		for j, c := range spec.Consumers {
			amount := out.Values[i*nc+j]
			if amount <= shipmentTol {
				continue
			}
			shipments = append(shipments, map[string]interface{}{
				"supplier": sp.Name,
				"consumer": c.Name,
				"amount":   amount,
				"cost":     amount * spec.Costs[i][j],
			})
			totalCost += amount * spec.Costs[i][j]
			totalShipped += amount
		}
	}

	variables := map[string]interface{}{
		"shipments":     shipments,
		"total_cost":    totalCost,
		"total_shipped": totalShipped,
	}
	return optimal(totalCost, variables, elapsed, info)
}
