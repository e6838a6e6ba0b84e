package compiler

import (
	"github.com/copyleftdev/SOLVR/internal/schema"
	"github.com/copyleftdev/SOLVR/internal/solver"
)

// CompileKnapsack builds the selection model: one binary variable per item
// (bounded integer for multi-copy items), one capacity row per weight
// dimension and a value-maximizing objective. Items too heavy to ever fit
// are compiled as-is; the solver simply never selects them.
func CompileKnapsack(spec *schema.KnapsackSpec) (*solver.Model, error) {
	m := solver.NewModel("knapsack", solver.Maximize)

	for _, it := range spec.Items {
		var j int
		if it.MaxCopies > 1 {
			j = m.AddVariable("select_"+it.Name, solver.Integer, 0, float64(it.MaxCopies))
		} else {
			j = m.AddVariable("select_"+it.Name, solver.Binary, 0, 1)
		}
		m.SetObjective(j, it.Value)
	}

	weights := make([]float64, len(spec.Items))
	for j, it := range spec.Items {
		weights[j] = it.Weight
	}
	m.AddConstraint("weight_capacity", weights, solver.LessEq, spec.Capacity)

	if spec.HasVolume() {
		volumes := make([]float64, len(spec.Items))
		for j, it := range spec.Items {
			volumes[j] = it.Volume
		}
		m.AddConstraint("volume_capacity", volumes, solver.LessEq, *spec.VolumeCapacity)
	}

	return m, nil
}
