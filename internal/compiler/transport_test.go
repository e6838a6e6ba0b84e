package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copyleftdev/SOLVR/internal/schema"
	"github.com/copyleftdev/SOLVR/internal/solver"
)

func transportSpec() *schema.TransportationSpec {
	return &schema.TransportationSpec{
		Suppliers: []schema.Supplier{{Name: "s1", Supply: 10}, {Name: "s2", Supply: 20}},
		Consumers: []schema.Consumer{{Name: "c1", Demand: 15}, {Name: "c2", Demand: 10}},
		Costs:     [][]float64{{2, 3}, {4, 1}},
	}
}

func TestCompileTransportation(t *testing.T) {
	m, err := CompileTransportation(transportSpec())
	require.NoError(t, err)

	assert.Equal(t, solver.Minimize, m.Sense)
	require.Len(t, m.Variables, 4)
	assert.Equal(t, "ship_s1_c1", m.Variables[0].Name)
	assert.Equal(t, "ship_s2_c2", m.Variables[3].Name)
	for _, v := range m.Variables {
		assert.Equal(t, solver.Continuous, v.Domain)
		assert.Equal(t, 0.0, v.Lower)
	}
	assert.Equal(t, []float64{2, 3, 4, 1}, m.Objective)

	supply := constraintByName(t, m, "supply_s1")
	assert.Equal(t, solver.LessEq, supply.Op)
	assert.Equal(t, 10.0, supply.RHS)
	assert.Equal(t, []float64{1, 1, 0, 0}, supply.Coeffs)

	demand := constraintByName(t, m, "demand_c2")
	assert.Equal(t, solver.Equal, demand.Op)
	assert.Equal(t, 10.0, demand.RHS)
	assert.Equal(t, []float64{0, 1, 0, 1}, demand.Coeffs)
}

func TestCompileTransportationBalanced(t *testing.T) {
	spec := transportSpec()
	spec.Balanced = true

	m, err := CompileTransportation(spec)
	require.NoError(t, err)

	supply := constraintByName(t, m, "supply_s2")
	assert.Equal(t, solver.Equal, supply.Op)
}
