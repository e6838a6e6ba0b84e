package knapsack

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copyleftdev/SOLVR/internal/solver"
)

func knapsackModel(values, weights []float64, capacity float64) *solver.Model {
	m := solver.NewModel("knapsack", solver.Maximize)
	for _, v := range values {
		j := m.AddVariable("item", solver.Binary, 0, 1)
		m.SetObjective(j, v)
	}
	m.AddConstraint("capacity", weights, solver.LessEq, capacity)
	return m
}

func solve(t *testing.T, m *solver.Model) *solver.Outcome {
	t.Helper()
	e := &Engine{}
	out, err := e.Solve(context.Background(), m, solver.DefaultOptions())
	require.NoError(t, err)
	return out
}

func TestClassicSelection(t *testing.T) {
	m := knapsackModel(
		[]float64{10, 15, 8, 12},
		[]float64{5, 8, 3, 6},
		10,
	)

	out := solve(t, m)
	require.Equal(t, solver.StatusOptimal, out.Status)
	assert.InDelta(t, 20.0, out.Objective, 1e-9)
	assert.Equal(t, []float64{0, 0, 1, 1}, out.Values)
}

func TestNothingFits(t *testing.T) {
	m := knapsackModel(
		[]float64{100, 200},
		[]float64{50, 60},
		10,
	)

	out := solve(t, m)
	require.Equal(t, solver.StatusOptimal, out.Status)
	assert.InDelta(t, 0.0, out.Objective, 1e-9)
	assert.Equal(t, []float64{0, 0}, out.Values)
}

func TestFractionalWeights(t *testing.T) {
	m := knapsackModel(
		[]float64{3, 4},
		[]float64{0.5, 0.6},
		1.0,
	)

	out := solve(t, m)
	require.Equal(t, solver.StatusOptimal, out.Status)
	assert.InDelta(t, 4.0, out.Objective, 1e-9)
	assert.Equal(t, []float64{0, 1}, out.Values)
}

func TestBoundedCopies(t *testing.T) {
	// One item worth 5 at weight 3, up to 3 copies, capacity 7: two copies fit.
	m := solver.NewModel("copies", solver.Maximize)
	j := m.AddVariable("item", solver.Integer, 0, 3)
	m.SetObjective(j, 5)
	m.AddConstraint("capacity", []float64{3}, solver.LessEq, 7)

	out := solve(t, m)
	require.Equal(t, solver.StatusOptimal, out.Status)
	assert.InDelta(t, 10.0, out.Objective, 1e-9)
	assert.InDelta(t, 2.0, out.Values[j], 1e-9)
}

func TestTwoDimensionalCapacity(t *testing.T) {
	// Weight allows A+C but volume does not; B+C meets both limits exactly.
	m := solver.NewModel("2d", solver.Maximize)
	values := []float64{10, 9, 6}
	weights := []float64{5, 4, 4}
	volumes := []float64{5, 6, 2}
	for _, v := range values {
		j := m.AddVariable("item", solver.Binary, 0, 1)
		m.SetObjective(j, v)
	}
	m.AddConstraint("weight", weights, solver.LessEq, 8)
	m.AddConstraint("volume", volumes, solver.LessEq, 8)

	out := solve(t, m)
	require.Equal(t, solver.StatusOptimal, out.Status)
	assert.InDelta(t, 15.0, out.Objective, 1e-9)
	assert.Equal(t, []float64{0, 1, 1}, out.Values)
}

func TestRejectsMinimizeModels(t *testing.T) {
	m := solver.NewModel("bad", solver.Minimize)
	j := m.AddVariable("item", solver.Binary, 0, 1)
	m.SetObjective(j, 1)
	m.AddConstraint("capacity", []float64{1}, solver.LessEq, 1)

	e := &Engine{}
	_, err := e.Solve(context.Background(), m, solver.DefaultOptions())
	assert.Error(t, err)
}

func TestRejectsContinuousVariables(t *testing.T) {
	m := solver.NewModel("bad", solver.Maximize)
	j := m.AddVariable("item", solver.Continuous, 0, 1)
	m.SetObjective(j, 1)
	m.AddConstraint("capacity", []float64{1}, solver.LessEq, 1)

	e := &Engine{}
	_, err := e.Solve(context.Background(), m, solver.DefaultOptions())
	assert.Error(t, err)
}

func TestRejectsNonCapacityRows(t *testing.T) {
	m := solver.NewModel("bad", solver.Maximize)
	j := m.AddVariable("item", solver.Binary, 0, 1)
	m.SetObjective(j, 1)
	m.AddConstraint("exact", []float64{1}, solver.Equal, 1)

	e := &Engine{}
	_, err := e.Solve(context.Background(), m, solver.DefaultOptions())
	assert.Error(t, err)
}
