// Package simplex implements the LP/MIP engine. Continuous relaxations are
// solved with gonum's simplex method after conversion to standard form;
// integer and binary domains are handled by branch and bound on top of it.
package simplex

import (
	"context"
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/copyleftdev/SOLVR/internal/solver"
)

const (
	// simplexTol is the pivot tolerance handed to lp.Simplex.
	simplexTol = 1e-10
	// featureTol is the tolerance for rank detection and consistency checks.
	featureTol = 1e-9
)

// Engine solves compiled models via the simplex method.
type Engine struct{}

func init() {
	solver.Register(&Engine{})
}

// Name returns the backend name used for engine selection.
func (e *Engine) Name() string { return "simplex" }

// Solve runs the model. Pure LPs go straight to the simplex; models with
// integer or binary variables are dispatched to branch and bound.
func (e *Engine) Solve(ctx context.Context, model *solver.Model, opts solver.Options) (*solver.Outcome, error) {
	if model.HasIntegrality() {
		return e.branchAndBound(ctx, model, opts)
	}
	return e.solveRelaxation(model, nil, nil, newWorkPool())
}

// colKind describes how an original variable maps onto standard-form columns.
type colKind int

const (
	colShift colKind = iota // x = y + offset, y >= 0
	colNeg                  // x = offset - y, y >= 0
	colSplit                // x = y1 - y2, both >= 0
	colFixed                // x = offset, no column
)

type colMap struct {
	kind   colKind
	col    int
	col2   int
	offset float64
}

// stdRow is an intermediate constraint row over standard-form columns,
// before slack variables are introduced.
type stdRow struct {
	coef []float64
	op   solver.Operator
	rhs  float64
}

// solveRelaxation solves the continuous relaxation of the model, with
// optional bound overrides from branch-and-bound nodes. Infeasibility and
// unboundedness are reported through the outcome status; the error return is
// reserved for engine-internal failures.
func (e *Engine) solveRelaxation(model *solver.Model, lower, upper []float64, pool *workPool) (*solver.Outcome, error) {
	n := len(model.Variables)

	lo := make([]float64, n)
	hi := make([]float64, n)
	for j, v := range model.Variables {
		lo[j], hi[j] = v.Lower, v.Upper
		if lower != nil && lower[j] > lo[j] {
			lo[j] = lower[j]
		}
		if upper != nil && upper[j] < hi[j] {
			hi[j] = upper[j]
		}
		if lo[j] > hi[j]+featureTol {
			return &solver.Outcome{Status: solver.StatusInfeasible, Message: "variable bounds cross"}, nil
		}
	}

	// Objective in minimize sense.
	cobj := make([]float64, n)
	for j, c := range model.Objective {
		if model.Sense == solver.Maximize {
			cobj[j] = -c
		} else {
			cobj[j] = c
		}
	}

	// Variables absent from every constraint row would produce zero columns,
	// which the simplex rejects. Resolve them against their bounds up front.
	appears := make([]bool, n)
	for _, ct := range model.Constraints {
		for j, a := range ct.Coeffs {
			if a != 0 {
				appears[j] = true
			}
		}
	}

	cols := make([]colMap, n)
	ncols := 0
	var boundRows []int
	for j := 0; j < n; j++ {
		l, h := lo[j], hi[j]
		switch {
		case !math.IsInf(l, -1) && !math.IsInf(h, 1) && h-l <= featureTol:
			cols[j] = colMap{kind: colFixed, offset: l}
		case !appears[j]:
			fixed, unbounded := resolveFreeColumn(cobj[j], l, h)
			if unbounded {
				return &solver.Outcome{Status: solver.StatusUnbounded, Message: "objective is unbounded"}, nil
			}
			cols[j] = colMap{kind: colFixed, offset: fixed}
		case math.IsInf(l, -1) && math.IsInf(h, 1):
			cols[j] = colMap{kind: colSplit, col: ncols, col2: ncols + 1}
			ncols += 2
		case !math.IsInf(l, -1):
			cols[j] = colMap{kind: colShift, col: ncols, offset: l}
			ncols++
			if !math.IsInf(h, 1) {
				boundRows = append(boundRows, j)
			}
		default:
			cols[j] = colMap{kind: colNeg, col: ncols, offset: h}
			ncols++
		}
	}

	rows := make([]stdRow, 0, len(model.Constraints)+len(boundRows))
	for _, ct := range model.Constraints {
		r := make([]float64, ncols)
		rhs := ct.RHS
		zero := true
		for j, a := range ct.Coeffs {
			if a == 0 {
				continue
			}
			switch cm := cols[j]; cm.kind {
			case colFixed:
				rhs -= a * cm.offset
			case colShift:
				r[cm.col] += a
				rhs -= a * cm.offset
				zero = false
			case colNeg:
				r[cm.col] -= a
				rhs -= a * cm.offset
				zero = false
			case colSplit:
				r[cm.col] += a
				r[cm.col2] -= a
				zero = false
			}
		}
		if zero {
			if !trivialRowHolds(ct.Op, rhs) {
				return &solver.Outcome{Status: solver.StatusInfeasible, Message: "constraint " + ct.Name + " cannot be satisfied"}, nil
			}
			continue
		}
		rows = append(rows, stdRow{coef: r, op: ct.Op, rhs: rhs})
	}
	for _, j := range boundRows {
		r := make([]float64, ncols)
		r[cols[j].col] = 1
		rows = append(rows, stdRow{coef: r, op: solver.LessEq, rhs: hi[j] - lo[j]})
	}

	// With no rows left, the standard-form problem is min c'y over y >= 0.
	if len(rows) == 0 {
		for j := range cols {
			if cols[j].kind == colFixed {
				continue
			}
			if stdCost(cobj[j], cols[j].kind) < 0 {
				return &solver.Outcome{Status: solver.StatusUnbounded, Message: "objective is unbounded"}, nil
			}
		}
		x := recoverPoint(cols, nil, n)
		return optimalOutcome(model, x), nil
	}

	nslack := 0
	for _, r := range rows {
		if r.op != solver.Equal {
			nslack++
		}
	}
	total := ncols + nslack

	c := make([]float64, total)
	for j := range cols {
		switch cm := cols[j]; cm.kind {
		case colShift:
			c[cm.col] += cobj[j]
		case colNeg:
			c[cm.col] -= cobj[j]
		case colSplit:
			c[cm.col] += cobj[j]
			c[cm.col2] -= cobj[j]
		}
	}

	a := mat.NewDense(len(rows), total, nil)
	b := make([]float64, len(rows))
	si := ncols
	for i, r := range rows {
		sign := 1.0
		if r.op == solver.GreaterEq {
			sign = -1
		}
		for j, v := range r.coef {
			if v != 0 {
				a.Set(i, j, sign*v)
			}
		}
		b[i] = sign * r.rhs
		if r.op != solver.Equal {
			a.Set(i, si, 1)
			si++
		}
	}

	a, b, feasible := dropDependentRows(a, b, pool)
	if !feasible {
		return &solver.Outcome{Status: solver.StatusInfeasible, Message: "constraints are inconsistent"}, nil
	}
	equilibrate(a, b)

	_, y, err := lp.Simplex(c, a, b, simplexTol, nil)
	switch {
	case errors.Is(err, lp.ErrInfeasible):
		return &solver.Outcome{Status: solver.StatusInfeasible, Message: "model has no feasible point"}, nil
	case errors.Is(err, lp.ErrUnbounded):
		return &solver.Outcome{Status: solver.StatusUnbounded, Message: "objective is unbounded"}, nil
	case err != nil:
		return nil, solver.WrapError(err, "simplex failed").WithComponent("simplex").WithOperation("solve")
	}

	x := recoverPoint(cols, y, n)
	return optimalOutcome(model, x), nil
}

// resolveFreeColumn decides the optimal value of a variable that appears in
// no constraint row. Returns its fixed value, or unbounded=true when the
// objective can improve without limit along it.
func resolveFreeColumn(c, lo, hi float64) (fixed float64, unbounded bool) {
	switch {
	case math.IsInf(lo, -1) && math.IsInf(hi, 1):
		if c != 0 {
			return 0, true
		}
		return 0, false
	case math.IsInf(hi, 1):
		if c < 0 {
			return 0, true
		}
		return lo, false
	case math.IsInf(lo, -1):
		if c > 0 {
			return 0, true
		}
		return hi, false
	default:
		if c < 0 {
			return hi, false
		}
		return lo, false
	}
}

// stdCost is the standard-form cost on the primary column of a variable.
func stdCost(c float64, kind colKind) float64 {
	switch kind {
	case colNeg:
		return -c
	case colSplit:
		// Split columns carry +c and -c; one of them is negative unless c is 0.
		if c != 0 {
			return -math.Abs(c)
		}
		return 0
	default:
		return c
	}
}

// trivialRowHolds checks a constraint row whose coefficients all vanished
// against its residual right-hand side.
func trivialRowHolds(op solver.Operator, rhs float64) bool {
	switch op {
	case solver.LessEq:
		return rhs >= -featureTol
	case solver.GreaterEq:
		return rhs <= featureTol
	default:
		return math.Abs(rhs) <= featureTol
	}
}

// recoverPoint maps a standard-form point back to the original variables.
// A nil y recovers the all-zero standard-form point.
func recoverPoint(cols []colMap, y []float64, n int) []float64 {
	at := func(i int) float64 {
		if y == nil || i >= len(y) {
			return 0
		}
		return y[i]
	}
	x := make([]float64, n)
	for j, cm := range cols {
		switch cm.kind {
		case colFixed:
			x[j] = cm.offset
		case colShift:
			x[j] = cm.offset + at(cm.col)
		case colNeg:
			x[j] = cm.offset - at(cm.col)
		case colSplit:
			x[j] = at(cm.col) - at(cm.col2)
		}
	}
	return x
}

func optimalOutcome(model *solver.Model, x []float64) *solver.Outcome {
	return &solver.Outcome{
		Status:    solver.StatusOptimal,
		Objective: model.ObjectiveValue(x),
		Values:    x,
	}
}

// dropDependentRows removes linearly dependent rows from the equality system
// A x = b. The simplex requires A to have full row rank, which compiled
// models do not always provide (assignment row and column sums, balanced
// transportation). A dependent row with a non-zero residual makes the system
// inconsistent; feasible is false in that case.
func dropDependentRows(a *mat.Dense, b []float64, pool *workPool) (*mat.Dense, []float64, bool) {
	m, n := a.Dims()

	w := pool.get(m, n+1)
	defer pool.put(w)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			w.Set(i, j, a.At(i, j))
		}
		w.Set(i, n, b[i])
	}

	used := make([]bool, m)
	keep := make([]int, 0, m)
	for j := 0; j < n && len(keep) < m; j++ {
		pivot, pv := -1, featureTol
		for i := 0; i < m; i++ {
			if !used[i] && math.Abs(w.At(i, j)) > pv {
				pivot, pv = i, math.Abs(w.At(i, j))
			}
		}
		if pivot < 0 {
			continue
		}
		used[pivot] = true
		keep = append(keep, pivot)
		pc := w.At(pivot, j)
		for i := 0; i < m; i++ {
			if used[i] || w.At(i, j) == 0 {
				continue
			}
			f := w.At(i, j) / pc
			for k := j; k <= n; k++ {
				w.Set(i, k, w.At(i, k)-f*w.At(pivot, k))
			}
		}
	}

	if len(keep) == m {
		return a, b, true
	}

	// Rows left without a pivot are linear combinations of the kept rows;
	// a non-zero residual right-hand side means no solution exists.
	for i := 0; i < m; i++ {
		if !used[i] && math.Abs(w.At(i, n)) > featureTol {
			return a, b, false
		}
	}

	reduced := mat.NewDense(len(keep), n, nil)
	rb := make([]float64, len(keep))
	for idx, i := range keep {
		for j := 0; j < n; j++ {
			reduced.Set(idx, j, a.At(i, j))
		}
		rb[idx] = b[i]
	}
	return reduced, rb, true
}

// equilibrate scales each row by its largest absolute coefficient, keeping
// large-coefficient models numerically tame. Row scaling does not change the
// solution of an equality system.
func equilibrate(a *mat.Dense, b []float64) {
	m, n := a.Dims()
	for i := 0; i < m; i++ {
		max := 0.0
		for j := 0; j < n; j++ {
			if v := math.Abs(a.At(i, j)); v > max {
				max = v
			}
		}
		if max <= 1 {
			continue
		}
		for j := 0; j < n; j++ {
			a.Set(i, j, a.At(i, j)/max)
		}
		b[i] /= max
	}
}
