package solver

import "math"

// Domain is the type of a decision variable.
type Domain int

const (
	Continuous Domain = iota
	Integer
	Binary
)

func (d Domain) String() string {
	switch d {
	case Continuous:
		return "continuous"
	case Integer:
		return "integer"
	case Binary:
		return "binary"
	default:
		return "unknown"
	}
}

// Sense is the optimization direction of the objective.
type Sense int

const (
	Minimize Sense = iota
	Maximize
)

// Operator is the relational operator of a constraint row.
type Operator int

const (
	LessEq Operator = iota
	GreaterEq
	Equal
)

func (op Operator) String() string {
	switch op {
	case LessEq:
		return "<="
	case GreaterEq:
		return ">="
	case Equal:
		return "="
	default:
		return "?"
	}
}

// Variable is a decision variable with a domain and bounds.
// Binary variables always have bounds [0, 1] regardless of Lower/Upper.
type Variable struct {
	Name   string
	Domain Domain
	Lower  float64
	Upper  float64
}

// Constraint is a named linear row: sum(Coeffs[i] * x[i]) Op RHS.
// Coeffs is indexed by variable position in the model.
type Constraint struct {
	Name   string
	Coeffs []float64
	Op     Operator
	RHS    float64
}

// Model is the solver-facing form of a compiled problem: an ordered set of
// decision variables, a single linear objective and a set of constraint rows.
// Models are built fresh per request and discarded after solving.
type Model struct {
	Name        string
	Sense       Sense
	Objective   []float64
	Variables   []Variable
	Constraints []Constraint
}

// NewModel returns an empty model with the given name and objective sense.
func NewModel(name string, sense Sense) *Model {
	return &Model{Name: name, Sense: sense}
}

// AddVariable appends a decision variable and returns its column index.
// A zero objective coefficient is reserved for it; set it with SetObjective.
func (m *Model) AddVariable(name string, dom Domain, lower, upper float64) int {
	if dom == Binary {
		lower, upper = 0, 1
	}
	m.Variables = append(m.Variables, Variable{Name: name, Domain: dom, Lower: lower, Upper: upper})
	m.Objective = append(m.Objective, 0)
	return len(m.Variables) - 1
}

// SetObjective sets the objective coefficient of the variable at index i.
func (m *Model) SetObjective(i int, coeff float64) {
	m.Objective[i] = coeff
}

// AddConstraint appends a named constraint row. The coefficient slice is
// padded to the current variable count.
func (m *Model) AddConstraint(name string, coeffs []float64, op Operator, rhs float64) {
	row := make([]float64, len(m.Variables))
	copy(row, coeffs)
	m.Constraints = append(m.Constraints, Constraint{Name: name, Coeffs: row, Op: op, RHS: rhs})
}

// HasIntegrality reports whether any variable has an integer or binary domain.
func (m *Model) HasIntegrality() bool {
	for _, v := range m.Variables {
		if v.Domain != Continuous {
			return true
		}
	}
	return false
}

// ObjectiveValue evaluates the objective expression at the given point.
func (m *Model) ObjectiveValue(x []float64) float64 {
	var sum float64
	for i, c := range m.Objective {
		if i < len(x) {
			sum += c * x[i]
		}
	}
	return sum
}

// PosInf and NegInf are the default variable bounds.
var (
	PosInf = math.Inf(1)
	NegInf = math.Inf(-1)
)
