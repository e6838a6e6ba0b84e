package schema

import (
	"encoding/json"
	"fmt"
)

// Variable domain names accepted in LP/MIP specifications.
const (
	VarContinuous = "continuous"
	VarInteger    = "integer"
	VarBinary     = "binary"
)

// VariableDef declares one decision variable. Bounds default to [0, +inf).
type VariableDef struct {
	Name  string   `json:"name"`
	Type  string   `json:"type"`
	Lower *float64 `json:"lower,omitempty"`
	Upper *float64 `json:"upper,omitempty"`
}

// UnmarshalJSON applies the continuous default before decoding.
func (v *VariableDef) UnmarshalJSON(data []byte) error {
	type plain VariableDef
	tmp := plain{Type: VarContinuous}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*v = VariableDef(tmp)
	return nil
}

// ConstraintDef declares one linear constraint row.
type ConstraintDef struct {
	Name         string             `json:"name"`
	Coefficients map[string]float64 `json:"coefficients"`
	Operator     string             `json:"operator"`
	RHS          float64            `json:"rhs"`
}

// LinearProgramSpec describes a general LP or MIP: declared variables,
// a linear objective with a sense and literal linear constraints.
type LinearProgramSpec struct {
	Sense       string             `json:"sense"`
	Objective   map[string]float64 `json:"objective"`
	Variables   []VariableDef      `json:"variables"`
	Constraints []ConstraintDef    `json:"constraints"`
}

// ParseLinearProgram decodes and validates an LP/MIP specification.
func ParseLinearProgram(raw json.RawMessage) (*LinearProgramSpec, error) {
	spec := &LinearProgramSpec{Sense: "minimize"}
	if err := json.Unmarshal(raw, spec); err != nil {
		return nil, &ValidationError{Field: "variables", Message: "malformed linear program input: " + err.Error()}
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// Validate checks declarations first, then that every referenced variable
// name is declared.
func (s *LinearProgramSpec) Validate() error {
	rules := []rule{
		{"variables", "at least one variable required", func() bool { return len(s.Variables) > 0 }},
		{"sense", "must be maximize or minimize", func() bool { return s.Sense == "maximize" || s.Sense == "minimize" }},
		{"objective", "is required", func() bool { return len(s.Objective) > 0 }},
	}
	declared := make(map[string]bool, len(s.Variables))
	for i := range s.Variables {
		v := &s.Variables[i]
		prefix := fmt.Sprintf("variables[%d]", i)
		rules = append(rules,
			rule{prefix + ".name", "is required", func() bool { return v.Name != "" }},
			rule{prefix + ".name", "must be unique", func() bool {
				if declared[v.Name] {
					return false
				}
				declared[v.Name] = true
				return true
			}},
			rule{prefix + ".type", "must be continuous, integer or binary", func() bool {
				switch v.Type {
				case VarContinuous, VarInteger, VarBinary:
					return true
				}
				return false
			}},
			rule{prefix, "lower bound must not exceed upper bound", func() bool {
				return v.Lower == nil || v.Upper == nil || *v.Lower <= *v.Upper
			}},
		)
	}
	for i := range s.Constraints {
		ct := &s.Constraints[i]
		prefix := fmt.Sprintf("constraints[%d]", i)
		rules = append(rules,
			rule{prefix + ".coefficients", "is required", func() bool { return len(ct.Coefficients) > 0 }},
			rule{prefix + ".operator", "must be <=, >= or =", func() bool {
				switch ct.Operator {
				case "<=", ">=", "=", "==":
					return true
				}
				return false
			}},
		)
	}
	if err := firstViolation(rules); err != nil {
		return err
	}

	cross := make([]rule, 0, len(s.Constraints)+1)
	cross = append(cross, rule{"objective", "references undeclared variable", func() bool {
		for name := range s.Objective {
			if !declared[name] {
				return false
			}
		}
		return true
	}})
	for i := range s.Constraints {
		ct := &s.Constraints[i]
		cross = append(cross, rule{
			fmt.Sprintf("constraints[%d].coefficients", i), "references undeclared variable",
			func() bool {
				for name := range ct.Coefficients {
					if !declared[name] {
						return false
					}
				}
				return true
			},
		})
	}
	return errOrNil(firstViolation(cross))
}
