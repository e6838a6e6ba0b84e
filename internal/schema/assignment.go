package schema

import (
	"encoding/json"
	"fmt"
)

// AssignmentSpec describes a worker/task assignment problem with a cost
// matrix indexed [worker][task]. When AllowIdleWorkers is set, a worker may
// remain unassigned; every task always needs exactly one worker.
type AssignmentSpec struct {
	Workers          []string    `json:"workers"`
	Tasks            []string    `json:"tasks"`
	Costs            [][]float64 `json:"costs"`
	AllowIdleWorkers bool        `json:"allow_idle_workers,omitempty"`
}

// ParseAssignment decodes and validates an assignment specification.
func ParseAssignment(raw json.RawMessage) (*AssignmentSpec, error) {
	spec := &AssignmentSpec{}
	if err := json.Unmarshal(raw, spec); err != nil {
		return nil, &ValidationError{Field: "costs", Message: "malformed assignment input: " + err.Error()}
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// Validate checks the entity lists and the cost matrix shape. Whether a
// feasible assignment exists is a property of the compiled model, not
// pre-checked here.
func (s *AssignmentSpec) Validate() error {
	rules := []rule{
		{"workers", "at least one worker required", func() bool { return len(s.Workers) > 0 }},
		{"tasks", "at least one task required", func() bool { return len(s.Tasks) > 0 }},
		{"costs", "must have one row per worker", func() bool { return len(s.Costs) == len(s.Workers) }},
	}
	if err := firstViolation(rules); err != nil {
		return err
	}
	for i, row := range s.Costs {
		if len(row) != len(s.Tasks) {
			return &ValidationError{
				Field:   fmt.Sprintf("costs[%d]", i),
				Message: "must have one column per task",
			}
		}
	}
	return nil
}
