package schema

import (
	"encoding/json"
	"fmt"
)

// Supplier is one supply node in a transportation problem.
type Supplier struct {
	Name   string  `json:"name"`
	Supply float64 `json:"supply"`
}

// Consumer is one demand node in a transportation problem.
type Consumer struct {
	Name   string  `json:"name"`
	Demand float64 `json:"demand"`
}

// TransportationSpec describes a shipping problem with per-route costs
// indexed [supplier][consumer]. With Balanced set, supply must be shipped
// exactly; otherwise supply rows only cap outflow. Whether total supply
// covers total demand is a property of the compiled constraints and is not
// pre-checked.
type TransportationSpec struct {
	Suppliers []Supplier  `json:"suppliers"`
	Consumers []Consumer  `json:"consumers"`
	Costs     [][]float64 `json:"costs"`
	Balanced  bool        `json:"balanced,omitempty"`
}

// ParseTransportation decodes and validates a transportation specification.
func ParseTransportation(raw json.RawMessage) (*TransportationSpec, error) {
	spec := &TransportationSpec{}
	if err := json.Unmarshal(raw, spec); err != nil {
		return nil, &ValidationError{Field: "costs", Message: "malformed transportation input: " + err.Error()}
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// Validate checks node lists, positivity and the cost matrix shape.
func (s *TransportationSpec) Validate() error {
	rules := []rule{
		{"suppliers", "at least one supplier required", func() bool { return len(s.Suppliers) > 0 }},
		{"consumers", "at least one consumer required", func() bool { return len(s.Consumers) > 0 }},
		{"costs", "must have one row per supplier", func() bool { return len(s.Costs) == len(s.Suppliers) }},
	}
	for i := range s.Suppliers {
		sp := &s.Suppliers[i]
		rules = append(rules, rule{
			fmt.Sprintf("suppliers[%d].supply", i), "must be positive",
			func() bool { return sp.Supply > 0 },
		})
	}
	for i := range s.Consumers {
		c := &s.Consumers[i]
		rules = append(rules, rule{
			fmt.Sprintf("consumers[%d].demand", i), "must be positive",
			func() bool { return c.Demand > 0 },
		})
	}
	if err := firstViolation(rules); err != nil {
		return err
	}
	for i, row := range s.Costs {
		if len(row) != len(s.Consumers) {
			return &ValidationError{
				Field:   fmt.Sprintf("costs[%d]", i),
				Message: "must have one column per consumer",
			}
		}
	}
	return nil
}
