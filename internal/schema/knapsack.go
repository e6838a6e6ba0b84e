package schema

import (
	"encoding/json"
	"fmt"
)

// Item is one selectable entity in a knapsack problem. Volume is an
// optional second weight dimension; MaxCopies above 1 allows bounded
// multi-copy selection.
type Item struct {
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
	Weight    float64 `json:"weight"`
	Volume    float64 `json:"volume,omitempty"`
	MaxCopies int     `json:"max_copies,omitempty"`
}

// UnmarshalJSON applies per-item defaults before decoding.
func (it *Item) UnmarshalJSON(data []byte) error {
	type plain Item
	tmp := plain{MaxCopies: 1}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*it = Item(tmp)
	return nil
}

// KnapsackSpec describes a knapsack selection problem with a primary weight
// capacity and an optional volume capacity.
type KnapsackSpec struct {
	Items          []Item   `json:"items"`
	Capacity       float64  `json:"capacity"`
	VolumeCapacity *float64 `json:"volume_capacity,omitempty"`
}

// HasVolume reports whether the spec carries a second capacity dimension.
func (s *KnapsackSpec) HasVolume() bool { return s.VolumeCapacity != nil }

// ParseKnapsack decodes and validates a knapsack specification.
func ParseKnapsack(raw json.RawMessage) (*KnapsackSpec, error) {
	spec := &KnapsackSpec{}
	if err := json.Unmarshal(raw, spec); err != nil {
		return nil, &ValidationError{Field: "items", Message: "malformed knapsack input: " + err.Error()}
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// Validate rejects empty item lists and non-positive capacities before any
// model is compiled; an item heavier than capacity is legal and simply
// never selected.
func (s *KnapsackSpec) Validate() error {
	rules := []rule{
		{"items", "No items provided", func() bool { return len(s.Items) > 0 }},
		{"capacity", "Capacity must be positive", func() bool { return s.Capacity > 0 }},
	}
	if s.VolumeCapacity != nil {
		rules = append(rules, rule{
			"volume_capacity", "must be positive",
			func() bool { return *s.VolumeCapacity > 0 },
		})
	}
	for i := range s.Items {
		it := &s.Items[i]
		prefix := fmt.Sprintf("items[%d]", i)
		rules = append(rules,
			rule{prefix + ".name", "is required", func() bool { return it.Name != "" }},
			rule{prefix, "value and weight must be non-negative", func() bool { return it.Value >= 0 && it.Weight >= 0 }},
			rule{prefix + ".volume", "must be non-negative", func() bool { return it.Volume >= 0 }},
			rule{prefix + ".max_copies", "must be at least 1", func() bool { return it.MaxCopies >= 1 }},
		)
	}
	return errOrNil(firstViolation(rules))
}
