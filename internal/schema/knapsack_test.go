package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKnapsackDefaults(t *testing.T) {
	spec, err := ParseKnapsack(json.RawMessage(`{
		"items": [
			{"name": "gold", "value": 10, "weight": 5},
			{"name": "silver", "value": 6, "weight": 3, "max_copies": 4}
		],
		"capacity": 10
	}`))
	require.NoError(t, err)

	require.Len(t, spec.Items, 2)
	assert.Equal(t, 1, spec.Items[0].MaxCopies)
	assert.Equal(t, 4, spec.Items[1].MaxCopies)
	assert.False(t, spec.HasVolume())
}

func TestKnapsackValidate(t *testing.T) {
	volume := -2.0
	tests := []struct {
		name    string
		spec    KnapsackSpec
		wantErr string
	}{
		{
			name: "valid",
			spec: KnapsackSpec{
				Items:    []Item{{Name: "a", Value: 1, Weight: 1, MaxCopies: 1}},
				Capacity: 5,
			},
		},
		{
			name:    "no items",
			spec:    KnapsackSpec{Capacity: 5},
			wantErr: "items: No items provided",
		},
		{
			name: "zero capacity",
			spec: KnapsackSpec{
				Items: []Item{{Name: "a", Value: 1, Weight: 1, MaxCopies: 1}},
			},
			wantErr: "capacity: Capacity must be positive",
		},
		{
			name: "negative value",
			spec: KnapsackSpec{
				Items:    []Item{{Name: "a", Value: -1, Weight: 1, MaxCopies: 1}},
				Capacity: 5,
			},
			wantErr: "items[0]: value and weight must be non-negative",
		},
		{
			name: "negative weight",
			spec: KnapsackSpec{
				Items:    []Item{{Name: "a", Value: 1, Weight: -1, MaxCopies: 1}},
				Capacity: 5,
			},
			wantErr: "items[0]: value and weight must be non-negative",
		},
		{
			name: "unnamed item",
			spec: KnapsackSpec{
				Items:    []Item{{Value: 1, Weight: 1, MaxCopies: 1}},
				Capacity: 5,
			},
			wantErr: "items[0].name: is required",
		},
		{
			name: "negative volume capacity",
			spec: KnapsackSpec{
				Items:          []Item{{Name: "a", Value: 1, Weight: 1, MaxCopies: 1}},
				Capacity:       5,
				VolumeCapacity: &volume,
			},
			wantErr: "volume_capacity: must be positive",
		},
		{
			name: "zero max copies",
			spec: KnapsackSpec{
				Items:    []Item{{Name: "a", Value: 1, Weight: 1, MaxCopies: 0}},
				Capacity: 5,
			},
			wantErr: "items[0].max_copies: must be at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestKnapsackItemHeavierThanCapacityIsValid(t *testing.T) {
	spec := KnapsackSpec{
		Items:    []Item{{Name: "anvil", Value: 100, Weight: 50, MaxCopies: 1}},
		Capacity: 10,
	}
	assert.NoError(t, spec.Validate())
}
