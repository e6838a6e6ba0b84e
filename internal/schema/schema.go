// Package schema holds the declarative problem specifications and their
// validation rules. Validation runs field-local rules first and cross-field
// rules second, short-circuiting on the first violation; no model is ever
// compiled from an invalid specification.
package schema

import "fmt"

// matrixTol is the floating tolerance for correlation matrix checks.
const matrixTol = 1e-6

// ValidationError reports the specific field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// rule is one predicate+message pair in a validation pipeline. ok returns
// true when the rule holds.
type rule struct {
	field   string
	message string
	ok      func() bool
}

// firstViolation evaluates rules in order and returns the first failure.
func firstViolation(rules []rule) *ValidationError {
	for _, r := range rules {
		if !r.ok() {
			return &ValidationError{Field: r.field, Message: r.message}
		}
	}
	return nil
}

// inUnit reports whether v lies in [0, 1].
func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}
