package validate

import (
	"fmt"
	"strings"
)

// FieldError reports a value that falls outside the range or enumeration
// declared for its field. It is returned by configuration loading and by
// tool input checks, always before the invalid value is acted upon.
type FieldError struct {
	// Field is the name the caller knows the value by, e.g. the
	// environment variable ("TEMPERATURE") or tool parameter ("max_results").
	Field string
	// Value is the offending value as it was received.
	Value any
	// Constraint describes the violated bound in human-readable form.
	Constraint string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid value for %s: %v (%s)", e.Field, e.Value, e.Constraint)
}

// FloatRange checks that v lies within [lo, hi] inclusive.
func FloatRange(field string, v, lo, hi float64) error {
	if v < lo || v > hi {
		return &FieldError{
			Field:      field,
			Value:      v,
			Constraint: fmt.Sprintf("must be between %v and %v", lo, hi),
		}
	}
	return nil
}

// IntRange checks that v lies within [lo, hi] inclusive.
func IntRange(field string, v, lo, hi int) error {
	if v < lo || v > hi {
		return &FieldError{
			Field:      field,
			Value:      v,
			Constraint: fmt.Sprintf("must be between %d and %d", lo, hi),
		}
	}
	return nil
}

// IntMin checks that v is at least lo.
func IntMin(field string, v, lo int) error {
	if v < lo {
		return &FieldError{
			Field:      field,
			Value:      v,
			Constraint: fmt.Sprintf("must be at least %d", lo),
		}
	}
	return nil
}

// OneOf checks that v is a member of the allowed set.
func OneOf(field, v string, allowed ...string) error {
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return &FieldError{
		Field:      field,
		Value:      v,
		Constraint: "must be one of: " + strings.Join(allowed, ", "),
	}
}

// NotBlank checks that v contains at least one non-whitespace character.
func NotBlank(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return &FieldError{Field: field, Value: v, Constraint: "must not be blank"}
	}
	return nil
}
