package tools

import (
	"errors"
	"fmt"
)

// ErrToolNotFound is returned when an execution or lookup names a tool the
// registry does not hold.
var ErrToolNotFound = errors.New("tool not found")

// DomainError reports input that is structurally valid but semantically
// impossible to execute, such as a division by zero or an operation the
// tool does not implement.
type DomainError struct {
	Tool   string // Name of the tool that rejected the input
	Reason string // Human-readable rejection
}

func (e *DomainError) Error() string {
	if e.Tool == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Tool, e.Reason)
}

// AlreadyRegisteredError reports a Register call that collides with an
// existing tool name. Deliberate overwrites go through Replace instead.
type AlreadyRegisteredError struct {
	Name string
}

func (e *AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("tool %s already registered", e.Name)
}
