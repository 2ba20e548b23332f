package config

import "fmt"

// ConfigurationError reports a required secret or setting that is absent
// from the environment. It is returned by Load before any component starts,
// so the process fails fast with a clear remediation hint.
type ConfigurationError struct {
	// Variable is the environment variable that must be set.
	Variable string
	// Hint optionally tells the operator how to obtain or set the value.
	Hint string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s environment variable is required", e.Variable)
}
