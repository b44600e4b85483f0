package pipeline

import "fmt"

// ConfigurationError indicates a pipeline manifest that cannot produce a
// valid pipeline graph: a consumed slot with no producer, an unset compute
// target, a reference to an undeclared dataset, and similar.
type ConfigurationError struct {
	Pipeline string
	Reason   string
}

func (e *ConfigurationError) Error() string {
	if e.Pipeline == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Pipeline, e.Reason)
}

func NewConfigurationError(pipeline string, format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{
		Pipeline: pipeline,
		Reason:   fmt.Sprintf(format, args...),
	}
}
