package domain

import "fmt"

// DataShapeError reports a malformed per-city payload: a missing hourly block
// or parallel series arrays of unequal length. Such payloads are rejected
// outright, never truncated to the shortest array.
type DataShapeError struct {
	City   string
	Reason string
}

func (e *DataShapeError) Error() string {
	if e.City == "" {
		return fmt.Sprintf("data shape: %s", e.Reason)
	}
	return fmt.Sprintf("data shape: city %q: %s", e.City, e.Reason)
}

// ConfigurationError reports a missing or invalid processing or threshold
// setting. It is raised at the boundary of the component that first consumes
// the setting and never retried.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Reason)
}
