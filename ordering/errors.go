package ordering

import (
	"errors"
	"fmt"
)

// ErrNotRegistered is returned for records whose type was never registered
var ErrNotRegistered = errors.New("ordering: entity type not registered")

// ConfigurationError reports an invalid Config for a model
type ConfigurationError struct {
	Model  string
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("ordering: %s: %s", e.Model, e.Reason)
	}
	return fmt.Sprintf("ordering: %s.%s: %s", e.Model, e.Field, e.Reason)
}

// StoreQueryError wraps a failed max-order lookup. The record is left unchanged.
type StoreQueryError struct {
	Table  string
	Filter map[string]any
	Err    error
}

func (e *StoreQueryError) Error() string {
	return fmt.Sprintf("ordering: max order lookup on %s %v: %v", e.Table, e.Filter, e.Err)
}

func (e *StoreQueryError) Unwrap() error {
	return e.Err
}
