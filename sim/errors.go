package sim

import (
	"errors"
	"fmt"
)

// ErrInputAborted reports that the input collaborator stopped before supplying
// every declared process. Execute turns it into a StatusAborted result.
var ErrInputAborted = errors.New("process input aborted")

// ConfigurationError rejects a run before the first tick.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

func configErrorf(field, format string, args ...any) error {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// InvariantViolation signals an engine bug. It is never user-facing and a run
// that hits one stops immediately.
type InvariantViolation struct {
	Clock  int64
	PID    int // 0 when the violation is not tied to one process
	Detail string
}

func (e *InvariantViolation) Error() string {
	if e.PID == 0 {
		return fmt.Sprintf("invariant violation at tick %d: %s", e.Clock, e.Detail)
	}
	return fmt.Sprintf("invariant violation at tick %d (pid %d): %s", e.Clock, e.PID, e.Detail)
}

// IsConfigurationError reports whether err wraps a *ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// IsInvariantViolation reports whether err wraps an *InvariantViolation.
func IsInvariantViolation(err error) bool {
	var iv *InvariantViolation
	return errors.As(err, &iv)
}
