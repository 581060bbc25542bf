package format

import (
	"errors"
	"fmt"
)

var (
	// ErrInvariant is wrapped by every InvariantError.
	ErrInvariant = errors.New("format: invariant violation")
	// ErrConfig is wrapped by every ConfigError.
	ErrConfig = errors.New("format: invalid configuration")
)

// InvariantError reports a malformed tree or a broken output guarantee.
// The caller must keep the original source when it sees one.
type InvariantError struct {
	Offset int // byte offset in the source, -1 when not tied to a position
	Msg    string
}

func (e *InvariantError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("format: invariant violation at offset %d: %s", e.Offset, e.Msg)
	}
	return "format: invariant violation: " + e.Msg
}

func (e *InvariantError) Unwrap() error { return ErrInvariant }

func invariantf(offset int, format string, args ...any) error {
	return &InvariantError{Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

// ConfigError reports an invalid Options field.
type ConfigError struct {
	Field string
	Value any
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("format: invalid %s %v: %s", e.Field, e.Value, e.Msg)
}

func (e *ConfigError) Unwrap() error { return ErrConfig }
