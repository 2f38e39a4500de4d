package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrNotFound     = errors.New("not found")
	ErrParse        = errors.New("parse error")
	ErrCycle        = errors.New("import cycle")
	ErrUnknownField = errors.New("unknown field")
	ErrValidation   = errors.New("validation failed")
	ErrInvariant    = errors.New("invariant violated")
	ErrExecution    = errors.New("execution error")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindNotFound     ErrorKind = "not_found"
	KindParse        ErrorKind = "parse"
	KindCycle        ErrorKind = "cycle"
	KindUnknownField ErrorKind = "unknown_field"
	KindValidation   ErrorKind = "validation"
	KindInvariant    ErrorKind = "invariant"
	KindExecution    ErrorKind = "execution"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op    string
	Kind  ErrorKind
	Path  string // Optional: document or file the error refers to
	Field string // Optional: document field
	Err   error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Field != "" {
		base += fmt.Sprintf(" (field=%s)", e.Field)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// Sentinel returns the sentinel error associated with kind, or nil.
func Sentinel(kind ErrorKind) error {
	switch kind {
	case KindNotFound:
		return ErrNotFound
	case KindParse:
		return ErrParse
	case KindCycle:
		return ErrCycle
	case KindUnknownField:
		return ErrUnknownField
	case KindValidation:
		return ErrValidation
	case KindInvariant:
		return ErrInvariant
	case KindExecution:
		return ErrExecution
	default:
		return nil
	}
}

// NewOpError builds an OpError whose message wraps the sentinel for kind, so
// errors.Is(err, ErrValidation) and IsKind(err, KindValidation) agree.
func NewOpError(op string, kind ErrorKind, path, field string, format string, args ...any) *OpError {
	msg := fmt.Sprintf(format, args...)
	var err error
	if s := Sentinel(kind); s != nil {
		err = fmt.Errorf("%s: %w", msg, s)
	} else {
		err = errors.New(msg)
	}
	return &OpError{Op: op, Kind: kind, Path: path, Field: field, Err: err}
}
