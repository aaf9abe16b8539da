package object

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes object errors.
type ErrorCode string

const (
	// ErrCodeImmutable indicates a mutation was attempted on a frozen object.
	ErrCodeImmutable ErrorCode = "IMMUTABLE"

	// ErrCodeInvalidArgument indicates a malformed call, such as an
	// exclusion query without criteria.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"

	// ErrCodeNoAttribute indicates the attribute does not exist.
	ErrCodeNoAttribute ErrorCode = "NO_ATTRIBUTE"

	// ErrCodeIndex indicates a sequence index out of range.
	ErrCodeIndex ErrorCode = "INDEX_OUT_OF_RANGE"

	// ErrCodeKey indicates a missing mapping key or set member.
	ErrCodeKey ErrorCode = "KEY_NOT_FOUND"

	// ErrCodeNotConstructible indicates an attempt to build an instance of
	// a specialized (frozen) shape.
	ErrCodeNotConstructible ErrorCode = "NOT_CONSTRUCTIBLE"
)

// Error is the single error type returned by this package.
//
// Sentinels such as ErrImmutable carry only a Code and match any Error
// with the same code under errors.Is.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Shape names the shape of the object involved, if any.
	Shape string

	// Op names the operation that failed, if any.
	Op string
}

// Sentinel errors for use with errors.Is.
var (
	ErrImmutable        = &Error{Code: ErrCodeImmutable}
	ErrInvalidArgument  = &Error{Code: ErrCodeInvalidArgument}
	ErrNoAttribute      = &Error{Code: ErrCodeNoAttribute}
	ErrIndex            = &Error{Code: ErrCodeIndex}
	ErrKey              = &Error{Code: ErrCodeKey}
	ErrNotConstructible = &Error{Code: ErrCodeNotConstructible}
)

// Error implements the error interface.
func (e *Error) Error() string {
	msg := string(e.Code)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	switch {
	case e.Shape != "" && e.Op != "":
		return fmt.Sprintf("%s (shape=%s, op=%s)", msg, e.Shape, e.Op)
	case e.Shape != "":
		return fmt.Sprintf("%s (shape=%s)", msg, e.Shape)
	}
	return msg
}

// Is reports whether target is a sentinel with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Shape == "" && t.Op == "" && t.Code == e.Code
}

// NewImmutableError creates the error returned by every denied mutation.
func NewImmutableError(s *Shape, op string) *Error {
	return &Error{
		Code:    ErrCodeImmutable,
		Message: "this object is immutable",
		Shape:   s.Name(),
		Op:      op,
	}
}

// NewInvalidArgument creates an INVALID_ARGUMENT error.
func NewInvalidArgument(format string, args ...any) *Error {
	return &Error{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

func newNoAttribute(s *Shape, name string) *Error {
	return &Error{
		Code:    ErrCodeNoAttribute,
		Message: fmt.Sprintf("no attribute %q", name),
		Shape:   s.Name(),
	}
}

func newIndexError(s *Shape, i, n int) *Error {
	return &Error{
		Code:    ErrCodeIndex,
		Message: fmt.Sprintf("index %d out of range for length %d", i, n),
		Shape:   s.Name(),
	}
}

func newKeyError(s *Shape, key Object) *Error {
	return &Error{
		Code:    ErrCodeKey,
		Message: fmt.Sprintf("key %s not found", Repr(key)),
		Shape:   s.Name(),
	}
}

// IsImmutableError returns true if err is (or wraps) an IMMUTABLE error.
func IsImmutableError(err error) bool {
	return hasCode(err, ErrCodeImmutable)
}

// IsInvalidArgument returns true if err is (or wraps) an INVALID_ARGUMENT error.
func IsInvalidArgument(err error) bool {
	return hasCode(err, ErrCodeInvalidArgument)
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
