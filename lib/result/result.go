package result

import (
	"errors"
	"fmt"
)

// --------------------------------------------------------------------------
// Error Codes
// --------------------------------------------------------------------------

// Code identifies a failure category. The numbering is grouped by concern:
// 1xx for key/value validation, 2xx for serialization.
type Code int

const (
	CodeKeyNotFound           Code = 100 // Lookup or remove on an absent key.
	CodeTypeMismatch          Code = 101 // Value kind not allowed by the storage policy.
	CodeValueOutOfRange       Code = 102 // Magnitude exceeds the declared numeric range.
	CodeInvalidValue          Code = 103 // Malformed value content.
	CodeEmptyKey              Code = 105 // Mutating call with an empty name.
	CodeSerializationFailed   Code = 200 // Could not produce serialized output.
	CodeDeserializationFailed Code = 201 // Malformed or truncated input.
	CodeInvalidFormat         Code = 202 // Unknown or unsupported serialization format.
)

func (c Code) String() string {
	switch c {
	case CodeKeyNotFound:
		return "KeyNotFound"
	case CodeTypeMismatch:
		return "TypeMismatch"
	case CodeValueOutOfRange:
		return "Overflow"
	case CodeInvalidValue:
		return "InvalidValue"
	case CodeEmptyKey:
		return "EmptyKey"
	case CodeSerializationFailed:
		return "SerializationFailed"
	case CodeDeserializationFailed:
		return "DeserializationFailed"
	case CodeInvalidFormat:
		return "InvalidFormat"
	default:
		return "Unknown"
	}
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is the error type returned by all result-form entry points. It
// carries a code, a human-readable message and the tag of the module that
// produced it. Silent entry points never construct one.
type Error struct {
	Code   Code   // The failure category
	Module string // The originating module tag (e.g. "value", "container")
	Msg    string // The error message
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s (code %s): %s", e.Module, e.Code, e.Msg)
}

// Is reports whether target is an *Error with the same code, so callers can
// match with errors.Is against a sentinel like &Error{Code: CodeEmptyKey}.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// New creates a new Error with the given code, module tag and message.
func New(code Code, module, msg string) *Error {
	return &Error{Code: code, Module: module, Msg: msg}
}

// Newf is New with printf-style message formatting.
func Newf(code Code, module, format string, args ...interface{}) *Error {
	return &Error{Code: code, Module: module, Msg: fmt.Sprintf(format, args...)}
}

// IsCode reports whether err is an *Error carrying the given code.
func IsCode(err error, code Code) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == code
}
