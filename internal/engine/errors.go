package engine

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrTypeMismatch is matched by every *TypeError.
var ErrTypeMismatch = errors.New("type mismatch")

// TypeError reports a token or value of the wrong kind for the target.
type TypeError struct {
	Expected string
	Got      string
	Offset   int64 // -1 when unknown
}

func (e *TypeError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("type mismatch: expected %s, got %s at offset %d", e.Expected, e.Got, e.Offset)
	}
	return fmt.Sprintf("type mismatch: expected %s, got %s", e.Expected, e.Got)
}

func (e *TypeError) Is(target error) bool { return target == ErrTypeMismatch }

// SyntaxError reports a token sequence that does not form a valid tree.
type SyntaxError struct {
	Msg    string
	Offset int64
}

func (e *SyntaxError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("syntax error: %s at offset %d", e.Msg, e.Offset)
	}
	return "syntax error: " + e.Msg
}

// NumberError reports a number literal that does not fit the target type.
type NumberError struct {
	Literal string
	Type    reflect.Type
}

func (e *NumberError) Error() string {
	return fmt.Sprintf("number %s does not fit into %s", e.Literal, e.Type)
}

// UnsupportedTypeError is returned for Go kinds with no tree representation
// (channels, funcs, complex numbers, non-empty interfaces on decode).
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return "unsupported type: " + e.Type.String()
}

// UnknownFieldError is returned when unknown object keys are disallowed.
type UnknownFieldError struct {
	Struct string
	Field  string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q in %s", e.Field, e.Struct)
}

// VariantError reports an enum value that does not select exactly one
// known variant.
type VariantError struct {
	Enum string
	Msg  string
}

func (e *VariantError) Error() string {
	return "enum " + e.Enum + ": " + e.Msg
}
