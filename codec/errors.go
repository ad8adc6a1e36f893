package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEncoding is matched by every *EncodingError.
	ErrInvalidEncoding = errors.New("invalid encoding")
	// ErrOutOfRange is matched by every *RangeError.
	ErrOutOfRange = errors.New("byte value out of range")
)

// EncodingError reports text that is not valid in the expected format.
type EncodingError struct {
	Format string // "hex", "base64" or "base64url"
	Err    error  // underlying decoder error, may be nil
}

func (e *EncodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s: %v", e.Format, e.Err)
	}
	return "invalid " + e.Format
}

func (e *EncodingError) Is(target error) bool { return target == ErrInvalidEncoding }
func (e *EncodingError) Unwrap() error        { return e.Err }

// RangeError reports a number element that is not an integer in 0..255.
type RangeError struct {
	Literal string
}

func (e *RangeError) Error() string {
	return "byte value " + e.Literal + " out of range 0..255"
}

func (e *RangeError) Is(target error) bool { return target == ErrOutOfRange }
