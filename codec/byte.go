package codec

import (
	"strconv"
)

// ParseByte converts one number literal of a raw byte array. Anything that
// is not a plain decimal integer in 0..255 is out of range, including
// negative, fractional and exponent forms.
func ParseByte(literal string) (byte, error) {
	n, err := strconv.ParseUint(literal, 10, 8)
	if err != nil {
		return 0, &RangeError{Literal: literal}
	}
	return byte(n), nil
}
