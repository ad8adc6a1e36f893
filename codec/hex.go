package codec

import (
	"encoding/hex"
)

// EncodeHex renders b as lowercase hex digit pairs, prefixed with "0x" when
// prefix is set. Empty input yields "" or "0x".
func EncodeHex(b []byte, prefix bool) string {
	if !prefix {
		return hex.EncodeToString(b)
	}
	buf := make([]byte, 2+hex.EncodedLen(len(b)))
	buf[0], buf[1] = '0', 'x'
	hex.Encode(buf[2:], b)
	return string(buf)
}

// DecodeHex accepts an optional "0x" or "0X" prefix followed by an even
// number of hex digits in either case. The prefix is accepted whether or
// not the encoder would emit it.
func DecodeHex(s string) ([]byte, error) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	out := make([]byte, hex.DecodedLen(len(s)))
	if _, err := hex.Decode(out, []byte(s)); err != nil {
		return nil, &EncodingError{Format: "hex", Err: err}
	}
	return out, nil
}
