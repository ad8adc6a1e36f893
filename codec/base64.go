package codec

import (
	"encoding/base64"
	"errors"
	"strings"
)

var (
	stdEncoding = base64.StdEncoding.Strict()
	urlEncoding = base64.URLEncoding.Strict()

	errLineBreak = errors.New("line break in input")
)

func encoding(urlSafe bool) (*base64.Encoding, string) {
	if urlSafe {
		return urlEncoding, "base64url"
	}
	return stdEncoding, "base64"
}

// EncodeBase64 renders b in the padded standard alphabet, or the padded
// URL-safe alphabet ('-' and '_') when urlSafe is set.
func EncodeBase64(b []byte, urlSafe bool) string {
	enc, _ := encoding(urlSafe)
	return enc.EncodeToString(b)
}

// DecodeBase64 is the strict inverse of EncodeBase64: padding is required,
// the other alphabet is rejected and so are line breaks.
func DecodeBase64(s string, urlSafe bool) ([]byte, error) {
	enc, name := encoding(urlSafe)
	if strings.ContainsAny(s, "\r\n") {
		return nil, &EncodingError{Format: name, Err: errLineBreak}
	}
	out, err := enc.DecodeString(s)
	if err != nil {
		return nil, &EncodingError{Format: name, Err: err}
	}
	return out, nil
}
