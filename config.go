package jsonbytes

import (
	"fmt"
	"strings"
)

// BytesFormat selects how byte sequences appear on the wire.
type BytesFormat int

const (
	// BytesDefault writes an array of integers 0..255.
	BytesDefault BytesFormat = iota
	// BytesHex writes lowercase hex digit pairs.
	BytesHex
	// BytesBase64 writes padded standard base64.
	BytesBase64
	// BytesBase64URLSafe writes padded base64 with the URL-safe alphabet.
	BytesBase64URLSafe
)

func (f BytesFormat) String() string {
	switch f {
	case BytesHex:
		return "hex"
	case BytesBase64:
		return "base64"
	case BytesBase64URLSafe:
		return "base64url"
	default:
		return "default"
	}
}

// ParseBytesFormat maps a format name to a BytesFormat. Names are
// case-insensitive: default (also array, raw), hex, base64 and base64url
// (also base64-url-safe).
func ParseBytesFormat(s string) (BytesFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "default", "array", "raw":
		return BytesDefault, nil
	case "hex":
		return BytesHex, nil
	case "base64":
		return BytesBase64, nil
	case "base64url", "base64-url-safe":
		return BytesBase64URLSafe, nil
	}
	return BytesDefault, fmt.Errorf("unknown bytes format %q", s)
}

func (f BytesFormat) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *BytesFormat) UnmarshalText(text []byte) error {
	v, err := ParseBytesFormat(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Config selects the byte codec. It is an immutable value: every method
// returns a modified copy, so one Config can be shared by concurrent calls.
type Config struct {
	bytesFormat     BytesFormat
	hexPrefix       bool
	hexChecksumCase bool
}

// DefaultConfig returns raw integer arrays, no hex prefix.
func DefaultConfig() Config { return Config{} }

func (c Config) WithBytesDefault() Config       { return c.withFormat(BytesDefault) }
func (c Config) WithBytesHex() Config           { return c.withFormat(BytesHex) }
func (c Config) WithBytesBase64() Config        { return c.withFormat(BytesBase64) }
func (c Config) WithBytesBase64URLSafe() Config { return c.withFormat(BytesBase64URLSafe) }

// WithBytesFormat is the non-literal form of the WithBytes* methods.
func (c Config) WithBytesFormat(f BytesFormat) Config { return c.withFormat(f) }

func (c Config) withFormat(f BytesFormat) Config {
	c.bytesFormat = f
	return c
}

// EnableHexPrefix makes hex output start with "0x". Decoding accepts the
// prefix either way.
func (c Config) EnableHexPrefix() Config {
	c.hexPrefix = true
	return c
}

func (c Config) DisableHexPrefix() Config {
	c.hexPrefix = false
	return c
}

// EnableHexChecksumCase records a request for mixed-case checksummed hex.
// The flag is carried but no codec consults it yet.
func (c Config) EnableHexChecksumCase() Config {
	c.hexChecksumCase = true
	return c
}

func (c Config) DisableHexChecksumCase() Config {
	c.hexChecksumCase = false
	return c
}

func (c Config) BytesFormat() BytesFormat { return c.bytesFormat }
func (c Config) HexPrefix() bool          { return c.hexPrefix }
func (c Config) HexChecksumCase() bool    { return c.hexChecksumCase }

func (c Config) String() string {
	return fmt.Sprintf("bytes=%s hex_prefix=%t hex_checksum_case=%t", c.bytesFormat, c.hexPrefix, c.hexChecksumCase)
}
