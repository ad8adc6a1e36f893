package jsonbytes

import (
	eng "github.com/reoring/jsonbytes/internal/engine"
)

// UnknownPolicy controls how object keys that match no struct field are handled.
type UnknownPolicy int

const (
	UnknownStrip  UnknownPolicy = iota // Skip unknown keys.
	UnknownStrict                      // Reject unknown keys with an error.
)

// NumberMode dictates how numbers decoded into interface values are represented.
type NumberMode int

const (
	NumberJSONNumber NumberMode = iota // Preserve the literal as json.Number.
	NumberFloat64                      // Convert to float64 (with potential precision loss).
)

// Strictness configures enforcement for duplicate keys.
type Strictness struct {
	OnDuplicateKey Severity // Warn or Error (duplicate JSON keys).
}

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// DefaultMaxDepth is the nesting limit applied when Options.MaxDepth is zero.
const DefaultMaxDepth = 128

// Options bundles per-call settings for the entry points. The zero value is
// usable: default depth limit, no size cap, duplicate keys ignored.
type Options struct {
	// MaxDepth limits container nesting on encode and decode. Zero means
	// DefaultMaxDepth; negative disables the limit, after which a cyclic
	// value that passes through a container is no longer caught on encode.
	// Issue paths for TooDeep point at the container that crossed the limit.
	MaxDepth int
	// MaxBytes caps the decoded input size. Zero disables the cap.
	MaxBytes   int64
	Strictness Strictness
	Unknown    UnknownPolicy
	NumberMode NumberMode
	// Driver turns JSON text into tokens. Nil selects the process default
	// (see SetJSONDriver).
	Driver JSONDriver
	// Indent is used by the pretty entry points ("  " when empty).
	Indent string
	// IssueSink receives every issue raised while reading input, including
	// duplicate keys in Warn mode that do not fail the call.
	IssueSink func(Issue)
}

// pickOptions returns the last of opts, like the other variadic options in
// this package.
func pickOptions(opts []Options) Options {
	if len(opts) == 0 {
		return Options{}
	}
	return opts[len(opts)-1]
}

func (o Options) maxDepth() int {
	switch {
	case o.MaxDepth == 0:
		return DefaultMaxDepth
	case o.MaxDepth < 0:
		return 0
	default:
		return o.MaxDepth
	}
}

func (o Options) decodeOptions() eng.DecodeOptions {
	return eng.DecodeOptions{
		Float64Numbers:        o.NumberMode == NumberFloat64,
		DisallowUnknownFields: o.Unknown == UnknownStrict,
	}
}
