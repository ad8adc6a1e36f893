package jsonbytes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/jsonbytes/codec"
	eng "github.com/reoring/jsonbytes/internal/engine"
)

// Issue codes.
const (
	CodeInvalidEncoding = "invalid_encoding"
	CodeOutOfRange      = "out_of_range"
	CodeTypeMismatch    = "type_mismatch"
	CodeTrailingData    = "trailing_data"
	CodeTooDeep         = eng.CodeTooDeep
	CodeDuplicateKey    = eng.CodeDuplicateKey
	CodeTruncated       = eng.CodeTruncated
)

// Sentinel errors for errors.Is. Every Issue matches the sentinel of its code.
var (
	ErrInvalidEncoding = codec.ErrInvalidEncoding
	ErrOutOfRange      = codec.ErrOutOfRange
	ErrTypeMismatch    = eng.ErrTypeMismatch
	ErrTrailingData    = errors.New("trailing data after value")
	ErrTooDeep         = errors.New("nesting too deep")
	ErrDuplicateKey    = errors.New("duplicate object key")
	ErrTruncated       = errors.New("input exceeds size limit")
)

var codeSentinels = map[string]error{
	CodeInvalidEncoding: ErrInvalidEncoding,
	CodeOutOfRange:      ErrOutOfRange,
	CodeTypeMismatch:    ErrTypeMismatch,
	CodeTrailingData:    ErrTrailingData,
	CodeTooDeep:         ErrTooDeep,
	CodeDuplicateKey:    ErrDuplicateKey,
	CodeTruncated:       ErrTruncated,
}

// Issue is a single failure located in the document.
type Issue struct {
	Path    string // JSON Pointer (for example: /items/2/blob).
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
	Offset  int64 // Byte offset in the input source (-1 when unknown).
}

func (it Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", it.Code, it.Path, it.Message)
}

func (it Issue) Unwrap() error { return it.Cause }

func (it Issue) Is(target error) bool {
	s, ok := codeSentinels[it.Code]
	return ok && s == target
}

// Issues is a collection of issues that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_encoding at /data
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes each issue so errors.Is matches any of their codes.
func (iss Issues) Unwrap() []error {
	out := make([]error, len(iss))
	for i, it := range iss {
		out[i] = it
	}
	return out
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

func issueAt(path, code string, cause error) Issues {
	if path == "" {
		path = "/"
	}
	return Issues{{Path: path, Code: code, Message: cause.Error(), Cause: cause, Offset: -1}}
}

// leafIssue wraps a failure at a byte leaf with its location. Errors that
// are not codec or type failures are returned unchanged.
func leafIssue(path string, err error) error {
	if _, ok := AsIssues(err); ok {
		return err
	}
	switch {
	case errors.Is(err, ErrInvalidEncoding):
		return issueAt(path, CodeInvalidEncoding, err)
	case errors.Is(err, ErrOutOfRange):
		return issueAt(path, CodeOutOfRange, err)
	case errors.Is(err, ErrTypeMismatch):
		return issueAt(path, CodeTypeMismatch, err)
	}
	return err
}

// fromEngine converts an enforcement failure into Issues.
func fromEngine(err error) error {
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return Issues{toIssue(ie.SimpleIssue)}
	}
	return err
}

func toIssue(si eng.SimpleIssue) Issue {
	return Issue{Path: si.Path, Code: si.Code, Message: si.Message, Offset: si.Offset}
}
