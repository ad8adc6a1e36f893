package jsonbytes

import (
	"io"
	"sync"

	eng "github.com/reoring/jsonbytes/internal/engine"
	jsonsrc "github.com/reoring/jsonbytes/source/json"
)

// TokenKind enumerates JSON token kinds. Drivers outside this module build
// tokens with these constants.
type TokenKind = eng.Kind

const (
	TokenBeginObject = eng.KindBeginObject
	TokenEndObject   = eng.KindEndObject
	TokenBeginArray  = eng.KindBeginArray
	TokenEndArray    = eng.KindEndArray
	TokenKey         = eng.KindKey
	TokenString      = eng.KindString
	TokenNumber      = eng.KindNumber
	TokenBool        = eng.KindBool
	TokenNull        = eng.KindNull
)

// Token describes a token in the input stream. Offset records the byte position
// when known (-1 otherwise).
type Token = eng.Token

// Source is a stream of tokens. NextToken returns io.EOF after the last
// top-level value.
type Source = eng.TokenSource

// JSONDriver converts JSON input into a Source via a pluggable SPI. The default
// implementation is based on encoding/json and may be swapped with SetJSONDriver
// or per call with Options.Driver.
type JSONDriver interface {
	NewReader(r io.Reader) Source
	NewBytes(b []byte) Source
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = defaultJSONDriver{}
)

// SetJSONDriver replaces the process-wide JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the default encoding/json-backed driver.
func UseDefaultJSONDriver() {
	jsonDriverMu.Lock()
	currentJSONDriver = defaultJSONDriver{}
	jsonDriverMu.Unlock()
}

// CurrentJSONDriver returns the process-wide driver.
func CurrentJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

func (o Options) driver() JSONDriver {
	if o.Driver != nil {
		return o.Driver
	}
	return CurrentJSONDriver()
}

// defaultJSONDriver wraps the encoding/json implementation.
type defaultJSONDriver struct{}

func (defaultJSONDriver) NewReader(r io.Reader) Source { return jsonsrc.NewReader(r) }
func (defaultJSONDriver) NewBytes(b []byte) Source     { return jsonsrc.NewBytes(b) }
func (defaultJSONDriver) Name() string                 { return "encoding/json" }

// enforce wraps s with the depth, size and duplicate key checks of o.
func enforce(s Source, o Options) Source {
	var sink func(eng.SimpleIssue)
	if o.IssueSink != nil {
		sink = func(si eng.SimpleIssue) { o.IssueSink(toIssue(si)) }
	}
	return eng.WrapWithEnforcement(s, eng.EnforceOptions{
		OnDuplicate: toEngineDup(o.Strictness.OnDuplicateKey),
		MaxDepth:    o.maxDepth(),
		MaxBytes:    o.MaxBytes,
		IssueSink:   sink,
	})
}
