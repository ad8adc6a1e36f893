// Package gojson is a token driver backed by goccy/go-json.
package gojson

import (
	"bytes"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	"github.com/reoring/jsonbytes"
	eng "github.com/reoring/jsonbytes/internal/engine"
)

// Driver returns a jsonbytes.JSONDriver backed by goccy/go-json.
func Driver() jsonbytes.JSONDriver { return driverGoJSON{} }

type driverGoJSON struct{}

func (driverGoJSON) NewReader(r io.Reader) jsonbytes.Source { return NewReader(r) }
func (driverGoJSON) NewBytes(b []byte) jsonbytes.Source     { return NewBytes(b) }
func (driverGoJSON) Name() string                           { return "go-json" }

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

// source does not track offsets; go-json's decoder does not expose one per
// token. Decoder.Token skips separators without checking them, so the input
// is buffered and its first value decoded once before tokens are handed out.
// That pass reports syntax errors and finds where the value ends.
type source struct {
	r     io.Reader
	dec   *j.Decoder
	rest  []byte // input after the first value, leading whitespace removed
	err   error
	stack []frame
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON using go-json.
// The reader is consumed in full on the first NextToken call.
func NewReader(r io.Reader) eng.TokenSource { return &source{r: r} }

// NewBytes wraps a byte slice into an engine.TokenSource for JSON using go-json.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *source) prepare() error {
	data, err := io.ReadAll(s.r)
	if err != nil {
		return err
	}
	check := j.NewDecoder(bytes.NewReader(data))
	check.UseNumber()
	var v any
	if err := check.Decode(&v); err != nil {
		return err
	}
	end := check.InputOffset()
	s.dec = j.NewDecoder(bytes.NewReader(data[:end]))
	s.dec.UseNumber()
	s.rest = bytes.TrimLeft(data[end:], " \t\r\n")
	return nil
}

func (s *source) valueDone() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}

func (s *source) NextToken() (eng.Token, error) {
	if s.err != nil {
		return eng.Token{}, s.err
	}
	if s.dec == nil {
		if err := s.prepare(); err != nil {
			s.err = err
			return eng.Token{}, err
		}
	}
	tok, err := s.dec.Token()
	if err == io.EOF && len(s.rest) > 0 {
		s.err = &eng.SyntaxError{Msg: "invalid character " + strconv.QuoteRune(rune(s.rest[0])) + " after top-level value", Offset: -1}
		return eng.Token{}, s.err
	}
	if err != nil {
		return eng.Token{}, err
	}
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{kind: kindObject, expectingKey: true})
			return eng.Token{Kind: eng.KindBeginObject, Offset: -1}, nil
		case '[':
			s.stack = append(s.stack, frame{kind: kindArray})
			return eng.Token{Kind: eng.KindBeginArray, Offset: -1}, nil
		}
		if n := len(s.stack); n > 0 {
			s.stack = s.stack[:n-1]
		}
		s.valueDone()
		if v == '}' {
			return eng.Token{Kind: eng.KindEndObject, Offset: -1}, nil
		}
		return eng.Token{Kind: eng.KindEndArray, Offset: -1}, nil
	case string:
		if n := len(s.stack); n > 0 {
			top := &s.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				top.expectingKey = false
				return eng.Token{Kind: eng.KindKey, String: v, Offset: -1}, nil
			}
		}
		s.valueDone()
		return eng.Token{Kind: eng.KindString, String: v, Offset: -1}, nil
	case bool:
		s.valueDone()
		return eng.Token{Kind: eng.KindBool, Bool: v, Offset: -1}, nil
	case j.Number:
		s.valueDone()
		return eng.Token{Kind: eng.KindNumber, Number: string(v), Offset: -1}, nil
	case float64:
		s.valueDone()
		return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64), Offset: -1}, nil
	}
	s.valueDone()
	return eng.Token{Kind: eng.KindNull, Offset: -1}, nil
}

func (s *source) Location() int64 { return -1 }
