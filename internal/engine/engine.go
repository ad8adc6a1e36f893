package engine

import (
	"io"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindBeginObject, KindEndObject:
		return "object"
	case KindBeginArray, KindEndArray:
		return "array"
	case KindKey:
		return "key"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	default:
		return "unknown"
	}
}

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// reader adds one token of lookahead on top of a TokenSource. Option and
// sequence handling need to look at the next token without consuming it.
type reader struct {
	src    TokenSource
	peeked bool
	tok    Token
}

func (r *reader) peek() (Token, error) {
	if r.peeked {
		return r.tok, nil
	}
	tok, err := r.src.NextToken()
	if err != nil {
		return Token{}, midValue(err)
	}
	r.tok = tok
	r.peeked = true
	return tok, nil
}

func (r *reader) next() (Token, error) {
	if r.peeked {
		r.peeked = false
		return r.tok, nil
	}
	tok, err := r.src.NextToken()
	if err != nil {
		return Token{}, midValue(err)
	}
	return tok, nil
}

// end reports io.EOF when the source is exhausted. Any other result means
// content follows the value that was just decoded.
func (r *reader) end() error {
	if r.peeked {
		r.peeked = false
		return &SyntaxError{Msg: "unexpected " + r.tok.Kind.String() + " after top-level value", Offset: r.tok.Offset}
	}
	tok, err := r.src.NextToken()
	if err != nil {
		return err
	}
	return &SyntaxError{Msg: "unexpected " + tok.Kind.String() + " after top-level value", Offset: tok.Offset}
}

func (r *reader) location() int64 { return r.src.Location() }

// An EOF in the middle of a value is always unexpected.
func midValue(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
