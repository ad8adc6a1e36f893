package engine

import (
	"io"
	"strconv"
)

// Visitor receives exactly one of its methods per decoded value. Which one
// depends on what the input holds; a visitor rejects kinds it cannot accept.
type Visitor interface {
	VisitNull() error
	VisitBool(v bool) error
	VisitNumber(literal string) error
	VisitString(v string) error
	VisitBytes(v []byte) error
	VisitNone() error
	VisitSome(d Deserializer) error
	VisitSeq(a SeqAccess) error
	VisitMap(a MapAccess) error
	VisitEnum(a EnumAccess) error
}

// Seed decodes one nested value from the Deserializer it is handed.
type Seed interface {
	Deserialize(d Deserializer) error
}

// SeedFunc adapts a function to Seed.
type SeedFunc func(d Deserializer) error

func (f SeedFunc) Deserialize(d Deserializer) error { return f(d) }

// SeqAccess yields the elements of an array.
type SeqAccess interface {
	// NextElement decodes the next element with seed; false means the
	// array is exhausted.
	NextElement(seed Seed) (bool, error)
}

// MapAccess yields the entries of an object.
type MapAccess interface {
	NextKey(seed Seed) (bool, error)
	NextValue(seed Seed) error
}

// EnumAccess exposes the selected variant of a tagged value.
type EnumAccess interface {
	Variant() (string, VariantAccess, error)
}

// VariantAccess decodes the payload of the selected variant.
type VariantAccess interface {
	UnitVariant() error
	NewtypeVariant(seed Seed) error
	TupleVariant(n int, v Visitor) error
	StructVariant(fields []string, v Visitor) error
}

// Deserializer is asked for a kind by the target and drives the visitor
// with what the input holds.
type Deserializer interface {
	DeserializeAny(v Visitor) error
	DeserializeBool(v Visitor) error
	DeserializeNumber(v Visitor) error
	DeserializeString(v Visitor) error
	DeserializeBytes(v Visitor) error
	DeserializeOption(v Visitor) error
	DeserializeSeq(v Visitor) error
	DeserializeTuple(n int, v Visitor) error
	DeserializeMap(v Visitor) error
	DeserializeStruct(name string, fields []string, v Visitor) error
	DeserializeEnum(name string, variants []string, v Visitor) error
	DeserializeIgnored() error
}

// BaseVisitor rejects every kind with a TypeError naming Want. Visitors
// embed it and override the kinds they accept.
type BaseVisitor struct {
	Want string
}

func (b BaseVisitor) mismatch(got string) error {
	return &TypeError{Expected: b.Want, Got: got, Offset: -1}
}

func (b BaseVisitor) VisitNull() error             { return b.mismatch("null") }
func (b BaseVisitor) VisitBool(bool) error         { return b.mismatch("bool") }
func (b BaseVisitor) VisitNumber(string) error     { return b.mismatch("number") }
func (b BaseVisitor) VisitString(string) error     { return b.mismatch("string") }
func (b BaseVisitor) VisitBytes([]byte) error      { return b.mismatch("bytes") }
func (b BaseVisitor) VisitNone() error             { return b.mismatch("null") }
func (b BaseVisitor) VisitSome(Deserializer) error { return b.mismatch("value") }
func (b BaseVisitor) VisitSeq(SeqAccess) error     { return b.mismatch("array") }
func (b BaseVisitor) VisitMap(MapAccess) error     { return b.mismatch("object") }
func (b BaseVisitor) VisitEnum(EnumAccess) error   { return b.mismatch("enum") }

// TokenDeserializer is the innermost deserializer: it answers requests from
// a token stream. Decorators wrap it.
type TokenDeserializer struct {
	r *reader
}

// NewDeserializer returns a deserializer reading tokens from src.
func NewDeserializer(src TokenSource) *TokenDeserializer {
	return &TokenDeserializer{r: &reader{src: src}}
}

// End returns nil when the source holds nothing after the decoded value.
func (d *TokenDeserializer) End() error {
	if err := d.r.end(); err != io.EOF {
		return err
	}
	return nil
}

func (d *TokenDeserializer) mismatch(want string, tok Token) error {
	return &TypeError{Expected: want, Got: tok.Kind.String(), Offset: tok.Offset}
}

func (d *TokenDeserializer) DeserializeAny(v Visitor) error {
	tok, err := d.r.next()
	if err != nil {
		return err
	}
	switch tok.Kind {
	case KindBeginObject:
		return d.visitMap(v)
	case KindBeginArray:
		return d.visitSeq(v)
	case KindString:
		return v.VisitString(tok.String)
	case KindNumber:
		return v.VisitNumber(tok.Number)
	case KindBool:
		return v.VisitBool(tok.Bool)
	case KindNull:
		return v.VisitNull()
	default:
		return &SyntaxError{Msg: "unexpected " + tok.Kind.String(), Offset: tok.Offset}
	}
}

func (d *TokenDeserializer) DeserializeBool(v Visitor) error {
	tok, err := d.r.next()
	if err != nil {
		return err
	}
	if tok.Kind != KindBool {
		return d.mismatch("bool", tok)
	}
	return v.VisitBool(tok.Bool)
}

func (d *TokenDeserializer) DeserializeNumber(v Visitor) error {
	tok, err := d.r.next()
	if err != nil {
		return err
	}
	if tok.Kind != KindNumber {
		return d.mismatch("number", tok)
	}
	return v.VisitNumber(tok.Number)
}

func (d *TokenDeserializer) DeserializeString(v Visitor) error {
	tok, err := d.r.next()
	if err != nil {
		return err
	}
	if tok.Kind != KindString {
		return d.mismatch("string", tok)
	}
	return v.VisitString(tok.String)
}

// DeserializeBytes accepts a string (its UTF-8 bytes) or an array of
// integers.
func (d *TokenDeserializer) DeserializeBytes(v Visitor) error {
	tok, err := d.r.next()
	if err != nil {
		return err
	}
	switch tok.Kind {
	case KindString:
		return v.VisitBytes([]byte(tok.String))
	case KindBeginArray:
		return d.visitSeq(v)
	default:
		return d.mismatch("bytes", tok)
	}
}

func (d *TokenDeserializer) DeserializeOption(v Visitor) error {
	tok, err := d.r.peek()
	if err != nil {
		return err
	}
	if tok.Kind == KindNull {
		_, _ = d.r.next()
		return v.VisitNone()
	}
	return v.VisitSome(d)
}

func (d *TokenDeserializer) DeserializeSeq(v Visitor) error {
	tok, err := d.r.next()
	if err != nil {
		return err
	}
	if tok.Kind != KindBeginArray {
		return d.mismatch("array", tok)
	}
	return d.visitSeq(v)
}

func (d *TokenDeserializer) DeserializeTuple(_ int, v Visitor) error {
	return d.DeserializeSeq(v)
}

func (d *TokenDeserializer) DeserializeMap(v Visitor) error {
	tok, err := d.r.next()
	if err != nil {
		return err
	}
	if tok.Kind != KindBeginObject {
		return d.mismatch("object", tok)
	}
	return d.visitMap(v)
}

func (d *TokenDeserializer) DeserializeStruct(_ string, _ []string, v Visitor) error {
	return d.DeserializeMap(v)
}

// DeserializeEnum accepts "variant" for unit variants and {"variant":payload}
// for the others.
func (d *TokenDeserializer) DeserializeEnum(name string, _ []string, v Visitor) error {
	tok, err := d.r.next()
	if err != nil {
		return err
	}
	switch tok.Kind {
	case KindString:
		return v.VisitEnum(&unitEnum{variant: tok.String, offset: tok.Offset})
	case KindBeginObject:
	default:
		return d.mismatch("enum "+name, tok)
	}
	key, err := d.r.next()
	if err != nil {
		return err
	}
	if key.Kind != KindKey {
		return &SyntaxError{Msg: "expected enum variant name", Offset: key.Offset}
	}
	if err := v.VisitEnum(&tokenEnum{d: d, variant: key.String}); err != nil {
		return err
	}
	end, err := d.r.next()
	if err != nil {
		return err
	}
	if end.Kind != KindEndObject {
		return &SyntaxError{Msg: "expected end of enum object", Offset: end.Offset}
	}
	return nil
}

// DeserializeIgnored consumes one value without decoding it.
func (d *TokenDeserializer) DeserializeIgnored() error {
	depth := 0
	for {
		tok, err := d.r.next()
		if err != nil {
			return err
		}
		switch tok.Kind {
		case KindBeginObject, KindBeginArray:
			depth++
		case KindEndObject, KindEndArray:
			depth--
		}
		if depth <= 0 && tok.Kind != KindKey {
			return nil
		}
	}
}

func (d *TokenDeserializer) visitSeq(v Visitor) error {
	acc := &tokenSeq{d: d}
	if err := v.VisitSeq(acc); err != nil {
		return err
	}
	if !acc.done {
		tok, err := d.r.peek()
		if err != nil {
			return err
		}
		if tok.Kind != KindEndArray {
			return &SyntaxError{Msg: "array has more elements than expected", Offset: tok.Offset}
		}
		_, _ = d.r.next()
	}
	return nil
}

func (d *TokenDeserializer) visitMap(v Visitor) error {
	acc := &tokenMap{d: d}
	if err := v.VisitMap(acc); err != nil {
		return err
	}
	for !acc.done {
		ok, err := acc.NextKey(SeedFunc(func(Deserializer) error { return nil }))
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if err := d.DeserializeIgnored(); err != nil {
			return err
		}
	}
	return nil
}

type tokenSeq struct {
	d    *TokenDeserializer
	done bool
}

func (s *tokenSeq) NextElement(seed Seed) (bool, error) {
	if s.done {
		return false, nil
	}
	tok, err := s.d.r.peek()
	if err != nil {
		return false, err
	}
	if tok.Kind == KindEndArray {
		_, _ = s.d.r.next()
		s.done = true
		return false, nil
	}
	return true, seed.Deserialize(s.d)
}

type tokenMap struct {
	d    *TokenDeserializer
	done bool
}

func (m *tokenMap) NextKey(seed Seed) (bool, error) {
	if m.done {
		return false, nil
	}
	tok, err := m.d.r.next()
	if err != nil {
		return false, err
	}
	switch tok.Kind {
	case KindEndObject:
		m.done = true
		return false, nil
	case KindKey:
		return true, seed.Deserialize(keyDeserializer{key: tok.String, offset: tok.Offset})
	default:
		return false, &SyntaxError{Msg: "expected object key", Offset: tok.Offset}
	}
}

func (m *tokenMap) NextValue(seed Seed) error { return seed.Deserialize(m.d) }

type tokenEnum struct {
	d       *TokenDeserializer
	variant string
}

func (e *tokenEnum) Variant() (string, VariantAccess, error) {
	return e.variant, tokenVariant{d: e.d}, nil
}

type tokenVariant struct{ d *TokenDeserializer }

func (tv tokenVariant) UnitVariant() error {
	tok, err := tv.d.r.next()
	if err != nil {
		return err
	}
	if tok.Kind != KindNull {
		return tv.d.mismatch("null", tok)
	}
	return nil
}

func (tv tokenVariant) NewtypeVariant(seed Seed) error { return seed.Deserialize(tv.d) }

func (tv tokenVariant) TupleVariant(n int, v Visitor) error {
	return tv.d.DeserializeTuple(n, v)
}

func (tv tokenVariant) StructVariant(fields []string, v Visitor) error {
	return tv.d.DeserializeStruct("", fields, v)
}

// unitEnum is the variant access for the bare-string form.
type unitEnum struct {
	variant string
	offset  int64
}

func (u *unitEnum) Variant() (string, VariantAccess, error) { return u.variant, u, nil }
func (u *unitEnum) UnitVariant() error                      { return nil }
func (u *unitEnum) NewtypeVariant(Seed) error               { return u.payloadMissing() }
func (u *unitEnum) TupleVariant(int, Visitor) error         { return u.payloadMissing() }
func (u *unitEnum) StructVariant([]string, Visitor) error   { return u.payloadMissing() }

func (u *unitEnum) payloadMissing() error {
	return &TypeError{Expected: "variant " + u.variant + " with payload", Got: "string", Offset: u.offset}
}

// keyDeserializer serves an object key as a string, or as a number for
// integer-keyed maps.
type keyDeserializer struct {
	key    string
	offset int64
}

func (k keyDeserializer) mismatch(want string) error {
	return &TypeError{Expected: want, Got: "object key", Offset: k.offset}
}

func (k keyDeserializer) DeserializeAny(v Visitor) error    { return v.VisitString(k.key) }
func (k keyDeserializer) DeserializeString(v Visitor) error { return v.VisitString(k.key) }
func (k keyDeserializer) DeserializeBytes(v Visitor) error  { return v.VisitBytes([]byte(k.key)) }
func (k keyDeserializer) DeserializeNumber(v Visitor) error { return v.VisitNumber(k.key) }
func (k keyDeserializer) DeserializeOption(v Visitor) error { return v.VisitSome(k) }
func (k keyDeserializer) DeserializeIgnored() error         { return nil }

func (k keyDeserializer) DeserializeBool(v Visitor) error {
	b, err := strconv.ParseBool(k.key)
	if err != nil {
		return k.mismatch("bool")
	}
	return v.VisitBool(b)
}

func (k keyDeserializer) DeserializeEnum(_ string, _ []string, v Visitor) error {
	return v.VisitEnum(&unitEnum{variant: k.key, offset: k.offset})
}

func (k keyDeserializer) DeserializeSeq(Visitor) error        { return k.mismatch("array") }
func (k keyDeserializer) DeserializeTuple(int, Visitor) error { return k.mismatch("array") }
func (k keyDeserializer) DeserializeMap(Visitor) error        { return k.mismatch("object") }
func (k keyDeserializer) DeserializeStruct(string, []string, Visitor) error {
	return k.mismatch("object")
}
