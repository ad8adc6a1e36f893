package jsonbytes

import (
	"strconv"

	eng "github.com/reoring/jsonbytes/internal/engine"
)

// decodeState is shared by every wrapper of one decode call. path holds the
// unescaped reference tokens leading to the value being decoded.
type decodeState struct {
	cfg      Config
	path     []string
	depth    int
	maxDepth int // 0 disables the limit
}

func (st *decodeState) push(tok string) { st.path = append(st.path, tok) }
func (st *decodeState) pop()            { st.path = st.path[:len(st.path)-1] }

func (st *decodeState) pointer() string { return pointerOf(st.path) }

// pointerOf renders unescaped reference tokens as a JSON Pointer.
func pointerOf(path []string) string {
	p := ""
	for _, tok := range path {
		p = eng.JoinPointer(p, tok)
	}
	return p
}

func (st *decodeState) enter() error {
	st.depth++
	if st.maxDepth > 0 && st.depth > st.maxDepth {
		return issueAt(st.pointer(), CodeTooDeep, &depthError{max: st.maxDepth})
	}
	return nil
}

func (st *decodeState) leave() { st.depth-- }

type depthError struct{ max int }

func (e *depthError) Error() string { return "nesting exceeds max depth " + strconv.Itoa(e.max) }

// deserializer forwards every request to inner with the visitor wrapped, so
// the codec is reached at any depth. DeserializeBytes is the one request it
// answers itself. key is set while an object key is being decoded and
// receives its text.
type deserializer struct {
	inner eng.Deserializer
	st    *decodeState
	key   *string
}

func newDeserializer(inner eng.Deserializer, st *decodeState) eng.Deserializer {
	return &deserializer{inner: inner, st: st}
}

func (d *deserializer) wrap(v eng.Visitor) eng.Visitor {
	return &visitor{inner: v, st: d.st, key: d.key}
}

func (d *deserializer) DeserializeAny(v eng.Visitor) error    { return d.inner.DeserializeAny(d.wrap(v)) }
func (d *deserializer) DeserializeBool(v eng.Visitor) error   { return d.inner.DeserializeBool(d.wrap(v)) }
func (d *deserializer) DeserializeNumber(v eng.Visitor) error { return d.inner.DeserializeNumber(d.wrap(v)) }
func (d *deserializer) DeserializeString(v eng.Visitor) error { return d.inner.DeserializeString(d.wrap(v)) }
func (d *deserializer) DeserializeOption(v eng.Visitor) error { return d.inner.DeserializeOption(d.wrap(v)) }
func (d *deserializer) DeserializeSeq(v eng.Visitor) error    { return d.inner.DeserializeSeq(d.wrap(v)) }
func (d *deserializer) DeserializeMap(v eng.Visitor) error    { return d.inner.DeserializeMap(d.wrap(v)) }
func (d *deserializer) DeserializeIgnored() error             { return d.inner.DeserializeIgnored() }

func (d *deserializer) DeserializeTuple(n int, v eng.Visitor) error {
	return d.inner.DeserializeTuple(n, d.wrap(v))
}

func (d *deserializer) DeserializeStruct(name string, fields []string, v eng.Visitor) error {
	return d.inner.DeserializeStruct(name, fields, d.wrap(v))
}

func (d *deserializer) DeserializeEnum(name string, variants []string, v eng.Visitor) error {
	return d.inner.DeserializeEnum(name, variants, d.wrap(v))
}

func (d *deserializer) DeserializeBytes(v eng.Visitor) error {
	if err := decodeBytes(d.inner, d.st, v); err != nil {
		return leafIssue(d.st.pointer(), err)
	}
	return nil
}

// visitor forwards to inner, wrapping every access object and nested
// deserializer it hands out.
type visitor struct {
	inner eng.Visitor
	st    *decodeState
	key   *string
}

func (v *visitor) record(s string) {
	if v.key != nil {
		*v.key = s
	}
}

func (v *visitor) VisitNull() error { return v.inner.VisitNull() }
func (v *visitor) VisitNone() error { return v.inner.VisitNone() }

func (v *visitor) VisitBool(b bool) error {
	v.record(strconv.FormatBool(b))
	return v.inner.VisitBool(b)
}

func (v *visitor) VisitNumber(literal string) error {
	v.record(literal)
	return v.inner.VisitNumber(literal)
}

func (v *visitor) VisitString(s string) error {
	v.record(s)
	return v.inner.VisitString(s)
}

func (v *visitor) VisitBytes(b []byte) error {
	v.record(string(b))
	return v.inner.VisitBytes(b)
}

func (v *visitor) VisitSome(d eng.Deserializer) error {
	return v.inner.VisitSome(&deserializer{inner: d, st: v.st, key: v.key})
}

func (v *visitor) VisitSeq(a eng.SeqAccess) error {
	if err := v.st.enter(); err != nil {
		return err
	}
	defer v.st.leave()
	return v.inner.VisitSeq(&seqAccess{inner: a, st: v.st})
}

func (v *visitor) VisitMap(a eng.MapAccess) error {
	if err := v.st.enter(); err != nil {
		return err
	}
	defer v.st.leave()
	return v.inner.VisitMap(&mapAccess{inner: a, st: v.st})
}

func (v *visitor) VisitEnum(a eng.EnumAccess) error {
	return v.inner.VisitEnum(&enumAccess{inner: a, st: v.st, key: v.key})
}

// seed makes the target's nested decode go through the wrapper.
type seed struct {
	inner eng.Seed
	st    *decodeState
	key   *string
}

func (s seed) Deserialize(d eng.Deserializer) error {
	return s.inner.Deserialize(&deserializer{inner: d, st: s.st, key: s.key})
}

type seqAccess struct {
	inner eng.SeqAccess
	st    *decodeState
	index int
}

func (a *seqAccess) NextElement(sd eng.Seed) (bool, error) {
	a.st.push(strconv.Itoa(a.index))
	defer a.st.pop()
	ok, err := a.inner.NextElement(seed{inner: sd, st: a.st})
	if ok {
		a.index++
	}
	return ok, err
}

type mapAccess struct {
	inner eng.MapAccess
	st    *decodeState
	key   string
}

func (a *mapAccess) NextKey(sd eng.Seed) (bool, error) {
	a.key = ""
	return a.inner.NextKey(seed{inner: sd, st: a.st, key: &a.key})
}

func (a *mapAccess) NextValue(sd eng.Seed) error {
	a.st.push(a.key)
	defer a.st.pop()
	return a.inner.NextValue(seed{inner: sd, st: a.st})
}

type enumAccess struct {
	inner eng.EnumAccess
	st    *decodeState
	key   *string
}

func (a *enumAccess) Variant() (string, eng.VariantAccess, error) {
	name, va, err := a.inner.Variant()
	if err != nil {
		return "", nil, err
	}
	if a.key != nil {
		*a.key = name
	}
	return name, &variantAccess{inner: va, st: a.st, name: name}, nil
}

// variantAccess decodes the payload under the variant's name, which is its
// key in the externally tagged form.
type variantAccess struct {
	inner eng.VariantAccess
	st    *decodeState
	name  string
}

func (a *variantAccess) UnitVariant() error { return a.inner.UnitVariant() }

func (a *variantAccess) NewtypeVariant(sd eng.Seed) error {
	if err := a.st.enter(); err != nil {
		return err
	}
	defer a.st.leave()
	a.st.push(a.name)
	defer a.st.pop()
	return a.inner.NewtypeVariant(seed{inner: sd, st: a.st})
}

func (a *variantAccess) TupleVariant(n int, v eng.Visitor) error {
	if err := a.st.enter(); err != nil {
		return err
	}
	defer a.st.leave()
	a.st.push(a.name)
	defer a.st.pop()
	return a.inner.TupleVariant(n, &visitor{inner: v, st: a.st})
}

func (a *variantAccess) StructVariant(fields []string, v eng.Visitor) error {
	if err := a.st.enter(); err != nil {
		return err
	}
	defer a.st.leave()
	a.st.push(a.name)
	defer a.st.pop()
	return a.inner.StructVariant(fields, &visitor{inner: v, st: a.st})
}
