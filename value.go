package jsonbytes

import (
	"io"
	"strconv"

	eng "github.com/reoring/jsonbytes/internal/engine"
)

// Kind is the kind of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "null"
	}
}

// Member is one key/value pair of an object Value.
type Member struct {
	Key   string
	Value Value
}

// Value is an in-memory JSON tree. Objects keep their members in insertion
// order and numbers keep their literal text. The zero Value is null.
type Value struct {
	kind    Kind
	b       bool
	s       string // string value or number literal
	elems   []Value
	members []Member
}

func Null() Value           { return Value{} }
func Bool(b bool) Value     { return Value{kind: KindBool, b: b} }
func String(s string) Value { return Value{kind: KindString, s: s} }
func Int(n int64) Value     { return Value{kind: KindNumber, s: strconv.FormatInt(n, 10)} }

func Array(elems ...Value) Value {
	return Value{kind: KindArray, elems: append([]Value{}, elems...)}
}

// Number returns a number Value with the given literal, which is not
// validated.
func Number(literal string) Value { return Value{kind: KindNumber, s: literal} }

// Object returns an object Value with members in the given order.
func Object(members ...Member) Value {
	return Value{kind: KindObject, members: append([]Member{}, members...)}
}

func (v Value) Kind() Kind { return v.kind }

// Bool returns the value of a bool Value and false for other kinds.
func (v Value) Bool() bool { return v.kind == KindBool && v.b }

// Text returns the string of a string Value or the literal of a number Value.
func (v Value) Text() string { return v.s }

func (v Value) Elems() []Value    { return v.elems }
func (v Value) Members() []Member { return v.members }

func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.elems)
	case KindObject:
		return len(v.members)
	}
	return 0
}

// Get returns the first member named key.
func (v Value) Get(key string) (Value, bool) {
	for _, m := range v.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Serialize describes v to s; objects are emitted in member order.
func (v Value) Serialize(s eng.Serializer) error {
	switch v.kind {
	case KindBool:
		return s.SerializeBool(v.b)
	case KindNumber:
		return s.SerializeNumber(v.s)
	case KindString:
		return s.SerializeString(v.s)
	case KindArray:
		c, err := s.SerializeSeq(len(v.elems))
		if err != nil {
			return err
		}
		for _, e := range v.elems {
			if err := c.SerializeElement(e); err != nil {
				return err
			}
		}
		return c.End()
	case KindObject:
		c, err := s.SerializeMap(len(v.members))
		if err != nil {
			return err
		}
		for _, m := range v.members {
			if err := c.SerializeKey(String(m.Key)); err != nil {
				return err
			}
			if err := c.SerializeValue(m.Value); err != nil {
				return err
			}
		}
		return c.End()
	default:
		return s.SerializeNull()
	}
}

// Deserialize replaces v with whatever value d holds.
func (v *Value) Deserialize(d eng.Deserializer) error {
	return d.DeserializeAny(valueVisitor{eng.BaseVisitor{Want: "value"}, v})
}

type valueVisitor struct {
	eng.BaseVisitor
	v *Value
}

func (vv valueVisitor) set(x Value) error {
	*vv.v = x
	return nil
}

func (vv valueVisitor) VisitNull() error             { return vv.set(Null()) }
func (vv valueVisitor) VisitNone() error             { return vv.set(Null()) }
func (vv valueVisitor) VisitBool(b bool) error       { return vv.set(Bool(b)) }
func (vv valueVisitor) VisitNumber(lit string) error { return vv.set(Number(lit)) }
func (vv valueVisitor) VisitString(s string) error   { return vv.set(String(s)) }

func (vv valueVisitor) VisitSome(d eng.Deserializer) error { return vv.v.Deserialize(d) }

func (vv valueVisitor) VisitSeq(a eng.SeqAccess) error {
	out := Value{kind: KindArray, elems: []Value{}}
	for {
		var e Value
		ok, err := a.NextElement(&e)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		out.elems = append(out.elems, e)
	}
	*vv.v = out
	return nil
}

func (vv valueVisitor) VisitMap(a eng.MapAccess) error {
	out := Value{kind: KindObject, members: []Member{}}
	for {
		var key Value
		ok, err := a.NextKey(&key)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		var val Value
		if err := a.NextValue(&val); err != nil {
			return err
		}
		out.members = append(out.members, Member{Key: key.s, Value: val})
	}
	*vv.v = out
	return nil
}

// treeWriter is a TokenWriter that builds a Value.
type treeWriter struct {
	root  Value
	stack []*treeFrame
}

type treeFrame struct {
	v   Value
	key string
}

func (w *treeWriter) add(v Value) error {
	n := len(w.stack)
	if n == 0 {
		w.root = v
		return nil
	}
	top := w.stack[n-1]
	if top.v.kind == KindArray {
		top.v.elems = append(top.v.elems, v)
	} else {
		top.v.members = append(top.v.members, Member{Key: top.key, Value: v})
	}
	return nil
}

func (w *treeWriter) pop() error {
	n := len(w.stack)
	top := w.stack[n-1]
	w.stack = w.stack[:n-1]
	return w.add(top.v)
}

func (w *treeWriter) BeginObject() error {
	w.stack = append(w.stack, &treeFrame{v: Value{kind: KindObject, members: []Member{}}})
	return nil
}

func (w *treeWriter) BeginArray() error {
	w.stack = append(w.stack, &treeFrame{v: Value{kind: KindArray, elems: []Value{}}})
	return nil
}

func (w *treeWriter) EndObject() error { return w.pop() }
func (w *treeWriter) EndArray() error  { return w.pop() }

func (w *treeWriter) Key(k string) error {
	w.stack[len(w.stack)-1].key = k
	return nil
}

func (w *treeWriter) String(s string) error       { return w.add(String(s)) }
func (w *treeWriter) Number(literal string) error { return w.add(Number(literal)) }
func (w *treeWriter) Bool(b bool) error           { return w.add(Bool(b)) }
func (w *treeWriter) Null() error                 { return w.add(Null()) }

// valueSource replays a Value as tokens.
type valueSource struct {
	root    Value
	started bool
	stack   []valueIter
}

type valueIter struct {
	v       *Value
	next    int
	keyDone bool
}

func newValueSource(v Value) *valueSource { return &valueSource{root: v} }

func (s *valueSource) open(v *Value) eng.Token {
	switch v.kind {
	case KindArray:
		s.stack = append(s.stack, valueIter{v: v})
		return eng.Token{Kind: eng.KindBeginArray, Offset: -1}
	case KindObject:
		s.stack = append(s.stack, valueIter{v: v})
		return eng.Token{Kind: eng.KindBeginObject, Offset: -1}
	case KindBool:
		return eng.Token{Kind: eng.KindBool, Bool: v.b, Offset: -1}
	case KindNumber:
		return eng.Token{Kind: eng.KindNumber, Number: v.s, Offset: -1}
	case KindString:
		return eng.Token{Kind: eng.KindString, String: v.s, Offset: -1}
	default:
		return eng.Token{Kind: eng.KindNull, Offset: -1}
	}
}

func (s *valueSource) NextToken() (eng.Token, error) {
	if !s.started {
		s.started = true
		return s.open(&s.root), nil
	}
	n := len(s.stack)
	if n == 0 {
		return eng.Token{}, io.EOF
	}
	top := &s.stack[n-1]
	if top.v.kind == KindArray {
		if top.next < len(top.v.elems) {
			e := &top.v.elems[top.next]
			top.next++
			return s.open(e), nil
		}
		s.stack = s.stack[:n-1]
		return eng.Token{Kind: eng.KindEndArray, Offset: -1}, nil
	}
	if top.next < len(top.v.members) {
		m := &top.v.members[top.next]
		if !top.keyDone {
			top.keyDone = true
			return eng.Token{Kind: eng.KindKey, String: m.Key, Offset: -1}, nil
		}
		top.keyDone = false
		top.next++
		return s.open(&m.Value), nil
	}
	s.stack = s.stack[:n-1]
	return eng.Token{Kind: eng.KindEndObject, Offset: -1}, nil
}

func (s *valueSource) Location() int64 { return -1 }
