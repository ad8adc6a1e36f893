package engine

import (
	"errors"
	"strconv"
)

// Serializable is implemented by anything that can describe itself to a
// Serializer. Values reached by the reflection walker are adapted with
// ValueOf; types may implement it directly to take over their encoding.
type Serializable interface {
	Serialize(s Serializer) error
}

// Serializer receives one call per value kind. Container kinds return a
// Compound that accepts the nested elements, keys, values or fields.
type Serializer interface {
	SerializeNull() error
	SerializeBool(v bool) error
	SerializeInt(v int64) error
	SerializeUint(v uint64) error
	SerializeFloat(v float64, bits int) error
	// SerializeNumber writes an already formatted number literal.
	SerializeNumber(literal string) error
	SerializeString(v string) error
	SerializeBytes(v []byte) error

	SerializeNone() error
	SerializeSome(v Serializable) error

	SerializeUnitVariant(enum, variant string) error
	SerializeNewtypeVariant(enum, variant string, v Serializable) error

	SerializeSeq(n int) (Compound, error)
	SerializeTuple(n int) (Compound, error)
	SerializeMap(n int) (Compound, error)
	SerializeStruct(name string, n int) (Compound, error)
	SerializeTupleVariant(enum, variant string, n int) (Compound, error)
	SerializeStructVariant(enum, variant string, n int) (Compound, error)
}

// Compound is the in-progress state of one container. Sequences, tuples and
// tuple variants accept elements; maps accept key/value pairs; structs and
// struct variants accept named fields. End closes the container.
type Compound interface {
	SerializeElement(v Serializable) error
	SerializeKey(k Serializable) error
	SerializeValue(v Serializable) error
	SerializeField(name string, v Serializable) error
	End() error
}

var (
	errNotSeq    = errors.New("serializer: container does not accept elements")
	errNotMap    = errors.New("serializer: container does not accept keys or values")
	errNotStruct = errors.New("serializer: container does not accept fields")
	errKeyKind   = errors.New("serializer: object key must be a string, number or bool")
)

// TokenSerializer turns Serializer calls into TokenWriter calls. It is the
// innermost serializer; decorators wrap it.
type TokenSerializer struct {
	w TokenWriter
}

// NewSerializer returns a serializer writing to w.
func NewSerializer(w TokenWriter) *TokenSerializer { return &TokenSerializer{w: w} }

func (s *TokenSerializer) SerializeNull() error       { return s.w.Null() }
func (s *TokenSerializer) SerializeBool(v bool) error { return s.w.Bool(v) }
func (s *TokenSerializer) SerializeInt(v int64) error { return s.w.Number(strconv.FormatInt(v, 10)) }
func (s *TokenSerializer) SerializeUint(v uint64) error {
	return s.w.Number(strconv.FormatUint(v, 10))
}

func (s *TokenSerializer) SerializeFloat(v float64, bits int) error {
	lit, err := formatFloat(v, bits)
	if err != nil {
		return err
	}
	return s.w.Number(lit)
}

func (s *TokenSerializer) SerializeNumber(literal string) error { return s.w.Number(literal) }
func (s *TokenSerializer) SerializeString(v string) error       { return s.w.String(v) }

// SerializeBytes writes the bytes as an array of integers.
func (s *TokenSerializer) SerializeBytes(v []byte) error {
	if err := s.w.BeginArray(); err != nil {
		return err
	}
	for _, b := range v {
		if err := s.w.Number(strconv.FormatUint(uint64(b), 10)); err != nil {
			return err
		}
	}
	return s.w.EndArray()
}

func (s *TokenSerializer) SerializeNone() error               { return s.w.Null() }
func (s *TokenSerializer) SerializeSome(v Serializable) error { return v.Serialize(s) }

func (s *TokenSerializer) SerializeUnitVariant(_, variant string) error {
	return s.w.String(variant)
}

func (s *TokenSerializer) SerializeNewtypeVariant(_, variant string, v Serializable) error {
	if err := s.w.BeginObject(); err != nil {
		return err
	}
	if err := s.w.Key(variant); err != nil {
		return err
	}
	if err := v.Serialize(s); err != nil {
		return err
	}
	return s.w.EndObject()
}

func (s *TokenSerializer) SerializeSeq(int) (Compound, error) {
	return s.begin(compoundSeq, "")
}

func (s *TokenSerializer) SerializeTuple(int) (Compound, error) {
	return s.begin(compoundSeq, "")
}

func (s *TokenSerializer) SerializeMap(int) (Compound, error) {
	return s.begin(compoundMap, "")
}

func (s *TokenSerializer) SerializeStruct(string, int) (Compound, error) {
	return s.begin(compoundStruct, "")
}

func (s *TokenSerializer) SerializeTupleVariant(_, variant string, _ int) (Compound, error) {
	return s.begin(compoundTupleVariant, variant)
}

func (s *TokenSerializer) SerializeStructVariant(_, variant string, _ int) (Compound, error) {
	return s.begin(compoundStructVariant, variant)
}

type compoundKind int

const (
	compoundSeq compoundKind = iota
	compoundMap
	compoundStruct
	compoundTupleVariant
	compoundStructVariant
)

func (s *TokenSerializer) begin(kind compoundKind, variant string) (Compound, error) {
	var err error
	switch kind {
	case compoundSeq:
		err = s.w.BeginArray()
	case compoundMap, compoundStruct:
		err = s.w.BeginObject()
	case compoundTupleVariant, compoundStructVariant:
		if err = s.w.BeginObject(); err != nil {
			return nil, err
		}
		if err = s.w.Key(variant); err != nil {
			return nil, err
		}
		if kind == compoundTupleVariant {
			err = s.w.BeginArray()
		} else {
			err = s.w.BeginObject()
		}
	}
	if err != nil {
		return nil, err
	}
	return &tokenCompound{s: s, kind: kind}, nil
}

type tokenCompound struct {
	s    *TokenSerializer
	kind compoundKind
}

func (c *tokenCompound) SerializeElement(v Serializable) error {
	if c.kind != compoundSeq && c.kind != compoundTupleVariant {
		return errNotSeq
	}
	return v.Serialize(c.s)
}

func (c *tokenCompound) SerializeKey(k Serializable) error {
	if c.kind != compoundMap {
		return errNotMap
	}
	return k.Serialize(&keySerializer{w: c.s.w})
}

func (c *tokenCompound) SerializeValue(v Serializable) error {
	if c.kind != compoundMap {
		return errNotMap
	}
	return v.Serialize(c.s)
}

func (c *tokenCompound) SerializeField(name string, v Serializable) error {
	if c.kind != compoundStruct && c.kind != compoundStructVariant {
		return errNotStruct
	}
	if err := c.s.w.Key(name); err != nil {
		return err
	}
	return v.Serialize(c.s)
}

func (c *tokenCompound) End() error {
	switch c.kind {
	case compoundSeq:
		return c.s.w.EndArray()
	case compoundMap, compoundStruct:
		return c.s.w.EndObject()
	case compoundTupleVariant:
		if err := c.s.w.EndArray(); err != nil {
			return err
		}
		return c.s.w.EndObject()
	default:
		if err := c.s.w.EndObject(); err != nil {
			return err
		}
		return c.s.w.EndObject()
	}
}

// keySerializer renders scalar map keys as object keys.
type keySerializer struct {
	w TokenWriter
}

func (k *keySerializer) SerializeNull() error         { return errKeyKind }
func (k *keySerializer) SerializeBool(v bool) error   { return k.w.Key(strconv.FormatBool(v)) }
func (k *keySerializer) SerializeInt(v int64) error   { return k.w.Key(strconv.FormatInt(v, 10)) }
func (k *keySerializer) SerializeUint(v uint64) error { return k.w.Key(strconv.FormatUint(v, 10)) }
func (k *keySerializer) SerializeFloat(v float64, bits int) error {
	lit, err := formatFloat(v, bits)
	if err != nil {
		return err
	}
	return k.w.Key(lit)
}
func (k *keySerializer) SerializeNumber(literal string) error { return k.w.Key(literal) }
func (k *keySerializer) SerializeString(v string) error       { return k.w.Key(v) }
func (k *keySerializer) SerializeBytes([]byte) error          { return errKeyKind }
func (k *keySerializer) SerializeNone() error                 { return errKeyKind }
func (k *keySerializer) SerializeSome(v Serializable) error   { return v.Serialize(k) }
func (k *keySerializer) SerializeUnitVariant(_, variant string) error {
	return k.w.Key(variant)
}
func (k *keySerializer) SerializeNewtypeVariant(string, string, Serializable) error {
	return errKeyKind
}
func (k *keySerializer) SerializeSeq(int) (Compound, error)   { return nil, errKeyKind }
func (k *keySerializer) SerializeTuple(int) (Compound, error) { return nil, errKeyKind }
func (k *keySerializer) SerializeMap(int) (Compound, error)   { return nil, errKeyKind }
func (k *keySerializer) SerializeStruct(string, int) (Compound, error) {
	return nil, errKeyKind
}
func (k *keySerializer) SerializeTupleVariant(string, string, int) (Compound, error) {
	return nil, errKeyKind
}
func (k *keySerializer) SerializeStructVariant(string, string, int) (Compound, error) {
	return nil, errKeyKind
}
