package jsonbytes

import (
	"strconv"

	"github.com/reoring/jsonbytes/codec"
	eng "github.com/reoring/jsonbytes/internal/engine"
)

// encodeState is shared by every serializer and compound of one encode call.
// path holds the reference tokens leading to the value being written.
type encodeState struct {
	cfg      Config
	path     []string
	depth    int
	maxDepth int // 0 disables the limit
	hops     int // pointer hops since the innermost container
}

// maxPointerHops bounds chains of pointers and interfaces with no container
// in between. Such chains add no nesting to the output, so the limit holds
// even when MaxDepth is disabled.
const maxPointerHops = DefaultMaxDepth

func (st *encodeState) push(tok string) { st.path = append(st.path, tok) }
func (st *encodeState) pop()            { st.path = st.path[:len(st.path)-1] }
func (st *encodeState) pointer() string { return pointerOf(st.path) }

func (st *encodeState) enter() error {
	st.depth++
	if st.maxDepth > 0 && st.depth > st.maxDepth {
		return issueAt(st.pointer(), CodeTooDeep, &depthError{max: st.maxDepth})
	}
	return nil
}

func (st *encodeState) leave() { st.depth-- }

func (st *encodeState) follow() error {
	st.hops++
	if st.hops > maxPointerHops {
		return issueAt(st.pointer(), CodeTooDeep, &hopError{max: maxPointerHops})
	}
	return nil
}

type hopError struct{ max int }

func (e *hopError) Error() string {
	return "more than " + strconv.Itoa(e.max) + " pointer hops without a container, value may be cyclic"
}

// wrap makes v serialize through the byte codec when the engine hands it a
// serializer.
func (st *encodeState) wrap(v eng.Serializable) eng.Serializable {
	return wrappedValue{v: v, st: st}
}

type wrappedValue struct {
	v   eng.Serializable
	st  *encodeState
	key *string
}

func (w wrappedValue) Serialize(s eng.Serializer) error {
	return w.v.Serialize(&serializer{inner: s, st: w.st, key: w.key})
}

// serializer forwards every call to inner. Byte sequences go through the
// configured codec; containers come back wrapped so nested values do too.
// key is set while an object key is written and receives its text.
type serializer struct {
	inner eng.Serializer
	st    *encodeState
	key   *string
}

func newSerializer(inner eng.Serializer, st *encodeState) eng.Serializer {
	return &serializer{inner: inner, st: st}
}

func (s *serializer) record(text string) {
	if s.key != nil {
		*s.key = text
	}
}

func (s *serializer) SerializeNull() error { return s.inner.SerializeNull() }
func (s *serializer) SerializeNone() error { return s.inner.SerializeNone() }

func (s *serializer) SerializeFloat(v float64, bits int) error {
	return s.inner.SerializeFloat(v, bits)
}

func (s *serializer) SerializeBool(v bool) error {
	s.record(strconv.FormatBool(v))
	return s.inner.SerializeBool(v)
}

func (s *serializer) SerializeInt(v int64) error {
	s.record(strconv.FormatInt(v, 10))
	return s.inner.SerializeInt(v)
}

func (s *serializer) SerializeUint(v uint64) error {
	s.record(strconv.FormatUint(v, 10))
	return s.inner.SerializeUint(v)
}

func (s *serializer) SerializeNumber(literal string) error {
	s.record(literal)
	return s.inner.SerializeNumber(literal)
}

func (s *serializer) SerializeString(v string) error {
	s.record(v)
	return s.inner.SerializeString(v)
}

func (s *serializer) SerializeBytes(v []byte) error {
	cfg := s.st.cfg
	switch cfg.bytesFormat {
	case BytesHex:
		return s.inner.SerializeString(codec.EncodeHex(v, cfg.hexPrefix))
	case BytesBase64:
		return s.inner.SerializeString(codec.EncodeBase64(v, false))
	case BytesBase64URLSafe:
		return s.inner.SerializeString(codec.EncodeBase64(v, true))
	}
	if err := s.st.enter(); err != nil {
		return err
	}
	defer s.st.leave()
	c, err := s.inner.SerializeSeq(len(v))
	if err != nil {
		return err
	}
	for _, b := range v {
		if err := c.SerializeElement(byteElem(b)); err != nil {
			return err
		}
	}
	return c.End()
}

type byteElem byte

func (b byteElem) Serialize(s eng.Serializer) error { return s.SerializeUint(uint64(b)) }

func (s *serializer) SerializeSome(v eng.Serializable) error {
	if err := s.st.follow(); err != nil {
		return err
	}
	defer func() { s.st.hops-- }()
	return s.inner.SerializeSome(wrappedValue{v: v, st: s.st, key: s.key})
}

func (s *serializer) SerializeUnitVariant(enum, variant string) error {
	return s.inner.SerializeUnitVariant(enum, variant)
}

func (s *serializer) SerializeNewtypeVariant(enum, variant string, v eng.Serializable) error {
	if err := s.st.enter(); err != nil {
		return err
	}
	defer s.st.leave()
	s.st.push(variant)
	defer s.st.pop()
	return s.inner.SerializeNewtypeVariant(enum, variant, s.st.wrap(v))
}

func (s *serializer) SerializeSeq(n int) (eng.Compound, error) {
	return s.begin("", func() (eng.Compound, error) { return s.inner.SerializeSeq(n) })
}

func (s *serializer) SerializeTuple(n int) (eng.Compound, error) {
	return s.begin("", func() (eng.Compound, error) { return s.inner.SerializeTuple(n) })
}

func (s *serializer) SerializeMap(n int) (eng.Compound, error) {
	return s.begin("", func() (eng.Compound, error) { return s.inner.SerializeMap(n) })
}

func (s *serializer) SerializeStruct(name string, n int) (eng.Compound, error) {
	return s.begin("", func() (eng.Compound, error) { return s.inner.SerializeStruct(name, n) })
}

func (s *serializer) SerializeTupleVariant(enum, variant string, n int) (eng.Compound, error) {
	return s.begin(variant, func() (eng.Compound, error) { return s.inner.SerializeTupleVariant(enum, variant, n) })
}

func (s *serializer) SerializeStructVariant(enum, variant string, n int) (eng.Compound, error) {
	return s.begin(variant, func() (eng.Compound, error) { return s.inner.SerializeStructVariant(enum, variant, n) })
}

// begin opens a container. A variant is wrapped in an extra object keyed by
// its name, which adds a level of nesting and a path token.
func (s *serializer) begin(variant string, open func() (eng.Compound, error)) (eng.Compound, error) {
	levels := 1
	if variant != "" {
		levels = 2
	}
	for i := 0; i < levels; i++ {
		if err := s.st.enter(); err != nil {
			s.st.depth -= i + 1
			if i > 0 {
				s.st.pop()
			}
			return nil, err
		}
		if i == 0 && variant != "" {
			s.st.push(variant)
		}
	}
	c, err := open()
	if err != nil {
		s.st.depth -= levels
		if variant != "" {
			s.st.pop()
		}
		return nil, err
	}
	hops := s.st.hops
	s.st.hops = 0
	return &compound{inner: c, st: s.st, levels: levels, variant: variant != "", hops: hops}, nil
}

// compound is the one wrapper for every container kind. It re-wraps each
// nested value before forwarding it and tracks the path token it is under.
type compound struct {
	inner   eng.Compound
	st      *encodeState
	levels  int
	variant bool
	hops    int
	index   int
	key     string
}

func (c *compound) SerializeElement(v eng.Serializable) error {
	c.st.push(strconv.Itoa(c.index))
	defer c.st.pop()
	c.index++
	return c.inner.SerializeElement(c.st.wrap(v))
}

func (c *compound) SerializeKey(k eng.Serializable) error {
	c.key = ""
	return c.inner.SerializeKey(wrappedValue{v: k, st: c.st, key: &c.key})
}

func (c *compound) SerializeValue(v eng.Serializable) error {
	c.st.push(c.key)
	defer c.st.pop()
	return c.inner.SerializeValue(c.st.wrap(v))
}

func (c *compound) SerializeField(name string, v eng.Serializable) error {
	c.st.push(name)
	defer c.st.pop()
	return c.inner.SerializeField(name, c.st.wrap(v))
}

func (c *compound) End() error {
	c.st.depth -= c.levels
	c.st.hops = c.hops
	if c.variant {
		c.st.pop()
	}
	return c.inner.End()
}
