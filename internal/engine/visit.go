package engine

import (
	"encoding"
	"encoding/json"
	"reflect"
	"strconv"
)

// DecodeOptions tune how numbers and unknown object keys are handled.
type DecodeOptions struct {
	// Float64Numbers stores numbers decoded into interface values as
	// float64 instead of json.Number.
	Float64Numbers bool
	// DisallowUnknownFields fails on object keys that match no struct field.
	DisallowUnknownFields bool
}

// SeedFor returns a seed that decodes into v, which must be settable.
func SeedFor(v reflect.Value, opts DecodeOptions) Seed { return valueSeed{v: v, opts: opts} }

type valueSeed struct {
	v    reflect.Value
	opts DecodeOptions
}

func (s valueSeed) Deserialize(d Deserializer) error { return Deserialize(d, s.v, s.opts) }

// IgnoredSeed consumes one value and discards it.
type IgnoredSeed struct{}

func (IgnoredSeed) Deserialize(d Deserializer) error { return d.DeserializeIgnored() }

// Deserialize asks d for the kind v's type expects and stores the result in
// v. Nested values are requested through the access objects d hands out, so
// decorators around d see every level.
func Deserialize(d Deserializer, v reflect.Value, opts DecodeOptions) error {
	if v.Kind() != reflect.Pointer && v.CanAddr() {
		switch x := v.Addr().Interface().(type) {
		case Seed:
			return x.Deserialize(d)
		case encoding.TextUnmarshaler:
			return d.DeserializeString(textVisitor{BaseVisitor{"string"}, x})
		}
	}
	t := v.Type()
	switch v.Kind() {
	case reflect.Bool:
		return d.DeserializeBool(boolVisitor{BaseVisitor{"bool"}, v})
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return d.DeserializeNumber(numberVisitor{BaseVisitor{t.String()}, v})
	case reflect.String:
		if t == jsonNumberType {
			return d.DeserializeNumber(numberVisitor{BaseVisitor{"number"}, v})
		}
		return d.DeserializeString(stringVisitor{BaseVisitor{"string"}, v})
	case reflect.Slice:
		if IsByteSlice(t) {
			return d.DeserializeBytes(bytesVisitor{BaseVisitor{"bytes"}, v})
		}
		return d.DeserializeSeq(sliceVisitor{BaseVisitor{"array"}, v, opts})
	case reflect.Array:
		return d.DeserializeTuple(v.Len(), arrayVisitor{BaseVisitor{"array"}, v, opts})
	case reflect.Map:
		return d.DeserializeMap(mapVisitor{BaseVisitor{"object"}, v, opts})
	case reflect.Struct:
		si := cachedStruct(t)
		if si.enum {
			return d.DeserializeEnum(si.name, si.names, enumVisitor{BaseVisitor{"enum " + si.name}, v, si, opts})
		}
		return d.DeserializeStruct(si.name, si.names, structVisitor{BaseVisitor{"object"}, v, si, opts})
	case reflect.Pointer:
		return d.DeserializeOption(optionVisitor{BaseVisitor{"value"}, v, opts})
	case reflect.Interface:
		if t.NumMethod() != 0 {
			return &UnsupportedTypeError{Type: t}
		}
		return d.DeserializeAny(anyVisitor{BaseVisitor{"value"}, v, opts})
	default:
		return &UnsupportedTypeError{Type: t}
	}
}

type boolVisitor struct {
	BaseVisitor
	v reflect.Value
}

func (b boolVisitor) VisitBool(x bool) error {
	b.v.SetBool(x)
	return nil
}

type numberVisitor struct {
	BaseVisitor
	v reflect.Value
}

func (n numberVisitor) VisitNumber(lit string) error {
	t := n.v.Type()
	switch n.v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		x, err := strconv.ParseInt(lit, 10, t.Bits())
		if err != nil {
			return &NumberError{Literal: lit, Type: t}
		}
		n.v.SetInt(x)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		x, err := strconv.ParseUint(lit, 10, t.Bits())
		if err != nil {
			return &NumberError{Literal: lit, Type: t}
		}
		n.v.SetUint(x)
	case reflect.Float32, reflect.Float64:
		x, err := strconv.ParseFloat(lit, t.Bits())
		if err != nil {
			return &NumberError{Literal: lit, Type: t}
		}
		n.v.SetFloat(x)
	default:
		n.v.SetString(lit)
	}
	return nil
}

type stringVisitor struct {
	BaseVisitor
	v reflect.Value
}

func (s stringVisitor) VisitString(x string) error {
	s.v.SetString(x)
	return nil
}

type textVisitor struct {
	BaseVisitor
	u encoding.TextUnmarshaler
}

func (tv textVisitor) VisitString(x string) error { return tv.u.UnmarshalText([]byte(x)) }

// bytesVisitor accepts raw bytes or an array of integers. The result is
// never nil.
type bytesVisitor struct {
	BaseVisitor
	v reflect.Value
}

func (b bytesVisitor) VisitBytes(x []byte) error {
	out := make([]byte, len(x))
	copy(out, x)
	b.v.SetBytes(out)
	return nil
}

func (b bytesVisitor) VisitSeq(a SeqAccess) error {
	out := make([]byte, 0)
	for {
		var x uint8
		ok, err := a.NextElement(SeedFor(reflect.ValueOf(&x).Elem(), DecodeOptions{}))
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		out = append(out, x)
	}
	b.v.SetBytes(out)
	return nil
}

type sliceVisitor struct {
	BaseVisitor
	v    reflect.Value
	opts DecodeOptions
}

func (s sliceVisitor) VisitSeq(a SeqAccess) error {
	t := s.v.Type()
	out := reflect.MakeSlice(t, 0, 0)
	for {
		elem := reflect.New(t.Elem()).Elem()
		ok, err := a.NextElement(SeedFor(elem, s.opts))
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		out = reflect.Append(out, elem)
	}
	s.v.Set(out)
	return nil
}

type arrayVisitor struct {
	BaseVisitor
	v    reflect.Value
	opts DecodeOptions
}

func (av arrayVisitor) VisitSeq(a SeqAccess) error {
	n := av.v.Len()
	for i := 0; i < n; i++ {
		ok, err := a.NextElement(SeedFor(av.v.Index(i), av.opts))
		if err != nil {
			return err
		}
		if !ok {
			return &TypeError{
				Expected: "array of " + strconv.Itoa(n),
				Got:      "array of " + strconv.Itoa(i),
				Offset:   -1,
			}
		}
	}
	return nil
}

type mapVisitor struct {
	BaseVisitor
	v    reflect.Value
	opts DecodeOptions
}

func (m mapVisitor) VisitMap(a MapAccess) error {
	t := m.v.Type()
	if m.v.IsNil() {
		m.v.Set(reflect.MakeMap(t))
	}
	for {
		k := reflect.New(t.Key()).Elem()
		ok, err := a.NextKey(SeedFor(k, m.opts))
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		val := reflect.New(t.Elem()).Elem()
		if err := a.NextValue(SeedFor(val, m.opts)); err != nil {
			return err
		}
		m.v.SetMapIndex(k, val)
	}
}

type structVisitor struct {
	BaseVisitor
	v    reflect.Value
	si   *structInfo
	opts DecodeOptions
}

func (s structVisitor) VisitMap(a MapAccess) error {
	for {
		var key string
		ok, err := a.NextKey(SeedFor(reflect.ValueOf(&key).Elem(), s.opts))
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		f, found := s.si.lookup(key)
		if !found {
			if s.opts.DisallowUnknownFields {
				return &UnknownFieldError{Struct: s.si.name, Field: key}
			}
			if err := a.NextValue(IgnoredSeed{}); err != nil {
				return err
			}
			continue
		}
		if err := a.NextValue(SeedFor(allocField(s.v, f.index), s.opts)); err != nil {
			return err
		}
	}
}

// allocField is fieldByIndex for decoding: nil embedded pointers on the way
// are allocated.
func allocField(v reflect.Value, index []int) reflect.Value {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v
}

type enumVisitor struct {
	BaseVisitor
	v    reflect.Value
	si   *structInfo
	opts DecodeOptions
}

func (e enumVisitor) VisitEnum(a EnumAccess) error {
	name, va, err := a.Variant()
	if err != nil {
		return err
	}
	i, ok := e.si.byName[name]
	if !ok {
		return &VariantError{Enum: e.si.name, Msg: "unknown variant " + strconv.Quote(name)}
	}
	f := &e.si.fields[i]
	e.v.Set(reflect.Zero(e.v.Type()))
	fv := e.v.FieldByIndex(f.index)
	switch f.variant {
	case variantUnit:
		if err := va.UnitVariant(); err != nil {
			return err
		}
		fv.SetBool(true)
	case variantNewtype:
		p := reflect.New(f.typ.Elem())
		if err := va.NewtypeVariant(SeedFor(p.Elem(), e.opts)); err != nil {
			return err
		}
		fv.Set(p)
	case variantTuple:
		p := reflect.New(f.typ.Elem())
		if err := va.TupleVariant(p.Elem().Len(), arrayVisitor{BaseVisitor{"array"}, p.Elem(), e.opts}); err != nil {
			return err
		}
		fv.Set(p)
	case variantStruct:
		p := reflect.New(f.typ.Elem())
		isi := cachedStruct(f.typ.Elem())
		if err := va.StructVariant(isi.names, structVisitor{BaseVisitor{"object"}, p.Elem(), isi, e.opts}); err != nil {
			return err
		}
		fv.Set(p)
	default:
		return &VariantError{Enum: e.si.name, Msg: "field " + f.name + " is not a variant"}
	}
	return nil
}

type optionVisitor struct {
	BaseVisitor
	v    reflect.Value
	opts DecodeOptions
}

func (o optionVisitor) VisitNone() error {
	o.v.Set(reflect.Zero(o.v.Type()))
	return nil
}

func (o optionVisitor) VisitSome(d Deserializer) error {
	if o.v.IsNil() {
		o.v.Set(reflect.New(o.v.Type().Elem()))
	}
	return Deserialize(d, o.v.Elem(), o.opts)
}

// anyVisitor builds the generic Go representation: nil, bool, json.Number
// (or float64), string, []any and map[string]any.
type anyVisitor struct {
	BaseVisitor
	v    reflect.Value
	opts DecodeOptions
}

func (a anyVisitor) set(x any) error {
	a.v.Set(reflect.ValueOf(&x).Elem())
	return nil
}

func (a anyVisitor) VisitNull() error       { return a.set(nil) }
func (a anyVisitor) VisitBool(x bool) error { return a.set(x) }
func (a anyVisitor) VisitString(x string) error {
	return a.set(x)
}

func (a anyVisitor) VisitBytes(x []byte) error {
	return a.set(append([]byte{}, x...))
}

func (a anyVisitor) VisitNumber(lit string) error {
	if !a.opts.Float64Numbers {
		return a.set(json.Number(lit))
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return &NumberError{Literal: lit, Type: reflect.TypeOf(f)}
	}
	return a.set(f)
}

func (a anyVisitor) VisitNone() error { return a.set(nil) }

func (a anyVisitor) VisitSome(d Deserializer) error { return Deserialize(d, a.v, a.opts) }

func (a anyVisitor) VisitSeq(acc SeqAccess) error {
	out := make([]any, 0)
	for {
		var x any
		ok, err := acc.NextElement(SeedFor(reflect.ValueOf(&x).Elem(), a.opts))
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		out = append(out, x)
	}
	return a.set(out)
}

func (a anyVisitor) VisitMap(acc MapAccess) error {
	out := make(map[string]any)
	for {
		var k string
		ok, err := acc.NextKey(SeedFor(reflect.ValueOf(&k).Elem(), a.opts))
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		var x any
		if err := acc.NextValue(SeedFor(reflect.ValueOf(&x).Elem(), a.opts)); err != nil {
			return err
		}
		out[k] = x
	}
	return a.set(out)
}
