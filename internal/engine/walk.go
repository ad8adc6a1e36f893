package engine

import (
	"encoding"
	"encoding/json"
	"reflect"
	"sort"
	"strconv"
)

var jsonNumberType = reflect.TypeOf(json.Number(""))

// ValueOf adapts a reflected value to Serializable.
func ValueOf(v reflect.Value) Serializable { return reflectValue{v} }

type reflectValue struct{ v reflect.Value }

func (r reflectValue) Serialize(s Serializer) error { return Serialize(s, r.v) }

// Serialize walks v and describes it to s. Nested values are handed to the
// Compound returned by s, so decorators around s see every level.
func Serialize(s Serializer, v reflect.Value) error {
	if !v.IsValid() {
		return s.SerializeNull()
	}
	if v.CanInterface() {
		if done, err := serializeHooks(s, v); done {
			return err
		}
	}
	t := v.Type()
	switch v.Kind() {
	case reflect.Bool:
		return s.SerializeBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return s.SerializeInt(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return s.SerializeUint(v.Uint())
	case reflect.Float32:
		return s.SerializeFloat(v.Float(), 32)
	case reflect.Float64:
		return s.SerializeFloat(v.Float(), 64)
	case reflect.String:
		if t == jsonNumberType {
			lit := v.String()
			if lit == "" {
				lit = "0"
			}
			return s.SerializeNumber(lit)
		}
		return s.SerializeString(v.String())
	case reflect.Slice:
		if IsByteSlice(t) {
			return s.SerializeBytes(v.Bytes())
		}
		return serializeElements(s.SerializeSeq, v)
	case reflect.Array:
		return serializeElements(s.SerializeTuple, v)
	case reflect.Map:
		return serializeMap(s, v)
	case reflect.Struct:
		si := cachedStruct(t)
		if si.enum {
			return serializeEnum(s, v, si)
		}
		return serializeStruct(s, v, si)
	case reflect.Pointer:
		if v.IsNil() {
			return s.SerializeNone()
		}
		return s.SerializeSome(ValueOf(v.Elem()))
	case reflect.Interface:
		if v.IsNil() {
			return s.SerializeNull()
		}
		return Serialize(s, v.Elem())
	default:
		return &UnsupportedTypeError{Type: t}
	}
}

func serializeHooks(s Serializer, v reflect.Value) (bool, error) {
	if v.Kind() == reflect.Pointer && v.IsNil() {
		return false, nil
	}
	switch x := v.Interface().(type) {
	case Serializable:
		return true, x.Serialize(s)
	case encoding.TextMarshaler:
		text, err := x.MarshalText()
		if err != nil {
			return true, err
		}
		return true, s.SerializeString(string(text))
	}
	if v.CanAddr() {
		switch x := v.Addr().Interface().(type) {
		case Serializable:
			return true, x.Serialize(s)
		case encoding.TextMarshaler:
			text, err := x.MarshalText()
			if err != nil {
				return true, err
			}
			return true, s.SerializeString(string(text))
		}
	}
	return false, nil
}

func serializeElements(begin func(int) (Compound, error), v reflect.Value) error {
	n := v.Len()
	c, err := begin(n)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := c.SerializeElement(ValueOf(v.Index(i))); err != nil {
			return err
		}
	}
	return c.End()
}

type mapEntry struct {
	key string
	k   reflect.Value
	v   reflect.Value
}

// serializeMap emits entries sorted by their rendered key so output is
// deterministic.
func serializeMap(s Serializer, v reflect.Value) error {
	entries := make([]mapEntry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		k := iter.Key()
		entries = append(entries, mapEntry{key: sortKey(k), k: k, v: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
	c, err := s.SerializeMap(len(entries))
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := c.SerializeKey(ValueOf(e.k)); err != nil {
			return err
		}
		if err := c.SerializeValue(ValueOf(e.v)); err != nil {
			return err
		}
	}
	return c.End()
}

func sortKey(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	if k.CanInterface() {
		if tm, ok := k.Interface().(encoding.TextMarshaler); ok {
			if b, err := tm.MarshalText(); err == nil {
				return string(b)
			}
		}
	}
	switch k.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(k.Uint(), 10)
	case reflect.Bool:
		return strconv.FormatBool(k.Bool())
	}
	return ""
}

// fieldByIndex follows index through embedded structs. ok is false when the
// path crosses a nil pointer.
func fieldByIndex(v reflect.Value, index []int) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, true
}

func presentFields(v reflect.Value, si *structInfo) []int {
	out := make([]int, 0, len(si.fields))
	for i := range si.fields {
		f := &si.fields[i]
		fv, ok := fieldByIndex(v, f.index)
		if !ok || (f.omitEmpty && isEmptyValue(fv)) {
			continue
		}
		out = append(out, i)
	}
	return out
}

func serializeStruct(s Serializer, v reflect.Value, si *structInfo) error {
	present := presentFields(v, si)
	c, err := s.SerializeStruct(si.name, len(present))
	if err != nil {
		return err
	}
	if err := serializeFields(c, v, si, present); err != nil {
		return err
	}
	return c.End()
}

func serializeFields(c Compound, v reflect.Value, si *structInfo, present []int) error {
	for _, i := range present {
		f := &si.fields[i]
		fv, _ := fieldByIndex(v, f.index)
		if err := c.SerializeField(f.name, ValueOf(fv)); err != nil {
			return err
		}
	}
	return nil
}

func serializeEnum(s Serializer, v reflect.Value, si *structInfo) error {
	selected := -1
	for i := range si.fields {
		fv := v.FieldByIndex(si.fields[i].index)
		set := false
		switch si.fields[i].variant {
		case variantUnit:
			set = fv.Bool()
		case variantNewtype, variantTuple, variantStruct:
			set = !fv.IsNil()
		}
		if !set {
			continue
		}
		if selected >= 0 {
			return &VariantError{Enum: si.name, Msg: "more than one variant is set"}
		}
		selected = i
	}
	if selected < 0 {
		return &VariantError{Enum: si.name, Msg: "no variant is set"}
	}
	f := &si.fields[selected]
	fv := v.FieldByIndex(f.index)
	switch f.variant {
	case variantUnit:
		return s.SerializeUnitVariant(si.name, f.name)
	case variantStruct:
		inner := fv.Elem()
		isi := cachedStruct(inner.Type())
		present := presentFields(inner, isi)
		c, err := s.SerializeStructVariant(si.name, f.name, len(present))
		if err != nil {
			return err
		}
		if err := serializeFields(c, inner, isi, present); err != nil {
			return err
		}
		return c.End()
	case variantTuple:
		inner := fv.Elem()
		return serializeElements(func(n int) (Compound, error) {
			return s.SerializeTupleVariant(si.name, f.name, n)
		}, inner)
	default:
		return s.SerializeNewtypeVariant(si.name, f.name, ValueOf(fv.Elem()))
	}
}
