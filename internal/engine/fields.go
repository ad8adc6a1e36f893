package engine

import (
	"encoding"
	"reflect"
	"slices"
	"strings"
	"sync"
)

// Enum marks a struct as an externally tagged union when embedded. Each
// other exported field is one variant and exactly one of them is set:
//
//	bool            unit variant        "name"
//	*struct         struct variant      {"name":{...}}
//	*[N]T           tuple variant       {"name":[...]}
//	any other *T    newtype variant     {"name":value}
type Enum struct{}

type variantKind int

const (
	variantNone variantKind = iota
	variantUnit
	variantNewtype
	variantTuple
	variantStruct
)

type field struct {
	name      string
	index     []int
	typ       reflect.Type
	omitEmpty bool
	variant   variantKind
}

type structInfo struct {
	name   string
	fields []field
	names  []string
	byName map[string]int
	enum   bool
}

func (si *structInfo) lookup(name string) (*field, bool) {
	if i, ok := si.byName[name]; ok {
		return &si.fields[i], true
	}
	for i := range si.fields {
		if strings.EqualFold(si.fields[i].name, name) {
			return &si.fields[i], true
		}
	}
	return nil, false
}

var (
	structCache sync.Map // reflect.Type -> *structInfo

	enumType            = reflect.TypeOf(Enum{})
	serializableType    = reflect.TypeOf((*Serializable)(nil)).Elem()
	seedType            = reflect.TypeOf((*Seed)(nil)).Elem()
	textMarshalerType   = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

func cachedStruct(t reflect.Type) *structInfo {
	if v, ok := structCache.Load(t); ok {
		return v.(*structInfo)
	}
	si := buildStruct(t)
	v, _ := structCache.LoadOrStore(t, si)
	return v.(*structInfo)
}

func buildStruct(t reflect.Type) *structInfo {
	si := &structInfo{name: t.Name(), byName: make(map[string]int)}
	collectFields(t, nil, []reflect.Type{t}, si)
	for i, f := range si.fields {
		si.names = append(si.names, f.name)
		if _, dup := si.byName[f.name]; !dup {
			si.byName[f.name] = i
		}
	}
	if si.enum {
		for i := range si.fields {
			si.fields[i].variant = variantOf(si.fields[i].typ)
		}
	}
	return si
}

// collectFields flattens embedded structs and embedded pointers to exported
// struct types into t's field list. seen holds the types on the current
// embedding chain; a type embedding itself is not expanded again.
func collectFields(t reflect.Type, parent []int, seen []reflect.Type, si *structInfo) {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Type == enumType {
			if sf.Anonymous && parent == nil {
				si.enum = true
			}
			continue
		}
		name, omit := ResolveKey(sf)
		if name == "-" {
			continue
		}
		index := append(append([]int(nil), parent...), i)
		if et, ok := embeddedStruct(sf); ok {
			if !slices.Contains(seen, et) {
				collectFields(et, index, append(seen, et), si)
			}
			continue
		}
		if !sf.IsExported() {
			continue
		}
		si.fields = append(si.fields, field{name: name, index: index, typ: sf.Type, omitEmpty: omit})
	}
}

// embeddedStruct reports the struct type whose fields sf promotes. Pointers
// to unexported types are left alone, since decoding could not allocate them.
func embeddedStruct(sf reflect.StructField) (reflect.Type, bool) {
	if !sf.Anonymous || hasTag(sf) || hasHooks(sf.Type) {
		return nil, false
	}
	t := sf.Type
	if t.Kind() == reflect.Pointer {
		if !sf.IsExported() {
			return nil, false
		}
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || hasHooks(t) {
		return nil, false
	}
	return t, true
}

func hasTag(sf reflect.StructField) bool {
	return sf.Tag.Get("jsonbytes") != "" || sf.Tag.Get("json") != ""
}

// ResolveKey applies the key rule: jsonbytes tag > json tag > field name;
// "-" disables the field. The second result reports omitempty.
func ResolveKey(sf reflect.StructField) (string, bool) {
	tag := sf.Tag.Get("jsonbytes")
	if tag == "" {
		tag = sf.Tag.Get("json")
	}
	if tag == "-" {
		return "-", false
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = sf.Name
	}
	omit := false
	for _, o := range strings.Split(opts, ",") {
		if strings.TrimSpace(o) == "omitempty" {
			omit = true
		}
	}
	return name, omit
}

func variantOf(t reflect.Type) variantKind {
	switch {
	case t.Kind() == reflect.Bool:
		return variantUnit
	case t.Kind() != reflect.Pointer:
		return variantNone
	}
	e := t.Elem()
	switch {
	case hasHooks(e):
		return variantNewtype
	case e.Kind() == reflect.Struct && !isEnumStruct(e):
		return variantStruct
	case e.Kind() == reflect.Array:
		return variantTuple
	default:
		return variantNewtype
	}
}

func isEnumStruct(t reflect.Type) bool {
	for i := 0; i < t.NumField(); i++ {
		if sf := t.Field(i); sf.Anonymous && sf.Type == enumType {
			return true
		}
	}
	return false
}

// hasHooks reports whether t (or *t) takes over its own encoding.
func hasHooks(t reflect.Type) bool {
	p := reflect.PointerTo(t)
	return t.Implements(serializableType) || p.Implements(seedType) ||
		t.Implements(textMarshalerType) || p.Implements(textUnmarshalerType)
}

// IsByteSlice reports whether t is a byte sequence: a slice of uint8 kind
// that does not render itself as text.
func IsByteSlice(t reflect.Type) bool {
	if t.Kind() != reflect.Slice || t.Elem().Kind() != reflect.Uint8 {
		return false
	}
	return !t.Implements(textMarshalerType) && !t.Implements(serializableType)
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}
