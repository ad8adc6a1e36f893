package jsonbytes

import (
	"reflect"

	eng "github.com/reoring/jsonbytes/internal/engine"
)

// ResolveStructKey applies the repository-wide rule to resolve a struct field's
// external key.
// Priority: jsonbytes tag > json tag > field name; "-" disables the field.
func ResolveStructKey(sf reflect.StructField) string {
	name, _ := eng.ResolveKey(sf)
	return name
}

// IsBytesType reports whether values of t are encoded through the bytes
// codec: slices of a uint8 kind that do not marshal themselves as text.
func IsBytesType(t reflect.Type) bool { return eng.IsByteSlice(t) }
