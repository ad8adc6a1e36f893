package jsonbytes

import (
	eng "github.com/reoring/jsonbytes/internal/engine"
)

// Enum marks a struct as an externally tagged union when embedded. Each
// other exported field is one variant and exactly one of them is set:
//
//	bool            unit variant        "name"
//	*struct         struct variant      {"name":{...}}
//	*[N]T           tuple variant       {"name":[...]}
//	any other *T    newtype variant     {"name":value}
type Enum = eng.Enum

// Hooks for types that take over their own encoding. A type implementing
// Serializable (value receiver) is asked to describe itself; a pointer type
// implementing Seed decodes itself. Value is an example of both.
type (
	Serializable  = eng.Serializable
	Serializer    = eng.Serializer
	Compound      = eng.Compound
	Seed          = eng.Seed
	Deserializer  = eng.Deserializer
	Visitor       = eng.Visitor
	BaseVisitor   = eng.BaseVisitor
	SeqAccess     = eng.SeqAccess
	MapAccess     = eng.MapAccess
	EnumAccess    = eng.EnumAccess
	VariantAccess = eng.VariantAccess
)

// Errors produced by the engine for values that are not byte sequences.
// They are returned unwrapped.
type (
	TypeError            = eng.TypeError
	SyntaxError          = eng.SyntaxError
	NumberError          = eng.NumberError
	UnsupportedTypeError = eng.UnsupportedTypeError
	UnknownFieldError    = eng.UnknownFieldError
	VariantError         = eng.VariantError
)
