package jsonbytes_test

import (
	"bytes"
	"errors"
	"testing"

	jsonbytes "github.com/reoring/jsonbytes"
)

func TestValue_KeepsMemberOrderAndLiterals(t *testing.T) {
	var v jsonbytes.Value
	in := `{"z":1.50,"a":[true,null,"s"],"m":{}}`
	if err := jsonbytes.DecodeFromString(in, &v, jsonbytes.DefaultConfig()); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.Kind() != jsonbytes.KindObject || v.Len() != 3 {
		t.Fatalf("unexpected tree: %v len=%d", v.Kind(), v.Len())
	}
	if v.Members()[0].Key != "z" || v.Members()[0].Value.Text() != "1.50" {
		t.Fatalf("order or literal lost: %+v", v.Members()[0])
	}
	a, ok := v.Get("a")
	if !ok || a.Len() != 3 || !a.Elems()[0].Bool() || a.Elems()[1].Kind() != jsonbytes.KindNull {
		t.Fatalf("unexpected array: %+v", a)
	}
	got, err := jsonbytes.EncodeToString(v, jsonbytes.DefaultConfig())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got != in {
		t.Fatalf("got %s want %s", got, in)
	}
}

func TestValue_EncodeToValueAndBack(t *testing.T) {
	cfg := jsonbytes.DefaultConfig().WithBytesHex().EnableHexPrefix()
	tree, err := jsonbytes.EncodeToValue(payload{Data: sample}, cfg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	leaf, ok := tree.Get("data")
	if !ok || leaf.Kind() != jsonbytes.KindString || leaf.Text() != "0x010203ff" {
		t.Fatalf("unexpected leaf: %+v", leaf)
	}
	var back payload
	if err := jsonbytes.DecodeFromValue(tree, &back, cfg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(back.Data, sample) {
		t.Fatalf("got %v", back.Data)
	}

	raw, err := jsonbytes.EncodeToValue(sample, jsonbytes.DefaultConfig())
	if err != nil {
		t.Fatalf("encode raw: %v", err)
	}
	if raw.Kind() != jsonbytes.KindArray || raw.Len() != 4 || raw.Elems()[3].Text() != "255" {
		t.Fatalf("unexpected raw tree: %+v", raw)
	}
}

func TestValue_DecodeErrorsCarryPaths(t *testing.T) {
	tree := jsonbytes.Object(jsonbytes.Member{Key: "data", Value: jsonbytes.String("0xgg")})
	var p payload
	err := jsonbytes.DecodeFromValue(tree, &p, jsonbytes.DefaultConfig().WithBytesHex())
	if !errors.Is(err, jsonbytes.ErrInvalidEncoding) {
		t.Fatalf("expected ErrInvalidEncoding, got: %v", err)
	}
	if it := firstIssue(t, err); it.Path != "/data" || it.Offset != -1 {
		t.Fatalf("unexpected issue: %+v", it)
	}
}

func TestValue_Constructors(t *testing.T) {
	v := jsonbytes.Object(
		jsonbytes.Member{Key: "n", Value: jsonbytes.Number("1e3")},
		jsonbytes.Member{Key: "b", Value: jsonbytes.Bool(false)},
		jsonbytes.Member{Key: "x", Value: jsonbytes.Null()},
	)
	got, err := jsonbytes.EncodeToString(v, jsonbytes.DefaultConfig())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got != `{"n":1e3,"b":false,"x":null}` {
		t.Fatalf("got %s", got)
	}
	if _, ok := v.Get("missing"); ok {
		t.Fatalf("Get of a missing key reported ok")
	}
	if jsonbytes.KindObject.String() != "object" || jsonbytes.Null().Kind().String() != "null" {
		t.Fatalf("unexpected kind names")
	}
}
