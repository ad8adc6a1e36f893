package engine_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	eng "github.com/reoring/jsonbytes/internal/engine"
	jsonsrc "github.com/reoring/jsonbytes/source/json"
)

type inner struct {
	N json.Number `json:"n"`
}

type sample struct {
	Name  string         `json:"name"`
	Tags  []string       `json:"tags"`
	Pair  [2]int         `json:"pair"`
	Inner *inner         `json:"inner"`
	Attrs map[string]int `json:"attrs"`
	Raw   []byte         `json:"raw"`
	Skip  string         `json:"-"`
	Flag  bool
}

func encode(t *testing.T, v any, f eng.Formatter) string {
	t.Helper()
	var buf bytes.Buffer
	tw := eng.NewTextWriter(&buf, f)
	if err := eng.ValueOf(reflect.ValueOf(v)).Serialize(eng.NewSerializer(tw)); err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if err := tw.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	return buf.String()
}

func decode(t *testing.T, in string, target any, opts eng.DecodeOptions) error {
	t.Helper()
	d := eng.NewDeserializer(jsonsrc.NewBytes([]byte(in)))
	if err := eng.Deserialize(d, reflect.ValueOf(target).Elem(), opts); err != nil {
		return err
	}
	return d.End()
}

func TestSerialize_Compact(t *testing.T) {
	v := sample{
		Name:  "a<b",
		Tags:  []string{"x"},
		Pair:  [2]int{1, 2},
		Inner: &inner{N: "1.50"},
		Attrs: map[string]int{"z": 1, "a": 2},
		Raw:   []byte{7},
		Skip:  "hidden",
		Flag:  true,
	}
	got := encode(t, v, nil)
	want := `{"name":"a<b","tags":["x"],"pair":[1,2],"inner":{"n":1.50},"attrs":{"a":2,"z":1},"raw":[7],"Flag":true}`
	if got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}
}

func TestSerialize_Pretty(t *testing.T) {
	got := encode(t, map[string]any{"a": []int{}, "b": []int{1}, "c": map[string]int{}}, eng.NewPrettyFormatter(""))
	want := "{\n  \"a\": [],\n  \"b\": [\n    1\n  ],\n  \"c\": {}\n}"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestSerialize_RejectsNaN(t *testing.T) {
	var buf bytes.Buffer
	err := eng.ValueOf(reflect.ValueOf(struct{ F float64 }{F: nan()})).Serialize(eng.NewSerializer(eng.NewTextWriter(&buf, nil)))
	if err == nil {
		t.Fatalf("expected error for NaN")
	}
}

func nan() float64 {
	var zero float64
	return zero / zero
}

func TestTextWriter_TokenOutOfPlace(t *testing.T) {
	var buf bytes.Buffer
	tw := eng.NewTextWriter(&buf, nil)
	if err := tw.Key("k"); err == nil {
		t.Fatalf("expected error for key outside object")
	}
	if err := tw.BeginObject(); err != nil {
		t.Fatal(err)
	}
	if err := tw.String("v"); err == nil {
		t.Fatalf("expected error for value without key")
	}
}

func TestDeserialize_Struct(t *testing.T) {
	in := `{"name":"n","tags":["a","b"],"pair":[3,4],"inner":{"n":2e3},"attrs":{"k":1},"raw":[1,2],"Flag":true,"extra":[{}]}`
	var s sample
	if err := decode(t, in, &s, eng.DecodeOptions{}); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.Name != "n" || len(s.Tags) != 2 || s.Pair != [2]int{3, 4} || s.Inner == nil || s.Inner.N != "2e3" ||
		s.Attrs["k"] != 1 || !bytes.Equal(s.Raw, []byte{1, 2}) || !s.Flag {
		t.Fatalf("unexpected value: %+v", s)
	}
}

func TestDeserialize_Errors(t *testing.T) {
	var s sample
	var te *eng.TypeError
	if err := decode(t, `{"name":1}`, &s, eng.DecodeOptions{}); !errors.As(err, &te) || !errors.Is(err, eng.ErrTypeMismatch) {
		t.Fatalf("expected TypeError, got %v", err)
	}
	if err := decode(t, `{"pair":[1]}`, &s, eng.DecodeOptions{}); err == nil {
		t.Fatalf("expected error for short array")
	}
	var ue *eng.UnknownFieldError
	if err := decode(t, `{"nope":1}`, &s, eng.DecodeOptions{DisallowUnknownFields: true}); !errors.As(err, &ue) {
		t.Fatalf("expected UnknownFieldError, got %v", err)
	}
	var ne *eng.NumberError
	var small struct{ B int8 }
	if err := decode(t, `{"B":300}`, &small, eng.DecodeOptions{}); !errors.As(err, &ne) {
		t.Fatalf("expected NumberError, got %v", err)
	}
	if err := decode(t, `[1] 2`, &s.Tags, eng.DecodeOptions{}); err == nil {
		t.Fatalf("expected error for trailing value")
	}
}

func TestDeserialize_Any(t *testing.T) {
	var v any
	if err := decode(t, `{"a":[1,"x",null,true]}`, &v, eng.DecodeOptions{}); err != nil {
		t.Fatalf("decode: %v", err)
	}
	arr := v.(map[string]any)["a"].([]any)
	if arr[0] != json.Number("1") || arr[1] != "x" || arr[2] != nil || arr[3] != true {
		t.Fatalf("unexpected value: %#v", v)
	}
	if err := decode(t, `1`, &v, eng.DecodeOptions{Float64Numbers: true}); err != nil || v != float64(1) {
		t.Fatalf("float64 mode: %#v %v", v, err)
	}
}

func TestDeserialize_NilTargetsBecomeEmpty(t *testing.T) {
	var b []byte
	if err := decode(t, `[]`, &b, eng.DecodeOptions{}); err != nil || b == nil {
		t.Fatalf("want empty non-nil slice, got %#v %v", b, err)
	}
	var p *inner
	if err := decode(t, `null`, &p, eng.DecodeOptions{}); err != nil || p != nil {
		t.Fatalf("null should leave pointer nil: %v %v", p, err)
	}
}

func TestEnforcement(t *testing.T) {
	var sunk []eng.SimpleIssue
	src := eng.WrapWithEnforcement(jsonsrc.NewBytes([]byte(`{"a":{"x":1,"x":2},"b":[[[]]]}`)), eng.EnforceOptions{
		OnDuplicate: eng.DupWarn,
		IssueSink:   func(si eng.SimpleIssue) { sunk = append(sunk, si) },
	})
	d := eng.NewDeserializer(src)
	if err := d.DeserializeIgnored(); err != nil {
		t.Fatalf("warn mode: %v", err)
	}
	if len(sunk) != 1 || sunk[0].Code != eng.CodeDuplicateKey || sunk[0].Path != "/a/x" {
		t.Fatalf("unexpected issues: %+v", sunk)
	}

	src = eng.WrapWithEnforcement(jsonsrc.NewBytes([]byte(`{"b":[[[]]]}`)), eng.EnforceOptions{MaxDepth: 3})
	err := eng.NewDeserializer(src).DeserializeIgnored()
	var ie eng.IssueError
	if !errors.As(err, &ie) || ie.Code != eng.CodeTooDeep || ie.Path != "/b/0/0" {
		t.Fatalf("expected too_deep at /b/0/0, got %v (%+v)", err, ie)
	}
}

func TestJoinPointer(t *testing.T) {
	p := eng.JoinPointer(eng.JoinPointer("", "a/b"), "c~d")
	if p != "/a~1b/c~0d" {
		t.Fatalf("got %s", p)
	}
	if eng.JoinPointer("", strings.Repeat("x", 1)) != "/x" {
		t.Fatalf("unexpected join")
	}
}
