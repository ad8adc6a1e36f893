package jsonbytes_test

import (
	"errors"
	"testing"

	jsonbytes "github.com/reoring/jsonbytes"
)

func TestTranscode_WildcardPaths(t *testing.T) {
	var tree jsonbytes.Value
	in := `{"items":[{"blob":"AQI=","n":1},{"blob":"/w=="}],"keep":"AQI="}`
	if err := jsonbytes.DecodeFromString(in, &tree, jsonbytes.DefaultConfig()); err != nil {
		t.Fatalf("decode tree: %v", err)
	}
	from := jsonbytes.DefaultConfig().WithBytesBase64()
	to := jsonbytes.DefaultConfig().WithBytesHex().EnableHexPrefix()
	out, n, err := jsonbytes.Transcode(tree, []string{"/items/*/blob"}, from, to)
	if err != nil {
		t.Fatalf("transcode: %v", err)
	}
	if n != 2 {
		t.Fatalf("want 2 leaves, got %d", n)
	}
	got, _ := jsonbytes.EncodeToString(out, jsonbytes.DefaultConfig())
	want := `{"items":[{"blob":"0x0102","n":1},{"blob":"0xff"}],"keep":"AQI="}`
	if got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}
	orig, _ := jsonbytes.EncodeToString(tree, jsonbytes.DefaultConfig())
	if orig != in {
		t.Fatalf("input tree was modified: %s", orig)
	}
}

func TestTranscode_RootAndMissing(t *testing.T) {
	root := jsonbytes.Array(jsonbytes.Int(1), jsonbytes.Int(255))
	out, n, err := jsonbytes.Transcode(root, []string{""}, jsonbytes.DefaultConfig(), jsonbytes.DefaultConfig().WithBytesBase64())
	if err != nil || n != 1 {
		t.Fatalf("transcode root: n=%d err=%v", n, err)
	}
	if out.Kind() != jsonbytes.KindString || out.Text() != "Af8=" {
		t.Fatalf("unexpected root: %v %q", out.Kind(), out.Text())
	}
	_, n, err = jsonbytes.Transcode(root, []string{"/nope/x"}, jsonbytes.DefaultConfig(), jsonbytes.DefaultConfig())
	if err != nil || n != 0 {
		t.Fatalf("missing path: n=%d err=%v", n, err)
	}
	if _, _, err := jsonbytes.Transcode(root, []string{"nope"}, jsonbytes.DefaultConfig(), jsonbytes.DefaultConfig()); err == nil {
		t.Fatalf("expected error for relative path")
	}
}

func TestTranscode_ErrorIsLocated(t *testing.T) {
	tree := jsonbytes.Object(
		jsonbytes.Member{Key: "a/b", Value: jsonbytes.Array(jsonbytes.Int(1), jsonbytes.Int(300))},
	)
	_, _, err := jsonbytes.Transcode(tree, []string{"/a~1b"}, jsonbytes.DefaultConfig(), jsonbytes.DefaultConfig().WithBytesHex())
	if !errors.Is(err, jsonbytes.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got: %v", err)
	}
	if it := firstIssue(t, err); it.Path != "/a~1b/1" {
		t.Fatalf("want /a~1b/1, got %s", it.Path)
	}
}
