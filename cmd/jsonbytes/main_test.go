package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"

	"github.com/reoring/jsonbytes"
	"github.com/reoring/jsonbytes/i18n"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := run(args, strings.NewReader(stdin), &out, &errOut)
	return out.String(), errOut.String(), err
}

func TestRun_UnknownCommand(t *testing.T) {
	if _, _, err := runCLI(t, "", "bogus"); err == nil {
		t.Fatalf("expected error for unknown command")
	}
	if _, _, err := runCLI(t, ""); err == nil {
		t.Fatalf("expected error for missing command")
	}
}

func TestConvert_HexToBase64(t *testing.T) {
	out, _, err := runCLI(t, `{"data":"010203ff","name":"x"}`,
		"convert", "--from", "hex", "--to", "base64", "--path", "/data")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if out != `{"data":"AQID/w==","name":"x"}`+"\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestConvert_WildcardToPrefixedHex(t *testing.T) {
	in := `{"items":[{"blob":[1,2]},{"blob":[255]}]}`
	out, _, err := runCLI(t, in,
		"convert", "--to", "hex", "--hex-prefix", "--path", "/items/*/blob", "--driver", "go-json")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	want := `{"items":[{"blob":"0x0102"},{"blob":"0xff"}]}` + "\n"
	if out != want {
		t.Fatalf("got %q want %q", out, want)
	}
}

func TestConvert_InvalidLeafReportsPath(t *testing.T) {
	_, _, err := runCLI(t, `{"data":"0xgg"}`, "convert", "--from", "hex", "--to", "base64", "--path", "/data")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "invalid_encoding at /data") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConvert_RequiresPath(t *testing.T) {
	if _, _, err := runCLI(t, `{}`, "convert", "--to", "hex"); err == nil {
		t.Fatalf("expected error without --path")
	}
}

func TestConvert_ConfigFileAndFlagOverride(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "out.yaml")
	if err := os.WriteFile(cfgPath, []byte("bytes:\n  format: hex\n  hexPrefix: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err := runCLI(t, `[[1,2,3,255]]`, "convert", "--config", cfgPath, "--path", "/0")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if out != `["0x010203ff"]`+"\n" {
		t.Fatalf("unexpected output: %q", out)
	}

	out, _, err = runCLI(t, `[[1,2,3,255]]`, "convert", "--config", cfgPath, "--hex-prefix=false", "--path", "/0")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if out != `["010203ff"]`+"\n" {
		t.Fatalf("flag should override config, got %q", out)
	}
}

func TestConvert_ReadsFileArgument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := os.WriteFile(path, []byte(`{"k":"AQID_w=="}`), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err := runCLI(t, "", "convert", "--from", "base64url", "--to", "default", "--path", "/k", path)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if out != `{"k":[1,2,3,255]}`+"\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestConvert_BadFlags(t *testing.T) {
	cases := [][]string{
		{"convert", "--from", "octal", "--path", "/a"},
		{"convert", "--to", "octal", "--path", "/a"},
		{"convert", "--driver", "sonic", "--path", "/a"},
		{"convert", "--log-level", "loud", "--path", "/a"},
	}
	for _, args := range cases {
		if _, _, err := runCLI(t, `{"a":[1]}`, args...); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestFromCBOR_ByteStrings(t *testing.T) {
	doc := map[string]any{"data": []byte{1, 2, 3, 255}, "n": 7}
	in, err := cbor.Marshal(doc)
	if err != nil {
		t.Fatalf("cbor marshal: %v", err)
	}
	out, _, err := runCLI(t, string(in), "from-cbor", "--to", "base64url")
	if err != nil {
		t.Fatalf("from-cbor: %v", err)
	}
	if out != `{"data":"AQID_w==","n":7}`+"\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestFromCBOR_RejectsTrailingItems(t *testing.T) {
	a, _ := cbor.Marshal(1)
	b, _ := cbor.Marshal(2)
	if _, _, err := runCLI(t, string(append(a, b...)), "from-cbor"); err == nil {
		t.Fatalf("expected error for two data items")
	}
}

func TestFromCBOR_Pretty(t *testing.T) {
	in, _ := cbor.Marshal(map[string]any{"b": []byte{}})
	out, _, err := runCLI(t, string(in), "from-cbor", "--to", "hex", "--hex-prefix", "--pretty")
	if err != nil {
		t.Fatalf("from-cbor: %v", err)
	}
	if out != "{\n  \"b\": \"0x\"\n}\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestDescribe_LocalizesIssues(t *testing.T) {
	_, _, err := runCLI(t, `[[1,300]]`, "convert", "--to", "hex", "--path", "/0", "--lang", "ja")
	defer i18n.SetLanguage("en")
	if err == nil {
		t.Fatalf("expected error")
	}
	got := describe(err)
	want := "out_of_range at /0/1: " + i18n.T(jsonbytes.CodeOutOfRange, nil)
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
