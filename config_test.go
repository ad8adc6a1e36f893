package jsonbytes_test

import (
	"os"
	"path/filepath"
	"testing"

	jsonbytes "github.com/reoring/jsonbytes"
)

func TestConfig_DefaultsAndImmutability(t *testing.T) {
	c := jsonbytes.DefaultConfig()
	if c.BytesFormat() != jsonbytes.BytesDefault || c.HexPrefix() || c.HexChecksumCase() {
		t.Fatalf("unexpected defaults: %v", c)
	}
	h := c.WithBytesHex().EnableHexPrefix()
	if c.BytesFormat() != jsonbytes.BytesDefault || c.HexPrefix() {
		t.Fatalf("derivation modified the original: %v", c)
	}
	if h.BytesFormat() != jsonbytes.BytesHex || !h.HexPrefix() {
		t.Fatalf("unexpected derived config: %v", h)
	}
	// The prefix flag survives format switches.
	if !h.WithBytesBase64().WithBytesHex().HexPrefix() {
		t.Fatalf("hex prefix lost across format changes")
	}
	if h.DisableHexPrefix().HexPrefix() {
		t.Fatalf("DisableHexPrefix had no effect")
	}
	if !c.EnableHexChecksumCase().HexChecksumCase() || c.EnableHexChecksumCase().DisableHexChecksumCase().HexChecksumCase() {
		t.Fatalf("checksum case flag not toggled")
	}
	if got := h.String(); got != "bytes=hex hex_prefix=true hex_checksum_case=false" {
		t.Fatalf("String: %q", got)
	}
}

func TestConfig_ChecksumCaseDoesNotChangeOutput(t *testing.T) {
	cfg := jsonbytes.DefaultConfig().WithBytesHex()
	a, _ := jsonbytes.EncodeToString([]byte{0xab, 0xcd}, cfg)
	b, _ := jsonbytes.EncodeToString([]byte{0xab, 0xcd}, cfg.EnableHexChecksumCase())
	if a != b || a != `"abcd"` {
		t.Fatalf("got %s and %s", a, b)
	}
}

func TestConfig_PrefixIgnoredOutsideHex(t *testing.T) {
	got, err := jsonbytes.EncodeToString(sample, jsonbytes.DefaultConfig().WithBytesBase64().EnableHexPrefix())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got != `"AQID/w=="` {
		t.Fatalf("got %s", got)
	}
}

func TestParseBytesFormat(t *testing.T) {
	cases := map[string]jsonbytes.BytesFormat{
		"default":   jsonbytes.BytesDefault,
		"array":     jsonbytes.BytesDefault,
		"HEX":       jsonbytes.BytesHex,
		"base64":    jsonbytes.BytesBase64,
		"base64url": jsonbytes.BytesBase64URLSafe,
	}
	for in, want := range cases {
		got, err := jsonbytes.ParseBytesFormat(in)
		if err != nil || got != want {
			t.Fatalf("%q: got %v, %v", in, got, err)
		}
		back, err := jsonbytes.ParseBytesFormat(got.String())
		if err != nil || back != got {
			t.Fatalf("String of %v does not parse back", got)
		}
	}
	if _, err := jsonbytes.ParseBytesFormat("base32"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestParseConfig_YAML(t *testing.T) {
	data := []byte("bytes:\n  format: base64url\n  hexPrefix: true\nmaxDepth: 16\npretty: true\nindent: \"\\t\"\n")
	f, err := jsonbytes.ParseConfig(data, ".yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	c := f.Config()
	if c.BytesFormat() != jsonbytes.BytesBase64URLSafe || !c.HexPrefix() {
		t.Fatalf("unexpected config: %v", c)
	}
	o := f.Options()
	if o.MaxDepth != 16 || o.Indent != "\t" || !f.Pretty {
		t.Fatalf("unexpected options: %+v pretty=%v", o, f.Pretty)
	}
}

func TestParseConfig_JSONWithComments(t *testing.T) {
	data := []byte(`{
		// output format
		"bytes": {"format": "hex", "hexPrefix": true,},
		"maxDepth": 8,
	}`)
	f, err := jsonbytes.ParseConfig(data, ".jsonc")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if f.Config().BytesFormat() != jsonbytes.BytesHex || !f.Config().HexPrefix() || f.MaxDepth != 8 {
		t.Fatalf("unexpected file: %+v", f)
	}
}

func TestParseConfig_Errors(t *testing.T) {
	if _, err := jsonbytes.ParseConfig([]byte("bytes:\n  format: octal\n"), ".yml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
	if _, err := jsonbytes.ParseConfig([]byte("x = 1"), ".toml"); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	if err := os.WriteFile(path, []byte(`{"bytes":{"format":"base64"}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := jsonbytes.LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if f.Config().BytesFormat() != jsonbytes.BytesBase64 {
		t.Fatalf("unexpected format: %v", f.Config())
	}
	if _, err := jsonbytes.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
