package codec_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/reoring/jsonbytes/codec"
)

var sample = []byte{1, 2, 3, 255}

func TestEncodeHex(t *testing.T) {
	if got := codec.EncodeHex(sample, false); got != "010203ff" {
		t.Fatalf("got %q", got)
	}
	if got := codec.EncodeHex(sample, true); got != "0x010203ff" {
		t.Fatalf("got %q", got)
	}
	if got := codec.EncodeHex(nil, true); got != "0x" {
		t.Fatalf("empty with prefix: got %q", got)
	}
	if got := codec.EncodeHex([]byte{}, false); got != "" {
		t.Fatalf("empty: got %q", got)
	}
}

func TestDecodeHex(t *testing.T) {
	for _, in := range []string{"010203ff", "0x010203ff", "0X010203FF", "010203FF"} {
		got, err := codec.DecodeHex(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if !bytes.Equal(got, sample) {
			t.Fatalf("%q: got %v", in, got)
		}
	}
	for _, in := range []string{"", "0x"} {
		got, err := codec.DecodeHex(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("%q: want empty non-nil, got %#v", in, got)
		}
	}
}

func TestDecodeHex_Invalid(t *testing.T) {
	for _, in := range []string{"0xgg", "abc", "0x0", "zz", "0x 01"} {
		_, err := codec.DecodeHex(in)
		if !errors.Is(err, codec.ErrInvalidEncoding) {
			t.Fatalf("%q: want ErrInvalidEncoding, got %v", in, err)
		}
	}
}

func TestBase64(t *testing.T) {
	if got := codec.EncodeBase64(sample, false); got != "AQID/w==" {
		t.Fatalf("std: got %q", got)
	}
	if got := codec.EncodeBase64(sample, true); got != "AQID_w==" {
		t.Fatalf("url: got %q", got)
	}
	if got := codec.EncodeBase64([]byte{0xfb, 0xff}, true); got != "-_8=" {
		t.Fatalf("url alphabet: got %q", got)
	}
	for _, tc := range []struct {
		in      string
		urlSafe bool
	}{{"AQID/w==", false}, {"AQID_w==", true}} {
		got, err := codec.DecodeBase64(tc.in, tc.urlSafe)
		if err != nil {
			t.Fatalf("%q: %v", tc.in, err)
		}
		if !bytes.Equal(got, sample) {
			t.Fatalf("%q: got %v", tc.in, got)
		}
	}
}

func TestDecodeBase64_Invalid(t *testing.T) {
	cases := []struct {
		in      string
		urlSafe bool
	}{
		{"AQID_w==", false}, // url alphabet in standard mode
		{"AQID/w==", true},  // standard alphabet in url mode
		{"AQID/w", false},   // missing padding
		{"AQID\n/w==", false},
		{"AQID/w==\r\n", false},
		{"A", false},
		{"AQ=", false},
	}
	for _, tc := range cases {
		_, err := codec.DecodeBase64(tc.in, tc.urlSafe)
		if !errors.Is(err, codec.ErrInvalidEncoding) {
			t.Fatalf("%q (url=%v): want ErrInvalidEncoding, got %v", tc.in, tc.urlSafe, err)
		}
	}
}

func TestParseByte(t *testing.T) {
	for lit, want := range map[string]byte{"0": 0, "1": 1, "255": 255} {
		got, err := codec.ParseByte(lit)
		if err != nil || got != want {
			t.Fatalf("%s: got %d, %v", lit, got, err)
		}
	}
	for _, lit := range []string{"256", "300", "-1", "1.5", "1e2", "1.0"} {
		_, err := codec.ParseByte(lit)
		if !errors.Is(err, codec.ErrOutOfRange) {
			t.Fatalf("%s: want ErrOutOfRange, got %v", lit, err)
		}
	}
}
