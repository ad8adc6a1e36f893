package benchmarks_test

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/reoring/jsonbytes"
)

type blobItem struct {
	ID   string `json:"id"`
	Blob []byte `json:"blob"`
	N    int    `json:"n"`
}

func makeItems(n, size int) []blobItem {
	items := make([]blobItem, n)
	for i := range items {
		b := make([]byte, size)
		for k := range b {
			b[k] = byte(i + k)
		}
		items[i] = blobItem{ID: "obj_" + strconv.Itoa(i), Blob: b, N: i}
	}
	return items
}

var formats = []struct {
	name string
	cfg  jsonbytes.Config
}{
	{"array", jsonbytes.DefaultConfig()},
	{"hex", jsonbytes.DefaultConfig().WithBytesHex().EnableHexPrefix()},
	{"base64", jsonbytes.DefaultConfig().WithBytesBase64()},
	{"base64url", jsonbytes.DefaultConfig().WithBytesBase64URLSafe()},
}

func Benchmark_Encode_Formats(b *testing.B) {
	items := makeItems(1000, 32)
	for _, f := range formats {
		b.Run(f.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := jsonbytes.EncodeToBytes(items, f.cfg); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func Benchmark_Decode_Formats(b *testing.B) {
	items := makeItems(1000, 32)
	for _, f := range formats {
		data, err := jsonbytes.EncodeToBytes(items, f.cfg)
		if err != nil {
			b.Fatal(err)
		}
		b.Run(f.name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(data)))
			for i := 0; i < b.N; i++ {
				var out []blobItem
				if err := jsonbytes.DecodeFromBytes(data, &out, f.cfg); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func Benchmark_Decode_Reader_Hex(b *testing.B) {
	cfg := jsonbytes.DefaultConfig().WithBytesHex()
	data, err := jsonbytes.EncodeToBytes(makeItems(1000, 256), cfg)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var out []blobItem
		if err := jsonbytes.DecodeFromReader(bytes.NewReader(data), &out, cfg); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Transcode_HugeArray(b *testing.B) {
	from := jsonbytes.DefaultConfig().WithBytesBase64()
	to := jsonbytes.DefaultConfig().WithBytesHex()
	data, err := jsonbytes.EncodeToBytes(makeItems(1000, 32), from)
	if err != nil {
		b.Fatal(err)
	}
	var tree jsonbytes.Value
	if err := jsonbytes.DecodeFromBytes(data, &tree, from); err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := jsonbytes.Transcode(tree, []string{"/*/blob"}, from, to); err != nil {
			b.Fatal(err)
		}
	}
}
