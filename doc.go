// Package jsonbytes encodes Go values as JSON and decodes them back, with
// one configurable extension point: how byte sequences ([]byte and named
// types of that shape) appear on the wire.
//
// A Config selects the format for every byte sequence in a value, at any
// depth:
//
//   - BytesDefault: an array of integers 0..255
//   - BytesHex: lowercase hex, optionally prefixed with "0x"
//   - BytesBase64: padded standard base64
//   - BytesBase64URLSafe: padded base64 with the URL-safe alphabet
//
// Every other value kind is encoded the usual way. Decoding accepts the
// same forms back; hex input may carry a 0x or 0X prefix regardless of
// the Config.
//
// Design policy:
//   - Keep only public APIs in the root package; the generic tree engine
//     (walker, visitors, token writer, enforcement) lives under internal/engine.
//   - The byte codec is a decorator around the engine's serializer and
//     deserializer; it changes nothing but byte sequences.
//   - Failures at byte leaves and input limits are Issues with a JSON Pointer
//     path and a code; engine errors for other values pass through unchanged.
//
// Typical usage:
//
//	cfg := jsonbytes.DefaultConfig().WithBytesHex().EnableHexPrefix()
//	s, err := jsonbytes.EncodeToString(msg, cfg)
//	err = jsonbytes.DecodeFromString(s, &msg, cfg)
//
// Token drivers are pluggable: encoding/json is the default; go-json is
// available from source/gojson, per call with Options.Driver or process-wide
// with SetJSONDriver.
package jsonbytes
