package jsonbytes

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"

	eng "github.com/reoring/jsonbytes/internal/engine"
)

// EncodeToWriter writes v as compact JSON to w, with byte sequences in the
// format cfg selects. Output already written stays written when encoding
// fails part way.
func EncodeToWriter(w io.Writer, v any, cfg Config, opts ...Options) error {
	return encodeText(w, v, cfg, pickOptions(opts), eng.CompactFormatter{})
}

// EncodeToWriterPretty is EncodeToWriter with indented output.
func EncodeToWriterPretty(w io.Writer, v any, cfg Config, opts ...Options) error {
	o := pickOptions(opts)
	return encodeText(w, v, cfg, o, eng.NewPrettyFormatter(o.Indent))
}

// EncodeToBytes returns v as compact JSON.
func EncodeToBytes(v any, cfg Config, opts ...Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeToWriter(&buf, v, cfg, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeToBytesPretty returns v as indented JSON.
func EncodeToBytesPretty(v any, cfg Config, opts ...Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeToWriterPretty(&buf, v, cfg, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeToString returns v as compact JSON.
func EncodeToString(v any, cfg Config, opts ...Options) (string, error) {
	b, err := EncodeToBytes(v, cfg, opts...)
	return string(b), err
}

// EncodeToStringPretty returns v as indented JSON.
func EncodeToStringPretty(v any, cfg Config, opts ...Options) (string, error) {
	b, err := EncodeToBytesPretty(v, cfg, opts...)
	return string(b), err
}

// EncodeToValue converts v into an in-memory tree. Byte sequences become
// string or array leaves exactly as they would in text output.
func EncodeToValue(v any, cfg Config, opts ...Options) (Value, error) {
	tw := &treeWriter{}
	if err := encode(eng.NewSerializer(tw), v, cfg, pickOptions(opts)); err != nil {
		return Value{}, err
	}
	return tw.root, nil
}

func encodeText(w io.Writer, v any, cfg Config, o Options, f eng.Formatter) error {
	tw := eng.NewTextWriter(w, f)
	if err := encode(eng.NewSerializer(tw), v, cfg, o); err != nil {
		return err
	}
	return tw.Flush()
}

func encode(inner eng.Serializer, v any, cfg Config, o Options) error {
	st := &encodeState{cfg: cfg, maxDepth: o.maxDepth()}
	return eng.ValueOf(reflect.ValueOf(v)).Serialize(newSerializer(inner, st))
}

// DecodeFromBytes decodes the JSON document in data into target, which must
// be a non-nil pointer. Anything but whitespace after the document fails
// with ErrTrailingData.
func DecodeFromBytes(data []byte, target any, cfg Config, opts ...Options) error {
	o := pickOptions(opts)
	if o.MaxBytes > 0 && int64(len(data)) > o.MaxBytes {
		return singleIssue(CodeTruncated, "max bytes exceeded")
	}
	return decode(o.driver().NewBytes(data), target, cfg, o)
}

// DecodeFromString is DecodeFromBytes for string input.
func DecodeFromString(s string, target any, cfg Config, opts ...Options) error {
	return DecodeFromBytes([]byte(s), target, cfg, opts...)
}

// DecodeFromReader decodes one JSON document read from r. The reader must
// hold nothing else: it is read to the end to check for trailing data.
func DecodeFromReader(r io.Reader, target any, cfg Config, opts ...Options) error {
	o := pickOptions(opts)
	if o.MaxBytes > 0 {
		lr := io.LimitReader(r, o.MaxBytes+1)
		data, err := io.ReadAll(lr)
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		if int64(len(data)) > o.MaxBytes {
			return singleIssue(CodeTruncated, "max bytes exceeded")
		}
		return decode(o.driver().NewBytes(data), target, cfg, o)
	}
	return decode(o.driver().NewReader(r), target, cfg, o)
}

// DecodeFromValue decodes an in-memory tree into target. Byte leaves are
// expected in the format cfg selects.
func DecodeFromValue(tree Value, target any, cfg Config, opts ...Options) error {
	return decode(newValueSource(tree), target, cfg, pickOptions(opts))
}

var errTarget = errors.New("jsonbytes: decode target must be a non-nil pointer")

func decode(src Source, target any, cfg Config, o Options) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w, got %T", errTarget, target)
	}
	inner := eng.NewDeserializer(enforce(src, o))
	st := &decodeState{cfg: cfg, maxDepth: o.maxDepth()}
	if err := eng.Deserialize(newDeserializer(inner, st), rv.Elem(), o.decodeOptions()); err != nil {
		return fromEngine(err)
	}
	if err := inner.End(); err != nil {
		var ie eng.IssueError
		if errors.As(err, &ie) {
			return Issues{toIssue(ie.SimpleIssue)}
		}
		return Issues{{Path: "/", Code: CodeTrailingData, Message: "unexpected data after top-level value", Cause: err, Offset: src.Location()}}
	}
	return nil
}

func singleIssue(code, msg string) Issues {
	return Issues{{Path: "/", Code: code, Message: msg, Offset: -1}}
}
