package engine

import (
	"errors"
	"io"
	"strings"

	j "github.com/goccy/go-json"
)

// TokenWriter is the rendering side of the engine: it receives tokens in
// document order. Separators and whitespace are the writer's concern.
type TokenWriter interface {
	BeginObject() error
	EndObject() error
	BeginArray() error
	EndArray() error
	Key(k string) error
	String(s string) error
	Number(literal string) error
	Bool(v bool) error
	Null() error
}

// Formatter decides the whitespace around structural tokens. It mirrors the
// places where a pretty printer differs from compact output.
type Formatter interface {
	BeginArray(buf []byte) []byte
	EndArray(buf []byte, empty bool) []byte
	BeginArrayValue(buf []byte, first bool) []byte
	BeginObject(buf []byte) []byte
	EndObject(buf []byte, empty bool) []byte
	BeginObjectKey(buf []byte, first bool) []byte
	BeginObjectValue(buf []byte) []byte
}

// CompactFormatter emits no insignificant whitespace.
type CompactFormatter struct{}

func (CompactFormatter) BeginArray(buf []byte) []byte        { return append(buf, '[') }
func (CompactFormatter) EndArray(buf []byte, _ bool) []byte  { return append(buf, ']') }
func (CompactFormatter) BeginObject(buf []byte) []byte       { return append(buf, '{') }
func (CompactFormatter) EndObject(buf []byte, _ bool) []byte { return append(buf, '}') }
func (CompactFormatter) BeginObjectValue(buf []byte) []byte  { return append(buf, ':') }

func (CompactFormatter) BeginArrayValue(buf []byte, first bool) []byte {
	if first {
		return buf
	}
	return append(buf, ',')
}

func (CompactFormatter) BeginObjectKey(buf []byte, first bool) []byte {
	if first {
		return buf
	}
	return append(buf, ',')
}

// PrettyFormatter puts every element and member on its own line, indented
// by Indent per nesting level. Empty containers stay on one line.
type PrettyFormatter struct {
	Indent string
	level  int
}

// NewPrettyFormatter returns a formatter indenting with indent ("  " when empty).
func NewPrettyFormatter(indent string) *PrettyFormatter {
	if indent == "" {
		indent = "  "
	}
	return &PrettyFormatter{Indent: indent}
}

func (p *PrettyFormatter) newline(buf []byte) []byte {
	buf = append(buf, '\n')
	return append(buf, strings.Repeat(p.Indent, p.level)...)
}

func (p *PrettyFormatter) BeginArray(buf []byte) []byte {
	p.level++
	return append(buf, '[')
}

func (p *PrettyFormatter) EndArray(buf []byte, empty bool) []byte {
	p.level--
	if !empty {
		buf = p.newline(buf)
	}
	return append(buf, ']')
}

func (p *PrettyFormatter) BeginArrayValue(buf []byte, first bool) []byte {
	if !first {
		buf = append(buf, ',')
	}
	return p.newline(buf)
}

func (p *PrettyFormatter) BeginObject(buf []byte) []byte {
	p.level++
	return append(buf, '{')
}

func (p *PrettyFormatter) EndObject(buf []byte, empty bool) []byte {
	p.level--
	if !empty {
		buf = p.newline(buf)
	}
	return append(buf, '}')
}

func (p *PrettyFormatter) BeginObjectKey(buf []byte, first bool) []byte {
	if !first {
		buf = append(buf, ',')
	}
	return p.newline(buf)
}

func (p *PrettyFormatter) BeginObjectValue(buf []byte) []byte { return append(buf, ':', ' ') }

var errWriterState = errors.New("writer: token out of place")

const flushThreshold = 4 << 10

type writerFrame struct {
	object bool
	first  bool
	keyed  bool // object: a key was written and awaits its value
}

// TextWriter renders tokens as JSON text onto an io.Writer.
type TextWriter struct {
	w     io.Writer
	f     Formatter
	buf   []byte
	stack []writerFrame
}

// NewTextWriter returns a writer using f for whitespace (compact when nil).
func NewTextWriter(w io.Writer, f Formatter) *TextWriter {
	if f == nil {
		f = CompactFormatter{}
	}
	return &TextWriter{w: w, f: f, buf: make([]byte, 0, 128)}
}

func (t *TextWriter) beforeValue() error {
	n := len(t.stack)
	if n == 0 {
		return nil
	}
	top := &t.stack[n-1]
	if top.object {
		if !top.keyed {
			return errWriterState
		}
		top.keyed = false
		return nil
	}
	t.buf = t.f.BeginArrayValue(t.buf, top.first)
	top.first = false
	return nil
}

func (t *TextWriter) afterValue() error {
	if len(t.buf) >= flushThreshold {
		return t.Flush()
	}
	return nil
}

func (t *TextWriter) BeginObject() error {
	if err := t.beforeValue(); err != nil {
		return err
	}
	t.stack = append(t.stack, writerFrame{object: true, first: true})
	t.buf = t.f.BeginObject(t.buf)
	return nil
}

func (t *TextWriter) EndObject() error {
	n := len(t.stack)
	if n == 0 || !t.stack[n-1].object || t.stack[n-1].keyed {
		return errWriterState
	}
	empty := t.stack[n-1].first
	t.stack = t.stack[:n-1]
	t.buf = t.f.EndObject(t.buf, empty)
	return t.afterValue()
}

func (t *TextWriter) BeginArray() error {
	if err := t.beforeValue(); err != nil {
		return err
	}
	t.stack = append(t.stack, writerFrame{first: true})
	t.buf = t.f.BeginArray(t.buf)
	return nil
}

func (t *TextWriter) EndArray() error {
	n := len(t.stack)
	if n == 0 || t.stack[n-1].object {
		return errWriterState
	}
	empty := t.stack[n-1].first
	t.stack = t.stack[:n-1]
	t.buf = t.f.EndArray(t.buf, empty)
	return t.afterValue()
}

func (t *TextWriter) Key(k string) error {
	n := len(t.stack)
	if n == 0 || !t.stack[n-1].object || t.stack[n-1].keyed {
		return errWriterState
	}
	top := &t.stack[n-1]
	t.buf = t.f.BeginObjectKey(t.buf, top.first)
	top.first = false
	top.keyed = true
	q, err := quote(k)
	if err != nil {
		return err
	}
	t.buf = append(t.buf, q...)
	t.buf = t.f.BeginObjectValue(t.buf)
	return nil
}

func (t *TextWriter) String(s string) error {
	if err := t.beforeValue(); err != nil {
		return err
	}
	q, err := quote(s)
	if err != nil {
		return err
	}
	t.buf = append(t.buf, q...)
	return t.afterValue()
}

func (t *TextWriter) Number(literal string) error {
	if err := t.beforeValue(); err != nil {
		return err
	}
	t.buf = append(t.buf, literal...)
	return t.afterValue()
}

func (t *TextWriter) Bool(v bool) error {
	if err := t.beforeValue(); err != nil {
		return err
	}
	if v {
		t.buf = append(t.buf, "true"...)
	} else {
		t.buf = append(t.buf, "false"...)
	}
	return t.afterValue()
}

func (t *TextWriter) Null() error {
	if err := t.beforeValue(); err != nil {
		return err
	}
	t.buf = append(t.buf, "null"...)
	return t.afterValue()
}

// Flush writes buffered output to the underlying writer.
func (t *TextWriter) Flush() error {
	if len(t.buf) == 0 {
		return nil
	}
	_, err := t.w.Write(t.buf)
	t.buf = t.buf[:0]
	return err
}

// quote escapes s as a JSON string. HTML characters are left alone.
func quote(s string) ([]byte, error) {
	return j.MarshalWithOption(s, j.DisableHTMLEscape())
}

// formatFloat uses go-json's float rendering, which rejects NaN and ±Inf.
func formatFloat(v float64, bits int) (string, error) {
	var (
		b   []byte
		err error
	)
	if bits == 32 {
		b, err = j.Marshal(float32(v))
	} else {
		b, err = j.Marshal(v)
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}
