package jsonbytes

import (
	"strconv"

	"github.com/reoring/jsonbytes/codec"
	eng "github.com/reoring/jsonbytes/internal/engine"
)

// decodeBytes reads one byte sequence in the configured format from d and
// hands the result to v.VisitBytes.
func decodeBytes(d eng.Deserializer, st *decodeState, v eng.Visitor) error {
	switch st.cfg.bytesFormat {
	case BytesHex:
		return d.DeserializeString(textBytesVisitor{eng.BaseVisitor{Want: "hex string"}, v, codec.DecodeHex})
	case BytesBase64:
		return d.DeserializeString(textBytesVisitor{eng.BaseVisitor{Want: "base64 string"}, v, func(s string) ([]byte, error) {
			return codec.DecodeBase64(s, false)
		}})
	case BytesBase64URLSafe:
		return d.DeserializeString(textBytesVisitor{eng.BaseVisitor{Want: "base64url string"}, v, func(s string) ([]byte, error) {
			return codec.DecodeBase64(s, true)
		}})
	}
	return d.DeserializeSeq(&rawBytesVisitor{BaseVisitor: eng.BaseVisitor{Want: "array of bytes"}, out: v, st: st})
}

type textBytesVisitor struct {
	eng.BaseVisitor
	out    eng.Visitor
	decode func(string) ([]byte, error)
}

func (t textBytesVisitor) VisitString(s string) error {
	b, err := t.decode(s)
	if err != nil {
		return err
	}
	return t.out.VisitBytes(b)
}

// rawBytesVisitor collects an array of integers 0..255. Element failures are
// located at the element.
type rawBytesVisitor struct {
	eng.BaseVisitor
	out eng.Visitor
	st  *decodeState
}

func (r *rawBytesVisitor) VisitSeq(a eng.SeqAccess) error {
	buf := make([]byte, 0)
	for i := 0; ; i++ {
		var b byte
		ok, err := a.NextElement(byteSeed{&b})
		if err != nil {
			r.st.push(strconv.Itoa(i))
			err = leafIssue(r.st.pointer(), err)
			r.st.pop()
			return err
		}
		if !ok {
			break
		}
		buf = append(buf, b)
	}
	return r.out.VisitBytes(buf)
}

type byteSeed struct{ b *byte }

func (s byteSeed) Deserialize(d eng.Deserializer) error {
	return d.DeserializeNumber(byteVisitor{eng.BaseVisitor{Want: "byte"}, s.b})
}

type byteVisitor struct {
	eng.BaseVisitor
	b *byte
}

func (v byteVisitor) VisitNumber(literal string) error {
	b, err := codec.ParseByte(literal)
	if err != nil {
		return err
	}
	*v.b = b
	return nil
}
