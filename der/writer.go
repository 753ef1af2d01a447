package der

import (
	"bytes"
	"reflect"
	"sync"
)

var bufPool = sync.Pool{
	New: func() interface{} {
		return new(bytes.Buffer)
	},
}

// Writer appends DER elements to a buffer.  Each write appends one complete
// element; content is materialised before its header, so nothing is ever
// patched after the fact.  Lengths are always written in their minimal form.
//
// A Writer owns its buffer for the duration of a write sequence.
type Writer struct {
	buf *bytes.Buffer
}

func NewWriter(buf *bytes.Buffer) *Writer {
	return &Writer{buf: buf}
}

// Write runs f over a new Writer and returns the encoded bytes.
func Write(f func(w *Writer)) []byte {
	var buf bytes.Buffer
	f(NewWriter(&buf))
	return buf.Bytes()
}

// Bytes returns the bytes written so far.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

func (w *Writer) writeHeader(tag Tag, length int) {
	_ = w.buf.WriteByte(byte(tag))
	if length < 0x80 {
		_ = w.buf.WriteByte(byte(length))
		return
	}
	n := 0
	for l := length; l > 0; l >>= 8 {
		n++
	}
	_ = w.buf.WriteByte(0x80 | byte(n))
	for i := n - 1; i >= 0; i-- {
		_ = w.buf.WriteByte(byte(length >> (8 * i)))
	}
}

// WriteTLV writes an element with the given tag and content octets.
func (w *Writer) WriteTLV(tag Tag, content []byte) {
	w.writeHeader(tag, len(content))
	_, _ = w.buf.Write(content)
}

// WriteRaw appends bytes which already form complete DER elements.
func (w *Writer) WriteRaw(b []byte) {
	_, _ = w.buf.Write(b)
}

// WriteTagged writes an element with the given tag, whose content octets are
// produced by f.
func (w *Writer) WriteTagged(tag Tag, f func(buf *bytes.Buffer)) {
	tmp := bufPool.Get().(*bytes.Buffer)
	tmp.Reset()
	f(tmp)
	w.WriteTLV(tag, tmp.Bytes())
	bufPool.Put(tmp)
}

// WriteConstructed writes an element with the given tag, whose content is
// the elements written by f.
func (w *Writer) WriteConstructed(tag Tag, f func(w *Writer)) {
	w.WriteTagged(tag, func(buf *bytes.Buffer) {
		f(NewWriter(buf))
	})
}

// WriteSequence writes a SEQUENCE whose elements are written by f.
func (w *Writer) WriteSequence(f func(w *Writer)) {
	w.WriteConstructed(TagSequence, f)
}

// WriteElement writes v with its own tag.
func (w *Writer) WriteElement(v Marshaler) {
	v.MarshalDER(w)
}

// absent reports whether v is nil, or holds a nil pointer.
func absent(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}

// WriteOptionalElement writes v, or nothing when v is nil or a nil pointer.
func (w *Writer) WriteOptionalElement(v Marshaler) {
	if absent(v) {
		return
	}
	w.WriteElement(v)
}

// WriteExplicitElement writes v wrapped in an element tagged ExplicitTag(n).
func (w *Writer) WriteExplicitElement(v Marshaler, n uint8) {
	w.WriteConstructed(ExplicitTag(n), v.MarshalDER)
}

// WriteOptionalExplicitElement is the OPTIONAL form of WriteExplicitElement.
func (w *Writer) WriteOptionalExplicitElement(v Marshaler, n uint8) {
	if absent(v) {
		return
	}
	w.WriteExplicitElement(v, n)
}

// WriteImplicitElement writes the content of v under ImplicitTag(n, v.DERTag()).
func (w *Writer) WriteImplicitElement(v SimpleMarshaler, n uint8) {
	w.WriteTagged(ImplicitTag(n, v.DERTag()), v.MarshalDERContent)
}

// WriteOptionalImplicitElement is the OPTIONAL form of WriteImplicitElement.
func (w *Writer) WriteOptionalImplicitElement(v SimpleMarshaler, n uint8) {
	if absent(v) {
		return
	}
	w.WriteImplicitElement(v, n)
}

// writeSimple writes v under its own tag; catalog types use it to implement
// MarshalDER.
func (w *Writer) writeSimple(v SimpleMarshaler) {
	w.WriteTagged(v.DERTag(), v.MarshalDERContent)
}
