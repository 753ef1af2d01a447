package der

import (
	"bytes"
	"reflect"

	"github.com/ansel1/merry"
)

// Marshal returns the DER encoding of v.  v may be a value or a pointer; the
// mapping from Go types to ASN.1 is described in the package documentation.
func Marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := MarshalElement(NewWriter(&buf), v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalElement writes v to w as one element.  Nothing is written if
// encoding fails.
func MarshalElement(w *Writer, v interface{}) error {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return merry.Here(ErrUnsupportedType).Append("cannot marshal nil")
	}
	cd, err := codecFor(rv.Type(), valueOpts{})
	if err != nil {
		return err
	}
	tmp := bufPool.Get().(*bytes.Buffer)
	defer bufPool.Put(tmp)
	tmp.Reset()
	if err := cd.encode(NewWriter(tmp), rv); err != nil {
		return err
	}
	w.WriteRaw(tmp.Bytes())
	return nil
}

func (c *structCodec) encode(w *Writer, v reflect.Value) error {
	return encodeSimple(c, w, v, TagSequence)
}

func (c *structCodec) encodeContent(buf *bytes.Buffer, v reflect.Value) error {
	w := NewWriter(buf)
	for i := range c.fields {
		fi := &c.fields[i]
		if err := fi.write(w, v.Field(fi.index)); err != nil {
			return AddLocation(err, fi.label)
		}
	}
	return nil
}

// write encodes the field.  Absent OPTIONAL fields, and DEFAULT fields equal
// to their default, write nothing.
func (fi *fieldInfo) write(w *Writer, v reflect.Value) error {
	if fi.opts.optional && v.IsNil() {
		return nil
	}
	if fi.isDefault(v) {
		return nil
	}
	switch fi.mode {
	case modeExplicit:
		var err error
		w.WriteConstructed(ExplicitTag(fi.opts.tagNumber), func(w *Writer) {
			err = fi.codec.encode(w, v)
		})
		return err
	case modeImplicit:
		sc := fi.codec.(simpleCodec)
		return encodeSimple(sc, w, v, ImplicitTag(fi.opts.tagNumber, sc.derTag()))
	default:
		return fi.codec.encode(w, v)
	}
}
