package der

import (
	"bytes"
	"math"
	"math/big"
	"reflect"
	"sort"
	"strconv"
	"time"

	"github.com/ansel1/merry"
)

// addressable returns a pointer to v, copying v if it is not addressable.
func addressable(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v.Addr()
	}
	p := reflect.New(v.Type())
	p.Elem().Set(v)
	return p
}

// marshalerCodec delegates to a type's own Unmarshaler and Marshaler
// implementations.
type marshalerCodec struct {
	typ   reflect.Type
	proto Unmarshaler
}

func (c *marshalerCodec) canParse(tag Tag) bool {
	return c.proto != nil && c.proto.CanParse(tag)
}

func (c *marshalerCodec) decode(tlv TLV, v reflect.Value) error {
	u, ok := v.Addr().Interface().(Unmarshaler)
	if !ok {
		return merry.Here(ErrUnsupportedType).Appendf("%s does not implement Unmarshaler", c.typ)
	}
	return u.UnmarshalDER(tlv)
}

func (c *marshalerCodec) marshaler(v reflect.Value) (Marshaler, error) {
	// the pointer method set covers both receiver kinds
	if m, ok := addressable(v).Interface().(Marshaler); ok {
		return m, nil
	}
	return nil, merry.Here(ErrUnsupportedType).Appendf("%s does not implement Marshaler", c.typ)
}

func (c *marshalerCodec) encode(w *Writer, v reflect.Value) error {
	m, err := c.marshaler(v)
	if err != nil {
		return err
	}
	if err := checkValue(m); err != nil {
		return err
	}
	m.MarshalDER(w)
	return nil
}

// checker is implemented by catalog types whose Go values include states
// with no DER encoding.
type checker interface {
	checkDER() error
}

func checkValue(v interface{}) error {
	if c, ok := v.(checker); ok {
		return c.checkDER()
	}
	return nil
}

type simpleMarshalerCodec struct {
	*marshalerCodec
	tag Tag
}

func (c *simpleMarshalerCodec) derTag() Tag {
	return c.tag
}

func (c *simpleMarshalerCodec) encodeContent(buf *bytes.Buffer, v reflect.Value) error {
	m := addressable(v).Interface().(SimpleMarshaler)
	if err := checkValue(m); err != nil {
		return err
	}
	m.MarshalDERContent(buf)
	return nil
}

type boolCodec struct{}

func (boolCodec) derTag() Tag { return TagBoolean }

func (boolCodec) canParse(tag Tag) bool { return tag == TagBoolean }

func (boolCodec) decode(tlv TLV, v reflect.Value) error {
	var b Boolean
	if err := b.UnmarshalDER(tlv); err != nil {
		return err
	}
	v.SetBool(bool(b))
	return nil
}

func (c boolCodec) encode(w *Writer, v reflect.Value) error {
	return encodeSimple(c, w, v, TagBoolean)
}

func (boolCodec) encodeContent(buf *bytes.Buffer, v reflect.Value) error {
	Boolean(v.Bool()).MarshalDERContent(buf)
	return nil
}

type intCodec struct{}

func (intCodec) derTag() Tag { return TagInteger }

func (intCodec) canParse(tag Tag) bool { return tag == TagInteger }

func (intCodec) decode(tlv TLV, v reflect.Value) error {
	n, err := parseInt64(tlv.Data())
	if err != nil {
		return err
	}
	if v.OverflowInt(n) {
		return invalidValue("INTEGER overflows " + v.Type().String())
	}
	v.SetInt(n)
	return nil
}

func (c intCodec) encode(w *Writer, v reflect.Value) error {
	return encodeSimple(c, w, v, TagInteger)
}

func (intCodec) encodeContent(buf *bytes.Buffer, v reflect.Value) error {
	appendInt64(buf, v.Int())
	return nil
}

type uintCodec struct{}

func (uintCodec) derTag() Tag { return TagInteger }

func (uintCodec) canParse(tag Tag) bool { return tag == TagInteger }

func (uintCodec) decode(tlv TLV, v reflect.Value) error {
	n, err := parseBigInt(tlv.Data())
	if err != nil {
		return err
	}
	if n.Sign() < 0 || !n.IsUint64() || v.OverflowUint(n.Uint64()) {
		return invalidValue("INTEGER " + n.String() + " overflows " + v.Type().String())
	}
	v.SetUint(n.Uint64())
	return nil
}

func (c uintCodec) encode(w *Writer, v reflect.Value) error {
	return encodeSimple(c, w, v, TagInteger)
}

func (uintCodec) encodeContent(buf *bytes.Buffer, v reflect.Value) error {
	u := v.Uint()
	if u <= math.MaxInt64 {
		appendInt64(buf, int64(u))
		return nil
	}
	appendBigInt(buf, new(big.Int).SetUint64(u))
	return nil
}

type bigIntCodec struct{}

func (bigIntCodec) derTag() Tag { return TagInteger }

func (bigIntCodec) canParse(tag Tag) bool { return tag == TagInteger }

func (bigIntCodec) decode(tlv TLV, v reflect.Value) error {
	n, err := parseBigInt(tlv.Data())
	if err != nil {
		return err
	}
	v.Addr().Interface().(*big.Int).Set(n)
	return nil
}

func (c bigIntCodec) encode(w *Writer, v reflect.Value) error {
	return encodeSimple(c, w, v, TagInteger)
}

func (bigIntCodec) encodeContent(buf *bytes.Buffer, v reflect.Value) error {
	appendBigInt(buf, addressable(v).Interface().(*big.Int))
	return nil
}

type bytesCodec struct{}

func (bytesCodec) derTag() Tag { return TagOctetString }

func (bytesCodec) canParse(tag Tag) bool { return tag == TagOctetString }

func (bytesCodec) decode(tlv TLV, v reflect.Value) error {
	v.SetBytes(append([]byte{}, tlv.Data()...))
	return nil
}

func (c bytesCodec) encode(w *Writer, v reflect.Value) error {
	return encodeSimple(c, w, v, TagOctetString)
}

func (bytesCodec) encodeContent(buf *bytes.Buffer, v reflect.Value) error {
	_, _ = buf.Write(v.Bytes())
	return nil
}

type stringCodec struct {
	tag Tag
}

func (c stringCodec) derTag() Tag { return c.tag }

func (c stringCodec) canParse(tag Tag) bool { return tag == c.tag }

func (c stringCodec) decode(tlv TLV, v reflect.Value) error {
	var err error
	var s string
	switch c.tag {
	case TagPrintableString:
		var ps PrintableString
		err = ps.UnmarshalDER(tlv)
		s = string(ps)
	case TagIA5String:
		var is IA5String
		err = is.UnmarshalDER(tlv)
		s = string(is)
	default:
		var us UTF8String
		err = us.UnmarshalDER(tlv)
		s = string(us)
	}
	if err != nil {
		return err
	}
	v.SetString(s)
	return nil
}

func (c stringCodec) encode(w *Writer, v reflect.Value) error {
	return encodeSimple(c, w, v, c.tag)
}

func (c stringCodec) encodeContent(buf *bytes.Buffer, v reflect.Value) error {
	s := v.String()
	switch {
	case c.tag == TagPrintableString && !IsPrintable(s):
		return invalidValue("cannot write " + s + " as a PrintableString")
	case c.tag == TagIA5String && !IsIA5(s):
		return invalidValue("cannot write " + s + " as an IA5String")
	}
	_, _ = buf.WriteString(s)
	return nil
}

type timeCodec struct {
	tag Tag
}

func (c timeCodec) derTag() Tag { return c.tag }

func (c timeCodec) canParse(tag Tag) bool { return tag == c.tag }

func (c timeCodec) decode(tlv TLV, v reflect.Value) error {
	var t time.Time
	if c.tag == TagUTCTime {
		var ut UTCTime
		if err := ut.UnmarshalDER(tlv); err != nil {
			return err
		}
		t = ut.Time
	} else {
		var gt GeneralizedTime
		if err := gt.UnmarshalDER(tlv); err != nil {
			return err
		}
		t = gt.Time
	}
	v.Set(reflect.ValueOf(t))
	return nil
}

func (c timeCodec) encode(w *Writer, v reflect.Value) error {
	return encodeSimple(c, w, v, c.tag)
}

func (c timeCodec) encodeContent(buf *bytes.Buffer, v reflect.Value) error {
	t := v.Interface().(time.Time)
	if c.tag == TagUTCTime {
		if !UTCTimeRepresentable(t) {
			return invalidValue("cannot write " + t.String() + " as a UTCTime")
		}
		UTCTime{t}.MarshalDERContent(buf)
		return nil
	}
	GeneralizedTime{t}.MarshalDERContent(buf)
	return nil
}

// anyTimeCodec reads either time type, and writes a UTCTime when the year
// allows it, a GeneralizedTime otherwise.
type anyTimeCodec struct{}

func (anyTimeCodec) canParse(tag Tag) bool {
	return tag == TagUTCTime || tag == TagGeneralizedTime
}

func (anyTimeCodec) decode(tlv TLV, v reflect.Value) error {
	return timeCodec{tag: tlv.Tag()}.decode(tlv, v)
}

func (anyTimeCodec) encode(w *Writer, v reflect.Value) error {
	if UTCTimeRepresentable(v.Interface().(time.Time)) {
		return timeCodec{tag: TagUTCTime}.encode(w, v)
	}
	return timeCodec{tag: TagGeneralizedTime}.encode(w, v)
}

type ptrCodec struct {
	elem codec
}

func (c ptrCodec) canParse(tag Tag) bool {
	return c.elem.canParse(tag)
}

func (c ptrCodec) decode(tlv TLV, v reflect.Value) error {
	p := reflect.New(v.Type().Elem())
	if err := c.elem.decode(tlv, p.Elem()); err != nil {
		return err
	}
	v.Set(p)
	return nil
}

func (c ptrCodec) encode(w *Writer, v reflect.Value) error {
	if v.IsNil() {
		return invalidValue("cannot write a nil " + v.Type().String())
	}
	return c.elem.encode(w, v.Elem())
}

type simplePtrCodec struct {
	ptrCodec
	sc simpleCodec
}

func (c simplePtrCodec) derTag() Tag {
	return c.sc.derTag()
}

func (c simplePtrCodec) encodeContent(buf *bytes.Buffer, v reflect.Value) error {
	if v.IsNil() {
		return invalidValue("cannot write a nil " + v.Type().String())
	}
	return c.sc.encodeContent(buf, v.Elem())
}

// indexLabel is the location label of the i-th element of a SEQUENCE OF or
// SET OF.
func indexLabel(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}

// sliceCodec maps slices to SEQUENCE OF, or SET OF.
type sliceCodec struct {
	typ  reflect.Type
	tag  Tag
	elem codec
}

func (c *sliceCodec) derTag() Tag { return c.tag }

func (c *sliceCodec) canParse(tag Tag) bool { return tag == c.tag }

func (c *sliceCodec) decode(tlv TLV, v reflect.Value) error {
	s := reflect.MakeSlice(c.typ, 0, 0)
	var prev []byte
	err := Parse(tlv.Data(), func(p *Parser) error {
		for i := 0; !p.Empty(); i++ {
			elem, err := p.ReadTLV()
			if err != nil {
				return err
			}
			if !c.elem.canParse(elem.Tag()) {
				return unexpectedTag(elem.Tag())
			}
			if c.tag == TagSet && prev != nil && compareSetElements(prev, elem.FullData()) > 0 {
				return invalidValue("SET OF elements are not in DER order")
			}
			prev = elem.FullData()
			s = reflect.Append(s, reflect.Zero(c.typ.Elem()))
			if err := c.elem.decode(elem, s.Index(i)); err != nil {
				return AddLocation(err, indexLabel(i))
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	v.Set(s)
	return nil
}

func (c *sliceCodec) encode(w *Writer, v reflect.Value) error {
	return encodeSimple(c, w, v, c.tag)
}

func (c *sliceCodec) encodeContent(buf *bytes.Buffer, v reflect.Value) error {
	if c.tag != TagSet {
		w := NewWriter(buf)
		for i := 0; i < v.Len(); i++ {
			if err := c.elem.encode(w, v.Index(i)); err != nil {
				return AddLocation(err, indexLabel(i))
			}
		}
		return nil
	}
	elems := make([][]byte, v.Len())
	for i := range elems {
		var eb bytes.Buffer
		if err := c.elem.encode(NewWriter(&eb), v.Index(i)); err != nil {
			return AddLocation(err, indexLabel(i))
		}
		elems[i] = eb.Bytes()
	}
	sort.SliceStable(elems, func(i, j int) bool {
		return compareSetElements(elems[i], elems[j]) < 0
	})
	for _, e := range elems {
		_, _ = buf.Write(e)
	}
	return nil
}

// compareSetElements orders encodings the way DER sorts SET OF components:
// as octet strings, the shorter one padded with trailing zero octets.
func compareSetElements(a, b []byte) int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		var x, y byte
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
	}
	return 0
}
