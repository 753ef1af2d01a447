package der

import (
	"reflect"

	"github.com/ansel1/merry"
)

// Unmarshal decodes data, which must hold exactly one element, into the
// value pointed to by v.  The mapping from Go types to ASN.1 is described in
// the package documentation.
//
// v is only modified when decoding succeeds.  TLV and Sequence values in the
// result are views into data.
func Unmarshal(data []byte, v interface{}) error {
	val, err := ValueOf(v)
	if err != nil {
		return err
	}
	return ParseSingle(data, val)
}

// UnmarshalElement reads the next element from p into the value pointed to
// by v.
func UnmarshalElement(p *Parser, v interface{}) error {
	val, err := ValueOf(v)
	if err != nil {
		return err
	}
	return p.ReadElement(val)
}

// UnmarshalOptionalElement is like UnmarshalElement, but consumes nothing
// and returns false if the next element's tag does not belong to v's type.
func UnmarshalOptionalElement(p *Parser, v interface{}) (bool, error) {
	val, err := ValueOf(v)
	if err != nil {
		return false, err
	}
	return p.ReadOptionalElement(val)
}

// Value adapts a pointer to any compilable Go value to the Unmarshaler
// interface, so it can be used with the Parser's explicit and optional
// reads.
type Value struct {
	codec codec
	v     reflect.Value
}

// ValueOf compiles the type pointed to by v.  v must be a non-nil pointer.
func ValueOf(v interface{}) (*Value, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return nil, merry.Here(ErrUnsupportedType).Appendf("non-pointer or nil passed to ValueOf: %T", v)
	}
	cd, err := codecFor(rv.Type().Elem(), valueOpts{})
	if err != nil {
		return nil, err
	}
	return &Value{codec: cd, v: rv.Elem()}, nil
}

func (v *Value) CanParse(tag Tag) bool {
	return v.codec.canParse(tag)
}

// UnmarshalDER decodes tlv into a fresh value, and stores it in the target
// only on success.
func (v *Value) UnmarshalDER(tlv TLV) error {
	fresh := reflect.New(v.v.Type()).Elem()
	if err := v.codec.decode(tlv, fresh); err != nil {
		return err
	}
	v.v.Set(fresh)
	return nil
}

type structCodec struct {
	typ    reflect.Type
	fields []fieldInfo
}

func (c *structCodec) derTag() Tag { return TagSequence }

func (c *structCodec) canParse(tag Tag) bool { return tag == TagSequence }

func (c *structCodec) decode(tlv TLV, v reflect.Value) error {
	return Parse(tlv.Data(), func(p *Parser) error {
		for i := range c.fields {
			fi := &c.fields[i]
			if err := fi.read(p, v.Field(fi.index)); err != nil {
				return AddLocation(err, fi.label)
			}
		}
		return nil
	})
}

// read decodes the field from the next element of p.  An OPTIONAL or DEFAULT
// field consumes nothing when the next element does not belong to it.
func (fi *fieldInfo) read(p *Parser, v reflect.Value) error {
	if fi.opts.optional || fi.opts.hasDefault {
		if tag, ok := p.PeekTag(); !ok || !fi.accepts(tag) {
			if fi.opts.hasDefault {
				v.Set(fi.def)
			}
			return nil
		}
	}
	tlv, err := p.ReadTLV()
	if err != nil {
		return err
	}
	if !fi.accepts(tlv.Tag()) {
		return unexpectedTag(tlv.Tag())
	}
	if err := fi.decodeElement(tlv, v); err != nil {
		return err
	}
	if fi.isDefault(v) {
		return invalidValue("a value equal to its DEFAULT must be omitted")
	}
	return nil
}

// decodeElement decodes an element whose tag the field accepts.
func (fi *fieldInfo) decodeElement(tlv TLV, v reflect.Value) error {
	if fi.mode != modeExplicit {
		return fi.codec.decode(tlv, v)
	}
	return Parse(tlv.Data(), func(p *Parser) error {
		inner, err := p.ReadTLV()
		if err != nil {
			return err
		}
		if !fi.codec.canParse(inner.Tag()) {
			return unexpectedTag(inner.Tag())
		}
		return fi.codec.decode(inner, v)
	})
}
