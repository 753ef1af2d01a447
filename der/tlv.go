package der

import (
	"bytes"
)

// Unmarshaler is implemented by types which can be read from exactly one
// DER element.  CanParse reports whether an element with the given tag is
// acceptable; UnmarshalDER is only called with elements which passed
// CanParse (or, for implicitly tagged values, whose tag was replaced).
type Unmarshaler interface {
	CanParse(tag Tag) bool
	UnmarshalDER(tlv TLV) error
}

// SimpleUnmarshaler is an Unmarshaler with a single, fixed tag.  Only simple
// types can be implicitly tagged: their content is decoded the same way
// whatever tag the element carries.
type SimpleUnmarshaler interface {
	Unmarshaler
	DERTag() Tag
}

// Marshaler is implemented by types which can write themselves as exactly
// one DER element.
type Marshaler interface {
	MarshalDER(w *Writer)
}

// SimpleMarshaler is a Marshaler with a single, fixed tag, able to write its
// content octets without the header.
type SimpleMarshaler interface {
	Marshaler
	DERTag() Tag
	MarshalDERContent(buf *bytes.Buffer)
}

// TLV is one parsed element.  It does not copy: Data and FullData are slices
// of the buffer the element was parsed from.
//
// TLV also stands for ASN.1 ANY: it accepts every tag, and writes its full
// encoding back verbatim.  The zero TLV is empty and writes nothing.
type TLV struct {
	tag  Tag
	data []byte
	full []byte
}

// Tag returns the tag of the element.
func (t TLV) Tag() Tag {
	return t.tag
}

// Data returns the content octets.
func (t TLV) Data() []byte {
	return t.data
}

// FullData returns the complete encoding, header included.
func (t TLV) FullData() []byte {
	return t.full
}

// Len returns the length of the content octets.
func (t TLV) Len() int {
	return len(t.data)
}

// Empty reports whether t is the zero TLV.
func (t TLV) Empty() bool {
	return t.full == nil
}

// Parse decodes the element into v, checking its tag.
func (t TLV) Parse(v Unmarshaler) error {
	if !v.CanParse(t.tag) {
		return unexpectedTag(t.tag)
	}
	return v.UnmarshalDER(t)
}

// Children parses the content of a constructed element into its elements.
func (t TLV) Children() ([]TLV, error) {
	var children []TLV
	p := NewParser(t.data)
	for !p.Empty() {
		child, err := p.ReadTLV()
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

func (t TLV) CanParse(Tag) bool {
	return true
}

func (t *TLV) UnmarshalDER(tlv TLV) error {
	*t = tlv
	return nil
}

func (t TLV) MarshalDER(w *Writer) {
	w.WriteRaw(t.full)
}

func (t TLV) Equal(o TLV) bool {
	return bytes.Equal(t.full, o.full)
}

// NewTLV builds an element from its tag and content octets.
func NewTLV(tag Tag, content []byte) TLV {
	full := Write(func(w *Writer) {
		w.WriteTLV(tag, content)
	})
	return TLV{tag: tag, data: full[len(full)-len(content):], full: full}
}
