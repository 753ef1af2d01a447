package der

import (
	"strconv"

	"github.com/ansel1/merry"
)

// Parser reads DER elements from a byte slice, one at a time.  It never
// copies its input: every TLV it returns is a view into the slice passed to
// NewParser, which must not be modified while those views are in use.
//
// The cursor only moves forward.  A Parser is not safe for concurrent use,
// but parsers over independent (or shared, read-only) buffers need no
// coordination.
type Parser struct {
	data []byte
	pos  int
}

func NewParser(data []byte) *Parser {
	return &Parser{data: data}
}

// Parse runs f over a new Parser for data, and fails with ErrExtraData if f
// succeeds without consuming all of data.
func Parse(data []byte, f func(p *Parser) error) error {
	p := NewParser(data)
	if err := f(p); err != nil {
		return err
	}
	if !p.Empty() {
		return merry.Here(ErrExtraData).Appendf("%d trailing bytes", p.Remaining())
	}
	return nil
}

// ParseSingle reads exactly one element from data into v.
func ParseSingle(data []byte, v Unmarshaler) error {
	return Parse(data, func(p *Parser) error {
		return p.ReadElement(v)
	})
}

// Remaining returns the number of unread bytes.
func (p *Parser) Remaining() int {
	return len(p.data) - p.pos
}

// Empty reports whether all input has been consumed.
func (p *Parser) Empty() bool {
	return p.pos >= len(p.data)
}

// PeekTag returns the tag of the next element without consuming it.  ok is
// false when the parser is empty.
func (p *Parser) PeekTag() (tag Tag, ok bool) {
	if p.Empty() {
		return 0, false
	}
	return Tag(p.data[p.pos]), true
}

func (p *Parser) readByte() (byte, bool) {
	if p.Empty() {
		return 0, false
	}
	b := p.data[p.pos]
	p.pos++
	return b, true
}

func (p *Parser) readTag() (Tag, error) {
	b, ok := p.readByte()
	if !ok {
		return 0, shortData("missing tag")
	}
	tag := Tag(b)
	if tag.highForm() {
		return 0, invalidValue("high tag number form is not supported")
	}
	return tag, nil
}

// readLength reads DER length octets: the short form for lengths below 128,
// otherwise the long form with the minimal number of length octets.
func (p *Parser) readLength() (int, error) {
	b, ok := p.readByte()
	if !ok {
		return 0, shortData("missing length")
	}
	if b&0x80 == 0 {
		return int(b), nil
	}

	n := int(b & 0x7f)
	switch {
	case n == 0:
		return 0, invalidValue("indefinite length is not allowed in DER")
	case n == 0x7f:
		return 0, invalidValue("reserved length octet 0xff")
	case n > 8:
		return 0, invalidValue("length of " + strconv.Itoa(n) + " octets is too long")
	}

	var length uint64
	for i := 0; i < n; i++ {
		b, ok := p.readByte()
		if !ok {
			return 0, shortData("truncated length")
		}
		if i == 0 && b == 0 {
			return 0, invalidValue("length is not minimally encoded: leading zero octet")
		}
		length = length<<8 | uint64(b)
	}
	if length < 0x80 {
		return 0, invalidValue("length " + strconv.FormatUint(length, 10) + " must use the short form")
	}
	if length > uint64(p.Remaining()) {
		return 0, shortData("length " + strconv.FormatUint(length, 10) + " exceeds remaining " + strconv.Itoa(p.Remaining()) + " bytes")
	}
	return int(length), nil
}

// ReadTLV reads the next element, whatever its tag.
func (p *Parser) ReadTLV() (TLV, error) {
	start := p.pos
	tag, err := p.readTag()
	if err != nil {
		return TLV{}, err
	}
	length, err := p.readLength()
	if err != nil {
		return TLV{}, err
	}
	if length > p.Remaining() {
		return TLV{}, shortData("content of " + strconv.Itoa(length) + " bytes exceeds remaining " + strconv.Itoa(p.Remaining()) + " bytes")
	}
	data := p.data[p.pos : p.pos+length : p.pos+length]
	p.pos += length
	return TLV{tag: tag, data: data, full: p.data[start:p.pos:p.pos]}, nil
}

// ReadElement reads the next element into v.  It fails with
// ErrUnexpectedTag if v cannot parse the element's tag.
func (p *Parser) ReadElement(v Unmarshaler) error {
	tlv, err := p.ReadTLV()
	if err != nil {
		return err
	}
	return tlv.Parse(v)
}

// ReadOptionalElement reads the next element into v if v can parse its tag.
// Otherwise, or when the parser is empty, it consumes nothing and returns
// false.
func (p *Parser) ReadOptionalElement(v Unmarshaler) (bool, error) {
	if tag, ok := p.PeekTag(); !ok || !v.CanParse(tag) {
		return false, nil
	}
	return true, p.ReadElement(v)
}

// ReadExplicitElement reads an element tagged ExplicitTag(n), and parses its
// content as exactly one element into v.
func (p *Parser) ReadExplicitElement(v Unmarshaler, n uint8) error {
	tlv, err := p.ReadTLV()
	if err != nil {
		return err
	}
	if tlv.tag != ExplicitTag(n) {
		return unexpectedTag(tlv.tag)
	}
	return ParseSingle(tlv.data, v)
}

// ReadOptionalExplicitElement is the OPTIONAL form of ReadExplicitElement.
func (p *Parser) ReadOptionalExplicitElement(v Unmarshaler, n uint8) (bool, error) {
	if tag, ok := p.PeekTag(); !ok || tag != ExplicitTag(n) {
		return false, nil
	}
	return true, p.ReadExplicitElement(v, n)
}

// ReadImplicitElement reads an element tagged ImplicitTag(n, v.DERTag()) and
// decodes its content as v, bypassing v's own tag.
func (p *Parser) ReadImplicitElement(v SimpleUnmarshaler, n uint8) error {
	tlv, err := p.ReadTLV()
	if err != nil {
		return err
	}
	if tlv.tag != ImplicitTag(n, v.DERTag()) {
		return unexpectedTag(tlv.tag)
	}
	return v.UnmarshalDER(tlv)
}

// ReadOptionalImplicitElement is the OPTIONAL form of ReadImplicitElement.
func (p *Parser) ReadOptionalImplicitElement(v SimpleUnmarshaler, n uint8) (bool, error) {
	if tag, ok := p.PeekTag(); !ok || tag != ImplicitTag(n, v.DERTag()) {
		return false, nil
	}
	return true, p.ReadImplicitElement(v, n)
}
