package der

import (
	"bytes"
	"math/big"
	"strconv"
)

// Boolean is the ASN.1 BOOLEAN type.  DER encodes TRUE as 0xff only.
type Boolean bool

func (b Boolean) DERTag() Tag { return TagBoolean }

func (b Boolean) CanParse(tag Tag) bool { return tag == TagBoolean }

func (b *Boolean) UnmarshalDER(tlv TLV) error {
	data := tlv.Data()
	if len(data) != 1 {
		return invalidValue("BOOLEAN must be one byte, got " + strconv.Itoa(len(data)))
	}
	switch data[0] {
	case 0x00:
		*b = false
	case 0xff:
		*b = true
	default:
		return invalidValue("BOOLEAN must be 0x00 or 0xff")
	}
	return nil
}

func (b Boolean) MarshalDER(w *Writer) { w.writeSimple(b) }

func (b Boolean) MarshalDERContent(buf *bytes.Buffer) {
	if b {
		_ = buf.WriteByte(0xff)
	} else {
		_ = buf.WriteByte(0x00)
	}
}

// Integer is an ASN.1 INTEGER which fits an int64.  Larger values are
// handled by big.Int fields.
type Integer int64

func (i Integer) DERTag() Tag { return TagInteger }

func (i Integer) CanParse(tag Tag) bool { return tag == TagInteger }

func (i *Integer) UnmarshalDER(tlv TLV) error {
	v, err := parseInt64(tlv.Data())
	if err != nil {
		return err
	}
	*i = Integer(v)
	return nil
}

func (i Integer) MarshalDER(w *Writer) { w.writeSimple(i) }

func (i Integer) MarshalDERContent(buf *bytes.Buffer) {
	appendInt64(buf, int64(i))
}

// Enumerated is the ASN.1 ENUMERATED type, encoded like an INTEGER.
type Enumerated int64

func (e Enumerated) DERTag() Tag { return TagEnumerated }

func (e Enumerated) CanParse(tag Tag) bool { return tag == TagEnumerated }

func (e *Enumerated) UnmarshalDER(tlv TLV) error {
	v, err := parseInt64(tlv.Data())
	if err != nil {
		return err
	}
	*e = Enumerated(v)
	return nil
}

func (e Enumerated) MarshalDER(w *Writer) { w.writeSimple(e) }

func (e Enumerated) MarshalDERContent(buf *bytes.Buffer) {
	appendInt64(buf, int64(e))
}

func checkIntegerEncoding(data []byte) error {
	if len(data) == 0 {
		return invalidValue("empty INTEGER")
	}
	if len(data) > 1 &&
		((data[0] == 0x00 && data[1]&0x80 == 0) || (data[0] == 0xff && data[1]&0x80 != 0)) {
		return invalidValue("INTEGER is not minimally encoded")
	}
	return nil
}

func parseInt64(data []byte) (int64, error) {
	if err := checkIntegerEncoding(data); err != nil {
		return 0, err
	}
	if len(data) > 8 {
		return 0, invalidValue("INTEGER too large for 64 bits")
	}
	var v int64
	for _, b := range data {
		v = v<<8 | int64(b)
	}
	// sign extend
	shift := uint(64 - 8*len(data))
	return v << shift >> shift, nil
}

func appendInt64(buf *bytes.Buffer, v int64) {
	n := 1
	for i := v; i > 127 || i < -128; i >>= 8 {
		n++
	}
	for j := n - 1; j >= 0; j-- {
		_ = buf.WriteByte(byte(v >> (8 * uint(j))))
	}
}

var bigOne = big.NewInt(1)

func parseBigInt(data []byte) (*big.Int, error) {
	if err := checkIntegerEncoding(data); err != nil {
		return nil, err
	}
	n := new(big.Int)
	if data[0]&0x80 == 0 {
		return n.SetBytes(data), nil
	}
	// negative: invert, add one, negate
	inv := make([]byte, len(data))
	for i := range data {
		inv[i] = ^data[i]
	}
	n.SetBytes(inv)
	n.Add(n, bigOne)
	return n.Neg(n), nil
}

func appendBigInt(buf *bytes.Buffer, n *big.Int) {
	switch n.Sign() {
	case 0:
		_ = buf.WriteByte(0)
	case 1:
		b := n.Bytes()
		if b[0]&0x80 != 0 {
			_ = buf.WriteByte(0)
		}
		_, _ = buf.Write(b)
	default:
		// two's complement of a negative number: invert the bits of |n|-1
		m := new(big.Int).Neg(n)
		m.Sub(m, bigOne)
		b := m.Bytes()
		for i := range b {
			b[i] = ^b[i]
		}
		if len(b) == 0 || b[0]&0x80 == 0 {
			_ = buf.WriteByte(0xff)
		}
		_, _ = buf.Write(b)
	}
}

// OctetString is the ASN.1 OCTET STRING type.  Decoding copies the content.
type OctetString []byte

func (o OctetString) DERTag() Tag { return TagOctetString }

func (o OctetString) CanParse(tag Tag) bool { return tag == TagOctetString }

func (o *OctetString) UnmarshalDER(tlv TLV) error {
	*o = append(OctetString{}, tlv.Data()...)
	return nil
}

func (o OctetString) MarshalDER(w *Writer) { w.writeSimple(o) }

func (o OctetString) MarshalDERContent(buf *bytes.Buffer) {
	_, _ = buf.Write(o)
}

// Null is the ASN.1 NULL type.
type Null struct{}

func (Null) DERTag() Tag { return TagNull }

func (Null) CanParse(tag Tag) bool { return tag == TagNull }

func (*Null) UnmarshalDER(tlv TLV) error {
	if tlv.Len() != 0 {
		return invalidValue("NULL must be empty")
	}
	return nil
}

func (n Null) MarshalDER(w *Writer) { w.writeSimple(n) }

func (Null) MarshalDERContent(*bytes.Buffer) {}

// BitString is the ASN.1 BIT STRING type.  BitLength is the number of bits;
// the unused trailing bits of the last byte must be zero.
type BitString struct {
	Bytes     []byte
	BitLength int
}

// At returns the bit at index i, 0 being the most significant bit of the
// first byte.  Out of range indexes return 0.
func (b BitString) At(i int) int {
	if i < 0 || i >= b.BitLength || i/8 >= len(b.Bytes) {
		return 0
	}
	return int(b.Bytes[i/8]>>(7-uint(i%8))) & 1
}

func (b BitString) DERTag() Tag { return TagBitString }

func (b BitString) CanParse(tag Tag) bool { return tag == TagBitString }

func (b *BitString) UnmarshalDER(tlv TLV) error {
	data := tlv.Data()
	if len(data) == 0 {
		return invalidValue("empty BIT STRING")
	}
	unused := int(data[0])
	switch {
	case unused > 7:
		return invalidValue("BIT STRING has more than 7 unused bits")
	case len(data) == 1 && unused != 0:
		return invalidValue("empty BIT STRING with unused bits")
	case len(data) > 1 && data[len(data)-1]&(1<<uint(unused)-1) != 0:
		return invalidValue("BIT STRING unused bits are not zero")
	}
	b.Bytes = append([]byte{}, data[1:]...)
	b.BitLength = 8*(len(data)-1) - unused
	return nil
}

func (b BitString) MarshalDER(w *Writer) { w.writeSimple(b) }

// MarshalDERContent writes BitLength bits.  Bytes missing from b.Bytes are
// written as zeros, and a negative BitLength writes an empty BIT STRING;
// Marshal rejects both with ErrInvalidValue.
func (b BitString) MarshalDERContent(buf *bytes.Buffer) {
	bitLen := b.BitLength
	if bitLen < 0 {
		bitLen = 0
	}
	n := (bitLen + 7) / 8
	unused := 8*n - bitLen
	_ = buf.WriteByte(byte(unused))
	if n == 0 {
		return
	}
	data := b.Bytes
	if len(data) > n {
		data = data[:n]
	}
	_, _ = buf.Write(data)
	for i := len(data); i < n; i++ {
		_ = buf.WriteByte(0)
	}
	last := buf.Len() - 1
	buf.Bytes()[last] &^= 1<<uint(unused) - 1
}

func (b BitString) checkDER() error {
	if b.BitLength < 0 {
		return invalidValue("BIT STRING with negative length " + strconv.Itoa(b.BitLength))
	}
	if n := (b.BitLength + 7) / 8; len(b.Bytes) < n {
		return invalidValue("BIT STRING of " + strconv.Itoa(b.BitLength) + " bits needs " +
			strconv.Itoa(n) + " bytes, has " + strconv.Itoa(len(b.Bytes)))
	}
	return nil
}

// Sequence is the raw content of a SEQUENCE, parsed lazily.  Like TLV, it is
// a view into the parsed buffer.
type Sequence struct {
	data []byte
}

// NewSequence returns a Sequence whose content is the elements written by f.
func NewSequence(f func(w *Writer)) Sequence {
	return Sequence{data: Write(f)}
}

// Data returns the content octets.
func (s Sequence) Data() []byte {
	return s.data
}

// Parse runs f over the elements of the sequence, which must all be consumed.
func (s Sequence) Parse(f func(p *Parser) error) error {
	return Parse(s.data, f)
}

func (s Sequence) DERTag() Tag { return TagSequence }

func (s Sequence) CanParse(tag Tag) bool { return tag == TagSequence }

func (s *Sequence) UnmarshalDER(tlv TLV) error {
	s.data = tlv.Data()
	return nil
}

func (s Sequence) MarshalDER(w *Writer) { w.writeSimple(s) }

func (s Sequence) MarshalDERContent(buf *bytes.Buffer) {
	_, _ = buf.Write(s.data)
}

// BigInteger is an INTEGER of any size.
type BigInteger struct {
	big.Int
}

func (b *BigInteger) DERTag() Tag { return TagInteger }

func (b *BigInteger) CanParse(tag Tag) bool { return tag == TagInteger }

func (b *BigInteger) UnmarshalDER(tlv TLV) error {
	n, err := parseBigInt(tlv.Data())
	if err != nil {
		return err
	}
	b.Set(n)
	return nil
}

func (b *BigInteger) MarshalDER(w *Writer) { w.writeSimple(b) }

func (b *BigInteger) MarshalDERContent(buf *bytes.Buffer) {
	appendBigInt(buf, &b.Int)
}
