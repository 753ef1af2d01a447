package der

import (
	"fmt"
	"strconv"
)

// Tag is the identifier octet of a DER element.  It packs the tag class
// (2 bits), the constructed flag (1 bit) and the tag number (5 bits).
//
// Only the low tag number form is supported: tag numbers range from 0 to
// MaxTagNumber.  A tag octet whose number bits are all set introduces the high
// tag number form, which the Parser rejects.
type Tag byte

// Class is the class part of a Tag, already shifted into place, so a Tag can
// be built by OR-ing a Class, the Constructed bit and a tag number.
type Class byte

const (
	ClassUniversal       Class = 0x00
	ClassApplication     Class = 0x40
	ClassContextSpecific Class = 0x80
	ClassPrivate         Class = 0xc0
)

const (
	// Constructed is the bit which marks an element whose content is itself
	// a sequence of elements.
	Constructed Tag = 0x20

	classMask  Tag = 0xc0
	numberMask Tag = 0x1f

	// MaxTagNumber is the largest tag number representable in a single octet.
	MaxTagNumber = 30
)

// Universal tags of the types in the catalog.
const (
	TagBoolean          Tag = 0x01
	TagInteger          Tag = 0x02
	TagBitString        Tag = 0x03
	TagOctetString      Tag = 0x04
	TagNull             Tag = 0x05
	TagObjectIdentifier Tag = 0x06
	TagEnumerated       Tag = 0x0a
	TagUTF8String       Tag = 0x0c
	TagSequence         Tag = 0x10 | Constructed
	TagSet              Tag = 0x11 | Constructed
	TagPrintableString  Tag = 0x13
	TagIA5String        Tag = 0x16
	TagUTCTime          Tag = 0x17
	TagGeneralizedTime  Tag = 0x18
)

var universalNames = map[Tag]string{
	TagBoolean:          "BOOLEAN",
	TagInteger:          "INTEGER",
	TagBitString:        "BIT STRING",
	TagOctetString:      "OCTET STRING",
	TagNull:             "NULL",
	TagObjectIdentifier: "OBJECT IDENTIFIER",
	TagEnumerated:       "ENUMERATED",
	TagUTF8String:       "UTF8String",
	TagSequence:         "SEQUENCE",
	TagSet:              "SET",
	TagPrintableString:  "PrintableString",
	TagIA5String:        "IA5String",
	TagUTCTime:          "UTCTime",
	TagGeneralizedTime:  "GeneralizedTime",
}

// ExplicitTag returns the tag of an element which wraps another, complete
// element: context-specific class, constructed, number n.
//
// n must be at most MaxTagNumber.  Only the low five bits of n are used, so
// larger numbers alias smaller ones, and 31 gives the high tag number form,
// which Parser rejects.
func ExplicitTag(n uint8) Tag {
	return Tag(ClassContextSpecific) | Constructed | Tag(n)&numberMask
}

// ImplicitTag returns the tag which replaces underlying when a value is
// implicitly tagged with number n: context-specific class, number n, and the
// constructed bit of underlying.  n must be at most MaxTagNumber, as for
// ExplicitTag.
func ImplicitTag(n uint8, underlying Tag) Tag {
	return Tag(ClassContextSpecific) | underlying&Constructed | Tag(n)&numberMask
}

// Class returns the class bits of t.
func (t Tag) Class() Class {
	return Class(t & classMask)
}

// IsConstructed reports whether the constructed bit of t is set.
func (t Tag) IsConstructed() bool {
	return t&Constructed != 0
}

// Number returns the tag number of t.
func (t Tag) Number() uint8 {
	return uint8(t & numberMask)
}

func (t Tag) highForm() bool {
	return t&numberMask == numberMask
}

// String returns the ASN.1 name of universal tags, and the bracketed form,
// e.g. "[0] constructed" or "[APPLICATION 3]", for the others.
func (t Tag) String() string {
	if s, ok := universalNames[t]; ok {
		return s
	}
	var s string
	switch t.Class() {
	case ClassUniversal:
		s = "[UNIVERSAL " + strconv.Itoa(int(t.Number())) + "]"
	case ClassApplication:
		s = "[APPLICATION " + strconv.Itoa(int(t.Number())) + "]"
	case ClassContextSpecific:
		s = "[" + strconv.Itoa(int(t.Number())) + "]"
	default:
		s = "[PRIVATE " + strconv.Itoa(int(t.Number())) + "]"
	}
	if t.IsConstructed() {
		s += " constructed"
	}
	return s
}

// GoString returns the hex value of the tag octet.
func (t Tag) GoString() string {
	return fmt.Sprintf("0x%02x", byte(t))
}

func (c Class) String() string {
	switch c {
	case ClassUniversal:
		return "universal"
	case ClassApplication:
		return "application"
	case ClassContextSpecific:
		return "context-specific"
	case ClassPrivate:
		return "private"
	default:
		return fmt.Sprintf("0x%02x", byte(c))
	}
}
