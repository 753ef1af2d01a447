package der

import (
	"bytes"
	"strconv"
	"strings"
	"sync"

	"github.com/ansel1/merry"
	"github.com/gemalto/der-go/internal/derutil"
)

// MaxOIDLength is the capacity, in content octets, of an ObjectIdentifier.
// It is large enough for every publicly registered OID.
const MaxOIDLength = 63

// ObjectIdentifier is an ASN.1 OBJECT IDENTIFIER.  It stores the DER content
// octets inline, so it never allocates and is comparable with ==: two
// ObjectIdentifiers are equal iff their DER encodings are.
//
// The zero ObjectIdentifier is empty and is not a valid OID.
type ObjectIdentifier struct {
	der [MaxOIDLength]byte
	n   uint8
}

// ParseObjectIdentifier parses the dotted decimal form of an OID, e.g.
// "1.2.840.113549".  There must be at least two arcs, the first one 0, 1 or 2,
// and the second one below 40 unless the first one is 2.  Every arc must fit
// 32 bits and be written without leading zeros.
func ParseObjectIdentifier(s string) (ObjectIdentifier, error) {
	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return ObjectIdentifier{}, invalidValue("object identifier needs at least two arcs: " + strconv.Quote(s))
	}
	arcs := make([]uint32, len(parts))
	for i, part := range parts {
		if len(part) > 1 && part[0] == '0' {
			return ObjectIdentifier{}, invalidValue("arc with leading zero in " + strconv.Quote(s))
		}
		arc, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return ObjectIdentifier{}, merry.WrapSkipping(ErrInvalidValue, 0).
				Appendf("invalid arc %q in %q", part, s).WithCause(err)
		}
		arcs[i] = uint32(arc)
	}
	return ObjectIdentifierFromArcs(arcs...)
}

// MustParseObjectIdentifier is like ParseObjectIdentifier, but panics on
// error.  It is meant for package level variables.
func MustParseObjectIdentifier(s string) ObjectIdentifier {
	oid, err := ParseObjectIdentifier(s)
	if err != nil {
		panic(err)
	}
	return oid
}

// ObjectIdentifierFromArcs builds an OID from its arcs.  The same constraints
// as ParseObjectIdentifier apply.
func ObjectIdentifierFromArcs(arcs ...uint32) (ObjectIdentifier, error) {
	if len(arcs) < 2 {
		return ObjectIdentifier{}, invalidValue("object identifier needs at least two arcs")
	}
	first, second := uint64(arcs[0]), uint64(arcs[1])
	if first > 2 || (first < 2 && second >= 40) {
		return ObjectIdentifier{}, invalidValue("invalid first arcs " + strconv.FormatUint(first, 10) + "." + strconv.FormatUint(second, 10))
	}
	combined := 40*first + second
	if combined > 0xffffffff {
		return ObjectIdentifier{}, invalidValue("second arc " + strconv.FormatUint(second, 10) + " is too large")
	}

	var oid ObjectIdentifier
	b := derutil.AppendBase128(oid.der[:0], uint32(combined))
	for _, arc := range arcs[2:] {
		if len(b)+derutil.Base128Len(arc) > MaxOIDLength {
			return ObjectIdentifier{}, merry.Here(ErrOIDTooLong).Appendf("encoding exceeds %d bytes", MaxOIDLength)
		}
		b = derutil.AppendBase128(b, arc)
	}
	oid.n = uint8(len(b))
	return oid, nil
}

// ObjectIdentifierFromDER builds an OID from its DER content octets (without
// tag and length).  The octets are validated and copied verbatim.
func ObjectIdentifierFromDER(data []byte) (ObjectIdentifier, error) {
	switch {
	case len(data) == 0:
		return ObjectIdentifier{}, invalidValue("empty object identifier")
	case len(data) > MaxOIDLength:
		return ObjectIdentifier{}, merry.Here(ErrOIDTooLong).Appendf("%d bytes exceeds %d", len(data), MaxOIDLength)
	}
	for rest := data; len(rest) > 0; {
		var err error
		if _, rest, err = derutil.ReadBase128(rest); err != nil {
			return ObjectIdentifier{}, merry.WrapSkipping(ErrInvalidValue, 0).WithCause(err).Append(err.Error())
		}
	}
	return ObjectIdentifierFromDERUnchecked(data), nil
}

// ObjectIdentifierFromDERUnchecked builds an OID from DER content octets
// without validating them.  It exists for generated constants (see
// cmd/dergen); the caller guarantees the octets are a valid, canonical
// encoding of at most MaxOIDLength bytes.
func ObjectIdentifierFromDERUnchecked(data []byte) ObjectIdentifier {
	var oid ObjectIdentifier
	oid.n = uint8(copy(oid.der[:], data))
	return oid
}

// Bytes returns the DER content octets.
func (o ObjectIdentifier) Bytes() []byte {
	b := make([]byte, o.n)
	copy(b, o.der[:o.n])
	return b
}

// IsZero reports whether o is the empty ObjectIdentifier.
func (o ObjectIdentifier) IsZero() bool {
	return o.n == 0
}

func (o ObjectIdentifier) Equal(other ObjectIdentifier) bool {
	return o == other
}

// Arcs decodes the arcs of o.
func (o ObjectIdentifier) Arcs() []uint32 {
	var arcs []uint32
	rest := o.der[:o.n]
	for len(rest) > 0 {
		arc, r, err := derutil.ReadBase128(rest)
		if err != nil {
			// unreachable for values built by the constructors
			break
		}
		rest = r
		if len(arcs) == 0 {
			if arc < 80 {
				arcs = append(arcs, arc/40, arc%40)
			} else {
				arcs = append(arcs, 2, arc-80)
			}
			continue
		}
		arcs = append(arcs, arc)
	}
	return arcs
}

// String returns the dotted decimal form, e.g. "1.2.840.113549".
func (o ObjectIdentifier) String() string {
	var sb strings.Builder
	for i, arc := range o.Arcs() {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.FormatUint(uint64(arc), 10))
	}
	return sb.String()
}

func (o ObjectIdentifier) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *ObjectIdentifier) UnmarshalText(text []byte) (err error) {
	*o, err = ParseObjectIdentifier(string(text))
	return
}

func (o ObjectIdentifier) DERTag() Tag {
	return TagObjectIdentifier
}

func (o ObjectIdentifier) CanParse(tag Tag) bool {
	return tag == TagObjectIdentifier
}

func (o *ObjectIdentifier) UnmarshalDER(tlv TLV) (err error) {
	*o, err = ObjectIdentifierFromDER(tlv.Data())
	return
}

func (o ObjectIdentifier) MarshalDER(w *Writer) {
	w.writeSimple(o)
}

func (o ObjectIdentifier) MarshalDERContent(buf *bytes.Buffer) {
	_, _ = buf.Write(o.der[:o.n])
}

var oidNames sync.Map

// RegisterObjectIdentifier registers a descriptive name for oid, used by Name
// and by the pretty printer.
func RegisterObjectIdentifier(oid ObjectIdentifier, name string) {
	oidNames.Store(oid, name)
}

// Name returns the name registered for o, or "" if there is none.
func (o ObjectIdentifier) Name() string {
	if v, ok := oidNames.Load(o); ok {
		return v.(string)
	}
	return ""
}
