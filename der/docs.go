// Package der encodes and decodes ASN.1 values in the Distinguished Encoding
// Rules (DER), the canonical binary form used by X.509 certificates, PKCS
// structures and most other cryptographic formats.
//
// The package has three layers:
//
// 1. Tag, Parser and Writer: a zero-copy TLV (tag, length, value) reader and
// an append-only writer, enforcing DER's canonical length encoding.
// 2. The catalog: Boolean, Integer, BigInteger, Enumerated, BitString,
// OctetString, Null, ObjectIdentifier, UTF8String, PrintableString,
// IA5String, UTCTime, GeneralizedTime, Sequence and TLV (ANY).  Each one
// implements Unmarshaler and Marshaler, and can be read and written directly
// with the Parser and Writer.
// 3. Marshal and Unmarshal: golang structs are compiled, on first use, into
// a codec driven by `der` struct tags, in a way similar to the json or xml
// packages.
//
// Mapping golang types
//
// | ASN.1 type | Golang type |
// | ---------- | ----------- |
// | BOOLEAN | bool |
// | INTEGER | int, int8..int64, uint..uint64, big.Int, *big.Int |
// | OCTET STRING | []byte |
// | UTF8String | string |
// | PrintableString | string with the "printable" option |
// | IA5String | string with the "ia5" option |
// | UTCTime | time.Time with the "utc" option |
// | GeneralizedTime | time.Time with the "generalized" option |
// | SEQUENCE | struct |
// | SEQUENCE OF | slice |
// | SET OF | slice with the "set" option |
// | CHOICE | struct with a DERChoice field |
// | ANY | der.TLV |
//
// - a time.Time without option reads either time type, and writes a UTCTime
//   for the years 1950 to 2049, a GeneralizedTime otherwise
// - when unmarshaling into an integer type, values which overflow the
//   type return ErrInvalidValue
// - pointers are followed when marshaling, and allocated when unmarshaling.
//   Marshaling a nil pointer which is not an OPTIONAL field is an error
// - arrays, maps, floats, complex numbers, channels, funcs and interfaces do
//   not map to ASN.1 types.  They return ErrUnsupportedType
// - any type can assume control over the marshaling and unmarshaling process
//   by implementing Marshaler and Unmarshaler.  Types implementing
//   SimpleMarshaler and SimpleUnmarshaler can also be implicitly tagged
//
// Struct tags
//
// Fields are encoded in declaration order.  Unexported fields, and fields
// tagged `der:"-"`, are skipped.  The tag value is a comma separated list of
// options:
//
//	tag:N        context-specific tag number N, implicit unless "explicit"
//	explicit     the element is wrapped in a constructed [N] element
//	optional     OPTIONAL; the field must be a pointer or a slice, nil is absent
//	default:LIT  DEFAULT; LIT is converted to the field type with
//	             encoding.TextUnmarshaler, or parsed as a bool, integer or string
//	printable, ia5, utf8    string flavor
//	utc, generalized        time flavor
//	set          SET OF instead of SEQUENCE OF
//
// A field with a DEFAULT reads as the default when absent.  DER forbids
// encoding a value equal to its default: Marshal omits it, and Unmarshal
// rejects it with ErrInvalidValue.
//
// For example:
//
//	type Extension struct {
//		ExtnID    der.ObjectIdentifier
//		Critical  bool `der:"default:false"`
//		ExtnValue []byte
//	}
//
// CHOICE
//
// A struct with a field named DERChoice is a CHOICE.  Every other exported
// field is a variant, and must be a pointer or a slice.  Unmarshal sets the
// first variant, in declaration order, which accepts the element's tag.
// Marshal requires exactly one non-nil variant.
//
//	type Time struct {
//		DERChoice       struct{}
//		UTCTime         *time.Time `der:"utc"`
//		GeneralizedTime *time.Time `der:"generalized"`
//	}
//
// A CHOICE has no tag of its own, so it can only be explicitly tagged.
//
// Errors
//
// Every error wraps one of the package's sentinel errors, which can be
// tested for with errors.Is.  Errors returned while decoding or encoding a
// struct carry the path to the failing field, with "[i]" labels for slice
// elements, e.g. "Outer::Items::[1]::Inner::N"; see Location.  Schema errors (a malformed
// struct tag, a default which does not convert to its field's type, implicit
// tagging of a CHOICE) are returned by the first Marshal or Unmarshal of the
// type, never panicked.
//
// Compiling a schema does not check for tag collisions, which would make some
// encodings impossible to decode.  Validate does.
package der
