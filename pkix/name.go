package pkix

import (
	"bytes"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/ansel1/merry"
	"github.com/gemalto/der-go/der"
	"github.com/gemalto/der-go/oids"
)

// AttributeTypeAndValue is one attribute of a distinguished name, e.g.
// CN=example.com.  Value is usually a string type, but is kept as the raw
// element.
type AttributeTypeAndValue struct {
	Type  der.ObjectIdentifier
	Value der.TLV
}

// NewAttribute returns an attribute with a UTF8String value, or a
// PrintableString value for the country name.
func NewAttribute(typ der.ObjectIdentifier, value string) AttributeTypeAndValue {
	tag := der.TagUTF8String
	if typ == oids.CountryName {
		tag = der.TagPrintableString
	}
	return AttributeTypeAndValue{Type: typ, Value: der.NewTLV(tag, []byte(value))}
}

// StringValue returns the value if it is one of the string types.
func (a AttributeTypeAndValue) StringValue() (string, bool) {
	switch a.Value.Tag() {
	case der.TagUTF8String, der.TagPrintableString, der.TagIA5String:
		return string(a.Value.Data()), true
	}
	return "", false
}

var shortNames = map[der.ObjectIdentifier]string{
	oids.CommonName:             "CN",
	oids.CountryName:            "C",
	oids.LocalityName:           "L",
	oids.StateOrProvinceName:    "ST",
	oids.OrganizationName:       "O",
	oids.OrganizationalUnitName: "OU",
	oids.SerialNumber:           "SERIALNUMBER",
}

// String returns the RFC 4514 form, e.g. "CN=example.com".
func (a AttributeTypeAndValue) String() string {
	typ, ok := shortNames[a.Type]
	if !ok {
		typ = a.Type.String()
	}
	if s, ok := a.StringValue(); ok {
		return typ + "=" + escapeValue(s)
	}
	return typ + "=#" + hex.EncodeToString(a.Value.FullData())
}

func escapeValue(s string) string {
	var sb strings.Builder
	for i, r := range s {
		switch {
		case strings.ContainsRune(`,+"\<>;`, r),
			i == 0 && (r == ' ' || r == '#'),
			i == len(s)-1 && r == ' ':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// RelativeDistinguishedName is a SET OF attributes.  It reads and writes
// itself with the Parser and Writer, keeping its attributes in DER order.
type RelativeDistinguishedName []AttributeTypeAndValue

func (RelativeDistinguishedName) DERTag() der.Tag { return der.TagSet }

func (RelativeDistinguishedName) CanParse(tag der.Tag) bool { return tag == der.TagSet }

func (r *RelativeDistinguishedName) UnmarshalDER(tlv der.TLV) error {
	var atvs RelativeDistinguishedName
	var prev []byte
	err := der.Parse(tlv.Data(), func(p *der.Parser) error {
		for !p.Empty() {
			elem, err := p.ReadTLV()
			if err != nil {
				return err
			}
			if prev != nil && bytes.Compare(prev, elem.FullData()) > 0 {
				return merry.Here(der.ErrInvalidValue).Append("RelativeDistinguishedName attributes are not in DER order")
			}
			prev = elem.FullData()
			var atv AttributeTypeAndValue
			if err := der.Unmarshal(elem.FullData(), &atv); err != nil {
				return err
			}
			atvs = append(atvs, atv)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if len(atvs) == 0 {
		return merry.Here(der.ErrInvalidValue).Append("empty RelativeDistinguishedName")
	}
	*r = atvs
	return nil
}

func (r RelativeDistinguishedName) MarshalDER(w *der.Writer) {
	w.WriteTagged(der.TagSet, r.MarshalDERContent)
}

func (r RelativeDistinguishedName) MarshalDERContent(buf *bytes.Buffer) {
	elems := make([][]byte, len(r))
	for i, atv := range r {
		atv := atv
		elems[i] = der.Write(func(w *der.Writer) {
			w.WriteSequence(func(w *der.Writer) {
				w.WriteElement(atv.Type)
				w.WriteElement(atv.Value)
			})
		})
	}
	sort.Slice(elems, func(i, j int) bool {
		return bytes.Compare(elems[i], elems[j]) < 0
	})
	for _, e := range elems {
		_, _ = buf.Write(e)
	}
}

// Name is an X.501 distinguished name: a SEQUENCE OF
// RelativeDistinguishedName, most significant first.
type Name []RelativeDistinguishedName

// NewName returns a name with one attribute per RelativeDistinguishedName.
func NewName(atvs ...AttributeTypeAndValue) Name {
	n := make(Name, len(atvs))
	for i, atv := range atvs {
		n[i] = RelativeDistinguishedName{atv}
	}
	return n
}

// Lookup returns the first string value of the attribute typ.
func (n Name) Lookup(typ der.ObjectIdentifier) (string, bool) {
	for _, rdn := range n {
		for _, atv := range rdn {
			if atv.Type == typ {
				return atv.StringValue()
			}
		}
	}
	return "", false
}

// CommonName returns the value of the first CN attribute, or "".
func (n Name) CommonName() string {
	s, _ := n.Lookup(oids.CommonName)
	return s
}

// String returns the RFC 4514 form, least significant RDN first, e.g.
// "CN=example.com,O=Example,C=FR".
func (n Name) String() string {
	parts := make([]string, 0, len(n))
	for i := len(n) - 1; i >= 0; i-- {
		atvs := make([]string, len(n[i]))
		for j, atv := range n[i] {
			atvs[j] = atv.String()
		}
		parts = append(parts, strings.Join(atvs, "+"))
	}
	return strings.Join(parts, ",")
}
