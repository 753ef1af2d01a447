package der

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"
	"time"
)

// Print writes a human readable rendering of the elements in data, one per
// line, nested elements indented by indent:
//
//	SEQUENCE (11):
//	  INTEGER (1): 5
//	  OBJECT IDENTIFIER (3): 2.5.4.3 (commonName)
//
// Malformed content is printed as hex after the error.  Malformed framing
// stops the printing and is returned as an error.
func Print(w io.Writer, prefix, indent string, data []byte) error {
	p := NewParser(data)
	for first := true; !p.Empty(); first = false {
		if !first {
			fmt.Fprint(w, "\n")
		}
		start := p.pos
		tlv, err := p.ReadTLV()
		if err != nil {
			fmt.Fprintf(w, "%s(%s) %#x", prefix, err.Error(), data[start:])
			return err
		}
		if err := printTLV(w, prefix, indent, tlv); err != nil {
			return err
		}
	}
	return nil
}

func printTLV(w io.Writer, prefix, indent string, tlv TLV) error {
	fmt.Fprintf(w, "%s%v (%d):", prefix, tlv.Tag(), tlv.Len())
	if tlv.Tag().IsConstructed() {
		if tlv.Len() == 0 {
			return nil
		}
		fmt.Fprint(w, "\n")
		return Print(w, prefix+indent, indent, tlv.Data())
	}
	s, err := formatValue(tlv)
	if err != nil {
		fmt.Fprintf(w, " (%s) %#x", err.Error(), tlv.Data())
		return nil
	}
	if s != "" {
		fmt.Fprint(w, " ", s)
	}
	return nil
}

// formatValue renders the content of a primitive element.
func formatValue(tlv TLV) (string, error) {
	switch tlv.Tag() {
	case TagBoolean:
		var b Boolean
		if err := b.UnmarshalDER(tlv); err != nil {
			return "", err
		}
		return strconv.FormatBool(bool(b)), nil
	case TagInteger, TagEnumerated:
		n, err := parseBigInt(tlv.Data())
		if err != nil {
			return "", err
		}
		return n.String(), nil
	case TagObjectIdentifier:
		oid, err := ObjectIdentifierFromDER(tlv.Data())
		if err != nil {
			return "", err
		}
		if name := oid.Name(); name != "" {
			return oid.String() + " (" + name + ")", nil
		}
		return oid.String(), nil
	case TagUTF8String:
		var s UTF8String
		if err := s.UnmarshalDER(tlv); err != nil {
			return "", err
		}
		return strconv.Quote(string(s)), nil
	case TagPrintableString:
		var s PrintableString
		if err := s.UnmarshalDER(tlv); err != nil {
			return "", err
		}
		return strconv.Quote(string(s)), nil
	case TagIA5String:
		var s IA5String
		if err := s.UnmarshalDER(tlv); err != nil {
			return "", err
		}
		return strconv.Quote(string(s)), nil
	case TagUTCTime, TagGeneralizedTime:
		t, err := timeValue(tlv)
		if err != nil {
			return "", err
		}
		return t.Format(time.RFC3339Nano), nil
	case TagNull:
		var n Null
		return "", n.UnmarshalDER(tlv)
	case TagBitString:
		var b BitString
		if err := b.UnmarshalDER(tlv); err != nil {
			return "", err
		}
		return fmt.Sprintf("%#x (%d bits)", b.Bytes, b.BitLength), nil
	}
	if tlv.Len() == 0 {
		return "", nil
	}
	return fmt.Sprintf("%#x", tlv.Data()), nil
}

func timeValue(tlv TLV) (time.Time, error) {
	if tlv.Tag() == TagUTCTime {
		var t UTCTime
		err := t.UnmarshalDER(tlv)
		return t.Time, err
	}
	var t GeneralizedTime
	err := t.UnmarshalDER(tlv)
	return t.Time, err
}

// PrintPrettyHex writes the elements in data as hex, one element per line,
// with the header split from the content:
//
//	30 | 06
//	  02 | 01 | 05
//	  01 | 01 | ff
//
// Only hex digits and formatting characters are written, so the output is
// still valid hex input.  Bytes which cannot be framed are written as is.
func PrintPrettyHex(w io.Writer, prefix, indent string, data []byte) error {
	p := NewParser(data)
	for first := true; !p.Empty(); first = false {
		if !first {
			fmt.Fprint(w, "\n")
		}
		start := p.pos
		tlv, err := p.ReadTLV()
		if err != nil {
			fmt.Fprint(w, prefix, hex.EncodeToString(data[start:]))
			return nil
		}
		full := tlv.FullData()
		header := full[:len(full)-tlv.Len()]
		fmt.Fprintf(w, "%s%x | %x", prefix, header[:1], header[1:])
		switch {
		case tlv.Tag().IsConstructed() && tlv.Len() > 0:
			fmt.Fprint(w, "\n")
			if err := PrintPrettyHex(w, prefix+indent, indent, tlv.Data()); err != nil {
				return err
			}
		case tlv.Len() > 0:
			fmt.Fprintf(w, " | %x", tlv.Data())
		}
	}
	return nil
}

// String returns the Print rendering of t.
func (t TLV) String() string {
	var buf bytes.Buffer
	_ = Print(&buf, "", "  ", t.full)
	return buf.String()
}

func writeJSONString(sb *strings.Builder, s string) {
	v, _ := json.Marshal(s)
	sb.Write(v)
}

// maxJSONInt is the largest magnitude JSON numbers carry without loss.
var maxJSONInt = big.NewInt(1 << 53)

// MarshalJSON renders t as {"tag":..., "value":...}.  Constructed elements
// carry an array of children; primitive values are mapped to the closest
// JSON type, and unknown or oversized values to hex strings.
func (t TLV) MarshalJSON() ([]byte, error) {
	if t.Empty() {
		return []byte("null"), nil
	}

	var sb strings.Builder
	tagName, err := json.Marshal(t.tag.String())
	if err != nil {
		return nil, err
	}
	sb.WriteString(`{"tag":`)
	sb.Write(tagName)
	sb.WriteString(`,"value":`)

	switch {
	case t.tag.IsConstructed():
		children, err := t.Children()
		if err != nil {
			return nil, err
		}
		sb.WriteString("[")
		for i, c := range children {
			if i > 0 {
				sb.WriteString(",")
			}
			v, err := c.MarshalJSON()
			if err != nil {
				return nil, err
			}
			sb.Write(v)
		}
		sb.WriteString("]")
	case t.tag == TagBoolean:
		var b Boolean
		if err := b.UnmarshalDER(t); err != nil {
			return nil, err
		}
		sb.WriteString(strconv.FormatBool(bool(b)))
	case t.tag == TagInteger || t.tag == TagEnumerated:
		n, err := parseBigInt(t.data)
		if err != nil {
			return nil, err
		}
		if n.CmpAbs(maxJSONInt) < 0 {
			sb.WriteString(n.String())
		} else {
			sb.WriteString(`"0x`)
			sb.WriteString(hex.EncodeToString(t.data))
			sb.WriteString(`"`)
		}
	case t.tag == TagNull:
		sb.WriteString("null")
	case t.tag == TagObjectIdentifier:
		oid, err := ObjectIdentifierFromDER(t.data)
		if err != nil {
			return nil, err
		}
		writeJSONString(&sb, oid.String())
	case t.tag == TagUTCTime || t.tag == TagGeneralizedTime:
		v, err := timeValue(t)
		if err != nil {
			return nil, err
		}
		writeJSONString(&sb, v.Format(time.RFC3339Nano))
	case t.tag == TagUTF8String || t.tag == TagPrintableString || t.tag == TagIA5String:
		if _, err := formatValue(t); err != nil {
			return nil, err
		}
		writeJSONString(&sb, string(t.data))
	default:
		writeJSONString(&sb, hex.EncodeToString(t.data))
	}

	sb.WriteString(`}`)
	return []byte(sb.String()), nil
}
