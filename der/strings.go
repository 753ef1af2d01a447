package der

import (
	"bytes"
	"unicode/utf8"
)

// UTF8String is the ASN.1 UTF8String type.  Its content must be valid UTF-8.
type UTF8String string

func (s UTF8String) DERTag() Tag { return TagUTF8String }

func (s UTF8String) CanParse(tag Tag) bool { return tag == TagUTF8String }

func (s *UTF8String) UnmarshalDER(tlv TLV) error {
	if !utf8.Valid(tlv.Data()) {
		return invalidValue("UTF8String is not valid UTF-8")
	}
	*s = UTF8String(tlv.Data())
	return nil
}

func (s UTF8String) MarshalDER(w *Writer) { w.writeSimple(s) }

func (s UTF8String) MarshalDERContent(buf *bytes.Buffer) {
	_, _ = buf.WriteString(string(s))
}

// PrintableString is the ASN.1 PrintableString type: letters, digits, space
// and the punctuation ' ( ) + , - . / : = ?
type PrintableString string

// IsPrintable reports whether every byte of s is in the PrintableString
// character set.
func IsPrintable(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isPrintableByte(s[i]) {
			return false
		}
	}
	return true
}

func isPrintableByte(b byte) bool {
	switch {
	case 'a' <= b && b <= 'z', 'A' <= b && b <= 'Z', '0' <= b && b <= '9':
		return true
	}
	switch b {
	case ' ', '\'', '(', ')', '+', ',', '-', '.', '/', ':', '=', '?':
		return true
	}
	return false
}

func (s PrintableString) DERTag() Tag { return TagPrintableString }

func (s PrintableString) CanParse(tag Tag) bool { return tag == TagPrintableString }

func (s *PrintableString) UnmarshalDER(tlv TLV) error {
	v := string(tlv.Data())
	if !IsPrintable(v) {
		return invalidValue("PrintableString contains invalid characters")
	}
	*s = PrintableString(v)
	return nil
}

func (s PrintableString) MarshalDER(w *Writer) { w.writeSimple(s) }

func (s PrintableString) MarshalDERContent(buf *bytes.Buffer) {
	_, _ = buf.WriteString(string(s))
}

// IA5String is the ASN.1 IA5String type (7 bit ASCII).
type IA5String string

// IsIA5 reports whether s is 7 bit ASCII.
func IsIA5(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func (s IA5String) DERTag() Tag { return TagIA5String }

func (s IA5String) CanParse(tag Tag) bool { return tag == TagIA5String }

func (s *IA5String) UnmarshalDER(tlv TLV) error {
	v := string(tlv.Data())
	if !IsIA5(v) {
		return invalidValue("IA5String contains non ASCII characters")
	}
	*s = IA5String(v)
	return nil
}

func (s IA5String) MarshalDER(w *Writer) { w.writeSimple(s) }

func (s IA5String) MarshalDERContent(buf *bytes.Buffer) {
	_, _ = buf.WriteString(string(s))
}
