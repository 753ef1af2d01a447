package der

import (
	"bytes"
	"time"

	"github.com/ansel1/merry"
)

const (
	utcTimeLayout         = "060102150405Z"
	generalizedTimeLayout = "20060102150405Z"
	// fractional seconds are written without trailing zeros, as DER requires
	generalizedTimeCanonicalLayout = "20060102150405.999999999Z"
)

// UTCTime is the ASN.1 UTCTime type, with seconds and a "Z" suffix.  Two
// digit years below 50 are in the 21st century.
type UTCTime struct {
	time.Time
}

// UTCTimeRepresentable reports whether t can be written as a UTCTime,
// i.e. falls within the years 1950 to 2049.
func UTCTimeRepresentable(t time.Time) bool {
	y := t.UTC().Year()
	return y >= 1950 && y < 2050
}

func (t UTCTime) DERTag() Tag { return TagUTCTime }

func (t UTCTime) CanParse(tag Tag) bool { return tag == TagUTCTime }

func (t *UTCTime) UnmarshalDER(tlv TLV) error {
	s := string(tlv.Data())
	v, err := time.Parse(utcTimeLayout, s)
	if err != nil {
		return merry.WrapSkipping(ErrInvalidValue, 0).Appendf("UTCTime %q", s).WithCause(err)
	}
	// time.Parse maps 00..68 to 20xx and 69..99 to 19xx
	if v.Year() >= 2050 {
		v = v.AddDate(-100, 0, 0)
	}
	if formatUTCTime(v) != s {
		return invalidValue("UTCTime " + s + " is not canonical")
	}
	t.Time = v
	return nil
}

func formatUTCTime(t time.Time) string {
	return t.UTC().Format(utcTimeLayout)
}

func (t UTCTime) MarshalDER(w *Writer) { w.writeSimple(t) }

func (t UTCTime) MarshalDERContent(buf *bytes.Buffer) {
	_, _ = buf.WriteString(formatUTCTime(t.Time))
}

// GeneralizedTime is the ASN.1 GeneralizedTime type, in UTC with optional
// fractional seconds.
type GeneralizedTime struct {
	time.Time
}

func (t GeneralizedTime) DERTag() Tag { return TagGeneralizedTime }

func (t GeneralizedTime) CanParse(tag Tag) bool { return tag == TagGeneralizedTime }

func (t *GeneralizedTime) UnmarshalDER(tlv TLV) error {
	s := string(tlv.Data())
	v, err := time.Parse(generalizedTimeLayout, s)
	if err != nil {
		return merry.WrapSkipping(ErrInvalidValue, 0).Appendf("GeneralizedTime %q", s).WithCause(err)
	}
	if formatGeneralizedTime(v) != s {
		return invalidValue("GeneralizedTime " + s + " is not canonical")
	}
	t.Time = v
	return nil
}

func formatGeneralizedTime(t time.Time) string {
	return t.UTC().Format(generalizedTimeCanonicalLayout)
}

func (t GeneralizedTime) MarshalDER(w *Writer) { w.writeSimple(t) }

func (t GeneralizedTime) MarshalDERContent(buf *bytes.Buffer) {
	_, _ = buf.WriteString(formatGeneralizedTime(t.Time))
}
