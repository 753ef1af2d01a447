package der

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrint(t *testing.T) {
	RegisterObjectIdentifier(MustParseObjectIdentifier("2.5.4.3"), "commonName")

	b := hex2bytes("3012 020105 0603550403 0c03616263 3000 8001ff")
	buf := &bytes.Buffer{}
	err := Print(buf, "", "  ", b)
	require.NoError(t, err)
	assert.Equal(t, `SEQUENCE (18):
  INTEGER (1): 5
  OBJECT IDENTIFIER (3): 2.5.4.3 (commonName)
  UTF8String (3): "abc"
  SEQUENCE (0):
  [0] (1): 0xff`, buf.String())

	// Should tolerate invalid framing
	b = hex2bytes("3005 020105")
	buf.Reset()
	err = Print(buf, "", "  ", b)
	assert.True(t, Is(err, ErrShortData))
	assert.Contains(t, buf.String(), ") 0x3005020105")

	// Should tolerate invalid framing of a nested element
	b = hex2bytes("3005 020105 0500 3003 0205")
	buf.Reset()
	err = Print(buf, "", "  ", b)
	assert.Error(t, err)

	// Should tolerate invalid value with valid header
	b = hex2bytes("010105 0500")
	buf.Reset()
	err = Print(buf, "", "  ", b)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "BOOLEAN (1): (")
	assert.Contains(t, buf.String(), ") 0x05\nNULL (0):")
}

func TestPrint_values(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0101ff", "BOOLEAN (1): true"},
		{"0201ff", "INTEGER (1): -1"},
		{"0209 010000000000000000", "INTEGER (9): 18446744073709551616"},
		{"0a0102", "ENUMERATED (1): 2"},
		{"0500", "NULL (0):"},
		{"0403 010203", "OCTET STRING (3): 0x010203"},
		{"0400", "OCTET STRING (0):"},
		{"0303 06 6ec0", "BIT STRING (3): 0x6ec0 (10 bits)"},
		{"1302 5553", `PrintableString (2): "US"`},
		{"1603 614062", `IA5String (3): "a@b"`},
		{"170d 3931303530363233343534305a", "UTCTime (13): 1991-05-06T23:45:40Z"},
		{"1811 31393835313130363231303632372e335a", "GeneralizedTime (17): 1985-11-06T21:06:27.3Z"},
		{"0603 2a0304", "OBJECT IDENTIFIER (3): 1.2.3.4"},
		{"4101 00", "[APPLICATION 1] (1): 0x00"},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			buf := &bytes.Buffer{}
			require.NoError(t, Print(buf, "", "  ", hex2bytes(tc.in)))
			assert.Equal(t, tc.want, buf.String())
		})
	}
}

func TestPrintPrettyHex(t *testing.T) {
	b := hex2bytes("3008 020105 0101ff 3000 0500")
	buf := &bytes.Buffer{}
	err := PrintPrettyHex(buf, "", "  ", b)
	require.NoError(t, err)
	assert.Equal(t, `30 | 08
  02 | 01 | 05
  01 | 01 | ff
  30 | 00
05 | 00`, buf.String())

	// Should tolerate invalid framing
	b = hex2bytes("3005 0201")
	buf.Reset()
	err = PrintPrettyHex(buf, "", "  ", b)
	require.NoError(t, err)
	assert.Equal(t, `30050201`, buf.String())

	// Should tolerate invalid framing of nested elements
	b = hex2bytes("3003 020501")
	buf.Reset()
	err = PrintPrettyHex(buf, "", "  ", b)
	require.NoError(t, err)
	assert.Equal(t, `30 | 03
  020501`, buf.String())

	// the output is valid hex input
	buf.Reset()
	require.NoError(t, PrintPrettyHex(buf, "", "  ", hex2bytes("3003 0101ff")))
	assert.Equal(t, hex2bytes("3003 0101ff"), hex2bytes(buf.String()))
}

func TestTLV_String(t *testing.T) {
	assert.Equal(t, "INTEGER (1): 5", NewTLV(TagInteger, []byte{5}).String())
	assert.Equal(t, "", TLV{}.String())
}

func TestTLV_MarshalJSON(t *testing.T) {
	RegisterObjectIdentifier(MustParseObjectIdentifier("2.5.4.3"), "commonName")

	tlv, err := NewParser(hex2bytes("3010 020105 0101ff 0500 0603550403 0c0161")).ReadTLV()
	require.NoError(t, err)
	b, err := json.Marshal(tlv)
	require.NoError(t, err)
	assert.JSONEq(t, `{"tag":"SEQUENCE","value":[
		{"tag":"INTEGER","value":5},
		{"tag":"BOOLEAN","value":true},
		{"tag":"NULL","value":null},
		{"tag":"OBJECT IDENTIFIER","value":"2.5.4.3"},
		{"tag":"UTF8String","value":"a"}
	]}`, string(b))

	tests := []struct {
		in   string
		want string
	}{
		{"0209 010000000000000000", `{"tag":"INTEGER","value":"0x010000000000000000"}`},
		{"0201ff", `{"tag":"INTEGER","value":-1}`},
		{"0403 010203", `{"tag":"OCTET STRING","value":"010203"}`},
		{"170d 3931303530363233343534305a", `{"tag":"UTCTime","value":"1991-05-06T23:45:40Z"}`},
		{"8001 ff", `{"tag":"[0]","value":"ff"}`},
		{"a000", `{"tag":"[0] constructed","value":[]}`},
	}
	for _, tc := range tests {
		tlv, err := NewParser(hex2bytes(tc.in)).ReadTLV()
		require.NoError(t, err)
		b, err := json.Marshal(tlv)
		require.NoError(t, err)
		assert.JSONEq(t, tc.want, string(b))
	}

	b, err = json.Marshal(TLV{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	_, err = json.Marshal(NewTLV(TagBoolean, []byte{0x01}))
	assert.Error(t, err)
}
