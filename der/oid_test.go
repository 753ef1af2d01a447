package der

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseObjectIdentifier_invalid(t *testing.T) {
	for _, s := range []string{
		"",
		"1",
		"3.10",
		"1.50",
		"2.12.a3.4",
		"a.4",
		"1.a",
		".2.5",
		"2..5",
		"2.5.",
		"1.2.4294967296",
		"1.02.3",
		"00.1",
		"1.+2",
	} {
		t.Run(s, func(t *testing.T) {
			_, err := ParseObjectIdentifier(s)
			require.Error(t, err)
			assert.True(t, Is(err, ErrInvalidValue), "got %v", err)
		})
	}
}

func TestParseObjectIdentifier_tooLong(t *testing.T) {
	_, err := ParseObjectIdentifier("1.3.6.1.4.1.1248.1.1.2.1.3.21.69.112.115.111.110.32.83.116.121.108.117.115.32.80.114.111.32.52.57.48.48.123.124412.31.213321.123.110.32.83.116.121.108.117.115.32.80.114.111.32.52.57.48.48.123.124412.31.213321.123")
	require.Error(t, err)
	assert.True(t, Is(err, ErrOIDTooLong))
}

func TestParseObjectIdentifier(t *testing.T) {
	tests := []struct {
		in  string
		der string
	}{
		{"0.4", "04"},
		{"2.5", "55"},
		{"2.5.2", "5502"},
		{"2.5.4.3", "550403"},
		{"1.2.3.4", "2a0304"},
		{"1.2.840.113549", "2a864886f70d"},
		{"1.2.840.133549.1.1.5", "2a864888932d010105"},
		{"2.100.3", "813403"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			oid, err := ParseObjectIdentifier(tc.in)
			require.NoError(t, err)
			assert.Equal(t, hex2bytes(tc.der), oid.Bytes())
			assert.Equal(t, tc.in, oid.String())

			fromDER, err := ObjectIdentifierFromDER(hex2bytes(tc.der))
			require.NoError(t, err)
			assert.Equal(t, oid, fromDER)
			assert.True(t, oid == fromDER)
		})
	}
}

func TestObjectIdentifierFromArcs(t *testing.T) {
	oid, err := ObjectIdentifierFromArcs(1, 2, 840, 113549)
	require.NoError(t, err)
	assert.Equal(t, "1.2.840.113549", oid.String())
	assert.Equal(t, []uint32{1, 2, 840, 113549}, oid.Arcs())

	_, err = ObjectIdentifierFromArcs(1)
	assert.True(t, Is(err, ErrInvalidValue))
	_, err = ObjectIdentifierFromArcs(1, 40)
	assert.True(t, Is(err, ErrInvalidValue))
	_, err = ObjectIdentifierFromArcs(2, 4294967295)
	assert.True(t, Is(err, ErrInvalidValue))
}

func TestObjectIdentifierFromDER_invalid(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		kind error
	}{
		{"empty", nil, ErrInvalidValue},
		{"truncated", []byte{0x2a, 0x86}, ErrInvalidValue},
		{"leading 0x80", []byte{0x2a, 0x80, 0x01}, ErrInvalidValue},
		{"overflow", []byte{0x2a, 0x90, 0x80, 0x80, 0x80, 0x00}, ErrInvalidValue},
		{"too long", bytes.Repeat([]byte{0x01}, MaxOIDLength+1), ErrOIDTooLong},
		{"too long encoding", hex2bytes("06402b0601040189600101020103154570736f6e205374796c75732050726f20343930307b87cb7c1f8d82497b2b0601040189600101020103154570736f6e20"), ErrOIDTooLong},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ObjectIdentifierFromDER(tc.in)
			require.Error(t, err)
			assert.True(t, Is(err, tc.kind), "got %v", err)
		})
	}
}

func TestObjectIdentifier_maxLength(t *testing.T) {
	b := bytes.Repeat([]byte{0x01}, MaxOIDLength)
	oid, err := ObjectIdentifierFromDER(b)
	require.NoError(t, err)
	assert.Equal(t, b, oid.Bytes())
}

func TestObjectIdentifier_zero(t *testing.T) {
	var oid ObjectIdentifier
	assert.True(t, oid.IsZero())
	assert.Equal(t, "", oid.String())
	assert.False(t, MustParseObjectIdentifier("2.5").IsZero())
}

func TestObjectIdentifier_equality(t *testing.T) {
	a := MustParseObjectIdentifier("1.2.840.113549")
	b := MustParseObjectIdentifier("1.2.840.113549")
	c := MustParseObjectIdentifier("1.2.840.113550")
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))

	// usable as a map key
	m := map[ObjectIdentifier]int{a: 1}
	assert.Equal(t, 1, m[b])
}

func TestObjectIdentifier_DER(t *testing.T) {
	oid := MustParseObjectIdentifier("1.2.840.113549")
	b := Write(func(w *Writer) {
		w.WriteElement(oid)
	})
	assert.Equal(t, hex2bytes("0606 2a864886f70d"), b)

	var decoded ObjectIdentifier
	require.NoError(t, ParseSingle(b, &decoded))
	assert.Equal(t, oid, decoded)
}

func TestObjectIdentifier_Text(t *testing.T) {
	oid := MustParseObjectIdentifier("2.5.4.3")
	text, err := oid.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2.5.4.3", string(text))

	var parsed ObjectIdentifier
	require.NoError(t, parsed.UnmarshalText(text))
	assert.Equal(t, oid, parsed)
}

func TestRegisterObjectIdentifier(t *testing.T) {
	oid := MustParseObjectIdentifier("1.3.6.1.4.1.99999.1")
	assert.Equal(t, "", oid.Name())
	RegisterObjectIdentifier(oid, "testArc")
	assert.Equal(t, "testArc", oid.Name())
	assert.Equal(t, "testArc", MustParseObjectIdentifier("1.3.6.1.4.1.99999.1").Name())
}

func TestMustParseObjectIdentifier(t *testing.T) {
	assert.Panics(t, func() {
		MustParseObjectIdentifier("3.1")
	})
}
