package der

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeElement(v Marshaler) []byte {
	return Write(func(w *Writer) {
		w.WriteElement(v)
	})
}

func TestBoolean(t *testing.T) {
	assert.Equal(t, hex2bytes("0101ff"), writeElement(Boolean(true)))
	assert.Equal(t, hex2bytes("010100"), writeElement(Boolean(false)))

	var b Boolean
	require.NoError(t, ParseSingle(hex2bytes("0101ff"), &b))
	assert.True(t, bool(b))
	require.NoError(t, ParseSingle(hex2bytes("010100"), &b))
	assert.False(t, bool(b))

	for _, in := range []string{"010101", "0101fe", "0100", "01020000"} {
		err := ParseSingle(hex2bytes(in), &b)
		assert.True(t, Is(err, ErrInvalidValue), "input %s", in)
	}
}

func TestInteger(t *testing.T) {
	tests := []struct {
		v   int64
		der string
	}{
		{0, "020100"},
		{1, "020101"},
		{127, "02017f"},
		{128, "02020080"},
		{256, "02020100"},
		{-1, "0201ff"},
		{-128, "020180"},
		{-129, "0202ff7f"},
		{math.MaxInt64, "02087fffffffffffffff"},
		{math.MinInt64, "02088000000000000000"},
	}
	for _, tc := range tests {
		assert.Equal(t, hex2bytes(tc.der), writeElement(Integer(tc.v)), "value %d", tc.v)

		var i Integer
		require.NoError(t, ParseSingle(hex2bytes(tc.der), &i))
		assert.Equal(t, Integer(tc.v), i)
	}
}

func TestInteger_invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", "0200"},
		{"leading zero", "02020001"},
		{"leading ff", "0202ff80"},
		{"too large", "0209010000000000000000"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var i Integer
			err := ParseSingle(hex2bytes(tc.in), &i)
			assert.True(t, Is(err, ErrInvalidValue), "got %v", err)
		})
	}
}

func TestEnumerated(t *testing.T) {
	assert.Equal(t, hex2bytes("0a0103"), writeElement(Enumerated(3)))
	var e Enumerated
	require.NoError(t, ParseSingle(hex2bytes("0a0103"), &e))
	assert.Equal(t, Enumerated(3), e)

	var i Integer
	err := ParseSingle(hex2bytes("0a0103"), &i)
	assert.True(t, Is(err, ErrUnexpectedTag))
}

func TestBigInteger(t *testing.T) {
	huge, ok := new(big.Int).SetString("123456789012345678901234567890", 10)
	require.True(t, ok)
	neg := new(big.Int).Neg(huge)

	tests := []struct {
		v   *big.Int
		der string
	}{
		{big.NewInt(0), "020100"},
		{big.NewInt(128), "02020080"},
		{big.NewInt(-128), "020180"},
		{big.NewInt(-129), "0202ff7f"},
		{big.NewInt(-256), "0202ff00"},
		{huge, "020d018ee90ff6c373e0ee4e3f0ad2"},
		{neg, "020dfe7116f0093c8c1f11b1c0f52e"},
	}
	for _, tc := range tests {
		b := &BigInteger{}
		b.Set(tc.v)
		assert.Equal(t, hex2bytes(tc.der), writeElement(b), "value %s", tc.v)

		var decoded BigInteger
		require.NoError(t, ParseSingle(hex2bytes(tc.der), &decoded))
		assert.Equal(t, 0, tc.v.Cmp(&decoded.Int), "value %s, got %s", tc.v, &decoded.Int)
	}
}

func TestOctetString(t *testing.T) {
	assert.Equal(t, hex2bytes("0403010203"), writeElement(OctetString{1, 2, 3}))
	assert.Equal(t, hex2bytes("0400"), writeElement(OctetString(nil)))

	in := hex2bytes("0403010203")
	var o OctetString
	require.NoError(t, ParseSingle(in, &o))
	assert.Equal(t, OctetString{1, 2, 3}, o)

	// decoded content is a copy
	in[2] = 0xff
	assert.Equal(t, byte(1), o[0])
}

func TestNull(t *testing.T) {
	assert.Equal(t, hex2bytes("0500"), writeElement(Null{}))
	var n Null
	require.NoError(t, ParseSingle(hex2bytes("0500"), &n))
	assert.True(t, Is(ParseSingle(hex2bytes("050100"), &n), ErrInvalidValue))
}

func TestBitString(t *testing.T) {
	tests := []struct {
		name string
		v    BitString
		der  string
	}{
		{"empty", BitString{}, "030100"},
		{"full byte", BitString{Bytes: []byte{0xa5}, BitLength: 8}, "030200a5"},
		{"unused bits", BitString{Bytes: []byte{0x6e, 0x5d, 0xc0}, BitLength: 18}, "0304066e5dc0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, hex2bytes(tc.der), writeElement(tc.v))

			var b BitString
			require.NoError(t, ParseSingle(hex2bytes(tc.der), &b))
			assert.Equal(t, tc.v.BitLength, b.BitLength)
			assert.Equal(t, len(tc.v.Bytes), len(b.Bytes))
		})
	}

	// trailing bits beyond BitLength are cleared when writing
	assert.Equal(t, hex2bytes("03020480"), writeElement(BitString{Bytes: []byte{0x8f}, BitLength: 4}))

	// missing bytes are written as zeros, a negative length as no bits
	assert.Equal(t, hex2bytes("030304ff00"), writeElement(BitString{Bytes: []byte{0xff}, BitLength: 12}))
	assert.Equal(t, hex2bytes("03020500"), writeElement(BitString{BitLength: 3}))
	assert.Equal(t, hex2bytes("030100"), writeElement(BitString{Bytes: []byte{0xff}, BitLength: -3}))
}

func TestBitString_invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"no unused bits octet", "0300"},
		{"too many unused bits", "030208ff"},
		{"unused bits without data", "030101"},
		{"unused bits not zero", "03020101"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var b BitString
			err := ParseSingle(hex2bytes(tc.in), &b)
			assert.True(t, Is(err, ErrInvalidValue), "got %v", err)
		})
	}
}

func TestBitString_At(t *testing.T) {
	b := BitString{Bytes: []byte{0x80, 0x01}, BitLength: 16}
	assert.Equal(t, 1, b.At(0))
	assert.Equal(t, 0, b.At(1))
	assert.Equal(t, 1, b.At(15))
	assert.Equal(t, 0, b.At(16))
	assert.Equal(t, 0, b.At(-1))

	short := BitString{Bytes: []byte{0xff}, BitLength: 12}
	assert.Equal(t, 1, short.At(7))
	assert.Equal(t, 0, short.At(8))
}

func TestSequence(t *testing.T) {
	seq := NewSequence(func(w *Writer) {
		w.WriteElement(Integer(1))
		w.WriteElement(Boolean(true))
	})
	b := writeElement(seq)
	assert.Equal(t, hex2bytes("3006 020101 0101ff"), b)

	var decoded Sequence
	require.NoError(t, ParseSingle(b, &decoded))
	var i Integer
	var flag Boolean
	err := decoded.Parse(func(p *Parser) error {
		if err := p.ReadElement(&i); err != nil {
			return err
		}
		return p.ReadElement(&flag)
	})
	require.NoError(t, err)
	assert.Equal(t, Integer(1), i)
	assert.True(t, bool(flag))

	// every element must be consumed
	err = decoded.Parse(func(p *Parser) error {
		return p.ReadElement(&i)
	})
	assert.True(t, Is(err, ErrExtraData))
}
