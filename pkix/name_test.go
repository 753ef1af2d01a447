package pkix

import (
	"testing"

	"github.com/gemalto/der-go/der"
	"github.com/gemalto/der-go/internal/derutil"
	"github.com/gemalto/der-go/oids"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAttribute(t *testing.T) {
	cn := NewAttribute(oids.CommonName, "example.com")
	assert.Equal(t, der.TagUTF8String, cn.Value.Tag())

	c := NewAttribute(oids.CountryName, "FR")
	assert.Equal(t, der.TagPrintableString, c.Value.Tag())

	s, ok := c.StringValue()
	assert.True(t, ok)
	assert.Equal(t, "FR", s)

	_, ok = AttributeTypeAndValue{Type: oids.CommonName, Value: der.NewTLV(der.TagInteger, []byte{5})}.StringValue()
	assert.False(t, ok)
}

func TestAttributeTypeAndValue_String(t *testing.T) {
	tests := []struct {
		atv  AttributeTypeAndValue
		want string
	}{
		{NewAttribute(oids.CommonName, "example.com"), "CN=example.com"},
		{NewAttribute(oids.OrganizationName, "Example, Inc."), `O=Example\, Inc.`},
		{NewAttribute(oids.CommonName, " x#"), `CN=\ x#`},
		{NewAttribute(oids.CommonName, "#x "), `CN=\#x\ `},
		{NewAttribute(oids.CommonName, `a+b<c>"d";e`), `CN=a\+b\<c\>\"d\"\;e`},
		{
			AttributeTypeAndValue{Type: der.MustParseObjectIdentifier("1.2.3"), Value: der.NewTLV(der.TagInteger, []byte{5})},
			"1.2.3=#020105",
		},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.atv.String())
		})
	}
}

func TestRelativeDistinguishedName(t *testing.T) {
	cn := NewAttribute(oids.CommonName, "a")
	c := NewAttribute(oids.CountryName, "FR")
	sorted := derutil.Hex2bytes("3115 3008 0603550403 0c0161 3009 0603550406 13024652")

	// attributes are written in DER order whatever their order in the value
	b, err := der.Marshal(RelativeDistinguishedName{c, cn})
	require.NoError(t, err)
	assert.Equal(t, sorted, b)

	var rdn RelativeDistinguishedName
	require.NoError(t, der.Unmarshal(sorted, &rdn))
	require.Len(t, rdn, 2)
	assert.Equal(t, oids.CommonName, rdn[0].Type)
	assert.Equal(t, oids.CountryName, rdn[1].Type)

	err = der.Unmarshal(derutil.Hex2bytes("3115 3009 0603550406 13024652 3008 0603550403 0c0161"), &rdn)
	require.Error(t, err)
	assert.True(t, der.Is(err, der.ErrInvalidValue))

	err = der.Unmarshal(derutil.Hex2bytes("3100"), &rdn)
	require.Error(t, err)
	assert.True(t, der.Is(err, der.ErrInvalidValue))

	err = der.Unmarshal(derutil.Hex2bytes("3000"), &rdn)
	require.Error(t, err)
	assert.True(t, der.Is(err, der.ErrUnexpectedTag))
}

func TestName(t *testing.T) {
	n := NewName(
		NewAttribute(oids.CountryName, "FR"),
		NewAttribute(oids.OrganizationName, "Example"),
		NewAttribute(oids.CommonName, "example.com"),
	)
	assert.Equal(t, "CN=example.com,O=Example,C=FR", n.String())
	assert.Equal(t, "example.com", n.CommonName())

	o, ok := n.Lookup(oids.OrganizationName)
	assert.True(t, ok)
	assert.Equal(t, "Example", o)

	_, ok = n.Lookup(oids.LocalityName)
	assert.False(t, ok)
	assert.Equal(t, "", Name{}.CommonName())

	b, err := der.Marshal(n)
	require.NoError(t, err)
	assert.Equal(t, der.TagSequence, der.Tag(b[0]))

	var decoded Name
	require.NoError(t, der.Unmarshal(b, &decoded))
	assert.Equal(t, n.String(), decoded.String())

	again, err := der.Marshal(decoded)
	require.NoError(t, err)
	assert.Equal(t, b, again)
}

func TestName_multiValued(t *testing.T) {
	n := Name{
		{NewAttribute(oids.CountryName, "FR")},
		{NewAttribute(oids.CommonName, "a"), NewAttribute(oids.OrganizationalUnitName, "b")},
	}
	assert.Equal(t, "CN=a+OU=b,C=FR", n.String())
}
