package oids

import (
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/gemalto/der-go/der"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerated(t *testing.T) {
	var defs struct {
		OID []struct {
			Name    string
			GoName  string `toml:"go_name"`
			Value   string
			Comment string
		}
	}
	_, err := toml.DecodeFile("oids.toml", &defs)
	require.NoError(t, err)
	require.NotEmpty(t, defs.OID)

	// every definition is registered under its parsed value, so the
	// generated byte literals match the dotted values
	for _, d := range defs.OID {
		oid, err := der.ParseObjectIdentifier(d.Value)
		require.NoError(t, err, d.Name)
		assert.Equal(t, d.Name, oid.Name(), d.Value)
	}
}

func TestValues(t *testing.T) {
	tests := []struct {
		oid  der.ObjectIdentifier
		s    string
		name string
	}{
		{CommonName, "2.5.4.3", "commonName"},
		{CountryName, "2.5.4.6", "countryName"},
		{RSAEncryption, "1.2.840.113549.1.1.1", "rsaEncryption"},
		{ECDSAWithSHA256, "1.2.840.10045.4.3.2", "ecdsa-with-SHA256"},
		{Ed25519, "1.3.101.112", "id-Ed25519"},
		{SubjectAltName, "2.5.29.17", "id-ce-subjectAltName"},
		{BasicConstraints, "2.5.29.19", "id-ce-basicConstraints"},
		{ServerAuth, "1.3.6.1.5.5.7.3.1", "id-kp-serverAuth"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.s, tc.oid.String())
			assert.Equal(t, tc.name, tc.oid.Name())
			assert.Equal(t, der.MustParseObjectIdentifier(tc.s), tc.oid)
		})
	}
}
