// Package pkix declares X.509 certificate structures (RFC 5280) as der
// schemas.
package pkix

import (
	"math/big"

	"github.com/gemalto/der-go/der"
)

// AlgorithmIdentifier names an algorithm and its optional parameters.
type AlgorithmIdentifier struct {
	Algorithm  der.ObjectIdentifier
	Parameters *der.TLV `der:"optional"`
}

// SubjectPublicKeyInfo is a public key and its algorithm.
type SubjectPublicKeyInfo struct {
	Algorithm        AlgorithmIdentifier
	SubjectPublicKey der.BitString
}

// Certificate versions.  Version is zero based: X.509 v3 is 2.
const (
	Version1 = 0
	Version2 = 1
	Version3 = 2
)

// TBSCertificate is the signed part of a certificate.
type TBSCertificate struct {
	Version              int `der:"tag:0,explicit,default:0"`
	SerialNumber         *big.Int
	Signature            AlgorithmIdentifier
	Issuer               Name
	Validity             Validity
	Subject              Name
	SubjectPublicKeyInfo SubjectPublicKeyInfo
	IssuerUniqueID       *der.BitString `der:"tag:1,optional"`
	SubjectUniqueID      *der.BitString `der:"tag:2,optional"`
	Extensions           []Extension    `der:"tag:3,explicit,optional"`
}

// Certificate is an X.509 certificate.
type Certificate struct {
	TBSCertificate     TBSCertificate
	SignatureAlgorithm AlgorithmIdentifier
	SignatureValue     der.BitString

	// Raw and RawTBSCertificate are set by ParseCertificate.  They are views
	// into the parsed input.
	Raw               der.TLV `der:"-"`
	RawTBSCertificate der.TLV `der:"-"`
}

// ParseCertificate decodes a DER certificate.  The input must hold exactly
// one certificate.
func ParseCertificate(data []byte) (*Certificate, error) {
	cert := &Certificate{}
	err := der.Parse(data, func(p *der.Parser) error {
		outer, err := p.ReadTLV()
		if err != nil {
			return err
		}
		if err := der.Unmarshal(outer.FullData(), cert); err != nil {
			return err
		}
		children, err := outer.Children()
		if err != nil {
			return err
		}
		cert.Raw = outer
		cert.RawTBSCertificate = children[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cert, nil
}
