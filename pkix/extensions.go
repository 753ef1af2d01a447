package pkix

import (
	"github.com/ansel1/merry"
	"github.com/gemalto/der-go/der"
	"github.com/gemalto/der-go/oids"
)

// Extension is a certificate extension.  ExtnValue holds the DER encoding of
// the extension's own value.
type Extension struct {
	ExtnID    der.ObjectIdentifier
	Critical  bool `der:"default:false"`
	ExtnValue []byte
}

// NewExtension encodes value as the content of an extension.
func NewExtension(id der.ObjectIdentifier, critical bool, value interface{}) (Extension, error) {
	b, err := der.Marshal(value)
	if err != nil {
		return Extension{}, merry.Prependf(err, "encoding extension %v", id)
	}
	return Extension{ExtnID: id, Critical: critical, ExtnValue: b}, nil
}

// Decode unmarshals the extension value into v.
func (e Extension) Decode(v interface{}) error {
	return der.Unmarshal(e.ExtnValue, v)
}

// BasicConstraints is the value of the basicConstraints extension.
type BasicConstraints struct {
	IsCA       bool `der:"default:false"`
	MaxPathLen *int `der:"optional"`
}

// OtherName is the otherName variant of GeneralName.
type OtherName struct {
	TypeID der.ObjectIdentifier
	Value  der.TLV `der:"tag:0,explicit"`
}

// GeneralName identifies a subject or issuer in the subjectAltName and
// related extensions.
type GeneralName struct {
	DERChoice     struct{}
	OtherName     *OtherName            `der:"tag:0"`
	RFC822Name    *string               `der:"tag:1,ia5"`
	DNSName       *string               `der:"tag:2,ia5"`
	DirectoryName *Name                 `der:"tag:4,explicit"`
	URI           *string               `der:"tag:6,ia5"`
	IPAddress     []byte                `der:"tag:7"`
	RegisteredID  *der.ObjectIdentifier `der:"tag:8"`
}

// DNSName returns a GeneralName holding a DNS name.
func DNSName(name string) GeneralName {
	return GeneralName{DNSName: &name}
}

// GeneralNames is the value of the subjectAltName extension.
type GeneralNames []GeneralName

// DNSNames returns the DNS names among gns.
func (gns GeneralNames) DNSNames() []string {
	var names []string
	for _, gn := range gns {
		if gn.DNSName != nil {
			names = append(names, *gn.DNSName)
		}
	}
	return names
}

// Extension returns the first extension with the given id.
func (c *TBSCertificate) Extension(id der.ObjectIdentifier) (Extension, bool) {
	for _, e := range c.Extensions {
		if e.ExtnID == id {
			return e, true
		}
	}
	return Extension{}, false
}

// SubjectAltNames decodes the subjectAltName extension, if present.
func (c *TBSCertificate) SubjectAltNames() (GeneralNames, error) {
	e, ok := c.Extension(oids.SubjectAltName)
	if !ok {
		return nil, nil
	}
	var gns GeneralNames
	if err := e.Decode(&gns); err != nil {
		return nil, err
	}
	return gns, nil
}

// BasicConstraints decodes the basicConstraints extension, if present.
func (c *TBSCertificate) BasicConstraints() (*BasicConstraints, error) {
	e, ok := c.Extension(oids.BasicConstraints)
	if !ok {
		return nil, nil
	}
	var bc BasicConstraints
	if err := e.Decode(&bc); err != nil {
		return nil, err
	}
	return &bc, nil
}
