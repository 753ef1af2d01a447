package der_test

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gemalto/der-go/der"
)

func ExampleMarshal() {
	type Extension struct {
		ExtnID    der.ObjectIdentifier
		Critical  bool `der:"default:false"`
		ExtnValue []byte
	}

	b, err := der.Marshal(Extension{
		ExtnID:    der.MustParseObjectIdentifier("2.5.29.19"),
		ExtnValue: []byte{0x30, 0x00},
	})
	if err != nil {
		panic(err)
	}
	fmt.Println(hex.EncodeToString(b))
	// Output: 30090603551d1304023000
}

func ExampleUnmarshal() {
	type Validity struct {
		NotBefore time.Time
		NotAfter  time.Time `der:"generalized"`
	}

	b, _ := hex.DecodeString("3020170d3230303130313030303030305a180f32303530303130313030303030305a")
	var v Validity
	if err := der.Unmarshal(b, &v); err != nil {
		panic(err)
	}
	fmt.Println(v.NotBefore.Format(time.RFC3339), v.NotAfter.Format(time.RFC3339))
	// Output: 2020-01-01T00:00:00Z 2050-01-01T00:00:00Z
}

func ExampleParser() {
	b, _ := hex.DecodeString("30060201050101ff")

	var n der.Integer
	var flag der.Boolean
	err := der.Parse(b, func(p *der.Parser) error {
		var seq der.Sequence
		if err := p.ReadElement(&seq); err != nil {
			return err
		}
		return seq.Parse(func(p *der.Parser) error {
			if err := p.ReadElement(&n); err != nil {
				return err
			}
			_, err := p.ReadOptionalElement(&flag)
			return err
		})
	})
	fmt.Println(n, flag, err)
	// Output: 5 true <nil>
}

func ExampleWriter() {
	b := der.Write(func(w *der.Writer) {
		w.WriteSequence(func(w *der.Writer) {
			w.WriteElement(der.Integer(5))
			w.WriteImplicitElement(der.IA5String("example.com"), 2)
		})
	})
	fmt.Println(hex.EncodeToString(b))
	// Output: 3010020105820b6578616d706c652e636f6d
}

func ExamplePrint() {
	der.RegisterObjectIdentifier(der.MustParseObjectIdentifier("2.5.4.3"), "commonName")

	b, _ := hex.DecodeString("300d02010506035504030c03616263")
	_ = der.Print(os.Stdout, "", "  ", b)
	// Output:
	// SEQUENCE (13):
	//   INTEGER (1): 5
	//   OBJECT IDENTIFIER (3): 2.5.4.3 (commonName)
	//   UTF8String (3): "abc"
}

func ExampleValidate() {
	type Record struct {
		Nickname *string `der:"optional"`
		Name     string
	}

	err := der.Validate(Record{})
	fmt.Println(errors.Is(err, der.ErrTagConflict))
	// Output: true
}
