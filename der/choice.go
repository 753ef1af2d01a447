package der

import (
	"reflect"
)

// choiceCodec maps a struct with a DERChoice marker field to an ASN.1
// CHOICE.  Exactly one variant field is set.
type choiceCodec struct {
	typ      reflect.Type
	variants []fieldInfo
}

func (c *choiceCodec) canParse(tag Tag) bool {
	for i := range c.variants {
		if c.variants[i].accepts(tag) {
			return true
		}
	}
	return false
}

// decode sets the first variant, in declaration order, which accepts the
// element's tag.
func (c *choiceCodec) decode(tlv TLV, v reflect.Value) error {
	for i := range c.variants {
		fi := &c.variants[i]
		if !fi.accepts(tlv.Tag()) {
			continue
		}
		if err := fi.decodeElement(tlv, v.Field(fi.index)); err != nil {
			return AddLocation(err, fi.label)
		}
		return nil
	}
	return unexpectedTag(tlv.Tag())
}

func (c *choiceCodec) encode(w *Writer, v reflect.Value) error {
	var chosen *fieldInfo
	for i := range c.variants {
		fi := &c.variants[i]
		if v.Field(fi.index).IsNil() {
			continue
		}
		if chosen != nil {
			return invalidValue("choice " + c.typ.Name() + " has more than one variant set: " + chosen.name + " and " + fi.name)
		}
		chosen = fi
	}
	if chosen == nil {
		return invalidValue("choice " + c.typ.Name() + " has no variant set")
	}
	return AddLocation(chosen.write(w, v.Field(chosen.index)), chosen.label)
}
