package der

import (
	"reflect"

	"github.com/ansel1/merry"
)

// Validate checks the schema of v's type for tag collisions, which the
// compiler itself does not detect: CHOICE variants which accept the same
// tag, and OPTIONAL or DEFAULT record fields which can claim the element
// meant for a following field.  Such schemas compile, but some encodings
// cannot be decoded back.
//
// v may be a value or a pointer.  Validate also returns any error from
// compiling the schema.
func Validate(v interface{}) error {
	typ := reflect.TypeOf(v)
	if typ == nil {
		return merry.Here(ErrUnsupportedType).Append("cannot validate nil")
	}
	cd, err := codecFor(typ, valueOpts{})
	if err != nil {
		return err
	}
	return validateCodec(cd, map[codec]bool{})
}

func validateCodec(cd codec, seen map[codec]bool) error {
	switch c := cd.(type) {
	case *structCodec:
		if seen[c] {
			return nil
		}
		seen[c] = true
		for i := range c.fields {
			a := &c.fields[i]
			if !a.opts.optional && !a.opts.hasDefault {
				continue
			}
			for j := i + 1; j < len(c.fields); j++ {
				b := &c.fields[j]
				if err := checkOverlap(a, b); err != nil {
					return err
				}
				if !b.opts.optional && !b.opts.hasDefault {
					break
				}
			}
		}
		return validateFields(c.fields, seen)
	case *choiceCodec:
		if seen[c] {
			return nil
		}
		seen[c] = true
		for i := range c.variants {
			for j := i + 1; j < len(c.variants); j++ {
				if err := checkOverlap(&c.variants[i], &c.variants[j]); err != nil {
					return err
				}
			}
		}
		return validateFields(c.variants, seen)
	case *sliceCodec:
		if seen[c] {
			return nil
		}
		seen[c] = true
		return validateCodec(c.elem, seen)
	case ptrCodec:
		return validateCodec(c.elem, seen)
	case simplePtrCodec:
		return validateCodec(c.elem, seen)
	}
	return nil
}

func validateFields(fields []fieldInfo, seen map[codec]bool) error {
	for i := range fields {
		if err := validateCodec(fields[i].codec, seen); err != nil {
			return err
		}
	}
	return nil
}

func checkOverlap(a, b *fieldInfo) error {
	for t := 0; t < 256; t++ {
		tag := Tag(t)
		if a.accepts(tag) && b.accepts(tag) {
			log.Debug("tag conflict", "field", a.label, "other", b.label, "tag", tag.String())
			return merry.Here(ErrTagConflict).Appendf("%s and %s both accept tag %s", a.label, b.label, tag)
		}
	}
	return nil
}
