package der

import (
	"errors"
	"strings"

	"github.com/ansel1/merry"
)

// Error kinds.  Every error returned by this package wraps one of these, so
// callers can test for the kind with errors.Is or merry.Is.
var (
	// ErrUnexpectedTag is returned when an element's tag matches none of the
	// expected alternatives.  ActualTag returns the offending tag.
	ErrUnexpectedTag = errors.New("unexpected tag")
	// ErrInvalidValue is returned for malformed content: bad length octets,
	// malformed base-128 integers, non-canonical forms.
	ErrInvalidValue = errors.New("invalid value")
	// ErrOIDTooLong is returned when an object identifier does not fit the
	// fixed capacity of ObjectIdentifier.
	ErrOIDTooLong = errors.New("object identifier too long")
	// ErrShortData is returned when the input ends before the element does.
	ErrShortData = errors.New("short data")
	// ErrExtraData is returned when a complete parse leaves bytes unconsumed.
	ErrExtraData = errors.New("extra data")
	// ErrSchema is returned when a Go type cannot be compiled into a codec,
	// e.g. because of a malformed struct tag or a default literal which does
	// not convert to the field's type.
	ErrSchema = errors.New("invalid schema")
	// ErrTagConflict is returned by Validate when two alternatives of a
	// schema can claim the same tag.
	ErrTagConflict = errors.New("tag conflict")
	// ErrUnsupportedType is returned when a Go type has no DER mapping.
	ErrUnsupportedType = errors.New("marshaling/unmarshaling is not supported for this type")
)

type errKey int

const (
	errorKeyLocation errKey = iota
	errorKeyActualTag
)

func init() {
	merry.RegisterDetail("Location", errorKeyLocation)
	merry.RegisterDetail("Actual Tag", errorKeyActualTag)
}

func Is(err error, originals ...error) bool {
	return merry.Is(err, originals...)
}

func Details(err error) string {
	return merry.Details(err)
}

func unexpectedTag(actual Tag) error {
	err := merry.WrapSkipping(ErrUnexpectedTag, 1).Appendf("actual tag %s (%#v)", actual, actual)
	return merry.WithValue(err, errorKeyActualTag, actual)
}

func invalidValue(msg string) merry.Error {
	return merry.WrapSkipping(ErrInvalidValue, 1).Append(msg)
}

func shortData(msg string) merry.Error {
	return merry.WrapSkipping(ErrShortData, 1).Append(msg)
}

// ActualTag returns the tag carried by an ErrUnexpectedTag error.
func ActualTag(err error) (Tag, bool) {
	tag, ok := merry.Value(err, errorKeyActualTag).(Tag)
	return tag, ok
}

// AddLocation annotates err with one more level of location context.  Labels
// are added while unwinding, so the outermost label is added last and ends up
// first in the path.
func AddLocation(err error, label string) error {
	if err == nil {
		return nil
	}
	locs, _ := merry.Value(err, errorKeyLocation).([]string)
	path := make([]string, 0, len(locs)+1)
	path = append(path, label)
	path = append(path, locs...)
	return merry.WithValue(err, errorKeyLocation, path)
}

// Location returns the path to the element which caused err, e.g.
// "Certificate::TBSCertificate::TBSCertificate::Validity".  It returns ""
// when err carries no location.
func Location(err error) string {
	locs, _ := merry.Value(err, errorKeyLocation).([]string)
	return strings.Join(locs, "::")
}
