package derutil

import (
	"encoding/hex"
	"errors"

	"github.com/ansel1/merry"
)

var ErrInvalidHexString = errors.New("invalid hex string")

// Hex2bytes decodes s, ignoring every character which is not a hex digit, so
// formatted dumps ("30 03 | 01 01 ff") decode as well.  It panics if the
// remaining digits are of odd count.
func Hex2bytes(s string) []byte {
	b, err := DecodeHex(s)
	if err != nil {
		panic(err)
	}
	return b
}

// DecodeHex is Hex2bytes returning an error instead of panicking.
func DecodeHex(s string) ([]byte, error) {
	digits := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
			digits = append(digits, c)
		}
	}
	if len(digits)%2 != 0 {
		return nil, merry.Here(ErrInvalidHexString).Appendf("odd number of hex digits (%d)", len(digits))
	}
	b := make([]byte, len(digits)/2)
	if _, err := hex.Decode(b, digits); err != nil {
		return nil, merry.Here(ErrInvalidHexString).WithCause(err)
	}
	return b, nil
}
