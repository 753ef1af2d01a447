package derutil

import (
	"errors"
)

var (
	ErrTruncated  = errors.New("base-128 integer is truncated")
	ErrOverflow   = errors.New("base-128 integer does not fit 32 bits")
	ErrNotMinimal = errors.New("base-128 integer is not minimally encoded")
)

// maxBase128Len is the number of 7 bit groups needed for a 32 bit value.
const maxBase128Len = 5

// Base128Len returns the number of bytes needed to encode n.
func Base128Len(n uint32) int {
	if n == 0 {
		return 1
	}
	l := 0
	for i := n; i > 0; i >>= 7 {
		l++
	}
	return l
}

// AppendBase128 appends n to dst as big-endian 7 bit groups, with the high bit
// set on every group but the last.
func AppendBase128(dst []byte, n uint32) []byte {
	for i := Base128Len(n) - 1; i >= 0; i-- {
		b := byte(n>>(uint(i)*7)) & 0x7f
		if i != 0 {
			b |= 0x80
		}
		dst = append(dst, b)
	}
	return dst
}

// ReadBase128 decodes one base-128 integer from the front of data, and returns
// it with the remaining bytes.
func ReadBase128(data []byte) (uint32, []byte, error) {
	if len(data) == 0 {
		return 0, data, ErrTruncated
	}
	if data[0] == 0x80 {
		return 0, data, ErrNotMinimal
	}
	var n uint32
	for i := 0; i < maxBase128Len; i++ {
		if i == len(data) {
			return 0, data, ErrTruncated
		}
		b := data[i]
		if n > 0x1ffffff {
			// another 7 bits would not fit
			return 0, data, ErrOverflow
		}
		n = n<<7 | uint32(b&0x7f)
		if b&0x80 == 0 {
			return n, data[i+1:], nil
		}
	}
	return 0, data, ErrOverflow
}
