// Package base58 provides Base58 encoding and decoding for uint64 values.
// It uses the Bitcoin alphabet which excludes 0, O, I, and l to avoid ambiguity.
package base58

import (
	"errors"
	"math/bits"
)

const alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

var decode [128]int8

func init() {
	for i := range decode {
		decode[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		decode[alphabet[i]] = int8(i)
	}
}

var (
	// ErrInvalidBase58 is returned when decoding a string with invalid Base58 characters.
	ErrInvalidBase58 = errors.New("burstid: invalid base58 character")
	// ErrOverflow is returned when the decoded value does not fit in a uint64.
	ErrOverflow = errors.New("burstid: base58 value out of range")
)

// Encode returns the Base58 encoding of the given uint64.
func Encode(id uint64) string {
	if id == 0 {
		return "1"
	}
	var buf [11]byte // 58^11 > 2^64
	i := len(buf)
	for id > 0 {
		i--
		buf[i] = alphabet[id%58]
		id /= 58
	}
	return string(buf[i:])
}

// Decode parses a Base58-encoded string and returns the uint64 value.
func Decode(s string) (uint64, error) {
	var id uint64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 128 || decode[c] < 0 {
			return 0, ErrInvalidBase58
		}
		hi, lo := bits.Mul64(id, 58)
		sum, carry := bits.Add64(lo, uint64(decode[c]), 0)
		if hi != 0 || carry != 0 {
			return 0, ErrOverflow
		}
		id = sum
	}
	return id, nil
}
