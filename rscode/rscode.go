// Package rscode converts 64-bit account IDs to and from the Reed-Solomon
// address body used by Burst, e.g. "B982-YTG4-ZS2F-2C55D".
//
// An ID is written as 13 base-32 data symbols followed by 4 parity symbols
// computed over GF(32). The 17 symbols are permuted and rendered with a
// 32-character alphabet that omits 0, 1, I and O. All tables are read-only,
// so every function in this package is safe for concurrent use.
package rscode

import (
	"errors"
	"fmt"
	"math/bits"
)

const (
	// DataLength is the number of base-32 symbols carrying the ID.
	DataLength = 13
	// ParityLength is the number of check symbols appended to the data.
	ParityLength = 4
	// Length is the total number of symbols in a codeword.
	Length = DataLength + ParityLength
)

var (
	// ErrCodewordTooLong is returned when more than Length alphabet
	// characters are found in an address.
	ErrCodewordTooLong = errors.New("burstid: codeword too long")
	// ErrCodewordInvalid is returned when an address has fewer than Length
	// symbols or fails the parity check.
	ErrCodewordInvalid = errors.New("burstid: codeword invalid")
	// ErrOverflow is returned when a well-formed codeword encodes a value
	// that does not fit in 64 bits.
	ErrOverflow = errors.New("burstid: address out of 64-bit range")
)

// CodewordError reports a failed parse together with the symbols that were
// read. It unwraps to ErrCodewordTooLong or ErrCodewordInvalid.
type CodewordError struct {
	Err      error
	Codeword Codeword
	Symbols  int
}

func (e *CodewordError) Error() string {
	return fmt.Sprintf("%v: %d symbols %v", e.Err, e.Symbols, e.Codeword)
}

func (e *CodewordError) Unwrap() error {
	return e.Err
}

// Codeword holds the data symbols at indexes 0-12, least significant first,
// and the parity symbols at indexes 13-16. Every symbol is in [0, 31].
type Codeword [Length]byte

// Feedback multipliers of the parity shift register.
var generator = [ParityLength]byte{17, 9, 6, 30}

// SetParity computes the parity symbols over the data symbols and stores
// them at indexes 13-16.
func (cw *Codeword) SetParity() {
	var p [ParityLength]byte
	for i := DataLength - 1; i >= 0; i-- {
		fb := cw[i] ^ p[3]
		p[3] = p[2] ^ Mul(generator[3], fb)
		p[2] = p[1] ^ Mul(generator[2], fb)
		p[1] = p[0] ^ Mul(generator[1], fb)
		p[0] = Mul(generator[0], fb)
	}
	copy(cw[DataLength:], p[:])
}

// Valid reports whether all four syndromes of the codeword are zero.
func (cw Codeword) Valid() bool {
	var sum byte
	for i := 1; i <= ParityLength; i++ {
		var t byte
		for j := 0; j < 31; j++ {
			if j > 12 && j < 27 {
				continue
			}
			pos := j
			if j > 26 {
				pos -= 14
			}
			t ^= Mul(cw[pos], gexp[(i*j)%31])
		}
		sum |= t
	}
	return sum == 0
}

// FromID builds the codeword for id, parity included.
func FromID(id uint64) Codeword {
	digits, n := Digits(id)

	var buf [DataLength]byte
	b32 := Convert(buf[:0], digits[:n], 10, 32)

	var cw Codeword
	for i := range b32 {
		cw[i] = b32[len(b32)-1-i]
	}
	cw.SetParity()
	return cw
}

// ID returns the value carried by the data symbols. The parity symbols are
// not checked.
func (cw Codeword) ID() (uint64, error) {
	var src [DataLength]byte
	for i := range src {
		src[i] = cw[DataLength-1-i]
	}

	var buf [MaxDigits + 1]byte
	dec := Convert(buf[:0], src[:], 32, 10)

	var id uint64
	for _, d := range dec {
		hi, lo := bits.Mul64(id, 10)
		sum, carry := bits.Add64(lo, uint64(d), 0)
		if hi != 0 || carry != 0 {
			return 0, ErrOverflow
		}
		id = sum
	}
	return id, nil
}

// Encode returns the address body for id. It never fails.
func Encode(id uint64) string {
	return Format(FromID(id))
}

// Decode parses an address body and returns the ID it carries.
func Decode(s string) (uint64, error) {
	cw, err := Parse(s)
	if err != nil {
		return 0, err
	}
	return cw.ID()
}
