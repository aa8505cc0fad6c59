package rscode

import "strings"

// Alphabet maps symbol values to characters. Matching is case-sensitive.
const Alphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// codewordMap gives, for each character position of the address body, the
// codeword index it renders.
var codewordMap = [Length]int{3, 2, 1, 0, 7, 6, 5, 4, 13, 14, 15, 16, 12, 8, 9, 10, 11}

var decode [128]int8

func init() {
	for i := range decode {
		decode[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		decode[Alphabet[i]] = int8(i)
	}
}

// Format renders a codeword as "XXXX-XXXX-XXXX-XXXXX".
func Format(cw Codeword) string {
	var b strings.Builder
	b.Grow(Length + 3)
	for i, idx := range codewordMap {
		b.WriteByte(Alphabet[cw[idx]])
		if i&3 == 3 && i < 13 {
			b.WriteByte('-')
		}
	}
	return b.String()
}

// Parse reads the symbols of an address body back into a codeword and
// checks its parity. Characters outside Alphabet, dashes and lower case
// letters included, are skipped rather than rejected.
func Parse(s string) (Codeword, error) {
	cw := Codeword{1}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 128 || decode[c] < 0 {
			continue
		}
		if n >= Length {
			return cw, &CodewordError{Err: ErrCodewordTooLong, Codeword: cw, Symbols: n + 1}
		}
		cw[codewordMap[n]] = byte(decode[c])
		n++
	}
	if n != Length || !cw.Valid() {
		return cw, &CodewordError{Err: ErrCodewordInvalid, Codeword: cw, Symbols: n}
	}
	return cw, nil
}
