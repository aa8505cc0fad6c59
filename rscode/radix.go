package rscode

// MaxDigits is the number of decimal digits in the largest uint64.
const MaxDigits = 20

// Digits splits n into its big-endian decimal digits. Cells past length are
// zero. Zero yields a single digit.
func Digits(n uint64) (digits [MaxDigits]byte, length int) {
	var rev [MaxDigits]byte
	for {
		rev[length] = byte(n % 10)
		length++
		n /= 10
		if n == 0 {
			break
		}
	}
	for i := 0; i < length; i++ {
		digits[i] = rev[length-1-i]
	}
	return digits, length
}

// Convert reads src as a big-endian number in base from and appends its
// big-endian digits in base to onto dst.
//
// Each pass is one long division of the working number by to: the remainder
// is the next output digit, least significant first, and the quotient
// (leading zeros dropped) becomes the next working number. Passes stop once
// the quotient is empty, then the emitted digits are reversed in place so
// the result reads most significant first. An empty or all-zero src gives a
// single zero digit.
func Convert(dst, src []byte, from, to int) []byte {
	var scratch [32]byte
	work := append(scratch[:0], src...)
	start := len(dst)

	for n := len(work); ; {
		q, rem := 0, 0
		for i := 0; i < n; i++ {
			rem = rem*from + int(work[i])
			if rem >= to {
				work[q] = byte(rem / to)
				rem %= to
				q++
			} else if q > 0 {
				work[q] = 0
				q++
			}
		}
		n = q
		dst = append(dst, byte(rem))
		if n == 0 {
			break
		}
	}

	out := dst[start:]
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return dst
}
