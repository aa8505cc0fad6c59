package rscode

// Exponent and logarithm tables for GF(32). gexp[31] wraps to 1 so that
// exponents up to 31 can be looked up without reduction.
var gexp = [32]byte{
	1, 2, 4, 8, 16, 5, 10, 20, 13, 26, 17, 7, 14, 28, 29, 31,
	27, 19, 3, 6, 12, 24, 21, 15, 30, 25, 23, 11, 22, 9, 18, 1,
}

var glog = [32]byte{
	0, 0, 1, 18, 2, 5, 19, 11, 3, 29, 6, 27, 20, 8, 12, 23,
	4, 10, 30, 17, 7, 22, 28, 26, 21, 25, 9, 16, 13, 14, 24, 15,
}

// Mul multiplies two GF(32) elements. Both operands must be in [0, 31].
func Mul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return gexp[(int(glog[a])+int(glog[b]))%31]
}
