package burstid

import (
	"strings"

	"github.com/paraglidehq/burstid/rscode"
)

// Re-exported so callers can use errors.Is without importing rscode.
var (
	ErrCodewordTooLong = rscode.ErrCodewordTooLong
	ErrCodewordInvalid = rscode.ErrCodewordInvalid
	ErrOverflow        = rscode.ErrOverflow
)

// Address is the checksummed text form of an ID, e.g.
// "BURST-B982-YTG4-ZS2F-2C55D". Comparison is by exact string match.
type Address string

// NewAddress wraps s without validating it.
func NewAddress(s string) Address {
	return Address(s)
}

func (a Address) String() string {
	return string(a)
}

// ID converts the address back to a numeric ID.
func (a Address) ID() (ID, error) {
	return ToID(a)
}

// Valid reports whether the address parses and passes its parity check.
func (a Address) Valid() bool {
	_, err := ToID(a)
	return err == nil
}

// Address returns the checksummed address of the ID.
func (id ID) Address() Address {
	return ToAddress(id)
}

// ToAddress encodes id as PREFIX-XXXX-XXXX-XXXX-XXXXX using Prefix.
// Every ID has an address.
func ToAddress(id ID) Address {
	body := rscode.Encode(uint64(id))
	if Prefix == "" {
		return Address(body)
	}
	return Address(Prefix + "-" + body)
}

// ToID decodes an address. It returns an error wrapping ErrCodewordTooLong
// when more than 17 alphabet characters follow the prefix, ErrCodewordInvalid
// when fewer are found or the parity check fails, and ErrOverflow when the
// encoded value does not fit in 64 bits.
func ToID(a Address) (ID, error) {
	return ParseAddress(string(a))
}

// ParseAddress parses a checksummed address into an ID. Only a single
// leading Prefix followed by a dash is removed, not every occurrence of
// it: a prefix appearing later in s is read as address symbols, so
// "BURST-BURST-B982-..." fails with ErrCodewordTooLong. Any other character
// that is not part of the address alphabet is ignored.
func ParseAddress(s string) (ID, error) {
	if Prefix != "" {
		s = strings.TrimPrefix(s, Prefix+"-")
	}
	n, err := rscode.Decode(s)
	if err != nil {
		return Nil, err
	}
	return ID(n), nil
}
