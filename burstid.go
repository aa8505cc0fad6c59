package burstid

import (
	"database/sql"
	"database/sql/driver"
	"encoding"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/paraglidehq/burstid/base58"
)

var (
	_ fmt.Stringer               = ID(0)
	_ driver.Valuer              = ID(0)
	_ sql.Scanner                = (*ID)(nil)
	_ encoding.TextMarshaler     = ID(0)
	_ encoding.TextUnmarshaler   = (*ID)(nil)
	_ encoding.BinaryMarshaler   = ID(0)
	_ encoding.BinaryUnmarshaler = (*ID)(nil)
	_ json.Marshaler             = ID(0)
	_ json.Unmarshaler           = (*ID)(nil)
)

// ErrEmpty is returned when parsing an empty string.
var ErrEmpty = errors.New("burstid: empty account")

// Format selects how ID.Format renders an ID.
type Format string

const (
	FormatAddress Format = "address"
	FormatDecimal Format = "decimal"
	FormatBase58  Format = "base58"
)

// ParseFormat returns the Format named by s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatAddress, FormatDecimal, FormatBase58:
		return f, nil
	default:
		return "", fmt.Errorf("burstid: unknown format %q", s)
	}
}

// ID is a Burst account ID. Nodes print it as an unsigned decimal in the
// "account" field of API responses and keep it in signed BIGINT columns, so
// it has two decimal spellings for values of 2^63 and above.
type ID uint64

const Nil ID = 0

func (id ID) Uint64() uint64 {
	return uint64(id)
}

// Int64 returns the two's-complement value stored in BIGINT columns.
func (id ID) Int64() int64 {
	return int64(id)
}

func (id ID) IsNil() bool {
	return id == Nil
}

// Bytes returns the ID the way it appears inside transaction bytes:
// 8 bytes, little-endian.
func (id ID) Bytes() []byte {
	return binary.LittleEndian.AppendUint64(nil, uint64(id))
}

func (id ID) String() string {
	return id.Format(DefaultFormat)
}

func (id ID) Format(f Format) string {
	switch f {
	case FormatDecimal:
		return strconv.FormatUint(uint64(id), 10)
	case FormatBase58:
		return base58.Encode(uint64(id))
	default:
		return string(ToAddress(id))
	}
}

// MarshalText returns the unsigned decimal, which is how nodes spell the
// "account" field regardless of DefaultFormat.
func (id ID) MarshalText() ([]byte, error) {
	return strconv.AppendUint(nil, uint64(id), 10), nil
}

// UnmarshalText accepts anything Parse does.
func (id *ID) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// MarshalJSON writes the ID as a quoted unsigned decimal.
func (id ID) MarshalJSON() ([]byte, error) {
	b := append([]byte{'"'}, strconv.AppendUint(nil, uint64(id), 10)...)
	return append(b, '"'), nil
}

// UnmarshalJSON accepts a JSON number, signed or not, or a string holding
// anything Parse accepts. null leaves the ID unchanged.
func (id *ID) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		return nil
	}
	if len(s) > 0 && s[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("burstid: invalid JSON string %s", s)
		}
		return id.UnmarshalText([]byte(unquoted))
	}
	parsed, err := ParseDecimal(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// MarshalBinary returns Bytes.
func (id ID) MarshalBinary() ([]byte, error) {
	return id.Bytes(), nil
}

func (id *ID) UnmarshalBinary(b []byte) error {
	parsed, err := FromBytes(b)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Value stores the ID as a signed BIGINT.
func (id ID) Value() (driver.Value, error) {
	return int64(id), nil
}

// Scan reads BIGINT columns, negative values included, and text columns
// holding a decimal ID or an address.
func (id *ID) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*id = Nil
		return nil
	case int64:
		*id = ID(v)
		return nil
	case uint64:
		*id = ID(v)
		return nil
	case []byte:
		return id.UnmarshalText(v)
	case string:
		return id.UnmarshalText([]byte(v))
	default:
		return fmt.Errorf("burstid: cannot scan %T into ID", src)
	}
}

// Parse reads an account the way a node reads an "account" request
// parameter: a decimal ID, signed or unsigned, or else an address with or
// without Prefix. A bare address body made only of digits, with no dashes,
// is read as a decimal.
func Parse(s string) (ID, error) {
	if s == "" {
		return Nil, ErrEmpty
	}
	if isDecimal(s) {
		return ParseDecimal(s)
	}
	return ParseAddress(s)
}

// ParseDecimal parses an unsigned decimal ID, or a negative one as read
// from a signed column.
func ParseDecimal(s string) (ID, error) {
	if s == "" {
		return Nil, ErrEmpty
	}
	if s[0] == '-' {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Nil, fmt.Errorf("burstid: invalid signed ID: %w", err)
		}
		return ID(n), nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return Nil, fmt.Errorf("burstid: invalid ID: %w", err)
	}
	return ID(n), nil
}

// ParseBase58 parses a base58-encoded ID.
func ParseBase58(s string) (ID, error) {
	if s == "" {
		return Nil, ErrEmpty
	}
	n, err := base58.Decode(s)
	if err != nil {
		return Nil, err
	}
	return ID(n), nil
}

// FromBytes reads the 8-byte little-endian form returned by Bytes.
func FromBytes(b []byte) (ID, error) {
	if len(b) != 8 {
		return Nil, fmt.Errorf("burstid: account ID is 8 bytes, got %d", len(b))
	}
	return ID(binary.LittleEndian.Uint64(b)), nil
}

func FromUint64(n uint64) ID {
	return ID(n)
}

// FromInt64 returns the ID held in a signed column.
func FromInt64(n int64) ID {
	return ID(n)
}

func isDecimal(s string) bool {
	if s[0] == '-' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
