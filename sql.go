package burstid

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

var (
	_ driver.Valuer    = NullID{}
	_ sql.Scanner      = (*NullID)(nil)
	_ json.Marshaler   = NullID{}
	_ json.Unmarshaler = (*NullID)(nil)
	_ driver.Valuer    = Address("")
	_ sql.Scanner      = (*Address)(nil)
)

// NullID is an account column that may be NULL, such as the recipient of
// a transaction type that has none.
type NullID struct {
	ID    ID
	Valid bool
}

func (n NullID) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.ID.Value()
}

func (n *NullID) Scan(src any) error {
	*n = NullID{}
	if src == nil {
		return nil
	}
	if err := n.ID.Scan(src); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// MarshalJSON writes null or the quoted decimal ID.
func (n NullID) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return n.ID.MarshalJSON()
}

func (n *NullID) UnmarshalJSON(b []byte) error {
	*n = NullID{}
	if string(b) == "null" {
		return nil
	}
	if err := n.ID.UnmarshalJSON(b); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// Value stores the address as text. It must pass its parity check.
func (a Address) Value() (driver.Value, error) {
	if _, err := ToID(a); err != nil {
		return nil, fmt.Errorf("burstid: cannot store address %q: %w", string(a), err)
	}
	return string(a), nil
}

// Scan reads text columns holding an address as is. BIGINT columns, and
// text columns holding a decimal ID, are rendered with Prefix.
func (a *Address) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case int64:
		*a = ToAddress(ID(v))
		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("burstid: cannot scan %T into Address", src)
	}
	if s != "" && isDecimal(s) {
		id, err := ParseDecimal(s)
		if err != nil {
			return err
		}
		*a = ToAddress(id)
		return nil
	}
	*a = Address(s)
	return nil
}
