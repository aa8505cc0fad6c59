package burstid

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/paraglidehq/burstid/credential"
)

var (
	Prefix        string = "BURST"
	DefaultFormat Format = FormatAddress
)

// ErrAccountMismatch is returned by Account.Check when the address decodes
// to a different ID.
var ErrAccountMismatch = errors.New("burstid: account and accountRS disagree")

// Account is an ID paired with its address, under the keys nodes use in
// API responses:
//
//	{"account":"399812073269533888","accountRS":"BURST-B982-YTG4-ZS2F-2C55D"}
type Account struct {
	ID      ID      `json:"account"`
	Address Address `json:"accountRS"`
}

// NewAccount pairs id with its address under the current Prefix.
func NewAccount(id ID) Account {
	return Account{ID: id, Address: ToAddress(id)}
}

// Check reports whether Address is valid and encodes ID.
func (a Account) Check() error {
	id, err := ToID(a.Address)
	if err != nil {
		return err
	}
	if id != a.ID {
		return fmt.Errorf("%w: %s is %d, not %d", ErrAccountMismatch, a.Address, id.Uint64(), a.ID.Uint64())
	}
	return nil
}

// FromPublicKey returns the account ID owned by a 32-byte public key: the
// first 8 bytes of its SHA-256 digest, read little-endian.
func FromPublicKey(pub []byte) ID {
	sum := sha256.Sum256(pub)
	return ID(binary.LittleEndian.Uint64(sum[:8]))
}

// FromPassphrase derives the account ID of a passphrase. The passphrase is
// left intact; the caller still owns and destroys it.
func FromPassphrase(p *credential.Passphrase) (ID, error) {
	pub, err := p.PublicKey()
	if err != nil {
		return Nil, err
	}
	return FromPublicKey(pub), nil
}
