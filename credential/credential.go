// Package credential holds account secrets in buffers that are wiped when
// they are no longer needed.
package credential

import (
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/curve25519"
)

// MaxLength is the longest passphrase Read accepts.
const MaxLength = 1024

var (
	// ErrDestroyed is returned when a destroyed Passphrase is used.
	ErrDestroyed = errors.New("burstid: passphrase destroyed")
	ErrTooLong   = errors.New("burstid: passphrase too long")
)

// Passphrase owns the bytes of an account passphrase. Destroy overwrites
// them with zeros.
type Passphrase struct {
	b []byte
}

// New takes ownership of b. The caller must not use b afterwards, as
// Destroy zeroes it in place up to its capacity.
func New(b []byte) *Passphrase {
	if b == nil {
		b = []byte{}
	}
	return &Passphrase{b: b}
}

// FromString copies s into a new Passphrase. The string itself cannot be
// wiped.
func FromString(s string) *Passphrase {
	return New([]byte(s))
}

// Read reads a passphrase from r into one fixed buffer of MaxLength+1
// bytes that is never reallocated. A trailing line ending is cut from the returned slice but stays within its
// capacity, which Destroy clears too.
func Read(r io.Reader) ([]byte, error) {
	buf := make([]byte, MaxLength+1)
	n, err := io.ReadFull(r, buf)
	switch {
	case err == nil:
		clear(buf)
		return nil, ErrTooLong
	case err != io.EOF && err != io.ErrUnexpectedEOF:
		clear(buf)
		return nil, err
	}
	for n > 0 && (buf[n-1] == '\n' || buf[n-1] == '\r') {
		n--
	}
	return buf[:n], nil
}

// WithPassphrase runs fn with a Passphrase built from b and destroys it
// once fn returns or panics.
func WithPassphrase(b []byte, fn func(*Passphrase) error) error {
	p := New(b)
	defer p.Destroy()
	return fn(p)
}

// Bytes returns the underlying buffer. It is only valid until Destroy.
func (p *Passphrase) Bytes() []byte {
	return p.b
}

func (p *Passphrase) Destroyed() bool {
	return p.b == nil
}

// Destroy zeroes the buffer, including any capacity beyond its length.
// Calling it more than once is a no-op.
func (p *Passphrase) Destroy() {
	clear(p.b[:cap(p.b)])
	p.b = nil
}

func (p *Passphrase) String() string {
	return "[redacted]"
}

func (p *Passphrase) GoString() string {
	return "credential.Passphrase{[redacted]}"
}

// PublicKey returns the Curve25519 public key whose private scalar is the
// SHA-256 digest of the passphrase.
func (p *Passphrase) PublicKey() ([]byte, error) {
	if p.Destroyed() {
		return nil, ErrDestroyed
	}
	priv := sha256.Sum256(p.b)
	defer clear(priv[:])
	return curve25519.X25519(priv[:], curve25519.Basepoint)
}
