// Package password hashes and verifies account passwords with bcrypt.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor (2^10 rounds).
const Cost = 10

// MaxBytes is the longest password bcrypt accepts.
const MaxBytes = 72

// ErrMismatch is returned by Verify when the password does not match the hash.
var ErrMismatch = errors.New("password does not match")

// dummyHash is compared against when no account exists, so that unknown emails
// and wrong passwords take the same time to reject.
var dummyHash = mustHash("duochat-timing-equalizer")

func mustHash(pw string) []byte {
	h, err := bcrypt.GenerateFromPassword([]byte(pw), Cost)
	if err != nil {
		panic(err)
	}
	return h
}

// Hasher is the one-way salted hash used for stored credentials.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) error
}

// Bcrypt implements Hasher.
type Bcrypt struct {
	cost int
}

// NewBcrypt returns a bcrypt hasher with the given cost; zero selects Cost.
func NewBcrypt(cost int) *Bcrypt {
	if cost == 0 {
		cost = Cost
	}
	return &Bcrypt{cost: cost}
}

// Hash returns the salted bcrypt hash of password.
func (b *Bcrypt) Hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify returns nil when password matches hash and ErrMismatch otherwise.
// An empty hash is verified against a dummy value and always fails.
func (b *Bcrypt) Verify(hash, password string) error {
	target := []byte(hash)
	if hash == "" {
		target = dummyHash
	}

	if err := bcrypt.CompareHashAndPassword(target, []byte(password)); err != nil {
		return ErrMismatch
	}

	if hash == "" {
		return ErrMismatch
	}
	return nil
}
