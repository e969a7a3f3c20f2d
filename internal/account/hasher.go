package account

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher turns a password into its stored form and checks a
// candidate against it.
type PasswordHasher interface {
	Hash(pw string) (string, error)
	Verify(stored, pw string) bool
}

// PlaintextHasher stores passwords as given. It is the default and keeps
// rows readable by existing deployments; it is not fit for production.
type PlaintextHasher struct{}

func (PlaintextHasher) Hash(pw string) (string, error) { return pw, nil }

func (PlaintextHasher) Verify(stored, pw string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(pw)) == 1
}

// BcryptHasher implementation.
type BcryptHasher struct{ Cost int }

func (b BcryptHasher) Hash(pw string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(h), nil
}

func (b BcryptHasher) Verify(stored, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(pw)) == nil
}

// NewHasher resolves a hasher by name: "plaintext" (or empty) or "bcrypt".
func NewHasher(name string, bcryptCost int) (PasswordHasher, error) {
	switch name {
	case "", "plaintext":
		return PlaintextHasher{}, nil
	case "bcrypt":
		return BcryptHasher{Cost: bcryptCost}, nil
	}
	return nil, fmt.Errorf("unknown password hasher %q", name)
}
