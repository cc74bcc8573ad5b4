package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MinLength is the shortest password accepted at signup. The request
// DTO enforces the same bound, so hitting ErrTooShort here means a
// caller bypassed binding validation.
const MinLength = 6

var (
	ErrTooShort = errors.New("password too short")
	ErrMismatch = errors.New("password mismatch")
)

// Hash bcrypts plain with the default cost.
func Hash(plain string) (string, error) {
	if len(plain) < MinLength {
		return "", ErrTooShort
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare returns ErrMismatch for a wrong password; any other non-nil
// error means the stored hash is unusable.
func Compare(hashed, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return err
}
