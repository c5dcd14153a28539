package apikey

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidKey = errors.New("invalid device API key")

// Hash derives a bcrypt hash of a raw device API key for storage or for the
// DEVICE_API_KEY_HASH environment value.
func Hash(rawKey string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(rawKey), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify checks a presented key against the stored hash.
func Verify(hash string, rawKey string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(rawKey)); err != nil {
		return ErrInvalidKey
	}
	return nil
}
