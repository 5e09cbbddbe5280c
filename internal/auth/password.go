package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor for newly stored credentials.
// bcrypt embeds a fresh random salt per hash, so hashing the same password
// twice yields different stored values that both verify.
const PasswordCost = 10

// ErrWrongPassword is returned when a candidate password does not match the
// stored hash.
var ErrWrongPassword = errors.New("incorrect password")

// HashPassword derives a salted bcrypt hash for storage. The plaintext is
// never persisted.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword compares a candidate password against a stored hash using
// bcrypt's constant-time comparison. It returns ErrWrongPassword on
// mismatch and the underlying error for malformed hashes.
func CheckPassword(password, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrWrongPassword
	}
	return err
}
