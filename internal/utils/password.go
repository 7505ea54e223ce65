package utils

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/cinema-box-office/internal/apperror"
)

// bcrypt ignores everything past 72 bytes; longer passwords are refused
// rather than silently truncated.
const maxPasswordBytes = 72

// HashPassword validates plain and returns its bcrypt hash at the given
// cost.  Stored user records only ever hold the hash.
func HashPassword(plain string, cost int) (string, error) {
	if plain == "" {
		return "", apperror.New(apperror.InvalidInput, "password is required")
	}
	if len(plain) > maxPasswordBytes {
		return "", apperror.New(apperror.InvalidInput, "password longer than %d bytes", maxPasswordBytes)
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches hash.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
