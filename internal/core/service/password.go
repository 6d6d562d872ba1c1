package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/usermanager/user-management-api/internal/core/domain"
)

// resetTokenBytes is the entropy of a password reset token (256 bits).
const resetTokenBytes = 32

// HashPassword produces a salted bcrypt digest. Two calls with the same
// password yield different digests. A password over bcrypt's 72-byte limit is
// a caller input problem, not an infrastructure failure, and is reported as
// domain.ErrInvalidInput.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", domain.ErrInvalidInput
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// VerifyPassword reports whether password matches the stored bcrypt hash.
// A malformed stored hash counts as a mismatch, it never panics or errors.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NewResetToken generates an unguessable single-use reset token and its
// expiry timestamp.
func NewResetToken(ttl time.Duration) (string, time.Time, error) {
	if ttl <= 0 {
		ttl = time.Hour
	}
	b := make([]byte, resetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", time.Time{}, fmt.Errorf("reset token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), time.Now().UTC().Add(ttl), nil
}

// ResetTokenMatches compares a stored and a supplied reset token in constant
// time. An empty stored token never matches.
func ResetTokenMatches(stored, supplied string) bool {
	if stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}
