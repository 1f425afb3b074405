package security

import (
	"fmt"

	"github.com/jerseyforge/jerseyforge-backend/pkg/config"
	"golang.org/x/crypto/bcrypt"
)

const (
	minBcryptCost = 10
	maxBcryptCost = 14
)

// HashPassword returns a bcrypt hash for the provided password. Cost comes
// from config and is clamped so a bad deployment cannot disable the work
// factor.
func HashPassword(password string, cfg config.PasswordConfig) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	if len(password) > 72 {
		// bcrypt silently truncates beyond 72 bytes
		return "", fmt.Errorf("password exceeds maximum length")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), clampCost(cfg.BcryptCost))
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword returns true when the password matches the encoded hash.
func VerifyPassword(password, encoded string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
	if err == nil {
		return true, nil
	}
	if err == bcrypt.ErrMismatchedHashAndPassword {
		return false, nil
	}
	return false, err
}

func clampCost(cost int) int {
	if cost < minBcryptCost {
		return minBcryptCost
	}
	if cost > maxBcryptCost {
		return maxBcryptCost
	}
	return cost
}
