package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher implements domain.CodeHasher. One-time codes are never stored in clear.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher. A cost below bcrypt.MinCost falls back to the default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash implements domain.CodeHasher
func (h *BcryptHasher) Hash(code string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(code), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// Verify implements domain.CodeHasher
func (h *BcryptHasher) Verify(hashed, code string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(code)) == nil
}
