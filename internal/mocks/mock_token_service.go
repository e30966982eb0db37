package mocks

import (
	"fmt"
	"strings"
	"time"

	"github.com/hardik-python-lr/our-gate-backend/domain"
)

// MockTokenService implements domain.TokenService interface for testing.
// Default tokens look like "access:<user>:<session>" and validate by parsing.
type MockTokenService struct {
	GenerateAccessTokenFunc  func(userID uint, sessionID string) (string, error)
	GenerateRefreshTokenFunc func(userID uint, sessionID string) (string, error)
	ValidateAccessTokenFunc  func(token string) (*domain.TokenClaims, error)
	ValidateRefreshTokenFunc func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

func (m *MockTokenService) GenerateAccessToken(userID uint, sessionID string) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(userID, sessionID)
	}
	return fmt.Sprintf("access:%d:%s", userID, sessionID), nil
}

func (m *MockTokenService) GenerateRefreshToken(userID uint, sessionID string) (string, error) {
	if m.GenerateRefreshTokenFunc != nil {
		return m.GenerateRefreshTokenFunc(userID, sessionID)
	}
	return fmt.Sprintf("refresh:%d:%s", userID, sessionID), nil
}

func (m *MockTokenService) ValidateAccessToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateAccessTokenFunc != nil {
		return m.ValidateAccessTokenFunc(token)
	}
	return parseMockToken(token, "access")
}

func (m *MockTokenService) ValidateRefreshToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateRefreshTokenFunc != nil {
		return m.ValidateRefreshTokenFunc(token)
	}
	return parseMockToken(token, "refresh")
}

func (m *MockTokenService) AccessTTL() time.Duration {
	return 15 * time.Minute
}

func parseMockToken(token, typ string) (*domain.TokenClaims, error) {
	parts := strings.SplitN(token, ":", 3)
	if len(parts) != 3 || parts[0] != typ {
		return nil, domain.ErrTokenInvalid
	}
	var userID uint
	if _, err := fmt.Sscanf(parts[1], "%d", &userID); err != nil {
		return nil, domain.ErrTokenMalformed
	}
	now := time.Now().Unix()
	return &domain.TokenClaims{
		UserID:    userID,
		SessionID: parts[2],
		TokenType: typ,
		IssuedAt:  now,
		ExpiresAt: now + 900,
	}, nil
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
