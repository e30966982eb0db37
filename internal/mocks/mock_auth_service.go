package mocks

import (
	"context"

	"github.com/hardik-python-lr/our-gate-backend/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RequestOTPFunc    func(ctx context.Context, phone string) (*domain.OTPRequest, error)
	VerifyOTPFunc     func(ctx context.Context, phone, code string, currentToken *string) (*domain.AuthResult, error)
	RefreshTokenFunc  func(ctx context.Context, refreshToken string) (*domain.AuthResult, error)
	LogoutFunc        func(ctx context.Context, sessionID string) error
	ProfileFunc       func(ctx context.Context, userID uint) (*domain.User, []domain.RoleID, error)
	SavePushTokenFunc func(ctx context.Context, userID uint, token string) (*domain.PushNotificationToken, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) RequestOTP(ctx context.Context, phone string) (*domain.OTPRequest, error) {
	if m.RequestOTPFunc != nil {
		return m.RequestOTPFunc(ctx, phone)
	}
	return &domain.OTPRequest{Phone: phone, Counter: 1}, nil
}

func (m *MockAuthService) VerifyOTP(ctx context.Context, phone, code string, currentToken *string) (*domain.AuthResult, error) {
	if m.VerifyOTPFunc != nil {
		return m.VerifyOTPFunc(ctx, phone, code, currentToken)
	}
	return &domain.AuthResult{
		User:         &domain.User{ID: 1, Phone: phone, IsActive: true},
		Roles:        []domain.RoleID{domain.RoleResident},
		AccessToken:  "access:1:sess",
		RefreshToken: "refresh:1:sess",
		SessionID:    "sess",
		ExpiresIn:    900,
		CurrentToken: currentToken,
	}, nil
}

func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if m.RefreshTokenFunc != nil {
		return m.RefreshTokenFunc(ctx, refreshToken)
	}
	return &domain.AuthResult{
		User:         &domain.User{ID: 1, IsActive: true},
		AccessToken:  "access:1:sess",
		RefreshToken: refreshToken,
		SessionID:    "sess",
		ExpiresIn:    900,
	}, nil
}

func (m *MockAuthService) Logout(ctx context.Context, sessionID string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, sessionID)
	}
	return nil
}

func (m *MockAuthService) Profile(ctx context.Context, userID uint) (*domain.User, []domain.RoleID, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, userID)
	}
	return &domain.User{ID: userID, FirstName: "Test", IsActive: true}, []domain.RoleID{domain.RoleResident}, nil
}

func (m *MockAuthService) SavePushToken(ctx context.Context, userID uint, token string) (*domain.PushNotificationToken, error) {
	if m.SavePushTokenFunc != nil {
		return m.SavePushTokenFunc(ctx, userID, token)
	}
	return &domain.PushNotificationToken{ID: 1, UserID: userID, CurrentToken: token}, nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
