package mocks

import (
	"context"
	"time"

	"github.com/hardik-python-lr/our-gate-backend/domain"
)

// MockOTPService implements domain.OTPService interface for testing
type MockOTPService struct {
	GenerateFunc  func(ctx context.Context, phone string, counter int) (*domain.OTPRequest, error)
	VerifyFunc    func(ctx context.Context, phone, code string, counter int) error
	CanResendFunc func(ctx context.Context, phone string) (bool, int64, error)
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

// Generate issues a fixed code
func (m *MockOTPService) Generate(ctx context.Context, phone string, counter int) (*domain.OTPRequest, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, phone, counter)
	}
	return &domain.OTPRequest{
		Phone:     phone,
		Code:      "123456",
		Counter:   counter,
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}, nil
}

// Verify accepts "123456" by default
func (m *MockOTPService) Verify(ctx context.Context, phone, code string, counter int) error {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, phone, code, counter)
	}
	if code != "123456" {
		return domain.ErrOTPInvalid
	}
	return nil
}

// CanResend allows resend by default
func (m *MockOTPService) CanResend(ctx context.Context, phone string) (bool, int64, error) {
	if m.CanResendFunc != nil {
		return m.CanResendFunc(ctx, phone)
	}
	return true, 0, nil
}

// Compile-time interface compliance verification
var _ domain.OTPService = (*MockOTPService)(nil)
