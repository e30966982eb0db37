package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hardik-python-lr/our-gate-backend/domain"
	"github.com/hardik-python-lr/our-gate-backend/internal/clock"
	"go.uber.org/zap"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	roleRepo    domain.RoleRepository
	sessionRepo domain.SessionRepository
	pushTokens  domain.PushTokenRepository
	tokenSvc    domain.TokenService
	otpSvc      domain.OTPService
	audit       domain.AuditLogger
	clock       clock.Clock
	sessionTTL  time.Duration
	log         *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	roleRepo domain.RoleRepository,
	sessionRepo domain.SessionRepository,
	pushTokens domain.PushTokenRepository,
	tokenSvc domain.TokenService,
	otpSvc domain.OTPService,
	audit domain.AuditLogger,
	clk clock.Clock,
	sessionTTL time.Duration,
	log *zap.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		sessionRepo: sessionRepo,
		pushTokens:  pushTokens,
		tokenSvc:    tokenSvc,
		otpSvc:      otpSvc,
		audit:       audit,
		clock:       clk,
		sessionTTL:  sessionTTL,
		log:         log.Named("auth"),
	}
}

// RequestOTP implements domain.AuthService
func (s *AuthServiceImpl) RequestOTP(ctx context.Context, phone string) (*domain.OTPRequest, error) {
	user, err := s.userRepo.FindActiveByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}

	if ok, wait, err := s.otpSvc.CanResend(ctx, phone); err != nil {
		return nil, err
	} else if !ok {
		s.log.Info("otp throttled", zap.Uint("user_id", user.ID), zap.Int64("wait_seconds", wait))
		return nil, domain.Validation(domain.CodeOTPThrottled)
	}

	counter, err := s.userRepo.IncrementOTPCounter(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to advance otp counter: %w", err)
	}

	otp, err := s.otpSvc.Generate(ctx, phone, counter)
	if errors.Is(err, domain.ErrOTPResendLimit) {
		return nil, domain.Validation(domain.CodeOTPThrottled)
	}
	if err != nil {
		return nil, err
	}
	otp.UserID = user.ID

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.OTPRequestedEvent, user.ID).WithPhone(phone))
	return otp, nil
}

// VerifyOTP implements domain.AuthService
func (s *AuthServiceImpl) VerifyOTP(ctx context.Context, phone, code string, currentToken *string) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindActiveByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}

	if err := s.otpSvc.Verify(ctx, phone, code, user.OTPCounter); err != nil {
		switch {
		case errors.Is(err, domain.ErrOTPInvalid), errors.Is(err, domain.ErrOTPNotFound),
			errors.Is(err, domain.ErrOTPExpired), errors.Is(err, domain.ErrOTPMaxAttempts):
			s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginEvent, user.ID).WithPhone(phone).WithError(err))
			return nil, domain.Validation(domain.CodeOTPMismatch).WithCause(err)
		}
		return nil, err
	}

	now := s.clock.Now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	result, err := s.issue(ctx, user, session.ID)
	if err != nil {
		return nil, err
	}
	result.RefreshToken, err = s.tokenSvc.GenerateRefreshToken(user.ID, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if currentToken != nil && strings.TrimSpace(*currentToken) != "" {
		if _, err := s.pushTokens.Save(ctx, user.ID, "", *currentToken); err != nil {
			s.log.Warn("failed to save push token at login", zap.Uint("user_id", user.ID), zap.Error(err))
		} else {
			result.CurrentToken = currentToken
		}
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginEvent, user.ID).WithPhone(phone))
	return result, nil
}

// RefreshToken implements domain.AuthService
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	claims, err := s.tokenSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	session, err := s.sessionRepo.FindByID(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != claims.UserID {
		return nil, domain.ErrTokenInvalid
	}

	user, err := s.userRepo.FindActiveByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	result, err := s.issue(ctx, user, session.ID)
	if err != nil {
		return nil, err
	}
	result.RefreshToken = refreshToken
	return result, nil
}

// Logout implements domain.AuthService
func (s *AuthServiceImpl) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Profile implements domain.AuthService
func (s *AuthServiceImpl) Profile(ctx context.Context, userID uint) (*domain.User, []domain.RoleID, error) {
	user, err := s.userRepo.FindActiveByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	roles, err := s.roleRepo.RoleIDs(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return user, roles, nil
}

// SavePushToken implements domain.AuthService
func (s *AuthServiceImpl) SavePushToken(ctx context.Context, userID uint, token string) (*domain.PushNotificationToken, error) {
	if strings.TrimSpace(token) == "" {
		return nil, domain.FieldErrors(map[string][]string{"current_token": {"This field is required."}})
	}
	return s.pushTokens.Save(ctx, userID, "", token)
}

func (s *AuthServiceImpl) issue(ctx context.Context, user *domain.User, sessionID string) (*domain.AuthResult, error) {
	roles, err := s.roleRepo.RoleIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	access, err := s.tokenSvc.GenerateAccessToken(user.ID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	return &domain.AuthResult{
		User:        user,
		Roles:       roles,
		AccessToken: access,
		SessionID:   sessionID,
		ExpiresIn:   int64(s.tokenSvc.AccessTTL().Seconds()),
	}, nil
}
