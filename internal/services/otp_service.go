package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/hardik-python-lr/our-gate-backend/domain"
	"github.com/hardik-python-lr/our-gate-backend/internal/clock"
	"github.com/redis/go-redis/v9"
)

// OTPServiceImpl implements domain.OTPService using Redis persistence
type OTPServiceImpl struct {
	sms         domain.SMSService
	hasher      domain.CodeHasher
	redisClient *redis.Client
	clock       clock.Clock
	config      OTPConfig
}

type OTPConfig struct {
	Length       int
	TTL          time.Duration
	MaxAttempts  int
	ResendWindow time.Duration
}

// NewOTPService creates a new Redis-based OTP service
func NewOTPService(sms domain.SMSService, hasher domain.CodeHasher, redisClient *redis.Client, clk clock.Clock, config OTPConfig) *OTPServiceImpl {
	return &OTPServiceImpl{
		sms:         sms,
		hasher:      hasher,
		redisClient: redisClient,
		clock:       clk,
		config:      config,
	}
}

func otpKey(phone string, counter int) string      { return fmt.Sprintf("otp:%s:%d", phone, counter) }
func attemptsKey(phone string, counter int) string { return fmt.Sprintf("otp:att:%s:%d", phone, counter) }
func resendKey(phone string) string                { return fmt.Sprintf("otp:res:%s", phone) }

// Generate issues a code for the counter value and sends it by SMS. Only the
// bcrypt hash of the code is kept in Redis.
func (s *OTPServiceImpl) Generate(ctx context.Context, phone string, counter int) (*domain.OTPRequest, error) {
	if canResend, _, err := s.CanResend(ctx, phone); err != nil {
		return nil, err
	} else if !canResend {
		return nil, domain.ErrOTPResendLimit
	}

	code, err := s.generateSecureCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP code: %w", err)
	}
	hashed, err := s.hasher.Hash(code)
	if err != nil {
		return nil, fmt.Errorf("failed to hash OTP code: %w", err)
	}

	codeKey, attKey, resKey := otpKey(phone, counter), attemptsKey(phone, counter), resendKey(phone)

	pipe := s.redisClient.TxPipeline()
	pipe.Set(ctx, codeKey, hashed, s.config.TTL)
	pipe.Set(ctx, attKey, 0, s.config.TTL)
	pipe.Set(ctx, resKey, 1, s.config.ResendWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to store OTP in Redis: %w", err)
	}

	message := fmt.Sprintf("Your verification code is: %s. Valid for %d minutes.", code, int(s.config.TTL.Minutes()))
	if err := s.sms.SendSMS(ctx, phone, message); err != nil {
		s.redisClient.Del(ctx, codeKey, attKey, resKey)
		return nil, fmt.Errorf("failed to send OTP SMS: %w", err)
	}

	return &domain.OTPRequest{
		Phone:     phone,
		Code:      code,
		Counter:   counter,
		ExpiresAt: s.clock.Now().Add(s.config.TTL),
	}, nil
}

// Verify checks code against the one issued for counter. Every call counts
// as an attempt; the code is burnt after MaxAttempts or on success.
func (s *OTPServiceImpl) Verify(ctx context.Context, phone, code string, counter int) error {
	codeKey, attKey := otpKey(phone, counter), attemptsKey(phone, counter)

	attempts, err := s.redisClient.Incr(ctx, attKey).Result()
	if err != nil {
		return fmt.Errorf("failed to increment attempts: %w", err)
	}
	if attempts == 1 {
		// a missing counter was just created by Incr; keep it from living forever
		s.redisClient.Expire(ctx, attKey, s.config.TTL)
	}
	if attempts > int64(s.config.MaxAttempts) {
		s.redisClient.Del(ctx, codeKey, attKey)
		return domain.ErrOTPMaxAttempts
	}

	hashed, err := s.redisClient.Get(ctx, codeKey).Result()
	if errors.Is(err, redis.Nil) {
		return domain.ErrOTPNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get OTP from Redis: %w", err)
	}

	if !s.hasher.Verify(hashed, code) {
		return domain.ErrOTPInvalid
	}

	s.redisClient.Del(ctx, codeKey, attKey)
	return nil
}

// CanResend reports whether a new code may be sent, and otherwise the wait in seconds.
func (s *OTPServiceImpl) CanResend(ctx context.Context, phone string) (bool, int64, error) {
	ttl, err := s.redisClient.TTL(ctx, resendKey(phone)).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to check resend TTL: %w", err)
	}
	if ttl <= 0 {
		return true, 0, nil
	}
	return false, int64(ttl.Seconds()), nil
}

// generateSecureCode generates a cryptographically secure OTP code
func (s *OTPServiceImpl) generateSecureCode() (string, error) {
	digits := make([]byte, s.config.Length)
	for i := range digits {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}
	return string(digits), nil
}
