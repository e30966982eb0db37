package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
app:
  port: 9090
  timezone: Asia/Kolkata
database:
  dsn: postgres://localhost/ourgate
redis:
  addr: localhost:6379
jwt:
  secret: file-secret
  access_ttl: 10m
  refresh_ttl: 24h
otp:
  ttl: 2m
  length: 6
  max_attempts: 5
  resend_window: 45s
payment:
  key_id: rzp_test_key
  key_secret: rzp_secret
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres://localhost/ourgate", cfg.DSN)
	assert.Equal(t, 10*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 24*time.Hour, cfg.RefreshTTL)
	assert.Equal(t, 2*time.Minute, cfg.OTP_TTL)
	assert.Equal(t, 45*time.Second, cfg.OTP_ResendWindow)
	assert.Equal(t, 5, cfg.OTP_MaxAttempts)
	assert.Equal(t, "INR", cfg.PaymentCurrency, "currency defaults to INR")
	assert.Equal(t, 10*time.Second, cfg.LockTTL, "lock ttl falls back to its default")
	assert.Equal(t, "https://fcm.googleapis.com/fcm/send", cfg.PushEndpoint)
	require.NotNil(t, cfg.Location)
	assert.Equal(t, "Asia/Kolkata", cfg.Location.String())
}

func TestLoadFile_EnvironmentOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DATABASE_DSN", "postgres://override/ourgate")
	t.Setenv("RAZORPAY_KEY_SECRET", "env-rzp")
	t.Setenv("PORT", "7070")

	cfg, err := LoadFile(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.JWTSecret)
	assert.Equal(t, "postgres://override/ourgate", cfg.DSN)
	assert.Equal(t, "env-rzp", cfg.PaymentKeySecret)
	assert.Equal(t, "7070", cfg.Port)
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		errText string
	}{
		{
			name:    "bad duration",
			body:    "database: {dsn: x}\nredis: {addr: y}\njwt: {secret: s, access_ttl: soon}\n",
			errText: "invalid JWT access TTL",
		},
		{
			name:    "missing secret",
			body:    "database: {dsn: x}\nredis: {addr: y}\n",
			errText: "jwt secret is required",
		},
		{
			name:    "unknown timezone",
			body:    "app: {timezone: Mars/Olympus}\ndatabase: {dsn: x}\nredis: {addr: y}\njwt: {secret: s}\n",
			errText: "unknown timezone",
		},
		{
			name:    "not yaml",
			body:    "app: [",
			errText: "could not parse config yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not read config file")
}
