package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port      int    `yaml:"port"`
	GinMode   string `yaml:"gin_mode"`
	Env       string `yaml:"env"`
	Version   string `yaml:"version"`
	Timezone  string `yaml:"timezone"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	Issuer     string `yaml:"issuer"`
	AccessTTL  string `yaml:"access_ttl"`
	RefreshTTL string `yaml:"refresh_ttl"`
}

type OTPConfig struct {
	TTL          string `yaml:"ttl"`
	Length       int    `yaml:"length"`
	MaxAttempts  int    `yaml:"max_attempts"`
	ResendWindow string `yaml:"resend_window"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type PaymentConfig struct {
	BaseURL   string `yaml:"base_url"`
	KeyID     string `yaml:"key_id"`
	KeySecret string `yaml:"key_secret"`
	Currency  string `yaml:"currency"`
	Timeout   string `yaml:"timeout"`
	Retries   int    `yaml:"retries"`
}

type PushConfig struct {
	Endpoint  string `yaml:"endpoint"`
	ServerKey string `yaml:"server_key"`
	Icon      string `yaml:"icon"`
	Timeout   string `yaml:"timeout"`
}

type LocksConfig struct {
	TTL string `yaml:"ttl"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	OTP      OTPConfig      `yaml:"otp"`
	Twilio   TwilioConfig   `yaml:"twilio"`
	Casbin   CasbinConfig   `yaml:"casbin"`
	Payment  PaymentConfig  `yaml:"payment"`
	Push     PushConfig     `yaml:"push"`
	Locks    LocksConfig    `yaml:"locks"`
}

type Config struct {
	Port      string
	GinMode   string
	Env       string
	Version   string
	Timezone  string
	Location  *time.Location
	LogLevel  string
	LogFormat string

	DSN           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret  string
	JWTIssuer  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	OTP_TTL          time.Duration
	OTP_Length       int
	OTP_MaxAttempts  int
	OTP_ResendWindow time.Duration

	TwilioSID   string
	TwilioToken string
	TwilioFrom  string

	CasbinModelPath string

	PaymentBaseURL   string
	PaymentKeyID     string
	PaymentKeySecret string
	PaymentCurrency  string
	PaymentTimeout   time.Duration
	PaymentRetries   int

	PushEndpoint  string
	PushServerKey string
	PushIcon      string
	PushTimeout   time.Duration

	LockTTL time.Duration
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads .env (if present), then the YAML file named by CONFIG_PATH
// (default config/config.yml), then applies environment overrides.
func Load() (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()
	return LoadFile(env("CONFIG_PATH", "config/config.yml"))
}

// LoadFile builds a validated Config from the YAML file at path plus environment overrides.
func LoadFile(path string) (*Config, error) {
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	applyEnv(configFile)

	cfg, err := configFile.build()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(f *ConfigFile) {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			f.App.Port = p
		}
	}
	f.App.GinMode = env("GIN_MODE", f.App.GinMode)
	f.App.Env = env("APP_ENV", f.App.Env)
	f.App.Timezone = env("APP_TIMEZONE", f.App.Timezone)
	f.App.LogLevel = env("LOG_LEVEL", f.App.LogLevel)
	f.Database.DSN = env("DATABASE_DSN", f.Database.DSN)
	f.Redis.Addr = env("REDIS_ADDR", f.Redis.Addr)
	f.Redis.Password = env("REDIS_PASSWORD", f.Redis.Password)
	f.JWT.Secret = env("JWT_SECRET", f.JWT.Secret)
	f.Twilio.AccountSID = env("TWILIO_ACCOUNT_SID", f.Twilio.AccountSID)
	f.Twilio.AuthToken = env("TWILIO_AUTH_TOKEN", f.Twilio.AuthToken)
	f.Twilio.FromNumber = env("TWILIO_FROM_NUMBER", f.Twilio.FromNumber)
	f.Payment.KeyID = env("RAZORPAY_KEY_ID", f.Payment.KeyID)
	f.Payment.KeySecret = env("RAZORPAY_KEY_SECRET", f.Payment.KeySecret)
	f.Push.ServerKey = env("FCM_SERVER_KEY", f.Push.ServerKey)
}

func (f *ConfigFile) build() (*Config, error) {
	durations := []struct {
		name  string
		value string
		def   time.Duration
	}{
		{"JWT access TTL", f.JWT.AccessTTL, 15 * time.Minute},
		{"JWT refresh TTL", f.JWT.RefreshTTL, 7 * 24 * time.Hour},
		{"OTP TTL", f.OTP.TTL, 5 * time.Minute},
		{"OTP resend window", f.OTP.ResendWindow, 30 * time.Second},
		{"payment timeout", f.Payment.Timeout, 10 * time.Second},
		{"push timeout", f.Push.Timeout, 5 * time.Second},
		{"lock TTL", f.Locks.TTL, 10 * time.Second},
	}

	cfg := &Config{
		Port:             fmt.Sprintf("%d", f.App.Port),
		GinMode:          f.App.GinMode,
		Env:              f.App.Env,
		Version:          f.App.Version,
		Timezone:         f.App.Timezone,
		LogLevel:         f.App.LogLevel,
		LogFormat:        f.App.LogFormat,
		DSN:              f.Database.DSN,
		RedisAddr:        f.Redis.Addr,
		RedisPassword:    f.Redis.Password,
		RedisDB:          f.Redis.DB,
		JWTSecret:        f.JWT.Secret,
		JWTIssuer:        f.JWT.Issuer,
		OTP_Length:       f.OTP.Length,
		OTP_MaxAttempts:  f.OTP.MaxAttempts,
		TwilioSID:        f.Twilio.AccountSID,
		TwilioToken:      f.Twilio.AuthToken,
		TwilioFrom:       f.Twilio.FromNumber,
		CasbinModelPath:  f.Casbin.ModelPath,
		PaymentBaseURL:   f.Payment.BaseURL,
		PaymentKeyID:     f.Payment.KeyID,
		PaymentKeySecret: f.Payment.KeySecret,
		PaymentCurrency:  f.Payment.Currency,
		PaymentRetries:   f.Payment.Retries,
		PushEndpoint:     f.Push.Endpoint,
		PushServerKey:    f.Push.ServerKey,
		PushIcon:         f.Push.Icon,
	}
	outs := []*time.Duration{
		&cfg.AccessTTL, &cfg.RefreshTTL, &cfg.OTP_TTL, &cfg.OTP_ResendWindow,
		&cfg.PaymentTimeout, &cfg.PushTimeout, &cfg.LockTTL,
	}
	for i, d := range durations {
		if strings.TrimSpace(d.value) == "" {
			*outs[i] = d.def
			continue
		}
		parsed, err := time.ParseDuration(d.value)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", d.name, err)
		}
		*outs[i] = parsed
	}

	if cfg.Port == "0" {
		cfg.Port = "8080"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Asia/Kolkata"
	}
	if cfg.OTP_Length == 0 {
		cfg.OTP_Length = 6
	}
	if cfg.OTP_MaxAttempts == 0 {
		cfg.OTP_MaxAttempts = 3
	}
	if cfg.PaymentCurrency == "" {
		cfg.PaymentCurrency = "INR"
	}
	if cfg.PaymentBaseURL == "" {
		cfg.PaymentBaseURL = "https://api.razorpay.com"
	}
	if cfg.PushEndpoint == "" {
		cfg.PushEndpoint = "https://fcm.googleapis.com/fcm/send"
	}
	if cfg.CasbinModelPath == "" {
		cfg.CasbinModelPath = "config/rbac_model.conf"
	}
	return cfg, nil
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.DSN == "" {
		errs = append(errs, errors.New("database dsn is required"))
	}
	if c.RedisAddr == "" {
		errs = append(errs, errors.New("redis addr is required"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("jwt secret is required"))
	}
	if c.OTP_Length < 4 || c.OTP_Length > 10 {
		errs = append(errs, fmt.Errorf("otp length %d out of range 4..10", c.OTP_Length))
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		errs = append(errs, fmt.Errorf("unknown timezone %q: %w", c.Timezone, err))
	} else {
		c.Location = loc
	}
	return errors.Join(errs...)
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
