package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hardik-python-lr/our-gate-backend/domain"
	"github.com/hardik-python-lr/our-gate-backend/internal/clock"
	"github.com/hardik-python-lr/our-gate-backend/internal/config"
	httpx "github.com/hardik-python-lr/our-gate-backend/internal/http"
	"github.com/hardik-python-lr/our-gate-backend/internal/http/handlers"
	"github.com/hardik-python-lr/our-gate-backend/internal/http/middleware"
	"github.com/hardik-python-lr/our-gate-backend/internal/infrastructure/auth"
	"github.com/hardik-python-lr/our-gate-backend/internal/infrastructure/database"
	"github.com/hardik-python-lr/our-gate-backend/internal/infrastructure/notifications"
	"github.com/hardik-python-lr/our-gate-backend/internal/infrastructure/payments"
	"github.com/hardik-python-lr/our-gate-backend/internal/infrastructure/repositories"
	"github.com/hardik-python-lr/our-gate-backend/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config
	Log    *zap.Logger
	Clock  clock.Clock

	// Infrastructure
	DB     *gorm.DB
	Redis  *database.RedisClient
	Casbin *auth.CasbinService

	// Repositories
	UserRepo       domain.UserRepository
	RoleRepo       domain.RoleRepository
	SiteRepo       domain.SiteRepository
	MembershipRepo domain.MembershipRepository
	AttendanceRepo domain.AttendanceRepository
	CatalogRepo    domain.CatalogRepository
	RequestRepo    domain.ServiceRequestRepository
	PushTokenRepo  domain.PushTokenRepository
	SessionRepo    domain.SessionRepository
	Tx             domain.Transactor

	// Services
	TokenSvc      domain.TokenService
	OTPSvc        domain.OTPService
	AuthSvc       domain.AuthService
	PolicySvc     domain.PolicyService
	Perms         domain.PermissionEvaluator
	AttendanceSvc domain.AttendanceService
	BookingSvc    domain.BookingService
	CatalogSvc    domain.CatalogService
	MembershipSvc domain.MembershipService
}

// NewContainer opens the stores, seeds roles and route policies, and builds
// every service.
func NewContainer(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Container, error) {
	c := &Container{Config: cfg, Log: log, Clock: clock.Real()}

	if err := c.initDatabase(); err != nil {
		return nil, err
	}
	if err := c.initRedis(ctx); err != nil {
		c.Close()
		return nil, err
	}
	c.initRepositories()
	if err := c.initPolicies(ctx); err != nil {
		c.Close()
		return nil, err
	}
	c.initServices()

	return c, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	c.DB = db
	return nil
}

func (c *Container) initRedis(ctx context.Context) error {
	c.Redis = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
	if err := c.Redis.Ping(ctx); err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	return nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.RoleRepo = repositories.NewRoleRepository(c.DB)
	c.SiteRepo = repositories.NewSiteRepository(c.DB)
	c.MembershipRepo = repositories.NewMembershipRepository(c.DB)
	c.AttendanceRepo = repositories.NewAttendanceRepository(c.DB)
	c.CatalogRepo = repositories.NewCatalogRepository(c.DB)
	c.RequestRepo = repositories.NewServiceRequestRepository(c.DB)
	c.PushTokenRepo = repositories.NewPushTokenRepository(c.DB)
	c.SessionRepo = repositories.NewSessionRepository(c.Redis.Client, c.Config.RefreshTTL, c.Clock)
	c.Tx = repositories.NewTransactor(c.DB)
}

func (c *Container) initPolicies(ctx context.Context) error {
	if err := c.RoleRepo.EnsureRoles(ctx); err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}

	cas, err := auth.NewCasbinService(c.DB, c.Config.CasbinModelPath)
	if err != nil {
		return err
	}
	c.Casbin = cas
	c.PolicySvc = services.NewPolicyService(cas.E)

	seeded, err := c.PolicySvc.SeedDefaults(services.DefaultPolicies())
	if err != nil {
		return fmt.Errorf("seed policies: %w", err)
	}
	if seeded {
		c.Log.Info("casbin: seeded default policies")
	}
	return nil
}

func (c *Container) initServices() {
	cfg := c.Config
	audit := services.NewZapAuditLogger(c.Log)
	locker := database.NewRedisLocker(c.Redis)
	resolver := services.NewContextResolver(c.MembershipRepo)
	c.Perms = services.NewPermissionEvaluator(c.RoleRepo, c.Log)

	sms := notifications.NewTwilioService(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom, c.Log)
	push := notifications.NewFCMSender(cfg.PushEndpoint, cfg.PushServerKey, cfg.PushIcon, cfg.PushTimeout)
	gateway := payments.NewRazorpayGateway(payments.Config{
		BaseURL:   cfg.PaymentBaseURL,
		KeyID:     cfg.PaymentKeyID,
		KeySecret: cfg.PaymentKeySecret,
		Timeout:   cfg.PaymentTimeout,
		Retries:   cfg.PaymentRetries,
	}, c.Log)

	c.TokenSvc = auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL, c.Clock)
	c.OTPSvc = services.NewOTPService(sms, auth.NewBcryptHasher(0), c.Redis.Client, c.Clock, services.OTPConfig{
		Length:       cfg.OTP_Length,
		TTL:          cfg.OTP_TTL,
		MaxAttempts:  cfg.OTP_MaxAttempts,
		ResendWindow: cfg.OTP_ResendWindow,
	})
	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.RoleRepo,
		c.SessionRepo,
		c.PushTokenRepo,
		c.TokenSvc,
		c.OTPSvc,
		audit,
		c.Clock,
		cfg.RefreshTTL,
		c.Log,
	)
	c.AttendanceSvc = services.NewAttendanceService(
		c.Perms,
		resolver,
		c.AttendanceRepo,
		c.Tx,
		locker,
		cfg.LockTTL,
		audit,
		c.Clock,
		cfg.Location,
		c.Log,
	)
	c.BookingSvc = services.NewBookingService(services.BookingDeps{
		Perms:    c.Perms,
		Resolver: resolver,
		Users:    c.UserRepo,
		Sites:    c.SiteRepo,
		Catalog:  c.CatalogRepo,
		Requests: c.RequestRepo,
		Tx:       c.Tx,
		Gateway:  gateway,
		Locker:   locker,
		LockTTL:  cfg.LockTTL,
		Notifier: services.NewPushNotifier(c.PushTokenRepo, push, c.Log),
		Audit:    audit,
		Clock:    c.Clock,
		Location: cfg.Location,
		Currency: cfg.PaymentCurrency,
		Log:      c.Log,
	})
	c.CatalogSvc = services.NewCatalogService(services.CatalogDeps{
		Perms:    c.Perms,
		Resolver: resolver,
		Sites:    c.SiteRepo,
		Catalog:  c.CatalogRepo,
		Audit:    audit,
		Clock:    c.Clock,
		Location: cfg.Location,
	})
	c.MembershipSvc = services.NewMembershipService(services.MembershipDeps{
		Perms:       c.Perms,
		Resolver:    resolver,
		Users:       c.UserRepo,
		Roles:       c.RoleRepo,
		Sites:       c.SiteRepo,
		Memberships: c.MembershipRepo,
		Tx:          c.Tx,
		Audit:       audit,
		Log:         c.Log,
	})
}

// Handlers builds the HTTP handlers over the wired services.
func (c *Container) Handlers() httpx.Handlers {
	return httpx.Handlers{
		Auth:       handlers.NewAuthHandlers(c.AuthSvc),
		Attendance: handlers.NewAttendanceHandlers(c.AttendanceSvc),
		Booking:    handlers.NewBookingHandlers(c.BookingSvc),
		Catalog:    handlers.NewCatalogHandlers(c.CatalogSvc),
		Membership: handlers.NewMembershipHandlers(c.MembershipSvc),
		Policy:     handlers.NewPolicyHandlers(c.PolicySvc),
	}
}

// Middleware returns the JWT and route policy middleware.
func (c *Container) Middleware() (*middleware.AuthMW, *middleware.CasbinMW) {
	return middleware.NewAuthMW(c.TokenSvc, c.SessionRepo), middleware.NewCasbinMW(c.PolicySvc, c.Perms)
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Redis != nil {
		_ = c.Redis.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
