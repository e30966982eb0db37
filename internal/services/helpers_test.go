package services

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/hardik-python-lr/our-gate-backend/domain"
	"github.com/hardik-python-lr/our-gate-backend/internal/clock"
	"github.com/hardik-python-lr/our-gate-backend/internal/infrastructure/database"
	"github.com/hardik-python-lr/our-gate-backend/internal/infrastructure/repositories"
	"github.com/hardik-python-lr/our-gate-backend/internal/mocks"
	"github.com/hardik-python-lr/our-gate-backend/internal/tests/fixtures"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ist is a fixed +05:30 zone so tests do not depend on the host tz database.
var ist = time.FixedZone("IST", 5*3600+1800)

// monday is 10:00 IST on Monday 2026-10-19.
var monday = time.Date(2026, 10, 19, 10, 0, 0, 0, ist)

// world wires real repositories on SQLite and Redis on miniredis with mocked
// outbound adapters.
type world struct {
	t        *testing.T
	db       *gorm.DB
	seed     *fixtures.Seeder
	mr       *miniredis.Miniredis
	redis    *redis.Client
	clock    *clock.FakeClock
	notifier *mocks.MockNotifier
	audit    *mocks.MockAuditLogger
	gateway  *mocks.MockPaymentGateway

	users       domain.UserRepository
	roles       domain.RoleRepository
	sites       domain.SiteRepository
	memberships domain.MembershipRepository
	attendance  domain.AttendanceRepository
	catalog     domain.CatalogRepository
	requests    domain.ServiceRequestRepository
	pushTokens  domain.PushTokenRepository
	tx          domain.Transactor
	perms       domain.PermissionEvaluator
	resolver    domain.ContextResolver
	locker      domain.Locker
}

func newWorld(t *testing.T) *world {
	t.Helper()

	db := fixtures.NewDB(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	roles := repositories.NewRoleRepository(db)
	memberships := repositories.NewMembershipRepository(db)

	return &world{
		t:           t,
		db:          db,
		seed:        fixtures.NewSeeder(t, db),
		mr:          mr,
		redis:       client,
		clock:       clock.NewFakeClock(monday),
		notifier:    mocks.NewMockNotifier(),
		audit:       mocks.NewMockAuditLogger(),
		gateway:     mocks.NewMockPaymentGateway(),
		users:       repositories.NewUserRepository(db),
		roles:       roles,
		sites:       repositories.NewSiteRepository(db),
		memberships: memberships,
		attendance:  repositories.NewAttendanceRepository(db),
		catalog:     repositories.NewCatalogRepository(db),
		requests:    repositories.NewServiceRequestRepository(db),
		pushTokens:  repositories.NewPushTokenRepository(db),
		tx:          repositories.NewTransactor(db),
		perms:       NewPermissionEvaluator(roles, zap.NewNop()),
		resolver:    NewContextResolver(memberships),
		locker:      database.NewRedisLocker(&database.RedisClient{Client: client}),
	}
}

func (w *world) attendanceService() *AttendanceServiceImpl {
	return NewAttendanceService(w.perms, w.resolver, w.attendance, w.tx, w.locker, 5*time.Second, w.audit, w.clock, ist, zap.NewNop())
}

func (w *world) bookingService() *BookingServiceImpl {
	return NewBookingService(BookingDeps{
		Perms:    w.perms,
		Resolver: w.resolver,
		Users:    w.users,
		Sites:    w.sites,
		Catalog:  w.catalog,
		Requests: w.requests,
		Tx:       w.tx,
		Gateway:  w.gateway,
		Locker:   w.locker,
		LockTTL:  5 * time.Second,
		Notifier: w.notifier,
		Audit:    w.audit,
		Clock:    w.clock,
		Location: ist,
		Currency: "INR",
		Log:      zap.NewNop(),
	})
}

func (w *world) catalogService() *CatalogServiceImpl {
	return NewCatalogService(CatalogDeps{
		Perms:    w.perms,
		Resolver: w.resolver,
		Sites:    w.sites,
		Catalog:  w.catalog,
		Audit:    w.audit,
		Clock:    w.clock,
		Location: ist,
	})
}

func (w *world) membershipService() *MembershipServiceImpl {
	return NewMembershipService(MembershipDeps{
		Perms:       w.perms,
		Resolver:    w.resolver,
		Users:       w.users,
		Roles:       w.roles,
		Sites:       w.sites,
		Memberships: w.memberships,
		Tx:          w.tx,
		Audit:       w.audit,
		Log:         zap.NewNop(),
	})
}

// date parses YYYY-MM-DD or fails the test.
func date(t *testing.T, s string) datatypes.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

func intPtr(v int) *int { return &v }
func strPtr(s string) *string { return &s }
