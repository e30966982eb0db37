// Package fixtures builds in-memory databases and seed rows for tests.
package fixtures

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hardik-python-lr/our-gate-backend/domain"
	"github.com/hardik-python-lr/our-gate-backend/internal/infrastructure/database"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// NewDB opens a private in-memory SQLite database with every table migrated.
// The pool is a single connection so work inside a transaction must use the
// transaction's context.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:fixtures%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(database.Models()...); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	for _, id := range domain.AllRoles() {
		must(t, db.Create(&domain.Role{ID: id, Name: id.String()}).Error)
	}
	return db
}

// Seeder inserts rows with sensible defaults.
type Seeder struct {
	t     *testing.T
	db    *gorm.DB
	phone int
}

func NewSeeder(t *testing.T, db *gorm.DB) *Seeder {
	return &Seeder{t: t, db: db, phone: 9000000000}
}

// User creates an active user holding roles.
func (s *Seeder) User(name string, roles ...domain.RoleID) *domain.User {
	s.t.Helper()
	s.phone++
	u := &domain.User{
		Phone:     fmt.Sprintf("%d", s.phone),
		FirstName: name,
		IsActive:  true,
	}
	must(s.t, s.db.Create(u).Error)
	for _, r := range roles {
		must(s.t, s.db.Create(&domain.UserRole{UserID: u.ID, RoleID: r}).Error)
	}
	return u
}

// Location creates a point.
func (s *Seeder) Location(lat, lon float64) *domain.Location {
	s.t.Helper()
	loc := &domain.Location{Latitude: lat, Longitude: lon, Address: "seed address"}
	must(s.t, s.db.Create(loc).Error)
	return loc
}

// Organization creates an active organization owned by owner.
func (s *Seeder) Organization(owner *domain.User) *domain.Organization {
	s.t.Helper()
	org := &domain.Organization{Name: "Org of " + owner.FirstName, OwnerUserID: owner.ID, IsActive: true}
	must(s.t, s.db.Create(org).Error)
	return org
}

// Establishment creates an active establishment at (lat, lon) with the given geofence radius.
func (s *Seeder) Establishment(org *domain.Organization, admin *domain.User, lat, lon, radius float64) *domain.Establishment {
	s.t.Helper()
	loc := s.Location(lat, lon)
	est := &domain.Establishment{
		OrganizationID:   org.ID,
		LocationID:       loc.ID,
		Name:             "Establishment",
		AttendanceRadius: radius,
		IsActive:         true,
	}
	if admin != nil {
		est.EstablishmentAdminID = &admin.ID
	}
	must(s.t, s.db.Create(est).Error)
	est.Location = loc
	return est
}

// Flat creates an active flat inside a new building of est.
func (s *Seeder) Flat(est *domain.Establishment, number string) *domain.Flat {
	s.t.Helper()
	b := &domain.Building{EstablishmentID: est.ID, Name: "Block " + number, IsActive: true}
	must(s.t, s.db.Create(b).Error)
	f := &domain.Flat{BuildingID: b.ID, Number: number, IsActive: true}
	must(s.t, s.db.Create(f).Error)
	b.Establishment = est
	f.Building = b
	return f
}

// Member links user to flat as an active member.
func (s *Seeder) Member(user *domain.User, flat *domain.Flat, current bool) *domain.FlatMember {
	s.t.Helper()
	m := &domain.FlatMember{FlatID: flat.ID, UserID: user.ID, MemberRole: domain.MemberOwner, IsActive: true, IsCurrentFlat: current}
	must(s.t, s.db.Create(m).Error)
	return m
}

// Guard links user to est as an active guard.
func (s *Seeder) Guard(user *domain.User, est *domain.Establishment) *domain.EstablishmentGuard {
	s.t.Helper()
	g := &domain.EstablishmentGuard{EstablishmentID: est.ID, UserID: user.ID, IsActive: true}
	must(s.t, s.db.Create(g).Error)
	return g
}

// CommitteeSeat gives user an active seat at est.
func (s *Seeder) CommitteeSeat(user *domain.User, est *domain.Establishment, role domain.CommitteeRole) *domain.ManagementCommittee {
	s.t.Helper()
	seat := &domain.ManagementCommittee{EstablishmentID: est.ID, UserID: user.ID, CommitteeRole: role, IsActive: true}
	must(s.t, s.db.Create(seat).Error)
	return seat
}

// Service creates an active service of org.
func (s *Seeder) Service(org *domain.Organization, name string, price int64) *domain.Service {
	s.t.Helper()
	svc := &domain.Service{OrganizationID: org.ID, Name: name, Price: price, IsActive: true}
	must(s.t, s.db.Create(svc).Error)
	return svc
}

// Slot creates an active weekly slot starting at hour for one hour.
func (s *Seeder) Slot(svc *domain.Service, dayOfWeek, hour int) *domain.ServiceSlot {
	s.t.Helper()
	slot := &domain.ServiceSlot{
		ServiceID: svc.ID,
		StartTime: datatypes.NewTime(hour, 0, 0, 0),
		EndTime:   datatypes.NewTime(hour+1, 0, 0, 0),
		DayOfWeek: dayOfWeek,
		IsActive:  true,
	}
	must(s.t, s.db.Create(slot).Error)
	return slot
}

// Exclusion blocks svc on date.
func (s *Seeder) Exclusion(svc *domain.Service, date datatypes.Date) {
	s.t.Helper()
	must(s.t, s.db.Create(&domain.ServiceExclusion{ServiceID: svc.ID, Date: date}).Error)
}

// Request creates an active service request in the given status.
func (s *Seeder) Request(flat *domain.Flat, svc *domain.Service, requester *domain.User, date datatypes.Date, status domain.RequestStatus) *domain.ServiceRequest {
	s.t.Helper()
	req := &domain.ServiceRequest{
		FlatID:          flat.ID,
		ServiceID:       svc.ID,
		RequestedUserID: requester.ID,
		RequestedDate:   date,
		Amount:          svc.Price,
		Status:          status,
		IsActive:        true,
	}
	must(s.t, s.db.Omit("Flat", "Service", "RequestedUser", "AssignedUser", "Payment").Create(req).Error)
	return req
}

// Update applies column updates to a seeded row.
func (s *Seeder) Update(model any, column string, value any) {
	s.t.Helper()
	must(s.t, s.db.Model(model).Update(column, value).Error)
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
}
