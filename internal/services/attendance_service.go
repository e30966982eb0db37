package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/hardik-python-lr/our-gate-backend/domain"
	"github.com/hardik-python-lr/our-gate-backend/internal/clock"
	"github.com/hardik-python-lr/our-gate-backend/internal/geo"
	"go.uber.org/zap"
)

const attendanceAddress = "attendance address"

// AttendanceServiceImpl implements domain.AttendanceService
type AttendanceServiceImpl struct {
	perms    domain.PermissionEvaluator
	resolver domain.ContextResolver
	records  domain.AttendanceRepository
	tx       domain.Transactor
	locker   domain.Locker
	lockTTL  time.Duration
	audit    domain.AuditLogger
	clock    clock.Clock
	loc      *time.Location
	log      *zap.Logger
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(
	perms domain.PermissionEvaluator,
	resolver domain.ContextResolver,
	records domain.AttendanceRepository,
	tx domain.Transactor,
	locker domain.Locker,
	lockTTL time.Duration,
	audit domain.AuditLogger,
	clk clock.Clock,
	loc *time.Location,
	log *zap.Logger,
) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		perms:    perms,
		resolver: resolver,
		records:  records,
		tx:       tx,
		locker:   locker,
		lockTTL:  lockTTL,
		audit:    audit,
		clock:    clk,
		loc:      loc,
		log:      log.Named("attendance"),
	}
}

// CheckIn opens today's attendance record for the guard.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, userID uint, in domain.AttendanceInput) (*domain.AttendanceResult, error) {
	link, err := s.gate(ctx, userID, in)
	if err != nil {
		return nil, err
	}

	release, err := s.lock(ctx, link.ID, domain.CodeInvalidCheckIn)
	if err != nil {
		return nil, err
	}
	defer release()

	now := s.now()
	today, err := s.today(ctx, link.ID, now)
	if err != nil {
		return nil, err
	}
	switch domain.StateOf(today) {
	case domain.AttendanceCheckedIn:
		return nil, domain.Validation(domain.CodeInvalidCheckIn)
	case domain.AttendanceCheckedOut:
		return nil, domain.Validation(domain.CodeRepeatedCheckIn)
	}

	result := &domain.AttendanceResult{
		AttendanceStatus: domain.CodeCheckInDone.Message(),
		IsCheckIn:        true,
	}
	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		point, device, err := s.capture(ctx, in)
		if err != nil {
			return err
		}
		record := &domain.AttendanceRecord{
			EstablishmentGuardID: link.ID,
			SignInLocationID:     point.ID,
			SignInImage:          *in.Image,
			SignInDeviceID:       device.ID,
			SignInTime:           now,
		}
		if err := s.records.Create(ctx, record); err != nil {
			return fmt.Errorf("failed to create attendance record: %w", err)
		}
		result.Location, result.Device, result.Attendance = point, device, record
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.GuardCheckInEvent, userID).
		WithMetadata("establishment_guard_id", link.ID))
	return result, nil
}

// CheckOut closes today's open attendance record.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, userID uint, in domain.AttendanceInput) (*domain.AttendanceResult, error) {
	link, err := s.gate(ctx, userID, in)
	if err != nil {
		return nil, err
	}

	release, err := s.lock(ctx, link.ID, domain.CodeRepeatedCheckOut)
	if err != nil {
		return nil, err
	}
	defer release()

	now := s.now()
	today, err := s.today(ctx, link.ID, now)
	if err != nil {
		return nil, err
	}
	switch domain.StateOf(today) {
	case domain.AttendanceNoRecord:
		return nil, domain.Validation(domain.CodeCheckInRequired)
	case domain.AttendanceCheckedOut:
		return nil, domain.Validation(domain.CodeRepeatedCheckOut)
	}

	result := &domain.AttendanceResult{
		AttendanceStatus: domain.CodeCheckOutDone.Message(),
		IsCheckOut:       true,
	}
	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		point, device, err := s.capture(ctx, in)
		if err != nil {
			return err
		}
		image := *in.Image
		today.SignOutLocationID = &point.ID
		today.SignOutImage = &image
		today.SignOutDeviceID = &device.ID
		today.SignOutTime = &now
		if err := s.records.Save(ctx, today); err != nil {
			return fmt.Errorf("failed to close attendance record: %w", err)
		}
		result.Location, result.Device, result.Attendance = point, device, today
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.GuardCheckOutEvent, userID).
		WithMetadata("establishment_guard_id", link.ID))
	return result, nil
}

// Status reports today's attendance without changing it.
func (s *AttendanceServiceImpl) Status(ctx context.Context, userID uint) (*domain.AttendanceStatus, error) {
	if _, err := requireRole(ctx, s.perms, userID, domain.RoleSecurityGuard); err != nil {
		return nil, err
	}
	link, err := s.resolver.ValidEstablishmentGuard(ctx, userID)
	if err != nil {
		return nil, err
	}

	today, err := s.today(ctx, link.ID, s.now())
	if err != nil {
		return nil, err
	}

	status := &domain.AttendanceStatus{State: domain.StateOf(today)}
	switch status.State {
	case domain.AttendanceNoRecord:
		status.Message = domain.CodeCheckInNotDone.Message()
	case domain.AttendanceCheckedIn:
		status.Message = domain.CodeCheckInDone.Message()
		status.IsCheckIn = true
	case domain.AttendanceCheckedOut:
		status.Message = domain.CodeCheckOutDone.Message()
		status.IsCheckOut = true
	}
	if today != nil {
		in := today.SignInTime.In(s.loc)
		status.SignInTime = &in
		if today.SignOutTime != nil {
			out := today.SignOutTime.In(s.loc)
			status.SignOutTime = &out
		}
	}
	return status, nil
}

// gate runs the role, guard link, payload and geofence checks in that order.
func (s *AttendanceServiceImpl) gate(ctx context.Context, userID uint, in domain.AttendanceInput) (*domain.EstablishmentGuard, error) {
	if _, err := requireRole(ctx, s.perms, userID, domain.RoleSecurityGuard); err != nil {
		return nil, err
	}
	link, err := s.resolver.ValidEstablishmentGuard(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Location == nil || in.Image == nil || in.DeviceID == nil {
		return nil, domain.Validation(domain.CodeInvalidResponse)
	}

	est := link.Establishment
	if est == nil || est.Location == nil {
		return nil, domain.Internal(fmt.Errorf("guard link %d has no establishment location", link.ID))
	}
	if !geo.Within(in.Location.Latitude, in.Location.Longitude, est.Location.Latitude, est.Location.Longitude, est.AttendanceRadius) {
		s.log.Info("check outside geofence",
			zap.Uint("user_id", userID),
			zap.Uint("establishment_id", est.ID),
			zap.Float64("distance_m", geo.DistanceMeters(in.Location.Latitude, in.Location.Longitude, est.Location.Latitude, est.Location.Longitude)),
		)
		return nil, domain.Validation(domain.CodeInvalidGeomapping)
	}
	return link, nil
}

func (s *AttendanceServiceImpl) lock(ctx context.Context, linkID uint, busy domain.Code) (func(), error) {
	release, err := s.locker.Acquire(ctx, "lock:attendance:"+strconv.FormatUint(uint64(linkID), 10), s.lockTTL)
	if errors.Is(err, domain.ErrLockNotHeld) {
		return nil, domain.Validation(busy)
	}
	if err != nil {
		return nil, err
	}
	return release, nil
}

func (s *AttendanceServiceImpl) today(ctx context.Context, linkID uint, now time.Time) (*domain.AttendanceRecord, error) {
	from, to := domain.DayBounds(now, s.loc)
	record, err := s.records.LatestBetween(ctx, linkID, from, to)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return record, err
}

func (s *AttendanceServiceImpl) capture(ctx context.Context, in domain.AttendanceInput) (*domain.Location, *domain.DeviceID, error) {
	point := &domain.Location{
		Latitude:  in.Location.Latitude,
		Longitude: in.Location.Longitude,
		Address:   attendanceAddress,
	}
	if err := s.records.CreateLocation(ctx, point); err != nil {
		return nil, nil, fmt.Errorf("failed to store location: %w", err)
	}
	device, err := s.records.GetOrCreateDevice(ctx, *in.DeviceID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to register device: %w", err)
	}
	return point, device, nil
}

func (s *AttendanceServiceImpl) now() time.Time {
	return s.clock.Now().UTC().Truncate(time.Second)
}
