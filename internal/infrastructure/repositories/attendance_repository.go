package repositories

import (
	"context"
	"time"

	"github.com/hardik-python-lr/our-gate-backend/domain"
	"gorm.io/gorm"
)

// AttendanceRepositoryImpl stores guard attendance records and their locations and devices.
type AttendanceRepositoryImpl struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) domain.AttendanceRepository {
	return &AttendanceRepositoryImpl{db: db}
}

// LatestBetween returns the most recent record of the guard link signed in
// within [from, to), or domain.ErrNotFound.
func (r *AttendanceRepositoryImpl) LatestBetween(ctx context.Context, guardLinkID uint, from, to time.Time) (*domain.AttendanceRecord, error) {
	var record domain.AttendanceRecord
	err := conn(ctx, r.db).
		Where("establishment_guard_id = ?", guardLinkID).
		Where("sign_in_time >= ? AND sign_in_time < ?", from.UTC(), to.UTC()).
		Order("sign_in_time DESC, id DESC").
		First(&record).Error
	if err != nil {
		return nil, notFound(err, domain.ErrNotFound)
	}
	return &record, nil
}

func (r *AttendanceRepositoryImpl) CreateLocation(ctx context.Context, loc *domain.Location) error {
	return conn(ctx, r.db).Create(loc).Error
}

func (r *AttendanceRepositoryImpl) GetOrCreateDevice(ctx context.Context, value string) (*domain.DeviceID, error) {
	device := domain.DeviceID{Value: value}
	if err := conn(ctx, r.db).Where("device_id = ?", value).FirstOrCreate(&device).Error; err != nil {
		return nil, err
	}
	return &device, nil
}

func (r *AttendanceRepositoryImpl) Create(ctx context.Context, record *domain.AttendanceRecord) error {
	return conn(ctx, r.db).Create(record).Error
}

func (r *AttendanceRepositoryImpl) Save(ctx context.Context, record *domain.AttendanceRecord) error {
	return conn(ctx, r.db).Save(record).Error
}
