package database

import (
	"fmt"
	"time"

	gormadapter "github.com/casbin/gorm-adapter/v3"
	"github.com/hardik-python-lr/our-gate-backend/domain"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open creates a new database connection with production-ready settings
func Open(dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(postgres.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// Models lists every table owned by the service in dependency order.
func Models() []any {
	return []any{
		&domain.User{},
		&domain.Role{},
		&domain.UserRole{},
		&domain.Location{},
		&domain.Organization{},
		&domain.Establishment{},
		&domain.Building{},
		&domain.Flat{},
		&domain.FlatMember{},
		&domain.EstablishmentGuard{},
		&domain.ManagementCommittee{},
		&domain.DeviceID{},
		&domain.AttendanceRecord{},
		&domain.ServiceCategory{},
		&domain.ServiceSubCategory{},
		&domain.Service{},
		&domain.ServiceSlot{},
		&domain.ServiceExclusion{},
		&domain.Payment{},
		&domain.ServiceRequest{},
		&domain.ServiceRequestSlot{},
		&domain.PushNotificationToken{},
	}
}

// AutoMigrate creates the domain tables and the Casbin policy table.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate domain tables: %w", err)
	}

	// NewAdapterByDB creates casbin_rule when it is missing.
	if _, err := gormadapter.NewAdapterByDB(db); err != nil {
		return fmt.Errorf("failed to initialize Casbin GORM adapter: %w", err)
	}

	return nil
}
