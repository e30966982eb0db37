package repositories

import (
	"context"

	"github.com/hardik-python-lr/our-gate-backend/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PushTokenRepositoryImpl keeps the latest push token of each user.
type PushTokenRepositoryImpl struct {
	db *gorm.DB
}

func NewPushTokenRepository(db *gorm.DB) domain.PushTokenRepository {
	return &PushTokenRepositoryImpl{db: db}
}

// Save replaces the user's token, creating the row on first use.
func (r *PushTokenRepositoryImpl) Save(ctx context.Context, userID uint, deviceID, token string) (*domain.PushNotificationToken, error) {
	row := domain.PushNotificationToken{UserID: userID, DeviceID: deviceID, CurrentToken: token}
	err := conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"device_id", "current_token", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}
	return r.FindByUser(ctx, userID)
}

func (r *PushTokenRepositoryImpl) FindByUser(ctx context.Context, userID uint) (*domain.PushNotificationToken, error) {
	var row domain.PushNotificationToken
	if err := conn(ctx, r.db).Where("user_id = ?", userID).First(&row).Error; err != nil {
		return nil, notFound(err, domain.ErrNotFound)
	}
	return &row, nil
}
