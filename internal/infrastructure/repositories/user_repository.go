package repositories

import (
	"context"
	"fmt"

	"github.com/hardik-python-lr/our-gate-backend/domain"
	"gorm.io/gorm"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create inserts the user and its role rows together.
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User, roles []domain.RoleID) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		for _, role := range roles {
			if err := tx.Create(&domain.UserRole{UserID: user.ID, RoleID: role}).Error; err != nil {
				return fmt.Errorf("failed to grant role %d: %w", role, err)
			}
		}
		return nil
	})
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := conn(ctx, r.db).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}
	return &user, nil
}

// FindActiveByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindActiveByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	err := conn(ctx, r.db).Where("id = ? AND is_active = ?", id, true).First(&user).Error
	if err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}
	return &user, nil
}

// FindActiveByPhone implements domain.UserRepository
func (r *UserRepositoryImpl) FindActiveByPhone(ctx context.Context, phone string) (*domain.User, error) {
	var user domain.User
	err := conn(ctx, r.db).Where("phone = ? AND is_active = ?", phone, true).First(&user).Error
	if err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}
	return &user, nil
}

// FindActiveWithRole returns the active user only if it holds role.
func (r *UserRepositoryImpl) FindActiveWithRole(ctx context.Context, id uint, role domain.RoleID) (*domain.User, error) {
	var user domain.User
	err := conn(ctx, r.db).
		Where("id = ? AND is_active = ?", id, true).
		Where("id IN (?)", r.holders(ctx, role)).
		First(&user).Error
	if err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}
	return &user, nil
}

// ListActiveWithRole lists active holders of role, restricted to the given
// organizations when any are passed.
func (r *UserRepositoryImpl) ListActiveWithRole(ctx context.Context, role domain.RoleID, organizationIDs []uint) ([]domain.User, error) {
	q := conn(ctx, r.db).
		Where("is_active = ?", true).
		Where("id IN (?)", r.holders(ctx, role))
	if len(organizationIDs) > 0 {
		q = q.Where("organization_id IN ?", organizationIDs)
	}

	var users []domain.User
	if err := q.Order("first_name, last_name, id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users with role %d: %w", role, err)
	}
	return users, nil
}

// PhoneOrEmailTaken reports whether any user, active or not, already uses the phone or email.
func (r *UserRepositoryImpl) PhoneOrEmailTaken(ctx context.Context, phone string, email *string) (bool, error) {
	q := conn(ctx, r.db).Model(&domain.User{}).Where("phone = ?", phone)
	if email != nil && *email != "" {
		q = q.Or("email = ?", *email)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// IncrementOTPCounter bumps the user's otp counter and returns the new value.
func (r *UserRepositoryImpl) IncrementOTPCounter(ctx context.Context, userID uint) (int, error) {
	db := conn(ctx, r.db)
	res := db.Model(&domain.User{}).
		Where("id = ?", userID).
		UpdateColumn("otp_counter", gorm.Expr("otp_counter + ?", 1))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, domain.ErrUserNotFound
	}

	var counter int
	if err := db.Model(&domain.User{}).Select("otp_counter").Where("id = ?", userID).Row().Scan(&counter); err != nil {
		return 0, err
	}
	return counter, nil
}

// Update implements domain.UserRepository
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	return conn(ctx, r.db).Save(user).Error
}

func (r *UserRepositoryImpl) holders(ctx context.Context, role domain.RoleID) *gorm.DB {
	return conn(ctx, r.db).Session(&gorm.Session{NewDB: true}).
		Model(&domain.UserRole{}).
		Select("user_id").
		Where("role_id = ?", role)
}
