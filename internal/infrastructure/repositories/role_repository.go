package repositories

import (
	"context"
	"fmt"

	"github.com/hardik-python-lr/our-gate-backend/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RoleRepositoryImpl implements domain.RoleRepository using GORM
type RoleRepositoryImpl struct {
	db *gorm.DB
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *gorm.DB) domain.RoleRepository {
	return &RoleRepositoryImpl{db: db}
}

// RoleIDs returns the roles held by the user in id order.
func (r *RoleRepositoryImpl) RoleIDs(ctx context.Context, userID uint) ([]domain.RoleID, error) {
	var ids []domain.RoleID
	err := conn(ctx, r.db).Model(&domain.UserRole{}).
		Where("user_id = ?", userID).
		Order("role_id").
		Pluck("role_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load roles of user %d: %w", userID, err)
	}
	return ids, nil
}

// Grant adds role to the user. Granting a held role is a no-op.
func (r *RoleRepositoryImpl) Grant(ctx context.Context, userID uint, role domain.RoleID) error {
	return conn(ctx, r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&domain.UserRole{UserID: userID, RoleID: role}).Error
}

// Revoke removes role from the user.
func (r *RoleRepositoryImpl) Revoke(ctx context.Context, userID uint, role domain.RoleID) error {
	return conn(ctx, r.db).
		Where("user_id = ? AND role_id = ?", userID, role).
		Delete(&domain.UserRole{}).Error
}

// EnsureRoles upserts the fixed role rows.
func (r *RoleRepositoryImpl) EnsureRoles(ctx context.Context) error {
	rows := make([]domain.Role, 0, len(domain.AllRoles()))
	for _, id := range domain.AllRoles() {
		rows = append(rows, domain.Role{ID: id, Name: id.String()})
	}
	return conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name"}),
		}).
		Create(&rows).Error
}
