package repositories

import (
	"context"
	"fmt"

	"github.com/hardik-python-lr/our-gate-backend/domain"
	"gorm.io/gorm"
)

// MembershipRepositoryImpl stores flat memberships, guard links and committee seats.
type MembershipRepositoryImpl struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) domain.MembershipRepository {
	return &MembershipRepositoryImpl{db: db}
}

// CurrentFlat returns the flat of the user's active current-flat membership,
// loaded with its building and establishment.
func (r *MembershipRepositoryImpl) CurrentFlat(ctx context.Context, userID uint) (*domain.Flat, error) {
	var member domain.FlatMember
	err := conn(ctx, r.db).Preload("Flat.Building.Establishment").
		Where("user_id = ? AND is_active = ? AND is_current_flat = ?", userID, true, true).
		Order("id").
		First(&member).Error
	if err != nil {
		return nil, notFound(err, domain.ErrNotFound)
	}
	if member.Flat == nil {
		return nil, domain.ErrNotFound
	}
	return member.Flat, nil
}

func (r *MembershipRepositoryImpl) ActiveFlatMember(ctx context.Context, userID, flatID uint) (*domain.FlatMember, error) {
	var member domain.FlatMember
	err := conn(ctx, r.db).
		Where("user_id = ? AND flat_id = ? AND is_active = ?", userID, flatID, true).
		First(&member).Error
	if err != nil {
		return nil, notFound(err, domain.ErrNotFound)
	}
	return &member, nil
}

func (r *MembershipRepositoryImpl) CountActiveFlatMembers(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&domain.FlatMember{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&count).Error
	return count, err
}

// IsActiveMemberOfEstablishment reports an active membership of any flat in the establishment.
func (r *MembershipRepositoryImpl) IsActiveMemberOfEstablishment(ctx context.Context, userID, establishmentID uint) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&domain.FlatMember{}).
		Joins("JOIN flats ON flats.id = flat_members.flat_id").
		Joins("JOIN buildings ON buildings.id = flats.building_id").
		Where("flat_members.user_id = ? AND flat_members.is_active = ?", userID, true).
		Where("buildings.establishment_id = ?", establishmentID).
		Count(&count).Error
	return count > 0, err
}

func (r *MembershipRepositoryImpl) SaveFlatMember(ctx context.Context, member *domain.FlatMember) error {
	return conn(ctx, r.db).Omit("Flat").Save(member).Error
}

// SetCurrentFlat clears every current-flat mark of the user and sets it on
// the active membership of flatID. Callers wrap it in a transaction.
func (r *MembershipRepositoryImpl) SetCurrentFlat(ctx context.Context, userID, flatID uint) error {
	db := conn(ctx, r.db)
	if err := db.Model(&domain.FlatMember{}).
		Where("user_id = ? AND is_current_flat = ?", userID, true).
		Update("is_current_flat", false).Error; err != nil {
		return fmt.Errorf("failed to clear current flat: %w", err)
	}

	res := db.Model(&domain.FlatMember{}).
		Where("user_id = ? AND flat_id = ? AND is_active = ?", userID, flatID, true).
		Update("is_current_flat", true)
	if res.Error != nil {
		return fmt.Errorf("failed to set current flat: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ActiveGuardLink returns the user's active guard link with the establishment and its location.
func (r *MembershipRepositoryImpl) ActiveGuardLink(ctx context.Context, userID uint) (*domain.EstablishmentGuard, error) {
	var link domain.EstablishmentGuard
	err := conn(ctx, r.db).Preload("Establishment.Location").
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("id DESC").
		First(&link).Error
	if err != nil {
		return nil, notFound(err, domain.ErrNotFound)
	}
	return &link, nil
}

// GuardLink returns the link for the pair whatever its state.
func (r *MembershipRepositoryImpl) GuardLink(ctx context.Context, userID, establishmentID uint) (*domain.EstablishmentGuard, error) {
	var link domain.EstablishmentGuard
	err := conn(ctx, r.db).
		Where("user_id = ? AND establishment_id = ?", userID, establishmentID).
		Order("id DESC").
		First(&link).Error
	if err != nil {
		return nil, notFound(err, domain.ErrNotFound)
	}
	return &link, nil
}

// ActiveGuardLinkAdministeredBy returns the user's active guard link at an
// establishment administered by adminID.
func (r *MembershipRepositoryImpl) ActiveGuardLinkAdministeredBy(ctx context.Context, userID, adminID uint) (*domain.EstablishmentGuard, error) {
	var link domain.EstablishmentGuard
	err := conn(ctx, r.db).
		Where("user_id = ? AND is_active = ?", userID, true).
		Where("establishment_id IN (?)", conn(ctx, r.db).Session(&gorm.Session{NewDB: true}).
			Model(&domain.Establishment{}).
			Select("id").
			Where("establishment_admin_id = ?", adminID)).
		First(&link).Error
	if err != nil {
		return nil, notFound(err, domain.ErrNotFound)
	}
	return &link, nil
}

func (r *MembershipRepositoryImpl) SaveGuardLink(ctx context.Context, link *domain.EstablishmentGuard) error {
	return conn(ctx, r.db).Omit("Establishment").Save(link).Error
}

// CommitteeSeat returns the seat for the pair whatever its state.
func (r *MembershipRepositoryImpl) CommitteeSeat(ctx context.Context, userID, establishmentID uint) (*domain.ManagementCommittee, error) {
	var seat domain.ManagementCommittee
	err := conn(ctx, r.db).
		Where("user_id = ? AND establishment_id = ?", userID, establishmentID).
		First(&seat).Error
	if err != nil {
		return nil, notFound(err, domain.ErrNotFound)
	}
	return &seat, nil
}

func (r *MembershipRepositoryImpl) SaveCommitteeSeat(ctx context.Context, seat *domain.ManagementCommittee) error {
	return conn(ctx, r.db).Save(seat).Error
}
