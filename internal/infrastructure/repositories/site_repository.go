package repositories

import (
	"context"

	"github.com/hardik-python-lr/our-gate-backend/domain"
	"gorm.io/gorm"
)

// SiteRepositoryImpl reads organizations, establishments and flats.
type SiteRepositoryImpl struct {
	db *gorm.DB
}

func NewSiteRepository(db *gorm.DB) domain.SiteRepository {
	return &SiteRepositoryImpl{db: db}
}

func (r *SiteRepositoryImpl) Organization(ctx context.Context, id uint) (*domain.Organization, error) {
	var org domain.Organization
	err := conn(ctx, r.db).Preload("OwnerUser").
		Where("id = ? AND is_active = ?", id, true).
		First(&org).Error
	if err != nil {
		return nil, notFound(err, domain.ErrNotFound)
	}
	return &org, nil
}

func (r *SiteRepositoryImpl) OwnedOrganizationIDs(ctx context.Context, ownerID uint) ([]uint, error) {
	var ids []uint
	err := conn(ctx, r.db).Model(&domain.Organization{}).
		Where("owner_user_id = ? AND is_active = ?", ownerID, true).
		Order("id").
		Pluck("id", &ids).Error
	return ids, err
}

// AdministeredEstablishment returns the active establishment if adminID is its admin.
func (r *SiteRepositoryImpl) AdministeredEstablishment(ctx context.Context, establishmentID, adminID uint) (*domain.Establishment, error) {
	var est domain.Establishment
	err := conn(ctx, r.db).Preload("Location").
		Where("id = ? AND establishment_admin_id = ? AND is_active = ?", establishmentID, adminID, true).
		First(&est).Error
	if err != nil {
		return nil, notFound(err, domain.ErrNotFound)
	}
	return &est, nil
}

// ActiveFlat loads an active flat with its building and establishment.
func (r *SiteRepositoryImpl) ActiveFlat(ctx context.Context, flatID uint) (*domain.Flat, error) {
	var flat domain.Flat
	err := conn(ctx, r.db).Preload("Building.Establishment").
		Where("id = ? AND is_active = ?", flatID, true).
		First(&flat).Error
	if err != nil {
		return nil, notFound(err, domain.ErrNotFound)
	}
	return &flat, nil
}
