package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/hardik-python-lr/our-gate-backend/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogRepositoryImpl stores the service catalog: categories, services,
// their weekly slots and excluded dates.
type CatalogRepositoryImpl struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) domain.CatalogRepository {
	return &CatalogRepositoryImpl{db: db}
}

// ActiveService loads an active service with its organization.
func (r *CatalogRepositoryImpl) ActiveService(ctx context.Context, serviceID uint) (*domain.Service, error) {
	var svc domain.Service
	err := conn(ctx, r.db).Preload("Organization").
		Where("id = ? AND is_active = ?", serviceID, true).
		First(&svc).Error
	if err != nil {
		return nil, notFound(err, domain.ErrNotFound)
	}
	return &svc, nil
}

func (r *CatalogRepositoryImpl) IsExcluded(ctx context.Context, serviceID uint, date datatypes.Date) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&domain.ServiceExclusion{}).
		Where("service_id = ? AND date = ?", serviceID, date).
		Count(&count).Error
	return count > 0, err
}

// SlotsForDay returns the active slots of the service on an ISO weekday, earliest first.
func (r *CatalogRepositoryImpl) SlotsForDay(ctx context.Context, serviceID uint, dayOfWeek int) ([]domain.ServiceSlot, error) {
	var slots []domain.ServiceSlot
	err := conn(ctx, r.db).
		Where("service_id = ? AND day_of_week = ? AND is_active = ?", serviceID, dayOfWeek, true).
		Order("start_time, id").
		Find(&slots).Error
	return slots, err
}

func (r *CatalogRepositoryImpl) Categories(ctx context.Context, f domain.CatalogFilter, page *domain.Page) ([]domain.ServiceCategory, int64, error) {
	filtered := func() *gorm.DB {
		q := conn(ctx, r.db).Model(&domain.ServiceCategory{}).
			Where("service_categories.is_active = ?", true).
			Where("service_categories.organization_id IN (SELECT id FROM organizations WHERE is_active = ?)", true)
		if f.ID != 0 {
			q = q.Where("service_categories.id = ?", f.ID)
		}
		if f.OrganizationIDs != nil {
			q = q.Where("service_categories.organization_id IN ?", f.OrganizationIDs)
		}
		return nameLike(q, "service_categories.name", f.Name)
	}
	return paged[domain.ServiceCategory](filtered, "service_categories.name, service_categories.id", page)
}

func (r *CatalogRepositoryImpl) SubCategories(ctx context.Context, f domain.CatalogFilter, page *domain.Page) ([]domain.ServiceSubCategory, int64, error) {
	filtered := func() *gorm.DB {
		q := conn(ctx, r.db).Model(&domain.ServiceSubCategory{}).
			Where("service_sub_categories.is_active = ?", true).
			Where("service_sub_categories.category_id IN (?)", r.activeCategoryIDs(ctx, f.OrganizationIDs))
		if f.ID != 0 {
			q = q.Where("service_sub_categories.id = ?", f.ID)
		}
		if f.CategoryID != 0 {
			q = q.Where("service_sub_categories.category_id = ?", f.CategoryID)
		}
		return nameLike(q, "service_sub_categories.name", f.Name)
	}
	return paged[domain.ServiceSubCategory](filtered, "service_sub_categories.name, service_sub_categories.id", page, "Category")
}

func (r *CatalogRepositoryImpl) Services(ctx context.Context, f domain.CatalogFilter, page *domain.Page) ([]domain.Service, int64, error) {
	filtered := func() *gorm.DB {
		q := conn(ctx, r.db).Model(&domain.Service{}).
			Where("services.id IN (?)", r.activeServiceIDs(ctx, f.OrganizationIDs))
		if f.ID != 0 {
			q = q.Where("services.id = ?", f.ID)
		}
		if f.SubCategoryID != 0 {
			q = q.Where("services.sub_category_id = ?", f.SubCategoryID)
		}
		if f.CategoryID != 0 {
			q = q.Where("services.sub_category_id IN (SELECT id FROM service_sub_categories WHERE category_id = ?)", f.CategoryID)
		}
		return nameLike(q, "services.name", f.Name)
	}
	return paged[domain.Service](filtered, "services.name, services.id", page, "SubCategory.Category")
}

func (r *CatalogRepositoryImpl) Slots(ctx context.Context, f domain.CatalogFilter, page *domain.Page) ([]domain.ServiceSlot, int64, error) {
	filtered := func() *gorm.DB {
		q := conn(ctx, r.db).Model(&domain.ServiceSlot{}).
			Where("service_slots.is_active = ?", true).
			Where("service_slots.service_id IN (?)", r.activeServiceIDs(ctx, f.OrganizationIDs))
		if f.ID != 0 {
			q = q.Where("service_slots.id = ?", f.ID)
		}
		if f.ServiceID != 0 {
			q = q.Where("service_slots.service_id = ?", f.ServiceID)
		}
		if f.DayOfWeek != 0 {
			q = q.Where("service_slots.day_of_week = ?", f.DayOfWeek)
		}
		return q
	}
	return paged[domain.ServiceSlot](filtered, "service_slots.day_of_week, service_slots.start_time, service_slots.id", page)
}

func (r *CatalogRepositoryImpl) Exclusions(ctx context.Context, f domain.CatalogFilter, page *domain.Page) ([]domain.ServiceExclusion, int64, error) {
	filtered := func() *gorm.DB {
		q := conn(ctx, r.db).Model(&domain.ServiceExclusion{}).
			Where("service_exclusions.service_id IN (?)", r.activeServiceIDs(ctx, f.OrganizationIDs))
		if f.ID != 0 {
			q = q.Where("service_exclusions.id = ?", f.ID)
		}
		if f.ServiceID != 0 {
			q = q.Where("service_exclusions.service_id = ?", f.ServiceID)
		}
		if f.Date != nil {
			q = q.Where("service_exclusions.date = ?", *f.Date)
		}
		return q
	}
	return paged[domain.ServiceExclusion](filtered, "service_exclusions.date, service_exclusions.id", page)
}

// Save inserts or updates a catalog row. Associations are left untouched.
func (r *CatalogRepositoryImpl) Save(ctx context.Context, record any) error {
	return conn(ctx, r.db).Omit(clause.Associations).Save(record).Error
}

func (r *CatalogRepositoryImpl) DeleteExclusion(ctx context.Context, id uint) error {
	return conn(ctx, r.db).Delete(&domain.ServiceExclusion{}, id).Error
}

// activeCategoryIDs is a subquery over active categories of active organizations.
func (r *CatalogRepositoryImpl) activeCategoryIDs(ctx context.Context, orgs []uint) *gorm.DB {
	q := conn(ctx, r.db).Model(&domain.ServiceCategory{}).Select("id").
		Where("is_active = ?", true).
		Where("organization_id IN (SELECT id FROM organizations WHERE is_active = ?)", true)
	if orgs != nil {
		q = q.Where("organization_id IN ?", orgs)
	}
	return q
}

// activeServiceIDs is a subquery over active services of active organizations.
func (r *CatalogRepositoryImpl) activeServiceIDs(ctx context.Context, orgs []uint) *gorm.DB {
	q := conn(ctx, r.db).Model(&domain.Service{}).Select("id").
		Where("is_active = ?", true).
		Where("organization_id IN (SELECT id FROM organizations WHERE is_active = ?)", true)
	if orgs != nil {
		q = q.Where("organization_id IN ?", orgs)
	}
	return q
}

func nameLike(q *gorm.DB, column, name string) *gorm.DB {
	if s := strings.TrimSpace(name); s != "" {
		q = q.Where("LOWER("+column+") LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	return q
}

// paged counts and loads the rows matched by filtered. filtered builds a fresh
// statement per call so the count and the select do not share clauses.
func paged[T any](filtered func() *gorm.DB, order string, page *domain.Page, preloads ...string) ([]T, int64, error) {
	load := func(q *gorm.DB) *gorm.DB {
		for _, p := range preloads {
			q = q.Preload(p)
		}
		return q.Order(order)
	}

	var rows []T
	if page == nil {
		if err := load(filtered()).Find(&rows).Error; err != nil {
			return nil, 0, fmt.Errorf("failed to list catalog rows: %w", err)
		}
		return rows, int64(len(rows)), nil
	}

	p := page.Normalize()
	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count catalog rows: %w", err)
	}
	if err := load(filtered()).Offset(p.Offset()).Limit(p.Size).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list catalog rows: %w", err)
	}
	return rows, total, nil
}
