package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/hardik-python-lr/our-gate-backend/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ServiceRequestRepositoryImpl stores bookings, their frozen slots and payments.
type ServiceRequestRepositoryImpl struct {
	db *gorm.DB
}

func NewServiceRequestRepository(db *gorm.DB) domain.ServiceRequestRepository {
	return &ServiceRequestRepositoryImpl{db: db}
}

// Create inserts the request together with its slot rows.
func (r *ServiceRequestRepositoryImpl) Create(ctx context.Context, req *domain.ServiceRequest) error {
	err := conn(ctx, r.db).
		Omit("Flat", "Service", "RequestedUser", "AssignedUser", "Payment").
		Create(req).Error
	if err != nil {
		return fmt.Errorf("failed to create service request: %w", err)
	}
	return nil
}

// Find returns the first request matching every set filter field.
func (r *ServiceRequestRepositoryImpl) Find(ctx context.Context, f domain.RequestFilter) (*domain.ServiceRequest, error) {
	var req domain.ServiceRequest
	err := r.preload(r.filtered(ctx, f)).
		Order(r.order(f)).
		First(&req).Error
	if err != nil {
		return nil, notFound(err, domain.ErrNotFound)
	}
	return &req, nil
}

// List returns one page of matching requests and the total match count.
func (r *ServiceRequestRepositoryImpl) List(ctx context.Context, f domain.RequestFilter, page domain.Page) ([]domain.ServiceRequest, int64, error) {
	page = page.Normalize()

	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count service requests: %w", err)
	}

	var reqs []domain.ServiceRequest
	err := r.preload(r.filtered(ctx, f)).
		Order(r.order(f)).
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&reqs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list service requests: %w", err)
	}
	return reqs, total, nil
}

// Save updates the request's own columns. Associations are left untouched.
func (r *ServiceRequestRepositoryImpl) Save(ctx context.Context, req *domain.ServiceRequest) error {
	return conn(ctx, r.db).Omit(clause.Associations).Save(req).Error
}

// Delete hard-deletes the request, its slot rows and its payment.
func (r *ServiceRequestRepositoryImpl) Delete(ctx context.Context, req *domain.ServiceRequest) error {
	db := conn(ctx, r.db)
	if err := db.Where("service_request_id = ?", req.ID).Delete(&domain.ServiceRequestSlot{}).Error; err != nil {
		return fmt.Errorf("failed to delete request slots: %w", err)
	}
	if err := db.Delete(&domain.ServiceRequest{}, req.ID).Error; err != nil {
		return fmt.Errorf("failed to delete service request: %w", err)
	}
	if req.PaymentID != nil {
		if err := db.Delete(&domain.Payment{}, *req.PaymentID).Error; err != nil {
			return fmt.Errorf("failed to delete payment: %w", err)
		}
	}
	return nil
}

func (r *ServiceRequestRepositoryImpl) CreatePayment(ctx context.Context, p *domain.Payment) error {
	return conn(ctx, r.db).Create(p).Error
}

func (r *ServiceRequestRepositoryImpl) SavePayment(ctx context.Context, p *domain.Payment) error {
	return conn(ctx, r.db).Save(p).Error
}

func (r *ServiceRequestRepositoryImpl) PaymentByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	var p domain.Payment
	if err := conn(ctx, r.db).Where("order_id = ?", orderID).First(&p).Error; err != nil {
		return nil, notFound(err, domain.ErrNotFound)
	}
	return &p, nil
}

func (r *ServiceRequestRepositoryImpl) filtered(ctx context.Context, f domain.RequestFilter) *gorm.DB {
	q := conn(ctx, r.db).Model(&domain.ServiceRequest{})

	if f.ID != 0 {
		q = q.Where("service_requests.id = ?", f.ID)
	}
	if f.FlatID != 0 {
		q = q.Where("service_requests.flat_id = ?", f.FlatID)
	}
	if f.RequestedUserID != 0 {
		q = q.Where("service_requests.requested_user_id = ?", f.RequestedUserID)
	}
	if f.AssignedUserID != 0 {
		q = q.Where("service_requests.assigned_user_id = ?", f.AssignedUserID)
	}
	if f.EstablishmentID != 0 {
		q = q.Where("service_requests.flat_id IN (SELECT flats.id FROM flats JOIN buildings ON buildings.id = flats.building_id WHERE buildings.establishment_id = ?)", f.EstablishmentID)
	}
	if f.OrganizationIDs != nil {
		q = q.Where("service_requests.service_id IN (SELECT id FROM services WHERE organization_id IN ?)", f.OrganizationIDs)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("service_requests.status IN ?", f.Statuses)
	}
	if len(f.ExcludeStatuses) > 0 {
		q = q.Where("service_requests.status NOT IN ?", f.ExcludeStatuses)
	}
	if f.Active != nil {
		q = q.Where("service_requests.is_active = ?", *f.Active)
	}
	if f.Rating != nil {
		q = q.Where("service_requests.rating = ?", *f.Rating)
	}
	if f.Date != nil {
		q = q.Where("service_requests.requested_date = ?", *f.Date)
	}
	if f.NotBefore != nil {
		q = q.Where("service_requests.requested_date >= ?", *f.NotBefore)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		q = q.Where("service_requests.service_id IN (SELECT id FROM services WHERE LOWER(name) LIKE ?)", "%"+strings.ToLower(s)+"%")
	}
	return q
}

func (r *ServiceRequestRepositoryImpl) preload(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Service").
		Preload("Flat.Building").
		Preload("RequestedUser").
		Preload("AssignedUser").
		Preload("Payment").
		Preload("Slots", func(db *gorm.DB) *gorm.DB { return db.Order("id") })
}

func (r *ServiceRequestRepositoryImpl) order(f domain.RequestFilter) string {
	if f.OldestFirst {
		return "service_requests.requested_date ASC, service_requests.id ASC"
	}
	return "service_requests.requested_date DESC, service_requests.id DESC"
}
