package services

import (
	"context"
	"strings"
	"time"

	"github.com/hardik-python-lr/our-gate-backend/domain"
	"github.com/hardik-python-lr/our-gate-backend/internal/clock"
	"gorm.io/datatypes"
)

// CatalogDeps collects what the catalog workflow needs.
type CatalogDeps struct {
	Perms    domain.PermissionEvaluator
	Resolver domain.ContextResolver
	Sites    domain.SiteRepository
	Catalog  domain.CatalogRepository
	Audit    domain.AuditLogger
	Clock    clock.Clock
	Location *time.Location
}

// CatalogServiceImpl implements domain.CatalogService. Organization
// administrators manage the catalogs of the organizations they own; residents
// browse the catalog of their current flat's organization.
type CatalogServiceImpl struct {
	d CatalogDeps
}

func NewCatalogService(d CatalogDeps) *CatalogServiceImpl {
	if d.Location == nil {
		d.Location = time.UTC
	}
	return &CatalogServiceImpl{d: d}
}

func (s *CatalogServiceImpl) CreateCategory(ctx context.Context, userID uint, in domain.CategoryInput) (*domain.ServiceCategory, error) {
	orgs, err := s.adminScope(ctx, userID)
	if err != nil {
		return nil, err
	}
	name, err := requireName(in.Name)
	if err != nil {
		return nil, err
	}
	orgID, err := pickOrganization(orgs, in.OrganizationID)
	if err != nil {
		return nil, err
	}

	category := &domain.ServiceCategory{OrganizationID: orgID, Name: name, IsActive: true}
	if err := s.save(ctx, userID, "category", "created", category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CatalogServiceImpl) UpdateCategory(ctx context.Context, userID, id uint, in domain.CategoryInput) (*domain.ServiceCategory, error) {
	category, err := s.Category(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if category.Name, err = requireName(in.Name); err != nil {
		return nil, err
	}
	if err := s.save(ctx, userID, "category", "updated", category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CatalogServiceImpl) DeleteCategory(ctx context.Context, userID, id uint) error {
	category, err := s.Category(ctx, userID, id)
	if err != nil {
		return err
	}
	category.IsActive = false
	return s.save(ctx, userID, "category", "deleted", category)
}

func (s *CatalogServiceImpl) Category(ctx context.Context, userID, id uint) (*domain.ServiceCategory, error) {
	orgs, err := s.adminScope(ctx, userID)
	if err != nil {
		return nil, err
	}
	return firstOf[domain.ServiceCategory](s.d.Catalog.Categories(ctx, domain.CatalogFilter{ID: id, OrganizationIDs: orgs}, nil))
}

func (s *CatalogServiceImpl) Categories(ctx context.Context, userID uint, q domain.CatalogQuery) (*domain.ListResult[domain.ServiceCategory], error) {
	orgs, err := s.adminScope(ctx, userID)
	if err != nil {
		return nil, err
	}
	page := q.Page.Normalize()
	rows, total, err := s.d.Catalog.Categories(ctx, domain.CatalogFilter{OrganizationIDs: orgs, Name: q.Name}, &page)
	return listResult(rows, total, err, page)
}

func (s *CatalogServiceImpl) CreateSubCategory(ctx context.Context, userID uint, in domain.SubCategoryInput) (*domain.ServiceSubCategory, error) {
	orgs, err := s.adminScope(ctx, userID)
	if err != nil {
		return nil, err
	}
	sub := &domain.ServiceSubCategory{IsActive: true}
	if err := s.applySubCategory(ctx, orgs, sub, in); err != nil {
		return nil, err
	}
	if err := s.save(ctx, userID, "sub_category", "created", sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *CatalogServiceImpl) UpdateSubCategory(ctx context.Context, userID, id uint, in domain.SubCategoryInput) (*domain.ServiceSubCategory, error) {
	orgs, err := s.adminScope(ctx, userID)
	if err != nil {
		return nil, err
	}
	sub, err := firstOf[domain.ServiceSubCategory](s.d.Catalog.SubCategories(ctx, domain.CatalogFilter{ID: id, OrganizationIDs: orgs}, nil))
	if err != nil {
		return nil, err
	}
	if err := s.applySubCategory(ctx, orgs, sub, in); err != nil {
		return nil, err
	}
	if err := s.save(ctx, userID, "sub_category", "updated", sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *CatalogServiceImpl) DeleteSubCategory(ctx context.Context, userID, id uint) error {
	sub, err := s.SubCategory(ctx, userID, id)
	if err != nil {
		return err
	}
	sub.IsActive = false
	return s.save(ctx, userID, "sub_category", "deleted", sub)
}

func (s *CatalogServiceImpl) SubCategory(ctx context.Context, userID, id uint) (*domain.ServiceSubCategory, error) {
	orgs, err := s.adminScope(ctx, userID)
	if err != nil {
		return nil, err
	}
	return firstOf[domain.ServiceSubCategory](s.d.Catalog.SubCategories(ctx, domain.CatalogFilter{ID: id, OrganizationIDs: orgs}, nil))
}

func (s *CatalogServiceImpl) SubCategories(ctx context.Context, userID uint, q domain.CatalogQuery) (*domain.ListResult[domain.ServiceSubCategory], error) {
	orgs, err := s.adminScope(ctx, userID)
	if err != nil {
		return nil, err
	}
	page := q.Page.Normalize()
	rows, total, err := s.d.Catalog.SubCategories(ctx, domain.CatalogFilter{
		OrganizationIDs: orgs,
		CategoryID:      q.CategoryID,
		Name:            q.Name,
	}, &page)
	return listResult(rows, total, err, page)
}

func (s *CatalogServiceImpl) CreateService(ctx context.Context, userID uint, in domain.ServiceInput) (*domain.Service, error) {
	orgs, err := s.adminScope(ctx, userID)
	if err != nil {
		return nil, err
	}
	svc := &domain.Service{IsActive: true}
	if err := s.applyService(ctx, orgs, svc, in); err != nil {
		return nil, err
	}
	if err := s.save(ctx, userID, "service", "created", svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *CatalogServiceImpl) UpdateService(ctx context.Context, userID, id uint, in domain.ServiceInput) (*domain.Service, error) {
	orgs, err := s.adminScope(ctx, userID)
	if err != nil {
		return nil, err
	}
	svc, err := firstOf[domain.Service](s.d.Catalog.Services(ctx, domain.CatalogFilter{ID: id, OrganizationIDs: orgs}, nil))
	if err != nil {
		return nil, err
	}
	if err := s.applyService(ctx, orgs, svc, in); err != nil {
		return nil, err
	}
	if err := s.save(ctx, userID, "service", "updated", svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// DeleteService retires the service. Existing bookings keep pointing at it.
func (s *CatalogServiceImpl) DeleteService(ctx context.Context, userID, id uint) error {
	svc, err := s.Service(ctx, userID, id)
	if err != nil {
		return err
	}
	svc.IsActive = false
	return s.save(ctx, userID, "service", "deleted", svc)
}

func (s *CatalogServiceImpl) Service(ctx context.Context, userID, id uint) (*domain.Service, error) {
	orgs, err := s.adminScope(ctx, userID)
	if err != nil {
		return nil, err
	}
	return firstOf[domain.Service](s.d.Catalog.Services(ctx, domain.CatalogFilter{ID: id, OrganizationIDs: orgs}, nil))
}

func (s *CatalogServiceImpl) Services(ctx context.Context, userID uint, q domain.CatalogQuery) (*domain.ListResult[domain.Service], error) {
	orgs, err := s.adminScope(ctx, userID)
	if err != nil {
		return nil, err
	}
	page := q.Page.Normalize()
	rows, total, err := s.d.Catalog.Services(ctx, domain.CatalogFilter{
		OrganizationIDs: orgs,
		CategoryID:      q.CategoryID,
		SubCategoryID:   q.SubCategoryID,
		Name:            q.Name,
	}, &page)
	return listResult(rows, total, err, page)
}

func (s *CatalogServiceImpl) CreateSlot(ctx context.Context, userID uint, in domain.SlotInput) (*domain.ServiceSlot, error) {
	orgs, err := s.adminScope(ctx, userID)
	if err != nil {
		return nil, err
	}
	slot := &domain.ServiceSlot{IsActive: true}
	if err := s.applySlot(ctx, orgs, slot, in); err != nil {
		return nil, err
	}
	if err := s.save(ctx, userID, "slot", "created", slot); err != nil {
		return nil, err
	}
	return slot, nil
}

func (s *CatalogServiceImpl) UpdateSlot(ctx context.Context, userID, id uint, in domain.SlotInput) (*domain.ServiceSlot, error) {
	orgs, err := s.adminScope(ctx, userID)
	if err != nil {
		return nil, err
	}
	slot, err := firstOf[domain.ServiceSlot](s.d.Catalog.Slots(ctx, domain.CatalogFilter{ID: id, OrganizationIDs: orgs}, nil))
	if err != nil {
		return nil, err
	}
	if err := s.applySlot(ctx, orgs, slot, in); err != nil {
		return nil, err
	}
	if err := s.save(ctx, userID, "slot", "updated", slot); err != nil {
		return nil, err
	}
	return slot, nil
}

func (s *CatalogServiceImpl) DeleteSlot(ctx context.Context, userID, id uint) error {
	slot, err := s.Slot(ctx, userID, id)
	if err != nil {
		return err
	}
	slot.IsActive = false
	return s.save(ctx, userID, "slot", "deleted", slot)
}

func (s *CatalogServiceImpl) Slot(ctx context.Context, userID, id uint) (*domain.ServiceSlot, error) {
	orgs, err := s.adminScope(ctx, userID)
	if err != nil {
		return nil, err
	}
	return firstOf[domain.ServiceSlot](s.d.Catalog.Slots(ctx, domain.CatalogFilter{ID: id, OrganizationIDs: orgs}, nil))
}

func (s *CatalogServiceImpl) Slots(ctx context.Context, userID uint, q domain.CatalogQuery) (*domain.ListResult[domain.ServiceSlot], error) {
	orgs, err := s.adminScope(ctx, userID)
	if err != nil {
		return nil, err
	}
	page := q.Page.Normalize()
	rows, total, err := s.d.Catalog.Slots(ctx, domain.CatalogFilter{
		OrganizationIDs: orgs,
		ServiceID:       q.ServiceID,
		DayOfWeek:       q.DayOfWeek,
	}, &page)
	return listResult(rows, total, err, page)
}

func (s *CatalogServiceImpl) CreateExclusion(ctx context.Context, userID uint, in domain.ExclusionInput) (*domain.ServiceExclusion, error) {
	orgs, err := s.adminScope(ctx, userID)
	if err != nil {
		return nil, err
	}
	exclusion := &domain.ServiceExclusion{}
	if err := s.applyExclusion(ctx, orgs, exclusion, in); err != nil {
		return nil, err
	}
	if err := s.save(ctx, userID, "exclusion", "created", exclusion); err != nil {
		return nil, err
	}
	return exclusion, nil
}

func (s *CatalogServiceImpl) UpdateExclusion(ctx context.Context, userID, id uint, in domain.ExclusionInput) (*domain.ServiceExclusion, error) {
	orgs, err := s.adminScope(ctx, userID)
	if err != nil {
		return nil, err
	}
	exclusion, err := firstOf[domain.ServiceExclusion](s.d.Catalog.Exclusions(ctx, domain.CatalogFilter{ID: id, OrganizationIDs: orgs}, nil))
	if err != nil {
		return nil, err
	}
	if err := s.applyExclusion(ctx, orgs, exclusion, in); err != nil {
		return nil, err
	}
	if err := s.save(ctx, userID, "exclusion", "updated", exclusion); err != nil {
		return nil, err
	}
	return exclusion, nil
}

// DeleteExclusion removes the row, which reopens the date for booking.
func (s *CatalogServiceImpl) DeleteExclusion(ctx context.Context, userID, id uint) error {
	exclusion, err := s.Exclusion(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.d.Catalog.DeleteExclusion(ctx, exclusion.ID); err != nil {
		return err
	}
	s.audit(ctx, userID, "exclusion", "deleted", exclusion.ID)
	return nil
}

func (s *CatalogServiceImpl) Exclusion(ctx context.Context, userID, id uint) (*domain.ServiceExclusion, error) {
	orgs, err := s.adminScope(ctx, userID)
	if err != nil {
		return nil, err
	}
	return firstOf[domain.ServiceExclusion](s.d.Catalog.Exclusions(ctx, domain.CatalogFilter{ID: id, OrganizationIDs: orgs}, nil))
}

func (s *CatalogServiceImpl) Exclusions(ctx context.Context, userID uint, q domain.CatalogQuery) (*domain.ListResult[domain.ServiceExclusion], error) {
	orgs, err := s.adminScope(ctx, userID)
	if err != nil {
		return nil, err
	}
	f := domain.CatalogFilter{OrganizationIDs: orgs, ServiceID: q.ServiceID}
	if q.Date != "" {
		day, err := domain.ParseDate(q.Date)
		if err != nil {
			return nil, dateFormatError("exclusion_date")
		}
		f.Date = &day
	}
	page := q.Page.Normalize()
	rows, total, err := s.d.Catalog.Exclusions(ctx, f, &page)
	return listResult(rows, total, err, page)
}

// BrowseServices lists the bookable services of the caller's current flat.
func (s *CatalogServiceImpl) BrowseServices(ctx context.Context, userID uint, q domain.CatalogQuery) (*domain.ListResult[domain.Service], error) {
	orgs, err := s.residentScope(ctx, userID)
	if err != nil {
		return nil, err
	}
	page := q.Page.Normalize()
	rows, total, err := s.d.Catalog.Services(ctx, domain.CatalogFilter{
		OrganizationIDs: orgs,
		CategoryID:      q.CategoryID,
		SubCategoryID:   q.SubCategoryID,
		Name:            q.Name,
	}, &page)
	return listResult(rows, total, err, page)
}

func (s *CatalogServiceImpl) BookingCategories(ctx context.Context, userID uint) ([]domain.ServiceCategory, error) {
	orgs, err := s.residentScope(ctx, userID)
	if err != nil {
		return nil, err
	}
	rows, _, err := s.d.Catalog.Categories(ctx, domain.CatalogFilter{OrganizationIDs: orgs}, nil)
	return rows, err
}

func (s *CatalogServiceImpl) BookingSubCategories(ctx context.Context, userID, categoryID uint) ([]domain.ServiceSubCategory, error) {
	orgs, err := s.residentScope(ctx, userID)
	if err != nil {
		return nil, err
	}
	rows, _, err := s.d.Catalog.SubCategories(ctx, domain.CatalogFilter{OrganizationIDs: orgs, CategoryID: categoryID}, nil)
	return rows, err
}

func (s *CatalogServiceImpl) adminScope(ctx context.Context, userID uint) ([]uint, error) {
	if _, err := requireRole(ctx, s.d.Perms, userID, domain.RoleOrgAdministrator); err != nil {
		return nil, err
	}
	return ownedOrganizationIDs(ctx, s.d.Sites, userID)
}

func (s *CatalogServiceImpl) residentScope(ctx context.Context, userID uint) ([]uint, error) {
	if _, err := requireRole(ctx, s.d.Perms, userID, domain.RoleResident); err != nil {
		return nil, err
	}
	flat, err := s.d.Resolver.CurrentFlat(ctx, userID)
	if err != nil {
		return nil, err
	}
	return []uint{flat.OrganizationID()}, nil
}

func (s *CatalogServiceImpl) applySubCategory(ctx context.Context, orgs []uint, sub *domain.ServiceSubCategory, in domain.SubCategoryInput) error {
	name, err := requireName(in.Name)
	if err != nil {
		return err
	}
	category, err := reference[domain.ServiceCategory](s.d.Catalog.Categories(ctx, domain.CatalogFilter{ID: in.CategoryID, OrganizationIDs: orgs}, nil))
	if err != nil {
		return err
	}
	sub.Name = name
	sub.CategoryID = category.ID
	sub.Category = nil
	return nil
}

// applyService moves the service into the organization that owns the chosen
// sub category.
func (s *CatalogServiceImpl) applyService(ctx context.Context, orgs []uint, svc *domain.Service, in domain.ServiceInput) error {
	name, err := requireName(in.Name)
	if err != nil {
		return err
	}
	if in.Price < 0 {
		return domain.FieldErrors(map[string][]string{"price": {"Ensure this value is greater than or equal to 0."}})
	}
	sub, err := reference[domain.ServiceSubCategory](s.d.Catalog.SubCategories(ctx, domain.CatalogFilter{ID: in.SubCategoryID, OrganizationIDs: orgs}, nil))
	if err != nil {
		return err
	}
	if sub.Category == nil {
		return domain.Validation(domain.CodeSomethingWentWrong)
	}

	svc.Name = name
	svc.Image = in.Image
	svc.Price = in.Price
	svc.SubCategoryID = &sub.ID
	svc.OrganizationID = sub.Category.OrganizationID
	svc.SubCategory = sub
	return nil
}

func (s *CatalogServiceImpl) applySlot(ctx context.Context, orgs []uint, slot *domain.ServiceSlot, in domain.SlotInput) error {
	start, ok := parseClock(in.StartTime)
	if !ok {
		return timeFormatError("start_time")
	}
	end, ok := parseClock(in.EndTime)
	if !ok {
		return timeFormatError("end_time")
	}
	if end <= start {
		return domain.Validation(domain.CodeInvalidEndTime)
	}
	if in.DayOfWeek < 1 || in.DayOfWeek > 7 {
		return domain.Validation(domain.CodeInvalidDayOfWeek)
	}
	svc, err := reference[domain.Service](s.d.Catalog.Services(ctx, domain.CatalogFilter{ID: in.ServiceID, OrganizationIDs: orgs}, nil))
	if err != nil {
		return err
	}

	slot.ServiceID = svc.ID
	slot.StartTime = start
	slot.EndTime = end
	slot.DayOfWeek = in.DayOfWeek
	return nil
}

func (s *CatalogServiceImpl) applyExclusion(ctx context.Context, orgs []uint, exclusion *domain.ServiceExclusion, in domain.ExclusionInput) error {
	day, err := domain.ParseDate(in.Date)
	if err != nil {
		return dateFormatError("exclusion_date")
	}
	if domain.DateBefore(day, domain.CalendarDate(s.d.Clock.Now(), s.d.Location)) {
		return domain.Validation(domain.CodeInvalidExclusionDate)
	}
	svc, err := reference[domain.Service](s.d.Catalog.Services(ctx, domain.CatalogFilter{ID: in.ServiceID, OrganizationIDs: orgs}, nil))
	if err != nil {
		return err
	}

	taken, _, err := s.d.Catalog.Exclusions(ctx, domain.CatalogFilter{ServiceID: svc.ID, Date: &day}, nil)
	if err != nil {
		return err
	}
	for _, other := range taken {
		if other.ID != exclusion.ID {
			return domain.Validation(domain.CodeDuplicateRecord)
		}
	}

	exclusion.ServiceID = svc.ID
	exclusion.Date = day
	return nil
}

func (s *CatalogServiceImpl) save(ctx context.Context, userID uint, kind, action string, record any) error {
	if err := s.d.Catalog.Save(ctx, record); err != nil {
		return err
	}
	s.audit(ctx, userID, kind, action, recordID(record))
	return nil
}

func (s *CatalogServiceImpl) audit(ctx context.Context, userID uint, kind, action string, id uint) {
	s.d.Audit.LogEvent(ctx, domain.NewAuditEvent(domain.CatalogChangedEvent, userID).
		WithMetadata("kind", kind).
		WithMetadata("action", action).
		WithMetadata("id", id))
}

func recordID(record any) uint {
	switch r := record.(type) {
	case *domain.ServiceCategory:
		return r.ID
	case *domain.ServiceSubCategory:
		return r.ID
	case *domain.Service:
		return r.ID
	case *domain.ServiceSlot:
		return r.ID
	case *domain.ServiceExclusion:
		return r.ID
	}
	return 0
}

// pickOrganization resolves the organization a new category belongs to.
func pickOrganization(owned []uint, requested uint) (uint, error) {
	if len(owned) == 0 {
		return 0, domain.Validation(domain.CodeSomethingWentWrong)
	}
	if requested == 0 {
		return owned[0], nil
	}
	for _, id := range owned {
		if id == requested {
			return id, nil
		}
	}
	return 0, domain.Validation(domain.CodeSomethingWentWrong)
}

func requireName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	switch {
	case name == "":
		return "", domain.FieldErrors(map[string][]string{"name": {"This field may not be blank."}})
	case len(name) > 100:
		return "", domain.FieldErrors(map[string][]string{"name": {"Ensure this field has no more than 100 characters."}})
	}
	return name, nil
}

// parseClock reads HH:MM or HH:MM:SS.
func parseClock(raw string) (datatypes.Time, bool) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, strings.TrimSpace(raw)); err == nil {
			return datatypes.NewTime(t.Hour(), t.Minute(), t.Second(), 0), true
		}
	}
	return 0, false
}

func timeFormatError(field string) error {
	return domain.FieldErrors(map[string][]string{
		field: {"Time has wrong format. Use one of these formats instead: hh:mm[:ss]."},
	})
}

func dateFormatError(field string) error {
	return domain.FieldErrors(map[string][]string{
		field: {"Date has wrong format. Use one of these formats instead: YYYY-MM-DD."},
	})
}

// firstOf returns the single row of a by-id listing.
func firstOf[T any](rows []T, _ int64, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.NotFound()
	}
	return &rows[0], nil
}

// reference loads a row named in a request body. A row outside the caller's
// scope is a bad request rather than a missing resource.
func reference[T any](rows []T, total int64, err error) (*T, error) {
	row, err := firstOf[T](rows, total, err)
	if domain.KindOf(err) == domain.KindNotFound {
		return nil, domain.Validation(domain.CodeSomethingWentWrong)
	}
	return row, err
}

func listResult[T any](rows []T, total int64, err error, page domain.Page) (*domain.ListResult[T], error) {
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []T{}
	}
	return &domain.ListResult[T]{Count: total, Page: page.Number, Size: page.Size, Results: rows}, nil
}
