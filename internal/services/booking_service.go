package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/hardik-python-lr/our-gate-backend/domain"
	"github.com/hardik-python-lr/our-gate-backend/internal/clock"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// orderNoteKey names the request id inside a gateway order's notes.
const orderNoteKey = "service_request_obj_id"

// BookingDeps collects what the booking workflow needs.
type BookingDeps struct {
	Perms    domain.PermissionEvaluator
	Resolver domain.ContextResolver
	Users    domain.UserRepository
	Sites    domain.SiteRepository
	Catalog  domain.CatalogRepository
	Requests domain.ServiceRequestRepository
	Tx       domain.Transactor
	Gateway  domain.PaymentGateway
	Locker   domain.Locker
	LockTTL  time.Duration
	Notifier domain.Notifier
	Audit    domain.AuditLogger
	Clock    clock.Clock
	Location *time.Location
	Currency string
	Log      *zap.Logger
}

// BookingServiceImpl implements domain.BookingService
type BookingServiceImpl struct {
	d   BookingDeps
	log *zap.Logger
}

func NewBookingService(d BookingDeps) *BookingServiceImpl {
	if d.Currency == "" {
		d.Currency = "INR"
	}
	if d.Location == nil {
		d.Location = time.UTC
	}
	return &BookingServiceImpl{d: d, log: d.Log.Named("booking")}
}

// SlotsForDate lists the bookable slots of a service on a date.
func (s *BookingServiceImpl) SlotsForDate(ctx context.Context, userID, serviceID uint, date string) ([]domain.ServiceSlot, error) {
	flat, err := s.residentFlat(ctx, userID)
	if err != nil {
		return nil, err
	}
	day, err := s.bookableDate(date)
	if err != nil {
		return nil, err
	}
	svc, err := s.serviceFor(ctx, flat, serviceID, day)
	if err != nil {
		return nil, err
	}

	slots, err := s.d.Catalog.SlotsForDay(ctx, svc.ID, domain.ISOWeekday(day))
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, domain.Validation(domain.CodeNoSlots)
	}
	return slots, nil
}

// PayableAmount quotes a booking without creating it.
func (s *BookingServiceImpl) PayableAmount(ctx context.Context, userID uint, in domain.BookingInput) (*domain.PayableAmount, error) {
	flat, err := s.residentFlat(ctx, userID)
	if err != nil {
		return nil, err
	}
	svc, _, slots, err := s.validate(ctx, flat, in)
	if err != nil {
		return nil, err
	}
	return &domain.PayableAmount{
		Amount:         svc.Price * int64(len(slots)),
		Service:        domain.ServiceSummary{ID: svc.ID, Name: svc.Name, Price: svc.Price, Image: svc.Image},
		RequestedSlots: slots,
	}, nil
}

// Create books a service. Paid bookings stay inactive until the payment
// callback reconciles them.
func (s *BookingServiceImpl) Create(ctx context.Context, userID uint, in domain.BookingInput) (*domain.BookingResult, error) {
	flat, err := s.residentFlat(ctx, userID)
	if err != nil {
		return nil, err
	}
	svc, day, slots, err := s.validate(ctx, flat, in)
	if err != nil {
		return nil, err
	}

	amount := svc.Price * int64(len(slots))
	req := &domain.ServiceRequest{
		FlatID:          flat.ID,
		ServiceID:       svc.ID,
		RequestedUserID: userID,
		RequestedDate:   day,
		Amount:          amount,
		Status:          domain.StatusPending,
		IsActive:        amount == 0,
		Slots:           make([]domain.ServiceRequestSlot, 0, len(slots)),
	}
	for _, slot := range slots {
		req.Slots = append(req.Slots, domain.ServiceRequestSlot{
			ServiceSlotID: slot.ID,
			StartTime:     slot.StartTime,
			EndTime:       slot.EndTime,
		})
	}

	var order *domain.PaymentOrder
	err = s.d.Tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.d.Requests.Create(ctx, req); err != nil {
			return err
		}
		if amount == 0 {
			return nil
		}

		order, err = s.d.Gateway.CreateOrder(ctx, amount*100, s.d.Currency, map[string]string{
			orderNoteKey: strconv.FormatUint(uint64(req.ID), 10),
		})
		if err != nil {
			return domain.Validation(domain.CodeSomethingWentWrong).WithCause(err)
		}
		payment := &domain.Payment{OrderID: order.ID, Amount: amount, Status: domain.PaymentPending}
		if err := s.d.Requests.CreatePayment(ctx, payment); err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}
		req.PaymentID = &payment.ID
		return s.d.Requests.Save(ctx, req)
	})
	if err != nil {
		s.log.Warn("booking failed", zap.Uint("user_id", userID), zap.Uint("service_id", svc.ID), zap.Error(err))
		return nil, err
	}

	stored, err := s.d.Requests.Find(ctx, domain.RequestFilter{ID: req.ID})
	if err != nil {
		return nil, err
	}
	result := &domain.BookingResult{ServiceRequest: domain.NewResidentView(stored)}
	if order != nil {
		result.OrderID = order.ID
		result.KeyID = s.d.Gateway.KeyID()
		result.Currency = s.d.Currency
		s.notifyOwner(ctx, svc.OrganizationID, fmt.Sprintf("New Service request %s has been raised.", svc.Name))
	}

	s.d.Audit.LogEvent(ctx, domain.NewAuditEvent(domain.BookingCreatedEvent, userID).
		WithMetadata("service_request_id", req.ID).
		WithMetadata("amount", amount))
	return result, nil
}

// PaymentCallback reconciles a gateway checkout with its booking.
func (s *BookingServiceImpl) PaymentCallback(ctx context.Context, in domain.CallbackInput) (*domain.CallbackResult, error) {
	if in.OrderID == "" {
		return nil, domain.FieldErrors(map[string][]string{"order_id": {"This field is required."}})
	}

	release, err := s.d.Locker.Acquire(ctx, "lock:payment:"+in.OrderID, s.d.LockTTL)
	if errors.Is(err, domain.ErrLockNotHeld) {
		return nil, domain.Validation(domain.CodeSomethingWentWrong).WithCause(err)
	}
	if err != nil {
		return nil, err
	}
	defer release()

	order, err := s.d.Gateway.FetchOrder(ctx, in.OrderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound().WithCause(err)
		}
		return nil, err
	}
	reqID, err := strconv.ParseUint(order.Notes[orderNoteKey], 10, 64)
	if err != nil {
		return nil, domain.NotFound().WithCause(fmt.Errorf("order %s carries no request id", in.OrderID))
	}

	if in.PaymentID == "" && in.Signature == "" {
		return s.abandon(ctx, uint(reqID), in.OrderID)
	}

	if settled, err := s.d.Requests.PaymentByOrderID(ctx, in.OrderID); err == nil &&
		settled.Status != domain.PaymentPending && settled.PaymentRef == in.PaymentID {
		req, err := s.d.Requests.Find(ctx, domain.RequestFilter{ID: uint(reqID)})
		if err != nil {
			return nil, err
		}
		return callbackResult(req), nil
	}

	inactive := false
	req, err := s.d.Requests.Find(ctx, domain.RequestFilter{ID: uint(reqID), Active: &inactive})
	if err != nil {
		return nil, err
	}
	if req.Payment == nil || req.Payment.OrderID != in.OrderID {
		return nil, domain.NotFound()
	}

	verifyErr := s.d.Gateway.VerifySignature(in.OrderID, in.PaymentID, in.Signature)
	payment := req.Payment
	payment.PaymentRef = in.PaymentID
	payment.Signature = in.Signature
	if verifyErr == nil {
		payment.Status = domain.PaymentSuccess
		req.IsActive = true
	} else {
		payment.Status = domain.PaymentFail
		s.log.Info("payment verification failed", zap.String("order_id", in.OrderID), zap.Error(verifyErr))
	}

	err = s.d.Tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.d.Requests.SavePayment(ctx, payment); err != nil {
			return fmt.Errorf("failed to save payment: %w", err)
		}
		return s.d.Requests.Save(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	event := domain.NewAuditEvent(domain.PaymentReconciledEvent, req.RequestedUserID).
		WithMetadata("order_id", in.OrderID).
		WithMetadata("service_request_id", req.ID)
	if verifyErr != nil {
		event.WithError(verifyErr)
	}
	s.d.Audit.LogEvent(ctx, event)
	return callbackResult(req), nil
}

func (s *BookingServiceImpl) abandon(ctx context.Context, reqID uint, orderID string) (*domain.CallbackResult, error) {
	inactive := false
	req, err := s.d.Requests.Find(ctx, domain.RequestFilter{ID: reqID, Active: &inactive})
	if err != nil {
		return nil, err
	}
	if err := s.d.Tx.Transaction(ctx, func(ctx context.Context) error {
		return s.d.Requests.Delete(ctx, req)
	}); err != nil {
		return nil, err
	}
	s.d.Audit.LogEvent(ctx, domain.NewAuditEvent(domain.PaymentAbandonedEvent, req.RequestedUserID).
		WithMetadata("order_id", orderID).
		WithMetadata("service_request_id", req.ID))
	return &domain.CallbackResult{Abandoned: true}, nil
}

func callbackResult(req *domain.ServiceRequest) *domain.CallbackResult {
	view := domain.NewResidentView(req)
	return &domain.CallbackResult{Payment: view.Payment, ServiceRequest: &view}
}

// History lists the resident's bookings for the current flat.
func (s *BookingServiceImpl) History(ctx context.Context, userID uint, q domain.RequestQuery) (*domain.ListResult[domain.ResidentView], error) {
	flat, err := s.residentFlat(ctx, userID)
	if err != nil {
		return nil, err
	}
	f, err := queryFilter(q)
	if err != nil {
		return nil, err
	}
	f.FlatID = flat.ID
	f.RequestedUserID = userID
	return listAs(ctx, s.d.Requests, f, q.Page, domain.NewResidentView)
}

// Rate records the resident's rating of a completed booking.
func (s *BookingServiceImpl) Rate(ctx context.Context, userID, requestID uint, rating int) (*domain.ResidentView, error) {
	flat, err := s.residentFlat(ctx, userID)
	if err != nil {
		return nil, err
	}
	req, err := s.d.Requests.Find(ctx, domain.RequestFilter{
		ID:              requestID,
		FlatID:          flat.ID,
		RequestedUserID: userID,
		Statuses:        []domain.RequestStatus{domain.StatusCompleted},
		Active:          active(),
	})
	if err != nil {
		return nil, err
	}
	if !validRating(rating) {
		return nil, domain.Validation(domain.CodeInvalidRating)
	}

	req.Rating = &rating
	if err := s.d.Requests.Save(ctx, req); err != nil {
		return nil, err
	}
	view := domain.NewResidentView(req)
	return &view, nil
}

// CompleteByResident marks an assigned booking done from the resident side.
func (s *BookingServiceImpl) CompleteByResident(ctx context.Context, userID, requestID uint, rating *int) (*domain.ResidentView, error) {
	flat, err := s.residentFlat(ctx, userID)
	if err != nil {
		return nil, err
	}
	today := s.today()
	req, err := s.d.Requests.Find(ctx, domain.RequestFilter{
		ID:              requestID,
		FlatID:          flat.ID,
		RequestedUserID: userID,
		Statuses:        []domain.RequestStatus{domain.StatusAssigned},
		Active:          active(),
		NotBefore:       &today,
	})
	if err != nil {
		return nil, err
	}
	if rating != nil && !validRating(*rating) {
		return nil, domain.Validation(domain.CodeInvalidRating)
	}

	req.Status = domain.StatusCompleted
	if rating != nil {
		req.Rating = rating
	}
	if err := s.d.Requests.Save(ctx, req); err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Status has been marked completed for %s service request.", serviceName(req))
	if req.Service != nil {
		s.notifyOwner(ctx, req.Service.OrganizationID, msg)
	}
	if req.AssignedUserID != nil {
		s.notify(ctx, *req.AssignedUserID, msg)
	}
	s.auditStatus(ctx, userID, req)

	view := domain.NewResidentView(req)
	return &view, nil
}

// AdminList lists the bookings of the organizations the caller owns.
func (s *BookingServiceImpl) AdminList(ctx context.Context, userID uint, q domain.RequestQuery) (*domain.ListResult[domain.AdminView], error) {
	orgs, err := s.adminScope(ctx, userID)
	if err != nil {
		return nil, err
	}
	f, err := queryFilter(q)
	if err != nil {
		return nil, err
	}
	f.OrganizationIDs = orgs
	f.EstablishmentID = q.EstablishmentID
	f.RequestedUserID = q.RequestedUserID
	f.AssignedUserID = q.AssignedUserID
	return listAs(ctx, s.d.Requests, f, q.Page, domain.NewAdminView)
}

// UpdateStatus approves or rejects a pending booking.
func (s *BookingServiceImpl) UpdateStatus(ctx context.Context, userID, requestID uint, status domain.RequestStatus) (*domain.AdminView, error) {
	orgs, err := s.adminScope(ctx, userID)
	if err != nil {
		return nil, err
	}
	if status != domain.StatusApproved && status != domain.StatusRejected {
		return nil, domain.Validation(domain.CodeInvalidStatus)
	}
	req, err := s.adminFind(ctx, orgs, requestID, domain.StatusPending)
	if err != nil {
		return nil, err
	}

	req.Status = status
	if err := s.d.Requests.Save(ctx, req); err != nil {
		return nil, err
	}
	s.notify(ctx, req.RequestedUserID, fmt.Sprintf("Status has been updated for %s service.", serviceName(req)))
	s.auditStatus(ctx, userID, req)

	view := domain.NewAdminView(req)
	return &view, nil
}

// Assign hands an approved booking to an employee of the same organization.
func (s *BookingServiceImpl) Assign(ctx context.Context, userID, requestID, employeeID uint) (*domain.AdminView, error) {
	orgs, err := s.adminScope(ctx, userID)
	if err != nil {
		return nil, err
	}
	req, err := s.adminFind(ctx, orgs, requestID, domain.StatusApproved)
	if err != nil {
		return nil, err
	}

	employee, err := s.d.Users.FindActiveWithRole(ctx, employeeID, domain.RoleEmployee)
	if err != nil {
		return nil, domain.Validation(domain.CodeSomethingWentWrong).WithCause(err)
	}
	if employee.OrganizationID == nil || req.Service == nil || *employee.OrganizationID != req.Service.OrganizationID {
		return nil, domain.Validation(domain.CodeSomethingWentWrong)
	}

	req.AssignedUserID = &employee.ID
	req.AssignedUser = employee
	req.Status = domain.StatusAssigned
	if err := s.d.Requests.Save(ctx, req); err != nil {
		return nil, err
	}

	name := serviceName(req)
	s.notify(ctx, employee.ID, fmt.Sprintf("New Service request has been assigned for %s service.", name))
	s.notify(ctx, req.RequestedUserID, fmt.Sprintf("An employee has been assigned for %s service.", name))
	s.auditStatus(ctx, userID, req)

	view := domain.NewAdminView(req)
	return &view, nil
}

// AssignableEmployees lists active employees of the caller's organizations.
func (s *BookingServiceImpl) AssignableEmployees(ctx context.Context, userID uint) ([]domain.UserSummary, error) {
	orgs, err := s.adminScope(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := []domain.UserSummary{}
	if len(orgs) == 0 {
		return out, nil
	}
	users, err := s.d.Users.ListActiveWithRole(ctx, domain.RoleEmployee, orgs)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		out = append(out, domain.UserSummary{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Phone: u.Phone})
	}
	return out, nil
}

// CompleteByAdmin closes an assigned booking.
func (s *BookingServiceImpl) CompleteByAdmin(ctx context.Context, userID, requestID uint) (*domain.AdminView, error) {
	orgs, err := s.adminScope(ctx, userID)
	if err != nil {
		return nil, err
	}
	req, err := s.adminFind(ctx, orgs, requestID, domain.StatusAssigned)
	if err != nil {
		return nil, err
	}

	req.Status = domain.StatusCompleted
	if err := s.d.Requests.Save(ctx, req); err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Status has been marked completed for %s service request.", serviceName(req))
	s.notify(ctx, req.RequestedUserID, msg)
	if req.AssignedUserID != nil {
		s.notify(ctx, *req.AssignedUserID, msg)
	}
	s.auditStatus(ctx, userID, req)

	view := domain.NewAdminView(req)
	return &view, nil
}

// EmployeeList lists the work assigned to the calling employee.
func (s *BookingServiceImpl) EmployeeList(ctx context.Context, userID uint, q domain.RequestQuery) (*domain.ListResult[domain.EmployeeView], error) {
	if _, err := requireRole(ctx, s.d.Perms, userID, domain.RoleEmployee); err != nil {
		return nil, err
	}
	f, err := queryFilter(q)
	if err != nil {
		return nil, err
	}
	f.AssignedUserID = userID
	f.ExcludeStatuses = []domain.RequestStatus{domain.StatusPending, domain.StatusRejected, domain.StatusApproved}
	return listAs(ctx, s.d.Requests, f, q.Page, domain.NewEmployeeView)
}

// Detail renders one active booking for the first audience the caller
// qualifies as.
func (s *BookingServiceImpl) Detail(ctx context.Context, userID, requestID uint) (any, error) {
	perm, err := requireRole(ctx, s.d.Perms, userID, domain.RoleOrgAdministrator, domain.RoleEmployee, domain.RoleResident)
	if err != nil {
		return nil, err
	}

	if perm.Has(domain.RoleOrgAdministrator) {
		orgs, err := ownedOrganizationIDs(ctx, s.d.Sites, userID)
		if err != nil {
			return nil, err
		}
		if req, err := s.d.Requests.Find(ctx, domain.RequestFilter{ID: requestID, OrganizationIDs: orgs, Active: active()}); err == nil {
			return domain.NewAdminView(req), nil
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}
	if perm.Has(domain.RoleEmployee) {
		if req, err := s.d.Requests.Find(ctx, domain.RequestFilter{ID: requestID, AssignedUserID: userID, Active: active()}); err == nil {
			return domain.NewEmployeeView(req), nil
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}
	if perm.Has(domain.RoleResident) {
		if req, err := s.d.Requests.Find(ctx, domain.RequestFilter{ID: requestID, RequestedUserID: userID, Active: active()}); err == nil {
			return domain.NewResidentView(req), nil
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}
	return nil, domain.NotFound()
}

func (s *BookingServiceImpl) residentFlat(ctx context.Context, userID uint) (*domain.Flat, error) {
	if _, err := requireRole(ctx, s.d.Perms, userID, domain.RoleResident); err != nil {
		return nil, err
	}
	return s.d.Resolver.CurrentFlat(ctx, userID)
}

func (s *BookingServiceImpl) adminScope(ctx context.Context, userID uint) ([]uint, error) {
	if _, err := requireRole(ctx, s.d.Perms, userID, domain.RoleOrgAdministrator); err != nil {
		return nil, err
	}
	return ownedOrganizationIDs(ctx, s.d.Sites, userID)
}

// ownedOrganizationIDs never returns nil so that an owner of nothing matches nothing.
func ownedOrganizationIDs(ctx context.Context, sites domain.SiteRepository, userID uint) ([]uint, error) {
	ids, err := sites.OwnedOrganizationIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []uint{}
	}
	return ids, nil
}

func (s *BookingServiceImpl) adminFind(ctx context.Context, orgs []uint, requestID uint, from domain.RequestStatus) (*domain.ServiceRequest, error) {
	today := s.today()
	return s.d.Requests.Find(ctx, domain.RequestFilter{
		ID:              requestID,
		OrganizationIDs: orgs,
		Statuses:        []domain.RequestStatus{from},
		Active:          active(),
		NotBefore:       &today,
	})
}

// validate runs the booking checks shared by quoting and creating.
func (s *BookingServiceImpl) validate(ctx context.Context, flat *domain.Flat, in domain.BookingInput) (*domain.Service, datatypes.Date, []domain.ServiceSlot, error) {
	if len(in.SlotIDs) == 0 {
		return nil, datatypes.Date{}, nil, domain.FieldErrors(map[string][]string{"requested_slots": {"This list may not be empty."}})
	}
	day, err := s.bookableDate(in.RequestedDate)
	if err != nil {
		return nil, day, nil, err
	}
	svc, err := s.serviceFor(ctx, flat, in.ServiceID, day)
	if err != nil {
		return nil, day, nil, err
	}

	available, err := s.d.Catalog.SlotsForDay(ctx, svc.ID, domain.ISOWeekday(day))
	if err != nil {
		return nil, day, nil, err
	}
	byID := make(map[uint]domain.ServiceSlot, len(available))
	for _, slot := range available {
		byID[slot.ID] = slot
	}

	picked := make([]domain.ServiceSlot, 0, len(in.SlotIDs))
	seen := make(map[uint]bool, len(in.SlotIDs))
	for _, id := range in.SlotIDs {
		slot, ok := byID[id]
		if !ok || seen[id] {
			return nil, day, nil, domain.Validation(domain.CodeInvalidRequestedTime)
		}
		seen[id] = true
		picked = append(picked, slot)
	}
	return svc, day, picked, nil
}

func (s *BookingServiceImpl) bookableDate(raw string) (datatypes.Date, error) {
	day, err := domain.ParseDate(raw)
	if err != nil {
		return day, domain.FieldErrors(map[string][]string{
			"requested_date": {"Date has wrong format. Use one of these formats instead: YYYY-MM-DD."},
		})
	}
	if domain.DateBefore(day, s.today()) {
		return day, domain.Validation(domain.CodePastDate)
	}
	return day, nil
}

// serviceFor loads an active service of the flat's organization that works on day.
func (s *BookingServiceImpl) serviceFor(ctx context.Context, flat *domain.Flat, serviceID uint, day datatypes.Date) (*domain.Service, error) {
	svc, err := s.d.Catalog.ActiveService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Validation(domain.CodeSomethingWentWrong).WithCause(err)
		}
		return nil, err
	}
	if svc.OrganizationID != flat.OrganizationID() {
		return nil, domain.Validation(domain.CodeSomethingWentWrong)
	}

	excluded, err := s.d.Catalog.IsExcluded(ctx, svc.ID, day)
	if err != nil {
		return nil, err
	}
	if excluded {
		return nil, domain.Validation(domain.CodeInvalidRequestedDate)
	}
	return svc, nil
}

func (s *BookingServiceImpl) today() datatypes.Date {
	return domain.CalendarDate(s.d.Clock.Now(), s.d.Location)
}

func (s *BookingServiceImpl) notify(ctx context.Context, userID uint, body string) {
	s.d.Notifier.Notify(ctx, userID, domain.CodeServiceRequest.Message(), body)
}

func (s *BookingServiceImpl) notifyOwner(ctx context.Context, organizationID uint, body string) {
	org, err := s.d.Sites.Organization(ctx, organizationID)
	if err != nil {
		s.log.Warn("organization owner lookup failed", zap.Uint("organization_id", organizationID), zap.Error(err))
		return
	}
	s.notify(ctx, org.OwnerUserID, body)
}

func (s *BookingServiceImpl) auditStatus(ctx context.Context, userID uint, req *domain.ServiceRequest) {
	s.d.Audit.LogEvent(ctx, domain.NewAuditEvent(domain.BookingStatusEvent, userID).
		WithMetadata("service_request_id", req.ID).
		WithMetadata("status", string(req.Status)))
}

// queryFilter turns client filters into a repository filter over active requests.
func queryFilter(q domain.RequestQuery) (domain.RequestFilter, error) {
	f := domain.RequestFilter{Active: active(), Rating: q.Rating, Search: q.Search}
	if q.Status != "" {
		status := domain.RequestStatus(q.Status)
		if !status.Valid() {
			return f, domain.Validation(domain.CodeInvalidStatus)
		}
		f.Statuses = []domain.RequestStatus{status}
		f.OldestFirst = status == domain.StatusPending
	}
	if q.Date != "" {
		day, err := domain.ParseDate(q.Date)
		if err != nil {
			return f, domain.FieldErrors(map[string][]string{
				"requested_date": {"Date has wrong format. Use one of these formats instead: YYYY-MM-DD."},
			})
		}
		f.Date = &day
	}
	return f, nil
}

func listAs[T any](ctx context.Context, repo domain.ServiceRequestRepository, f domain.RequestFilter, page domain.Page, view func(*domain.ServiceRequest) T) (*domain.ListResult[T], error) {
	page = page.Normalize()
	reqs, total, err := repo.List(ctx, f, page)
	if err != nil {
		return nil, err
	}
	out := &domain.ListResult[T]{Count: total, Page: page.Number, Size: page.Size, Results: make([]T, 0, len(reqs))}
	for i := range reqs {
		out.Results = append(out.Results, view(&reqs[i]))
	}
	return out, nil
}

func serviceName(req *domain.ServiceRequest) string {
	if req.Service == nil {
		return ""
	}
	return req.Service.Name
}

func validRating(r int) bool { return r >= 1 && r <= 5 }

func active() *bool {
	v := true
	return &v
}
