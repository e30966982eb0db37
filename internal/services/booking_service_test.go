package services

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/hardik-python-lr/our-gate-backend/domain"
	"github.com/hardik-python-lr/our-gate-backend/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingFixture struct {
	*world
	svc      *BookingServiceImpl
	owner    *domain.User
	org      *domain.Organization
	flat     *domain.Flat
	resident *domain.User
	employee *domain.User
	plumbing *domain.Service
	notice   *domain.Service
	mon9     *domain.ServiceSlot
	mon10    *domain.ServiceSlot
	mon11    *domain.ServiceSlot
	tue9     *domain.ServiceSlot
}

// nextMonday is a bookable Monday one week after the fixture clock.
const nextMonday = "2026-10-26"

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	w := newWorld(t)
	s := w.seed

	owner := s.User("Owner", domain.RoleOrgAdministrator)
	org := s.Organization(owner)
	est := s.Establishment(org, nil, 12.9716, 77.5946, 100)
	flat := s.Flat(est, "A-101")
	resident := s.User("Resident", domain.RoleResident)
	s.Member(resident, flat, true)
	employee := s.User("Employee", domain.RoleEmployee)
	s.Update(employee, "organization_id", org.ID)

	plumbing := s.Service(org, "Plumbing", 500)
	notice := s.Service(org, "Notice board", 0)
	s.Slot(notice, 1, 9)

	return &bookingFixture{
		world:    w,
		svc:      w.bookingService(),
		owner:    owner,
		org:      org,
		flat:     flat,
		resident: resident,
		employee: employee,
		plumbing: plumbing,
		notice:   notice,
		mon11:    s.Slot(plumbing, 1, 11),
		mon9:     s.Slot(plumbing, 1, 9),
		mon10:    s.Slot(plumbing, 1, 10),
		tue9:     s.Slot(plumbing, 2, 9),
	}
}

func (f *bookingFixture) request(day string, status domain.RequestStatus) *domain.ServiceRequest {
	return f.seed.Request(f.flat, f.plumbing, f.resident, date(f.t, day), status)
}

func TestBookingService_SlotsForDate(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t)
	f.seed.Exclusion(f.plumbing, date(t, "2026-11-02"))

	slots, err := f.svc.SlotsForDate(ctx, f.resident.ID, f.plumbing.ID, nextMonday)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, []uint{f.mon9.ID, f.mon10.ID, f.mon11.ID}, []uint{slots[0].ID, slots[1].ID, slots[2].ID})

	today, err := f.svc.SlotsForDate(ctx, f.resident.ID, f.plumbing.ID, "2026-10-19")
	require.NoError(t, err)
	assert.Len(t, today, 3, "today is bookable")

	otherOrg := f.seed.Organization(f.seed.User("Rival", domain.RoleOrgAdministrator))
	foreign := f.seed.Service(otherOrg, "Foreign", 100)

	tests := []struct {
		name      string
		serviceID uint
		date      string
		expected  error
	}{
		{"past date", f.plumbing.ID, "2026-10-18", domain.Validation(domain.CodePastDate)},
		{"excluded date", f.plumbing.ID, "2026-11-02", domain.Validation(domain.CodeInvalidRequestedDate)},
		{"no slots on weekday", f.plumbing.ID, "2026-10-21", domain.Validation(domain.CodeNoSlots)},
		{"service of another organization", foreign.ID, nextMonday, domain.Validation(domain.CodeSomethingWentWrong)},
		{"unknown service", 9999, nextMonday, domain.Validation(domain.CodeSomethingWentWrong)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.SlotsForDate(ctx, f.resident.ID, tt.serviceID, tt.date)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestBookingService_ResidentGates(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t)
	homeless := f.seed.User("Homeless", domain.RoleResident)

	_, err := f.svc.Create(ctx, f.employee.ID, domain.BookingInput{})
	assert.ErrorIs(t, err, domain.Forbidden())

	_, err = f.svc.History(ctx, homeless.ID, domain.RequestQuery{})
	assert.ErrorIs(t, err, domain.ErrNoCurrentFlat)
	assert.Equal(t, domain.KindSoftGate, domain.KindOf(err))
}

func TestBookingService_PayableAmount(t *testing.T) {
	f := newBookingFixture(t)

	quote, err := f.svc.PayableAmount(context.Background(), f.resident.ID, domain.BookingInput{
		ServiceID:     f.plumbing.ID,
		RequestedDate: nextMonday,
		SlotIDs:       []uint{f.mon9.ID, f.mon10.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1000), quote.Amount)
	assert.Equal(t, "Plumbing", quote.Service.Name)
	assert.Len(t, quote.RequestedSlots, 2)
}

func TestBookingService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t)
	f.seed.Exclusion(f.plumbing, date(t, "2026-11-02"))

	in := func(day string, slots ...uint) domain.BookingInput {
		return domain.BookingInput{ServiceID: f.plumbing.ID, RequestedDate: day, SlotIDs: slots}
	}

	tests := []struct {
		name     string
		in       domain.BookingInput
		expected error
		field    string
	}{
		{"no slots", in(nextMonday), nil, "requested_slots"},
		{"malformed date", in("26-10-2026", f.mon9.ID), nil, "requested_date"},
		{"past date", in("2026-10-12", f.mon9.ID), domain.Validation(domain.CodePastDate), ""},
		{"inactive service", domain.BookingInput{ServiceID: 9999, RequestedDate: nextMonday, SlotIDs: []uint{f.mon9.ID}}, domain.Validation(domain.CodeSomethingWentWrong), ""},
		{"excluded date", in("2026-11-02", f.mon9.ID), domain.Validation(domain.CodeInvalidRequestedDate), ""},
		{"slot of another weekday", in(nextMonday, f.tue9.ID), domain.Validation(domain.CodeInvalidRequestedTime), ""},
		{"duplicate slot", in(nextMonday, f.mon9.ID, f.mon9.ID), domain.Validation(domain.CodeInvalidRequestedTime), ""},
		{"unknown slot", in(nextMonday, 9999), domain.Validation(domain.CodeInvalidRequestedTime), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, f.resident.ID, tt.in)
			require.Error(t, err)
			assert.Equal(t, domain.KindValidation, domain.KindOf(err))
			if tt.expected != nil {
				assert.ErrorIs(t, err, tt.expected)
			}
			if tt.field != "" {
				var de *domain.Error
				require.ErrorAs(t, err, &de)
				assert.Contains(t, de.Fields, tt.field)
			}
		})
	}

	var count int64
	f.db.Model(&domain.ServiceRequest{}).Count(&count)
	assert.Zero(t, count)
}

func TestBookingService_CreatePaid(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t)

	result, err := f.svc.Create(ctx, f.resident.ID, domain.BookingInput{
		ServiceID:     f.plumbing.ID,
		RequestedDate: nextMonday,
		SlotIDs:       []uint{f.mon10.ID, f.mon9.ID},
	})
	require.NoError(t, err)

	assert.Equal(t, "order_1", result.OrderID)
	assert.Equal(t, "rzp_test_mock", result.KeyID)
	assert.Equal(t, "INR", result.Currency)

	view := result.ServiceRequest
	assert.Equal(t, int64(1000), view.Amount)
	assert.Equal(t, domain.StatusPending, view.Status)
	assert.Equal(t, nextMonday, view.RequestedDate)
	require.Len(t, view.Slots, 2)
	assert.Equal(t, "10:00:00", view.Slots[0].StartTime)
	require.NotNil(t, view.Payment)
	assert.Equal(t, domain.PaymentPending, view.Payment.Status)

	order := f.gateway.Orders["order_1"]
	require.NotNil(t, order)
	assert.Equal(t, int64(100000), order.Amount)
	assert.Equal(t, strconv.FormatUint(uint64(view.ID), 10), order.Notes["service_request_obj_id"])

	stored, err := f.requests.Find(ctx, domain.RequestFilter{ID: view.ID})
	require.NoError(t, err)
	assert.False(t, stored.IsActive, "paid bookings wait for the payment callback")

	assert.Equal(t, []string{"New Service request Plumbing has been raised."}, f.notifier.For(f.owner.ID))
}

func TestBookingService_CreateFree(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t)
	slots, err := f.catalog.SlotsForDay(ctx, f.notice.ID, 1)
	require.NoError(t, err)

	result, err := f.svc.Create(ctx, f.resident.ID, domain.BookingInput{
		ServiceID:     f.notice.ID,
		RequestedDate: nextMonday,
		SlotIDs:       []uint{slots[0].ID},
	})
	require.NoError(t, err)
	assert.Empty(t, result.OrderID)
	assert.Nil(t, result.ServiceRequest.Payment)
	assert.Empty(t, f.gateway.Orders)
	assert.Zero(t, f.notifier.Count())

	stored, err := f.requests.Find(ctx, domain.RequestFilter{ID: result.ServiceRequest.ID})
	require.NoError(t, err)
	assert.True(t, stored.IsActive)
}

func TestBookingService_CreateGatewayFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t)
	f.gateway.CreateOrderFunc = func(ctx context.Context, amountMinor int64, currency string, notes map[string]string) (*domain.PaymentOrder, error) {
		return nil, domain.ErrGatewayFailed
	}

	_, err := f.svc.Create(ctx, f.resident.ID, domain.BookingInput{
		ServiceID:     f.plumbing.ID,
		RequestedDate: nextMonday,
		SlotIDs:       []uint{f.mon9.ID},
	})
	assert.ErrorIs(t, err, domain.Validation(domain.CodeSomethingWentWrong))
	assert.ErrorIs(t, err, domain.ErrGatewayFailed)

	var requests, slots int64
	f.db.Model(&domain.ServiceRequest{}).Count(&requests)
	f.db.Model(&domain.ServiceRequestSlot{}).Count(&slots)
	assert.Zero(t, requests)
	assert.Zero(t, slots)
	assert.Zero(t, f.notifier.Count())
}

func (f *bookingFixture) book(t *testing.T) *domain.BookingResult {
	t.Helper()
	result, err := f.svc.Create(context.Background(), f.resident.ID, domain.BookingInput{
		ServiceID:     f.plumbing.ID,
		RequestedDate: nextMonday,
		SlotIDs:       []uint{f.mon9.ID},
	})
	require.NoError(t, err)
	return result
}

func TestBookingService_PaymentCallbackSuccess(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t)
	booked := f.book(t)

	in := domain.CallbackInput{
		OrderID:   booked.OrderID,
		PaymentID: "pay_1",
		Signature: mocks.MockSignature(booked.OrderID, "pay_1"),
	}
	result, err := f.svc.PaymentCallback(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentSuccess, result.Payment.Status)

	stored, err := f.requests.Find(ctx, domain.RequestFilter{ID: booked.ServiceRequest.ID})
	require.NoError(t, err)
	assert.True(t, stored.IsActive)
	assert.Equal(t, "pay_1", stored.Payment.PaymentRef)

	replay, err := f.svc.PaymentCallback(ctx, in)
	require.NoError(t, err, "a replayed callback returns the settled result")
	assert.Equal(t, domain.PaymentSuccess, replay.Payment.Status)
	assert.Equal(t, result.ServiceRequest.ID, replay.ServiceRequest.ID)

	reconciled := 0
	for _, typ := range f.audit.Types() {
		if typ == domain.PaymentReconciledEvent {
			reconciled++
		}
	}
	assert.Equal(t, 1, reconciled)
}

func TestBookingService_PaymentCallbackBadSignature(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t)
	booked := f.book(t)

	result, err := f.svc.PaymentCallback(ctx, domain.CallbackInput{
		OrderID:   booked.OrderID,
		PaymentID: "pay_1",
		Signature: "forged",
	})
	require.NoError(t, err, "verification failure is recorded, not returned")
	assert.Equal(t, domain.PaymentFail, result.Payment.Status)

	stored, err := f.requests.Find(ctx, domain.RequestFilter{ID: booked.ServiceRequest.ID})
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
	assert.Equal(t, domain.PaymentFail, stored.Payment.Status)
}

func TestBookingService_PaymentCallbackAbandon(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t)
	booked := f.book(t)

	result, err := f.svc.PaymentCallback(ctx, domain.CallbackInput{OrderID: booked.OrderID})
	require.NoError(t, err)
	assert.True(t, result.Abandoned)

	var requests, payments int64
	f.db.Model(&domain.ServiceRequest{}).Count(&requests)
	f.db.Model(&domain.Payment{}).Count(&payments)
	assert.Zero(t, requests)
	assert.Zero(t, payments)

	_, err = f.svc.PaymentCallback(ctx, domain.CallbackInput{OrderID: booked.OrderID})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestBookingService_PaymentCallbackFailures(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t)
	booked := f.book(t)

	_, err := f.svc.PaymentCallback(ctx, domain.CallbackInput{OrderID: "order_missing", PaymentID: "p", Signature: "s"})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	_, err = f.svc.PaymentCallback(ctx, domain.CallbackInput{})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	f.gateway.FetchOrderFunc = func(ctx context.Context, orderID string) (*domain.PaymentOrder, error) {
		return nil, errors.New("gateway timeout")
	}
	_, err = f.svc.PaymentCallback(ctx, domain.CallbackInput{OrderID: booked.OrderID, PaymentID: "p", Signature: "s"})
	assert.Equal(t, domain.KindInternal, domain.KindOf(err))
}

func TestBookingService_PaymentCallbackLocked(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t)
	booked := f.book(t)
	require.NoError(t, f.mr.Set("lock:payment:"+booked.OrderID, "busy"))

	_, err := f.svc.PaymentCallback(ctx, domain.CallbackInput{OrderID: booked.OrderID})
	assert.ErrorIs(t, err, domain.ErrLockNotHeld)

	var requests int64
	f.db.Model(&domain.ServiceRequest{}).Count(&requests)
	assert.Equal(t, int64(1), requests)
}

func TestBookingService_History(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t)

	early := f.request("2026-10-20", domain.StatusPending)
	late := f.request("2026-10-27", domain.StatusPending)
	done := f.request("2026-10-10", domain.StatusCompleted)
	hidden := f.request("2026-10-22", domain.StatusPending)
	f.seed.Update(hidden, "is_active", false)

	all, err := f.svc.History(ctx, f.resident.ID, domain.RequestQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Count)
	assert.Equal(t, []uint{late.ID, early.ID, done.ID}, viewIDs(all.Results))

	pending, err := f.svc.History(ctx, f.resident.ID, domain.RequestQuery{Status: "Pending"})
	require.NoError(t, err)
	assert.Equal(t, []uint{early.ID, late.ID}, viewIDs(pending.Results), "pending lists oldest first")

	paged, err := f.svc.History(ctx, f.resident.ID, domain.RequestQuery{Page: domain.Page{Number: 2, Size: 2}})
	require.NoError(t, err)
	assert.Equal(t, []uint{done.ID}, viewIDs(paged.Results))
	assert.Equal(t, 2, paged.Page)

	_, err = f.svc.History(ctx, f.resident.ID, domain.RequestQuery{Status: "Paid"})
	assert.ErrorIs(t, err, domain.Validation(domain.CodeInvalidStatus))
}

func viewIDs(views []domain.ResidentView) []uint {
	ids := make([]uint, len(views))
	for i, v := range views {
		ids[i] = v.ID
	}
	return ids
}

func TestBookingService_Rate(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t)
	done := f.request("2026-10-10", domain.StatusCompleted)
	pending := f.request(nextMonday, domain.StatusPending)

	view, err := f.svc.Rate(ctx, f.resident.ID, done.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, *view.Rating)

	for _, rating := range []int{0, 6, -1} {
		_, err = f.svc.Rate(ctx, f.resident.ID, done.ID, rating)
		assert.ErrorIs(t, err, domain.Validation(domain.CodeInvalidRating), "rating %d", rating)
	}

	_, err = f.svc.Rate(ctx, f.resident.ID, pending.ID, 4)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	neighbour := f.seed.User("Neighbour", domain.RoleResident)
	f.seed.Member(neighbour, f.flat, true)
	_, err = f.svc.Rate(ctx, neighbour.ID, done.ID, 4)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err), "only the requester may rate")
}

func TestBookingService_AdminLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t)
	req := f.request(nextMonday, domain.StatusPending)

	_, err := f.svc.UpdateStatus(ctx, f.owner.ID, req.ID, domain.StatusCompleted)
	assert.ErrorIs(t, err, domain.Validation(domain.CodeInvalidStatus))

	_, err = f.svc.Assign(ctx, f.owner.ID, req.ID, f.employee.ID)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err), "only approved requests can be assigned")

	approved, err := f.svc.UpdateStatus(ctx, f.owner.ID, req.ID, domain.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, approved.Status)
	assert.Equal(t, []string{"Status has been updated for Plumbing service."}, f.notifier.For(f.resident.ID))

	_, err = f.svc.UpdateStatus(ctx, f.owner.ID, req.ID, domain.StatusRejected)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err), "approval is not reversible")

	rival := f.seed.Organization(f.seed.User("Rival", domain.RoleOrgAdministrator))
	outsider := f.seed.User("Outsider", domain.RoleEmployee)
	f.seed.Update(outsider, "organization_id", rival.ID)
	_, err = f.svc.Assign(ctx, f.owner.ID, req.ID, outsider.ID)
	assert.ErrorIs(t, err, domain.Validation(domain.CodeSomethingWentWrong))
	_, err = f.svc.Assign(ctx, f.owner.ID, req.ID, f.resident.ID)
	assert.ErrorIs(t, err, domain.Validation(domain.CodeSomethingWentWrong))

	employees, err := f.svc.AssignableEmployees(ctx, f.owner.ID)
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, f.employee.ID, employees[0].ID)

	assigned, err := f.svc.Assign(ctx, f.owner.ID, req.ID, f.employee.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAssigned, assigned.Status)
	require.NotNil(t, assigned.AssignedUser)
	assert.Equal(t, f.employee.ID, assigned.AssignedUser.ID)
	assert.Equal(t, []string{"New Service request has been assigned for Plumbing service."}, f.notifier.For(f.employee.ID))
	assert.Contains(t, f.notifier.For(f.resident.ID), "An employee has been assigned for Plumbing service.")

	work, err := f.svc.EmployeeList(ctx, f.employee.ID, domain.RequestQuery{})
	require.NoError(t, err)
	require.Len(t, work.Results, 1)
	assert.Equal(t, req.ID, work.Results[0].ID)

	done, err := f.svc.CompleteByAdmin(ctx, f.owner.ID, req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, done.Status)
	assert.Contains(t, f.notifier.For(f.employee.ID), "Status has been marked completed for Plumbing service request.")

	_, err = f.svc.CompleteByAdmin(ctx, f.owner.ID, req.ID)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestBookingService_CompleteByResident(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t)
	req := f.request(nextMonday, domain.StatusAssigned)
	f.seed.Update(req, "assigned_user_id", f.employee.ID)

	_, err := f.svc.CompleteByResident(ctx, f.resident.ID, req.ID, intPtr(0))
	assert.ErrorIs(t, err, domain.Validation(domain.CodeInvalidRating))

	view, err := f.svc.CompleteByResident(ctx, f.resident.ID, req.ID, intPtr(4))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, view.Status)
	assert.Equal(t, 4, *view.Rating)

	msg := "Status has been marked completed for Plumbing service request."
	assert.Equal(t, []string{msg}, f.notifier.For(f.owner.ID))
	assert.Equal(t, []string{msg}, f.notifier.For(f.employee.ID))

	stale := f.request("2026-10-12", domain.StatusAssigned)
	_, err = f.svc.CompleteByResident(ctx, f.resident.ID, stale.ID, nil)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err), "past bookings cannot be completed")
}

func TestBookingService_AdminScope(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t)
	req := f.request(nextMonday, domain.StatusPending)
	stranger := f.seed.User("Stranger", domain.RoleOrgAdministrator)

	list, err := f.svc.AdminList(ctx, stranger.ID, domain.RequestQuery{})
	require.NoError(t, err)
	assert.Zero(t, list.Count)

	employees, err := f.svc.AssignableEmployees(ctx, stranger.ID)
	require.NoError(t, err)
	assert.Empty(t, employees)

	_, err = f.svc.UpdateStatus(ctx, stranger.ID, req.ID, domain.StatusApproved)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	_, err = f.svc.AdminList(ctx, f.resident.ID, domain.RequestQuery{})
	assert.ErrorIs(t, err, domain.Forbidden())

	own, err := f.svc.AdminList(ctx, f.owner.ID, domain.RequestQuery{Search: "plumb"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), own.Count)
	require.NotNil(t, own.Results[0].RequestedUser)
	assert.Equal(t, f.resident.ID, own.Results[0].RequestedUser.ID)

	past := f.request("2026-10-12", domain.StatusPending)
	_, err = f.svc.UpdateStatus(ctx, f.owner.ID, past.ID, domain.StatusApproved)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err), "past bookings are frozen")
}

func TestBookingService_Detail(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t)
	req := f.request(nextMonday, domain.StatusAssigned)
	f.seed.Update(req, "assigned_user_id", f.employee.ID)
	stranger := f.seed.User("Stranger", domain.RoleResident)

	v, err := f.svc.Detail(ctx, f.owner.ID, req.ID)
	require.NoError(t, err)
	assert.IsType(t, domain.AdminView{}, v)

	v, err = f.svc.Detail(ctx, f.employee.ID, req.ID)
	require.NoError(t, err)
	assert.IsType(t, domain.EmployeeView{}, v)

	v, err = f.svc.Detail(ctx, f.resident.ID, req.ID)
	require.NoError(t, err)
	assert.IsType(t, domain.ResidentView{}, v)

	_, err = f.svc.Detail(ctx, stranger.ID, req.ID)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	both := f.seed.User("Both", domain.RoleOrgAdministrator, domain.RoleResident)
	f.seed.Update(f.org, "owner_user_id", both.ID)
	f.seed.Update(req, "requested_user_id", both.ID)
	v, err = f.svc.Detail(ctx, both.ID, req.ID)
	require.NoError(t, err)
	assert.IsType(t, domain.AdminView{}, v, "the administrator view wins")
}

func TestBookingService_DetailHidesUnpaidBooking(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t)
	booked := f.book(t)

	_, err := f.svc.Detail(ctx, f.resident.ID, booked.ServiceRequest.ID)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err), "resident")

	_, err = f.svc.Detail(ctx, f.owner.ID, booked.ServiceRequest.ID)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err), "organization administrator")

	f.seed.Update(&domain.ServiceRequest{ID: booked.ServiceRequest.ID}, "assigned_user_id", f.employee.ID)
	_, err = f.svc.Detail(ctx, f.employee.ID, booked.ServiceRequest.ID)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err), "employee")
}
