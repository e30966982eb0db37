package mocks

import (
	"context"

	"github.com/hardik-python-lr/our-gate-backend/domain"
)

// MockAttendanceService implements domain.AttendanceService for handler tests
type MockAttendanceService struct {
	CheckInFunc  func(ctx context.Context, userID uint, in domain.AttendanceInput) (*domain.AttendanceResult, error)
	CheckOutFunc func(ctx context.Context, userID uint, in domain.AttendanceInput) (*domain.AttendanceResult, error)
	StatusFunc   func(ctx context.Context, userID uint) (*domain.AttendanceStatus, error)
}

func NewMockAttendanceService() *MockAttendanceService {
	return &MockAttendanceService{}
}

func (m *MockAttendanceService) CheckIn(ctx context.Context, userID uint, in domain.AttendanceInput) (*domain.AttendanceResult, error) {
	if m.CheckInFunc != nil {
		return m.CheckInFunc(ctx, userID, in)
	}
	return &domain.AttendanceResult{AttendanceStatus: "CHECKED_IN", IsCheckIn: true}, nil
}

func (m *MockAttendanceService) CheckOut(ctx context.Context, userID uint, in domain.AttendanceInput) (*domain.AttendanceResult, error) {
	if m.CheckOutFunc != nil {
		return m.CheckOutFunc(ctx, userID, in)
	}
	return &domain.AttendanceResult{AttendanceStatus: "CHECKED_OUT", IsCheckIn: true, IsCheckOut: true}, nil
}

func (m *MockAttendanceService) Status(ctx context.Context, userID uint) (*domain.AttendanceStatus, error) {
	if m.StatusFunc != nil {
		return m.StatusFunc(ctx, userID)
	}
	return &domain.AttendanceStatus{Message: domain.CodeCheckInNotDone.Message()}, nil
}

var _ domain.AttendanceService = (*MockAttendanceService)(nil)

// MockBookingService implements domain.BookingService for handler tests.
// Unset funcs return empty results.
type MockBookingService struct {
	SlotsForDateFunc        func(ctx context.Context, userID, serviceID uint, date string) ([]domain.ServiceSlot, error)
	PayableAmountFunc       func(ctx context.Context, userID uint, in domain.BookingInput) (*domain.PayableAmount, error)
	CreateFunc              func(ctx context.Context, userID uint, in domain.BookingInput) (*domain.BookingResult, error)
	PaymentCallbackFunc     func(ctx context.Context, in domain.CallbackInput) (*domain.CallbackResult, error)
	HistoryFunc             func(ctx context.Context, userID uint, q domain.RequestQuery) (*domain.ListResult[domain.ResidentView], error)
	RateFunc                func(ctx context.Context, userID, requestID uint, rating int) (*domain.ResidentView, error)
	CompleteByResidentFunc  func(ctx context.Context, userID, requestID uint, rating *int) (*domain.ResidentView, error)
	AdminListFunc           func(ctx context.Context, userID uint, q domain.RequestQuery) (*domain.ListResult[domain.AdminView], error)
	UpdateStatusFunc        func(ctx context.Context, userID, requestID uint, status domain.RequestStatus) (*domain.AdminView, error)
	AssignFunc              func(ctx context.Context, userID, requestID, employeeID uint) (*domain.AdminView, error)
	AssignableEmployeesFunc func(ctx context.Context, userID uint) ([]domain.UserSummary, error)
	CompleteByAdminFunc     func(ctx context.Context, userID, requestID uint) (*domain.AdminView, error)
	EmployeeListFunc        func(ctx context.Context, userID uint, q domain.RequestQuery) (*domain.ListResult[domain.EmployeeView], error)
	DetailFunc              func(ctx context.Context, userID, requestID uint) (any, error)
}

func NewMockBookingService() *MockBookingService {
	return &MockBookingService{}
}

func (m *MockBookingService) SlotsForDate(ctx context.Context, userID, serviceID uint, date string) ([]domain.ServiceSlot, error) {
	if m.SlotsForDateFunc != nil {
		return m.SlotsForDateFunc(ctx, userID, serviceID, date)
	}
	return []domain.ServiceSlot{}, nil
}

func (m *MockBookingService) PayableAmount(ctx context.Context, userID uint, in domain.BookingInput) (*domain.PayableAmount, error) {
	if m.PayableAmountFunc != nil {
		return m.PayableAmountFunc(ctx, userID, in)
	}
	return &domain.PayableAmount{}, nil
}

func (m *MockBookingService) Create(ctx context.Context, userID uint, in domain.BookingInput) (*domain.BookingResult, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, in)
	}
	return &domain.BookingResult{ServiceRequest: domain.ResidentView{ID: 1, Status: domain.StatusPending}}, nil
}

func (m *MockBookingService) PaymentCallback(ctx context.Context, in domain.CallbackInput) (*domain.CallbackResult, error) {
	if m.PaymentCallbackFunc != nil {
		return m.PaymentCallbackFunc(ctx, in)
	}
	return &domain.CallbackResult{}, nil
}

func (m *MockBookingService) History(ctx context.Context, userID uint, q domain.RequestQuery) (*domain.ListResult[domain.ResidentView], error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, userID, q)
	}
	return &domain.ListResult[domain.ResidentView]{Results: []domain.ResidentView{}}, nil
}

func (m *MockBookingService) Rate(ctx context.Context, userID, requestID uint, rating int) (*domain.ResidentView, error) {
	if m.RateFunc != nil {
		return m.RateFunc(ctx, userID, requestID, rating)
	}
	return &domain.ResidentView{ID: requestID, Rating: &rating}, nil
}

func (m *MockBookingService) CompleteByResident(ctx context.Context, userID, requestID uint, rating *int) (*domain.ResidentView, error) {
	if m.CompleteByResidentFunc != nil {
		return m.CompleteByResidentFunc(ctx, userID, requestID, rating)
	}
	return &domain.ResidentView{ID: requestID, Status: domain.StatusCompleted, Rating: rating}, nil
}

func (m *MockBookingService) AdminList(ctx context.Context, userID uint, q domain.RequestQuery) (*domain.ListResult[domain.AdminView], error) {
	if m.AdminListFunc != nil {
		return m.AdminListFunc(ctx, userID, q)
	}
	return &domain.ListResult[domain.AdminView]{Results: []domain.AdminView{}}, nil
}

func (m *MockBookingService) UpdateStatus(ctx context.Context, userID, requestID uint, status domain.RequestStatus) (*domain.AdminView, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, userID, requestID, status)
	}
	return &domain.AdminView{ID: requestID, Status: status}, nil
}

func (m *MockBookingService) Assign(ctx context.Context, userID, requestID, employeeID uint) (*domain.AdminView, error) {
	if m.AssignFunc != nil {
		return m.AssignFunc(ctx, userID, requestID, employeeID)
	}
	return &domain.AdminView{ID: requestID, AssignedUser: &domain.UserSummary{ID: employeeID}}, nil
}

func (m *MockBookingService) AssignableEmployees(ctx context.Context, userID uint) ([]domain.UserSummary, error) {
	if m.AssignableEmployeesFunc != nil {
		return m.AssignableEmployeesFunc(ctx, userID)
	}
	return []domain.UserSummary{}, nil
}

func (m *MockBookingService) CompleteByAdmin(ctx context.Context, userID, requestID uint) (*domain.AdminView, error) {
	if m.CompleteByAdminFunc != nil {
		return m.CompleteByAdminFunc(ctx, userID, requestID)
	}
	return &domain.AdminView{ID: requestID, Status: domain.StatusCompleted}, nil
}

func (m *MockBookingService) EmployeeList(ctx context.Context, userID uint, q domain.RequestQuery) (*domain.ListResult[domain.EmployeeView], error) {
	if m.EmployeeListFunc != nil {
		return m.EmployeeListFunc(ctx, userID, q)
	}
	return &domain.ListResult[domain.EmployeeView]{Results: []domain.EmployeeView{}}, nil
}

func (m *MockBookingService) Detail(ctx context.Context, userID, requestID uint) (any, error) {
	if m.DetailFunc != nil {
		return m.DetailFunc(ctx, userID, requestID)
	}
	return &domain.ResidentView{ID: requestID}, nil
}

var _ domain.BookingService = (*MockBookingService)(nil)

// MockMembershipService implements domain.MembershipService for handler tests
type MockMembershipService struct {
	CreateUserFunc          func(ctx context.Context, callerID uint, in domain.CreateUserInput) (*domain.User, []domain.RoleID, error)
	DeleteUserFunc          func(ctx context.Context, callerID, userID uint) error
	LinkGuardFunc           func(ctx context.Context, callerID, userID, establishmentID uint) (*domain.EstablishmentGuard, error)
	UnlinkGuardFunc         func(ctx context.Context, callerID, userID uint) error
	LinkResidentFunc        func(ctx context.Context, callerID uint, in domain.LinkResidentInput) (*domain.FlatMember, error)
	UnlinkResidentFunc      func(ctx context.Context, callerID, userID, flatID uint) error
	SelectCurrentFlatFunc   func(ctx context.Context, callerID, flatID uint) error
	GrantCommitteeSeatFunc  func(ctx context.Context, callerID, userID, establishmentID uint, role domain.CommitteeRole) (*domain.ManagementCommittee, error)
	RevokeCommitteeSeatFunc func(ctx context.Context, callerID, userID, establishmentID uint) error
}

func NewMockMembershipService() *MockMembershipService {
	return &MockMembershipService{}
}

func (m *MockMembershipService) CreateUser(ctx context.Context, callerID uint, in domain.CreateUserInput) (*domain.User, []domain.RoleID, error) {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, callerID, in)
	}
	return &domain.User{ID: 2, FirstName: in.FirstName, LastName: in.LastName, Phone: in.Phone, IsActive: true}, in.Roles, nil
}

func (m *MockMembershipService) DeleteUser(ctx context.Context, callerID, userID uint) error {
	if m.DeleteUserFunc != nil {
		return m.DeleteUserFunc(ctx, callerID, userID)
	}
	return nil
}

func (m *MockMembershipService) LinkGuard(ctx context.Context, callerID, userID, establishmentID uint) (*domain.EstablishmentGuard, error) {
	if m.LinkGuardFunc != nil {
		return m.LinkGuardFunc(ctx, callerID, userID, establishmentID)
	}
	return &domain.EstablishmentGuard{ID: 1, UserID: userID, EstablishmentID: establishmentID, IsActive: true}, nil
}

func (m *MockMembershipService) UnlinkGuard(ctx context.Context, callerID, userID uint) error {
	if m.UnlinkGuardFunc != nil {
		return m.UnlinkGuardFunc(ctx, callerID, userID)
	}
	return nil
}

func (m *MockMembershipService) LinkResident(ctx context.Context, callerID uint, in domain.LinkResidentInput) (*domain.FlatMember, error) {
	if m.LinkResidentFunc != nil {
		return m.LinkResidentFunc(ctx, callerID, in)
	}
	return &domain.FlatMember{ID: 1, UserID: in.UserID, FlatID: in.FlatID, MemberRole: in.MemberRole, IsActive: true}, nil
}

func (m *MockMembershipService) UnlinkResident(ctx context.Context, callerID, userID, flatID uint) error {
	if m.UnlinkResidentFunc != nil {
		return m.UnlinkResidentFunc(ctx, callerID, userID, flatID)
	}
	return nil
}

func (m *MockMembershipService) SelectCurrentFlat(ctx context.Context, callerID, flatID uint) error {
	if m.SelectCurrentFlatFunc != nil {
		return m.SelectCurrentFlatFunc(ctx, callerID, flatID)
	}
	return nil
}

func (m *MockMembershipService) GrantCommitteeSeat(ctx context.Context, callerID, userID, establishmentID uint, role domain.CommitteeRole) (*domain.ManagementCommittee, error) {
	if m.GrantCommitteeSeatFunc != nil {
		return m.GrantCommitteeSeatFunc(ctx, callerID, userID, establishmentID, role)
	}
	return &domain.ManagementCommittee{ID: 1, UserID: userID, EstablishmentID: establishmentID, CommitteeRole: role, IsActive: true}, nil
}

func (m *MockMembershipService) RevokeCommitteeSeat(ctx context.Context, callerID, userID, establishmentID uint) error {
	if m.RevokeCommitteeSeatFunc != nil {
		return m.RevokeCommitteeSeatFunc(ctx, callerID, userID, establishmentID)
	}
	return nil
}

var _ domain.MembershipService = (*MockMembershipService)(nil)

// MockPermissionEvaluator answers from a fixed role map
type MockPermissionEvaluator struct {
	Roles      map[uint][]domain.RoleID
	RolesOfErr error
}

func NewMockPermissionEvaluator() *MockPermissionEvaluator {
	return &MockPermissionEvaluator{Roles: map[uint][]domain.RoleID{}}
}

func (m *MockPermissionEvaluator) Evaluate(ctx context.Context, acceptable []domain.RoleID, userID uint) (domain.Permission, error) {
	roles, err := m.RolesOf(ctx, userID)
	if err != nil {
		return domain.Deny(acceptable), err
	}
	perm := domain.Deny(acceptable)
	for _, held := range roles {
		if _, ok := perm.Held[held]; ok {
			perm.Held[held] = true
			perm.Allowed = true
		}
	}
	return perm, nil
}

func (m *MockPermissionEvaluator) RolesOf(ctx context.Context, userID uint) ([]domain.RoleID, error) {
	if m.RolesOfErr != nil {
		return nil, m.RolesOfErr
	}
	return m.Roles[userID], nil
}

var _ domain.PermissionEvaluator = (*MockPermissionEvaluator)(nil)
