package domain

import (
	"context"
	"time"
)

// GeoPoint is a latitude / longitude pair in degrees.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// AttendanceInput is the payload of a check-in or check-out. Nil fields were
// absent from the request.
type AttendanceInput struct {
	Location *GeoPoint
	Image    *string
	DeviceID *string
}

// AttendanceResult is returned by a successful check-in or check-out.
type AttendanceResult struct {
	Location         *Location         `json:"location"`
	Device           *DeviceID         `json:"device"`
	Attendance       *AttendanceRecord `json:"attendance"`
	AttendanceStatus string            `json:"attendance_status"`
	IsCheckIn        bool              `json:"is_checkin"`
	IsCheckOut       bool              `json:"is_checkout"`
}

// AttendanceStatus describes today's attendance of a guard.
type AttendanceStatus struct {
	State       AttendanceState `json:"-"`
	Message     string          `json:"attendance_status_msg"`
	SignInTime  *time.Time      `json:"sign_in_time"`
	SignOutTime *time.Time      `json:"sign_out_time"`
	IsCheckIn   bool            `json:"is_checkin"`
	IsCheckOut  bool            `json:"is_checkout"`
}

// AttendanceService runs the guard attendance state machine.
type AttendanceService interface {
	CheckIn(ctx context.Context, userID uint, in AttendanceInput) (*AttendanceResult, error)
	CheckOut(ctx context.Context, userID uint, in AttendanceInput) (*AttendanceResult, error)
	Status(ctx context.Context, userID uint) (*AttendanceStatus, error)
}

// BookingInput is a resident's booking request.
type BookingInput struct {
	ServiceID     uint
	RequestedDate string
	SlotIDs       []uint
}

// PayableAmount is the price quote for a booking.
type PayableAmount struct {
	Amount         int64          `json:"amount"`
	Service        ServiceSummary `json:"service"`
	RequestedSlots []ServiceSlot  `json:"requested_slots"`
}

// BookingResult is returned by a successful booking.
type BookingResult struct {
	ServiceRequest ResidentView `json:"service_request"`
	OrderID        string       `json:"order_id,omitempty"`
	KeyID          string       `json:"key_id,omitempty"`
	Currency       string       `json:"currency,omitempty"`
}

// CallbackInput is the payment gateway's checkout result.
type CallbackInput struct {
	OrderID   string
	PaymentID string
	Signature string
}

// CallbackResult is the reconciled state after a payment callback.
type CallbackResult struct {
	Abandoned      bool          `json:"-"`
	Payment        *PaymentView  `json:"payment,omitempty"`
	ServiceRequest *ResidentView `json:"service_request,omitempty"`
}

// RequestQuery holds the list filters accepted from clients.
type RequestQuery struct {
	Status          string
	Rating          *int
	Date            string
	Search          string
	EstablishmentID uint
	RequestedUserID uint
	AssignedUserID  uint
	Page            Page
}

// ListResult is one page of a listing.
type ListResult[T any] struct {
	Count   int64 `json:"count"`
	Page    int   `json:"page"`
	Size    int   `json:"page_size"`
	Results []T   `json:"results"`
}

// BookingService runs the service request workflow.
type BookingService interface {
	SlotsForDate(ctx context.Context, userID, serviceID uint, date string) ([]ServiceSlot, error)
	PayableAmount(ctx context.Context, userID uint, in BookingInput) (*PayableAmount, error)
	Create(ctx context.Context, userID uint, in BookingInput) (*BookingResult, error)
	PaymentCallback(ctx context.Context, in CallbackInput) (*CallbackResult, error)
	History(ctx context.Context, userID uint, q RequestQuery) (*ListResult[ResidentView], error)
	Rate(ctx context.Context, userID, requestID uint, rating int) (*ResidentView, error)
	CompleteByResident(ctx context.Context, userID, requestID uint, rating *int) (*ResidentView, error)

	AdminList(ctx context.Context, userID uint, q RequestQuery) (*ListResult[AdminView], error)
	UpdateStatus(ctx context.Context, userID, requestID uint, status RequestStatus) (*AdminView, error)
	Assign(ctx context.Context, userID, requestID, employeeID uint) (*AdminView, error)
	AssignableEmployees(ctx context.Context, userID uint) ([]UserSummary, error)
	CompleteByAdmin(ctx context.Context, userID, requestID uint) (*AdminView, error)

	EmployeeList(ctx context.Context, userID uint, q RequestQuery) (*ListResult[EmployeeView], error)
	Detail(ctx context.Context, userID, requestID uint) (any, error)
}

// CreateUserInput is an administrative user creation request.
type CreateUserInput struct {
	FirstName    string
	LastName     string
	Phone        string
	Email        *string
	ProfileImage string
	Roles        []RoleID
}

// LinkResidentInput attaches a resident to a flat.
type LinkResidentInput struct {
	UserID     uint
	FlatID     uint
	MemberRole MemberRole
}

// MembershipService manages users, links and committee seats.
type MembershipService interface {
	CreateUser(ctx context.Context, callerID uint, in CreateUserInput) (*User, []RoleID, error)
	DeleteUser(ctx context.Context, callerID, userID uint) error

	LinkGuard(ctx context.Context, callerID, userID, establishmentID uint) (*EstablishmentGuard, error)
	UnlinkGuard(ctx context.Context, callerID, userID uint) error

	LinkResident(ctx context.Context, callerID uint, in LinkResidentInput) (*FlatMember, error)
	UnlinkResident(ctx context.Context, callerID, userID, flatID uint) error
	SelectCurrentFlat(ctx context.Context, callerID, flatID uint) error

	GrantCommitteeSeat(ctx context.Context, callerID, userID, establishmentID uint, role CommitteeRole) (*ManagementCommittee, error)
	RevokeCommitteeSeat(ctx context.Context, callerID, userID, establishmentID uint) error
}

// CatalogQuery holds the catalog list filters accepted from clients.
type CatalogQuery struct {
	Name          string
	CategoryID    uint
	SubCategoryID uint
	ServiceID     uint
	DayOfWeek     int
	Date          string
	Page          Page
}

// CategoryInput creates or renames a category. OrganizationID picks one of
// the caller's organizations on create; zero means the first one.
type CategoryInput struct {
	OrganizationID uint
	Name           string
}

type SubCategoryInput struct {
	CategoryID uint
	Name       string
}

type ServiceInput struct {
	SubCategoryID uint
	Name          string
	Image         string
	Price         int64
}

// SlotInput takes times as HH:MM or HH:MM:SS.
type SlotInput struct {
	ServiceID uint
	StartTime string
	EndTime   string
	DayOfWeek int
}

type ExclusionInput struct {
	ServiceID uint
	Date      string
}

// CatalogService manages an organization's service catalog and lets
// residents browse it.
type CatalogService interface {
	CreateCategory(ctx context.Context, userID uint, in CategoryInput) (*ServiceCategory, error)
	UpdateCategory(ctx context.Context, userID, id uint, in CategoryInput) (*ServiceCategory, error)
	DeleteCategory(ctx context.Context, userID, id uint) error
	Category(ctx context.Context, userID, id uint) (*ServiceCategory, error)
	Categories(ctx context.Context, userID uint, q CatalogQuery) (*ListResult[ServiceCategory], error)

	CreateSubCategory(ctx context.Context, userID uint, in SubCategoryInput) (*ServiceSubCategory, error)
	UpdateSubCategory(ctx context.Context, userID, id uint, in SubCategoryInput) (*ServiceSubCategory, error)
	DeleteSubCategory(ctx context.Context, userID, id uint) error
	SubCategory(ctx context.Context, userID, id uint) (*ServiceSubCategory, error)
	SubCategories(ctx context.Context, userID uint, q CatalogQuery) (*ListResult[ServiceSubCategory], error)

	CreateService(ctx context.Context, userID uint, in ServiceInput) (*Service, error)
	UpdateService(ctx context.Context, userID, id uint, in ServiceInput) (*Service, error)
	DeleteService(ctx context.Context, userID, id uint) error
	Service(ctx context.Context, userID, id uint) (*Service, error)
	Services(ctx context.Context, userID uint, q CatalogQuery) (*ListResult[Service], error)

	CreateSlot(ctx context.Context, userID uint, in SlotInput) (*ServiceSlot, error)
	UpdateSlot(ctx context.Context, userID, id uint, in SlotInput) (*ServiceSlot, error)
	DeleteSlot(ctx context.Context, userID, id uint) error
	Slot(ctx context.Context, userID, id uint) (*ServiceSlot, error)
	Slots(ctx context.Context, userID uint, q CatalogQuery) (*ListResult[ServiceSlot], error)

	CreateExclusion(ctx context.Context, userID uint, in ExclusionInput) (*ServiceExclusion, error)
	UpdateExclusion(ctx context.Context, userID, id uint, in ExclusionInput) (*ServiceExclusion, error)
	DeleteExclusion(ctx context.Context, userID, id uint) error
	Exclusion(ctx context.Context, userID, id uint) (*ServiceExclusion, error)
	Exclusions(ctx context.Context, userID uint, q CatalogQuery) (*ListResult[ServiceExclusion], error)

	BrowseServices(ctx context.Context, userID uint, q CatalogQuery) (*ListResult[Service], error)
	BookingCategories(ctx context.Context, userID uint) ([]ServiceCategory, error)
	BookingSubCategories(ctx context.Context, userID, categoryID uint) ([]ServiceSubCategory, error)
}
