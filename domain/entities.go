package domain

import (
	"time"

	"gorm.io/datatypes"
)

// User is an identity. Phone is the login key.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Phone          string    `gorm:"size:10;uniqueIndex;not null" json:"phone"`
	FirstName      string    `gorm:"size:50" json:"first_name"`
	LastName       string    `gorm:"size:50" json:"last_name"`
	Email          *string   `gorm:"size:255;uniqueIndex" json:"email,omitempty"`
	ProfileImage   string    `json:"profile_image,omitempty"`
	OTPCounter     int       `gorm:"not null;default:0" json:"-"`
	IsActive       bool      `gorm:"not null" json:"is_active"`
	OrganizationID *uint     `json:"organization_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// FullName joins first and last name.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Role is a row of the roles table keyed by RoleID.
type Role struct {
	ID   RoleID `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name string `gorm:"size:50;not null" json:"name"`
}

// UserRole assigns one role to one user.
type UserRole struct {
	ID     uint   `gorm:"primaryKey"`
	UserID uint   `gorm:"not null;uniqueIndex:idx_user_role"`
	RoleID RoleID `gorm:"not null;uniqueIndex:idx_user_role"`
}

// Location is a geographic point with a free form address line.
type Location struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Latitude  float64   `gorm:"not null" json:"latitude"`
	Longitude float64   `gorm:"not null" json:"longitude"`
	Address   string    `gorm:"not null" json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// Organization owns establishments and the service catalog.
type Organization struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	OwnerUserID uint      `gorm:"not null;index" json:"owner_user_id"`
	LocationID  *uint     `json:"location_id,omitempty"`
	IsActive    bool      `gorm:"not null" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	OwnerUser *User `gorm:"foreignKey:OwnerUserID" json:"-"`
}

// Establishment is a managed site with a geofence for guard attendance.
type Establishment struct {
	ID                   uint            `gorm:"primaryKey" json:"id"`
	OrganizationID       uint            `gorm:"not null;index" json:"organization_id"`
	EstablishmentAdminID *uint           `gorm:"index" json:"establishment_admin_id,omitempty"`
	LocationID           uint            `gorm:"not null" json:"location_id"`
	Name                 string          `gorm:"size:100;not null" json:"name"`
	StartDate            *datatypes.Date `json:"start_date,omitempty"`
	EndDate              *datatypes.Date `json:"end_date,omitempty"`
	AttendanceRadius     float64         `gorm:"not null" json:"attendance_radius"`
	IsActive             bool            `gorm:"not null" json:"is_active"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`

	Organization *Organization `json:"-"`
	Location     *Location     `json:"location,omitempty"`
}

// Building groups flats inside an establishment.
type Building struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	EstablishmentID uint   `gorm:"not null;index" json:"establishment_id"`
	Name            string `gorm:"size:100;not null" json:"name"`
	IsActive        bool   `gorm:"not null" json:"is_active"`

	Establishment *Establishment `json:"establishment,omitempty"`
}

// Flat is a residence unit.
type Flat struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	BuildingID uint   `gorm:"not null;index" json:"building_id"`
	Number     string `gorm:"size:20;not null" json:"number"`
	IsActive   bool   `gorm:"not null" json:"is_active"`

	Building *Building `json:"building,omitempty"`
}

// EstablishmentID returns the establishment of a flat loaded with its building.
func (f *Flat) EstablishmentID() uint {
	if f.Building == nil {
		return 0
	}
	return f.Building.EstablishmentID
}

// OrganizationID returns the organization of a flat loaded with building and establishment.
func (f *Flat) OrganizationID() uint {
	if f.Building == nil || f.Building.Establishment == nil {
		return 0
	}
	return f.Building.Establishment.OrganizationID
}

// MemberRole is the relation of a resident to a flat.
type MemberRole string

const (
	MemberOwner        MemberRole = "Owner"
	MemberTenant       MemberRole = "Tenant"
	MemberFamilyMember MemberRole = "Family-Member"
)

// Valid reports whether m is a known member role.
func (m MemberRole) Valid() bool {
	switch m {
	case MemberOwner, MemberTenant, MemberFamilyMember:
		return true
	}
	return false
}

// FlatMember links a resident to a flat. At most one active row per user has
// IsCurrentFlat set.
type FlatMember struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	FlatID        uint       `gorm:"not null;index" json:"flat_id"`
	UserID        uint       `gorm:"not null;index" json:"user_id"`
	MemberRole    MemberRole `gorm:"size:20;not null" json:"member_role"`
	IsActive      bool       `gorm:"not null" json:"is_active"`
	IsCurrentFlat bool       `gorm:"not null" json:"is_current_flat"`
	CreatedAt     time.Time  `json:"created_at"`

	Flat *Flat `json:"flat,omitempty"`
}

// EstablishmentGuard links a security guard to an establishment.
type EstablishmentGuard struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	EstablishmentID uint      `gorm:"not null;index" json:"establishment_id"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	IsActive        bool      `gorm:"not null" json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`

	Establishment *Establishment `json:"establishment,omitempty"`
}

// CommitteeRole is the office held on a management committee.
type CommitteeRole string

const (
	CommitteeChairman  CommitteeRole = "Chairman"
	CommitteeSecretary CommitteeRole = "Secretary"
	CommitteeTreasurer CommitteeRole = "Treasurer"
)

// Valid reports whether c is a known committee office.
func (c CommitteeRole) Valid() bool {
	switch c {
	case CommitteeChairman, CommitteeSecretary, CommitteeTreasurer:
		return true
	}
	return false
}

// ManagementCommittee is a committee seat of a resident at an establishment.
type ManagementCommittee struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	EstablishmentID uint          `gorm:"not null;uniqueIndex:idx_committee_seat" json:"establishment_id"`
	UserID          uint          `gorm:"not null;uniqueIndex:idx_committee_seat" json:"user_id"`
	CommitteeRole   CommitteeRole `gorm:"size:20;not null" json:"committee_role"`
	IsActive        bool          `gorm:"not null" json:"is_active"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

func (ManagementCommittee) TableName() string { return "management_committees" }

// DeviceID is a registered handset identifier.
type DeviceID struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Value string `gorm:"column:device_id;size:255;uniqueIndex;not null" json:"device_id"`
}

func (DeviceID) TableName() string { return "device_ids" }

// AttendanceRecord is one check-in of a guard, closed by a check-out.
type AttendanceRecord struct {
	ID                   uint       `gorm:"primaryKey" json:"id"`
	EstablishmentGuardID uint       `gorm:"not null;index" json:"establishment_guard_id"`
	SignInLocationID     uint       `gorm:"not null" json:"sign_in_location_id"`
	SignInImage          string     `gorm:"not null" json:"sign_in_image"`
	SignInDeviceID       uint       `gorm:"not null" json:"sign_in_device_id"`
	SignInTime           time.Time  `gorm:"not null;index" json:"sign_in_time"`
	SignOutLocationID    *uint      `json:"sign_out_location_id"`
	SignOutImage         *string    `json:"sign_out_image"`
	SignOutDeviceID      *uint      `json:"sign_out_device_id"`
	SignOutTime          *time.Time `json:"sign_out_time"`
}

func (AttendanceRecord) TableName() string { return "establishment_guard_attendance_records" }

// IsOpen reports a record with no sign-out data at all.
func (r *AttendanceRecord) IsOpen() bool {
	return r.SignOutLocationID == nil && r.SignOutTime == nil && r.SignOutDeviceID == nil && r.SignOutImage == nil
}

// IsClosed reports a record with every sign-out field populated.
func (r *AttendanceRecord) IsClosed() bool {
	return r.SignOutLocationID != nil && r.SignOutTime != nil && r.SignOutDeviceID != nil && r.SignOutImage != nil
}

// AttendanceState is the per day state of a guard.
type AttendanceState int

const (
	AttendanceNoRecord AttendanceState = iota
	AttendanceCheckedIn
	AttendanceCheckedOut
)

// StateOf classifies today's record, nil meaning no record.
func StateOf(r *AttendanceRecord) AttendanceState {
	switch {
	case r == nil:
		return AttendanceNoRecord
	case r.IsClosed():
		return AttendanceCheckedOut
	default:
		return AttendanceCheckedIn
	}
}

// ServiceCategory is the top level of the service catalog.
type ServiceCategory struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	OrganizationID uint   `gorm:"not null;index" json:"organization_id"`
	Name           string `gorm:"size:100;not null" json:"name"`
	IsActive       bool   `gorm:"not null" json:"is_active"`
}

// ServiceSubCategory groups services inside a category.
type ServiceSubCategory struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	CategoryID uint   `gorm:"not null;index" json:"category_id"`
	Name       string `gorm:"size:100;not null" json:"name"`
	IsActive   bool   `gorm:"not null" json:"is_active"`

	Category *ServiceCategory `json:"category,omitempty"`
}

// Service is a bookable offering priced per slot.
type Service struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	OrganizationID uint   `gorm:"not null;index" json:"organization_id"`
	SubCategoryID  *uint  `json:"sub_category_id,omitempty"`
	Name           string `gorm:"size:100;not null" json:"name"`
	Price          int64  `gorm:"not null;default:0" json:"price"`
	Image          string `json:"image,omitempty"`
	IsActive       bool   `gorm:"not null" json:"is_active"`

	Organization *Organization       `json:"-"`
	SubCategory  *ServiceSubCategory `json:"sub_category,omitempty"`
}

// ServiceSlot is a weekly recurring window. DayOfWeek runs Monday=1 to Sunday=7.
type ServiceSlot struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ServiceID uint           `gorm:"not null;index" json:"service_id"`
	StartTime datatypes.Time `gorm:"not null" json:"start_time"`
	EndTime   datatypes.Time `gorm:"not null" json:"end_time"`
	DayOfWeek int            `gorm:"not null" json:"day_of_week"`
	IsActive  bool           `gorm:"not null" json:"is_active"`
}

// ServiceExclusion blocks bookings of a service on one date.
type ServiceExclusion struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ServiceID uint           `gorm:"not null;uniqueIndex:idx_service_exclusion" json:"service_id"`
	Date      datatypes.Date `gorm:"not null;uniqueIndex:idx_service_exclusion" json:"date"`
}

// RequestStatus is the state of a service request.
type RequestStatus string

const (
	StatusPending   RequestStatus = "Pending"
	StatusApproved  RequestStatus = "Approved"
	StatusRejected  RequestStatus = "Rejected"
	StatusAssigned  RequestStatus = "Assigned"
	StatusCompleted RequestStatus = "Completed"
)

// Valid reports whether s is a known status.
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusAssigned, StatusCompleted:
		return true
	}
	return false
}

// ServiceRequest is a booking of a service on a date for one or more slots.
type ServiceRequest struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	FlatID          uint           `gorm:"not null;index" json:"flat_id"`
	ServiceID       uint           `gorm:"not null;index" json:"service_id"`
	RequestedUserID uint           `gorm:"not null;index" json:"requested_user_id"`
	AssignedUserID  *uint          `gorm:"index" json:"assigned_user_id,omitempty"`
	PaymentID       *uint          `json:"payment_id,omitempty"`
	RequestedDate   datatypes.Date `gorm:"not null;index" json:"requested_date"`
	Amount          int64          `gorm:"not null;default:0" json:"amount"`
	Status          RequestStatus  `gorm:"size:20;not null" json:"status"`
	Rating          *int           `json:"rating,omitempty"`
	IsActive        bool           `gorm:"not null" json:"is_active"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`

	Flat          *Flat                `json:"-"`
	Service       *Service             `json:"-"`
	RequestedUser *User                `gorm:"foreignKey:RequestedUserID" json:"-"`
	AssignedUser  *User                `gorm:"foreignKey:AssignedUserID" json:"-"`
	Payment       *Payment             `json:"-"`
	Slots         []ServiceRequestSlot `json:"-"`
}

// ServiceRequestSlot freezes a slot window at booking time.
type ServiceRequestSlot struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	ServiceRequestID uint           `gorm:"not null;index" json:"service_request_id"`
	ServiceSlotID    uint           `gorm:"not null" json:"service_slot_id"`
	StartTime        datatypes.Time `gorm:"not null" json:"start_time"`
	EndTime          datatypes.Time `gorm:"not null" json:"end_time"`
}

// PaymentStatus is the reconciliation state of a payment.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentSuccess PaymentStatus = "Success"
	PaymentFail    PaymentStatus = "Fail"
)

// Payment tracks one gateway order.
type Payment struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	OrderID    string        `gorm:"size:100;uniqueIndex;not null" json:"order_id"`
	PaymentRef string        `gorm:"column:payment_id;size:100" json:"payment_id"`
	Signature  string        `gorm:"size:255" json:"signature"`
	Amount     int64         `gorm:"not null" json:"amount"`
	Status     PaymentStatus `gorm:"column:payment_status;size:20;not null" json:"payment_status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// PushNotificationToken is the latest device token of a user.
type PushNotificationToken struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	DeviceID     string    `gorm:"size:255" json:"device_id"`
	CurrentToken string    `gorm:"not null" json:"current_token"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// OTPRequest is an issued one-time code.
type OTPRequest struct {
	Phone     string
	Code      string
	UserID    uint
	Counter   int
	ExpiresAt time.Time
}

// Session is a login session stored in Redis.
type Session struct {
	ID        string    `json:"id"`
	UserID    uint      `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResult is the outcome of a successful OTP login.
type AuthResult struct {
	User         *User
	Roles        []RoleID
	AccessToken  string
	RefreshToken string
	SessionID    string
	ExpiresIn    int64
	CurrentToken *string
}

// Page selects a window of a listing.
type Page struct {
	Number int
	Size   int
}

// Normalize clamps the page to sane defaults.
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 || p.Size > 100 {
		p.Size = 20
	}
	return p
}

// Offset is the number of rows to skip.
func (p Page) Offset() int {
	n := p.Normalize()
	return (n.Number - 1) * n.Size
}
