package domain

import (
	"context"
	"time"

	"gorm.io/datatypes"
)

// Transactor runs fn in one database transaction. Repositories called with the
// ctx passed to fn join that transaction.
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User, roles []RoleID) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindActiveByID(ctx context.Context, id uint) (*User, error)
	FindActiveByPhone(ctx context.Context, phone string) (*User, error)
	FindActiveWithRole(ctx context.Context, id uint, role RoleID) (*User, error)
	ListActiveWithRole(ctx context.Context, role RoleID, organizationIDs []uint) ([]User, error)
	PhoneOrEmailTaken(ctx context.Context, phone string, email *string) (bool, error)
	IncrementOTPCounter(ctx context.Context, userID uint) (int, error)
	Update(ctx context.Context, user *User) error
}

// RoleRepository is the user to role assignment store.
type RoleRepository interface {
	RoleIDs(ctx context.Context, userID uint) ([]RoleID, error)
	Grant(ctx context.Context, userID uint, role RoleID) error
	Revoke(ctx context.Context, userID uint, role RoleID) error
	EnsureRoles(ctx context.Context) error
}

// SiteRepository reads organizations, establishments and flats.
type SiteRepository interface {
	Organization(ctx context.Context, id uint) (*Organization, error)
	OwnedOrganizationIDs(ctx context.Context, ownerID uint) ([]uint, error)
	AdministeredEstablishment(ctx context.Context, establishmentID, adminID uint) (*Establishment, error)
	ActiveFlat(ctx context.Context, flatID uint) (*Flat, error)
}

// MembershipRepository stores flat memberships, guard links and committee seats.
type MembershipRepository interface {
	CurrentFlat(ctx context.Context, userID uint) (*Flat, error)
	ActiveFlatMember(ctx context.Context, userID, flatID uint) (*FlatMember, error)
	CountActiveFlatMembers(ctx context.Context, userID uint) (int64, error)
	IsActiveMemberOfEstablishment(ctx context.Context, userID, establishmentID uint) (bool, error)
	SaveFlatMember(ctx context.Context, member *FlatMember) error
	SetCurrentFlat(ctx context.Context, userID, flatID uint) error

	ActiveGuardLink(ctx context.Context, userID uint) (*EstablishmentGuard, error)
	GuardLink(ctx context.Context, userID, establishmentID uint) (*EstablishmentGuard, error)
	ActiveGuardLinkAdministeredBy(ctx context.Context, userID, adminID uint) (*EstablishmentGuard, error)
	SaveGuardLink(ctx context.Context, link *EstablishmentGuard) error

	CommitteeSeat(ctx context.Context, userID, establishmentID uint) (*ManagementCommittee, error)
	SaveCommitteeSeat(ctx context.Context, seat *ManagementCommittee) error
}

// AttendanceRepository stores guard attendance records.
type AttendanceRepository interface {
	LatestBetween(ctx context.Context, guardLinkID uint, from, to time.Time) (*AttendanceRecord, error)
	CreateLocation(ctx context.Context, loc *Location) error
	GetOrCreateDevice(ctx context.Context, value string) (*DeviceID, error)
	Create(ctx context.Context, record *AttendanceRecord) error
	Save(ctx context.Context, record *AttendanceRecord) error
}

// CatalogRepository reads services, slots and exclusions.
type CatalogRepository interface {
	ActiveService(ctx context.Context, serviceID uint) (*Service, error)
	IsExcluded(ctx context.Context, serviceID uint, date datatypes.Date) (bool, error)
	SlotsForDay(ctx context.Context, serviceID uint, dayOfWeek int) ([]ServiceSlot, error)

	// The listings return active rows of active organizations. A nil page
	// returns every match.
	Categories(ctx context.Context, f CatalogFilter, page *Page) ([]ServiceCategory, int64, error)
	SubCategories(ctx context.Context, f CatalogFilter, page *Page) ([]ServiceSubCategory, int64, error)
	Services(ctx context.Context, f CatalogFilter, page *Page) ([]Service, int64, error)
	Slots(ctx context.Context, f CatalogFilter, page *Page) ([]ServiceSlot, int64, error)
	Exclusions(ctx context.Context, f CatalogFilter, page *Page) ([]ServiceExclusion, int64, error)
	Save(ctx context.Context, record any) error
	DeleteExclusion(ctx context.Context, id uint) error
}

// CatalogFilter narrows catalog listings. Zero values mean "any"; a nil
// OrganizationIDs means any organization and an empty one matches nothing.
type CatalogFilter struct {
	ID              uint
	OrganizationIDs []uint
	CategoryID      uint
	SubCategoryID   uint
	ServiceID       uint
	DayOfWeek       int
	Date            *datatypes.Date
	Name            string
}

// RequestFilter narrows service request queries. Zero values mean "any".
type RequestFilter struct {
	ID              uint
	FlatID          uint
	RequestedUserID uint
	AssignedUserID  uint
	EstablishmentID uint
	OrganizationIDs []uint
	Statuses        []RequestStatus
	ExcludeStatuses []RequestStatus
	Active          *bool
	Rating          *int
	Date            *datatypes.Date
	NotBefore       *datatypes.Date
	Search          string
	OldestFirst     bool
}

// ServiceRequestRepository stores bookings and their payments.
type ServiceRequestRepository interface {
	Create(ctx context.Context, req *ServiceRequest) error
	Find(ctx context.Context, f RequestFilter) (*ServiceRequest, error)
	List(ctx context.Context, f RequestFilter, page Page) ([]ServiceRequest, int64, error)
	Save(ctx context.Context, req *ServiceRequest) error
	Delete(ctx context.Context, req *ServiceRequest) error
	CreatePayment(ctx context.Context, p *Payment) error
	SavePayment(ctx context.Context, p *Payment) error
	PaymentByOrderID(ctx context.Context, orderID string) (*Payment, error)
}

// PushTokenRepository stores device tokens for push notifications.
type PushTokenRepository interface {
	Save(ctx context.Context, userID uint, deviceID, token string) (*PushNotificationToken, error)
	FindByUser(ctx context.Context, userID uint) (*PushNotificationToken, error)
}

// SessionRepository defines session data access operations
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// Locker grants short exclusive leases on a key.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}

// PermissionEvaluator decides whether a user holds any of a set of roles.
type PermissionEvaluator interface {
	Evaluate(ctx context.Context, acceptable []RoleID, userID uint) (Permission, error)
	RolesOf(ctx context.Context, userID uint) ([]RoleID, error)
}

// ContextResolver looks up the records a role needs before acting.
type ContextResolver interface {
	CurrentFlat(ctx context.Context, userID uint) (*Flat, error)
	ValidEstablishmentGuard(ctx context.Context, userID uint) (*EstablishmentGuard, error)
	ValidCommitteeSeat(ctx context.Context, userID, establishmentID uint) (*ManagementCommittee, error)
}

// AuthService defines OTP login and session handling
type AuthService interface {
	RequestOTP(ctx context.Context, phone string) (*OTPRequest, error)
	VerifyOTP(ctx context.Context, phone, code string, currentToken *string) (*AuthResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
	Profile(ctx context.Context, userID uint) (*User, []RoleID, error)
	SavePushToken(ctx context.Context, userID uint, token string) (*PushNotificationToken, error)
}

// OTPService defines OTP operations
type OTPService interface {
	Generate(ctx context.Context, phone string, counter int) (*OTPRequest, error)
	Verify(ctx context.Context, phone, code string, counter int) error
	CanResend(ctx context.Context, phone string) (bool, int64, error)
}

// CodeHasher hashes secrets kept at rest.
type CodeHasher interface {
	Hash(code string) (string, error)
	Verify(hashed, code string) bool
}

// TokenService defines token operations
type TokenService interface {
	GenerateAccessToken(userID uint, sessionID string) (string, error)
	GenerateRefreshToken(userID uint, sessionID string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
	AccessTTL() time.Duration
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	SessionID string `json:"session_id,omitempty"`
	TokenType string `json:"typ"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// SMSService delivers text messages.
type SMSService interface {
	SendSMS(ctx context.Context, to, message string) error
}

// PushSender delivers one push notification to one device token.
type PushSender interface {
	Send(ctx context.Context, token, title, body string) error
}

// Notifier informs a user. Delivery is best effort and never fails the caller.
type Notifier interface {
	Notify(ctx context.Context, userID uint, title, body string)
}

// PaymentOrder is an order opened at the payment gateway.
type PaymentOrder struct {
	ID       string            `json:"id"`
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Status   string            `json:"status,omitempty"`
	Notes    map[string]string `json:"notes"`
}

// PaymentGateway is the external payment provider.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency string, notes map[string]string) (*PaymentOrder, error)
	FetchOrder(ctx context.Context, orderID string) (*PaymentOrder, error)
	VerifySignature(orderID, paymentID, signature string) error
	KeyID() string
}

// PolicyService defines route policy operations
type PolicyService interface {
	AddPolicy(subject, resource, action string) error
	RemovePolicy(subject, resource, action string) error
	CheckPermission(subject, resource, action string) (bool, error)
	GetPolicies() ([][]string, error)
	SeedDefaults(defaults [][]string) (bool, error)
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}
