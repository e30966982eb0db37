package domain

import (
	"context"
	"time"
)

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	// Authentication events
	OTPRequestedEvent AuditEventType = "OTP_REQUESTED"
	UserLoginEvent    AuditEventType = "USER_LOGIN"
	UserLogoutEvent   AuditEventType = "USER_LOGOUT"

	// Attendance events
	GuardCheckInEvent  AuditEventType = "GUARD_CHECK_IN"
	GuardCheckOutEvent AuditEventType = "GUARD_CHECK_OUT"

	// Booking events
	BookingCreatedEvent    AuditEventType = "BOOKING_CREATED"
	PaymentReconciledEvent AuditEventType = "PAYMENT_RECONCILED"
	PaymentAbandonedEvent  AuditEventType = "PAYMENT_ABANDONED"
	BookingStatusEvent     AuditEventType = "BOOKING_STATUS_CHANGED"

	// Membership events
	UserCreatedEvent          AuditEventType = "USER_CREATED"
	UserDeactivatedEvent      AuditEventType = "USER_DEACTIVATED"
	GuardLinkChangedEvent     AuditEventType = "GUARD_LINK_CHANGED"
	ResidentLinkChangedEvent  AuditEventType = "RESIDENT_LINK_CHANGED"
	CommitteeSeatChangedEvent AuditEventType = "COMMITTEE_SEAT_CHANGED"

	// Catalog events
	CatalogChangedEvent AuditEventType = "CATALOG_CHANGED"

	// Authorization events
	AccessDeniedEvent AuditEventType = "ACCESS_DENIED"
)

// AuditEvent represents a business event that occurred in the system
type AuditEvent struct {
	EventType AuditEventType         `json:"event_type"`
	UserID    uint                   `json:"user_id"`
	Phone     string                 `json:"phone,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	ErrorMsg  string                 `json:"error_msg,omitempty"`
	Success   bool                   `json:"success"`
}

// AuditLogger records audit events.
type AuditLogger interface {
	LogEvent(ctx context.Context, event *AuditEvent)
}

// NewAuditEvent creates a new audit event with common fields populated
func NewAuditEvent(eventType AuditEventType, userID uint) *AuditEvent {
	return &AuditEvent{
		EventType: eventType,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Metadata:  make(map[string]interface{}),
		Success:   true,
	}
}

// WithError sets error information on the audit event
func (e *AuditEvent) WithError(err error) *AuditEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

// WithPhone sets the phone field
func (e *AuditEvent) WithPhone(phone string) *AuditEvent {
	e.Phone = phone
	return e
}

// WithRequestID ties the event to the HTTP request that caused it.
func (e *AuditEvent) WithRequestID(id string) *AuditEvent {
	e.RequestID = id
	return e
}

// WithMetadata adds metadata to the event
func (e *AuditEvent) WithMetadata(key string, value interface{}) *AuditEvent {
	e.Metadata[key] = value
	return e
}
