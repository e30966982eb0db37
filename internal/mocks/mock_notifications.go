package mocks

import (
	"context"
	"sync"

	"github.com/hardik-python-lr/our-gate-backend/domain"
)

// MockSMSService implements domain.SMSService and records every message.
type MockSMSService struct {
	SendSMSFunc func(ctx context.Context, to, message string) error

	mu   sync.Mutex
	Sent []SentSMS
}

type SentSMS struct {
	To      string
	Message string
}

var _ domain.SMSService = (*MockSMSService)(nil)

func NewMockSMSService() *MockSMSService {
	return &MockSMSService{}
}

func (m *MockSMSService) SendSMS(ctx context.Context, to, message string) error {
	if m.SendSMSFunc != nil {
		if err := m.SendSMSFunc(ctx, to, message); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.Sent = append(m.Sent, SentSMS{To: to, Message: message})
	m.mu.Unlock()
	return nil
}

// Last returns the most recent message, or the zero value.
func (m *MockSMSService) Last() SentSMS {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return SentSMS{}
	}
	return m.Sent[len(m.Sent)-1]
}

// Push is one recorded push or notification.
type Push struct {
	Token  string
	UserID uint
	Title  string
	Body   string
}

// MockPushSender implements domain.PushSender.
type MockPushSender struct {
	SendFunc func(ctx context.Context, token, title, body string) error

	mu   sync.Mutex
	Sent []Push
}

var _ domain.PushSender = (*MockPushSender)(nil)

func NewMockPushSender() *MockPushSender {
	return &MockPushSender{}
}

func (m *MockPushSender) Send(ctx context.Context, token, title, body string) error {
	if m.SendFunc != nil {
		if err := m.SendFunc(ctx, token, title, body); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.Sent = append(m.Sent, Push{Token: token, Title: title, Body: body})
	m.mu.Unlock()
	return nil
}

// MockNotifier implements domain.Notifier and records notifications per user.
type MockNotifier struct {
	mu   sync.Mutex
	Sent []Push
}

var _ domain.Notifier = (*MockNotifier)(nil)

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) Notify(ctx context.Context, userID uint, title, body string) {
	m.mu.Lock()
	m.Sent = append(m.Sent, Push{UserID: userID, Title: title, Body: body})
	m.mu.Unlock()
}

// For returns the bodies sent to userID in order.
func (m *MockNotifier) For(userID uint) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, p := range m.Sent {
		if p.UserID == userID {
			out = append(out, p.Body)
		}
	}
	return out
}

// Count returns the number of notifications sent.
func (m *MockNotifier) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}

// MockAuditLogger implements domain.AuditLogger and keeps events in memory.
type MockAuditLogger struct {
	mu     sync.Mutex
	Events []*domain.AuditEvent
}

var _ domain.AuditLogger = (*MockAuditLogger)(nil)

func NewMockAuditLogger() *MockAuditLogger {
	return &MockAuditLogger{}
}

func (m *MockAuditLogger) LogEvent(ctx context.Context, event *domain.AuditEvent) {
	m.mu.Lock()
	m.Events = append(m.Events, event)
	m.mu.Unlock()
}

// Types returns the recorded event types in order.
func (m *MockAuditLogger) Types() []domain.AuditEventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.AuditEventType, len(m.Events))
	for i, e := range m.Events {
		out[i] = e.EventType
	}
	return out
}
