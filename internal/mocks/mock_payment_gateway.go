package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/hardik-python-lr/our-gate-backend/domain"
)

// MockPaymentGateway implements domain.PaymentGateway with in-memory orders.
// Signatures are valid when they equal "sig:" + order id + "|" + payment id.
type MockPaymentGateway struct {
	CreateOrderFunc func(ctx context.Context, amountMinor int64, currency string, notes map[string]string) (*domain.PaymentOrder, error)
	FetchOrderFunc  func(ctx context.Context, orderID string) (*domain.PaymentOrder, error)

	mu     sync.Mutex
	seq    int
	Orders map[string]*domain.PaymentOrder
}

var _ domain.PaymentGateway = (*MockPaymentGateway)(nil)

func NewMockPaymentGateway() *MockPaymentGateway {
	return &MockPaymentGateway{Orders: map[string]*domain.PaymentOrder{}}
}

// MockSignature is the signature the mock accepts for an order and payment.
func MockSignature(orderID, paymentID string) string {
	return "sig:" + orderID + "|" + paymentID
}

func (m *MockPaymentGateway) CreateOrder(ctx context.Context, amountMinor int64, currency string, notes map[string]string) (*domain.PaymentOrder, error) {
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(ctx, amountMinor, currency, notes)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	order := &domain.PaymentOrder{
		ID:       fmt.Sprintf("order_%d", m.seq),
		Amount:   amountMinor,
		Currency: currency,
		Status:   "created",
		Notes:    notes,
	}
	m.Orders[order.ID] = order
	return order, nil
}

func (m *MockPaymentGateway) FetchOrder(ctx context.Context, orderID string) (*domain.PaymentOrder, error) {
	if m.FetchOrderFunc != nil {
		return m.FetchOrderFunc(ctx, orderID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.Orders[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func (m *MockPaymentGateway) VerifySignature(orderID, paymentID, signature string) error {
	if signature != MockSignature(orderID, paymentID) {
		return domain.ErrBadSignature
	}
	return nil
}

func (m *MockPaymentGateway) KeyID() string {
	return "rzp_test_mock"
}
