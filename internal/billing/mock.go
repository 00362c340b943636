package billing

import (
	"context"
	"fmt"
	"sync"
)

// MockProvider is an in-memory Provider for tests and local development.
type MockProvider struct {
	mu      sync.Mutex
	nextID  int
	intents map[string]*PaymentIntent

	// CreateErr and GetErr force the next call to fail when set.
	CreateErr error
	GetErr    error
}

func NewMockProvider() *MockProvider {
	return &MockProvider{intents: make(map[string]*PaymentIntent)}
}

func (m *MockProvider) CreatePaymentIntent(ctx context.Context, params CreatePaymentIntentParams) (*PaymentIntent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateErr != nil {
		return nil, m.CreateErr
	}

	m.nextID++
	currency := params.Currency
	if currency == "" {
		currency = "usd"
	}
	pi := &PaymentIntent{
		ID:           fmt.Sprintf("pi_mock_%d", m.nextID),
		ClientSecret: fmt.Sprintf("pi_mock_%d_secret", m.nextID),
		AmountCents:  params.AmountCents,
		Currency:     currency,
		Status:       "requires_payment_method",
	}
	m.intents[pi.ID] = pi

	out := *pi
	return &out, nil
}

func (m *MockProvider) GetPaymentIntent(ctx context.Context, paymentIntentID string) (*PaymentIntent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetErr != nil {
		return nil, m.GetErr
	}

	pi, ok := m.intents[paymentIntentID]
	if !ok {
		return nil, fmt.Errorf("payment intent %s not found", paymentIntentID)
	}
	out := *pi
	return &out, nil
}

// SetStatus updates a stored intent's status, simulating confirmation.
func (m *MockProvider) SetStatus(paymentIntentID, status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if pi, ok := m.intents[paymentIntentID]; ok {
		pi.Status = status
	}
}
