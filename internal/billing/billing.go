package billing

import "context"

// Provider defines the interface for the payment service provider.
// Implementations can use Stripe, PayPal, Square, etc.
type Provider interface {
	// CreatePaymentIntent creates a payment intent for a one-time charge.
	// Returns the intent with a client secret for frontend confirmation.
	CreatePaymentIntent(ctx context.Context, params CreatePaymentIntentParams) (*PaymentIntent, error)

	// GetPaymentIntent retrieves an existing payment intent, used to
	// verify a payment before recording it.
	GetPaymentIntent(ctx context.Context, paymentIntentID string) (*PaymentIntent, error)
}

// CreatePaymentIntentParams carries the charge to open with the provider.
type CreatePaymentIntentParams struct {
	AmountCents int64
	Currency    string
	UserID      int64
	Description string
}

// PaymentIntent mirrors the provider's intent object.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	AmountCents  int64
	Currency     string
	Status       string
}
