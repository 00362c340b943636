package events

import (
	"context"
	"time"
)

// Subjects for published events.
const (
	SubjectOrderCreated    = "order.created"
	SubjectPaymentRecorded = "payment.recorded"
)

// OrderCreated is emitted after a checkout commits.
type OrderCreated struct {
	CheckoutGroupID int64     `json:"checkoutGroupId"`
	UserID          int64     `json:"userId"`
	TotalCents      int64     `json:"totalCents"`
	LineCount       int       `json:"lineCount"`
	CreatedAt       time.Time `json:"createdAt"`
}

// PaymentRecorded is emitted after a payment row is stored.
type PaymentRecorded struct {
	PaymentID         int64     `json:"paymentId"`
	UserID            int64     `json:"userId"`
	ProviderPaymentID string    `json:"providerPaymentId"`
	AmountCents       int64     `json:"amountCents"`
	CreatedAt         time.Time `json:"createdAt"`
}

// Publisher emits domain events for downstream consumers. Publishing is
// best-effort: callers log failures but never roll back committed work
// because an event could not be sent.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, event OrderCreated) error
	PublishPaymentRecorded(ctx context.Context, event PaymentRecorded) error
	Close() error
}
