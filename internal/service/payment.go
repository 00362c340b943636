package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/billing"
	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/domain"
	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/events"
	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/repository"
	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/telemetry"
)

// PaymentService opens charges with the payment provider and records
// completed payments
type PaymentService interface {
	CreateOrder(ctx context.Context, userID int64, amountCents int64) (*PaymentOrder, error)
	RecordPayment(ctx context.Context, userID int64, input RecordPaymentInput) (*Payment, error)
	ListPayments(ctx context.Context, userID int64) ([]Payment, error)
}

// PaymentOrder is an open provider charge awaiting confirmation.
type PaymentOrder struct {
	ProviderOrderID string
	ClientSecret    string
	AmountCents     int64
	Currency        string
}

// RecordPaymentInput carries a provider confirmation to persist.
type RecordPaymentInput struct {
	ProviderPaymentID string `validate:"required"`
	AmountCents       int64  `validate:"gt=0"`
}

// Payment is the stored payment view model
type Payment struct {
	ID                int64
	ProviderPaymentID string
	AmountCents       int64
	Status            string
	CreatedAt         time.Time
}

type paymentService struct {
	repo      repository.Querier
	provider  billing.Provider
	metrics   *telemetry.BusinessMetrics
	publisher events.Publisher
	logger    zerolog.Logger
}

// NewPaymentService creates a new PaymentService instance
func NewPaymentService(repo repository.Querier, provider billing.Provider, metrics *telemetry.BusinessMetrics, publisher events.Publisher, logger zerolog.Logger) (PaymentService, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if provider == nil {
		return nil, fmt.Errorf("billing provider is required")
	}
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}

	return &paymentService{
		repo:      repo,
		provider:  provider,
		metrics:   metrics,
		publisher: publisher,
		logger:    logger,
	}, nil
}

// CreateOrder opens a provider charge for the given amount.
// Provider failures surface as EPAYMENT.
func (s *paymentService) CreateOrder(ctx context.Context, userID int64, amountCents int64) (*PaymentOrder, error) {
	const op = "payment.create_order"

	if amountCents <= 0 {
		return nil, domain.Invalid(op, "Amount must be greater than 0")
	}

	if s.metrics != nil {
		s.metrics.PaymentAttempts.WithLabelValues().Inc()
	}

	intent, err := s.provider.CreatePaymentIntent(ctx, billing.CreatePaymentIntentParams{
		AmountCents: amountCents,
		Currency:    "usd",
		UserID:      userID,
		Description: "Cake shop order",
	})
	if err != nil {
		if s.metrics != nil {
			s.metrics.PaymentFailed.WithLabelValues().Inc()
		}
		return nil, domain.Errorf(domain.EPAYMENT, op, "Payment provider rejected the charge")
	}

	return &PaymentOrder{
		ProviderOrderID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		AmountCents:     intent.AmountCents,
		Currency:        intent.Currency,
	}, nil
}

// RecordPayment stores a confirmed provider payment against the user.
func (s *paymentService) RecordPayment(ctx context.Context, userID int64, input RecordPaymentInput) (*Payment, error) {
	const op = "payment.record"

	if err := validateStruct(input, op); err != nil {
		return nil, err
	}

	row, err := s.repo.CreatePayment(ctx, repository.CreatePaymentParams{
		UserID:            userID,
		ProviderPaymentID: input.ProviderPaymentID,
		AmountCents:       input.AmountCents,
		Status:            "recorded",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	if s.metrics != nil {
		s.metrics.PaymentSucceeded.WithLabelValues().Inc()
	}

	if err := s.publisher.PublishPaymentRecorded(ctx, events.PaymentRecorded{
		PaymentID:         row.ID,
		UserID:            userID,
		ProviderPaymentID: row.ProviderPaymentID,
		AmountCents:       row.AmountCents,
		CreatedAt:         row.CreatedAt,
	}); err != nil {
		s.logger.Warn().Err(err).
			Int64("payment_id", row.ID).
			Msg("failed to publish payment.recorded event")
	}

	return toPayment(row), nil
}

// ListPayments returns the user's stored payments, newest first.
func (s *paymentService) ListPayments(ctx context.Context, userID int64) ([]Payment, error) {
	rows, err := s.repo.ListPaymentsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	payments := make([]Payment, 0, len(rows))
	for _, row := range rows {
		payments = append(payments, *toPayment(row))
	}
	return payments, nil
}

func toPayment(row repository.Payment) *Payment {
	return &Payment{
		ID:                row.ID,
		ProviderPaymentID: row.ProviderPaymentID,
		AmountCents:       row.AmountCents,
		Status:            row.Status,
		CreatedAt:         row.CreatedAt,
	}
}
