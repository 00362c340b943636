package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/domain"
	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/events"
	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/repository"
	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/telemetry"
)

// CheckoutService converts a user's cart into a committed order
type CheckoutService interface {
	ProcessCheckout(ctx context.Context, userID int64, input CheckoutInput) (*CheckoutResult, error)
	ListOrders(ctx context.Context, userID int64) ([]OrderLine, error)
}

// CheckoutLine selects one cart line for purchase. CardItemID must match
// the item stored on the line; it guards against a stale client cart.
type CheckoutLine struct {
	CartLineID int64 `validate:"gt=0"`
	CardItemID int64 `validate:"gt=0"`
}

// FormDetail carries the delivery form for one cart line, keyed by
// CartLineID so details and lines cannot pair up by accident of ordering.
type FormDetail struct {
	CartLineID     int64  `validate:"gt=0"`
	RecipientName  string `validate:"required"`
	EventName      string `validate:"required"`
	Address        string `validate:"required"`
	DecorationName string
	DeliveryDate   string `validate:"required"`
	DeliveryTime   string `validate:"required"`
}

// CheckoutInput is the full checkout request. DeclaredTotalCents is what
// the client believes the order costs; the server recomputes the total
// from stored rates and rejects on mismatch.
type CheckoutInput struct {
	Lines              []CheckoutLine
	Details            []FormDetail
	DeclaredTotalCents int64
}

// CheckoutResult reports the committed order.
type CheckoutResult struct {
	CheckoutGroupID int64
	TotalCents      int64
	Lines           []CheckoutResultLine
}

type CheckoutResultLine struct {
	OrderLineID int64
	CardItemID  int64
	Quantity    int32
	AmountCents int64
}

// OrderLine is one committed purchase in the user's order history.
type OrderLine struct {
	ID              int64
	CheckoutGroupID int64
	CardItemID      int64
	ItemTitle       string
	Quantity        int32
	AmountCents     int64
	CreatedAt       time.Time
}

type checkoutService struct {
	repo      repository.Store
	metrics   *telemetry.BusinessMetrics
	publisher events.Publisher
	logger    zerolog.Logger
}

// NewCheckoutService creates a new CheckoutService instance
func NewCheckoutService(repo repository.Store, metrics *telemetry.BusinessMetrics, publisher events.Publisher, logger zerolog.Logger) (CheckoutService, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}

	return &checkoutService{
		repo:      repo,
		metrics:   metrics,
		publisher: publisher,
		logger:    logger,
	}, nil
}

// ProcessCheckout runs the whole checkout as one transaction. Either every
// selected cart line becomes an order line with its delivery detail and
// leaves the cart, or nothing changes.
func (s *checkoutService) ProcessCheckout(ctx context.Context, userID int64, input CheckoutInput) (*CheckoutResult, error) {
	if s.metrics != nil {
		s.metrics.CheckoutStarted.WithLabelValues().Inc()
	}

	result, err := s.process(ctx, userID, input)
	if err != nil {
		if s.metrics != nil {
			s.metrics.CheckoutFailed.WithLabelValues(domain.ErrorCode(err)).Inc()
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.CheckoutCompleted.WithLabelValues().Inc()
		s.metrics.OrderValue.WithLabelValues().Observe(float64(result.TotalCents))
		s.metrics.OrderLineCount.WithLabelValues().Observe(float64(len(result.Lines)))
	}

	// The order is already committed. A failed publish is logged, never
	// surfaced to the buyer.
	if err := s.publisher.PublishOrderCreated(ctx, events.OrderCreated{
		CheckoutGroupID: result.CheckoutGroupID,
		UserID:          userID,
		TotalCents:      result.TotalCents,
		LineCount:       len(result.Lines),
		CreatedAt:       time.Now(),
	}); err != nil {
		s.logger.Warn().Err(err).
			Int64("checkout_group_id", result.CheckoutGroupID).
			Msg("failed to publish order.created event")
	}

	return result, nil
}

// ListOrders returns the user's committed order lines, newest first.
func (s *checkoutService) ListOrders(ctx context.Context, userID int64) ([]OrderLine, error) {
	rows, err := s.repo.ListOrderLinesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order lines: %w", err)
	}

	out := make([]OrderLine, 0, len(rows))
	for _, row := range rows {
		line := OrderLine{
			ID:              row.ID,
			CheckoutGroupID: row.CheckoutGroupID,
			CardItemID:      row.CardItemID,
			Quantity:        row.Quantity,
			AmountCents:     row.TotalAmountCents,
			CreatedAt:       row.CreatedAt,
		}
		item, err := s.repo.GetCardItemByID(ctx, row.CardItemID)
		if err != nil {
			return nil, fmt.Errorf("failed to get card item %d: %w", row.CardItemID, err)
		}
		line.ItemTitle = item.Title
		out = append(out, line)
	}
	return out, nil
}

func (s *checkoutService) process(ctx context.Context, userID int64, input CheckoutInput) (*CheckoutResult, error) {
	const op = "checkout.process"

	details, err := pairDetails(input)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	q := tx.Queries()

	group, err := q.CreateCheckoutGroup(ctx, repository.CreateCheckoutGroupParams{
		UserID: userID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout group: %w", err)
	}

	result := &CheckoutResult{
		CheckoutGroupID: group.ID,
		Lines:           make([]CheckoutResultLine, 0, len(input.Lines)),
	}

	for _, line := range input.Lines {
		cartLine, err := q.GetCartLineByID(ctx, line.CartLineID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, domain.NotFound(op, "cart line", strconv.FormatInt(line.CartLineID, 10))
			}
			return nil, fmt.Errorf("failed to get cart line %d: %w", line.CartLineID, err)
		}
		if cartLine.UserID != userID {
			return nil, domain.Forbidden(op, "Cart line belongs to another user")
		}
		if cartLine.CardItemID != line.CardItemID {
			return nil, domain.Invalid(op,
				fmt.Sprintf("Cart line %d does not contain item %d", line.CartLineID, line.CardItemID))
		}

		item, err := q.GetCardItemByID(ctx, cartLine.CardItemID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, domain.NotFound(op, "card item", strconv.FormatInt(cartLine.CardItemID, 10))
			}
			return nil, fmt.Errorf("failed to get card item %d: %w", cartLine.CardItemID, err)
		}

		// Price from stored rate and stored quantity. Client-sent amounts
		// are never trusted.
		lineAmount := item.RateCents * int64(cartLine.Quantity)

		detail := details[line.CartLineID]
		if _, err := q.CreateCheckoutLineDetail(ctx, repository.CreateCheckoutLineDetailParams{
			CheckoutGroupID: group.ID,
			CardItemID:      cartLine.CardItemID,
			Quantity:        cartLine.Quantity,
			RecipientName:   detail.RecipientName,
			EventName:       detail.EventName,
			Address:         detail.Address,
			DecorationName:  detail.DecorationName,
			DeliveryDate:    detail.DeliveryDate,
			DeliveryTime:    detail.DeliveryTime,
		}); err != nil {
			return nil, fmt.Errorf("failed to create checkout line detail: %w", err)
		}

		orderLine, err := q.CreateOrderLine(ctx, repository.CreateOrderLineParams{
			CheckoutGroupID:  group.ID,
			UserID:           userID,
			CardItemID:       cartLine.CardItemID,
			Quantity:         cartLine.Quantity,
			TotalAmountCents: lineAmount,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create order line: %w", err)
		}

		// The ownership guard in the delete catches a concurrent checkout
		// of the same line: zero rows means someone got here first.
		count, err := q.DeleteCartLineOwned(ctx, repository.DeleteCartLineOwnedParams{
			ID:     line.CartLineID,
			UserID: userID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to delete cart line %d: %w", line.CartLineID, err)
		}
		if count == 0 {
			return nil, domain.NotFound(op, "cart line", strconv.FormatInt(line.CartLineID, 10))
		}

		result.TotalCents += lineAmount
		result.Lines = append(result.Lines, CheckoutResultLine{
			OrderLineID: orderLine.ID,
			CardItemID:  orderLine.CardItemID,
			Quantity:    orderLine.Quantity,
			AmountCents: orderLine.TotalAmountCents,
		})
	}

	if input.DeclaredTotalCents != result.TotalCents {
		return nil, domain.Conflict(op,
			fmt.Sprintf("Cart total changed: expected %d, got %d. Refresh your cart and try again.",
				input.DeclaredTotalCents, result.TotalCents))
	}

	if err := q.UpdateCheckoutGroupTotal(ctx, repository.UpdateCheckoutGroupTotalParams{
		ID:               group.ID,
		TotalAmountCents: result.TotalCents,
	}); err != nil {
		return nil, fmt.Errorf("failed to update checkout group total: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit checkout: %w", err)
	}

	return result, nil
}

// pairDetails validates the request shape before any store access: at
// least one line, exactly one detail per selected line, no strays.
func pairDetails(input CheckoutInput) (map[int64]FormDetail, error) {
	const op = "checkout.process"

	if len(input.Lines) == 0 {
		return nil, domain.Invalid(op, "Checkout requires at least one cart line")
	}
	if input.DeclaredTotalCents < 0 {
		return nil, domain.Invalid(op, "Total must not be negative")
	}

	for _, line := range input.Lines {
		if err := validateStruct(line, op); err != nil {
			return nil, err
		}
	}

	details := make(map[int64]FormDetail, len(input.Details))
	for _, d := range input.Details {
		if err := validateStruct(d, op); err != nil {
			return nil, err
		}
		if _, dup := details[d.CartLineID]; dup {
			return nil, domain.Invalid(op,
				fmt.Sprintf("Duplicate delivery details for cart line %d", d.CartLineID))
		}
		details[d.CartLineID] = d
	}

	seen := make(map[int64]bool, len(input.Lines))
	for _, line := range input.Lines {
		if seen[line.CartLineID] {
			return nil, domain.Invalid(op,
				fmt.Sprintf("Cart line %d selected more than once", line.CartLineID))
		}
		seen[line.CartLineID] = true

		if _, ok := details[line.CartLineID]; !ok {
			return nil, domain.Invalid(op,
				fmt.Sprintf("Missing delivery details for cart line %d", line.CartLineID))
		}
	}
	for id := range details {
		if !seen[id] {
			return nil, domain.Invalid(op,
				fmt.Sprintf("Delivery details reference unknown cart line %d", id))
		}
	}

	return details, nil
}
