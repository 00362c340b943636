package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/domain"
	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/repository"
)

// CartService provides business logic for shopping cart operations
type CartService interface {
	AddLine(ctx context.Context, userID int64, input AddLineInput) (*CartLine, error)
	ListLines(ctx context.Context, userID int64) (*CartSummary, error)
	UpdateLineQuantity(ctx context.Context, userID, lineID int64, quantity int32) (*CartLine, error)
	RemoveLine(ctx context.Context, userID, lineID int64) error
}

// CartLine is a cart line view model with item details and a server-priced subtotal
type CartLine struct {
	ID            int64
	CardItemID    int64
	ItemTitle     string
	RateCents     int64
	Quantity      int32
	SubtotalCents int64
}

// CartSummary aggregates the cart with calculated totals
type CartSummary struct {
	Lines      []CartLine
	TotalCents int64
	ItemCount  int32
}

// AddLineInput carries a new cart line request
type AddLineInput struct {
	CardItemID int64 `validate:"gt=0"`
	Quantity   int32 `validate:"gt=0"`
}

type cartService struct {
	repo repository.Querier
}

// NewCartService creates a new CartService instance
func NewCartService(repo repository.Querier) (CartService, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	return &cartService{repo: repo}, nil
}

// AddLine puts a catalog item into the user's cart.
// The referenced item must exist, otherwise ENOTFOUND.
func (s *cartService) AddLine(ctx context.Context, userID int64, input AddLineInput) (*CartLine, error) {
	const op = "cart.add"

	if err := validateStruct(input, op); err != nil {
		return nil, err
	}

	item, err := s.repo.GetCardItemByID(ctx, input.CardItemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound(op, "card item", strconv.FormatInt(input.CardItemID, 10))
		}
		return nil, fmt.Errorf("failed to get card item: %w", err)
	}

	row, err := s.repo.CreateCartLine(ctx, repository.CreateCartLineParams{
		UserID:     userID,
		CardItemID: input.CardItemID,
		Quantity:   input.Quantity,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cart line: %w", err)
	}

	return &CartLine{
		ID:            row.ID,
		CardItemID:    row.CardItemID,
		ItemTitle:     item.Title,
		RateCents:     item.RateCents,
		Quantity:      row.Quantity,
		SubtotalCents: item.RateCents * int64(row.Quantity),
	}, nil
}

// ListLines returns the user's cart with per-line and total prices
// computed from stored rates.
func (s *cartService) ListLines(ctx context.Context, userID int64) (*CartSummary, error) {
	rows, err := s.repo.ListCartLinesWithItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart lines: %w", err)
	}

	summary := &CartSummary{Lines: make([]CartLine, 0, len(rows))}
	for _, row := range rows {
		subtotal := row.ItemRateCents * int64(row.Quantity)
		summary.Lines = append(summary.Lines, CartLine{
			ID:            row.ID,
			CardItemID:    row.CardItemID,
			ItemTitle:     row.ItemTitle,
			RateCents:     row.ItemRateCents,
			Quantity:      row.Quantity,
			SubtotalCents: subtotal,
		})
		summary.TotalCents += subtotal
		summary.ItemCount += row.Quantity
	}
	return summary, nil
}

// UpdateLineQuantity changes the quantity on a line the user owns.
// An absent line returns ENOTFOUND; a line owned by another user
// returns EFORBIDDEN.
func (s *cartService) UpdateLineQuantity(ctx context.Context, userID, lineID int64, quantity int32) (*CartLine, error) {
	const op = "cart.update"

	if quantity <= 0 {
		return nil, domain.NewValidationError(op, "quantity", "must be greater than 0")
	}

	if err := s.checkLineOwner(ctx, op, userID, lineID); err != nil {
		return nil, err
	}

	row, err := s.repo.UpdateCartLineQuantity(ctx, repository.UpdateCartLineQuantityParams{
		ID:       lineID,
		UserID:   userID,
		Quantity: quantity,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound(op, "cart line", strconv.FormatInt(lineID, 10))
		}
		return nil, fmt.Errorf("failed to update cart line: %w", err)
	}

	item, err := s.repo.GetCardItemByID(ctx, row.CardItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get card item: %w", err)
	}

	return &CartLine{
		ID:            row.ID,
		CardItemID:    row.CardItemID,
		ItemTitle:     item.Title,
		RateCents:     item.RateCents,
		Quantity:      row.Quantity,
		SubtotalCents: item.RateCents * int64(row.Quantity),
	}, nil
}

// RemoveLine deletes a line the user owns. An absent line returns
// ENOTFOUND; a line owned by another user returns EFORBIDDEN.
func (s *cartService) RemoveLine(ctx context.Context, userID, lineID int64) error {
	const op = "cart.remove"

	if err := s.checkLineOwner(ctx, op, userID, lineID); err != nil {
		return err
	}

	count, err := s.repo.DeleteCartLineOwned(ctx, repository.DeleteCartLineOwnedParams{
		ID:     lineID,
		UserID: userID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete cart line: %w", err)
	}
	if count == 0 {
		// Deleted concurrently between the owner check and here.
		return domain.NotFound(op, "cart line", strconv.FormatInt(lineID, 10))
	}
	return nil
}

func (s *cartService) checkLineOwner(ctx context.Context, op string, userID, lineID int64) error {
	line, err := s.repo.GetCartLineByID(ctx, lineID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NotFound(op, "cart line", strconv.FormatInt(lineID, 10))
		}
		return fmt.Errorf("failed to get cart line: %w", err)
	}
	if line.UserID != userID {
		return domain.Forbidden(op, "Cart item does not belong to you")
	}
	return nil
}
