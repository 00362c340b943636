package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/domain"
	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/repository"
)

// CatalogService provides business logic for the cake catalog
type CatalogService interface {
	ListCards(ctx context.Context) ([]CardWithItems, error)
	GetCard(ctx context.Context, id int64) (*CardWithItems, error)
	CreateCard(ctx context.Context, input CreateCardInput) (*CardWithItems, error)
}

// Card represents a catalog category view model
type Card struct {
	ID        int64
	Title     string
	Para      string
	Image     string
	CreatedAt time.Time
}

// CardItem is an orderable variant with its price in cents
type CardItem struct {
	ID        int64
	CardID    int64
	Title     string
	RateCents int64
}

// CardWithItems pairs a card with its orderable variants
type CardWithItems struct {
	Card  Card
	Items []CardItem
}

// CreateCardInput carries a new card and its variants
type CreateCardInput struct {
	Title string                `validate:"required"`
	Para  string                `validate:"required"`
	Image string                `validate:"required"`
	Items []CreateCardItemInput `validate:"required,min=1,dive"`
}

type CreateCardItemInput struct {
	Title     string `validate:"required"`
	RateCents int64  `validate:"gt=0"`
}

type catalogService struct {
	repo repository.Store
}

// NewCatalogService creates a new CatalogService instance
func NewCatalogService(repo repository.Store) (CatalogService, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	return &catalogService{repo: repo}, nil
}

// ListCards returns every card with its variants.
func (s *catalogService) ListCards(ctx context.Context) ([]CardWithItems, error) {
	rows, err := s.repo.ListCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	cards := make([]CardWithItems, 0, len(rows))
	for _, row := range rows {
		items, err := s.repo.ListCardItemsByCard(ctx, row.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list items for card %d: %w", row.ID, err)
		}
		cards = append(cards, toCardWithItems(row, items))
	}
	return cards, nil
}

// GetCard returns one card with its variants, or ENOTFOUND.
func (s *catalogService) GetCard(ctx context.Context, id int64) (*CardWithItems, error) {
	const op = "catalog.get_card"

	row, err := s.repo.GetCardByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound(op, "card", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	items, err := s.repo.ListCardItemsByCard(ctx, row.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items for card %d: %w", row.ID, err)
	}

	card := toCardWithItems(row, items)
	return &card, nil
}

// CreateCard inserts a card and all of its variants in one transaction.
func (s *catalogService) CreateCard(ctx context.Context, input CreateCardInput) (*CardWithItems, error) {
	const op = "catalog.create_card"

	if err := validateStruct(input, op); err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	q := tx.Queries()

	cardRow, err := q.CreateCard(ctx, repository.CreateCardParams{
		Title: input.Title,
		Para:  input.Para,
		Image: input.Image,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	items := make([]repository.CardItem, 0, len(input.Items))
	for _, it := range input.Items {
		itemRow, err := q.CreateCardItem(ctx, repository.CreateCardItemParams{
			CardID:    cardRow.ID,
			Title:     it.Title,
			RateCents: it.RateCents,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create card item: %w", err)
		}
		items = append(items, itemRow)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	card := toCardWithItems(cardRow, items)
	return &card, nil
}

func toCardWithItems(row repository.Card, itemRows []repository.CardItem) CardWithItems {
	items := make([]CardItem, 0, len(itemRows))
	for _, it := range itemRows {
		items = append(items, CardItem{
			ID:        it.ID,
			CardID:    it.CardID,
			Title:     it.Title,
			RateCents: it.RateCents,
		})
	}
	return CardWithItems{
		Card: Card{
			ID:        row.ID,
			Title:     row.Title,
			Para:      row.Para,
			Image:     row.Image,
			CreatedAt: row.CreatedAt,
		},
		Items: items,
	}
}
