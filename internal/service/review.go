package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/domain"
	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/repository"
	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/telemetry"
)

// ReviewService provides business logic for item reviews
type ReviewService interface {
	AddReview(ctx context.Context, userID int64, input AddReviewInput) (*Review, error)
	ListForCard(ctx context.Context, cardID int64) ([]Review, error)
	ListAll(ctx context.Context) ([]Review, error)
}

// Review is the review view model with author and item names resolved
type Review struct {
	ID         int64
	CardItemID int64
	ItemTitle  string
	AuthorName string
	Rating     int32
	Comment    string
	CreatedAt  time.Time
}

// AddReviewInput carries a new review for a catalog item
type AddReviewInput struct {
	CardItemID int64  `validate:"gt=0"`
	Rating     int32  `validate:"gte=1,lte=5"`
	Comment    string `validate:"max=2000"`
}

type reviewService struct {
	repo    repository.Querier
	metrics *telemetry.BusinessMetrics
}

// NewReviewService creates a new ReviewService instance
func NewReviewService(repo repository.Querier, metrics *telemetry.BusinessMetrics) (ReviewService, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	return &reviewService{repo: repo, metrics: metrics}, nil
}

// AddReview stores a rating for an existing catalog item.
func (s *reviewService) AddReview(ctx context.Context, userID int64, input AddReviewInput) (*Review, error) {
	const op = "review.add"

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

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	comment := pgtype.Text{}
	if input.Comment != "" {
		comment = pgtype.Text{String: input.Comment, Valid: true}
	}

	row, err := s.repo.CreateReview(ctx, repository.CreateReviewParams{
		CardItemID: input.CardItemID,
		UserID:     userID,
		Rating:     input.Rating,
		Comment:    comment,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	if s.metrics != nil {
		s.metrics.ReviewsCreated.WithLabelValues(strconv.Itoa(int(input.Rating))).Inc()
	}

	return &Review{
		ID:         row.ID,
		CardItemID: row.CardItemID,
		ItemTitle:  item.Title,
		AuthorName: user.Name,
		Rating:     row.Rating,
		Comment:    input.Comment,
		CreatedAt:  row.CreatedAt,
	}, nil
}

// ListForCard returns reviews for every item under one card.
// The card must exist, otherwise ENOTFOUND.
func (s *reviewService) ListForCard(ctx context.Context, cardID int64) ([]Review, error) {
	const op = "review.list_for_card"

	if _, err := s.repo.GetCardByID(ctx, cardID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound(op, "card", strconv.FormatInt(cardID, 10))
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	rows, err := s.repo.ListReviewsByCard(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return toReviews(rows), nil
}

// ListAll returns every review across the catalog.
func (s *reviewService) ListAll(ctx context.Context) ([]Review, error) {
	rows, err := s.repo.ListAllReviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return toReviews(rows), nil
}

func toReviews(rows []repository.ListReviewsByCardRow) []Review {
	reviews := make([]Review, 0, len(rows))
	for _, row := range rows {
		r := Review{
			ID:         row.ID,
			CardItemID: row.CardItemID,
			ItemTitle:  row.ItemTitle,
			AuthorName: row.AuthorName,
			Rating:     row.Rating,
			CreatedAt:  row.CreatedAt,
		}
		if row.Comment.Valid {
			r.Comment = row.Comment.String
		}
		reviews = append(reviews, r)
	}
	return reviews
}
