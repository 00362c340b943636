package service

import (
	"context"
	"testing"

	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/domain"
	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/repository"
)

func newReviewFixture(t *testing.T) (ReviewService, *fakeStore, int64, repository.Card, repository.CardItem) {
	t.Helper()
	ctx := context.Background()
	store := newFakeStore()

	user, _ := store.CreateUser(ctx, repository.CreateUserParams{
		Name: "Asha", Email: "asha@example.com", PasswordHash: "x",
	})
	card, _ := store.CreateCard(ctx, repository.CreateCardParams{Title: "Red Velvet", Para: "p", Image: "i"})
	item, _ := store.CreateCardItem(ctx, repository.CreateCardItemParams{CardID: card.ID, Title: "1kg", RateCents: 2000})

	svc, err := NewReviewService(store, nil)
	if err != nil {
		t.Fatalf("new review service: %v", err)
	}
	return svc, store, user.ID, card, item
}

func TestAddReview(t *testing.T) {
	svc, _, userID, _, item := newReviewFixture(t)

	review, err := svc.AddReview(context.Background(), userID, AddReviewInput{
		CardItemID: item.ID,
		Rating:     5,
		Comment:    "Perfect for the party",
	})
	if err != nil {
		t.Fatalf("AddReview() error = %v", err)
	}

	if review.AuthorName != "Asha" {
		t.Errorf("AuthorName = %q, want %q", review.AuthorName, "Asha")
	}
	if review.ItemTitle != "1kg" {
		t.Errorf("ItemTitle = %q, want %q", review.ItemTitle, "1kg")
	}
}

func TestAddReview_RatingBounds(t *testing.T) {
	svc, _, userID, _, item := newReviewFixture(t)

	for _, rating := range []int32{0, 6, -1} {
		_, err := svc.AddReview(context.Background(), userID, AddReviewInput{
			CardItemID: item.ID,
			Rating:     rating,
		})
		if !domain.IsValidationError(err) {
			t.Errorf("rating %d: expected validation error, got %v", rating, err)
		}
	}
}

func TestAddReview_UnknownItem(t *testing.T) {
	svc, _, userID, _, _ := newReviewFixture(t)

	_, err := svc.AddReview(context.Background(), userID, AddReviewInput{
		CardItemID: 999,
		Rating:     4,
	})
	if !domain.IsCode(err, domain.ENOTFOUND) {
		t.Fatalf("error code = %q, want %q", domain.ErrorCode(err), domain.ENOTFOUND)
	}
}

func TestListForCard(t *testing.T) {
	svc, _, userID, card, item := newReviewFixture(t)
	ctx := context.Background()

	if _, err := svc.AddReview(ctx, userID, AddReviewInput{CardItemID: item.ID, Rating: 4}); err != nil {
		t.Fatalf("AddReview() error = %v", err)
	}

	reviews, err := svc.ListForCard(ctx, card.ID)
	if err != nil {
		t.Fatalf("ListForCard() error = %v", err)
	}
	if len(reviews) != 1 {
		t.Fatalf("len(reviews) = %d, want 1", len(reviews))
	}

	if _, err := svc.ListForCard(ctx, 999); !domain.IsCode(err, domain.ENOTFOUND) {
		t.Errorf("unknown card: error code = %q, want %q", domain.ErrorCode(err), domain.ENOTFOUND)
	}
}
