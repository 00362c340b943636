package service

import (
	"context"
	"testing"

	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/domain"
)

func TestCreateCard(t *testing.T) {
	store := newFakeStore()
	svc, err := NewCatalogService(store)
	if err != nil {
		t.Fatalf("new catalog service: %v", err)
	}

	card, err := svc.CreateCard(context.Background(), CreateCardInput{
		Title: "Chocolate Truffle",
		Para:  "Rich dark chocolate layers",
		Image: "https://cdn.example.com/truffle.jpg",
		Items: []CreateCardItemInput{
			{Title: "500g", RateCents: 900},
			{Title: "1kg", RateCents: 1700},
		},
	})
	if err != nil {
		t.Fatalf("CreateCard() error = %v", err)
	}

	if len(card.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(card.Items))
	}
	if len(store.cards) != 1 || len(store.cardItems) != 2 {
		t.Errorf("stored cards = %d items = %d, want 1 and 2", len(store.cards), len(store.cardItems))
	}
}

func TestCreateCard_RequiresItems(t *testing.T) {
	svc, _ := NewCatalogService(newFakeStore())

	_, err := svc.CreateCard(context.Background(), CreateCardInput{
		Title: "Bare",
		Para:  "p",
		Image: "i",
	})
	if !domain.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetCard(t *testing.T) {
	store := newFakeStore()
	svc, _ := NewCatalogService(store)
	ctx := context.Background()

	created, err := svc.CreateCard(ctx, CreateCardInput{
		Title: "Pineapple",
		Para:  "p",
		Image: "i",
		Items: []CreateCardItemInput{{Title: "1kg", RateCents: 1100}},
	})
	if err != nil {
		t.Fatalf("CreateCard() error = %v", err)
	}

	got, err := svc.GetCard(ctx, created.Card.ID)
	if err != nil {
		t.Fatalf("GetCard() error = %v", err)
	}
	if got.Card.Title != "Pineapple" || len(got.Items) != 1 {
		t.Errorf("got = %+v", got)
	}

	if _, err := svc.GetCard(ctx, 999); !domain.IsCode(err, domain.ENOTFOUND) {
		t.Errorf("error code = %q, want %q", domain.ErrorCode(err), domain.ENOTFOUND)
	}
}

func TestListCards(t *testing.T) {
	store := newFakeStore()
	svc, _ := NewCatalogService(store)
	ctx := context.Background()

	for _, title := range []string{"A", "B", "C"} {
		if _, err := svc.CreateCard(ctx, CreateCardInput{
			Title: title, Para: "p", Image: "i",
			Items: []CreateCardItemInput{{Title: "1kg", RateCents: 1000}},
		}); err != nil {
			t.Fatalf("CreateCard(%s) error = %v", title, err)
		}
	}

	cards, err := svc.ListCards(ctx)
	if err != nil {
		t.Fatalf("ListCards() error = %v", err)
	}
	if len(cards) != 3 {
		t.Fatalf("len(cards) = %d, want 3", len(cards))
	}
}
