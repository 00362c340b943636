package repository

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	ImageUrl     pgtype.Text
	CreatedAt    time.Time
}

type Session struct {
	ID        int64
	UserID    int64
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

type Card struct {
	ID        int64
	Title     string
	Para      string
	Image     string
	CreatedAt time.Time
}

type CardItem struct {
	ID        int64
	CardID    int64
	Title     string
	RateCents int64
	CreatedAt time.Time
}

type CartLine struct {
	ID         int64
	UserID     int64
	CardItemID int64
	Quantity   int32
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type CheckoutGroup struct {
	ID               int64
	UserID           int64
	TotalAmountCents int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type CheckoutLineDetail struct {
	ID              int64
	CheckoutGroupID int64
	CardItemID      int64
	Quantity        int32
	RecipientName   string
	EventName       string
	Address         string
	DecorationName  string
	DeliveryDate    string
	DeliveryTime    string
	CreatedAt       time.Time
}

type OrderLine struct {
	ID               int64
	CheckoutGroupID  int64
	UserID           int64
	CardItemID       int64
	Quantity         int32
	TotalAmountCents int64
	CreatedAt        time.Time
}

type Review struct {
	ID         int64
	CardItemID int64
	UserID     int64
	Rating     int32
	Comment    pgtype.Text
	CreatedAt  time.Time
}

type Payment struct {
	ID                int64
	UserID            int64
	ProviderPaymentID string
	AmountCents       int64
	Status            string
	CreatedAt         time.Time
}
