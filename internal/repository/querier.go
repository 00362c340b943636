package repository

import "context"

// Querier is the query surface services program against. It is satisfied
// by *Queries whether bound to the pool or to an open transaction.
type Querier interface {
	// Users and sessions
	CreateUser(ctx context.Context, arg CreateUserParams) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByID(ctx context.Context, id int64) (User, error)
	CreateSession(ctx context.Context, arg CreateSessionParams) (Session, error)
	GetUserBySessionToken(ctx context.Context, token string) (User, error)
	DeleteSessionByToken(ctx context.Context, token string) error
	DeleteExpiredSessions(ctx context.Context) (int64, error)

	// Catalog
	CreateCard(ctx context.Context, arg CreateCardParams) (Card, error)
	ListCards(ctx context.Context) ([]Card, error)
	GetCardByID(ctx context.Context, id int64) (Card, error)
	CreateCardItem(ctx context.Context, arg CreateCardItemParams) (CardItem, error)
	ListCardItemsByCard(ctx context.Context, cardID int64) ([]CardItem, error)
	GetCardItemByID(ctx context.Context, id int64) (CardItem, error)

	// Cart
	CreateCartLine(ctx context.Context, arg CreateCartLineParams) (CartLine, error)
	GetCartLineByID(ctx context.Context, id int64) (CartLine, error)
	ListCartLinesWithItems(ctx context.Context, userID int64) ([]ListCartLinesWithItemsRow, error)
	UpdateCartLineQuantity(ctx context.Context, arg UpdateCartLineQuantityParams) (CartLine, error)
	DeleteCartLineOwned(ctx context.Context, arg DeleteCartLineOwnedParams) (int64, error)

	// Checkout
	CreateCheckoutGroup(ctx context.Context, arg CreateCheckoutGroupParams) (CheckoutGroup, error)
	UpdateCheckoutGroupTotal(ctx context.Context, arg UpdateCheckoutGroupTotalParams) error
	CreateCheckoutLineDetail(ctx context.Context, arg CreateCheckoutLineDetailParams) (CheckoutLineDetail, error)
	CreateOrderLine(ctx context.Context, arg CreateOrderLineParams) (OrderLine, error)
	ListOrderLinesByUser(ctx context.Context, userID int64) ([]OrderLine, error)

	// Reviews
	CreateReview(ctx context.Context, arg CreateReviewParams) (Review, error)
	ListReviewsByCard(ctx context.Context, cardID int64) ([]ListReviewsByCardRow, error)
	ListAllReviews(ctx context.Context) ([]ListReviewsByCardRow, error)

	// Payments
	CreatePayment(ctx context.Context, arg CreatePaymentParams) (Payment, error)
	ListPaymentsByUser(ctx context.Context, userID int64) ([]Payment, error)
}

var _ Querier = (*Queries)(nil)
