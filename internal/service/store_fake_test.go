package service

import (
	"context"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/repository"
)

// fakeState holds all tables in memory and implements repository.Querier.
type fakeState struct {
	users          map[int64]repository.User
	sessions       map[int64]repository.Session
	cards          map[int64]repository.Card
	cardItems      map[int64]repository.CardItem
	cartLines      map[int64]repository.CartLine
	checkoutGroups map[int64]repository.CheckoutGroup
	lineDetails    map[int64]repository.CheckoutLineDetail
	orderLines     map[int64]repository.OrderLine
	reviews        map[int64]repository.Review
	payments       map[int64]repository.Payment
	nextID         int64
}

func newFakeState() *fakeState {
	return &fakeState{
		users:          make(map[int64]repository.User),
		sessions:       make(map[int64]repository.Session),
		cards:          make(map[int64]repository.Card),
		cardItems:      make(map[int64]repository.CardItem),
		cartLines:      make(map[int64]repository.CartLine),
		checkoutGroups: make(map[int64]repository.CheckoutGroup),
		lineDetails:    make(map[int64]repository.CheckoutLineDetail),
		orderLines:     make(map[int64]repository.OrderLine),
		reviews:        make(map[int64]repository.Review),
		payments:       make(map[int64]repository.Payment),
	}
}

func (s *fakeState) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *fakeState) clone() *fakeState {
	c := newFakeState()
	c.nextID = s.nextID
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.sessions {
		c.sessions[k] = v
	}
	for k, v := range s.cards {
		c.cards[k] = v
	}
	for k, v := range s.cardItems {
		c.cardItems[k] = v
	}
	for k, v := range s.cartLines {
		c.cartLines[k] = v
	}
	for k, v := range s.checkoutGroups {
		c.checkoutGroups[k] = v
	}
	for k, v := range s.lineDetails {
		c.lineDetails[k] = v
	}
	for k, v := range s.orderLines {
		c.orderLines[k] = v
	}
	for k, v := range s.reviews {
		c.reviews[k] = v
	}
	for k, v := range s.payments {
		c.payments[k] = v
	}
	return c
}

func (s *fakeState) copyFrom(o *fakeState) {
	s.users = o.users
	s.sessions = o.sessions
	s.cards = o.cards
	s.cardItems = o.cardItems
	s.cartLines = o.cartLines
	s.checkoutGroups = o.checkoutGroups
	s.lineDetails = o.lineDetails
	s.orderLines = o.orderLines
	s.reviews = o.reviews
	s.payments = o.payments
	s.nextID = o.nextID
}

// Users and sessions

func (s *fakeState) CreateUser(_ context.Context, arg repository.CreateUserParams) (repository.User, error) {
	u := repository.User{
		ID:           s.id(),
		Name:         arg.Name,
		Email:        arg.Email,
		PasswordHash: arg.PasswordHash,
		CreatedAt:    time.Now(),
	}
	if arg.ImageUrl != "" {
		u.ImageUrl.String = arg.ImageUrl
		u.ImageUrl.Valid = true
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *fakeState) GetUserByEmail(_ context.Context, email string) (repository.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return repository.User{}, pgx.ErrNoRows
}

func (s *fakeState) GetUserByID(_ context.Context, id int64) (repository.User, error) {
	u, ok := s.users[id]
	if !ok {
		return repository.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (s *fakeState) CreateSession(_ context.Context, arg repository.CreateSessionParams) (repository.Session, error) {
	sess := repository.Session{
		ID:        s.id(),
		UserID:    arg.UserID,
		Token:     arg.Token,
		ExpiresAt: arg.ExpiresAt,
		CreatedAt: time.Now(),
	}
	s.sessions[sess.ID] = sess
	return sess, nil
}

func (s *fakeState) GetUserBySessionToken(_ context.Context, token string) (repository.User, error) {
	for _, sess := range s.sessions {
		if sess.Token == token && sess.ExpiresAt.After(time.Now()) {
			return s.users[sess.UserID], nil
		}
	}
	return repository.User{}, pgx.ErrNoRows
}

func (s *fakeState) DeleteSessionByToken(_ context.Context, token string) error {
	for id, sess := range s.sessions {
		if sess.Token == token {
			delete(s.sessions, id)
		}
	}
	return nil
}

func (s *fakeState) DeleteExpiredSessions(_ context.Context) (int64, error) {
	var n int64
	for id, sess := range s.sessions {
		if !sess.ExpiresAt.After(time.Now()) {
			delete(s.sessions, id)
			n++
		}
	}
	return n, nil
}

// Catalog

func (s *fakeState) CreateCard(_ context.Context, arg repository.CreateCardParams) (repository.Card, error) {
	c := repository.Card{
		ID:        s.id(),
		Title:     arg.Title,
		Para:      arg.Para,
		Image:     arg.Image,
		CreatedAt: time.Now(),
	}
	s.cards[c.ID] = c
	return c, nil
}

func (s *fakeState) ListCards(_ context.Context) ([]repository.Card, error) {
	out := make([]repository.Card, 0, len(s.cards))
	for _, c := range s.cards {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeState) GetCardByID(_ context.Context, id int64) (repository.Card, error) {
	c, ok := s.cards[id]
	if !ok {
		return repository.Card{}, pgx.ErrNoRows
	}
	return c, nil
}

func (s *fakeState) CreateCardItem(_ context.Context, arg repository.CreateCardItemParams) (repository.CardItem, error) {
	ci := repository.CardItem{
		ID:        s.id(),
		CardID:    arg.CardID,
		Title:     arg.Title,
		RateCents: arg.RateCents,
		CreatedAt: time.Now(),
	}
	s.cardItems[ci.ID] = ci
	return ci, nil
}

func (s *fakeState) ListCardItemsByCard(_ context.Context, cardID int64) ([]repository.CardItem, error) {
	var out []repository.CardItem
	for _, ci := range s.cardItems {
		if ci.CardID == cardID {
			out = append(out, ci)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeState) GetCardItemByID(_ context.Context, id int64) (repository.CardItem, error) {
	ci, ok := s.cardItems[id]
	if !ok {
		return repository.CardItem{}, pgx.ErrNoRows
	}
	return ci, nil
}

// Cart

func (s *fakeState) CreateCartLine(_ context.Context, arg repository.CreateCartLineParams) (repository.CartLine, error) {
	now := time.Now()
	cl := repository.CartLine{
		ID:         s.id(),
		UserID:     arg.UserID,
		CardItemID: arg.CardItemID,
		Quantity:   arg.Quantity,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.cartLines[cl.ID] = cl
	return cl, nil
}

func (s *fakeState) GetCartLineByID(_ context.Context, id int64) (repository.CartLine, error) {
	cl, ok := s.cartLines[id]
	if !ok {
		return repository.CartLine{}, pgx.ErrNoRows
	}
	return cl, nil
}

func (s *fakeState) ListCartLinesWithItems(_ context.Context, userID int64) ([]repository.ListCartLinesWithItemsRow, error) {
	var out []repository.ListCartLinesWithItemsRow
	for _, cl := range s.cartLines {
		if cl.UserID != userID {
			continue
		}
		item := s.cardItems[cl.CardItemID]
		out = append(out, repository.ListCartLinesWithItemsRow{
			ID:            cl.ID,
			UserID:        cl.UserID,
			CardItemID:    cl.CardItemID,
			Quantity:      cl.Quantity,
			CreatedAt:     cl.CreatedAt,
			UpdatedAt:     cl.UpdatedAt,
			ItemTitle:     item.Title,
			ItemRateCents: item.RateCents,
			CardID:        item.CardID,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeState) UpdateCartLineQuantity(_ context.Context, arg repository.UpdateCartLineQuantityParams) (repository.CartLine, error) {
	cl, ok := s.cartLines[arg.ID]
	if !ok || cl.UserID != arg.UserID {
		return repository.CartLine{}, pgx.ErrNoRows
	}
	cl.Quantity = arg.Quantity
	cl.UpdatedAt = time.Now()
	s.cartLines[arg.ID] = cl
	return cl, nil
}

func (s *fakeState) DeleteCartLineOwned(_ context.Context, arg repository.DeleteCartLineOwnedParams) (int64, error) {
	cl, ok := s.cartLines[arg.ID]
	if !ok || cl.UserID != arg.UserID {
		return 0, nil
	}
	delete(s.cartLines, arg.ID)
	return 1, nil
}

// Checkout

func (s *fakeState) CreateCheckoutGroup(_ context.Context, arg repository.CreateCheckoutGroupParams) (repository.CheckoutGroup, error) {
	now := time.Now()
	g := repository.CheckoutGroup{
		ID:               s.id(),
		UserID:           arg.UserID,
		TotalAmountCents: arg.TotalAmountCents,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	s.checkoutGroups[g.ID] = g
	return g, nil
}

func (s *fakeState) UpdateCheckoutGroupTotal(_ context.Context, arg repository.UpdateCheckoutGroupTotalParams) error {
	g, ok := s.checkoutGroups[arg.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	g.TotalAmountCents = arg.TotalAmountCents
	g.UpdatedAt = time.Now()
	s.checkoutGroups[arg.ID] = g
	return nil
}

func (s *fakeState) CreateCheckoutLineDetail(_ context.Context, arg repository.CreateCheckoutLineDetailParams) (repository.CheckoutLineDetail, error) {
	d := repository.CheckoutLineDetail{
		ID:              s.id(),
		CheckoutGroupID: arg.CheckoutGroupID,
		CardItemID:      arg.CardItemID,
		Quantity:        arg.Quantity,
		RecipientName:   arg.RecipientName,
		EventName:       arg.EventName,
		Address:         arg.Address,
		DecorationName:  arg.DecorationName,
		DeliveryDate:    arg.DeliveryDate,
		DeliveryTime:    arg.DeliveryTime,
		CreatedAt:       time.Now(),
	}
	s.lineDetails[d.ID] = d
	return d, nil
}

func (s *fakeState) CreateOrderLine(_ context.Context, arg repository.CreateOrderLineParams) (repository.OrderLine, error) {
	ol := repository.OrderLine{
		ID:               s.id(),
		CheckoutGroupID:  arg.CheckoutGroupID,
		UserID:           arg.UserID,
		CardItemID:       arg.CardItemID,
		Quantity:         arg.Quantity,
		TotalAmountCents: arg.TotalAmountCents,
		CreatedAt:        time.Now(),
	}
	s.orderLines[ol.ID] = ol
	return ol, nil
}

func (s *fakeState) ListOrderLinesByUser(_ context.Context, userID int64) ([]repository.OrderLine, error) {
	var out []repository.OrderLine
	for _, ol := range s.orderLines {
		if ol.UserID == userID {
			out = append(out, ol)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// Reviews

func (s *fakeState) CreateReview(_ context.Context, arg repository.CreateReviewParams) (repository.Review, error) {
	r := repository.Review{
		ID:         s.id(),
		CardItemID: arg.CardItemID,
		UserID:     arg.UserID,
		Rating:     arg.Rating,
		Comment:    arg.Comment,
		CreatedAt:  time.Now(),
	}
	s.reviews[r.ID] = r
	return r, nil
}

func (s *fakeState) ListReviewsByCard(_ context.Context, cardID int64) ([]repository.ListReviewsByCardRow, error) {
	var out []repository.ListReviewsByCardRow
	for _, r := range s.reviews {
		item := s.cardItems[r.CardItemID]
		if item.CardID != cardID {
			continue
		}
		out = append(out, s.toReviewRow(r, item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *fakeState) ListAllReviews(_ context.Context) ([]repository.ListReviewsByCardRow, error) {
	var out []repository.ListReviewsByCardRow
	for _, r := range s.reviews {
		out = append(out, s.toReviewRow(r, s.cardItems[r.CardItemID]))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *fakeState) toReviewRow(r repository.Review, item repository.CardItem) repository.ListReviewsByCardRow {
	return repository.ListReviewsByCardRow{
		ID:         r.ID,
		CardItemID: r.CardItemID,
		UserID:     r.UserID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
		AuthorName: s.users[r.UserID].Name,
		ItemTitle:  item.Title,
	}
}

// Payments

func (s *fakeState) CreatePayment(_ context.Context, arg repository.CreatePaymentParams) (repository.Payment, error) {
	p := repository.Payment{
		ID:                s.id(),
		UserID:            arg.UserID,
		ProviderPaymentID: arg.ProviderPaymentID,
		AmountCents:       arg.AmountCents,
		Status:            arg.Status,
		CreatedAt:         time.Now(),
	}
	s.payments[p.ID] = p
	return p, nil
}

func (s *fakeState) ListPaymentsByUser(_ context.Context, userID int64) ([]repository.Payment, error) {
	var out []repository.Payment
	for _, p := range s.payments {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// fakeStore implements repository.Store. Transactions clone the state and
// only copy it back on Commit, so rollbacks leave the base state untouched.
type fakeStore struct {
	*fakeState
	beginCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{fakeState: newFakeState()}
}

func (s *fakeStore) BeginTx(_ context.Context) (repository.Tx, error) {
	s.beginCalls++
	return &fakeTx{state: s.fakeState.clone(), store: s}, nil
}

type fakeTx struct {
	state *fakeState
	store *fakeStore
	done  bool
}

func (t *fakeTx) Queries() repository.Querier { return t.state }

func (t *fakeTx) Commit(_ context.Context) error {
	t.store.fakeState.copyFrom(t.state)
	t.done = true
	return nil
}

func (t *fakeTx) Rollback(_ context.Context) error {
	t.done = true
	return nil
}

var (
	_ repository.Store = (*fakeStore)(nil)
	_ repository.Tx    = (*fakeTx)(nil)
)
