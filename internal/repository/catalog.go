package repository

import "context"

const createCard = `
INSERT INTO cards (title, para, image)
VALUES ($1, $2, $3)
RETURNING id, title, para, image, created_at
`

type CreateCardParams struct {
	Title string
	Para  string
	Image string
}

func (q *Queries) CreateCard(ctx context.Context, arg CreateCardParams) (Card, error) {
	row := q.db.QueryRow(ctx, createCard, arg.Title, arg.Para, arg.Image)
	var c Card
	err := row.Scan(&c.ID, &c.Title, &c.Para, &c.Image, &c.CreatedAt)
	return c, err
}

const listCards = `
SELECT id, title, para, image, created_at
FROM cards
ORDER BY id
`

func (q *Queries) ListCards(ctx context.Context) ([]Card, error) {
	rows, err := q.db.Query(ctx, listCards)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cards []Card
	for rows.Next() {
		var c Card
		if err := rows.Scan(&c.ID, &c.Title, &c.Para, &c.Image, &c.CreatedAt); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

const getCardByID = `
SELECT id, title, para, image, created_at
FROM cards
WHERE id = $1
`

func (q *Queries) GetCardByID(ctx context.Context, id int64) (Card, error) {
	row := q.db.QueryRow(ctx, getCardByID, id)
	var c Card
	err := row.Scan(&c.ID, &c.Title, &c.Para, &c.Image, &c.CreatedAt)
	return c, err
}

const createCardItem = `
INSERT INTO card_items (card_id, title, rate_cents)
VALUES ($1, $2, $3)
RETURNING id, card_id, title, rate_cents, created_at
`

type CreateCardItemParams struct {
	CardID    int64
	Title     string
	RateCents int64
}

func (q *Queries) CreateCardItem(ctx context.Context, arg CreateCardItemParams) (CardItem, error) {
	row := q.db.QueryRow(ctx, createCardItem, arg.CardID, arg.Title, arg.RateCents)
	var ci CardItem
	err := row.Scan(&ci.ID, &ci.CardID, &ci.Title, &ci.RateCents, &ci.CreatedAt)
	return ci, err
}

const listCardItemsByCard = `
SELECT id, card_id, title, rate_cents, created_at
FROM card_items
WHERE card_id = $1
ORDER BY id
`

func (q *Queries) ListCardItemsByCard(ctx context.Context, cardID int64) ([]CardItem, error) {
	rows, err := q.db.Query(ctx, listCardItemsByCard, cardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CardItem
	for rows.Next() {
		var ci CardItem
		if err := rows.Scan(&ci.ID, &ci.CardID, &ci.Title, &ci.RateCents, &ci.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, ci)
	}
	return items, rows.Err()
}

const getCardItemByID = `
SELECT id, card_id, title, rate_cents, created_at
FROM card_items
WHERE id = $1
`

func (q *Queries) GetCardItemByID(ctx context.Context, id int64) (CardItem, error) {
	row := q.db.QueryRow(ctx, getCardItemByID, id)
	var ci CardItem
	err := row.Scan(&ci.ID, &ci.CardID, &ci.Title, &ci.RateCents, &ci.CreatedAt)
	return ci, err
}
