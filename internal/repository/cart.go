package repository

import (
	"context"
	"time"
)

const createCartLine = `
INSERT INTO cart_lines (user_id, card_item_id, quantity)
VALUES ($1, $2, $3)
RETURNING id, user_id, card_item_id, quantity, created_at, updated_at
`

type CreateCartLineParams struct {
	UserID     int64
	CardItemID int64
	Quantity   int32
}

func (q *Queries) CreateCartLine(ctx context.Context, arg CreateCartLineParams) (CartLine, error) {
	row := q.db.QueryRow(ctx, createCartLine, arg.UserID, arg.CardItemID, arg.Quantity)
	var cl CartLine
	err := row.Scan(&cl.ID, &cl.UserID, &cl.CardItemID, &cl.Quantity, &cl.CreatedAt, &cl.UpdatedAt)
	return cl, err
}

const getCartLineByID = `
SELECT id, user_id, card_item_id, quantity, created_at, updated_at
FROM cart_lines
WHERE id = $1
`

func (q *Queries) GetCartLineByID(ctx context.Context, id int64) (CartLine, error) {
	row := q.db.QueryRow(ctx, getCartLineByID, id)
	var cl CartLine
	err := row.Scan(&cl.ID, &cl.UserID, &cl.CardItemID, &cl.Quantity, &cl.CreatedAt, &cl.UpdatedAt)
	return cl, err
}

const listCartLinesWithItems = `
SELECT cl.id, cl.user_id, cl.card_item_id, cl.quantity, cl.created_at, cl.updated_at,
       ci.title, ci.rate_cents, ci.card_id
FROM cart_lines cl
JOIN card_items ci ON ci.id = cl.card_item_id
WHERE cl.user_id = $1
ORDER BY cl.id
`

type ListCartLinesWithItemsRow struct {
	ID            int64
	UserID        int64
	CardItemID    int64
	Quantity      int32
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ItemTitle     string
	ItemRateCents int64
	CardID        int64
}

func (q *Queries) ListCartLinesWithItems(ctx context.Context, userID int64) ([]ListCartLinesWithItemsRow, error) {
	rows, err := q.db.Query(ctx, listCartLinesWithItems, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lines []ListCartLinesWithItemsRow
	for rows.Next() {
		var r ListCartLinesWithItemsRow
		if err := rows.Scan(&r.ID, &r.UserID, &r.CardItemID, &r.Quantity, &r.CreatedAt, &r.UpdatedAt,
			&r.ItemTitle, &r.ItemRateCents, &r.CardID); err != nil {
			return nil, err
		}
		lines = append(lines, r)
	}
	return lines, rows.Err()
}

const updateCartLineQuantity = `
UPDATE cart_lines
SET quantity = $3, updated_at = now()
WHERE id = $1 AND user_id = $2
RETURNING id, user_id, card_item_id, quantity, created_at, updated_at
`

type UpdateCartLineQuantityParams struct {
	ID       int64
	UserID   int64
	Quantity int32
}

func (q *Queries) UpdateCartLineQuantity(ctx context.Context, arg UpdateCartLineQuantityParams) (CartLine, error) {
	row := q.db.QueryRow(ctx, updateCartLineQuantity, arg.ID, arg.UserID, arg.Quantity)
	var cl CartLine
	err := row.Scan(&cl.ID, &cl.UserID, &cl.CardItemID, &cl.Quantity, &cl.CreatedAt, &cl.UpdatedAt)
	return cl, err
}

const deleteCartLineOwned = `
DELETE FROM cart_lines
WHERE id = $1 AND user_id = $2
`

type DeleteCartLineOwnedParams struct {
	ID     int64
	UserID int64
}

// DeleteCartLineOwned removes a cart line only if it belongs to the given
// user. The returned count is 0 when the line is absent or foreign.
func (q *Queries) DeleteCartLineOwned(ctx context.Context, arg DeleteCartLineOwnedParams) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteCartLineOwned, arg.ID, arg.UserID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
