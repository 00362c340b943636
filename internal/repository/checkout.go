package repository

import "context"

const createCheckoutGroup = `
INSERT INTO checkout_groups (user_id, total_amount_cents)
VALUES ($1, $2)
RETURNING id, user_id, total_amount_cents, created_at, updated_at
`

type CreateCheckoutGroupParams struct {
	UserID           int64
	TotalAmountCents int64
}

func (q *Queries) CreateCheckoutGroup(ctx context.Context, arg CreateCheckoutGroupParams) (CheckoutGroup, error) {
	row := q.db.QueryRow(ctx, createCheckoutGroup, arg.UserID, arg.TotalAmountCents)
	var g CheckoutGroup
	err := row.Scan(&g.ID, &g.UserID, &g.TotalAmountCents, &g.CreatedAt, &g.UpdatedAt)
	return g, err
}

const updateCheckoutGroupTotal = `
UPDATE checkout_groups
SET total_amount_cents = $2, updated_at = now()
WHERE id = $1
`

type UpdateCheckoutGroupTotalParams struct {
	ID               int64
	TotalAmountCents int64
}

func (q *Queries) UpdateCheckoutGroupTotal(ctx context.Context, arg UpdateCheckoutGroupTotalParams) error {
	_, err := q.db.Exec(ctx, updateCheckoutGroupTotal, arg.ID, arg.TotalAmountCents)
	return err
}

const createCheckoutLineDetail = `
INSERT INTO checkout_line_details
	(checkout_group_id, card_item_id, quantity, recipient_name, event_name, address, decoration_name, delivery_date, delivery_time)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, checkout_group_id, card_item_id, quantity, recipient_name, event_name, address, decoration_name, delivery_date, delivery_time, created_at
`

type CreateCheckoutLineDetailParams struct {
	CheckoutGroupID int64
	CardItemID      int64
	Quantity        int32
	RecipientName   string
	EventName       string
	Address         string
	DecorationName  string
	DeliveryDate    string
	DeliveryTime    string
}

func (q *Queries) CreateCheckoutLineDetail(ctx context.Context, arg CreateCheckoutLineDetailParams) (CheckoutLineDetail, error) {
	row := q.db.QueryRow(ctx, createCheckoutLineDetail,
		arg.CheckoutGroupID, arg.CardItemID, arg.Quantity,
		arg.RecipientName, arg.EventName, arg.Address,
		arg.DecorationName, arg.DeliveryDate, arg.DeliveryTime)
	var d CheckoutLineDetail
	err := row.Scan(&d.ID, &d.CheckoutGroupID, &d.CardItemID, &d.Quantity,
		&d.RecipientName, &d.EventName, &d.Address,
		&d.DecorationName, &d.DeliveryDate, &d.DeliveryTime, &d.CreatedAt)
	return d, err
}

const createOrderLine = `
INSERT INTO order_lines (checkout_group_id, user_id, card_item_id, quantity, total_amount_cents)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, checkout_group_id, user_id, card_item_id, quantity, total_amount_cents, created_at
`

type CreateOrderLineParams struct {
	CheckoutGroupID  int64
	UserID           int64
	CardItemID       int64
	Quantity         int32
	TotalAmountCents int64
}

func (q *Queries) CreateOrderLine(ctx context.Context, arg CreateOrderLineParams) (OrderLine, error) {
	row := q.db.QueryRow(ctx, createOrderLine,
		arg.CheckoutGroupID, arg.UserID, arg.CardItemID, arg.Quantity, arg.TotalAmountCents)
	var ol OrderLine
	err := row.Scan(&ol.ID, &ol.CheckoutGroupID, &ol.UserID, &ol.CardItemID,
		&ol.Quantity, &ol.TotalAmountCents, &ol.CreatedAt)
	return ol, err
}

const listOrderLinesByUser = `
SELECT id, checkout_group_id, user_id, card_item_id, quantity, total_amount_cents, created_at
FROM order_lines
WHERE user_id = $1
ORDER BY id DESC
`

func (q *Queries) ListOrderLinesByUser(ctx context.Context, userID int64) ([]OrderLine, error) {
	rows, err := q.db.Query(ctx, listOrderLinesByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lines []OrderLine
	for rows.Next() {
		var ol OrderLine
		if err := rows.Scan(&ol.ID, &ol.CheckoutGroupID, &ol.UserID, &ol.CardItemID,
			&ol.Quantity, &ol.TotalAmountCents, &ol.CreatedAt); err != nil {
			return nil, err
		}
		lines = append(lines, ol)
	}
	return lines, rows.Err()
}
