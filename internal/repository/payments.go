package repository

import "context"

const createPayment = `
INSERT INTO payments (user_id, provider_payment_id, amount_cents, status)
VALUES ($1, $2, $3, $4)
RETURNING id, user_id, provider_payment_id, amount_cents, status, created_at
`

type CreatePaymentParams struct {
	UserID            int64
	ProviderPaymentID string
	AmountCents       int64
	Status            string
}

func (q *Queries) CreatePayment(ctx context.Context, arg CreatePaymentParams) (Payment, error) {
	row := q.db.QueryRow(ctx, createPayment, arg.UserID, arg.ProviderPaymentID, arg.AmountCents, arg.Status)
	var p Payment
	err := row.Scan(&p.ID, &p.UserID, &p.ProviderPaymentID, &p.AmountCents, &p.Status, &p.CreatedAt)
	return p, err
}

const listPaymentsByUser = `
SELECT id, user_id, provider_payment_id, amount_cents, status, created_at
FROM payments
WHERE user_id = $1
ORDER BY id DESC
`

func (q *Queries) ListPaymentsByUser(ctx context.Context, userID int64) ([]Payment, error) {
	rows, err := q.db.Query(ctx, listPaymentsByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var payments []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.UserID, &p.ProviderPaymentID, &p.AmountCents, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
