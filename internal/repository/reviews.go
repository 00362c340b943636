package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

const createReview = `
INSERT INTO reviews (card_item_id, user_id, rating, comment)
VALUES ($1, $2, $3, $4)
RETURNING id, card_item_id, user_id, rating, comment, created_at
`

type CreateReviewParams struct {
	CardItemID int64
	UserID     int64
	Rating     int32
	Comment    pgtype.Text
}

func (q *Queries) CreateReview(ctx context.Context, arg CreateReviewParams) (Review, error) {
	row := q.db.QueryRow(ctx, createReview, arg.CardItemID, arg.UserID, arg.Rating, arg.Comment)
	var r Review
	err := row.Scan(&r.ID, &r.CardItemID, &r.UserID, &r.Rating, &r.Comment, &r.CreatedAt)
	return r, err
}

const listReviewsByCard = `
SELECT r.id, r.card_item_id, r.user_id, r.rating, r.comment, r.created_at,
       u.name, ci.title
FROM reviews r
JOIN card_items ci ON ci.id = r.card_item_id
JOIN users u ON u.id = r.user_id
WHERE ci.card_id = $1
ORDER BY r.id DESC
`

type ListReviewsByCardRow struct {
	ID         int64
	CardItemID int64
	UserID     int64
	Rating     int32
	Comment    pgtype.Text
	CreatedAt  time.Time
	AuthorName string
	ItemTitle  string
}

func (q *Queries) ListReviewsByCard(ctx context.Context, cardID int64) ([]ListReviewsByCardRow, error) {
	rows, err := q.db.Query(ctx, listReviewsByCard, cardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var reviews []ListReviewsByCardRow
	for rows.Next() {
		var r ListReviewsByCardRow
		if err := rows.Scan(&r.ID, &r.CardItemID, &r.UserID, &r.Rating, &r.Comment, &r.CreatedAt,
			&r.AuthorName, &r.ItemTitle); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

const listAllReviews = `
SELECT r.id, r.card_item_id, r.user_id, r.rating, r.comment, r.created_at,
       u.name, ci.title
FROM reviews r
JOIN card_items ci ON ci.id = r.card_item_id
JOIN users u ON u.id = r.user_id
ORDER BY r.id DESC
`

func (q *Queries) ListAllReviews(ctx context.Context) ([]ListReviewsByCardRow, error) {
	rows, err := q.db.Query(ctx, listAllReviews)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var reviews []ListReviewsByCardRow
	for rows.Next() {
		var r ListReviewsByCardRow
		if err := rows.Scan(&r.ID, &r.CardItemID, &r.UserID, &r.Rating, &r.Comment, &r.CreatedAt,
			&r.AuthorName, &r.ItemTitle); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}
