package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/domain"
	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/middleware"
	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/service"
)

// ReviewHandler handles review routes
type ReviewHandler struct {
	reviews service.ReviewService
	logger  zerolog.Logger
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviews service.ReviewService, logger zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviews: reviews,
		logger:  logger,
	}
}

type addReviewRequest struct {
	Rating  int32  `json:"rating"`
	Comment string `json:"comment"`
}

type reviewResponse struct {
	ID         int64     `json:"id"`
	CardItemID int64     `json:"cardItemId"`
	ItemTitle  string    `json:"itemTitle"`
	AuthorName string    `json:"authorName"`
	Rating     int32     `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AddReview handles POST /cakeReviews/:id where :id is the card item.
func (h *ReviewHandler) AddReview(c echo.Context) error {
	user := middleware.GetUser(c)

	itemID, err := parseID(c.Param("id"))
	if err != nil {
		return domain.Invalid("review.add", "Card item id must be a positive integer")
	}

	var req addReviewRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("review.add", "Invalid request body")
	}

	review, err := h.reviews.AddReview(c.Request().Context(), user.ID, service.AddReviewInput{
		CardItemID: itemID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "Review added successfully", toReviewResponse(review))
}

// ListForCard handles GET /cakeReviews/:id where :id is the card.
func (h *ReviewHandler) ListForCard(c echo.Context) error {
	cardID, err := parseID(c.Param("id"))
	if err != nil {
		return domain.Invalid("review.list_for_card", "Card id must be a positive integer")
	}

	reviews, err := h.reviews.ListForCard(c.Request().Context(), cardID)
	if err != nil {
		return err
	}
	if len(reviews) == 0 {
		return domain.NotFound("review.list_for_card", "reviews", "card")
	}

	return respond(c, http.StatusOK, "Reviews fetched successfully", toReviewResponses(reviews))
}

// ListAll handles GET /reviews
func (h *ReviewHandler) ListAll(c echo.Context) error {
	reviews, err := h.reviews.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	if len(reviews) == 0 {
		return domain.NotFound("review.list_all", "reviews", "all")
	}

	return respond(c, http.StatusOK, "Reviews fetched successfully", toReviewResponses(reviews))
}

func toReviewResponse(r *service.Review) reviewResponse {
	return reviewResponse{
		ID:         r.ID,
		CardItemID: r.CardItemID,
		ItemTitle:  r.ItemTitle,
		AuthorName: r.AuthorName,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
}

func toReviewResponses(reviews []service.Review) []reviewResponse {
	out := make([]reviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, toReviewResponse(&reviews[i]))
	}
	return out
}
