package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/domain"
	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/middleware"
	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/service"
	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/telemetry"
)

// CartHandler handles cart routes
type CartHandler struct {
	cart    service.CartService
	metrics *telemetry.BusinessMetrics
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cart service.CartService, metrics *telemetry.BusinessMetrics, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		cart:    cart,
		metrics: metrics,
		logger:  logger,
	}
}

type addCartLineRequest struct {
	CardItemID int64 `json:"cardItemId"`
	Quantity   int32 `json:"quantity"`
}

type cartLineResponse struct {
	ID            int64  `json:"id"`
	CardItemID    int64  `json:"cardItemId"`
	ItemTitle     string `json:"itemTitle"`
	RateCents     int64  `json:"rateCents"`
	Quantity      int32  `json:"quantity"`
	SubtotalCents int64  `json:"subtotalCents"`
}

type cartSummaryResponse struct {
	Lines      []cartLineResponse `json:"lines"`
	TotalCents int64              `json:"totalCents"`
	ItemCount  int32              `json:"itemCount"`
}

// AddLine handles POST /cart
func (h *CartHandler) AddLine(c echo.Context) error {
	user := middleware.GetUser(c)

	var req addCartLineRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("cart.add", "Invalid request body")
	}

	line, err := h.cart.AddLine(c.Request().Context(), user.ID, service.AddLineInput{
		CardItemID: req.CardItemID,
		Quantity:   req.Quantity,
	})
	if err != nil {
		return err
	}

	if h.metrics != nil {
		h.metrics.CartLinesAdded.WithLabelValues().Inc()
	}

	return respond(c, http.StatusCreated, "Item added to cart successfully", toCartLineResponse(line))
}

// ListLines handles GET /cart-items
func (h *CartHandler) ListLines(c echo.Context) error {
	user := middleware.GetUser(c)

	summary, err := h.cart.ListLines(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	if len(summary.Lines) == 0 {
		return domain.NotFound("cart.list", "cart items", "user cart")
	}

	out := cartSummaryResponse{
		Lines:      make([]cartLineResponse, 0, len(summary.Lines)),
		TotalCents: summary.TotalCents,
		ItemCount:  summary.ItemCount,
	}
	for i := range summary.Lines {
		out.Lines = append(out.Lines, toCartLineResponse(&summary.Lines[i]))
	}
	return respond(c, http.StatusOK, "Cart items fetched successfully", out)
}

type updateCartLineRequest struct {
	ID       int64 `json:"id"`
	Quantity int32 `json:"quantity"`
}

// UpdateLine handles PATCH /cart-item. The line id travels in the body.
func (h *CartHandler) UpdateLine(c echo.Context) error {
	user := middleware.GetUser(c)

	var req updateCartLineRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("cart.update", "Invalid request body")
	}
	if req.ID <= 0 {
		return domain.Invalid("cart.update", "Cart line id must be a positive integer")
	}

	line, err := h.cart.UpdateLineQuantity(c.Request().Context(), user.ID, req.ID, req.Quantity)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Cart item quantity updated successfully", toCartLineResponse(line))
}

type removeCartLineRequest struct {
	ID int64 `json:"id"`
}

// RemoveLine handles DELETE /cart-item. The line id travels in the body.
func (h *CartHandler) RemoveLine(c echo.Context) error {
	user := middleware.GetUser(c)

	var req removeCartLineRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("cart.remove", "Invalid request body")
	}
	if req.ID <= 0 {
		return domain.Invalid("cart.remove", "Cart line id must be a positive integer")
	}

	if err := h.cart.RemoveLine(c.Request().Context(), user.ID, req.ID); err != nil {
		return err
	}

	if h.metrics != nil {
		h.metrics.CartLinesRemove.WithLabelValues().Inc()
	}

	return respond(c, http.StatusOK, "Item removed from cart successfully", nil)
}

func toCartLineResponse(line *service.CartLine) cartLineResponse {
	return cartLineResponse{
		ID:            line.ID,
		CardItemID:    line.CardItemID,
		ItemTitle:     line.ItemTitle,
		RateCents:     line.RateCents,
		Quantity:      line.Quantity,
		SubtotalCents: line.SubtotalCents,
	}
}
