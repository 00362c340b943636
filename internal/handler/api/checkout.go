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

// CheckoutHandler handles the checkout route
type CheckoutHandler struct {
	checkout service.CheckoutService
	logger   zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkout service.CheckoutService, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		logger:   logger,
	}
}

// checkoutRequest keeps the field names clients already send: items,
// formData, totalAmount. Each formData entry carries the cart line id
// it describes; amounts are integer cents.
type checkoutRequest struct {
	Items       []checkoutItemRequest `json:"items"`
	FormData    []formDetailRequest   `json:"formData"`
	TotalAmount int64                 `json:"totalAmount"`
}

type checkoutItemRequest struct {
	CartLineID int64 `json:"id"`
	CardItemID int64 `json:"cardItemId"`
}

type formDetailRequest struct {
	CartLineID     int64  `json:"cartLineId"`
	Name           string `json:"name"`
	EventName      string `json:"eventName"`
	Address        string `json:"address"`
	DecorationName string `json:"decorationName"`
	DeliveryDate   string `json:"deliveryDate"`
	DeliveryTime   string `json:"deliveryTime"`
}

type checkoutResponse struct {
	CheckoutGroupID int64                  `json:"checkoutGroupId"`
	TotalCents      int64                  `json:"totalCents"`
	Lines           []checkoutLineResponse `json:"lines"`
}

type checkoutLineResponse struct {
	OrderLineID int64 `json:"orderLineId"`
	CardItemID  int64 `json:"cardItemId"`
	Quantity    int32 `json:"quantity"`
	AmountCents int64 `json:"amountCents"`
}

// ProcessCheckout handles POST /checkout
func (h *CheckoutHandler) ProcessCheckout(c echo.Context) error {
	user := middleware.GetUser(c)

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("checkout.process", "Invalid request body")
	}

	input := service.CheckoutInput{
		DeclaredTotalCents: req.TotalAmount,
	}
	for _, item := range req.Items {
		input.Lines = append(input.Lines, service.CheckoutLine{
			CartLineID: item.CartLineID,
			CardItemID: item.CardItemID,
		})
	}
	for _, d := range req.FormData {
		input.Details = append(input.Details, service.FormDetail{
			CartLineID:     d.CartLineID,
			RecipientName:  d.Name,
			EventName:      d.EventName,
			Address:        d.Address,
			DecorationName: d.DecorationName,
			DeliveryDate:   d.DeliveryDate,
			DeliveryTime:   d.DeliveryTime,
		})
	}

	result, err := h.checkout.ProcessCheckout(c.Request().Context(), user.ID, input)
	if err != nil {
		return err
	}

	h.logger.Info().
		Int64("user_id", user.ID).
		Int64("checkout_group_id", result.CheckoutGroupID).
		Int64("total_cents", result.TotalCents).
		Int("lines", len(result.Lines)).
		Msg("checkout completed")

	out := checkoutResponse{
		CheckoutGroupID: result.CheckoutGroupID,
		TotalCents:      result.TotalCents,
		Lines:           make([]checkoutLineResponse, 0, len(result.Lines)),
	}
	for _, line := range result.Lines {
		out.Lines = append(out.Lines, checkoutLineResponse{
			OrderLineID: line.OrderLineID,
			CardItemID:  line.CardItemID,
			Quantity:    line.Quantity,
			AmountCents: line.AmountCents,
		})
	}

	return respond(c, http.StatusCreated, "Checkout completed successfully", out)
}

type orderLineResponse struct {
	ID              int64     `json:"id"`
	CheckoutGroupID int64     `json:"checkoutGroupId"`
	CardItemID      int64     `json:"cardItemId"`
	ItemTitle       string    `json:"itemTitle"`
	Quantity        int32     `json:"quantity"`
	AmountCents     int64     `json:"amountCents"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ListOrders handles GET /orders
func (h *CheckoutHandler) ListOrders(c echo.Context) error {
	user := middleware.GetUser(c)

	orders, err := h.checkout.ListOrders(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	out := make([]orderLineResponse, 0, len(orders))
	for _, ol := range orders {
		out = append(out, orderLineResponse{
			ID:              ol.ID,
			CheckoutGroupID: ol.CheckoutGroupID,
			CardItemID:      ol.CardItemID,
			ItemTitle:       ol.ItemTitle,
			Quantity:        ol.Quantity,
			AmountCents:     ol.AmountCents,
			CreatedAt:       ol.CreatedAt,
		})
	}
	return respond(c, http.StatusOK, "Orders fetched successfully", out)
}
