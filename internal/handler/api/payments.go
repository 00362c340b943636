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

// PaymentHandler handles payment routes
type PaymentHandler struct {
	payments service.PaymentService
	logger   zerolog.Logger
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(payments service.PaymentService, logger zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		payments: payments,
		logger:   logger,
	}
}

type createOrderRequest struct {
	AmountCents int64 `json:"amountCents"`
}

type createOrderResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"clientSecret"`
	AmountCents  int64  `json:"amountCents"`
	Currency     string `json:"currency"`
}

// CreateOrder handles POST /create-order
func (h *PaymentHandler) CreateOrder(c echo.Context) error {
	user := middleware.GetUser(c)

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("payment.create_order", "Invalid request body")
	}

	order, err := h.payments.CreateOrder(c.Request().Context(), user.ID, req.AmountCents)
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "Order created successfully", createOrderResponse{
		ID:           order.ProviderOrderID,
		ClientSecret: order.ClientSecret,
		AmountCents:  order.AmountCents,
		Currency:     order.Currency,
	})
}

type recordPaymentRequest struct {
	PaymentID   string `json:"paymentId"`
	AmountCents int64  `json:"amountCents"`
}

type paymentResponse struct {
	ID                int64     `json:"id"`
	ProviderPaymentID string    `json:"paymentId"`
	AmountCents       int64     `json:"amountCents"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
}

// RecordPayment handles POST /payment
func (h *PaymentHandler) RecordPayment(c echo.Context) error {
	user := middleware.GetUser(c)

	var req recordPaymentRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("payment.record", "Invalid request body")
	}

	payment, err := h.payments.RecordPayment(c.Request().Context(), user.ID, service.RecordPaymentInput{
		ProviderPaymentID: req.PaymentID,
		AmountCents:       req.AmountCents,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "Payment recorded successfully", toPaymentResponse(payment))
}

// ListPayments handles GET /payments
func (h *PaymentHandler) ListPayments(c echo.Context) error {
	user := middleware.GetUser(c)

	payments, err := h.payments.ListPayments(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	out := make([]paymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, toPaymentResponse(&payments[i]))
	}
	return respond(c, http.StatusOK, "Payments fetched successfully", out)
}

func toPaymentResponse(p *service.Payment) paymentResponse {
	return paymentResponse{
		ID:                p.ID,
		ProviderPaymentID: p.ProviderPaymentID,
		AmountCents:       p.AmountCents,
		Status:            p.Status,
		CreatedAt:         p.CreatedAt,
	}
}
