package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/domain"
	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/service"
)

// CardHandler handles catalog routes
type CardHandler struct {
	catalog service.CatalogService
	logger  zerolog.Logger
}

// NewCardHandler creates a new catalog handler
func NewCardHandler(catalog service.CatalogService, logger zerolog.Logger) *CardHandler {
	return &CardHandler{
		catalog: catalog,
		logger:  logger,
	}
}

type cardResponse struct {
	ID    int64              `json:"id"`
	Title string             `json:"title"`
	Para  string             `json:"para"`
	Image string             `json:"image"`
	Items []cardItemResponse `json:"items"`
}

type cardItemResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	RateCents int64  `json:"rateCents"`
}

// ListCards handles GET /cards
func (h *CardHandler) ListCards(c echo.Context) error {
	cards, err := h.catalog.ListCards(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]cardResponse, 0, len(cards))
	for i := range cards {
		out = append(out, toCardResponse(&cards[i]))
	}
	return respond(c, http.StatusOK, "Cards fetched successfully", out)
}

// GetCard handles GET /cards/:id
func (h *CardHandler) GetCard(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return domain.Invalid("catalog.get_card", "Card id must be a positive integer")
	}

	card, err := h.catalog.GetCard(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Card fetched successfully", toCardResponse(card))
}

type createCardRequest struct {
	Title string                  `json:"title"`
	Para  string                  `json:"para"`
	Image string                  `json:"image"`
	Items []createCardItemRequest `json:"items"`
}

type createCardItemRequest struct {
	Title     string `json:"title"`
	RateCents int64  `json:"rateCents"`
}

// CreateCard handles POST /cards
func (h *CardHandler) CreateCard(c echo.Context) error {
	var req createCardRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("catalog.create_card", "Invalid request body")
	}

	input := service.CreateCardInput{
		Title: req.Title,
		Para:  req.Para,
		Image: req.Image,
	}
	for _, it := range req.Items {
		input.Items = append(input.Items, service.CreateCardItemInput{
			Title:     it.Title,
			RateCents: it.RateCents,
		})
	}

	card, err := h.catalog.CreateCard(c.Request().Context(), input)
	if err != nil {
		return err
	}

	h.logger.Info().Int64("card_id", card.Card.ID).Msg("card created")
	return respond(c, http.StatusCreated, "Card created successfully", toCardResponse(card))
}

func toCardResponse(card *service.CardWithItems) cardResponse {
	items := make([]cardItemResponse, 0, len(card.Items))
	for _, it := range card.Items {
		items = append(items, cardItemResponse{
			ID:        it.ID,
			Title:     it.Title,
			RateCents: it.RateCents,
		})
	}
	return cardResponse{
		ID:    card.Card.ID,
		Title: card.Card.Title,
		Para:  card.Card.Para,
		Image: card.Card.Image,
		Items: items,
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, strconv.ErrSyntax
	}
	return id, nil
}
