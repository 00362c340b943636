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

// AuthHandler handles signup, login and account routes
type AuthHandler struct {
	users   service.UserService
	metrics *telemetry.BusinessMetrics
	logger  zerolog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(users service.UserService, metrics *telemetry.BusinessMetrics, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		users:   users,
		metrics: metrics,
		logger:  logger,
	}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	ImageUrl string `json:"imageUrl"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageUrl string `json:"imageUrl,omitempty"`
}

// Signup handles POST /signup
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("auth.signup", "Invalid request body")
	}

	user, err := h.users.Signup(c.Request().Context(), service.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		ImageUrl: req.ImageUrl,
	})
	if err != nil {
		return err
	}

	if h.metrics != nil {
		h.metrics.Signups.WithLabelValues().Inc()
	}
	h.logger.Info().Int64("user_id", user.ID).Msg("account created")

	return respond(c, http.StatusCreated, "Signup successful", toUserResponse(user))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// Login handles POST /login
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("auth.login", "Invalid request body")
	}

	user, token, err := h.users.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if h.metrics != nil && domain.IsCode(err, domain.EUNAUTHORIZED) {
			h.metrics.LoginFailed.WithLabelValues().Inc()
		}
		return err
	}

	if h.metrics != nil {
		h.metrics.Logins.WithLabelValues().Inc()
	}

	return respond(c, http.StatusOK, "Login successful", loginResponse{
		Token: token,
		User:  toUserResponse(user),
	})
}

// GetUser handles GET /user
func (h *AuthHandler) GetUser(c echo.Context) error {
	user := middleware.GetUser(c)
	return respond(c, http.StatusOK, "User info fetched successfully", toUserResponse(user))
}

// Logout handles POST /logout
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.users.Logout(c.Request().Context(), middleware.GetToken(c)); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Logged out successfully", nil)
}

func toUserResponse(u *service.User) userResponse {
	return userResponse{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		ImageUrl: u.ImageUrl,
	}
}
