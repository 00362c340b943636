package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/handler/api"
	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/middleware"
	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/service"
	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/telemetry"
)

// Services bundles everything the HTTP surface depends on.
type Services struct {
	Users    service.UserService
	Catalog  service.CatalogService
	Cart     service.CartService
	Checkout service.CheckoutService
	Reviews  service.ReviewService
	Payments service.PaymentService
}

// New builds the echo server with all routes and middleware attached.
func New(svc Services, metrics *telemetry.BusinessMetrics, logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = api.NewErrorHandler(logger)

	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(logger))
	e.Use(middleware.NewMetrics("").Middleware())

	authHandler := api.NewAuthHandler(svc.Users, metrics, logger)
	cardHandler := api.NewCardHandler(svc.Catalog, logger)
	cartHandler := api.NewCartHandler(svc.Cart, metrics, logger)
	checkoutHandler := api.NewCheckoutHandler(svc.Checkout, logger)
	reviewHandler := api.NewReviewHandler(svc.Reviews, logger)
	paymentHandler := api.NewPaymentHandler(svc.Payments, logger)

	// Public routes
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"msg": "Cake shop backend is running"})
	})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.POST("/signup", authHandler.Signup)
	e.POST("/login", authHandler.Login)

	e.GET("/cards", cardHandler.ListCards)
	e.GET("/cards/:id", cardHandler.GetCard)
	e.POST("/cards", cardHandler.CreateCard)

	e.GET("/cakeReviews/:id", reviewHandler.ListForCard)
	e.GET("/reviews", reviewHandler.ListAll)

	// Authenticated routes
	auth := e.Group("", middleware.RequireAuth(svc.Users))
	auth.GET("/user", authHandler.GetUser)
	auth.POST("/logout", authHandler.Logout)

	auth.POST("/cart", cartHandler.AddLine)
	auth.GET("/cart-items", cartHandler.ListLines)
	auth.PATCH("/cart-item", cartHandler.UpdateLine)
	auth.DELETE("/cart-item", cartHandler.RemoveLine)

	auth.POST("/checkout", checkoutHandler.ProcessCheckout)
	auth.GET("/orders", checkoutHandler.ListOrders)

	auth.POST("/cakeReviews/:id", reviewHandler.AddReview)

	auth.POST("/create-order", paymentHandler.CreateOrder)
	auth.POST("/payment", paymentHandler.RecordPayment)
	auth.GET("/payments", paymentHandler.ListPayments)

	return e
}
