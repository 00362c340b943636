package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/naveen-kumar-k-30/cake-shop-backend/internal"
	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/billing"
	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/events"
	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/repository"
	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/routes"
	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/service"
	"github.com/naveen-kumar-k-30/cake-shop-backend/internal/telemetry"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database/sql connection for migrations
	logger.Info().Msg("Connecting to database")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	// Run migrations
	logger.Info().Msg("Running database migrations")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	// Initialize pgx connection pool for application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	store := repository.NewStore(pool)

	// Event publisher is optional. Without NATS the server runs standalone.
	var publisher events.Publisher = events.NewNoopPublisher()
	if cfg.NatsUrl != "" {
		natsPublisher, err := events.NewNatsPublisher(cfg.NatsUrl)
		if err != nil {
			return fmt.Errorf("failed to connect event publisher: %w", err)
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
		logger.Info().Str("url", cfg.NatsUrl).Msg("Event publisher connected")
	}

	metrics := telemetry.NewBusinessMetrics("cakeshop")

	billingProvider := billing.NewStripeProvider(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret)

	// Initialize services
	userService, err := service.NewUserService(store, time.Duration(cfg.Session.TTLHours)*time.Hour)
	if err != nil {
		return fmt.Errorf("failed to initialize user service: %w", err)
	}

	if purged, err := userService.PurgeExpiredSessions(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to purge expired sessions")
	} else if purged > 0 {
		logger.Info().Int64("count", purged).Msg("Purged expired sessions")
	}

	catalogService, err := service.NewCatalogService(store)
	if err != nil {
		return fmt.Errorf("failed to initialize catalog service: %w", err)
	}

	cartService, err := service.NewCartService(store)
	if err != nil {
		return fmt.Errorf("failed to initialize cart service: %w", err)
	}

	checkoutService, err := service.NewCheckoutService(store, metrics, publisher, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize checkout service: %w", err)
	}

	reviewService, err := service.NewReviewService(store, metrics)
	if err != nil {
		return fmt.Errorf("failed to initialize review service: %w", err)
	}

	paymentService, err := service.NewPaymentService(store, billingProvider, metrics, publisher, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize payment service: %w", err)
	}

	e := routes.New(routes.Services{
		Users:    userService,
		Catalog:  catalogService,
		Cart:     cartService,
		Checkout: checkoutService,
		Reviews:  reviewService,
		Payments: paymentService,
	}, metrics, logger)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info().Str("address", addr).Msg("Starting server")

	if err := e.Start(addr); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
