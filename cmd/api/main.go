package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/approval"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/audit"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/auth"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/cart"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/catalog"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/checkout"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/stock"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/infrastructure/postgres"
	httpRouter "github.com/wibodev-id/enterprise-retail-pos-system/internal/interfaces/http"
	"github.com/wibodev-id/enterprise-retail-pos-system/pkg/config"
	"github.com/wibodev-id/enterprise-retail-pos-system/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	// Product name folding shared between persistence and search.
	postgres.SetFold(catalog.Fold)

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	resRepo := postgres.NewReservationRepository(pool)
	txRepo := postgres.NewTransactionRepository(pool)
	apprRepo := postgres.NewApprovalRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	txRunner := postgres.NewTxRunner(pool, cfg.DB.LockTimeoutMS)

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	catalogUC := catalog.NewUseCase(productRepo, locationRepo, stockRepo, resRepo, apprRepo)
	reservationTTL := time.Duration(cfg.Cart.ReservationTTLMinutes) * time.Minute
	cartUC := cart.NewUseCase(resRepo, stockRepo, apprRepo, productRepo, reservationTTL)
	checkoutUC := checkout.NewUseCase(txRunner, cfg.Checkout.InvoicePrefix)
	stockUC := stock.NewUseCase(txRunner, stockRepo, productRepo, locationRepo)
	approvalEngine := approval.NewEngine(txRunner, apprRepo)
	auditUC := audit.NewUseCase(auditRepo)

	// Expired reservations stop counting immediately; the sweeper just keeps
	// the table small.
	sweeper := cart.NewSweeper(resRepo, time.Duration(cfg.Cart.SweepIntervalSeconds)*time.Second, log)
	go sweeper.Run(ctx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CatalogUC:  catalogUC,
		CartUC:     cartUC,
		CheckoutUC: checkoutUC,
		StockUC:    stockUC,
		Approval:   approvalEngine,
		AuditUC:    auditUC,
		TxRepo:     txRepo,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
