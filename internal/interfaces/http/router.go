package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/approval"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/audit"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/auth"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/cart"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/catalog"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/checkout"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/stock"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/entity"
	"github.com/wibodev-id/enterprise-retail-pos-system/internal/domain/repository"
)

// RouterDeps are the router's dependencies.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	CatalogUC  *catalog.UseCase
	CartUC     *cart.UseCase
	CheckoutUC *checkout.UseCase
	StockUC    *stock.UseCase
	Approval   *approval.Engine
	AuditUC    *audit.UseCase
	TxRepo     repository.TransactionRepository
	JWTSecret  string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Everything else requires a Bearer token.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catalog and availability
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	products := protected.Group("/products")
	products.Post("/", catalogHandler.CreateProduct)
	products.Get("/", catalogHandler.ListProducts)
	products.Get("/search", catalogHandler.Search)
	products.Get("/:id", catalogHandler.GetProduct)
	protected.Get("/availability", catalogHandler.Availability)
	locations := protected.Group("/locations")
	locations.Post("/", catalogHandler.CreateLocation)
	locations.Get("/", catalogHandler.ListLocations)

	// Cart
	cartHandler := NewCartHandler(deps.CartUC)
	cartGroup := protected.Group("/cart")
	cartGroup.Get("/", cartHandler.List)
	cartGroup.Delete("/", cartHandler.Clear)
	cartGroup.Post("/items", cartHandler.Add)
	cartGroup.Put("/items/:id", cartHandler.Update)
	cartGroup.Delete("/items/:id", cartHandler.Remove)

	// Checkout and transactions
	checkoutHandler := NewCheckoutHandler(deps.CheckoutUC, deps.TxRepo)
	protected.Post("/checkout", checkoutHandler.Checkout)
	transactions := protected.Group("/transactions")
	transactions.Get("/", checkoutHandler.ListTransactions)
	transactions.Get("/:id", checkoutHandler.GetTransaction)

	// Stock ledger. Decisions are additionally role-gated in the use case;
	// the route gate keeps cashiers out early.
	stockHandler := NewStockHandler(deps.StockUC)
	stockGroup := protected.Group("/stock")
	stockGroup.Post("/entries", stockHandler.Input)
	stockGroup.Get("/entries", stockHandler.List)
	stockGroup.Post("/entries/:id/decision",
		RequireRole(entity.RoleSupervisor, entity.RoleITAdmin),
		stockHandler.Decide)

	// Approvals. Submission is open to any authenticated user; the engine
	// enforces the per-variant role gates at decision time.
	approvalHandler := NewApprovalHandler(deps.Approval)
	approvals := protected.Group("/approvals")
	approvals.Post("/", approvalHandler.Submit)
	approvals.Get("/", approvalHandler.List)
	approvals.Get("/:id", approvalHandler.Get)
	approvals.Post("/:id/decision", approvalHandler.Decide)

	// Audit log (read only)
	auditHandler := NewAuditHandler(deps.AuditUC)
	protected.Get("/audit-logs", auditHandler.Trail)
}
