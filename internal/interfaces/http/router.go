package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-management-api/internal/application/auth"
	"github.com/jhoicas/stock-management-api/internal/application/billing"
	appstock "github.com/jhoicas/stock-management-api/internal/application/stock"
	"github.com/jhoicas/stock-management-api/internal/application/usecase"
	"github.com/jhoicas/stock-management-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC          *usecase.ItemUseCase
	AuditUC         *usecase.AuditUseCase
	PurchaseOrderUC *usecase.PurchaseOrderUseCase
	CreateBill      *billing.CreateBillUseCase
	AuthUC          *auth.AuthUseCase
	Dashboard       *appstock.DashboardObserver
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Items (protegido)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", RequireRole(entity.RoleAdmin), itemHandler.Delete)

	// Ajustes de stock (protegido): la única mutación de cantidades
	stockHandler := NewStockHandler(deps.ItemUC)
	items.Post("/:id/stock", stockHandler.Adjust)

	// Auditoría (protegido)
	auditHandler := NewAuditHandler(deps.AuditUC)
	protected.Get("/audit", auditHandler.ListRecent)
	items.Get("/:id/audit", auditHandler.ListByItem)

	// Dashboard (protegido)
	dashboardHandler := NewDashboardHandler(deps.Dashboard)
	protected.Get("/dashboard/stock", dashboardHandler.Stock)

	// Facturación (protegido)
	bills := protected.Group("/bills")
	billHandler := NewBillHandler(deps.CreateBill)
	bills.Post("/", billHandler.Create)
	bills.Get("/", billHandler.List)
	bills.Get("/:id", billHandler.GetByID)

	// Órdenes de compra (protegido; aprobar es solo admin)
	orders := protected.Group("/purchase-orders")
	poHandler := NewPurchaseOrderHandler(deps.PurchaseOrderUC)
	orders.Get("/", poHandler.List)
	orders.Post("/:id/approve", RequireRole(entity.RoleAdmin), poHandler.Approve)
}
