package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stockledger-api/internal/application/auth"
	"github.com/jhoicas/stockledger-api/internal/application/inventory"
	"github.com/jhoicas/stockledger-api/internal/application/usecase"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC     *usecase.CompanyUseCase
	WarehouseUC   *usecase.WarehouseUseCase
	ProductUC     *usecase.ProductUseCase
	LedgerQueryUC *inventory.QueryUseCase
	AdjustmentUC  *inventory.AdjustmentUseCase
	TransferUC    *inventory.TransferUseCase
	ReceivingUC   *inventory.ReceivingUseCase
	FulfillmentUC *inventory.FulfillmentUseCase
	AuthUC        *auth.AuthUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (público por ahora; se puede proteger con AuthMiddleware(deps.JWTSecret))
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Solo admin y bodeguero mutan el ledger; vendedor opera facturas.
	warehouseRoles := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseRoles, warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", warehouseRoles, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Ledger: saldos, movimientos, reconciliación (protegido, solo lectura)
	invGroup := protected.Group("/inventory")
	ledgerHandler := NewLedgerHandler(deps.LedgerQueryUC)
	invGroup.Get("/items/:warehouseID", ledgerHandler.ListItems)
	invGroup.Get("/items/:warehouseID/:productID", ledgerHandler.GetItem)
	invGroup.Get("/movements", ledgerHandler.ListMovements)
	invGroup.Get("/reconcile/:warehouseID", ledgerHandler.Reconcile)

	// Stock adjustments (protegido)
	adjustments := protected.Group("/stock-adjustments")
	adjustmentHandler := NewAdjustmentHandler(deps.AdjustmentUC)
	adjustments.Post("/", warehouseRoles, adjustmentHandler.Create)
	adjustments.Get("/", adjustmentHandler.List)
	adjustments.Get("/:id", adjustmentHandler.GetByID)
	adjustments.Post("/:id/approve", warehouseRoles, adjustmentHandler.Approve)
	adjustments.Post("/:id/cancel", warehouseRoles, adjustmentHandler.Cancel)

	// Stock transfers (protegido)
	transfers := protected.Group("/stock-transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Post("/", warehouseRoles, transferHandler.Create)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Post("/:id/process", warehouseRoles, transferHandler.Process)
	transfers.Post("/:id/complete", warehouseRoles, transferHandler.Complete)
	transfers.Post("/:id/cancel", warehouseRoles, transferHandler.Cancel)

	// Purchase orders (protegido)
	orders := protected.Group("/purchase-orders")
	orderHandler := NewPurchaseOrderHandler(deps.ReceivingUC)
	orders.Post("/", warehouseRoles, orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/:id/receive", warehouseRoles, orderHandler.Receive)

	// Invoices y fulfillment (protegido)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.FulfillmentUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/availability", invoiceHandler.CheckAvailability)
	invoices.Post("/:id/reserve", invoiceHandler.Reserve)
	invoices.Post("/:id/release", invoiceHandler.Release)
	invoices.Post("/:id/pay", invoiceHandler.ProcessPayment)
}
