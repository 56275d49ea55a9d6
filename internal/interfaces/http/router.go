// Package http expone la API sobre Fiber: router, middleware de auth y
// handlers delgados que traducen HTTP a casos de uso.
package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/application/catalog"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/application/inventory"
	"github.com/Bigzzz0/Beauty-Clinic-Management-System-sub000/internal/application/sales"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC *catalog.ProductUseCase
	LedgerUC  *inventory.LedgerUseCase
	EngineUC  *sales.EngineUseCase
	VoidUC    *sales.VoidUseCase
	ReceiptUC *sales.ReceiptUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Rutas protegidas (requieren Bearer Token con un rol conocido)
	api := app.Group("/api",
		AuthMiddleware(deps.JWTSecret),
		RequireRole("admin", "cajero", "doctor"),
	)

	// Products (protegido)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Inventory ledger (protegido)
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.LedgerUC, deps.ProductUC)
	invGroup.Post("/receive", inventoryHandler.Receive)
	invGroup.Post("/adjust", inventoryHandler.Adjust)
	invGroup.Post("/transfer", inventoryHandler.Transfer)
	invGroup.Get("/balances/:product_id", inventoryHandler.GetBalance)
	invGroup.Get("/movements", inventoryHandler.ListMovements)

	// Sales (protegido). "/debtors" antes de "/:id" para que no lo capture el parámetro.
	salesGroup := api.Group("/sales")
	salesHandler := NewSalesHandler(deps.EngineUC, deps.VoidUC, deps.ReceiptUC)
	salesGroup.Post("/", salesHandler.Create)
	salesGroup.Get("/debtors", salesHandler.ListDebtors)
	salesGroup.Get("/:id", salesHandler.GetByID)
	salesGroup.Get("/:id/receipt", salesHandler.DownloadReceipt)
	salesGroup.Post("/:id/void", salesHandler.Void)
	salesGroup.Post("/:id/payments", salesHandler.PayDebt)
}
