package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GregCodi/WarehousePRO/internal/application/analytics"
	"github.com/GregCodi/WarehousePRO/internal/application/auth"
	"github.com/GregCodi/WarehousePRO/internal/application/inventory"
	"github.com/GregCodi/WarehousePRO/internal/application/usecase"
	"github.com/GregCodi/WarehousePRO/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	CategoryUC    *usecase.CategoryUseCase
	SupplierUC    *usecase.SupplierUseCase
	StorageAreaUC *usecase.StorageAreaUseCase
	ProductUC     *usecase.ProductUseCase
	LedgerUC      *inventory.LedgerUseCase
	MovementUC    *inventory.MovementUseCase
	DashboardUC   *analytics.DashboardUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	writers := RequireRole(entity.RoleAdmin, entity.RoleManager)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard := protected.Group("/dashboard")
	dashboard.Get("/stats", dashboardHandler.GetStats)
	dashboard.Get("/low-stock", dashboardHandler.GetLowStock)
	dashboard.Get("/recent-movements", dashboardHandler.GetRecentMovements)
	dashboard.Get("/storage-occupancy", dashboardHandler.GetStorageOccupancy)

	// Users (solo admin)
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Catálogo: lectura para cualquier rol, escritura admin|manager
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories := protected.Group("/categories")
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", writers, categoryHandler.Create)
	categories.Put("/:id", writers, categoryHandler.Update)
	categories.Delete("/:id", writers, categoryHandler.Delete)

	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers := protected.Group("/suppliers")
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Post("/", writers, supplierHandler.Create)
	suppliers.Put("/:id", writers, supplierHandler.Update)
	suppliers.Delete("/:id", writers, supplierHandler.Delete)

	areaHandler := NewStorageAreaHandler(deps.StorageAreaUC)
	areas := protected.Group("/storage-areas")
	areas.Get("/", areaHandler.List)
	areas.Get("/:id", areaHandler.GetByID)
	areas.Post("/", writers, areaHandler.Create)
	areas.Put("/:id", writers, areaHandler.Update)
	areas.Delete("/:id", writers, areaHandler.Delete)

	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", writers, productHandler.Create)
	products.Put("/:id", writers, productHandler.Update)
	products.Delete("/:id", writers, productHandler.Delete)

	// Inventario (ledger)
	inventoryHandler := NewInventoryHandler(deps.LedgerUC)
	inv := protected.Group("/inventory")
	inv.Get("/product/:productId", inventoryHandler.ListByProduct)
	inv.Get("/area/:areaId", inventoryHandler.ListByArea)
	inv.Get("/:productId/:areaId", inventoryHandler.Get)
	inv.Post("/", writers, inventoryHandler.Set)
	inv.Post("/adjust", writers, inventoryHandler.Adjust)

	// Movimientos
	movementHandler := NewMovementHandler(deps.MovementUC)
	movements := protected.Group("/movements")
	movements.Get("/", movementHandler.List)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Post("/", movementHandler.Create)
	movements.Put("/:id/status", movementHandler.UpdateStatus)
}
