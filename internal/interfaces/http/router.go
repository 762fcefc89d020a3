package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/stockmaster/stockmaster-api/internal/application/catalog"
	"github.com/stockmaster/stockmaster-api/internal/application/inventory"
	"github.com/stockmaster/stockmaster-api/internal/application/ledger"
)

// Roles conocidos por la API. La gestión de usuarios es externa; el token
// solo transporta el rol.
const (
	RoleManager  = "manager"
	RoleOperator = "operator"
)

// RouterDeps dependencias para registrar las rutas.
type RouterDeps struct {
	ProductUC  *catalog.ProductUseCase
	LocationUC *catalog.LocationUseCase
	LedgerUC   *ledger.UseCase
	QueryUC    *inventory.QueryUseCase
	JWTSecret  string
}

// RegisterRoutes registra todas las rutas de la API bajo /api, protegidas
// con JWT. Las escrituras de catálogo requieren rol manager; el ledger y las
// consultas aceptan manager y operator.
func RegisterRoutes(app *fiber.App, deps RouterDeps) {
	moveHandler := NewMoveHandler(deps.LedgerUC, deps.QueryUC)
	inventoryHandler := NewInventoryHandler(deps.QueryUC)
	productHandler := NewProductHandler(deps.ProductUC)
	locationHandler := NewLocationHandler(deps.LocationUC)

	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	managerOnly := RequireRole(RoleManager)
	anyRole := RequireRole(RoleManager, RoleOperator)

	// Catálogo
	products := api.Group("/products")
	products.Post("/", managerOnly, productHandler.Create)
	products.Get("/", anyRole, productHandler.List)
	products.Get("/:id", anyRole, productHandler.Get)

	warehouses := api.Group("/warehouses")
	warehouses.Post("/", managerOnly, locationHandler.CreateWarehouse)
	warehouses.Get("/", anyRole, locationHandler.ListWarehouses)

	locations := api.Group("/locations")
	locations.Post("/", managerOnly, locationHandler.CreateLocation)
	locations.Get("/", anyRole, locationHandler.ListLocations)

	// Ledger de movimientos
	inv := api.Group("/inventory", anyRole)
	inv.Post("/moves", moveHandler.Create)
	inv.Get("/moves", moveHandler.List)
	inv.Get("/moves/:id", moveHandler.Get)
	inv.Post("/moves/:id/validate", moveHandler.Validate)
	inv.Post("/moves/:id/cancel", moveHandler.Cancel)

	// Consultas de stock
	inv.Get("/stock/:productId", inventoryHandler.GetStock)
	inv.Get("/stock/:productId/breakdown", inventoryHandler.GetStockBreakdown)
	inv.Get("/low-stock", inventoryHandler.LowStock)
}
