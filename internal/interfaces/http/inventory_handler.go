package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/stockmaster/stockmaster-api/internal/application/dto"
	"github.com/stockmaster/stockmaster-api/internal/application/inventory"
	"github.com/stockmaster/stockmaster-api/internal/domain"
)

// InventoryHandler lado de lectura: cantidades en reposo y bajo stock.
type InventoryHandler struct {
	queryUC *inventory.QueryUseCase
}

// NewInventoryHandler construye el handler de consultas de inventario.
func NewInventoryHandler(queryUC *inventory.QueryUseCase) *InventoryHandler {
	return &InventoryHandler{queryUC: queryUC}
}

// GetStock godoc
// @Summary      Cantidad de stock de un producto
// @Description  Sin location_id devuelve el agregado de todas las ubicaciones;
//               con location_id la cantidad en esa ubicación. Una fila ausente
//               cuenta como cero.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId    path   string  true   "ID del producto"
// @Param        location_id  query  string  false  "Limitar a una ubicación"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock/{productId} [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	productID := c.Params("productId")
	locationID := c.Query("location_id")

	qty, err := h.queryUC.GetInventory(c.Context(), productID, locationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.InventoryResponse{ProductID: productID, LocationID: locationID, Quantity: qty})
}

// GetStockBreakdown godoc
// @Summary      Desglose de stock por ubicación
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {array}  dto.InventoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock/{productId}/breakdown [get]
func (h *InventoryHandler) GetStockBreakdown(c *fiber.Ctx) error {
	productID := c.Params("productId")
	rows, err := h.queryUC.ListByProduct(c.Context(), productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.InventoryResponse, 0, len(rows))
	for _, s := range rows {
		out = append(out, dto.InventoryResponse{ProductID: s.ProductID, LocationID: s.LocationID, Quantity: s.Quantity})
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Reporte de bajo stock
// @Description  Productos cuyo stock agregado está en o por debajo de su
//               umbral de reposición, ordenados por déficit descendente.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Máximo de filas (default 20)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  dto.LowStockItemDTO
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	var pg dto.PageRequest
	if err := c.QueryParser(&pg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	pg.DefaultPage()

	items, err := h.queryUC.ListLowStock(c.Context(), pg.Limit, pg.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.LowStockItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, dto.LowStockItemFrom(item))
	}
	return c.JSON(out)
}
