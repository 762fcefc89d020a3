package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/stockmaster/stockmaster-api/internal/application/catalog"
	"github.com/stockmaster/stockmaster-api/internal/application/dto"
	"github.com/stockmaster/stockmaster-api/internal/domain"
)

// LocationHandler maneja almacenes y ubicaciones.
type LocationHandler struct {
	locationUC *catalog.LocationUseCase
}

// NewLocationHandler construye el handler de almacenes/ubicaciones.
func NewLocationHandler(locationUC *catalog.LocationUseCase) *LocationHandler {
	return &LocationHandler{locationUC: locationUC}
}

// CreateWarehouse godoc
// @Summary      Crear almacén
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWarehouseRequest  true  "Almacén"
// @Success      201  {object}  dto.WarehouseResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/warehouses [post]
func (h *LocationHandler) CreateWarehouse(c *fiber.Ctx) error {
	var in dto.CreateWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	warehouse, err := h.locationUC.CreateWarehouse(c.Context(), in.Name, in.Address)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidFields) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FIELDS", Message: "name es obligatorio"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.WarehouseResponseFrom(warehouse))
}

// ListWarehouses godoc
// @Summary      Listar almacenes
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.WarehouseResponse
// @Router       /api/warehouses [get]
func (h *LocationHandler) ListWarehouses(c *fiber.Ctx) error {
	var pg dto.PageRequest
	if err := c.QueryParser(&pg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	pg.DefaultPage()

	warehouses, err := h.locationUC.ListWarehouses(c.Context(), pg.Limit, pg.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.WarehouseResponse, 0, len(warehouses))
	for _, w := range warehouses {
		out = append(out, dto.WarehouseResponseFrom(w))
	}
	return c.JSON(out)
}

// CreateLocation godoc
// @Summary      Crear ubicación dentro de un almacén
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLocationRequest  true  "Ubicación"
// @Success      201  {object}  dto.LocationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locations [post]
func (h *LocationHandler) CreateLocation(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	location, err := h.locationUC.CreateLocation(c.Context(), in.WarehouseID, in.Name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidFields):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FIELDS", Message: "warehouse_id y name son obligatorios"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "almacén no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.LocationResponseFrom(location))
}

// ListLocations godoc
// @Summary      Listar ubicaciones
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por almacén"
// @Success      200  {array}  dto.LocationResponse
// @Router       /api/locations [get]
func (h *LocationHandler) ListLocations(c *fiber.Ctx) error {
	var pg dto.PageRequest
	if err := c.QueryParser(&pg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	pg.DefaultPage()

	locations, err := h.locationUC.ListLocations(c.Context(), c.Query("warehouse_id"), pg.Limit, pg.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.LocationResponse, 0, len(locations))
	for _, l := range locations {
		out = append(out, dto.LocationResponseFrom(l))
	}
	return c.JSON(out)
}
