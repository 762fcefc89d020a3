package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stockmaster/stockmaster-api/internal/application/dto"
	"github.com/stockmaster/stockmaster-api/internal/application/inventory"
	"github.com/stockmaster/stockmaster-api/internal/application/ledger"
	"github.com/stockmaster/stockmaster-api/internal/domain"
	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
)

// MoveHandler maneja las peticiones HTTP del ledger de movimientos (protegido).
type MoveHandler struct {
	ledgerUC *ledger.UseCase
	queryUC  *inventory.QueryUseCase
}

// NewMoveHandler construye el handler.
func NewMoveHandler(ledgerUC *ledger.UseCase, queryUC *inventory.QueryUseCase) *MoveHandler {
	return &MoveHandler{ledgerUC: ledgerUC, queryUC: queryUC}
}

// Create godoc
// @Summary      Crear movimiento de stock en borrador
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMoveRequest  true  "type, product_id, quantity, source/destination según tipo"
// @Success      201   {object}  dto.MoveResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/moves [post]
func (h *MoveHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateMoveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	move, err := h.ledgerUC.CreateMoveFromRequest(c.Context(), userID, in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidFields):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FIELDS", Message: "ubicaciones no válidas para el tipo de movimiento"})
		case errors.Is(err, domain.ErrInvalidQuantity):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "cantidad no válida para el tipo de movimiento"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto o ubicación no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MoveResponseFrom(move))
}

// Validate godoc
// @Summary      Validar un movimiento en borrador (aplica su efecto al stock)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MoveResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/moves/{id}/validate [post]
func (h *MoveHandler) Validate(c *fiber.Ctx) error {
	moveID := c.Params("id")
	if err := h.ledgerUC.ValidateMove(c.Context(), moveID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "movimiento no encontrado"})
		case errors.Is(err, domain.ErrAlreadyProcessed):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_PROCESSED", Message: "el movimiento ya fue validado o cancelado"})
		case errors.Is(err, domain.ErrInsufficientStock):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente en la ubicación de origen"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	move, err := h.ledgerUC.GetMove(c.Context(), moveID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.MoveResponseFrom(move))
}

// Cancel godoc
// @Summary      Cancelar un movimiento en borrador
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MoveResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/moves/{id}/cancel [post]
func (h *MoveHandler) Cancel(c *fiber.Ctx) error {
	moveID := c.Params("id")
	if err := h.ledgerUC.CancelMove(c.Context(), moveID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "movimiento no encontrado"})
		case errors.Is(err, domain.ErrAlreadyProcessed):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_PROCESSED", Message: "el movimiento ya fue validado o cancelado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	move, err := h.ledgerUC.GetMove(c.Context(), moveID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.MoveResponseFrom(move))
}

// Get godoc
// @Summary      Obtener un movimiento por ID
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MoveResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/moves/{id} [get]
func (h *MoveHandler) Get(c *fiber.Ctx) error {
	move, err := h.ledgerUC.GetMove(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "movimiento no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.MoveResponseFrom(move))
}

// List godoc
// @Summary      Historial de movimientos
// @Description  Actividad reciente del ledger; filtrable por producto o
//               ubicación y por rango de fechas (RFC 3339).
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  string  false  "Filtrar por producto"
// @Param        location_id  query  string  false  "Filtrar por ubicación (origen o destino)"
// @Param        from         query  string  false  "Fecha inicial"
// @Param        to           query  string  false  "Fecha final"
// @Success      200  {object}  dto.MoveListResponse
// @Router       /api/inventory/moves [get]
func (h *MoveHandler) List(c *fiber.Ctx) error {
	var pg dto.PageRequest
	if err := c.QueryParser(&pg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	pg.DefaultPage()

	from, err := parseTimeQuery(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "fecha 'from' inválida"})
	}
	to, err := parseTimeQuery(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "fecha 'to' inválida"})
	}

	var moves []*entity.StockMove
	switch {
	case c.Query("product_id") != "":
		list, err := h.queryUC.MovesByProduct(c.Context(), c.Query("product_id"), from, to, pg.Limit, pg.Offset)
		if err != nil {
			return moveListError(c, err)
		}
		moves = list
	case c.Query("location_id") != "":
		list, err := h.queryUC.MovesByLocation(c.Context(), c.Query("location_id"), from, to, pg.Limit, pg.Offset)
		if err != nil {
			return moveListError(c, err)
		}
		moves = list
	default:
		list, err := h.queryUC.RecentMoves(c.Context(), pg.Limit, pg.Offset)
		if err != nil {
			return moveListError(c, err)
		}
		moves = list
	}

	out := dto.MoveListResponse{Total: len(moves), Moves: make([]dto.MoveResponse, 0, len(moves))}
	for _, m := range moves {
		out.Moves = append(out.Moves, dto.MoveResponseFrom(m))
	}
	return c.JSON(out)
}

func moveListError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func parseTimeQuery(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
