package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
)

// CreateMoveRequest body para POST /api/inventory/moves.
type CreateMoveRequest struct {
	Type                  string          `json:"type"`
	ProductID             string          `json:"product_id"`
	SourceLocationID      string          `json:"source_location_id,omitempty"`
	DestinationLocationID string          `json:"destination_location_id,omitempty"`
	Quantity              decimal.Decimal `json:"quantity"`
	Reference             string          `json:"reference,omitempty"`
	Notes                 string          `json:"notes,omitempty"`
}

// MoveResponse representación HTTP de un movimiento.
type MoveResponse struct {
	ID                    string          `json:"id"`
	Type                  string          `json:"type"`
	ProductID             string          `json:"product_id"`
	SourceLocationID      string          `json:"source_location_id,omitempty"`
	DestinationLocationID string          `json:"destination_location_id,omitempty"`
	Quantity              decimal.Decimal `json:"quantity"`
	Status                string          `json:"status"`
	Reference             string          `json:"reference,omitempty"`
	Notes                 string          `json:"notes,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
	ValidatedAt           *time.Time      `json:"validated_at,omitempty"`
}

// MoveResponseFrom mapea la entidad al DTO de respuesta.
func MoveResponseFrom(m *entity.StockMove) MoveResponse {
	return MoveResponse{
		ID:                    m.ID,
		Type:                  m.Type,
		ProductID:             m.ProductID,
		SourceLocationID:      m.SourceLocationID,
		DestinationLocationID: m.DestinationLocationID,
		Quantity:              m.Quantity,
		Status:                m.Status,
		Reference:             m.Reference,
		Notes:                 m.Notes,
		CreatedAt:             m.CreatedAt,
		ValidatedAt:           m.ValidatedAt,
	}
}

// MoveListResponse listado paginado de movimientos.
type MoveListResponse struct {
	Total int            `json:"total"`
	Moves []MoveResponse `json:"moves"`
}
