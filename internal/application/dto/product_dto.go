package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
)

// CreateProductRequest body para POST /api/products.
// Con initial_stock > 0, initial_stock_location_id indica la ubicación que
// recibe el conteo inicial (se registra vía ledger, no como escritura directa).
type CreateProductRequest struct {
	SKU                    string          `json:"sku"`
	Name                   string          `json:"name"`
	Description            string          `json:"description,omitempty"`
	UnitMeasure            string          `json:"unit_measure,omitempty"`
	ReorderPoint           decimal.Decimal `json:"reorder_point"`
	InitialStock           decimal.Decimal `json:"initial_stock"`
	InitialStockLocationID string          `json:"initial_stock_location_id,omitempty"`
}

// ProductResponse representación HTTP de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	UnitMeasure  string          `json:"unit_measure"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductResponseFrom mapea la entidad al DTO de respuesta.
func ProductResponseFrom(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  p.Description,
		UnitMeasure:  p.UnitMeasure,
		ReorderPoint: p.ReorderPoint,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
