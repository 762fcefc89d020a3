package dto

import (
	"github.com/shopspring/decimal"
	"github.com/stockmaster/stockmaster-api/internal/domain/repository"
)

// InventoryResponse cantidad de un producto (por ubicación o agregada).
type InventoryResponse struct {
	ProductID  string          `json:"product_id"`
	LocationID string          `json:"location_id,omitempty"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// LowStockItemDTO fila del reporte de bajo stock.
type LowStockItemDTO struct {
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	UnitMeasure  string          `json:"unit_measure"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
	Deficit      decimal.Decimal `json:"deficit"`
}

// LowStockItemFrom mapea la fila del repositorio al DTO.
func LowStockItemFrom(item repository.LowStockItem) LowStockItemDTO {
	return LowStockItemDTO{
		ProductID:    item.ProductID,
		SKU:          item.SKU,
		Name:         item.Name,
		UnitMeasure:  item.UnitMeasure,
		CurrentStock: item.CurrentStock,
		ReorderPoint: item.ReorderPoint,
		Deficit:      item.ReorderPoint.Sub(item.CurrentStock),
	}
}
