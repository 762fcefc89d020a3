package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// LowStockItem fila del reporte de productos en o por debajo de su umbral
// de reposición (stock agregado de todas las ubicaciones).
type LowStockItem struct {
	ProductID    string
	SKU          string
	Name         string
	UnitMeasure  string
	CurrentStock decimal.Decimal
	ReorderPoint decimal.Decimal
}

// InventoryLevelRepository puerto de solo lectura para vistas derivadas de
// inventario. Nunca muta cantidades.
type InventoryLevelRepository interface {
	// ListLowStock devuelve productos con stock agregado <= reorder_point,
	// ordenados por déficit descendente. Paginado: la secuencia es finita
	// y reiniciable desde cualquier offset.
	ListLowStock(ctx context.Context, limit, offset int) ([]LowStockItem, error)
}
