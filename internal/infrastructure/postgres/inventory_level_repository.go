package postgres

import (
	"context"
	"fmt"

	"github.com/stockmaster/stockmaster-api/internal/domain/repository"
)

var _ repository.InventoryLevelRepository = (*InventoryLevelRepo)(nil)

// InventoryLevelRepo vistas derivadas de inventario sobre PostgreSQL.
// Solo lectura.
type InventoryLevelRepo struct {
	q Querier
}

// NewInventoryLevelRepository construye el adaptador. Acepta pool o tx (Querier).
func NewInventoryLevelRepository(q Querier) *InventoryLevelRepo {
	return &InventoryLevelRepo{q: q}
}

// ListLowStock devuelve los productos cuyo stock agregado está en o por
// debajo de su umbral de reposición, ordenados por déficit descendente.
// Productos sin fila de stock cuentan como cero.
func (r *InventoryLevelRepo) ListLowStock(ctx context.Context, limit, offset int) ([]repository.LowStockItem, error) {
	query := `
		SELECT
			p.id,
			p.sku,
			p.name,
			p.unit_measure,
			COALESCE(SUM(s.quantity), 0) AS current_stock,
			p.reorder_point
		FROM products p
		LEFT JOIN stock s ON s.product_id = p.id
		GROUP BY p.id, p.sku, p.name, p.unit_measure, p.reorder_point
		HAVING COALESCE(SUM(s.quantity), 0) <= p.reorder_point
		ORDER BY (p.reorder_point - COALESCE(SUM(s.quantity), 0)) DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()

	var items []repository.LowStockItem
	for rows.Next() {
		var item repository.LowStockItem
		if err := rows.Scan(
			&item.ProductID, &item.SKU, &item.Name, &item.UnitMeasure,
			&item.CurrentStock, &item.ReorderPoint,
		); err != nil {
			return nil, fmt.Errorf("scan low stock item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
