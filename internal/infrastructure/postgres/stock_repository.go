package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
	"github.com/stockmaster/stockmaster-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con
// pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de un producto en una ubicación. Fila ausente
// equivale a cantidad cero.
func (r *StockRepo) Get(productID, locationID string) (*entity.Stock, error) {
	query := `
		SELECT product_id, location_id, quantity, updated_at
		FROM stock WHERE product_id = $1 AND location_id = $2`
	return r.scanOne(productID, locationID, r.q.QueryRow(context.Background(), query, productID, locationID))
}

// GetForUpdate obtiene el stock y bloquea la fila (SELECT FOR UPDATE) para
// la relectura dentro de la transacción de validación. Primero materializa
// la fila en cero si no existe: FOR UPDATE sobre una fila ausente no bloquea
// nada, y dos validaciones concurrentes sobre una fila nueva leerían ambas
// cero y la última sobrescribiría a la primera.
func (r *StockRepo) GetForUpdate(productID, locationID string) (*entity.Stock, error) {
	insert := `
		INSERT INTO stock (product_id, location_id, quantity, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (product_id, location_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), insert, productID, locationID); err != nil {
		return nil, fmt.Errorf("materialize stock row: %w", err)
	}
	query := `
		SELECT product_id, location_id, quantity, updated_at
		FROM stock WHERE product_id = $1 AND location_id = $2
		FOR UPDATE`
	return r.scanOne(productID, locationID, r.q.QueryRow(context.Background(), query, productID, locationID))
}

func (r *StockRepo) scanOne(productID, locationID string, row pgx.Row) (*entity.Stock, error) {
	var s entity.Stock
	err := row.Scan(&s.ProductID, &s.LocationID, &s.Quantity, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ProductID: productID, LocationID: locationID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad en stock (por producto y ubicación).
// Las filas nunca se borran: una fila en cero sigue siendo válida.
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (product_id, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, stock.ProductID, stock.LocationID, stock.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// SumByProduct devuelve el stock agregado del producto sumando todas las
// ubicaciones. No hay columna cacheada de total: esta suma es la verdad.
func (r *StockRepo) SumByProduct(productID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM stock WHERE product_id = $1`
	var total decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, productID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum stock by product: %w", err)
	}
	return total, nil
}

// ListByProduct desglose de stock por ubicación para un producto.
func (r *StockRepo) ListByProduct(productID string) ([]*entity.Stock, error) {
	query := `
		SELECT product_id, location_id, quantity, updated_at
		FROM stock WHERE product_id = $1 ORDER BY location_id`
	return r.list(query, productID)
}

// ListByLocation stock de todos los productos en una ubicación.
func (r *StockRepo) ListByLocation(locationID string, limit, offset int) ([]*entity.Stock, error) {
	query := `
		SELECT product_id, location_id, quantity, updated_at
		FROM stock WHERE location_id = $1 ORDER BY product_id LIMIT $2 OFFSET $3`
	return r.list(query, locationID, limit, offset)
}

func (r *StockRepo) list(query string, args ...any) ([]*entity.Stock, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ProductID, &s.LocationID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
