package repository

import (
	"github.com/shopspring/decimal"
	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
)

// StockRepository puerto para las filas de stock por (producto, ubicación).
// Get y GetForUpdate devuelven una fila con cantidad cero cuando la fila no
// existe todavía; Upsert la materializa.
type StockRepository interface {
	Get(productID, locationID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para releer la
	// cantidad dentro de la transacción de validación.
	GetForUpdate(productID, locationID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	// SumByProduct devuelve el stock agregado del producto en todas las ubicaciones.
	SumByProduct(productID string) (decimal.Decimal, error)
	ListByProduct(productID string) ([]*entity.Stock, error)
	ListByLocation(locationID string, limit, offset int) ([]*entity.Stock, error)
}
