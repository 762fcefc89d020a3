package repository

import (
	"time"

	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
)

// StockMoveRepository puerto de persistencia para el ledger de movimientos.
// Los movimientos nunca se borran; SetStatus es la única mutación permitida.
type StockMoveRepository interface {
	Create(move *entity.StockMove) error
	GetByID(id string) (*entity.StockMove, error)
	// GetForUpdate bloquea el registro del movimiento para que la guarda
	// de idempotencia (solo DRAFT se procesa) sea libre de carreras.
	GetForUpdate(id string) (*entity.StockMove, error)
	SetStatus(id, status string, validatedAt *time.Time) error
	ListRecent(limit, offset int) ([]*entity.StockMove, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMove, error)
	ListByLocation(locationID string, from, to *time.Time, limit, offset int) ([]*entity.StockMove, error)
}
