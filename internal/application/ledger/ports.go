package ledger

import (
	"context"

	"github.com/stockmaster/stockmaster-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad entre el registro del
// movimiento y todas las filas de stock que toca: o se aplica todo, o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		moveRepo repository.StockMoveRepository,
		stockRepo repository.StockRepository,
	) error) error
}
