package memory

import (
	"context"

	"github.com/stockmaster/stockmaster-api/internal/application/ledger"
	"github.com/stockmaster/stockmaster-api/internal/domain/repository"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner transacciones sobre el store en memoria: retiene el lock global
// durante todo el callback y, si fn devuelve error, restaura el snapshot
// previo (rollback). El equivalente en PostgreSQL es Begin/Commit/Rollback
// con bloqueo de filas.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con repos que asumen el lock ya tomado; commit es
// simplemente soltar el lock sin restaurar.
func (r *TxRunner) Run(ctx context.Context, fn func(
	moveRepo repository.StockMoveRepository,
	stockRepo repository.StockRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snap := r.s.takeSnapshot()
	moveRepo := &StockMoveRepo{s: r.s, inTx: true}
	stockRepo := &StockRepo{s: r.s, inTx: true}
	if err := fn(moveRepo, stockRepo); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}
