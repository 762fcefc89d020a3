package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stockmaster/stockmaster-api/internal/application/ledger"
	"github.com/stockmaster/stockmaster-api/internal/domain/repository"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

const txMaxAttempts = 3

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Reintenta la transacción completa ante fallos de serialización o deadlock
// (los callbacks del ledger releen todo bajo bloqueo, así que re-ejecutar es
// seguro); los errores de negocio se devuelven tal cual, sin reintento.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	moveRepo repository.StockMoveRepository,
	stockRepo repository.StockRepository,
) error) error {
	var err error
	for attempt := 1; attempt <= txMaxAttempts; attempt++ {
		err = r.runOnce(ctx, fn)
		if err == nil || !isRetryableTxError(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * 10 * time.Millisecond):
		}
	}
	return err
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(
	moveRepo repository.StockMoveRepository,
	stockRepo repository.StockRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	moveRepo := NewStockMoveRepository(tx)
	stockRepo := NewStockRepository(tx)

	if err := fn(moveRepo, stockRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
