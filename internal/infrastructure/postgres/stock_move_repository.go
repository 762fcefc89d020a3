package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
	"github.com/stockmaster/stockmaster-api/internal/domain/repository"
)

var _ repository.StockMoveRepository = (*StockMoveRepo)(nil)

// StockMoveRepo implementación del ledger de movimientos sobre PostgreSQL
// (usable con pool o tx).
type StockMoveRepo struct {
	q Querier
}

// NewStockMoveRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMoveRepository(q Querier) *StockMoveRepo {
	return &StockMoveRepo{q: q}
}

const moveColumns = `id, type, product_id, source_location_id, destination_location_id, quantity, status, reference, notes, created_at, validated_at, created_by`

// Create persiste un movimiento (siempre nace en DRAFT).
func (r *StockMoveRepo) Create(move *entity.StockMove) error {
	query := `
		INSERT INTO stock_moves (` + moveColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		move.ID, move.Type, move.ProductID,
		nullIfEmpty(move.SourceLocationID), nullIfEmpty(move.DestinationLocationID),
		move.Quantity, move.Status, move.Reference, move.Notes,
		move.CreatedAt, move.ValidatedAt, nullIfEmpty(move.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("create stock move: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *StockMoveRepo) GetByID(id string) (*entity.StockMove, error) {
	query := `SELECT ` + moveColumns + ` FROM stock_moves WHERE id = $1`
	return scanMove(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene un movimiento bloqueando su fila (SELECT FOR UPDATE):
// dos validaciones concurrentes del mismo ID se serializan aquí.
func (r *StockMoveRepo) GetForUpdate(id string) (*entity.StockMove, error) {
	query := `SELECT ` + moveColumns + ` FROM stock_moves WHERE id = $1 FOR UPDATE`
	return scanMove(r.q.QueryRow(context.Background(), query, id))
}

// SetStatus muta el estado del movimiento (única mutación permitida sobre el ledger).
func (r *StockMoveRepo) SetStatus(id, status string, validatedAt *time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE stock_moves SET status = $2, validated_at = $3 WHERE id = $1`,
		id, status, validatedAt,
	)
	if err != nil {
		return fmt.Errorf("set stock move status: %w", err)
	}
	return nil
}

// ListRecent actividad reciente del ledger, más nuevo primero.
func (r *StockMoveRepo) ListRecent(limit, offset int) ([]*entity.StockMove, error) {
	query := `
		SELECT ` + moveColumns + ` FROM stock_moves
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.listMoves(query, limit, offset)
}

// ListByProduct movimientos de un producto en un rango de fechas opcional.
func (r *StockMoveRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMove, error) {
	query := `SELECT ` + moveColumns + ` FROM stock_moves WHERE product_id = $1`
	args := []any{productID}
	query, args = appendDateRange(query, args, from, to)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	return r.listMoves(query, args...)
}

// ListByLocation movimientos que tocan una ubicación (como origen o destino).
func (r *StockMoveRepo) ListByLocation(locationID string, from, to *time.Time, limit, offset int) ([]*entity.StockMove, error) {
	query := `SELECT ` + moveColumns + ` FROM stock_moves WHERE (source_location_id = $1 OR destination_location_id = $1)`
	args := []any{locationID}
	query, args = appendDateRange(query, args, from, to)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	return r.listMoves(query, args...)
}

func appendDateRange(query string, args []any, from, to *time.Time) (string, []any) {
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	return query, args
}

func (r *StockMoveRepo) listMoves(query string, args ...any) ([]*entity.StockMove, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock moves: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMove
	for rows.Next() {
		move, err := scanMoveRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, move)
	}
	return list, rows.Err()
}

func scanMove(row pgx.Row) (*entity.StockMove, error) {
	move, err := scanMoveRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return move, nil
}

func scanMoveRow(row pgx.Row) (*entity.StockMove, error) {
	var m entity.StockMove
	var sourceID, destinationID, createdBy *string
	err := row.Scan(&m.ID, &m.Type, &m.ProductID, &sourceID, &destinationID,
		&m.Quantity, &m.Status, &m.Reference, &m.Notes,
		&m.CreatedAt, &m.ValidatedAt, &createdBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan stock move: %w", err)
	}
	if sourceID != nil {
		m.SourceLocationID = *sourceID
	}
	if destinationID != nil {
		m.DestinationLocationID = *destinationID
	}
	if createdBy != nil {
		m.CreatedBy = *createdBy
	}
	return &m, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
