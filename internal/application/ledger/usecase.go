package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockmaster/stockmaster-api/internal/domain"
	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
	domledger "github.com/stockmaster/stockmaster-api/internal/domain/ledger"
	"github.com/stockmaster/stockmaster-api/internal/domain/repository"
)

// UseCase orquesta el ciclo de vida de los movimientos de stock: creación en
// DRAFT (sin efecto sobre inventario), validación transaccional con bloqueo
// de fila (SELECT FOR UPDATE) y cancelación.
type UseCase struct {
	txRunner     TxRunner
	moveRepo     repository.StockMoveRepository
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
}

// NewUseCase construye el caso de uso del ledger.
func NewUseCase(
	txRunner TxRunner,
	moveRepo repository.StockMoveRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		moveRepo:     moveRepo,
		productRepo:  productRepo,
		locationRepo: locationRepo,
	}
}

// CreateMoveInput entrada para crear un movimiento en borrador.
// Para RECEIPT/ADJUSTMENT: DestinationLocationID. Para DELIVERY:
// SourceLocationID. Para TRANSFER: ambos, distintos.
type CreateMoveInput struct {
	Type                  string
	ProductID             string
	SourceLocationID      string
	DestinationLocationID string
	Quantity              decimal.Decimal
	Reference             string
	Notes                 string
	UserID                string
}

// CreateMove valida la política de campos y signo del tipo, verifica que el
// producto y las ubicaciones referenciadas existan, y persiste el movimiento
// en DRAFT. No muta stock ni producto: el efecto ocurre en ValidateMove.
func (uc *UseCase) CreateMove(ctx context.Context, input CreateMoveInput) (*entity.StockMove, error) {
	if err := domledger.ValidateFields(input.Type, input.Quantity, input.SourceLocationID, input.DestinationLocationID); err != nil {
		return nil, err
	}

	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	for _, locID := range []string{input.SourceLocationID, input.DestinationLocationID} {
		if locID == "" {
			continue
		}
		loc, err := uc.locationRepo.GetByID(locID)
		if err != nil {
			return nil, err
		}
		if loc == nil {
			return nil, domain.ErrNotFound
		}
	}

	move := &entity.StockMove{
		ID:                    uuid.New().String(),
		Type:                  input.Type,
		ProductID:             input.ProductID,
		SourceLocationID:      input.SourceLocationID,
		DestinationLocationID: input.DestinationLocationID,
		Quantity:              input.Quantity,
		Status:                entity.MoveStatusDraft,
		Reference:             input.Reference,
		Notes:                 input.Notes,
		CreatedAt:             time.Now(),
		CreatedBy:             input.UserID,
	}
	if err := uc.moveRepo.Create(move); err != nil {
		return nil, err
	}
	return move, nil
}

// ValidateMove aplica el efecto del movimiento sobre el stock y lo pasa a
// VALIDATED, todo dentro de una sola transacción:
//
//  1. Bloquea el registro del movimiento; solo DRAFT se procesa
//     (guarda de idempotencia: validar dos veces nunca aplica doble).
//  2. Calcula los deltas según el tipo.
//  3. Relee cada fila de stock con bloqueo dentro de la tx; si alguna
//     quedaría negativa, aborta todo con ErrInsufficientStock.
//  4. Aplica los deltas y marca el movimiento como VALIDATED.
//
// Ante cualquier error la tx se revierte: el movimiento queda en DRAFT y el
// stock intacto, por lo que el caller puede corregir y reintentar.
func (uc *UseCase) ValidateMove(ctx context.Context, moveID string) error {
	return uc.txRunner.Run(ctx, func(
		moveRepo repository.StockMoveRepository,
		stockRepo repository.StockRepository,
	) error {
		move, err := moveRepo.GetForUpdate(moveID)
		if err != nil {
			return err
		}
		if move == nil {
			return domain.ErrNotFound
		}
		if move.IsTerminal() {
			return domain.ErrAlreadyProcessed
		}

		deltas, err := domledger.DeltasFor(move)
		if err != nil {
			return err
		}

		now := time.Now()
		for _, d := range deltas {
			// La base del cálculo es siempre la cantidad releída bajo
			// bloqueo, nunca un valor cacheado antes de la transacción.
			stock, err := stockRepo.GetForUpdate(move.ProductID, d.LocationID)
			if err != nil {
				return err
			}
			newQty := stock.Quantity.Add(d.Amount)
			if newQty.IsNegative() {
				return domain.ErrInsufficientStock
			}
			stock.Quantity = newQty
			stock.UpdatedAt = now
			if err := stockRepo.Upsert(stock); err != nil {
				return err
			}
		}
		return moveRepo.SetStatus(moveID, entity.MoveStatusValidated, &now)
	})
}

// CancelMove pasa un movimiento DRAFT a CANCELLED. Nunca hubo efecto sobre
// el stock, así que no hay nada que revertir. Falla con ErrAlreadyProcessed
// si el movimiento ya alcanzó un estado terminal.
func (uc *UseCase) CancelMove(ctx context.Context, moveID string) error {
	return uc.txRunner.Run(ctx, func(
		moveRepo repository.StockMoveRepository,
		_ repository.StockRepository,
	) error {
		move, err := moveRepo.GetForUpdate(moveID)
		if err != nil {
			return err
		}
		if move == nil {
			return domain.ErrNotFound
		}
		if move.IsTerminal() {
			return domain.ErrAlreadyProcessed
		}
		return moveRepo.SetStatus(moveID, entity.MoveStatusCancelled, nil)
	})
}

// GetMove devuelve un movimiento por ID.
func (uc *UseCase) GetMove(ctx context.Context, moveID string) (*entity.StockMove, error) {
	move, err := uc.moveRepo.GetByID(moveID)
	if err != nil {
		return nil, err
	}
	if move == nil {
		return nil, domain.ErrNotFound
	}
	return move, nil
}
