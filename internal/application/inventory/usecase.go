package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stockmaster/stockmaster-api/internal/domain"
	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
	"github.com/stockmaster/stockmaster-api/internal/domain/repository"
)

// QueryUseCase lado de lectura del inventario: cantidades en reposo, reporte
// de bajo stock y actividad reciente del ledger. Nunca muta cantidades; la
// única escritura de stock vive en la transacción de validación.
type QueryUseCase struct {
	productRepo repository.ProductRepository
	stockRepo   repository.StockRepository
	levelRepo   repository.InventoryLevelRepository
	moveRepo    repository.StockMoveRepository
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
	levelRepo repository.InventoryLevelRepository,
	moveRepo repository.StockMoveRepository,
) *QueryUseCase {
	return &QueryUseCase{
		productRepo: productRepo,
		stockRepo:   stockRepo,
		levelRepo:   levelRepo,
		moveRepo:    moveRepo,
	}
}

// GetInventory devuelve la cantidad de un producto. Con locationID vacío
// devuelve el agregado (suma de todas las ubicaciones); una fila ausente
// cuenta como cero.
func (uc *QueryUseCase) GetInventory(ctx context.Context, productID, locationID string) (decimal.Decimal, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return decimal.Zero, err
	}
	if product == nil {
		return decimal.Zero, domain.ErrNotFound
	}
	if locationID == "" {
		return uc.stockRepo.SumByProduct(productID)
	}
	stock, err := uc.stockRepo.Get(productID, locationID)
	if err != nil {
		return decimal.Zero, err
	}
	return stock.Quantity, nil
}

// ListByProduct devuelve el desglose de stock por ubicación para un producto.
func (uc *QueryUseCase) ListByProduct(ctx context.Context, productID string) ([]*entity.Stock, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.stockRepo.ListByProduct(productID)
}

// ListLowStock devuelve los productos cuyo stock agregado está en o por
// debajo de su umbral de reposición, ordenados por déficit descendente.
func (uc *QueryUseCase) ListLowStock(ctx context.Context, limit, offset int) ([]repository.LowStockItem, error) {
	return uc.levelRepo.ListLowStock(ctx, limit, offset)
}

// RecentMoves devuelve la actividad reciente del ledger (todos los estados,
// más reciente primero).
func (uc *QueryUseCase) RecentMoves(ctx context.Context, limit, offset int) ([]*entity.StockMove, error) {
	return uc.moveRepo.ListRecent(limit, offset)
}

// MovesByProduct historial de movimientos de un producto, con rango de fechas opcional.
func (uc *QueryUseCase) MovesByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMove, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.moveRepo.ListByProduct(productID, from, to, limit, offset)
}

// MovesByLocation historial de movimientos que tocan una ubicación.
func (uc *QueryUseCase) MovesByLocation(ctx context.Context, locationID string, from, to *time.Time, limit, offset int) ([]*entity.StockMove, error) {
	return uc.moveRepo.ListByLocation(locationID, from, to, limit, offset)
}
