package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockmaster/stockmaster-api/internal/application/ledger"
	"github.com/stockmaster/stockmaster-api/internal/domain"
	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
	"github.com/stockmaster/stockmaster-api/internal/domain/repository"
)

// ProductUseCase gestión del catálogo. El stock inicial no se escribe
// directo: se registra como un ADJUSTMENT que pasa por el mismo motor de
// validación que cualquier otro movimiento.
type ProductUseCase struct {
	productRepo repository.ProductRepository
	ledgerUC    *ledger.UseCase
}

// NewProductUseCase construye el caso de uso de productos.
func NewProductUseCase(productRepo repository.ProductRepository, ledgerUC *ledger.UseCase) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, ledgerUC: ledgerUC}
}

// CreateProductInput entrada para crear un producto. Si InitialStock > 0,
// InitialStockLocationID indica la ubicación que recibe el conteo inicial.
type CreateProductInput struct {
	SKU                    string
	Name                   string
	Description            string
	UnitMeasure            string
	ReorderPoint           decimal.Decimal
	InitialStock           decimal.Decimal
	InitialStockLocationID string
	UserID                 string
}

// CreateProduct valida y persiste el producto; con stock inicial crea y
// valida un ADJUSTMENT en la ubicación indicada.
func (uc *ProductUseCase) CreateProduct(ctx context.Context, input CreateProductInput) (*entity.Product, error) {
	if input.SKU == "" || input.Name == "" {
		return nil, domain.ErrInvalidFields
	}
	if input.ReorderPoint.IsNegative() || input.InitialStock.IsNegative() {
		return nil, domain.ErrInvalidQuantity
	}
	if input.InitialStock.IsPositive() && input.InitialStockLocationID == "" {
		return nil, domain.ErrInvalidFields
	}

	existing, err := uc.productRepo.GetBySKU(input.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	unitMeasure := input.UnitMeasure
	if unitMeasure == "" {
		unitMeasure = "unit"
	}
	product := &entity.Product{
		ID:           uuid.New().String(),
		SKU:          input.SKU,
		Name:         input.Name,
		Description:  input.Description,
		UnitMeasure:  unitMeasure,
		ReorderPoint: input.ReorderPoint,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}

	if input.InitialStock.IsPositive() {
		move, err := uc.ledgerUC.CreateMove(ctx, ledger.CreateMoveInput{
			Type:                  entity.MoveTypeAdjustment,
			ProductID:             product.ID,
			DestinationLocationID: input.InitialStockLocationID,
			Quantity:              input.InitialStock,
			Reference:             "INITIAL-STOCK",
			UserID:                input.UserID,
		})
		if err != nil {
			return nil, err
		}
		if err := uc.ledgerUC.ValidateMove(ctx, move.ID); err != nil {
			return nil, err
		}
	}
	return product, nil
}

// GetProduct devuelve un producto por ID.
func (uc *ProductUseCase) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// ListProducts lista el catálogo paginado.
func (uc *ProductUseCase) ListProducts(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	return uc.productRepo.List(limit, offset)
}

// LocationUseCase gestión de almacenes y ubicaciones (datos referenciales
// que el ledger consulta al crear movimientos).
type LocationUseCase struct {
	warehouseRepo repository.WarehouseRepository
	locationRepo  repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso de almacenes/ubicaciones.
func NewLocationUseCase(warehouseRepo repository.WarehouseRepository, locationRepo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{warehouseRepo: warehouseRepo, locationRepo: locationRepo}
}

// CreateWarehouse persiste un almacén.
func (uc *LocationUseCase) CreateWarehouse(ctx context.Context, name, address string) (*entity.Warehouse, error) {
	if name == "" {
		return nil, domain.ErrInvalidFields
	}
	now := time.Now()
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		Name:      name,
		Address:   address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.warehouseRepo.Create(warehouse); err != nil {
		return nil, err
	}
	return warehouse, nil
}

// ListWarehouses lista almacenes paginados.
func (uc *LocationUseCase) ListWarehouses(ctx context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	return uc.warehouseRepo.List(limit, offset)
}

// CreateLocation persiste una ubicación dentro de un almacén existente.
func (uc *LocationUseCase) CreateLocation(ctx context.Context, warehouseID, name string) (*entity.Location, error) {
	if name == "" || warehouseID == "" {
		return nil, domain.ErrInvalidFields
	}
	warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	location := &entity.Location{
		ID:          uuid.New().String(),
		WarehouseID: warehouseID,
		Name:        name,
		CreatedAt:   time.Now(),
	}
	if err := uc.locationRepo.Create(location); err != nil {
		return nil, err
	}
	return location, nil
}

// ListLocations lista ubicaciones, opcionalmente filtradas por almacén.
func (uc *LocationUseCase) ListLocations(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.Location, error) {
	if warehouseID != "" {
		return uc.locationRepo.ListByWarehouse(warehouseID, limit, offset)
	}
	return uc.locationRepo.List(limit, offset)
}
