package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockmaster/stockmaster-api/internal/application/catalog"
	"github.com/stockmaster/stockmaster-api/internal/application/ledger"
	"github.com/stockmaster/stockmaster-api/internal/domain"
	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
	"github.com/stockmaster/stockmaster-api/internal/infrastructure/memory"
)

type fixture struct {
	productUC  *catalog.ProductUseCase
	locationUC *catalog.LocationUseCase
	ledgerUC   *ledger.UseCase
	stockRepo  *memory.StockRepo
	moveRepo   *memory.StockMoveRepo
	locationID string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	productRepo := memory.NewProductRepository(store)
	warehouseRepo := memory.NewWarehouseRepository(store)
	locationRepo := memory.NewLocationRepository(store)
	stockRepo := memory.NewStockRepository(store)
	moveRepo := memory.NewStockMoveRepository(store)
	txRunner := memory.NewTxRunner(store)

	ledgerUC := ledger.NewUseCase(txRunner, moveRepo, productRepo, locationRepo)
	f := &fixture{
		productUC:  catalog.NewProductUseCase(productRepo, ledgerUC),
		locationUC: catalog.NewLocationUseCase(warehouseRepo, locationRepo),
		ledgerUC:   ledgerUC,
		stockRepo:  stockRepo,
		moveRepo:   moveRepo,
	}

	warehouse, err := f.locationUC.CreateWarehouse(context.Background(), "Principal", "")
	require.NoError(t, err)
	location, err := f.locationUC.CreateLocation(context.Background(), warehouse.ID, "Zone A")
	require.NoError(t, err)
	f.locationID = location.ID
	return f
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProduct_SinStockInicial(t *testing.T) {
	f := newFixture(t)

	product, err := f.productUC.CreateProduct(context.Background(), catalog.CreateProductInput{
		SKU:          "LAP-001",
		Name:         "Laptop Pro 15",
		ReorderPoint: decimal.NewFromInt(5),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, product.ID)
	assert.Equal(t, "unit", product.UnitMeasure, "unit_measure por defecto")

	total, err := f.stockRepo.SumByProduct(product.ID)
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

// El stock inicial entra como ADJUSTMENT validado por el ledger, nunca como
// escritura directa: queda rastro auditable del conteo.
func TestCreateProduct_StockInicialViaLedger(t *testing.T) {
	f := newFixture(t)

	product, err := f.productUC.CreateProduct(context.Background(), catalog.CreateProductInput{
		SKU:                    "MON-001",
		Name:                   "Monitor 27",
		ReorderPoint:           decimal.NewFromInt(3),
		InitialStock:           decimal.NewFromInt(20),
		InitialStockLocationID: f.locationID,
		UserID:                 "user-1",
	})
	require.NoError(t, err)

	total, err := f.stockRepo.SumByProduct(product.ID)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(20)))

	moves, err := f.moveRepo.ListByProduct(product.ID, nil, nil, 10, 0)
	require.NoError(t, err)
	require.Len(t, moves, 1)
	assert.Equal(t, entity.MoveTypeAdjustment, moves[0].Type)
	assert.Equal(t, entity.MoveStatusValidated, moves[0].Status)
	assert.Equal(t, "INITIAL-STOCK", moves[0].Reference)
}

func TestCreateProduct_SKUDuplicado(t *testing.T) {
	f := newFixture(t)

	in := catalog.CreateProductInput{SKU: "KEY-001", Name: "Teclado"}
	_, err := f.productUC.CreateProduct(context.Background(), in)
	require.NoError(t, err)

	in.Name = "Otro teclado"
	_, err = f.productUC.CreateProduct(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateProduct_CamposInvalidos(t *testing.T) {
	f := newFixture(t)

	_, err := f.productUC.CreateProduct(context.Background(), catalog.CreateProductInput{Name: "Sin SKU"})
	assert.ErrorIs(t, err, domain.ErrInvalidFields)

	_, err = f.productUC.CreateProduct(context.Background(), catalog.CreateProductInput{
		SKU: "X-1", Name: "Reorder negativo", ReorderPoint: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.productUC.CreateProduct(context.Background(), catalog.CreateProductInput{
		SKU: "X-2", Name: "Stock inicial sin ubicación", InitialStock: decimal.NewFromInt(5),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidFields)
}

func TestGetProduct_NoEncontrado(t *testing.T) {
	f := newFixture(t)
	_, err := f.productUC.GetProduct(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Almacenes y ubicaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateLocation_AlmacenInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.locationUC.CreateLocation(context.Background(), "no-existe", "Zone Z")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateLocation_NombreObligatorio(t *testing.T) {
	f := newFixture(t)
	_, err := f.locationUC.CreateLocation(context.Background(), "wh", "")
	assert.ErrorIs(t, err, domain.ErrInvalidFields)
}

func TestListLocations_FiltraPorAlmacen(t *testing.T) {
	f := newFixture(t)

	other, err := f.locationUC.CreateWarehouse(context.Background(), "Secundario", "")
	require.NoError(t, err)
	_, err = f.locationUC.CreateLocation(context.Background(), other.ID, "Zone B")
	require.NoError(t, err)

	locations, err := f.locationUC.ListLocations(context.Background(), other.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, "Zone B", locations[0].Name)

	all, err := f.locationUC.ListLocations(context.Background(), "", 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
