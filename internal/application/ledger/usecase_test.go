package ledger_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockmaster/stockmaster-api/internal/application/ledger"
	"github.com/stockmaster/stockmaster-api/internal/domain"
	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
	"github.com/stockmaster/stockmaster-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: store en memoria con un producto y tres ubicaciones
// ──────────────────────────────────────────────────────────────────────────────

const (
	productID = "prod-1"
	locA      = "loc-a"
	locB      = "loc-b"
	locC      = "loc-c"
	testUser  = "user-1"
)

type fixture struct {
	uc        *ledger.UseCase
	store     *memory.Store
	stockRepo *memory.StockRepo
	moveRepo  *memory.StockMoveRepo
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

	now := time.Now()
	require.NoError(t, productRepo.Create(&entity.Product{
		ID: productID, SKU: "SKU-1", Name: "Producto de prueba",
		UnitMeasure: "unit", ReorderPoint: decimal.NewFromInt(5),
		CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, warehouseRepo.Create(&entity.Warehouse{ID: "wh-1", Name: "Principal", CreatedAt: now}))
	for _, id := range []string{locA, locB, locC} {
		require.NoError(t, locationRepo.Create(&entity.Location{ID: id, WarehouseID: "wh-1", Name: id, CreatedAt: now}))
	}

	return &fixture{
		uc:        ledger.NewUseCase(txRunner, moveRepo, productRepo, locationRepo),
		store:     store,
		stockRepo: stockRepo,
		moveRepo:  moveRepo,
	}
}

// setStock fija la cantidad inicial de una ubicación sin pasar por el ledger.
func (f *fixture) setStock(t *testing.T, locationID string, qty int64) {
	t.Helper()
	require.NoError(t, f.stockRepo.Upsert(&entity.Stock{
		ProductID:  productID,
		LocationID: locationID,
		Quantity:   decimal.NewFromInt(qty),
		UpdatedAt:  time.Now(),
	}))
}

func (f *fixture) quantity(t *testing.T, locationID string) decimal.Decimal {
	t.Helper()
	stock, err := f.stockRepo.Get(productID, locationID)
	require.NoError(t, err)
	return stock.Quantity
}

func (f *fixture) total(t *testing.T) decimal.Decimal {
	t.Helper()
	total, err := f.stockRepo.SumByProduct(productID)
	require.NoError(t, err)
	return total
}

func receiptInput(qty int64) ledger.CreateMoveInput {
	return ledger.CreateMoveInput{
		Type:                  entity.MoveTypeReceipt,
		ProductID:             productID,
		DestinationLocationID: locB,
		Quantity:              decimal.NewFromInt(qty),
		UserID:                testUser,
	}
}

func deliveryInput(qty int64) ledger.CreateMoveInput {
	return ledger.CreateMoveInput{
		Type:             entity.MoveTypeDelivery,
		ProductID:        productID,
		SourceLocationID: locA,
		Quantity:         decimal.NewFromInt(qty),
		UserID:           testUser,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateMove — el borrador no toca el stock
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateMove_BorradorSinEfectoSobreStock(t *testing.T) {
	f := newFixture(t)
	f.setStock(t, locA, 50)

	move, err := f.uc.CreateMove(context.Background(), deliveryInput(10))
	require.NoError(t, err)
	assert.Equal(t, entity.MoveStatusDraft, move.Status)
	assert.Nil(t, move.ValidatedAt)
	assert.Equal(t, testUser, move.CreatedBy)

	// Ningún número de borradores altera cantidades.
	for i := 0; i < 5; i++ {
		_, err := f.uc.CreateMove(context.Background(), deliveryInput(100))
		require.NoError(t, err)
	}
	assert.True(t, f.quantity(t, locA).Equal(decimal.NewFromInt(50)),
		"los borradores no deben alterar el stock")
}

// Un delivery en borrador puede exceder el stock disponible; el chequeo de
// suficiencia ocurre en la validación, no en la creación.
func TestCreateMove_BorradorPuedeExcederStock(t *testing.T) {
	f := newFixture(t)
	f.setStock(t, locA, 3)

	move, err := f.uc.CreateMove(context.Background(), deliveryInput(1000))
	require.NoError(t, err)
	assert.Equal(t, entity.MoveStatusDraft, move.Status)
}

func TestCreateMove_ProductoInexistente(t *testing.T) {
	f := newFixture(t)
	in := receiptInput(5)
	in.ProductID = "no-existe"
	_, err := f.uc.CreateMove(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateMove_UbicacionInexistente(t *testing.T) {
	f := newFixture(t)
	in := receiptInput(5)
	in.DestinationLocationID = "no-existe"
	_, err := f.uc.CreateMove(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateMove_CamposInvalidos(t *testing.T) {
	f := newFixture(t)

	in := receiptInput(5)
	in.SourceLocationID = locA // receipt no lleva origen
	_, err := f.uc.CreateMove(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidFields)

	in = receiptInput(0)
	_, err = f.uc.CreateMove(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// ValidateMove — aplicación atómica de deltas
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateMove_ReceiptSumaStock(t *testing.T) {
	f := newFixture(t)

	move, err := f.uc.CreateMove(context.Background(), receiptInput(12))
	require.NoError(t, err)
	require.NoError(t, f.uc.ValidateMove(context.Background(), move.ID))

	assert.True(t, f.quantity(t, locB).Equal(decimal.NewFromInt(12)))

	got, err := f.uc.GetMove(context.Background(), move.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.MoveStatusValidated, got.Status)
	assert.NotNil(t, got.ValidatedAt)
}

func TestValidateMove_DeliveryRestaStock(t *testing.T) {
	f := newFixture(t)
	f.setStock(t, locA, 50)

	move, err := f.uc.CreateMove(context.Background(), deliveryInput(20))
	require.NoError(t, err)
	require.NoError(t, f.uc.ValidateMove(context.Background(), move.ID))

	assert.True(t, f.quantity(t, locA).Equal(decimal.NewFromInt(30)))
}

func TestValidateMove_TransferConservaTotal(t *testing.T) {
	f := newFixture(t)
	f.setStock(t, locA, 40)

	move, err := f.uc.CreateMove(context.Background(), ledger.CreateMoveInput{
		Type:                  entity.MoveTypeTransfer,
		ProductID:             productID,
		SourceLocationID:      locA,
		DestinationLocationID: locB,
		Quantity:              decimal.NewFromInt(15),
		UserID:                testUser,
	})
	require.NoError(t, err)
	require.NoError(t, f.uc.ValidateMove(context.Background(), move.ID))

	assert.True(t, f.quantity(t, locA).Equal(decimal.NewFromInt(25)))
	assert.True(t, f.quantity(t, locB).Equal(decimal.NewFromInt(15)))
	assert.True(t, f.total(t).Equal(decimal.NewFromInt(40)),
		"un transfer validado conserva el total por producto")
}

func TestValidateMove_AdjustmentNegativo(t *testing.T) {
	f := newFixture(t)
	f.setStock(t, locB, 10)

	move, err := f.uc.CreateMove(context.Background(), ledger.CreateMoveInput{
		Type:                  entity.MoveTypeAdjustment,
		ProductID:             productID,
		DestinationLocationID: locB,
		Quantity:              decimal.NewFromInt(-4),
		Reference:             "CONTEO-2026-08",
		UserID:                testUser,
	})
	require.NoError(t, err)
	require.NoError(t, f.uc.ValidateMove(context.Background(), move.ID))

	assert.True(t, f.quantity(t, locB).Equal(decimal.NewFromInt(6)))
}

// ──────────────────────────────────────────────────────────────────────────────
// ValidateMove — stock insuficiente y rollback
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateMove_StockInsuficiente(t *testing.T) {
	f := newFixture(t)
	f.setStock(t, locA, 5)

	move, err := f.uc.CreateMove(context.Background(), deliveryInput(6))
	require.NoError(t, err)

	err = f.uc.ValidateMove(context.Background(), move.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// El movimiento sigue en DRAFT y el stock intacto: se puede corregir y
	// reintentar.
	got, err := f.uc.GetMove(context.Background(), move.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.MoveStatusDraft, got.Status)
	assert.True(t, f.quantity(t, locA).Equal(decimal.NewFromInt(5)))
}

// Delivery exacto: dejar la ubicación en cero es válido.
func TestValidateMove_DeliveryExactoACero(t *testing.T) {
	f := newFixture(t)
	f.setStock(t, locA, 5)

	move, err := f.uc.CreateMove(context.Background(), deliveryInput(5))
	require.NoError(t, err)
	require.NoError(t, f.uc.ValidateMove(context.Background(), move.ID))

	assert.True(t, f.quantity(t, locA).IsZero())
}

// Delivery desde una ubicación sin fila de stock: equivale a cero disponible.
func TestValidateMove_UbicacionSinFilaEsCero(t *testing.T) {
	f := newFixture(t)

	move, err := f.uc.CreateMove(context.Background(), deliveryInput(1))
	require.NoError(t, err)

	err = f.uc.ValidateMove(context.Background(), move.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// Si el segundo delta de un transfer fallara, el primero también se revierte:
// nunca queda un transfer aplicado a medias.
func TestValidateMove_TransferInsuficienteNoDejaMitades(t *testing.T) {
	f := newFixture(t)
	f.setStock(t, locA, 3)
	f.setStock(t, locB, 7)

	move, err := f.uc.CreateMove(context.Background(), ledger.CreateMoveInput{
		Type:                  entity.MoveTypeTransfer,
		ProductID:             productID,
		SourceLocationID:      locA,
		DestinationLocationID: locB,
		Quantity:              decimal.NewFromInt(10),
		UserID:                testUser,
	})
	require.NoError(t, err)

	err = f.uc.ValidateMove(context.Background(), move.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, f.quantity(t, locA).Equal(decimal.NewFromInt(3)))
	assert.True(t, f.quantity(t, locB).Equal(decimal.NewFromInt(7)))
}

func TestValidateMove_AdjustmentNegativoInsuficiente(t *testing.T) {
	f := newFixture(t)
	f.setStock(t, locB, 2)

	move, err := f.uc.CreateMove(context.Background(), ledger.CreateMoveInput{
		Type:                  entity.MoveTypeAdjustment,
		ProductID:             productID,
		DestinationLocationID: locB,
		Quantity:              decimal.NewFromInt(-3),
		UserID:                testUser,
	})
	require.NoError(t, err)

	err = f.uc.ValidateMove(context.Background(), move.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, f.quantity(t, locB).Equal(decimal.NewFromInt(2)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Idempotencia y estados terminales
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateMove_SegundaValidacionNoAplicaDoble(t *testing.T) {
	f := newFixture(t)

	move, err := f.uc.CreateMove(context.Background(), receiptInput(10))
	require.NoError(t, err)
	require.NoError(t, f.uc.ValidateMove(context.Background(), move.ID))

	err = f.uc.ValidateMove(context.Background(), move.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)

	assert.True(t, f.quantity(t, locB).Equal(decimal.NewFromInt(10)),
		"la segunda validación nunca debe aplicar el efecto de nuevo")
}

func TestValidateMove_MovimientoInexistente(t *testing.T) {
	f := newFixture(t)
	err := f.uc.ValidateMove(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancelMove_BorradorSeCancelaSinEfecto(t *testing.T) {
	f := newFixture(t)
	f.setStock(t, locA, 50)

	move, err := f.uc.CreateMove(context.Background(), deliveryInput(10))
	require.NoError(t, err)
	require.NoError(t, f.uc.CancelMove(context.Background(), move.ID))

	got, err := f.uc.GetMove(context.Background(), move.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.MoveStatusCancelled, got.Status)
	assert.Nil(t, got.ValidatedAt)
	assert.True(t, f.quantity(t, locA).Equal(decimal.NewFromInt(50)))
}

func TestCancelMove_ValidadoNoSeCancela(t *testing.T) {
	f := newFixture(t)

	move, err := f.uc.CreateMove(context.Background(), receiptInput(5))
	require.NoError(t, err)
	require.NoError(t, f.uc.ValidateMove(context.Background(), move.ID))

	err = f.uc.CancelMove(context.Background(), move.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
}

func TestValidateMove_CanceladoNoSeValida(t *testing.T) {
	f := newFixture(t)
	f.setStock(t, locA, 50)

	move, err := f.uc.CreateMove(context.Background(), deliveryInput(10))
	require.NoError(t, err)
	require.NoError(t, f.uc.CancelMove(context.Background(), move.ID))

	err = f.uc.ValidateMove(context.Background(), move.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
	assert.True(t, f.quantity(t, locA).Equal(decimal.NewFromInt(50)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia — validaciones simultáneas contra el mismo stock
// ──────────────────────────────────────────────────────────────────────────────

// Diez deliveries de 10 unidades contra 50 disponibles, validados en
// paralelo: exactamente cinco deben validarse y el resto fallar por stock
// insuficiente. El resultado es determinista en conjunto aunque el orden no
// lo sea.
func TestValidateMove_ConcurrenciaStockInsuficiente(t *testing.T) {
	f := newFixture(t)
	f.setStock(t, locA, 50)

	const n = 10
	moveIDs := make([]string, n)
	for i := 0; i < n; i++ {
		move, err := f.uc.CreateMove(context.Background(), deliveryInput(10))
		require.NoError(t, err)
		moveIDs[i] = move.ID
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = f.uc.ValidateMove(context.Background(), moveIDs[i])
		}(i)
	}
	wg.Wait()

	var validated, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			validated++
		case err == domain.ErrInsufficientStock:
			insufficient++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 5, validated, "solo cinco deliveries caben en 50 unidades")
	assert.Equal(t, 5, insufficient)
	assert.True(t, f.quantity(t, locA).IsZero())
}

// Validaciones concurrentes del mismo movimiento: exactamente una gana.
func TestValidateMove_ConcurrenciaMismoMovimiento(t *testing.T) {
	f := newFixture(t)

	move, err := f.uc.CreateMove(context.Background(), receiptInput(10))
	require.NoError(t, err)

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = f.uc.ValidateMove(context.Background(), move.ID)
		}(i)
	}
	wg.Wait()

	var ok, already int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case err == domain.ErrAlreadyProcessed:
			already++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, ok, "solo una validación debe ganar")
	assert.Equal(t, n-1, already)
	assert.True(t, f.quantity(t, locB).Equal(decimal.NewFromInt(10)),
		"el efecto se aplica exactamente una vez")
}
