//go:build integration

// Tests de integración contra PostgreSQL real vía testcontainers.
// Ejecutar con: go test -tags integration ./internal/infrastructure/postgres/...
package postgres_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/stockmaster/stockmaster-api/internal/application/ledger"
	"github.com/stockmaster/stockmaster-api/internal/domain"
	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
	"github.com/stockmaster/stockmaster-api/internal/infrastructure/postgres"
	"github.com/stockmaster/stockmaster-api/pkg/config"
)

type pgFixture struct {
	ledgerUC  *ledger.UseCase
	stockRepo *postgres.StockRepo
	productID string
	locA      string
	locB      string
}

func setupPostgres(t *testing.T) *pgFixture {
	t.Helper()
	ctx := context.Background()

	migration, err := os.ReadFile(filepath.Join("..", "..", "..", "migrations", "001_init.sql"))
	require.NoError(t, err)

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("stockmaster_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, string(migration))
	require.NoError(t, err)

	productRepo := postgres.NewProductRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	moveRepo := postgres.NewStockMoveRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	now := time.Now()
	warehouseID := uuid.New().String()
	require.NoError(t, warehouseRepo.Create(&entity.Warehouse{
		ID: warehouseID, Name: "Principal", CreatedAt: now, UpdatedAt: now,
	}))

	f := &pgFixture{
		ledgerUC:  ledger.NewUseCase(txRunner, moveRepo, productRepo, locationRepo),
		stockRepo: stockRepo,
		productID: uuid.New().String(),
		locA:      uuid.New().String(),
		locB:      uuid.New().String(),
	}
	require.NoError(t, productRepo.Create(&entity.Product{
		ID: f.productID, SKU: "ITG-001", Name: "Producto integración",
		UnitMeasure: "unit", ReorderPoint: decimal.NewFromInt(5),
		CreatedAt: now, UpdatedAt: now,
	}))
	for _, id := range []string{f.locA, f.locB} {
		require.NoError(t, locationRepo.Create(&entity.Location{
			ID: id, WarehouseID: warehouseID, Name: "loc-" + id[:8], CreatedAt: now,
		}))
	}
	return f
}

func TestPostgres_CicloCompletoDelLedger(t *testing.T) {
	f := setupPostgres(t)
	ctx := context.Background()

	// Recepción: entra stock en locA.
	receipt, err := f.ledgerUC.CreateMove(ctx, ledger.CreateMoveInput{
		Type:                  entity.MoveTypeReceipt,
		ProductID:             f.productID,
		DestinationLocationID: f.locA,
		Quantity:              decimal.NewFromInt(30),
		Reference:             "PO-1",
		UserID:                "itg",
	})
	require.NoError(t, err)
	require.NoError(t, f.ledgerUC.ValidateMove(ctx, receipt.ID))

	// Transfer parcial hacia locB.
	transfer, err := f.ledgerUC.CreateMove(ctx, ledger.CreateMoveInput{
		Type:                  entity.MoveTypeTransfer,
		ProductID:             f.productID,
		SourceLocationID:      f.locA,
		DestinationLocationID: f.locB,
		Quantity:              decimal.NewFromInt(12),
		UserID:                "itg",
	})
	require.NoError(t, err)
	require.NoError(t, f.ledgerUC.ValidateMove(ctx, transfer.ID))

	stockA, err := f.stockRepo.Get(f.productID, f.locA)
	require.NoError(t, err)
	assert.True(t, stockA.Quantity.Equal(decimal.NewFromInt(18)))

	stockB, err := f.stockRepo.Get(f.productID, f.locB)
	require.NoError(t, err)
	assert.True(t, stockB.Quantity.Equal(decimal.NewFromInt(12)))

	total, err := f.stockRepo.SumByProduct(f.productID)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(30)), "el transfer conserva el total")
}

func TestPostgres_StockInsuficienteRevierteTransaccion(t *testing.T) {
	f := setupPostgres(t)
	ctx := context.Background()

	receipt, err := f.ledgerUC.CreateMove(ctx, ledger.CreateMoveInput{
		Type:                  entity.MoveTypeReceipt,
		ProductID:             f.productID,
		DestinationLocationID: f.locA,
		Quantity:              decimal.NewFromInt(5),
		UserID:                "itg",
	})
	require.NoError(t, err)
	require.NoError(t, f.ledgerUC.ValidateMove(ctx, receipt.ID))

	delivery, err := f.ledgerUC.CreateMove(ctx, ledger.CreateMoveInput{
		Type:             entity.MoveTypeDelivery,
		ProductID:        f.productID,
		SourceLocationID: f.locA,
		Quantity:         decimal.NewFromInt(6),
		UserID:           "itg",
	})
	require.NoError(t, err)

	err = f.ledgerUC.ValidateMove(ctx, delivery.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// El movimiento sigue en DRAFT y el stock intacto.
	got, err := f.ledgerUC.GetMove(ctx, delivery.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.MoveStatusDraft, got.Status)

	stockA, err := f.stockRepo.Get(f.productID, f.locA)
	require.NoError(t, err)
	assert.True(t, stockA.Quantity.Equal(decimal.NewFromInt(5)))
}

func TestPostgres_ValidacionDobleEsIdempotente(t *testing.T) {
	f := setupPostgres(t)
	ctx := context.Background()

	receipt, err := f.ledgerUC.CreateMove(ctx, ledger.CreateMoveInput{
		Type:                  entity.MoveTypeReceipt,
		ProductID:             f.productID,
		DestinationLocationID: f.locA,
		Quantity:              decimal.NewFromInt(9),
		UserID:                "itg",
	})
	require.NoError(t, err)
	require.NoError(t, f.ledgerUC.ValidateMove(ctx, receipt.ID))

	err = f.ledgerUC.ValidateMove(ctx, receipt.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)

	stockA, err := f.stockRepo.Get(f.productID, f.locA)
	require.NoError(t, err)
	assert.True(t, stockA.Quantity.Equal(decimal.NewFromInt(9)),
		"el efecto se aplica exactamente una vez")
}

// Dos recepciones concurrentes sobre una fila de stock que todavía no
// existe: ninguna escritura puede perderse. La fila se materializa en cero
// bajo bloqueo antes de releer, así que la segunda transacción espera a la
// primera y parte de su cantidad ya confirmada.
func TestPostgres_ValidacionesConcurrentesSobreFilaNueva(t *testing.T) {
	f := setupPostgres(t)
	ctx := context.Background()

	const n = 2
	moveIDs := make([]string, n)
	for i := 0; i < n; i++ {
		receipt, err := f.ledgerUC.CreateMove(ctx, ledger.CreateMoveInput{
			Type:                  entity.MoveTypeReceipt,
			ProductID:             f.productID,
			DestinationLocationID: f.locB, // sin fila de stock previa
			Quantity:              decimal.NewFromInt(100),
			UserID:                "itg",
		})
		require.NoError(t, err)
		moveIDs[i] = receipt.ID
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = f.ledgerUC.ValidateMove(ctx, moveIDs[i])
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "validación %d", i)
	}

	stockB, err := f.stockRepo.Get(f.productID, f.locB)
	require.NoError(t, err)
	assert.True(t, stockB.Quantity.Equal(decimal.NewFromInt(200)),
		"ambos deltas deben aplicarse exactamente una vez cada uno")
}
