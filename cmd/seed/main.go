// Seed de datos de desarrollo: un almacén con tres ubicaciones y un catálogo
// pequeño con stock inicial registrado a través del ledger (nunca escritura
// directa sobre la tabla de stock).
package main

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stockmaster/stockmaster-api/internal/application/catalog"
	"github.com/stockmaster/stockmaster-api/internal/application/inventory"
	"github.com/stockmaster/stockmaster-api/internal/application/ledger"
	"github.com/stockmaster/stockmaster-api/internal/infrastructure/postgres"
	"github.com/stockmaster/stockmaster-api/pkg/config"
	"github.com/stockmaster/stockmaster-api/pkg/logger"
)

const seedUser = "seed"

type seedProduct struct {
	sku          string
	name         string
	description  string
	unitMeasure  string
	reorderPoint string
	initialStock string
}

var seedProducts = []seedProduct{
	{"LAP-001", "Laptop Pro 15", "Portátil 15 pulgadas, 16GB RAM", "unit", "5", "12"},
	{"MON-001", "Monitor 27 4K", "Monitor IPS 27 pulgadas", "unit", "8", "20"},
	{"KEY-001", "Teclado mecánico", "Switches marrones, layout ES", "unit", "10", "35"},
	{"CAB-USB", "Cable USB-C 2m", "Carga y datos, 100W", "unit", "25", "0"},
	{"PAP-A4", "Papel A4", "Resma 500 hojas", "box", "15", "40"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	moveRepo := postgres.NewStockMoveRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	levelRepo := postgres.NewInventoryLevelRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledgerUC := ledger.NewUseCase(txRunner, moveRepo, productRepo, locationRepo)
	queryUC := inventory.NewQueryUseCase(productRepo, stockRepo, levelRepo, moveRepo)
	productUC := catalog.NewProductUseCase(productRepo, ledgerUC)
	locationUC := catalog.NewLocationUseCase(warehouseRepo, locationRepo)

	warehouse, err := locationUC.CreateWarehouse(ctx, "Main Warehouse", "Calle 100 #12-34, Bogotá")
	if err != nil {
		log.Fatal().Err(err).Msg("crear almacén")
	}
	log.Info().Str("warehouse_id", warehouse.ID).Msg("almacén creado")

	locationNames := []string{"Zone A", "Zone B", "Receiving"}
	locationIDs := make(map[string]string, len(locationNames))
	for _, name := range locationNames {
		loc, err := locationUC.CreateLocation(ctx, warehouse.ID, name)
		if err != nil {
			log.Fatal().Err(err).Str("location", name).Msg("crear ubicación")
		}
		locationIDs[name] = loc.ID
	}

	zoneA := locationIDs["Zone A"]
	for _, sp := range seedProducts {
		reorder, _ := decimal.NewFromString(sp.reorderPoint)
		initial, _ := decimal.NewFromString(sp.initialStock)
		product, err := productUC.CreateProduct(ctx, catalog.CreateProductInput{
			SKU:                    sp.sku,
			Name:                   sp.name,
			Description:            sp.description,
			UnitMeasure:            sp.unitMeasure,
			ReorderPoint:           reorder,
			InitialStock:           initial,
			InitialStockLocationID: zoneA,
			UserID:                 seedUser,
		})
		if err != nil {
			log.Fatal().Err(err).Str("sku", sp.sku).Msg("crear producto")
		}
		log.Info().Str("sku", product.SKU).Str("id", product.ID).Msg("producto creado")
	}

	// Actividad de ejemplo: una recepción validada y una transferencia en DRAFT
	products, err := productUC.ListProducts(ctx, 1, 0)
	if err != nil || len(products) == 0 {
		log.Fatal().Err(err).Msg("listar productos")
	}
	first := products[0]

	receipt, err := ledgerUC.CreateMove(ctx, ledger.CreateMoveInput{
		Type:                  "RECEIPT",
		ProductID:             first.ID,
		DestinationLocationID: locationIDs["Receiving"],
		Quantity:              decimal.NewFromInt(10),
		Reference:             "PO-0001",
		UserID:                seedUser,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("crear recepción")
	}
	if err := ledgerUC.ValidateMove(ctx, receipt.ID); err != nil {
		log.Fatal().Err(err).Msg("validar recepción")
	}

	transfer, err := ledgerUC.CreateMove(ctx, ledger.CreateMoveInput{
		Type:                  "TRANSFER",
		ProductID:             first.ID,
		SourceLocationID:      locationIDs["Receiving"],
		DestinationLocationID: zoneA,
		Quantity:              decimal.NewFromInt(4),
		Reference:             "TR-0001",
		Notes:                 "pendiente de confirmar por bodega",
		UserID:                seedUser,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("crear transferencia")
	}
	log.Info().Str("move_id", transfer.ID).Msg("transferencia en borrador creada")

	total, err := queryUC.GetInventory(ctx, first.ID, "")
	if err != nil {
		log.Fatal().Err(err).Msg("consultar stock")
	}
	log.Info().Str("sku", first.SKU).Str("total", total.String()).Msg("seed completado")
}
