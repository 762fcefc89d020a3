package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo.
// El stock total no se cachea en esta tabla: se deriva sumando las filas
// de stock por ubicación. Solo el motor de validación de movimientos
// escribe cantidades; el catálogo nunca las toca.
type Product struct {
	ID           string
	SKU          string // código único legible para negocio
	Name         string
	Description  string
	UnitMeasure  string
	ReorderPoint decimal.Decimal // umbral de reposición (>= 0)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
