package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MoveTypeReceipt    = "RECEIPT"    // entrada desde proveedor
	MoveTypeDelivery   = "DELIVERY"   // salida hacia cliente
	MoveTypeTransfer   = "TRANSFER"   // traslado entre ubicaciones
	MoveTypeAdjustment = "ADJUSTMENT" // ajuste tras conteo físico (delta con signo)
)

// Estados del ciclo de vida de un movimiento.
// DRAFT es el único estado inicial; VALIDATED y CANCELLED son terminales.
const (
	MoveStatusDraft     = "DRAFT"
	MoveStatusValidated = "VALIDATED"
	MoveStatusCancelled = "CANCELLED"
)

// StockMove representa un cambio propuesto de inventario, auditable.
// El registro nunca se borra; solo Status y ValidatedAt mutan, exactamente
// una vez, dentro de la transacción de validación o cancelación.
type StockMove struct {
	ID                    string
	Type                  string
	ProductID             string
	SourceLocationID      string // vacío si el tipo no lo usa
	DestinationLocationID string // vacío si el tipo no lo usa
	Quantity              decimal.Decimal // magnitud positiva; ADJUSTMENT guarda el delta con signo
	Status                string
	Reference             string // factura, orden, nota de conteo, etc.
	Notes                 string
	CreatedAt             time.Time
	ValidatedAt           *time.Time
	CreatedBy             string // UserID
}

// IsTerminal indica si el movimiento ya alcanzó un estado final.
func (m *StockMove) IsTerminal() bool {
	return m.Status == MoveStatusValidated || m.Status == MoveStatusCancelled
}
