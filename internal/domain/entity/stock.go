package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa la cantidad en reposo de un producto en una ubicación.
// La ausencia de fila equivale a cantidad cero; una fila en cero es válida
// y se conserva (las filas se crean de forma perezosa y nunca se borran).
type Stock struct {
	ProductID  string
	LocationID string
	Quantity   decimal.Decimal
	UpdatedAt  time.Time
}
