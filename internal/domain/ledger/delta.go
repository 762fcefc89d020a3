package ledger

import (
	"github.com/shopspring/decimal"
	"github.com/stockmaster/stockmaster-api/internal/domain"
	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
)

// Delta es el cambio con signo que un movimiento aplica a una fila de stock
// al validarse. Se calcula una sola vez, dentro de la transacción de
// validación; este es el único lugar donde el tipo decide el signo.
type Delta struct {
	LocationID string
	Amount     decimal.Decimal
}

// DeltasFor devuelve las filas afectadas por el movimiento según su tipo.
// Un TRANSFER produce dos deltas que se netean a cero: el total por
// producto se conserva.
func DeltasFor(m *entity.StockMove) ([]Delta, error) {
	switch m.Type {
	case entity.MoveTypeReceipt:
		return []Delta{{LocationID: m.DestinationLocationID, Amount: m.Quantity}}, nil
	case entity.MoveTypeDelivery:
		return []Delta{{LocationID: m.SourceLocationID, Amount: m.Quantity.Neg()}}, nil
	case entity.MoveTypeTransfer:
		return []Delta{
			{LocationID: m.SourceLocationID, Amount: m.Quantity.Neg()},
			{LocationID: m.DestinationLocationID, Amount: m.Quantity},
		}, nil
	case entity.MoveTypeAdjustment:
		// El delta ya viene con signo desde la captura del conteo físico.
		return []Delta{{LocationID: m.DestinationLocationID, Amount: m.Quantity}}, nil
	}
	return nil, domain.ErrInvalidFields
}

// ValidateFields verifica la política de campos y de signo por tipo antes de
// crear el movimiento en borrador:
//
//	RECEIPT     destino únicamente, cantidad > 0
//	DELIVERY    origen únicamente, cantidad > 0
//	TRANSFER    origen y destino distintos, cantidad > 0
//	ADJUSTMENT  destino únicamente (la ubicación contada), delta != 0
func ValidateFields(moveType string, quantity decimal.Decimal, sourceID, destinationID string) error {
	switch moveType {
	case entity.MoveTypeReceipt:
		if sourceID != "" || destinationID == "" {
			return domain.ErrInvalidFields
		}
		if !quantity.IsPositive() {
			return domain.ErrInvalidQuantity
		}
	case entity.MoveTypeDelivery:
		if sourceID == "" || destinationID != "" {
			return domain.ErrInvalidFields
		}
		if !quantity.IsPositive() {
			return domain.ErrInvalidQuantity
		}
	case entity.MoveTypeTransfer:
		if sourceID == "" || destinationID == "" || sourceID == destinationID {
			return domain.ErrInvalidFields
		}
		if !quantity.IsPositive() {
			return domain.ErrInvalidQuantity
		}
	case entity.MoveTypeAdjustment:
		if sourceID != "" || destinationID == "" {
			return domain.ErrInvalidFields
		}
		if quantity.IsZero() {
			return domain.ErrInvalidQuantity
		}
	default:
		return domain.ErrInvalidFields
	}
	return nil
}
