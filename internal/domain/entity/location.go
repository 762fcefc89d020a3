package entity

import "time"

// Location representa una ubicación de almacenamiento dentro de un almacén.
// Puramente referencial: el ledger la consulta pero nunca la muta.
type Location struct {
	ID          string
	WarehouseID string
	Name        string
	CreatedAt   time.Time
}
