package entity

import "time"

// Warehouse representa un almacén físico que agrupa ubicaciones.
type Warehouse struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
