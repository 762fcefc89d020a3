package repository

import "github.com/stockmaster/stockmaster-api/internal/domain/entity"

// WarehouseRepository puerto de persistencia para almacenes.
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	List(limit, offset int) ([]*entity.Warehouse, error)
}

// LocationRepository puerto de persistencia para ubicaciones.
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Location, error)
	List(limit, offset int) ([]*entity.Location, error)
}
