package dto

import (
	"time"

	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
)

// CreateWarehouseRequest body para POST /api/warehouses.
type CreateWarehouseRequest struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// WarehouseResponse representación HTTP de un almacén.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// WarehouseResponseFrom mapea la entidad al DTO.
func WarehouseResponseFrom(w *entity.Warehouse) WarehouseResponse {
	return WarehouseResponse{ID: w.ID, Name: w.Name, Address: w.Address, CreatedAt: w.CreatedAt}
}

// CreateLocationRequest body para POST /api/locations.
type CreateLocationRequest struct {
	WarehouseID string `json:"warehouse_id"`
	Name        string `json:"name"`
}

// LocationResponse representación HTTP de una ubicación.
type LocationResponse struct {
	ID          string    `json:"id"`
	WarehouseID string    `json:"warehouse_id"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
}

// LocationResponseFrom mapea la entidad al DTO.
func LocationResponseFrom(l *entity.Location) LocationResponse {
	return LocationResponse{ID: l.ID, WarehouseID: l.WarehouseID, Name: l.Name, CreatedAt: l.CreatedAt}
}
