package repository

import "github.com/stockmaster/stockmaster-api/internal/domain/entity"

// ProductRepository puerto de persistencia para el catálogo de productos.
// Las cantidades de stock no se tocan por aquí: eso es exclusivo del ledger.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
}
