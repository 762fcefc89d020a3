package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stockmaster/stockmaster-api/internal/domain"
	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
	"github.com/stockmaster/stockmaster-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository        = (*ProductRepo)(nil)
	_ repository.WarehouseRepository      = (*WarehouseRepo)(nil)
	_ repository.LocationRepository       = (*LocationRepo)(nil)
	_ repository.StockRepository          = (*StockRepo)(nil)
	_ repository.StockMoveRepository      = (*StockMoveRepo)(nil)
	_ repository.InventoryLevelRepository = (*InventoryLevelRepo)(nil)
)

// ProductRepo repositorio de productos en memoria.
type ProductRepo struct {
	s *Store
}

// NewProductRepository construye el repositorio sobre el store.
func NewProductRepository(s *Store) *ProductRepo { return &ProductRepo{s: s} }

func (r *ProductRepo) Create(product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.SKU == product.SKU {
			return domain.ErrDuplicate
		}
	}
	r.s.products[product.ID] = *product
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if p, ok := r.s.products[id]; ok {
		cp := p
		return &cp, nil
	}
	return nil, nil
}

func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if p.SKU == sku {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		cp := p
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return page(all, limit, offset), nil
}

// WarehouseRepo repositorio de almacenes en memoria.
type WarehouseRepo struct {
	s *Store
}

// NewWarehouseRepository construye el repositorio sobre el store.
func NewWarehouseRepository(s *Store) *WarehouseRepo { return &WarehouseRepo{s: s} }

func (r *WarehouseRepo) Create(warehouse *entity.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.warehouses[warehouse.ID] = *warehouse
	return nil
}

func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if w, ok := r.s.warehouses[id]; ok {
		cp := w
		return &cp, nil
	}
	return nil, nil
}

func (r *WarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := make([]*entity.Warehouse, 0, len(r.s.warehouses))
	for _, w := range r.s.warehouses {
		cp := w
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return page(all, limit, offset), nil
}

// LocationRepo repositorio de ubicaciones en memoria.
type LocationRepo struct {
	s *Store
}

// NewLocationRepository construye el repositorio sobre el store.
func NewLocationRepository(s *Store) *LocationRepo { return &LocationRepo{s: s} }

func (r *LocationRepo) Create(location *entity.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.locations[location.ID] = *location
	return nil
}

func (r *LocationRepo) GetByID(id string) (*entity.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if l, ok := r.s.locations[id]; ok {
		cp := l
		return &cp, nil
	}
	return nil, nil
}

func (r *LocationRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Location, error) {
	return r.listWhere(func(l entity.Location) bool { return l.WarehouseID == warehouseID }, limit, offset)
}

func (r *LocationRepo) List(limit, offset int) ([]*entity.Location, error) {
	return r.listWhere(func(entity.Location) bool { return true }, limit, offset)
}

func (r *LocationRepo) listWhere(keep func(entity.Location) bool, limit, offset int) ([]*entity.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var all []*entity.Location
	for _, l := range r.s.locations {
		if keep(l) {
			cp := l
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, limit, offset), nil
}

// StockRepo repositorio de stock en memoria. Con inTx=true asume que el
// TxRunner ya retiene el lock del store.
type StockRepo struct {
	s    *Store
	inTx bool
}

// NewStockRepository construye el repositorio sobre el store (fuera de tx).
func NewStockRepository(s *Store) *StockRepo { return &StockRepo{s: s} }

func (r *StockRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.s.mu.RLock()
	return r.s.mu.RUnlock
}

func (r *StockRepo) Get(productID, locationID string) (*entity.Stock, error) {
	unlock := r.lock()
	defer unlock()
	return r.getLocked(productID, locationID), nil
}

// GetForUpdate en memoria equivale a Get: el lock global del TxRunner ya
// excluye a cualquier otra transacción.
func (r *StockRepo) GetForUpdate(productID, locationID string) (*entity.Stock, error) {
	return r.Get(productID, locationID)
}

func (r *StockRepo) getLocked(productID, locationID string) *entity.Stock {
	if s, ok := r.s.stock[stockKey{productID, locationID}]; ok {
		cp := s
		return &cp
	}
	return &entity.Stock{ProductID: productID, LocationID: locationID, Quantity: decimal.Zero}
}

func (r *StockRepo) Upsert(stock *entity.Stock) error {
	if !r.inTx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	r.s.stock[stockKey{stock.ProductID, stock.LocationID}] = *stock
	return nil
}

func (r *StockRepo) SumByProduct(productID string) (decimal.Decimal, error) {
	unlock := r.lock()
	defer unlock()
	total := decimal.Zero
	for key, s := range r.s.stock {
		if key.productID == productID {
			total = total.Add(s.Quantity)
		}
	}
	return total, nil
}

func (r *StockRepo) ListByProduct(productID string) ([]*entity.Stock, error) {
	unlock := r.lock()
	defer unlock()
	var list []*entity.Stock
	for key, s := range r.s.stock {
		if key.productID == productID {
			cp := s
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].LocationID < list[j].LocationID })
	return list, nil
}

func (r *StockRepo) ListByLocation(locationID string, limit, offset int) ([]*entity.Stock, error) {
	unlock := r.lock()
	defer unlock()
	var list []*entity.Stock
	for key, s := range r.s.stock {
		if key.locationID == locationID {
			cp := s
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ProductID < list[j].ProductID })
	return page(list, limit, offset), nil
}

// StockMoveRepo ledger de movimientos en memoria. Con inTx=true asume el
// lock del TxRunner ya tomado.
type StockMoveRepo struct {
	s    *Store
	inTx bool
}

// NewStockMoveRepository construye el repositorio sobre el store (fuera de tx).
func NewStockMoveRepository(s *Store) *StockMoveRepo { return &StockMoveRepo{s: s} }

func (r *StockMoveRepo) Create(move *entity.StockMove) error {
	if !r.inTx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	r.s.moves[move.ID] = *move
	r.s.moveOrder = append(r.s.moveOrder, move.ID)
	return nil
}

func (r *StockMoveRepo) GetByID(id string) (*entity.StockMove, error) {
	if !r.inTx {
		r.s.mu.RLock()
		defer r.s.mu.RUnlock()
	}
	if m, ok := r.s.moves[id]; ok {
		cp := m
		return &cp, nil
	}
	return nil, nil
}

func (r *StockMoveRepo) GetForUpdate(id string) (*entity.StockMove, error) {
	return r.GetByID(id)
}

func (r *StockMoveRepo) SetStatus(id, status string, validatedAt *time.Time) error {
	if !r.inTx {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	m, ok := r.s.moves[id]
	if !ok {
		return nil
	}
	m.Status = status
	m.ValidatedAt = validatedAt
	r.s.moves[id] = m
	return nil
}

func (r *StockMoveRepo) ListRecent(limit, offset int) ([]*entity.StockMove, error) {
	return r.listWhere(func(entity.StockMove) bool { return true }, nil, nil, limit, offset)
}

func (r *StockMoveRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMove, error) {
	return r.listWhere(func(m entity.StockMove) bool { return m.ProductID == productID }, from, to, limit, offset)
}

func (r *StockMoveRepo) ListByLocation(locationID string, from, to *time.Time, limit, offset int) ([]*entity.StockMove, error) {
	return r.listWhere(func(m entity.StockMove) bool {
		return m.SourceLocationID == locationID || m.DestinationLocationID == locationID
	}, from, to, limit, offset)
}

func (r *StockMoveRepo) listWhere(keep func(entity.StockMove) bool, from, to *time.Time, limit, offset int) ([]*entity.StockMove, error) {
	if !r.inTx {
		r.s.mu.RLock()
		defer r.s.mu.RUnlock()
	}
	var list []*entity.StockMove
	// moveOrder es orden de inserción; recorremos al revés para "más reciente primero"
	for i := len(r.s.moveOrder) - 1; i >= 0; i-- {
		m, ok := r.s.moves[r.s.moveOrder[i]]
		if !ok || !keep(m) {
			continue
		}
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && m.CreatedAt.After(*to) {
			continue
		}
		cp := m
		list = append(list, &cp)
	}
	return page(list, limit, offset), nil
}

// InventoryLevelRepo reporte de bajo stock en memoria.
type InventoryLevelRepo struct {
	s *Store
}

// NewInventoryLevelRepository construye el repositorio sobre el store.
func NewInventoryLevelRepository(s *Store) *InventoryLevelRepo { return &InventoryLevelRepo{s: s} }

func (r *InventoryLevelRepo) ListLowStock(ctx context.Context, limit, offset int) ([]repository.LowStockItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var items []repository.LowStockItem
	for _, p := range r.s.products {
		total := decimal.Zero
		for key, s := range r.s.stock {
			if key.productID == p.ID {
				total = total.Add(s.Quantity)
			}
		}
		if total.LessThanOrEqual(p.ReorderPoint) {
			items = append(items, repository.LowStockItem{
				ProductID:    p.ID,
				SKU:          p.SKU,
				Name:         p.Name,
				UnitMeasure:  p.UnitMeasure,
				CurrentStock: total,
				ReorderPoint: p.ReorderPoint,
			})
		}
	}
	sort.Slice(items, func(i, j int) bool {
		di := items[i].ReorderPoint.Sub(items[i].CurrentStock)
		dj := items[j].ReorderPoint.Sub(items[j].CurrentStock)
		if !di.Equal(dj) {
			return di.GreaterThan(dj)
		}
		return items[i].SKU < items[j].SKU
	})
	return page(items, limit, offset), nil
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
