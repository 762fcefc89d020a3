package memory

import (
	"maps"
	"slices"
	"sync"

	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
)

type stockKey struct {
	productID  string
	locationID string
}

// Store estado compartido de los repositorios en memoria. Un único mutex
// protege todo el estado; el TxRunner lo retiene durante la transacción
// completa, así que las transacciones son serializables por construcción.
// Pensado para tests y desarrollo local sin PostgreSQL.
type Store struct {
	mu         sync.RWMutex
	products   map[string]entity.Product
	warehouses map[string]entity.Warehouse
	locations  map[string]entity.Location
	stock      map[stockKey]entity.Stock
	moves      map[string]entity.StockMove
	moveOrder  []string // orden de inserción, para listados recientes
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{
		products:   make(map[string]entity.Product),
		warehouses: make(map[string]entity.Warehouse),
		locations:  make(map[string]entity.Location),
		stock:      make(map[stockKey]entity.Stock),
		moves:      make(map[string]entity.StockMove),
	}
}

// snapshot captura el estado que una transacción puede mutar (ledger y stock).
type snapshot struct {
	stock     map[stockKey]entity.Stock
	moves     map[string]entity.StockMove
	moveOrder []string
}

func (s *Store) takeSnapshot() snapshot {
	return snapshot{
		stock:     maps.Clone(s.stock),
		moves:     maps.Clone(s.moves),
		moveOrder: slices.Clone(s.moveOrder),
	}
}

func (s *Store) restore(snap snapshot) {
	s.stock = snap.stock
	s.moves = snap.moves
	s.moveOrder = snap.moveOrder
}
