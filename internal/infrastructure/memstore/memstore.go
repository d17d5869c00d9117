// Package memstore holds the authoritative in-process record stores. Each
// store serializes mutations behind a single lock and hands out identifiers
// from a strictly monotonic counter, so concurrent adds never collide and
// readers never see a partially written entity.
package memstore

import (
	"sync"

	"github.com/commercelab/microshop/internal/core/domain/order"
	"github.com/commercelab/microshop/internal/core/domain/product"
	"github.com/commercelab/microshop/internal/core/domain/user"
	"github.com/commercelab/microshop/internal/core/ports"
)

type store[T any] struct {
	mu     sync.RWMutex
	items  []T
	byID   map[int64]int
	nextID int64
	idOf   func(T) int64
	setID  func(*T, int64)
}

func newStore[T any](seed []T, idOf func(T) int64, setID func(*T, int64)) *store[T] {
	s := &store[T]{
		byID:  make(map[int64]int, len(seed)),
		idOf:  idOf,
		setID: setID,
	}
	var max int64
	for _, it := range seed {
		id := idOf(it)
		s.byID[id] = len(s.items)
		s.items = append(s.items, it)
		if id > max {
			max = id
		}
	}
	// counter starts above every fixture ID
	s.nextID = max + 1
	return s
}

func (s *store[T]) Get(id int64) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.byID[id]
	if !ok {
		var zero T
		return zero, false
	}
	return s.items[idx], true
}

func (s *store[T]) Add(item T) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.setID(&item, id)
	s.byID[id] = len(s.items)
	s.items = append(s.items, item)
	return id
}

func (s *store[T]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// NewProductStore creates a product store preloaded with seed.
func NewProductStore(seed []product.Product) ports.ProductStore {
	return newStore(seed,
		func(p product.Product) int64 { return p.ID },
		func(p *product.Product, id int64) { p.ID = id })
}

// NewUserStore creates a user store preloaded with seed.
func NewUserStore(seed []user.User) ports.UserStore {
	return newStore(seed,
		func(u user.User) int64 { return u.ID },
		func(u *user.User, id int64) { u.ID = id })
}

// NewOrderStore creates an order store preloaded with seed.
func NewOrderStore(seed []order.Order) ports.OrderStore {
	return newStore(seed,
		func(o order.Order) int64 { return o.ID },
		func(o *order.Order, id int64) { o.ID = id })
}
