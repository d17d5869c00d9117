package ports

import (
	"github.com/commercelab/microshop/internal/core/domain/order"
	"github.com/commercelab/microshop/internal/core/domain/product"
	"github.com/commercelab/microshop/internal/core/domain/user"
)

// The record stores are the authoritative, in-process collections behind the
// cache. Add assigns a fresh identifier and returns it; Get reports ok=false
// when the identifier is unknown; List returns an insertion-order snapshot.
// Implementations serialize mutations so identifiers never collide and
// readers never observe a torn entity.

type ProductStore interface {
	Get(id int64) (product.Product, bool)
	Add(p product.Product) int64
	List() []product.Product
}

type UserStore interface {
	Get(id int64) (user.User, bool)
	Add(u user.User) int64
	List() []user.User
}

type OrderStore interface {
	Get(id int64) (order.Order, bool)
	Add(o order.Order) int64
	List() []order.Order
}
