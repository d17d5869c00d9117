package ports

import (
	"context"

	"github.com/commercelab/microshop/internal/core/domain/order"
	"github.com/commercelab/microshop/internal/core/domain/product"
	"github.com/commercelab/microshop/internal/core/domain/user"
)

type ProductService interface {
	ListProducts(ctx context.Context) ([]product.Product, error)
	GetProduct(ctx context.Context, id int64) (*product.Product, error)
	CreateProduct(ctx context.Context, req *product.CreateProductRequest) (int64, error)
}

type UserService interface {
	GetUser(ctx context.Context, id int64) (*user.User, error)
	CreateUser(ctx context.Context, req *user.CreateUserRequest) (int64, error)
}

type OrderService interface {
	GetOrder(ctx context.Context, id int64) (*order.Order, error)
	CreateOrder(ctx context.Context, req *order.CreateOrderRequest) (int64, error)
}
