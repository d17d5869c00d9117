package services

import (
	"context"
	"strconv"
	"time"

	"github.com/commercelab/microshop/internal/core/domain/apperror"
	"github.com/commercelab/microshop/internal/core/domain/product"
	"github.com/commercelab/microshop/internal/core/ports"
	"github.com/sirupsen/logrus"
)

const productsListKey = "products"

func productKey(id int64) string { return "product:" + strconv.FormatInt(id, 10) }

// ProductService serves catalog reads cache-first with the record store as
// fallback, and owns catalog writes.
type ProductService struct {
	store  ports.ProductStore
	cache  ports.Cache
	ttl    time.Duration
	logger *logrus.Logger
}

func NewProductService(store ports.ProductStore, cache ports.Cache, ttl time.Duration, logger *logrus.Logger) *ProductService {
	return &ProductService{store: store, cache: cache, ttl: ttl, logger: logger}
}

func (s *ProductService) ListProducts(ctx context.Context) ([]product.Product, error) {
	return loadListWithSingleflight(s.cache, ctx, productsListKey, s.ttl, func() ([]product.Product, error) {
		return s.store.List(), nil
	})
}

func (s *ProductService) GetProduct(ctx context.Context, id int64) (*product.Product, error) {
	if v, ok := cacheGet[product.Product](s.cache, ctx, productKey(id)); ok {
		return v, nil
	}
	p, ok := s.store.Get(id)
	if !ok {
		// never cache a negative result
		return nil, apperror.NotFound("product with id %d not found", id)
	}
	cacheSetSilently(s.cache, ctx, productKey(id), p, s.ttl)
	return &p, nil
}

// CreateProduct adds the product to the store, writes the per-product cache
// entry through and invalidates the collection key.
func (s *ProductService) CreateProduct(ctx context.Context, req *product.CreateProductRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}
	p := product.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	}
	id := s.store.Add(p)
	p.ID = id

	cacheSetSilently(s.cache, ctx, productKey(id), p, s.ttl)
	if s.cache != nil {
		_ = s.cache.Delete(ctx, productsListKey)
	}

	s.logger.WithFields(logrus.Fields{"product_id": id, "name": p.Name}).Info("product created")
	return id, nil
}

var _ ports.ProductService = (*ProductService)(nil)
