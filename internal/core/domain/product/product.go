package product

import (
	"strings"

	"github.com/commercelab/microshop/internal/core/domain/apperror"
)

// Product is a catalog entry. The record store is the only writer; cached
// copies are immutable snapshots.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

// CreateProductRequest represents the request to add a new product.
type CreateProductRequest struct {
	Name        string  `json:"productName"`
	Description string  `json:"productDes,omitempty"`
	Price       float64 `json:"productPrice"`
	Stock       int     `json:"productStock"`
}

func (r *CreateProductRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return apperror.Validation("product name is required")
	}
	if r.Price < 0 {
		return apperror.Validation("product price must not be negative")
	}
	if r.Stock < 0 {
		return apperror.Validation("product stock must not be negative")
	}
	return nil
}

// Seed returns the initial catalog fixtures.
func Seed() []Product {
	return []Product{
		{ID: 1, Name: "Laptop", Description: "a very powerful laptop", Price: 999.99, Stock: 10},
		{ID: 2, Name: "Headphones", Description: "a very loud bass-thumping blood-pumping headphone", Price: 199.99, Stock: 6},
	}
}
