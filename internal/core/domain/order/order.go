package order

import (
	"math"
	"strings"
	"time"

	"github.com/commercelab/microshop/internal/core/domain/apperror"
)

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// Item is one order line with the unit price snapshotted at order time.
type Item struct {
	ProductID    int64   `json:"productId"`
	Quantity     int     `json:"quantity"`
	ProductPrice float64 `json:"productPrice"`
}

// Order is an order record. TotalAmount is derived from the line items;
// status transitions past PENDING are driven by queue consumers.
type Order struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"userID"`
	Products    []Item    `json:"products"`
	TotalAmount float64   `json:"totalAmount"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateOrderRequest represents the request to place a new order.
// TotalAmount is optional; when present it must match the computed total.
type CreateOrderRequest struct {
	UserID      string   `json:"userID"`
	Products    []Item   `json:"products"`
	TotalAmount *float64 `json:"totalAmount,omitempty"`
}

// Total sums quantity times unit price across the given items.
func Total(items []Item) float64 {
	var total float64
	for _, it := range items {
		total += float64(it.Quantity) * it.ProductPrice
	}
	return total
}

func (r *CreateOrderRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return apperror.Validation("userID is required")
	}
	if len(r.Products) == 0 {
		return apperror.Validation("an order requires at least one line item")
	}
	for i, it := range r.Products {
		if it.ProductID <= 0 {
			return apperror.Validation("line item %d: productId is required", i)
		}
		if it.Quantity < 1 {
			return apperror.Validation("line item %d: quantity must be at least 1", i)
		}
		if it.ProductPrice < 0 {
			return apperror.Validation("line item %d: productPrice must not be negative", i)
		}
	}
	if r.TotalAmount != nil {
		if math.Abs(*r.TotalAmount-Total(r.Products)) > 1e-9 {
			return apperror.Validation("totalAmount %.2f does not match the line items", *r.TotalAmount)
		}
	}
	return nil
}

// Seed returns the initial order fixtures, with totals computed from the
// line items rather than carried as literals.
func Seed() []Order {
	items := []Item{
		{ProductID: 1, Quantity: 2, ProductPrice: 999.99},
		{ProductID: 2, Quantity: 34, ProductPrice: 69.99},
	}
	return []Order{
		{
			ID:          1,
			UserID:      "asads2",
			Products:    items,
			TotalAmount: Total(items),
			Status:      StatusPending,
			CreatedAt:   time.Now().UTC(),
		},
	}
}
