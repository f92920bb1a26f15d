package service

import (
	"context"

	"snapshop/internal/model"
)

// DefaultLimit is the page size used when none is requested.
const DefaultLimit = 25

// ProductService defines operations for product management.
type ProductService interface {
	// List returns a page of products ordered by ID.
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// Get retrieves a single product by ID, or nil if it does not exist.
	Get(ctx context.Context, id string) (*model.Product, error)

	// Create validates and stores a new product.
	Create(ctx context.Context, p model.Product) (*model.Product, error)

	// Edit applies a partial update to an existing product.
	Edit(ctx context.Context, id string, patch model.ProductPatch) (*model.Product, error)

	// Delete removes a product. Deleting a missing product succeeds.
	Delete(ctx context.Context, id string) error
}

// OrderService defines operations for order management.
type OrderService interface {
	// List returns a page of orders ordered by ID.
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)

	// Get retrieves an order with its products expanded, or nil if it does
	// not exist.
	Get(ctx context.Context, id string) (*model.OrderView, error)

	// Create validates and stores a new order and returns it expanded.
	Create(ctx context.Context, o model.Order) (*model.OrderView, error)

	// Edit applies a partial update to an existing order.
	Edit(ctx context.Context, id string, patch model.OrderPatch) (*model.Order, error)

	// Delete removes an order. Deleting a missing order succeeds.
	Delete(ctx context.Context, id string) error
}

// normalizePage fills in the default page size and drops negative offsets.
// Large limits are passed through unchanged so consecutive pages never skip
// records.
func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
