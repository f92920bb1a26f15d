package repository

import (
	"context"

	"snapshop/internal/model"
)

// ProductRepository defines the data access operations of the product collection.
type ProductRepository interface {
	// List returns a page of products ordered by ID, narrowed by the filter.
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// GetByID retrieves a single product by its ID.
	// Returns (nil, nil) if it does not exist.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetByIDs retrieves the existing products among ids, in no particular order.
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)

	// Count returns the number of stored products.
	Count(ctx context.Context) (int, error)

	// Insert validates p, assigns it a new ID and stores it.
	Insert(ctx context.Context, p *model.Product) error

	// Replace validates p and overwrites the stored record with the same ID.
	// Returns model.ErrNotFound if no such record exists.
	Replace(ctx context.Context, p *model.Product) error

	// Delete removes the product with the given ID. Deleting a missing
	// product is not an error.
	Delete(ctx context.Context, id string) error
}

// OrderRepository defines the data access operations of the order collection.
type OrderRepository interface {
	// List returns a page of orders ordered by ID, narrowed by the filter.
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)

	// GetByID retrieves an order by its ID.
	// Returns (nil, nil) if it does not exist.
	GetByID(ctx context.Context, id string) (*model.Order, error)

	// Insert applies defaults, validates o, assigns it a new ID and stores it.
	Insert(ctx context.Context, o *model.Order) error

	// Replace validates o and overwrites the stored record with the same ID.
	// Returns model.ErrNotFound if no such record exists.
	Replace(ctx context.Context, o *model.Order) error

	// Delete removes the order with the given ID. Deleting a missing order is
	// not an error.
	Delete(ctx context.Context, id string) error
}
