package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"snapshop/internal/model"
	"snapshop/internal/validation"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface over the orders
// document collection.
type orderRepository struct {
	db       DB
	validate *validatorv10.Validate
	newID    IDGenerator
	logger   zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(db DB, validate *validatorv10.Validate, newID IDGenerator, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		db:       db,
		validate: validate,
		newID:    newID,
		logger:   logger.With().Str("repository", "order").Logger(),
	}
}

// List returns a page of orders ordered by ID.
func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	var c criteria
	if filter.ProductID != nil {
		c.add(`doc @> jsonb_build_object('products', jsonb_build_array($%d::text))`, *filter.ProductID)
	}
	if filter.Status != nil {
		c.add(`doc @> jsonb_build_object('status', $%d::text)`, string(*filter.Status))
	}
	query := "SELECT doc FROM orders" + c.where() + " ORDER BY id" + c.page(filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, c.args...)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", filter.Limit).
			Int("offset", filter.Offset).
			Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}

	orders, err := scanDocs[model.Order](rows)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to read order rows")
		return nil, err
	}

	return orders, nil
}

// GetByID retrieves an order by its ID.
func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	var raw []byte
	err := r.db.QueryRow(ctx, `SELECT doc FROM orders WHERE id = $1`, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("order_id", id).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	var o model.Order
	if err := json.Unmarshal(raw, &o); err != nil {
		return nil, fmt.Errorf("failed to decode order %s: %w", id, err)
	}

	return &o, nil
}

// Insert applies defaults, validates o, assigns it a new ID and stores it.
func (r *orderRepository) Insert(ctx context.Context, o *model.Order) error {
	o.ApplyDefaults()
	if err := validation.Check(r.validate, o); err != nil {
		return err
	}

	id, err := r.newID()
	if err != nil {
		return fmt.Errorf("failed to generate order ID: %w", err)
	}
	o.ID = id

	doc, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("failed to encode order: %w", err)
	}

	if _, err := r.db.Exec(ctx, `INSERT INTO orders (id, doc) VALUES ($1, $2)`, o.ID, doc); err != nil {
		r.logger.Error().Err(err).Str("order_id", o.ID).Msg("failed to insert order")
		return fmt.Errorf("failed to insert order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", o.ID).
		Int("product_count", len(o.Products)).
		Msg("order inserted")

	return nil
}

// Replace validates o and overwrites the stored record.
func (r *orderRepository) Replace(ctx context.Context, o *model.Order) error {
	if err := validation.Check(r.validate, o); err != nil {
		return err
	}

	doc, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("failed to encode order: %w", err)
	}

	tag, err := r.db.Exec(ctx, `UPDATE orders SET doc = $2, updated_at = NOW() WHERE id = $1`, o.ID, doc)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", o.ID).Msg("failed to update order")
		return fmt.Errorf("failed to update order: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %s: %w", o.ID, model.ErrNotFound)
	}

	return nil
}

// Delete removes the order with the given ID.
func (r *orderRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id).Msg("failed to delete order")
		return fmt.Errorf("failed to delete order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", id).
		Int64("deleted", tag.RowsAffected()).
		Msg("order delete executed")

	return nil
}
