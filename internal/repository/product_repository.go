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

// productRepository implements the ProductRepository interface over the
// products document collection.
type productRepository struct {
	db       DB
	validate *validatorv10.Validate
	newID    IDGenerator
	logger   zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(db DB, validate *validatorv10.Validate, newID IDGenerator, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		db:       db,
		validate: validate,
		newID:    newID,
		logger:   logger.With().Str("repository", "product").Logger(),
	}
}

// List returns a page of products ordered by ID.
func (r *productRepository) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	var c criteria
	if filter.Tag != nil {
		c.add(`doc @> jsonb_build_object('tags', jsonb_build_array(jsonb_build_object('title', $%d::text)))`, *filter.Tag)
	}
	query := "SELECT doc FROM products" + c.where() + " ORDER BY id" + c.page(filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, c.args...)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", filter.Limit).
			Int("offset", filter.Offset).
			Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	products, err := scanDocs[model.Product](rows)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to read product rows")
		return nil, err
	}

	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	var raw []byte
	err := r.db.QueryRow(ctx, `SELECT doc FROM products WHERE id = $1`, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	var p model.Product
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("failed to decode product %s: %w", id, err)
	}

	return &p, nil
}

// GetByIDs retrieves the existing products among ids.
func (r *productRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	rows, err := r.db.Query(ctx, `SELECT doc FROM products WHERE id = ANY($1)`, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query products by IDs")
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}

	return scanDocs[model.Product](rows)
}

// Count returns the number of stored products.
func (r *productRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}

// Insert validates p, assigns it a new ID and stores it.
func (r *productRepository) Insert(ctx context.Context, p *model.Product) error {
	p.ApplyDefaults()
	if err := validation.Check(r.validate, p); err != nil {
		return err
	}

	id, err := r.newID()
	if err != nil {
		return fmt.Errorf("failed to generate product ID: %w", err)
	}
	p.ID = id

	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode product: %w", err)
	}

	if _, err := r.db.Exec(ctx, `INSERT INTO products (id, doc) VALUES ($1, $2)`, p.ID, doc); err != nil {
		r.logger.Error().Err(err).Str("product_id", p.ID).Msg("failed to insert product")
		return fmt.Errorf("failed to insert product: %w", err)
	}

	r.logger.Debug().Str("product_id", p.ID).Msg("product inserted")

	return nil
}

// Replace validates p and overwrites the stored record.
func (r *productRepository) Replace(ctx context.Context, p *model.Product) error {
	p.ApplyDefaults()
	if err := validation.Check(r.validate, p); err != nil {
		return err
	}

	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode product: %w", err)
	}

	tag, err := r.db.Exec(ctx, `UPDATE products SET doc = $2, updated_at = NOW() WHERE id = $1`, p.ID, doc)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", p.ID).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", p.ID, model.ErrNotFound)
	}

	return nil
}

// Delete removes the product with the given ID.
func (r *productRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	r.logger.Debug().
		Str("product_id", id).
		Int64("deleted", tag.RowsAffected()).
		Msg("product delete executed")

	return nil
}
