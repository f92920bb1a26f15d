package service

import (
	"context"
	"fmt"

	"snapshop/internal/model"
	"snapshop/internal/repository"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List returns a page of products ordered by ID.
func (s *productService) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	filter.Limit, filter.Offset = normalizePage(filter.Limit, filter.Offset)

	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).
			Int("limit", filter.Limit).
			Int("offset", filter.Offset).
			Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	s.logger.Debug().
		Int("count", len(products)).
		Int("limit", filter.Limit).
		Int("offset", filter.Offset).
		Msg("listed products")

	return products, nil
}

// Get retrieves a single product by ID. Absence is reported as (nil, nil) so
// the caller decides how to surface it.
func (s *productService) Get(ctx context.Context, id string) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// Create validates and stores a new product.
func (s *productService) Create(ctx context.Context, p model.Product) (*model.Product, error) {
	if err := s.productRepo.Insert(ctx, &p); err != nil {
		if model.IsValidation(err) {
			s.logger.Warn().Err(err).Msg("rejected invalid product")
			return nil, err
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().Str("product_id", p.ID).Msg("product created")

	return &p, nil
}

// Edit loads the product, overwrites the fields present in patch and stores it.
func (s *productService) Edit(ctx context.Context, id string, patch model.ProductPatch) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		s.logger.Debug().Str("product_id", id).Msg("product to edit not found")
		return nil, fmt.Errorf("product %s: %w", id, model.ErrNotFound)
	}

	patch.Apply(product)

	if err := s.productRepo.Replace(ctx, product); err != nil {
		if model.IsValidation(err) {
			s.logger.Warn().Err(err).Str("product_id", id).Msg("rejected invalid product edit")
			return nil, err
		}
		return nil, fmt.Errorf("failed to edit product: %w", err)
	}

	s.logger.Info().Str("product_id", id).Msg("product edited")

	return product, nil
}

// Delete removes a product.
func (s *productService) Delete(ctx context.Context, id string) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}
