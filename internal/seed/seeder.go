package seed

import (
	"context"
	"errors"
	"fmt"

	"snapshop/internal/model"

	"github.com/rs/zerolog"
)

// ProductCounter reports how many products are stored.
type ProductCounter interface {
	Count(ctx context.Context) (int, error)
}

// ProductCreator stores a new product.
type ProductCreator interface {
	Create(ctx context.Context, p model.Product) (*model.Product, error)
}

// Seeder imports a catalogue file into an empty product collection.
type Seeder struct {
	loader   Loader
	counter  ProductCounter
	products ProductCreator
	logger   zerolog.Logger
}

// NewSeeder creates a new catalogue seeder.
func NewSeeder(loader Loader, counter ProductCounter, products ProductCreator, logger zerolog.Logger) *Seeder {
	return &Seeder{
		loader:   loader,
		counter:  counter,
		products: products,
		logger:   logger.With().Str("component", "seeder").Logger(),
	}
}

// Run loads path and creates each product when no products exist yet. It
// returns the number of products created. Products that fail validation are
// skipped.
func (s *Seeder) Run(ctx context.Context, path string) (int, error) {
	count, err := s.counter.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		s.logger.Info().Int("existing", count).Msg("catalogue already populated, skipping seed")
		return 0, nil
	}

	products, err := s.loader.Load(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("failed to load seed file: %w", err)
	}

	created := 0
	for i, p := range products {
		if _, err := s.products.Create(ctx, p); err != nil {
			var ve *model.ValidationError
			if errors.As(err, &ve) {
				s.logger.Warn().Err(err).Int("record", i+1).Msg("skipping invalid product")
				continue
			}
			return created, fmt.Errorf("failed to create product %d: %w", i+1, err)
		}
		created++
	}

	s.logger.Info().
		Int("created", created).
		Int("skipped", len(products)-created).
		Msg("catalogue seeded")

	return created, nil
}
