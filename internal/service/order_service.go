package service

import (
	"context"
	"fmt"

	"snapshop/internal/model"
	"snapshop/internal/repository"

	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

// List returns a page of orders ordered by ID. Products are not expanded.
func (s *orderService) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	filter.Limit, filter.Offset = normalizePage(filter.Limit, filter.Offset)

	orders, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).
			Int("limit", filter.Limit).
			Int("offset", filter.Offset).
			Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}

// Get retrieves an order with its products expanded.
func (s *orderService) Get(ctx context.Context, id string) (*model.OrderView, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order == nil {
		s.logger.Debug().Str("order_id", id).Msg("order not found")
		return nil, nil
	}

	return s.expand(ctx, order)
}

// Create stores a new order, defaulting its status, and returns it expanded.
// Referenced products are not required to exist.
func (s *orderService) Create(ctx context.Context, o model.Order) (*model.OrderView, error) {
	if err := s.orderRepo.Insert(ctx, &o); err != nil {
		if model.IsValidation(err) {
			s.logger.Warn().Err(err).Msg("rejected invalid order")
			return nil, err
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Str("order_id", o.ID).
		Int("product_count", len(o.Products)).
		Msg("order created")

	return s.expand(ctx, &o)
}

// Edit loads the order, overwrites the fields present in patch and stores it.
// Status may be set to any known value regardless of the current one.
func (s *orderService) Edit(ctx context.Context, id string, patch model.OrderPatch) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		s.logger.Debug().Str("order_id", id).Msg("order to edit not found")
		return nil, fmt.Errorf("order %s: %w", id, model.ErrNotFound)
	}

	patch.Apply(order)

	if err := s.orderRepo.Replace(ctx, order); err != nil {
		if model.IsValidation(err) {
			s.logger.Warn().Err(err).Str("order_id", id).Msg("rejected invalid order edit")
			return nil, err
		}
		return nil, fmt.Errorf("failed to edit order: %w", err)
	}

	s.logger.Info().
		Str("order_id", id).
		Str("status", string(order.Status)).
		Msg("order edited")

	return order, nil
}

// Delete removes an order.
func (s *orderService) Delete(ctx context.Context, id string) error {
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	s.logger.Info().Str("order_id", id).Msg("order deleted")
	return nil
}

// expand replaces each product reference with the stored product, keeping
// the order of o.Products. References to missing products stay nil.
func (s *orderService) expand(ctx context.Context, o *model.Order) (*model.OrderView, error) {
	products, err := s.productRepo.GetByIDs(ctx, o.Products)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", o.ID).Msg("failed to retrieve product details")
		return nil, fmt.Errorf("failed to retrieve product details: %w", err)
	}

	byID := make(map[string]*model.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	view := &model.OrderView{
		ID:         o.ID,
		BuyerEmail: o.BuyerEmail,
		Products:   make([]*model.Product, len(o.Products)),
		Status:     o.Status,
	}
	for i, pid := range o.Products {
		view.Products[i] = byID[pid]
	}

	if missing := len(o.Products) - countNonNil(view.Products); missing > 0 {
		s.logger.Debug().
			Str("order_id", o.ID).
			Int("missing", missing).
			Msg("order references deleted products")
	}

	return view, nil
}

func countNonNil(products []*model.Product) int {
	n := 0
	for _, p := range products {
		if p != nil {
			n++
		}
	}
	return n
}
