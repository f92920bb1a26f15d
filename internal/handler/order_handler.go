package handler

import (
	"net/http"

	"snapshop/internal/model"
	"snapshop/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// List handles GET /orders. Filters on productId and status are combined.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) error {
	offset, limit, err := page(r)
	if err != nil {
		return err
	}

	filter := model.OrderFilter{
		Offset:    offset,
		Limit:     limit,
		ProductID: queryString(r, "productId"),
	}
	if status := queryString(r, "status"); status != nil {
		s := model.OrderStatus(*status)
		filter.Status = &s
	}

	orders, err := h.service.List(r.Context(), filter)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, orders)
	return nil
}

// Get handles GET /orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) error {
	order, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	if order == nil {
		notFound(w, "order not found")
		return nil
	}

	writeJSON(w, http.StatusOK, order)
	return nil
}

// Create handles POST /orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) error {
	var order model.Order
	if err := decodeJSON(w, r, &order); err != nil {
		return err
	}

	created, err := h.service.Create(r.Context(), order)
	if err != nil {
		return err
	}

	h.logger.Debug().
		Str("order_id", created.ID).
		Int("products", len(created.Products)).
		Msg("order created")
	writeJSON(w, http.StatusCreated, created)
	return nil
}

// Edit handles PUT /orders/{id}.
func (h *OrderHandler) Edit(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")

	var patch model.OrderPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		return err
	}

	updated, err := h.service.Edit(r.Context(), id, patch)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, updated)
	return nil
}

// Delete handles DELETE /orders/{id}.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	return nil
}
