package handler

import (
	"net/http"

	"snapshop/internal/model"
	"snapshop/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) error {
	offset, limit, err := page(r)
	if err != nil {
		return err
	}

	products, err := h.service.List(r.Context(), model.ProductFilter{
		Offset: offset,
		Limit:  limit,
		Tag:    queryString(r, "tag"),
	})
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, products)
	return nil
}

// Get handles GET /products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")

	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		return err
	}
	if product == nil {
		notFound(w, "product not found")
		return nil
	}

	writeJSON(w, http.StatusOK, product)
	return nil
}

// Create handles POST /products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) error {
	var product model.Product
	if err := decodeJSON(w, r, &product); err != nil {
		return err
	}

	created, err := h.service.Create(r.Context(), product)
	if err != nil {
		return err
	}

	h.logger.Debug().Str("product_id", created.ID).Msg("product created")
	writeJSON(w, http.StatusCreated, created)
	return nil
}

// Edit handles PUT /products/{id}.
func (h *ProductHandler) Edit(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")

	var patch model.ProductPatch
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

// Delete handles DELETE /products/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	return nil
}
