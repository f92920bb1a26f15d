package router

import (
	"net/http"

	"snapshop/internal/handler"
	"snapshop/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
// Requests that match no API route are served from staticDir.
func New(
	productHandler *handler.ProductHandler,
	orderHandler *handler.OrderHandler,
	healthHandler *handler.HealthHandler,
	staticDir string,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// RequestID -> RealIP -> CORS -> Logging -> Recovery
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.CORS())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Recovery(logger))

	r.NotFound(handler.RouteNotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	r.Get("/health", healthHandler.Check)

	r.Route("/products", func(r chi.Router) {
		r.Get("/", handler.Wrap(productHandler.List, logger))
		r.Post("/", handler.Wrap(productHandler.Create, logger))
		r.Get("/{id}", handler.Wrap(productHandler.Get, logger))
		r.Put("/{id}", handler.Wrap(productHandler.Edit, logger))
		r.Delete("/{id}", handler.Wrap(productHandler.Delete, logger))
	})

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", handler.Wrap(orderHandler.List, logger))
		r.Post("/", handler.Wrap(orderHandler.Create, logger))
		r.Get("/{id}", handler.Wrap(orderHandler.Get, logger))
		r.Put("/{id}", handler.Wrap(orderHandler.Edit, logger))
		r.Delete("/{id}", handler.Wrap(orderHandler.Delete, logger))
	})

	if staticDir != "" {
		r.Get("/*", http.FileServer(http.Dir(staticDir)).ServeHTTP)
	}

	return r
}
