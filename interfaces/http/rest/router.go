// Package rest wires the HTTP routes. Paths mirror the public API the
// frontend already depends on: list reads are public, everything else
// requires a bearer token.
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"wishlist-backend/application/ports"
	"wishlist-backend/infrastructure/config"
	"wishlist-backend/interfaces/http/rest/handlers"
	"wishlist-backend/interfaces/http/rest/middleware"
	"wishlist-backend/pkg/auth"
)

// Router creates and configures the HTTP router
type Router struct {
	lists     ports.ListRepository
	items     ports.ItemRepository
	validator *auth.Validator
	logger    *zap.Logger
	cfg       *config.Config
}

// NewRouter creates a new router instance
func NewRouter(
	lists ports.ListRepository,
	items ports.ItemRepository,
	validator *auth.Validator,
	logger *zap.Logger,
	cfg *config.Config,
) *Router {
	return &Router{
		lists:     lists,
		items:     items,
		validator: validator,
		logger:    logger,
		cfg:       cfg,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() *chi.Mux {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	router.Use(chimiddleware.Timeout(rt.cfg.RequestTimeout))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	listHandler := handlers.NewListHandler(rt.lists, rt.logger, rt.cfg.MaxBodyBytes)
	itemHandler := handlers.NewItemHandler(rt.items, rt.logger, rt.cfg.MaxBodyBytes)

	router.Route("/wishlists", func(r chi.Router) {
		// Public reads: a list is shareable by its id.
		r.Get("/{wishlistID}", listHandler.GetList)
		r.Get("/{wishlistID}/items", itemHandler.GetItems)

		// Everything else is owner-only.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(rt.validator))

			r.Get("/", listHandler.GetLists)
			r.Post("/", listHandler.CreateList)
			r.Put("/{wishlistID}", listHandler.UpdateList)
			r.Delete("/{wishlistID}", listHandler.DeleteList)

			r.Post("/{wishlistID}/items", itemHandler.CreateItem)
			r.Put("/{wishlistID}/items/{itemID}", itemHandler.UpdateItem)
			r.Delete("/{wishlistID}/items/{itemID}", itemHandler.DeleteItem)
		})
	})

	return router
}

// healthCheck returns service health status
func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck returns service readiness status
func (rt *Router) readinessCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
