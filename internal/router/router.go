package router

import (
	"net/http"

	"github.com/cleankey/api/internal/catalog"
	"github.com/cleankey/api/internal/handler"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// New creates a Chi router with all application routes wired up. orders
// may be nil when server-side persistence is not configured.
func New(cat *catalog.Store, orders handler.HistoryStore) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// The caller is a static browser UI that may be served from anywhere.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	orderHandler := handler.NewOrderHandler(orders)
	orderHandler.RegisterRoutes(r)

	productHandler := handler.NewProductHandler(cat)
	productHandler.RegisterRoutes(r)

	return r
}
