package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/cleankey/api/internal/catalog"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// CatalogStore defines the catalog methods needed by product handlers.
// Satisfied by *catalog.Store; narrow interface for testability.
type CatalogStore interface {
	Filter(search, category string) []catalog.Product
	Categories() []string
	Append(in catalog.ProductInput) (catalog.Product, error)
	ExportJSON(w io.Writer) error
}

// ProductHandler serves the catalog: listing with search/category
// filters, the administrative append, and the re-export of the static
// products file. There is no delete endpoint; products are never removed.
//
// These endpoints carry no authentication. The original tool's admin
// password gate is a client-side convenience, not a security boundary;
// real authorization must be added server-side before exposing this
// surface beyond internal use.
type ProductHandler struct {
	store CatalogStore
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(store CatalogStore) *ProductHandler {
	return &ProductHandler{store: store}
}

// RegisterRoutes registers catalog endpoints on the given Chi router.
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Get("/products", h.List)
	r.Post("/products", h.Create)
	r.Get("/products.json", h.Export)
	r.Get("/categories", h.Categories)
}

type createProductRequest struct {
	SKU      string          `json:"sku"`
	NameEn   string          `json:"nameEn"`
	NameFi   string          `json:"nameFi"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
}

// List handles GET /products, optionally filtered by ?search= and
// ?category=.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	category := r.URL.Query().Get("category")
	writeJSON(w, http.StatusOK, h.store.Filter(search, category))
}

// Create handles POST /products: the admin append operation.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	p, err := h.store.Append(catalog.ProductInput{
		SKU:      req.SKU,
		NameEn:   req.NameEn,
		NameFi:   req.NameFi,
		Category: req.Category,
		Price:    req.Price,
	})
	if err != nil {
		if errors.Is(err, catalog.ErrMissingFields) || errors.Is(err, catalog.ErrNegativePrice) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("ERROR: create product: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

// Export handles GET /products.json: the catalog serialized the same way
// as the deployed static file, for manual re-export after admin appends.
func (h *ProductHandler) Export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="products.json"`)
	if err := h.store.ExportJSON(w); err != nil {
		log.Printf("ERROR: export catalog: %v", err)
	}
}

// Categories handles GET /categories.
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	cats := h.store.Categories()
	if cats == nil {
		cats = []string{}
	}
	writeJSON(w, http.StatusOK, cats)
}
