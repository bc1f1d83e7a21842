// Package catalog holds the set of orderable products. The catalog is
// loaded once from a static JSON document and mutated only by an
// administrative append; products are never deleted.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// Errors returned by the catalog store.
var (
	ErrProductNotFound = errors.New("product not found")
	ErrMissingFields   = errors.New("sku, category, English and Finnish names are required")
	ErrNegativePrice   = errors.New("price must be >= 0")
)

// Product is a single orderable item. IDs are unique and monotonically
// assigned; the two display names serve the English UI and the Finnish
// export documents.
type Product struct {
	ID       int             `json:"id"`
	SKU      string          `json:"sku"`
	NameEn   string          `json:"nameEn"`
	NameFi   string          `json:"nameFi"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
}

// ProductInput is the admin-supplied data for a new product. The ID is
// assigned by the store.
type ProductInput struct {
	SKU      string          `json:"sku"`
	NameEn   string          `json:"nameEn"`
	NameFi   string          `json:"nameFi"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
}

// Store owns the product list. Each instance carries its own state so
// independent stores never cross-contaminate.
type Store struct {
	mu       sync.RWMutex
	products []Product
}

// New creates a store seeded with the given products.
func New(products []Product) *Store {
	s := &Store{products: make([]Product, len(products))}
	copy(s.products, products)
	return s
}

// Load reads a products JSON array from disk. A missing or malformed
// catalog is a startup error, not an empty catalog.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a products JSON array from r.
func Parse(r io.Reader) (*Store, error) {
	var products []Product
	if err := json.NewDecoder(r).Decode(&products); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	for i, p := range products {
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("catalog product %d (%s): %w", i, p.SKU, ErrNegativePrice)
		}
	}
	return New(products), nil
}

// List returns a snapshot copy of all products.
func (s *Store) List() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

// Len returns the number of products in the catalog.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// Find returns the product with the given ID.
func (s *Store) Find(id int) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrProductNotFound
}

// Filter returns products matching a case-insensitive substring search
// over SKU and both display names, combined with an exact category match.
// Empty search or category means "no constraint" for that dimension.
func (s *Store) Filter(search, category string) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	term := strings.ToLower(strings.TrimSpace(search))
	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if category != "" && p.Category != category {
			continue
		}
		if term != "" && !matchesTerm(p, term) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesTerm(p Product, term string) bool {
	return strings.Contains(strings.ToLower(p.SKU), term) ||
		strings.Contains(strings.ToLower(p.NameFi), term) ||
		strings.Contains(strings.ToLower(p.NameEn), term)
}

// Categories returns the sorted distinct non-empty categories.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	var out []string
	for _, p := range s.products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out
}

// Append adds a new product with the next ID (max existing ID + 1).
// SKU, category and both names are required; price defaults to zero.
func (s *Store) Append(in ProductInput) (Product, error) {
	if in.SKU == "" || in.Category == "" || in.NameEn == "" || in.NameFi == "" {
		return Product{}, ErrMissingFields
	}
	if in.Price.IsNegative() {
		return Product{}, ErrNegativePrice
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	maxID := 0
	for _, p := range s.products {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	p := Product{
		ID:       maxID + 1,
		SKU:      in.SKU,
		NameEn:   in.NameEn,
		NameFi:   in.NameFi,
		Category: in.Category,
		Price:    in.Price,
	}
	s.products = append(s.products, p)
	return p, nil
}

// ExportJSON writes the full catalog as pretty-printed JSON, suitable for
// re-deploying as the static products file.
func (s *Store) ExportJSON(w io.Writer) error {
	products := s.List()
	b, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return fmt.Errorf("export catalog: %w", err)
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("export catalog: %w", err)
	}
	return nil
}
