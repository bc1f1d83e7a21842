package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/cleankey/api/internal/history"
	"github.com/cleankey/api/internal/order"
	"github.com/go-chi/chi/v5"
)

// HistoryStore defines the persistence methods needed by order handlers.
// Satisfied by *history.Remote (and *history.Fallback); narrow interface
// for testability.
type HistoryStore interface {
	Append(ctx context.Context, o order.Order) (history.Record, error)
	List(ctx context.Context) ([]history.Record, error)
}

// OrderHandler serves the save-order / list-orders wire contract. A nil
// store means server-side persistence is intentionally unavailable: saves
// report ok:false so the caller keeps its local history, and lists return
// the degraded empty response.
type OrderHandler struct {
	store HistoryStore
}

// NewOrderHandler creates a new OrderHandler. store may be nil.
func NewOrderHandler(store HistoryStore) *OrderHandler {
	return &OrderHandler{store: store}
}

// RegisterRoutes registers the order persistence endpoints. Requests with
// any other method on these paths get 405 from the router.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/save-order", h.Save)
	r.Get("/list-orders", h.List)
}

// --- Response types ---

type saveOrderResponse struct {
	OK        bool       `json:"ok"`
	ID        string     `json:"id,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	Reason    string     `json:"reason,omitempty"`
}

type listOrdersResponse struct {
	OK     bool             `json:"ok"`
	Orders []history.Record `json:"orders"`
}

// --- Handlers ---

// Save handles POST /save-order. The body is a raw order JSON document;
// its total is recomputed server-side before persisting.
func (h *OrderHandler) Save(w http.ResponseWriter, r *http.Request) {
	var o order.Order
	if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	if h.store == nil {
		// Caller falls back to its local history; ok:false but not an error.
		writeJSON(w, http.StatusOK, saveOrderResponse{OK: false, Reason: "no_database_url"})
		return
	}

	rec, err := h.store.Append(r.Context(), o)
	if err != nil {
		log.Printf("ERROR: save order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "error saving order"})
		return
	}

	writeJSON(w, http.StatusOK, saveOrderResponse{OK: true, ID: rec.ID, CreatedAt: &rec.CreatedAt})
}

// List handles GET /list-orders. Backend failures degrade to an empty
// ok:false list rather than an error status: the browser caller treats
// any non-ok response as "use local history only".
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeJSON(w, http.StatusOK, listOrdersResponse{OK: false, Orders: []history.Record{}})
		return
	}

	records, err := h.store.List(r.Context())
	if err != nil {
		log.Printf("ERROR: list orders: %v", err)
		writeJSON(w, http.StatusOK, listOrdersResponse{OK: false, Orders: []history.Record{}})
		return
	}
	if records == nil {
		records = []history.Record{}
	}

	writeJSON(w, http.StatusOK, listOrdersResponse{OK: true, Orders: records})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: failed to encode JSON response: %v", err)
	}
}
