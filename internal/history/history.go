// Package history persists finalized orders. The collection is
// append-only: records are never updated or individually deleted, and a
// failed append is surfaced to the caller rather than retried.
package history

import (
	"context"
	"errors"
	"time"

	"github.com/cleankey/api/internal/order"
)

// Errors returned by history backends.
var (
	// ErrStorage wraps any read or write failure against a backend.
	ErrStorage = errors.New("history storage failure")
	// ErrNotConfigured means no backend exists to serve the operation.
	ErrNotConfigured = errors.New("history storage not configured")
)

// Record is a persisted order. ID and CreatedAt are assigned by the
// store at write time, never by the caller.
type Record struct {
	ID        string      `json:"id"`
	CreatedAt time.Time   `json:"created_at"`
	Payload   order.Order `json:"payload"`
}

// Store is the contract shared by the Local and Remote backends.
//
// Append persists one finalized order and returns the stored record.
// List returns all records in the backend's documented order: Local is
// oldest-first (insertion order), Remote is newest-first.
type Store interface {
	Append(ctx context.Context, o order.Order) (Record, error)
	List(ctx context.Context) ([]Record, error)
}
