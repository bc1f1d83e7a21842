package history

import (
	"context"
	"log"

	"github.com/cleankey/api/internal/order"
)

// Fallback composes the two backends: Remote is preferred, Local takes
// over when the remote operation fails. Either backend may be nil.
type Fallback struct {
	remote Store
	local  Store
}

// NewFallback creates a remote-preferred store. Pass nil for a backend
// that is not available in this deployment.
func NewFallback(remote, local Store) *Fallback {
	return &Fallback{remote: remote, local: local}
}

// Append persists to the remote backend, degrading to local on failure.
// The order is never silently dropped: with no backend available the
// append fails with ErrNotConfigured.
func (f *Fallback) Append(ctx context.Context, o order.Order) (Record, error) {
	if f.remote != nil {
		rec, err := f.remote.Append(ctx, o)
		if err == nil {
			return rec, nil
		}
		if f.local == nil {
			return Record{}, err
		}
		log.Printf("ERROR: remote history append failed, degrading to local: %v", err)
	}
	if f.local == nil {
		return Record{}, ErrNotConfigured
	}
	return f.local.Append(ctx, o)
}

// List reads from the remote backend, degrading to local only at this
// documented boundary; a failed local read still surfaces its error.
func (f *Fallback) List(ctx context.Context) ([]Record, error) {
	if f.remote != nil {
		records, err := f.remote.List(ctx)
		if err == nil {
			return records, nil
		}
		if f.local == nil {
			return nil, err
		}
		log.Printf("ERROR: remote history list failed, degrading to local: %v", err)
	}
	if f.local == nil {
		return nil, ErrNotConfigured
	}
	return f.local.List(ctx)
}
