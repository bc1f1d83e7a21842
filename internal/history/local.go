package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/cleankey/api/internal/order"
	"github.com/google/uuid"
)

// Local persists history as one JSON file holding the full record array.
// Every append is a read-modify-write of the whole file with no
// optimistic-concurrency check: two near-simultaneous writing processes
// can lose an update (last writer wins). That is an accepted limitation
// of the single-device, single-operator deployment and is preserved
// as-is; the mutex below only serializes writers within one process.
type Local struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewLocal creates a file-backed history store. The file is created on
// first append.
func NewLocal(path string) *Local {
	return &Local{path: path, now: time.Now}
}

// Append assigns a record ID and creation time, then persists. The
// order's total is recomputed before writing, never trusted.
func (l *Local) Append(_ context.Context, o order.Order) (Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	records := l.read()
	rec := Record{
		ID:        uuid.NewString(),
		CreatedAt: l.now().UTC(),
		Payload:   order.Recompute(o),
	}
	records = append(records, rec)

	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return Record{}, fmt.Errorf("%w: encode history: %w", ErrStorage, err)
	}
	if err := os.WriteFile(l.path, b, 0o644); err != nil {
		return Record{}, fmt.Errorf("%w: write history: %w", ErrStorage, err)
	}
	return rec, nil
}

// List returns all records oldest-first, as stored. A missing, corrupted
// or non-array file is treated as empty history, not a fatal error.
func (l *Local) List(_ context.Context) ([]Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.read(), nil
}

// Clear erases all records. The operation is irreversible; acquiring
// user confirmation is the caller's responsibility.
func (l *Local) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: clear history: %w", ErrStorage, err)
	}
	return nil
}

// read loads the record array, degrading to empty on any problem.
// Callers hold l.mu.
func (l *Local) read() []Record {
	b, err := os.ReadFile(l.path)
	if err != nil {
		return []Record{}
	}
	var records []Record
	if err := json.Unmarshal(b, &records); err != nil {
		return []Record{}
	}
	for i := range records {
		records[i].Payload = order.Recompute(records[i].Payload)
	}
	return records
}
