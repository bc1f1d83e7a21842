package history

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/cleankey/api/internal/order"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// listLimit caps how many records a remote List returns.
const listLimit = 500

// RemoteDB defines the pgx methods the remote backend needs.
// Satisfied by *pgxpool.Pool; narrow interface for testability.
type RemoteDB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Remote persists history in a Postgres orders table, one row per order.
// Each append is an independent insert, so unlike the Local backend there
// is no read-modify-write race between writers.
type Remote struct {
	db RemoteDB
}

// NewRemote creates a Postgres-backed history store.
func NewRemote(db RemoteDB) *Remote {
	return &Remote{db: db}
}

// EnsureSchema creates the orders table if it does not exist.
func (r *Remote) EnsureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS orders (
			id bigserial PRIMARY KEY,
			created_at timestamptz NOT NULL DEFAULT now(),
			payload jsonb NOT NULL
		)
	`
	if _, err := r.db.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("%w: ensure schema: %w", ErrStorage, err)
	}
	return nil
}

// Append inserts one row and returns the store-assigned id and creation
// time. The order's total is recomputed before writing, never trusted.
func (r *Remote) Append(ctx context.Context, o order.Order) (Record, error) {
	o = order.Recompute(o)
	payload, err := json.Marshal(o)
	if err != nil {
		return Record{}, fmt.Errorf("%w: encode order: %w", ErrStorage, err)
	}

	var (
		id        int64
		createdAt time.Time
	)
	err = r.db.QueryRow(ctx,
		`INSERT INTO orders (payload) VALUES ($1) RETURNING id, created_at`,
		payload,
	).Scan(&id, &createdAt)
	if err != nil {
		return Record{}, fmt.Errorf("%w: insert order: %w", ErrStorage, err)
	}

	return Record{
		ID:        strconv.FormatInt(id, 10),
		CreatedAt: createdAt,
		Payload:   o,
	}, nil
}

// List returns the latest records newest-first. Rows whose payload no
// longer parses are skipped rather than failing the whole read.
func (r *Remote) List(ctx context.Context) ([]Record, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, created_at, payload FROM orders ORDER BY created_at DESC LIMIT $1`,
		listLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: query orders: %w", ErrStorage, err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var (
			id        int64
			createdAt time.Time
			payload   []byte
		)
		if err := rows.Scan(&id, &createdAt, &payload); err != nil {
			return nil, fmt.Errorf("%w: scan order row: %w", ErrStorage, err)
		}
		var o order.Order
		if err := json.Unmarshal(payload, &o); err != nil {
			continue
		}
		records = append(records, Record{
			ID:        strconv.FormatInt(id, 10),
			CreatedAt: createdAt,
			Payload:   order.Recompute(o),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read order rows: %w", ErrStorage, err)
	}
	return records, nil
}
