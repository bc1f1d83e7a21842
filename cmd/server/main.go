package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/cleankey/api/internal/catalog"
	"github.com/cleankey/api/internal/config"
	"github.com/cleankey/api/internal/handler"
	"github.com/cleankey/api/internal/history"
	"github.com/cleankey/api/internal/router"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg := config.Load()

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to load catalog from %s: %v", cfg.CatalogPath, err)
	}
	log.Printf("Loaded %d products from %s", cat.Len(), cfg.CatalogPath)

	var store handler.HistoryStore
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Unable to create database pool: %v", err)
		}
		defer pool.Close()

		remote := history.NewRemote(pool)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := remote.EnsureSchema(ctx); err != nil {
			// Requests against the remote store will fail until the
			// database comes back; saves then report ok:false upstream.
			log.Printf("WARNING: could not ensure orders schema: %v", err)
		}
		cancel()
		// Orders survive a database outage in the local history file;
		// saves keep succeeding and report the locally assigned ID.
		store = history.NewFallback(remote, history.NewLocal(cfg.HistoryPath))
		log.Printf("Remote order history enabled (local fallback: %s)", cfg.HistoryPath)
	} else {
		log.Println("DATABASE_URL not set; server-side order history disabled")
	}

	r := router.New(cat, store)

	log.Printf("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}
