package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/cleankey/api/internal/catalog"
	"github.com/cleankey/api/internal/history"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

func main() {
	// CLI flags
	catalogPath := flag.String("catalog", "", "Path of the products file to write")
	force := flag.Bool("force", false, "Overwrite an existing products file")
	flag.Parse()

	// Fall back to environment variable, then default
	if *catalogPath == "" {
		*catalogPath = os.Getenv("CATALOG_PATH")
	}
	if *catalogPath == "" {
		*catalogPath = "products.json"
	}

	if err := seedCatalog(*catalogPath, *force); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	// Bootstrap the orders table when a database is configured.
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Println("DATABASE_URL not set; skipping orders table bootstrap")
		return
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Unable to ping database: %v", err)
	}
	log.Println("Connected to database")

	if err := history.NewRemote(pool).EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to create orders table: %v", err)
	}
	log.Println("Orders table ready")
}

// seedCatalog writes a starter products file unless one already exists.
func seedCatalog(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			log.Printf("Catalog %s already exists, skipping (use -force to overwrite)", path)
			return nil
		}
	}

	products := starterProducts()
	b, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return err
	}
	log.Printf("Wrote %d starter products to %s", len(products), path)
	return nil
}

func starterProducts() []catalog.Product {
	price := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	return []catalog.Product{
		{ID: 1, SKU: "CLN-01", NameEn: "Cleaner", NameFi: "Puhdistusaine", Category: "Cleaning agents", Price: price("5.00")},
		{ID: 2, SKU: "CLN-02", NameEn: "Universal cleaner concentrate", NameFi: "Yleispuhdistusaine tiiviste", Category: "Cleaning agents", Price: price("12.50")},
		{ID: 3, SKU: "DSF-01", NameEn: "Surface disinfectant 750 ml", NameFi: "Pintadesinfiointiaine 750 ml", Category: "Disinfection", Price: price("8.90")},
		{ID: 4, SKU: "CLO-01", NameEn: "Microfibre cloth, blue", NameFi: "Mikrokuituliina, sininen", Category: "Cloths and wipes", Price: price("2.40")},
		{ID: 5, SKU: "CLO-02", NameEn: "Microfibre cloth, red", NameFi: "Mikrokuituliina, punainen", Category: "Cloths and wipes", Price: price("2.40")},
		{ID: 6, SKU: "GLV-01", NameEn: "Nitrile gloves, size M (100 pcs)", NameFi: "Nitriilikäsineet, koko M (100 kpl)", Category: "Protective equipment", Price: price("9.80")},
		{ID: 7, SKU: "BAG-01", NameEn: "Waste bag 150 l (roll of 10)", NameFi: "Jätesäkki 150 l (10 kpl rulla)", Category: "Waste management", Price: price("6.20")},
		{ID: 8, SKU: "MOP-01", NameEn: "Flat mop pad 40 cm", NameFi: "Tasomopin pyyhin 40 cm", Category: "Mopping", Price: price("7.10")},
	}
}
