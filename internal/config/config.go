package config

import "os"

type Config struct {
	Port        string
	DatabaseURL string
	CatalogPath string
	HistoryPath string
}

// Load reads configuration from the environment. DatabaseURL has no
// default on purpose: an empty value means remote order persistence is
// intentionally unavailable and the save/list handlers degrade.
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		CatalogPath: getEnv("CATALOG_PATH", "products.json"),
		HistoryPath: getEnv("HISTORY_PATH", "order_history.json"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
