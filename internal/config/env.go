package config

import (
	"os"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with environment variables, loading a .env file
// first if one exists in the working directory. Unset variables leave the
// previous values in place.
func parseEnv(cfg *Config) {
	// a missing .env is the normal case, not an error
	_ = godotenv.Load()

	cfg.Mode = getEnv("FOODWATCH_MODE", cfg.Mode)
	cfg.APIBaseURL = getEnv("FOODWATCH_API_URL", cfg.APIBaseURL)
	cfg.LocalDBPath = getEnv("FOODWATCH_DB_PATH", cfg.LocalDBPath)
	cfg.DatabaseDSN = getEnv("FOODWATCH_DATABASE_DSN", cfg.DatabaseDSN)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
