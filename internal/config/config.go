package config

import (
	"os"
	"strconv"

	"gomgca/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Chemistry ChemistryConfig
	Run       RunConfig
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Port string
}

// StoreConfig selects and configures the posterior draw store backend
type StoreConfig struct {
	Backend     string // "embedded" or "postgres"
	DatabaseURL string // required for the postgres backend
}

// ChemistryConfig holds modern ocean chemistry lookup settings
type ChemistryConfig struct {
	DistanceThresholdKm float64
}

// RunConfig holds batch prediction settings
type RunConfig struct {
	Seed        int64
	Concurrency int
	SitesFile   string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Store: StoreConfig{
			Backend:     getEnvOrDefault("DRAW_STORE", "embedded"),
			DatabaseURL: os.Getenv("DATABASE_URL"),
		},
		Chemistry: ChemistryConfig{
			DistanceThresholdKm: getEnvFloatOrDefault("DISTANCE_THRESHOLD_KM", 2000),
		},
		Run: RunConfig{
			Seed:        getEnvInt64OrDefault("SEED", 1),
			Concurrency: getEnvIntOrDefault("RUN_CONCURRENCY", 4),
			SitesFile:   os.Getenv("SITES_FILE"),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.Store.Backend {
	case "embedded":
	case "postgres":
		if cfg.Store.DatabaseURL == "" {
			return errors.ConfigInvalid("DATABASE_URL is required when DRAW_STORE=postgres")
		}
	default:
		return errors.ConfigInvalid("DRAW_STORE must be embedded or postgres, got " + cfg.Store.Backend)
	}
	if cfg.Chemistry.DistanceThresholdKm <= 0 {
		return errors.ConfigInvalid("DISTANCE_THRESHOLD_KM must be positive")
	}
	if cfg.Run.Concurrency < 1 {
		return errors.ConfigInvalid("RUN_CONCURRENCY must be at least 1")
	}
	return nil
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvIntOrDefault(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvInt64OrDefault(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloatOrDefault(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
