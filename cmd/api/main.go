package main

import (
	"log"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"gomgca/adapters/chemistry"
	"gomgca/adapters/modelparams"
	"gomgca/adapters/postgres"
	"gomgca/adapters/postgres/migrations"
	"gomgca/adapters/rng"
	"gomgca/api"
	"gomgca/app"
	"gomgca/internal"
	"gomgca/internal/config"
	"gomgca/ports"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	logger := internal.NewDefaultLogger()

	store, err := buildDrawStore(cfg)
	if err != nil {
		log.Fatal("Failed to initialize draw store:", err)
	}

	svc := app.NewPredictionService(
		store,
		chemistry.NewLookup(),
		rng.NewStreamAdapter(),
		logger,
		cfg.Chemistry.DistanceThresholdKm,
	)
	a := api.NewApp(svc, logger)

	logger.Info("starting API server on :%s (store=%s)", cfg.Server.Port, cfg.Store.Backend)
	log.Fatal(http.ListenAndServe(":"+cfg.Server.Port, a.Router()))
}

func buildDrawStore(cfg *config.Config) (ports.DrawStorePort, error) {
	if cfg.Store.Backend == "embedded" {
		return modelparams.NewStore(), nil
	}
	db, err := sqlx.Connect("postgres", cfg.Store.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := migrations.Run(db); err != nil {
		return nil, err
	}
	return postgres.NewDrawStore(db), nil
}
