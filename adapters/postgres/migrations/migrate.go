// Package migrations creates the reference-data schema for the PostgreSQL
// draw store.
package migrations

import (
	"github.com/jmoiron/sqlx"

	"gomgca/internal/errors"
)

// schema holds the posterior traces and the seawater curve as long tables:
// one row per (model, param, draw) and one row per (age step, draw).
// species_col is -1 for pooled models and shared hierarchical slopes.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS calibration_draws (
		model       TEXT             NOT NULL,
		param       TEXT             NOT NULL,
		species_col INTEGER          NOT NULL DEFAULT -1,
		draw_idx    INTEGER          NOT NULL,
		value       DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (model, param, species_col, draw_idx)
	)`,
	`CREATE TABLE IF NOT EXISTS seawater_curve (
		step     INTEGER          NOT NULL,
		draw_idx INTEGER          NOT NULL,
		value    DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (step, draw_idx)
	)`,
}

// Run applies the schema. Safe to run repeatedly.
func Run(db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return errors.Wrap(err, "migration failed")
		}
	}
	return nil
}
