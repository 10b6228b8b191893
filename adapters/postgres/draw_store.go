// Package postgres implements the draw store against a PostgreSQL database,
// for deployments where the posterior traces live alongside other lab data
// instead of being bundled with the binary.
package postgres

import (
	"context"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"

	"gomgca/domain/calibration"
	"gomgca/domain/seawater"
	"gomgca/internal/errors"
	"gomgca/ports"
)

// Models stored in the calibration_draws table.
const (
	modelPooledAnnual   = "pooled_annual"
	modelPooledSeasonal = "pooled_seasonal"
	modelHierarchical   = "hierarchical"
)

// DrawStore serves parameter draws and the seawater curve from PostgreSQL.
// Query results are cached for the process lifetime; the tables are treated
// as immutable reference data.
type DrawStore struct {
	db *sqlx.DB

	mu    sync.Mutex
	draws map[calibration.Species]calibration.ParamDraws
	curve *seawater.Curve
}

// NewDrawStore creates a draw store over an open database handle.
func NewDrawStore(db *sqlx.DB) *DrawStore {
	return &DrawStore{
		db:    db,
		draws: make(map[calibration.Species]calibration.ParamDraws),
	}
}

// ParamDraws returns the parameter draws for a species. The first call per
// species hits the database; later calls serve clones of the cached result.
func (s *DrawStore) ParamDraws(ctx context.Context, sp calibration.Species) (calibration.ParamDraws, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cached, ok := s.draws[sp]; ok {
		return cached.Clone(), nil
	}

	draws, err := s.queryDraws(ctx, sp)
	if err != nil {
		return calibration.ParamDraws{}, err
	}
	if err := draws.Validate(); err != nil {
		return calibration.ParamDraws{}, errors.Wrap(err, fmt.Sprintf("stored draws for species %s are inconsistent", sp))
	}
	s.draws[sp] = draws
	return draws.Clone(), nil
}

func (s *DrawStore) queryDraws(ctx context.Context, sp calibration.Species) (calibration.ParamDraws, error) {
	model := modelHierarchical
	speciesCol := -1
	if col, ok := sp.Column(); ok {
		speciesCol = col
	} else {
		switch sp {
		case calibration.SpeciesPooledAnnual:
			model = modelPooledAnnual
		case calibration.SpeciesPooledSeasonal:
			model = modelPooledSeasonal
		default:
			return calibration.ParamDraws{}, &calibration.InvalidSpeciesError{Token: string(sp)}
		}
	}

	var draws calibration.ParamDraws
	params := []struct {
		name  string
		dst   *[]float64
		byCol bool // alpha/sigma are species-sliced in the hierarchical model
	}{
		{"alpha", &draws.Alpha, true},
		{"beta_temp", &draws.BetaTemp, false},
		{"beta_salinity", &draws.BetaSalinity, false},
		{"beta_omega", &draws.BetaOmega, false},
		{"beta_ph", &draws.BetaPH, false},
		{"beta_clean", &draws.BetaClean, false},
		{"sigma", &draws.Sigma, true},
	}
	for _, p := range params {
		col := -1
		if p.byCol && speciesCol >= 0 {
			col = speciesCol
		}
		values, err := s.queryParam(ctx, model, p.name, col)
		if err != nil {
			return calibration.ParamDraws{}, err
		}
		*p.dst = values
	}
	return draws, nil
}

func (s *DrawStore) queryParam(ctx context.Context, model, param string, speciesCol int) ([]float64, error) {
	query := `SELECT value FROM calibration_draws
		WHERE model = $1 AND param = $2 AND species_col = $3
		ORDER BY draw_idx`

	var values []float64
	if err := s.db.SelectContext(ctx, &values, query, model, param, speciesCol); err != nil {
		return nil, errors.Wrapf(err, "failed to load %s/%s draws", model, param)
	}
	if len(values) == 0 {
		return nil, errors.DatabaseError(fmt.Sprintf("no %s draws stored for model %s", param, model))
	}
	return values, nil
}

// SeawaterCurve returns the seawater Mg/Ca trajectory from the
// seawater_curve table.
func (s *DrawStore) SeawaterCurve(ctx context.Context) (seawater.Curve, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.curve != nil {
		return *s.curve, nil
	}

	type row struct {
		Step    int     `db:"step"`
		DrawIdx int     `db:"draw_idx"`
		Value   float64 `db:"value"`
	}
	var rows []row
	query := `SELECT step, draw_idx, value FROM seawater_curve ORDER BY step, draw_idx`
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return seawater.Curve{}, errors.Wrap(err, "failed to load seawater curve")
	}
	if len(rows) == 0 {
		return seawater.Curve{}, errors.DatabaseError("seawater_curve table is empty")
	}

	steps, drawCount := 0, 0
	for _, r := range rows {
		if r.Step+1 > steps {
			steps = r.Step + 1
		}
		if r.DrawIdx+1 > drawCount {
			drawCount = r.DrawIdx + 1
		}
	}
	matrix := make([][]float64, steps)
	for i := range matrix {
		matrix[i] = make([]float64, drawCount)
	}
	for _, r := range rows {
		matrix[r.Step][r.DrawIdx] = r.Value
	}

	curve, err := seawater.NewCurve(matrix)
	if err != nil {
		return seawater.Curve{}, errors.Wrap(err, "stored seawater curve is malformed")
	}
	s.curve = &curve
	return curve, nil
}

var _ ports.DrawStorePort = (*DrawStore)(nil)
