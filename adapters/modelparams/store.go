// Package modelparams exposes the bundled MCMC posterior draw sets and the
// deep-time seawater Mg/Ca smoothing curve. Resources are embedded in the
// binary, parsed once, and handed out as defensive copies.
package modelparams

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"gomgca/domain/calibration"
	"gomgca/domain/seawater"
	"gomgca/internal/errors"
	"gomgca/ports"
)

//go:embed resources/*.json
var resources embed.FS

// pooledFile matches the pooled calibration resource layout: one flat draw
// array per parameter.
type pooledFile struct {
	Alpha        []float64 `json:"alpha"`
	BetaTemp     []float64 `json:"beta_temp"`
	BetaSalinity []float64 `json:"beta_salinity"`
	BetaOmega    []float64 `json:"beta_omega"`
	BetaPH       []float64 `json:"beta_ph"`
	BetaClean    []float64 `json:"beta_clean"`
	Sigma        []float64 `json:"sigma"`
}

// hierarchicalFile matches the per-species calibration resource layout:
// alpha and sigma are draw x species tables, slopes are shared across
// species.
type hierarchicalFile struct {
	Species      []string    `json:"species"`
	Alpha        [][]float64 `json:"alpha"`
	Sigma        [][]float64 `json:"sigma"`
	BetaTemp     []float64   `json:"beta_temp"`
	BetaSalinity []float64   `json:"beta_salinity"`
	BetaOmega    []float64   `json:"beta_omega"`
	BetaPH       []float64   `json:"beta_ph"`
	BetaClean    []float64   `json:"beta_clean"`
}

// curveFile matches the seawater smoothing curve resource layout.
type curveFile struct {
	StepMa float64     `json:"step_ma"`
	Curve  [][]float64 `json:"curve"`
}

// Store serves parameter draws and the seawater curve from embedded
// resources. Safe for concurrent use after the first (lazily synchronized)
// load; cached state is read-only for the process lifetime.
type Store struct {
	once    sync.Once
	loadErr error

	pooledAnnual   calibration.ParamDraws
	pooledSeasonal calibration.ParamDraws
	hierarchical   hierarchicalFile
	curve          seawater.Curve
}

// NewStore creates a store over the embedded resources. Loading is deferred
// to first use.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) load() {
	s.once.Do(func() {
		s.loadErr = s.loadAll()
	})
}

func (s *Store) loadAll() error {
	var annual, seasonal pooledFile
	if err := readResource("resources/pooled_annual.json", &annual); err != nil {
		return err
	}
	if err := readResource("resources/pooled_seasonal.json", &seasonal); err != nil {
		return err
	}
	s.pooledAnnual = pooledDraws(annual)
	s.pooledSeasonal = pooledDraws(seasonal)

	if err := readResource("resources/species_hierarchical.json", &s.hierarchical); err != nil {
		return err
	}

	var cf curveFile
	if err := readResource("resources/mg_smooth.json", &cf); err != nil {
		return err
	}
	if cf.StepMa != seawater.StepMa {
		return errors.ResourceError(
			fmt.Sprintf("seawater curve step %g Ma does not match expected %g Ma", cf.StepMa, seawater.StepMa), nil)
	}
	curve, err := seawater.NewCurve(cf.Curve)
	if err != nil {
		return errors.ResourceError("invalid seawater curve resource", err)
	}
	s.curve = curve
	return nil
}

func readResource(name string, v interface{}) error {
	raw, err := resources.ReadFile(name)
	if err != nil {
		return errors.ResourceError("missing embedded resource "+name, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.ResourceError("malformed embedded resource "+name, err)
	}
	return nil
}

func pooledDraws(f pooledFile) calibration.ParamDraws {
	return calibration.ParamDraws{
		Alpha:        f.Alpha,
		BetaTemp:     f.BetaTemp,
		BetaSalinity: f.BetaSalinity,
		BetaOmega:    f.BetaOmega,
		BetaPH:       f.BetaPH,
		BetaClean:    f.BetaClean,
		Sigma:        f.Sigma,
	}
}

// ParamDraws returns the parameter draws for a species, with hierarchical
// alpha/sigma sliced to the species column. The result is a fresh copy on
// every call.
func (s *Store) ParamDraws(ctx context.Context, sp calibration.Species) (calibration.ParamDraws, error) {
	s.load()
	if s.loadErr != nil {
		return calibration.ParamDraws{}, s.loadErr
	}

	if col, ok := sp.Column(); ok {
		return s.hierarchicalDraws(sp, col)
	}

	switch sp {
	case calibration.SpeciesPooledAnnual:
		return s.pooledAnnual.Clone(), nil
	case calibration.SpeciesPooledSeasonal:
		return s.pooledSeasonal.Clone(), nil
	default:
		return calibration.ParamDraws{}, &calibration.InvalidSpeciesError{Token: string(sp)}
	}
}

func (s *Store) hierarchicalDraws(sp calibration.Species, col int) (calibration.ParamDraws, error) {
	h := s.hierarchical
	draws := calibration.ParamDraws{
		Alpha:        make([]float64, len(h.Alpha)),
		Sigma:        make([]float64, len(h.Sigma)),
		BetaTemp:     h.BetaTemp,
		BetaSalinity: h.BetaSalinity,
		BetaOmega:    h.BetaOmega,
		BetaPH:       h.BetaPH,
		BetaClean:    h.BetaClean,
	}
	for i, row := range h.Alpha {
		if col >= len(row) {
			return calibration.ParamDraws{}, errors.ResourceError(
				fmt.Sprintf("hierarchical alpha table has no column for species %s", sp), nil)
		}
		draws.Alpha[i] = row[col]
	}
	for i, row := range h.Sigma {
		if col >= len(row) {
			return calibration.ParamDraws{}, errors.ResourceError(
				fmt.Sprintf("hierarchical sigma table has no column for species %s", sp), nil)
		}
		draws.Sigma[i] = row[col]
	}
	// Clone so shared slope slices can't leak to callers.
	return draws.Clone(), nil
}

// SeawaterCurve returns the seawater Mg/Ca trajectory. Curves are immutable,
// so the cached value is returned directly.
func (s *Store) SeawaterCurve(ctx context.Context) (seawater.Curve, error) {
	s.load()
	if s.loadErr != nil {
		return seawater.Curve{}, s.loadErr
	}
	return s.curve, nil
}

var _ ports.DrawStorePort = (*Store)(nil)
