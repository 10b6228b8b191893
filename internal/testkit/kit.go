// Package testkit provides fixture adapters for tests: a fixed draw store,
// a configurable chemistry lookup, and deterministic samplers.
package testkit

import (
	"context"

	"gomgca/domain/calibration"
	"gomgca/domain/chemistry"
	"gomgca/domain/mgca"
	"gomgca/domain/seawater"
	"gomgca/ports"
)

// FixtureDrawStore serves small fixed draw sets for every species and a
// three-step seawater curve.
type FixtureDrawStore struct{}

// NewFixtureDrawStore creates a fixture draw store.
func NewFixtureDrawStore() *FixtureDrawStore {
	return &FixtureDrawStore{}
}

// ParamDraws returns four fixed draws. Hierarchical species get a small
// per-column intercept offset so species remain distinguishable in tests.
func (s *FixtureDrawStore) ParamDraws(ctx context.Context, sp calibration.Species) (calibration.ParamDraws, error) {
	base := calibration.ParamDraws{
		Alpha:        []float64{0.30, 0.32, 0.28, 0.31},
		BetaTemp:     []float64{0.060, 0.062, 0.058, 0.061},
		BetaSalinity: []float64{0.040, 0.042, 0.038, 0.041},
		BetaOmega:    []float64{-0.40, -0.44, -0.38, -0.42},
		BetaPH:       []float64{-0.60, -0.64, -0.58, -0.62},
		BetaClean:    []float64{0.10, 0.12, 0.09, 0.11},
		Sigma:        []float64{0.20, 0.22, 0.19, 0.21},
	}
	if col, ok := sp.Column(); ok {
		for i := range base.Alpha {
			base.Alpha[i] += 0.05 * float64(col)
		}
	}
	return base, nil
}

// SeawaterCurve returns a fixed three-step curve covering ages [0, 1.0] Ma.
func (s *FixtureDrawStore) SeawaterCurve(ctx context.Context) (seawater.Curve, error) {
	return seawater.NewCurve([][]float64{
		{10, 10, 10, 10},
		{9, 11, 10, 9.5},
		{8, 12, 10, 9},
	})
}

// FakeChemistry returns a fixed carbonate state, or a configured error.
type FakeChemistry struct {
	State chemistry.CarbonateState
	Err   error
}

// NewFakeChemistry creates a fake chemistry lookup with sensible defaults.
func NewFakeChemistry() *FakeChemistry {
	return &FakeChemistry{
		State: chemistry.CarbonateState{PH: 8.05, DeltaCO3: 60, Omega: 3.5},
	}
}

// Carbonate returns the configured state or error.
func (f *FakeChemistry) Carbonate(ctx context.Context, lat, lon, depth, distanceThresholdKm float64) (chemistry.CarbonateState, error) {
	if f.Err != nil {
		return chemistry.CarbonateState{}, f.Err
	}
	return f.State, nil
}

// MeanSampler returns the mean, suppressing residual noise.
type MeanSampler struct{}

// Normal returns mu.
func (MeanSampler) Normal(mu, sigma float64) float64 { return mu }

// FixedRNG hands out MeanSamplers regardless of seed, so service-level tests
// are exactly reproducible.
type FixedRNG struct{}

// SeededSampler returns a MeanSampler.
func (FixedRNG) SeededSampler(ctx context.Context, name string, seed int64) (mgca.Sampler, error) {
	return MeanSampler{}, nil
}

// SiteSampler returns a MeanSampler.
func (FixedRNG) SiteSampler(ctx context.Context, runID, siteKey string, baseSeed int64) (mgca.Sampler, error) {
	return MeanSampler{}, nil
}

var (
	_ ports.DrawStorePort = (*FixtureDrawStore)(nil)
	_ ports.ChemistryPort = (*FakeChemistry)(nil)
	_ ports.RNGPort       = FixedRNG{}
)
