// Package app orchestrates the prediction pipeline: covariate assembly,
// ensemble prediction, seawater correction, and percentile summaries.
package app

import (
	"context"
	stderrors "errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"gomgca/domain/calibration"
	"gomgca/domain/core"
	"gomgca/domain/mgca"
	"gomgca/domain/seawater"
	"gomgca/internal"
	"gomgca/internal/errors"
	"gomgca/models"
	"gomgca/ports"
)

// PredictionService runs Mg/Ca predictions against the configured draw
// store, chemistry lookup and RNG.
type PredictionService struct {
	store ports.DrawStorePort
	chem  ports.ChemistryPort
	rng   ports.RNGPort
	log   *internal.Logger

	distanceThresholdKm float64
}

// NewPredictionService wires a prediction service.
func NewPredictionService(store ports.DrawStorePort, chem ports.ChemistryPort, rng ports.RNGPort, log *internal.Logger, distanceThresholdKm float64) *PredictionService {
	return &PredictionService{
		store:               store,
		chem:                chem,
		rng:                 rng,
		log:                 log,
		distanceThresholdKm: distanceThresholdKm,
	}
}

// PredictRequest is one direct prediction call: covariate arrays, a species
// token, and an optional age for the seawater correction.
type PredictRequest struct {
	SeaTemp  []float64
	Cleaning []float64
	Salinity []float64
	PH       []float64
	Omega    []float64
	Species  string
	Age      *float64 // Ma; nil skips the seawater correction
	Seed     int64
}

// PredictResult carries the (possibly corrected) prediction and its default
// percentile summary.
type PredictResult struct {
	Prediction  *mgca.Prediction
	Percentiles [][]float64 // n x len(DefaultPercentiles)
}

// Predict runs one prediction. Domain failures come back coded:
// INVALID_SPECIES, COVARIATE_SHAPE, AGE_OUT_OF_RANGE.
func (s *PredictionService) Predict(ctx context.Context, req PredictRequest) (*PredictResult, error) {
	sampler, err := s.rng.SeededSampler(ctx, "predict", req.Seed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create sampler")
	}

	drawsFn := func(sp calibration.Species) (calibration.ParamDraws, error) {
		return s.store.ParamDraws(ctx, sp)
	}
	cov := mgca.Covariates{
		SeaTemp:  req.SeaTemp,
		Cleaning: req.Cleaning,
		Salinity: req.Salinity,
		PH:       req.PH,
		Omega:    req.Omega,
	}

	pred, err := mgca.Predict(cov, req.Species, drawsFn, sampler)
	if err != nil {
		return nil, codedDomainError(err)
	}

	if req.Age != nil {
		curve, err := s.store.SeawaterCurve(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load seawater curve")
		}
		pred, err = seawater.Correct(pred, *req.Age, curve)
		if err != nil {
			return nil, codedDomainError(err)
		}
	}

	perc, err := pred.Percentile(nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to summarize ensemble")
	}
	return &PredictResult{Prediction: pred, Percentiles: perc}, nil
}

// SiteStatus reports the outcome for one site in a batch run.
type SiteStatus string

const (
	SiteOK      SiteStatus = "ok"
	SiteSkipped SiteStatus = "skipped"
)

// SiteResult is the per-site outcome of a batch run.
type SiteResult struct {
	Site        models.Site
	Status      SiteStatus
	Reason      string // populated when skipped
	Prediction  *mgca.Prediction
	Percentiles [][]float64
}

// RunManifest records what a batch run did, in enough detail to replay it.
type RunManifest struct {
	RunID     core.RunID
	Species   string
	Seed      int64
	Sites     int
	Predicted int
	Skipped   int
	CreatedAt core.Timestamp
}

// RunResult is a batch run's manifest plus per-site outcomes, in input order.
type RunResult struct {
	Manifest RunManifest
	Sites    []SiteResult
}

// Run predicts every site with the given species calibration, applying each
// site's seawater correction. Sites run concurrently up to the given limit;
// per-site RNG streams derive from the run ID and base seed, so results do
// not depend on scheduling. Sites whose chemistry lookup fails the distance
// threshold are reported as skipped rather than failing the run.
func (s *PredictionService) Run(ctx context.Context, sites []models.Site, species string, seed int64, concurrency int) (*RunResult, error) {
	if len(sites) == 0 {
		return nil, errors.InvalidInput("no sites to predict")
	}
	if _, err := calibration.ParseSpecies(species); err != nil {
		return nil, codedDomainError(err)
	}

	runID := core.RunID(core.NewID())
	curve, err := s.store.SeawaterCurve(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load seawater curve")
	}

	results := make([]SiteResult, len(sites))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, site := range sites {
		g.Go(func() error {
			res, err := s.runSite(gctx, runID, site, species, seed, curve)
			if err != nil {
				return fmt.Errorf("site %s: %w", site.Name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	manifest := RunManifest{
		RunID:     runID,
		Species:   species,
		Seed:      seed,
		Sites:     len(sites),
		CreatedAt: core.Now(),
	}
	for _, r := range results {
		if r.Status == SiteOK {
			manifest.Predicted++
		} else {
			manifest.Skipped++
		}
	}
	s.log.Info("run %s finished: %d predicted, %d skipped", runID, manifest.Predicted, manifest.Skipped)

	return &RunResult{Manifest: manifest, Sites: results}, nil
}

func (s *PredictionService) runSite(ctx context.Context, runID core.RunID, site models.Site, species string, seed int64, curve seawater.Curve) (SiteResult, error) {
	ph, omega, ok, reason, err := s.resolveChemistry(ctx, site)
	if err != nil {
		return SiteResult{}, err
	}
	if !ok {
		s.log.Warn("site %s skipped: %s", site.Name, reason)
		return SiteResult{Site: site, Status: SiteSkipped, Reason: reason}, nil
	}

	sampler, err := s.rng.SiteSampler(ctx, runID.String(), site.Name, seed)
	if err != nil {
		return SiteResult{}, errors.Wrap(err, "failed to create sampler")
	}

	drawsFn := func(sp calibration.Species) (calibration.ParamDraws, error) {
		return s.store.ParamDraws(ctx, sp)
	}
	cov := mgca.Covariates{
		SeaTemp:  mgca.Scalar(site.SeaTemp),
		Cleaning: mgca.Scalar(site.Cleaning),
		Salinity: mgca.Scalar(site.Salinity),
		PH:       mgca.Scalar(ph),
		Omega:    mgca.Scalar(omega),
	}
	pred, err := mgca.Predict(cov, species, drawsFn, sampler)
	if err != nil {
		return SiteResult{}, codedDomainError(err)
	}

	pred, err = seawater.Correct(pred, site.Age, curve)
	if err != nil {
		return SiteResult{}, codedDomainError(err)
	}

	perc, err := pred.Percentile(nil)
	if err != nil {
		return SiteResult{}, errors.Wrap(err, "failed to summarize ensemble")
	}
	return SiteResult{Site: site, Status: SiteOK, Prediction: pred, Percentiles: perc}, nil
}

// resolveChemistry fills missing pH/omega from the modern ocean lookup. A
// distance-threshold failure marks the covariates unavailable (site skipped);
// any other lookup failure is fatal.
func (s *PredictionService) resolveChemistry(ctx context.Context, site models.Site) (ph, omega float64, ok bool, reason string, err error) {
	if site.PH != nil && site.Omega != nil {
		return *site.PH, *site.Omega, true, "", nil
	}

	state, err := s.chem.Carbonate(ctx, site.Lat, site.Lon, site.Depth, s.distanceThresholdKm)
	if err != nil {
		if errors.GetCode(err) == errors.CodeDistanceThreshold {
			return 0, 0, false, "chemistry unavailable: " + err.Error(), nil
		}
		return 0, 0, false, "", errors.Wrap(err, "chemistry lookup failed")
	}

	ph, omega = state.PH, state.Omega
	if site.PH != nil {
		ph = *site.PH
	}
	if site.Omega != nil {
		omega = *site.Omega
	}
	return ph, omega, true, "", nil
}

// codedDomainError attaches the matching error code to a typed domain error.
func codedDomainError(err error) error {
	var (
		ise *calibration.InvalidSpeciesError
		cse *mgca.CovariateShapeError
		oor *seawater.AgeOutOfRangeError
	)
	switch {
	case stderrors.As(err, &ise):
		return errors.WithCode(errors.CodeInvalidSpecies, err)
	case stderrors.As(err, &cse):
		return errors.WithCode(errors.CodeCovariateShape, err)
	case stderrors.As(err, &oor):
		return errors.WithCode(errors.CodeAgeOutOfRange, err)
	default:
		return err
	}
}
