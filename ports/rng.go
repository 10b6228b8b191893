package ports

import (
	"context"

	"gomgca/domain/mgca"
)

// RNGPort provides seeded samplers for the posterior-predictive residual
// draw. Deterministic streams keyed by run and site ensure batch runs
// reproduce exactly for the same base seed, with no cross-site interleaving.
type RNGPort interface {
	// SeededSampler creates a Gaussian sampler for a named operation.
	SeededSampler(ctx context.Context, name string, seed int64) (mgca.Sampler, error)

	// SiteSampler creates a deterministic sampler for one site within a run,
	// derived from the run's base seed.
	SiteSampler(ctx context.Context, runID, siteKey string, baseSeed int64) (mgca.Sampler, error)
}
