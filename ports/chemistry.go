package ports

import (
	"context"

	"gomgca/domain/chemistry"
)

// ChemistryPort looks up modern seawater carbonate chemistry for a site.
// distanceThresholdKm bounds how far from the site gridded data may be
// taken; beyond it the lookup fails and callers treat the covariates as
// missing rather than crashing the pipeline.
type ChemistryPort interface {
	Carbonate(ctx context.Context, lat, lon, depth, distanceThresholdKm float64) (chemistry.CarbonateState, error)
}
