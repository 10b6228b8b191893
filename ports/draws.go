package ports

import (
	"context"

	"gomgca/domain/calibration"
	"gomgca/domain/seawater"
)

// DrawStorePort exposes the bundled posterior draw sets and the seawater
// correction curve. Implementations load once and cache; every accessor
// returns data the caller owns (defensive copies), so shared cached state can
// never be corrupted through a return value.
type DrawStorePort interface {
	// ParamDraws returns the parameter draws for a resolved species, with
	// hierarchical alpha/sigma already sliced to the species column.
	ParamDraws(ctx context.Context, sp calibration.Species) (calibration.ParamDraws, error)

	// SeawaterCurve returns the age-step x draw seawater Mg/Ca trajectory.
	SeawaterCurve(ctx context.Context) (seawater.Curve, error)
}
