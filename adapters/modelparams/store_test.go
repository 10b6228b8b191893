package modelparams

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gomgca/domain/calibration"
)

func TestStore_AllSpeciesResolve(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	for _, sp := range calibration.CanonicalSpecies() {
		draws, err := store.ParamDraws(ctx, sp)
		require.NoError(t, err, "species %s", sp)
		require.NoError(t, draws.Validate(), "species %s", sp)
		assert.Greater(t, draws.Len(), 0, "species %s", sp)
	}
}

func TestStore_DrawCountConsistentAcrossSpecies(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	hier, err := store.ParamDraws(ctx, calibration.SpeciesRuber)
	require.NoError(t, err)
	for _, sp := range []calibration.Species{calibration.SpeciesBulloides, calibration.SpeciesSacculifer, calibration.SpeciesPachy} {
		draws, err := store.ParamDraws(ctx, sp)
		require.NoError(t, err)
		assert.Equal(t, hier.Len(), draws.Len(), "hierarchical species share one draw table")
	}
}

func TestStore_ReturnsDefensiveCopies(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	first, err := store.ParamDraws(ctx, calibration.SpeciesPooledAnnual)
	require.NoError(t, err)
	want := first.Alpha[0]

	first.Alpha[0] = -9999
	first.BetaTemp[0] = -9999

	second, err := store.ParamDraws(ctx, calibration.SpeciesPooledAnnual)
	require.NoError(t, err)
	assert.Equal(t, want, second.Alpha[0], "caller mutation must not reach cached draws")
	assert.NotEqual(t, -9999.0, second.BetaTemp[0])
}

func TestStore_HierarchicalColumnsDiffer(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	ruber, err := store.ParamDraws(ctx, calibration.SpeciesRuber)
	require.NoError(t, err)
	pachy, err := store.ParamDraws(ctx, calibration.SpeciesPachy)
	require.NoError(t, err)

	// Shared slopes, species-specific intercepts.
	assert.Equal(t, ruber.BetaTemp, pachy.BetaTemp)
	assert.NotEqual(t, ruber.Alpha, pachy.Alpha)
}

func TestStore_SeawaterCurve(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	curve, err := store.SeawaterCurve(ctx)
	require.NoError(t, err)
	assert.Greater(t, curve.Steps(), 1)
	assert.Greater(t, curve.DrawCount(), 0)

	// Present-day ratio is exactly 1 for every draw.
	ratio, err := curve.RatioAt(0)
	require.NoError(t, err)
	for _, r := range ratio {
		assert.Equal(t, 1.0, r)
	}
}
