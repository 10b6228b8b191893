package chemistry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_CaribbeanSiteUsesRegionalProfile(t *testing.T) {
	ctx := context.Background()
	lookup := NewLookup()

	// Central Caribbean, mid-depth.
	state, err := lookup.Carbonate(ctx, 15.0, -75.0, 1000, 2000)
	require.NoError(t, err)
	assert.Greater(t, state.PH, 7.0)
	assert.Less(t, state.PH, 8.5)
	assert.Greater(t, state.Omega, 0.0)
}

func TestLookup_ArcticSite(t *testing.T) {
	ctx := context.Background()
	lookup := NewLookup()

	state, err := lookup.Carbonate(ctx, 78.0, -5.0, 200, 2000)
	require.NoError(t, err)
	assert.Greater(t, state.Omega, 0.0)
}

func TestLookup_OpenOceanSite(t *testing.T) {
	ctx := context.Background()
	lookup := NewLookup()

	state, err := lookup.Carbonate(ctx, -30.0, 10.0, 3000, 2000)
	require.NoError(t, err)
	assert.Greater(t, state.PH, 7.0)
}

func TestLookup_DistanceThreshold(t *testing.T) {
	ctx := context.Background()
	lookup := NewLookup()

	// Grid spacing is 10 degrees; a 1 km threshold can never be satisfied
	// away from a grid point.
	_, err := lookup.Carbonate(ctx, -31.7, 12.3, 0, 1)
	require.Error(t, err)

	var dte *DistanceThresholdError
	assert.True(t, errors.As(err, &dte), "expected DistanceThresholdError, got %v", err)
}

func TestLookup_RejectsBadCoordinates(t *testing.T) {
	ctx := context.Background()
	lookup := NewLookup()

	_, err := lookup.Carbonate(ctx, 95.0, 0.0, 0, 2000)
	assert.Error(t, err)
}

func TestLookup_DeeperWaterIsMoreCorrosive(t *testing.T) {
	ctx := context.Background()
	lookup := NewLookup()

	surface, err := lookup.Carbonate(ctx, 10.0, -140.0, 0, 2000)
	require.NoError(t, err)
	deep, err := lookup.Carbonate(ctx, 10.0, -140.0, 3000, 2000)
	require.NoError(t, err)

	assert.Greater(t, surface.Omega, deep.Omega)
}
