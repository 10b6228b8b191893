package app

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gomgca/internal"
	"gomgca/internal/errors"
	"gomgca/internal/testkit"
	"gomgca/models"
)

func newTestService(chem *testkit.FakeChemistry) *PredictionService {
	return NewPredictionService(
		testkit.NewFixtureDrawStore(),
		chem,
		testkit.FixedRNG{},
		internal.NewLogger(internal.LogLevelError),
		2000,
	)
}

func ptr(v float64) *float64 { return &v }

func testSites() []models.Site {
	return []models.Site{
		{Name: "ODP-999A", Lat: 12.74, Lon: -78.74, Depth: 2828, Age: 0.5, SeaTemp: 27.4, Cleaning: 0, Salinity: 35.1},
		{Name: "MD97-2120", Lat: -45.53, Lon: 174.93, Depth: 1210, Age: 1.0, SeaTemp: 11.2, Cleaning: 1, Salinity: 34.6, PH: ptr(8.1), Omega: ptr(2.8)},
	}
}

func TestPredict_Direct(t *testing.T) {
	svc := newTestService(testkit.NewFakeChemistry())

	res, err := svc.Predict(context.Background(), PredictRequest{
		SeaTemp:  []float64{24, 26},
		Cleaning: []float64{0, 1},
		Salinity: []float64{35},
		PH:       []float64{8.1},
		Omega:    []float64{4},
		Species:  "ruber",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Prediction.Len())
	assert.Equal(t, 4, res.Prediction.DrawCount())
	require.Len(t, res.Percentiles, 2)
	require.Len(t, res.Percentiles[0], 3)
	for _, row := range res.Prediction.Ensemble() {
		for _, v := range row {
			assert.Greater(t, v, 0.0)
		}
	}
}

func TestPredict_InvalidSpeciesCode(t *testing.T) {
	svc := newTestService(testkit.NewFakeChemistry())

	_, err := svc.Predict(context.Background(), PredictRequest{
		SeaTemp:  []float64{24},
		Cleaning: []float64{0},
		Salinity: []float64{35},
		PH:       []float64{8.1},
		Omega:    []float64{4},
		Species:  "G. menardii",
	})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidSpecies, errors.GetCode(err))
}

func TestPredict_AgeOutOfRangeCode(t *testing.T) {
	svc := newTestService(testkit.NewFakeChemistry())

	age := 50.0 // fixture curve only reaches 1.0 Ma
	_, err := svc.Predict(context.Background(), PredictRequest{
		SeaTemp:  []float64{24},
		Cleaning: []float64{0},
		Salinity: []float64{35},
		PH:       []float64{8.1},
		Omega:    []float64{4},
		Species:  "all",
		Age:      &age,
	})
	require.Error(t, err)
	assert.Equal(t, errors.CodeAgeOutOfRange, errors.GetCode(err))
}

func TestPredict_ShapeErrorCode(t *testing.T) {
	svc := newTestService(testkit.NewFakeChemistry())

	_, err := svc.Predict(context.Background(), PredictRequest{
		SeaTemp:  []float64{24, 25, 26},
		Cleaning: []float64{0, 1},
		Salinity: []float64{35},
		PH:       []float64{8.1},
		Omega:    []float64{4},
		Species:  "all",
	})
	require.Error(t, err)
	assert.Equal(t, errors.CodeCovariateShape, errors.GetCode(err))
}

func TestRun_FillsChemistryAndCorrects(t *testing.T) {
	svc := newTestService(testkit.NewFakeChemistry())

	res, err := svc.Run(context.Background(), testSites(), "ruber", 1, 2)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Manifest.Sites)
	assert.Equal(t, 2, res.Manifest.Predicted)
	assert.Equal(t, 0, res.Manifest.Skipped)
	assert.False(t, res.Manifest.RunID.String() == "")

	for _, site := range res.Sites {
		require.Equal(t, SiteOK, site.Status, "site %s", site.Site.Name)
		require.NotNil(t, site.Prediction)
		assert.Equal(t, 1, site.Prediction.Len())
	}
}

func TestRun_DistanceThresholdSkipsSite(t *testing.T) {
	chem := testkit.NewFakeChemistry()
	chem.Err = errors.WithCode(errors.CodeDistanceThreshold,
		fmt.Errorf("nearest gridded data is 3000 km away"))
	svc := newTestService(chem)

	res, err := svc.Run(context.Background(), testSites(), "all", 1, 2)
	require.NoError(t, err, "threshold failures must not fail the run")

	// Site 0 has no pH/omega and needs chemistry; site 1 carries both.
	assert.Equal(t, 1, res.Manifest.Skipped)
	assert.Equal(t, 1, res.Manifest.Predicted)
	assert.Equal(t, SiteSkipped, res.Sites[0].Status)
	assert.Contains(t, res.Sites[0].Reason, "chemistry unavailable")
	assert.Equal(t, SiteOK, res.Sites[1].Status)
}

func TestRun_OtherChemistryErrorIsFatal(t *testing.T) {
	chem := testkit.NewFakeChemistry()
	chem.Err = fmt.Errorf("climatology resource corrupted")
	svc := newTestService(chem)

	_, err := svc.Run(context.Background(), testSites(), "all", 1, 2)
	assert.Error(t, err)
}

func TestRun_InvalidSpeciesFailsFast(t *testing.T) {
	svc := newTestService(testkit.NewFakeChemistry())

	_, err := svc.Run(context.Background(), testSites(), "nope", 1, 2)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidSpecies, errors.GetCode(err))
}

func TestRenderReport(t *testing.T) {
	svc := newTestService(testkit.NewFakeChemistry())

	res, err := svc.Run(context.Background(), testSites(), "ruber", 1, 1)
	require.NoError(t, err)

	md, err := RenderReport(res)
	require.NoError(t, err)
	assert.Contains(t, md, "ODP-999A")
	assert.Contains(t, md, "MD97-2120")
	assert.Contains(t, md, "`ruber`")

	htmlOut, err := RenderReportHTML(res)
	require.NoError(t, err)
	assert.Contains(t, string(htmlOut), "<table>")
}
