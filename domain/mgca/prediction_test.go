package mgca

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gomgca/domain/calibration"
)

func TestNewPrediction_CopiesInput(t *testing.T) {
	ensemble := [][]float64{{1, 2, 3}, {4, 5, 6}}
	pred, err := NewPrediction(ensemble, calibration.SpeciesRuber)
	require.NoError(t, err)

	ensemble[0][0] = -1
	assert.Equal(t, 1.0, pred.Row(0)[0], "prediction must not alias caller data")
}

func TestNewPrediction_RejectsRagged(t *testing.T) {
	_, err := NewPrediction([][]float64{{1, 2}, {3}}, calibration.SpeciesRuber)
	assert.Error(t, err)
}

func TestEnsemble_ReturnsCopy(t *testing.T) {
	pred, err := NewPrediction([][]float64{{1, 2}}, calibration.SpeciesPachy)
	require.NoError(t, err)

	out := pred.Ensemble()
	out[0][0] = -1
	assert.Equal(t, 1.0, pred.Row(0)[0])
}

func TestPercentile_DefaultQ(t *testing.T) {
	pred, err := NewPrediction([][]float64{{3, 1, 4, 1, 5, 9, 2, 6}}, calibration.SpeciesRuber)
	require.NoError(t, err)

	perc, err := pred.Percentile(nil)
	require.NoError(t, err)
	require.Len(t, perc, 1)
	require.Len(t, perc[0], 3)
	assert.LessOrEqual(t, perc[0][0], perc[0][1])
	assert.LessOrEqual(t, perc[0][1], perc[0][2])
}

func TestPercentile_NearestRankIsAMember(t *testing.T) {
	rows := [][]float64{
		{3.7, 1.2, 4.8, 1.9, 5.5, 9.1, 2.6},
		{0.4, 0.9, 0.7, 0.3, 0.8, 0.5, 0.6},
	}
	pred, err := NewPrediction(rows, calibration.SpeciesSacculifer)
	require.NoError(t, err)

	perc, err := pred.Percentile([]float64{50})
	require.NoError(t, err)

	for i, row := range rows {
		assert.Contains(t, row, perc[i][0], "nearest-rank percentile must be an actual member of row %d", i)
	}
}

func TestPercentile_DoesNotMutateEnsemble(t *testing.T) {
	pred, err := NewPrediction([][]float64{{5, 1, 3}}, calibration.SpeciesRuber)
	require.NoError(t, err)

	before := pred.Ensemble()
	_, err = pred.Percentile([]float64{5, 50, 95})
	require.NoError(t, err)
	assert.Equal(t, before, pred.Ensemble())
}

func TestPercentile_RejectsOutOfBounds(t *testing.T) {
	pred, err := NewPrediction([][]float64{{1, 2}}, calibration.SpeciesRuber)
	require.NoError(t, err)

	_, err = pred.Percentile([]float64{101})
	assert.Error(t, err)
}
