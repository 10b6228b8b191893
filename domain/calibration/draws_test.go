package calibration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureDraws() ParamDraws {
	return ParamDraws{
		Alpha:        []float64{1.0, 1.1},
		BetaTemp:     []float64{0.06, 0.07},
		BetaSalinity: []float64{0.04, 0.05},
		BetaOmega:    []float64{-0.4, -0.5},
		BetaPH:       []float64{-0.6, -0.7},
		BetaClean:    []float64{0.1, 0.2},
		Sigma:        []float64{0.2, 0.3},
	}
}

func TestParamDraws_Validate(t *testing.T) {
	d := fixtureDraws()
	require.NoError(t, d.Validate())
	assert.Equal(t, 2, d.Len())
}

func TestParamDraws_ValidateMismatch(t *testing.T) {
	d := fixtureDraws()
	d.Sigma = d.Sigma[:1]
	err := d.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sigma")
}

func TestParamDraws_ValidateEmpty(t *testing.T) {
	assert.Error(t, ParamDraws{}.Validate())
}

func TestParamDraws_CloneIsIndependent(t *testing.T) {
	d := fixtureDraws()
	c := d.Clone()
	c.Alpha[0] = 99
	c.Sigma[1] = 99
	assert.Equal(t, 1.0, d.Alpha[0])
	assert.Equal(t, 0.3, d.Sigma[1])
}
