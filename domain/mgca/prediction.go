package mgca

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"gomgca/domain/calibration"
)

// DefaultPercentiles are the percentiles reported when none are requested.
var DefaultPercentiles = []float64{5, 50, 95}

// Prediction is an immutable Mg/Ca prediction ensemble: one row per
// observation, one column per posterior draw, tagged with the species whose
// calibration produced it. Rescaling operations return new predictions.
type Prediction struct {
	ensemble [][]float64
	species  calibration.Species
}

// NewPrediction builds a prediction from an n x m ensemble. The ensemble is
// deep-copied so the prediction cannot observe later caller mutation.
func NewPrediction(ensemble [][]float64, species calibration.Species) (*Prediction, error) {
	if len(ensemble) == 0 {
		return nil, fmt.Errorf("prediction ensemble is empty")
	}
	m := len(ensemble[0])
	if m == 0 {
		return nil, fmt.Errorf("prediction ensemble has no draws")
	}
	rows := make([][]float64, len(ensemble))
	for i, row := range ensemble {
		if len(row) != m {
			return nil, fmt.Errorf("ragged ensemble: row %d has %d draws, expected %d", i, len(row), m)
		}
		rows[i] = make([]float64, m)
		copy(rows[i], row)
	}
	return &Prediction{ensemble: rows, species: species}, nil
}

// Species returns the species tag the ensemble was predicted with.
func (p *Prediction) Species() calibration.Species {
	return p.species
}

// Len returns the number of observations (rows).
func (p *Prediction) Len() int {
	return len(p.ensemble)
}

// DrawCount returns the ensemble size (columns).
func (p *Prediction) DrawCount() int {
	return len(p.ensemble[0])
}

// Ensemble returns a deep copy of the n x m ensemble.
func (p *Prediction) Ensemble() [][]float64 {
	out := make([][]float64, len(p.ensemble))
	for i, row := range p.ensemble {
		out[i] = make([]float64, len(row))
		copy(out[i], row)
	}
	return out
}

// Row returns a copy of one observation's ensemble members.
func (p *Prediction) Row(i int) []float64 {
	row := make([]float64, len(p.ensemble[i]))
	copy(row, p.ensemble[i])
	return row
}

// Percentile reduces the ensemble to the requested percentiles per
// observation using nearest-rank selection, so every reported value is an
// actual ensemble member rather than an interpolated one. A nil q defaults to
// DefaultPercentiles. Returns an n x len(q) array.
func (p *Prediction) Percentile(q []float64) ([][]float64, error) {
	if q == nil {
		q = DefaultPercentiles
	}
	if len(q) == 0 {
		return nil, fmt.Errorf("no percentiles requested")
	}
	out := make([][]float64, len(p.ensemble))
	for i, row := range p.ensemble {
		out[i] = make([]float64, len(q))
		for k, pct := range q {
			v, err := stats.PercentileNearestRank(stats.Float64Data(row), pct)
			if err != nil {
				return nil, fmt.Errorf("percentile %v of observation %d: %w", pct, i, err)
			}
			out[i][k] = v
		}
	}
	return out, nil
}
