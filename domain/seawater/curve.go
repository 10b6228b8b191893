// Package seawater applies the deep-time seawater Mg/Ca correction to
// prediction ensembles. Seawater Mg/Ca has drifted over geologic time, so
// predictions for old samples are rescaled by the modeled ratio between the
// seawater composition at the sample's age and today's.
package seawater

import (
	"fmt"

	"gomgca/domain/mgca"
)

// StepMa is the age resolution of the correction curve: one row per 0.5 Ma.
const StepMa = 0.5

// Curve is the modeled seawater Mg/Ca trajectory. Rows are age steps at
// StepMa resolution with row 0 representing present day; columns are draws
// from the seawater model posterior.
type Curve struct {
	rows [][]float64
}

// NewCurve builds a curve from an age-step x draw matrix. The matrix is
// deep-copied; curves are immutable once built.
func NewCurve(rows [][]float64) (Curve, error) {
	if len(rows) == 0 {
		return Curve{}, fmt.Errorf("seawater curve has no age steps")
	}
	m := len(rows[0])
	if m == 0 {
		return Curve{}, fmt.Errorf("seawater curve has no draws")
	}
	out := make([][]float64, len(rows))
	for i, row := range rows {
		if len(row) != m {
			return Curve{}, fmt.Errorf("ragged seawater curve: row %d has %d draws, expected %d", i, len(row), m)
		}
		out[i] = make([]float64, m)
		copy(out[i], row)
	}
	return Curve{rows: out}, nil
}

// Steps returns the number of age steps.
func (c Curve) Steps() int {
	return len(c.rows)
}

// DrawCount returns the number of posterior draws per age step.
func (c Curve) DrawCount() int {
	if len(c.rows) == 0 {
		return 0
	}
	return len(c.rows[0])
}

// MaxAge returns the oldest age (Ma) the curve can correct for.
func (c Curve) MaxAge() float64 {
	return float64(len(c.rows)-1) * StepMa
}

// AgeOutOfRangeError reports an age outside the correction curve's bounds.
type AgeOutOfRangeError struct {
	Age   float64
	Steps int
}

func (e *AgeOutOfRangeError) Error() string {
	max := float64(e.Steps-1) * StepMa
	return fmt.Sprintf("age %g Ma outside seawater curve range [0, %g]", e.Age, max)
}

// RatioAt returns the per-draw ratio of seawater Mg/Ca at the given age (Ma)
// to its present-day value. The age maps to a row by truncation (floor of
// age/StepMa), matching the source model's half-Ma lookup.
func (c Curve) RatioAt(age float64) ([]float64, error) {
	if age < 0 {
		return nil, &AgeOutOfRangeError{Age: age, Steps: len(c.rows)}
	}
	t := int(age / StepMa)
	if t >= len(c.rows) {
		return nil, &AgeOutOfRangeError{Age: age, Steps: len(c.rows)}
	}
	ratio := make([]float64, len(c.rows[t]))
	for j := range ratio {
		ratio[j] = c.rows[t][j] / c.rows[0][j]
	}
	return ratio, nil
}

// Correct rescales a prediction ensemble for seawater Mg/Ca at the given age
// (Ma). The age applies uniformly to the whole ensemble; call once per age
// when observations span multiple ages. The draw-indexed ratio broadcasts
// across observations and a new prediction is returned; the input is never
// mutated.
func Correct(p *mgca.Prediction, age float64, c Curve) (*mgca.Prediction, error) {
	ratio, err := c.RatioAt(age)
	if err != nil {
		return nil, err
	}
	if len(ratio) != p.DrawCount() {
		return nil, fmt.Errorf("seawater curve has %d draws, prediction has %d", len(ratio), p.DrawCount())
	}
	ensemble := p.Ensemble()
	for i := range ensemble {
		for j := range ensemble[i] {
			ensemble[i][j] *= ratio[j]
		}
	}
	return mgca.NewPrediction(ensemble, p.Species())
}
