package calibration

import (
	"fmt"
)

// ParamDraws holds posterior parameter draws for one calibration model. Each
// slice has one entry per MCMC draw; the shared draw count is the ensemble
// size of any prediction made with these parameters.
type ParamDraws struct {
	Alpha        []float64
	BetaTemp     []float64
	BetaSalinity []float64
	BetaOmega    []float64
	BetaPH       []float64
	BetaClean    []float64
	Sigma        []float64
}

// DrawsFunc supplies parameter draws for a resolved species. Prediction code
// takes the draw source as a function so tests can substitute fixed draws,
// mirroring the store's accessor signature.
type DrawsFunc func(Species) (ParamDraws, error)

// Len returns the draw count.
func (d ParamDraws) Len() int {
	return len(d.Alpha)
}

// Validate checks that every parameter carries the same, non-zero number of
// draws.
func (d ParamDraws) Validate() error {
	n := len(d.Alpha)
	if n == 0 {
		return fmt.Errorf("parameter draws are empty")
	}
	params := map[string]int{
		"beta_temp":     len(d.BetaTemp),
		"beta_salinity": len(d.BetaSalinity),
		"beta_omega":    len(d.BetaOmega),
		"beta_ph":       len(d.BetaPH),
		"beta_clean":    len(d.BetaClean),
		"sigma":         len(d.Sigma),
	}
	for name, l := range params {
		if l != n {
			return fmt.Errorf("draw count mismatch: alpha has %d draws, %s has %d", n, name, l)
		}
	}
	return nil
}

// Clone returns a deep copy. Store accessors hand out clones so callers can
// never corrupt process-wide cached draws.
func (d ParamDraws) Clone() ParamDraws {
	return ParamDraws{
		Alpha:        cloneFloats(d.Alpha),
		BetaTemp:     cloneFloats(d.BetaTemp),
		BetaSalinity: cloneFloats(d.BetaSalinity),
		BetaOmega:    cloneFloats(d.BetaOmega),
		BetaPH:       cloneFloats(d.BetaPH),
		BetaClean:    cloneFloats(d.BetaClean),
		Sigma:        cloneFloats(d.Sigma),
	}
}

func cloneFloats(src []float64) []float64 {
	if src == nil {
		return nil
	}
	out := make([]float64, len(src))
	copy(out, src)
	return out
}
