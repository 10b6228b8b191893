package mgca

import (
	"fmt"
)

// Covariates are the per-observation inputs to the Mg/Ca forward model.
// SeaTemp and Cleaning set the observation count; Salinity, PH and Omega may
// be scalars (length-1 slices) that broadcast across all observations. Use
// Scalar to wrap single values.
type Covariates struct {
	SeaTemp  []float64 // sea temperature (degC)
	Cleaning []float64 // 1 for reductive cleaning, 0 for Barker (BCP)
	Salinity []float64 // sea water salinity (PSU)
	PH       []float64 // sea water pH
	Omega    []float64 // calcite saturation state, untransformed
}

// Scalar wraps a single covariate value as a length-1 array so it broadcasts
// across all observations.
func Scalar(v float64) []float64 {
	return []float64{v}
}

// CovariateShapeError reports a covariate array that cannot broadcast to the
// common observation count.
type CovariateShapeError struct {
	Name string
	Len  int
	Want int
}

func (e *CovariateShapeError) Error() string {
	return fmt.Sprintf("covariate %s has length %d, cannot broadcast to %d observations", e.Name, e.Len, e.Want)
}

// broadcast validates the covariate shapes and expands scalar covariates to
// the common observation count. Returns the expanded covariates and n.
func (c Covariates) broadcast() (Covariates, int, error) {
	if len(c.SeaTemp) == 0 {
		return Covariates{}, 0, &CovariateShapeError{Name: "seatemp", Len: 0, Want: 1}
	}
	n := len(c.SeaTemp)

	out := Covariates{SeaTemp: c.SeaTemp}
	fields := []struct {
		name string
		src  []float64
		dst  *[]float64
	}{
		{"cleaning", c.Cleaning, &out.Cleaning},
		{"salinity", c.Salinity, &out.Salinity},
		{"ph", c.PH, &out.PH},
		{"omega", c.Omega, &out.Omega},
	}
	for _, f := range fields {
		expanded, err := broadcastTo(f.name, f.src, n)
		if err != nil {
			return Covariates{}, 0, err
		}
		*f.dst = expanded
	}
	return out, n, nil
}

func broadcastTo(name string, src []float64, n int) ([]float64, error) {
	switch len(src) {
	case n:
		return src, nil
	case 1:
		out := make([]float64, n)
		for i := range out {
			out[i] = src[0]
		}
		return out, nil
	default:
		return nil, &CovariateShapeError{Name: name, Len: len(src), Want: n}
	}
}
