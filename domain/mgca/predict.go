package mgca

import (
	"math"

	"gomgca/domain/calibration"
)

// Sampler draws Gaussian residuals for the posterior-predictive step. The
// default adapter consumes a seeded stream; tests substitute deterministic
// implementations to pin exact outputs.
type Sampler interface {
	// Normal returns one draw from N(mu, sigma).
	Normal(mu, sigma float64) float64
}

// Predict computes a posterior-predictive ensemble of Mg/Ca values from
// covariates and one calibration's parameter draws.
//
// The species token may be a canonical identifier or a legacy foram name.
// Omega is taken untransformed and inverted (omega^-2) internally, which
// linearizes the saturation response for the regression. For every
// observation i and draw j the linear predictor is
//
//	mu = alpha + betaTemp*T + betaOmega*omega^-2 + betaSalinity*S + (1 - betaClean*cleaning)
//
// with a betaPH*pH term added for every species except pachy, whose
// calibration deliberately carries no pH dependence. One Gaussian residual is
// drawn per cell with sd sigma[j], and results are exponentiated out of
// log space, so ensemble members are strictly positive.
func Predict(cov Covariates, species string, drawsFn calibration.DrawsFunc, sampler Sampler) (*Prediction, error) {
	sp, err := calibration.ParseSpecies(species)
	if err != nil {
		return nil, err
	}
	draws, err := drawsFn(sp)
	if err != nil {
		return nil, err
	}
	if err := draws.Validate(); err != nil {
		return nil, err
	}

	cov, n, err := cov.broadcast()
	if err != nil {
		return nil, err
	}

	m := draws.Len()
	ensemble := make([][]float64, n)
	for i := 0; i < n; i++ {
		omega := math.Pow(cov.Omega[i], -2)
		row := make([]float64, m)
		for j := 0; j < m; j++ {
			mu := draws.Alpha[j] +
				draws.BetaTemp[j]*cov.SeaTemp[i] +
				draws.BetaOmega[j]*omega +
				draws.BetaSalinity[j]*cov.Salinity[i] +
				(1 - draws.BetaClean[j]*cov.Cleaning[i])
			if sp != calibration.SpeciesPachy {
				mu += draws.BetaPH[j] * cov.PH[i]
			}
			row[j] = math.Exp(sampler.Normal(mu, draws.Sigma[j]))
		}
		ensemble[i] = row
	}

	return &Prediction{ensemble: ensemble, species: sp}, nil
}
