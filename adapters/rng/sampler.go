// Package rng provides seeded Gaussian samplers for the posterior-predictive
// residual draw. Streams are derived deterministically from names and seeds
// so batch runs replay exactly.
package rng

import (
	"context"
	"hash/fnv"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"gomgca/domain/mgca"
)

// GaussianSampler draws Normal(mu, sigma) variates from one seeded stream.
// Not safe for concurrent use; use one sampler per goroutine.
type GaussianSampler struct {
	src *rand.Rand
}

// NewGaussianSampler creates a sampler over a stream seeded with seed.
func NewGaussianSampler(seed uint64) *GaussianSampler {
	return &GaussianSampler{src: rand.New(rand.NewSource(seed))}
}

// Normal returns one draw from N(mu, sigma).
func (g *GaussianSampler) Normal(mu, sigma float64) float64 {
	return distuv.Normal{Mu: mu, Sigma: sigma, Src: g.src}.Rand()
}

// StreamAdapter implements ports.RNGPort by deriving stream seeds from
// operation names and the caller's base seed.
type StreamAdapter struct{}

// NewStreamAdapter creates a new stream adapter.
func NewStreamAdapter() *StreamAdapter {
	return &StreamAdapter{}
}

// SeededSampler creates a Gaussian sampler for a named operation.
func (a *StreamAdapter) SeededSampler(ctx context.Context, name string, seed int64) (mgca.Sampler, error) {
	return NewGaussianSampler(deriveSeed(name, seed)), nil
}

// SiteSampler creates a deterministic sampler for one site within a run. The
// stream depends on run, site and base seed only, so re-running with the same
// seed reproduces every site's ensemble regardless of scheduling order.
func (a *StreamAdapter) SiteSampler(ctx context.Context, runID, siteKey string, baseSeed int64) (mgca.Sampler, error) {
	return NewGaussianSampler(deriveSeed(runID+"/"+siteKey, baseSeed)), nil
}

func deriveSeed(name string, seed int64) uint64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return h.Sum64() ^ uint64(seed)
}
