// Package chemistry implements the modern ocean carbonate lookup: regional
// depth profiles for marginal seas and high latitudes, a coarse gridded
// climatology for the open ocean. Carbonate-system equilibrium solving is
// out of scope; the resources carry pre-solved pH, delta-CO3 and omega.
package chemistry

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"math"
	"sync"

	"gomgca/domain/chemistry"
	"gomgca/internal/errors"
	"gomgca/ports"
)

//go:embed resources/*.json
var resources embed.FS

const earthRadiusKm = 6371.0

// DistanceThresholdError reports that the nearest gridded data point lies
// beyond the caller's distance threshold. Callers treat this as a missing
// covariate, not a pipeline failure.
type DistanceThresholdError struct {
	DistanceKm  float64
	ThresholdKm float64
}

func (e *DistanceThresholdError) Error() string {
	return fmt.Sprintf("nearest gridded data is %.0f km away, beyond the %.0f km threshold", e.DistanceKm, e.ThresholdKm)
}

// profileFile is a regional depth profile resource.
type profileFile struct {
	Depth    []float64 `json:"depth"`
	PH       []float64 `json:"ph"`
	Omega    []float64 `json:"omega"`
	DeltaCO3 []float64 `json:"delta_co3"`
}

// gridFile is the open-ocean climatology resource, indexed [lat][lon][depth].
type gridFile struct {
	Lat      []float64       `json:"lat"`
	Lon      []float64       `json:"lon"`
	Depth    []float64       `json:"depth"`
	PH       [][][]float64   `json:"ph"`
	Omega    [][][]float64   `json:"omega"`
	DeltaCO3 [][][]float64   `json:"delta_co3"`
}

// Lookup resolves modern carbonate chemistry for a site. Resources load once
// on first use; lookups afterwards are pure in-memory reads.
type Lookup struct {
	once    sync.Once
	loadErr error

	profiles map[chemistry.RegionName]profileFile
	grid     gridFile
}

// NewLookup creates a lookup over the embedded climatology resources.
func NewLookup() *Lookup {
	return &Lookup{}
}

func (l *Lookup) load() {
	l.once.Do(func() {
		l.profiles = make(map[chemistry.RegionName]profileFile)
		files := map[chemistry.RegionName]string{
			chemistry.RegionCaribbean:    "resources/caribbean.json",
			chemistry.RegionGulfOfMexico: "resources/gulf_mexico.json",
			chemistry.RegionArctic:       "resources/arctic.json",
		}
		for region, name := range files {
			raw, err := resources.ReadFile(name)
			if err != nil {
				l.loadErr = errors.ResourceError("missing chemistry resource "+name, err)
				return
			}
			var p profileFile
			if err := json.Unmarshal(raw, &p); err != nil {
				l.loadErr = errors.ResourceError("malformed chemistry resource "+name, err)
				return
			}
			l.profiles[region] = p
		}
		raw, err := resources.ReadFile("resources/open_ocean.json")
		if err != nil {
			l.loadErr = errors.ResourceError("missing chemistry resource open_ocean.json", err)
			return
		}
		if err := json.Unmarshal(raw, &l.grid); err != nil {
			l.loadErr = errors.ResourceError("malformed chemistry resource open_ocean.json", err)
		}
	})
}

// Carbonate returns (pH, delta-CO3, omega) for a site. Sites inside the
// Caribbean, Gulf of Mexico, or Arctic resolve against regional depth
// profiles by nearest depth level. Everywhere else (including, for now, the
// Mediterranean and South China Sea) resolves against the open-ocean grid by
// nearest grid point, subject to the distance threshold.
func (l *Lookup) Carbonate(ctx context.Context, lat, lon, depth, distanceThresholdKm float64) (chemistry.CarbonateState, error) {
	l.load()
	if l.loadErr != nil {
		return chemistry.CarbonateState{}, l.loadErr
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return chemistry.CarbonateState{}, errors.InvalidInput(
			fmt.Sprintf("coordinates (%g, %g) out of range", lat, lon))
	}

	region := chemistry.Locate(lat, lon)
	if p, ok := l.profiles[region]; ok {
		return profileAt(p, depth), nil
	}
	return l.gridAt(lat, lon, depth, distanceThresholdKm)
}

// profileAt selects the nearest depth level of a regional profile.
func profileAt(p profileFile, depth float64) chemistry.CarbonateState {
	best := 0
	for i := range p.Depth {
		if math.Abs(p.Depth[i]-depth) < math.Abs(p.Depth[best]-depth) {
			best = i
		}
	}
	return chemistry.CarbonateState{
		PH:       p.PH[best],
		DeltaCO3: p.DeltaCO3[best],
		Omega:    p.Omega[best],
	}
}

// gridAt selects the nearest open-ocean grid point within the distance
// threshold, then the nearest depth level at that point.
func (l *Lookup) gridAt(lat, lon, depth, thresholdKm float64) (chemistry.CarbonateState, error) {
	bestLat, bestLon := 0, 0
	bestDist := math.Inf(1)
	for i, glat := range l.grid.Lat {
		for j, glon := range l.grid.Lon {
			d := haversineKm(lat, lon, glat, glon)
			if d < bestDist {
				bestDist = d
				bestLat, bestLon = i, j
			}
		}
	}
	if bestDist > thresholdKm {
		return chemistry.CarbonateState{}, errors.WithCode(errors.CodeDistanceThreshold,
			&DistanceThresholdError{DistanceKm: bestDist, ThresholdKm: thresholdKm})
	}

	bestDepth := 0
	for k := range l.grid.Depth {
		if math.Abs(l.grid.Depth[k]-depth) < math.Abs(l.grid.Depth[bestDepth]-depth) {
			bestDepth = k
		}
	}
	return chemistry.CarbonateState{
		PH:       l.grid.PH[bestLat][bestLon][bestDepth],
		DeltaCO3: l.grid.DeltaCO3[bestLat][bestLon][bestDepth],
		Omega:    l.grid.Omega[bestLat][bestLon][bestDepth],
	}, nil
}

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

var _ ports.ChemistryPort = (*Lookup)(nil)
