package chemistry

// Marginal seas and high-latitude waters are poorly served by the open-ocean
// gridded climatology, so sites falling inside these regions are dispatched
// to region-specific depth profiles instead.

// RegionName identifies a special-cased ocean region.
type RegionName string

const (
	RegionMediterranean RegionName = "mediterranean"
	RegionSouthChinaSea RegionName = "south_china_sea"
	RegionCaribbean     RegionName = "caribbean"
	RegionGulfOfMexico  RegionName = "gulf_of_mexico"
	RegionArctic        RegionName = "arctic"
	RegionOpenOcean     RegionName = "open_ocean"
)

// ArcticLatitude is the cutoff above which a site counts as Arctic.
const ArcticLatitude = 65.0

// Point is a lon/lat vertex.
type Point struct {
	Lon float64
	Lat float64
}

// Region is a named polygon in lon/lat space.
type Region struct {
	Name    RegionName
	Polygon []Point
}

// Contains reports whether the site lies inside the region polygon, by ray
// casting.
func (r Region) Contains(lat, lon float64) bool {
	inside := false
	n := len(r.Polygon)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := r.Polygon[i], r.Polygon[j]
		if (pi.Lat > lat) != (pj.Lat > lat) &&
			lon < (pj.Lon-pi.Lon)*(lat-pi.Lat)/(pj.Lat-pi.Lat)+pi.Lon {
			inside = !inside
		}
	}
	return inside
}

// Polygon vertices follow the source model's region definitions.
var regions = []Region{
	{
		Name: RegionMediterranean,
		Polygon: []Point{
			{-5.5, 36.25}, {3, 47.5}, {45, 47.5}, {45, 30}, {-5.5, 30},
		},
	},
	{
		Name: RegionSouthChinaSea,
		Polygon: []Point{
			{106.2, 2.75}, {104, 25}, {119, 23}, {120.5, 7},
		},
	},
	{
		Name: RegionCaribbean,
		Polygon: []Point{
			{-77.5, 8}, {-90.8, 18.6}, {-82.4, 22.9}, {-61.5, 17.5}, {-61.5, 8.8},
		},
	},
	{
		Name: RegionGulfOfMexico,
		Polygon: []Point{
			{-96.5, 16.5}, {-100.3, 30.5}, {-82, 30.5}, {-80.5, 23},
		},
	},
}

// Locate classifies a site into a special-cased region, or RegionOpenOcean.
// Polygons are checked first; the Arctic rule is latitude-only.
func Locate(lat, lon float64) RegionName {
	for _, r := range regions {
		if r.Contains(lat, lon) {
			return r.Name
		}
	}
	if lat > ArcticLatitude {
		return RegionArctic
	}
	return RegionOpenOcean
}
