package models

import (
	"fmt"
)

// Site is one sediment-core site row from a covariate table: where the
// sample came from, how old it is, and the covariates needed by the forward
// model. PH and Omega are optional; when absent they are filled from the
// modern ocean chemistry lookup at (Lat, Lon, Depth).
type Site struct {
	Name     string
	Lat      float64
	Lon      float64
	Depth    float64 // water depth (m)
	Age      float64 // sample age (Ma)
	SeaTemp  float64 // degC
	Cleaning float64 // 1 reductive, 0 BCP
	Salinity float64 // PSU
	PH       *float64
	Omega    *float64
}

// Validate checks field ranges that would otherwise surface as confusing
// prediction errors later.
func (s Site) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("site name is required")
	}
	if s.Lat < -90 || s.Lat > 90 {
		return fmt.Errorf("site %s: latitude %g out of range [-90, 90]", s.Name, s.Lat)
	}
	if s.Lon < -180 || s.Lon > 180 {
		return fmt.Errorf("site %s: longitude %g out of range [-180, 180]", s.Name, s.Lon)
	}
	if s.Depth < 0 {
		return fmt.Errorf("site %s: negative water depth %g", s.Name, s.Depth)
	}
	if s.Age < 0 {
		return fmt.Errorf("site %s: negative age %g", s.Name, s.Age)
	}
	if s.Cleaning != 0 && s.Cleaning != 1 {
		return fmt.Errorf("site %s: cleaning flag must be 0 or 1, got %g", s.Name, s.Cleaning)
	}
	return nil
}
