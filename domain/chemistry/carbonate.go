// Package chemistry holds the value types and region geometry behind the
// modern ocean carbonate lookup. The lookup itself (gridded climatology,
// regional profiles) lives in adapters/chemistry; carbonate-system
// equilibrium solving is out of scope.
package chemistry

// CarbonateState is the modern seawater carbonate chemistry at a site. Omega
// feeds the Mg/Ca forward model untransformed.
type CarbonateState struct {
	PH       float64
	DeltaCO3 float64 // carbonate ion concentration above saturation (umol/L)
	Omega    float64 // calcite saturation state
}
