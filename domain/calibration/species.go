package calibration

import (
	"fmt"
	"strings"
)

// Species identifies one of the fitted Mg/Ca calibration models.
type Species string

const (
	// SpeciesPooledAnnual is the pooled calibration using annual SSTs.
	SpeciesPooledAnnual Species = "all"
	// SpeciesPooledSeasonal is the pooled calibration using seasonal SSTs.
	SpeciesPooledSeasonal Species = "all_sea"
	// SpeciesRuber is the hierarchical calibration for G. ruber (white or pink).
	SpeciesRuber Species = "ruber"
	// SpeciesBulloides is the hierarchical calibration for G. bulloides.
	SpeciesBulloides Species = "bulloides"
	// SpeciesSacculifer is the hierarchical calibration for G. sacculifer.
	SpeciesSacculifer Species = "sacculifer"
	// SpeciesPachy is the hierarchical calibration for N. pachyderma or N. incompta.
	// Note the pachy calibration carries no pH term.
	SpeciesPachy Species = "pachy"
)

// canonicalSpecies lists every recognized identifier, in the order used for
// error messages and listings.
var canonicalSpecies = []Species{
	SpeciesPooledAnnual,
	SpeciesPooledSeasonal,
	SpeciesRuber,
	SpeciesBulloides,
	SpeciesSacculifer,
	SpeciesPachy,
}

// foramAliases translates legacy free-text foram names to canonical species
// identifiers. Checked before canonical dispatch so historical datasets keep
// working without scattering string comparisons through prediction code.
var foramAliases = map[string]Species{
	"G. bulloides":            SpeciesBulloides,
	"N. pachyderma sinistral": SpeciesPachy,
	"N. incompta":             SpeciesPachy,
	"G. ruber pink":           SpeciesRuber,
	"G. ruber white":          SpeciesRuber,
	"G. ruber":                SpeciesRuber,
	"G. sacculifer":           SpeciesSacculifer,
}

// hierarchicalColumns maps hierarchical species to their column in the shared
// alpha/sigma draw tables. Pooled calibrations have no column.
var hierarchicalColumns = map[Species]int{
	SpeciesRuber:      0,
	SpeciesBulloides:  1,
	SpeciesSacculifer: 2,
	SpeciesPachy:      3,
}

// InvalidSpeciesError reports a species token that resolves to no calibration.
type InvalidSpeciesError struct {
	Token string
}

func (e *InvalidSpeciesError) Error() string {
	opts := make([]string, len(canonicalSpecies))
	for i, sp := range canonicalSpecies {
		opts[i] = string(sp)
	}
	return fmt.Sprintf("unknown species %q: must be one of %s", e.Token, strings.Join(opts, ", "))
}

// ParseSpecies normalizes a species token to a canonical identifier. Legacy
// foram names are translated first; anything left unrecognized fails with an
// InvalidSpeciesError.
func ParseSpecies(token string) (Species, error) {
	if sp, ok := foramAliases[token]; ok {
		return sp, nil
	}
	sp := Species(token)
	for _, c := range canonicalSpecies {
		if sp == c {
			return sp, nil
		}
	}
	return "", &InvalidSpeciesError{Token: token}
}

// CanonicalSpecies returns the recognized species identifiers.
func CanonicalSpecies() []Species {
	out := make([]Species, len(canonicalSpecies))
	copy(out, canonicalSpecies)
	return out
}

// Hierarchical reports whether the species uses the hierarchical (per-species)
// draw tables rather than a pooled calibration.
func (s Species) Hierarchical() bool {
	_, ok := hierarchicalColumns[s]
	return ok
}

// Column returns the species column within the shared hierarchical draw
// tables. The second return is false for pooled calibrations.
func (s Species) Column() (int, bool) {
	col, ok := hierarchicalColumns[s]
	return col, ok
}

// String returns the canonical identifier.
func (s Species) String() string {
	return string(s)
}
