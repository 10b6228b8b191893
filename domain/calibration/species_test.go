package calibration

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSpecies_Canonical(t *testing.T) {
	for _, sp := range CanonicalSpecies() {
		got, err := ParseSpecies(string(sp))
		require.NoError(t, err)
		assert.Equal(t, sp, got)
	}
}

func TestParseSpecies_LegacyAliases(t *testing.T) {
	tests := map[string]Species{
		"G. bulloides":            SpeciesBulloides,
		"N. pachyderma sinistral": SpeciesPachy,
		"N. incompta":             SpeciesPachy,
		"G. ruber pink":           SpeciesRuber,
		"G. ruber white":          SpeciesRuber,
		"G. ruber":                SpeciesRuber,
		"G. sacculifer":           SpeciesSacculifer,
	}
	for token, want := range tests {
		got, err := ParseSpecies(token)
		require.NoError(t, err, "alias %q", token)
		assert.Equal(t, want, got, "alias %q", token)
	}
}

func TestParseSpecies_UnknownTokenListsOptions(t *testing.T) {
	_, err := ParseSpecies("G. menardii")
	require.Error(t, err)

	var ise *InvalidSpeciesError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, "G. menardii", ise.Token)

	// The message must enumerate every canonical identifier.
	for _, sp := range CanonicalSpecies() {
		assert.Contains(t, err.Error(), string(sp))
	}
}

func TestSpecies_HierarchicalColumns(t *testing.T) {
	tests := map[Species]int{
		SpeciesRuber:      0,
		SpeciesBulloides:  1,
		SpeciesSacculifer: 2,
		SpeciesPachy:      3,
	}
	for sp, want := range tests {
		col, ok := sp.Column()
		require.True(t, ok, "%s is hierarchical", sp)
		assert.Equal(t, want, col)
		assert.True(t, sp.Hierarchical())
	}

	for _, sp := range []Species{SpeciesPooledAnnual, SpeciesPooledSeasonal} {
		_, ok := sp.Column()
		assert.False(t, ok)
		assert.False(t, sp.Hierarchical())
	}
}
