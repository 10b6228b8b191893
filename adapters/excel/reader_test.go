package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sites.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadSites_CSV(t *testing.T) {
	path := writeCSV(t, `site,latitude,longitude,depth,age,seatemp,cleaning,salinity,ph,omega
ODP-999A,12.74,-78.74,2828,2.5,27.4,0,35.1,8.05,3.9
MD97-2120,-45.53,174.93,1210,0.5,11.2,1,34.6,,
`)

	sites, err := NewSiteReader().ReadSites(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, sites, 2)

	assert.Equal(t, "ODP-999A", sites[0].Name)
	assert.Equal(t, 2.5, sites[0].Age)
	require.NotNil(t, sites[0].PH)
	assert.Equal(t, 8.05, *sites[0].PH)
	require.NotNil(t, sites[0].Omega)

	// Blank optional cells stay nil so chemistry lookup fills them.
	assert.Nil(t, sites[1].PH)
	assert.Nil(t, sites[1].Omega)
	assert.Equal(t, 1.0, sites[1].Cleaning)
}

func TestReadSites_MissingColumn(t *testing.T) {
	path := writeCSV(t, `site,latitude,longitude,depth,age,seatemp,cleaning
a,0,0,100,0,20,0
`)

	_, err := NewSiteReader().ReadSites(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "salinity")
}

func TestReadSites_BadCleaningFlag(t *testing.T) {
	path := writeCSV(t, `site,latitude,longitude,depth,age,seatemp,cleaning,salinity
a,0,0,100,0,20,2,35
`)

	_, err := NewSiteReader().ReadSites(context.Background(), path)
	assert.Error(t, err)
}

func TestReadSites_FileMissing(t *testing.T) {
	_, err := NewSiteReader().ReadSites(context.Background(), "/does/not/exist.csv")
	assert.Error(t, err)
}
