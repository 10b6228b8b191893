// Package excel reads site/covariate tables from Excel or CSV files into
// models.Site records for batch prediction runs.
package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"gomgca/models"
	"gomgca/ports"
)

// Required header columns, case-insensitive. "ph" and "omega" are optional;
// missing or blank cells leave the covariate nil so the chemistry lookup
// fills it in.
var requiredColumns = []string{"site", "latitude", "longitude", "depth", "age", "seatemp", "cleaning", "salinity"}

// SiteReader handles reading site tables from xlsx and csv files.
type SiteReader struct{}

// NewSiteReader creates a new site table reader.
func NewSiteReader() *SiteReader {
	return &SiteReader{}
}

// ReadSites reads the site table at path. The format is chosen by file
// extension; anything that is not .csv is treated as an Excel workbook.
func (r *SiteReader) ReadSites(ctx context.Context, path string) ([]models.Site, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("site table not found: %s", path)
	}

	var rows [][]string
	var err error
	if strings.ToLower(filepath.Ext(path)) == ".csv" {
		rows, err = readCSVRows(path)
	} else {
		rows, err = readExcelRows(path)
	}
	if err != nil {
		return nil, err
	}
	return parseSites(rows)
}

func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}

func readExcelRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, fmt.Errorf("failed to read Sheet1: %w", err)
	}
	return rows, nil
}

func parseSites(rows [][]string) ([]models.Site, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("site table needs a header row and at least one data row")
	}

	cols := make(map[string]int)
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("site table is missing required column %q", c)
		}
	}

	sites := make([]models.Site, 0, len(rows)-1)
	for n, row := range rows[1:] {
		site, err := parseSiteRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}
		if err := site.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}
		sites = append(sites, site)
	}
	return sites, nil
}

func parseSiteRow(row []string, cols map[string]int) (models.Site, error) {
	get := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	num := func(name string) (float64, error) {
		s := get(name)
		if s == "" {
			return 0, fmt.Errorf("column %q is empty", name)
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("column %q: %w", name, err)
		}
		return v, nil
	}
	optional := func(name string) (*float64, error) {
		s := get(name)
		if s == "" {
			return nil, nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		return &v, nil
	}

	site := models.Site{Name: get("site")}
	var err error
	if site.Lat, err = num("latitude"); err != nil {
		return models.Site{}, err
	}
	if site.Lon, err = num("longitude"); err != nil {
		return models.Site{}, err
	}
	if site.Depth, err = num("depth"); err != nil {
		return models.Site{}, err
	}
	if site.Age, err = num("age"); err != nil {
		return models.Site{}, err
	}
	if site.SeaTemp, err = num("seatemp"); err != nil {
		return models.Site{}, err
	}
	if site.Cleaning, err = num("cleaning"); err != nil {
		return models.Site{}, err
	}
	if site.Salinity, err = num("salinity"); err != nil {
		return models.Site{}, err
	}
	if site.PH, err = optional("ph"); err != nil {
		return models.Site{}, err
	}
	if site.Omega, err = optional("omega"); err != nil {
		return models.Site{}, err
	}
	return site, nil
}

var _ ports.SiteReaderPort = (*SiteReader)(nil)
