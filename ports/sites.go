package ports

import (
	"context"

	"gomgca/models"
)

// SiteReaderPort reads a site/covariate table from a data file (xlsx or csv).
type SiteReaderPort interface {
	ReadSites(ctx context.Context, path string) ([]models.Site, error)
}
