package contracts

import (
	"context"
	"vidgrab/internal/models"
)

// CatalogService is the core boundary exposed to the presentation layers.
type CatalogService interface {
	GetCatalog(ctx context.Context, url string) (*models.Catalog, error)
	Download(ctx context.Context, url, formatID string) (*models.DownloadResult, error)
}
