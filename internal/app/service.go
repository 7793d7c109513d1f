// Package app contains core application functionality.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"vidgrab/internal/contracts"
	"vidgrab/internal/domain/errconsts"
	"vidgrab/internal/domain/logger"
	"vidgrab/internal/formats"
	"vidgrab/internal/models"
	"vidgrab/internal/validation"

	"github.com/dustin/go-humanize"
)

// Service resolves catalogs and performs downloads through an Extractor.
type Service struct {
	extractor contracts.Extractor
}

// NewService returns a Service backed by the given extractor.
func NewService(e contracts.Extractor) *Service {
	return &Service{extractor: e}
}

// GetCatalog validates url, fetches its raw formats and builds the catalog.
//
// Rejected URLs never reach the extractor.
func (s *Service) GetCatalog(ctx context.Context, url string) (*models.Catalog, error) {
	url = strings.TrimSpace(url)
	if _, err := validation.ValidateURL(url); err != nil {
		return nil, err
	}

	logger.Pl.I("Fetching formats for %q", url)
	info, err := s.extractor.FetchRawFormats(ctx, url)
	if err != nil {
		return nil, err
	}

	c, err := formats.Build(url, info)
	if err != nil {
		return nil, err
	}
	logger.Pl.D(1, "Built catalog for %q: %d video, %d audio formats", url, len(c.Video), len(c.Audio))
	return c, nil
}

// Download validates url and downloads it in formatID, or the default combination when empty.
func (s *Service) Download(ctx context.Context, url, formatID string) (*models.DownloadResult, error) {
	url = strings.TrimSpace(url)
	if _, err := validation.ValidateURL(url); err != nil {
		return nil, err
	}
	formatID = strings.TrimSpace(formatID)

	path, err := s.extractor.PerformDownload(ctx, url, formatID)
	if err != nil {
		return nil, err
	}

	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: downloaded file %q: %v", errconsts.ErrUpstreamFailure, path, err)
	}

	res := &models.DownloadResult{
		URL:       url,
		FormatID:  formatID,
		FilePath:  path,
		Filename:  filepath.Base(path),
		SizeBytes: fi.Size(),
		SizeText:  formats.FormatSize(fi.Size()),
	}
	logger.Pl.S("Saved %q (%s)", res.Filename, humanize.IBytes(uint64(fi.Size())))
	return res, nil
}
