// Package contracts defines interfaces that decouple the application layer from the extraction tool.
package contracts

import (
	"context"
	"vidgrab/internal/models"
)

// Extractor is the boundary to the external media-extraction tool.
//
// Both methods return errors wrapping errconsts.ErrNotFound, errconsts.ErrTimeout or
// errconsts.ErrUpstreamFailure (each also errconsts.ErrUpstreamUnavailable), and
// FetchRawFormats may return errconsts.ErrInvalidUpstreamData.
type Extractor interface {
	// FetchRawFormats returns the metadata and raw format list for url.
	FetchRawFormats(ctx context.Context, url string) (*models.RawInfo, error)
	// PerformDownload downloads url, optionally in the given format, and returns the final file path.
	PerformDownload(ctx context.Context, url, formatID string) (string, error)
}
