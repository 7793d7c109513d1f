package formats

import (
	"fmt"
	"strings"
	"vidgrab/internal/domain/consts"
	"vidgrab/internal/domain/errconsts"
	"vidgrab/internal/domain/logger"
	"vidgrab/internal/models"
	"vidgrab/internal/validation"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Build assembles the extraction tool's result for url into a Catalog.
//
// Individual malformed records never fail the build: unparseable fields fall back to
// display sentinels. Records without a usable container are dropped, and so are records
// with an empty ID, which a download could never name. A repeated ID keeps its first
// record. Build fails only when info carries no format list at all.
func Build(url string, info *models.RawInfo) (*models.Catalog, error) {
	if info == nil || info.Formats == nil {
		return nil, fmt.Errorf("%w: no format list returned for %q", errconsts.ErrInvalidUpstreamData, url)
	}

	kept := dedupe(info.Formats)
	logger.Pl.D(2, "Kept %d of %d formats for %q", len(kept), len(info.Formats), url)

	video, audio := partition(kept)
	video = RankVideo(video)
	audio = RankAudio(audio)

	c := &models.Catalog{
		URL:          url,
		Title:        info.Title,
		Thumbnail:    info.Thumbnail,
		Uploader:     info.Uploader,
		WebpageURL:   info.WebpageURL,
		Platform:     validation.PlatformName(url),
		Duration:     info.Duration,
		DurationText: FormatDuration(info.Duration),
		Video:        nonNil(video),
		Audio:        nonNil(audio),
		BestFormats:  BestOf(video, audio),
		FormatCount:  len(video) + len(audio),
	}
	if !info.UploadDate.IsZero() {
		c.UploadDate = info.UploadDate.Format("2006-01-02")
	}
	return c, nil
}

// dedupe drops unusable records and repeated IDs, keeping the first occurrence.
func dedupe(records []models.RawFormat) []models.RawFormat {
	seen := make(map[string]struct{}, len(records))
	out := make([]models.RawFormat, 0, len(records))

	for _, r := range records {
		r.ID = strings.TrimSpace(r.ID)
		if r.ID == "" || !usableContainer(r) {
			logger.Pl.D(3, "Skipping format %q with container %q", r.ID, r.Container)
			continue
		}
		if _, dup := seen[r.ID]; dup {
			logger.Pl.D(2, "Skipping repeated format ID %q", r.ID)
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}

// decorate classifies a record and attaches its display values.
func decorate(r models.RawFormat) models.Format {
	f := models.Format{
		RawFormat: r,
		Class:     Classify(r),
		SizeText:  FormatSize(r.SizeBytes),
	}
	f.Label = label(f)
	return f
}

// label picks a short display name: the note, else the resolution, else the class.
func label(f models.Format) string {
	if note := strings.TrimSpace(f.Note); note != "" {
		return cases.Title(language.English).String(note)
	}
	if f.Class == models.ClassVideo {
		if _, ok := VideoWidth(f.Resolution); ok {
			return f.Resolution
		}
		return consts.Unknown
	}
	return "Audio"
}

func nonNil(f []models.Format) []models.Format {
	if f == nil {
		return []models.Format{}
	}
	return f
}
