package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"vidgrab/internal/domain/consts"
	"vidgrab/internal/domain/errconsts"
	"vidgrab/internal/models"
)

// fakeExtractor records calls and returns canned results.
type fakeExtractor struct {
	calls atomic.Int32
	info  *models.RawInfo
	path  string
	err   error
}

func (f *fakeExtractor) FetchRawFormats(context.Context, string) (*models.RawInfo, error) {
	f.calls.Add(1)
	return f.info, f.err
}

func (f *fakeExtractor) PerformDownload(context.Context, string, string) (string, error) {
	f.calls.Add(1)
	return f.path, f.err
}

func sampleInfo() *models.RawInfo {
	return &models.RawInfo{
		Title:    "Cat video",
		Duration: 65,
		Formats: []models.RawFormat{
			{ID: "137", Container: "mp4", Resolution: "1920x1080", SizeBytes: 50 * 1024 * 1024, VideoCodec: "avc1", AudioCodec: consts.CodecNone},
			{ID: "140", Container: "m4a", Resolution: consts.AudioOnly, SizeBytes: 3 * 1024 * 1024, VideoCodec: consts.CodecNone, AudioCodec: "mp4a"},
		},
	}
}

// TestGetCatalog checks the fetch and build path.
func TestGetCatalog(t *testing.T) {
	t.Parallel()

	fe := &fakeExtractor{info: sampleInfo()}
	svc := NewService(fe)

	c, err := svc.GetCatalog(context.Background(), " https://www.youtube.com/watch?v=abc ")
	if err != nil {
		t.Fatalf("GetCatalog() unexpected error: %v", err)
	}
	if c.Video == nil || c.Video[0].ID != "137" || c.BestFormats.Video == nil || c.BestFormats.Audio == nil || c.BestFormats.Audio.ID != "140" {
		t.Fatalf("GetCatalog() = %+v", c)
	}
	if c.Platform != "YouTube" || c.DurationText != "1:05" {
		t.Errorf("GetCatalog() platform/duration = %q/%q", c.Platform, c.DurationText)
	}
}

// TestGetCatalogRejectsURL checks that invalid or unsupported URLs never reach the extractor.
func TestGetCatalogRejectsURL(t *testing.T) {
	t.Parallel()

	for _, url := range []string{"not a url", "https://example.com/video", ""} {
		fe := &fakeExtractor{info: sampleInfo()}
		svc := NewService(fe)

		_, err := svc.GetCatalog(context.Background(), url)
		if !errors.Is(err, errconsts.ErrInvalidInput) {
			t.Errorf("GetCatalog(%q) error = %v, want %v", url, err, errconsts.ErrInvalidInput)
		}
		if n := fe.calls.Load(); n != 0 {
			t.Errorf("GetCatalog(%q) called extractor %d times", url, n)
		}
	}
}

// TestGetCatalogErrors checks that extractor and builder failures propagate.
func TestGetCatalogErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fe   *fakeExtractor
		want error
	}{
		{"extractor failure", &fakeExtractor{err: errconsts.ErrNotFound}, errconsts.ErrNotFound},
		{"no formats", &fakeExtractor{info: &models.RawInfo{Title: "x"}}, errconsts.ErrInvalidUpstreamData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewService(tt.fe).GetCatalog(context.Background(), "https://youtu.be/abc")
			if !errors.Is(err, tt.want) {
				t.Fatalf("GetCatalog() error = %v, want %v", err, tt.want)
			}
		})
	}
}

// TestDownload checks the download result fields.
func TestDownload(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "Cat video.mp4")
	if err := os.WriteFile(path, make([]byte, 2048), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	svc := NewService(&fakeExtractor{path: path})
	res, err := svc.Download(context.Background(), "https://vimeo.com/123", "137")
	if err != nil {
		t.Fatalf("Download() unexpected error: %v", err)
	}
	if res.Filename != "Cat video.mp4" || res.SizeBytes != 2048 || res.SizeText != "2 KB" || res.FormatID != "137" {
		t.Errorf("Download() = %+v", res)
	}

	// Missing output file.
	svc = NewService(&fakeExtractor{path: filepath.Join(t.TempDir(), "gone.mp4")})
	if _, err := svc.Download(context.Background(), "https://vimeo.com/123", ""); !errors.Is(err, errconsts.ErrUpstreamFailure) {
		t.Errorf("Download() error = %v, want %v", err, errconsts.ErrUpstreamFailure)
	}
}
