package execute

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"
	"vidgrab/internal/command/builder"
	"vidgrab/internal/domain/errconsts"

	"github.com/lrstanley/go-ytdlp"
)

// newTestExtractor returns an extractor whose runner is replaced by fn.
func newTestExtractor(dir string, fn runner) *YtdlpExtractor {
	e := NewYtdlpExtractor(builder.Options{DownloadDir: dir}, time.Second, time.Second)
	e.run = fn
	return e
}

// TestFetchRawFormats checks that stdout is decoded into raw formats.
func TestFetchRawFormats(t *testing.T) {
	t.Parallel()

	e := newTestExtractor(t.TempDir(), func(_ context.Context, bc *builder.BuiltCommand, _ string) (*ytdlp.Result, error) {
		return &ytdlp.Result{Stdout: `{"id":"x","title":"T","formats":[{"format_id":"22","ext":"mp4","vcodec":"avc1","acodec":"mp4a"}]}`}, nil
	})

	info, err := e.FetchRawFormats(context.Background(), "https://youtu.be/x")
	if err != nil {
		t.Fatalf("FetchRawFormats() unexpected error: %v", err)
	}
	if info.Title != "T" || len(info.Formats) != 1 || info.Formats[0].ID != "22" {
		t.Fatalf("FetchRawFormats() = %+v", info)
	}
}

// TestClassifyFailure checks the mapping of tool failures onto error kinds.
func TestClassifyFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		stderr string
		want   error
	}{
		{"unavailable", "ERROR: [youtube] x: Video unavailable", errconsts.ErrNotFound},
		{"http 404", "ERROR: HTTP Error 404: Not Found", errconsts.ErrNotFound},
		{"unsupported", "ERROR: Unsupported URL: https://vimeo.com/", errconsts.ErrNotFound},
		{"bot check", "ERROR: [youtube] x: Sign in to confirm you're not a bot", errconsts.ErrUpstreamFailure},
		{"other", "ERROR: unable to extract player response", errconsts.ErrUpstreamFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := newTestExtractor(t.TempDir(), func(context.Context, *builder.BuiltCommand, string) (*ytdlp.Result, error) {
				return &ytdlp.Result{Stderr: tt.stderr}, errors.New("exit status 1")
			})
			_, err := e.FetchRawFormats(context.Background(), "https://youtu.be/x")
			if !errors.Is(err, tt.want) {
				t.Fatalf("FetchRawFormats() error = %v, want %v", err, tt.want)
			}
			if !errors.Is(err, errconsts.ErrUpstreamUnavailable) {
				t.Errorf("FetchRawFormats() error = %v, want it to wrap %v", err, errconsts.ErrUpstreamUnavailable)
			}
		})
	}
}

// TestFetchTimeout checks that an expired deadline is reported as a timeout.
func TestFetchTimeout(t *testing.T) {
	t.Parallel()

	e := newTestExtractor(t.TempDir(), func(ctx context.Context, _ *builder.BuiltCommand, _ string) (*ytdlp.Result, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	e.fetchTimeout = 10 * time.Millisecond

	_, err := e.FetchRawFormats(context.Background(), "https://youtu.be/x")
	if !errors.Is(err, errconsts.ErrTimeout) {
		t.Fatalf("FetchRawFormats() error = %v, want %v", err, errconsts.ErrTimeout)
	}
}

// TestPerformDownload checks output path resolution, including a changed extension.
func TestPerformDownload(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	merged := filepath.Join(dir, "Cat video.mkv")
	if err := os.WriteFile(merged, []byte("data"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	tests := []struct {
		name     string
		reported string
		want     string
		wantErr  bool
	}{
		{"exact", merged, merged, false},
		{"extension changed", filepath.Join(dir, "Cat video.webm"), merged, false},
		{"missing", filepath.Join(dir, "Dog video.mp4"), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var gotFlags []string
			e := newTestExtractor(dir, func(_ context.Context, bc *builder.BuiltCommand, _ string) (*ytdlp.Result, error) {
				gotFlags = bc.Flags
				return &ytdlp.Result{Stdout: `{"_filename":` + strconv.Quote(tt.reported) + `}`}, nil
			})

			got, err := e.PerformDownload(context.Background(), "https://youtu.be/x", "137")
			if tt.wantErr {
				if !errors.Is(err, errconsts.ErrUpstreamFailure) {
					t.Fatalf("PerformDownload() error = %v, want %v", err, errconsts.ErrUpstreamFailure)
				}
				return
			}
			if err != nil {
				t.Fatalf("PerformDownload() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("PerformDownload() = %q, want %q", got, tt.want)
			}
			if len(gotFlags) == 0 {
				t.Errorf("PerformDownload() ran command without flags")
			}
		})
	}
}

