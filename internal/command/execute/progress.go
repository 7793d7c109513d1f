package execute

import (
	"sync"
	"time"
	"vidgrab/internal/domain/logger"

	"github.com/dustin/go-humanize"
	"github.com/lrstanley/go-ytdlp"
)

const (
	progressInterval = 500 * time.Millisecond
	progressStep     = 10.0
)

// progressTracker logs download progress each time another step percent completes.
type progressTracker struct {
	mu      sync.Mutex
	url     string
	logged  float64
	started bool
}

func newProgressTracker(url string) *progressTracker {
	return &progressTracker{url: url, logged: -progressStep}
}

// update receives yt-dlp progress callbacks.
func (p *progressTracker) update(u ytdlp.ProgressUpdate) {
	if u.TotalBytes <= 0 {
		return
	}
	p.record(int64(u.DownloadedBytes), int64(u.TotalBytes), u.ETA())
}

// record logs when pct crosses the next step. It returns whether a line was logged.
func (p *progressTracker) record(downloaded, total int64, eta time.Duration) bool {
	if total <= 0 || downloaded < 0 {
		return false
	}
	pct := float64(downloaded) / float64(total) * 100

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		p.started = true
		logger.Pl.I("Downloading %q (%s)", p.url, humanize.IBytes(uint64(total)))
	}
	if pct < p.logged+progressStep && pct < 100 {
		return false
	}
	p.logged = pct
	logger.Pl.D(1, "Download status for %q: %.1f%% (%s of %s, ETA %v)",
		p.url, pct, humanize.IBytes(uint64(downloaded)), humanize.IBytes(uint64(total)), eta.Round(time.Second))
	return true
}
