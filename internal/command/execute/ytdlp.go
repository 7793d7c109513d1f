// Package execute runs yt-dlp commands and maps their failures onto the error taxonomy.
package execute

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"vidgrab/internal/command/builder"
	"vidgrab/internal/domain/consts"
	"vidgrab/internal/domain/errconsts"
	"vidgrab/internal/domain/logger"
	"vidgrab/internal/models"
	"vidgrab/internal/parsing"

	"github.com/alessio/shellescape"
	"github.com/lrstanley/go-ytdlp"
)

// runner executes a built command. Replaced in tests.
type runner func(ctx context.Context, bc *builder.BuiltCommand, url string) (*ytdlp.Result, error)

// YtdlpExtractor implements contracts.Extractor on top of the yt-dlp binary.
type YtdlpExtractor struct {
	builder         *builder.CommandBuilder
	fetchTimeout    time.Duration
	downloadTimeout time.Duration
	run             runner
}

// NewYtdlpExtractor returns an extractor using the given command options and timeouts.
//
// Non-positive timeouts fall back to the program defaults.
func NewYtdlpExtractor(opts builder.Options, fetchTimeout, downloadTimeout time.Duration) *YtdlpExtractor {
	if fetchTimeout <= 0 {
		fetchTimeout = consts.DefaultFetchTimeout
	}
	if downloadTimeout <= 0 {
		downloadTimeout = consts.DefaultDownloadTimeout
	}
	return &YtdlpExtractor{
		builder:         builder.NewCommandBuilder(opts),
		fetchTimeout:    fetchTimeout,
		downloadTimeout: downloadTimeout,
		run:             runCommand,
	}
}

// FetchRawFormats queries yt-dlp for the info JSON of url.
func (e *YtdlpExtractor) FetchRawFormats(ctx context.Context, url string) (*models.RawInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, e.fetchTimeout)
	defer cancel()

	res, err := e.run(ctx, e.builder.MetaCommand(), url)
	if err != nil {
		return nil, classifyFailure(ctx, res, err)
	}

	info, err := parsing.DecodeInfoJSON([]byte(res.Stdout))
	if err != nil {
		return nil, err
	}
	logger.Pl.D(1, "Fetched %d raw formats for %q", len(info.Formats), url)
	return info, nil
}

// PerformDownload downloads url in formatID (or the default combination) and returns the output path.
func (e *YtdlpExtractor) PerformDownload(ctx context.Context, url, formatID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.downloadTimeout)
	defer cancel()

	bc := e.builder.DownloadCommand(formatID)
	bc.Cmd.ProgressFunc(progressInterval, newProgressTracker(url).update)

	res, err := e.run(ctx, bc, url)
	if err != nil {
		return "", classifyFailure(ctx, res, err)
	}

	path, err := resolveOutputPath(res)
	if err != nil {
		return "", err
	}
	logger.Pl.S("Downloaded %q to %q", url, path)
	return path, nil
}

// runCommand executes the command and logs the exact invocation.
func runCommand(ctx context.Context, bc *builder.BuiltCommand, url string) (*ytdlp.Result, error) {
	logger.Pl.I("Running yt-dlp for %q", url)
	res, err := bc.Cmd.Run(ctx, url)
	if res != nil {
		logger.Pl.D(2, "Executed command: %s", shellescape.QuoteCommand(append([]string{res.Executable}, res.Args...)))
	}
	return res, err
}

// notFoundHints are stderr fragments yt-dlp prints when the media cannot be resolved.
var notFoundHints = []string{
	"video unavailable",
	"http error 404",
	"unsupported url",
	"does not exist",
	"private video",
	"no video formats found",
}

// botHints are stderr fragments sites return when they block automated access.
var botHints = []string{
	"confirm you’re not a bot",
	"confirm you're not a bot",
	"not a robot",
}

// classifyFailure maps a failed run onto NotFound, Timeout or UpstreamFailure.
func classifyFailure(ctx context.Context, res *ytdlp.Result, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		logger.Pl.W("yt-dlp timed out: %v", err)
		return fmt.Errorf("%w: %w: %w", errconsts.ErrTimeout, errconsts.ErrUpstreamUnavailable, err)
	}

	var stderr string
	if res != nil {
		stderr = strings.ToLower(res.Stderr)
	}
	for _, hint := range notFoundHints {
		if strings.Contains(stderr, hint) {
			logger.Pl.W("yt-dlp could not resolve media: %v", err)
			return fmt.Errorf("%w: %w: %w", errconsts.ErrNotFound, errconsts.ErrUpstreamUnavailable, err)
		}
	}

	for _, hint := range botHints {
		if strings.Contains(stderr, hint) {
			logger.Pl.W("Site detected bot activity, consider setting a cookie source: %v", err)
			return fmt.Errorf("%w: %w: site detected bot activity: %w", errconsts.ErrUpstreamFailure, errconsts.ErrUpstreamUnavailable, err)
		}
	}

	logger.Pl.E("yt-dlp failed: %v", err)
	return fmt.Errorf("%w: %w: "+errconsts.YTDLPFailure, errconsts.ErrUpstreamFailure, errconsts.ErrUpstreamUnavailable, err)
}

// resolveOutputPath finds the file yt-dlp wrote.
func resolveOutputPath(res *ytdlp.Result) (string, error) {
	var reported string
	if res != nil {
		if info, err := res.GetExtractedInfo(); err == nil && len(info) > 0 && info[len(info)-1].Filename != nil {
			reported = *info[len(info)-1].Filename
		} else if parsed, perr := parsing.DecodeFilename([]byte(res.Stdout)); perr == nil {
			reported = parsed
		}
	}
	if reported == "" {
		return "", fmt.Errorf("%w: yt-dlp did not report an output file", errconsts.ErrUpstreamFailure)
	}

	if _, err := os.Stat(reported); err == nil {
		return reported, nil
	}

	// Merged or remuxed outputs may end with a different extension than reported.
	stem := strings.TrimSuffix(reported, filepath.Ext(reported))
	matches, err := filepath.Glob(escapeGlob(stem) + ".*")
	if err == nil {
		for _, m := range matches {
			if fi, serr := os.Stat(m); serr == nil && !fi.IsDir() {
				logger.Pl.D(1, "Reported output %q missing, using %q", reported, m)
				return m, nil
			}
		}
	}
	return "", fmt.Errorf("%w: output file %q not found", errconsts.ErrUpstreamFailure, reported)
}

// escapeGlob escapes glob metacharacters in a literal path.
func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[':
			b.WriteRune('\\')
		case '\\':
			if filepath.Separator != '\\' {
				b.WriteRune('\\')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}
