// Package builder builds yt-dlp invocations.
package builder

import (
	"path/filepath"
	"strings"
	"vidgrab/internal/domain/command"
	"vidgrab/internal/domain/logger"

	"github.com/lrstanley/go-ytdlp"
)

// Options configures every command a CommandBuilder produces.
type Options struct {
	Executable        string
	DownloadDir       string
	CookieSource      string
	Proxy             string
	RestrictFilenames bool
}

// BuiltCommand is a ready yt-dlp command plus the flags that were applied to it.
type BuiltCommand struct {
	Cmd   *ytdlp.Command
	Flags []string
}

// CommandBuilder builds metadata and download commands from shared options.
type CommandBuilder struct {
	opts Options
}

// NewCommandBuilder returns a CommandBuilder for the given options.
func NewCommandBuilder(opts Options) *CommandBuilder {
	opts.Executable = strings.TrimSpace(opts.Executable)
	return &CommandBuilder{opts: opts}
}

// MetaCommand builds the command that prints a URL's info JSON without downloading.
func (b *CommandBuilder) MetaCommand() *BuiltCommand {
	bc := b.base()
	bc.Cmd.SkipDownload().PrintJSON()
	bc.Flags = append(bc.Flags, "--skip-download", "--print-json")

	logger.Pl.D(3, "Built metadata command flags: %v", bc.Flags)
	return bc
}

// DownloadCommand builds the command that downloads a URL into the download directory.
//
// An empty formatID selects yt-dlp's best video+audio combination.
func (b *CommandBuilder) DownloadCommand(formatID string) *BuiltCommand {
	bc := b.base()

	formatID = strings.TrimSpace(formatID)
	if formatID == "" {
		formatID = command.DefaultFormat
	}
	output := filepath.Join(b.opts.DownloadDir, command.FilenameSyntax)

	bc.Cmd.Format(formatID).Output(output).PrintJSON()
	bc.Flags = append(bc.Flags, "-f", formatID, "-o", output, "--print-json")

	if b.opts.RestrictFilenames {
		bc.Cmd.RestrictFilenames()
		bc.Flags = append(bc.Flags, "--restrict-filenames")
	}

	logger.Pl.D(3, "Built download command flags: %v", bc.Flags)
	return bc
}

// base applies the options shared by every command.
func (b *CommandBuilder) base() *BuiltCommand {
	dl := ytdlp.New().NoPlaylist()
	flags := []string{"--no-playlist"}

	if b.opts.Executable != "" && b.opts.Executable != command.YTDLP {
		dl.SetExecutable(b.opts.Executable)
	}
	if b.opts.CookieSource != "" {
		dl.CookiesFromBrowser(b.opts.CookieSource)
		flags = append(flags, "--cookies-from-browser", b.opts.CookieSource)
	}
	if b.opts.Proxy != "" {
		dl.Proxy(b.opts.Proxy)
		flags = append(flags, "--proxy", b.opts.Proxy)
	}
	return &BuiltCommand{Cmd: dl, Flags: flags}
}
