package cfgflags

import (
	"vidgrab/internal/domain/command"
	"vidgrab/internal/domain/consts"
	"vidgrab/internal/domain/keys"

	"github.com/spf13/cobra"
)

// InitProgramFlags initializes persistent flags shared by every command. E.g. logging level.
func InitProgramFlags(rootCmd *cobra.Command) error {
	pf := rootCmd.PersistentFlags()

	// Files
	pf.String(keys.ConfigFile, "", "Config file path (TOML, YAML or JSON)")
	pf.String(keys.LogFile, "", "Also write logs to this file")
	pf.String(keys.DownloadDir, consts.DefaultDownloadDir, "Directory downloads are saved to")

	// yt-dlp
	pf.String(keys.YtdlpPath, command.YTDLP, "Path to the yt-dlp executable")
	pf.String(keys.CookieSource, "", "Browser to read cookies from (e.g. 'firefox')")
	pf.String(keys.Proxy, "", "Proxy URL passed to yt-dlp")
	pf.Bool(keys.RestrictFilenames, true, "Restrict output filenames to ASCII without spaces")
	pf.Duration(keys.FetchTimeout, consts.DefaultFetchTimeout, "Time limit for one metadata fetch")
	pf.Duration(keys.DownloadTimeout, consts.DefaultDownloadTimeout, "Time limit for one download")

	// Logging
	pf.Int(keys.DebugLevel, 0, "Debugging level (0 - 5)")
	pf.Bool(keys.NoColor, false, "Disable colored terminal output")

	return bindAll(pf,
		keys.ConfigFile, keys.LogFile, keys.DownloadDir,
		keys.YtdlpPath, keys.CookieSource, keys.Proxy, keys.RestrictFilenames,
		keys.FetchTimeout, keys.DownloadTimeout,
		keys.DebugLevel, keys.NoColor,
	)
}
