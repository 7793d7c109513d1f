package cfgflags

import (
	"vidgrab/internal/domain/consts"
	"vidgrab/internal/domain/keys"

	"github.com/spf13/cobra"
)

// InitServerFlags initializes flags for the web server.
//
// They are persistent on the root command so both "vidgrab" and "vidgrab serve" accept them.
func InitServerFlags(rootCmd *cobra.Command) error {
	f := rootCmd.PersistentFlags()

	f.String(keys.Host, consts.DefaultHost, "Interface to listen on (empty for all)")
	f.IntP(keys.Port, "p", consts.DefaultPort, "Port to listen on")
	f.Duration(keys.FetchDebounce, consts.DefaultFetchDebounce, "Quiet period after URL input before fetching formats")
	f.Duration(keys.SessionTTL, consts.DefaultSessionTTL, "Idle time before a session is dropped")
	f.Float64(keys.RateLimit, consts.DefaultRateLimit, "Extraction requests per second allowed per client, and session fetches per second overall (0 disables)")
	f.Int(keys.RateBurst, consts.DefaultRateBurst, "Extraction request burst allowed per client")

	return bindAll(f, keys.Host, keys.Port, keys.FetchDebounce, keys.SessionTTL, keys.RateLimit, keys.RateBurst)
}

// InitDownloadFlags initializes flags for the download command.
//
// Per-command flags are read from the command itself, not viper, since several commands share names.
func InitDownloadFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(keys.FormatID, "f", "", "Format ID to download (default: best video+audio)")
}

// InitOutputFlags initializes output flags for commands printing results.
func InitOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool(keys.JSONOut, false, "Print JSON instead of a table")
}
