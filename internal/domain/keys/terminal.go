// Package keys holds various keys for software operations, such as terminal input keys and internal Viper keys.
package keys

// Server.
const (
	Host string = "host"
	Port string = "port"
)

// Files and directories.
const (
	ConfigFile  string = "config-file"
	DownloadDir string = "download-dir"
	LogFile     string = "log-file"
)

// yt-dlp.
const (
	YtdlpPath         string = "ytdlp-path"
	CookieSource      string = "cookie-source"
	Proxy             string = "proxy"
	RestrictFilenames string = "restrict-filenames"
)

// Timing.
const (
	FetchTimeout    string = "fetch-timeout"
	DownloadTimeout string = "download-timeout"
	FetchDebounce   string = "fetch-debounce"
	SessionTTL      string = "session-ttl"
)

// Rate limiting.
const (
	RateLimit string = "rate-limit"
	RateBurst string = "rate-burst"
)

// Logging.
const (
	DebugLevel string = "debug-level"
)

// Sub-command flags.
const (
	FormatID string = "format"
	JSONOut  string = "json"
	NoColor  string = "no-color"
)

// EnvPrefix is prepended to environment overrides (e.g. VIDGRAB_DOWNLOAD_DIR).
const EnvPrefix string = "vidgrab"
