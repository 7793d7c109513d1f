package consts

import "time"

// External tool timeouts.
const (
	DefaultFetchTimeout    = 60 * time.Second
	DefaultDownloadTimeout = 30 * time.Minute
)

// Session timing.
const (
	DefaultFetchDebounce = 1 * time.Second
	DefaultSessionTTL    = 30 * time.Minute
	SessionSweepInterval = 1 * time.Minute
)

// Server timeouts.
const (
	ReadHeaderTimeout = 10 * time.Second
	ShutdownTimeout   = 10 * time.Second
)
