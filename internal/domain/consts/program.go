// Package consts holds program-wide constant values.
package consts

// Program identity.
const (
	ProgramName = "vidgrab"
	DefaultPort = 8827
	DefaultHost = ""

	DefaultDownloadDir = "downloads"
)

// Rate limiter defaults (requests per second, burst).
const (
	DefaultRateLimit = 5.0
	DefaultRateBurst = 10
)

// Display sentinels.
const (
	Unknown         = "Unknown"
	UnknownPlatform = "Unknown Platform"
	NotApplicable   = "N/A"
	CodecNone       = "none"
	AudioOnly       = "audio only"
)

// SizeUnknown marks a format whose byte size the extraction tool did not report.
const SizeUnknown int64 = -1

// MaxFilenameLen is the byte limit applied when sanitising filenames.
const MaxFilenameLen = 255
