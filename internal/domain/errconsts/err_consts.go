// Package errconsts holds the program's error taxonomy and constant error messages.
package errconsts

import "errors"

// Operation-level errors surfaced to callers.
var (
	// ErrInvalidInput marks a malformed, empty, or unsupported URL. No subprocess is run.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUpstreamUnavailable marks a failed, timed out, or undecodable extraction tool call.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrInvalidUpstreamData marks a successful call whose format list is structurally broken.
	ErrInvalidUpstreamData = errors.New("invalid upstream data")
)

// Extraction tool boundary errors. Each is also reported as ErrUpstreamUnavailable.
var (
	ErrNotFound        = errors.New("video not found")
	ErrTimeout         = errors.New("extraction tool timed out")
	ErrUpstreamFailure = errors.New("extraction tool failed")
)

// Session errors.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrOperationBusy   = errors.New("an operation is already in progress")
	ErrNoCatalog       = errors.New("no formats loaded for this session")
	ErrUnknownFormat   = errors.New("format is not in the current catalog")
)

// ErrRateLimited marks a request rejected by the server's rate limiter.
var ErrRateLimited = errors.New("too many requests, please slow down")

// Programs
const (
	YTDLPFailure = "yt-dlp command failed: %w"
)

// File
const (
	ConfigFileLoadFail = "failed to load config file %q: %w"
)

// UserMessage renders err as the single message shown to a user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	for _, sentinel := range []error{ErrSessionNotFound, ErrOperationBusy, ErrNoCatalog, ErrUnknownFormat, ErrRateLimited} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}

	switch {
	case errors.Is(err, ErrInvalidInput):
		return "Please enter a valid URL from a supported platform."
	case errors.Is(err, ErrInvalidUpstreamData):
		return "The video information could not be read."
	case errors.Is(err, ErrNotFound):
		return "Video not found or unavailable."
	case errors.Is(err, ErrTimeout):
		return "The request timed out. Please try again."
	case errors.Is(err, ErrUpstreamUnavailable), errors.Is(err, ErrUpstreamFailure):
		return "Failed to process URL."
	default:
		return "Internal server error"
	}
}
