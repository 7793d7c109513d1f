// Package command holds yt-dlp argument constants.
package command

// General
const (
	FilenameSyntax = "%(title)s.%(ext)s"
	YTDLP          = "yt-dlp"
)

// Format selection used when no format ID is given.
const (
	DefaultFormat = "bestvideo*+bestaudio/best"
)
