package formats

import (
	"strings"

	"vidgrab/internal/domain/consts"
	"vidgrab/internal/models"
)

// Classify reports whether a record is a video or an audio-only rendition.
//
// Only the video codec is inspected: a present codec means Video, an absent or
// sentinel codec means Audio. Records with neither codec (storyboards,
// metadata-only tracks) therefore land in Audio.
func Classify(r models.RawFormat) models.FormatClass {
	if isSentinel(r.VideoCodec) {
		return models.ClassAudio
	}
	return models.ClassVideo
}

// isSentinel reports whether a field holds no usable value.
func isSentinel(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", consts.CodecNone, strings.ToLower(consts.NotApplicable):
		return true
	}
	return false
}

// usableContainer reports whether the record names a container/extension a download can produce.
func usableContainer(r models.RawFormat) bool {
	return !isSentinel(r.Container)
}
