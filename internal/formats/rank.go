package formats

import (
	"slices"
	"strconv"
	"strings"
	"vidgrab/internal/domain/regex"
	"vidgrab/internal/models"
)

// VideoWidth parses the width from a "<width>x<height>" resolution.
func VideoWidth(resolution string) (int, bool) {
	m := regex.ResolutionCompile().FindStringSubmatch(strings.TrimSpace(resolution))
	if m == nil {
		return 0, false
	}
	w, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return w, true
}

// RankVideo returns a copy of formats ordered by width, widest first.
//
// Unparseable resolutions sort last. Equal keys keep their input order.
func RankVideo(formats []models.Format) []models.Format {
	out := slices.Clone(formats)
	slices.SortStableFunc(out, func(a, b models.Format) int {
		wa, okA := VideoWidth(a.Resolution)
		wb, okB := VideoWidth(b.Resolution)
		return compareDesc(wa, okA, wb, okB)
	})
	return out
}

// RankAudio returns a copy of formats ordered by byte size, largest first.
//
// The key is the raw byte count, not the display string, so "2 MB" outranks
// "1200 KB". Unknown sizes sort last. Equal keys keep their input order.
func RankAudio(formats []models.Format) []models.Format {
	out := slices.Clone(formats)
	slices.SortStableFunc(out, func(a, b models.Format) int {
		return compareDesc(a.SizeBytes, a.SizeBytes >= 0, b.SizeBytes, b.SizeBytes >= 0)
	})
	return out
}

// BestOf returns the heads of already ranked partitions.
func BestOf(video, audio []models.Format) models.BestFormats {
	var best models.BestFormats
	if len(video) > 0 {
		v := video[0]
		best.Video = &v
	}
	if len(audio) > 0 {
		a := audio[0]
		best.Audio = &a
	}
	return best
}

// PickBest classifies and ranks raw records and returns the best of each class.
//
// Records the catalog builder would drop are ignored here too, so the result
// always matches the picks of a catalog built from the same records.
func PickBest(records []models.RawFormat) models.BestFormats {
	video, audio := partition(dedupe(records))
	return BestOf(RankVideo(video), RankAudio(audio))
}

// partition classifies records and splits them by class, preserving input order.
func partition(records []models.RawFormat) (video, audio []models.Format) {
	for _, r := range records {
		f := decorate(r)
		if f.Class == models.ClassVideo {
			video = append(video, f)
		} else {
			audio = append(audio, f)
		}
	}
	return video, audio
}

// compareDesc orders known keys descending and unknown keys after them.
func compareDesc[T int | int64](a T, okA bool, b T, okB bool) int {
	switch {
	case okA && !okB:
		return -1
	case !okA && okB:
		return 1
	case !okA && !okB:
		return 0
	case a > b:
		return -1
	case a < b:
		return 1
	}
	return 0
}
