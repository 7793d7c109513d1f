// Package regex compiles and caches various regex expressions.
package regex

import (
	"regexp"
	"sync"
)

var (
	extraSpaces     *regexp.Regexp
	extraSpacesOnce sync.Once

	invalidChars     *regexp.Regexp
	invalidCharsOnce sync.Once

	resolution     *regexp.Regexp
	resolutionOnce sync.Once
)

// ExtraSpacesCompile compiles regex for runs of whitespace.
func ExtraSpacesCompile() *regexp.Regexp {
	extraSpacesOnce.Do(func() {
		extraSpaces = regexp.MustCompile(`\s+`)
	})
	return extraSpaces
}

// InvalidCharsCompile compiles regex for characters not allowed in filenames.
func InvalidCharsCompile() *regexp.Regexp {
	invalidCharsOnce.Do(func() {
		invalidChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	})
	return invalidChars
}

// ResolutionCompile compiles regex for "<width>x<height>" resolution strings.
func ResolutionCompile() *regexp.Regexp {
	resolutionOnce.Do(func() {
		resolution = regexp.MustCompile(`^(\d+)x(\d+)$`)
	})
	return resolution
}
