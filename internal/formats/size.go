// Package formats turns the extraction tool's raw format list into a ranked, display-ready catalog.
package formats

import (
	"math"
	"strconv"
	"vidgrab/internal/domain/consts"
)

var sizeUnits = [...]string{"Bytes", "KB", "MB", "GB", "TB"}

// FormatSize renders a byte count as "<value> <unit>" using 1024-based units.
//
// The value is rounded half-up to two decimals with trailing zeros dropped,
// so 1024 renders "1 KB" and 1536 renders "1.5 KB". Negative counts mean unknown.
func FormatSize(bytes int64) string {
	if bytes < 0 {
		return consts.Unknown
	}
	if bytes == 0 {
		return "0 Bytes"
	}

	v := float64(bytes)
	i := 0
	for v >= 1024 && i < len(sizeUnits)-1 {
		v /= 1024
		i++
	}

	return strconv.FormatFloat(roundHalfUp(v, 2), 'f', -1, 64) + " " + sizeUnits[i]
}

// FormatDuration renders seconds as H:MM:SS, or M:SS when under an hour.
func FormatDuration(seconds float64) string {
	if math.IsNaN(seconds) || seconds <= 0 {
		return "0:00"
	}

	total := int64(math.Floor(seconds))
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60

	if h > 0 {
		return strconv.FormatInt(h, 10) + ":" + pad2(m) + ":" + pad2(s)
	}
	return strconv.FormatInt(m, 10) + ":" + pad2(s)
}

func roundHalfUp(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Floor(v*p+0.5) / p
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
