package parsing

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseUploadDate parses the extraction tool's upload date (usually yyyymmdd).
func ParseUploadDate(dateString string) (time.Time, error) {
	dateString = strings.TrimSpace(dateString)
	if dateString == "" {
		return time.Time{}, nil
	}
	t, err := dateparse.ParseIn(dateString, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date: %s", dateString)
	}
	return t, nil
}
