// Package models holds the data types shared across vidgrab.
package models

import "time"

// RawInfo is the extraction tool's metadata result for one URL.
//
// Formats is nil when the tool's output carried no format list at all.
type RawInfo struct {
	ID         string
	Title      string
	Thumbnail  string
	Uploader   string
	WebpageURL string
	Duration   float64
	UploadDate time.Time
	Formats    []RawFormat
}

// Catalog is the processed, partitioned, ranked, display-ready set of formats for one URL.
//
// A Catalog is never modified after it is built. Fetching again yields a new Catalog.
type Catalog struct {
	URL          string   `json:"url"`
	Title        string   `json:"title"`
	Thumbnail    string   `json:"thumbnail,omitempty"`
	Uploader     string   `json:"uploader,omitempty"`
	WebpageURL   string   `json:"webpageUrl,omitempty"`
	Platform     string   `json:"platform"`
	Duration     float64  `json:"duration"`
	DurationText string   `json:"durationText"`
	UploadDate   string   `json:"uploadDate,omitempty"`
	Video        []Format `json:"video"`
	Audio        []Format `json:"audio"`
	BestFormats
	FormatCount int `json:"formatCount"`
}

// Lookup returns the format with the given ID.
func (c *Catalog) Lookup(id string) (Format, bool) {
	if c == nil {
		return Format{}, false
	}
	for _, list := range [][]Format{c.Video, c.Audio} {
		for _, f := range list {
			if f.ID == id {
				return f, true
			}
		}
	}
	return Format{}, false
}
