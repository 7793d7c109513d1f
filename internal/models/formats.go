package models

// FormatClass is the kind of rendition a format represents.
type FormatClass string

const (
	ClassVideo FormatClass = "video"
	ClassAudio FormatClass = "audio"
)

// RawFormat is one downloadable rendition as reported by the extraction tool.
//
// Any field may hold a sentinel ("none", "N/A", "") and SizeBytes may be consts.SizeUnknown.
type RawFormat struct {
	ID         string `json:"id"`
	Container  string `json:"container"`
	Resolution string `json:"resolution"`
	SizeBytes  int64  `json:"sizeBytes"`
	VideoCodec string `json:"videoCodec"`
	AudioCodec string `json:"audioCodec"`
	Note       string `json:"note"`
}

// Format is a RawFormat tagged with its class and display values.
type Format struct {
	RawFormat
	Class    FormatClass `json:"class"`
	SizeText string      `json:"sizeText"`
	Label    string      `json:"label"`
}

// BestFormats holds the top pick of each class. A nil field means the class is empty.
type BestFormats struct {
	Video *Format `json:"bestVideo"`
	Audio *Format `json:"bestAudio"`
}
