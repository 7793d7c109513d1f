package models

// DownloadResult describes a completed download.
type DownloadResult struct {
	URL       string `json:"url"`
	FormatID  string `json:"formatId,omitempty"`
	FilePath  string `json:"path"`
	Filename  string `json:"filename"`
	SizeBytes int64  `json:"size"`
	SizeText  string `json:"sizeText"`
}
