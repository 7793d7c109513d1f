package parsing

import (
	"errors"
	"testing"
	"time"
	"vidgrab/internal/domain/errconsts"
)

const sampleInfo = `{"id":"abc","title":"Cat video","thumbnail":"https://i.ytimg.com/vi/abc/hq.jpg",
"uploader":"cats","webpage_url":"https://www.youtube.com/watch?v=abc","duration":65.4,"upload_date":"20240309",
"formats":[
 {"format_id":"140","ext":"m4a","resolution":"audio only","vcodec":"none","acodec":"mp4a.40.2","filesize":3145728,"format_note":"medium"},
 {"format_id":"137","ext":"mp4","width":1920,"height":1080,"vcodec":"avc1","acodec":"none","filesize":null,"filesize_approx":52428800},
 {"format_id":18,"ext":"mp4","resolution":"640x360","vcodec":"avc1","acodec":"mp4a","filesize":"oops"},
 {"format_id":"sb0","ext":"mhtml","vcodec":"none","acodec":"none"}
]}`

// TestDecodeInfoJSON decodes a representative yt-dlp result.
func TestDecodeInfoJSON(t *testing.T) {
	t.Parallel()

	info, err := DecodeInfoJSON([]byte(sampleInfo))
	if err != nil {
		t.Fatalf("DecodeInfoJSON() unexpected error: %v", err)
	}

	if info.Title != "Cat video" || info.Duration != 65.4 || info.Uploader != "cats" {
		t.Fatalf("unexpected metadata: %+v", info)
	}
	if want := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC); !info.UploadDate.Equal(want) {
		t.Errorf("UploadDate = %v, want %v", info.UploadDate, want)
	}
	if len(info.Formats) != 4 {
		t.Fatalf("expected 4 formats, got %d", len(info.Formats))
	}

	audio := info.Formats[0]
	if audio.ID != "140" || audio.Container != "m4a" || audio.SizeBytes != 3145728 || audio.Note != "medium" {
		t.Errorf("unexpected audio format: %+v", audio)
	}

	video := info.Formats[1]
	if video.Resolution != "1920x1080" || video.SizeBytes != 52428800 {
		t.Errorf("expected resolution from width/height and approximate size, got %+v", video)
	}

	numeric := info.Formats[2]
	if numeric.ID != "18" || numeric.SizeBytes != -1 {
		t.Errorf("expected numeric ID and unknown size, got %+v", numeric)
	}

	sb := info.Formats[3]
	if sb.Resolution != "N/A" || sb.SizeBytes != -1 {
		t.Errorf("expected sentinel resolution and size, got %+v", sb)
	}
}

// TestDecodeInfoJSONErrors checks the upstream error split.
func TestDecodeInfoJSONErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want error
	}{
		{"empty", "", errconsts.ErrUpstreamUnavailable},
		{"not json", "ERROR: something broke", errconsts.ErrUpstreamUnavailable},
		{"truncated", `{"title":"x","formats":[`, errconsts.ErrUpstreamUnavailable},
		{"formats not list", `{"formats":{"a":1}}`, errconsts.ErrInvalidUpstreamData},
		{"format not object", `{"formats":["140","137"]}`, errconsts.ErrInvalidUpstreamData},
		{"null entry", `{"formats":[null]}`, errconsts.ErrInvalidUpstreamData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := DecodeInfoJSON([]byte(tt.in))
			if !errors.Is(err, tt.want) {
				t.Fatalf("DecodeInfoJSON(%q) error = %v, want %v", tt.in, err, tt.want)
			}
		})
	}
}

// TestDecodeInfoJSONMissingFormats leaves Formats nil for the catalog builder to reject.
func TestDecodeInfoJSONMissingFormats(t *testing.T) {
	t.Parallel()

	info, err := DecodeInfoJSON([]byte("[debug] noise\n{\"title\":\"x\"}\n"))
	if err != nil {
		t.Fatalf("DecodeInfoJSON() unexpected error: %v", err)
	}
	if info.Formats != nil {
		t.Fatalf("expected nil formats, got %v", info.Formats)
	}
}

// TestDecodeInfoJSONPlaylistEntry uses the first entry of a playlist result.
func TestDecodeInfoJSONPlaylistEntry(t *testing.T) {
	t.Parallel()

	in := `{"_type":"playlist","title":"list","entries":[{"title":"first","formats":[{"format_id":"1","ext":"mp4","vcodec":"h264"}]}]}`
	info, err := DecodeInfoJSON([]byte(in))
	if err != nil {
		t.Fatalf("DecodeInfoJSON() unexpected error: %v", err)
	}
	if info.Title != "first" || len(info.Formats) != 1 {
		t.Fatalf("expected first entry, got %+v", info)
	}
}

func TestParseUploadDate(t *testing.T) {
	t.Parallel()

	if d, err := ParseUploadDate(""); err != nil || !d.IsZero() {
		t.Fatalf("ParseUploadDate(\"\") = %v, %v", d, err)
	}
	if _, err := ParseUploadDate("not a date"); err == nil {
		t.Fatalf("expected error for garbage date")
	}
}

// TestDecodeFilename checks output path extraction from download JSON.
func TestDecodeFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"filepath wins", `{"_filename":"/dl/a.webm","filepath":"/dl/a.mkv"}`, "/dl/a.mkv", nil},
		{"pre-merge name", "[info] done\n" + `{"_filename":"/dl/a.mp4"}`, "/dl/a.mp4", nil},
		{"no filename", `{"id":"x"}`, "", errconsts.ErrInvalidUpstreamData},
		{"not json", "ERROR: boom", "", errconsts.ErrUpstreamUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := DecodeFilename([]byte(tt.input))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("DecodeFilename() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeFilename() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("DecodeFilename() = %q, want %q", got, tt.want)
			}
		})
	}
}
