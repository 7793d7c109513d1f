// Package parsing decodes the extraction tool's output into vidgrab models.
package parsing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"vidgrab/internal/domain/consts"
	"vidgrab/internal/domain/errconsts"
	"vidgrab/internal/domain/logger"
	"vidgrab/internal/models"
)

// DecodeInfoJSON decodes yt-dlp's info JSON.
//
// Output that is not a JSON object wraps errconsts.ErrUpstreamUnavailable. A "formats"
// value that is not a list of objects wraps errconsts.ErrInvalidUpstreamData. Unreadable
// fields inside a single format are replaced by sentinels instead of failing.
func DecodeInfoJSON(data []byte) (*models.RawInfo, error) {
	line := lastJSONLine(data)
	if line == nil {
		return nil, fmt.Errorf("%w: extraction tool returned no JSON output", errconsts.ErrUpstreamUnavailable)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(line, &top); err != nil {
		return nil, fmt.Errorf("%w: could not decode extraction tool output: %v", errconsts.ErrUpstreamUnavailable, err)
	}
	return decodeInfo(top)
}

func decodeInfo(top map[string]json.RawMessage) (*models.RawInfo, error) {
	// A single-entry playlist result carries its formats on the entry.
	if _, ok := top["formats"]; !ok {
		if entry, found := firstEntry(top); found {
			logger.Pl.D(2, "Result is a playlist, using first entry")
			return decodeInfo(entry)
		}
	}

	info := &models.RawInfo{
		ID:         stringField(top, "id"),
		Title:      stringField(top, "title"),
		Thumbnail:  stringField(top, "thumbnail"),
		Uploader:   stringField(top, "uploader"),
		WebpageURL: stringField(top, "webpage_url"),
	}
	if d, ok := numberField(top, "duration"); ok {
		info.Duration = d
	}
	if ud := stringField(top, "upload_date"); ud != "" {
		t, err := ParseUploadDate(ud)
		if err != nil {
			logger.Pl.D(1, "Ignoring upload date: %v", err)
		}
		info.UploadDate = t
	}

	formats, err := decodeFormats(top["formats"])
	if err != nil {
		return nil, err
	}
	info.Formats = formats
	return info, nil
}

// decodeFormats returns nil when the list is absent or null.
func decodeFormats(raw json.RawMessage) ([]models.RawFormat, error) {
	if len(raw) == 0 || string(bytes.TrimSpace(raw)) == "null" {
		return nil, nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("%w: formats is not a list: %v", errconsts.ErrInvalidUpstreamData, err)
	}

	out := make([]models.RawFormat, 0, len(elems))
	for i, e := range elems {
		var m map[string]json.RawMessage
		if err := json.Unmarshal(e, &m); err != nil || m == nil {
			return nil, fmt.Errorf("%w: format entry %d is not an object", errconsts.ErrInvalidUpstreamData, i)
		}
		out = append(out, decodeFormat(m))
	}
	return out, nil
}

func decodeFormat(m map[string]json.RawMessage) models.RawFormat {
	f := models.RawFormat{
		ID:         stringField(m, "format_id"),
		Container:  stringField(m, "ext"),
		Resolution: stringField(m, "resolution"),
		VideoCodec: stringField(m, "vcodec"),
		AudioCodec: stringField(m, "acodec"),
		Note:       stringField(m, "format_note"),
		SizeBytes:  consts.SizeUnknown,
	}

	if f.Resolution == "" {
		w, okW := numberField(m, "width")
		h, okH := numberField(m, "height")
		if okW && okH && w > 0 && h > 0 {
			f.Resolution = fmt.Sprintf("%dx%d", int(w), int(h))
		} else {
			f.Resolution = consts.NotApplicable
		}
	}

	for _, key := range []string{"filesize", "filesize_approx"} {
		if n, ok := numberField(m, key); ok && n >= 0 {
			f.SizeBytes = int64(n)
			break
		}
	}
	return f
}

// stringField reads a string (or a number rendered as one); anything else is "".
func stringField(m map[string]json.RawMessage, key string) string {
	raw, ok := m[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// numberField reads a JSON number, or a string holding one.
func numberField(m map[string]json.RawMessage, key string) (float64, bool) {
	raw, ok := m[key]
	if !ok || string(bytes.TrimSpace(raw)) == "null" {
		return 0, false
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return v, true
		}
	}
	return 0, false
}

func firstEntry(top map[string]json.RawMessage) (map[string]json.RawMessage, bool) {
	raw, ok := top["entries"]
	if !ok {
		return nil, false
	}
	var entries []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil || len(entries) == 0 || entries[0] == nil {
		return nil, false
	}
	return entries[0], true
}

// lastJSONLine returns the last output line that looks like a JSON object.
func lastJSONLine(data []byte) []byte {
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	for i := len(lines) - 1; i >= 0; i-- {
		l := bytes.TrimSpace(lines[i])
		if len(l) > 0 && l[0] == '{' {
			return l
		}
	}
	return nil
}

// DecodeFilename returns the output path yt-dlp reported in its JSON output.
//
// "filepath" from post-processing takes precedence over the pre-merge "_filename".
func DecodeFilename(data []byte) (string, error) {
	line := lastJSONLine(data)
	if line == nil {
		return "", fmt.Errorf("%w: extraction tool returned no JSON output", errconsts.ErrUpstreamUnavailable)
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(line, &top); err != nil {
		return "", fmt.Errorf("%w: could not decode extraction tool output: %v", errconsts.ErrUpstreamUnavailable, err)
	}
	for _, key := range []string{"filepath", "_filename", "filename"} {
		if v := stringField(top, key); v != "" {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: no filename in extraction tool output", errconsts.ErrInvalidUpstreamData)
}
