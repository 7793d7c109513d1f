// Package print renders catalogs and download results for the terminal.
package print

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"vidgrab/internal/domain/consts"
	"vidgrab/internal/models"

	"github.com/dustin/go-humanize"
)

// Catalog writes a human-readable catalog listing to w. color toggles ANSI colors.
func Catalog(w io.Writer, c *models.Catalog, color bool) error {
	if c == nil {
		return fmt.Errorf("no catalog to print")
	}
	paint := func(code, s string) string {
		if !color {
			return s
		}
		return code + s + consts.ColorReset
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s %s\n", paint(consts.ColorCyan, "Title:"), c.Title)
	fmt.Fprintf(&b, "%s %s\n", paint(consts.ColorCyan, "Platform:"), c.Platform)
	fmt.Fprintf(&b, "%s %s\n", paint(consts.ColorCyan, "Duration:"), c.DurationText)
	if c.Uploader != "" {
		fmt.Fprintf(&b, "%s %s\n", paint(consts.ColorCyan, "Uploader:"), c.Uploader)
	}
	if c.UploadDate != "" {
		fmt.Fprintf(&b, "%s %s\n", paint(consts.ColorCyan, "Uploaded:"), c.UploadDate)
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}

	sections := []struct {
		title string
		list  []models.Format
		best  *models.Format
	}{
		{"Video formats", c.Video, c.BestFormats.Video},
		{"Audio formats", c.Audio, c.BestFormats.Audio},
	}
	for _, sec := range sections {
		fmt.Fprintf(w, "\n%s (%d)\n", paint(consts.ColorYellow, sec.title), len(sec.list))
		if len(sec.list) == 0 {
			fmt.Fprintln(w, "  none")
			continue
		}

		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "  ID\tEXT\tRESOLUTION\tSIZE\tVCODEC\tACODEC\tLABEL\t")
		for _, f := range sec.list {
			id := f.ID
			if sec.best != nil && sec.best.ID == f.ID {
				id = paint(consts.ColorGreen, id+"*")
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
				id, f.Container, f.Resolution, f.SizeText, f.VideoCodec, f.AudioCodec, f.Label)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\n%d formats, * marks the best pick\n", c.FormatCount)
	return err
}

// Download writes a one-line summary of a finished download to w.
func Download(w io.Writer, res *models.DownloadResult, color bool) error {
	if res == nil {
		return fmt.Errorf("no download result to print")
	}
	prefix := "Download completed!"
	if color {
		prefix = consts.ColorGreen + prefix + consts.ColorReset
	}
	size := res.SizeText
	if res.SizeBytes >= 0 {
		size = humanize.IBytes(uint64(res.SizeBytes))
	}
	_, err := fmt.Fprintf(w, "%s File: %s (%s)\n  %s\n", prefix, res.Filename, size, res.FilePath)
	return err
}
