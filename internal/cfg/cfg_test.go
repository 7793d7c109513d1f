package cfg

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"vidgrab/internal/domain/keys"
	"vidgrab/internal/domain/logger"

	"github.com/spf13/viper"
)

// TestSettingsValidate checks range validation of settings.
func TestSettingsValidate(t *testing.T) {
	valid := func() Settings {
		return Settings{
			Port:            8827,
			DownloadDir:     "downloads",
			YtdlpPath:       "yt-dlp",
			FetchTimeout:    time.Minute,
			DownloadTimeout: time.Hour,
			FetchDebounce:   time.Second,
			SessionTTL:      time.Hour,
			RateLimit:       5,
			RateBurst:       10,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{"valid", func(*Settings) {}, false},
		{"port too high", func(s *Settings) { s.Port = 70000 }, true},
		{"empty download dir", func(s *Settings) { s.DownloadDir = "" }, true},
		{"zero fetch timeout", func(s *Settings) { s.FetchTimeout = 0 }, true},
		{"negative debounce", func(s *Settings) { s.FetchDebounce = -time.Second }, true},
		{"zero debounce", func(s *Settings) { s.FetchDebounce = 0 }, false},
		{"rate without burst", func(s *Settings) { s.RateBurst = 0 }, true},
		{"rate disabled", func(s *Settings) { s.RateLimit = 0; s.RateBurst = 0 }, false},
		{"debug level", func(s *Settings) { s.DebugLevel = 6 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(&s)
			if err := s.validate(); (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestRootCommandDefaults checks flag defaults and environment overrides through viper.
func TestRootCommandDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("VIDGRAB_DOWNLOAD_DIR", "/srv/videos")
	t.Setenv("HOME", t.TempDir())

	initViper()
	root, err := NewRootCommand(context.Background())
	if err != nil {
		t.Fatalf("NewRootCommand() unexpected error: %v", err)
	}
	root.SetArgs([]string{"platforms", "--" + keys.Port, "9000"})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "YouTube") || !strings.Contains(out.String(), "youtu.be") {
		t.Errorf("platforms output = %q", out.String())
	}

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() unexpected error: %v", err)
	}
	if s.Port != 9000 {
		t.Errorf("Port = %d, want 9000", s.Port)
	}
	if s.DownloadDir != "/srv/videos" {
		t.Errorf("DownloadDir = %q, want env override /srv/videos", s.DownloadDir)
	}
	if s.FetchDebounce != time.Second || !s.RestrictFilenames || s.YtdlpPath != "yt-dlp" {
		t.Errorf("defaults not applied: %+v", s)
	}
}

// TestLogFileOpenAfterCommand checks that the log file stays writable after the command
// returns, so the entrypoint can log shutdown before closing it.
func TestLogFileOpenAfterCommand(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("HOME", t.TempDir())

	prev := logger.Pl
	t.Cleanup(func() { logger.Pl = prev })

	logFile := filepath.Join(t.TempDir(), "vidgrab.log")

	initViper()
	root, err := NewRootCommand(context.Background())
	if err != nil {
		t.Fatalf("NewRootCommand() unexpected error: %v", err)
	}
	root.SetArgs([]string{"platforms", "--" + keys.LogFile, logFile, "--" + keys.DebugLevel, "1"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() unexpected error: %v", err)
	}

	logger.Pl.D(1, "shutting down")
	if err := logger.Pl.Close(); err != nil {
		t.Fatalf("Close() unexpected error: %v", err)
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "shutting down") {
		t.Errorf("log file = %q, want the post-command entry", data)
	}
}
