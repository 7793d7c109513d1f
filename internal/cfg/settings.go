package cfg

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
	"vidgrab/internal/domain/keys"
	"vidgrab/internal/validation"

	"github.com/spf13/viper"
)

// Settings is the validated runtime configuration.
type Settings struct {
	Host string
	Port int

	DownloadDir string
	LogFile     string

	YtdlpPath         string
	CookieSource      string
	Proxy             string
	RestrictFilenames bool

	FetchTimeout    time.Duration
	DownloadTimeout time.Duration
	FetchDebounce   time.Duration
	SessionTTL      time.Duration

	RateLimit float64
	RateBurst int

	DebugLevel int
	NoColor    bool
}

// LoadSettings reads settings from viper (flags, environment, config file) and validates them.
func LoadSettings() (*Settings, error) {
	s := &Settings{
		Host:              strings.TrimSpace(viper.GetString(keys.Host)),
		Port:              viper.GetInt(keys.Port),
		DownloadDir:       strings.TrimSpace(viper.GetString(keys.DownloadDir)),
		LogFile:           strings.TrimSpace(viper.GetString(keys.LogFile)),
		YtdlpPath:         strings.TrimSpace(viper.GetString(keys.YtdlpPath)),
		CookieSource:      strings.TrimSpace(viper.GetString(keys.CookieSource)),
		Proxy:             strings.TrimSpace(viper.GetString(keys.Proxy)),
		RestrictFilenames: viper.GetBool(keys.RestrictFilenames),
		FetchTimeout:      viper.GetDuration(keys.FetchTimeout),
		DownloadTimeout:   viper.GetDuration(keys.DownloadTimeout),
		FetchDebounce:     viper.GetDuration(keys.FetchDebounce),
		SessionTTL:        viper.GetDuration(keys.SessionTTL),
		RateLimit:         viper.GetFloat64(keys.RateLimit),
		RateBurst:         viper.GetInt(keys.RateBurst),
		DebugLevel:        viper.GetInt(keys.DebugLevel),
		NoColor:           viper.GetBool(keys.NoColor),
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// validate checks value ranges. It does not touch the filesystem or PATH.
func (s *Settings) validate() error {
	if s.Port < 0 || s.Port > 65535 {
		return fmt.Errorf("invalid %s %d: must be between 0 and 65535", keys.Port, s.Port)
	}
	if s.DownloadDir == "" {
		return fmt.Errorf("%s must not be empty", keys.DownloadDir)
	}
	if s.YtdlpPath == "" {
		return fmt.Errorf("%s must not be empty", keys.YtdlpPath)
	}
	for key, d := range map[string]time.Duration{
		keys.FetchTimeout:    s.FetchTimeout,
		keys.DownloadTimeout: s.DownloadTimeout,
		keys.SessionTTL:      s.SessionTTL,
	} {
		if d <= 0 {
			return fmt.Errorf("invalid %s %v: must be positive", key, d)
		}
	}
	if s.FetchDebounce < 0 {
		return fmt.Errorf("invalid %s %v: must not be negative", keys.FetchDebounce, s.FetchDebounce)
	}
	if s.RateLimit < 0 {
		return fmt.Errorf("invalid %s %v: must not be negative", keys.RateLimit, s.RateLimit)
	}
	if s.RateLimit > 0 && s.RateBurst < 1 {
		return fmt.Errorf("invalid %s %d: must be at least 1 when rate limiting", keys.RateBurst, s.RateBurst)
	}
	if s.DebugLevel < 0 || s.DebugLevel > 5 {
		return fmt.Errorf("invalid %s %d: must be between 0 and 5", keys.DebugLevel, s.DebugLevel)
	}
	return nil
}

// PrepareRuntime resolves the yt-dlp executable and creates the download directory.
func (s *Settings) PrepareRuntime() error {
	exe, err := exec.LookPath(s.YtdlpPath)
	if err != nil {
		return fmt.Errorf("yt-dlp executable %q not found: %w", s.YtdlpPath, err)
	}
	s.YtdlpPath = exe

	if abs, err := filepath.Abs(s.DownloadDir); err == nil {
		s.DownloadDir = abs
	}
	if _, err := validation.ValidateDirectory(s.DownloadDir, true); err != nil {
		return err
	}
	return nil
}
