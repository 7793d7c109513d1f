// Package paths resolves vidgrab's per-user file locations.
package paths

import (
	"os"
	"path/filepath"
)

const (
	homeDir        = ".vidgrab"
	configFileName = "config"
)

// configExts are probed in order when looking for a default config file.
var configExts = []string{".toml", ".yaml", ".yml", ".json"}

// HomeDir returns ~/.vidgrab.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, homeDir), nil
}

// DefaultConfigFile returns the first existing config file in dir, or "" when there is none.
func DefaultConfigFile(dir string) string {
	for _, ext := range configExts {
		p := filepath.Join(dir, configFileName+ext)
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p
		}
	}
	return ""
}
