package validation

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
	"vidgrab/internal/domain/consts"
	"vidgrab/internal/domain/logger"
	"vidgrab/internal/domain/regex"
)

// ValidateDirectory validates that the directory exists, else creates it if desired.
func ValidateDirectory(dir string, createIfNotFound bool) (os.FileInfo, error) {
	logger.Pl.D(3, "Statting directory %q...", dir)

	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("directory path is empty")
	}

	info, err := os.Stat(dir)
	if err != nil {
		if !os.IsNotExist(err) || !createIfNotFound {
			return nil, fmt.Errorf("failed to stat directory %q: %w", dir, err)
		}
		if err := os.MkdirAll(dir, consts.PermsGenericDir); err != nil {
			return nil, fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
		logger.Pl.I("Created directory %q", dir)
		if info, err = os.Stat(dir); err != nil {
			return nil, fmt.Errorf("failed to stat created directory %q: %w", dir, err)
		}
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("path %q is a file, not a directory", dir)
	}
	return info, nil
}

// ValidateFile validates that the file exists and is not a directory.
func ValidateFile(path string) (os.FileInfo, error) {
	logger.Pl.D(3, "Statting file %q...", path)

	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("file path is empty")
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file %q: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path %q is a directory, not a file", path)
	}
	return info, nil
}

// SanitizeFilename makes a name safe for use as a download filename.
//
// Reserved characters and whitespace runs become underscores, and the result is cut
// to 255 bytes without splitting a UTF-8 sequence.
func SanitizeFilename(name string) string {
	name = regex.InvalidCharsCompile().ReplaceAllString(name, "_")
	name = regex.ExtraSpacesCompile().ReplaceAllString(name, "_")

	if len(name) <= consts.MaxFilenameLen {
		return name
	}
	cut := consts.MaxFilenameLen
	for cut > 0 && !utf8.RuneStart(name[cut]) {
		cut--
	}
	return name[:cut]
}
