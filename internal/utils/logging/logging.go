// Package logging provides the program's leveled logger, backed by zerolog.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
	"vidgrab/internal/domain/consts"

	"github.com/rs/zerolog"
)

// LoggingConfig holds the options used by SetupLogging.
type LoggingConfig struct {
	LogFilePath string
	Console     io.Writer
	Program     string
	DebugLevel  int
}

// ProgramLogger writes leveled program logs to the console and an optional log file.
//
// The zero value discards everything, so packages can log before setup has run.
type ProgramLogger struct {
	zl    zerolog.Logger
	level atomic.Int32
	ready bool

	mu   sync.Mutex
	file *os.File
}

// SetupLogging builds a ProgramLogger from the given config.
func SetupLogging(cfg LoggingConfig) (*ProgramLogger, error) {
	var writers []io.Writer

	if cfg.Console != nil {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        cfg.Console,
			TimeFormat: time.DateTime,
		})
	}

	pl := &ProgramLogger{}

	if cfg.LogFilePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFilePath), consts.PermsGenericDir); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.LogFilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, consts.PermsLogFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %q: %w", cfg.LogFilePath, err)
		}
		pl.file = f
		writers = append(writers, f)
	}

	if len(writers) == 0 {
		writers = append(writers, io.Discard)
	}

	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp()
	if cfg.Program != "" {
		ctx = ctx.Str("program", cfg.Program)
	}
	pl.zl = ctx.Logger()
	pl.SetDebugLevel(cfg.DebugLevel)
	pl.ready = true

	return pl, nil
}

// SetDebugLevel changes the debug verbosity (0 - 5).
func (pl *ProgramLogger) SetDebugLevel(l int) {
	if l < 0 {
		l = 0
	}
	if l > 5 {
		l = 5
	}
	pl.level.Store(int32(l))
}

// DebugLevel returns the current debug verbosity.
func (pl *ProgramLogger) DebugLevel() int {
	return int(pl.level.Load())
}

// D logs a debug message if l is within the configured debug level.
func (pl *ProgramLogger) D(l int, format string, args ...any) {
	if !pl.usable() || l > pl.DebugLevel() {
		return
	}
	pl.zl.Debug().Int("lvl", l).Msgf(format, args...)
}

// I logs an info message.
func (pl *ProgramLogger) I(format string, args ...any) {
	if !pl.usable() {
		return
	}
	pl.zl.Info().Msgf(format, args...)
}

// S logs a success message.
func (pl *ProgramLogger) S(format string, args ...any) {
	if !pl.usable() {
		return
	}
	pl.zl.Info().Bool("success", true).Msgf(format, args...)
}

// W logs a warning.
func (pl *ProgramLogger) W(format string, args ...any) {
	if !pl.usable() {
		return
	}
	pl.zl.Warn().Msgf(format, args...)
}

// E logs an error.
func (pl *ProgramLogger) E(format string, args ...any) {
	if !pl.usable() {
		return
	}
	pl.zl.Error().Msgf(format, args...)
}

// Close flushes and closes the log file, if one was opened.
func (pl *ProgramLogger) Close() error {
	if pl == nil {
		return nil
	}
	pl.mu.Lock()
	defer pl.mu.Unlock()

	if pl.file == nil {
		return nil
	}
	err := pl.file.Close()
	pl.file = nil
	return err
}

func (pl *ProgramLogger) usable() bool {
	return pl != nil && pl.ready
}
