package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestProgramLoggerDebugLevels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	pl, err := SetupLogging(LoggingConfig{Console: &buf, Program: "test", DebugLevel: 2})
	if err != nil {
		t.Fatalf("SetupLogging() unexpected error: %v", err)
	}

	pl.D(1, "shown %d", 1)
	pl.D(3, "hidden %d", 3)
	pl.I("info line")
	pl.E("error line")

	out := buf.String()
	if !strings.Contains(out, "shown 1") {
		t.Errorf("expected level 1 debug output, got %q", out)
	}
	if strings.Contains(out, "hidden 3") {
		t.Errorf("level 3 debug output should be filtered, got %q", out)
	}
	if !strings.Contains(out, "info line") || !strings.Contains(out, "error line") {
		t.Errorf("missing info/error output: %q", out)
	}
}

func TestProgramLoggerZeroValue(t *testing.T) {
	t.Parallel()

	var pl ProgramLogger
	pl.I("nothing happens")
	pl.D(0, "nothing happens")

	var nilPl *ProgramLogger
	nilPl.E("still nothing")
	if err := nilPl.Close(); err != nil {
		t.Fatalf("Close() on nil logger: %v", err)
	}
}

func TestProgramLoggerFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "vidgrab.log")
	pl, err := SetupLogging(LoggingConfig{LogFilePath: path})
	if err != nil {
		t.Fatalf("SetupLogging() unexpected error: %v", err)
	}
	pl.W("written to file")
	if err := pl.Close(); err != nil {
		t.Fatalf("Close() unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Fatalf("log file missing message, got %q", string(data))
	}
}

func TestSetDebugLevelClamps(t *testing.T) {
	t.Parallel()

	var pl ProgramLogger
	pl.SetDebugLevel(9)
	if got := pl.DebugLevel(); got != 5 {
		t.Errorf("DebugLevel() = %d, want 5", got)
	}
	pl.SetDebugLevel(-1)
	if got := pl.DebugLevel(); got != 0 {
		t.Errorf("DebugLevel() = %d, want 0", got)
	}
}
