package paths

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDefaultConfigFile checks extension probing order.
func TestDefaultConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if got := DefaultConfigFile(dir); got != "" {
		t.Fatalf("DefaultConfigFile(empty dir) = %q, want empty", got)
	}

	for _, name := range []string{"config.json", "config.yaml"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if got, want := DefaultConfigFile(dir), filepath.Join(dir, "config.yaml"); got != want {
		t.Errorf("DefaultConfigFile() = %q, want %q", got, want)
	}
}
