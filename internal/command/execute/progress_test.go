package execute

import (
	"testing"
	"time"
)

// TestProgressTrackerSteps checks that progress is logged once per step.
func TestProgressTrackerSteps(t *testing.T) {
	t.Parallel()

	p := newProgressTracker("https://youtu.be/x")

	tests := []struct {
		downloaded int64
		want       bool
	}{
		{0, true},
		{50, false},
		{100, true},
		{150, false},
		{250, true},
		{1000, true},
	}
	for _, tt := range tests {
		if got := p.record(tt.downloaded, 1000, time.Second); got != tt.want {
			t.Errorf("record(%d/1000) = %v, want %v", tt.downloaded, got, tt.want)
		}
	}

	if p.record(10, 0, 0) {
		t.Errorf("record() with unknown total logged a line")
	}
}
