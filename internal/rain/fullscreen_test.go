//go:build !windows

package rain

import "testing"

func TestFallbackDetectorNeverSuspends(t *testing.T) {
	det := newFullscreenDetector()
	active, err := det.FullscreenActive()
	if err != nil {
		t.Fatalf("fallback probe errored: %v", err)
	}
	if active {
		t.Fatal("fallback probe reported a fullscreen app")
	}

	c := NewLoadController(&stubSampler{}, det, 75, 25)
	c.probeFullscreen()
	if c.State().Suspended {
		t.Fatal("fallback probe suspended the display")
	}
}
