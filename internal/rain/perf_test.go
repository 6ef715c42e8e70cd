package rain

import (
	"testing"
	"time"
)

func TestFrameClockWarnsOnlyWhenWindowFull(t *testing.T) {
	fc := NewFrameClock(50 * time.Millisecond)

	for i := 0; i < FrameWindow-1; i++ {
		if fc.Observe(100 * time.Millisecond) {
			t.Fatalf("over-budget reported before the window filled (frame %d)", i)
		}
	}
	if !fc.Observe(100 * time.Millisecond) {
		t.Fatal("full window of slow frames not reported")
	}
	if !fc.Full() {
		t.Fatal("window not marked full")
	}
}

func TestFrameClockRecovers(t *testing.T) {
	fc := NewFrameClock(50 * time.Millisecond)
	for i := 0; i < FrameWindow; i++ {
		fc.Observe(100 * time.Millisecond)
	}
	// Fast frames pull the rolling average back under budget.
	warned := true
	for i := 0; i < FrameWindow; i++ {
		warned = fc.Observe(time.Millisecond)
	}
	if warned {
		t.Fatalf("average %v still over budget after a window of fast frames", fc.Average())
	}
}

func TestFrameClockAverage(t *testing.T) {
	fc := NewFrameClock(0) // defaults to FrameBudget
	if fc.Average() != 0 {
		t.Fatal("empty clock has nonzero average")
	}
	fc.Observe(10 * time.Millisecond)
	fc.Observe(30 * time.Millisecond)
	if got := fc.Average(); got != 20*time.Millisecond {
		t.Fatalf("average %v, want 20ms", got)
	}
}
