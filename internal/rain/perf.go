package rain

import "time"

// FrameClock keeps a rolling average of wall-clock frame times over the
// last FrameWindow frames. Exceeding the budget is observed and reported,
// never auto-remediated.
type FrameClock struct {
	samples [FrameWindow]time.Duration
	n       int
	next    int
	sum     time.Duration
	budget  time.Duration
}

func NewFrameClock(budget time.Duration) *FrameClock {
	if budget <= 0 {
		budget = FrameBudget
	}
	return &FrameClock{budget: budget}
}

// Observe records one frame duration and reports whether the window is full
// and its average is over budget.
func (fc *FrameClock) Observe(d time.Duration) bool {
	if fc.n == FrameWindow {
		fc.sum -= fc.samples[fc.next]
	} else {
		fc.n++
	}
	fc.samples[fc.next] = d
	fc.sum += d
	fc.next = (fc.next + 1) % FrameWindow
	return fc.n == FrameWindow && fc.Average() > fc.budget
}

func (fc *FrameClock) Average() time.Duration {
	if fc.n == 0 {
		return 0
	}
	return fc.sum / time.Duration(fc.n)
}

func (fc *FrameClock) Full() bool { return fc.n == FrameWindow }
