package rain

// TrailSample is one fading echo of a glyph at a past position.
type TrailSample struct {
	X, Y   float64
	Glyph  rune
	ColIdx int // index into the active theme ramp; -1 = blood red
	Scale  float64
	Alpha  float64 // base alpha factor at birth [0,1]
	Birth  float64
}

// TrailBuffer holds the recent samples behind one moving entity. Purge keeps
// every sample younger than the duration; above the batch threshold it
// compacts in a single filter pass instead of trimming one-by-one.
type TrailBuffer struct {
	samples []TrailSample
}

func (tb *TrailBuffer) Append(s TrailSample) {
	tb.samples = append(tb.samples, s)
}

func (tb *TrailBuffer) Len() int { return len(tb.samples) }

// Samples returns the live samples oldest-first.
func (tb *TrailBuffer) Samples() []TrailSample { return tb.samples }

// Clear empties the buffer keeping its storage (recycled symbols reuse it).
func (tb *TrailBuffer) Clear() {
	tb.samples = tb.samples[:0]
}

// Purge drops samples older than duration. Samples are appended in time
// order, so the eager path only ever trims from the front; the batched path
// rewrites the slice in place once the buffer is large enough that repeated
// front-trims would thrash.
func (tb *TrailBuffer) Purge(now, duration float64, batchThreshold int) {
	if len(tb.samples) == 0 {
		return
	}
	if len(tb.samples) > batchThreshold {
		kept := tb.samples[:0]
		for _, s := range tb.samples {
			if now-s.Birth < duration {
				kept = append(kept, s)
			}
		}
		tb.samples = kept
		return
	}
	i := 0
	for i < len(tb.samples) && now-tb.samples[i].Birth >= duration {
		i++
	}
	if i > 0 {
		tb.samples = append(tb.samples[:0], tb.samples[i:]...)
	}
}

// FadeFactor maps a sample age onto [0,1]: 1 fresh, 0 at the duration
// boundary and beyond.
func FadeFactor(age, duration float64) float64 {
	if duration <= 0 {
		return 0
	}
	return clampF(1.0-age/duration, 0, 1)
}
