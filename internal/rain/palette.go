package rain

// RGBA is an 8-bit per channel colour with straight alpha.
type RGBA struct {
	R, G, B, A uint8
}

func (c RGBA) WithAlpha(a uint8) RGBA {
	c.A = a
	return c
}

// ScaleAlpha multiplies the alpha channel by k in [0,1].
func (c RGBA) ScaleAlpha(k float64) RGBA {
	c.A = uint8(clampF(float64(c.A)*k, 0, 255))
	return c
}

// Fixed effect colours shared across themes.
var Palette = struct {
	BloodRed      RGBA // explosion particles and impacted symbols
	BloodTrail    RGBA // trails shed by explosion particles
	MarkerSquare  RGBA // flashing square above each symbol
	PreExplodeHot RGBA // pulse colour while rigged to explode
}{
	BloodRed:      RGBA{R: 200, G: 0, B: 0, A: 220},
	BloodTrail:    RGBA{R: 200, G: 0, B: 0, A: 180},
	MarkerSquare:  RGBA{R: 255, G: 255, B: 255, A: 120},
	PreExplodeHot: RGBA{R: 255, G: 255, B: 255, A: 255},
}
