package rain

// Theme is a named 5-colour ramp for symbol rendering. Symbols store a ramp
// index, not a colour, so a theme switch recolours the whole scene on the
// next frame without touching simulation state.
type Theme struct {
	Name string
	Ramp [5]RGBA
	Lead RGBA // extra-bright head colour for lead symbols
}

var (
	ThemeGreen = Theme{
		Name: "Green",
		Ramp: [5]RGBA{
			{R: 0, G: 255, B: 50, A: 180},
			{R: 0, G: 220, B: 40, A: 160},
			{R: 0, G: 180, B: 30, A: 140},
			{R: 0, G: 160, B: 20, A: 120},
			{R: 0, G: 240, B: 60, A: 200},
		},
		Lead: RGBA{R: 180, G: 255, B: 180, A: 255},
	}
	ThemeRed = Theme{
		Name: "Red",
		Ramp: [5]RGBA{
			{R: 200, G: 0, B: 0, A: 180},
			{R: 220, G: 0, B: 0, A: 160},
			{R: 180, G: 0, B: 0, A: 140},
			{R: 160, G: 0, B: 0, A: 120},
			{R: 240, G: 0, B: 0, A: 200},
		},
		Lead: RGBA{R: 255, G: 170, B: 170, A: 255},
	}
	ThemeBlue = Theme{
		Name: "Blue",
		Ramp: [5]RGBA{
			{R: 0, G: 120, B: 255, A: 180},
			{R: 0, G: 140, B: 230, A: 160},
			{R: 0, G: 100, B: 190, A: 140},
			{R: 0, G: 80, B: 170, A: 120},
			{R: 40, G: 170, B: 255, A: 200},
		},
		Lead: RGBA{R: 180, G: 220, B: 255, A: 255},
	}
	ThemeAmber = Theme{
		Name: "Amber",
		Ramp: [5]RGBA{
			{R: 255, G: 176, B: 0, A: 180},
			{R: 235, G: 160, B: 0, A: 160},
			{R: 205, G: 136, B: 0, A: 140},
			{R: 180, G: 118, B: 0, A: 120},
			{R: 255, G: 200, B: 40, A: 200},
		},
		Lead: RGBA{R: 255, G: 236, B: 180, A: 255},
	}
	ThemeGhost = Theme{
		Name: "Ghost",
		Ramp: [5]RGBA{
			{R: 200, G: 255, B: 245, A: 170},
			{R: 170, G: 230, B: 225, A: 150},
			{R: 140, G: 200, B: 200, A: 130},
			{R: 110, G: 170, B: 175, A: 110},
			{R: 230, G: 255, B: 250, A: 190},
		},
		Lead: RGBA{R: 255, G: 255, B: 255, A: 255},
	}

	Themes = []Theme{ThemeGreen, ThemeRed, ThemeBlue, ThemeAmber, ThemeGhost}
)

// ThemeController cycles through Themes on a fixed wall-clock cadence. One
// self-loop transition per theme; nothing external can change the index.
type ThemeController struct {
	themes     []Theme
	interval   float64
	index      int
	lastSwitch float64
}

func NewThemeController(themes []Theme, interval, now float64) *ThemeController {
	if len(themes) == 0 {
		themes = Themes
	}
	if interval <= 0 {
		interval = 10.0
	}
	return &ThemeController{
		themes:     themes,
		interval:   interval,
		lastSwitch: now,
	}
}

// Advance moves to the next theme for every full interval elapsed since the
// last switch. Returns true if the active theme changed.
func (tc *ThemeController) Advance(now float64) bool {
	changed := false
	for now-tc.lastSwitch >= tc.interval {
		tc.index = (tc.index + 1) % len(tc.themes)
		tc.lastSwitch += tc.interval
		changed = true
	}
	return changed
}

func (tc *ThemeController) Active() Theme { return tc.themes[tc.index] }

func (tc *ThemeController) Index() int { return tc.index }

func (tc *ThemeController) Count() int { return len(tc.themes) }
