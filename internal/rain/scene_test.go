package rain

import "testing"

func TestSceneSymbolLayerMatchesPopulation(t *testing.T) {
	cfg := testConfig()
	e := NewEngine(cfg, 10, nil)

	var sc Scene
	sc.Build(e, ThemeGreen)

	// Fresh engine: no trails, no effects, every glyph is a symbol.
	if sc.SymbolStart != 0 {
		t.Fatalf("background layer has %d glyphs before any motion", sc.SymbolStart)
	}
	if got := len(sc.Glyphs); got != e.Arena().Live() {
		t.Fatalf("%d symbol glyphs for %d live symbols", got, e.Arena().Live())
	}
}

func TestSceneRecolorsOnThemeSwitch(t *testing.T) {
	cfg := testConfig()
	e := NewEngine(cfg, 11, nil)

	var sc Scene
	sc.Build(e, ThemeGreen)
	green := make([]RGBA, len(sc.Glyphs))
	for i, g := range sc.Glyphs {
		green[i] = g.Col
	}

	sc.Build(e, ThemeRed)
	changed := false
	for i, g := range sc.Glyphs {
		if g.Col != green[i] {
			changed = true
			break
		}
	}
	if !changed {
		t.Fatal("theme switch did not recolour the scene")
	}
	// Simulation state is untouched by the switch.
	for i := range e.Arena().Slots() {
		s := e.Arena().Slot(i)
		if s.Alive && (s.ColIdx < 0 || s.ColIdx >= len(ThemeRed.Ramp)) {
			t.Fatalf("theme switch corrupted symbol %d ramp index %d", i, s.ColIdx)
		}
	}
}

func TestSceneReusesBuffers(t *testing.T) {
	cfg := testConfig()
	e := NewEngine(cfg, 12, nil)

	var sc Scene
	sc.Build(e, ThemeGreen)
	first := cap(sc.Glyphs)
	sc.Build(e, ThemeGreen)
	if cap(sc.Glyphs) != first {
		t.Fatalf("rebuild reallocated the glyph buffer: cap %d -> %d", first, cap(sc.Glyphs))
	}
}

func TestBloodRampIndexRendersRed(t *testing.T) {
	var sc Scene
	sc.cacheTheme(ThemeGreen)
	col := sc.rampColor(-1)
	if col != Palette.BloodRed {
		t.Fatalf("ramp index -1 resolved to %+v, want blood red", col)
	}
	if out := sc.rampColor(len(ThemeGreen.Ramp)); out != Palette.BloodRed {
		t.Fatalf("out-of-range ramp index resolved to %+v", out)
	}
}

func TestSymbolAlphaLeadBoostClamped(t *testing.T) {
	base := &FallingSymbol{Speed: SpeedMax}
	lead := &FallingSymbol{Speed: SpeedMax, Lead: true}
	col := ThemeGreen.Ramp[4]

	a := symbolAlpha(base, col)
	al := symbolAlpha(lead, col)
	if a < 0 || a > 1 || al < 0 || al > 1 {
		t.Fatalf("alphas out of range: %v %v", a, al)
	}
	if al <= a {
		t.Fatalf("lead symbol not brighter: %v vs %v", al, a)
	}
}

func TestGlyphScaleTracksSize(t *testing.T) {
	small := glyphScale(SizeMin)
	large := glyphScale(SizeMax)
	if small <= 0 || large <= small {
		t.Fatalf("glyph scale not monotonic: %v, %v", small, large)
	}
	// Size 13/2 maps exactly onto the native cell height.
	if got := glyphScale(FontCellH / GlyphPxPerSize); got != 1 {
		t.Fatalf("native-size scale = %v, want 1", got)
	}
}

func TestMarkerSquaresTrackBlink(t *testing.T) {
	cfg := testConfig()
	e := NewEngine(cfg, 13, nil)

	var sc Scene
	sc.Build(e, ThemeGreen)
	visible := 0
	for i := range e.Arena().Slots() {
		if s := e.Arena().Slot(i); s.Alive && s.SquareVisible {
			visible++
		}
	}
	if len(sc.Points) != visible {
		t.Fatalf("%d marker squares for %d blinking symbols", len(sc.Points), visible)
	}
}
