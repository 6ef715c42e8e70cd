package rain

import "math"

// GlyphDraw is one glyph to draw at a screen position. Scale is the height
// multiplier relative to the atlas cell.
type GlyphDraw struct {
	X, Y  float32
	Scale float32
	Glyph rune
	Col   RGBA
}

// PointDraw is one filled square (the marker above each symbol).
type PointDraw struct {
	X, Y float32
	Size float32
	Col  RGBA
}

// Scene is the read-only draw list for one frame, built after the engine's
// mutation pass completes. Glyphs are appended back-to-front: trails
// oldest-first, then explosion particles, then symbols grouped by font
// size so the streamed vertex buffer stays attribute-coherent.
type Scene struct {
	Glyphs []GlyphDraw
	Points []PointDraw

	// SymbolStart is the index in Glyphs where the symbol layer begins;
	// everything before it is trail and particle background. The renderer
	// slots the marker squares between the two layers.
	SymbolStart int

	themeName string
	ramp      [5]RGBA
	lead      RGBA
}

func (sc *Scene) Reset() {
	sc.Glyphs = sc.Glyphs[:0]
	sc.Points = sc.Points[:0]
	sc.SymbolStart = 0
}

// cacheTheme resolves the active ramp once per theme switch instead of per
// draw call.
func (sc *Scene) cacheTheme(th Theme) {
	if sc.themeName == th.Name {
		return
	}
	sc.themeName = th.Name
	sc.ramp = th.Ramp
	sc.lead = th.Lead
}

func (sc *Scene) rampColor(idx int) RGBA {
	if idx < 0 || idx >= len(sc.ramp) {
		return Palette.BloodRed
	}
	return sc.ramp[idx]
}

// TrailRenderAlpha computes the on-screen alpha of a trail sample: the base
// colour alpha times the sample's brightness, the age fade, and the global
// trail transparency. Always in [0,1]; exactly 0 at the duration boundary.
func TrailRenderAlpha(s TrailSample, colAlpha uint8, now, duration float64) float64 {
	fade := FadeFactor(now-s.Birth, duration)
	return clampF(float64(colAlpha)/255.0*s.Alpha*fade*TrailAlphaScale, 0, 1)
}

// symbolAlpha derives a symbol's draw alpha from its ramp colour, speed
// boost, overall transparency scale, and lead bonus.
func symbolAlpha(s *FallingSymbol, col RGBA) float64 {
	a := clampF(float64(col.A)/255.0+s.Speed*0.04, 0.4, 1.0)
	a *= SymbolAlphaScale
	if s.Lead {
		a = clampF(a+0.27, 0, 1)
	}
	return a
}

func glyphScale(size float64) float32 {
	return float32(size * GlyphPxPerSize / FontCellH)
}

// Build assembles the frame's draw list from the engine state and the
// active theme.
func (sc *Scene) Build(e *Engine, th Theme) {
	sc.Reset()
	sc.cacheTheme(th)
	now := e.Now()
	cfg := e.Config()
	slots := e.Arena().Slots()

	// Symbol trails, oldest first within each buffer.
	for i := range slots {
		s := &slots[i]
		if !s.Alive {
			continue
		}
		sc.appendTrails(s.Trail.Samples(), now, cfg.TrailDuration)
	}
	// Particle trails fade on their own, much shorter clock.
	for _, fx := range e.Effects() {
		sc.appendTrails(fx.Trails.Samples(), now, ParticleTrailLife)
	}

	// Explosion particles.
	for _, fx := range e.Effects() {
		if fx.Expired(now) {
			continue
		}
		col := Palette.BloodRed.ScaleAlpha(1.0 - fx.Progress(now)*0.7)
		for i := range fx.Particles {
			p := &fx.Particles[i]
			if !p.Active {
				continue
			}
			sc.Glyphs = append(sc.Glyphs, GlyphDraw{
				X:     float32(p.X),
				Y:     float32(p.Y),
				Scale: float32(p.Size * 2.5 / FontCellH),
				Glyph: p.Glyph,
				Col:   col,
			})
		}
	}

	// Pre-explode pulse parameters are shared by every rigged symbol this
	// frame.
	pulse := 0.5 + 0.5*math.Sin(now*5)
	pulseCol := Palette.PreExplodeHot.WithAlpha(uint8(255 * pulse))
	pulseGrow := 1.0 + 0.5*pulse

	// Symbols last (brightest), walked per size bucket so identical font
	// sizes draw together.
	sc.SymbolStart = len(sc.Glyphs)
	for bucket := int(SizeMin); bucket <= int(SizeMax); bucket++ {
		for i := range slots {
			s := &slots[i]
			if !s.Alive || int(s.Size) != bucket {
				continue
			}
			if s.SquareVisible {
				sc.Points = append(sc.Points, PointDraw{
					X:    float32(s.X),
					Y:    float32(s.Y - s.Size/2),
					Size: float32(s.Size),
					Col:  Palette.MarkerSquare,
				})
			}
			if s.State == StatePreExplode {
				sc.Glyphs = append(sc.Glyphs, GlyphDraw{
					X:     float32(s.X),
					Y:     float32(s.Y),
					Scale: glyphScale(s.Size * pulseGrow),
					Glyph: s.Glyph,
					Col:   pulseCol,
				})
				continue
			}
			col := sc.rampColor(s.ColIdx)
			if s.Lead {
				col.R = sc.lead.R
				col.G = sc.lead.G
				col.B = sc.lead.B
			}
			a := symbolAlpha(s, col)
			sc.Glyphs = append(sc.Glyphs, GlyphDraw{
				X:     float32(s.X),
				Y:     float32(s.Y),
				Scale: glyphScale(s.Size),
				Glyph: s.Glyph,
				Col:   col.WithAlpha(uint8(a * 255)),
			})
		}
	}
}

func (sc *Scene) appendTrails(samples []TrailSample, now, duration float64) {
	for _, s := range samples {
		col := sc.rampColor(s.ColIdx)
		if s.ColIdx < 0 {
			col = Palette.BloodTrail
		}
		a := TrailRenderAlpha(s, col.A, now, duration)
		if a <= 0 {
			continue
		}
		sc.Glyphs = append(sc.Glyphs, GlyphDraw{
			X:     float32(s.X),
			Y:     float32(s.Y),
			Scale: glyphScale(s.Scale),
			Glyph: s.Glyph,
			Col:   col.WithAlpha(uint8(a * 255)),
		})
	}
}
