package rain

import "math"

// Particle is one glyph fragment flung out by an explosion. It is advanced
// by the physics step only and dies at effect expiry or on its first
// collision with a symbol.
type Particle struct {
	Glyph      rune
	X, Y       float64
	DirX, DirY float64
	Speed      float64
	Size       float64
	HitForce   float64
	Active     bool
}

// Advance moves the particle along its direction. Velocity is halved,
// matching the effect's original tuning.
func (p *Particle) Advance(elapsed float64) {
	p.X += p.DirX * p.Speed * elapsed * ParticleVelScale
	p.Y += p.DirY * p.Speed * elapsed * ParticleVelScale
}

// Collides reports whether the particle overlaps a symbol at (sx, sy) with
// the given visual size. Squared-distance comparison, no sqrt; the test is
// symmetric in its two bodies.
func (p *Particle) Collides(sx, sy, ssize float64) bool {
	reach := p.Size + ssize
	dx := p.X - sx
	dy := p.Y - sy
	return dx*dx+dy*dy < reach*reach
}

// ExplosionEffect owns the particles spawned when a symbol detonates, plus
// the short-lived trails those particles shed. It references the trigger
// position only; the triggering symbol is recycled by the engine.
type ExplosionEffect struct {
	X, Y       float64
	Start      float64
	Duration   float64
	SizeFactor float64
	Radius     float64

	Particles []Particle
	Trails    TrailBuffer

	rng        *Rand
	lastUpdate float64
}

// NewExplosionEffect spawns the particle ring: evenly spread directions
// with angular jitter, speed scaled by the square root of the size factor.
func NewExplosionEffect(x, y, now, sizeFactor float64, r *Rand) *ExplosionEffect {
	e := &ExplosionEffect{
		X: x, Y: y,
		Start:      now,
		Duration:   ExplosionDuration,
		SizeFactor: sizeFactor,
		Radius:     ExplosionBaseRadius * sizeFactor,
		rng:        r,
		lastUpdate: now,
	}

	count := int(ParticlesPerSize * sizeFactor)
	if count < 1 {
		count = 1
	}
	e.Particles = make([]Particle, 0, count)
	speedScale := math.Sqrt(sizeFactor)
	for i := 0; i < count; i++ {
		angle := 2*math.Pi*float64(i)/float64(count) +
			r.RangeF(-ParticleAngleJitter, ParticleAngleJitter)
		speed := r.RangeF(ParticleSpeedMin, ParticleSpeedMax) * speedScale
		e.Particles = append(e.Particles, Particle{
			Glyph:    RandomGlyph(r),
			X:        x,
			Y:        y,
			DirX:     math.Cos(angle),
			DirY:     math.Sin(angle),
			Speed:    speed,
			Size:     r.RangeF(ParticleSizeMin, ParticleSizeMax) * sizeFactor * 2.0,
			HitForce: speed * HitForceScale,
			Active:   true,
		})
	}
	return e
}

func (e *ExplosionEffect) Expired(now float64) bool {
	return now-e.Start >= e.Duration
}

// Progress returns animation progress in [0,1].
func (e *ExplosionEffect) Progress(now float64) float64 {
	if e.Duration <= 0 {
		return 1
	}
	return clampF((now-e.Start)/e.Duration, 0, 1)
}

// Done reports whether the effect can be dropped: the animation has run its
// course (or every particle already hit something) and the shed trails have
// faded out.
func (e *ExplosionEffect) Done(now float64) bool {
	if e.Trails.Len() > 0 {
		return false
	}
	if e.Expired(now) {
		return true
	}
	for i := range e.Particles {
		if e.Particles[i].Active {
			return false
		}
	}
	return true
}

// Update advances particles, resolves collisions against symbols near the
// explosion origin, and sheds occasional particle trails. Collision
// candidates come from the spatial index, not the full population.
func (e *ExplosionEffect) Update(now float64, arena *SymbolArena, index *SymbolIndex) {
	e.Trails.Purge(now, ParticleTrailLife, 64)

	elapsed := now - e.lastUpdate
	e.lastUpdate = now
	if elapsed <= 0 || e.Expired(now) {
		return
	}

	progress := e.Progress(now)
	candidates := index.Near(e.X, e.Y, e.Radius*CollisionReachFactor)

	for i := range e.Particles {
		p := &e.Particles[i]
		if !p.Active {
			continue
		}
		p.Advance(elapsed)

		for _, id := range candidates {
			s := arena.Slot(id)
			if !s.Alive {
				continue
			}
			if p.Collides(s.X, s.Y, s.Size) {
				e.affectSymbol(p, s)
				p.Active = false // a particle hits at most one symbol
				break
			}
		}
		if !p.Active {
			continue
		}

		if progress > 0.1 && e.rng.Chance(ParticleTrailChance) {
			e.Trails.Append(TrailSample{
				X:      p.X,
				Y:      p.Y,
				Glyph:  p.Glyph,
				ColIdx: -1,
				Scale:  p.Size * 0.5,
				Alpha:  1.0,
				Birth:  now,
			})
		}
	}
}

// affectSymbol applies the impact impulse: a drift kick away from the
// particle plus jitter, and the blood-red recolour. Near-zero separation is
// treated as a minimum-distance hit along the x axis so normalization never
// divides by a vanishing length.
func (e *ExplosionEffect) affectSymbol(p *Particle, s *FallingSymbol) {
	nx, ny, ok := normalize2(s.X-p.X, s.Y-p.Y)
	if !ok {
		nx, ny = 1.0, 0.0
	}
	s.DriftX = nx*p.HitForce + e.rng.RangeF(-1, 1)
	s.DriftY = ny*p.HitForce + e.rng.RangeF(-1, 1)
	s.Affected = true
	s.ColIdx = -1 // blood red until recycled
}
