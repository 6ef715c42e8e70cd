package rain

import (
	"math"
	"testing"
)

func TestParticleCollisionSymmetric(t *testing.T) {
	cases := []struct {
		px, py, psize float64
		sx, sy, ssize float64
		want          bool
	}{
		{0, 0, 2, 3, 0, 2, true},   // dist 3 < reach 4
		{0, 0, 2, 5, 0, 2, false},  // dist 5 > reach 4
		{0, 0, 2, 4, 0, 2, false},  // dist == reach: no contact
		{10, 10, 1, 10, 10, 1, true},
	}
	for i, c := range cases {
		a := Particle{X: c.px, Y: c.py, Size: c.psize}
		b := Particle{X: c.sx, Y: c.sy, Size: c.ssize}
		got := a.Collides(c.sx, c.sy, c.ssize)
		rev := b.Collides(c.px, c.py, c.psize)
		if got != c.want {
			t.Errorf("case %d: collides=%v, want %v", i, got, c.want)
		}
		if got != rev {
			t.Errorf("case %d: collision not symmetric (%v vs %v)", i, got, rev)
		}
	}
}

func TestAffectSymbolFallbackAxis(t *testing.T) {
	fx := &ExplosionEffect{rng: NewRand(7)}
	p := &Particle{X: 100, Y: 100, HitForce: 10}
	s := &FallingSymbol{X: 100, Y: 100, Alive: true}

	fx.affectSymbol(p, s)

	if !s.Affected {
		t.Fatal("overlapping hit did not mark the symbol affected")
	}
	if s.ColIdx != -1 {
		t.Fatalf("hit symbol ColIdx = %d, want -1", s.ColIdx)
	}
	// Zero separation falls back to the x axis: x drift carries the full
	// force plus jitter in [-1,1], y drift is jitter only.
	if s.DriftX < p.HitForce-1 || s.DriftX > p.HitForce+1 {
		t.Errorf("DriftX = %v, want within 1 of %v", s.DriftX, p.HitForce)
	}
	if s.DriftY < -1 || s.DriftY > 1 {
		t.Errorf("DriftY = %v, want jitter in [-1,1]", s.DriftY)
	}
}

func TestParticleHitsAtMostOneSymbol(t *testing.T) {
	cfg := DefaultConfig(800, 600)
	arena := NewSymbolArena(4)
	r := NewRand(3)
	a := arena.Spawn(r, cfg, 0)
	b := arena.Spawn(r, cfg, 0)
	for _, id := range []int{a, b} {
		s := arena.Slot(id)
		s.X, s.Y = 200, 200
		s.Size = 10
	}

	var index SymbolIndex
	index.Build(arena, cfg)

	fx := &ExplosionEffect{
		X: 200, Y: 200,
		Duration: ExplosionDuration,
		Radius:   ExplosionBaseRadius,
		Particles: []Particle{
			{Glyph: 'x', X: 200, Y: 200, DirX: 1, Speed: 10, Size: 3, HitForce: 2, Active: true},
		},
		rng: NewRand(9),
	}
	fx.Update(0.05, arena, &index)

	if fx.Particles[0].Active {
		t.Fatal("particle survived a collision")
	}
	affected := 0
	for _, id := range []int{a, b} {
		if arena.Slot(id).Affected {
			affected++
		}
	}
	if affected != 1 {
		t.Fatalf("one particle affected %d symbols, want exactly 1", affected)
	}
}

func TestEffectDoneWaitsForTrails(t *testing.T) {
	fx := &ExplosionEffect{Start: 0, Duration: 1, rng: NewRand(1)}
	fx.Trails.Append(TrailSample{Birth: 0})

	if fx.Done(2) {
		t.Fatal("effect reported done with live trails")
	}
	fx.Trails.Purge(2, ParticleTrailLife, 64)
	if !fx.Done(2) {
		t.Fatal("effect not done after expiry with drained trails")
	}
}

func TestEffectDoneWhenAllParticlesSpent(t *testing.T) {
	fx := &ExplosionEffect{
		Start:     0,
		Duration:  ExplosionDuration,
		Particles: []Particle{{Active: false}, {Active: false}},
		rng:       NewRand(1),
	}
	if !fx.Done(0.5) {
		t.Fatal("effect with no active particles and no trails should be done")
	}
	fx.Particles[0].Active = true
	if fx.Done(0.5) {
		t.Fatal("effect with a live particle before expiry reported done")
	}
}

func TestExplosionRingLayout(t *testing.T) {
	r := NewRand(42)
	fx := NewExplosionEffect(100, 100, 0, 1.0, r)

	if len(fx.Particles) != ParticlesPerSize {
		t.Fatalf("%d particles at size factor 1, want %d", len(fx.Particles), ParticlesPerSize)
	}
	for i, p := range fx.Particles {
		if !p.Active {
			t.Errorf("particle %d spawned inactive", i)
		}
		if p.X != 100 || p.Y != 100 {
			t.Errorf("particle %d spawned off-origin at (%v,%v)", i, p.X, p.Y)
		}
		if l := math.Hypot(p.DirX, p.DirY); math.Abs(l-1) > 1e-9 {
			t.Errorf("particle %d direction not unit length: %v", i, l)
		}
		if p.Speed < ParticleSpeedMin || p.Speed > ParticleSpeedMax {
			t.Errorf("particle %d speed %v outside [%v,%v]", i, p.Speed, ParticleSpeedMin, ParticleSpeedMax)
		}
		if p.HitForce != p.Speed*HitForceScale {
			t.Errorf("particle %d hit force %v, want %v", i, p.HitForce, p.Speed*HitForceScale)
		}
	}
}

func TestProgressClamped(t *testing.T) {
	fx := &ExplosionEffect{Start: 10, Duration: 4.8}
	if got := fx.Progress(5); got != 0 {
		t.Errorf("progress before start = %v, want 0", got)
	}
	if got := fx.Progress(100); got != 1 {
		t.Errorf("progress long after expiry = %v, want 1", got)
	}
	mid := fx.Progress(12.4)
	if mid <= 0 || mid >= 1 {
		t.Errorf("mid progress %v not inside (0,1)", mid)
	}
}
