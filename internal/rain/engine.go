package rain

// EngineStats counts simulation events for diagnostics and rate checks.
type EngineStats struct {
	SymbolTicks uint64 // falling symbols that rolled the explosion dice
	Explosions  uint64
	Wraps       uint64
}

// Engine owns every simulation collection and is their sole mutator. One
// Tick advances the whole scene; the renderer only ever reads between
// ticks.
type Engine struct {
	cfg     Config
	rng     *Rand
	arena   *SymbolArena
	effects []*ExplosionEffect
	index   SymbolIndex
	bus     *EventBus

	now        float64
	spawnTimer float64
	target     int

	Stats EngineStats
}

// NewEngine seeds the arena to the target population, matching the effect's
// "full screen from the first frame" startup.
func NewEngine(cfg Config, seed uint64, bus *EventBus) *Engine {
	e := &Engine{
		cfg: cfg,
		rng: NewRand(seed),
		bus: bus,
	}
	e.target = cfg.clampPopulation()
	e.arena = NewSymbolArena(e.target)
	for i := 0; i < e.target; i++ {
		e.arena.Spawn(e.rng, cfg, 0)
	}
	return e
}

func (e *Engine) Arena() *SymbolArena         { return e.arena }
func (e *Engine) Effects() []*ExplosionEffect { return e.effects }
func (e *Engine) Now() float64                { return e.now }
func (e *Engine) Config() Config              { return e.cfg }

// Tick advances the simulation by dt seconds. When load reports suspended,
// falling motion and spawning freeze but trails keep aging and in-flight
// explosions keep resolving, so the scene settles instead of hard-freezing.
func (e *Engine) Tick(dt float64, load LoadState) {
	if dt <= 0 {
		return
	}
	e.now += dt

	if !load.Suspended {
		e.refill(dt)
		e.updateSymbols(dt)
	}

	e.updateEffects()
	e.purgeTrails()
}

// refill spawns one symbol per spawn interval while below the target
// population. Spawning at the ceiling is a no-op inside the arena.
func (e *Engine) refill(dt float64) {
	interval := e.cfg.spawnInterval()
	e.spawnTimer += dt
	for e.spawnTimer >= interval {
		e.spawnTimer -= interval
		if e.arena.Live() < e.target {
			e.arena.Spawn(e.rng, e.cfg, e.now)
		}
	}
}

func (e *Engine) updateSymbols(dt float64) {
	slots := e.arena.Slots()
	for i := range slots {
		s := &slots[i]
		if !s.Alive {
			continue
		}

		s.LastX = s.X
		s.LastY = s.Y

		// Marker square blink.
		s.squareTicks++
		if s.squareTicks >= SquareFlashTicks {
			s.squareTicks = 0
			s.SquareVisible = !s.SquareVisible
		}

		// Impact drift overrides falling until it damps out.
		if s.Affected {
			s.X += s.DriftX
			s.Y += s.DriftY
			s.DriftX *= DriftDamping
			s.DriftY *= DriftDamping
			if s.DriftX > -DriftEpsilon && s.DriftX < DriftEpsilon &&
				s.DriftY > -DriftEpsilon && s.DriftY < DriftEpsilon {
				s.Affected = false
				s.DriftX = 0
				s.DriftY = 0
			}
		} else {
			s.Y += s.Speed * FallPixelsPerSpeed * dt
		}

		// Stochastic glyph mutation.
		s.mutateTicks--
		if s.mutateTicks <= 0 {
			s.Glyph = RandomGlyph(e.rng)
			s.mutateTicks = e.rng.Range(GlyphMutateMinTicks, GlyphMutateMaxTicks)
		}

		// Shed a trail sample every couple of ticks, only on real movement.
		s.trailTicks++
		if s.trailTicks >= TrailEveryTicks {
			s.trailTicks = 0
			dx := s.X - s.LastX
			dy := s.Y - s.LastY
			if dx > TrailMinMove || dx < -TrailMinMove || dy > TrailMinMove || dy < -TrailMinMove {
				s.Trail.Append(TrailSample{
					X:      s.LastX,
					Y:      s.LastY,
					Glyph:  s.Glyph,
					ColIdx: s.ColIdx,
					Scale:  s.Size,
					Alpha:  speedBrightness(s.Speed) * TrailSpawnScale,
					Birth:  e.now,
				})
			}
		}

		// Symbols do not fall forever: past their allotted time they wrap
		// like any other bottom exit.
		if e.now-s.Birth > s.MaxFallTime {
			e.wrap(i)
			continue
		}

		switch s.State {
		case StateFalling:
			e.Stats.SymbolTicks++
			if e.rng.Chance(e.cfg.ExplosionChance) {
				s.State = StatePreExplode
				s.StateSince = e.now
				continue
			}
		case StatePreExplode:
			if e.now-s.StateSince >= PreExplodeDelay {
				e.detonate(i)
				continue
			}
		}

		if s.Y > e.cfg.ScreenH+OffscreenMargin ||
			s.X < -OffscreenMargin || s.X > e.cfg.ScreenW+OffscreenMargin {
			e.wrap(i)
		}
	}
}

func (e *Engine) wrap(id int) {
	e.arena.Recycle(id, e.rng, e.cfg, e.now)
	e.Stats.Wraps++
}

// detonate spawns the explosion effect at the symbol's position and frees
// its slot; the spawner grows the population back over time.
func (e *Engine) detonate(id int) {
	s := e.arena.Slot(id)
	s.State = StateExploding
	sizeFactor := e.rng.RangeF(ExplosionSizeMin, ExplosionSizeMax)
	e.effects = append(e.effects, NewExplosionEffect(s.X, s.Y, e.now, sizeFactor, e.rng))
	e.Stats.Explosions++
	e.bus.Emit(Event{Type: EventExplosion, X: s.X, Y: s.Y, Size: sizeFactor})
	e.arena.Release(id)
}

func (e *Engine) updateEffects() {
	if len(e.effects) == 0 {
		return
	}
	e.index.Build(e.arena, e.cfg)

	kept := e.effects[:0]
	for _, fx := range e.effects {
		fx.Update(e.now, e.arena, &e.index)
		if !fx.Done(e.now) {
			kept = append(kept, fx)
		}
	}
	for i := len(kept); i < len(e.effects); i++ {
		e.effects[i] = nil
	}
	e.effects = kept
}

func (e *Engine) purgeTrails() {
	slots := e.arena.Slots()
	for i := range slots {
		s := &slots[i]
		if !s.Alive {
			continue
		}
		s.Trail.Purge(e.now, e.cfg.TrailDuration, e.cfg.TrailBatchThreshold)
	}
}

// speedBrightness maps fall speed onto a base alpha factor: faster symbols
// draw brighter, mirroring the original's alpha-by-speed boost.
func speedBrightness(speed float64) float64 {
	return clampF(0.4+speed*0.1, 0.4, 1.0)
}
