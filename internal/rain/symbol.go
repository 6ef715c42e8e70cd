package rain

// SymbolState tracks where a falling symbol is in its explosion lifecycle.
type SymbolState uint8

const (
	StateFalling    SymbolState = iota
	StatePreExplode // rigged: pulsing white until the delay runs out
	StateExploding  // set the tick the effect spawns; slot is freed
)

// FallingSymbol is one animated rain glyph. Position is in screen pixels;
// y grows downward and is monotonically non-decreasing while falling
// undisturbed.
type FallingSymbol struct {
	X, Y         float64
	LastX, LastY float64
	Speed        float64
	Size         float64
	Glyph        rune
	ColIdx       int
	Lead         bool

	State      SymbolState
	StateSince float64

	DriftX, DriftY float64
	Affected       bool // explosion impulse in effect

	SquareVisible bool
	squareTicks   int

	Birth       float64
	MaxFallTime float64
	Wraps       int

	mutateTicks int
	trailTicks  int

	Alive bool
	Trail TrailBuffer
}

// SymbolArena is a fixed-capacity slot store with a free list. Spawning
// reuses slots (and their trail storage) instead of allocating; spawning at
// capacity is a no-op.
type SymbolArena struct {
	slots []FallingSymbol
	free  []int
	live  int
}

func NewSymbolArena(capacity int) *SymbolArena {
	if capacity <= 0 {
		capacity = DefaultMaxSymbols
	}
	if capacity > HardMaxSymbols {
		capacity = HardMaxSymbols
	}
	a := &SymbolArena{
		slots: make([]FallingSymbol, capacity),
		free:  make([]int, 0, capacity),
	}
	for i := capacity - 1; i >= 0; i-- {
		a.free = append(a.free, i)
	}
	return a
}

func (a *SymbolArena) Cap() int  { return len(a.slots) }
func (a *SymbolArena) Live() int { return a.live }

// Slot returns the symbol at id. Callers must check Alive.
func (a *SymbolArena) Slot(id int) *FallingSymbol { return &a.slots[id] }

// Slots exposes the backing array for index-based update loops.
func (a *SymbolArena) Slots() []FallingSymbol { return a.slots }

// Spawn takes a free slot and initializes it as a fresh top-of-screen
// symbol. Returns the slot id, or -1 when the arena is full.
func (a *SymbolArena) Spawn(r *Rand, cfg Config, now float64) int {
	if len(a.free) == 0 {
		return -1
	}
	id := a.free[len(a.free)-1]
	a.free = a.free[:len(a.free)-1]
	a.live++

	s := &a.slots[id]
	s.Trail.Clear()
	resetSymbol(s, r, cfg, now)
	s.Alive = true
	s.Wraps = 0
	return id
}

// Recycle re-rolls a live symbol in place: new top position, speed, glyph,
// colour. The trail is cleared, not reallocated.
func (a *SymbolArena) Recycle(id int, r *Rand, cfg Config, now float64) {
	s := &a.slots[id]
	s.Trail.Clear()
	resetSymbol(s, r, cfg, now)
	s.Wraps++
}

// Release frees a slot (symbol exploded). The spawner refills later.
func (a *SymbolArena) Release(id int) {
	s := &a.slots[id]
	if !s.Alive {
		return
	}
	s.Alive = false
	s.Trail.Clear()
	a.free = append(a.free, id)
	a.live--
}

func resetSymbol(s *FallingSymbol, r *Rand, cfg Config, now float64) {
	s.X = r.RangeF(0, cfg.ScreenW)
	s.Y = r.RangeF(SpawnYMin, SpawnYMax)
	s.LastX = s.X
	s.LastY = s.Y
	s.Speed = r.RangeF(SpeedMin, SpeedMax)
	s.Size = r.RangeF(SizeMin, SizeMax)
	s.Glyph = RandomGlyph(r)
	s.ColIdx = r.Intn(5)
	s.Lead = r.Chance(LeadChance)

	s.State = StateFalling
	s.StateSince = now

	s.DriftX = 0
	s.DriftY = 0
	s.Affected = false

	s.SquareVisible = true
	s.squareTicks = 0

	s.Birth = now
	s.MaxFallTime = r.RangeF(MaxFallTimeMin, MaxFallTimeMax)

	s.mutateTicks = r.Range(GlyphMutateMinTicks, GlyphMutateMaxTicks)
	s.trailTicks = 0
}
