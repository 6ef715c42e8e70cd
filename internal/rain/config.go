package rain

import "time"

// Tick cadence. 20 Hz gives the stuttery Matrix feel; dt still drives all
// motion so slow frames do not slow the rain down.
const (
	TickHz       = 20
	TickInterval = time.Second / TickHz
)

// Symbol population.
const (
	DefaultMaxSymbols = 600
	HardMaxSymbols    = 1200
	SpawnYMin         = -20.0
	SpawnYMax         = 0.0
	SpeedMin          = 1.0
	SpeedMax          = 5.0
	// Fall advance is speed*2 px per 20 Hz tick, expressed time-based.
	FallPixelsPerSpeed = 40.0
	SizeMin            = 8.0
	SizeMax            = 12.0
	LeadChance         = 0.15
	OffscreenMargin    = 20.0
)

// Per-symbol tick behavior.
const (
	GlyphMutateMinTicks = 5
	GlyphMutateMaxTicks = 20
	TrailEveryTicks     = 2
	TrailMinMove        = 0.5
	SquareFlashTicks    = 5
	MaxFallTimeMin      = 10.0
	MaxFallTimeMax      = 30.0
	DriftDamping        = 0.95
	DriftEpsilon        = 0.1
)

// Trails.
const (
	TrailAlphaScale   = 0.56 // extra transparency on top of age fade
	SymbolAlphaScale  = 0.6
	TrailSpawnScale   = 0.6 // trail alpha relative to its symbol
	ParticleTrailLife = 1.2
)

// Explosions.
const (
	PreExplodeDelay      = 3.0
	ExplosionDuration    = 4.8
	ExplosionSizeMin     = 0.5
	ExplosionSizeMax     = 2.5
	ExplosionBaseRadius  = 75.0
	ParticlesPerSize     = 20
	ParticleSpeedMin     = 10.0
	ParticleSpeedMax     = 25.0
	ParticleSizeMin      = 2.0
	ParticleSizeMax      = 5.0
	ParticleVelScale     = 0.5 // original halves particle velocity
	ParticleAngleJitter  = 0.2
	ParticleTrailChance  = 0.4
	HitForceScale        = 0.2
	MinSeparationSq      = 0.001
	CollisionReachFactor = 2.0 // neighborhood half-extent = radius * factor
)

// Spatial index.
const (
	QuadCapacity = 16
	QuadMaxDepth = 8
)

// Frame budget diagnostics.
const (
	FrameBudget = 50 * time.Millisecond
	FrameWindow = 60
)

// Glyph atlas layout (basicfont.Face7x13, ASCII 32-126, 32 cols x 3 rows).
const (
	FontCellW  = 7
	FontCellH  = 13
	FontCols   = 32
	FontRows   = 3
	FontAtlasW = FontCellW * FontCols
	FontAtlasH = FontCellH * FontRows
	FontFirst  = 32
	FontLast   = 126
)

// Rendering.
const (
	BackgroundAlpha = 0.42 // dim translucent backdrop behind the rain
	MaxGlyphRender  = 40000
	GlyphPxPerSize  = 2.0 // screen pixel height = size * GlyphPxPerSize
)

// Config holds the tunables the simulation is parameterized on. The
// explosion probability and suspend thresholds varied across revisions of
// the effect, so they are data here rather than constants.
type Config struct {
	ScreenW, ScreenH float64

	MaxSymbols    int
	SpawnInterval float64 // seconds between refill spawns

	TrailDuration       float64
	TrailBatchThreshold int

	ExplosionChance float64 // per symbol per tick

	SuspendHigh        float64 // utilization % that suspends
	ResumeLow          float64 // utilization % that resumes
	SampleInterval     time.Duration
	FullscreenInterval time.Duration

	ThemeInterval float64 // seconds between theme advances
}

// DefaultConfig returns the production tuning for a given screen size.
func DefaultConfig(screenW, screenH float64) Config {
	return Config{
		ScreenW:             screenW,
		ScreenH:             screenH,
		MaxSymbols:          DefaultMaxSymbols,
		SpawnInterval:       2.0,
		TrailDuration:       30.0,
		TrailBatchThreshold: 100,
		ExplosionChance:     0.000003,
		SuspendHigh:         75.0,
		ResumeLow:           25.0,
		SampleInterval:      2 * time.Second,
		FullscreenInterval:  5 * time.Second,
		ThemeInterval:       10.0,
	}
}

// spawnInterval guards the refill cadence against a non-positive setting,
// which would otherwise drain the spawn accumulator forever.
func (c Config) spawnInterval() float64 {
	if c.SpawnInterval <= 0 {
		return 2.0
	}
	return c.SpawnInterval
}

// clampPopulation keeps the configured population inside the hard ceiling.
func (c Config) clampPopulation() int {
	n := c.MaxSymbols
	if n <= 0 {
		n = DefaultMaxSymbols
	}
	if n > HardMaxSymbols {
		n = HardMaxSymbols
	}
	return n
}
