package rain

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Run owns the whole desktop lifecycle: window, GL, audio, the load
// sampling goroutine, and the fixed-step simulation loop. It blocks until
// the window closes.
func Run() {
	runtime.LockOSThread()

	window, screenW, screenH, err := initWindow()
	if err != nil {
		panic(err)
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		panic(fmt.Errorf("gl init: %w", err))
	}

	if err := InitAudio(); err != nil {
		fmt.Fprintf(os.Stderr, "audio init failed (continuing without sound): %v\n", err)
	}

	// Seed from environment or clock.
	seed := uint64(time.Now().UnixNano())
	if s := os.Getenv("MATRIX_SEED"); s != "" {
		if v, err := strconv.ParseUint(s, 10, 64); err == nil {
			seed = v
		}
	}

	cfg := DefaultConfig(float64(screenW), float64(screenH))

	bus := NewEventBus()
	bus.Subscribe(EventExplosion, func(e Event) {
		PlayExplosionSound(e.Size)
	})
	bus.Subscribe(EventSuspendChanged, func(e Event) {
		if e.On {
			log.Printf("load: suspending rain at %.0f%% cpu", e.X)
		} else {
			log.Printf("load: resuming rain at %.0f%% cpu", e.X)
		}
	})
	bus.Subscribe(EventThemeChanged, func(e Event) {
		log.Printf("theme: switched to %s", Themes[e.Idx].Name)
	})

	engine := NewEngine(cfg, seed, bus)
	themes := NewThemeController(Themes, cfg.ThemeInterval, 0)

	loads := NewLoadController(&CPUSampler{}, newFullscreenDetector(), cfg.SuspendHigh, cfg.ResumeLow)
	stop := make(chan struct{})
	defer close(stop)
	go loads.Run(cfg.SampleInterval, cfg.FullscreenInterval, stop)

	rend, err := NewRenderer()
	if err != nil {
		panic(fmt.Errorf("renderer: %w", err))
	}
	defer rend.Destroy()

	var scene Scene
	lastSuspended := false

	last := glfw.GetTime()
	var acc float64
	for !window.ShouldClose() {
		frameStart := time.Now()

		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > 0.1 {
			dt = 0.1
		}

		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}

		load := loads.State()
		if load.Suspended != lastSuspended {
			lastSuspended = load.Suspended
			bus.Emit(Event{Type: EventSuspendChanged, On: load.Suspended, X: load.Utilization})
		}

		// Fixed-step simulation; rendering runs every frame regardless.
		acc += dt
		for acc >= TickInterval.Seconds() {
			acc -= TickInterval.Seconds()
			if themes.Advance(engine.Now()) {
				bus.Emit(Event{Type: EventThemeChanged, Idx: themes.Index()})
			}
			engine.Tick(TickInterval.Seconds(), load)
		}

		scene.Build(engine, themes.Active())
		rend.Draw(&scene, fbW, fbH)
		window.SwapBuffers()

		rend.ObserveFrame(time.Since(frameStart), len(scene.Glyphs))
	}
}
