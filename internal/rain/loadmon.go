package rain

import (
	"log"
	"sync/atomic"
	"time"
)

// LoadState is the single value the load controller publishes: the latest
// utilization sample and the resulting run/suspend decision. The engine
// reads it once at the start of each tick.
type LoadState struct {
	Utilization float64
	Suspended   bool
}

// Sampler supplies instantaneous system CPU utilization in percent [0,100].
type Sampler interface {
	SampleUtilization() (float64, error)
}

// FullscreenDetector reports whether a foreground fullscreen application is
// active. Platforms without the capability use UnsupportedFullscreen.
type FullscreenDetector interface {
	FullscreenActive() (bool, error)
}

// UnsupportedFullscreen is the always-false detector for platforms where
// foreground-window inspection is not available.
type UnsupportedFullscreen struct{}

func (UnsupportedFullscreen) FullscreenActive() (bool, error) { return false, nil }

// LoadController owns the suspend decision. CPU gating uses a hysteresis
// dead-band: suspend above the high threshold, resume only below the low
// one; samples in between leave the state alone, so a reading hovering
// around a single boundary cannot flap the display. A detected fullscreen
// app forces suspension independently of CPU state.
type LoadController struct {
	sampler    Sampler
	fullscreen FullscreenDetector
	high, low  float64

	cpuSuspended bool
	fsActive     bool
	lastUtil     float64

	state atomic.Pointer[LoadState]
}

func NewLoadController(sampler Sampler, fullscreen FullscreenDetector, high, low float64) *LoadController {
	if fullscreen == nil {
		fullscreen = UnsupportedFullscreen{}
	}
	if low > high {
		high, low = low, high
	}
	c := &LoadController{
		sampler:    sampler,
		fullscreen: fullscreen,
		high:       high,
		low:        low,
	}
	c.publish()
	return c
}

// State returns the latest published value.
func (c *LoadController) State() LoadState {
	return *c.state.Load()
}

// Observe applies one utilization sample through the dead-band and
// publishes the result.
func (c *LoadController) Observe(util float64) LoadState {
	c.lastUtil = util
	switch {
	case util > c.high:
		c.cpuSuspended = true
	case util < c.low:
		c.cpuSuspended = false
	}
	// Between the thresholds: hold.
	return c.publish()
}

// ObserveFullscreen applies a fullscreen probe result and publishes.
func (c *LoadController) ObserveFullscreen(active bool) LoadState {
	c.fsActive = active
	return c.publish()
}

func (c *LoadController) publish() LoadState {
	st := LoadState{
		Utilization: c.lastUtil,
		Suspended:   c.cpuSuspended || c.fsActive,
	}
	c.state.Store(&st)
	return st
}

// sampleOnce polls the CPU sampler. Sampling errors are neutral: the state
// holds, and suspension is never entered on an error alone.
func (c *LoadController) sampleOnce() {
	util, err := c.sampler.SampleUtilization()
	if err != nil {
		log.Printf("load: cpu sample unavailable: %v", err)
		return
	}
	c.Observe(util)
}

func (c *LoadController) probeFullscreen() {
	active, err := c.fullscreen.FullscreenActive()
	if err != nil {
		log.Printf("load: fullscreen probe unavailable: %v", err)
		return
	}
	c.ObserveFullscreen(active)
}

// Run samples on its own cadence until stop is closed. It is the single
// writer of the published state; readers only ever see whole values.
func (c *LoadController) Run(sampleEvery, fullscreenEvery time.Duration, stop <-chan struct{}) {
	if sampleEvery <= 0 {
		sampleEvery = 2 * time.Second
	}
	if fullscreenEvery <= 0 {
		fullscreenEvery = 5 * time.Second
	}
	ticker := time.NewTicker(sampleEvery)
	defer ticker.Stop()

	lastProbe := time.Now()
	c.sampleOnce()
	c.probeFullscreen()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			c.sampleOnce()
			if now.Sub(lastProbe) >= fullscreenEvery {
				lastProbe = now
				c.probeFullscreen()
			}
		}
	}
}
