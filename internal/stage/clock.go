// Package stage holds the host-engine boundary: the scene clock the caption
// overlay ticks against, the caption display primitive, and the opaque
// animation unit the player schedules.
package stage

import "time"

// Clock is a monotonic scene time source. Now returns seconds since scene
// start; OnTick registers a per-frame callback and returns its cancel
// function. Ticks arrive in non-decreasing time order.
type Clock interface {
	Now() float64
	OnTick(fn func()) (cancel func())
}

// Advancer is a Clock whose time the caller drives forward.
type Advancer interface {
	Clock
	Advance(dt float64)
}

// SceneClock is a deterministic frame-stepped clock. Advance moves time in
// 1/fps increments, firing every registered tick callback after each frame.
// Single-threaded by design: the player and the overlay run cooperatively
// on the caller's goroutine.
type SceneClock struct {
	fps      float64
	now      float64
	realtime bool

	nextID int
	ticks  map[int]func()
}

func NewSceneClock(fps float64) *SceneClock {
	if fps <= 0 {
		fps = 30
	}
	return &SceneClock{fps: fps, ticks: make(map[int]func())}
}

// SetRealtime makes Advance sleep one frame interval per step, pacing
// playback against wall time for live preview.
func (c *SceneClock) SetRealtime(on bool) { c.realtime = on }

func (c *SceneClock) FPS() float64 { return c.fps }

func (c *SceneClock) Now() float64 { return c.now }

func (c *SceneClock) OnTick(fn func()) (cancel func()) {
	id := c.nextID
	c.nextID++
	c.ticks[id] = fn
	return func() { delete(c.ticks, id) }
}

// Advance steps the clock forward by dt seconds, one frame at a time. A
// trailing partial frame is applied as-is so Now lands exactly on now+dt.
func (c *SceneClock) Advance(dt float64) {
	if dt <= 0 {
		c.fire()
		return
	}
	frame := 1.0 / c.fps
	remaining := dt
	for remaining > 0 {
		step := frame
		if remaining < frame {
			step = remaining
		}
		c.now += step
		remaining -= step
		if c.realtime {
			time.Sleep(time.Duration(step * float64(time.Second)))
		}
		c.fire()
	}
}

func (c *SceneClock) fire() {
	for _, fn := range c.ticks {
		fn()
	}
}
