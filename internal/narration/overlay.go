package narration

import (
	"fmt"

	"cosmicanimator/internal/stage"
)

// Schedule pacing defaults: durations are trimmed slightly below raw TTS
// timing and the first chunk leads the audio onset, both for perceived sync.
const (
	defaultPace = 0.92
	defaultLead = 0.14
)

// ScheduleOptions adjust how a chunk list is laid onto the scene clock.
type ScheduleOptions struct {
	// Offset shifts the whole schedule in seconds.
	Offset float64
	// Pace scales every duration. Values below 1 trim trailing silence.
	Pace float64
	// Lead pulls the schedule start earlier by this many seconds.
	Lead float64
}

func DefaultScheduleOptions() ScheduleOptions {
	return ScheduleOptions{Pace: defaultPace, Lead: defaultLead}
}

// OverlayConfig tunes display clamping. Zero values fall back to the policy
// defaults.
type OverlayConfig struct {
	WrapChars   int
	MinDuration float64
	MaxDuration float64
	CharsPerSec float64
}

type schedule struct {
	chunks []string
	cum    []float64 // len(chunks)+1 cumulative boundaries, cum[0] = 0
	start  float64   // absolute scene time of cum[0]
}

// Overlay owns the single active caption schedule and decides, per clock
// tick, which chunk is visible. It renders only on index transitions; the
// per-frame scan over the small cumulative list is deliberate (idempotent
// repeated ticks, no timer bookkeeping).
type Overlay struct {
	clock    stage.Clock
	renderer stage.CaptionRenderer

	wrapChars   int
	minDuration float64
	maxDuration float64
	charsPerSec float64

	sched      *schedule
	currentIdx int
	cancelTick func()
}

func NewOverlay(clock stage.Clock, renderer stage.CaptionRenderer, cfg OverlayConfig) *Overlay {
	o := &Overlay{
		clock:       clock,
		renderer:    renderer,
		wrapChars:   cfg.WrapChars,
		minDuration: cfg.MinDuration,
		maxDuration: cfg.MaxDuration,
		charsPerSec: cfg.CharsPerSec,
		currentIdx:  -1,
	}
	if o.wrapChars < 1 {
		o.wrapChars = defaultWrapChars
	}
	if o.charsPerSec <= 0 {
		o.charsPerSec = defaultCharsPerSec
	}
	if cfg.MinDuration == 0 && cfg.MaxDuration == 0 {
		o.minDuration = defaultMinDuration
		o.maxDuration = defaultMaxDuration
	}
	if o.maxDuration < o.minDuration {
		o.maxDuration = o.minDuration
	}
	return o
}

// Active reports whether a schedule is currently installed.
func (o *Overlay) Active() bool { return o.sched != nil }

// ScheduleChunks replaces the active schedule wholesale. A length mismatch
// or a negative duration is a caller programming error and fails
// immediately. Empty chunk lists clear the schedule.
func (o *Overlay) ScheduleChunks(chunks []string, durations []float64, startTime float64, opts ScheduleOptions) error {
	if len(chunks) == 0 {
		o.clearSchedule()
		return nil
	}
	if len(chunks) != len(durations) {
		return fmt.Errorf("overlay: %d chunks but %d durations", len(chunks), len(durations))
	}
	for i, d := range durations {
		if d < 0 {
			return fmt.Errorf("overlay: negative duration %v at chunk %d", d, i)
		}
	}

	pace := opts.Pace
	if pace <= 0 {
		pace = defaultPace
	}
	start := startTime - opts.Lead + opts.Offset

	var normChunks []string
	var normDur []float64
	for i, text := range chunks {
		text = normalizeSpace(text)
		if text == "" {
			continue
		}
		d := durations[i]
		if d <= 0 {
			d = float64(len([]rune(text))) / o.charsPerSec
		}
		normChunks = append(normChunks, text)
		normDur = append(normDur, o.clamp(d*pace))
	}

	cum := make([]float64, len(normChunks)+1)
	for i, d := range normDur {
		cum[i+1] = cum[i] + d
	}

	o.sched = &schedule{chunks: normChunks, cum: cum, start: start}
	if o.cancelTick == nil {
		o.cancelTick = o.clock.OnTick(o.tick)
	}
	return nil
}

// Stop clears the schedule and deregisters the tick callback. Idempotent.
func (o *Overlay) Stop() {
	o.clearSchedule()
	if o.cancelTick != nil {
		o.cancelTick()
		o.cancelTick = nil
	}
}

func (o *Overlay) clearSchedule() {
	if o.sched != nil {
		o.renderer.Clear()
	}
	o.sched = nil
	o.currentIdx = -1
}

// Boundaries returns the cumulative time boundaries of the active schedule.
func (o *Overlay) Boundaries() []float64 {
	if o.sched == nil {
		return nil
	}
	out := make([]float64, len(o.sched.cum))
	copy(out, o.sched.cum)
	return out
}

func (o *Overlay) clamp(d float64) float64 {
	if d < o.minDuration {
		return o.minDuration
	}
	if d > o.maxDuration {
		return o.maxDuration
	}
	return d
}

// tick is the per-frame handler. It selects the chunk whose window contains
// the current relative time and renders only on transitions; once the
// schedule has fully elapsed it auto-stops.
func (o *Overlay) tick() {
	sch := o.sched
	if sch == nil {
		return
	}
	t := o.clock.Now() - sch.start
	if t < 0 {
		return // lead pulled the start ahead of the clock
	}
	if t >= sch.cum[len(sch.cum)-1] {
		o.Stop()
		return
	}
	idx := -1
	for i := range sch.chunks {
		if sch.cum[i] <= t && t < sch.cum[i+1] {
			idx = i
			break
		}
	}
	if idx != o.currentIdx {
		o.currentIdx = idx
		if idx >= 0 && idx < len(sch.chunks) {
			o.renderer.Show(wrapLines(sch.chunks[idx], o.wrapChars))
		}
	}
}
