package narration

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"cosmicanimator/internal/narration/tts"
	"cosmicanimator/internal/stage"
)

// Speaker is the TTS boundary the orchestra drives. The clip's duration is
// only meaningful after Synthesize returns; it may be 0 for silent or
// failed synthesis, which is treated as still-unknown, not as an error.
type Speaker interface {
	Synthesize(ctx context.Context, text string) (tts.Clip, error)
}

// Orchestra is the only place that turns narration text into both
// synthesized speech and synchronized captions. It runs a strict two-phase
// protocol: schedule captions provisionally with estimated pacing the
// moment narration starts, then retime them with the true audio duration
// once synthesis completes. Preview stays usable while TTS is slow, and
// final timing is duration-accurate.
type Orchestra struct {
	clock     stage.Advancer
	speaker   Speaker
	scheduler *Scheduler
	subtitles bool
}

func NewOrchestra(clock stage.Advancer, speaker Speaker, scheduler *Scheduler) *Orchestra {
	return &Orchestra{
		clock:     clock,
		speaker:   speaker,
		scheduler: scheduler,
		subtitles: true,
	}
}

// EnableSubtitles toggles captioning for subsequent narrations.
func (o *Orchestra) EnableSubtitles(on bool) { o.subtitles = on }

// Option adjusts a single narration call.
type Option func(*narrateOptions)

type narrateOptions struct {
	subtitles *bool
}

// WithSubtitles overrides the orchestra-wide caption setting for one call.
func WithSubtitles(on bool) Option {
	return func(n *narrateOptions) { n.subtitles = &on }
}

// Narration is one open narration scope. The caller interleaves its own
// animation work against Duration, then calls End to close the scope.
type Narration struct {
	Text      string
	StartTime float64
	Duration  float64
	Clip      tts.Clip

	clock stage.Advancer
	ended bool
}

// End advances the scene clock to the end of the narration window, so the
// next step cannot start while speech is still playing. Idempotent; a
// no-op when interleaved animations already consumed the window.
func (n *Narration) End() {
	if n.ended {
		return
	}
	n.ended = true
	if n.clock == nil {
		return
	}
	end := n.StartTime + n.Duration
	if now := n.clock.Now(); end > now {
		n.clock.Advance(end - now)
	}
}

// Narrate opens a narration scope for text: provisional captions, blocking
// synthesis, retimed captions, then hands the open scope to the caller.
// Empty text yields a closed zero-duration scope with no TTS call and no
// schedule.
func (o *Orchestra) Narrate(ctx context.Context, text string, opts ...Option) (*Narration, error) {
	var no narrateOptions
	for _, opt := range opts {
		opt(&no)
	}

	text = normalizeSpace(text)
	if text == "" {
		return &Narration{ended: true}, nil
	}

	startTime := o.clock.Now()
	wantSubs := o.subtitles
	if no.subtitles != nil {
		wantSubs = *no.subtitles
	}

	// Phase one: estimated pacing so something is on screen before the
	// synthesizer comes back.
	if wantSubs {
		if _, err := o.scheduler.Schedule(Event{Text: text, StartTime: startTime}); err != nil {
			return nil, fmt.Errorf("provisional caption schedule: %w", err)
		}
	}

	clip, err := o.speaker.Synthesize(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("narration synthesis: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"start":    startTime,
		"duration": clip.Duration,
	}).Debugf("narrated %q", text)

	// Phase two: ground truth.
	if wantSubs {
		if err := o.scheduler.Retime(Event{Text: text, StartTime: startTime, Duration: clip.Duration}); err != nil {
			return nil, fmt.Errorf("caption retime: %w", err)
		}
	}

	return &Narration{
		Text:      text,
		StartTime: startTime,
		Duration:  clip.Duration,
		Clip:      clip,
		clock:     o.clock,
	}, nil
}

// Say is the one-shot form: narrate and wait out the whole narration
// window before returning. Returns the narration duration.
func (o *Orchestra) Say(ctx context.Context, text string, opts ...Option) (float64, error) {
	n, err := o.Narrate(ctx, text, opts...)
	if err != nil {
		return 0, err
	}
	n.End()
	return n.Duration, nil
}
