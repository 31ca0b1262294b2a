// Package player executes a compiled program against the scene clock. It
// owns the step loop: clear, narrate, allocate the narration window across
// the step's actions, advance through each action's phases, settle, close.
package player

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"cosmicanimator/internal/actions"
	"cosmicanimator/internal/generator"
	"cosmicanimator/internal/narration"
	"cosmicanimator/internal/narration/tts"
	"cosmicanimator/internal/stage"
	"cosmicanimator/internal/timing"
)

// clearWait is the short beat between steps while the previous step's
// groups leave the stage.
const clearWait = 0.10

// Report is what a full run produced: the caption cue track for SRT export
// and the synthesized clips in play order.
type Report struct {
	Cues  []stage.Cue
	Clips []tts.Clip
}

// Player drives a program. The recorder is optional; without one the run
// still plays but reports no cue track.
type Player struct {
	clock    stage.Advancer
	orch     *narration.Orchestra
	recorder *stage.CueRecorder
}

func New(clock stage.Advancer, orch *narration.Orchestra, recorder *stage.CueRecorder) *Player {
	return &Player{clock: clock, orch: orch, recorder: recorder}
}

// Run plays every step of prog in order. The narration window paces the
// step: each action gets its allocated slice, main phase before effect
// phase, and the narration scope is closed before the next step starts so
// speech never bleeds across steps.
func (p *Player) Run(ctx context.Context, prog *generator.Program) (*Report, error) {
	report := &Report{}

	for i, step := range prog.Steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if i > 0 {
			p.clock.Advance(clearWait)
		}

		n, err := p.orch.Narrate(ctx, step.Line)
		if err != nil {
			return report, fmt.Errorf("step %d: %w", i, err)
		}
		if n.Clip.Duration > 0 {
			report.Clips = append(report.Clips, n.Clip)
		}

		if len(step.Actions) > 0 {
			slices := timing.Alloc(n.Duration, len(step.Actions))
			for j, action := range step.Actions {
				p.playAction(i, j, action, slices[j])
			}
		}

		// Wait out whatever narration remains after the visuals.
		n.End()
	}

	if p.recorder != nil {
		report.Cues = p.recorder.Cues()
	}
	return report, nil
}

func (p *Player) playAction(step, idx int, action actions.Result, slice float64) {
	mainDur, fxDur := timing.SplitPhases(slice, len(action.Main) > 0, len(action.Effects) > 0)

	log := logrus.WithFields(logrus.Fields{
		"step":   step,
		"action": idx,
		"group":  action.Group,
	})

	if mainDur > 0 {
		for _, a := range action.Main {
			log.Debugf("main %s on %s", a.Name, a.Target)
		}
		p.clock.Advance(mainDur)
	}
	if fxDur > 0 {
		for _, a := range action.Effects {
			log.Debugf("effect %s on %s", a.Name, a.Target)
		}
		p.clock.Advance(fxDur)
	}
	if action.PostWait > 0 {
		p.clock.Advance(action.PostWait)
	}
}
