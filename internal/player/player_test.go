package player

import (
	"context"
	"math"
	"testing"

	"cosmicanimator/internal/actions"
	"cosmicanimator/internal/generator"
	"cosmicanimator/internal/narration"
	"cosmicanimator/internal/narration/tts"
	"cosmicanimator/internal/scenario"
	"cosmicanimator/internal/stage"
)

type fixedSpeaker struct {
	duration float64
	calls    int
}

func (s *fixedSpeaker) Synthesize(_ context.Context, text string) (tts.Clip, error) {
	s.calls++
	return tts.Clip{Path: "clip.wav", Duration: s.duration}, nil
}

func newPlayerFixture(dur float64) (*Player, *stage.SceneClock, *fixedSpeaker) {
	clock := stage.NewSceneClock(30)
	recorder := stage.NewCueRecorder(clock)
	overlay := narration.NewOverlay(clock, recorder, narration.OverlayConfig{MinDuration: 0.6, MaxDuration: 3.8})
	sched := narration.NewScheduler(narration.NewPolicy(narration.PolicyConfig{}), overlay)
	sched.SetOptions(narration.ScheduleOptions{Pace: 1.0, Lead: 0})
	speaker := &fixedSpeaker{duration: dur}
	orch := narration.NewOrchestra(clock, speaker, sched)
	return New(clock, orch, recorder), clock, speaker
}

func compile(t *testing.T, src string) *generator.Program {
	t.Helper()
	sc, err := scenario.Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	prog, err := generator.Compile(sc, actions.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}
	return prog
}

func TestRunPacesStepByNarration(t *testing.T) {
	p, clock, speaker := newPlayerFixture(2.0)
	prog := compile(t, `[
		{"line": "Step one. Step two.", "action": "layout_boxes", "args": {"labels": ["a", "b"]}}
	]`)

	report, err := p.Run(context.Background(), prog)
	if err != nil {
		t.Fatal(err)
	}
	if speaker.calls != 1 {
		t.Errorf("TTS calls = %d, want 1", speaker.calls)
	}
	// The single action consumes the full 2.0s window plus its settle wait.
	if want := 2.0 + 0.15; math.Abs(clock.Now()-want) > 1e-6 {
		t.Errorf("clock = %v, want %v", clock.Now(), want)
	}
	if len(report.Clips) != 1 {
		t.Errorf("clips = %d, want 1", len(report.Clips))
	}
	// Both caption chunks were displayed and closed while the clock ran.
	if len(report.Cues) != 2 {
		t.Fatalf("cues = %+v, want 2", report.Cues)
	}
	if report.Cues[0].End <= report.Cues[0].Start || report.Cues[1].End <= report.Cues[1].Start {
		t.Errorf("cue windows not closed: %+v", report.Cues)
	}
}

func TestRunSilentStepGetsFloorTime(t *testing.T) {
	p, clock, speaker := newPlayerFixture(0)
	prog := compile(t, `[
		{"action": "pulse", "args": {"target": "boxes_0"}}
	]`)

	if _, err := p.Run(context.Background(), prog); err != nil {
		t.Fatal(err)
	}
	if speaker.calls != 0 {
		t.Errorf("TTS called for a step with no line")
	}
	// No narration, so the action still gets the allocator floor.
	if clock.Now() < 0.12-1e-9 {
		t.Errorf("clock = %v, want at least the floor slice", clock.Now())
	}
}

func TestRunInsertsClearBeatBetweenSteps(t *testing.T) {
	p, clock, _ := newPlayerFixture(1.0)
	prog := compile(t, `[
		{"line": "First."},
		{"line": "Second."}
	]`)

	if _, err := p.Run(context.Background(), prog); err != nil {
		t.Fatal(err)
	}
	// Two 1.0s narration windows plus one clear beat between them.
	if want := 2.0 + 0.10; math.Abs(clock.Now()-want) > 1e-6 {
		t.Errorf("clock = %v, want %v", clock.Now(), want)
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	p, _, speaker := newPlayerFixture(1.0)
	prog := compile(t, `[{"line": "Never spoken."}]`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Run(ctx, prog); err == nil {
		t.Fatal("cancelled context should stop the run")
	}
	if speaker.calls != 0 {
		t.Errorf("TTS called after cancellation")
	}
}
