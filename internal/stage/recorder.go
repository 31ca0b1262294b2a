package stage

// Cue is one displayed caption with its absolute scene-time window.
type Cue struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// CueRecorder captures the caption transitions the overlay emits during a
// headless run, producing the cue track the render step turns into an SRT
// file. It timestamps against the same clock the overlay schedules on.
type CueRecorder struct {
	clock Clock
	cues  []Cue
	open  bool
}

func NewCueRecorder(clock Clock) *CueRecorder {
	return &CueRecorder{clock: clock}
}

func (r *CueRecorder) Show(text string) {
	now := r.clock.Now()
	r.closeOpen(now)
	r.cues = append(r.cues, Cue{Text: text, Start: now, End: -1})
	r.open = true
}

func (r *CueRecorder) Clear() {
	r.closeOpen(r.clock.Now())
}

// Cues finalizes any still-open cue and returns the recorded track.
func (r *CueRecorder) Cues() []Cue {
	r.closeOpen(r.clock.Now())
	return r.cues
}

func (r *CueRecorder) closeOpen(at float64) {
	if !r.open {
		return
	}
	last := &r.cues[len(r.cues)-1]
	if last.End < 0 {
		last.End = at
	}
	r.open = false
}
