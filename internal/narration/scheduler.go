package narration

// Event carries one narration's text and timing into the scheduler. A zero
// Duration means the true audio length is not yet known and the policy
// falls back to reading-speed estimation.
type Event struct {
	Text      string
	StartTime float64
	Duration  float64
}

// Scheduler bridges a narration event to the overlay: chunk the text via
// the policy, fit durations, push the result. Schedule and Retime share the
// computation deliberately; the only difference between the provisional and
// the final pass is which Duration value is known.
type Scheduler struct {
	policy  *Policy
	overlay *Overlay
	opts    ScheduleOptions
}

func NewScheduler(policy *Policy, overlay *Overlay) *Scheduler {
	return &Scheduler{policy: policy, overlay: overlay, opts: DefaultScheduleOptions()}
}

// SetOptions replaces the pacing options applied to every schedule call.
func (s *Scheduler) SetOptions(opts ScheduleOptions) { s.opts = opts }

// Schedule computes chunks and durations for ev and installs them on the
// overlay. Returns the chunk list.
func (s *Scheduler) Schedule(ev Event) ([]string, error) {
	chunks := s.policy.Chunk(ev.Text)
	durations := s.policy.Durations(chunks, ev.Duration)
	if err := s.overlay.ScheduleChunks(chunks, durations, ev.StartTime, s.opts); err != nil {
		return nil, err
	}
	return chunks, nil
}

// Retime recomputes the schedule once the true duration is known. Chunk
// text is unchanged; only timing moves. No-op when the overlay has no
// active schedule, which happens when a very short provisional schedule
// already expired before the real duration arrived.
func (s *Scheduler) Retime(ev Event) error {
	if !s.overlay.Active() {
		return nil
	}
	chunks := s.policy.Chunk(ev.Text)
	durations := s.policy.Durations(chunks, ev.Duration)
	return s.overlay.ScheduleChunks(chunks, durations, ev.StartTime, s.opts)
}
