// Package render turns a finished run into deliverables: the SRT caption
// track and a shell-out to the external rendering engine.
package render

import (
	"fmt"
	"os"
	"strings"

	"cosmicanimator/internal/stage"
)

// WriteSRT writes the cue track as a standard SRT file. Cues with empty
// text or non-positive windows are skipped rather than emitted broken.
func WriteSRT(cues []stage.Cue, path string) error {
	var b strings.Builder
	idx := 1
	for _, cue := range cues {
		text := strings.TrimSpace(cue.Text)
		if text == "" || cue.End <= cue.Start {
			continue
		}
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n", idx, srtTime(cue.Start), srtTime(cue.End), text)
		idx++
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write subtitles: %w", err)
	}
	return nil
}

// srtTime formats seconds as HH:MM:SS,mmm.
func srtTime(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	ms := int(sec*1000 + 0.5)
	h := ms / 3600000
	ms -= h * 3600000
	m := ms / 60000
	ms -= m * 60000
	s := ms / 1000
	ms -= s * 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}
