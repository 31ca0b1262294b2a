// Package tts synthesizes narration audio. Every engine yields a Clip with
// a measured duration, because caption retiming depends on ground-truth
// audio length. A zero duration is tolerated upstream and treated as
// "still unknown", never as an error.
package tts

import "context"

// Clip is one synthesized narration line.
type Clip struct {
	// Path to the audio file. Empty for engines that produce no audio
	// (mock, dry runs).
	Path string
	// Duration in seconds. 0 means unknown.
	Duration float64
}

// Config selects and tunes an engine.
type Config struct {
	Type     string  // mock, espeak, google, auto
	Voice    string
	Speed    float64 // 1.0 = engine default rate
	Volume   float64
	CacheDir string
}

// Synthesizer turns text into an audio clip with a known duration.
type Synthesizer interface {
	Name() string
	Synthesize(ctx context.Context, text string) (Clip, error)
	Voices() ([]string, error)
}
