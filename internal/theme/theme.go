// Package theme holds the explicitly constructed configuration object for
// voice and caption defaults. It is built once at startup and passed by
// reference; there is no process-wide singleton, so tests stay hermetic.
package theme

import (
	"github.com/spf13/viper"

	"cosmicanimator/internal/narration"
	"cosmicanimator/internal/narration/tts"
)

// CaptionStyle tunes chunking, clamping and pacing of captions.
type CaptionStyle struct {
	WrapChars   int
	MaxLines    int
	CharsPerSec float64
	MinDuration float64
	MaxDuration float64
	Pace        float64
	Lead        float64
}

// Theme bundles the voice and caption defaults for one run.
type Theme struct {
	Voice   tts.Config
	Caption CaptionStyle
	FPS     float64
}

// FromViper assembles a Theme from the loaded configuration.
func FromViper() *Theme {
	return &Theme{
		Voice: tts.Config{
			Type:     viper.GetString("tts.type"),
			Voice:    viper.GetString("tts.voice"),
			Speed:    viper.GetFloat64("tts.speed"),
			Volume:   viper.GetFloat64("tts.volume"),
			CacheDir: viper.GetString("tts.cache_path"),
		},
		Caption: CaptionStyle{
			WrapChars:   viper.GetInt("caption.wrap_chars"),
			MaxLines:    viper.GetInt("caption.max_lines"),
			CharsPerSec: viper.GetFloat64("caption.chars_per_sec"),
			MinDuration: viper.GetFloat64("caption.min_duration"),
			MaxDuration: viper.GetFloat64("caption.max_duration"),
			Pace:        viper.GetFloat64("caption.pace"),
			Lead:        viper.GetFloat64("caption.lead"),
		},
		FPS: viper.GetFloat64("scene.fps"),
	}
}

// PolicyConfig maps the caption style onto the segmentation policy.
func (t *Theme) PolicyConfig() narration.PolicyConfig {
	return narration.PolicyConfig{
		WrapChars:   t.Caption.WrapChars,
		MaxLines:    t.Caption.MaxLines,
		CharsPerSec: t.Caption.CharsPerSec,
		MinDuration: t.Caption.MinDuration,
		MaxDuration: t.Caption.MaxDuration,
	}
}

// OverlayConfig maps the caption style onto the display overlay.
func (t *Theme) OverlayConfig() narration.OverlayConfig {
	return narration.OverlayConfig{
		WrapChars:   t.Caption.WrapChars,
		MinDuration: t.Caption.MinDuration,
		MaxDuration: t.Caption.MaxDuration,
		CharsPerSec: t.Caption.CharsPerSec,
	}
}

// ScheduleOptions maps the caption pacing onto schedule computation.
func (t *Theme) ScheduleOptions() narration.ScheduleOptions {
	opts := narration.DefaultScheduleOptions()
	if t.Caption.Pace > 0 {
		opts.Pace = t.Caption.Pace
	}
	if t.Caption.Lead > 0 {
		opts.Lead = t.Caption.Lead
	}
	return opts
}
