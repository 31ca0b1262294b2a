package tts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// probeWAV returns the duration of a WAV file in seconds.
func probeWAV(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return 0, err
	}
	defer streamer.Close()
	return format.SampleRate.D(streamer.Len()).Seconds(), nil
}

// probeMP3 returns the duration of an MP3 file in seconds.
func probeMP3(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		return 0, err
	}
	defer streamer.Close()
	return format.SampleRate.D(streamer.Len()).Seconds(), nil
}

// Play starts clip playback on the default speaker and returns without
// waiting; the scene clock paces the preview, not the audio device.
// Clips with no file (mock engine) are silently skipped.
func Play(clip Clip) error {
	if clip.Path == "" {
		return nil
	}
	f, err := os.Open(clip.Path)
	if err != nil {
		return fmt.Errorf("failed to open clip %s: %w", clip.Path, err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(clip.Path)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		f.Close()
		return fmt.Errorf("unsupported clip format: %s", clip.Path)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to decode %s: %w", clip.Path, err)
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		streamer.Close()
		return err
	}
	speaker.Play(beep.Seq(streamer, beep.Callback(func() {
		streamer.Close()
	})))
	return nil
}
