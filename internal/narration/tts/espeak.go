// Cross-platform eSpeak/eSpeak-NG engine.
package tts

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// ESpeakEngine synthesizes to a WAV file with `espeak -w` and probes the
// file for its true duration.
type ESpeakEngine struct {
	config Config
	outDir string
}

func newESpeakEngine(config Config) (*ESpeakEngine, error) {
	path, err := findESpeakExecutable()
	if err != nil {
		return nil, fmt.Errorf("eSpeak not found: %w", err)
	}
	if err := exec.Command(path, "--version").Run(); err != nil {
		return nil, fmt.Errorf("eSpeak test failed: %w", err)
	}

	outDir := config.CacheDir
	if outDir == "" {
		outDir = filepath.Join(os.TempDir(), "cosmicanimator")
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create audio dir: %w", err)
	}

	return &ESpeakEngine{config: config, outDir: outDir}, nil
}

func (e *ESpeakEngine) Name() string { return EngineTypeESpeak.String() }

func (e *ESpeakEngine) Synthesize(ctx context.Context, text string) (Clip, error) {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return Clip{}, nil
	}

	espeakPath, err := findESpeakExecutable()
	if err != nil {
		return Clip{}, err
	}

	outPath := filepath.Join(e.outDir, fmt.Sprintf("espeak_%s.wav", contentKey(text+e.config.Voice)))

	args := []string{}
	if e.config.Voice != "" && e.config.Voice != "default" {
		args = append(args, "-v", e.config.Voice)
	}
	// Words per minute; espeak default is 175.
	speed := e.config.Speed
	if speed <= 0 {
		speed = 1.0
	}
	args = append(args, "-s", strconv.Itoa(int(175*speed)))
	if e.config.Volume > 0 {
		args = append(args, "-a", strconv.Itoa(int(100*e.config.Volume)))
	}
	args = append(args, "-w", outPath, text)

	if err := exec.CommandContext(ctx, espeakPath, args...).Run(); err != nil {
		return Clip{}, fmt.Errorf("espeak synthesis failed: %w", err)
	}

	dur, err := probeWAV(outPath)
	if err != nil {
		return Clip{}, fmt.Errorf("failed to probe %s: %w", outPath, err)
	}
	return Clip{Path: outPath, Duration: dur}, nil
}

func (e *ESpeakEngine) Voices() ([]string, error) {
	espeakPath, err := findESpeakExecutable()
	if err != nil {
		return nil, err
	}
	output, err := exec.Command(espeakPath, "--voices").Output()
	if err != nil {
		return nil, err
	}
	return parseESpeakVoices(string(output)), nil
}

func parseESpeakVoices(output string) []string {
	lines := strings.Split(output, "\n")
	voices := make([]string, 0)
	for i, line := range lines {
		// First line is the column header.
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}
		// Pty Language Age/Gender VoiceName File Other
		fields := strings.Fields(line)
		if len(fields) >= 4 {
			voices = append(voices, fields[3])
		}
	}
	return voices
}
