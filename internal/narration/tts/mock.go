package tts

import (
	"context"
	"strings"
)

const mockCharsPerSec = 16.0

// MockEngine produces no audio and estimates duration from reading speed.
// Used by tests and dry runs, where deterministic timing matters more than
// sound.
type MockEngine struct {
	speed float64
	voice string
}

func NewMockEngine(c Config) *MockEngine {
	speed := c.Speed
	if speed <= 0 {
		speed = 1.0
	}
	return &MockEngine{speed: speed, voice: c.Voice}
}

func (m *MockEngine) Name() string { return EngineTypeMock.String() }

func (m *MockEngine) Synthesize(_ context.Context, text string) (Clip, error) {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return Clip{}, nil
	}
	dur := float64(len([]rune(text))) / (mockCharsPerSec * m.speed)
	return Clip{Duration: dur}, nil
}

func (m *MockEngine) Voices() ([]string, error) {
	return []string{"mock-voice"}, nil
}
