package tts

import (
	"fmt"
	"os"
	"os/exec"
)

type EngineType string

const (
	EngineTypeMock   EngineType = "mock"
	EngineTypeESpeak EngineType = "espeak"
	EngineTypeGoogle EngineType = "google"
	EngineTypeAuto   EngineType = "auto" // pick the best available engine
)

func (e EngineType) String() string {
	return string(e)
}

// New creates a synthesizer from config. "auto" prefers Google when
// credentials are present, then espeak, then the mock fallback.
func New(config Config) (Synthesizer, error) {
	if config.Speed <= 0 {
		config.Speed = 1.0
	}
	if config.Type == EngineTypeAuto.String() || config.Type == "" {
		config.Type = bestAvailableEngine().String()
	}

	switch config.Type {
	case EngineTypeMock.String():
		return NewMockEngine(config), nil

	case EngineTypeESpeak.String():
		return newESpeakEngine(config)

	case EngineTypeGoogle.String():
		return newGoogleEngine(config)

	default:
		return nil, fmt.Errorf("unsupported TTS engine type: %s", config.Type)
	}
}

func bestAvailableEngine() EngineType {
	if hasGoogleCredentials() {
		return EngineTypeGoogle
	}
	if _, err := findESpeakExecutable(); err == nil {
		return EngineTypeESpeak
	}
	return EngineTypeMock
}

// AvailableEngines returns the engines usable in this environment.
func AvailableEngines() []EngineType {
	engines := []EngineType{EngineTypeMock}
	if _, err := findESpeakExecutable(); err == nil {
		engines = append(engines, EngineTypeESpeak)
	}
	if hasGoogleCredentials() {
		engines = append(engines, EngineTypeGoogle)
	}
	return engines
}

func hasGoogleCredentials() bool {
	_, ok := os.LookupEnv("GOOGLE_APPLICATION_CREDENTIALS")
	return ok
}

func findESpeakExecutable() (string, error) {
	for _, candidate := range []string{"espeak-ng", "espeak"} {
		if path, err := exec.LookPath(candidate); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("eSpeak executable not found in PATH")
}
