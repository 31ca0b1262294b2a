// Package scenario models the declarative input format: an ordered script
// of steps, each with an optional narrated line and named visual actions.
package scenario

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// EffectSpec names a secondary embellishment animation for an action.
type EffectSpec struct {
	Name    string         `json:"name"`
	Args    map[string]any `json:"args,omitempty"`
	Targets []string       `json:"targets,omitempty"`
}

// ActionSpec names one visual action within a step.
type ActionSpec struct {
	Name    string         `json:"name"`
	Args    map[string]any `json:"args,omitempty"`
	Effects []EffectSpec   `json:"effects,omitempty"`
}

// Step is one narrated beat of the script. Either the Action/Args shorthand
// or the Actions list may be used; ActionList normalizes both.
type Step struct {
	Line    string         `json:"line,omitempty"`
	Action  string         `json:"action,omitempty"`
	Args    map[string]any `json:"args,omitempty"`
	Actions []ActionSpec   `json:"actions,omitempty"`
}

// ActionList expands the single-action shorthand into the list form.
func (s *Step) ActionList() []ActionSpec {
	if len(s.Actions) > 0 {
		return s.Actions
	}
	if s.Action == "" {
		return nil
	}
	return []ActionSpec{{Name: s.Action, Args: s.Args}}
}

// Scenario is the whole script.
type Scenario struct {
	Script []Step `json:"script"`
}

// Parse accepts either a bare step list or an object with a "script" list.
func Parse(data []byte) (*Scenario, error) {
	var steps []Step
	if err := json.Unmarshal(data, &steps); err == nil {
		return &Scenario{Script: steps}, nil
	}

	var sc Scenario
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario JSON: %w", err)
	}
	if sc.Script == nil {
		return nil, fmt.Errorf("scenario must be a list of steps or an object with a 'script' list")
	}
	return &sc, nil
}

// Load reads a scenario from a local file or an http(s) URL.
func Load(pathOrURL string) (*Scenario, error) {
	data, err := read(pathOrURL)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func read(pathOrURL string) ([]byte, error) {
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		client := &http.Client{Timeout: 30 * time.Second}
		resp, err := client.Get(pathOrURL)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch scenario: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}
		return body, nil
	}

	data, err := os.ReadFile(pathOrURL)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return data, nil
}
