// Package generator compiles a declarative scenario into a self-contained
// scene program: every action name resolved and expanded into concrete
// animations, so playback needs no registry and no scenario file.
package generator

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"cosmicanimator/internal/actions"
	"cosmicanimator/internal/scenario"
)

// ProgramStep is one compiled beat: the narration line plus the resolved
// action results in play order.
type ProgramStep struct {
	Line    string           `json:"line,omitempty"`
	Actions []actions.Result `json:"actions,omitempty"`
}

// Program is the compiled scene artifact.
type Program struct {
	ID    string        `json:"id"`
	Steps []ProgramStep `json:"steps"`
}

// Compile resolves every step of sc against reg. Any unknown action or
// malformed argument fails the whole compilation; playback never sees a
// half-valid program.
func Compile(sc *scenario.Scenario, reg *actions.Registry) (*Program, error) {
	prog := &Program{ID: uuid.NewString()}

	for i, step := range sc.Script {
		ps := ProgramStep{Line: step.Line}
		prevGroup := ""
		for _, spec := range step.ActionList() {
			fn, err := reg.Lookup(spec.Name)
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", i, err)
			}
			res, err := fn(&actions.Context{StepIndex: i, PrevGroup: prevGroup}, spec.Args)
			if err != nil {
				return nil, fmt.Errorf("step %d: action %q: %w", i, spec.Name, err)
			}
			prevGroup = res.Group
			ps.Actions = append(ps.Actions, res)
		}
		prog.Steps = append(prog.Steps, ps)
	}

	logrus.WithFields(logrus.Fields{
		"id":    prog.ID,
		"steps": len(prog.Steps),
	}).Debug("compiled scenario")
	return prog, nil
}

// WriteJSON writes the program artifact to path.
func (p *Program) WriteJSON(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode program: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write program: %w", err)
	}
	return nil
}

// ReadJSON loads a program artifact from path.
func ReadJSON(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read program: %w", err)
	}
	var p Program
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse program: %w", err)
	}
	return &p, nil
}
