package generator

import (
	"path/filepath"
	"strings"
	"testing"

	"cosmicanimator/internal/actions"
	"cosmicanimator/internal/scenario"
)

func TestCompileResolvesActions(t *testing.T) {
	sc, err := scenario.Parse([]byte(`[
		{"line": "Two boxes appear.", "action": "layout_boxes", "args": {"labels": ["a", "b"]}},
		{"line": "They pulse.", "actions": [{"name": "pulse", "args": {"target": "boxes_0"}}]}
	]`))
	if err != nil {
		t.Fatal(err)
	}

	prog, err := Compile(sc, actions.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}
	if prog.ID == "" {
		t.Error("program has no ID")
	}
	if len(prog.Steps) != 2 {
		t.Fatalf("steps = %d, want 2", len(prog.Steps))
	}
	if got := len(prog.Steps[0].Actions[0].Main); got != 2 {
		t.Errorf("step 0 main animations = %d, want one per label", got)
	}
	if prog.Steps[1].Line != "They pulse." {
		t.Errorf("step 1 line = %q", prog.Steps[1].Line)
	}
}

func TestCompileRejectsUnknownAction(t *testing.T) {
	sc := &scenario.Scenario{Script: []scenario.Step{
		{Line: "ok", Action: "render_title", Args: map[string]any{"text": "T"}},
		{Line: "bad", Action: "explode"},
	}}
	_, err := Compile(sc, actions.NewRegistry())
	if err == nil {
		t.Fatal("unknown action should fail compilation")
	}
	if !strings.Contains(err.Error(), "step 1") || !strings.Contains(err.Error(), "explode") {
		t.Errorf("error should locate the defect: %v", err)
	}
}

func TestCompilePrevGroupFlowsBetweenActions(t *testing.T) {
	sc, err := scenario.Parse([]byte(`[
		{"actions": [
			{"name": "layout_boxes", "args": {"labels": ["x"]}},
			{"name": "fade_out"}
		]}
	]`))
	if err != nil {
		t.Fatal(err)
	}
	prog, err := Compile(sc, actions.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}
	if got := prog.Steps[0].Actions[1].Group; got != "boxes_0" {
		t.Errorf("fade_out attached to %q, want the preceding group", got)
	}
}

func TestProgramRoundTrip(t *testing.T) {
	sc := &scenario.Scenario{Script: []scenario.Step{
		{Line: "Title card.", Action: "render_title", Args: map[string]any{"text": "Caches"}},
	}}
	prog, err := Compile(sc, actions.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "program.json")
	if err := prog.WriteJSON(path); err != nil {
		t.Fatal(err)
	}
	got, err := ReadJSON(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != prog.ID || len(got.Steps) != 1 || got.Steps[0].Line != "Title card." {
		t.Errorf("round trip mismatch: %+v", got)
	}
}
