package actions

import (
	"strings"
	"testing"
)

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{
		"render_title", "layout_boxes", "layout_branch",
		"fade_in", "fade_out", "pulse", "connect_arrow",
	} {
		if _, err := r.Lookup(name); err != nil {
			t.Errorf("builtin %q missing: %v", name, err)
		}
	}
	if _, err := r.Lookup("warp_drive"); err == nil {
		t.Error("unknown action should not resolve")
	} else if !strings.Contains(err.Error(), "warp_drive") {
		t.Errorf("error should name the action: %v", err)
	}
}

func TestLayoutBoxes(t *testing.T) {
	fn, _ := NewRegistry().Lookup("layout_boxes")
	res, err := fn(&Context{StepIndex: 2}, map[string]any{
		"labels": []any{"alpha", "beta", "gamma"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Main) != 3 {
		t.Fatalf("main animations = %d, want one per label", len(res.Main))
	}
	if res.Group != "boxes_2" {
		t.Errorf("group = %q, want step-indexed name", res.Group)
	}
	if res.Main[0].Args["label"] != "alpha" {
		t.Errorf("first box label = %v", res.Main[0].Args["label"])
	}

	if _, err := fn(&Context{}, map[string]any{}); err == nil {
		t.Error("missing labels should fail")
	}
}

func TestLayoutBranchEmitsEdges(t *testing.T) {
	fn, _ := NewRegistry().Lookup("layout_branch")
	res, err := fn(&Context{StepIndex: 0}, map[string]any{
		"root":     "store",
		"children": []any{"get", "set"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Main) != 3 {
		t.Errorf("main = %d animations, want root plus two children", len(res.Main))
	}
	if len(res.Effects) != 2 {
		t.Errorf("effects = %d edges, want one per child", len(res.Effects))
	}
}

func TestTargetFallsBackToPrevGroup(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"fade_in", "fade_out", "pulse"} {
		t.Run(name, func(t *testing.T) {
			fn, _ := r.Lookup(name)
			res, err := fn(&Context{PrevGroup: "boxes_0"}, map[string]any{})
			if err != nil {
				t.Fatal(err)
			}
			if res.Group != "boxes_0" {
				t.Errorf("group = %q, want previous group", res.Group)
			}

			if _, err := fn(&Context{}, map[string]any{}); err == nil {
				t.Error("no target and no previous group should fail")
			}
		})
	}
}

func TestConnectArrowRequiresEndpoints(t *testing.T) {
	fn, _ := NewRegistry().Lookup("connect_arrow")
	if _, err := fn(&Context{}, map[string]any{"from": "a"}); err == nil {
		t.Error("missing 'to' should fail")
	}
	res, err := fn(&Context{StepIndex: 1}, map[string]any{"from": "a", "to": "b"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Main[0].Name != "grow_arrow" {
		t.Errorf("animation = %q, want grow_arrow", res.Main[0].Name)
	}
}
