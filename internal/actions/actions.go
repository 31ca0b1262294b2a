// Package actions maps scenario action names onto the animations the host
// engine plays. The registry is a dispatch table built at startup; nothing
// registers itself as an import side effect, so tests can build their own.
package actions

import (
	"fmt"
	"sort"

	"cosmicanimator/internal/stage"
)

// Context carries per-invocation state into an action builder.
type Context struct {
	StepIndex int
	// Group of the previous action in the same step, for actions that
	// attach to what came before them (arrows, pulses).
	PrevGroup string
}

// Result is what one action contributes to a program step: a main phase,
// an optional effect phase, and a settle wait after both.
type Result struct {
	Group    string            `json:"group"`
	Main     []stage.Animation `json:"main,omitempty"`
	Effects  []stage.Animation `json:"effects,omitempty"`
	PostWait float64           `json:"post_wait,omitempty"`
}

// Func builds the animations for one action invocation.
type Func func(ctx *Context, args map[string]any) (Result, error)

// Registry resolves action names to builders.
type Registry struct {
	funcs map[string]Func
}

// NewRegistry returns a registry with every built-in action installed.
func NewRegistry() *Registry {
	r := &Registry{funcs: make(map[string]Func)}
	r.Register("render_title", renderTitle)
	r.Register("layout_boxes", layoutBoxes)
	r.Register("layout_branch", layoutBranch)
	r.Register("fade_in", fadeIn)
	r.Register("fade_out", fadeOut)
	r.Register("pulse", pulse)
	r.Register("connect_arrow", connectArrow)
	return r
}

// Register installs or replaces a builder under name.
func (r *Registry) Register(name string, fn Func) {
	r.funcs[name] = fn
}

// Lookup returns the builder for name.
func (r *Registry) Lookup(name string) (Func, error) {
	fn, ok := r.funcs[name]
	if !ok {
		return nil, fmt.Errorf("unknown action %q (known: %v)", name, r.Names())
	}
	return fn, nil
}

// Names lists the registered action names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
