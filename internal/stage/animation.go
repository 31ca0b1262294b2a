package stage

// Animation is the opaque unit the host rendering engine plays. The core
// never interprets Args; it only decides when the animation runs and for
// how long.
type Animation struct {
	Name   string         `json:"name"`
	Target string         `json:"target,omitempty"`
	Args   map[string]any `json:"args,omitempty"`
}
