// Package timing partitions a step's narration duration across its actions.
package timing

// Floor is the minimum per-action slice in seconds. Anything shorter reads
// as a flicker on screen, so the allocator never goes below it even when
// that makes the returned sum exceed the nominal total.
const Floor = 0.12

// Phase split for actions that carry both main and effect animations.
const (
	mainShare   = 0.6
	effectShare = 0.4
)

// Alloc splits total seconds into equal per-action slices, each at least
// Floor. parts below 1 is clamped to 1.
func Alloc(total float64, parts int) []float64 {
	if parts < 1 {
		parts = 1
	}
	raw := total / float64(parts)
	if raw < Floor {
		raw = Floor
	}
	scale := 1.0
	if s := raw * float64(parts); s > 0 && total > 0 {
		scale = total / s
	}
	per := raw * scale
	if per < Floor {
		per = Floor
	}
	out := make([]float64, parts)
	for i := range out {
		out[i] = per
	}
	return out
}

// SplitPhases divides one action's slice between its main and effect
// animation phases. Both present: main plays first for 60% of the slice,
// effects follow for the remaining 40%. Only one present: it gets the full
// slice.
func SplitPhases(slice float64, hasMain, hasEffects bool) (main, effects float64) {
	switch {
	case hasMain && hasEffects:
		return slice * mainShare, slice * effectShare
	case hasMain:
		return slice, 0
	case hasEffects:
		return 0, slice
	default:
		return 0, 0
	}
}
