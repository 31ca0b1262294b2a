// Package narration is the caption synchronization core: text segmentation
// (Policy), schedule computation (Scheduler), the tick-driven caption state
// machine (Overlay), and the two-phase narration conductor (Orchestra).
package narration

import (
	"math"
	"strings"
)

// Policy defaults. All tunable through PolicyConfig.
const (
	defaultWrapChars   = 38
	defaultMaxLines    = 2
	defaultCharsPerSec = 16.0
	defaultMinDuration = 1.2
	defaultMaxDuration = 3.8
)

// PolicyConfig tunes chunking and duration fitting. Zero values fall back
// to the defaults above.
type PolicyConfig struct {
	WrapChars   int
	MaxLines    int
	CharsPerSec float64
	MinDuration float64
	MaxDuration float64
}

// Policy splits narration text into readable caption chunks and assigns
// per-chunk durations, either estimated from reading speed or fitted to a
// known total. It is pure computation: no I/O, no timing state.
type Policy struct {
	wrapChars   int
	maxLines    int
	charsPerSec float64
	minDuration float64
	maxDuration float64
}

func NewPolicy(cfg PolicyConfig) *Policy {
	p := &Policy{
		wrapChars:   cfg.WrapChars,
		maxLines:    cfg.MaxLines,
		charsPerSec: cfg.CharsPerSec,
		minDuration: cfg.MinDuration,
		maxDuration: cfg.MaxDuration,
	}
	if p.wrapChars < 1 {
		p.wrapChars = defaultWrapChars
	}
	if p.maxLines < 1 {
		p.maxLines = defaultMaxLines
	}
	if p.charsPerSec <= 0 {
		p.charsPerSec = defaultCharsPerSec
	}
	if p.minDuration < 0 {
		p.minDuration = defaultMinDuration
	}
	if cfg.MinDuration == 0 && cfg.MaxDuration == 0 {
		p.minDuration = defaultMinDuration
		p.maxDuration = defaultMaxDuration
	}
	if p.maxDuration < p.minDuration {
		p.maxDuration = p.minDuration
	}
	return p
}

// Chunk splits text into caption chunks. Sentence boundaries are kept when
// the sentence fits the line budget; oversize sentences are split
// recursively at balanced break points. When splitting strands a tiny tail
// fragment, it is merged back into its predecessor so the last caption of
// a sentence is never an orphaned word or two. Whole sentences are never
// merged with each other.
func (p *Policy) Chunk(text string) []string {
	text = normalizeSpace(text)
	if text == "" {
		return nil
	}

	var chunks []string
	for _, sentence := range splitSentences(text) {
		if wrappedLineCount(sentence, p.wrapChars) <= p.maxLines {
			chunks = append(chunks, sentence)
			continue
		}
		chunks = append(chunks, p.mergeTinyTail(p.autosplit(sentence))...)
	}

	return chunks
}

// autosplit recursively halves oversize text at balanced break points until
// every piece fits the line budget. Terminates because each recursion
// operates on a strictly shorter string.
func (p *Policy) autosplit(text string) []string {
	text = normalizeSpace(text)
	if text == "" {
		return nil
	}
	if wrappedLineCount(text, p.wrapChars) <= p.maxLines {
		return []string{text}
	}

	left, right := balancedBreak(text, len([]rune(text))/2)
	if right == "" {
		// No break point at all: a single unbroken token longer than the
		// budget. Keep it whole rather than cutting mid-word forever.
		return []string{left}
	}
	return append(p.autosplit(left), p.autosplit(right)...)
}

// mergeTinyTail folds a short final chunk into its predecessor when the
// merged text still fits max lines at wrap width.
func (p *Policy) mergeTinyTail(chunks []string) []string {
	n := len(chunks)
	if n < 2 {
		return chunks
	}
	tiny := p.wrapChars / 2
	if tiny < 6 {
		tiny = 6
	}
	last := chunks[n-1]
	if len([]rune(last)) > tiny {
		return chunks
	}
	merged := chunks[n-2] + " " + last
	if wrappedLineCount(merged, p.wrapChars) > p.maxLines {
		return chunks
	}
	out := append([]string{}, chunks[:n-2]...)
	return append(out, merged)
}

// Durations assigns a duration to each chunk.
//
// With a known total (> 0) the chunks are weighted by character length,
// scaled to the total, clamped, and renormalized so the sum matches the
// total again. Clamping after the first scale can reintroduce a mismatch,
// so a second corrective pass runs when the sum is still off by more than
// 1e-3. With no total (<= 0) each chunk is estimated independently from
// reading speed and clamped; there is no true total to match.
func (p *Policy) Durations(chunks []string, totalDuration float64) []float64 {
	if len(chunks) == 0 {
		return nil
	}

	lengths := make([]float64, len(chunks))
	var sumLen float64
	for i, c := range chunks {
		l := float64(len([]rune(strings.ReplaceAll(c, "\n", " "))))
		if l < 1 {
			l = 1
		}
		lengths[i] = l
		sumLen += l
	}

	d := make([]float64, len(chunks))
	if totalDuration > 0 {
		for i, l := range lengths {
			d[i] = totalDuration * l / sumLen
		}
	} else {
		for i, l := range lengths {
			d[i] = l / p.charsPerSec
		}
	}

	for i := range d {
		d[i] = math.Min(p.maxDuration, d[i])
	}

	if totalDuration <= 0 {
		for i := range d {
			d[i] = math.Max(p.minDuration, d[i])
		}
		return d
	}

	// Soft readability floor, looser than the display-time minimum so the
	// renormalization below has room to move.
	softMin := math.Min(0.6, p.minDuration)
	for i := range d {
		d[i] = math.Max(softMin, d[i])
	}

	if s := sum(d); s > 1e-6 {
		scale := totalDuration / s
		for i := range d {
			d[i] *= scale
		}
	} else {
		per := totalDuration / float64(len(d))
		for i := range d {
			d[i] = per
		}
	}

	for i := range d {
		d[i] = math.Min(p.maxDuration, d[i])
	}

	if s := sum(d); s > 1e-6 && math.Abs(s-totalDuration) > 1e-3 {
		k := totalDuration / s
		for i := range d {
			d[i] *= k
		}
	}
	return d
}

func sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}

// normalizeSpace collapses all whitespace runs to single spaces and trims.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// splitSentences splits on `.`, `!`, `?` followed by whitespace, keeping the
// terminal punctuation attached to the preceding unit. Input is assumed
// space-normalized.
func splitSentences(text string) []string {
	var parts []string
	runes := []rune(text)
	start := 0
	for i := 0; i < len(runes)-1; i++ {
		if isSentenceEnd(runes[i]) && runes[i+1] == ' ' {
			part := strings.TrimSpace(string(runes[start : i+1]))
			if part != "" {
				parts = append(parts, part)
			}
			start = i + 2
		}
	}
	if start < len(runes) {
		if part := strings.TrimSpace(string(runes[start:])); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isBreakPunct(r rune) bool {
	switch r {
	case '.', '!', '?', ';', ':', ',':
		return true
	}
	return false
}

// wrappedLineCount estimates how many lines a greedy word-wrap at width
// needs for s.
func wrappedLineCount(s string, width int) int {
	if width <= 0 {
		if s != "" {
			return 1
		}
		return 0
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return 0
	}
	lines := 1
	cur := len([]rune(words[0]))
	for _, w := range words[1:] {
		wl := len([]rune(w))
		if cur+1+wl <= width {
			cur += 1 + wl
		} else {
			lines++
			cur = wl
		}
	}
	return lines
}

// wrapLines greedily word-wraps s at width, joining lines with newlines.
// Used by the overlay to shape the display text of the active chunk.
func wrapLines(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return s
	}
	var lines []string
	var cur []string
	n := 0
	for _, w := range words {
		need := len([]rune(w))
		if len(cur) > 0 {
			need++
		}
		if n+need > width && len(cur) > 0 {
			lines = append(lines, strings.Join(cur, " "))
			cur = []string{w}
			n = len([]rune(w))
		} else {
			cur = append(cur, w)
			n += need
		}
	}
	if len(cur) > 0 {
		lines = append(lines, strings.Join(cur, " "))
	}
	return strings.Join(lines, "\n")
}

// balancedBreak finds a split point near target. Preference order:
// sentence-internal punctuation followed by a space inside the search
// window, a space inside the window, any space in the string, and finally
// a hard cut at the target.
func balancedBreak(s string, target int) (left, right string) {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	n := len(runes)
	if n <= 1 {
		return s, ""
	}
	if target < 1 {
		target = 1
	}
	if target > n-1 {
		target = n - 1
	}

	window := n / 6
	if window < 12 {
		window = 12
	}
	lo := target - window
	if lo < 1 {
		lo = 1
	}
	hi := target + window
	if hi > n-1 {
		hi = n - 1
	}

	closest := func(pred func(i int) bool, from, to int) int {
		best := -1
		for i := from; i < to; i++ {
			if !pred(i) {
				continue
			}
			if best == -1 || abs(i-target) < abs(best-target) {
				best = i
			}
		}
		return best
	}

	idx := closest(func(i int) bool {
		return isBreakPunct(runes[i]) && i+1 < n && runes[i+1] == ' '
	}, lo, hi)
	if idx == -1 {
		idx = closest(func(i int) bool { return runes[i] == ' ' }, lo, hi)
	}
	if idx == -1 {
		idx = closest(func(i int) bool { return runes[i] == ' ' }, 0, n)
	}
	if idx == -1 {
		idx = target // hard cut
	}

	left = strings.TrimRight(string(runes[:idx+1]), " ")
	right = strings.TrimLeft(string(runes[idx+1:]), " ")
	return left, right
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
