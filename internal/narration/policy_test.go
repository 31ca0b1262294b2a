package narration

import (
	"math"
	"strings"
	"testing"
)

func TestChunkEmptyInput(t *testing.T) {
	p := NewPolicy(PolicyConfig{})
	for _, in := range []string{"", "   ", "\n\t  \n"} {
		if got := p.Chunk(in); len(got) != 0 {
			t.Errorf("Chunk(%q) = %v, want empty", in, got)
		}
	}
}

func TestChunkSentenceSplit(t *testing.T) {
	p := NewPolicy(PolicyConfig{})
	got := p.Chunk("Step one. Step two. Step three.")
	want := []string{"Step one.", "Step two.", "Step three."}
	if len(got) != len(want) {
		t.Fatalf("got %d chunks %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("chunk %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestChunkReconstruction(t *testing.T) {
	p := NewPolicy(PolicyConfig{})
	texts := []string{
		"Hello there. This is a test of the caption system that runs a bit long.",
		"One short line.",
		"A question? An exclamation! And a statement.",
		"This single sentence keeps going and going with many clauses, several commas, and no early period so the splitter has to work for its living before it finally ends.",
		"  extra   whitespace\tgets\nnormalized everywhere  ",
	}
	for _, text := range texts {
		t.Run(text[:12], func(t *testing.T) {
			chunks := p.Chunk(text)
			joined := normalizeSpace(strings.Join(chunks, " "))
			if joined != normalizeSpace(text) {
				t.Errorf("reconstruction mismatch:\n got %q\nwant %q", joined, normalizeSpace(text))
			}
		})
	}
}

func TestChunkLineBudget(t *testing.T) {
	p := NewPolicy(PolicyConfig{WrapChars: 38, MaxLines: 2})
	long := "This single sentence keeps going and going with many clauses, several commas, and no early period so the splitter has to work for its living before it finally ends, and even then it adds one more clause for good measure."
	for i, c := range p.Chunk(long) {
		if lines := wrappedLineCount(c, 38); lines > 2 {
			t.Errorf("chunk %d needs %d lines, budget is 2: %q", i, lines, c)
		}
	}
}

func TestMergeTinyTail(t *testing.T) {
	p := NewPolicy(PolicyConfig{WrapChars: 38, MaxLines: 2})

	t.Run("tiny tail folds into predecessor", func(t *testing.T) {
		got := p.mergeTinyTail([]string{"a fragment that was split off mid-sentence", "bit long."})
		if len(got) != 1 {
			t.Fatalf("got %d chunks %v, want 1", len(got), got)
		}
		if !strings.HasSuffix(got[0], "bit long.") {
			t.Errorf("merged chunk = %q, want tail appended", got[0])
		}
	})

	t.Run("merge skipped when it would overflow the budget", func(t *testing.T) {
		big := strings.Repeat("word ", 14) + "anchor" // ~2 full lines already
		got := p.mergeTinyTail([]string{big, "tail."})
		if len(got) != 2 {
			t.Errorf("got %d chunks, want 2 (no merge)", len(got))
		}
	})

	t.Run("long tail left alone", func(t *testing.T) {
		got := p.mergeTinyTail([]string{"first piece of the sentence", "a tail that is plainly not tiny at all"})
		if len(got) != 2 {
			t.Errorf("got %d chunks, want 2", len(got))
		}
	})
}

func TestBalancedBreakPrefersPunctuation(t *testing.T) {
	s := "alpha beta gamma delta, epsilon zeta eta theta"
	left, right := balancedBreak(s, len(s)/2)
	if !strings.HasSuffix(left, ",") {
		t.Errorf("left = %q, want split after the comma near the midpoint", left)
	}
	if normalizeSpace(left+" "+right) != s {
		t.Errorf("break lost content: %q + %q", left, right)
	}
}

func TestDurationsEstimationMode(t *testing.T) {
	p := NewPolicy(PolicyConfig{})
	chunks := []string{"Hi.", "A chunk of middling length here.", strings.Repeat("x", 200)}
	got := p.Durations(chunks, 0)
	if len(got) != len(chunks) {
		t.Fatalf("len = %d, want %d", len(got), len(chunks))
	}
	for i, d := range got {
		if d < 1.2-1e-9 || d > 3.8+1e-9 {
			t.Errorf("duration %d = %v, outside [1.2, 3.8]", i, d)
		}
	}
	// The long chunk must hit the cap, the short one the floor.
	if got[0] != 1.2 {
		t.Errorf("short chunk = %v, want floor 1.2", got[0])
	}
	if got[2] != 3.8 {
		t.Errorf("long chunk = %v, want cap 3.8", got[2])
	}
}

func TestDurationsSumFidelity(t *testing.T) {
	p := NewPolicy(PolicyConfig{})
	tests := []struct {
		name   string
		chunks []string
		total  float64
	}{
		{"two uneven chunks", []string{"Hello there.", "This is a test of the caption system that runs a bit long."}, 4.0},
		{"three even chunks", []string{"Step one.", "Step two.", "Step three."}, 3.0},
		{"short total", []string{"First bit here.", "Second bit here."}, 0.5},
		{"many chunks", []string{"aaaa", "bbbbbbbb", "cc", "dddddddddddd", "eeeeee", "ffffffffff"}, 12.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Durations(tt.chunks, tt.total)
			if s := sum(got); math.Abs(s-tt.total) > 1e-2 {
				t.Errorf("sum = %v, want %v within 1e-2 (durations %v)", s, tt.total, got)
			}
		})
	}
}

func TestDurationsProportionality(t *testing.T) {
	p := NewPolicy(PolicyConfig{})
	chunks := []string{"Step one.", "Step two.", "Step three."}
	got := p.Durations(chunks, 3.0)

	// 9, 9 and 11 characters: the last chunk gets the biggest share.
	if !(got[2] > got[0] && got[2] > got[1]) {
		t.Errorf("expected the longest chunk to get the longest duration: %v", got)
	}
	if math.Abs(got[0]-got[1]) > 1e-9 {
		t.Errorf("equal-length chunks should get equal durations: %v", got)
	}
	wantLast := 3.0 * 11.0 / 29.0
	if math.Abs(got[2]-wantLast) > 1e-6 {
		t.Errorf("last duration = %v, want %v", got[2], wantLast)
	}
}

func TestDurationsSingleChunk(t *testing.T) {
	p := NewPolicy(PolicyConfig{})
	got := p.Durations([]string{"Just one chunk to show."}, 2.5)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if math.Abs(got[0]-2.5) > 1e-6 {
		t.Errorf("duration = %v, want the full total 2.5", got[0])
	}
}

func TestDurationsEmpty(t *testing.T) {
	p := NewPolicy(PolicyConfig{})
	if got := p.Durations(nil, 5.0); len(got) != 0 {
		t.Errorf("Durations(nil) = %v, want empty", got)
	}
}
