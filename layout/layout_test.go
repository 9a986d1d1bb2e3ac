package layout

import (
	"strings"
	"testing"

	"slidecast/shape"
)

// fixedShaper gives every rune a constant advance so wrap decisions are
// easy to reason about.
type fixedShaper struct {
	perRune float64
}

func (f *fixedShaper) Shape(text string) (shape.Run, error) {
	return shape.Run{Advance: f.perRune * float64(len([]rune(text)))}, nil
}

func (f *fixedShaper) Backend() shape.Backend { return shape.BackendComplex }

func TestWrapByAdvanceFitsUsableWidth(t *testing.T) {
	shaper := &fixedShaper{perRune: 10}
	usable := 200.0 // 20 runes per line
	text := "the quick brown fox jumps over the lazy dog again and again"

	lines, err := wrapByAdvance(text, shaper, usable)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) < 2 {
		t.Fatalf("expected multiple lines, got %d", len(lines))
	}
	for _, line := range lines {
		run, _ := shaper.Shape(line)
		if run.Advance > usable {
			t.Errorf("line %q advance %.0f exceeds usable width %.0f", line, run.Advance, usable)
		}
	}
	if joined := strings.Join(lines, " "); joined != text {
		t.Errorf("wrap lost words: %q", joined)
	}
}

func TestWrapByAdvanceOverwideWordAlone(t *testing.T) {
	shaper := &fixedShaper{perRune: 10}
	lines, err := wrapByAdvance("a extraordinarily b", shaper, 100)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "extraordinarily", "b"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines %v, want %v", len(lines), lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestWrapByChars(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"short stays whole", "hello world", 28, []string{"hello world"}},
		{"breaks on word boundary", "aaaa bbbb cccc", 9, []string{"aaaa bbbb", "cccc"}},
		{"long word alone", "hi extraordinarily no", 10, []string{"hi", "extraordinarily", "no"}},
		{"all whitespace", "   ", 28, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapByChars(tt.text, tt.width)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAnchorTop(t *testing.T) {
	tests := []struct {
		name        string
		anchor      string
		height      int
		blockHeight float64
		want        int
	}{
		{"top is fixed margin", "top", 1280, 400, 60},
		{"bottom leaves margin", "bottom", 1280, 400, 820},
		{"center splits remainder", "center", 1280, 400, 440},
		{"bottom never above minimum", "bottom", 300, 400, 30},
		{"center never above minimum", "center", 300, 400, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := anchorTop(tt.anchor, tt.height, tt.blockHeight); got != tt.want {
				t.Fatalf("anchorTop(%q, %d, %.0f) = %d, want %d", tt.anchor, tt.height, tt.blockHeight, got, tt.want)
			}
		})
	}
}

func TestUsableWidth(t *testing.T) {
	p := Params{CanvasWidth: 720}
	if got := p.UsableWidth(); got != 620 {
		t.Fatalf("UsableWidth() = %.0f, want 620", got)
	}
}
