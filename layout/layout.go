// Package layout wraps a passage into positioned lines and computes the
// text block's bounding box on the canvas. It produces no pixels; the
// compositor rasterizes its output.
package layout

import (
	"fmt"
	"image"
	"strings"

	"slidecast/shape"
)

const (
	// Horizontal margin on each side of the canvas; usable width is the
	// canvas width minus both margins.
	sideMargin = 50
	// Inset of the translucent box from the canvas edges.
	boxInset = 30
	// Padding added around the text when drawing the box.
	boxPad = 20
	// Vertical step between complex-path lines as a multiple of font size.
	lineSpacing = 1.3
	// Fixed wrap width in characters for the simple path.
	simpleWrapChars = 28
	// Extra pixels between simple-path lines.
	simpleLineGap = 10

	topMargin    = 60
	bottomMargin = 60
	minTop       = 30
)

// Line is one wrapped line with its shaped run.
type Line struct {
	Text string
	Run  shape.Run
}

// TextBlock is the wrapped, vertically anchored text for one slide.
type TextBlock struct {
	Backend    shape.Backend
	Lines      []Line
	FontSize   int
	LineHeight float64 // vertical step between consecutive lines
	Top        int     // y of the first line
	Height     float64 // total block height including padding
	Box        image.Rectangle
}

// Params carries the style fields layout depends on.
type Params struct {
	CanvasWidth  int
	CanvasHeight int
	FontSize     int
	Anchor       string // top | center | bottom
}

// UsableWidth returns the width available to a line of text.
func (p Params) UsableWidth() float64 {
	return float64(p.CanvasWidth - 2*sideMargin)
}

// Build wraps the passage and anchors the resulting block. The shaping
// backend is chosen once for the whole passage.
func Build(text string, f *shape.Font, p Params) (*TextBlock, error) {
	shaper, err := shape.New(f, text, p.FontSize)
	if err != nil {
		return nil, err
	}

	var texts []string
	if shaper.Backend() == shape.BackendComplex {
		texts, err = wrapByAdvance(text, shaper, p.UsableWidth())
		if err != nil {
			return nil, err
		}
	} else {
		texts = wrapByChars(text, simpleWrapChars)
	}
	if len(texts) == 0 {
		// Degenerate input (all-whitespace words, or nothing to wrap):
		// keep the whole passage as a single line.
		texts = []string{text}
	}

	lines := make([]Line, 0, len(texts))
	for _, t := range texts {
		run, err := shaper.Shape(t)
		if err != nil {
			return nil, fmt.Errorf("shape line %q: %w", t, err)
		}
		lines = append(lines, Line{Text: t, Run: run})
	}

	block := &TextBlock{
		Backend:  shaper.Backend(),
		Lines:    lines,
		FontSize: p.FontSize,
	}
	if block.Backend == shape.BackendComplex {
		block.LineHeight = float64(p.FontSize) * lineSpacing
		block.Height = float64(len(lines))*block.LineHeight + 2*boxPad
	} else {
		block.LineHeight = float64(p.FontSize) + simpleLineGap
		block.Height = float64(len(lines)) * block.LineHeight
	}

	block.Top = anchorTop(p.Anchor, p.CanvasHeight, block.Height)

	boxBottom := block.Top + int(block.Height)
	if block.Backend == shape.BackendSimple {
		boxBottom += boxPad
	}
	block.Box = image.Rect(boxInset, block.Top-boxPad, p.CanvasWidth-boxInset, boxBottom)
	return block, nil
}

// anchorTop places the block vertically. The rule is identical for both
// shaping paths.
func anchorTop(anchor string, canvasHeight int, blockHeight float64) int {
	switch anchor {
	case "top":
		return topMargin
	case "bottom":
		return max(canvasHeight-int(blockHeight)-bottomMargin, minTop)
	default: // center
		return max((canvasHeight-int(blockHeight))/2, minTop)
	}
}

// wrapByAdvance greedily packs whitespace-delimited words into lines,
// accepting a word only if the shaped trial line still fits the usable
// width. A single word wider than the limit is placed alone on its own
// line; words are never broken or hyphenated.
func wrapByAdvance(text string, shaper shape.Shaper, usable float64) ([]string, error) {
	words := strings.Fields(text)
	var lines []string
	current := ""
	for len(words) > 0 {
		trial := words[0]
		if current != "" {
			trial = current + " " + words[0]
		}
		run, err := shaper.Shape(trial)
		if err != nil {
			return nil, fmt.Errorf("shape trial %q: %w", trial, err)
		}
		if run.Advance <= usable || current == "" {
			current = trial
			words = words[1:]
			continue
		}
		lines = append(lines, current)
		current = ""
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines, nil
}

// wrapByChars wraps on word boundaries at a fixed character count, the
// coarser policy used for scripts that do not need shaping.
func wrapByChars(text string, width int) []string {
	words := strings.Fields(text)
	var lines []string
	current := ""
	for _, w := range words {
		trial := w
		if current != "" {
			trial = current + " " + w
		}
		if len([]rune(trial)) <= width || current == "" {
			current = trial
			continue
		}
		lines = append(lines, current)
		current = w
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
