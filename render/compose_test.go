package render

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"slidecast/layout"
	"slidecast/shape"
)

func loadTestFont(t *testing.T) *shape.Font {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := shape.LoadFont(path)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func testStyle() Style {
	return Style{
		FontSize:     32,
		TextColor:    color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		BoxColor:     color.RGBA{A: 0xFF},
		BoxAlpha:     0.6,
		Shadow:       true,
		ShadowColor:  color.RGBA{A: 0xFF},
		ShadowOffset: image.Pt(2, 2),
	}
}

// composeOnce runs the full chain for one frame on the solid background.
func composeOnce(t *testing.T, fnt *shape.Font, passage string, params layout.Params) (*image.RGBA, *layout.TextBlock) {
	t.Helper()
	block, err := layout.Build(passage, fnt, params)
	if err != nil {
		t.Fatal(err)
	}
	canvas := NewBackgrounds("", params.CanvasWidth, params.CanvasHeight, nil).Next()
	if err := NewCompositor(fnt, testStyle()).Compose(canvas, block); err != nil {
		t.Fatal(err)
	}
	return canvas, block
}

func TestComposeComplexPassageDeterministic(t *testing.T) {
	fnt := loadTestFont(t)
	params := layout.Params{CanvasWidth: 360, CanvasHeight: 640, FontSize: 32, Anchor: "center"}
	const passage = "नमस्ते दुनिया"

	first, block := composeOnce(t, fnt, passage, params)
	if block.Backend != shape.BackendComplex {
		t.Fatalf("backend = %v, want complex", block.Backend)
	}
	for _, line := range block.Lines {
		if len(line.Run.Glyphs) == 0 {
			t.Fatalf("line %q shaped to no glyphs", line.Text)
		}
	}

	second, _ := composeOnce(t, fnt, passage, params)
	if !bytes.Equal(first.Pix, second.Pix) {
		t.Fatal("re-rendering the same passage produced a different frame")
	}

	plain := NewBackgrounds("", params.CanvasWidth, params.CanvasHeight, nil).Next()
	if bytes.Equal(first.Pix, plain.Pix) {
		t.Fatal("compose drew nothing onto the background")
	}
}

func TestComposeSimplePassageDeterministic(t *testing.T) {
	fnt := loadTestFont(t)
	params := layout.Params{CanvasWidth: 360, CanvasHeight: 640, FontSize: 32, Anchor: "bottom"}

	first, block := composeOnce(t, fnt, "Hello world", params)
	if block.Backend != shape.BackendSimple {
		t.Fatalf("backend = %v, want simple", block.Backend)
	}
	second, _ := composeOnce(t, fnt, "Hello world", params)
	if !bytes.Equal(first.Pix, second.Pix) {
		t.Fatal("re-rendering the same passage produced a different frame")
	}
}
