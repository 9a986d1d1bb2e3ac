// Package render composites slide frames: background, translucent text box,
// shaped text with shadow, and the logo and progress overlays.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"github.com/go-text/typesetting/font"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"slidecast/layout"
	"slidecast/shape"
)

// Style carries the resolved visual parameters for text rendering. Colors
// are parsed up front; alpha is already clamped to [0, 1].
type Style struct {
	FontSize     int
	TextColor    color.RGBA
	BoxColor     color.RGBA
	BoxAlpha     float64
	Shadow       bool
	ShadowColor  color.RGBA
	ShadowOffset image.Point
}

// Compositor draws anchored text blocks onto slide canvases. It is not safe
// for concurrent use; parallel renders each get their own compositor.
type Compositor struct {
	font  *shape.Font
	style Style

	masks  *maskCache // complex backend, built on first use
	simple xfont.Face // simple backend, built on first use
}

func NewCompositor(f *shape.Font, style Style) *Compositor {
	return &Compositor{font: f, style: style}
}

// Compose draws the text block onto the canvas in place: box first, then a
// shadow pass, then the text itself.
func (c *Compositor) Compose(canvas *image.RGBA, block *layout.TextBlock) error {
	c.fillBox(canvas, block.Box)

	if block.Backend == shape.BackendComplex {
		c.composeShaped(canvas, block)
		return nil
	}
	return c.composeSimple(canvas, block)
}

func (c *Compositor) fillBox(canvas *image.RGBA, box image.Rectangle) {
	fill := color.NRGBA{
		R: c.style.BoxColor.R,
		G: c.style.BoxColor.G,
		B: c.style.BoxColor.B,
		A: uint8(c.style.BoxAlpha*255 + 0.5),
	}
	draw.Draw(canvas, box.Intersect(canvas.Bounds()), image.NewUniform(fill), image.Point{}, draw.Over)
}

// composeShaped stamps rasterized glyph masks along each line's baseline,
// honoring the per-glyph offsets produced by the shaper.
func (c *Compositor) composeShaped(canvas *image.RGBA, block *layout.TextBlock) {
	if c.masks == nil {
		c.masks = newMaskCache(c.font.Face(), c.style.FontSize)
	}
	width := canvas.Bounds().Dx()
	for i, line := range block.Lines {
		x := (float64(width) - line.Run.Advance) / 2
		baseline := block.Top + int(float64(i)*block.LineHeight) + c.style.FontSize
		if c.style.Shadow {
			c.stampLine(canvas, line.Run, x+float64(c.style.ShadowOffset.X), baseline+c.style.ShadowOffset.Y, c.style.ShadowColor)
		}
		c.stampLine(canvas, line.Run, x, baseline, c.style.TextColor)
	}
}

func (c *Compositor) stampLine(canvas *image.RGBA, run shape.Run, penX float64, baseline int, col color.RGBA) {
	src := image.NewUniform(col)
	for _, g := range run.Glyphs {
		if m := c.masks.lookup(font.GID(g.ID)); m != nil {
			at := image.Pt(
				int(penX+g.XOffset)+m.offset.X,
				baseline-int(g.YOffset)+m.offset.Y,
			)
			rect := m.alpha.Bounds().Add(at.Sub(m.alpha.Bounds().Min))
			draw.DrawMask(canvas, rect, src, image.Point{}, m.alpha, m.alpha.Bounds().Min, draw.Over)
		}
		penX += g.XAdvance
	}
}

// composeSimple draws whole lines through the x/image font drawer, which is
// sufficient for scripts without contextual forms.
func (c *Compositor) composeSimple(canvas *image.RGBA, block *layout.TextBlock) error {
	if c.simple == nil {
		face, err := c.font.SimpleFace(c.style.FontSize)
		if err != nil {
			return err
		}
		c.simple = face
	}
	ascent := c.simple.Metrics().Ascent.Ceil()
	width := canvas.Bounds().Dx()

	d := &xfont.Drawer{Dst: canvas, Face: c.simple}
	for i, line := range block.Lines {
		x := (float64(width) - line.Run.Advance) / 2
		baseline := block.Top + int(float64(i)*block.LineHeight) + ascent

		if c.style.Shadow {
			d.Src = image.NewUniform(c.style.ShadowColor)
			d.Dot = fixed.P(int(x)+c.style.ShadowOffset.X, baseline+c.style.ShadowOffset.Y)
			d.DrawString(line.Text)
		}

		d.Src = image.NewUniform(c.style.TextColor)
		d.Dot = fixed.P(int(x), baseline)
		d.DrawString(line.Text)
	}
	return nil
}

// WriteFrame encodes a composed canvas as the slide's PNG frame.
func WriteFrame(path string, canvas *image.RGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create frame %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, canvas); err != nil {
		return fmt.Errorf("encode frame %s: %w", path, err)
	}
	return nil
}
