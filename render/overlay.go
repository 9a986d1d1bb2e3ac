package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/rs/zerolog/log"
	xdraw "golang.org/x/image/draw"
)

const (
	// Logo width as a fraction of the canvas width.
	logoScale = 0.20
	// Distance between the logo and the nearest canvas edges.
	logoMargin = 20
)

var progressTrack = color.RGBA{R: 30, G: 30, B: 30, A: 0xFF}

// Logo is a watermark stamped on every slide. A nil Logo draws nothing.
type Logo struct {
	img     *image.RGBA
	opacity float64
}

// LoadLogo decodes and pre-scales the watermark to a fifth of the canvas
// width. A missing or corrupt file logs a warning and disables the overlay
// instead of failing the run.
func LoadLogo(path string, canvasWidth int, opacity float64) *Logo {
	if path == "" {
		return nil
	}
	src, err := loadImage(path)
	if err != nil {
		log.Warn().Str("logo", path).Err(err).Msg("logo unavailable, skipping overlay")
		return nil
	}
	w := int(float64(canvasWidth) * logoScale)
	h := src.Bounds().Dy() * w / src.Bounds().Dx()
	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.BiLinear.Scale(scaled, scaled.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return &Logo{img: scaled, opacity: opacity}
}

// Stamp draws the logo at the named anchor with its configured opacity.
func (l *Logo) Stamp(canvas *image.RGBA, position string) {
	if l == nil {
		return
	}
	cw, ch := canvas.Bounds().Dx(), canvas.Bounds().Dy()
	lw, lh := l.img.Bounds().Dx(), l.img.Bounds().Dy()

	var x, y int
	switch position {
	case "top-left", "bottom-left":
		x = logoMargin
	case "top-right", "bottom-right":
		x = cw - lw - logoMargin
	default: // top-center, bottom-center
		x = (cw - lw) / 2
	}
	switch position {
	case "bottom-left", "bottom-center", "bottom-right":
		y = ch - lh - logoMargin
	default:
		y = logoMargin
	}

	rect := image.Rect(x, y, x+lw, y+lh)
	alpha := image.NewUniform(color.Alpha{A: uint8(l.opacity*255 + 0.5)})
	draw.DrawMask(canvas, rect, l.img, l.img.Bounds().Min, alpha, image.Point{}, draw.Over)
}

// DrawProgress paints the progress strip along the bottom edge: a full-width
// track and a bar whose width reflects how many slides are complete once
// this one finishes.
func DrawProgress(canvas *image.RGBA, index, total, height int, barColor color.RGBA) {
	if total <= 0 || height <= 0 {
		return
	}
	cw, ch := canvas.Bounds().Dx(), canvas.Bounds().Dy()
	track := image.Rect(0, ch-height, cw, ch)
	draw.Draw(canvas, track, image.NewUniform(progressTrack), image.Point{}, draw.Src)

	barWidth := int(math.Round(float64(cw) * float64(index+1) / float64(total)))
	bar := image.Rect(0, ch-height, barWidth, ch)
	draw.Draw(canvas, bar, image.NewUniform(barColor), image.Point{}, draw.Src)
}
