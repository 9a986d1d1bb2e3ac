package render

import (
	"image"
	"math"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/vector"
)

// mask is a rasterized glyph plus the offset of its top-left corner from
// the pen position on the baseline.
type mask struct {
	alpha  *image.Alpha
	offset image.Point
}

// maskCache rasterizes glyph outlines at a fixed pixel size. Glyph ids
// repeat heavily within a slide, so masks are kept per compositor.
type maskCache struct {
	face  *font.Face
	scale float64 // pixels per font unit
	masks map[font.GID]*mask
}

func newMaskCache(face *font.Face, sizePx int) *maskCache {
	return &maskCache{
		face:  face,
		scale: float64(sizePx) / float64(face.Upem()),
		masks: make(map[font.GID]*mask),
	}
}

// lookup returns the rasterized mask for gid, or nil for glyphs without an
// outline (whitespace, control glyphs).
func (c *maskCache) lookup(gid font.GID) *mask {
	if m, ok := c.masks[gid]; ok {
		return m
	}
	m := c.rasterize(gid)
	c.masks[gid] = m
	return m
}

func (c *maskCache) rasterize(gid font.GID) *mask {
	outline, ok := c.face.GlyphData(gid).(font.GlyphOutline)
	if !ok || len(outline.Segments) == 0 {
		return nil
	}

	// Outline coordinates are font units with y growing upward; flip to
	// image space and scale before measuring the bounding box.
	pt := func(p ot.SegmentPoint) (float64, float64) {
		return float64(p.X) * c.scale, -float64(p.Y) * c.scale
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, seg := range outline.Segments {
		for _, arg := range seg.Args[:segmentArgs(seg.Op)] {
			x, y := pt(arg)
			minX, minY = math.Min(minX, x), math.Min(minY, y)
			maxX, maxY = math.Max(maxX, x), math.Max(maxY, y)
		}
	}

	left, top := int(math.Floor(minX)), int(math.Floor(minY))
	w := int(math.Ceil(maxX)) - left
	h := int(math.Ceil(maxY)) - top
	if w <= 0 || h <= 0 {
		return nil
	}

	r := vector.NewRasterizer(w, h)
	shift := func(p ot.SegmentPoint) (float32, float32) {
		x, y := pt(p)
		return float32(x - float64(left)), float32(y - float64(top))
	}
	open := false
	for _, seg := range outline.Segments {
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			if open {
				r.ClosePath()
			}
			x, y := shift(seg.Args[0])
			r.MoveTo(x, y)
			open = true
		case ot.SegmentOpLineTo:
			x, y := shift(seg.Args[0])
			r.LineTo(x, y)
		case ot.SegmentOpQuadTo:
			cx, cy := shift(seg.Args[0])
			x, y := shift(seg.Args[1])
			r.QuadTo(cx, cy, x, y)
		case ot.SegmentOpCubeTo:
			c1x, c1y := shift(seg.Args[0])
			c2x, c2y := shift(seg.Args[1])
			x, y := shift(seg.Args[2])
			r.CubeTo(c1x, c1y, c2x, c2y, x, y)
		}
	}
	if open {
		r.ClosePath()
	}

	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	r.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return &mask{alpha: dst, offset: image.Pt(left, top)}
}

func segmentArgs(op ot.SegmentOp) int {
	switch op {
	case ot.SegmentOpQuadTo:
		return 2
	case ot.SegmentOpCubeTo:
		return 3
	}
	return 1
}
