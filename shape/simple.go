package shape

import (
	xfont "golang.org/x/image/font"
)

// simpleShaper maps one glyph per character using the font's rendered
// per-character advances. No reordering or contextual substitution happens
// on this path.
type simpleShaper struct {
	face   xfont.Face
	sizePx int
}

func newSimpleShaper(f *Font, sizePx int) (*simpleShaper, error) {
	face, err := f.SimpleFace(sizePx)
	if err != nil {
		return nil, err
	}
	return &simpleShaper{face: face, sizePx: sizePx}, nil
}

func (s *simpleShaper) Backend() Backend { return BackendSimple }

func (s *simpleShaper) Shape(text string) (Run, error) {
	var run Run
	for _, r := range text {
		adv, ok := s.face.GlyphAdvance(r)
		if !ok {
			// Missing glyph: fall back to the replacement character's
			// advance so measurement still moves forward.
			adv, _ = s.face.GlyphAdvance('�')
		}
		g := Glyph{ID: uint32(r), XAdvance: fromFixed(adv)}
		run.Glyphs = append(run.Glyphs, g)
		run.Advance += g.XAdvance
	}
	return run, nil
}

// Face exposes the rendering face so the compositor can draw whole strings
// with a single call per line.
func (s *simpleShaper) Face() xfont.Face { return s.face }
