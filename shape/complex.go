package shape

import (
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// complexShaper shapes text through the font's shaping tables. The shaper
// emits advances and offsets already scaled to the requested pixel size, in
// 26.6 fixed point.
type complexShaper struct {
	face   *font.Face
	shaper shaping.HarfbuzzShaper
	sizePx int
}

func newComplexShaper(f *Font, sizePx int) *complexShaper {
	return &complexShaper{face: f.Face(), sizePx: sizePx}
}

func (s *complexShaper) Backend() Backend { return BackendComplex }

func (s *complexShaper) Shape(text string) (Run, error) {
	runes := []rune(text)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Face:      s.face,
		Size:      fixed.I(s.sizePx),
		Direction: di.DirectionLTR,
		Script:    scriptOf(runes),
		Language:  language.DefaultLanguage(),
	}
	out := s.shaper.Shape(input)

	run := Run{
		Glyphs:  make([]Glyph, 0, len(out.Glyphs)),
		Advance: fromFixed(out.Advance),
	}
	for _, g := range out.Glyphs {
		run.Glyphs = append(run.Glyphs, Glyph{
			ID:       uint32(g.GlyphID),
			XAdvance: fromFixed(g.XAdvance),
			XOffset:  fromFixed(g.XOffset),
			YOffset:  fromFixed(g.YOffset),
		})
	}
	return run, nil
}

// scriptOf reports the script of the first rune that has one; spaces and
// punctuation are skipped so mixed lines still shape under the dominant
// script.
func scriptOf(runes []rune) language.Script {
	for _, r := range runes {
		if s := language.LookupScript(r); s != language.Unknown {
			return s
		}
	}
	return language.Unknown
}

func fromFixed(v fixed.Int26_6) float64 { return float64(v) / 64.0 }
