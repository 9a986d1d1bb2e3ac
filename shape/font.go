package shape

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-text/typesetting/font"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// FontLoadError reports an unreadable or corrupt font file. Font loading is
// eager so a bad font aborts the run before any rendering starts.
type FontLoadError struct {
	Path string
	Err  error
}

func (e *FontLoadError) Error() string {
	return fmt.Sprintf("load font %s: %v", e.Path, e.Err)
}

func (e *FontLoadError) Unwrap() error { return e.Err }

// Font is a loaded TTF/OTF parsed for both shaping backends: the shaping
// tables used by the complex path and the sfnt face used by the simple path.
type Font struct {
	path string
	data []byte

	shaped *font.Face
	simple *sfnt.Font
}

// LoadFont reads and parses a font file for both backends.
func LoadFont(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FontLoadError{Path: path, Err: err}
	}
	parsed, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, &FontLoadError{Path: path, Err: err}
	}
	simple, err := opentype.Parse(data)
	if err != nil {
		return nil, &FontLoadError{Path: path, Err: err}
	}
	return &Font{
		path:   path,
		data:   data,
		shaped: parsed,
		simple: simple,
	}, nil
}

// Path returns the file the font was loaded from.
func (f *Font) Path() string { return f.path }

// Face exposes the shaping face for the complex backend and for glyph
// outline rasterization.
func (f *Font) Face() *font.Face { return f.shaped }

// Upem returns the font's units-per-em scale.
func (f *Font) Upem() float64 { return float64(f.shaped.Upem()) }

// SimpleFace builds a rendering face at the given pixel size for the simple
// backend. Pixel size equals point size at 72 dpi.
func (f *Font) SimpleFace(sizePx int) (xfont.Face, error) {
	face, err := opentype.NewFace(f.simple, &opentype.FaceOptions{
		Size:    float64(sizePx),
		DPI:     72,
		Hinting: xfont.HintingNone,
	})
	if err != nil {
		return nil, &FontLoadError{Path: f.path, Err: err}
	}
	return face, nil
}
