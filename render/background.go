package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

// Fallback fill when no background asset is configured or usable.
var solidBackground = color.RGBA{R: 40, G: 40, B: 40, A: 0xFF}

// Picker selects an index in [0, n). Injected so slide rendering stays
// reproducible under test; the default draws from math/rand.
type Picker func(n int) int

// Backgrounds resolves the background source once and serves one canvas-sized
// image per slide. A directory source picks independently per call, so the
// same file may back consecutive slides.
type Backgrounds struct {
	width, height int
	files         []string

	mu   sync.Mutex // slides render concurrently; the picker need not be safe
	pick Picker
}

// NewBackgrounds inspects the source path. An empty source means the solid
// fill. A file is used for every slide; a directory contributes its image
// files as a pool. An unreadable or empty source logs a warning and degrades
// to the solid fill rather than failing the run.
func NewBackgrounds(source string, width, height int, pick Picker) *Backgrounds {
	b := &Backgrounds{width: width, height: height, pick: pick}
	if b.pick == nil {
		b.pick = rand.Intn
	}
	if source == "" {
		return b
	}

	info, err := os.Stat(source)
	if err != nil {
		log.Warn().Str("background", source).Err(err).Msg("background source unavailable, using solid fill")
		return b
	}
	if !info.IsDir() {
		b.files = []string{source}
		return b
	}

	entries, err := os.ReadDir(source)
	if err != nil {
		log.Warn().Str("background", source).Err(err).Msg("background directory unreadable, using solid fill")
		return b
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg", ".webp", ".bmp":
			b.files = append(b.files, filepath.Join(source, e.Name()))
		}
	}
	sort.Strings(b.files)
	if len(b.files) == 0 {
		log.Warn().Str("background", source).Msg("no usable images in background directory, using solid fill")
	}
	return b
}

// Next returns a canvas for the next slide. Decode failures warn and fall
// back to the solid fill so a single bad asset cannot sink the batch.
func (b *Backgrounds) Next() *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	if len(b.files) == 0 {
		draw.Draw(canvas, canvas.Bounds(), image.NewUniform(solidBackground), image.Point{}, draw.Src)
		return canvas
	}

	b.mu.Lock()
	path := b.files[b.pick(len(b.files))]
	b.mu.Unlock()
	img, err := loadImage(path)
	if err != nil {
		log.Warn().Str("image", path).Err(err).Msg("background decode failed, using solid fill")
		draw.Draw(canvas, canvas.Bounds(), image.NewUniform(solidBackground), image.Point{}, draw.Src)
		return canvas
	}
	xdraw.BiLinear.Scale(canvas, canvas.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return canvas
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".webp":
		return webp.Decode(f)
	case ".bmp":
		return bmp.Decode(f)
	}
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
