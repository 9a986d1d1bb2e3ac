package shape

// Backend identifies which shaping path a passage was classified into.
type Backend int

const (
	// BackendSimple maps one glyph per character with per-character
	// advances; adequate for scripts without shaping requirements.
	BackendSimple Backend = iota
	// BackendComplex runs full script-aware shaping; glyph count and
	// identities may differ from the input codepoint sequence.
	BackendComplex
)

// Glyph is one positioned glyph in a shaped run. Advances and offsets are in
// pixels at the shaper's configured size.
type Glyph struct {
	ID       uint32
	XAdvance float64
	XOffset  float64
	YOffset  float64
}

// Run is the shaped form of one line of text.
type Run struct {
	Glyphs  []Glyph
	Advance float64
}

// Shaper converts text into a positioned glyph run at a fixed pixel size.
type Shaper interface {
	Shape(text string) (Run, error)
	Backend() Backend
}

// New selects the backend for a passage and returns a shaper bound to the
// font at the given pixel size. The classification happens once per passage.
func New(f *Font, text string, sizePx int) (Shaper, error) {
	if NeedsShaping(text) {
		return newComplexShaper(f, sizePx), nil
	}
	return newSimpleShaper(f, sizePx)
}
