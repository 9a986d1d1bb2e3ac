package shape

// Codepoint range covering the Brahmic scripts (Devanagari through Tibetan,
// including Bengali, Tamil, Telugu, Kannada, Malayalam and Gujarati). Text
// containing any rune in this range needs full shaping: combining marks,
// reordering and contextual forms mean glyph count can differ from rune
// count.
const (
	complexRangeLo = 'ऀ'
	complexRangeHi = '࿿'
)

// NeedsShaping classifies a whole passage. The decision is per passage, not
// per character: one complex rune sends the entire passage down the complex
// path.
func NeedsShaping(text string) bool {
	for _, r := range text {
		if r >= complexRangeLo && r <= complexRangeHi {
			return true
		}
	}
	return false
}
