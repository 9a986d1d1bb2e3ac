// Package narrate turns passages into speech clips through a TTS service
// and measures each clip for the timeline.
package narrate

import (
	"context"
	"fmt"
)

// Clip is one synthesized narration file with its probed length.
type Clip struct {
	Path     string
	Duration float64
}

// Narrator is the provider boundary. Implementations write the synthesized
// audio to path.
type Narrator interface {
	Synthesize(ctx context.Context, text, path string) error
}

// Prober measures an audio file's duration in seconds.
type Prober func(ctx context.Context, path string) (float64, error)

// SynthesisError reports a failed synthesis for one passage. Index is the
// passage's position in the input order.
type SynthesisError struct {
	Index int
	Err   error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("synthesize passage %d: %v", e.Index, e.Err)
}

func (e *SynthesisError) Unwrap() error { return e.Err }
