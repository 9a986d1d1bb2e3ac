// Package timeline assembles per-slide durations into the schedule the
// encoder executes. It owns no media handling; it only does arithmetic over
// probed narration lengths.
package timeline

// Slide pairs one rendered frame with its narration clip and the screen
// time the encoder must give it.
type Slide struct {
	Index     int
	FramePath string
	AudioPath string
	// AudioDuration is the probed narration length in seconds.
	AudioDuration float64
	// Duration is the on-screen time: the narration length, raised to the
	// minimum slide duration when the clip is shorter. The gap is padded
	// with silence at encode time.
	Duration float64
}

// Timeline is the full render schedule for one video.
type Timeline struct {
	Slides []Slide
	// MusicPath is the optional looping background track.
	MusicPath string
}

const defaultFade = 1.0

// Build floors every slide at minDuration. Narration longer than the floor
// is never cut.
func Build(slides []Slide, minDuration float64) *Timeline {
	out := make([]Slide, len(slides))
	for i, s := range slides {
		s.Index = i
		s.Duration = s.AudioDuration
		if s.Duration < minDuration {
			s.Duration = minDuration
		}
		out[i] = s
	}
	return &Timeline{Slides: out}
}

// Total returns the video length in seconds.
func (t *Timeline) Total() float64 {
	var sum float64
	for _, s := range t.Slides {
		sum += s.Duration
	}
	return sum
}

// Fade returns the fade-in/out length: one second, clamped to half the
// total so short videos are never fully faded.
func (t *Timeline) Fade() float64 {
	if half := t.Total() / 2; half < defaultFade {
		return half
	}
	return defaultFade
}
