// Package encode drives ffmpeg: one clip per slide, a lossless concat of
// the clips, and a finishing pass that mixes music and applies fades.
package encode

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"slidecast/timeline"
)

const (
	framesPerSecond = 24
	// Looped background music is mixed well under the narration.
	musicVolume = 0.1
)

// EncodeError reports which encoding stage failed.
type EncodeError struct {
	Stage string
	Err   error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s: %v", e.Stage, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// Encoder renders a timeline into the final video. Scratch files go to Dir.
type Encoder struct {
	Dir string
}

// Encode runs the three stages in order. The context is checked between
// stages; a running ffmpeg invocation is not interrupted mid-flight.
func (e *Encoder) Encode(ctx context.Context, t *timeline.Timeline, outputPath string) error {
	clips := make([]string, len(t.Slides))
	for i, s := range t.Slides {
		if err := ctx.Err(); err != nil {
			return err
		}
		clip := filepath.Join(e.Dir, fmt.Sprintf("clip_%03d.mp4", i))
		if err := e.slideClip(s, clip); err != nil {
			return &EncodeError{Stage: fmt.Sprintf("slide %d", i), Err: err}
		}
		clips[i] = clip
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	joined := filepath.Join(e.Dir, "joined.mp4")
	if err := e.concat(clips, joined); err != nil {
		return &EncodeError{Stage: "concat", Err: err}
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.finish(joined, t, outputPath); err != nil {
		return &EncodeError{Stage: "finish", Err: err}
	}
	return nil
}

// slideClip loops the still frame for the slide's duration and pads the
// narration with silence when it runs short.
func (e *Encoder) slideClip(s timeline.Slide, out string) error {
	frame := ffmpeg.Input(s.FramePath, ffmpeg.KwArgs{"loop": 1, "framerate": framesPerSecond})
	audio := ffmpeg.Input(s.AudioPath)
	return ffmpeg.Output([]*ffmpeg.Stream{frame, audio}, out, ffmpeg.KwArgs{
		"t":       fmt.Sprintf("%.3f", s.Duration),
		"af":      "apad",
		"c:v":     "libx264",
		"preset":  "fast",
		"pix_fmt": "yuv420p",
		"r":       framesPerSecond,
		"c:a":     "aac",
		"b:a":     "192k",
	}).OverWriteOutput().Run()
}

// concat joins the clips without re-encoding through the concat demuxer.
func (e *Encoder) concat(clips []string, out string) error {
	list := filepath.Join(e.Dir, "concat.txt")
	var b strings.Builder
	for _, c := range clips {
		fmt.Fprintf(&b, "file '%s'\n", filepath.ToSlash(c))
	}
	if err := os.WriteFile(list, []byte(b.String()), 0o644); err != nil {
		return err
	}
	return ffmpeg.Input(list, ffmpeg.KwArgs{"f": "concat", "safe": 0}).
		Output(out, ffmpeg.KwArgs{"c": "copy"}).
		OverWriteOutput().Run()
}

// finish applies fades and, when configured, loops background music under
// the narration. The mix keeps the narration level untouched and never
// extends the video past the joined cut.
func (e *Encoder) finish(joined string, t *timeline.Timeline, out string) error {
	total := t.Total()
	fade := t.Fade()
	videoFade := fmt.Sprintf("fade=t=in:st=0:d=%.3f,fade=t=out:st=%.3f:d=%.3f", fade, total-fade, fade)
	audioFade := fmt.Sprintf("afade=t=in:st=0:d=%.3f,afade=t=out:st=%.3f:d=%.3f", fade, total-fade, fade)

	main := ffmpeg.Input(joined)
	kwargs := ffmpeg.KwArgs{
		"map":      []string{"[v]", "[a]"},
		"c:v":      "libx264",
		"preset":   "fast",
		"pix_fmt":  "yuv420p",
		"r":        framesPerSecond,
		"c:a":      "aac",
		"b:a":      "192k",
		"movflags": "+faststart",
	}

	if t.MusicPath == "" {
		kwargs["filter_complex"] = fmt.Sprintf("[0:v]%s[v];[0:a]%s[a]", videoFade, audioFade)
		return ffmpeg.Output([]*ffmpeg.Stream{main}, out, kwargs).OverWriteOutput().Run()
	}

	music := ffmpeg.Input(t.MusicPath, ffmpeg.KwArgs{"stream_loop": -1})
	kwargs["filter_complex"] = fmt.Sprintf(
		"[0:v]%s[v];[1:a]volume=%.2f[bg];[0:a][bg]amix=inputs=2:duration=first:normalize=0[mix];[mix]%s[a]",
		videoFade, musicVolume, audioFade,
	)
	return ffmpeg.Output([]*ffmpeg.Stream{main, music}, out, kwargs).OverWriteOutput().Run()
}
