// Package pipeline sequences a full run: passages in, finished video out.
package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"slidecast/config"
	"slidecast/encode"
	"slidecast/layout"
	"slidecast/narrate"
	"slidecast/render"
	"slidecast/shape"
	"slidecast/storage"
	"slidecast/timeline"
)

// Pipeline wires the stages together for one run. Narrator and Prober are
// injectable so tests run without a speech service or ffmpeg.
type Pipeline struct {
	Cfg      *config.Config
	Narrator narrate.Narrator
	Probe    narrate.Prober
	Picker   render.Picker // nil means random background choice
	Log      zerolog.Logger
}

// New builds a pipeline with the production adapters: the HTTP narrator and
// ffprobe. The config must already be resolved and validated.
func New(cfg *config.Config, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		Cfg:      cfg,
		Narrator: narrate.NewHTTPNarrator(cfg.NarratorURL, cfg.Voice, cfg.Rate),
		Probe:    encode.ProbeDuration,
		Log:      logger,
	}
}

// Run executes the full pipeline and writes the video to cfg.Output.
// Narration runs concurrently and is awaited in full before any frame is
// rendered; frames render concurrently bounded by the core count; encoding
// is sequential.
func (p *Pipeline) Run(ctx context.Context) error {
	cfg := p.Cfg

	passages, err := ReadPassages(cfg.Input)
	if err != nil {
		return err
	}
	if len(passages) == 0 {
		return fmt.Errorf("no passages in %s", cfg.Input)
	}
	p.Log.Info().Int("passages", len(passages)).Str("output", cfg.Output).Msg("starting run")

	fnt, err := shape.LoadFont(cfg.Font)
	if err != nil {
		return err
	}

	scratch, err := os.MkdirTemp("", "slidecast-*")
	if err != nil {
		return fmt.Errorf("scratch dir: %w", err)
	}
	defer os.RemoveAll(scratch)

	clips, err := narrate.SynthesizeAll(ctx, p.Narrator, p.Probe, passages, scratch, runtime.NumCPU())
	if err != nil {
		return err
	}
	p.Log.Info().Int("clips", len(clips)).Msg("narration complete")

	frames, err := p.renderFrames(ctx, passages, fnt, scratch)
	if err != nil {
		return err
	}

	slides := make([]timeline.Slide, len(passages))
	for i := range passages {
		slides[i] = timeline.Slide{
			FramePath:     frames[i],
			AudioPath:     clips[i].Path,
			AudioDuration: clips[i].Duration,
		}
	}
	t := timeline.Build(slides, cfg.MinDuration)
	t.MusicPath = p.musicPath()

	p.Log.Info().Float64("total_s", t.Total()).Msg("timeline built")
	enc := &encode.Encoder{Dir: scratch}

	local := cfg.Output
	if storage.IsS3URI(cfg.Output) {
		local = filepath.Join(scratch, "final.mp4")
	}
	if err := enc.Encode(ctx, t, local); err != nil {
		return err
	}

	if storage.IsS3URI(cfg.Output) {
		uploader, err := storage.NewUploader(ctx, "")
		if err != nil {
			return err
		}
		if err := uploader.Upload(ctx, cfg.Output, local); err != nil {
			return err
		}
	}
	p.Log.Info().Str("output", cfg.Output).Msg("video written")
	return nil
}

// renderFrames lays out and composites every slide, bounded by the core
// count. Results keep passage order.
func (p *Pipeline) renderFrames(ctx context.Context, passages []string, fnt *shape.Font, scratch string) ([]string, error) {
	cfg := p.Cfg
	style := render.Style{
		FontSize:     cfg.FontSize,
		TextColor:    config.MustHexColor(cfg.FontColor),
		BoxColor:     config.MustHexColor(cfg.BoxColor),
		BoxAlpha:     cfg.ClampedBoxAlpha(),
		Shadow:       cfg.EnableShadow,
		ShadowColor:  config.MustHexColor(cfg.ShadowColor),
		ShadowOffset: image.Pt(cfg.ShadowOffsetX, cfg.ShadowOffsetY),
	}
	params := layout.Params{
		CanvasWidth:  cfg.Width,
		CanvasHeight: cfg.Height,
		FontSize:     cfg.FontSize,
		Anchor:       cfg.TextPosition,
	}
	backgrounds := render.NewBackgrounds(cfg.Background, cfg.Width, cfg.Height, p.Picker)
	logo := render.LoadLogo(cfg.Logo, cfg.Width, cfg.ClampedLogoOpacity())

	frames := make([]string, len(passages))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, text := range passages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			block, err := layout.Build(text, fnt, params)
			if err != nil {
				return fmt.Errorf("layout slide %d: %w", i, err)
			}

			canvas := backgrounds.Next()
			compositor := render.NewCompositor(fnt, style)
			if err := compositor.Compose(canvas, block); err != nil {
				return fmt.Errorf("compose slide %d: %w", i, err)
			}
			logo.Stamp(canvas, cfg.LogoPosition)
			if cfg.EnableProgressBar {
				render.DrawProgress(canvas, i, len(passages), cfg.ProgressHeight, config.MustHexColor(cfg.ProgressColor))
			}

			path := filepath.Join(scratch, fmt.Sprintf("frame_%03d.png", i))
			if err := render.WriteFrame(path, canvas); err != nil {
				return err
			}
			frames[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	p.Log.Info().Int("frames", len(frames)).Msg("slides rendered")
	return frames, nil
}

// musicPath verifies the configured track exists. A missing file is a
// warning, not a failure; the video renders without music.
func (p *Pipeline) musicPath() string {
	if p.Cfg.Music == "" {
		return ""
	}
	if _, err := os.Stat(p.Cfg.Music); err != nil {
		p.Log.Warn().Str("music", p.Cfg.Music).Err(err).Msg("music track unavailable, encoding without it")
		return ""
	}
	return p.Cfg.Music
}

// ReadPassages splits the input document on non-empty lines.
func ReadPassages(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	var passages []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			passages = append(passages, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return passages, nil
}
