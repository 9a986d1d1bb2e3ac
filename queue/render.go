package queue

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"slidecast/config"
	"slidecast/jobs"
	"slidecast/pipeline"
)

// RenderMessage is the payload published by upstream systems. Passages and
// voice are required; everything else falls back to the worker's base
// configuration.
type RenderMessage struct {
	ID       string   `json:"id"`
	Passages []string `json:"passages"`
	Voice    string   `json:"voice"`
	Style    string   `json:"style"`
	Output   string   `json:"output"` // s3://bucket/key
}

// NewRenderHandler builds the handler the consumer runs for each message.
// Renders happen inline on the consumer goroutine so offsets are only
// marked after a successful render.
func NewRenderHandler(base config.Config, store jobs.Store, outputDir string) Handler {
	return &TypedHandler[RenderMessage]{
		AlwaysMark: true,
		Validate: func(msg *RenderMessage) bool {
			if len(msg.Passages) == 0 {
				log.Warn().Str("id", msg.ID).Msg("discarding message without passages")
				return false
			}
			return true
		},
		Process: func(ctx context.Context, msg *RenderMessage) error {
			return renderMessage(ctx, base, store, outputDir, msg)
		},
	}
}

func renderMessage(ctx context.Context, base config.Config, store jobs.Store, outputDir string, msg *RenderMessage) error {
	cfg := base
	if msg.Voice != "" {
		cfg.Voice = msg.Voice
	}
	if msg.Style != "" {
		cfg.Style = msg.Style
	}
	cfg.ResolveStyle()

	id := msg.ID
	if id == "" {
		id = uuid.NewString()
	}
	cfg.Output = msg.Output
	if cfg.Output == "" {
		cfg.Output = filepath.Join(outputDir, id+".mp4")
	}

	input, err := os.CreateTemp("", fmt.Sprintf("passages-%s-*.txt", id))
	if err != nil {
		return err
	}
	defer os.Remove(input.Name())
	if _, err := input.WriteString(strings.Join(msg.Passages, "\n") + "\n"); err != nil {
		input.Close()
		return err
	}
	input.Close()
	cfg.Input = input.Name()

	job := &jobs.Job{
		ID:        id,
		Status:    jobs.StatusRendering,
		Output:    cfg.Output,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := store.Create(ctx, job); err != nil {
		return err
	}

	logger := log.With().Str("job", id).Logger()
	finish := func(status, errMsg string) {
		job.Status = status
		job.Error = errMsg
		job.UpdatedAt = time.Now()
		if err := store.Update(ctx, job); err != nil {
			logger.Error().Err(err).Msg("job store update failed")
		}
	}

	if err := cfg.Validate(); err != nil {
		finish(jobs.StatusFailed, err.Error())
		return err
	}
	if err := pipeline.New(&cfg, logger).Run(ctx); err != nil {
		finish(jobs.StatusFailed, err.Error())
		return err
	}
	finish(jobs.StatusDone, "")
	return nil
}
