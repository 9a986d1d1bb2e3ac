package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"slidecast/config"
	"slidecast/jobs"
	"slidecast/pipeline"
)

// RenderRequest is the JSON body for POST /api/render. Zero-valued fields
// fall back to the server's base configuration.
type RenderRequest struct {
	Passages []string `json:"passages" binding:"required"`

	Voice        string  `json:"voice"`
	Rate         string  `json:"rate"`
	Style        string  `json:"style"`
	Canvas       string  `json:"canvas"`
	TextPosition string  `json:"text_position"`
	MinDuration  float64 `json:"min_duration"`
	Output       string  `json:"output"` // s3://bucket/key to publish off-node
}

func (s *Server) handleRender(c *gin.Context) {
	var req RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Passages) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "passages are required"})
		return
	}

	cfg, err := s.jobConfig(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job := &jobs.Job{
		ID:        uuid.NewString(),
		Status:    jobs.StatusQueued,
		Output:    cfg.Output,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if cfg.Output == "" {
		cfg.Output = filepath.Join(s.outputDir, job.ID+".mp4")
		job.Output = cfg.Output
	}
	if err := s.store.Create(c.Request.Context(), job); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// The request returns as soon as the job is queued; rendering can take
	// minutes. The response serializes a snapshot taken before the worker
	// goroutine starts mutating the job.
	snapshot := *job
	go s.runJob(job, cfg, req.Passages)

	c.JSON(http.StatusAccepted, snapshot)
}

func (s *Server) jobConfig(req RenderRequest) (cfg config.Config, err error) {
	cfg = s.base
	if req.Voice != "" {
		cfg.Voice = req.Voice
	}
	if req.Rate != "" {
		cfg.Rate = req.Rate
	}
	if req.Style != "" {
		cfg.Style = req.Style
	}
	if req.Canvas != "" {
		cfg.CanvasPreset = req.Canvas
	}
	if req.TextPosition != "" {
		cfg.TextPosition = req.TextPosition
	}
	if req.MinDuration > 0 {
		cfg.MinDuration = req.MinDuration
	}
	cfg.Output = req.Output

	cfg.ResolveStyle()
	if err := cfg.ResolveCanvas(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (s *Server) runJob(job *jobs.Job, cfg config.Config, passages []string) {
	ctx := context.Background()
	logger := log.With().Str("job", job.ID).Logger()

	update := func(status, errMsg string) {
		job.Status = status
		job.Error = errMsg
		job.UpdatedAt = time.Now()
		if err := s.store.Update(ctx, job); err != nil {
			logger.Error().Err(err).Msg("job store update failed")
		}
	}

	input, err := writePassages(job.ID, passages)
	if err != nil {
		update(jobs.StatusFailed, err.Error())
		return
	}
	defer os.Remove(input)
	cfg.Input = input

	if err := cfg.Validate(); err != nil {
		update(jobs.StatusFailed, err.Error())
		return
	}

	update(jobs.StatusRendering, "")
	p := pipeline.New(&cfg, logger)
	if err := p.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("render failed")
		update(jobs.StatusFailed, err.Error())
		return
	}
	update(jobs.StatusDone, "")
}

func writePassages(id string, passages []string) (string, error) {
	f, err := os.CreateTemp("", fmt.Sprintf("passages-%s-*.txt", id))
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := f.WriteString(strings.Join(passages, "\n") + "\n"); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
