// Package api exposes render jobs over HTTP.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slidecast/config"
	"slidecast/jobs"
)

// Server serves render requests. Each request becomes an asynchronous job;
// clients poll the job endpoint for completion.
type Server struct {
	base      config.Config // template config; requests override per-job fields
	store     jobs.Store
	outputDir string
}

func NewServer(base config.Config, store jobs.Store, outputDir string) *Server {
	return &Server{base: base, store: store, outputDir: outputDir}
}

// Router constructs the gin engine with registered routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", s.handleHealth)
	r.POST("/api/render", s.handleRender)
	r.GET("/api/jobs/:id", s.handleJob)
	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) handleJob(c *gin.Context) {
	job, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if err == jobs.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, job)
}
