package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"slidecast/config"
	"slidecast/jobs"
)

func newTestServer(t *testing.T) (*Server, *jobs.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := jobs.NewMemoryStore()
	base := config.Default()
	return NewServer(base, store, t.TempDir()), store
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	s.Router().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestJobLookup(t *testing.T) {
	s, store := newTestServer(t)
	job := &jobs.Job{ID: "abc", Status: jobs.StatusDone, Output: "abc.mp4", CreatedAt: time.Now()}
	if err := store.Create(context.Background(), job); err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/jobs/abc", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var got jobs.Job
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Status != jobs.StatusDone || got.Output != "abc.mp4" {
		t.Fatalf("got %+v", got)
	}

	w = httptest.NewRecorder()
	s.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/jobs/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestRenderResponseIsSnapshot(t *testing.T) {
	s, store := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/render", strings.NewReader(`{"passages": ["hello"]}`))
	req.Header.Set("Content-Type", "application/json")
	s.Router().ServeHTTP(w, req)
	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", w.Code)
	}

	var got jobs.Job
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.ID == "" {
		t.Fatal("response has no job id")
	}
	// The worker mutates its own job; the response body must reflect the
	// state at accept time regardless of how far the worker has gotten.
	if got.Status != jobs.StatusQueued {
		t.Fatalf("response status = %q, want %q", got.Status, jobs.StatusQueued)
	}

	// The base config has no font or voice, so the worker fails validation
	// quickly; wait for it to reach a terminal state.
	deadline := time.After(5 * time.Second)
	for {
		stored, err := store.Get(context.Background(), got.ID)
		if err != nil {
			t.Fatal(err)
		}
		if stored.Status == jobs.StatusFailed || stored.Status == jobs.StatusDone {
			if stored.Status != jobs.StatusFailed {
				t.Fatalf("job status = %q, want %q", stored.Status, jobs.StatusFailed)
			}
			return
		}
		select {
		case <-deadline:
			t.Fatalf("job never finished, last status %q", stored.Status)
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestRenderRejectsEmptyPassages(t *testing.T) {
	s, _ := newTestServer(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/render", strings.NewReader(`{"passages": []}`))
	req.Header.Set("Content-Type", "application/json")
	s.Router().ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestJobConfigOverrides(t *testing.T) {
	s, _ := newTestServer(t)
	cfg, err := s.jobConfig(RenderRequest{
		Passages: []string{"hi"},
		Voice:    "en-GB-RyanNeural",
		Style:    "caption",
		Canvas:   "shorts",
	})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Voice != "en-GB-RyanNeural" {
		t.Errorf("voice = %q", cfg.Voice)
	}
	if cfg.TextPosition != config.TextTop {
		t.Errorf("caption preset not resolved: %q", cfg.TextPosition)
	}
	if cfg.Width != 1080 || cfg.Height != 1920 {
		t.Errorf("canvas = %dx%d", cfg.Width, cfg.Height)
	}

	if _, err := s.jobConfig(RenderRequest{Passages: []string{"hi"}, Canvas: "imax"}); err == nil {
		t.Fatal("expected error for unknown canvas")
	}
}
