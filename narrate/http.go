package narrate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// HTTPNarrator calls a speech service over HTTP. The service accepts a JSON
// body {text, voice, rate} and answers with raw audio bytes.
type HTTPNarrator struct {
	URL    string
	Voice  string
	Rate   string
	Client *http.Client
}

func NewHTTPNarrator(url, voice, rate string) *HTTPNarrator {
	return &HTTPNarrator{
		URL:    url,
		Voice:  voice,
		Rate:   rate,
		Client: &http.Client{Timeout: 120 * time.Second},
	}
}

type synthesisRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
	Rate  string `json:"rate"`
}

func (n *HTTPNarrator) Synthesize(ctx context.Context, text, path string) error {
	body, err := json.Marshal(synthesisRequest{Text: text, Voice: n.Voice, Rate: n.Rate})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.Client.Do(req)
	if err != nil {
		return fmt.Errorf("speech service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("speech service returned %d: %s", resp.StatusCode, msg)
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("write clip %s: %w", path, err)
	}
	return nil
}
