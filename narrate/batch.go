package narrate

import (
	"context"
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// SynthesizeAll narrates every passage concurrently, at most workers at a
// time, and probes each clip's duration. Results keep the passage order
// regardless of completion order. Any failure cancels the remaining work
// and the whole batch fails.
func SynthesizeAll(ctx context.Context, n Narrator, probe Prober, passages []string, dir string, workers int) ([]Clip, error) {
	if workers < 1 {
		workers = 1
	}
	clips := make([]Clip, len(passages))

	g, ctx := errgroup.WithContext(ctx)
	semaphore := make(chan struct{}, workers)
	for i, text := range passages {
		g.Go(func() error {
			select {
			case semaphore <- struct{}{}:
				defer func() { <-semaphore }()
			case <-ctx.Done():
				return ctx.Err()
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			path := filepath.Join(dir, fmt.Sprintf("narration_%03d.mp3", i))
			if err := n.Synthesize(ctx, text, path); err != nil {
				return &SynthesisError{Index: i, Err: err}
			}
			duration, err := probe(ctx, path)
			if err != nil {
				return &SynthesisError{Index: i, Err: err}
			}
			clips[i] = Clip{Path: path, Duration: duration}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return clips, nil
}
