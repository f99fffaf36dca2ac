package service

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/seekers/backend/internal/metrics"
	"github.com/seekers/backend/internal/model"
	"github.com/seekers/backend/internal/storage"
)

// maxConcurrentCleanup bounds parallel file deletions in a bulk delete.
const maxConcurrentCleanup = 8

// FileCleaner removes the files behind media records on a best-effort basis.
// A failed removal never blocks deleting the record.
type FileCleaner struct {
	files storage.Storage
}

// NewFileCleaner は FileCleaner を生成する
func NewFileCleaner(files storage.Storage) *FileCleaner {
	return &FileCleaner{files: files}
}

// CleanupResult is the outcome of one Remove call.
type CleanupResult struct {
	Removed int
	Skipped int
	// Failed maps filename to the removal error.
	Failed map[string]error
}

// Log reports failures at WARN. Callers log the result and move on.
func (r CleanupResult) Log() {
	for filename, err := range r.Failed {
		slog.Warn("media file cleanup failed", "filename", filename, "error", err)
	}
	if r.Removed+r.Skipped+len(r.Failed) > 1 {
		slog.Info("media file cleanup finished",
			"removed", r.Removed, "skipped", r.Skipped, "failed", len(r.Failed))
	}
}

// Remove deletes the files of items with at most maxConcurrentCleanup in flight.
// Placeholder media have no file and are skipped.
func (c *FileCleaner) Remove(ctx context.Context, items []*model.Media) CleanupResult {
	res := CleanupResult{Failed: map[string]error{}}
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(maxConcurrentCleanup)
	for _, m := range items {
		if m.IsPlaceholder() || m.Filename == "" {
			res.Skipped++
			continue
		}
		filename := m.Filename
		g.Go(func() error {
			err := c.files.Delete(ctx, filename)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				res.Failed[filename] = err
				metrics.FileCleanupFailed()
				return nil
			}
			res.Removed++
			return nil
		})
	}
	_ = g.Wait()
	return res
}
