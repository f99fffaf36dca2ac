package service

import (
	"context"

	"github.com/seekers/backend/internal/model"
)

// MediaService manages the gallery catalog and the files behind it.
type MediaService interface {
	// List returns media matching filter, newest first.
	List(ctx context.Context, filter model.MediaFilter) ([]*model.Media, error)
	Get(ctx context.Context, id string) (*model.Media, error)
	Create(ctx context.Context, m *model.Media) error
	Update(ctx context.Context, id string, patch model.MediaPatch) (*model.Media, error)
	// Delete removes the backing file (best-effort) and then the record.
	Delete(ctx context.Context, id string) error
	// BulkCategorize moves ids to category and returns how many records changed.
	BulkCategorize(ctx context.Context, ids []string, category string) (int64, error)
	// BulkDelete removes the files of ids (best-effort, in parallel) and then the records.
	BulkDelete(ctx context.Context, ids []string) (int64, error)
}
