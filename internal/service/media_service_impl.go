package service

import (
	"context"
	"strings"

	"github.com/seekers/backend/internal/model"
	"github.com/seekers/backend/internal/repository"
	"github.com/seekers/backend/internal/storage"
)

// MediaServiceImpl は MediaService の実装
type MediaServiceImpl struct {
	repo    repository.MediaRepository
	cleaner *FileCleaner
}

// NewMediaService は MediaServiceImpl を生成する
func NewMediaService(repo repository.MediaRepository, files storage.Storage) MediaService {
	return &MediaServiceImpl{repo: repo, cleaner: NewFileCleaner(files)}
}

func (s *MediaServiceImpl) List(ctx context.Context, filter model.MediaFilter) ([]*model.Media, error) {
	return s.repo.List(ctx, filter)
}

func (s *MediaServiceImpl) Get(ctx context.Context, id string) (*model.Media, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates and stores a media record. The store assigns id and timestamps.
func (s *MediaServiceImpl) Create(ctx context.Context, m *model.Media) error {
	m.Title = strings.TrimSpace(m.Title)
	if err := m.Validate(); err != nil {
		return err
	}
	return s.repo.Create(ctx, m)
}

// Update applies patch to the stored record. Omitted fields keep their values.
func (s *MediaServiceImpl) Update(ctx context.Context, id string, patch model.MediaPatch) (*model.Media, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(m)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MediaServiceImpl) Delete(ctx context.Context, id string) error {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	s.cleaner.Remove(ctx, []*model.Media{m}).Log()
	return s.repo.Delete(ctx, id)
}

func (s *MediaServiceImpl) BulkCategorize(ctx context.Context, ids []string, category string) (int64, error) {
	ids = compactIDs(ids)
	if len(ids) == 0 {
		return 0, model.Invalid("ids", "must not be empty")
	}
	if category == "" {
		return 0, model.Invalid("category", "is required")
	}
	if !model.ValidMediaCategory(category) {
		return 0, model.Invalid("category", "must be one of %s", strings.Join(model.MediaCategories, ", "))
	}
	return s.repo.UpdateCategory(ctx, ids, category)
}

func (s *MediaServiceImpl) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	ids = compactIDs(ids)
	if len(ids) == 0 {
		return 0, model.Invalid("ids", "must not be empty")
	}
	items, err := s.repo.ListByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}
	s.cleaner.Remove(ctx, items).Log()
	return s.repo.DeleteMany(ctx, ids)
}

// compactIDs trims ids and drops blanks and duplicates, keeping order.
func compactIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
