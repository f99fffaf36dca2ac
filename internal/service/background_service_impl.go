package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/seekers/backend/internal/model"
	"github.com/seekers/backend/internal/repository"
)

// BackgroundServiceImpl は BackgroundService の実装
type BackgroundServiceImpl struct {
	repo repository.BackgroundRepository
}

// NewBackgroundService は BackgroundServiceImpl を生成する
func NewBackgroundService(repo repository.BackgroundRepository) BackgroundService {
	return &BackgroundServiceImpl{repo: repo}
}

func (s *BackgroundServiceImpl) List(ctx context.Context) ([]*model.Background, error) {
	return s.repo.List(ctx)
}

func (s *BackgroundServiceImpl) Get(ctx context.Context, id string) (*model.Background, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *BackgroundServiceImpl) Upsert(ctx context.Context, patch model.BackgroundPatch) (*model.Background, bool, error) {
	section, err := sectionOf(patch)
	if err != nil {
		return nil, false, err
	}
	patch.Section = &section

	existing, err := s.repo.GetBySection(ctx, section)
	switch {
	case err == nil:
		bg, err := s.apply(ctx, existing, patch)
		return bg, false, err
	case !errors.Is(err, repository.ErrNotFound):
		return nil, false, err
	}

	bg := model.NewBackground(section)
	patch.Apply(bg)
	if err := bg.Validate(); err != nil {
		return nil, false, err
	}
	err = s.repo.Create(ctx, bg)
	if errors.Is(err, repository.ErrConflict) {
		// Another request created the section between lookup and insert.
		slog.Debug("background create raced, retrying as update", "section", section)
		existing, err := s.repo.GetBySection(ctx, section)
		if err != nil {
			return nil, false, err
		}
		bg, err := s.apply(ctx, existing, patch)
		return bg, false, err
	}
	if err != nil {
		return nil, false, err
	}
	return bg, true, nil
}

func (s *BackgroundServiceImpl) Update(ctx context.Context, id string, patch model.BackgroundPatch) (*model.Background, error) {
	bg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, bg, patch)
}

func (s *BackgroundServiceImpl) apply(ctx context.Context, bg *model.Background, patch model.BackgroundPatch) (*model.Background, error) {
	patch.Apply(bg)
	if err := bg.Validate(); err != nil {
		return nil, err
	}
	err := s.repo.Update(ctx, bg)
	if errors.Is(err, repository.ErrConflict) {
		return nil, model.Invalid("section", "%q already has a background", bg.Section)
	}
	if err != nil {
		return nil, err
	}
	return bg, nil
}

func (s *BackgroundServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Resolve re-reads the store on every call.
func (s *BackgroundServiceImpl) Resolve(ctx context.Context, section string) (*model.ResolvedBackground, error) {
	if !model.ValidSection(section) {
		return nil, model.Invalid("section", "must be one of %s", strings.Join(model.Sections, ", "))
	}
	bg, err := s.repo.GetBySection(ctx, section)
	if errors.Is(err, repository.ErrNotFound) {
		return model.DefaultResolvedBackground(section), nil
	}
	if err != nil {
		return nil, err
	}
	if !bg.IsActive {
		return model.DefaultResolvedBackground(section), nil
	}
	return bg.Resolve(), nil
}

func sectionOf(patch model.BackgroundPatch) (string, error) {
	if patch.Section == nil || strings.TrimSpace(*patch.Section) == "" {
		return "", model.Invalid("section", "is required")
	}
	section := strings.TrimSpace(*patch.Section)
	if !model.ValidSection(section) {
		return "", model.Invalid("section", "must be one of %s", strings.Join(model.Sections, ", "))
	}
	return section, nil
}
