package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/seekers/backend/internal/model"
	"github.com/seekers/backend/internal/repository"
)

// SeedService populates an empty store with sample content.
type SeedService interface {
	// IsSeeded reports whether the store has at least one package and one background.
	IsSeeded(ctx context.Context) (bool, error)
	// SeedIfNeeded inserts the sample data unless the store is already seeded.
	SeedIfNeeded(ctx context.Context) (*model.SeedResult, error)
}

// SeedServiceImpl は SeedService の実装
type SeedServiceImpl struct {
	store *repository.Store
	// clear empties every collection before inserting.
	clear bool
	now   func() time.Time
}

// NewSeedService は SeedServiceImpl を生成する
func NewSeedService(store *repository.Store, clearFirst bool) *SeedServiceImpl {
	return &SeedServiceImpl{store: store, clear: clearFirst, now: time.Now}
}

func (s *SeedServiceImpl) IsSeeded(ctx context.Context) (bool, error) {
	packages, err := s.store.Packages.Count(ctx)
	if err != nil {
		return false, err
	}
	backgrounds, err := s.store.Backgrounds.Count(ctx)
	if err != nil {
		return false, err
	}
	return packages > 0 && backgrounds > 0, nil
}

func (s *SeedServiceImpl) SeedIfNeeded(ctx context.Context) (*model.SeedResult, error) {
	seeded, err := s.IsSeeded(ctx)
	if err != nil {
		return nil, fmt.Errorf("check seeded: %w", err)
	}
	if seeded {
		slog.Info("database already seeded, skipping")
		return &model.SeedResult{Success: true, Message: "Database already seeded"}, nil
	}

	if s.clear {
		slog.Warn("clearing existing data before seeding")
		if err := s.clearAll(ctx); err != nil {
			return nil, err
		}
	}

	var counts model.SeedCounts
	media, err := s.seedMedia(ctx)
	if err != nil {
		return nil, err
	}
	counts.Media = len(media)

	if counts.Packages, err = s.seedPackages(ctx); err != nil {
		return nil, err
	}
	if counts.Backgrounds, err = s.seedBackgrounds(ctx, media); err != nil {
		return nil, err
	}
	if counts.Inquiries, err = s.seedInquiries(ctx); err != nil {
		return nil, err
	}

	slog.Info("database seeded",
		"media", counts.Media, "packages", counts.Packages,
		"backgrounds", counts.Backgrounds, "inquiries", counts.Inquiries)
	return &model.SeedResult{Success: true, Message: "Database seeded successfully", Data: &counts}, nil
}

func (s *SeedServiceImpl) clearAll(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"backgrounds", s.store.Backgrounds.DeleteAll},
		{"media", s.store.Media.DeleteAll},
		{"packages", s.store.Packages.DeleteAll},
		{"inquiries", s.store.Inquiries.DeleteAll},
	}
	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("clear %s: %w", step.name, err)
		}
	}
	return nil
}

// seedMedia inserts sample media when the collection is empty and returns the
// inserted records. Existing media are left alone and never linked.
func (s *SeedServiceImpl) seedMedia(ctx context.Context) ([]*model.Media, error) {
	n, err := s.store.Media.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count media: %w", err)
	}
	if n > 0 {
		return nil, nil
	}
	items := seedMedia()
	for _, m := range items {
		if err := s.store.Media.Create(ctx, m); err != nil {
			return nil, fmt.Errorf("seed media: %w", err)
		}
	}
	return items, nil
}

func (s *SeedServiceImpl) seedPackages(ctx context.Context) (int, error) {
	n, err := s.store.Packages.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count packages: %w", err)
	}
	if n > 0 {
		return 0, nil
	}
	inputs := seedPackages()
	for _, in := range inputs {
		if err := s.store.Packages.Create(ctx, model.NewPackage(in)); err != nil {
			return 0, fmt.Errorf("seed packages: %w", err)
		}
	}
	return len(inputs), nil
}

// seedBackgrounds creates one background per section that has none, linking the
// first ones to the freshly seeded media.
func (s *SeedServiceImpl) seedBackgrounds(ctx context.Context, media []*model.Media) (int, error) {
	created := 0
	for i, section := range model.Sections {
		bg := model.NewBackground(section)
		bg.MediaType = model.MediaTypeImage
		bg.MediaURL = "/placeholder.jpg"
		bg.Title = section + " section background"
		if i < len(media) {
			bg.MediaID = &media[i].ID
			bg.MediaURL = media[i].URL
		}
		err := s.store.Backgrounds.Create(ctx, bg)
		if errors.Is(err, repository.ErrConflict) {
			continue
		}
		if err != nil {
			return created, fmt.Errorf("seed background %s: %w", section, err)
		}
		created++
	}
	return created, nil
}

func (s *SeedServiceImpl) seedInquiries(ctx context.Context) (int, error) {
	n, err := s.store.Inquiries.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count inquiries: %w", err)
	}
	if n > 0 {
		return 0, nil
	}
	items := seedInquiries(s.now())
	for _, q := range items {
		if err := s.store.Inquiries.Create(ctx, q); err != nil {
			return 0, fmt.Errorf("seed inquiries: %w", err)
		}
	}
	return len(items), nil
}
