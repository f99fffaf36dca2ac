package service

import (
	"context"
	"fmt"

	"github.com/seekers/backend/internal/model"
	"github.com/seekers/backend/internal/repository"
)

// StatsService computes the admin dashboard counters.
type StatsService interface {
	Get(ctx context.Context) (*model.AdminStats, error)
}

type statsServiceImpl struct {
	packages  repository.PackageRepository
	media     repository.MediaRepository
	inquiries repository.InquiryRepository
}

// NewStatsService は StatsService を生成する
func NewStatsService(packages repository.PackageRepository, media repository.MediaRepository, inquiries repository.InquiryRepository) StatsService {
	return &statsServiceImpl{packages: packages, media: media, inquiries: inquiries}
}

// Get counts active packages, all media and all inquiries.
func (s *statsServiceImpl) Get(ctx context.Context) (*model.AdminStats, error) {
	var stats model.AdminStats
	var err error
	if stats.Packages, err = s.packages.CountActive(ctx); err != nil {
		return nil, fmt.Errorf("count packages: %w", err)
	}
	if stats.Media, err = s.media.Count(ctx); err != nil {
		return nil, fmt.Errorf("count media: %w", err)
	}
	if stats.Inquiries, err = s.inquiries.Count(ctx); err != nil {
		return nil, fmt.Errorf("count inquiries: %w", err)
	}
	return &stats, nil
}
