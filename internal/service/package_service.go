package service

import (
	"context"

	"github.com/seekers/backend/internal/model"
	"github.com/seekers/backend/internal/repository"
)

// PackageService は料金パッケージのビジネスロジック
type PackageService interface {
	// List returns active packages, or all of them with opts.IncludeInactive.
	List(ctx context.Context, opts model.PackageListOptions) ([]*model.Package, error)
	Get(ctx context.Context, id string) (*model.Package, error)
	Create(ctx context.Context, in model.PackageInput) (*model.Package, error)
	Update(ctx context.Context, id string, patch model.PackagePatch) (*model.Package, error)
	Delete(ctx context.Context, id string) error
}

// PackageServiceImpl は PackageService の実装
type PackageServiceImpl struct {
	repo repository.PackageRepository
}

// NewPackageService は PackageServiceImpl を生成する
func NewPackageService(repo repository.PackageRepository) PackageService {
	return &PackageServiceImpl{repo: repo}
}

func (s *PackageServiceImpl) List(ctx context.Context, opts model.PackageListOptions) ([]*model.Package, error) {
	return s.repo.List(ctx, opts)
}

func (s *PackageServiceImpl) Get(ctx context.Context, id string) (*model.Package, error) {
	return s.repo.GetByID(ctx, id)
}

// Create は入力を検証しパッケージを作成する。active は省略時 true
func (s *PackageServiceImpl) Create(ctx context.Context, in model.PackageInput) (*model.Package, error) {
	p := model.NewPackage(in)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PackageServiceImpl) Update(ctx context.Context, id string, patch model.PackagePatch) (*model.Package, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(p)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PackageServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
