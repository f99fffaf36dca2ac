package repository

import (
	"context"

	"github.com/seekers/backend/internal/model"
)

// DB は DB 接続の生存確認を行うインターフェース
type DB interface {
	Ping(ctx context.Context) error
}

// MediaRepository persists gallery media records.
type MediaRepository interface {
	// List returns media matching filter, newest first.
	List(ctx context.Context, filter model.MediaFilter) ([]*model.Media, error)
	GetByID(ctx context.Context, id string) (*model.Media, error)
	// ListByIDs returns the records that exist among ids. Unknown ids are skipped.
	ListByIDs(ctx context.Context, ids []string) ([]*model.Media, error)
	Create(ctx context.Context, m *model.Media) error
	Update(ctx context.Context, m *model.Media) error
	Delete(ctx context.Context, id string) error
	// UpdateCategory sets category on every record in ids and returns how many changed.
	UpdateCategory(ctx context.Context, ids []string, category string) (int64, error)
	// DeleteMany removes every record in ids and returns how many were removed.
	DeleteMany(ctx context.Context, ids []string) (int64, error)
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
}

// PackageRepository persists service packages.
type PackageRepository interface {
	// List returns packages popular first, then newest first.
	List(ctx context.Context, opts model.PackageListOptions) ([]*model.Package, error)
	GetByID(ctx context.Context, id string) (*model.Package, error)
	Create(ctx context.Context, p *model.Package) error
	Update(ctx context.Context, p *model.Package) error
	Delete(ctx context.Context, id string) error
	// CountActive counts packages with active=true.
	CountActive(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
}

// InquiryRepository persists contact-form inquiries.
type InquiryRepository interface {
	// List returns inquiries newest first, filtered by status.
	List(ctx context.Context, opts model.InquiryListOptions) ([]*model.Inquiry, error)
	GetByID(ctx context.Context, id string) (*model.Inquiry, error)
	Create(ctx context.Context, q *model.Inquiry) error
	Update(ctx context.Context, q *model.Inquiry) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
}

// BackgroundRepository persists per-section background configuration.
// Reads populate Background.Media when MediaID resolves to an existing record.
type BackgroundRepository interface {
	// List returns every background sorted by section.
	List(ctx context.Context) ([]*model.Background, error)
	GetByID(ctx context.Context, id string) (*model.Background, error)
	GetBySection(ctx context.Context, section string) (*model.Background, error)
	// Create returns ErrConflict when section already has a record.
	Create(ctx context.Context, b *model.Background) error
	Update(ctx context.Context, b *model.Background) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
}
