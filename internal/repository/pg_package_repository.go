package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seekers/backend/internal/model"
)

// PgPackageRepository は PackageRepository の PostgreSQL 実装
type PgPackageRepository struct {
	pool *pgxpool.Pool
}

// NewPgPackageRepository は PgPackageRepository を生成する
func NewPgPackageRepository(pool *pgxpool.Pool) *PgPackageRepository {
	return &PgPackageRepository{pool: pool}
}

var _ PackageRepository = (*PgPackageRepository)(nil)

const packageSelectCols = `id, title, description, price, features, image, popular, active, created_at, updated_at`

func scanPackage(scan func(...any) error) (*model.Package, error) {
	var p model.Package
	if err := scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.Features, &p.Image,
		&p.Popular, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, pgErr(err)
	}
	if p.Features == nil {
		p.Features = []string{}
	}
	return &p, nil
}

// List はパッケージを人気順・新しい順で返す。IncludeInactive が false なら active のみ
func (r *PgPackageRepository) List(ctx context.Context, opts model.PackageListOptions) ([]*model.Package, error) {
	where := ` WHERE active = TRUE`
	if opts.IncludeInactive {
		where = ""
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+packageSelectCols+` FROM packages`+where+` ORDER BY popular DESC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*model.Package{}
	for rows.Next() {
		p, err := scanPackage(rows.Scan)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *PgPackageRepository) GetByID(ctx context.Context, id string) (*model.Package, error) {
	if !isUUID(id) {
		return nil, ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `SELECT `+packageSelectCols+` FROM packages WHERE id = $1`, id)
	return scanPackage(row.Scan)
}

func (r *PgPackageRepository) Create(ctx context.Context, p *model.Package) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO packages (title, description, price, features, image, popular, active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		p.Title, p.Description, p.Price, p.Features, p.Image, p.Popular, p.Active,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return pgErr(err)
}

func (r *PgPackageRepository) Update(ctx context.Context, p *model.Package) error {
	if !isUUID(p.ID) {
		return ErrNotFound
	}
	err := r.pool.QueryRow(ctx,
		`UPDATE packages SET title = $2, description = $3, price = $4, features = $5, image = $6,
		        popular = $7, active = $8, updated_at = NOW()
		 WHERE id = $1
		 RETURNING created_at, updated_at`,
		p.ID, p.Title, p.Description, p.Price, p.Features, p.Image, p.Popular, p.Active,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	return pgErr(err)
}

func (r *PgPackageRepository) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return ErrNotFound
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM packages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgPackageRepository) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM packages WHERE active = TRUE`).Scan(&n)
	return n, err
}

func (r *PgPackageRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM packages`).Scan(&n)
	return n, err
}

func (r *PgPackageRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM packages`)
	return err
}
