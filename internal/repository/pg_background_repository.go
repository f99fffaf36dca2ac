package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seekers/backend/internal/model"
)

// PgBackgroundRepository は BackgroundRepository の PostgreSQL 実装
type PgBackgroundRepository struct {
	pool  *pgxpool.Pool
	media MediaRepository
}

// NewPgBackgroundRepository は PgBackgroundRepository を生成する
func NewPgBackgroundRepository(pool *pgxpool.Pool) *PgBackgroundRepository {
	return &PgBackgroundRepository{pool: pool, media: NewPgMediaRepository(pool)}
}

var _ BackgroundRepository = (*PgBackgroundRepository)(nil)

const backgroundSelectCols = `id, section, media_type, media_url, media_id, fallback_image_url, opacity,
	overlay_color, position, is_active, title, description, created_at, updated_at`

func scanBackground(scan func(...any) error) (*model.Background, error) {
	var b model.Background
	if err := scan(&b.ID, &b.Section, &b.MediaType, &b.MediaURL, &b.MediaID, &b.FallbackImageURL,
		&b.Opacity, &b.OverlayColor, &b.Position, &b.IsActive, &b.Title, &b.Description,
		&b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, pgErr(err)
	}
	return &b, nil
}

func (r *PgBackgroundRepository) getOne(ctx context.Context, where string, arg any) (*model.Background, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+backgroundSelectCols+` FROM backgrounds WHERE `+where, arg)
	b, err := scanBackground(row.Scan)
	if err != nil {
		return nil, err
	}
	if err := populateMedia(ctx, r.media, b); err != nil {
		return nil, err
	}
	return b, nil
}

// List は全セクションの背景をセクション名順で返す
func (r *PgBackgroundRepository) List(ctx context.Context) ([]*model.Background, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+backgroundSelectCols+` FROM backgrounds ORDER BY section`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*model.Background{}
	for rows.Next() {
		b, err := scanBackground(rows.Scan)
		if err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := populateMedia(ctx, r.media, list...); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *PgBackgroundRepository) GetByID(ctx context.Context, id string) (*model.Background, error) {
	if !isUUID(id) {
		return nil, ErrNotFound
	}
	return r.getOne(ctx, `id = $1`, id)
}

func (r *PgBackgroundRepository) GetBySection(ctx context.Context, section string) (*model.Background, error) {
	return r.getOne(ctx, `section = $1`, section)
}

// Create は背景を登録する。同一セクションが存在する場合は ErrConflict
func (r *PgBackgroundRepository) Create(ctx context.Context, b *model.Background) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO backgrounds (section, media_type, media_url, media_id, fallback_image_url, opacity,
		                          overlay_color, position, is_active, title, description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id, created_at, updated_at`,
		b.Section, b.MediaType, b.MediaURL, b.MediaID, b.FallbackImageURL, b.Opacity,
		b.OverlayColor, b.Position, b.IsActive, b.Title, b.Description,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return pgErr(err)
	}
	return populateMedia(ctx, r.media, b)
}

// Update は背景の全フィールドを上書きする。セクション変更で重複した場合は ErrConflict
func (r *PgBackgroundRepository) Update(ctx context.Context, b *model.Background) error {
	if !isUUID(b.ID) {
		return ErrNotFound
	}
	err := r.pool.QueryRow(ctx,
		`UPDATE backgrounds SET section = $2, media_type = $3, media_url = $4, media_id = $5,
		        fallback_image_url = $6, opacity = $7, overlay_color = $8, position = $9,
		        is_active = $10, title = $11, description = $12, updated_at = NOW()
		 WHERE id = $1
		 RETURNING created_at, updated_at`,
		b.ID, b.Section, b.MediaType, b.MediaURL, b.MediaID, b.FallbackImageURL, b.Opacity,
		b.OverlayColor, b.Position, b.IsActive, b.Title, b.Description,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return pgErr(err)
	}
	return populateMedia(ctx, r.media, b)
}

func (r *PgBackgroundRepository) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return ErrNotFound
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM backgrounds WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgBackgroundRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM backgrounds`).Scan(&n)
	return n, err
}

func (r *PgBackgroundRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM backgrounds`)
	return err
}
