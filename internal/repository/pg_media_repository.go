package repository

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seekers/backend/internal/model"
)

// PgMediaRepository は MediaRepository の PostgreSQL 実装
type PgMediaRepository struct {
	pool *pgxpool.Pool
}

// NewPgMediaRepository は PgMediaRepository を生成する
func NewPgMediaRepository(pool *pgxpool.Pool) *PgMediaRepository {
	return &PgMediaRepository{pool: pool}
}

var _ MediaRepository = (*PgMediaRepository)(nil)

const mediaSelectCols = `id, url, type, category, title, description, filename, size, mime_type,
	thumbnail_url, metadata, created_at, updated_at`

func scanMedia(scan func(...any) error) (*model.Media, error) {
	var m model.Media
	var meta []byte
	if err := scan(&m.ID, &m.URL, &m.Type, &m.Category, &m.Title, &m.Description, &m.Filename,
		&m.Size, &m.MimeType, &m.ThumbnailURL, &meta, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, pgErr(err)
	}
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &m.Metadata); err != nil {
			return nil, err
		}
	}
	return &m, nil
}

func (r *PgMediaRepository) query(ctx context.Context, sql string, args ...any) ([]*model.Media, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*model.Media{}
	for rows.Next() {
		m, err := scanMedia(rows.Scan)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// List はフィルタ条件に一致するメディアを新しい順で返す
func (r *PgMediaRepository) List(ctx context.Context, filter model.MediaFilter) ([]*model.Media, error) {
	var conditions []string
	var args []any
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, "category = $"+strconv.Itoa(len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		conditions = append(conditions, "type = $"+strconv.Itoa(len(args)))
	}
	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}
	return r.query(ctx, `SELECT `+mediaSelectCols+` FROM media`+where+` ORDER BY created_at DESC`, args...)
}

// GetByID は ID でメディアを取得する
func (r *PgMediaRepository) GetByID(ctx context.Context, id string) (*model.Media, error) {
	if !isUUID(id) {
		return nil, ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `SELECT `+mediaSelectCols+` FROM media WHERE id = $1`, id)
	return scanMedia(row.Scan)
}

// ListByIDs は存在する ID のメディアのみを返す
func (r *PgMediaRepository) ListByIDs(ctx context.Context, ids []string) ([]*model.Media, error) {
	ids = uuidsOnly(ids)
	if len(ids) == 0 {
		return []*model.Media{}, nil
	}
	return r.query(ctx, `SELECT `+mediaSelectCols+` FROM media WHERE id = ANY($1::uuid[]) ORDER BY created_at DESC`, ids)
}

// Create はメディアを登録し、ID とタイムスタンプを設定する
func (r *PgMediaRepository) Create(ctx context.Context, m *model.Media) error {
	meta, err := json.Marshal(m.Metadata)
	if err != nil {
		return err
	}
	err = r.pool.QueryRow(ctx,
		`INSERT INTO media (url, type, category, title, description, filename, size, mime_type, thumbnail_url, metadata)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at, updated_at`,
		m.URL, m.Type, m.Category, m.Title, m.Description, m.Filename, m.Size, m.MimeType, m.ThumbnailURL, meta,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	return pgErr(err)
}

// Update はメディアの全フィールドを上書きする
func (r *PgMediaRepository) Update(ctx context.Context, m *model.Media) error {
	if !isUUID(m.ID) {
		return ErrNotFound
	}
	meta, err := json.Marshal(m.Metadata)
	if err != nil {
		return err
	}
	err = r.pool.QueryRow(ctx,
		`UPDATE media SET url = $2, type = $3, category = $4, title = $5, description = $6, filename = $7,
		        size = $8, mime_type = $9, thumbnail_url = $10, metadata = $11, updated_at = NOW()
		 WHERE id = $1
		 RETURNING created_at, updated_at`,
		m.ID, m.URL, m.Type, m.Category, m.Title, m.Description, m.Filename, m.Size, m.MimeType, m.ThumbnailURL, meta,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
	return pgErr(err)
}

// Delete はメディアを削除する
func (r *PgMediaRepository) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return ErrNotFound
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM media WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateCategory は複数メディアのカテゴリを一括変更する
func (r *PgMediaRepository) UpdateCategory(ctx context.Context, ids []string, category string) (int64, error) {
	ids = uuidsOnly(ids)
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE media SET category = $2, updated_at = NOW() WHERE id = ANY($1::uuid[])`, ids, category)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// DeleteMany は複数メディアを一括削除する
func (r *PgMediaRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	ids = uuidsOnly(ids)
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM media WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *PgMediaRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM media`).Scan(&n)
	return n, err
}

func (r *PgMediaRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM media`)
	return err
}
