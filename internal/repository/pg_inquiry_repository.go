package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seekers/backend/internal/model"
)

// PgInquiryRepository is the PostgreSQL implementation of InquiryRepository.
type PgInquiryRepository struct {
	pool *pgxpool.Pool
}

// NewPgInquiryRepository creates a PgInquiryRepository backed by the given pool.
func NewPgInquiryRepository(pool *pgxpool.Pool) *PgInquiryRepository {
	return &PgInquiryRepository{pool: pool}
}

// Ensure PgInquiryRepository implements InquiryRepository at compile time.
var _ InquiryRepository = (*PgInquiryRepository)(nil)

const inquirySelectCols = `id, name, email, phone, event_type, event_date, message, status, notes, created_at, updated_at`

func scanInquiry(scan func(...any) error) (*model.Inquiry, error) {
	var q model.Inquiry
	if err := scan(&q.ID, &q.Name, &q.Email, &q.Phone, &q.EventType, &q.EventDate,
		&q.Message, &q.Status, &q.Notes, &q.CreatedAt, &q.UpdatedAt); err != nil {
		return nil, pgErr(err)
	}
	return &q, nil
}

// List returns inquiries newest first. Status "" or "all" returns every inquiry.
func (r *PgInquiryRepository) List(ctx context.Context, opts model.InquiryListOptions) ([]*model.Inquiry, error) {
	var args []any
	where := ""
	if status := strings.TrimSpace(opts.Status); status != "" && status != "all" {
		args = append(args, status)
		where = " WHERE status = $1"
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+inquirySelectCols+` FROM inquiries`+where+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*model.Inquiry{}
	for rows.Next() {
		q, err := scanInquiry(rows.Scan)
		if err != nil {
			return nil, err
		}
		list = append(list, q)
	}
	return list, rows.Err()
}

func (r *PgInquiryRepository) GetByID(ctx context.Context, id string) (*model.Inquiry, error) {
	if !isUUID(id) {
		return nil, ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `SELECT `+inquirySelectCols+` FROM inquiries WHERE id = $1`, id)
	return scanInquiry(row.Scan)
}

// Create inserts a new inquiries row and populates q.ID and timestamps
// from the RETURNING clause.
func (r *PgInquiryRepository) Create(ctx context.Context, q *model.Inquiry) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO inquiries (name, email, phone, event_type, event_date, message, status, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		q.Name, q.Email, q.Phone, q.EventType, q.EventDate, q.Message, q.Status, q.Notes,
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
	return pgErr(err)
}

// Update persists the mutable fields of an inquiry.
func (r *PgInquiryRepository) Update(ctx context.Context, q *model.Inquiry) error {
	if !isUUID(q.ID) {
		return ErrNotFound
	}
	err := r.pool.QueryRow(ctx,
		`UPDATE inquiries SET name = $2, email = $3, phone = $4, event_type = $5, event_date = $6,
		        message = $7, status = $8, notes = $9, updated_at = NOW()
		 WHERE id = $1
		 RETURNING created_at, updated_at`,
		q.ID, q.Name, q.Email, q.Phone, q.EventType, q.EventDate, q.Message, q.Status, q.Notes,
	).Scan(&q.CreatedAt, &q.UpdatedAt)
	return pgErr(err)
}

func (r *PgInquiryRepository) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return ErrNotFound
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM inquiries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgInquiryRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM inquiries`).Scan(&n)
	return n, err
}

func (r *PgInquiryRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM inquiries`)
	return err
}
