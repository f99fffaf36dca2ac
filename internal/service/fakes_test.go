package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/seekers/backend/internal/model"
	"github.com/seekers/backend/internal/repository"
)

// ---------------------------------------------------------------------------
// In-memory repositories for tests where state matters
// ---------------------------------------------------------------------------

type idGen struct {
	mu sync.Mutex
	n  int
}

func (g *idGen) next(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s%d", prefix, g.n)
}

var ids idGen

// clock hands out strictly increasing timestamps so newest-first ordering is stable.
var clock = struct {
	sync.Mutex
	t time.Time
}{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}

func tick() time.Time {
	clock.Lock()
	defer clock.Unlock()
	clock.t = clock.t.Add(time.Second)
	return clock.t
}

type memMediaRepo struct {
	mu    sync.Mutex
	items map[string]*model.Media
	// deleteManyErr fails DeleteMany when set.
	deleteManyErr error
}

func newMemMediaRepo(items ...*model.Media) *memMediaRepo {
	r := &memMediaRepo{items: map[string]*model.Media{}}
	for _, m := range items {
		_ = r.Create(context.Background(), m)
	}
	return r
}

var _ repository.MediaRepository = (*memMediaRepo)(nil)

func (r *memMediaRepo) sorted(keep func(*model.Media) bool) []*model.Media {
	out := []*model.Media{}
	for _, m := range r.items {
		if keep(m) {
			c := *m
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *memMediaRepo) List(_ context.Context, f model.MediaFilter) ([]*model.Media, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(func(m *model.Media) bool {
		return (f.Category == "" || m.Category == f.Category) && (f.Type == "" || m.Type == f.Type)
	}), nil
}

func (r *memMediaRepo) GetByID(_ context.Context, id string) (*model.Media, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *m
	return &c, nil
}

func (r *memMediaRepo) ListByIDs(_ context.Context, ids []string) ([]*model.Media, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	return r.sorted(func(m *model.Media) bool { return want[m.ID] }), nil
}

func (r *memMediaRepo) Create(_ context.Context, m *model.Media) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = ids.next("m")
	m.CreatedAt = tick()
	m.UpdatedAt = m.CreatedAt
	c := *m
	r.items[m.ID] = &c
	return nil
}

func (r *memMediaRepo) Update(_ context.Context, m *model.Media) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[m.ID]; !ok {
		return repository.ErrNotFound
	}
	m.UpdatedAt = tick()
	c := *m
	r.items[m.ID] = &c
	return nil
}

func (r *memMediaRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *memMediaRepo) UpdateCategory(_ context.Context, ids []string, category string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, id := range ids {
		if m, ok := r.items[id]; ok {
			m.Category = category
			n++
		}
	}
	return n, nil
}

func (r *memMediaRepo) DeleteMany(_ context.Context, ids []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteManyErr != nil {
		return 0, r.deleteManyErr
	}
	var n int64
	for _, id := range ids {
		if _, ok := r.items[id]; ok {
			delete(r.items, id)
			n++
		}
	}
	return n, nil
}

func (r *memMediaRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.items)), nil
}

func (r *memMediaRepo) DeleteAll(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = map[string]*model.Media{}
	return nil
}

type memBackgroundRepo struct {
	mu    sync.Mutex
	items map[string]*model.Background
	// beforeCreate runs inside Create before the uniqueness check.
	beforeCreate func()
}

func newMemBackgroundRepo() *memBackgroundRepo {
	return &memBackgroundRepo{items: map[string]*model.Background{}}
}

var _ repository.BackgroundRepository = (*memBackgroundRepo)(nil)

func (r *memBackgroundRepo) List(context.Context) ([]*model.Background, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*model.Background{}
	for _, b := range r.items {
		c := *b
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Section < out[j].Section })
	return out, nil
}

func (r *memBackgroundRepo) GetByID(_ context.Context, id string) (*model.Background, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *b
	return &c, nil
}

func (r *memBackgroundRepo) GetBySection(_ context.Context, section string) (*model.Background, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.items {
		if b.Section == section {
			c := *b
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memBackgroundRepo) sectionTaken(section, exceptID string) bool {
	for id, b := range r.items {
		if b.Section == section && id != exceptID {
			return true
		}
	}
	return false
}

func (r *memBackgroundRepo) Create(_ context.Context, b *model.Background) error {
	if r.beforeCreate != nil {
		hook := r.beforeCreate
		r.beforeCreate = nil
		hook()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sectionTaken(b.Section, "") {
		return repository.ErrConflict
	}
	b.ID = ids.next("b")
	b.CreatedAt = tick()
	b.UpdatedAt = b.CreatedAt
	c := *b
	r.items[b.ID] = &c
	return nil
}

func (r *memBackgroundRepo) Update(_ context.Context, b *model.Background) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[b.ID]; !ok {
		return repository.ErrNotFound
	}
	if r.sectionTaken(b.Section, b.ID) {
		return repository.ErrConflict
	}
	b.UpdatedAt = tick()
	c := *b
	r.items[b.ID] = &c
	return nil
}

func (r *memBackgroundRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *memBackgroundRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.items)), nil
}

func (r *memBackgroundRepo) DeleteAll(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = map[string]*model.Background{}
	return nil
}

type memPackageRepo struct {
	mu    sync.Mutex
	items []*model.Package
}

var _ repository.PackageRepository = (*memPackageRepo)(nil)

func (r *memPackageRepo) List(_ context.Context, opts model.PackageListOptions) ([]*model.Package, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*model.Package{}
	for _, p := range r.items {
		if p.Active || opts.IncludeInactive {
			c := *p
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Popular != out[j].Popular {
			return out[i].Popular
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memPackageRepo) find(id string) (int, bool) {
	for i, p := range r.items {
		if p.ID == id {
			return i, true
		}
	}
	return -1, false
}

func (r *memPackageRepo) GetByID(_ context.Context, id string) (*model.Package, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.find(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *r.items[i]
	return &c, nil
}

func (r *memPackageRepo) Create(_ context.Context, p *model.Package) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = ids.next("p")
	p.CreatedAt = tick()
	p.UpdatedAt = p.CreatedAt
	c := *p
	r.items = append(r.items, &c)
	return nil
}

func (r *memPackageRepo) Update(_ context.Context, p *model.Package) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.find(p.ID)
	if !ok {
		return repository.ErrNotFound
	}
	p.UpdatedAt = tick()
	c := *p
	r.items[i] = &c
	return nil
}

func (r *memPackageRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.find(id)
	if !ok {
		return repository.ErrNotFound
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	return nil
}

func (r *memPackageRepo) CountActive(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.items {
		if p.Active {
			n++
		}
	}
	return n, nil
}

func (r *memPackageRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.items)), nil
}

func (r *memPackageRepo) DeleteAll(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
	return nil
}

type memInquiryRepo struct {
	mu    sync.Mutex
	items map[string]*model.Inquiry
}

func newMemInquiryRepo() *memInquiryRepo {
	return &memInquiryRepo{items: map[string]*model.Inquiry{}}
}

var _ repository.InquiryRepository = (*memInquiryRepo)(nil)

func (r *memInquiryRepo) List(_ context.Context, opts model.InquiryListOptions) ([]*model.Inquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*model.Inquiry{}
	for _, q := range r.items {
		if opts.Status == "" || opts.Status == "all" || q.Status == opts.Status {
			c := *q
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memInquiryRepo) GetByID(_ context.Context, id string) (*model.Inquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *q
	return &c, nil
}

func (r *memInquiryRepo) Create(_ context.Context, q *model.Inquiry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	q.ID = ids.next("q")
	q.CreatedAt = tick()
	q.UpdatedAt = q.CreatedAt
	c := *q
	r.items[q.ID] = &c
	return nil
}

func (r *memInquiryRepo) Update(_ context.Context, q *model.Inquiry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[q.ID]; !ok {
		return repository.ErrNotFound
	}
	q.UpdatedAt = tick()
	c := *q
	r.items[q.ID] = &c
	return nil
}

func (r *memInquiryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *memInquiryRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.items)), nil
}

func (r *memInquiryRepo) DeleteAll(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = map[string]*model.Inquiry{}
	return nil
}

// ---------------------------------------------------------------------------
// Storage mock
// ---------------------------------------------------------------------------

type mockStorage struct {
	mu       sync.Mutex
	saved    map[string][]byte
	deleted  []string
	saveErr  func(key string) error
	failKeys map[string]error
}

func newMockStorage() *mockStorage {
	return &mockStorage{saved: map[string][]byte{}, failKeys: map[string]error{}}
}

func (s *mockStorage) Save(_ context.Context, key string, data io.Reader, _ string) (string, error) {
	if s.saveErr != nil {
		if err := s.saveErr(key); err != nil {
			return "", err
		}
	}
	b, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved[key] = b
	return "/uploads/" + key, nil
}

func (s *mockStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, key)
	if err, ok := s.failKeys[key]; ok {
		return err
	}
	delete(s.saved, key)
	return nil
}
