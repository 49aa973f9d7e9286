package service

import (
	"context"
	"errors"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"go-erp-api/internal/apperrors"
	"go-erp-api/internal/model"
	"go-erp-api/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockRepo[T any] struct {
	mock.Mock
}

func (m *mockRepo[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	args := m.Called(ctx, id)
	rec, _ := args.Get(0).(*T)
	return rec, args.Error(1)
}

func (m *mockRepo[T]) FindOne(ctx context.Context, column string, value any, excludeID *uuid.UUID) (*T, error) {
	args := m.Called(ctx, column, value, excludeID)
	rec, _ := args.Get(0).(*T)
	return rec, args.Error(1)
}

func (m *mockRepo[T]) Find(ctx context.Context, q repository.ListQuery) ([]T, error) {
	args := m.Called(ctx, q)
	recs, _ := args.Get(0).([]T)
	return recs, args.Error(1)
}

func (m *mockRepo[T]) Count(ctx context.Context, q repository.ListQuery) (int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepo[T]) CountBy(ctx context.Context, column string, value any) (int64, error) {
	args := m.Called(ctx, column, value)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepo[T]) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo[T]) Insert(ctx context.Context, rec *T) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *mockRepo[T]) Save(ctx context.Context, rec *T) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *mockRepo[T]) DeleteByID(ctx context.Context, id uuid.UUID, actor *uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, actor)
	return args.Bool(0), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, c Change) {
	m.Called(ctx, c)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) FindAll(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *mockUserRepo) UpdateStatus(ctx context.Context, userID uuid.UUID, status int, version string, updatedBy *uuid.UUID) error {
	return m.Called(ctx, userID, status, version, updatedBy).Error(0)
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, userID uuid.UUID, hashedPassword string) error {
	return m.Called(ctx, userID, hashedPassword).Error(0)
}

func (m *mockUserRepo) UpdateTokenVersion(ctx context.Context, userID uuid.UUID, version string) error {
	return m.Called(ctx, userID, version).Error(0)
}

func (m *mockUserRepo) RecordLogin(ctx context.Context, userID uuid.UUID, version string, at time.Time) error {
	return m.Called(ctx, userID, version, at).Error(0)
}

// memoryRepo is an in-process ResourceRepository. field exposes the columns
// used by FindOne, CountBy and search; unique names the column backed by a
// unique index among active rows.
type memoryRepo[T any] struct {
	mu     sync.Mutex
	rows   []T
	field  func(rec *T, column string) any
	unique string
	clock  func() time.Time
}

func newMemoryRepo[T any](field func(rec *T, column string) any, unique string) *memoryRepo[T] {
	var tick int64
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return &memoryRepo[T]{
		field:  field,
		unique: unique,
		clock: func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Second)
		},
	}
}

func base[T any](rec *T) *model.BaseModel {
	return any(rec).(model.Record).Base()
}

func (r *memoryRepo[T]) active() []*T {
	out := make([]*T, 0, len(r.rows))
	for i := range r.rows {
		if base(&r.rows[i]).Status == model.StatusActive {
			out = append(out, &r.rows[i])
		}
	}
	return out
}

func (r *memoryRepo[T]) FindByID(_ context.Context, id uuid.UUID) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.active() {
		if base(rec).ID == id {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memoryRepo[T]) FindOne(_ context.Context, column string, value any, excludeID *uuid.UUID) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.active() {
		if excludeID != nil && base(rec).ID == *excludeID {
			continue
		}
		if r.field(rec, column) == value {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memoryRepo[T]) filtered(q repository.ListQuery) []*T {
	var out []*T
	needle := strings.ToLower(q.Search)
	for _, rec := range r.active() {
		if needle == "" || slices.ContainsFunc(q.SearchColumns, func(col string) bool {
			s, _ := r.field(rec, col).(string)
			return strings.Contains(strings.ToLower(s), needle)
		}) {
			out = append(out, rec)
		}
	}
	return out
}

func (r *memoryRepo[T]) Find(_ context.Context, q repository.ListQuery) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	recs := r.filtered(q)
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := base(recs[i]).CreatedAt, base(recs[j]).CreatedAt
		if q.Ascending {
			return a.Before(b)
		}
		return a.After(b)
	})

	out := make([]T, 0)
	for i := q.Offset; i < len(recs) && i < q.Offset+q.Limit; i++ {
		out = append(out, *recs[i])
	}
	return out, nil
}

func (r *memoryRepo[T]) Count(_ context.Context, q repository.ListQuery) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.filtered(q))), nil
}

func (r *memoryRepo[T]) CountBy(_ context.Context, column string, value any) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, rec := range r.active() {
		if r.field(rec, column) == value {
			n++
		}
	}
	return n, nil
}

func (r *memoryRepo[T]) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := r.FindByID(ctx, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *memoryRepo[T]) collides(rec *T) bool {
	if r.unique == "" {
		return false
	}
	for _, other := range r.active() {
		if base(other).ID != base(rec).ID && r.field(other, r.unique) == r.field(rec, r.unique) {
			return true
		}
	}
	return false
}

func (r *memoryRepo[T]) Insert(_ context.Context, rec *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.collides(rec) {
		return apperrors.ErrDuplicate
	}
	b := base(rec)
	b.ID = uuid.New()
	if b.Status == 0 {
		b.Status = model.StatusActive
	}
	b.CreatedAt = r.clock()
	b.UpdatedAt = b.CreatedAt
	r.rows = append(r.rows, *rec)
	return nil
}

func (r *memoryRepo[T]) Save(_ context.Context, rec *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.collides(rec) {
		return apperrors.ErrDuplicate
	}
	for i := range r.rows {
		if base(&r.rows[i]).ID == base(rec).ID {
			base(rec).UpdatedAt = r.clock()
			r.rows[i] = *rec
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *memoryRepo[T]) DeleteByID(_ context.Context, id uuid.UUID, actor *uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.active() {
		b := base(rec)
		if b.ID == id {
			now := r.clock()
			b.Status = model.StatusDeleted
			b.DeletedAt = &now
			b.DeletedBy = actor
			return true, nil
		}
	}
	return false, nil
}

func unitField(u *model.Unit, column string) any {
	switch column {
	case "name":
		return u.Name
	case "description":
		return u.Description
	}
	return nil
}

func itemField(i *model.Item, column string) any {
	switch column {
	case "name":
		return i.Name
	case "code":
		return i.Code
	case "unit_id":
		return i.UnitID
	}
	return nil
}
