package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-erp-api/internal/apperrors"
	"go-erp-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListQuery describes one page of a filtered, sorted listing.
type ListQuery struct {
	Search        string
	SearchColumns []string
	OrderColumn   string
	Ascending     bool
	Offset        int
	Limit         int
}

// ResourceRepository is the persistence contract shared by every master-data entity.
// Reads only ever see active records.
type ResourceRepository[T any] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindOne(ctx context.Context, column string, value any, excludeID *uuid.UUID) (*T, error)
	Find(ctx context.Context, q ListQuery) ([]T, error)
	Count(ctx context.Context, q ListQuery) (int64, error)
	CountBy(ctx context.Context, column string, value any) (int64, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	Insert(ctx context.Context, rec *T) error
	Save(ctx context.Context, rec *T) error
	DeleteByID(ctx context.Context, id uuid.UUID, actor *uuid.UUID) (bool, error)
}

type resourceRepo[T any] struct {
	db       *gorm.DB
	preloads []string
}

// NewResourceRepo builds the GORM repository for T. Associations named in preloads
// are loaded on every read.
func NewResourceRepo[T any](db *gorm.DB, preloads ...string) ResourceRepository[T] {
	return &resourceRepo[T]{db: db, preloads: preloads}
}

func (r *resourceRepo[T]) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(new(T)).Where("status = ?", model.StatusActive)
}

func (r *resourceRepo[T]) withPreloads(tx *gorm.DB) *gorm.DB {
	for _, p := range r.preloads {
		tx = tx.Preload(p)
	}
	return tx
}

func (r *resourceRepo[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var rec T
	if err := r.withPreloads(r.active(ctx)).Where("id = ?", id).First(&rec).Error; err != nil {
		return nil, translate(err)
	}
	return &rec, nil
}

func (r *resourceRepo[T]) FindOne(ctx context.Context, column string, value any, excludeID *uuid.UUID) (*T, error) {
	tx := r.active(ctx).Where(clause.Eq{Column: clause.Column{Name: column}, Value: value})
	if excludeID != nil {
		tx = tx.Where("id <> ?", *excludeID)
	}

	var rec T
	if err := tx.First(&rec).Error; err != nil {
		return nil, translate(err)
	}
	return &rec, nil
}

func (r *resourceRepo[T]) filtered(ctx context.Context, q ListQuery) *gorm.DB {
	tx := r.active(ctx)
	if q.Search == "" || len(q.SearchColumns) == 0 {
		return tx
	}

	pattern := "%" + escapeLike(q.Search) + "%"
	exprs := make([]clause.Expression, 0, len(q.SearchColumns))
	for _, col := range q.SearchColumns {
		exprs = append(exprs, clause.Expr{
			SQL:  "? ILIKE ?",
			Vars: []any{clause.Column{Name: col}, pattern},
		})
	}
	return tx.Where(clause.Or(exprs...))
}

func (r *resourceRepo[T]) Find(ctx context.Context, q ListQuery) ([]T, error) {
	tx := r.withPreloads(r.filtered(ctx, q))
	if q.OrderColumn != "" {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: q.OrderColumn}, Desc: !q.Ascending})
	}
	// stable pages when the sort column has ties
	tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: !q.Ascending})

	recs := make([]T, 0)
	if err := tx.Offset(q.Offset).Limit(q.Limit).Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *resourceRepo[T]) Count(ctx context.Context, q ListQuery) (int64, error) {
	var total int64
	err := r.filtered(ctx, q).Count(&total).Error
	return total, err
}

func (r *resourceRepo[T]) CountBy(ctx context.Context, column string, value any) (int64, error) {
	var total int64
	err := r.active(ctx).Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).Count(&total).Error
	return total, err
}

func (r *resourceRepo[T]) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var total int64
	if err := r.active(ctx).Where("id = ?", id).Count(&total).Error; err != nil {
		return false, err
	}
	return total > 0, nil
}

func (r *resourceRepo[T]) Insert(ctx context.Context, rec *T) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(rec).Error)
}

func (r *resourceRepo[T]) Save(ctx context.Context, rec *T) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(rec).Error)
}

// DeleteByID soft-deletes an active record and reports whether one was affected.
func (r *resourceRepo[T]) DeleteByID(ctx context.Context, id uuid.UUID, actor *uuid.UUID) (bool, error) {
	res := r.active(ctx).Where("id = ?", id).Updates(map[string]any{
		"status":     model.StatusDeleted,
		"deleted_at": time.Now(),
		"deleted_by": actor,
	})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errors.Join(apperrors.ErrDuplicate, err)
	default:
		return err
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
