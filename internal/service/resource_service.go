package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"go-erp-api/internal/apperrors"
	"go-erp-api/internal/model"
	"go-erp-api/internal/repository"
	"go-erp-api/pkg/logger"
	"go-erp-api/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Listing defaults
const (
	DefaultOrderBy = "id"
	DefaultLimit   = 10
	MaxLimit       = 100
)

// Mutation actions reported to the change notifier.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Input is a decoded upsert payload. A non-empty RecordID turns the upsert into an update.
type Input interface {
	RecordID() string
}

// Identity carries the optional record id of an upsert payload.
type Identity struct {
	ID string `json:"id,omitempty"`
}

func (i Identity) RecordID() string {
	return i.ID
}

type ListParams struct {
	Search   string
	OrderBy  string
	OrderDir string
	Limit    int
	Page     int
}

type ListResult struct {
	Data     []any  `json:"data"`
	Total    int64  `json:"total"`
	Page     int    `json:"page"`
	LastPage int    `json:"last_page"`
	OrderBy  string `json:"order_by"`
	OrderDir string `json:"order_dir"`
}

type UpsertResult struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// ResourceService is the list/get/upsert/delete contract shared by every master-data resource.
type ResourceService[I Input] interface {
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Get(ctx context.Context, id string) (any, error)
	Upsert(ctx context.Context, in I, actor *uuid.UUID) (*UpsertResult, error)
	Delete(ctx context.Context, id string, actor *uuid.UUID) (string, error)
}

// Definition is the per-entity variation plugged into the generic service.
type Definition[T any, I Input] struct {
	Entity   string // display name used in messages, e.g. "Unit"
	Resource string // route and metric name, e.g. "unit"

	SearchColumns []string
	// SortColumns maps accepted order_by values to columns. "id" is always accepted.
	SortColumns map[string]string
	// UniqueField is the payload field reported when the store rejects a duplicate.
	UniqueField string

	Normalize func(in I) I
	Validate  func(ctx context.Context, in I, excludeID *uuid.UUID) (validator.Violations, error)
	Build     func(in I) *T
	Merge     func(rec *T, in I)
	Response  func(rec *T) any
	// BeforeDelete may veto a delete, typically with a conflict error.
	BeforeDelete func(ctx context.Context, id uuid.UUID) error
}

type resourceService[T any, I Input] struct {
	def      Definition[T, I]
	repo     repository.ResourceRepository[T]
	notifier ChangeNotifier
}

func NewResourceService[T any, I Input](def Definition[T, I], repo repository.ResourceRepository[T], notifier ChangeNotifier) ResourceService[I] {
	sorts := map[string]string{DefaultOrderBy: "created_at"}
	for k, v := range def.SortColumns {
		sorts[k] = v
	}
	def.SortColumns = sorts
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &resourceService[T, I]{def: def, repo: repo, notifier: notifier}
}

func (s *resourceService[T, I]) List(ctx context.Context, params ListParams) (*ListResult, error) {
	orderBy := params.OrderBy
	column, ok := s.def.SortColumns[orderBy]
	if !ok {
		orderBy = DefaultOrderBy
		column = s.def.SortColumns[DefaultOrderBy]
	}
	limit := params.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	page := params.Page
	if page <= 0 {
		page = 1
	}
	ascending := strings.TrimSpace(params.OrderDir) == "1"

	q := repository.ListQuery{
		Search:        strings.TrimSpace(params.Search),
		SearchColumns: s.def.SearchColumns,
		OrderColumn:   column,
		Ascending:     ascending,
		Offset:        (page - 1) * limit,
		Limit:         limit,
	}

	total, err := s.repo.Count(ctx, q)
	if err != nil {
		return nil, apperrors.Internal("count "+s.def.Resource, err)
	}
	recs, err := s.repo.Find(ctx, q)
	if err != nil {
		return nil, apperrors.Internal("list "+s.def.Resource, err)
	}

	data := make([]any, 0, len(recs))
	for i := range recs {
		data = append(data, s.def.Response(&recs[i]))
	}

	dir := "desc"
	if ascending {
		dir = "asc"
	}
	return &ListResult{
		Data:     data,
		Total:    total,
		Page:     page,
		LastPage: int(math.Ceil(float64(total) / float64(limit))),
		OrderBy:  orderBy,
		OrderDir: dir,
	}, nil
}

func (s *resourceService[T, I]) Get(ctx context.Context, rawID string) (any, error) {
	rec, err := s.find(ctx, rawID)
	if err != nil {
		return nil, err
	}
	return s.def.Response(rec), nil
}

func (s *resourceService[T, I]) Upsert(ctx context.Context, in I, actor *uuid.UUID) (*UpsertResult, error) {
	if s.def.Normalize != nil {
		in = s.def.Normalize(in)
	}

	var existing *T
	if raw := strings.TrimSpace(in.RecordID()); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, apperrors.FieldError("id", "The id is not a valid identifier.")
		}
		existing, err = s.repo.FindByID(ctx, id)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Internal("find "+s.def.Resource, err)
		}
	}

	var excludeID *uuid.UUID
	if existing != nil {
		id := baseOf(existing).ID
		excludeID = &id
	}
	violations, err := s.def.Validate(ctx, in, excludeID)
	if err != nil {
		return nil, apperrors.Internal("validate "+s.def.Resource, err)
	}
	if len(violations) > 0 {
		return nil, apperrors.NewValidation(violations)
	}

	if existing != nil {
		s.def.Merge(existing, in)
		baseOf(existing).UpdatedBy = actor
		if err := s.repo.Save(ctx, existing); err != nil {
			return nil, s.storeError("update", err)
		}
		return s.done(ctx, ActionUpdated, existing, actor), nil
	}

	rec := s.def.Build(in)
	base := baseOf(rec)
	base.Status = model.StatusActive
	base.CreatedBy = actor
	base.UpdatedBy = actor
	if err := s.repo.Insert(ctx, rec); err != nil {
		return nil, s.storeError("insert", err)
	}
	return s.done(ctx, ActionCreated, rec, actor), nil
}

func (s *resourceService[T, I]) Delete(ctx context.Context, rawID string, actor *uuid.UUID) (string, error) {
	rec, err := s.find(ctx, rawID)
	if err != nil {
		return "", err
	}
	id := baseOf(rec).ID

	if s.def.BeforeDelete != nil {
		if err := s.def.BeforeDelete(ctx, id); err != nil {
			return "", err
		}
	}

	deleted, err := s.repo.DeleteByID(ctx, id, actor)
	if err != nil {
		return "", apperrors.Internal("delete "+s.def.Resource, err)
	}
	if !deleted {
		return "", s.notFound()
	}

	message := s.def.Entity + " deleted successfully"
	s.notifier.Notify(ctx, Change{Resource: s.def.Resource, Action: ActionDeleted, ID: id, ActorID: actor, Message: message})
	logger.FromContext(ctx).Info(message, zap.String("resource", s.def.Resource), zap.Stringer("id", id))
	return message, nil
}

func (s *resourceService[T, I]) find(ctx context.Context, rawID string) (*T, error) {
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return nil, s.notFound()
	}
	rec, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, s.notFound()
	}
	if err != nil {
		return nil, apperrors.Internal("find "+s.def.Resource, err)
	}
	return rec, nil
}

func (s *resourceService[T, I]) done(ctx context.Context, action string, rec *T, actor *uuid.UUID) *UpsertResult {
	id := baseOf(rec).ID
	message := s.def.Entity + " " + action + " successfully"
	s.notifier.Notify(ctx, Change{Resource: s.def.Resource, Action: action, ID: id, ActorID: actor, Message: message})
	logger.FromContext(ctx).Info(message, zap.String("resource", s.def.Resource), zap.Stringer("id", id))
	return &UpsertResult{Message: message, Data: s.def.Response(rec)}
}

// storeError reports a lost uniqueness race the same way as the pre-check.
func (s *resourceService[T, I]) storeError(op string, err error) error {
	if errors.Is(err, apperrors.ErrDuplicate) && s.def.UniqueField != "" {
		return apperrors.FieldError(s.def.UniqueField, validator.TakenMessage(s.def.UniqueField))
	}
	return apperrors.Internal(op+" "+s.def.Resource, err)
}

func (s *resourceService[T, I]) notFound() error {
	return apperrors.NotFound(s.def.Entity + " not found")
}

func baseOf[T any](rec *T) *model.BaseModel {
	return any(rec).(model.Record).Base()
}
