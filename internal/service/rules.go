package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-erp-api/internal/apperrors"
	"go-erp-api/internal/repository"
	"go-erp-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// taken reports whether another active record already holds value in column.
func taken[T any](repo repository.ResourceRepository[T], column string, value any, excludeID *uuid.UUID) validator.Lookup {
	return func(ctx context.Context) (bool, error) {
		_, err := repo.FindOne(ctx, column, value, excludeID)
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return true, nil
	}
}

// reference checks that a foreign key field points at an active record.
// Presence is left to the struct rules.
func reference[T any](ctx context.Context, v *validator.Violations, repo repository.ResourceRepository[T], field, raw string) error {
	if v.Has(field) || raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		v.Add(field, validator.MissingMessage(field))
		return nil
	}
	return v.Exists(ctx, field, func(ctx context.Context) (bool, error) {
		return repo.ExistsByID(ctx, id)
	})
}

// inUse blocks deleting a record that active dependents still point at.
func inUse[T any](repo repository.ResourceRepository[T], column, entity, dependents string) func(context.Context, uuid.UUID) error {
	return func(ctx context.Context, id uuid.UUID) error {
		n, err := repo.CountBy(ctx, column, id)
		if err != nil {
			return apperrors.Internal("count "+dependents, err)
		}
		if n > 0 {
			return apperrors.Conflict(fmt.Sprintf("%s is used by %d %s and cannot be deleted", entity, n, dependents))
		}
		return nil
	}
}

func optional(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setDecimal(dst *decimal.Decimal, n validator.Number) {
	if d, ok := n.Decimal(); ok {
		*dst = d
	}
}

func parseID(raw string) uuid.UUID {
	id, _ := uuid.Parse(raw)
	return id
}

func intOf(n validator.Number) int {
	v, _ := n.Int()
	return int(v)
}
