package service

import (
	"context"
	"strings"

	"go-erp-api/internal/model"
	"go-erp-api/internal/repository"
	"go-erp-api/pkg/validator"

	"github.com/google/uuid"
)

type UnitInput struct {
	Identity
	Name        string `json:"name" validate:"required_trimmed,max=100"`
	Description string `json:"description" validate:"required_trimmed"`
}

func NewUnitService(units repository.ResourceRepository[model.Unit], items repository.ResourceRepository[model.Item], notifier ChangeNotifier) ResourceService[UnitInput] {
	return NewResourceService(Definition[model.Unit, UnitInput]{
		Entity:        "Unit",
		Resource:      "unit",
		SearchColumns: []string{"name", "description"},
		SortColumns: map[string]string{
			"name":        "name",
			"description": "description",
			"created_at":  "created_at",
			"updated_at":  "updated_at",
		},
		UniqueField: "name",
		Normalize: func(in UnitInput) UnitInput {
			in.Name = strings.TrimSpace(in.Name)
			in.Description = strings.TrimSpace(in.Description)
			return in
		},
		Validate: func(ctx context.Context, in UnitInput, excludeID *uuid.UUID) (validator.Violations, error) {
			v := validator.ValidateStruct(in)
			if !v.Has("name") {
				if err := v.Unique(ctx, "name", taken(units, "name", in.Name, excludeID)); err != nil {
					return nil, err
				}
			}
			return v, nil
		},
		Build: func(in UnitInput) *model.Unit {
			return &model.Unit{Name: in.Name, Description: in.Description}
		},
		Merge: func(u *model.Unit, in UnitInput) {
			u.Name = in.Name
			u.Description = in.Description
		},
		Response:     func(u *model.Unit) any { return u.ToResponse() },
		BeforeDelete: inUse(items, "unit_id", "Unit", "item(s)"),
	}, units, notifier)
}
