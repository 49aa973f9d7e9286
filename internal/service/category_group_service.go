package service

import (
	"context"
	"strings"

	"go-erp-api/internal/model"
	"go-erp-api/internal/repository"
	"go-erp-api/pkg/validator"

	"github.com/google/uuid"
)

type CategoryGroupInput struct {
	Identity
	Name string `json:"name" validate:"required_trimmed,max=255"`
}

func NewCategoryGroupService(groups repository.ResourceRepository[model.CategoryGroup], notifier ChangeNotifier) ResourceService[CategoryGroupInput] {
	return NewResourceService(Definition[model.CategoryGroup, CategoryGroupInput]{
		Entity:        "Category group",
		Resource:      "category-group",
		SearchColumns: []string{"name"},
		SortColumns: map[string]string{
			"name":       "name",
			"created_at": "created_at",
			"updated_at": "updated_at",
		},
		UniqueField: "name",
		Normalize: func(in CategoryGroupInput) CategoryGroupInput {
			in.Name = strings.TrimSpace(in.Name)
			return in
		},
		Validate: func(ctx context.Context, in CategoryGroupInput, excludeID *uuid.UUID) (validator.Violations, error) {
			v := validator.ValidateStruct(in)
			if !v.Has("name") {
				if err := v.Unique(ctx, "name", taken(groups, "name", in.Name, excludeID)); err != nil {
					return nil, err
				}
			}
			return v, nil
		},
		Build: func(in CategoryGroupInput) *model.CategoryGroup {
			return &model.CategoryGroup{Name: in.Name}
		},
		Merge: func(g *model.CategoryGroup, in CategoryGroupInput) {
			g.Name = in.Name
		},
		Response: func(g *model.CategoryGroup) any { return g.ToResponse() },
	}, groups, notifier)
}
