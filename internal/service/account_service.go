package service

import (
	"context"
	"strings"

	"go-erp-api/internal/model"
	"go-erp-api/internal/repository"
	"go-erp-api/pkg/validator"

	"github.com/google/uuid"
)

type AccountTypeInput struct {
	Identity
	Name string `json:"name" validate:"required_trimmed,max=100"`
}

func NewAccountTypeService(types repository.ResourceRepository[model.AccountType], charts repository.ResourceRepository[model.ChartOfAccount], notifier ChangeNotifier) ResourceService[AccountTypeInput] {
	return NewResourceService(Definition[model.AccountType, AccountTypeInput]{
		Entity:        "Account type",
		Resource:      "account-type",
		SearchColumns: []string{"name"},
		SortColumns: map[string]string{
			"name":       "name",
			"created_at": "created_at",
			"updated_at": "updated_at",
		},
		Normalize: func(in AccountTypeInput) AccountTypeInput {
			in.Name = strings.TrimSpace(in.Name)
			return in
		},
		Validate: func(_ context.Context, in AccountTypeInput, _ *uuid.UUID) (validator.Violations, error) {
			return validator.ValidateStruct(in), nil
		},
		Build: func(in AccountTypeInput) *model.AccountType {
			return &model.AccountType{Name: in.Name}
		},
		Merge: func(a *model.AccountType, in AccountTypeInput) {
			a.Name = in.Name
		},
		Response:     func(a *model.AccountType) any { return a.ToResponse() },
		BeforeDelete: inUse(charts, "account_type_id", "Account type", "chart of account(s)"),
	}, types, notifier)
}

type ChartOfAccountInput struct {
	Identity
	AccountTypeID string `json:"account_type_id" validate:"required_trimmed"`
	Name          string `json:"name" validate:"required_trimmed,max=255"`
}

func NewChartOfAccountService(charts repository.ResourceRepository[model.ChartOfAccount], types repository.ResourceRepository[model.AccountType], notifier ChangeNotifier) ResourceService[ChartOfAccountInput] {
	return NewResourceService(Definition[model.ChartOfAccount, ChartOfAccountInput]{
		Entity:        "Chart of account",
		Resource:      "chart-of-account",
		SearchColumns: []string{"name"},
		SortColumns: map[string]string{
			"name":       "name",
			"created_at": "created_at",
			"updated_at": "updated_at",
		},
		Normalize: func(in ChartOfAccountInput) ChartOfAccountInput {
			in.AccountTypeID = strings.TrimSpace(in.AccountTypeID)
			in.Name = strings.TrimSpace(in.Name)
			return in
		},
		Validate: func(ctx context.Context, in ChartOfAccountInput, _ *uuid.UUID) (validator.Violations, error) {
			v := validator.ValidateStruct(in)
			if err := reference(ctx, &v, types, "account_type_id", in.AccountTypeID); err != nil {
				return nil, err
			}
			return v, nil
		},
		Build: func(in ChartOfAccountInput) *model.ChartOfAccount {
			return &model.ChartOfAccount{AccountTypeID: parseID(in.AccountTypeID), Name: in.Name}
		},
		Merge: func(c *model.ChartOfAccount, in ChartOfAccountInput) {
			if id := parseID(in.AccountTypeID); id != c.AccountTypeID {
				c.AccountTypeID = id
				c.AccountType = nil
			}
			c.Name = in.Name
		},
		Response: func(c *model.ChartOfAccount) any { return c.ToResponse() },
	}, charts, notifier)
}
