package service

import (
	"context"
	"strings"

	"go-erp-api/internal/model"
	"go-erp-api/internal/repository"
	"go-erp-api/pkg/validator"

	"github.com/google/uuid"
)

type VendorInput struct {
	Identity
	Name     string           `json:"name" validate:"required_trimmed,max=255"`
	MobileNo validator.Number `json:"mobile_no"`
	Email    *string          `json:"email" validate:"omitempty,email,max=255"`
	Address  *string          `json:"address"`
}

func NewVendorService(vendors repository.ResourceRepository[model.Vendor], notifier ChangeNotifier) ResourceService[VendorInput] {
	return NewResourceService(Definition[model.Vendor, VendorInput]{
		Entity:        "Vendor",
		Resource:      "vendor",
		SearchColumns: []string{"name", "mobile_no", "email", "address"},
		SortColumns: map[string]string{
			"name":       "name",
			"email":      "email",
			"created_at": "created_at",
			"updated_at": "updated_at",
		},
		Normalize: func(in VendorInput) VendorInput {
			in.Name = strings.TrimSpace(in.Name)
			in.Email = optional(in.Email)
			in.Address = optional(in.Address)
			return in
		},
		Validate: func(_ context.Context, in VendorInput, _ *uuid.UUID) (validator.Violations, error) {
			v := validator.ValidateStruct(in)
			v.Digits("mobile_no", in.MobileNo.String(), 10)
			return v, nil
		},
		Build: func(in VendorInput) *model.Vendor {
			return &model.Vendor{
				Name:     in.Name,
				MobileNo: in.MobileNo.String(),
				Email:    deref(in.Email),
				Address:  deref(in.Address),
			}
		},
		Merge: func(m *model.Vendor, in VendorInput) {
			m.Name = in.Name
			if in.MobileNo.Present() {
				m.MobileNo = in.MobileNo.String()
			}
			setString(&m.Email, in.Email)
			setString(&m.Address, in.Address)
		},
		Response: func(m *model.Vendor) any { return m.ToResponse() },
	}, vendors, notifier)
}
