package service

import (
	"context"
	"strings"

	"go-erp-api/internal/model"
	"go-erp-api/internal/repository"
	"go-erp-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemInput is the material payload. Numeric fields accept numbers or numeric strings.
type ItemInput struct {
	Identity
	Name              string           `json:"name" validate:"required_trimmed,max=255"`
	UnitID            string           `json:"unit_id" validate:"required_trimmed"`
	Type              validator.Number `json:"type"`
	Code              string           `json:"code" validate:"required_trimmed,max=50"`
	SACCode           *string          `json:"sac_code" validate:"omitempty,max=50"`
	PurchasePrice     validator.Number `json:"purchase_price"`
	SellingPrice      validator.Number `json:"selling_price"`
	MRP               validator.Number `json:"mrp"`
	OpeningStock      validator.Number `json:"opening_stock"`
	OpeningStockValue validator.Number `json:"opening_stock_value"`
	MinimumStockLevel validator.Number `json:"minimum_stock_level"`
	TaxStatus         validator.Number `json:"tax_status"`
	GSTRate           validator.Number `json:"gst_rate"`
	ServiceRate       validator.Number `json:"service_rate"`
	WarrantyPeriod    *string          `json:"warranty_period" validate:"omitempty,max=100"`
	Description       *string          `json:"description"`
}

// Column limits: numeric(15,2) money and numeric(15,3) quantities.
var (
	maxMoney    = decimal.New(1, 13)
	maxQuantity = decimal.New(1, 12)
)

type amount struct {
	field string
	value validator.Number
	limit decimal.Decimal
}

func (in ItemInput) amounts() []amount {
	return []amount{
		{"purchase_price", in.PurchasePrice, maxMoney},
		{"selling_price", in.SellingPrice, maxMoney},
		{"mrp", in.MRP, maxMoney},
		{"opening_stock", in.OpeningStock, maxQuantity},
		{"opening_stock_value", in.OpeningStockValue, maxMoney},
		{"minimum_stock_level", in.MinimumStockLevel, maxQuantity},
		{"service_rate", in.ServiceRate, maxMoney},
	}
}

func NewItemService(items repository.ResourceRepository[model.Item], units repository.ResourceRepository[model.Unit], notifier ChangeNotifier) ResourceService[ItemInput] {
	return NewResourceService(Definition[model.Item, ItemInput]{
		Entity:        "Item",
		Resource:      "item",
		SearchColumns: []string{"name", "code", "sac_code", "description"},
		SortColumns: map[string]string{
			"name":          "name",
			"code":          "code",
			"type":          "type",
			"selling_price": "selling_price",
			"created_at":    "created_at",
			"updated_at":    "updated_at",
		},
		Normalize: func(in ItemInput) ItemInput {
			in.Name = strings.TrimSpace(in.Name)
			in.UnitID = strings.TrimSpace(in.UnitID)
			in.Code = strings.TrimSpace(in.Code)
			in.SACCode = optional(in.SACCode)
			in.WarrantyPeriod = optional(in.WarrantyPeriod)
			in.Description = optional(in.Description)
			return in
		},
		Validate: func(ctx context.Context, in ItemInput, _ *uuid.UUID) (validator.Violations, error) {
			return validateItem(ctx, in, units)
		},
		Build: func(in ItemInput) *model.Item {
			item := &model.Item{}
			applyItem(item, in)
			return item
		},
		Merge:    applyItem,
		Response: func(i *model.Item) any { return i.ToResponse() },
	}, items, notifier)
}

func validateItem(ctx context.Context, in ItemInput, units repository.ResourceRepository[model.Unit]) (validator.Violations, error) {
	v := validator.ValidateStruct(in)

	v.Enum("type", in.Type, model.ItemTypes, "Invalid type. Only 1 (Goods) or 2 (Service) allowed.")
	if err := reference(ctx, &v, units, "unit_id", in.UnitID); err != nil {
		return nil, err
	}

	if typ, ok := in.Type.Int(); ok {
		switch typ {
		case model.ItemTypeGoods:
			if !in.SellingPrice.Present() {
				v.Add("selling_price", "Selling price is required for goods.")
			}
		case model.ItemTypeService:
			if !in.ServiceRate.Present() {
				v.Add("service_rate", "Service rate is required for services.")
			}
		}
	}

	v.Enum("gst_rate", in.GSTRate, model.GSTRates, "Invalid GST rate. Only 1, 2 or 3 allowed.")
	v.Enum("tax_status", in.TaxStatus, model.TaxStatuses, "Invalid tax status. Only 1 to 7 allowed.")

	for _, a := range in.amounts() {
		v.Numeric(a.field, a.value)
		v.Range(a.field, a.value, a.limit)
	}
	return v, nil
}

// applyItem copies the supplied payload fields onto item.
func applyItem(item *model.Item, in ItemInput) {
	item.Name = in.Name
	item.Code = in.Code
	if id := parseID(in.UnitID); id != item.UnitID {
		item.UnitID = id
		item.Unit = nil
	}
	item.Type = intOf(in.Type)
	item.TaxStatus = intOf(in.TaxStatus)
	item.GSTRate = intOf(in.GSTRate)

	setString(&item.SACCode, in.SACCode)
	setString(&item.WarrantyPeriod, in.WarrantyPeriod)
	setString(&item.Description, in.Description)

	setDecimal(&item.PurchasePrice, in.PurchasePrice)
	setDecimal(&item.SellingPrice, in.SellingPrice)
	setDecimal(&item.MRP, in.MRP)
	setDecimal(&item.OpeningStock, in.OpeningStock)
	setDecimal(&item.OpeningStockValue, in.OpeningStockValue)
	setDecimal(&item.MinimumStockLevel, in.MinimumStockLevel)
	setDecimal(&item.ServiceRate, in.ServiceRate)
}
