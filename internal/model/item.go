package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item types
const (
	ItemTypeGoods   = 1
	ItemTypeService = 2
)

var (
	ItemTypes   = []int64{ItemTypeGoods, ItemTypeService}
	TaxStatuses = []int64{1, 2, 3, 4, 5, 6, 7}
	GSTRates    = []int64{1, 2, 3}
)

// Item is a material or service that can be bought and sold.
type Item struct {
	BaseModel
	Name              string          `gorm:"type:varchar(255);not null" json:"name"`
	UnitID            uuid.UUID       `gorm:"type:uuid;not null;index" json:"unit_id"`
	Unit              *Unit           `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	Type              int             `gorm:"not null" json:"type"`
	Code              string          `gorm:"type:varchar(50);not null;index" json:"code"`
	SACCode           string          `gorm:"type:varchar(50)" json:"sac_code"`
	PurchasePrice     decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"purchase_price"`
	SellingPrice      decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"selling_price"`
	MRP               decimal.Decimal `gorm:"column:mrp;type:numeric(15,2);not null;default:0" json:"mrp"`
	OpeningStock      decimal.Decimal `gorm:"type:numeric(15,3);not null;default:0" json:"opening_stock"`
	OpeningStockValue decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"opening_stock_value"`
	MinimumStockLevel decimal.Decimal `gorm:"type:numeric(15,3);not null;default:0" json:"minimum_stock_level"`
	TaxStatus         int             `gorm:"not null" json:"tax_status"`
	GSTRate           int             `gorm:"column:gst_rate;not null" json:"gst_rate"`
	ServiceRate       decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"service_rate"`
	WarrantyPeriod    string          `gorm:"type:varchar(100)" json:"warranty_period"`
	Description       string          `gorm:"type:text" json:"description"`
}

type ItemResponse struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	UnitID            uuid.UUID       `json:"unit_id"`
	UnitName          string          `json:"unit_name,omitempty"`
	Type              int             `json:"type"`
	Code              string          `json:"code"`
	SACCode           string          `json:"sac_code"`
	PurchasePrice     decimal.Decimal `json:"purchase_price"`
	SellingPrice      decimal.Decimal `json:"selling_price"`
	MRP               decimal.Decimal `json:"mrp"`
	OpeningStock      decimal.Decimal `json:"opening_stock"`
	OpeningStockValue decimal.Decimal `json:"opening_stock_value"`
	MinimumStockLevel decimal.Decimal `json:"minimum_stock_level"`
	TaxStatus         int             `json:"tax_status"`
	GSTRate           int             `json:"gst_rate"`
	ServiceRate       decimal.Decimal `json:"service_rate"`
	WarrantyPeriod    string          `json:"warranty_period"`
	Description       string          `json:"description"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func (i *Item) ToResponse() ItemResponse {
	res := ItemResponse{
		ID:                i.ID,
		Name:              i.Name,
		UnitID:            i.UnitID,
		Type:              i.Type,
		Code:              i.Code,
		SACCode:           i.SACCode,
		PurchasePrice:     i.PurchasePrice,
		SellingPrice:      i.SellingPrice,
		MRP:               i.MRP,
		OpeningStock:      i.OpeningStock,
		OpeningStockValue: i.OpeningStockValue,
		MinimumStockLevel: i.MinimumStockLevel,
		TaxStatus:         i.TaxStatus,
		GSTRate:           i.GSTRate,
		ServiceRate:       i.ServiceRate,
		WarrantyPeriod:    i.WarrantyPeriod,
		Description:       i.Description,
		UpdatedAt:         i.UpdatedAt,
	}
	if i.Unit != nil {
		res.UnitName = i.Unit.Name
	}
	return res
}

// BelowMinimumStock reports whether opening stock is under the configured minimum.
func (i *Item) BelowMinimumStock() bool {
	return i.OpeningStock.LessThan(i.MinimumStockLevel)
}
