package model

import "github.com/google/uuid"

type Unit struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex:idx_units_name_active,where:status = 1" json:"name"`
	Description string `gorm:"type:text;not null" json:"description"`
}

type UnitResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

func (u *Unit) ToResponse() UnitResponse {
	return UnitResponse{
		ID:          u.ID,
		Name:        u.Name,
		Description: u.Description,
	}
}
