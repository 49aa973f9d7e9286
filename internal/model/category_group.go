package model

import "github.com/google/uuid"

type CategoryGroup struct {
	BaseModel
	Name string `gorm:"type:varchar(255);not null;uniqueIndex:idx_category_groups_name_active,where:status = 1" json:"name"`
}

type CategoryGroupResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func (g *CategoryGroup) ToResponse() CategoryGroupResponse {
	return CategoryGroupResponse{ID: g.ID, Name: g.Name}
}
