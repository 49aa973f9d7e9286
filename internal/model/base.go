package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Record lifecycle status shared by every master-data table.
const (
	StatusActive  = 1
	StatusDeleted = 2
)

// BaseModel handles ID (UUID), lifecycle status and standard Audit Trails
type BaseModel struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	Status int       `gorm:"not null;default:1;index" json:"status"`

	// Audit User Tracking
	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"created_by"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid" json:"updated_by"`
	DeletedBy *uuid.UUID `gorm:"type:uuid" json:"deleted_by"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at"` // set only by soft delete, together with Status = StatusDeleted
}

// Record is implemented by every model that embeds BaseModel.
type Record interface {
	Base() *BaseModel
}

func (base *BaseModel) Base() *BaseModel {
	return base
}

// BeforeCreate assigns the UUID and the active status.
func (base *BaseModel) BeforeCreate(tx *gorm.DB) (err error) {
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	if base.Status == 0 {
		base.Status = StatusActive
	}
	return
}
