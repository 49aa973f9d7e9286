package model

import "github.com/google/uuid"

type Vendor struct {
	BaseModel
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	MobileNo string `gorm:"type:varchar(10)" json:"mobile_no"`
	Email    string `gorm:"type:varchar(255)" json:"email"`
	Address  string `gorm:"type:text" json:"address"`
}

type VendorResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	MobileNo string    `json:"mobile_no"`
	Email    string    `json:"email"`
	Address  string    `json:"address"`
}

func (v *Vendor) ToResponse() VendorResponse {
	return VendorResponse{
		ID:       v.ID,
		Name:     v.Name,
		MobileNo: v.MobileNo,
		Email:    v.Email,
		Address:  v.Address,
	}
}
