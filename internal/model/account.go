package model

import "github.com/google/uuid"

type AccountType struct {
	BaseModel
	Name string `gorm:"type:varchar(100);not null" json:"name"`
}

type AccountTypeResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func (a *AccountType) ToResponse() AccountTypeResponse {
	return AccountTypeResponse{ID: a.ID, Name: a.Name}
}

// ChartOfAccount is a ledger account grouped under an AccountType.
type ChartOfAccount struct {
	BaseModel
	AccountTypeID uuid.UUID    `gorm:"type:uuid;not null;index" json:"account_type_id"`
	AccountType   *AccountType `gorm:"foreignKey:AccountTypeID" json:"account_type,omitempty"`
	Name          string       `gorm:"type:varchar(255);not null" json:"name"`
}

type ChartOfAccountResponse struct {
	ID              uuid.UUID `json:"id"`
	AccountTypeID   uuid.UUID `json:"account_type_id"`
	AccountTypeName string    `json:"account_type_name,omitempty"`
	Name            string    `json:"name"`
}

func (c *ChartOfAccount) ToResponse() ChartOfAccountResponse {
	res := ChartOfAccountResponse{
		ID:            c.ID,
		AccountTypeID: c.AccountTypeID,
		Name:          c.Name,
	}
	if c.AccountType != nil {
		res.AccountTypeName = c.AccountType.Name
	}
	return res
}
