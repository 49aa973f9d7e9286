package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_Password(t *testing.T) {
	var u User
	require.NoError(t, u.SetPassword("S3cure!pass"))

	assert.NotEqual(t, "S3cure!pass", u.Password)
	assert.True(t, u.CheckPassword("S3cure!pass"))
	assert.False(t, u.CheckPassword("s3cure!pass"))
}

func TestUser_ToResponseHidesSecrets(t *testing.T) {
	u := User{Username: "admin", TokenVersion: "v1", Password: "hash"}
	u.ID = uuid.New()
	u.Status = UserActive

	res := u.ToResponse()

	assert.Equal(t, UserResponse{ID: u.ID, Username: "admin", Status: UserActive}, res)
	assert.True(t, u.IsActive())
}

func TestBaseModel_BeforeCreate(t *testing.T) {
	var b BaseModel
	require.NoError(t, b.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, b.ID)
	assert.Equal(t, StatusActive, b.Status)

	id := uuid.New()
	kept := BaseModel{ID: id, Status: StatusDeleted}
	require.NoError(t, kept.BeforeCreate(nil))
	assert.Equal(t, id, kept.ID)
	assert.Equal(t, StatusDeleted, kept.Status)
}

func TestItem_BelowMinimumStock(t *testing.T) {
	tests := []struct {
		stock, minimum string
		want           bool
	}{
		{"0", "0", false},
		{"4", "10", true},
		{"10", "10", false},
		{"10.5", "10", false},
	}
	for _, tt := range tests {
		item := Item{OpeningStock: decimal.RequireFromString(tt.stock), MinimumStockLevel: decimal.RequireFromString(tt.minimum)}
		assert.Equal(t, tt.want, item.BelowMinimumStock(), "%s < %s", tt.stock, tt.minimum)
	}
}

func TestItem_ToResponseIncludesUnitName(t *testing.T) {
	item := Item{Name: "Rice", Unit: &Unit{Name: "Kg"}}
	assert.Equal(t, "Kg", item.ToResponse().UnitName)

	item.Unit = nil
	assert.Empty(t, item.ToResponse().UnitName)
}
