package repository

import (
	"go-erp-api/internal/model"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table, including the partial unique
// indexes that enforce name uniqueness among active rows.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Unit{},
		&model.Item{},
		&model.Vendor{},
		&model.AccountType{},
		&model.ChartOfAccount{},
		&model.CategoryGroup{},
	)
}
