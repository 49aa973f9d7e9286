package repository

import (
	"context"

	"go-erp-api/internal/model"

	"gorm.io/gorm"
)

// DashboardStats holds the active-record counts shown on the dashboard
type DashboardStats struct {
	Units           int64 `json:"units"`
	Items           int64 `json:"items"`
	Vendors         int64 `json:"vendors"`
	AccountTypes    int64 `json:"account_types"`
	ChartOfAccounts int64 `json:"chart_of_accounts"`
	CategoryGroups  int64 `json:"category_groups"`
	LowStockItems   int64 `json:"low_stock_items"`
}

type DashboardRepository interface {
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
}

type dashboardRepo struct {
	db *gorm.DB
}

func NewDashboardRepo(db *gorm.DB) DashboardRepository {
	return &dashboardRepo{db}
}

func (r *dashboardRepo) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	db := r.db.WithContext(ctx)

	counts := []struct {
		model any
		dest  *int64
	}{
		{&model.Unit{}, &stats.Units},
		{&model.Item{}, &stats.Items},
		{&model.Vendor{}, &stats.Vendors},
		{&model.AccountType{}, &stats.AccountTypes},
		{&model.ChartOfAccount{}, &stats.ChartOfAccounts},
		{&model.CategoryGroup{}, &stats.CategoryGroups},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Where("status = ?", model.StatusActive).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	// Low stock: opening stock below the configured minimum
	if err := db.Model(&model.Item{}).
		Where("status = ? AND minimum_stock_level > 0 AND opening_stock < minimum_stock_level", model.StatusActive).
		Count(&stats.LowStockItems).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
