//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"go-erp-api/internal/apperrors"
	"go-erp-api/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB starts a disposable PostgreSQL container and migrates it.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("erp_test"),
		tcpostgres.WithUsername("erp"),
		tcpostgres.WithPassword("erp"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

func TestResourceRepo_Integration(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	units := NewResourceRepo[model.Unit](db)
	items := NewResourceRepo[model.Item](db, "Unit")

	t.Run("unique name among active rows", func(t *testing.T) {
		kg := &model.Unit{Name: "Kg", Description: "Kilogram"}
		require.NoError(t, units.Insert(ctx, kg))

		err := units.Insert(ctx, &model.Unit{Name: "Kg", Description: "again"})
		assert.ErrorIs(t, err, apperrors.ErrDuplicate)

		actor := uuid.New()
		deleted, err := units.DeleteByID(ctx, kg.ID, &actor)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = units.DeleteByID(ctx, kg.ID, &actor)
		require.NoError(t, err)
		assert.False(t, deleted, "already deleted rows are not affected")

		_, err = units.FindByID(ctx, kg.ID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)

		var raw model.Unit
		require.NoError(t, db.First(&raw, "id = ?", kg.ID).Error)
		assert.Equal(t, model.StatusDeleted, raw.Status)
		assert.Equal(t, &actor, raw.DeletedBy)
		assert.NotNil(t, raw.DeletedAt)

		assert.NoError(t, units.Insert(ctx, &model.Unit{Name: "Kg", Description: "Kilogram"}))
	})

	t.Run("search, order and paging", func(t *testing.T) {
		for _, name := range []string{"Box", "Litre", "Meter", "50%_off"} {
			require.NoError(t, units.Insert(ctx, &model.Unit{Name: name, Description: "unit " + name}))
		}

		q := ListQuery{Search: "LITRE", SearchColumns: []string{"name", "description"}, OrderColumn: "name", Ascending: true, Limit: 10}
		total, err := units.Count(ctx, q)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)

		q = ListQuery{Search: "%_", SearchColumns: []string{"name"}, OrderColumn: "name", Limit: 10}
		found, err := units.Find(ctx, q)
		require.NoError(t, err)
		require.Len(t, found, 1, "wildcards are matched literally")
		assert.Equal(t, "50%_off", found[0].Name)

		page, err := units.Find(ctx, ListQuery{OrderColumn: "name", Ascending: true, Offset: 1, Limit: 2})
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, "Box", page[0].Name)
		assert.Equal(t, "Kg", page[1].Name)
	})

	t.Run("item preloads its unit", func(t *testing.T) {
		unit, err := units.FindOne(ctx, "name", "Box", nil)
		require.NoError(t, err)

		item := &model.Item{
			Name:              "Carton",
			Code:              "CTN-1",
			UnitID:            unit.ID,
			Type:              model.ItemTypeGoods,
			TaxStatus:         1,
			GSTRate:           2,
			SellingPrice:      decimal.RequireFromString("12.50"),
			OpeningStock:      decimal.NewFromInt(2),
			MinimumStockLevel: decimal.NewFromInt(5),
		}
		require.NoError(t, items.Insert(ctx, item))

		got, err := items.FindByID(ctx, item.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Unit)
		assert.Equal(t, "Box", got.Unit.Name)
		assert.True(t, got.SellingPrice.Equal(decimal.RequireFromString("12.5")))

		n, err := items.CountBy(ctx, "unit_id", unit.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		stats, err := NewDashboardRepo(db).GetDashboardStats(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 1, stats.Items)
		assert.EqualValues(t, 1, stats.LowStockItems)
		assert.EqualValues(t, 5, stats.Units)
	})

	t.Run("users", func(t *testing.T) {
		users := NewUserRepo(db)
		user := &model.User{Username: "admin"}
		require.NoError(t, user.SetPassword("S3cure!pass"))
		require.NoError(t, users.Create(ctx, user))
		assert.ErrorIs(t, users.Create(ctx, &model.User{Username: "admin", Password: "x"}), apperrors.ErrDuplicate)

		at := time.Now().UTC().Truncate(time.Second)
		require.NoError(t, users.RecordLogin(ctx, user.ID, "v2", at))
		got, err := users.FindByUsername(ctx, "admin")
		require.NoError(t, err)
		assert.Equal(t, "v2", got.TokenVersion)
		require.NotNil(t, got.LastLoginAt)
		assert.True(t, at.Equal(*got.LastLoginAt))

		assert.ErrorIs(t, users.UpdateTokenVersion(ctx, uuid.New(), "v3"), apperrors.ErrNotFound)

		require.NoError(t, users.UpdateStatus(ctx, user.ID, model.UserInactive, "v4", nil))
		all, err := users.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.False(t, all[0].IsActive())
		assert.Equal(t, "v4", all[0].TokenVersion)
	})
}
