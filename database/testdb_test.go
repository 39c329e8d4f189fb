package database

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mdsajjadhossain25/portfolio-backend/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory SQLite database with the full schema.
// A single connection keeps every statement on the same memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, models.Migrate(db))
	return db
}

func intPtr(n int) *int { return &n }

func createCategory(t *testing.T, repo *BlogCategoryRepo, name string) *models.BlogCategory {
	t.Helper()
	category := &models.BlogCategory{Name: name}
	require.NoError(t, repo.Create(context.Background(), category, WriteOptions{}))
	return category
}
