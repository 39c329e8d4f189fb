package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared&_foreign_keys=on"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestPublishKeepsFirstPublicationTime(t *testing.T) {
	first := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	post := BlogPost{Status: BlogPostDraft}

	post.Publish(first)
	require.True(t, post.IsPublished())
	require.NotNil(t, post.PublishedAt)
	assert.Equal(t, first, *post.PublishedAt)

	post.Unpublish()
	assert.Equal(t, BlogPostDraft, post.Status)
	require.NotNil(t, post.PublishedAt)

	post.Publish(first.Add(48 * time.Hour))
	assert.Equal(t, first, *post.PublishedAt)
}

func TestProjectStatusToggle(t *testing.T) {
	assert.Equal(t, ProjectCompleted, ProjectOngoing.Toggled())
	assert.Equal(t, ProjectOngoing, ProjectCompleted.Toggled())
	assert.False(t, ProjectStatus("archived").Valid())
	assert.True(t, BlogPostPublished.Valid())
}

func TestBeforeCreateAssignsID(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))

	tag := BlogTag{Name: "Go", SlugColumn: SlugColumn{Slug: "go"}}
	require.NoError(t, db.Create(&tag).Error)
	assert.NotEqual(t, uuid.Nil, tag.ID)

	preset := uuid.New()
	other := BlogTag{Base: Base{ID: preset}, Name: "Rust", SlugColumn: SlugColumn{Slug: "rust"}}
	require.NoError(t, db.Create(&other).Error)
	assert.Equal(t, preset, other.ID)
}

func TestColumnMismatchesReportsUndeclaredColumns(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))
	require.NoError(t, db.Exec("ALTER TABLE projects ADD COLUMN legacy_banner text").Error)

	report, err := ColumnMismatches(db)
	require.NoError(t, err)
	assert.Equal(t, []string{"legacy_banner"}, report["projects"])
	assert.Empty(t, report["blog_posts"])
}

func TestAssetPaths(t *testing.T) {
	project := Project{
		ThumbnailPath: "projects/thumb.png",
		Images:        []ProjectImage{{Path: "projects/a.png"}, {Path: ""}},
	}
	assert.Equal(t, []string{"projects/thumb.png", "projects/a.png"}, project.AssetPaths())

	profile := Profile{ResumePath: "profile/cv.pdf"}
	assert.Equal(t, []string{"profile/cv.pdf"}, profile.AssetPaths())
}
