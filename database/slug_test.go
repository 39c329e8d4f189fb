package database

import (
	"context"
	"testing"

	"github.com/mdsajjadhossain25/portfolio-backend/errs"
	"github.com/mdsajjadhossain25/portfolio-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Artificial Intelligence", "artificial-intelligence"},
		{"  Hello,   World!  ", "hello-world"},
		{"Café Crème Brûlée", "cafe-creme-brulee"},
		{"Straße", "strasse"},
		{"Ærø Øresund", "aero-oresund"},
		{"Łódź", "lodz"},
		{"Привет мир", "privet-mir"},
		{"Go 1.22 -- what's new?", "go-1-22-what-s-new"},
		{"---", "item"},
		{"", "item"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestResolveSlugSuffixesCollisions(t *testing.T) {
	db := newTestDB(t)
	repo := NewBlogCategoryRepo(db)
	ctx := context.Background()

	first := createCategory(t, repo, "Artificial Intelligence")
	second := createCategory(t, repo, "Artificial Intelligence")
	third := createCategory(t, repo, "Artificial   intelligence!")

	assert.Equal(t, "artificial-intelligence", first.Slug)
	assert.Equal(t, "artificial-intelligence-1", second.Slug)
	assert.Equal(t, "artificial-intelligence-2", third.Slug)

	// resolving for an existing row ignores the row itself
	slug, err := ResolveSlug(db.WithContext(ctx), "blog_categories", "Artificial Intelligence", "", first.ID)
	require.NoError(t, err)
	assert.Equal(t, "artificial-intelligence", slug)
}

func TestExplicitSlugIsUsedVerbatim(t *testing.T) {
	db := newTestDB(t)
	repo := NewBlogTagRepo(db)
	ctx := context.Background()

	tag := &models.BlogTag{Name: "Golang"}
	require.NoError(t, repo.Create(ctx, tag, WriteOptions{Slug: "go-lang"}))
	assert.Equal(t, "go-lang", tag.Slug)

	clash := &models.BlogTag{Name: "Another"}
	err := repo.Create(ctx, clash, WriteOptions{Slug: "go-lang"})
	require.Error(t, err)
	assert.True(t, errs.IsUniquenessConflict(err))

	for _, slug := range []string{"  Go Lang ", "Go-Lang", "go--lang", "-go", "straße"} {
		t.Run(slug, func(t *testing.T) {
			err := repo.Create(ctx, &models.BlogTag{Name: "Rejected"}, WriteOptions{Slug: slug})
			require.Error(t, err)
			assert.True(t, errs.IsValidationError(err))

			var apiErr *errs.ApiErr
			require.ErrorAs(t, err, &apiErr)
			assert.Contains(t, apiErr.Fields, "slug")
		})
	}

	tags, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestUpdateRegeneratesOnlyDerivedSlugs(t *testing.T) {
	db := newTestDB(t)
	repo := NewBlogCategoryRepo(db)
	ctx := context.Background()

	derived := createCategory(t, repo, "Machine Learning")
	derived.Name = "Deep Learning"
	require.NoError(t, repo.Update(ctx, derived, WriteOptions{}))
	assert.Equal(t, "deep-learning", derived.Slug)

	custom := &models.BlogCategory{Name: "Cloud"}
	require.NoError(t, repo.Create(ctx, custom, WriteOptions{Slug: "infra"}))
	custom.Name = "Cloud Native"
	require.NoError(t, repo.Update(ctx, custom, WriteOptions{}))
	assert.Equal(t, "infra", custom.Slug)

	// same title keeps the slug even when it carries a suffix
	dup := createCategory(t, repo, "Deep Learning")
	require.Equal(t, "deep-learning-1", dup.Slug)
	dup.Description = "changed"
	require.NoError(t, repo.Update(ctx, dup, WriteOptions{}))
	assert.Equal(t, "deep-learning-1", dup.Slug)
}

func TestSlugDerivedFrom(t *testing.T) {
	assert.True(t, slugDerivedFrom("deep-learning", "Deep Learning"))
	assert.True(t, slugDerivedFrom("deep-learning-12", "Deep Learning"))
	assert.False(t, slugDerivedFrom("deep-learning-x", "Deep Learning"))
	assert.False(t, slugDerivedFrom("deep-learning-", "Deep Learning"))
	assert.False(t, slugDerivedFrom("infra", "Deep Learning"))
}
