package database

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/mdsajjadhossain25/portfolio-backend/errs"
	"github.com/mdsajjadhossain25/portfolio-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedServices(t *testing.T, repo *ServiceRepo, titles ...string) []models.Service {
	t.Helper()
	services := make([]models.Service, len(titles))
	for i, title := range titles {
		created, err := repo.Create(context.Background(), &models.Service{Title: title, IsActive: true}, nil, WriteOptions{})
		require.NoError(t, err)
		services[i] = *created
	}
	return services
}

func serviceTitles(t *testing.T, repo *ServiceRepo) []string {
	t.Helper()
	services, err := repo.FindAll(context.Background(), false)
	require.NoError(t, err)
	titles := make([]string, len(services))
	for i, s := range services {
		titles[i] = s.Title
	}
	return titles
}

func TestCreateAppendsToScope(t *testing.T) {
	db := newTestDB(t)
	services := seedServices(t, NewServiceRepo(db), "Web", "Mobile", "Cloud")

	for i, s := range services {
		assert.Equal(t, i, s.DisplayOrder)
	}

	next, err := NextDisplayOrder(db, ServiceScope())
	require.NoError(t, err)
	assert.Equal(t, 3, next)

	empty, err := NextDisplayOrder(db, ExperienceScope())
	require.NoError(t, err)
	assert.Equal(t, 0, empty)
}

func TestReorderByPositionRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewServiceRepo(db)
	s := seedServices(t, repo, "A", "B", "C")

	require.NoError(t, ReorderByPosition(db, ServiceScope(), []uuid.UUID{s[2].ID, s[0].ID, s[1].ID}))

	if diff := cmp.Diff([]string{"C", "A", "B"}, serviceTitles(t, repo)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestReorderByPositionMovesUnlistedRowsAfter(t *testing.T) {
	db := newTestDB(t)
	repo := NewServiceRepo(db)
	s := seedServices(t, repo, "A", "B", "C", "D")

	require.NoError(t, New(db).ReorderIDs(context.Background(), ServiceScope(), []uuid.UUID{s[2].ID}))

	if diff := cmp.Diff([]string{"C", "A", "B", "D"}, serviceTitles(t, repo)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}

	services, err := repo.FindAll(context.Background(), false)
	require.NoError(t, err)
	for i, svc := range services {
		assert.Equal(t, i, svc.DisplayOrder, svc.Title)
	}
}

func TestReorderByPositionRejectsForeignIDsWithoutWriting(t *testing.T) {
	db := newTestDB(t)
	repo := NewServiceRepo(db)
	s := seedServices(t, repo, "A", "B")

	err := New(db).ReorderIDs(context.Background(), ServiceScope(), []uuid.UUID{s[1].ID, uuid.New()})
	assert.True(t, errs.IsValidationError(err))
	assert.Equal(t, []string{"A", "B"}, serviceTitles(t, repo))
}

func TestReorderByExplicitPairs(t *testing.T) {
	db := newTestDB(t)
	repo := NewServiceRepo(db)
	s := seedServices(t, repo, "five", "three", "seven")

	database := New(db)
	err := database.Reorder(context.Background(), ServiceScope(), []OrderItem{
		{ID: s[0].ID, DisplayOrder: 2},
		{ID: s[1].ID, DisplayOrder: 0},
		{ID: s[2].ID, DisplayOrder: 1},
	})
	require.NoError(t, err)

	if diff := cmp.Diff([]string{"three", "seven", "five"}, serviceTitles(t, repo)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestReorderRejectsInvalidBatchWithoutWriting(t *testing.T) {
	db := newTestDB(t)
	repo := NewServiceRepo(db)
	s := seedServices(t, repo, "A", "B")
	database := New(db)
	ctx := context.Background()

	tests := []struct {
		name  string
		items []OrderItem
		field string
	}{
		{"empty", nil, "items"},
		{"duplicate", []OrderItem{{ID: s[1].ID, DisplayOrder: 0}, {ID: s[1].ID, DisplayOrder: 1}}, "ids"},
		{"negative", []OrderItem{{ID: s[1].ID, DisplayOrder: -1}}, "display_order"},
		{"outside scope", []OrderItem{{ID: s[1].ID, DisplayOrder: 0}, {ID: uuid.New(), DisplayOrder: 1}}, "items"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := database.Reorder(ctx, ServiceScope(), tt.items)
			require.Error(t, err)
			assert.True(t, errs.IsValidationError(err))

			var apiErr *errs.ApiErr
			require.ErrorAs(t, err, &apiErr)
			assert.Contains(t, apiErr.Fields, tt.field)
			assert.Equal(t, []string{"A", "B"}, serviceTitles(t, repo))
		})
	}
}

func TestSkillOrderingIsScopedToCategory(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	categories := NewSkillCategoryRepo(db)
	skills := NewSkillRepo(db)

	backend := &models.SkillCategory{Name: "Backend"}
	frontend := &models.SkillCategory{Name: "Frontend"}
	require.NoError(t, categories.Create(ctx, backend, WriteOptions{}))
	require.NoError(t, categories.Create(ctx, frontend, WriteOptions{}))

	goSkill := &models.Skill{Name: "Go", SkillCategoryID: backend.ID, Proficiency: 90}
	sqlSkill := &models.Skill{Name: "SQL", SkillCategoryID: backend.ID, Proficiency: 80}
	react := &models.Skill{Name: "React", SkillCategoryID: frontend.ID, Proficiency: 70}
	for _, s := range []*models.Skill{goSkill, sqlSkill, react} {
		require.NoError(t, skills.Create(ctx, s, nil))
	}
	assert.Equal(t, 0, goSkill.DisplayOrder)
	assert.Equal(t, 1, sqlSkill.DisplayOrder)
	assert.Equal(t, 0, react.DisplayOrder)

	// react is not part of the backend scope
	err := New(db).Reorder(ctx, SkillScope(backend.ID), []OrderItem{{ID: react.ID, DisplayOrder: 0}})
	assert.True(t, errs.IsValidationError(err))

	// moving a skill appends it to the new category
	goSkill.SkillCategoryID = frontend.ID
	require.NoError(t, skills.Update(ctx, goSkill, nil))
	assert.Equal(t, 1, goSkill.DisplayOrder)
}
