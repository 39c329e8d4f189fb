package api

import (
	"net/http"
	"testing"

	"github.com/mdsajjadhossain25/portfolio-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInactiveServicesAreHidden(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/admin/services", map[string]any{
		"title":    "Consulting",
		"features": []map[string]any{{"title": "Architecture review"}},
	}, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	service := decodeBody[serviceResponse](t, rec)
	assert.True(t, service.IsActive)
	require.Len(t, service.Features, 1)

	rec = ts.do(http.MethodPut, "/admin/services/"+service.ID.String(), map[string]any{
		"title":     "Consulting",
		"is_active": false,
	}, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, decodeBody[serviceResponse](t, rec).Features, 1)

	assert.Equal(t, http.StatusNotFound, ts.do(http.MethodGet, "/services/consulting", nil, false).Code)
	assert.Empty(t, decodeBody[[]serviceResponse](t, ts.do(http.MethodGet, "/services", nil, false)))
	assert.Len(t, decodeBody[[]serviceResponse](t, ts.do(http.MethodGet, "/admin/services", nil, true)), 1)
}

func TestSkillsReorderWithinTheirCategory(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/admin/skill-categories", map[string]any{"name": "Backend"}, true)
	require.Equal(t, http.StatusCreated, rec.Code)
	backend := decodeBody[models.SkillCategory](t, rec)

	rec = ts.do(http.MethodPost, "/admin/skill-categories", map[string]any{"name": "Frontend"}, true)
	require.Equal(t, http.StatusCreated, rec.Code)
	frontend := decodeBody[models.SkillCategory](t, rec)

	newSkill := func(categoryID, name string) models.Skill {
		rec := ts.do(http.MethodPost, "/admin/skills", map[string]any{
			"skill_category_id": categoryID,
			"name":              name,
			"proficiency":       80,
		}, true)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		return decodeBody[models.Skill](t, rec)
	}
	_ = newSkill(backend.ID.String(), "Go")
	sqlSkill := newSkill(backend.ID.String(), "SQL")
	react := newSkill(frontend.ID.String(), "React")

	// a partial list puts the listed skills first
	rec = ts.do(http.MethodPut, "/admin/skill-categories/"+backend.ID.String()+"/skills/reorder", map[string]any{
		"ids": []string{sqlSkill.ID.String()},
	}, true)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = ts.do(http.MethodPut, "/admin/skill-categories/"+backend.ID.String()+"/skills/reorder", map[string]any{
		"ids": []string{react.ID.String()},
	}, true)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	categories := decodeBody[[]models.SkillCategory](t, ts.do(http.MethodGet, "/skills", nil, false))
	require.Len(t, categories, 2)
	require.Len(t, categories[0].Skills, 2)
	assert.Equal(t, "SQL", categories[0].Skills[0].Name)
	assert.Equal(t, "Go", categories[0].Skills[1].Name)

	rec = ts.do(http.MethodDelete, "/admin/skill-categories/"+frontend.ID.String(), nil, true)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(http.MethodPost, "/admin/skills", map[string]any{
		"skill_category_id": backend.ID.String(),
		"name":              "Rust",
		"proficiency":       120,
	}, true)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCurrentExperienceDropsEndDate(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/admin/experiences", map[string]any{
		"company":    "Acme",
		"position":   "Engineer",
		"start_date": "2022-01-01T00:00:00Z",
		"end_date":   "2023-01-01T00:00:00Z",
		"is_current": true,
	}, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Nil(t, decodeBody[models.Experience](t, rec).EndDate)

	rec = ts.do(http.MethodPost, "/admin/experiences", map[string]any{
		"company":    "Acme",
		"position":   "Intern",
		"start_date": "2022-01-01T00:00:00Z",
		"end_date":   "2021-01-01T00:00:00Z",
	}, true)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
