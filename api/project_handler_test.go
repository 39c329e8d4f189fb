package api

import (
	"net/http"
	"testing"

	"github.com/mdsajjadhossain25/portfolio-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createProject(t *testing.T, ts *testServer, body map[string]any) projectResponse {
	t.Helper()
	rec := ts.do(http.MethodPost, "/admin/projects", body, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[projectResponse](t, rec)
}

func TestCreateProjectDerivesSlugAndChildren(t *testing.T) {
	ts := newTestServer(t)

	first := createProject(t, ts, map[string]any{
		"title":        "Café Finder",
		"technologies": []string{"Go", "Postgres"},
		"features": []map[string]any{
			{"title": "Search", "display_order": 5},
			{"title": "Maps"},
		},
		"metrics": []map[string]any{{"label": "Users", "value": "10k"}},
	})
	assert.Equal(t, "cafe-finder", first.Slug)
	assert.Equal(t, models.ProjectOngoing, first.Status)
	assert.Equal(t, "https://example.com/projects/cafe-finder", first.URL)
	require.Len(t, first.Features, 2)
	assert.Equal(t, "Maps", first.Features[0].Title)
	require.Len(t, first.Metrics, 1)

	second := createProject(t, ts, map[string]any{"title": "Cafe finder"})
	assert.Equal(t, "cafe-finder-1", second.Slug)

	rec := ts.do(http.MethodPost, "/admin/projects", map[string]any{"title": "Other", "slug": "cafe-finder"}, true)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(http.MethodPost, "/admin/projects", map[string]any{"title": "Other", "slug": "Cafe Finder"}, true)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeBody[ErrorResponse](t, rec).Fields, "slug")

	rec = ts.do(http.MethodGet, "/projects/cafe-finder", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, first.ID, decodeBody[projectResponse](t, rec).ID)
}

func TestCreateProjectReportsEveryInvalidField(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/admin/projects", map[string]any{
		"status":   "paused",
		"live_url": "not a url",
		"images":   []map[string]any{{"caption": "no path"}},
	}, true)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	resp := decodeBody[ErrorResponse](t, rec)
	assert.Contains(t, resp.Fields, "title")
	assert.Contains(t, resp.Fields, "status")
	assert.Contains(t, resp.Fields, "live_url")
	assert.Contains(t, resp.Fields, "images[0].path")

	var count int64
	require.NoError(t, ts.db.Model(&models.Project{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateProjectLeavesOmittedChildrenAlone(t *testing.T) {
	ts := newTestServer(t)
	project := createProject(t, ts, map[string]any{
		"title":    "Ledger",
		"features": []map[string]any{{"title": "A"}, {"title": "B"}},
		"videos":   []map[string]any{{"url": "https://youtu.be/x"}},
	})

	rec := ts.do(http.MethodPut, "/admin/projects/"+project.ID.String(), map[string]any{
		"title":    "Ledger",
		"features": []map[string]any{{"title": "C"}},
	}, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	updated := decodeBody[projectResponse](t, rec)
	require.Len(t, updated.Features, 1)
	assert.Equal(t, "C", updated.Features[0].Title)
	assert.Equal(t, 0, updated.Features[0].DisplayOrder)
	assert.Len(t, updated.Videos, 1)
	assert.Equal(t, "ledger", updated.Slug)
}

func TestToggleProjectStatus(t *testing.T) {
	ts := newTestServer(t)
	project := createProject(t, ts, map[string]any{"title": "Toggle me"})

	rec := ts.do(http.MethodPatch, "/admin/projects/"+project.ID.String()+"/toggle-status", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.ProjectCompleted, decodeBody[projectResponse](t, rec).Status)

	rec = ts.do(http.MethodPatch, "/admin/projects/"+project.ID.String()+"/toggle-status", nil, true)
	assert.Equal(t, models.ProjectOngoing, decodeBody[projectResponse](t, rec).Status)
}

func TestReorderProjectsAcceptsBothShapes(t *testing.T) {
	ts := newTestServer(t)
	a := createProject(t, ts, map[string]any{"title": "A"})
	b := createProject(t, ts, map[string]any{"title": "B"})
	c := createProject(t, ts, map[string]any{"title": "C"})

	rec := ts.do(http.MethodPut, "/admin/projects/reorder", map[string]any{
		"ids": []string{c.ID.String(), a.ID.String(), b.ID.String()},
	}, true)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	titles := func() []string {
		list := decodeBody[[]projectResponse](t, ts.do(http.MethodGet, "/projects", nil, false))
		out := make([]string, len(list))
		for i, p := range list {
			out[i] = p.Title
		}
		return out
	}
	assert.Equal(t, []string{"C", "A", "B"}, titles())

	rec = ts.do(http.MethodPut, "/admin/projects/reorder", map[string]any{
		"items": []map[string]any{
			{"id": b.ID.String(), "display_order": 0},
			{"id": c.ID.String(), "display_order": 2},
		},
	}, true)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	assert.Equal(t, []string{"B", "A", "C"}, titles())

	rec = ts.do(http.MethodPut, "/admin/projects/reorder", map[string]any{}, true)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestDeleteProjectTypeInUseConflicts(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/admin/project-types", map[string]any{"name": "Web"}, true)
	require.Equal(t, http.StatusCreated, rec.Code)
	projectType := decodeBody[models.ProjectType](t, rec)

	createProject(t, ts, map[string]any{"title": "Site", "project_type_id": projectType.ID.String()})

	rec = ts.do(http.MethodDelete, "/admin/project-types/"+projectType.ID.String(), nil, true)
	assert.Equal(t, http.StatusConflict, rec.Code)

	list := decodeBody[[]projectResponse](t, ts.do(http.MethodGet, "/projects?type=web", nil, false))
	assert.Len(t, list, 1)
}
