package api

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *testServer) upload(filename, directory, content string) uploadResponse {
	s.t.Helper()
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(s.t, form.WriteField("directory", directory))
	part, err := form.CreateFormFile("file", filename)
	require.NoError(s.t, err)
	_, err = part.Write([]byte(content))
	require.NoError(s.t, err)
	require.NoError(s.t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/uploads", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.token)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[uploadResponse](s.t, rec)
}

func (s *testServer) stored(path string) bool {
	_, err := os.Stat(filepath.Join(s.files.Root(), filepath.FromSlash(path)))
	return err == nil
}

func TestUploadIsServedFromStorage(t *testing.T) {
	ts := newTestServer(t)
	uploaded := ts.upload("avatar.png", "profile", "png-bytes")

	assert.True(t, strings.HasPrefix(uploaded.Path, "profile/"))
	assert.Equal(t, "http://localhost:8080/storage/"+uploaded.Path, uploaded.URL)

	rec := ts.do(http.MethodGet, "/storage/"+uploaded.Path, nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png-bytes", rec.Body.String())
}

func TestUploadRequiresFile(t *testing.T) {
	ts := newTestServer(t)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField("directory", "x"))
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/uploads", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+ts.token)
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSavingProfileDeletesReplacedFiles(t *testing.T) {
	ts := newTestServer(t)
	assert.Equal(t, http.StatusNotFound, ts.do(http.MethodGet, "/profile", nil, false).Code)

	oldAvatar := ts.upload("old.png", "profile", "old")
	resume := ts.upload("cv.pdf", "profile", "cv")

	rec := ts.do(http.MethodPut, "/admin/profile", map[string]any{
		"name":         "Owner",
		"avatar_path":  oldAvatar.Path,
		"resume_path":  resume.Path,
		"social_links": []map[string]any{{"platform": "github", "url": "https://github.com/owner"}},
	}, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	newAvatar := ts.upload("new.png", "profile", "new")
	rec = ts.do(http.MethodPut, "/admin/profile", map[string]any{
		"name":        "Owner",
		"avatar_path": newAvatar.Path,
		"resume_path": resume.Path,
	}, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.False(t, ts.stored(oldAvatar.Path))
	assert.True(t, ts.stored(newAvatar.Path))
	assert.True(t, ts.stored(resume.Path))

	profile := decodeBody[profileResponse](t, ts.do(http.MethodGet, "/profile", nil, false))
	assert.Equal(t, "http://localhost:8080/storage/"+newAvatar.Path, profile.AvatarURL)
}

func TestDeletingProjectRemovesItsImages(t *testing.T) {
	ts := newTestServer(t)
	thumb := ts.upload("thumb.png", "projects", "t")
	shot := ts.upload("shot.png", "projects", "s")

	project := createProject(t, ts, map[string]any{
		"title":          "Gallery",
		"thumbnail_path": thumb.Path,
		"images":         []map[string]any{{"path": shot.Path}},
	})
	require.Len(t, project.ImageURLs, 1)

	rec := ts.do(http.MethodDelete, "/admin/projects/"+project.ID.String(), nil, true)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, ts.stored(thumb.Path))
	assert.False(t, ts.stored(shot.Path))
}
