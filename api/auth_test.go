package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mdsajjadhossain25/portfolio-backend/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/admin/projects", nil, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/admin/projects", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec = httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(http.MethodGet, "/admin/projects", nil, true)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/admin/login", map[string]string{"password": "nope"}, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(http.MethodPost, "/admin/login", map[string]string{}, false)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestTokenManagerRejectsExpiredTokens(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tokens := newTokenManager("secret", time.Hour)
	tokens.now = func() time.Time { return now }

	raw, expiresAt, err := tokens.issue(adminSubject)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), expiresAt)

	claims, err := tokens.verify(raw)
	require.NoError(t, err)
	assert.Equal(t, adminSubject, claims.Subject)

	tokens.now = func() time.Time { return now.Add(2 * time.Hour) }
	_, err = tokens.verify(raw)
	assert.True(t, errs.IsTokenExpiredError(err))

	other := newTokenManager("other-secret", time.Hour)
	other.now = func() time.Time { return now }
	_, err = other.verify(raw)
	assert.True(t, errs.IsInvalidTokenError(err))
}

func TestHealthReportsDatabase(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/health", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[healthResponse](t, rec)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "ok", resp.Database)
}
