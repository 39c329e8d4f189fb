package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/mdsajjadhossain25/portfolio-backend/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var contactBody = map[string]any{
	"name":    "Visitor",
	"email":   "visitor@example.com",
	"subject": "Hiring",
	"message": "Are you available next month?",
}

func TestContactSubmissionIsStoredAndNotified(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/contact", contactBody, false)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	message := decodeBody[models.ContactMessage](t, rec)
	assert.False(t, message.IsRead)
	assert.False(t, message.IsReplied)

	require.Len(t, ts.notifier.messages, 1)
	assert.Equal(t, message.ID, ts.notifier.messages[0].ID)

	rec = ts.do(http.MethodPatch, "/admin/contact-messages/"+message.ID.String(), map[string]any{"is_replied": true}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeBody[models.ContactMessage](t, rec)
	assert.False(t, updated.IsRead)
	assert.True(t, updated.IsReplied)

	unread := decodeBody[[]models.ContactMessage](t, ts.do(http.MethodGet, "/admin/contact-messages?read=false", nil, true))
	assert.Len(t, unread, 1)
}

func TestContactNotificationFailureKeepsMessage(t *testing.T) {
	ts := newTestServer(t)
	ts.notifier.err = assert.AnError

	rec := ts.do(http.MethodPost, "/contact", contactBody, false)
	require.Equal(t, http.StatusCreated, rec.Code)

	var count int64
	require.NoError(t, ts.db.Model(&models.ContactMessage{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestContactValidation(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/contact", map[string]any{"email": "nope", "message": "short"}, false)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeBody[ErrorResponse](t, rec)
	assert.Equal(t, "is required", resp.Fields["name"])
	assert.Contains(t, resp.Fields, "email")
	assert.Contains(t, resp.Fields, "message")
	assert.Empty(t, ts.notifier.messages)
}

func TestContactIsRateLimited(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ts := newTestServer(t, withRedis(client, 2))

	for i := 0; i < 2; i++ {
		rec := ts.do(http.MethodPost, "/contact", contactBody, false)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := ts.do(http.MethodPost, "/contact", contactBody, false)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	// Comments use their own bucket
	rec = ts.do(http.MethodPost, "/blog/posts/missing/comments", map[string]any{
		"author_name":  "Reader",
		"author_email": "reader@example.com",
		"content":      "hi",
	}, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	mr.FastForward(2 * time.Minute)
	rec = ts.do(http.MethodPost, "/contact", contactBody, false)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRateLimiterFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ts := newTestServer(t, withRedis(client, 1))
	mr.Close()

	for i := 0; i < 3; i++ {
		rec := ts.do(http.MethodPost, "/contact", contactBody, false)
		assert.Equal(t, http.StatusCreated, rec.Code)
	}
}
