package api

import (
	"net/http"
	"testing"

	"github.com/mdsajjadhossain25/portfolio-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPost(t *testing.T, ts *testServer, body map[string]any) blogPostResponse {
	t.Helper()
	rec := ts.do(http.MethodPost, "/admin/blog/posts", body, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[blogPostResponse](t, rec)
}

func TestDraftPostsStayPrivateUntilPublished(t *testing.T) {
	ts := newTestServer(t)
	post := createPost(t, ts, map[string]any{"title": "Hello World", "content": "# Hi\n\nSome **bold** words."})
	assert.Equal(t, models.BlogPostDraft, post.Status)
	assert.Nil(t, post.PublishedAt)
	assert.Equal(t, 1, post.ReadingTimeMinutes)

	assert.Equal(t, http.StatusNotFound, ts.do(http.MethodGet, "/blog/posts/hello-world", nil, false).Code)
	assert.Empty(t, decodeBody[[]blogPostResponse](t, ts.do(http.MethodGet, "/blog/posts", nil, false)))

	rec := ts.do(http.MethodPatch, "/admin/blog/posts/"+post.ID.String()+"/publish", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	published := decodeBody[blogPostResponse](t, rec)
	require.NotNil(t, published.PublishedAt)

	rec = ts.do(http.MethodGet, "/blog/posts/hello-world", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	public := decodeBody[blogPostResponse](t, rec)
	assert.Contains(t, public.ContentHTML, "<strong>bold</strong>")
	assert.Equal(t, int64(1), public.ViewCount)
	assert.Equal(t, "https://example.com/blog/hello-world", public.URL)

	rec = ts.do(http.MethodPatch, "/admin/blog/posts/"+post.ID.String()+"/unpublish", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	unpublished := decodeBody[blogPostResponse](t, rec)
	assert.Equal(t, models.BlogPostDraft, unpublished.Status)
	require.NotNil(t, unpublished.PublishedAt)
	assert.True(t, published.PublishedAt.Equal(*unpublished.PublishedAt))
}

func TestCommentsNeedApproval(t *testing.T) {
	ts := newTestServer(t)
	post := createPost(t, ts, map[string]any{"title": "Notes", "content": "body", "status": "published"})

	rec := ts.do(http.MethodPost, "/blog/posts/notes/comments", map[string]any{
		"author_name":  "Reader",
		"author_email": "reader@example.com",
		"content":      "Nice post",
	}, false)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	comment := decodeBody[models.BlogComment](t, rec)
	assert.False(t, comment.IsApproved)
	assert.Equal(t, post.ID, comment.BlogPostID)

	public := decodeBody[blogPostResponse](t, ts.do(http.MethodGet, "/blog/posts/notes", nil, false))
	assert.Empty(t, public.Comments)

	pending := decodeBody[[]models.BlogComment](t, ts.do(http.MethodGet, "/admin/blog/comments?approved=false", nil, true))
	require.Len(t, pending, 1)

	rec = ts.do(http.MethodPatch, "/admin/blog/comments/"+comment.ID.String()+"/approve", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)

	public = decodeBody[blogPostResponse](t, ts.do(http.MethodGet, "/blog/posts/notes", nil, false))
	require.Len(t, public.Comments, 1)
	assert.Equal(t, "Nice post", public.Comments[0].Content)
}

func TestCommentOnDraftIsNotFound(t *testing.T) {
	ts := newTestServer(t)
	createPost(t, ts, map[string]any{"title": "Secret", "content": "body"})

	rec := ts.do(http.MethodPost, "/blog/posts/secret/comments", map[string]any{
		"author_name":  "Reader",
		"author_email": "reader@example.com",
		"content":      "first",
	}, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBlogCategoryWithPostsCannotBeDeleted(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/admin/blog/categories", map[string]any{"name": "Go"}, true)
	require.Equal(t, http.StatusCreated, rec.Code)
	category := decodeBody[models.BlogCategory](t, rec)

	rec = ts.do(http.MethodPost, "/admin/blog/tags", map[string]any{"name": "Concurrency"}, true)
	require.Equal(t, http.StatusCreated, rec.Code)
	tag := decodeBody[models.BlogTag](t, rec)

	post := createPost(t, ts, map[string]any{
		"title":            "Channels",
		"content":          "body",
		"status":           "published",
		"blog_category_id": category.ID.String(),
		"tag_ids":          []string{tag.ID.String()},
	})
	require.Len(t, post.Tags, 1)

	rec = ts.do(http.MethodDelete, "/admin/blog/categories/"+category.ID.String(), nil, true)
	assert.Equal(t, http.StatusConflict, rec.Code)

	byTag := decodeBody[[]blogPostResponse](t, ts.do(http.MethodGet, "/blog/posts?tag=concurrency", nil, false))
	assert.Len(t, byTag, 1)

	rec = ts.do(http.MethodDelete, "/admin/blog/tags/"+tag.ID.String(), nil, true)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = ts.do(http.MethodGet, "/admin/blog/posts/"+post.ID.String(), nil, true)
	assert.Empty(t, decodeBody[blogPostResponse](t, rec).Tags)
}
