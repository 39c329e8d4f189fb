package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mdsajjadhossain25/portfolio-backend/database"
	"github.com/mdsajjadhossain25/portfolio-backend/errs"
	"github.com/mdsajjadhossain25/portfolio-backend/models"
	"github.com/mdsajjadhossain25/portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type blogPostHandler struct {
	responder    Responder
	logger       zerolog.Logger
	postRepo     *database.BlogPostRepo
	categoryRepo *database.BlogCategoryRepo
	tagRepo      *database.BlogTagRepo
	commentRepo  *database.BlogCommentRepo
	assets       assetResolver
	baseURL      string
}

func newBlogPostHandler(db database.Database, assets assetResolver, baseURL string) blogPostHandler {
	logger := log.With().Str("handlerName", "blogPostHandler").Logger()

	return blogPostHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		postRepo:     db.BlogPostRepo(),
		categoryRepo: db.BlogCategoryRepo(),
		tagRepo:      db.BlogTagRepo(),
		commentRepo:  db.BlogCommentRepo(),
		assets:       assets,
		baseURL:      baseURL,
	}
}

// blogPostRequest is the body of post create and update. Omitted tag_ids keep
// the current tags on update.
type blogPostRequest struct {
	Title          string                `json:"title" validate:"required,max=255"`
	Slug           string                `json:"slug" validate:"max=255"`
	Excerpt        string                `json:"excerpt"`
	Content        string                `json:"content" validate:"required"`
	CoverPath      string                `json:"cover_path"`
	BlogCategoryID *uuid.UUID            `json:"blog_category_id"`
	Status         models.BlogPostStatus `json:"status" validate:"omitempty,oneof=draft published"`
	IsFeatured     bool                  `json:"is_featured"`
	TagIDs         *[]uuid.UUID          `json:"tag_ids"`
}

func (req blogPostRequest) model() *models.BlogPost {
	return &models.BlogPost{
		Title:              req.Title,
		Excerpt:            req.Excerpt,
		Content:            req.Content,
		CoverPath:          req.CoverPath,
		BlogCategoryID:     req.BlogCategoryID,
		Status:             req.Status,
		IsFeatured:         req.IsFeatured,
		ReadingTimeMinutes: services.ReadingTimeMinutes(req.Content),
	}
}

type blogPostResponse struct {
	models.BlogPost
	URL         string `json:"url,omitempty"`
	CoverURL    string `json:"cover_url,omitempty"`
	ContentHTML string `json:"content_html,omitempty"`
}

func (h blogPostHandler) present(post models.BlogPost) blogPostResponse {
	return blogPostResponse{
		BlogPost: post,
		URL:      services.BuildBlogPostURL(h.baseURL, post.Slug),
		CoverURL: h.assets.url(post.CoverPath),
	}
}

func (h blogPostHandler) presentAll(posts []models.BlogPost) []blogPostResponse {
	out := make([]blogPostResponse, len(posts))
	for i, p := range posts {
		out[i] = h.present(p)
	}
	return out
}

// listPublishedPosts returns published posts, newest first
// @Summary List blog posts
// @Tags Blog
// @Produce json
// @Param category query string false "Category slug"
// @Param tag query string false "Tag slug"
// @Param featured query bool false "Only featured posts"
// @Success 200 {array} blogPostResponse
// @Router /blog/posts [get]
func (h blogPostHandler) listPublishedPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		featured, err := queryBool(r, "featured")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		posts, err := h.postRepo.FindAll(r.Context(), database.BlogPostFilter{
			PublishedOnly: true,
			CategorySlug:  r.URL.Query().Get("category"),
			TagSlug:       r.URL.Query().Get("tag"),
			FeaturedOnly:  featured != nil && *featured,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, h.presentAll(posts))
	}
}

// getPublishedPost returns a published post rendered to HTML and counts the view
// @Summary Get blog post
// @Tags Blog
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} blogPostResponse
// @Failure 404 {object} ErrorResponse "Missing or not published"
// @Router /blog/posts/{slug} [get]
func (h blogPostHandler) getPublishedPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := h.postRepo.FindPublishedBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.postRepo.IncrementViews(r.Context(), post.ID); err != nil {
			h.logger.Warn().Err(err).Str("postID", post.ID.String()).Msg("Failed to count view")
		} else {
			post.ViewCount++
		}

		response := h.present(*post)
		response.ContentHTML, err = services.RenderMarkdown(post.Content)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to render post", err))
			return
		}
		h.responder.WriteJSON(w, response)
	}
}

func (h blogPostHandler) listAllPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := h.postRepo.FindAll(r.Context(), database.BlogPostFilter{
			CategorySlug: r.URL.Query().Get("category"),
			TagSlug:      r.URL.Query().Get("tag"),
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, h.presentAll(posts))
	}
}

func (h blogPostHandler) getPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		post, err := h.postRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, h.present(*post))
	}
}

// createPost creates a draft or published post
// @Summary Create blog post
// @Tags Blog
// @Accept json
// @Produce json
// @Param post body blogPostRequest true "Post data"
// @Success 201 {object} blogPostResponse
// @Failure 409 {object} ErrorResponse "Slug already taken"
// @Failure 422 {object} ErrorResponse "Validation failed"
// @Router /admin/blog/posts [post]
func (h blogPostHandler) createPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req blogPostRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var tagIDs []uuid.UUID
		if req.TagIDs != nil {
			tagIDs = *req.TagIDs
		}
		post, err := h.postRepo.Create(r.Context(), req.model(), tagIDs, database.WriteOptions{Slug: req.Slug})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, h.present(*post))
	}
}

func (h blogPostHandler) updatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		var req blogPostRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post := req.model()
		post.ID = id
		updated, orphaned, err := h.postRepo.Update(r.Context(), post, req.TagIDs, database.WriteOptions{Slug: req.Slug})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.assets.cleanup(r.Context(), orphaned); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, h.present(*updated))
	}
}

// setPublished returns a handler that publishes or unpublishes a post
func (h blogPostHandler) setPublished(publish bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		post, err := h.postRepo.SetPublished(r.Context(), id, publish)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.logger.Info().
			Str("admin", ctxAdminSubject(r.Context())).
			Str("postID", id.String()).
			Str("status", string(post.Status)).
			Msg("Changed post status")
		h.responder.WriteJSON(w, h.present(*post))
	}
}

func (h blogPostHandler) deletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		paths, err := h.postRepo.Delete(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.assets.cleanup(r.Context(), paths); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteNoContent(w)
	}
}

type blogCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Slug        string `json:"slug" validate:"max=255"`
	Description string `json:"description"`
}

func (h blogPostHandler) listCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.categoryRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, categories)
	}
}

func (h blogPostHandler) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req blogCategoryRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		category := &models.BlogCategory{Name: req.Name, Description: req.Description}
		if err := h.categoryRepo.Create(r.Context(), category, database.WriteOptions{Slug: req.Slug}); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, category)
	}
}

func (h blogPostHandler) updateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "categoryID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		var req blogCategoryRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		category := &models.BlogCategory{Name: req.Name, Description: req.Description}
		category.ID = id
		if err := h.categoryRepo.Update(r.Context(), category, database.WriteOptions{Slug: req.Slug}); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, category)
	}
}

// deleteCategory fails with 409 while posts are filed under the category
// @Summary Delete blog category
// @Tags Blog
// @Param categoryID path string true "Category ID" format(uuid)
// @Success 204
// @Failure 409 {object} ErrorResponse "Posts still reference the category"
// @Router /admin/blog/categories/{categoryID} [delete]
func (h blogPostHandler) deleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "categoryID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.categoryRepo.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteNoContent(w)
	}
}

type blogTagRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Slug string `json:"slug" validate:"max=255"`
}

func (h blogPostHandler) listTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := h.tagRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, tags)
	}
}

func (h blogPostHandler) createTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req blogTagRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		tag := &models.BlogTag{Name: req.Name}
		if err := h.tagRepo.Create(r.Context(), tag, database.WriteOptions{Slug: req.Slug}); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, tag)
	}
}

func (h blogPostHandler) updateTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "tagID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		var req blogTagRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		tag := &models.BlogTag{Name: req.Name}
		tag.ID = id
		if err := h.tagRepo.Update(r.Context(), tag, database.WriteOptions{Slug: req.Slug}); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, tag)
	}
}

// deleteTag removes a tag and detaches it from every post
func (h blogPostHandler) deleteTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "tagID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.tagRepo.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteNoContent(w)
	}
}

type blogCommentRequest struct {
	AuthorName  string `json:"author_name" validate:"required,max=255"`
	AuthorEmail string `json:"author_email" validate:"required,email,max=255"`
	Content     string `json:"content" validate:"required,max=5000"`
}

// submitComment stores a reader comment pending moderation
// @Summary Comment on a blog post
// @Tags Blog
// @Accept json
// @Produce json
// @Param slug path string true "Post slug"
// @Param comment body blogCommentRequest true "Comment"
// @Success 201 {object} models.BlogComment
// @Failure 404 {object} ErrorResponse "Missing or not published"
// @Failure 429 {object} ErrorResponse
// @Router /blog/posts/{slug}/comments [post]
func (h blogPostHandler) submitComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req blogCommentRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		comment := &models.BlogComment{
			AuthorName:  req.AuthorName,
			AuthorEmail: req.AuthorEmail,
			Content:     req.Content,
		}
		if err := h.commentRepo.CreateForPost(r.Context(), chi.URLParam(r, "slug"), comment); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, comment)
	}
}

func (h blogPostHandler) listComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := queryUUID(r, "post_id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		approved, err := queryBool(r, "approved")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		comments, err := h.commentRepo.FindAll(r.Context(), database.BlogCommentFilter{PostID: postID, Approved: approved})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, comments)
	}
}

func (h blogPostHandler) setCommentApproved(approved bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "commentID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		comment, err := h.commentRepo.SetApproved(r.Context(), id, approved)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, comment)
	}
}

func (h blogPostHandler) deleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "commentID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.commentRepo.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.logger.Info().Str("admin", ctxAdminSubject(r.Context())).Str("commentID", id.String()).Msg("Deleted comment")
		h.responder.WriteNoContent(w)
	}
}
