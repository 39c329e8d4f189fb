package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mdsajjadhossain25/portfolio-backend/database"
	"github.com/mdsajjadhossain25/portfolio-backend/models"
	"github.com/mdsajjadhossain25/portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
	typeRepo    *database.ProjectTypeRepo
	assets      assetResolver
	baseURL     string
}

func newProjectHandler(projectRepo *database.ProjectRepo, typeRepo *database.ProjectTypeRepo, assets assetResolver, baseURL string) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
		typeRepo:    typeRepo,
		assets:      assets,
		baseURL:     baseURL,
	}
}

type projectImageInput struct {
	Path         string `json:"path" validate:"required"`
	Caption      string `json:"caption" validate:"max=255"`
	DisplayOrder *int   `json:"display_order" validate:"omitempty,gte=0"`
}

type projectFeatureInput struct {
	Title        string `json:"title" validate:"required,max=255"`
	Description  string `json:"description"`
	Icon         string `json:"icon" validate:"max=100"`
	DisplayOrder *int   `json:"display_order" validate:"omitempty,gte=0"`
}

type projectMetricInput struct {
	Label        string `json:"label" validate:"required,max=255"`
	Value        string `json:"value" validate:"required,max=255"`
	DisplayOrder *int   `json:"display_order" validate:"omitempty,gte=0"`
}

type projectVideoInput struct {
	URL          string `json:"url" validate:"required,url"`
	Title        string `json:"title" validate:"max=255"`
	DisplayOrder *int   `json:"display_order" validate:"omitempty,gte=0"`
}

// projectRequest is the body of project create and update. Omitted child
// collections are left untouched on update.
type projectRequest struct {
	Title         string                 `json:"title" validate:"required,max=255"`
	Slug          string                 `json:"slug" validate:"max=255"`
	Summary       string                 `json:"summary"`
	Description   string                 `json:"description"`
	ProjectTypeID *uuid.UUID             `json:"project_type_id"`
	Status        models.ProjectStatus   `json:"status" validate:"omitempty,oneof=ongoing completed"`
	Client        string                 `json:"client" validate:"max=255"`
	Role          string                 `json:"role" validate:"max=255"`
	StartDate     *time.Time             `json:"start_date"`
	EndDate       *time.Time             `json:"end_date"`
	RepositoryURL string                 `json:"repository_url" validate:"omitempty,url"`
	LiveURL       string                 `json:"live_url" validate:"omitempty,url"`
	ThumbnailPath string                 `json:"thumbnail_path"`
	Technologies  []string               `json:"technologies" validate:"dive,required,max=100"`
	IsFeatured    bool                   `json:"is_featured"`
	DisplayOrder  *int                   `json:"display_order" validate:"omitempty,gte=0"`
	Images        *[]projectImageInput   `json:"images" validate:"omitempty,dive"`
	Features      *[]projectFeatureInput `json:"features" validate:"omitempty,dive"`
	Metrics       *[]projectMetricInput  `json:"metrics" validate:"omitempty,dive"`
	Videos        *[]projectVideoInput   `json:"videos" validate:"omitempty,dive"`
}

func (req projectRequest) model() *models.Project {
	return &models.Project{
		Title:         req.Title,
		Summary:       req.Summary,
		Description:   req.Description,
		ProjectTypeID: req.ProjectTypeID,
		Status:        req.Status,
		Client:        req.Client,
		Role:          req.Role,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		RepositoryURL: req.RepositoryURL,
		LiveURL:       req.LiveURL,
		ThumbnailPath: req.ThumbnailPath,
		Technologies:  req.Technologies,
		IsFeatured:    req.IsFeatured,
	}
}

func (req projectRequest) children() database.ProjectChildren {
	return database.ProjectChildren{
		Images: toChildren(req.Images, func(in projectImageInput) (models.ProjectImage, *int) {
			return models.ProjectImage{Path: in.Path, Caption: in.Caption}, in.DisplayOrder
		}),
		Features: toChildren(req.Features, func(in projectFeatureInput) (models.ProjectFeature, *int) {
			return models.ProjectFeature{Title: in.Title, Description: in.Description, Icon: in.Icon}, in.DisplayOrder
		}),
		Metrics: toChildren(req.Metrics, func(in projectMetricInput) (models.ProjectMetric, *int) {
			return models.ProjectMetric{Label: in.Label, Value: in.Value}, in.DisplayOrder
		}),
		Videos: toChildren(req.Videos, func(in projectVideoInput) (models.ProjectVideo, *int) {
			return models.ProjectVideo{URL: in.URL, Title: in.Title}, in.DisplayOrder
		}),
	}
}

// toChildren converts an optional input list into a replacement set. A nil
// list stays nil so the collection is left untouched.
func toChildren[I any, E any](in *[]I, convert func(I) (E, *int)) *[]database.Child[E] {
	if in == nil {
		return nil
	}
	children := make([]database.Child[E], len(*in))
	for i, item := range *in {
		row, order := convert(item)
		children[i] = database.Child[E]{Row: row, Order: order}
	}
	return &children
}

type projectResponse struct {
	models.Project
	URL          string   `json:"url,omitempty"`
	ThumbnailURL string   `json:"thumbnail_url,omitempty"`
	ImageURLs    []string `json:"image_urls"`
}

func (h projectHandler) present(project models.Project) projectResponse {
	imageURLs := make([]string, len(project.Images))
	for i, img := range project.Images {
		imageURLs[i] = h.assets.url(img.Path)
	}
	return projectResponse{
		Project:      project,
		URL:          services.BuildProjectURL(h.baseURL, project.Slug),
		ThumbnailURL: h.assets.url(project.ThumbnailPath),
		ImageURLs:    imageURLs,
	}
}

func (h projectHandler) presentAll(projects []models.Project) []projectResponse {
	out := make([]projectResponse, len(projects))
	for i, p := range projects {
		out[i] = h.present(p)
	}
	return out
}

// listProjects returns projects in display order
// @Summary List projects
// @Tags Projects
// @Produce json
// @Param type query string false "Project type slug"
// @Param status query string false "ongoing or completed"
// @Param featured query bool false "Only featured projects"
// @Success 200 {array} projectResponse
// @Router /projects [get]
func (h projectHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		featured, err := queryBool(r, "featured")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		filter := database.ProjectFilter{
			TypeSlug:     r.URL.Query().Get("type"),
			Status:       models.ProjectStatus(r.URL.Query().Get("status")),
			FeaturedOnly: featured != nil && *featured,
		}

		projects, err := h.projectRepo.FindAll(r.Context(), filter)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, h.presentAll(projects))
	}
}

// getProjectBySlug returns one project with all nested collections
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param slug path string true "Project slug"
// @Success 200 {object} projectResponse
// @Failure 404 {object} ErrorResponse
// @Router /projects/{slug} [get]
func (h projectHandler) getProjectBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, err := h.projectRepo.FindBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, h.present(*project))
	}
}

func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		project, err := h.projectRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, h.present(*project))
	}
}

// createProject creates a project with its images, features, metrics and videos
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body projectRequest true "Project data"
// @Success 201 {object} projectResponse
// @Failure 409 {object} ErrorResponse "Slug already taken"
// @Failure 422 {object} ErrorResponse "Validation failed"
// @Router /admin/projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req projectRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.Create(r.Context(), req.model(), req.children(), database.WriteOptions{
			Slug:         req.Slug,
			DisplayOrder: req.DisplayOrder,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, h.present(*project))
	}
}

// updateProject replaces a project and the child collections present in the body
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param project body projectRequest true "Project data"
// @Success 200 {object} projectResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse "Saved, but replaced files could not be deleted"
// @Router /admin/projects/{projectID} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		var req projectRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project := req.model()
		project.ID = id
		updated, orphaned, err := h.projectRepo.Update(r.Context(), project, req.children(), database.WriteOptions{
			Slug:         req.Slug,
			DisplayOrder: req.DisplayOrder,
		})
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

// toggleProjectStatus flips a project between ongoing and completed
// @Summary Toggle project status
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} projectResponse
// @Router /admin/projects/{projectID}/toggle-status [patch]
func (h projectHandler) toggleProjectStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		project, err := h.projectRepo.ToggleStatus(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, h.present(*project))
	}
}

// deleteProject removes a project, its children and its stored images
// @Summary Delete project
// @Tags Projects
// @Param projectID path string true "Project ID" format(uuid)
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /admin/projects/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		paths, err := h.projectRepo.Delete(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.logger.Info().Str("admin", ctxAdminSubject(r.Context())).Str("projectID", id.String()).Msg("Deleted project")
		if err := h.assets.cleanup(r.Context(), paths); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteNoContent(w)
	}
}

type projectTypeRequest struct {
	Name         string `json:"name" validate:"required,max=255"`
	Slug         string `json:"slug" validate:"max=255"`
	Description  string `json:"description"`
	DisplayOrder *int   `json:"display_order" validate:"omitempty,gte=0"`
}

func (h projectHandler) listProjectTypes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		types, err := h.typeRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, types)
	}
}

func (h projectHandler) createProjectType() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req projectTypeRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		projectType := &models.ProjectType{Name: req.Name, Description: req.Description}
		if err := h.typeRepo.Create(r.Context(), projectType, database.WriteOptions{Slug: req.Slug, DisplayOrder: req.DisplayOrder}); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, projectType)
	}
}

func (h projectHandler) updateProjectType() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "typeID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		var req projectTypeRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		projectType := &models.ProjectType{Name: req.Name, Description: req.Description}
		projectType.ID = id
		if err := h.typeRepo.Update(r.Context(), projectType, database.WriteOptions{Slug: req.Slug, DisplayOrder: req.DisplayOrder}); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, projectType)
	}
}

// deleteProjectType fails with 409 while projects still use the type
// @Summary Delete project type
// @Tags Projects
// @Param typeID path string true "Project type ID" format(uuid)
// @Success 204
// @Failure 409 {object} ErrorResponse "Projects still reference the type"
// @Router /admin/project-types/{typeID} [delete]
func (h projectHandler) deleteProjectType() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "typeID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.typeRepo.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteNoContent(w)
	}
}
