package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/mdsajjadhossain25/portfolio-backend/database"
	"github.com/mdsajjadhossain25/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type skillHandler struct {
	responder    Responder
	logger       zerolog.Logger
	categoryRepo *database.SkillCategoryRepo
	skillRepo    *database.SkillRepo
}

func newSkillHandler(categoryRepo *database.SkillCategoryRepo, skillRepo *database.SkillRepo) skillHandler {
	logger := log.With().Str("handlerName", "skillHandler").Logger()
	return skillHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		categoryRepo: categoryRepo,
		skillRepo:    skillRepo,
	}
}

type skillCategoryRequest struct {
	Name         string `json:"name" validate:"required,max=255"`
	Slug         string `json:"slug" validate:"max=255"`
	DisplayOrder *int   `json:"display_order" validate:"omitempty,gte=0"`
}

type skillRequest struct {
	SkillCategoryID uuid.UUID `json:"skill_category_id" validate:"required"`
	Name            string    `json:"name" validate:"required,max=255"`
	Proficiency     int       `json:"proficiency" validate:"gte=0,lte=100"`
	Icon            string    `json:"icon" validate:"max=100"`
	DisplayOrder    *int      `json:"display_order" validate:"omitempty,gte=0"`
}

func (req skillRequest) model() *models.Skill {
	return &models.Skill{
		SkillCategoryID: req.SkillCategoryID,
		Name:            req.Name,
		Proficiency:     req.Proficiency,
		Icon:            req.Icon,
	}
}

// listCategories returns every skill category with its ordered skills
// @Summary List skills
// @Tags Skills
// @Produce json
// @Success 200 {array} models.SkillCategory
// @Router /skills [get]
func (h skillHandler) listCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.categoryRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, categories)
	}
}

func (h skillHandler) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req skillCategoryRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		category := &models.SkillCategory{Name: req.Name}
		if err := h.categoryRepo.Create(r.Context(), category, database.WriteOptions{Slug: req.Slug, DisplayOrder: req.DisplayOrder}); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, category)
	}
}

func (h skillHandler) updateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "categoryID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		var req skillCategoryRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		category := &models.SkillCategory{Name: req.Name}
		category.ID = id
		if err := h.categoryRepo.Update(r.Context(), category, database.WriteOptions{Slug: req.Slug, DisplayOrder: req.DisplayOrder}); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, category)
	}
}

// deleteCategory fails with 409 while the category still holds skills
func (h skillHandler) deleteCategory() http.HandlerFunc {
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

// skillScope orders the skills of the category in the URL
func (h skillHandler) skillScope(r *http.Request) (database.Scope, error) {
	id, err := uuidParam(r, "categoryID")
	if err != nil {
		return database.Scope{}, err
	}
	if _, err := h.categoryRepo.FindByID(r.Context(), id); err != nil {
		return database.Scope{}, err
	}
	return database.SkillScope(id), nil
}

func (h skillHandler) listSkills() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := queryUUID(r, "category_id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		skills, err := h.skillRepo.FindAll(r.Context(), categoryID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, skills)
	}
}

func (h skillHandler) createSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req skillRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		skill := req.model()
		if err := h.skillRepo.Create(r.Context(), skill, req.DisplayOrder); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, skill)
	}
}

func (h skillHandler) updateSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "skillID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		var req skillRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		skill := req.model()
		skill.ID = id
		if err := h.skillRepo.Update(r.Context(), skill, req.DisplayOrder); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, skill)
	}
}

func (h skillHandler) deleteSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "skillID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.skillRepo.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteNoContent(w)
	}
}
