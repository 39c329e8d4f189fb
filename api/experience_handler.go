package api

import (
	"net/http"
	"time"

	"github.com/mdsajjadhossain25/portfolio-backend/database"
	"github.com/mdsajjadhossain25/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type experienceHandler struct {
	responder      Responder
	logger         zerolog.Logger
	experienceRepo *database.ExperienceRepo
}

func newExperienceHandler(experienceRepo *database.ExperienceRepo) experienceHandler {
	logger := log.With().Str("handlerName", "experienceHandler").Logger()
	return experienceHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		experienceRepo: experienceRepo,
	}
}

type experienceRequest struct {
	Company        string     `json:"company" validate:"required,max=255"`
	Position       string     `json:"position" validate:"required,max=255"`
	Location       string     `json:"location" validate:"max=255"`
	EmploymentType string     `json:"employment_type" validate:"max=50"`
	StartDate      time.Time  `json:"start_date" validate:"required"`
	EndDate        *time.Time `json:"end_date"`
	IsCurrent      bool       `json:"is_current"`
	Description    string     `json:"description"`
	Achievements   []string   `json:"achievements" validate:"dive,required"`
	DisplayOrder   *int       `json:"display_order" validate:"omitempty,gte=0"`
}

func (req experienceRequest) model() *models.Experience {
	return &models.Experience{
		Company:        req.Company,
		Position:       req.Position,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		IsCurrent:      req.IsCurrent,
		Description:    req.Description,
		Achievements:   req.Achievements,
	}
}

func (h experienceHandler) listExperiences() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		experiences, err := h.experienceRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, experiences)
	}
}

func (h experienceHandler) createExperience() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req experienceRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		experience := req.model()
		if err := h.experienceRepo.Create(r.Context(), experience, req.DisplayOrder); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, experience)
	}
}

func (h experienceHandler) updateExperience() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "experienceID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		var req experienceRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		experience := req.model()
		experience.ID = id
		if err := h.experienceRepo.Update(r.Context(), experience, req.DisplayOrder); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, experience)
	}
}

func (h experienceHandler) deleteExperience() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "experienceID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.experienceRepo.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteNoContent(w)
	}
}
