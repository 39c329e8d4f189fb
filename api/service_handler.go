package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mdsajjadhossain25/portfolio-backend/database"
	"github.com/mdsajjadhossain25/portfolio-backend/models"
	"github.com/mdsajjadhossain25/portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type serviceHandler struct {
	responder   Responder
	logger      zerolog.Logger
	serviceRepo *database.ServiceRepo
	baseURL     string
}

func newServiceHandler(serviceRepo *database.ServiceRepo, baseURL string) serviceHandler {
	logger := log.With().Str("handlerName", "serviceHandler").Logger()
	return serviceHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		serviceRepo: serviceRepo,
		baseURL:     baseURL,
	}
}

type serviceFeatureInput struct {
	Title        string `json:"title" validate:"required,max=255"`
	DisplayOrder *int   `json:"display_order" validate:"omitempty,gte=0"`
}

type serviceRequest struct {
	Title        string                 `json:"title" validate:"required,max=255"`
	Slug         string                 `json:"slug" validate:"max=255"`
	Summary      string                 `json:"summary"`
	Description  string                 `json:"description"`
	Icon         string                 `json:"icon" validate:"max=100"`
	PriceLabel   string                 `json:"price_label" validate:"max=100"`
	IsActive     *bool                  `json:"is_active"`
	DisplayOrder *int                   `json:"display_order" validate:"omitempty,gte=0"`
	Features     *[]serviceFeatureInput `json:"features" validate:"omitempty,dive"`
}

func (req serviceRequest) model() *models.Service {
	service := &models.Service{
		Title:       req.Title,
		Summary:     req.Summary,
		Description: req.Description,
		Icon:        req.Icon,
		PriceLabel:  req.PriceLabel,
		IsActive:    true,
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}
	return service
}

func (req serviceRequest) features() *[]database.Child[models.ServiceFeature] {
	return toChildren(req.Features, func(in serviceFeatureInput) (models.ServiceFeature, *int) {
		return models.ServiceFeature{Title: in.Title}, in.DisplayOrder
	})
}

type serviceResponse struct {
	models.Service
	URL string `json:"url,omitempty"`
}

func (h serviceHandler) present(service models.Service) serviceResponse {
	return serviceResponse{Service: service, URL: services.BuildServiceURL(h.baseURL, service.Slug)}
}

func (h serviceHandler) list(activeOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		found, err := h.serviceRepo.FindAll(r.Context(), activeOnly)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		out := make([]serviceResponse, len(found))
		for i, s := range found {
			out[i] = h.present(s)
		}
		h.responder.WriteJSON(w, out)
	}
}

// getActiveService returns an active service by slug; inactive ones are 404
func (h serviceHandler) getActiveService() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		service, err := h.serviceRepo.FindActiveBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, h.present(*service))
	}
}

func (h serviceHandler) getService() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "serviceID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		service, err := h.serviceRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, h.present(*service))
	}
}

func (h serviceHandler) createService() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req serviceRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		var features []database.Child[models.ServiceFeature]
		if f := req.features(); f != nil {
			features = *f
		}
		service, err := h.serviceRepo.Create(r.Context(), req.model(), features, database.WriteOptions{
			Slug:         req.Slug,
			DisplayOrder: req.DisplayOrder,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, h.present(*service))
	}
}

func (h serviceHandler) updateService() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "serviceID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		var req serviceRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		service := req.model()
		service.ID = id
		updated, err := h.serviceRepo.Update(r.Context(), service, req.features(), database.WriteOptions{
			Slug:         req.Slug,
			DisplayOrder: req.DisplayOrder,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, h.present(*updated))
	}
}

func (h serviceHandler) deleteService() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "serviceID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.serviceRepo.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteNoContent(w)
	}
}
