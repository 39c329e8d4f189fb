package api

import (
	"net/http"

	"github.com/mdsajjadhossain25/portfolio-backend/database"
	"github.com/mdsajjadhossain25/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type profileHandler struct {
	responder   Responder
	logger      zerolog.Logger
	profileRepo *database.ProfileRepo
	assets      assetResolver
}

func newProfileHandler(profileRepo *database.ProfileRepo, assets assetResolver) profileHandler {
	logger := log.With().Str("handlerName", "profileHandler").Logger()
	return profileHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		profileRepo: profileRepo,
		assets:      assets,
	}
}

type socialLinkInput struct {
	Platform string `json:"platform" validate:"required,max=50"`
	URL      string `json:"url" validate:"required,url"`
}

type profileRequest struct {
	Name              string            `json:"name" validate:"required,max=255"`
	Headline          string            `json:"headline" validate:"max=255"`
	Bio               string            `json:"bio"`
	Email             string            `json:"email" validate:"omitempty,email,max=255"`
	Phone             string            `json:"phone" validate:"max=50"`
	Location          string            `json:"location" validate:"max=255"`
	AvatarPath        string            `json:"avatar_path"`
	ResumePath        string            `json:"resume_path"`
	SocialLinks       []socialLinkInput `json:"social_links" validate:"dive"`
	YearsOfExperience int               `json:"years_of_experience" validate:"gte=0"`
	AvailableForHire  bool              `json:"available_for_hire"`
}

func (req profileRequest) model() *models.Profile {
	links := make([]models.SocialLink, len(req.SocialLinks))
	for i, l := range req.SocialLinks {
		links[i] = models.SocialLink{Platform: l.Platform, URL: l.URL}
	}
	return &models.Profile{
		Name:              req.Name,
		Headline:          req.Headline,
		Bio:               req.Bio,
		Email:             req.Email,
		Phone:             req.Phone,
		Location:          req.Location,
		AvatarPath:        req.AvatarPath,
		ResumePath:        req.ResumePath,
		SocialLinks:       links,
		YearsOfExperience: req.YearsOfExperience,
		AvailableForHire:  req.AvailableForHire,
	}
}

type profileResponse struct {
	models.Profile
	AvatarURL string `json:"avatar_url,omitempty"`
	ResumeURL string `json:"resume_url,omitempty"`
}

func (h profileHandler) present(profile models.Profile) profileResponse {
	return profileResponse{
		Profile:   profile,
		AvatarURL: h.assets.url(profile.AvatarPath),
		ResumeURL: h.assets.url(profile.ResumePath),
	}
}

func (h profileHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := h.profileRepo.Get(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, h.present(*profile))
	}
}

// saveProfile creates or replaces the owner profile. Replaced avatar and
// resume files are deleted from storage.
// @Summary Save profile
// @Tags Profile
// @Accept json
// @Produce json
// @Param profile body profileRequest true "Profile"
// @Success 200 {object} profileResponse
// @Failure 502 {object} ErrorResponse "Saved, but replaced files could not be deleted"
// @Router /admin/profile [put]
func (h profileHandler) saveProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req profileRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		profile := req.model()
		orphaned, err := h.profileRepo.Save(r.Context(), profile)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.assets.cleanup(r.Context(), orphaned); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, h.present(*profile))
	}
}
