package api

import (
	"errors"
	"net/http"

	"github.com/mdsajjadhossain25/portfolio-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const maxUploadBytes = 10 << 20

type uploadHandler struct {
	responder Responder
	logger    zerolog.Logger
	assets    assetResolver
}

func newUploadHandler(assets assetResolver) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()
	return uploadHandler{
		responder: NewResponder(logger),
		logger:    logger,
		assets:    assets,
	}
}

type uploadResponse struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

// upload stores the multipart "file" under the optional "directory" form
// field. The returned path is what entities reference.
// @Summary Upload a file
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} uploadResponse
// @Failure 413 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /admin/uploads [post]
func (h uploadHandler) upload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(maxUploadBytes))
				return
			}
			h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart form", err))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, errs.NewFieldValidationError("file", "is required"))
			return
		}
		defer file.Close()

		stored, err := h.assets.files.Store(r.Context(), file, header.Filename, r.FormValue("directory"))
		if err != nil {
			h.responder.WriteError(w, errs.NewStorageFailureError("store", []string{header.Filename}, err))
			return
		}
		h.logger.Info().
			Str("admin", ctxAdminSubject(r.Context())).
			Str("path", stored).
			Int64("size", header.Size).
			Msg("Stored upload")
		h.responder.WriteJSONStatus(w, http.StatusCreated, uploadResponse{Path: stored, URL: h.assets.url(stored)})
	}
}
