package api

import (
	"net/http"

	"github.com/mdsajjadhossain25/portfolio-backend/database"
	"github.com/mdsajjadhossain25/portfolio-backend/models"
	"github.com/mdsajjadhossain25/portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contactHandler struct {
	responder   Responder
	logger      zerolog.Logger
	messageRepo *database.ContactMessageRepo
	notifier    services.ContactNotifier
}

func newContactHandler(messageRepo *database.ContactMessageRepo, notifier services.ContactNotifier) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()
	return contactHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		messageRepo: messageRepo,
		notifier:    notifier,
	}
}

type contactRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Subject string `json:"subject" validate:"max=255"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

type contactFlagsRequest struct {
	IsRead    *bool `json:"is_read"`
	IsReplied *bool `json:"is_replied"`
}

// submitMessage stores a contact form submission and notifies the owner
// @Summary Send a contact message
// @Tags Contact
// @Accept json
// @Produce json
// @Param message body contactRequest true "Message"
// @Success 201 {object} models.ContactMessage
// @Failure 422 {object} ErrorResponse "Validation failed"
// @Failure 429 {object} ErrorResponse
// @Router /contact [post]
func (h contactHandler) submitMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req contactRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		message := &models.ContactMessage{
			Name:      req.Name,
			Email:     req.Email,
			Subject:   req.Subject,
			Message:   req.Message,
			IPAddress: clientIP(r),
		}
		if err := h.messageRepo.Create(r.Context(), message); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		// The message is stored; a failed notification only gets logged.
		if h.notifier != nil {
			if err := h.notifier.NotifyContact(r.Context(), *message); err != nil {
				h.logger.Error().Err(err).Str("messageID", message.ID.String()).Msg("Failed to notify about contact message")
			}
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, message)
	}
}

func (h contactHandler) listMessages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		read, err := queryBool(r, "read")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		replied, err := queryBool(r, "replied")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		messages, err := h.messageRepo.FindAll(r.Context(), database.ContactMessageFilter{Read: read, Replied: replied})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, messages)
	}
}

func (h contactHandler) getMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "messageID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		message, err := h.messageRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, message)
	}
}

// updateFlags sets is_read and is_replied independently
// @Summary Mark a contact message
// @Tags Contact
// @Accept json
// @Produce json
// @Param messageID path string true "Message ID" format(uuid)
// @Param flags body contactFlagsRequest true "Flags to change"
// @Success 200 {object} models.ContactMessage
// @Router /admin/contact-messages/{messageID} [patch]
func (h contactHandler) updateFlags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "messageID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		var req contactFlagsRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		message, err := h.messageRepo.SetFlags(r.Context(), id, database.ContactFlags{Read: req.IsRead, Replied: req.IsReplied})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, message)
	}
}

func (h contactHandler) deleteMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "messageID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.messageRepo.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteNoContent(w)
	}
}
