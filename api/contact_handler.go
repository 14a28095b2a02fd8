package api

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rpupo63/portfolio-site-backend/services"
)

type contactHandler struct {
	responder   Responder
	logger      zerolog.Logger
	contactRepo *database.ContactRepo
}

func newContactHandler(contactRepo *database.ContactRepo) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		contactRepo: contactRepo,
	}
}

// getAllMessages retrieves all contact messages, newest first (admin only).
func (h contactHandler) getAllMessages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messages, err := h.contactRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find messages", "messages", err))
			return
		}

		if messages == nil {
			messages = []*models.ContactMessage{}
		}
		h.responder.WriteJSON(w, messages)
	}
}

// createMessage accepts a public contact form submission. The source IP is
// recorded server-side; it never appears in responses.
func (h contactHandler) createMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var message models.ContactMessage
		if err := json.NewDecoder(r.Body).Decode(&message); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode contact request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("contact", err))
			return
		}

		message.Status = models.MessageStatusNew
		message.IPAddress = clientIP(r)

		message.Normalize()
		if err := message.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.contactRepo.Add(&message); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create message", "message", err))
			return
		}

		// Best effort; submission succeeds even when notification fails.
		go func(m models.ContactMessage) {
			if err := services.NotifyNewMessage(&m); err != nil {
				h.logger.Warn().Err(err).Msg("contact notification not sent")
			}
		}(message)

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, map[string]interface{}{
			"message": "Message sent successfully!",
			"id":      message.ID.String(),
			"data":    message,
		})
	}
}

type statusRequest struct {
	Status string `json:"status"`
}

// updateStatus transitions a message between new and read.
func (h contactHandler) updateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messageID, err := parseIDParam(r, "messageID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req statusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("status", err))
			return
		}

		if req.Status != models.MessageStatusNew && req.Status != models.MessageStatusRead {
			h.responder.WriteError(w, errs.NewInvalidFieldError("status", "must be 'new' or 'read'"))
			return
		}

		message, err := h.contactRepo.UpdateStatus(messageID, req.Status)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update message", "message", err))
			return
		}

		h.responder.WriteJSON(w, message)
	}
}

func (h contactHandler) deleteMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messageID, err := parseIDParam(r, "messageID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := h.contactRepo.FindByID(messageID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find message", "message", err))
			return
		}

		if err := h.contactRepo.Delete(messageID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete message", "message", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "Message deleted successfully",
		})
	}
}

// clientIP prefers X-Forwarded-For so deployments behind a proxy record the
// real origin.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
